package outline

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/infographic/pkg/data"
	"github.com/matzehuels/infographic/pkg/theme"
)

func value(v float64) *float64 { return &v }

var tree = data.Data{
	Title: "Org",
	Items: []data.Item{{
		Label: "CEO",
		Children: []data.Item{
			{Label: "CTO", Desc: "Engineering", Value: value(12)},
			{Label: "CFO"},
		},
	}},
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(tree, Options{})

	for _, want := range []string{
		"digraph G",
		`"0" [label="CEO"`,
		`"0-0" [label="CTO"`,
		`"0" -> "0-0";`,
		`"0" -> "0-1";`,
		`label="Org";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s:\n%s", want, dot)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(tree, Options{Detailed: true})

	if !strings.Contains(dot, `label="CTO\nEngineering\nvalue: 12"`) {
		t.Errorf("ToDOT() detailed output missing desc and value:\n%s", dot)
	}
}

func TestToDOT_FlatItemsBecomeChildren(t *testing.T) {
	d := data.Data{Items: []data.Item{{Label: "a"}, {Label: "b"}, {Label: "c"}}}
	dot := ToDOT(d, Options{})

	if strings.Count(dot, "->") != 2 {
		t.Errorf("want the first item to parent the rest:\n%s", dot)
	}
	if strings.Contains(dot, "labelloc") {
		t.Error("untitled data should not get a graph label")
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(data.Data{}, Options{})
	if strings.Contains(dot, "label=") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty outline = %q", dot)
	}
}

func TestToDOT_PaletteColors(t *testing.T) {
	d := data.Data{Items: []data.Item{{Label: "root", Children: []data.Item{{Label: "x"}}}}}
	dot := ToDOT(d, Options{Theme: theme.Config{Palette: []string{"#FA541C"}}})

	if strings.Count(dot, ` color="#fa541c"`) != 2 {
		t.Errorf("nodes should share the top-level palette color:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(tree, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("root tag not normalized:\n%.200s", s)
	}
	if !strings.Contains(s, "CTO") {
		t.Error("rendered outline lost a label")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.Contains(got, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}
	if same := normalizeViewBox([]byte("<svg><g/></svg>")); string(same) != "<svg><g/></svg>" {
		t.Error("input without viewBox must pass through")
	}
}
