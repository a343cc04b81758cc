package element

import (
	"math"
	"testing"
)

func TestWithAttrDoesNotMutate(t *testing.T) {
	base := Rect(0, 0, 10, 10, map[string]string{"fill": "red"})
	changed := base.WithAttr("fill", "blue")

	if base.Attr("fill") != "red" {
		t.Errorf("base fill = %q, want red", base.Attr("fill"))
	}
	if changed.Attr("fill") != "blue" {
		t.Errorf("changed fill = %q, want blue", changed.Attr("fill"))
	}
}

func TestWithChildrenCopies(t *testing.T) {
	kids := []Element{Rect(0, 0, 1, 1, nil)}
	g := Group().WithChildren(kids...)
	kids[0] = Rect(5, 5, 1, 1, nil)

	if g.Children[0].X != 0 {
		t.Errorf("child X = %v after caller mutation, want 0", g.Children[0].X)
	}
}

func TestGroupDropsNone(t *testing.T) {
	g := Group(None(), Rect(0, 0, 1, 1, nil), None())
	if len(g.Children) != 1 {
		t.Errorf("len(Children) = %d, want 1", len(g.Children))
	}
}

func TestMeasure(t *testing.T) {
	m := HeuristicMeasurer{}
	tests := []struct {
		name string
		el   Element
		want Bounds
	}{
		{
			name: "rect",
			el:   Rect(10, 20, 30, 40, nil),
			want: Bounds{10, 20, 30, 40},
		},
		{
			name: "empty group",
			el:   Group().At(5, 6),
			want: Bounds{5, 6, 0, 0},
		},
		{
			name: "group union translated",
			el:   Group(Rect(0, 0, 10, 10, nil), Rect(20, 5, 10, 10, nil)).At(100, 100),
			want: Bounds{100, 100, 30, 15},
		},
		{
			name: "sized group ignores children",
			el:   Group(Rect(0, 0, 500, 500, nil)).WithSize(50, 60),
			want: Bounds{0, 0, 50, 60},
		},
		{
			name: "ellipse",
			el:   NewEllipse(50, 50, 20, 10, nil),
			want: Bounds{30, 40, 40, 20},
		},
		{
			name: "line",
			el:   Line(10, 30, 0, 5, nil),
			want: Bounds{0, 5, 10, 25},
		},
		{
			name: "relative path",
			el:   NewPath("M 10 10 l 20 0 v 15 h -30 Z", nil),
			want: Bounds{0, 10, 30, 15},
		},
		{
			name: "arc path end points",
			el:   NewPath("M0,0 A 28 18 0 0 0 56 0 L56,40", nil),
			want: Bounds{0, 0, 56, 40},
		},
		{
			name: "defs ignored in union",
			el:   Group(Defs(LinearGradient("g", "0%", "0%", "100%", "0%")), Rect(1, 2, 3, 4, nil)),
			want: Bounds{1, 2, 3, 4},
		},
		{
			name: "heuristic text",
			el:   NewText(0, 0, Text{Content: "abcd", FontSize: 10, LineHeight: 1.5}, nil),
			want: Bounds{0, 0, 24, 15},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MeasureWith(tt.el, m); got != tt.want {
				t.Errorf("MeasureWith() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtentLooksThroughGroupSize(t *testing.T) {
	inner := Group(Rect(-20, 0, 10, 10, nil), Rect(50, 40, 10, 10, nil)).WithSize(30, 30)
	g := Group(inner.At(100, 100))

	if got := MeasureWith(g, HeuristicMeasurer{}); got != (Bounds{X: 100, Y: 100, Width: 30, Height: 30}) {
		t.Errorf("MeasureWith = %+v", got)
	}
	want := Bounds{X: 80, Y: 100, Width: 80, Height: 50}
	if got := Extent(g, HeuristicMeasurer{}); got != want {
		t.Errorf("Extent = %+v, want %+v", got, want)
	}
}

func TestMeasureDeterministic(t *testing.T) {
	el := Group(
		NewText(0, 0, Text{Content: "Quarterly revenue", FontSize: 18, FontWeight: "bold"}, nil),
		Circle(10, 40, 8, nil),
	)
	a, b := Measure(el), Measure(el)
	if a != b {
		t.Errorf("Measure not deterministic: %+v vs %+v", a, b)
	}
}

func TestUnion(t *testing.T) {
	if got := Union(); got != (Bounds{}) {
		t.Errorf("Union() = %+v, want zero", got)
	}
	got := Union(Bounds{-10, 0, 5, 5}, Bounds{0, -3, 10, 2})
	want := Bounds{-10, -3, 20, 8}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
}

func TestTextLinesWrap(t *testing.T) {
	m := HeuristicMeasurer{}
	// 6px per rune at size 10.
	tx := Text{Content: "aaa bbb ccc", FontSize: 10, WordWrap: true}
	lines := TextLines(tx, 40, m)
	want := []string{"aaa", "bbb", "ccc"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	lines = TextLines(tx, 50, m)
	if len(lines) != 2 || lines[0] != "aaa bbb" {
		t.Errorf("lines = %q, want [aaa bbb, ccc]", lines)
	}
}

func TestTextLinesWideRunes(t *testing.T) {
	m := HeuristicMeasurer{}
	// Each ideograph is 12px at size 10.
	tx := Text{Content: "数据可视化", FontSize: 10, WordWrap: true}
	lines := TextLines(tx, 25, m)
	if len(lines) != 3 {
		t.Errorf("lines = %q, want 3 lines", lines)
	}
}

func TestTextLinesCap(t *testing.T) {
	tx := Text{Content: "a\nb\nc", LineNumber: 2}
	if got := TextLines(tx, 0, HeuristicMeasurer{}); len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestFontMeasurer(t *testing.T) {
	m, err := NewFontMeasurer()
	if err != nil {
		t.Fatalf("NewFontMeasurer: %v", err)
	}
	narrow := m.Advance("iiii", 16, "")
	wide := m.Advance("WWWW", 16, "")
	if narrow <= 0 || wide <= narrow {
		t.Errorf("advances narrow=%v wide=%v, want 0 < narrow < wide", narrow, wide)
	}
	if bold := m.Advance("WWWW", 16, "bold"); bold < wide {
		t.Errorf("bold advance %v < regular %v", bold, wide)
	}
	if got := m.Advance("数", 20, ""); math.Abs(got-20) > 1e-9 {
		t.Errorf("wide rune advance = %v, want 20", got)
	}
}

func TestFontWeightName(t *testing.T) {
	tests := map[string]string{
		"700": "bold", "Bold": "bold", "heavy": "black", "": "regular", "weird": "regular", "600": "semibold",
	}
	for in, want := range tests {
		if got := FontWeightName(in); got != want {
			t.Errorf("FontWeightName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{0: "0", 12: "12", 1.5: "1.5", 1.256: "1.26", -0.001: "0", -3.1: "-3.1"}
	for in, want := range tests {
		if got := FormatFloat(in); got != want {
			t.Errorf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestQuoteFontFamily(t *testing.T) {
	tests := map[string]string{"Arial": "Arial", "Arial Black": `"Arial Black"`, "3Dumb": `"3Dumb"`, `"x y"`: `"x y"`}
	for in, want := range tests {
		if got := QuoteFontFamily(in); got != want {
			t.Errorf("QuoteFontFamily(%q) = %q, want %q", in, got, want)
		}
	}
}
