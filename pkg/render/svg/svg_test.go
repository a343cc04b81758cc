package svg

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/infographic/pkg/element"
)

var m = element.HeuristicMeasurer{}

func gradient(id string) element.Element {
	return element.LinearGradient(id, "0%", "0%", "0%", "100%",
		element.Stop("0%", "#fff", 1),
		element.Stop("100%", "#000", 1),
	)
}

func TestRenderWellFormed(t *testing.T) {
	root := element.Group(
		element.Rect(0, 0, 100, 40, map[string]string{"fill": "url(#g)"}),
		element.NewText(0, 0, element.Text{Content: `A & <B> "quoted"`}, map[string]string{"fill": "#333"}).WithSize(100, 40),
		element.Defs(gradient("g")),
	)
	out := Render(root, WithMeasurer(m))

	dec := xml.NewDecoder(bytes.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("invalid XML: %v\n%s", err, out)
		}
	}
	if !strings.Contains(string(out), "A &amp; &lt;B&gt; &#34;quoted&#34;") {
		t.Errorf("text not escaped:\n%s", out)
	}
}

func TestRenderDeduplicatesDefs(t *testing.T) {
	root := element.Group(
		element.Group(element.Defs(gradient("shared"), gradient("a"))),
		element.Group(element.Defs(gradient("shared"))),
		gradient("b"),
	)
	out := string(Render(root, WithMeasurer(m)))

	if n := strings.Count(out, `id="shared"`); n != 1 {
		t.Errorf("shared gradient emitted %d times, want 1", n)
	}
	if strings.Count(out, "<defs>") != 1 {
		t.Errorf("want a single defs block:\n%s", out)
	}
	ia, ib := strings.Index(out, `id="a"`), strings.Index(out, `id="b"`)
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("definitions out of order:\n%s", out)
	}
	if strings.Index(out, "</defs>") > strings.Index(out, "<g") {
		t.Error("defs must precede content")
	}
}

func TestRenderViewBox(t *testing.T) {
	// The inner group declares a smaller size than it paints.
	inner := element.Group(element.Rect(-10, 0, 50, 50, nil)).WithSize(20, 20)
	root := element.Group(inner.At(10, 10))

	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"tight", nil, `viewBox="0 10 50 50" width="50" height="50"`},
		{"padded", []Option{WithPadding(5, 10, 15, 20)}, `viewBox="-20 5 80 70" width="80" height="70"`},
		{"sized", []Option{WithSize(500, 500)}, `viewBox="0 10 50 50" width="500" height="500"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := string(Render(root, append(tt.opts, WithMeasurer(m))...))
			if !strings.Contains(out, tt.want) {
				t.Errorf("header missing %s:\n%s", tt.want, out)
			}
		})
	}
}

func TestRenderBackground(t *testing.T) {
	out := string(Render(element.Rect(0, 0, 10, 10, nil), WithBackground("#141414"), WithPadding(1, 1, 1, 1), WithMeasurer(m)))
	if !strings.Contains(out, `<rect x="-1" y="-1" width="12" height="12" fill="#141414"/>`) {
		t.Errorf("background missing:\n%s", out)
	}
}

func TestRenderEmbeddedFonts(t *testing.T) {
	plain := string(Render(element.Rect(0, 0, 10, 10, nil), WithMeasurer(m)))
	if strings.Contains(plain, "@font-face") || strings.Contains(plain, "<defs>") {
		t.Errorf("fonts embedded without the option:\n%s", plain)
	}

	out := Render(element.Rect(0, 0, 10, 10, nil), WithMeasurer(m), WithEmbeddedFonts())
	if !bytes.Contains(out, []byte("@font-face")) {
		t.Error("missing @font-face rules")
	}
	if !bytes.Contains(out, []byte(`font-family="Go, `)) {
		t.Errorf("root font-family missing:\n%.300s", out)
	}
	dec := xml.NewDecoder(bytes.NewReader(out))
	for {
		if _, err := dec.Token(); err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("invalid XML: %v", err)
		}
	}
}

func TestRenderGroupTransform(t *testing.T) {
	root := element.Group(element.Group(element.Circle(0, 0, 5, nil)).At(30, 40).WithID("item-0"))
	out := string(Render(root, WithMeasurer(m)))
	if !strings.Contains(out, `<g id="item-0" transform="translate(30,40)">`) {
		t.Errorf("group transform missing:\n%s", out)
	}
	if !strings.Contains(out, `<circle cx="0" cy="0" r="5"/>`) {
		t.Errorf("circle missing:\n%s", out)
	}
}

func TestRenderText(t *testing.T) {
	tests := []struct {
		name  string
		text  element.Text
		attrs map[string]string
		want  []string
	}{
		{
			name: "left top",
			text: element.Text{Content: "Hi", FontSize: 10, LineHeight: 2},
			want: []string{`text-anchor="start"`, `<tspan x="0" y="13.5">Hi</tspan>`},
		},
		{
			name: "center middle",
			text: element.Text{Content: "Hi", FontSize: 10, LineHeight: 2, AlignH: "center", AlignV: "middle"},
			want: []string{`text-anchor="middle"`, `<tspan x="50" y="53.5">Hi</tspan>`},
		},
		{
			name: "right bottom",
			text: element.Text{Content: "Hi", FontSize: 10, LineHeight: 2, AlignH: "right", AlignV: "bottom"},
			want: []string{`text-anchor="end"`, `<tspan x="100" y="93.5">Hi</tspan>`},
		},
		{
			name: "wrapped",
			text: element.Text{Content: "aaaa bbbb cccc", FontSize: 10, LineHeight: 2, WordWrap: true},
			want: []string{`>aaaa</tspan>`, `y="33.5">bbbb</tspan>`, `y="53.5">cccc</tspan>`},
		},
		{
			name: "background",
			text: element.Text{Content: "Hi", BackgroundColor: "#eee", BackgroundOpacity: 0.5, BackgroundRadius: 4},
			want: []string{`<rect x="0" y="0" width="100" height="100" fill="#eee" fill-opacity="0.5" rx="4"/>`},
		},
		{
			name:  "bold family",
			text:  element.Text{Content: "Hi", FontWeight: "bold", FontFamily: "Alibaba PuHuiTi"},
			attrs: map[string]string{"text-anchor": "start", "fill": "#000"},
			want:  []string{`font-weight="bold"`, `font-family="&#34;Alibaba PuHuiTi&#34;"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 10px glyphs at 0.6em make "aaaa bbbb" 54px wide, so a 50px
			// box holds one word per line.
			w := 100.0
			if tt.text.WordWrap {
				w = 50
			}
			el := element.NewText(0, 0, tt.text, tt.attrs).WithSize(w, 100)
			out := string(Render(element.Group(el), WithMeasurer(m)))
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %s:\n%s", s, out)
				}
			}
			if n := strings.Count(out, "text-anchor"); n != 1 {
				t.Errorf("text-anchor written %d times:\n%s", n, out)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	root := element.Group(
		element.Rect(0, 0, 10, 10, map[string]string{"stroke": "#000", "fill": "#fff", "rx": "2", "opacity": "0.5"}),
		element.NewPath("M 0 0 L 10 10", map[string]string{"stroke": "red"}).At(5, 5),
	)
	first := Render(root, WithMeasurer(m))
	for range 20 {
		if !bytes.Equal(first, Render(root, WithMeasurer(m))) {
			t.Fatal("output changed between renders")
		}
	}
	if !strings.Contains(string(first), `<rect x="0" y="0" width="10" height="10" fill="#fff" opacity="0.5" rx="2" stroke="#000"/>`) {
		t.Errorf("attributes not sorted:\n%s", first)
	}
	if !strings.Contains(string(first), `<path d="M 0 0 L 10 10" transform="translate(5,5)" stroke="red"/>`) {
		t.Errorf("path offset missing:\n%s", first)
	}
}
