package scene

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/infographic/pkg/element"
)

func TestRenderJSON(t *testing.T) {
	root := element.Group(
		element.Rect(0, 0, 100, 40, map[string]string{"fill": "#fff"}).WithID("card"),
		element.NewText(0, 50, element.Text{Content: "aaaa bbbb", FontSize: 10, WordWrap: true}, nil).WithSize(30, 40),
		element.Defs(element.LinearGradient("g", "0%", "0%", "0%", "100%")),
	).At(10, 10)

	raw, err := RenderJSON(root, WithJSONMeasurer(element.HeuristicMeasurer{}), WithJSONBackground("#000000"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Background != "#000000" {
		t.Errorf("Background = %q", out.Background)
	}
	if out.Bounds != (jsonBounds{X: 10, Y: 10, Width: 100, Height: 90}) {
		t.Errorf("Bounds = %+v", out.Bounds)
	}
	if out.Root.Kind != "group" || len(out.Root.Children) != 3 {
		t.Fatalf("Root = %+v", out.Root)
	}

	card := out.Root.Children[0]
	if card.ID != "card" || card.Attrs["fill"] != "#fff" || card.Width == nil || *card.Width != 100 {
		t.Errorf("card = %+v", card)
	}

	text := out.Root.Children[1]
	if text.Text == nil || len(text.Text.Lines) != 2 {
		t.Fatalf("text = %+v", text.Text)
	}
	if text.Text.Lines[0] != "aaaa" || text.Text.Lines[1] != "bbbb" {
		t.Errorf("Lines = %v", text.Text.Lines)
	}

	defs := out.Root.Children[2]
	if defs.Bounds != nil {
		t.Error("definitions should not carry bounds")
	}
}
