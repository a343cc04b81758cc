package structures

import (
	"strconv"
	"testing"

	"github.com/matzehuels/infographic/pkg/data"
	"github.com/matzehuels/infographic/pkg/design/items"
	"github.com/matzehuels/infographic/pkg/element"
	"github.com/matzehuels/infographic/pkg/theme"
)

// card is a fixed 100x50 item that records the last props it was drawn
// with per index path.
type card struct {
	calls map[string]items.Props
}

func (c *card) render(p items.Props) element.Element {
	if c.calls == nil {
		c.calls = map[string]items.Props{}
	}
	id := "item-" + p.Indexes.Key()
	c.calls[id] = p
	return element.Group(element.Rect(0, 0, 100, 50, nil)).At(p.X, p.Y).WithID(id)
}

func compose(t *testing.T, name string, cfg map[string]any, d data.Data, r items.Renderer) element.Element {
	t.Helper()
	def, ok := Lookup(name)
	if !ok {
		t.Fatalf("Lookup(%q) failed", name)
	}
	c, err := def.Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return c(Props{
		Item:     r,
		Data:     d,
		Theme:    theme.Config{ColorPrimary: "#1677FF", Palette: []string{"#1677FF", "#52C41A"}},
		Measurer: element.HeuristicMeasurer{},
		Title: func(title, desc string) element.Element {
			if title == "" {
				return element.None()
			}
			return element.NewText(0, 0, element.Text{Content: title}, nil).WithSize(200, 30).WithID("title")
		},
	})
}

// find returns the first element with the given ID.
func find(root element.Element, id string) (element.Element, bool) {
	var found element.Element
	var ok bool
	element.Walk(root, func(e element.Element) bool {
		if ok {
			return false
		}
		if e.ID == id {
			found, ok = e, true
			return false
		}
		return true
	})
	return found, ok
}

func mustFind(t *testing.T, root element.Element, id string) element.Element {
	t.Helper()
	e, ok := find(root, id)
	if !ok {
		t.Fatalf("element %q not found", id)
	}
	return e
}

func labels(ls ...string) []data.Item {
	out := make([]data.Item, len(ls))
	for i, l := range ls {
		out[i] = data.Item{Label: l}
	}
	return out
}

func TestListRow(t *testing.T) {
	c := &card{}
	root := compose(t, "list-row", nil, data.Data{Items: labels("A", "B", "C")}, c.render)

	for i, wantX := range []float64{0, 120, 240} {
		id := "item-" + data.Indexes{i}.Key()
		if got := mustFind(t, root, id).X; got != wantX {
			t.Errorf("%s x = %v, want %v", id, got, wantX)
		}
	}

	tests := []struct {
		id   string
		x, y float64
	}{
		{"btn-remove-0", 40, 50},
		{"btn-remove-2", 280, 50},
		{"btn-add-0", -20, 50},
		{"btn-add-1", 100, 50},
		{"btn-add-2", 220, 50},
		{"btn-add-3", 340, 50},
	}
	for _, tt := range tests {
		b := mustFind(t, root, tt.id)
		if b.X != tt.x || b.Y != tt.y {
			t.Errorf("%s at (%v, %v), want (%v, %v)", tt.id, b.X, b.Y, tt.x, tt.y)
		}
	}
}

func TestListRowGapOverride(t *testing.T) {
	root := compose(t, "list-row", map[string]any{"gap": 40}, data.Data{Items: labels("A", "B")}, (&card{}).render)
	if got := mustFind(t, root, "item-1").X; got != 140 {
		t.Errorf("item-1 x = %v, want 140", got)
	}
}

func TestHierarchyTree(t *testing.T) {
	// A is childless, so B and C become its children.
	c := &card{}
	root := compose(t, "hierarchy-tree", nil, data.Data{Items: labels("A", "B", "C")}, c.render)

	tests := []struct {
		id    string
		x, y  float64
		label string
	}{
		{"item-0", 80, 30, "A"},
		{"item-0-0", 0, 160, "B"},
		{"item-0-1", 160, 160, "C"},
	}
	for _, tt := range tests {
		e := mustFind(t, root, tt.id)
		if e.X != tt.x || e.Y != tt.y {
			t.Errorf("%s at (%v, %v), want (%v, %v)", tt.id, e.X, e.Y, tt.x, tt.y)
		}
		if got := c.calls[tt.id].Datum.Label; got != tt.label {
			t.Errorf("%s label = %q, want %q", tt.id, got, tt.label)
		}
	}

	link := mustFind(t, root, "link-0-0-0")
	if want := "M 130 80 L 130 120 L 50 120 L 50 160"; link.Path != want {
		t.Errorf("link path = %q, want %q", link.Path, want)
	}
	if link.Attr("stroke") != "#1677FF" {
		t.Errorf("link stroke = %s", link.Attr("stroke"))
	}

	between := mustFind(t, root, "btn-add-0-1")
	if between.X != 120 || between.Y != 135 {
		t.Errorf("sibling add at (%v, %v), want (120, 135)", between.X, between.Y)
	}
	child := mustFind(t, root, "btn-add-0-0-0")
	if child.X != 40 || child.Y != 240 {
		t.Errorf("child add at (%v, %v), want (40, 240)", child.X, child.Y)
	}
	mustFind(t, root, "btn-remove-0-1")
}

func TestHierarchyTreeSiblingsDoNotOverlap(t *testing.T) {
	d := data.Data{Items: []data.Item{{
		Label: "root",
		Children: []data.Item{
			{Label: "a", Children: labels("a1", "a2", "a3")},
			{Label: "b", Children: labels("b1")},
			{Label: "c", Children: labels("c1", "c2")},
		},
	}}}
	root := compose(t, "hierarchy-tree", nil, d, (&card{}).render)

	byY := map[float64][]float64{}
	element.Walk(root, func(e element.Element) bool {
		if e.Kind == element.KindGroup && len(e.ID) > 5 && e.ID[:5] == "item-" {
			byY[e.Y] = append(byY[e.Y], e.X)
			return false
		}
		return true
	})
	if len(byY) != 3 {
		t.Fatalf("levels = %d, want 3", len(byY))
	}
	for y, xs := range byY {
		for i := range xs {
			for j := i + 1; j < len(xs); j++ {
				if dx := xs[i] - xs[j]; dx > -100 && dx < 100 {
					t.Errorf("level y=%v: items at %v and %v overlap", y, xs[i], xs[j])
				}
			}
		}
	}
}

func TestCylinders(t *testing.T) {
	c := &card{}
	root := compose(t, "sequence-cylinders-3d", nil, data.Data{Items: labels("1", "2", "3", "4", "5")}, c.render)

	var rightX float64
	for i := range 5 {
		id := "item-" + data.Indexes{i}.Key()
		p := c.calls[id]
		if i%2 == 0 {
			if p.X != 0 || p.PositionH != items.Flipped {
				t.Errorf("%s: x=%v positionH=%s, want left column flipped", id, p.X, p.PositionH)
			}
			continue
		}
		if p.PositionH != items.Normal || p.X <= 100 {
			t.Errorf("%s: x=%v positionH=%s, want right column normal", id, p.X, p.PositionH)
		}
		if rightX != 0 && p.X != rightX {
			t.Errorf("%s x = %v, right column at %v", id, p.X, rightX)
		}
		rightX = p.X
	}

	top := mustFind(t, root, "cylinder-top-4")
	bottom := mustFind(t, root, "cylinder-bottom-4")
	if h := bottom.Ellipse.CY - top.Ellipse.CY; h != 120+4*40 {
		t.Errorf("cylinder 4 height = %v, want 280", h)
	}
	if top.Ellipse.RX != 28 || top.Ellipse.RY != 18 {
		t.Errorf("cylinder radii = %v/%v", top.Ellipse.RX, top.Ellipse.RY)
	}

	// Each cylinder stands one plane step above the previous one.
	b0 := mustFind(t, root, "cylinder-bottom-0")
	b1 := mustFind(t, root, "cylinder-bottom-1")
	if step := b0.Ellipse.CY - b1.Ellipse.CY; step != 9 {
		t.Errorf("plane step = %v, want 9", step)
	}

	group := mustFind(t, root, "items-group")
	if group.Children[0].Kind != element.KindDefs {
		t.Errorf("first child = %s, want defs", group.Children[0].Kind)
	}
	mustFind(t, group.Children[1], "base-plate-top")
	if _, ok := find(group.Children[2], "cylinder-body-4"); !ok {
		t.Error("last cylinder should be drawn first")
	}

	mustFind(t, root, "btn-add-5")
	line := mustFind(t, root, "decoration-line-1")
	if line.Attr("stroke") != "#52C41A" {
		t.Errorf("connector color = %s, want palette entry 1", line.Attr("stroke"))
	}
	num := mustFind(t, root, "cylinder-number-0")
	if num.Text.Content != "1" || num.Attr("text-anchor") != "middle" {
		t.Errorf("numeral = %q anchor=%s", num.Text.Content, num.Attr("text-anchor"))
	}
}

func TestCylindersOffsets(t *testing.T) {
	root := compose(t, "sequence-cylinders-3d", nil, data.Data{Items: labels("1", "2", "3", "4", "5")}, (&card{}).render)
	origin := mustFind(t, root, "cylinder-top-0").Ellipse.CX

	// Right cylinders sit 2rx+2 out in the first pair and 2rx+rx later;
	// pairs recede by rx/2, then by 1.5rx each.
	tests := []struct {
		i    int
		want float64
	}{
		{0, 0},
		{1, 58},
		{2, 14},
		{3, 98},
		{4, 56},
	}
	for _, tt := range tests {
		id := "cylinder-top-" + strconv.Itoa(tt.i)
		if got := mustFind(t, root, id).Ellipse.CX - origin; got != tt.want {
			t.Errorf("%s x = %v, want %v", id, got, tt.want)
		}
	}

	// The append button stands where a sixth cylinder would.
	btn := mustFind(t, root, "btn-add-5")
	if got := btn.X - origin; got != 140 {
		t.Errorf("btn-add-5 x = %v, want 140", got)
	}
	base := mustFind(t, root, "cylinder-bottom-0").Ellipse.CY
	if got := base - btn.Y; got != 5*9+100 {
		t.Errorf("btn-add-5 rises %v above the first cylinder, want 145", got)
	}
}

func TestCylindersVerticalAlign(t *testing.T) {
	d := data.Data{Items: labels("1")}
	top := &card{}
	compose(t, "sequence-cylinders-3d", map[string]any{"itemVerticalOffset": 0}, d, top.render)
	bottom := &card{}
	compose(t, "sequence-cylinders-3d", map[string]any{"itemVerticalAlign": "bottom", "itemVerticalOffset": 0}, d, bottom.render)

	if got := top.calls["item-0"].Y - bottom.calls["item-0"].Y; got != 50 {
		t.Errorf("top - bottom = %v, want item height 50", got)
	}
}

func TestEmptyData(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			root := compose(t, name, nil, data.Data{Title: "Empty"}, (&card{}).render)
			mustFind(t, root, "title")
			if _, ok := find(root, "items-group"); ok {
				t.Error("unexpected items group")
			}
			_, hasAdd := find(root, "btn-add-0")
			if wantAdd := name != "sequence-cylinders-3d"; hasAdd != wantAdd {
				t.Errorf("add button present = %v, want %v", hasAdd, wantAdd)
			}
			if _, ok := find(root, "btn-remove-0"); ok {
				t.Error("unexpected remove button")
			}
		})
	}
}

func TestBuildRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name      string
		structure string
		cfg       map[string]any
	}{
		{"unknown field", "list-row", map[string]any{"spacing": 3}},
		{"wrong type", "hierarchy-tree", map[string]any{"levelGap": "far"}},
		{"bad align", "sequence-cylinders-3d", map[string]any{"itemVerticalAlign": "middle"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, _ := Lookup(tt.structure)
			if _, err := def.Build(tt.cfg); err == nil {
				t.Error("Build() error = nil, want error")
			}
		})
	}
}

func TestItemAt(t *testing.T) {
	mark := func(id string) items.Renderer {
		return func(items.Props) element.Element { return element.Group().WithID(id) }
	}
	p := Props{Item: mark("item"), Items: []items.Renderer{mark("root"), mark("leaf")}}
	for depth, want := range []string{"root", "leaf", "leaf"} {
		if got := p.itemAt(depth)(items.Props{}).ID; got != want {
			t.Errorf("itemAt(%d) = %s, want %s", depth, got, want)
		}
	}
	p.Items = nil
	if got := p.itemAt(3)(items.Props{}).ID; got != "item" {
		t.Errorf("itemAt without levels = %s", got)
	}
}

func TestNames(t *testing.T) {
	want := []string{"hierarchy-tree", "list-row", "sequence-cylinders-3d"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
