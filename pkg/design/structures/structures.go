// Package structures arranges many items into a complete diagram: a row, a
// tree or a staircase of cylinders, together with the title and the
// add/remove buttons editors attach behaviour to.
//
// A structure never fails. Empty data produces a placeholder composition
// (the title plus, where it makes sense, a single add button).
package structures

import (
	"fmt"
	"sort"

	"github.com/matzehuels/infographic/internal/strict"
	"github.com/matzehuels/infographic/pkg/data"
	"github.com/matzehuels/infographic/pkg/design/components"
	"github.com/matzehuels/infographic/pkg/design/items"
	"github.com/matzehuels/infographic/pkg/element"
	"github.com/matzehuels/infographic/pkg/layout/flex"
	"github.com/matzehuels/infographic/pkg/theme"
)

// TitleFunc draws the title block for the given texts.
type TitleFunc func(title, desc string) element.Element

// Props are the inputs of a structure.
type Props struct {
	// Title is nil when the design has no title.
	Title TitleFunc
	// Item renders items when Items has no entry for a depth.
	Item items.Renderer
	// Items holds one renderer per tree depth.
	Items    []items.Renderer
	Data     data.Data
	Theme    theme.Config
	Measurer element.TextMeasurer
}

func (p Props) measurer() element.TextMeasurer {
	if p.Measurer == nil {
		return element.DefaultMeasurer()
	}
	return p.Measurer
}

// itemAt returns the renderer for a depth, reusing the deepest configured
// renderer for deeper levels.
func (p Props) itemAt(depth int) items.Renderer {
	switch {
	case len(p.Items) == 0:
		return p.Item
	case depth < len(p.Items):
		return p.Items[depth]
	}
	return p.Items[len(p.Items)-1]
}

func (p Props) title() element.Element {
	if p.Title == nil {
		return element.None()
	}
	return p.Title(p.Data.Title, p.Data.Desc)
}

func (p Props) colorPrimary() string {
	if p.Theme.ColorPrimary != "" {
		return p.Theme.ColorPrimary
	}
	return "#1890FF"
}

// Composer turns props into the full composition.
type Composer func(Props) element.Element

// Definition builds a configured composer from a design map.
type Definition struct {
	Name string
	// Composites lists the design parts the structure draws itself.
	Composites []string
	Build      func(cfg map[string]any) (Composer, error)
}

var registry = map[string]Definition{
	"list-row":              {Name: "list-row", Composites: []string{"title", "item"}, Build: buildListRow},
	"hierarchy-tree":        {Name: "hierarchy-tree", Composites: []string{"title", "items"}, Build: buildHierarchyTree},
	"sequence-cylinders-3d": {Name: "sequence-cylinders-3d", Composites: []string{"title", "item"}, Build: buildCylinders},
}

// Lookup returns the definition registered under name.
func Lookup(name string) (Definition, bool) {
	d, ok := registry[name]
	return d, ok
}

// Names lists the registered structures in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func decode(name string, cfg map[string]any, dst any) error {
	if err := strict.Decode(cfg, dst, "type"); err != nil {
		return fmt.Errorf("structure %s: %w", name, err)
	}
	return nil
}

// container stacks the title above the diagram.
func container(m element.TextMeasurer, children ...element.Element) element.Element {
	return flex.Layout(children, flex.Config{
		ID:         "infographic-container",
		Direction:  flex.Column,
		Justify:    flex.Center,
		AlignItems: flex.AlignCenter,
		Measurer:   m,
	})
}

var btnBounds = element.MeasureWith(components.BtnAdd("0", 0, 0), element.HeuristicMeasurer{})
