// Package items draws single data records. Each renderer is registered
// under a type name and configured from a design map.
package items

import (
	"fmt"
	"sort"

	"github.com/matzehuels/infographic/internal/strict"
	"github.com/matzehuels/infographic/pkg/data"
	"github.com/matzehuels/infographic/pkg/element"
	"github.com/matzehuels/infographic/pkg/theme"
)

// Position places an item's content relative to its anchor. Structures pick
// the position that points content away from their decorations.
type Position string

const (
	Normal  Position = "normal"
	Center  Position = "center"
	Flipped Position = "flipped"
)

func (p Position) valid() bool {
	switch p {
	case "", Normal, Center, Flipped:
		return true
	}
	return false
}

// Props are the inputs of one item render.
type Props struct {
	Indexes   data.Indexes
	Datum     data.Item
	Data      data.Data
	Theme     theme.Colors
	PositionH Position
	PositionV Position
	X, Y      float64
	ID        string
	Measurer  element.TextMeasurer
}

func (p Props) measurer() element.TextMeasurer {
	if p.Measurer == nil {
		return element.DefaultMeasurer()
	}
	return p.Measurer
}

// Renderer draws one item. The result is measurable before placement.
type Renderer func(Props) element.Element

// Definition builds a configured renderer from a design map. Unknown keys
// in the map are errors.
type Definition struct {
	Name  string
	Build func(cfg map[string]any) (Renderer, error)
}

var registry = map[string]Definition{
	"simple":     {Name: "simple", Build: buildSimple},
	"pill-badge": {Name: "pill-badge", Build: buildPillBadge},
}

// Lookup returns the definition registered under name.
func Lookup(name string) (Definition, bool) {
	d, ok := registry[name]
	return d, ok
}

// Names lists the registered item types in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Bind wraps r so every render receives the palette colors of its item and
// the ID "item-<key>". Colors already present in the props are kept.
func Bind(r Renderer, cfg theme.Config, m element.TextMeasurer) Renderer {
	return func(p Props) element.Element {
		if p.Theme.ColorPrimary == "" {
			p.Theme = cfg.ItemColors(p.Indexes)
		}
		if p.Measurer == nil {
			p.Measurer = m
		}
		p.ID = "item-" + p.Indexes.Key()
		return r(p)
	}
}

func decode(name string, cfg map[string]any, dst any) error {
	if err := strict.Decode(cfg, dst, "type"); err != nil {
		return fmt.Errorf("item %s: %w", name, err)
	}
	return nil
}

func checkPositions(name string, ps ...Position) error {
	for _, p := range ps {
		if !p.valid() {
			return fmt.Errorf("item %s: unknown position %q", name, p)
		}
	}
	return nil
}

// place applies the common item props to the rendered root.
func place(e element.Element, p Props) element.Element {
	return e.At(p.X, p.Y).WithID(p.ID)
}
