package items

import (
	"math"

	"github.com/matzehuels/infographic/pkg/design/components"
	"github.com/matzehuels/infographic/pkg/element"
	"github.com/matzehuels/infographic/pkg/layout/flex"
)

// SimpleConfig configures the "simple" item: a label over a description,
// with an optional icon beside or above them.
type SimpleConfig struct {
	Width     float64  `json:"width"`
	Gap       float64  `json:"gap"`
	IconSize  float64  `json:"iconSize"`
	PositionH Position `json:"positionH,omitempty"`
	PositionV Position `json:"positionV,omitempty"`
}

// DefaultSimple is the configuration used when a design names "simple"
// without options.
var DefaultSimple = SimpleConfig{Width: 200, Gap: 4, IconSize: 30}

func buildSimple(raw map[string]any) (Renderer, error) {
	cfg := DefaultSimple
	if err := decode("simple", raw, &cfg); err != nil {
		return nil, err
	}
	if err := checkPositions("simple", cfg.PositionH, cfg.PositionV); err != nil {
		return nil, err
	}
	return Simple(cfg), nil
}

// Simple returns the simple item renderer.
func Simple(cfg SimpleConfig) Renderer {
	return func(p Props) element.Element {
		if cfg.PositionH != "" {
			p.PositionH = cfg.PositionH
		}
		if cfg.PositionV != "" {
			p.PositionV = cfg.PositionV
		}
		return simple(cfg, p)
	}
}

func textAlign(pos Position) string {
	switch pos {
	case "", Normal:
		return element.AlignLeft
	case Flipped:
		return element.AlignRight
	}
	return element.AlignCenter
}

func iconAlign(pos Position) flex.Align {
	switch pos {
	case "", Normal:
		return flex.AlignStart
	case Flipped:
		return flex.AlignEnd
	}
	return flex.AlignCenter
}

func simple(cfg SimpleConfig, p Props) element.Element {
	ix, m := p.Indexes, p.measurer()

	label := func(w float64, h string) element.Element {
		return components.Align(components.ItemLabel(ix, p.Datum.Label).WithSize(w, 26), h, element.AlignMiddle)
	}
	labelH := element.MeasureWith(label(cfg.Width, element.AlignCenter), m).Height
	desc := func(w float64, h, v string) element.Element {
		d := components.ItemDesc(ix, p.Datum.Desc).WithSize(w, 40).At(0, labelH+cfg.Gap)
		return components.Align(d, h, v)
	}
	icon := components.ItemIcon(ix, cfg.IconSize)

	if p.Datum.Icon == "" {
		align := textAlign(p.PositionH)
		return place(element.Group(
			label(cfg.Width, align),
			desc(cfg.Width, align, element.AlignTop),
		), p)
	}

	if p.PositionH == Center {
		var kids []element.Element
		if p.PositionV == Flipped {
			kids = []element.Element{
				element.Group(label(cfg.Width, element.AlignCenter), desc(cfg.Width, element.AlignCenter, element.AlignBottom)),
				icon,
			}
		} else {
			kids = []element.Element{
				icon,
				element.Group(label(cfg.Width, element.AlignCenter), desc(cfg.Width, element.AlignCenter, element.AlignTop)),
			}
		}
		return flex.Layout(kids, flex.Config{
			ID:         p.ID,
			X:          p.X,
			Y:          p.Y,
			Direction:  flex.Column,
			Gap:        cfg.Gap,
			AlignItems: flex.AlignCenter,
			Measurer:   m,
		})
	}

	textW := math.Max(cfg.Width-element.MeasureWith(icon, m).Width-cfg.Gap, 0)
	var kids []element.Element
	if p.PositionH == Flipped {
		kids = []element.Element{
			element.Group(label(textW, element.AlignRight), desc(textW, element.AlignRight, element.AlignTop)),
			icon,
		}
	} else {
		kids = []element.Element{
			icon,
			element.Group(label(textW, element.AlignLeft), desc(textW, element.AlignLeft, element.AlignTop)),
		}
	}
	return flex.Layout(kids, flex.Config{
		ID:         p.ID,
		X:          p.X,
		Y:          p.Y,
		Direction:  flex.Row,
		Gap:        cfg.Gap,
		AlignItems: iconAlign(p.PositionV),
		Measurer:   m,
	})
}
