package items

import (
	"github.com/matzehuels/infographic/pkg/design/components"
	"github.com/matzehuels/infographic/pkg/element"
)

// PillBadgeConfig configures the "pill-badge" item: a rounded badge holding
// the label, with the description underneath.
type PillBadgeConfig struct {
	Width      float64  `json:"width"`
	PillWidth  float64  `json:"pillWidth"`
	PillHeight float64  `json:"pillHeight"`
	Gap        float64  `json:"gap"`
	PositionH  Position `json:"positionH,omitempty"`
}

// DefaultPillBadge is the configuration used when a design names
// "pill-badge" without options.
var DefaultPillBadge = PillBadgeConfig{Width: 300, PillWidth: 120, PillHeight: 36, Gap: 16}

const pillSheenID = "linear-gradient-white-top-bottom"

func buildPillBadge(raw map[string]any) (Renderer, error) {
	cfg := DefaultPillBadge
	if err := decode("pill-badge", raw, &cfg); err != nil {
		return nil, err
	}
	if err := checkPositions("pill-badge", cfg.PositionH); err != nil {
		return nil, err
	}
	return PillBadge(cfg), nil
}

// PillBadge returns the pill badge item renderer.
func PillBadge(cfg PillBadgeConfig) Renderer {
	return func(p Props) element.Element {
		if cfg.PositionH != "" {
			p.PositionH = cfg.PositionH
		}
		return pillBadge(cfg, p)
	}
}

func pillBadge(cfg PillBadgeConfig, p Props) element.Element {
	var pillX float64
	align := element.AlignLeft
	switch p.PositionH {
	case Center:
		pillX = (cfg.Width - cfg.PillWidth) / 2
		align = element.AlignCenter
	case Flipped:
		pillX = cfg.Width - cfg.PillWidth
		align = element.AlignRight
	}

	colors := p.Theme
	shadowID := components.SafeID("drop-shadow-" + colors.ColorPrimary)
	radius := element.FormatFloat(cfg.PillHeight / 2)
	opacity := "0.7"
	if colors.IsDarkMode {
		opacity = "0.4"
	}

	pill := element.Rect(pillX, 0, cfg.PillWidth, cfg.PillHeight, map[string]string{
		"fill":   colors.ColorPrimaryBg,
		"stroke": colors.ColorPrimary,
		"rx":     radius,
		"ry":     radius,
		"filter": "url(#" + shadowID + ")",
	})
	sheen := element.Rect(pillX, 0, cfg.PillWidth, cfg.PillHeight, map[string]string{
		"fill":    "url(#" + pillSheenID + ")",
		"opacity": opacity,
		"rx":      radius,
		"ry":      radius,
	})

	label := components.ItemLabel(p.Indexes, p.Datum.Label).
		At(pillX, 0).
		WithSize(cfg.PillWidth, cfg.PillHeight).
		WithAttr("fill", colors.ColorText).
		WithText(func(t *element.Text) {
			t.AlignH = element.AlignCenter
			t.AlignV = element.AlignMiddle
			t.FontSize = 14
			t.FontWeight = "500"
		})

	desc := element.None()
	if p.Datum.Desc != "" {
		desc = components.ItemDesc(p.Indexes, p.Datum.Desc).
			At(0, cfg.PillHeight+cfg.Gap).
			WithSize(cfg.Width, 40).
			WithAttr("fill", colors.ColorText).
			WithText(func(t *element.Text) {
				t.AlignH = align
				t.FontSize = 14
				t.LineNumber = 2
				t.WordWrap = true
			})
	}

	return place(element.Group(
		element.Defs(
			components.DropShadow(shadowID, colors.ColorPrimary, 0.8),
			components.LinearGradient(pillSheenID, "#fff", "#ffffff33", components.TopBottom),
		),
		pill,
		sheen,
		label,
		desc,
	), p)
}
