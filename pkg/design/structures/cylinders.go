package structures

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/infographic/pkg/data"
	"github.com/matzehuels/infographic/pkg/design/components"
	"github.com/matzehuels/infographic/pkg/design/items"
	"github.com/matzehuels/infographic/pkg/element"
	"github.com/matzehuels/infographic/pkg/theme"
)

// CylindersConfig configures "sequence-cylinders-3d".
type CylindersConfig struct {
	CylinderRx      float64 `json:"cylinderRx"`
	CylinderRy      float64 `json:"cylinderRy"`
	BaseHeight      float64 `json:"baseHeight"`
	HeightIncrement float64 `json:"heightIncrement"`
	DepthSpacing    float64 `json:"depthSpacing"`
	// ItemVerticalAlign anchors each card to its connector: "top",
	// "center" or "bottom".
	ItemVerticalAlign    string  `json:"itemVerticalAlign"`
	ItemVerticalOffset   float64 `json:"itemVerticalOffset"`
	FirstDecorationWidth float64 `json:"firstDecorationWidth"`
}

// DefaultCylinders is the cylinder configuration without overrides.
var DefaultCylinders = CylindersConfig{
	CylinderRx:           28,
	CylinderRy:           18,
	BaseHeight:           120,
	HeightIncrement:      40,
	DepthSpacing:         60,
	ItemVerticalAlign:    "top",
	ItemVerticalOffset:   -12,
	FirstDecorationWidth: 90,
}

const (
	cylinderBottomMargin = 100
	cylinderTopMargin    = 50
	connectorGap         = 10
	plateThickness       = 6
)

func buildCylinders(raw map[string]any) (Composer, error) {
	cfg := DefaultCylinders
	if err := decode("sequence-cylinders-3d", raw, &cfg); err != nil {
		return nil, err
	}
	switch cfg.ItemVerticalAlign {
	case "top", "center", "bottom":
	default:
		return nil, fmt.Errorf("structure sequence-cylinders-3d: invalid itemVerticalAlign %q", cfg.ItemVerticalAlign)
	}
	return Cylinders(cfg), nil
}

// depthOffset pushes later pairs to the right so the staircase recedes.
func depthOffset(pair int, rx float64) float64 {
	if pair == 0 {
		return 0
	}
	return rx/2 + float64(pair-1)*(rx/2*3)
}

// lateralOffset separates the right cylinder of a pair from the left one.
// The first pair sits closer together.
func lateralOffset(left bool, pair int, rx float64) float64 {
	if left {
		return 0
	}
	gap := rx
	if pair == 0 {
		gap = 2
	}
	return rx*2 + gap
}

// cylinderX is the center of cylinder i relative to the first one.
func cylinderX(i int, rx float64) float64 {
	return lateralOffset(i%2 == 0, i/2, rx) + depthOffset(i/2, rx)
}

type cylinderMetrics struct {
	planeStep float64
	startY    float64
	leftX     float64
	rightX    float64
	areaX     float64
}

func (cfg CylindersConfig) metrics(n int, item element.Bounds) cylinderMetrics {
	rx := cfg.CylinderRx
	mt := cylinderMetrics{planeStep: math.Max(6, cfg.DepthSpacing*0.15)}
	last := cfg.BaseHeight + float64(n-1)*cfg.HeightIncrement
	canvasH := last + float64(n)*mt.planeStep + cylinderBottomMargin + cylinderTopMargin
	mt.startY = canvasH - cylinderBottomMargin

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range n {
		x := cylinderX(i, rx)
		lo = math.Min(lo, x-rx)
		hi = math.Max(hi, x+rx)
	}
	mt.areaX = item.Width + connectorGap + cfg.FirstDecorationWidth + rx
	center := mt.areaX + (lo+hi)/2

	// Right cards mirror the left column around the cylinders' center.
	leftCenter := mt.leftX + item.Width/2
	mt.rightX = center + (center - leftCenter) - item.Width/2
	return mt
}

type cylinder struct {
	x, height, topY, bottomY float64
}

func (cfg CylindersConfig) cylinderAt(i int, mt cylinderMetrics) cylinder {
	c := cylinder{
		x:       mt.areaX + cylinderX(i, cfg.CylinderRx),
		bottomY: mt.startY - float64(i)*mt.planeStep,
		height:  cfg.BaseHeight + float64(i)*cfg.HeightIncrement,
	}
	c.topY = c.bottomY - c.height
	return c
}

// Cylinders draws items as an alternating left/right staircase of shaded
// cylinders growing in height, each linked to its card by a connector, on a
// shared base plate. Later cylinders are drawn first so nearer ones overlap
// them.
func Cylinders(cfg CylindersConfig) Composer {
	return func(p Props) element.Element {
		m := p.measurer()
		list := p.Data.Items
		n := len(list)
		if n == 0 {
			return container(m, p.title())
		}

		item := p.itemAt(0)
		slot := element.MeasureWith(item(items.Props{
			Indexes:   data.Indexes{0},
			Datum:     list[0],
			Data:      p.Data,
			PositionH: items.Center,
		}), m)
		mt := cfg.metrics(n, slot)
		rx, ry := cfg.CylinderRx, cfg.CylinderRy

		type stage struct {
			shapes []element.Element
			card   element.Element
			btns   []element.Element
		}
		stages := make([]stage, n)
		var defs []element.Element
		var cards []element.Bounds

		for i, datum := range list {
			color := theme.PaletteColor(p.Theme.Palette, []int{i})
			if color == "" {
				color = p.colorPrimary()
			}
			defs = append(defs, cylinderGradients(i, color)...)

			c := cfg.cylinderAt(i, mt)
			left := i%2 == 0
			lineY := c.topY + c.height*0.05

			itemX, lineEnd := mt.rightX, mt.rightX-connectorGap
			lineStart := c.x + rx + connectorGap
			posH := items.Normal
			if left {
				itemX, lineEnd = mt.leftX, mt.leftX+slot.Width+connectorGap
				lineStart = c.x - rx - connectorGap
				posH = items.Flipped
			}
			itemY := lineY
			switch cfg.ItemVerticalAlign {
			case "bottom":
				itemY -= slot.Height
			case "center":
				itemY -= slot.Height / 2
			}
			itemY += cfg.ItemVerticalOffset

			shapes := cylinderShapes(i, c, rx, ry)
			shapes = append(shapes, connector(i, lineStart, lineEnd, lineY, color)...)

			ix := data.Indexes{i}
			btnX := itemX + slot.Width/2 - btnBounds.Width/2
			stages[i] = stage{
				shapes: shapes,
				card: item(items.Props{
					Indexes:   ix,
					Datum:     datum,
					Data:      p.Data,
					X:         itemX,
					Y:         itemY,
					PositionH: posH,
				}),
				btns: []element.Element{
					components.BtnRemove(ix.Key(), btnX, itemY+slot.Height+10),
					components.BtnAdd(ix.Key(), btnX, itemY-btnBounds.Height-10),
				},
			}
			cards = append(cards, element.Bounds{X: itemX, Y: itemY, Width: slot.Width, Height: slot.Height})
		}

		area := element.Union(cards...)
		itemEls := []element.Element{element.Defs(defs...), cfg.basePlate(n, mt)}
		var btnEls []element.Element
		for i := n - 1; i >= 0; i-- {
			s := stages[i]
			itemEls = append(itemEls, element.Group(element.Group(s.shapes...), s.card))
			btnEls = append(btnEls, s.btns...)
		}

		next := cfg.cylinderAt(n, mt)
		btnEls = append(btnEls, components.BtnAdd(strconv.Itoa(n), next.x, next.bottomY-100))

		return container(m, p.title(), element.Group(
			components.ItemsGroup(itemEls...),
			components.BtnsGroup(btnEls...),
		).WithSize(area.Width, area.Height))
	}
}

// cylinderGradients returns the body, top, bottom, numeral and glow
// gradients of cylinder i, all derived from its palette color.
func cylinderGradients(i int, color string) []element.Element {
	id := strconv.Itoa(i)
	rgb := theme.RGBString
	lighten := func(amount float64) string { return rgb(theme.Lighten(color, amount)) }
	darken := func(amount float64) string { return rgb(theme.Darken(color, amount)) }
	return []element.Element{
		element.LinearGradient("cylinderGradient"+id, "0%", "0%", "0%", "100%",
			element.Stop("0%", rgb(color), 0.7),
			element.Stop("40%", lighten(5), 0.65),
			element.Stop("70%", lighten(15), 0.6),
			element.Stop("100%", lighten(20), 0.55),
		),
		element.LinearGradient("topGradient"+id, "0%", "0%", "0%", "100%",
			element.Stop("0%", lighten(15), 1),
			element.Stop("100%", "#fafafa", 1),
		),
		element.LinearGradient("bottomGradient"+id, "0%", "0%", "0%", "100%",
			element.Stop("0%", darken(8), 0.75),
			element.Stop("50%", darken(5), 0.7),
			element.Stop("100%", darken(12), 0.65),
		),
		element.LinearGradient("numberGradient"+id, "0%", "0%", "100%", "100%",
			element.Stop("0%", rgb(color), 0.9),
			element.Stop("50%", lighten(5), 0.85),
			element.Stop("100%", lighten(10), 0.8),
		),
		element.LinearGradient("glowGradient"+id, "0%", "100%", "0%", "0%",
			element.Stop("0%", "#FFFFFF", 0.2),
			element.Stop("90%", "#FFFFFF", 0),
		),
	}
}

func cylinderShapes(i int, c cylinder, rx, ry float64) []element.Element {
	id := strconv.Itoa(i)
	x, top, bottom := c.x, c.topY, c.bottomY
	body := fmt.Sprintf("M %s %s A %s %s 0 0 0 %s %s A %s %s 0 0 0 %s %s L %s %s A %s %s 0 0 1 %s %s A %s %s 0 0 1 %s %s Z",
		f(x-rx), f(top),
		f(rx), f(ry), f(x), f(top+ry),
		f(rx), f(ry), f(x+rx), f(top),
		f(x+rx), f(bottom),
		f(rx), f(ry), f(x), f(bottom+ry),
		f(rx), f(ry), f(x-rx), f(bottom),
	)

	numY := top + 2
	skew := fmt.Sprintf("translate(%s, %s) matrix(1, 0, -0.6, 0.6, 0, 0) translate(%s, %s)", f(x), f(numY), f(-x), f(-numY))
	numeral := element.NewText(x, numY, element.Text{
		Content:    strconv.Itoa(i + 1),
		FontFamily: "Arial Black, sans-serif",
		FontSize:   32,
		FontWeight: "900",
	}, map[string]string{
		"fill":              "url(#numberGradient" + id + ")",
		"text-anchor":       "middle",
		"dominant-baseline": "middle",
		"transform":         skew,
	})

	return []element.Element{
		element.NewEllipse(x, bottom, rx, ry, map[string]string{
			"fill":    "url(#bottomGradient" + id + ")",
			"opacity": "0.7",
		}).WithID("cylinder-bottom-" + id),
		element.NewPath(body, map[string]string{
			"fill":   "url(#cylinderGradient" + id + ")",
			"stroke": "none",
		}).WithID("cylinder-body-" + id),
		element.Rect(x-rx, top-ry*3, rx*2, ry*3, map[string]string{
			"fill": "url(#glowGradient" + id + ")",
		}).WithID("cylinder-glow-" + id),
		element.NewEllipse(x, top, rx, ry, map[string]string{
			"fill": "url(#topGradient" + id + ")",
		}).WithID("cylinder-top-" + id),
		numeral.WithID("cylinder-number-" + id),
	}
}

func connector(i int, x1, x2, y float64, color string) []element.Element {
	id := strconv.Itoa(i)
	return []element.Element{
		element.Circle(x1, y, 2, map[string]string{"fill": color}).WithID("decoration-dot-start-" + id),
		element.Line(x1, y, x2, y, map[string]string{
			"stroke":       color,
			"stroke-width": "1",
			"opacity":      "0.8",
		}).WithID("decoration-line-" + id),
		element.Circle(x2, y, 2, map[string]string{"fill": color, "opacity": "0.9"}).WithID("decoration-dot-end-" + id),
	}
}

// basePlate draws the slab under all cylinders: a parallelogram running
// from the first footprint to the last, with a front and a side face.
func (cfg CylindersConfig) basePlate(n int, mt cylinderMetrics) element.Element {
	rx := cfg.CylinderRx
	first, last := cfg.cylinderAt(0, mt), cfg.cylinderAt(n-1, mt)
	margin := 100.0
	if n > 5 {
		margin = float64(n) * 16
	}

	fl, fr := first.x-rx-margin, first.x+rx+margin
	fy := first.bottomY + plateThickness + margin/6
	bl, br := last.x-rx-margin, last.x+rx+margin
	by := last.bottomY + plateThickness - margin/6

	quad := func(x1, y1, x2, y2, x3, y3, x4, y4 float64) string {
		return fmt.Sprintf("M %s %s L %s %s L %s %s L %s %s Z", f(x1), f(y1), f(x2), f(y2), f(x3), f(y3), f(x4), f(y4))
	}
	face := func(id, d, fill, stroke, width, opacity string) element.Element {
		return element.NewPath(d, map[string]string{
			"fill":         "url(#" + fill + ")",
			"stroke":       stroke,
			"stroke-width": width,
			"opacity":      opacity,
		}).WithID(id)
	}

	return element.Group(
		element.Defs(
			element.LinearGradient("basePlateTopGradient", "0%", "0%", "100%", "100%",
				element.Stop("0%", "#fafafa", 1),
				element.Stop("50%", "#ffffff", 0.98),
				element.Stop("100%", "#ececec", 0.95),
			),
			element.LinearGradient("basePlateFrontGradient", "0%", "0%", "0%", "100%",
				element.Stop("0%", "#e0e0e0", 0.95),
				element.Stop("50%", "#d2d2d2", 0.93),
				element.Stop("100%", "#c5c5c5", 0.9),
			),
			element.LinearGradient("basePlateSideGradient", "0%", "0%", "100%", "100%",
				element.Stop("0%", "#b8b8b8", 0.92),
				element.Stop("50%", "#c0c0c0", 0.88),
				element.Stop("100%", "#adadad", 0.85),
			),
		),
		face("base-plate-front", quad(fl, fy, fr, fy, fr, fy+plateThickness, fl, fy+plateThickness),
			"basePlateFrontGradient", "#c5c5c5", "0.3", "0.92"),
		face("base-plate-side", quad(fr, fy, fr, fy+plateThickness, br, by+plateThickness, br, by),
			"basePlateSideGradient", "#aaaaaa", "0.3", "0.88"),
		face("base-plate-top", quad(fl, fy, fr, fy, br, by, bl, by),
			"basePlateTopGradient", "#e5e5e5", "0.5", "0.93"),
	)
}
