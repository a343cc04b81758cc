package element

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Bounds is the axis-aligned box an element occupies.
type Bounds struct {
	X, Y, Width, Height float64
}

// Right returns X + Width.
func (b Bounds) Right() float64 { return b.X + b.Width }

// Bottom returns Y + Height.
func (b Bounds) Bottom() float64 { return b.Y + b.Height }

// CenterX returns the horizontal midpoint.
func (b Bounds) CenterX() float64 { return b.X + b.Width/2 }

// CenterY returns the vertical midpoint.
func (b Bounds) CenterY() float64 { return b.Y + b.Height/2 }

// Translate returns b moved by (dx, dy).
func (b Bounds) Translate(dx, dy float64) Bounds {
	b.X += dx
	b.Y += dy
	return b
}

// Union returns the smallest box containing every b. The union of nothing is
// the zero Bounds.
func Union(bs ...Bounds) Bounds {
	if len(bs) == 0 {
		return Bounds{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, b := range bs {
		minX = math.Min(minX, b.X)
		minY = math.Min(minY, b.Y)
		maxX = math.Max(maxX, b.Right())
		maxY = math.Max(maxY, b.Bottom())
	}
	return Bounds{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Measure returns the bounds of e using the default text measurer.
func Measure(e Element) Bounds {
	return MeasureWith(e, DefaultMeasurer())
}

// MeasureAll returns the union of the bounds of es.
func MeasureAll(es []Element, m TextMeasurer) Bounds {
	bs, _ := childBounds(es, m)
	return Union(bs...)
}

// MeasureWith returns the bounds of e in its parent's coordinate space.
//
// Elements with explicit Width and Height report them directly. Unsized
// groups report the union of their children translated by the group offset,
// or a zero-size box at the offset when empty. Path bounds are the hull of
// the command end points shifted by the path's X/Y offset; arc bulges and
// curve control points are ignored, so curved paths may extend slightly
// beyond the reported box. Unsized text is anchored by its text-anchor and
// dominant-baseline attributes. Definitions (defs, gradients, filters)
// measure as zero.
func MeasureWith(e Element, m TextMeasurer) Bounds {
	if m == nil {
		m = HeuristicMeasurer{}
	}
	if e.Kind.IsDefinition() || e.IsNone() {
		return Bounds{}
	}
	w, wok := e.Width.Get()
	h, hok := e.Height.Get()
	if wok && hok && e.Kind != KindEllipse && e.Kind != KindCircle && e.Kind != KindLine && e.Kind != KindPath {
		return Bounds{X: e.X, Y: e.Y, Width: w, Height: h}
	}

	switch e.Kind {
	case KindGroup:
		return ContentBoundsWith(e, m).Translate(e.X, e.Y)
	case KindEllipse, KindCircle:
		el := e.Ellipse
		return Bounds{X: el.CX - el.RX, Y: el.CY - el.RY, Width: 2 * el.RX, Height: 2 * el.RY}
	case KindLine:
		s := e.Segment
		return hull([]point{{s.X1, s.Y1}, {s.X2, s.Y2}})
	case KindPath:
		return hull(pathPoints(e.Path)).Translate(e.X, e.Y)
	case KindText:
		var t Text
		if e.Text != nil {
			t = *e.Text
		}
		tw, th := MeasureText(t, e.Width.Or(0), m)
		b := Bounds{X: e.X, Y: e.Y, Width: e.Width.Or(tw), Height: e.Height.Or(th)}
		switch e.Attr("text-anchor") {
		case "middle":
			b.X -= b.Width / 2
		case "end":
			b.X -= b.Width
		}
		if e.Attr("dominant-baseline") == "middle" {
			b.Y -= b.Height / 2
		}
		return b
	}
	return Bounds{X: e.X, Y: e.Y, Width: e.Width.Or(0), Height: e.Height.Or(0)}
}

// ContentBounds returns the union of e's children in e's own coordinate
// space, ignoring e's explicit size and offset.
func ContentBounds(e Element) Bounds {
	return ContentBoundsWith(e, DefaultMeasurer())
}

// ContentBoundsWith is ContentBounds with an explicit measurer.
func ContentBoundsWith(e Element, m TextMeasurer) Bounds {
	bs, ok := childBounds(e.Children, m)
	if !ok {
		return Bounds{}
	}
	return Union(bs...)
}

// Extent returns the area e actually paints in its parent's coordinate
// space. Unlike MeasureWith it looks through the explicit size of groups, so
// content drawn outside a group's declared box is still covered.
func Extent(e Element, m TextMeasurer) Bounds {
	if e.Kind != KindGroup {
		return MeasureWith(e, m)
	}
	bs := make([]Bounds, 0, len(e.Children))
	for _, c := range e.Children {
		if c.IsNone() || c.Kind.IsDefinition() {
			continue
		}
		bs = append(bs, Extent(c, m))
	}
	if len(bs) == 0 {
		return Bounds{X: e.X, Y: e.Y}
	}
	return Union(bs...).Translate(e.X, e.Y)
}

func childBounds(es []Element, m TextMeasurer) ([]Bounds, bool) {
	bs := make([]Bounds, 0, len(es))
	for _, c := range es {
		if c.IsNone() || c.Kind.IsDefinition() {
			continue
		}
		bs = append(bs, MeasureWith(c, m))
	}
	return bs, len(bs) > 0
}

type point struct{ x, y float64 }

func hull(pts []point) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	minX, minY := pts[0].x, pts[0].y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.x)
		minY = math.Min(minY, p.y)
		maxX = math.Max(maxX, p.x)
		maxY = math.Max(maxY, p.y)
	}
	return Bounds{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

var pathArity = map[byte]int{'M': 2, 'L': 2, 'T': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'A': 7, 'Z': 0}

// pathPoints returns the absolute end point of every segment in SVG path
// data. Relative commands are resolved against the current point.
func pathPoints(d string) []point {
	var (
		pts    []point
		cx, cy float64
		sx, sy float64
		cmd    byte
		nums   []float64
	)
	flush := func() {
		if cmd == 0 {
			return
		}
		rel := cmd >= 'a' && cmd <= 'z'
		up := cmd &^ 0x20
		arity := pathArity[up]
		if up == 'Z' {
			cx, cy = sx, sy
			pts = append(pts, point{cx, cy})
			return
		}
		for i := 0; arity > 0 && i+arity <= len(nums); i += arity {
			args := nums[i : i+arity]
			x, y := cx, cy
			switch up {
			case 'H':
				x = args[0]
				if rel {
					x += cx
				}
			case 'V':
				y = args[0]
				if rel {
					y += cy
				}
			default:
				x, y = args[arity-2], args[arity-1]
				if rel {
					x += cx
					y += cy
				}
			}
			cx, cy = x, y
			if up == 'M' && i == 0 {
				sx, sy = x, y
			}
			pts = append(pts, point{x, y})
		}
	}
	for _, tok := range pathTokens(d) {
		if len(tok) == 1 && unicode.IsLetter(rune(tok[0])) {
			flush()
			cmd, nums = tok[0], nums[:0]
			continue
		}
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			nums = append(nums, v)
		}
	}
	flush()
	return pts
}

// pathTokens splits path data into command letters and numbers. It handles
// the compact forms "10-5" and ".5.5".
func pathTokens(d string) []string {
	var (
		toks []string
		cur  strings.Builder
		dot  bool
	)
	emit := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
		dot = false
	}
	prev := rune(0)
	for _, r := range d {
		switch {
		case r == 'e' || r == 'E':
			cur.WriteRune(r)
		case unicode.IsLetter(r):
			emit()
			toks = append(toks, string(r))
		case r == '-' || r == '+':
			if prev != 'e' && prev != 'E' {
				emit()
			}
			cur.WriteRune(r)
		case r == '.':
			if dot {
				emit()
			}
			dot = true
			cur.WriteRune(r)
		case unicode.IsDigit(r):
			cur.WriteRune(r)
		default:
			emit()
		}
		prev = r
	}
	emit()
	return toks
}
