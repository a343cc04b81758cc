// Package flex positions a list of elements along a main axis with
// flexible-box semantics: direction, justification, cross-axis alignment,
// wrapping into lines, and distribution of those lines.
//
// [Layout] never fails. Out-of-range numbers (negative gaps, zero-size
// containers) produce degenerate but finite placements, and unrecognized
// enum values behave like their start case. [Config.Validate] is available
// for callers that decode configurations from user input and want strict
// checking.
package flex

import (
	"fmt"
	"math"

	"github.com/matzehuels/infographic/pkg/element"
)

// Direction selects the main axis and its orientation.
type Direction string

// Justify distributes children along the main axis.
type Justify string

// Align positions children on the cross axis within a line.
type Align string

// Wrap selects single- or multi-line packing.
type Wrap string

const (
	Row           Direction = "row"
	RowReverse    Direction = "row-reverse"
	Column        Direction = "column"
	ColumnReverse Direction = "column-reverse"

	Start        Justify = "flex-start"
	End          Justify = "flex-end"
	Center       Justify = "center"
	SpaceBetween Justify = "space-between"

	AlignStart  Align = "flex-start"
	AlignEnd    Align = "flex-end"
	AlignCenter Align = "center"

	NoWrap   Wrap = "nowrap"
	WrapLine Wrap = "wrap"
)

// Config controls one flex container.
//
// Width and Height are the container size. Justification, item alignment
// and wrapping only take effect when both are set; otherwise children are
// packed from the origin and the container takes the size of its content.
type Config struct {
	Direction    Direction
	Justify      Justify
	AlignItems   Align
	AlignContent Justify
	Wrap         Wrap
	Gap          float64

	ID     string
	X, Y   float64
	Width  element.Length
	Height element.Length
	Attrs  map[string]string

	// Measurer sizes text children. Nil uses element.DefaultMeasurer.
	Measurer element.TextMeasurer
}

// Validate rejects enum values outside the recognized sets. Empty values are
// accepted and mean the default.
func (c Config) Validate() error {
	switch c.Direction {
	case "", Row, RowReverse, Column, ColumnReverse:
	default:
		return fmt.Errorf("flex: unknown direction %q", c.Direction)
	}
	for _, j := range []Justify{c.Justify, c.AlignContent} {
		switch j {
		case "", Start, End, Center, SpaceBetween:
		default:
			return fmt.Errorf("flex: unknown justification %q", j)
		}
	}
	switch c.AlignItems {
	case "", AlignStart, AlignEnd, AlignCenter:
	default:
		return fmt.Errorf("flex: unknown alignment %q", c.AlignItems)
	}
	switch c.Wrap {
	case "", NoWrap, WrapLine:
	default:
		return fmt.Errorf("flex: unknown wrap %q", c.Wrap)
	}
	return nil
}

type line struct {
	start, end int // child index range
	cross      float64
}

// Layout positions children and returns them inside a group carrying the
// container's ID, offset and attributes. When the container has no explicit
// size, the group takes the width and height of the union of the placed
// children but keeps cfg.X/Y as its origin. If children paint at negative
// coordinates, MeasureWith on the result is offset from the drawn content;
// use element.Extent for the painted area.
//
// Children that carry an X/Y offset (groups, rects, texts) are moved by
// setting that offset. Shapes positioned by their geometry (ellipses, lines,
// paths) are translated so their bounds start at the computed position.
func Layout(children []element.Element, cfg Config) element.Element {
	container := element.Element{
		Kind:   element.KindGroup,
		ID:     cfg.ID,
		X:      cfg.X,
		Y:      cfg.Y,
		Width:  cfg.Width,
		Height: cfg.Height,
	}.WithAttrs(cfg.Attrs)

	var kids []element.Element
	for _, c := range children {
		if !c.IsNone() {
			kids = append(kids, c)
		}
	}
	if len(kids) == 0 {
		return container
	}

	m := cfg.Measurer
	if m == nil {
		m = element.DefaultMeasurer()
	}

	isRow := cfg.Direction != Column && cfg.Direction != ColumnReverse
	isReverse := cfg.Direction == RowReverse || cfg.Direction == ColumnReverse
	gap := cfg.Gap

	cw, wok := cfg.Width.Get()
	ch, hok := cfg.Height.Get()
	sized := wok && hok
	mainExtent, crossExtent := cw, ch
	if !isRow {
		mainExtent, crossExtent = ch, cw
	}

	bounds := make([]element.Bounds, len(kids))
	for i, c := range kids {
		bounds[i] = element.MeasureWith(c, m)
	}
	mainSize := func(b element.Bounds) float64 {
		if isRow {
			return b.Width
		}
		return b.Height
	}
	crossSize := func(b element.Bounds) float64 {
		if isRow {
			return b.Height
		}
		return b.Width
	}

	lines := breakLines(bounds, mainSize, gap, mainExtent, cfg.Wrap == WrapLine && sized)

	placed := make([]element.Element, len(kids))
	crossPos := 0.0
	for li := range lines {
		ln := &lines[li]
		count := ln.end - ln.start

		total := 0.0
		for i := ln.start; i < ln.end; i++ {
			total += mainSize(bounds[i])
			if i > ln.start {
				total += gap
			}
			ln.cross = math.Max(ln.cross, crossSize(bounds[i]))
		}

		available := mainExtent - total
		mainPos, spacing := 0.0, gap
		if sized {
			switch cfg.Justify {
			case End:
				mainPos = available
			case Center:
				mainPos = available / 2
			case SpaceBetween:
				if count > 1 {
					spacing = available/float64(count-1) + gap
				}
			}
		}

		for i := ln.start; i < ln.end; i++ {
			b := bounds[i]
			cp := crossPos
			if sized {
				switch cfg.AlignItems {
				case AlignEnd:
					cp = crossPos + ln.cross - crossSize(b)
				case AlignCenter:
					cp = crossPos + (ln.cross-crossSize(b))/2
				}
			}

			mp := mainPos
			if isReverse {
				mp = mainExtent - mainPos - mainSize(b)
			}
			x, y := mp, cp
			if !isRow {
				x, y = cp, mp
			}
			placed[i] = moveTo(kids[i], b, x, y)
			mainPos += mainSize(b) + spacing
		}
		crossPos += ln.cross + gap
	}

	if len(lines) > 1 && sized {
		alignLines(placed, lines, cfg.AlignContent, gap, crossExtent, isRow)
	}

	if !sized {
		u := element.MeasureAll(placed, m)
		container.Width = element.Len(cfg.Width.Or(u.Width))
		container.Height = element.Len(cfg.Height.Or(u.Height))
	}
	return container.WithChildren(placed...)
}

// breakLines packs children greedily: a child starts a new line when it
// would push the running main size past extent. Every line holds at least
// one child.
func breakLines(bounds []element.Bounds, size func(element.Bounds) float64, gap, extent float64, wrap bool) []line {
	if !wrap {
		return []line{{start: 0, end: len(bounds)}}
	}
	var (
		lines []line
		cur   = line{}
		run   float64
	)
	for i, b := range bounds {
		s := size(b)
		switch {
		case i == cur.start:
			run = s
		case run+gap+s <= extent:
			run += gap + s
		default:
			cur.end = i
			lines = append(lines, cur)
			cur = line{start: i}
			run = s
		}
	}
	cur.end = len(bounds)
	return append(lines, cur)
}

// alignLines distributes whole lines on the cross axis. Space-between shifts
// line k by k times the spare space divided by the number of gaps.
func alignLines(placed []element.Element, lines []line, how Justify, gap, extent float64, isRow bool) {
	total := float64(len(lines)-1) * gap
	for _, ln := range lines {
		total += ln.cross
	}
	available := extent - total

	shift := func(ln line, d float64) {
		if d == 0 {
			return
		}
		for i := ln.start; i < ln.end; i++ {
			if isRow {
				placed[i] = placed[i].Translate(0, d)
			} else {
				placed[i] = placed[i].Translate(d, 0)
			}
		}
	}

	switch how {
	case End:
		for _, ln := range lines {
			shift(ln, available)
		}
	case Center:
		for _, ln := range lines {
			shift(ln, available/2)
		}
	case SpaceBetween:
		// Shifts are relative to the packed position, so they do not add up
		// across lines and the last line ends at the container edge.
		step := available / float64(len(lines)-1)
		offset := 0.0
		for _, ln := range lines {
			shift(ln, offset)
			offset += step
		}
	}
}

func moveTo(e element.Element, b element.Bounds, x, y float64) element.Element {
	switch e.Kind {
	case element.KindEllipse, element.KindCircle, element.KindLine, element.KindPath:
		return e.Translate(x-b.X, y-b.Y)
	}
	return e.At(x, y)
}
