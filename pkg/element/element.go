package element

import (
	"maps"
	"slices"
)

// Kind identifies what an Element draws.
type Kind string

// Element kinds understood by the measurement pass and the SVG serializer.
const (
	KindGroup          Kind = "group"
	KindRect           Kind = "rect"
	KindEllipse        Kind = "ellipse"
	KindCircle         Kind = "circle"
	KindLine           Kind = "line"
	KindPath           Kind = "path"
	KindText           Kind = "text"
	KindDefs           Kind = "defs"
	KindLinearGradient Kind = "linearGradient"
	KindStop           Kind = "stop"
	KindFilter         Kind = "filter"
	KindFeDropShadow   Kind = "feDropShadow"
)

// IsDefinition reports whether elements of this kind only define resources
// (gradients, filters) and never occupy space.
func (k Kind) IsDefinition() bool {
	switch k {
	case KindDefs, KindLinearGradient, KindStop, KindFilter, KindFeDropShadow:
		return true
	}
	return false
}

// Length is an optional dimension. The zero value is unset.
type Length struct {
	v  float64
	ok bool
}

// Len returns a set Length.
func Len(v float64) Length { return Length{v: v, ok: true} }

// Get returns the value and whether it is set.
func (l Length) Get() (float64, bool) { return l.v, l.ok }

// IsSet reports whether the length has a value.
func (l Length) IsSet() bool { return l.ok }

// Or returns the value, or def when unset.
func (l Length) Or(def float64) float64 {
	if l.ok {
		return l.v
	}
	return def
}

// Ellipse holds center/radius geometry for ellipses and circles.
type Ellipse struct {
	CX, CY, RX, RY float64
}

// Segment holds line endpoints.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Element is an immutable description of a drawable node.
//
// X and Y place rects, texts and groups; a group translates its children by
// (X, Y) and a path is drawn shifted by (X, Y). Width and Height are
// optional: a group with both set reports that size instead of measuring its
// children.
//
// Elements are values. The With* methods return modified copies and never
// touch the receiver's Attrs or Children.
type Element struct {
	Kind     Kind
	ID       string
	X, Y     float64
	Width    Length
	Height   Length
	Ellipse  Ellipse
	Segment  Segment
	Path     string
	Text     *Text
	Attrs    map[string]string
	Children []Element
}

// At returns a copy positioned at (x, y).
func (e Element) At(x, y float64) Element {
	e.X, e.Y = x, y
	return e
}

// Translate returns a copy moved by (dx, dy).
func (e Element) Translate(dx, dy float64) Element {
	switch e.Kind {
	case KindEllipse, KindCircle:
		e.Ellipse.CX += dx
		e.Ellipse.CY += dy
	case KindLine:
		e.Segment.X1 += dx
		e.Segment.X2 += dx
		e.Segment.Y1 += dy
		e.Segment.Y2 += dy
	default:
		e.X += dx
		e.Y += dy
	}
	return e
}

// WithSize returns a copy with explicit width and height.
func (e Element) WithSize(w, h float64) Element {
	e.Width, e.Height = Len(w), Len(h)
	return e
}

// WithID returns a copy with the given ID.
func (e Element) WithID(id string) Element {
	e.ID = id
	return e
}

// WithAttr returns a copy with attribute name set to value.
func (e Element) WithAttr(name, value string) Element {
	attrs := maps.Clone(e.Attrs)
	if attrs == nil {
		attrs = make(map[string]string, 1)
	}
	attrs[name] = value
	e.Attrs = attrs
	return e
}

// WithAttrs returns a copy with all given attributes merged over existing ones.
func (e Element) WithAttrs(attrs map[string]string) Element {
	if len(attrs) == 0 {
		return e
	}
	merged := maps.Clone(e.Attrs)
	if merged == nil {
		merged = make(map[string]string, len(attrs))
	}
	maps.Copy(merged, attrs)
	e.Attrs = merged
	return e
}

// WithChildren returns a copy whose children are replaced by children.
func (e Element) WithChildren(children ...Element) Element {
	e.Children = slices.Clone(children)
	return e
}

// Attr returns an attribute value, or "" when absent.
func (e Element) Attr(name string) string { return e.Attrs[name] }

// Group builds a group containing children. Nil-kind children (see [None])
// are dropped.
func Group(children ...Element) Element {
	return Element{Kind: KindGroup, Children: compact(children)}
}

// None is a placeholder that group constructors drop. It lets callers write
// optional children inline.
func None() Element { return Element{} }

// IsNone reports whether e is the [None] placeholder.
func (e Element) IsNone() bool { return e.Kind == "" }

// Rect builds a rectangle.
func Rect(x, y, w, h float64, attrs map[string]string) Element {
	return Element{Kind: KindRect, X: x, Y: y, Width: Len(w), Height: Len(h), Attrs: maps.Clone(attrs)}
}

// NewEllipse builds an ellipse.
func NewEllipse(cx, cy, rx, ry float64, attrs map[string]string) Element {
	return Element{Kind: KindEllipse, Ellipse: Ellipse{CX: cx, CY: cy, RX: rx, RY: ry}, Attrs: maps.Clone(attrs)}
}

// Circle builds a circle.
func Circle(cx, cy, r float64, attrs map[string]string) Element {
	return Element{Kind: KindCircle, Ellipse: Ellipse{CX: cx, CY: cy, RX: r, RY: r}, Attrs: maps.Clone(attrs)}
}

// Line builds a straight line.
func Line(x1, y1, x2, y2 float64, attrs map[string]string) Element {
	return Element{Kind: KindLine, Segment: Segment{X1: x1, Y1: y1, X2: x2, Y2: y2}, Attrs: maps.Clone(attrs)}
}

// NewPath builds a path from SVG path data.
func NewPath(d string, attrs map[string]string) Element {
	return Element{Kind: KindPath, Path: d, Attrs: maps.Clone(attrs)}
}

// Defs builds a resource container. Its children are hoisted to the
// document-level defs by the serializer.
func Defs(children ...Element) Element {
	return Element{Kind: KindDefs, Children: compact(children)}
}

// LinearGradient builds a gradient definition. Coordinates are SVG
// percentages such as "0%".
func LinearGradient(id, x1, y1, x2, y2 string, stops ...Element) Element {
	return Element{
		Kind:     KindLinearGradient,
		ID:       id,
		Attrs:    map[string]string{"x1": x1, "y1": y1, "x2": x2, "y2": y2},
		Children: compact(stops),
	}
}

// Stop builds a gradient stop.
func Stop(offset, color string, opacity float64) Element {
	return Element{Kind: KindStop, Attrs: map[string]string{
		"offset":       offset,
		"stop-color":   color,
		"stop-opacity": FormatFloat(opacity),
	}}
}

// Walk calls fn for e and every descendant in document order. Returning
// false from fn skips that element's children.
func Walk(e Element, fn func(Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		Walk(c, fn)
	}
}

func compact(children []Element) []Element {
	out := make([]Element, 0, len(children))
	for _, c := range children {
		if c.IsNone() {
			continue
		}
		out = append(out, c)
	}
	return out
}
