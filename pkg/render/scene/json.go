package scene

import (
	"encoding/json"

	"github.com/matzehuels/infographic/pkg/element"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	measurer   element.TextMeasurer
	background string
}

// WithJSONMeasurer sets the text measurer used for the bounds of text nodes.
func WithJSONMeasurer(m element.TextMeasurer) JSONOption {
	return func(r *jsonRenderer) { r.measurer = m }
}

// WithJSONBackground records the canvas color.
func WithJSONBackground(color string) JSONOption {
	return func(r *jsonRenderer) { r.background = color }
}

type jsonOutput struct {
	Bounds     jsonBounds `json:"bounds"`
	Background string     `json:"background,omitempty"`
	Root       jsonNode   `json:"root"`
}

type jsonBounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonNode struct {
	Kind     string            `json:"kind"`
	ID       string            `json:"id,omitempty"`
	X        float64           `json:"x,omitempty"`
	Y        float64           `json:"y,omitempty"`
	Width    *float64          `json:"width,omitempty"`
	Height   *float64          `json:"height,omitempty"`
	Geometry map[string]any    `json:"geometry,omitempty"`
	Text     *jsonText         `json:"text,omitempty"`
	Bounds   *jsonBounds       `json:"bounds,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []jsonNode        `json:"children,omitempty"`
}

type jsonText struct {
	Content    string   `json:"content"`
	Lines      []string `json:"lines"`
	FontSize   float64  `json:"font_size"`
	FontWeight string   `json:"font_weight,omitempty"`
	FontFamily string   `json:"font_family,omitempty"`
	LineHeight float64  `json:"line_height"`
	AlignH     string   `json:"align_horizontal"`
	AlignV     string   `json:"align_vertical"`
	Background string   `json:"background,omitempty"`
}

// RenderJSON exports a composed element tree as a pretty-printed JSON
// document. Every drawable node carries its measured bounds in its parent's
// coordinate space, and text nodes carry their wrapped lines, so external
// tools can redraw the infographic without a text measurer of their own.
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify root and is safe to call concurrently.
func RenderJSON(root element.Element, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{measurer: element.DefaultMeasurer()}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Bounds:     toBounds(element.Extent(root, r.measurer)),
		Background: r.background,
		Root:       r.node(root),
	}
	return json.MarshalIndent(out, "", "  ")
}

func (r jsonRenderer) node(e element.Element) jsonNode {
	n := jsonNode{
		Kind:  string(e.Kind),
		ID:    e.ID,
		X:     e.X,
		Y:     e.Y,
		Attrs: e.Attrs,
	}
	if v, ok := e.Width.Get(); ok {
		n.Width = &v
	}
	if v, ok := e.Height.Get(); ok {
		n.Height = &v
	}

	switch e.Kind {
	case element.KindEllipse, element.KindCircle:
		n.Geometry = map[string]any{"cx": e.Ellipse.CX, "cy": e.Ellipse.CY, "rx": e.Ellipse.RX, "ry": e.Ellipse.RY}
	case element.KindLine:
		n.Geometry = map[string]any{"x1": e.Segment.X1, "y1": e.Segment.Y1, "x2": e.Segment.X2, "y2": e.Segment.Y2}
	case element.KindPath:
		n.Geometry = map[string]any{"d": e.Path}
	case element.KindText:
		if e.Text != nil {
			t := *e.Text
			n.Text = &jsonText{
				Content:    t.Content,
				Lines:      element.TextLines(t, e.Width.Or(0), r.measurer),
				FontSize:   t.FontSize,
				FontWeight: t.FontWeight,
				FontFamily: t.FontFamily,
				LineHeight: t.LineHeight,
				AlignH:     t.AlignH,
				AlignV:     t.AlignV,
				Background: t.BackgroundColor,
			}
		}
	}

	if !e.Kind.IsDefinition() {
		b := toBounds(element.MeasureWith(e, r.measurer))
		n.Bounds = &b
	}
	for _, c := range e.Children {
		n.Children = append(n.Children, r.node(c))
	}
	return n
}

func toBounds(b element.Bounds) jsonBounds {
	return jsonBounds{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}
