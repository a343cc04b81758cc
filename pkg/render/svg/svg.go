package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/infographic/pkg/element"
	"github.com/matzehuels/infographic/pkg/fonts"
)

// baselineShift places a baseline this many ems below the middle of its
// line box, which centers Latin capitals and lowercase text visually.
const baselineShift = 0.35

// Option configures Render.
type Option func(*renderer)

type renderer struct {
	background string
	padding    [4]float64 // top, right, bottom, left
	measurer   element.TextMeasurer
	width      float64
	height     float64
	embedFonts bool
	defs       []element.Element
	defIDs     map[string]bool
}

// WithBackground fills the canvas with color.
func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }

// WithPadding adds space around the content, CSS order.
func WithPadding(top, right, bottom, left float64) Option {
	return func(r *renderer) { r.padding = [4]float64{top, right, bottom, left} }
}

// WithMeasurer sets the text measurer used to lay out text. It must be the
// one the tree was composed with, or text boxes will not line up.
func WithMeasurer(m element.TextMeasurer) Option { return func(r *renderer) { r.measurer = m } }

// WithSize fixes the width and height attributes of the document. The
// viewBox still covers the content, scaled to fit.
func WithSize(w, h float64) Option {
	return func(r *renderer) { r.width, r.height = w, h }
}

// WithEmbeddedFonts embeds the measurement faces as @font-face rules and
// makes them the document's default family.
func WithEmbeddedFonts() Option { return func(r *renderer) { r.embedFonts = true } }

// Render serializes root into a standalone SVG document. Output is
// deterministic: attributes are written in a fixed order and definitions
// keep their first-seen order.
func Render(root element.Element, opts ...Option) []byte {
	r := &renderer{measurer: element.DefaultMeasurer(), defIDs: map[string]bool{}}
	for _, opt := range opts {
		opt(r)
	}
	r.collectDefs(root)

	ext := element.Extent(root, r.measurer)
	vb := element.Bounds{
		X:      ext.X - r.padding[3],
		Y:      ext.Y - r.padding[0],
		Width:  ext.Width + r.padding[1] + r.padding[3],
		Height: ext.Height + r.padding[0] + r.padding[2],
	}
	w, h := vb.Width, vb.Height
	if r.width > 0 && r.height > 0 {
		w, h = r.width, r.height
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s"`,
		f(vb.X), f(vb.Y), f(vb.Width), f(vb.Height), f(w), f(h))
	if r.embedFonts {
		fmt.Fprintf(&buf, ` font-family="%s"`, escape(fonts.FallbackFontFamily))
	}
	buf.WriteString(">\n")

	if len(r.defs) > 0 || r.embedFonts {
		buf.WriteString("  <defs>\n")
		if r.embedFonts {
			buf.WriteString("    <style><![CDATA[" + fonts.FaceCSS() + "]]></style>\n")
		}
		for _, d := range r.defs {
			r.writeGeneric(&buf, d, 2)
		}
		buf.WriteString("  </defs>\n")
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			f(vb.X), f(vb.Y), f(vb.Width), f(vb.Height), escape(r.background))
	}
	r.write(&buf, root, 1)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// collectDefs hoists every definition in the tree. Definitions sharing an
// ID are emitted once.
func (r *renderer) collectDefs(e element.Element) {
	switch e.Kind {
	case element.KindDefs:
		for _, c := range e.Children {
			r.addDef(c)
		}
		return
	case element.KindLinearGradient, element.KindFilter:
		r.addDef(e)
		return
	}
	for _, c := range e.Children {
		r.collectDefs(c)
	}
}

func (r *renderer) addDef(e element.Element) {
	if e.IsNone() {
		return
	}
	if e.ID != "" {
		if r.defIDs[e.ID] {
			return
		}
		r.defIDs[e.ID] = true
	}
	r.defs = append(r.defs, e)
}

type attr struct{ name, value string }

func (r *renderer) write(buf *bytes.Buffer, e element.Element, depth int) {
	switch e.Kind {
	case "", element.KindDefs, element.KindLinearGradient, element.KindFilter, element.KindStop, element.KindFeDropShadow:
		return
	case element.KindGroup:
		var geo []attr
		if e.X != 0 || e.Y != 0 {
			geo = append(geo, attr{"transform", "translate(" + f(e.X) + "," + f(e.Y) + ")"})
		}
		if len(e.Children) == 0 {
			open(buf, "g", e, geo, depth, true)
			return
		}
		open(buf, "g", e, geo, depth, false)
		for _, c := range e.Children {
			r.write(buf, c, depth+1)
		}
		closeTag(buf, "g", depth)
	case element.KindRect:
		open(buf, "rect", e, []attr{
			{"x", f(e.X)}, {"y", f(e.Y)},
			{"width", f(e.Width.Or(0))}, {"height", f(e.Height.Or(0))},
		}, depth, true)
	case element.KindEllipse:
		el := e.Ellipse
		open(buf, "ellipse", e, []attr{{"cx", f(el.CX)}, {"cy", f(el.CY)}, {"rx", f(el.RX)}, {"ry", f(el.RY)}}, depth, true)
	case element.KindCircle:
		el := e.Ellipse
		open(buf, "circle", e, []attr{{"cx", f(el.CX)}, {"cy", f(el.CY)}, {"r", f(el.RX)}}, depth, true)
	case element.KindLine:
		s := e.Segment
		open(buf, "line", e, []attr{{"x1", f(s.X1)}, {"y1", f(s.Y1)}, {"x2", f(s.X2)}, {"y2", f(s.Y2)}}, depth, true)
	case element.KindPath:
		geo := []attr{{"d", e.Path}}
		if e.X != 0 || e.Y != 0 {
			geo = append(geo, attr{"transform", "translate(" + f(e.X) + "," + f(e.Y) + ")"})
		}
		open(buf, "path", e, geo, depth, true)
	case element.KindText:
		r.writeText(buf, e, depth)
	default:
		r.writeGeneric(buf, e, depth)
	}
}

// writeText lays the text out in its measured box: one tspan per wrapped
// line, anchored by the horizontal alignment and stacked from the vertical
// one. A background, when set, fills the whole box.
func (r *renderer) writeText(buf *bytes.Buffer, e element.Element, depth int) {
	if e.Text == nil {
		return
	}
	t := *e.Text
	b := element.MeasureWith(e, r.measurer)
	lines := element.TextLines(t, e.Width.Or(0), r.measurer)

	if t.BackgroundColor != "" {
		bg := []attr{
			{"x", f(b.X)}, {"y", f(b.Y)}, {"width", f(b.Width)}, {"height", f(b.Height)},
			{"fill", t.BackgroundColor},
		}
		if t.BackgroundOpacity > 0 {
			bg = append(bg, attr{"fill-opacity", f(t.BackgroundOpacity)})
		}
		if t.BackgroundRadius > 0 {
			bg = append(bg, attr{"rx", f(t.BackgroundRadius)})
		}
		indent(buf, depth)
		buf.WriteString("<rect")
		writeAttrs(buf, bg)
		buf.WriteString("/>\n")
	}

	x, anchor := b.X, "start"
	switch t.AlignH {
	case element.AlignCenter, element.AlignMiddle:
		x, anchor = b.X+b.Width/2, "middle"
	case element.AlignRight:
		x, anchor = b.X+b.Width, "end"
	}

	pitch := t.LinePitch()
	total := float64(len(lines)) * pitch
	top := b.Y
	switch t.AlignV {
	case element.AlignMiddle, element.AlignCenter:
		top = b.Y + (b.Height-total)/2
	case element.AlignBottom:
		top = b.Y + b.Height - total
	}

	geo := []attr{{"font-size", f(t.FontSize)}}
	if t.FontWeight != "" {
		geo = append(geo, attr{"font-weight", t.FontWeight})
	}
	if t.FontFamily != "" {
		geo = append(geo, attr{"font-family", element.QuoteFontFamily(t.FontFamily)})
	}
	geo = append(geo, attr{"text-anchor", anchor})

	stripped := e
	stripped.Attrs = maps.Clone(e.Attrs)
	delete(stripped.Attrs, "text-anchor")
	delete(stripped.Attrs, "dominant-baseline")

	open(buf, "text", stripped, geo, depth, false)
	for i, line := range lines {
		y := top + float64(i)*pitch + pitch/2 + t.FontSize*baselineShift
		indent(buf, depth+1)
		fmt.Fprintf(buf, `<tspan x="%s" y="%s">%s</tspan>`+"\n", f(x), f(y), escape(line))
	}
	closeTag(buf, "text", depth)
}

// writeGeneric writes definitions and any other kind as a plain tag named
// after the kind.
func (r *renderer) writeGeneric(buf *bytes.Buffer, e element.Element, depth int) {
	tag := string(e.Kind)
	if len(e.Children) == 0 {
		open(buf, tag, e, nil, depth, true)
		return
	}
	open(buf, tag, e, nil, depth, false)
	for _, c := range e.Children {
		r.writeGeneric(buf, c, depth+1)
	}
	closeTag(buf, tag, depth)
}

// open writes a start tag: the ID, then geo in the given order, then the
// remaining attributes sorted by name. Attributes in geo win over Attrs.
func open(buf *bytes.Buffer, tag string, e element.Element, geo []attr, depth int, selfClose bool) {
	indent(buf, depth)
	buf.WriteString("<" + tag)
	all := make([]attr, 0, 1+len(geo)+len(e.Attrs))
	if e.ID != "" {
		all = append(all, attr{"id", e.ID})
	}
	all = append(all, geo...)
	taken := make(map[string]bool, len(geo))
	for _, a := range geo {
		taken[a.name] = true
	}
	for _, k := range slices.Sorted(maps.Keys(e.Attrs)) {
		if taken[k] || k == "id" {
			continue
		}
		all = append(all, attr{k, e.Attrs[k]})
	}
	writeAttrs(buf, all)
	if selfClose {
		buf.WriteString("/>\n")
	} else {
		buf.WriteString(">\n")
	}
}

func closeTag(buf *bytes.Buffer, tag string, depth int) {
	indent(buf, depth)
	buf.WriteString("</" + tag + ">\n")
}

func writeAttrs(buf *bytes.Buffer, attrs []attr) {
	for _, a := range attrs {
		fmt.Fprintf(buf, ` %s="%s"`, a.name, escape(a.value))
	}
}

func indent(buf *bytes.Buffer, depth int) {
	buf.WriteString(strings.Repeat("  ", depth))
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func f(v float64) string { return element.FormatFloat(v) }
