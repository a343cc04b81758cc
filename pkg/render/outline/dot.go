package outline

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/infographic/pkg/data"
	"github.com/matzehuels/infographic/pkg/errors"
	"github.com/matzehuels/infographic/pkg/theme"
)

// Options configures outline rendering.
type Options struct {
	// Detailed adds descriptions and values to node labels.
	// When false, only the label is shown.
	Detailed bool
	// Theme colors the nodes. Its palette is resolved per top-level item,
	// as in the infographic itself.
	Theme theme.Config
}

// ToDOT converts the item hierarchy of d to Graphviz DOT. Items are
// normalized to a single root the way the hierarchy tree structure does it,
// and nodes are named by their index path ("0", "0-1", ...).
func ToDOT(d data.Data, opts Options) string {
	th := opts.Theme.WithDefaults()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", th.Background())
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if d.Title != "" {
		fontColor := theme.Generate(th.Background(), th.Background()).ColorText
		fmt.Fprintf(&buf, "  labelloc=t;\n  label=%q;\n  fontcolor=%q;\n", d.Title, fontColor)
	}
	buf.WriteString("\n")

	root, ok := d.Root()
	if !ok {
		buf.WriteString("}\n")
		return buf.String()
	}

	var edges []string
	var walk func(it data.Item, ix data.Indexes)
	walk = func(it data.Item, ix data.Indexes) {
		fmt.Fprintf(&buf, "  %q [%s];\n", ix.Key(), strings.Join(fmtAttrs(it, ix, th, opts.Detailed), ", "))
		for i, c := range it.Children {
			cix := ix.Append(i)
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", ix.Key(), cix.Key()))
			walk(c, cix)
		}
	}
	walk(root, data.Indexes{0})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(it data.Item, detailed bool) string {
	if !detailed {
		return it.Label
	}
	parts := []string{it.Label}
	if it.Desc != "" {
		parts = append(parts, it.Desc)
	}
	if it.Value != nil {
		parts = append(parts, "value: "+strconv.FormatFloat(*it.Value, 'g', -1, 64))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(it data.Item, ix data.Indexes, th theme.Config, detailed bool) []string {
	c := th.ItemColors(ix)
	return []string{
		fmt.Sprintf("label=%q", fmtLabel(it, detailed)),
		fmt.Sprintf("color=%q", c.ColorPrimary),
		fmt.Sprintf("fillcolor=%q", c.ColorPrimaryBg),
		fmt.Sprintf("fontcolor=%q", c.ColorText),
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// render.ToPDF or render.ToPNG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render outline")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root tag (sized in points) with
// one sized in pixels so the outline scales like the other renderers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
