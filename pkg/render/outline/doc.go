// Package outline renders the item hierarchy of an infographic as a
// Graphviz diagram.
//
// # Usage
//
//	dot := outline.ToDOT(d, outline.Options{Detailed: true})
//	svg, err := outline.RenderSVG(ctx, dot)
//
// The outline is a quick structural preview: it shows which items nest
// under which, independent of the chosen structure. Nodes take the item
// colors of the theme in [Options].
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion goes through the parent render package.
package outline
