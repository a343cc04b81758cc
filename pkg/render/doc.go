// Package render turns composed infographics into output files.
//
// # Overview
//
//   - [svg]: element tree to SVG document
//   - [outline]: the item hierarchy as a Graphviz diagram
//   - [ToPDF] and [ToPNG]: SVG conversion through rsvg-convert
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). [Available] reports whether the tool is installed.
//
//	doc := svg.Render(root, svg.WithBackground("#ffffff"))
//	pdf, err := render.ToPDF(ctx, doc)
//	png, err := render.ToPNG(ctx, doc, 2.0) // 2x scale
//
// A missing tool is reported with code UNSUPPORTED.
//
// [svg]: github.com/matzehuels/infographic/pkg/render/svg
// [outline]: github.com/matzehuels/infographic/pkg/render/outline
package render
