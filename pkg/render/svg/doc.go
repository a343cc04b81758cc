// Package svg serializes element trees into SVG documents.
//
// # Overview
//
// [Render] walks a composed [element.Element] tree and writes a standalone
// document:
//
//   - every definition (gradients, filters) is hoisted into one top-level
//     <defs> block, emitted once per ID
//   - groups become <g> elements translated by their offset
//   - text is wrapped into <tspan> lines inside its measured box
//   - the viewBox covers everything the tree paints, plus padding
//
// Basic usage:
//
//	doc := svg.Render(root,
//	    svg.WithBackground("#ffffff"),
//	    svg.WithPadding(20, 20, 20, 20),
//	)
//
// Text must be laid out with the same [element.TextMeasurer] the tree was
// composed with; pass it with [WithMeasurer] when it is not the default.
package svg
