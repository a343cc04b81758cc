// Package element defines the immutable drawing tree that every infographic
// is composed into.
//
// # Overview
//
// An [Element] is a value describing one drawable node: a group, a shape, a
// text box, or a resource definition such as a gradient. Structures and item
// renderers build trees of elements bottom-up; nothing mutates an element
// after construction. Methods such as [Element.At], [Element.WithSize] and
// [Element.WithAttr] return modified copies.
//
// # Measurement
//
// [Measure] computes the [Bounds] of any subtree before it is placed, which
// is how layouts and structures size their slots:
//
//	card := element.Group(icon, label).At(40, 0)
//	b := element.Measure(card) // {X: 40, Y: 0, Width: ..., Height: ...}
//
// Sized elements report their own box. Unsized groups report the union of
// their children shifted by the group offset. Definitions never take space.
//
// # Text Metrics
//
// Unsized text is measured through a [TextMeasurer]. [DefaultMeasurer] uses
// the embedded Go fonts via golang.org/x/image. [HeuristicMeasurer] is a
// deterministic approximation (0.6em per narrow rune, twice that for East
// Asian wide runes) for callers that want results independent of font data.
// Neither returns errors: text that cannot be measured exactly is estimated.
package element
