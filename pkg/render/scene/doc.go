// Package scene exports composed element trees as JSON.
//
// The JSON form is the machine-readable twin of the SVG output: the same
// tree of groups, shapes and texts, with the bounds the layout computed for
// each node and the wrapped lines of every text. It is what the pipeline
// returns for the "json" format.
//
//	doc, err := scene.RenderJSON(root, scene.WithJSONBackground("#ffffff"))
package scene
