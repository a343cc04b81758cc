// Package pkg provides the core libraries for declarative infographics.
//
// # Overview
//
// An infographic is described by a spec: a template or design naming a
// structure, a title and item renderers, the data to draw and a theme. The
// pkg directory is organized into four main areas:
//
//  1. [options] - Spec loading and resolution against the component registries
//  2. [design] - Components, item renderers and structures
//  3. [render] - Output formats (SVG, PNG, PDF, JSON scene tree, DOT outline)
//  4. [pipeline] - Orchestration (parse → compose → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	spec file (JSON, YAML, TOML)
//	         ↓
//	    [options] package (decode, resolve template and theme)
//	         ↓
//	    [design/structures] package (arrange items with [layout/flex])
//	         ↓
//	    [element] tree
//	         ↓
//	    [render] packages (SVG, PNG, PDF, JSON, DOT)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/infographic/pkg/options"
//	    "github.com/matzehuels/infographic/pkg/render/svg"
//	)
//
//	spec, _ := options.Load("roadmap.yaml")
//	p, _ := options.Parse(spec)
//	doc := svg.Render(p.Compose(), svg.WithMeasurer(p.Measurer))
//
// # Main Packages
//
// ## Model
//
// [data] - The content of an infographic: title, description and an item
// list or tree.
//
// [element] - The element tree produced by composition, with bounds and text
// measurement.
//
// [theme] - Built-in themes and palette resolution.
//
// ## Composition
//
// [layout/flex] - Flexbox-style arrangement of children in a row or column.
//
// [layout/tree] - Top-down tree placement for hierarchies.
//
// [design/structures] - list-row, hierarchy-tree and sequence-cylinders-3d.
//
// [design/items] - The simple and pill-badge item renderers.
//
// ## Infrastructure
//
// [pipeline] - The parse → compose → render pipeline used by the CLI and the
// HTTP server. Ensures consistent behavior across entry points.
//
// [cache] - Artifact caches: file (CLI), Redis (server) and null.
//
// [gallery] - Saved specs: memory, file and MongoDB stores.
//
// [server] - HTTP API for rendering and the gallery.
//
// [observability] - Hooks for logging and metrics.
//
// [errors] - Coded errors shared across packages.
//
// [options]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/options
// [design]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/design
// [design/structures]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/design/structures
// [design/items]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/design/items
// [render]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/pipeline
// [layout/flex]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/layout/flex
// [layout/tree]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/layout/tree
// [element]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/element
// [data]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/data
// [theme]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/theme
// [cache]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/cache
// [gallery]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/gallery
// [server]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/infographic/pkg/errors
package pkg
