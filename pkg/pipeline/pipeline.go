// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP server.
//
// A run has three stages:
//
//  1. Parse: resolve the spec's template, design and theme
//  2. Compose: draw the element tree with the resolved structure
//  3. Render: serialize the tree into every requested format
//
// Rendered artifacts are cached by spec hash and render settings, so a
// repeated request for the same infographic skips composition entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Spec:    spec,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/infographic/pkg/cache"
	"github.com/matzehuels/infographic/pkg/errors"
	"github.com/matzehuels/infographic/pkg/options"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultPadding applies on every side when neither the spec nor the
	// options set a padding.
	DefaultPadding = 20.0

	// DefaultScale is the PNG pixel ratio.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	Spec options.Options `json:"spec"`

	Formats []string `json:"formats,omitempty"`
	// Padding overrides the spec's padding when non-zero.
	Padding options.Padding `json:"padding,omitempty"`
	// Background overrides the theme background.
	Background string `json:"background,omitempty"`
	// Scale is the PNG pixel ratio.
	Scale float64 `json:"scale,omitempty"`
	// Detailed adds descriptions and values to outline labels.
	Detailed bool `json:"detailed,omitempty"`
	// EmbedFonts embeds the measurement fonts into SVG-based outputs.
	EmbedFonts bool `json:"embed_fonts,omitempty"`
	// Refresh skips cache reads but still writes fresh artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Parsed is the resolved spec. It is nil when every artifact came from
	// the cache.
	Parsed *options.Parsed

	// SpecHash is the content hash of the spec.
	SpecHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount   int
	Depth       int
	ParseTime   time.Duration
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks which artifacts came from the cache.
type CacheInfo struct {
	Hits      []string // Formats served from cache
	RenderHit bool     // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not be negative")
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// EffectivePadding resolves the canvas padding: the options first, then the
// spec, then DefaultPadding.
func (o *Options) EffectivePadding() options.Padding {
	switch {
	case !o.Padding.IsZero():
		return o.Padding
	case !o.Spec.Padding.IsZero():
		return o.Spec.Padding
	default:
		return options.Uniform(DefaultPadding)
	}
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	p := o.EffectivePadding()
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Padding:    [4]float64{p.Top, p.Right, p.Bottom, p.Left},
		Background: o.Background,
	}
	switch format {
	case FormatSVG, FormatPDF:
		k.EmbedFonts = o.EmbedFonts
	case FormatPNG:
		k.Scale = o.Scale
		k.EmbedFonts = o.EmbedFonts
	case FormatDOT:
		k.Detailed = o.Detailed
	}
	return k
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
