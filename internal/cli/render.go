package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/infographic/pkg/options"
	"github.com/matzehuels/infographic/pkg/pipeline"
	"github.com/matzehuels/infographic/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file path (or base path for multiple outputs); "-" for stdout
	formats     []string // output formats: svg, png, pdf, json, dot
	template    string   // template override
	structure   string   // structure override
	item        string   // item override
	theme       string   // theme override
	padding     string   // CSS-style padding override, e.g. "20" or "10,20"
	background  string   // canvas color override
	scale       float64  // PNG pixel ratio
	detailed    bool     // descriptions and values in DOT labels
	embedFonts  bool     // embed the measurement fonts in SVG output
	noCache     bool     // bypass the artifact cache
	refresh     bool     // re-render and overwrite cached artifacts
	stdinFormat string   // spec format when reading from stdin
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale, stdinFormat: options.FormatJSON}

	cmd := &cobra.Command{
		Use:   "render <spec>",
		Short: "Render a spec file to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a spec file (.json, .yaml, .yml or .toml) through the pipeline.

Use "-" to read the spec from stdin. Without --output, files are written next
to the spec with the format as extension.`,
		Example: `  infographic render roadmap.yaml
  infographic render roadmap.yaml -f svg,png --theme dark
  cat spec.json | infographic render - -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.template, "template", "", "use this template as the base design")
	cmd.Flags().StringVar(&opts.structure, "structure", "", "override the structure")
	cmd.Flags().StringVar(&opts.item, "item", "", "override the item renderer")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "theme: light, dark, colorful")
	cmd.Flags().StringVar(&opts.padding, "padding", "", `canvas padding, CSS order ("20", "10,20", "1,2,3,4")`)
	cmd.Flags().StringVar(&opts.background, "background", "", "canvas background color")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel ratio")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include descriptions and values in DOT labels")
	cmd.Flags().BoolVar(&opts.embedFonts, "embed-fonts", false, "embed the fonts text is measured with into the SVG")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().StringVar(&opts.stdinFormat, "stdin-format", opts.stdinFormat, "spec format when reading stdin: json, yaml, toml")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	spec, err := loadSpec(input, opts.stdinFormat)
	if err != nil {
		return err
	}
	applyOverrides(&spec, opts)

	popts := pipeline.Options{
		Spec:       spec,
		Formats:    opts.formats,
		Background: opts.background,
		Scale:      opts.scale,
		Detailed:   opts.detailed,
		EmbedFonts: opts.embedFonts,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
	}
	if opts.padding != "" {
		if popts.Padding, err = parsePadding(opts.padding); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	toStdout := opts.output == "-" || (input == "-" && opts.output == "")
	if toStdout && len(opts.formats) > 1 {
		return fmt.Errorf("cannot write %d formats to stdout", len(opts.formats))
	}

	if needsConverter(opts.formats) && !render.Available() {
		printWarning("rsvg-convert not found; install librsvg to render PNG or PDF")
	}

	prog := newProgress(c.Logger)
	var spin *Spinner
	if !toStdout && needsConverter(opts.formats) && render.Available() && isTerminal(os.Stderr) {
		spin = newSpinnerWithContext(ctx, "Converting with rsvg-convert...")
		spin.Start()
	}
	result, err := runner.Execute(ctx, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", strings.Join(opts.formats, ", ")))

	if toStdout {
		return writeOutput("-", result.Artifacts[opts.formats[0]])
	}

	paths := outputPaths(opts.output, input, opts.formats)
	for _, format := range opts.formats {
		if err := writeFile(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess("Rendered %s", filepath.Base(input))
	for _, format := range opts.formats {
		printFile(paths[format])
	}
	printStats(result.Stats.ItemCount, result.Stats.Depth, result.CacheInfo.RenderHit)
	return nil
}

// applyOverrides layers the command-line design flags over the spec.
func applyOverrides(spec *options.Options, opts renderOpts) {
	if opts.template != "" {
		spec.Template = opts.template
	}
	if opts.structure != "" {
		spec.Design.Structure = options.NewEntry(opts.structure)
	}
	if opts.item != "" {
		spec.Design.Item = options.NewEntry(opts.item)
		spec.Design.Items = nil
	}
	if opts.theme != "" {
		spec.Theme = opts.theme
	}
}

// parsePadding reads CSS-style padding from a comma-separated list.
func parsePadding(s string) (options.Padding, error) {
	var p options.Padding
	if err := json.Unmarshal([]byte("["+s+"]"), &p); err != nil {
		return options.Padding{}, fmt.Errorf("invalid padding %q: %w", s, err)
	}
	return p, nil
}

func needsConverter(formats []string) bool {
	return slices.Contains(formats, pipeline.FormatPNG) || slices.Contains(formats, pipeline.FormatPDF)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its file. A single format with an explicit
// output is written exactly there.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return writeFile(path, data)
}
