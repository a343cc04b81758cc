package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/infographic/pkg/options"
	"github.com/matzehuels/infographic/pkg/pipeline"
	"github.com/matzehuels/infographic/pkg/render/outline"
)

// outlineOpts holds the command-line flags for the outline command.
type outlineOpts struct {
	output      string
	format      string // svg or dot
	detailed    bool
	stdinFormat string
}

// outlineCommand creates the outline command.
func (c *CLI) outlineCommand() *cobra.Command {
	opts := outlineOpts{format: pipeline.FormatSVG, stdinFormat: options.FormatJSON}

	cmd := &cobra.Command{
		Use:   "outline <spec>",
		Short: "Draw the item hierarchy of a spec with Graphviz",
		Long: `Draw the items of a spec as a node-link diagram, ignoring its design.

Useful for checking the shape of hierarchical data before choosing a
structure. The output is Graphviz DOT or an SVG laid out by Graphviz.`,
		Example: `  infographic outline org.yaml -o org.svg
  infographic outline org.yaml -f dot --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != pipeline.FormatSVG && opts.format != pipeline.FormatDOT {
				return fmt.Errorf("outline format must be svg or dot, got %q", opts.format)
			}
			return c.runOutline(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg or dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include descriptions and values in labels")
	cmd.Flags().StringVar(&opts.stdinFormat, "stdin-format", opts.stdinFormat, "spec format when reading stdin: json, yaml, toml")

	return cmd
}

func (c *CLI) runOutline(ctx context.Context, input string, opts outlineOpts) error {
	spec, err := loadSpec(input, opts.stdinFormat)
	if err != nil {
		return err
	}
	p, err := options.Parse(spec)
	if err != nil {
		return err
	}

	dot := outline.ToDOT(p.Data, outline.Options{Detailed: opts.detailed, Theme: p.Theme})
	c.Logger.Debug("built outline", "items", p.Data.Count(), "bytes", len(dot))
	if opts.format == pipeline.FormatDOT {
		return writeOutput(opts.output, []byte(dot))
	}

	svg, err := outline.RenderSVG(ctx, dot)
	if err != nil {
		return err
	}
	if err := writeOutput(opts.output, svg); err != nil {
		return err
	}
	if opts.output != "" && opts.output != "-" {
		printSuccess("Outlined %d items", p.Data.Count())
		printFile(opts.output)
	}
	return nil
}
