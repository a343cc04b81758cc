package pipeline

import (
	"context"

	"github.com/matzehuels/infographic/pkg/element"
	"github.com/matzehuels/infographic/pkg/errors"
	"github.com/matzehuels/infographic/pkg/options"
	"github.com/matzehuels/infographic/pkg/render"
	"github.com/matzehuels/infographic/pkg/render/outline"
	"github.com/matzehuels/infographic/pkg/render/scene"
	"github.com/matzehuels/infographic/pkg/render/svg"
)

// renderFormat produces one artifact. svgDoc is the rendered SVG when the
// format derives from it.
func renderFormat(ctx context.Context, format string, svgDoc []byte, root element.Element, p *options.Parsed, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svgDoc, nil
	case FormatPNG:
		return render.ToPNG(ctx, svgDoc, opts.Scale)
	case FormatPDF:
		return render.ToPDF(ctx, svgDoc)
	case FormatJSON:
		return scene.RenderJSON(root,
			scene.WithJSONMeasurer(p.Measurer),
			scene.WithJSONBackground(background(p, opts)))
	case FormatDOT:
		th := p.Theme
		if opts.Background != "" {
			th.ColorBg = opts.Background
		}
		return []byte(outline.ToDOT(p.Data, outline.Options{Detailed: opts.Detailed, Theme: th})), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}

func renderSVG(root element.Element, p *options.Parsed, opts Options) []byte {
	pad := opts.EffectivePadding()
	svgOpts := []svg.Option{
		svg.WithMeasurer(p.Measurer),
		svg.WithPadding(pad.Top, pad.Right, pad.Bottom, pad.Left),
		svg.WithBackground(background(p, opts)),
	}
	if p.Width > 0 && p.Height > 0 {
		svgOpts = append(svgOpts, svg.WithSize(p.Width, p.Height))
	}
	if opts.EmbedFonts {
		svgOpts = append(svgOpts, svg.WithEmbeddedFonts())
	}
	return svg.Render(root, svgOpts...)
}

func background(p *options.Parsed, opts Options) string {
	if opts.Background != "" {
		return opts.Background
	}
	return p.Background()
}
