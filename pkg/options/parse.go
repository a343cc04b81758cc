package options

import (
	"github.com/matzehuels/infographic/internal/strict"
	"github.com/matzehuels/infographic/pkg/data"
	"github.com/matzehuels/infographic/pkg/design/components"
	"github.com/matzehuels/infographic/pkg/design/items"
	"github.com/matzehuels/infographic/pkg/design/structures"
	"github.com/matzehuels/infographic/pkg/element"
	"github.com/matzehuels/infographic/pkg/errors"
	"github.com/matzehuels/infographic/pkg/theme"
)

// DefaultTitle is the only title component.
const DefaultTitle = "default"

// TitleConfig configures the title block.
type TitleConfig struct {
	Width    float64 `json:"width"`
	AlignH   string  `json:"alignHorizontal"`
	SubLines int     `json:"subLines"`
}

// Parsed is a validated specification with every component resolved.
type Parsed struct {
	// StructureType names the resolved structure.
	StructureType string
	Structure     structures.Composer
	Title         structures.TitleFunc
	Item          items.Renderer
	Items         []items.Renderer

	Data     data.Data
	Theme    theme.Config
	Padding  Padding
	Width    float64
	Height   float64
	Measurer element.TextMeasurer
}

// Parse resolves the template, design and theme of o. The design overrides
// the template part by part; a missing structure or item, an unknown type
// and an invalid component setting are all reported here.
func Parse(o Options) (*Parsed, error) {
	design := o.Design
	if o.Template != "" {
		tpl, ok := Template(o.Template)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidTemplate, "template %q not found", o.Template)
		}
		design = tpl.Design.Merge(o.Design)
	}

	th, err := parseTheme(o.Theme, o.ThemeConfig)
	if err != nil {
		return nil, err
	}

	m := o.Measurer
	if m == nil {
		m = element.DefaultMeasurer()
	}

	p := &Parsed{
		Data:     o.Data,
		Theme:    th,
		Padding:  o.Padding,
		Width:    o.Width,
		Height:   o.Height,
		Measurer: m,
	}

	if p.Structure, err = parseStructure(design.Structure); err != nil {
		return nil, err
	}
	p.StructureType = design.Structure.Type
	if p.Title, err = parseTitle(design.Title, th, m); err != nil {
		return nil, err
	}

	first := design.Item
	if first == nil && len(design.Items) > 0 {
		first = &design.Items[0]
	}
	if p.Item, err = parseItem(first, th, m); err != nil {
		return nil, err
	}
	if len(design.Items) == 0 {
		p.Items = []items.Renderer{p.Item}
	} else {
		for i := range design.Items {
			r, err := parseItem(&design.Items[i], th, m)
			if err != nil {
				return nil, err
			}
			p.Items = append(p.Items, r)
		}
	}
	return p, nil
}

// Compose draws the infographic.
func (p *Parsed) Compose() element.Element {
	return p.Structure(structures.Props{
		Title:    p.Title,
		Item:     p.Item,
		Items:    p.Items,
		Data:     p.Data,
		Theme:    p.Theme,
		Measurer: p.Measurer,
	})
}

// Background is the canvas color.
func (p *Parsed) Background() string { return p.Theme.Background() }

func parseTheme(name string, override theme.Config) (theme.Config, error) {
	var base theme.Config
	if name != "" {
		t, ok := theme.Lookup(name)
		if !ok {
			return theme.Config{}, errors.New(errors.ErrCodeInvalidTheme, "theme %q not found (available: %v)", name, theme.Names())
		}
		base = t
	}
	cfg := base.Merge(override)
	for _, c := range append([]string{cfg.ColorPrimary, cfg.ColorBg}, cfg.Palette...) {
		if c == "" {
			continue
		}
		if _, _, err := theme.Parse(c); err != nil {
			return theme.Config{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "invalid theme color")
		}
	}
	return cfg.WithDefaults(), nil
}

func parseStructure(e *Entry) (structures.Composer, error) {
	if e == nil {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "structure is required in design or template")
	}
	if err := errors.ValidateComponentName(errors.ErrCodeInvalidStructure, "structure", e.Type); err != nil {
		return nil, err
	}
	def, ok := structures.Lookup(e.Type)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "structure %q not found (available: %v)", e.Type, structures.Names())
	}
	c, err := def.Build(e.Config)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStructure, err, "configure structure %q", e.Type)
	}
	return c, nil
}

func parseItem(e *Entry, th theme.Config, m element.TextMeasurer) (items.Renderer, error) {
	if e == nil {
		return nil, errors.New(errors.ErrCodeInvalidItem, "item is required in design or template")
	}
	if err := errors.ValidateComponentName(errors.ErrCodeInvalidItem, "item", e.Type); err != nil {
		return nil, err
	}
	def, ok := items.Lookup(e.Type)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidItem, "item %q not found (available: %v)", e.Type, items.Names())
	}
	r, err := def.Build(e.Config)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidItem, err, "configure item %q", e.Type)
	}
	return items.Bind(r, th, m), nil
}

// parseTitle resolves the title block. Its colors derive from the canvas
// background alone, so titles stay neutral whatever the primary color.
func parseTitle(e *Entry, th theme.Config, m element.TextMeasurer) (structures.TitleFunc, error) {
	if e == nil {
		return nil, nil
	}
	if e.Type != DefaultTitle {
		return nil, errors.New(errors.ErrCodeInvalidInput, "title %q not found (available: [%s])", e.Type, DefaultTitle)
	}
	var cfg TitleConfig
	if err := strict.Decode(e.Config, &cfg, "type"); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "configure title")
	}
	switch cfg.AlignH {
	case "", element.AlignLeft, element.AlignCenter, element.AlignRight:
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "configure title: invalid alignHorizontal %q", cfg.AlignH)
	}

	bg := th.Background()
	colors := theme.Generate(bg, bg)
	return func(title, desc string) element.Element {
		return components.Title(components.TitleProps{
			Width:    cfg.Width,
			AlignH:   cfg.AlignH,
			Title:    title,
			Desc:     desc,
			SubLines: cfg.SubLines,
			Colors:   colors,
			Measurer: m,
		})
	}, nil
}
