// Package theme resolves the colors an infographic is drawn with.
//
// A [Config] names a primary color, a background and a palette. Items are
// colored individually: [Config.ItemColors] picks the palette entry for an
// item's top-level index and derives the full [Colors] set from it.
package theme

import (
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Defaults applied by [Config.WithDefaults].
const (
	DefaultPrimary    = "#1677FF"
	DefaultBackground = "#ffffff"
	// FallbackItemColor colors items when the palette is empty.
	FallbackItemColor = "#1890ff"
)

// Config is the user-facing theme configuration.
type Config struct {
	ColorPrimary string   `json:"colorPrimary,omitempty" yaml:"colorPrimary,omitempty" toml:"colorPrimary,omitempty"`
	ColorBg      string   `json:"colorBg,omitempty" yaml:"colorBg,omitempty" toml:"colorBg,omitempty"`
	Palette      []string `json:"palette,omitempty" yaml:"palette,omitempty" toml:"palette,omitempty"`
}

// Colors is the resolved color set handed to components.
type Colors struct {
	ColorPrimary       string `json:"colorPrimary"`
	ColorPrimaryBg     string `json:"colorPrimaryBg"`
	ColorPrimaryText   string `json:"colorPrimaryText"`
	ColorText          string `json:"colorText"`
	ColorTextSecondary string `json:"colorTextSecondary"`
	ColorBg            string `json:"colorBg"`
	ColorBgElevated    string `json:"colorBgElevated"`
	ColorWhite         string `json:"colorWhite"`
	IsDarkMode         bool   `json:"isDarkMode"`
}

var builtin = map[string]Config{
	"light": {ColorPrimary: DefaultPrimary, ColorBg: DefaultBackground},
	"dark": {
		ColorPrimary: "#3C89E8",
		ColorBg:      "#141414",
		Palette:      []string{"#3C89E8", "#49AA19", "#D89614", "#D32029", "#854ECA", "#13A8A8"},
	},
	"colorful": {
		ColorPrimary: "#1677FF",
		ColorBg:      DefaultBackground,
		Palette:      []string{"#1677FF", "#52C41A", "#FAAD14", "#F5222D", "#722ED1", "#13C2C2", "#EB2F96"},
	},
}

// Lookup returns a built-in theme by name.
func Lookup(name string) (Config, bool) {
	c, ok := builtin[name]
	return c, ok
}

// Names lists the built-in themes in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Merge overlays the non-empty fields of override on c.
func (c Config) Merge(override Config) Config {
	if override.ColorPrimary != "" {
		c.ColorPrimary = override.ColorPrimary
	}
	if override.ColorBg != "" {
		c.ColorBg = override.ColorBg
	}
	if len(override.Palette) > 0 {
		c.Palette = override.Palette
	}
	return c
}

// WithDefaults fills an empty primary color and palette. The default
// palette is the primary color alone.
func (c Config) WithDefaults() Config {
	if c.ColorPrimary == "" {
		c.ColorPrimary = DefaultPrimary
	}
	if len(c.Palette) == 0 {
		c.Palette = []string{c.ColorPrimary}
	}
	return c
}

// Background returns the configured background or white.
func (c Config) Background() string {
	if c.ColorBg == "" {
		return DefaultBackground
	}
	return c.ColorBg
}

// PaletteColor returns the palette entry for the top-level index of an item.
// Nested items share their top-level ancestor's color.
func PaletteColor(palette []string, indexes []int) string {
	if len(palette) == 0 {
		return ""
	}
	i := 0
	if len(indexes) > 0 {
		i = indexes[0] % len(palette)
		if i < 0 {
			i += len(palette)
		}
	}
	return palette[i]
}

// ItemColors resolves the colors of the item at indexes.
func (c Config) ItemColors(indexes []int) Colors {
	primary := PaletteColor(c.Palette, indexes)
	if primary == "" {
		primary = FallbackItemColor
	}
	return Generate(primary, c.Background())
}

// Generate derives a color set from a primary and a background color. Dark
// mode is inferred from the background.
func Generate(primary, bg string) Colors {
	dark := IsDark(bg)
	pc := hexOr(primary, DefaultPrimary)
	bgc := hexOr(bg, DefaultBackground)

	alpha := 0.1
	if dark {
		alpha = 0.2
	}
	primaryBg := Hex8(pc, alpha)
	text := textColor(bgc, dark)

	return Colors{
		ColorPrimary:       pc,
		ColorPrimaryBg:     primaryBg,
		ColorPrimaryText:   bestTextColor(composite(pc, alpha, bgc), dark),
		ColorText:          text,
		ColorTextSecondary: shiftLab(text, 20),
		ColorBg:            bgc,
		ColorBgElevated:    elevated(bgc, dark),
		ColorWhite:         "#ffffff",
		IsDarkMode:         dark,
	}
}

const (
	darkText  = "#262626"
	lightText = "#ffffff"
)

func textColor(bg string, dark bool) string {
	if dark {
		return lightText
	}
	if Contrast(darkText, bg) >= 7 {
		return darkText
	}
	return "#000000"
}

func bestTextColor(bg string, dark bool) string {
	dc, lc := Contrast(darkText, bg), Contrast(lightText, bg)
	switch {
	case dc >= 4.5 && dc >= lc:
		return darkText
	case lc >= 4.5 && lc >= dc:
		return lightText
	case dark:
		return lightText
	}
	return darkText
}

func elevated(bg string, dark bool) string {
	c, _, err := Parse(bg)
	if err != nil {
		return DefaultBackground
	}
	l, _, _ := c.Lab()
	switch {
	case dark:
		return shiftLab(bg, 10)
	case l > 0.95:
		return DefaultBackground
	}
	return shiftLab(bg, 5)
}

// shiftLab raises CIE L* by delta points (of 100), clamped to white.
func shiftLab(color string, delta float64) string {
	c, _, err := Parse(color)
	if err != nil {
		return color
	}
	l, a, b := c.Lab()
	return colorful.Lab(math.Min(1, l+delta/100), a, b).Clamped().Hex()
}

// composite blends a translucent color over an opaque background.
func composite(fg string, alpha float64, bg string) string {
	f, _, errF := Parse(fg)
	b, _, errB := Parse(bg)
	if errF != nil || errB != nil {
		return bg
	}
	return b.BlendRgb(f, alpha).Clamped().Hex()
}

func hexOr(color, fallback string) string {
	c, _, err := Parse(color)
	if err != nil {
		return fallback
	}
	return c.Clamped().Hex()
}
