package theme

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var named = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#008000",
	"blue":      "#0000ff",
	"gray":      "#808080",
	"grey":      "#808080",
	"lightgray": "#d3d3d3",
	"lightgrey": "#d3d3d3",
	"darkgray":  "#a9a9a9",
	"orange":    "#ffa500",
	"purple":    "#800080",
	"yellow":    "#ffff00",
}

// Parse reads a CSS color: #rgb, #rrggbb, #rrggbbaa, rgb(), rgba() or a
// common named color. It returns the color and its alpha in [0, 1].
func Parse(s string) (colorful.Color, float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := named[s]; ok {
		s = hex
	}
	switch {
	case strings.HasPrefix(s, "#") && len(s) == 9:
		c, err := colorful.Hex(s[:7])
		if err != nil {
			return colorful.Color{}, 0, err
		}
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("invalid alpha in %q", s)
		}
		return c, float64(a) / 255, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		return c, 1, err
	case strings.HasPrefix(s, "rgb"):
		return parseRGB(s)
	}
	return colorful.Color{}, 0, fmt.Errorf("unsupported color %q", s)
}

func parseRGB(s string) (colorful.Color, float64, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return colorful.Color{}, 0, fmt.Errorf("malformed color %q", s)
	}
	parts := strings.FieldsFunc(s[open+1:end], func(r rune) bool { return r == ',' || r == ' ' || r == '/' })
	if len(parts) < 3 {
		return colorful.Color{}, 0, fmt.Errorf("malformed color %q", s)
	}
	var ch [3]float64
	for i := range 3 {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("malformed color %q", s)
		}
		ch[i] = v / 255
	}
	alpha := 1.0
	if len(parts) > 3 {
		a, err := strconv.ParseFloat(strings.TrimSuffix(parts[3], "%"), 64)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("malformed color %q", s)
		}
		if strings.HasSuffix(parts[3], "%") {
			a /= 100
		}
		alpha = a
	}
	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}.Clamped(), alpha, nil
}

// Lighten raises HSL lightness by amount percentage points, like
// tinycolor's lighten. Unparseable input is returned unchanged.
func Lighten(color string, amount float64) string {
	return shiftLightness(color, amount/100)
}

// Darken lowers HSL lightness by amount percentage points.
func Darken(color string, amount float64) string {
	return shiftLightness(color, -amount/100)
}

func shiftLightness(color string, delta float64) string {
	c, _, err := Parse(color)
	if err != nil {
		return color
	}
	h, s, l := c.Hsl()
	l = math.Min(1, math.Max(0, l+delta))
	return colorful.Hsl(h, s, l).Clamped().Hex()
}

// RGBString formats a color as rgb(r, g, b).
func RGBString(color string) string {
	c, _, err := Parse(color)
	if err != nil {
		return color
	}
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// Hex8 formats a color with an explicit alpha channel.
func Hex8(color string, alpha float64) string {
	c, _, err := Parse(color)
	if err != nil {
		return color
	}
	return fmt.Sprintf("%s%02x", c.Clamped().Hex(), uint8(math.Round(alpha*255)))
}

// IsDark reports whether a color's perceived brightness is below the
// midpoint. Unparseable colors count as light.
func IsDark(color string) bool {
	c, _, err := Parse(color)
	if err != nil {
		return false
	}
	r, g, b := c.Clamped().RGB255()
	brightness := (float64(r)*299 + float64(g)*587 + float64(b)*114) / 1000
	return brightness < 128
}

// luminance is the WCAG relative luminance.
func luminance(c colorful.Color) float64 {
	r, g, b := c.Clamped().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Contrast is the WCAG contrast ratio between two colors, from 1 to 21.
func Contrast(a, b string) float64 {
	ca, _, errA := Parse(a)
	cb, _, errB := Parse(b)
	if errA != nil || errB != nil {
		return 1
	}
	la, lb := luminance(ca), luminance(cb)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}
