package element

import (
	"maps"
	"strconv"
	"strings"
	"unicode"
)

// Horizontal text alignment within a text box.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Vertical text alignment within a text box.
const (
	AlignTop    = "top"
	AlignMiddle = "middle"
	AlignBottom = "bottom"
)

// Text carries the typographic properties of a text element.
type Text struct {
	Content    string
	FontSize   float64
	FontWeight string
	FontFamily string
	// LineHeight is a multiplier of FontSize.
	LineHeight float64
	AlignH     string
	AlignV     string
	WordWrap   bool
	// LineNumber caps the rendered line count when positive.
	LineNumber int

	BackgroundColor   string
	BackgroundOpacity float64
	BackgroundRadius  float64
}

// NewText builds a text element at (x, y). Width and height stay unset until
// WithSize is called; unsized texts are measured through a TextMeasurer.
func NewText(x, y float64, t Text, attrs map[string]string) Element {
	t = t.withDefaults()
	return Element{Kind: KindText, X: x, Y: y, Text: &t, Attrs: maps.Clone(attrs)}
}

// WithText returns a copy of a text element with fn applied to a copy of its
// typography.
func (e Element) WithText(fn func(*Text)) Element {
	if e.Text == nil {
		return e
	}
	t := *e.Text
	fn(&t)
	e.Text = &t
	return e
}

func (t Text) withDefaults() Text {
	if t.FontSize <= 0 {
		t.FontSize = 14
	}
	if t.LineHeight <= 0 {
		t.LineHeight = 1.4
	}
	if t.AlignH == "" {
		t.AlignH = AlignLeft
	}
	if t.AlignV == "" {
		t.AlignV = AlignTop
	}
	return t
}

// LinePitch is the vertical distance between consecutive baselines.
func (t Text) LinePitch() float64 { return t.FontSize * t.LineHeight }

// FontWeightName normalizes CSS weights ("700", "bold", "heavy") to a named
// weight. Unknown values map to "regular".
func FontWeightName(weight string) string {
	switch strings.ToLower(strings.TrimSpace(weight)) {
	case "100", "hairline", "thin":
		return "thin"
	case "200", "ultralight", "extralight":
		return "extralight"
	case "300", "light":
		return "light"
	case "500", "medium":
		return "medium"
	case "600", "demibold", "semibold":
		return "semibold"
	case "700", "bold":
		return "bold"
	case "800", "ultrabold", "extrabold":
		return "extrabold"
	case "900", "heavy", "black":
		return "black"
	case "950", "ultrablack", "extrablack":
		return "extrablack"
	}
	return "regular"
}

// IsBold reports whether the weight renders with a bold face.
func IsBold(weight string) bool {
	switch FontWeightName(weight) {
	case "semibold", "bold", "extrabold", "black", "extrablack":
		return true
	}
	return false
}

// QuoteFontFamily wraps a family name in quotes when CSS requires it.
func QuoteFontFamily(font string) string {
	if font == "" || strings.HasPrefix(font, `"`) {
		return font
	}
	if unicode.IsDigit(rune(font[0])) || strings.Contains(font, " ") {
		return `"` + font + `"`
	}
	return font
}

// FormatFloat renders a coordinate compactly: integers without a fraction,
// everything else with at most two decimals.
func FormatFloat(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}
