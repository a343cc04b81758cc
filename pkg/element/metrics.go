package element

import (
	"math"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/infographic/pkg/fonts"
)

// TextMeasurer reports the horizontal advance of a string set in a given
// size and weight.
type TextMeasurer interface {
	Advance(s string, fontSize float64, weight string) float64
}

// heuristicCharWidth is the average advance of a narrow glyph relative to
// the font size.
const heuristicCharWidth = 0.6

// HeuristicMeasurer estimates advances from display cells: every narrow rune
// counts fontSize*0.6 and East Asian wide runes count double. The result is
// approximate and only suitable when real font metrics are unavailable.
type HeuristicMeasurer struct{}

// Advance implements TextMeasurer.
func (HeuristicMeasurer) Advance(s string, fontSize float64, weight string) float64 {
	return float64(runewidth.StringWidth(s)) * fontSize * heuristicCharWidth
}

// FontMeasurer measures with the embedded Go font family (regular and bold).
// Runes the Go fonts cannot draw, such as CJK ideographs, advance by one em.
//
// Faces are cached per size and weight. A FontMeasurer is safe for
// concurrent use.
type FontMeasurer struct {
	mu      sync.Mutex
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

// NewFontMeasurer parses the embedded fonts. It fails only if the embedded
// font data is corrupt.
func NewFontMeasurer() (*FontMeasurer, error) {
	regular, err := opentype.Parse(fonts.RegularTTF())
	if err != nil {
		return nil, err
	}
	bold, err := opentype.Parse(fonts.BoldTTF())
	if err != nil {
		return nil, err
	}
	return &FontMeasurer{regular: regular, bold: bold, faces: make(map[faceKey]font.Face)}, nil
}

var (
	defaultMeasurerOnce sync.Once
	defaultMeasurer     TextMeasurer
)

// DefaultMeasurer returns a shared FontMeasurer, or a HeuristicMeasurer if
// the embedded fonts cannot be loaded.
func DefaultMeasurer() TextMeasurer {
	defaultMeasurerOnce.Do(func() {
		m, err := NewFontMeasurer()
		if err != nil {
			defaultMeasurer = HeuristicMeasurer{}
			return
		}
		defaultMeasurer = m
	})
	return defaultMeasurer
}

// Advance implements TextMeasurer.
func (m *FontMeasurer) Advance(s string, fontSize float64, weight string) float64 {
	if s == "" || fontSize <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(fontSize, IsBold(weight))
	if err != nil {
		return HeuristicMeasurer{}.Advance(s, fontSize, weight)
	}

	var total float64
	prev := rune(-1)
	for _, r := range s {
		if runewidth.RuneWidth(r) == 2 {
			total += fontSize
			prev = -1
			continue
		}
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			total += fontSize * heuristicCharWidth
			prev = -1
			continue
		}
		if prev >= 0 {
			total += fixedToFloat(face.Kern(prev, r))
		}
		total += fixedToFloat(adv)
		prev = r
	}
	return total
}

func (m *FontMeasurer) face(size float64, bold bool) (font.Face, error) {
	key := faceKey{size: size, bold: bold}
	if f, ok := m.faces[key]; ok {
		return f, nil
	}
	src := m.regular
	if bold {
		src = m.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, err
	}
	m.faces[key] = f
	return f, nil
}

func fixedToFloat[T ~int32](v T) float64 { return float64(v) / 64 }

// TextLines breaks t into rendered lines. Explicit newlines always break.
// With WordWrap and a positive maxWidth, lines are filled greedily on spaces;
// wide runes break anywhere. A word wider than maxWidth sits alone on its
// line. LineNumber, when positive, caps the result.
func TextLines(t Text, maxWidth float64, m TextMeasurer) []string {
	t = t.withDefaults()
	if m == nil {
		m = HeuristicMeasurer{}
	}
	var lines []string
	for _, para := range strings.Split(t.Content, "\n") {
		if !t.WordWrap || maxWidth <= 0 {
			lines = append(lines, para)
			continue
		}
		lines = append(lines, wrap(para, maxWidth, t, m)...)
	}
	if t.LineNumber > 0 && len(lines) > t.LineNumber {
		lines = lines[:t.LineNumber]
	}
	return lines
}

func wrap(para string, maxWidth float64, t Text, m TextMeasurer) []string {
	var (
		lines []string
		line  strings.Builder
	)
	for _, tok := range tokenize(para) {
		if line.Len() == 0 && tok == " " {
			continue
		}
		candidate := line.String() + tok
		if line.Len() > 0 && m.Advance(strings.TrimRight(candidate, " "), t.FontSize, t.FontWeight) > maxWidth {
			lines = append(lines, strings.TrimRight(line.String(), " "))
			line.Reset()
			if tok == " " {
				continue
			}
		}
		line.WriteString(tok)
	}
	if line.Len() > 0 || len(lines) == 0 {
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return lines
}

// tokenize splits into words, single spaces and individual wide runes.
func tokenize(s string) []string {
	var (
		toks []string
		word strings.Builder
	)
	flush := func() {
		if word.Len() > 0 {
			toks = append(toks, word.String())
			word.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t':
			flush()
			toks = append(toks, " ")
		case runewidth.RuneWidth(r) == 2:
			flush()
			toks = append(toks, string(r))
		default:
			word.WriteRune(r)
		}
	}
	flush()
	return toks
}

// MeasureText returns the natural size of t. A positive width constrains
// wrapping; the reported width is then the given width.
func MeasureText(t Text, width float64, m TextMeasurer) (w, h float64) {
	t = t.withDefaults()
	if m == nil {
		m = HeuristicMeasurer{}
	}
	lines := TextLines(t, width, m)
	for _, l := range lines {
		w = math.Max(w, m.Advance(l, t.FontSize, t.FontWeight))
	}
	if width > 0 {
		w = width
	}
	return w, float64(len(lines)) * t.LinePitch()
}
