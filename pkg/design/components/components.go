// Package components holds the small building blocks shared by item
// renderers and structures: text slots, buttons, the title block and
// reusable definitions.
package components

import (
	"strings"

	"github.com/matzehuels/infographic/pkg/data"
	"github.com/matzehuels/infographic/pkg/element"
	"github.com/matzehuels/infographic/pkg/layout/flex"
	"github.com/matzehuels/infographic/pkg/theme"
)

// BtnSize is the edge length of the add/remove buttons.
const BtnSize = 20

// Tint behind the label and description slots.
const slotBackground = "rgba(199, 207, 145, 0.1)"

// BtnAdd is the affordance for inserting an item at key.
func BtnAdd(key string, x, y float64) element.Element {
	return element.Rect(x, y, BtnSize, BtnSize, map[string]string{
		"fill":         "#B9EBCA",
		"fill-opacity": "0.3",
	}).WithID("btn-add-" + key)
}

// BtnRemove is the affordance for deleting the item at key.
func BtnRemove(key string, x, y float64) element.Element {
	return element.Rect(x, y, BtnSize, BtnSize, map[string]string{
		"fill":         "#F9C0C0",
		"fill-opacity": "0.3",
	}).WithID("btn-remove-" + key)
}

// ItemsGroup wraps the item layer of a structure.
func ItemsGroup(children ...element.Element) element.Element {
	return element.Group(children...).WithID("items-group")
}

// BtnsGroup wraps the button layer of a structure.
func BtnsGroup(children ...element.Element) element.Element {
	return element.Group(children...).WithID("btns-group")
}

// ItemLabel is the 100x26 bold label slot of an item.
func ItemLabel(ix data.Indexes, label string) element.Element {
	if label == "" {
		label = "Item Label"
	}
	return element.NewText(0, 0, element.Text{
		Content:         label,
		FontSize:        18,
		FontWeight:      "bold",
		LineHeight:      1.4,
		BackgroundColor: slotBackground,
	}, map[string]string{"fill": "#000"}).
		WithSize(100, 26).
		WithID("item-" + ix.Key() + "-label")
}

// ItemDesc is the 100x40 wrapping description slot of an item.
func ItemDesc(ix data.Indexes, desc string) element.Element {
	if desc == "" {
		desc = "Item Description"
	}
	return element.NewText(0, 0, element.Text{
		Content:         desc,
		FontSize:        14,
		LineHeight:      1.4,
		WordWrap:        true,
		BackgroundColor: slotBackground,
	}, map[string]string{"fill": "#666"}).
		WithSize(100, 40).
		WithID("item-" + ix.Key() + "-desc")
}

// ItemIcon is a square placeholder for an item's icon.
func ItemIcon(ix data.Indexes, size float64) element.Element {
	if size <= 0 {
		size = 32
	}
	return element.Rect(0, 0, size, size, map[string]string{"fill": "lightgray"}).
		WithID("item-" + ix.Key() + "-icon")
}

// Illus is a placeholder for an illustration. The ID is set only when ix
// is non-empty.
func Illus(ix data.Indexes, w, h float64) element.Element {
	r := element.Rect(0, 0, w, h, map[string]string{"fill": "lightgray"})
	if len(ix) > 0 {
		r = r.WithID("item-" + ix.Key() + "-illus")
	}
	return r
}

// Align returns a text element with the given alignments.
func Align(t element.Element, h, v string) element.Element {
	return t.WithText(func(tx *element.Text) {
		tx.AlignH = h
		tx.AlignV = v
	})
}

// TitleProps configures the title block.
type TitleProps struct {
	X, Y   float64
	Width  float64
	AlignH string
	Title  string
	Desc   string
	// SubLines sets the subtitle height in 24px lines.
	SubLines int
	Colors   theme.Colors
	Measurer element.TextMeasurer
}

// Title stacks the main title above the subtitle in a column 720 wide. The
// subtitle is omitted when Desc is empty, and the whole block when both
// texts are empty.
func Title(p TitleProps) element.Element {
	if strings.TrimSpace(p.Title) == "" && strings.TrimSpace(p.Desc) == "" {
		return element.None()
	}
	if p.Width <= 0 {
		p.Width = 720
	}
	if p.AlignH == "" {
		p.AlignH = element.AlignCenter
	}
	if p.SubLines <= 0 {
		p.SubLines = 2
	}
	mainFill, subFill := "#212121", "#666666"
	if p.Colors.IsDarkMode {
		mainFill, subFill = p.Colors.ColorText, p.Colors.ColorTextSecondary
	}

	var kids []element.Element
	if p.Title != "" {
		kids = append(kids, element.NewText(0, 0, element.Text{
			Content:    p.Title,
			FontSize:   24,
			LineHeight: 1.4,
			AlignH:     p.AlignH,
		}, map[string]string{"fill": mainFill}).WithSize(p.Width, 32).WithID("title"))
	}
	if p.Desc != "" {
		kids = append(kids, element.NewText(0, 0, element.Text{
			Content:    p.Desc,
			FontSize:   16,
			LineHeight: 1.4,
			AlignH:     p.AlignH,
			WordWrap:   true,
			LineNumber: p.SubLines,
		}, map[string]string{"fill": subFill}).WithSize(p.Width, float64(p.SubLines*24)).WithID("desc"))
	}
	return flex.Layout(kids, flex.Config{
		ID:        "title-group",
		Direction: flex.Column,
		X:         p.X,
		Y:         p.Y,
		Gap:       8,
		Measurer:  p.Measurer,
	})
}

// Gradient directions for [LinearGradient].
const (
	LeftRight = "left-right"
	RightLeft = "right-left"
	TopBottom = "top-bottom"
	BottomTop = "bottom-top"
)

var gradientVectors = map[string][4]string{
	LeftRight: {"0%", "0%", "100%", "0%"},
	RightLeft: {"100%", "0%", "0%", "0%"},
	TopBottom: {"0%", "0%", "0%", "100%"},
	BottomTop: {"0%", "100%", "0%", "0%"},
}

// LinearGradient is a two-stop gradient along one of the four axis
// directions. Unknown directions run left to right.
func LinearGradient(id, start, stop, direction string) element.Element {
	v, ok := gradientVectors[direction]
	if !ok {
		v = gradientVectors[LeftRight]
	}
	return element.LinearGradient(id, v[0], v[1], v[2], v[3],
		element.Stop("0%", start, 1),
		element.Stop("100%", stop, 1),
	)
}

// DropShadow is a filter casting a soft shadow offset by (4, 4).
func DropShadow(id, color string, opacity float64) element.Element {
	if color == "" {
		color = "black"
	}
	shadow := element.Element{Kind: element.KindFeDropShadow, Attrs: map[string]string{
		"dx":            "4",
		"dy":            "4",
		"stdDeviation":  "4",
		"flood-color":   color,
		"flood-opacity": element.FormatFloat(opacity),
	}}
	return element.Element{
		Kind: element.KindFilter,
		ID:   id,
		Attrs: map[string]string{
			"x": "-25%", "y": "-25%", "width": "200%", "height": "200%",
		},
		Children: []element.Element{shadow},
	}
}

// SafeID strips characters that break url(#id) references, such as the
// leading hash of a color used in an ID.
func SafeID(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return -1
	}, s)
}
