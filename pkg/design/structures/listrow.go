package structures

import (
	"strconv"

	"github.com/matzehuels/infographic/pkg/data"
	"github.com/matzehuels/infographic/pkg/design/components"
	"github.com/matzehuels/infographic/pkg/design/items"
	"github.com/matzehuels/infographic/pkg/element"
)

// ListRowConfig configures "list-row".
type ListRowConfig struct {
	Gap float64 `json:"gap"`
}

// DefaultListRow is the list-row configuration without overrides.
var DefaultListRow = ListRowConfig{Gap: 20}

func buildListRow(raw map[string]any) (Composer, error) {
	cfg := DefaultListRow
	if err := decode("list-row", raw, &cfg); err != nil {
		return nil, err
	}
	return ListRow(cfg), nil
}

// ListRow places items left to right in equal slots sized by the first
// item. Every item gets a remove button below it, and add buttons sit in
// each gap, before the first item and after the last.
func ListRow(cfg ListRowConfig) Composer {
	return func(p Props) element.Element {
		m := p.measurer()
		list := p.Data.Items
		if len(list) == 0 {
			return container(m, p.title(), element.Group(
				components.BtnsGroup(components.BtnAdd("0", -btnBounds.Width/2, -btnBounds.Height/2)),
			))
		}

		gap := cfg.Gap
		item := p.itemAt(0)
		slot := element.MeasureWith(item(items.Props{
			Indexes:   data.Indexes{0},
			Datum:     list[0],
			Data:      p.Data,
			PositionH: items.Center,
		}), m)
		btnY := slot.Height

		var itemEls, btnEls []element.Element
		for i, datum := range list {
			key := strconv.Itoa(i)
			x := (slot.Width + gap) * float64(i)
			itemEls = append(itemEls, item(items.Props{
				Indexes:   data.Indexes{i},
				Datum:     datum,
				Data:      p.Data,
				X:         x,
				PositionH: items.Center,
			}))
			btnEls = append(btnEls, components.BtnRemove(key, x+(slot.Width-btnBounds.Width)/2, btnY))

			addX := x - (gap+btnBounds.Width)/2
			if i == 0 {
				addX = -(gap + btnBounds.Width) / 2
			}
			btnEls = append(btnEls, components.BtnAdd(key, addX, btnY))
		}
		lastX := (slot.Width + gap) * float64(len(list)-1)
		btnEls = append(btnEls, components.BtnAdd(
			strconv.Itoa(len(list)),
			lastX+slot.Width+(gap-btnBounds.Width)/2,
			btnY,
		))

		return container(m, p.title(), element.Group(
			components.ItemsGroup(itemEls...),
			components.BtnsGroup(btnEls...),
		))
	}
}
