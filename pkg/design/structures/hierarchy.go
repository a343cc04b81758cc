package structures

import (
	"fmt"
	"math"
	"sort"

	"github.com/matzehuels/infographic/pkg/data"
	"github.com/matzehuels/infographic/pkg/design/components"
	"github.com/matzehuels/infographic/pkg/design/items"
	"github.com/matzehuels/infographic/pkg/element"
	"github.com/matzehuels/infographic/pkg/layout/tree"
)

// HierarchyTreeConfig configures "hierarchy-tree".
type HierarchyTreeConfig struct {
	LevelGap float64 `json:"levelGap"`
	NodeGap  float64 `json:"nodeGap"`
}

// DefaultHierarchyTree is the hierarchy-tree configuration without
// overrides.
var DefaultHierarchyTree = HierarchyTreeConfig{LevelGap: 80, NodeGap: 60}

func buildHierarchyTree(raw map[string]any) (Composer, error) {
	cfg := DefaultHierarchyTree
	if err := decode("hierarchy-tree", raw, &cfg); err != nil {
		return nil, err
	}
	return HierarchyTree(cfg), nil
}

type hierNode struct {
	item data.Item
	ix   data.Indexes
}

// buildHierarchy converts the normalized root into layout nodes carrying
// their index path inside the normalized tree.
func buildHierarchy(item data.Item, ix data.Indexes) *tree.Node[hierNode] {
	children := make([]*tree.Node[hierNode], len(item.Children))
	for i, c := range item.Children {
		children[i] = buildHierarchy(c, ix.Append(i))
	}
	return tree.New(hierNode{item: item, ix: ix}, children...)
}

// HierarchyTree lays out the item hierarchy top-down with elbow connectors.
// All nodes of one depth reserve the same slot, measured from a
// representative item of that depth.
func HierarchyTree(cfg HierarchyTreeConfig) Composer {
	return func(p Props) element.Element {
		m := p.measurer()
		rootItem, ok := p.Data.Root()
		if !ok {
			return container(m, p.title(), element.Group(
				components.BtnsGroup(components.BtnAdd("0", -btnBounds.Width/2, -btnBounds.Height/2)),
			))
		}

		root := buildHierarchy(rootItem, data.Indexes{0})
		nodes := root.Descendants()
		height := depthOf(root)

		normalized := data.Data{Items: []data.Item{rootItem}}
		levels := make([]element.Bounds, height+1)
		var maxW, maxH float64
		for level := range levels {
			ix := make(data.Indexes, level+1)
			datum, _ := normalized.Lookup(ix)
			levels[level] = element.MeasureWith(p.itemAt(level)(items.Props{
				Indexes:   ix,
				Datum:     datum,
				Data:      p.Data,
				PositionH: items.Center,
			}), m)
			maxW = math.Max(maxW, levels[level].Width)
			maxH = math.Max(maxH, levels[level].Height)
		}

		tree.Layout(root, maxW+cfg.NodeGap, maxH+cfg.LevelGap)

		minX, minY := math.Inf(1), math.Inf(1)
		for _, n := range nodes {
			minX = math.Min(minX, n.X)
			minY = math.Min(minY, n.Y)
		}
		offX := math.Max(0, -minX+maxW/2)
		offY := math.Max(0, -minY+btnBounds.Height+10)

		var itemEls, btnEls, linkEls []element.Element
		for _, n := range nodes {
			b := levels[n.Depth]
			ix := n.Data.ix
			x := n.X + offX - b.Width/2
			y := n.Y + offY
			btnX := x + (b.Width-btnBounds.Width)/2

			itemEls = append(itemEls, p.itemAt(n.Depth)(items.Props{
				Indexes:   ix,
				Datum:     n.Data.item,
				Data:      p.Data,
				X:         x,
				Y:         y,
				PositionH: items.Center,
			}))
			btnEls = append(btnEls,
				components.BtnRemove(ix.Key(), btnX, y+b.Height+5),
				components.BtnAdd(ix.Append(0).Key(), btnX, y+b.Height+btnBounds.Height+10),
			)

			if parent := n.Parent; parent != nil {
				px := parent.X + offX
				py := parent.Y + offY + levels[parent.Depth].Height
				cx, cy := n.X+offX, n.Y+offY
				midY := py + (cy-py)/2
				d := fmt.Sprintf("M %s %s L %s %s L %s %s L %s %s",
					f(px), f(py), f(px), f(midY), f(cx), f(midY), f(cx), f(cy))
				linkEls = append(linkEls, element.NewPath(d, map[string]string{
					"stroke":       p.colorPrimary(),
					"stroke-width": "2",
					"fill":         "none",
				}).WithID("link-"+parent.Data.ix.Key()+"-"+ix.Key()))
			}
		}
		btnEls = append(btnEls, siblingButtons(nodes, offX, offY)...)

		return container(m, p.title(), element.Group(
			element.Group(linkEls...),
			components.ItemsGroup(itemEls...),
			components.BtnsGroup(btnEls...),
		))
	}
}

// siblingButtons places an insert button halfway between each pair of
// adjacent siblings, just above them.
func siblingButtons(nodes []*tree.Node[hierNode], offX, offY float64) []element.Element {
	var (
		order  []string
		groups = map[string][]*tree.Node[hierNode]{}
	)
	for _, n := range nodes {
		key := "root"
		if n.Parent != nil {
			key = n.Parent.Data.ix.Key()
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], n)
	}

	var btns []element.Element
	for _, key := range order {
		siblings := groups[key]
		if len(siblings) < 2 {
			continue
		}
		sorted := append([]*tree.Node[hierNode](nil), siblings...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })
		y := sorted[0].Y + offY - btnBounds.Height - 5
		for i := 0; i+1 < len(sorted); i++ {
			x := (sorted[i].X+sorted[i+1].X)/2 + offX - btnBounds.Width/2
			ix := sorted[i].Data.ix
			insert := ix.Parent().Append(ix[len(ix)-1] + 1)
			btns = append(btns, components.BtnAdd(insert.Key(), x, y))
		}
	}
	return btns
}

func depthOf(n *tree.Node[hierNode]) int {
	d := 0
	for _, c := range n.Children {
		d = max(d, depthOf(c)+1)
	}
	return d
}

func f(v float64) string { return element.FormatFloat(v) }
