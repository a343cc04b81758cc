package options

import "sort"

// TemplateInfo describes a catalog template for listings.
type TemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Design      Design `json:"design"`
}

var catalog = map[string]TemplateInfo{
	"list-row-simple": {
		Description: "Items side by side with label and description",
		Design: Design{
			Structure: NewEntry("list-row"),
			Title:     NewEntry("default"),
			Item:      NewEntry("simple"),
		},
	},
	"list-row-pill-badge": {
		Description: "Items as rounded badges in a row",
		Design: Design{
			Structure: NewEntry("list-row", "gap", 24),
			Title:     NewEntry("default"),
			Item:      NewEntry("pill-badge"),
		},
	},
	"hierarchy-tree-simple": {
		Description: "Top-down tree with elbow connectors",
		Design: Design{
			Structure: NewEntry("hierarchy-tree"),
			Title:     NewEntry("default"),
			Item:      NewEntry("simple", "width", 160),
		},
	},
	"hierarchy-tree-pill-badge": {
		Description: "Tree whose root is a badge and whose children are text items",
		Design: Design{
			Structure: NewEntry("hierarchy-tree"),
			Title:     NewEntry("default"),
			Items: []Entry{
				*NewEntry("pill-badge", "width", 200),
				*NewEntry("simple", "width", 160),
			},
		},
	},
	"sequence-cylinders-3d-simple": {
		Description: "Steps as a staircase of 3D cylinders",
		Design: Design{
			Structure: NewEntry("sequence-cylinders-3d"),
			Title:     NewEntry("default"),
			Item:      NewEntry("simple", "width", 180),
		},
	},
}

// Template returns the catalog template with the given name.
func Template(name string) (TemplateInfo, bool) {
	t, ok := catalog[name]
	if ok {
		t.Name = name
	}
	return t, ok
}

// Templates lists the catalog in name order.
func Templates() []TemplateInfo {
	out := make([]TemplateInfo, 0, len(catalog))
	for name := range catalog {
		t, _ := Template(name)
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
