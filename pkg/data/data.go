// Package data defines the content an infographic renders: a title, a
// description and a list or tree of items.
package data

import (
	"strconv"
	"strings"
)

// Data is the input content of one infographic.
type Data struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Desc  string `json:"desc,omitempty" yaml:"desc,omitempty" toml:"desc,omitempty"`
	Items []Item `json:"items,omitempty" yaml:"items,omitempty" toml:"items,omitempty"`
}

// Item is one record. Items nest through Children to form hierarchies.
type Item struct {
	Label    string   `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Desc     string   `json:"desc,omitempty" yaml:"desc,omitempty" toml:"desc,omitempty"`
	Icon     string   `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty"`
	Value    *float64 `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Children []Item   `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// Indexes is the path from the top-level item list to one item.
type Indexes []int

// Key joins the path with "-", the form used in element IDs.
func (ix Indexes) Key() string {
	parts := make([]string, len(ix))
	for i, v := range ix {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, "-")
}

// Append returns a new path extended by i. The receiver is never modified.
func (ix Indexes) Append(i int) Indexes {
	out := make(Indexes, len(ix), len(ix)+1)
	copy(out, ix)
	return append(out, i)
}

// Parent returns the path without its last element.
func (ix Indexes) Parent() Indexes {
	if len(ix) == 0 {
		return nil
	}
	return ix[: len(ix)-1 : len(ix)-1]
}

// Lookup finds the item at indexes.
func (d Data) Lookup(ix Indexes) (Item, bool) {
	items := d.Items
	var cur Item
	for depth, i := range ix {
		if i < 0 || i >= len(items) {
			return Item{}, false
		}
		cur = items[i]
		if depth < len(ix)-1 {
			items = cur.Children
		}
	}
	return cur, len(ix) > 0
}

// Count returns the number of items at every depth.
func (d Data) Count() int {
	var walk func([]Item) int
	walk = func(items []Item) int {
		n := len(items)
		for _, it := range items {
			n += walk(it.Children)
		}
		return n
	}
	return walk(d.Items)
}

// Depth returns the number of nesting levels, zero for no items.
func (d Data) Depth() int {
	var walk func([]Item) int
	walk = func(items []Item) int {
		if len(items) == 0 {
			return 0
		}
		deepest := 0
		for _, it := range items {
			deepest = max(deepest, walk(it.Children))
		}
		return deepest + 1
	}
	return walk(d.Items)
}

// Root returns the single-rooted hierarchy used by tree structures.
//
// When the first item has no children, the remaining top-level items become
// its children. When the first item already has children, it is the root
// and the remaining top-level items are dropped. ok is false when there are
// no items.
func (d Data) Root() (root Item, ok bool) {
	if len(d.Items) == 0 {
		return Item{}, false
	}
	first := d.Items[0]
	if len(first.Children) == 0 && len(d.Items) > 1 {
		first.Children = append([]Item(nil), d.Items[1:]...)
	}
	return first, true
}
