// Package tree assigns tidy coordinates to the nodes of a rooted tree.
//
// The algorithm is the linear-time Reingold-Tilford variant by Buchheim,
// Jünger and Leipert: subtrees are laid out bottom-up, pushed apart just
// enough to keep a fixed separation between neighbouring contours, and
// parents are centered over their children. Every pair of neighbouring
// nodes is separated by one slot, so nodes of the same depth never overlap
// when the slot is as wide as the widest node.
package tree

// Node is one vertex of the input tree. Layout fills X, Y and Depth.
type Node[T any] struct {
	Data     T
	Parent   *Node[T]
	Children []*Node[T]
	Depth    int
	X, Y     float64
}

// New builds a node holding data with the given children, wiring their
// parent pointers.
func New[T any](data T, children ...*Node[T]) *Node[T] {
	n := &Node[T]{Data: data, Children: children}
	for _, c := range children {
		c.Parent = n
	}
	return n
}

// Descendants returns n and every node below it in breadth-first order.
func (n *Node[T]) Descendants() []*Node[T] {
	out := []*Node[T]{n}
	for i := 0; i < len(out); i++ {
		out = append(out, out[i].Children...)
	}
	return out
}

// Layout positions every node under root. Sibling slots are dx apart on the
// x axis and depth levels are dy apart on the y axis. The root ends at x=0
// and y=0; nodes to its left receive negative x.
func Layout[T any](root *Node[T], dx, dy float64) {
	if root == nil {
		return
	}
	setDepth(root, 0)

	w := wrap(root)
	eachAfter(w, firstWalk)
	w.parent.m = -w.z
	eachBefore(w, secondWalk)

	for _, n := range root.Descendants() {
		n.X *= dx
		n.Y = float64(n.Depth) * dy
	}
}

func setDepth[T any](n *Node[T], d int) {
	n.Depth = d
	for _, c := range n.Children {
		c.Parent = n
		setDepth(c, d+1)
	}
}

// walker is the per-node scratch state of the algorithm: z is the
// preliminary x, m the modifier, c/s the change and shift, t the thread,
// a the ancestor and i the index among siblings.
type walker struct {
	x        *float64
	parent   *walker
	children []*walker
	ancestor *walker // A: default ancestor while walking children
	a        *walker
	t        *walker
	z, m     float64
	c, s     float64
	i        int
}

func wrap[T any](root *Node[T]) *walker {
	var build func(n *Node[T], i int, parent *walker) *walker
	build = func(n *Node[T], i int, parent *walker) *walker {
		w := &walker{x: &n.X, parent: parent, i: i}
		w.a = w
		if len(n.Children) > 0 {
			w.children = make([]*walker, len(n.Children))
			for ci, c := range n.Children {
				w.children[ci] = build(c, ci, w)
			}
		}
		return w
	}
	synthetic := &walker{}
	synthetic.a = synthetic
	top := build(root, 0, synthetic)
	synthetic.children = []*walker{top}
	return top
}

func eachAfter(w *walker, fn func(*walker)) {
	for _, c := range w.children {
		eachAfter(c, fn)
	}
	fn(w)
}

func eachBefore(w *walker, fn func(*walker)) {
	fn(w)
	for _, c := range w.children {
		eachBefore(c, fn)
	}
}

const separation = 1.0

func firstWalk(v *walker) {
	siblings := v.parent.children
	var w *walker
	if v.i > 0 {
		w = siblings[v.i-1]
	}
	if len(v.children) > 0 {
		executeShifts(v)
		mid := (v.children[0].z + v.children[len(v.children)-1].z) / 2
		if w != nil {
			v.z = w.z + separation
			v.m = v.z - mid
		} else {
			v.z = mid
		}
	} else if w != nil {
		v.z = w.z + separation
	}
	anc := v.parent.ancestor
	if anc == nil {
		anc = siblings[0]
	}
	v.parent.ancestor = apportion(v, w, anc)
}

func secondWalk(v *walker) {
	*v.x = v.z + v.parent.m
	v.m += v.parent.m
}

func apportion(v, w, ancestor *walker) *walker {
	if w == nil {
		return ancestor
	}
	vip, vop := v, v
	vim := w
	vom := v.parent.children[0]
	sip, sop := vip.m, vop.m
	sim, som := vim.m, vom.m
	for {
		vim = nextRight(vim)
		vip = nextLeft(vip)
		if vim == nil || vip == nil {
			break
		}
		vom = nextLeft(vom)
		vop = nextRight(vop)
		vop.a = v
		shift := vim.z + sim - vip.z - sip + separation
		if shift > 0 {
			moveSubtree(nextAncestor(vim, v, ancestor), v, shift)
			sip += shift
			sop += shift
		}
		sim += vim.m
		sip += vip.m
		som += vom.m
		sop += vop.m
	}
	if vim != nil && nextRight(vop) == nil {
		vop.t = vim
		vop.m += sim - sop
	}
	if vip != nil && nextLeft(vom) == nil {
		vom.t = vip
		vom.m += sip - som
		ancestor = v
	}
	return ancestor
}

func nextLeft(v *walker) *walker {
	if len(v.children) > 0 {
		return v.children[0]
	}
	return v.t
}

func nextRight(v *walker) *walker {
	if len(v.children) > 0 {
		return v.children[len(v.children)-1]
	}
	return v.t
}

func moveSubtree(wm, wp *walker, shift float64) {
	change := shift / float64(wp.i-wm.i)
	wp.c -= change
	wp.s += shift
	wm.c += change
	wp.z += shift
	wp.m += shift
}

func executeShifts(v *walker) {
	var shift, change float64
	for i := len(v.children) - 1; i >= 0; i-- {
		w := v.children[i]
		w.z += shift
		w.m += shift
		change += w.c
		shift += w.s + change
	}
}

func nextAncestor(vim, v, ancestor *walker) *walker {
	if vim.a.parent == v.parent {
		return vim.a
	}
	return ancestor
}
