package axiom

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// treeNode is a node in a per-workspace dwindle tree: either a leaf
// carrying exactly one window, or an internal node with exactly two
// children and a split direction/ratio. Parent links are non-owning
// back-references with the same lifetime as the owning Tree (design note
// an arena-with-indices approach would be an acceptable alternative, but a
// single owning slot per node with back-pointers is simpler here and
// matches the shape the example corpus's own pane trees use).
type treeNode struct {
	parent *treeNode

	leaf     bool
	window   *Window
	split    SplitDirection
	ratio    float64
	children [2]*treeNode

	rect        Rect // authoritative, computed by Recalculate
	displayRect Rect // animated, what the scene adapter is told to show

	anim *nodeAnim
}

// nodeAnim drives a node's displayRect towards rect over a short duration,
// mirroring willow's TweenGroup (animation.go): one gween.Tween per scalar
// component, advanced each frame and written back into displayRect.
type nodeAnim struct {
	tx, ty, tw, th *gween.Tween
	done           bool
}

func newNodeAnim(from, to Rect, duration float32, fn ease.TweenFunc) *nodeAnim {
	return &nodeAnim{
		tx: gween.New(float32(from.X), float32(to.X), duration, fn),
		ty: gween.New(float32(from.Y), float32(to.Y), duration, fn),
		tw: gween.New(float32(from.W), float32(to.W), duration, fn),
		th: gween.New(float32(from.H), float32(to.H), duration, fn),
	}
}

func (a *nodeAnim) step(dt float32) Rect {
	x, doneX := a.tx.Update(dt)
	y, doneY := a.ty.Update(dt)
	w, doneW := a.tw.Update(dt)
	h, doneH := a.th.Update(dt)
	a.done = doneX && doneY && doneW && doneH
	return Rect{X: int(x), Y: int(y), W: int(w), H: int(h)}
}

// Tree is a per-workspace dwindle (BSP) tiling tree.
type Tree struct {
	root  *treeNode
	nodes map[*Window]*treeNode
}

func newTree() *Tree {
	return &Tree{nodes: make(map[*Window]*treeNode)}
}

// Empty reports whether the tree holds no windows.
func (t *Tree) Empty() bool {
	return t.root == nil
}

// Contains reports whether win has a leaf in this tree.
func (t *Tree) Contains(win *Window) bool {
	_, ok := t.nodes[win]
	return ok
}

// WindowRect returns the last-computed rectangle for win's leaf.
func (t *Tree) WindowRect(win *Window) (Rect, bool) {
	n, ok := t.nodes[win]
	if !ok {
		return Rect{}, false
	}
	return n.rect, true
}

func childIndex(parent, child *treeNode) int {
	if parent.children[0] == child {
		return 0
	}
	return 1
}

func firstLeafOf(n *treeNode) *treeNode {
	for !n.leaf {
		n = n.children[0]
	}
	return n
}

func smartSplitDirection(rect Rect, force ForceSplitDirection) SplitDirection {
	switch force {
	case ForceSplitHorizontal:
		return SplitHorizontal
	case ForceSplitVertical:
		return SplitVertical
	default:
		if rect.W > rect.H {
			return SplitHorizontal
		}
		return SplitVertical
	}
}

// Insert adds win to the tree. If focused is non-nil and present in the
// tree, its leaf is the split target; otherwise the tree's first leaf is
// used. direction, if non-nil, determines which side of the new split the
// new window lands on; nil defaults to old=first, new=second.
func (t *Tree) Insert(win *Window, focused *Window, direction *Direction, defaultRatio float64) *Result {
	if win == nil {
		return Errorf(InvalidArgument, "Tree.Insert", "nil window")
	}
	if t.Contains(win) {
		return Errorf(InvalidArgument, "Tree.Insert", "window already in tree")
	}

	newLeaf := &treeNode{leaf: true, window: win}

	if t.root == nil {
		t.root = newLeaf
		t.nodes[win] = newLeaf
		win.Tiled = true
		return nil
	}

	target := t.nodes[focused]
	if target == nil {
		target = firstLeafOf(t.root)
	}

	splitDir := smartSplitDirection(target.rect, win.ForceSplit)

	first, second := target, newLeaf
	if direction != nil && !direction.IsForward() {
		first, second = newLeaf, target
	}

	internal := &treeNode{
		leaf:     false,
		split:    splitDir,
		ratio:    defaultRatio,
		children: [2]*treeNode{first, second},
	}
	first.parent = internal
	second.parent = internal

	parent := target.parent
	internal.parent = parent
	if parent == nil {
		t.root = internal
	} else {
		parent.children[childIndex(parent, target)] = internal
	}

	t.nodes[win] = newLeaf
	win.Tiled = true
	return nil
}

// Remove deletes win's leaf from the tree, merging its parent out of
// existence so no internal node is ever left with a single child.
// Removing a window that isn't in the tree leaves the tree unchanged and
// returns an InvalidArgument result; callers should log a warning.
func (t *Tree) Remove(win *Window) *Result {
	leaf, ok := t.nodes[win]
	if !ok {
		return Errorf(InvalidArgument, "Tree.Remove", "window not in tree")
	}
	delete(t.nodes, win)
	win.Tiled = false

	p := leaf.parent
	if p == nil {
		t.root = nil
		return nil
	}

	idx := childIndex(p, leaf)
	sibling := p.children[1-idx]
	gp := p.parent
	sibling.parent = gp
	if gp == nil {
		t.root = sibling
	} else {
		gp.children[childIndex(gp, p)] = sibling
	}
	return nil
}

// Swap exchanges the window references of two leaves; no structural
// change to the tree.
func (t *Tree) Swap(a, b *Window) *Result {
	na, ok := t.nodes[a]
	if !ok {
		return Errorf(InvalidArgument, "Tree.Swap", "window a not in tree")
	}
	nb, ok := t.nodes[b]
	if !ok {
		return Errorf(InvalidArgument, "Tree.Swap", "window b not in tree")
	}
	na.window, nb.window = nb.window, na.window
	t.nodes[a] = nb
	t.nodes[b] = na
	return nil
}

// Resize adjusts the split ratio of win's immediate parent container by a
// pixel delta along that container's axis, clamped to [minRatio,
// maxRatio]. Dragging towards the window always grows it, so the delta is
// negated when win is the second child.
func (t *Tree) Resize(win *Window, dx, dy int, minRatio, maxRatio float64) *Result {
	leaf, ok := t.nodes[win]
	if !ok {
		return Errorf(InvalidArgument, "Tree.Resize", "window not in tree")
	}
	parent := leaf.parent
	if parent == nil {
		return nil
	}
	var delta float64
	if parent.split == SplitHorizontal {
		if parent.rect.W == 0 {
			return nil
		}
		delta = float64(dx) / float64(parent.rect.W)
	} else {
		if parent.rect.H == 0 {
			return nil
		}
		delta = float64(dy) / float64(parent.rect.H)
	}
	if childIndex(parent, leaf) == 1 {
		delta = -delta
	}
	parent.ratio = clampFloat(parent.ratio+delta, minRatio, maxRatio)
	return nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GapValues is the per-axis gap snapshot a Recalculate call applies,
// matching the six dimensions a gap profile carries (inner, outer, and
// the four edge-specific gaps).
type GapValues struct {
	Inner, Outer, Top, Bottom, Left, Right int
}

// Recalculate re-derives every node's rectangle from base (the
// workspace's content rectangle, already reduced by the output's
// reserved-area insets), the current gap values, and skipOuter (true when
// no_gaps_when_only or smart-gaps collapsing applies). It commits each
// leaf's rectangle to its Window and, if the window has a scene node,
// repositions it.
func (t *Tree) Recalculate(base Rect, gv GapValues, skipOuter bool) {
	rect := base
	if !skipOuter {
		rect = rect.Inset(gv.Outer+gv.Top, gv.Outer+gv.Bottom, gv.Outer+gv.Left, gv.Outer+gv.Right)
	}
	if t.root == nil {
		return
	}
	t.recalcNode(t.root, rect, gv.Inner)
}

func (t *Tree) recalcNode(n *treeNode, rect Rect, innerGap int) {
	n.rect = rect
	if n.leaf {
		if n.window != nil {
			n.window.Geometry = rect
			if n.window.node != nil {
				n.window.node.SetPosition(float64(rect.X), float64(rect.Y))
				n.window.node.Resize(float64(rect.W), float64(rect.H))
			}
		}
		return
	}
	first, second := SplitByRatio(rect, n.split, n.ratio, innerGap)
	t.recalcNode(n.children[0], first, innerGap)
	t.recalcNode(n.children[1], second, innerGap)
}

// Next returns the tiled window after current in a stable left-to-right,
// depth-first leaf order, wrapping at the ends. reverse walks the order
// backwards. Returns nil if the tree is empty or current is not present.
func (t *Tree) Next(current *Window, reverse bool) *Window {
	order := t.leavesInOrder()
	if len(order) == 0 {
		return nil
	}
	idx := -1
	for i, w := range order {
		if w == current {
			idx = i
			break
		}
	}
	if idx == -1 {
		return order[0].window
	}
	if reverse {
		idx = (idx - 1 + len(order)) % len(order)
	} else {
		idx = (idx + 1) % len(order)
	}
	return order[idx].window
}

func (t *Tree) leavesInOrder() []*treeNode {
	var out []*treeNode
	var walk func(n *treeNode)
	walk = func(n *treeNode) {
		if n == nil {
			return
		}
		if n.leaf {
			out = append(out, n)
			return
		}
		walk(n.children[0])
		walk(n.children[1])
	}
	walk(t.root)
	return out
}

// Directional finds the visually-adjacent tiled window in direction d by
// ascending from win's leaf to the first ancestor whose split axis
// matches d and whose child-slot opposes win's subtree, then descending
// into the nearest leaf of the sibling subtree. Returns nil if there is no
// neighbor in that direction.
func (t *Tree) Directional(win *Window, d Direction) *Window {
	cur, ok := t.nodes[win]
	if !ok {
		return nil
	}
	axis := d.Axis()
	neededIdx := 1
	if d.IsForward() {
		neededIdx = 0
	}

	child, parent := cur, cur.parent
	for parent != nil {
		idx := childIndex(parent, child)
		if parent.split == axis && idx == neededIdx {
			n := parent.children[1-idx]
			for !n.leaf {
				if n.split == axis && !d.IsForward() {
					n = n.children[1]
				} else {
					n = n.children[0]
				}
			}
			return n.window
		}
		child, parent = parent, parent.parent
	}
	return nil
}

// startAnimation begins animating node's displayRect from its current
// value towards node.rect over duration seconds using fn. Call Step each
// frame to advance it. Animations are replaced, not queued, when a newer
// target arrives: calling this again simply
// overwrites the node's anim.
func (t *Tree) startAnimation(win *Window, duration float32, fn ease.TweenFunc) {
	n, ok := t.nodes[win]
	if !ok {
		return
	}
	if n.displayRect == (Rect{}) {
		n.displayRect = n.rect
	}
	n.anim = newNodeAnim(n.displayRect, n.rect, duration, fn)
}

// Step advances all in-flight per-node rect animations by dt seconds,
// pushing interpolated positions to each window's scene node. It returns
// whether any animation is still running.
func (t *Tree) Step(dt float32) bool {
	active := false
	var walk func(n *treeNode)
	walk = func(n *treeNode) {
		if n == nil {
			return
		}
		if n.leaf {
			if n.anim != nil {
				n.displayRect = n.anim.step(dt)
				if n.window != nil && n.window.node != nil {
					n.window.node.SetPosition(float64(n.displayRect.X), float64(n.displayRect.Y))
					n.window.node.Resize(float64(n.displayRect.W), float64(n.displayRect.H))
				}
				if n.anim.done {
					n.anim = nil
				} else {
					active = true
				}
			}
			return
		}
		walk(n.children[0])
		walk(n.children[1])
	}
	walk(t.root)
	return active
}

// Validate checks the tree invariants and returns a description for each
// violation found. It never mutates the tree; it is observational only.
func (t *Tree) Validate() []string {
	var problems []string
	if t.root != nil && t.root.parent != nil {
		problems = append(problems, "root has a non-nil parent")
	}
	var walk func(n *treeNode)
	walk = func(n *treeNode) {
		if n == nil {
			return
		}
		if n.leaf {
			if n.window == nil {
				problems = append(problems, "leaf with no window")
			}
			return
		}
		for i, c := range n.children {
			if c == nil {
				problems = append(problems, "internal node missing a child")
				continue
			}
			if c.parent != n {
				problems = append(problems, "child.parent does not point back to node")
			}
			_ = i
			walk(c)
		}
	}
	walk(t.root)
	return problems
}
