package arbor

import (
	"fmt"
	"sort"
)

// Group is a node that holds children ordered by depth. Children with equal
// depth keep insertion order; the last one added paints on top and wins hit
// tests.
type Group struct {
	Node
	children []*Node

	clip         bool
	clipW, clipH float64
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	g := &Group{}
	g.Node.init(g, name)
	return g
}

// Children returns the child list in paint order. The returned slice MUST
// NOT be mutated by the caller.
func (g *Group) Children() []*Node {
	return g.children
}

// NumChildren returns the number of children.
func (g *Group) NumChildren() int {
	return len(g.children)
}

// ChildAt returns the child at the given index.
func (g *Group) ChildAt(index int) *Node {
	return g.children[index]
}

// SetClip clips painting and hit testing of the subtree to
// [0, w) x [0, h) in the group's local space. A clipped group reports that
// size as its width and height.
func (g *Group) SetClip(w, h float64) {
	g.clip = true
	g.clipW = w
	g.clipH = h
	g.invalidateOrigin()
}

// ClearClip removes clipping.
func (g *Group) ClearClip() {
	g.clip = false
	g.clipW, g.clipH = 0, 0
	g.invalidateOrigin()
}

// Clipped reports whether the group clips its children.
func (g *Group) Clipped() bool {
	return g.clip
}

// --- Tree manipulation ---

// Add inserts child at the position given by its depth, after any siblings
// of equal depth. A child of another group is removed from it first; adding
// an existing child is a no-op.
// Panics if child is nil, disposed, or an ancestor of g.
func (g *Group) Add(c Element) {
	if c == nil {
		panic("arbor: cannot add nil child")
	}
	child := c.AsNode()
	if child == nil {
		panic("arbor: cannot add nil child")
	}
	if child.parent == g {
		return
	}
	if globalDebug {
		debugCheckDisposed(&g.Node, "Add (group)")
	}
	if child.state == StateDisposed {
		panic(fmt.Sprintf("arbor: cannot add disposed node %s to %s", child, &g.Node))
	}
	if isAncestor(child, &g.Node) {
		panic("arbor: adding child would create a cycle")
	}
	if old := child.parent; old != nil {
		old.removeAt(old.findChild(child, child.depth))
		if child.parent != nil {
			// A removal listener already re-parented it.
			return
		}
	}
	g.insert(child)
	child.parent = g
	if g.state == StateAdded && child.state != StateAdded {
		child.impl.onAdd(g.scene)
	}
	if child.interactive {
		g.SetInteractive(true)
	}
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(g)
	}
}

// AddAt sets child's translation to (x, y) and adds it.
func (g *Group) AddAt(c Element, x, y float64) {
	c.AsNode().SetTranslation(x, y)
	g.Add(c)
}

// Remove detaches child from g. The caller owns the detached node and must
// re-add or close it. Returns an error wrapping ErrNotChild if child does
// not belong to g.
func (g *Group) Remove(c Element) error {
	child := c.AsNode()
	idx := -1
	if child.parent == g {
		idx = g.findChild(child, child.depth)
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s is not a child of %s", ErrNotChild, child, &g.Node)
	}
	g.removeAt(idx)
	return nil
}

// RemoveAll detaches every child. Children are NOT disposed.
func (g *Group) RemoveAll() {
	for len(g.children) > 0 {
		g.removeAt(len(g.children) - 1)
	}
}

// DisposeAll closes every child.
func (g *Group) DisposeAll() {
	for len(g.children) > 0 {
		g.children[len(g.children)-1].Close()
	}
}

// insert places child after every sibling of lower or equal depth and
// returns its index. Appending is O(1); otherwise binary search.
func (g *Group) insert(child *Node) int {
	n := len(g.children)
	if n == 0 || child.depth >= g.children[n-1].depth {
		g.children = append(g.children, child)
		return n
	}
	d := child.depth
	idx := sort.Search(n, func(i int) bool { return g.children[i].depth > d })
	g.children = append(g.children, nil)
	copy(g.children[idx+1:], g.children[idx:])
	g.children[idx] = child
	return idx
}

// findChild locates child, assumed to sit at the given depth. Binary search
// lands somewhere in the run of equal depths, then the run is scanned in
// both directions. Returns -1 if child is not there.
func (g *Group) findChild(child *Node, depth float64) int {
	lo, hi := 0, len(g.children)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		d := g.children[mid].depth
		switch {
		case d < depth:
			lo = mid + 1
		case d > depth:
			hi = mid - 1
		default:
			for i := mid; i >= 0 && g.children[i].depth == depth; i-- {
				if g.children[i] == child {
					return i
				}
			}
			for i := mid + 1; i < len(g.children) && g.children[i].depth == depth; i++ {
				if g.children[i] == child {
					return i
				}
			}
			return -1
		}
	}
	return -1
}

// removeAt detaches the child at idx and, if g is rooted, notifies the
// child's subtree that it was removed.
func (g *Group) removeAt(idx int) {
	child := g.children[idx]
	g.splice(idx)
	child.parent = nil
	if g.state == StateAdded && child.state == StateAdded {
		child.impl.onRemove()
	}
}

// splice drops the slot at idx without touching the child.
func (g *Group) splice(idx int) {
	copy(g.children[idx:], g.children[idx+1:])
	g.children[len(g.children)-1] = nil
	g.children = g.children[:len(g.children)-1]
}

// depthChanged moves child after its depth changed from oldDepth and
// returns its new index. A child that still fits between its neighbors
// stays where it is.
func (g *Group) depthChanged(child *Node, oldDepth float64) int {
	idx := g.findChild(child, oldDepth)
	if idx < 0 {
		panic(fmt.Sprintf("arbor: %s not found in %s at depth %v", child, &g.Node, oldDepth))
	}
	d := child.depth
	last := len(g.children) - 1
	if (idx == 0 || g.children[idx-1].depth <= d) &&
		(idx == last || g.children[idx+1].depth >= d) {
		return idx
	}
	g.splice(idx)
	return g.insert(child)
}

// --- Node behavior ---

func (g *Group) size() (float64, float64) {
	if g.clip {
		return g.clipW, g.clipH
	}
	return 0, 0
}

// hitTestDefault scans children topmost first. When no child is interactive
// and nothing listens on g directly, g drops its own interactive flag so the
// next scan from above skips it.
func (g *Group) hitTestDefault(p Vec2) *Node {
	if g.clip && !(p.X >= 0 && p.X < g.clipW && p.Y >= 0 && p.Y < g.clipH) {
		return nil
	}
	sawInteractive := false
	for i := len(g.children) - 1; i >= 0; i-- {
		if i >= len(g.children) {
			continue
		}
		child := g.children[i]
		if !child.interactive {
			continue
		}
		sawInteractive = true
		if !child.visible {
			continue
		}
		lp, ok := ParentToLayer(child, p)
		if !ok {
			continue
		}
		if hit := child.HitTest(lp); hit != nil {
			return hit
		}
	}
	if !sawInteractive && !g.hasEventListeners() {
		g.interactive = false
	}
	return nil
}

// paintImpl restores the incoming transform before each child so sibling
// transforms never accumulate.
func (g *Group) paintImpl(s Surface) {
	if g.clip {
		if !s.StartClipped(0, 0, g.clipW, g.clipH) {
			return
		}
		defer s.EndClipped()
	}
	tx := s.Transform()
	defer s.SetTransform(tx)
	for _, child := range g.children {
		s.SetTransform(tx)
		child.Paint(s)
	}
}

func (g *Group) onAdd(scene *Scene) {
	g.Node.onAdd(scene)
	for _, child := range g.children {
		if child.state != StateAdded {
			child.impl.onAdd(scene)
		}
	}
}

func (g *Group) onRemove() {
	g.Node.onRemove()
	for _, child := range g.children {
		if child.state == StateAdded {
			child.impl.onRemove()
		}
	}
}

func (g *Group) closeImpl() {
	g.DisposeAll()
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parentNode() {
		if p == candidate {
			return true
		}
	}
	return false
}
