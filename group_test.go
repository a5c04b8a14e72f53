package arbor

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func TestNewGroupDefaults(t *testing.T) {
	g := NewGroup("g")
	if g.Name != "g" {
		t.Errorf("Name = %q", g.Name)
	}
	if g.NumChildren() != 0 {
		t.Errorf("NumChildren = %d", g.NumChildren())
	}
	if g.Interactive() {
		t.Error("new group should not be interactive")
	}
	if g.State() != StateRemoved {
		t.Errorf("State = %v, want removed", g.State())
	}
	if g.Width() != 0 || g.Height() != 0 {
		t.Error("unclipped group should report zero size")
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := make(map[uint32]bool)
	for i := 0; i < 100; i++ {
		n := NewGroup("n")
		if seen[n.ID] {
			t.Fatalf("duplicate ID %d", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestAddBasic(t *testing.T) {
	g := NewGroup("g")
	a := NewGroup("a")
	b := NewRect("b", 1, 1, ColorWhite)
	g.Add(a)
	g.Add(b)
	if g.NumChildren() != 2 {
		t.Fatalf("NumChildren = %d, want 2", g.NumChildren())
	}
	if g.ChildAt(0) != &a.Node || g.ChildAt(1) != &b.Node {
		t.Error("children should keep insertion order at equal depth")
	}
	if a.Parent() != g || b.Parent() != g {
		t.Error("parent not set")
	}
}

func TestAddSameParentNoOp(t *testing.T) {
	g := NewGroup("g")
	a := NewGroup("a")
	b := NewGroup("b")
	g.Add(a)
	g.Add(b)
	g.Add(a)
	if g.NumChildren() != 2 || g.ChildAt(0) != &a.Node {
		t.Error("re-adding an existing child should not move it")
	}
}

func TestAddInsertsByDepth(t *testing.T) {
	g := NewGroup("g")
	depths := []float64{5, 1, 3, 3, 0, 7, 3}
	var nodes []*Group
	for _, d := range depths {
		n := NewGroup("n")
		n.SetDepth(d)
		g.Add(n)
		nodes = append(nodes, n)
	}
	assertSorted(t, g)

	// Equal depths keep insertion order.
	var threes []*Node
	for _, c := range g.Children() {
		if c.Depth() == 3 {
			threes = append(threes, c)
		}
	}
	if len(threes) != 3 || threes[0] != &nodes[2].Node || threes[1] != &nodes[3].Node || threes[2] != &nodes[6].Node {
		t.Error("ties should be broken by insertion order")
	}
}

func TestAddReparentSingleOwner(t *testing.T) {
	root := NewScene().Root()
	p1 := NewGroup("p1")
	p2 := NewGroup("p2")
	root.Add(p1)
	root.Add(p2)
	child := NewGroup("child")
	p1.Add(child)

	var owners []int
	child.OnStateChange(func(n *Node, s State) {
		count := 0
		for _, p := range []*Group{p1, p2} {
			for _, c := range p.Children() {
				if c == n {
					count++
				}
			}
		}
		owners = append(owners, count)
	})

	p2.Add(child)

	if child.Parent() != p2 {
		t.Fatal("child should belong to p2")
	}
	if p1.NumChildren() != 0 || p2.NumChildren() != 1 {
		t.Errorf("p1=%d p2=%d children", p1.NumChildren(), p2.NumChildren())
	}
	for i, c := range owners {
		if c > 1 {
			t.Errorf("notification %d saw %d owners", i, c)
		}
	}
	if child.State() != StateAdded {
		t.Errorf("State = %v, want added", child.State())
	}
}

func TestAddCyclePanic(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")
	a.Add(b)
	b.Add(c)
	expectPanic(t, "cycle", func() { c.Add(a) })
	expectPanic(t, "self", func() { a.Add(a) })
}

func TestAddNilPanic(t *testing.T) {
	g := NewGroup("g")
	expectPanic(t, "nil", func() { g.Add(nil) })
	var n *Group
	expectPanic(t, "typed nil", func() { g.Add(n) })
}

func TestAddDisposedPanic(t *testing.T) {
	g := NewGroup("g")
	n := NewGroup("n")
	n.Close()
	expectPanic(t, "disposed", func() { g.Add(n) })
}

func TestAddAt(t *testing.T) {
	g := NewGroup("g")
	n := NewGroup("n")
	g.AddAt(n, 3, 4)
	if n.TX() != 3 || n.TY() != 4 || n.Parent() != g {
		t.Errorf("AddAt: tx=(%v,%v) parent=%v", n.TX(), n.TY(), n.Parent())
	}
}

func TestRemove(t *testing.T) {
	g := NewGroup("g")
	a := NewGroup("a")
	g.Add(a)
	if err := g.Remove(a); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if a.Parent() != nil || g.NumChildren() != 0 {
		t.Error("child not detached")
	}
}

func TestRemoveNotChildError(t *testing.T) {
	g := NewGroup("holder")
	other := NewGroup("other")
	n := NewGroup("stray")
	other.Add(n)

	err := g.Remove(n)
	if !errors.Is(err, ErrNotChild) {
		t.Fatalf("err = %v, want ErrNotChild", err)
	}
	if !strings.Contains(err.Error(), "stray") || !strings.Contains(err.Error(), "holder") {
		t.Errorf("error should name both nodes: %v", err)
	}
	if n.Parent() != other {
		t.Error("failed Remove should not detach the node")
	}
}

func TestRemoveAmongEqualDepths(t *testing.T) {
	g := NewGroup("g")
	var nodes []*Group
	for i := 0; i < 9; i++ {
		n := NewGroup("n")
		n.SetDepth(float64(i % 3))
		g.Add(n)
		nodes = append(nodes, n)
	}
	for _, i := range []int{4, 0, 8, 3} {
		if err := g.Remove(nodes[i]); err != nil {
			t.Fatalf("Remove(%d): %v", i, err)
		}
		assertSorted(t, g)
	}
	if g.NumChildren() != 5 {
		t.Errorf("NumChildren = %d, want 5", g.NumChildren())
	}
}

func TestRemoveAll(t *testing.T) {
	g := NewGroup("g")
	a, b := NewGroup("a"), NewGroup("b")
	g.Add(a)
	g.Add(b)
	g.RemoveAll()
	if g.NumChildren() != 0 || a.Parent() != nil || b.Parent() != nil {
		t.Error("RemoveAll should detach every child")
	}
	if a.IsDisposed() {
		t.Error("RemoveAll should not dispose")
	}
}

func TestSetDepthReorders(t *testing.T) {
	g := NewGroup("g")
	x := NewRect("x", 10, 10, ColorWhite)
	y := NewRect("y", 10, 10, ColorWhite)
	y.SetDepth(1)
	g.Add(x)
	g.Add(y)
	x.SetInteractive(true)
	y.SetInteractive(true)
	y.SetTranslation(100, 0)

	idx := x.SetDepth(2)
	if idx != 1 {
		t.Errorf("SetDepth returned %d, want 1", idx)
	}
	if g.ChildAt(0) != &y.Node || g.ChildAt(1) != &x.Node {
		t.Fatal("order should be [y, x]")
	}
	if hit := Hit(g, Vec2{5, 5}); hit != &x.Node {
		t.Errorf("Hit = %v, want x", hit)
	}
}

func TestSetDepthFastPath(t *testing.T) {
	g := NewGroup("g")
	a, b, c := NewGroup("a"), NewGroup("b"), NewGroup("c")
	a.SetDepth(0)
	b.SetDepth(5)
	c.SetDepth(10)
	g.Add(a)
	g.Add(b)
	g.Add(c)
	if idx := b.SetDepth(7); idx != 1 {
		t.Errorf("SetDepth = %d, want 1", idx)
	}
	if idx := b.SetDepth(7); idx != 1 {
		t.Errorf("unchanged SetDepth = %d, want 1", idx)
	}
	if g.ChildAt(1) != &b.Node {
		t.Error("b should stay in place")
	}
}

func TestSetDepthNoParent(t *testing.T) {
	n := NewGroup("n")
	if idx := n.SetDepth(3); idx != -1 {
		t.Errorf("SetDepth = %d, want -1", idx)
	}
	if n.Depth() != 3 {
		t.Errorf("Depth = %v", n.Depth())
	}
}

func TestSetDepthNaNPanics(t *testing.T) {
	g := NewGroup("g")
	a := NewGroup("a")
	b := NewGroup("b")
	b.SetDepth(1)
	g.Add(a)
	g.Add(b)

	expectPanic(t, "NaN depth", func() { a.SetDepth(math.NaN()) })
	if a.Depth() != 0 {
		t.Errorf("Depth = %v, want 0 after rejected NaN", a.Depth())
	}

	a.Close()
	if a.Parent() != nil {
		t.Error("closed node should have no parent")
	}
	if g.NumChildren() != 1 || g.ChildAt(0) != &b.Node {
		t.Errorf("children = %v, want [b]", g.Children())
	}
}

func TestCloseLostChildPanics(t *testing.T) {
	g := NewGroup("g")
	a := NewGroup("a")
	g.Add(a)
	g.Add(NewGroup("b"))
	// Corrupt the membership so Remove cannot find a.
	a.depth = 5

	expectPanic(t, "close", func() { a.Close() })
	if a.IsDisposed() {
		t.Error("node should not be disposed when detaching failed")
	}
}

func TestSortedUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := NewGroup("g")
	var nodes []*Group
	for i := 0; i < 500; i++ {
		switch op := rng.Intn(4); {
		case op == 0 || len(nodes) == 0:
			n := NewGroup("n")
			n.SetDepth(float64(rng.Intn(10)))
			g.Add(n)
			nodes = append(nodes, n)
		case op == 1:
			i := rng.Intn(len(nodes))
			if err := g.Remove(nodes[i]); err != nil {
				t.Fatalf("Remove: %v", err)
			}
			nodes = append(nodes[:i], nodes[i+1:]...)
		default:
			n := nodes[rng.Intn(len(nodes))]
			idx := n.SetDepth(float64(rng.Intn(10)) + rng.Float64())
			if g.ChildAt(idx) != &n.Node {
				t.Fatalf("SetDepth returned %d, which is not the node", idx)
			}
		}
		assertSorted(t, g)
	}
	if g.NumChildren() != len(nodes) {
		t.Errorf("NumChildren = %d, want %d", g.NumChildren(), len(nodes))
	}
}

func TestLifecyclePropagation(t *testing.T) {
	s := NewScene()
	parent := NewGroup("parent")
	child := NewGroup("child")
	leaf := NewRect("leaf", 1, 1, ColorWhite)
	parent.Add(child)
	child.Add(leaf)

	if leaf.State() != StateRemoved {
		t.Fatal("unrooted subtree should be removed")
	}
	s.Root().Add(parent)
	for _, n := range []*Node{&parent.Node, &child.Node, &leaf.Node} {
		if n.State() != StateAdded {
			t.Errorf("%s: State = %v, want added", n.Name, n.State())
		}
		if n.Scene() != s {
			t.Errorf("%s: Scene not set", n.Name)
		}
	}

	if err := s.Root().Remove(parent); err != nil {
		t.Fatal(err)
	}
	for _, n := range []*Node{&parent.Node, &child.Node, &leaf.Node} {
		if n.State() != StateRemoved {
			t.Errorf("%s: State = %v, want removed", n.Name, n.State())
		}
	}
}

func TestCloseGroupDisposesSubtree(t *testing.T) {
	s := NewScene()
	g := NewGroup("g")
	a := NewGroup("a")
	b := NewRect("b", 1, 1, ColorWhite)
	g.Add(a)
	a.Add(b)
	s.Root().Add(g)

	g.Close()

	if s.Root().NumChildren() != 0 {
		t.Error("closed group should be detached")
	}
	for _, n := range []*Node{&g.Node, &a.Node, &b.Node} {
		if !n.IsDisposed() {
			t.Errorf("%s not disposed", n.Name)
		}
	}
	if g.NumChildren() != 0 {
		t.Error("closed group should have no children")
	}
}

func TestGroupClipHitTest(t *testing.T) {
	g := NewGroup("clip")
	g.SetClip(50, 50)
	big := NewRect("big", 200, 200, ColorWhite)
	big.SetInteractive(true)
	g.Add(big)

	if hit := Hit(g, Vec2{10, 10}); hit != &big.Node {
		t.Errorf("inside clip: Hit = %v", hit)
	}
	if hit := Hit(g, Vec2{100, 100}); hit != nil {
		t.Errorf("outside clip: Hit = %v, want nil", hit)
	}
	g.ClearClip()
	if hit := Hit(g, Vec2{100, 100}); hit != &big.Node {
		t.Errorf("after ClearClip: Hit = %v", hit)
	}
}

func TestGroupPaintOrderAndIsolation(t *testing.T) {
	g := NewGroup("g")
	g.SetTranslation(100, 0)
	a := NewRect("a", 10, 10, Color{1, 0, 0, 1})
	a.SetTranslation(5, 0)
	a.SetDepth(2)
	b := NewRect("b", 10, 10, Color{0, 1, 0, 1})
	b.SetTranslation(0, 7)
	g.Add(a)
	g.Add(b)

	s := newRecordSurface()
	g.Paint(s)
	ops := s.fills()
	if len(ops) != 2 {
		t.Fatalf("painted %d ops, want 2", len(ops))
	}
	// b has lower depth and paints first.
	if ops[0].tint != (Color{0, 1, 0, 1}) || ops[1].tint != (Color{1, 0, 0, 1}) {
		t.Errorf("paint order tints = %v, %v", ops[0].tint, ops[1].tint)
	}
	// Sibling transforms never leak.
	assertMatrix(t, "b", ops[0].tx, Affine{1, 0, 0, 1, 100, 7})
	assertMatrix(t, "a", ops[1].tx, Affine{1, 0, 0, 1, 105, 0})
	assertMatrix(t, "restored", s.Transform(), Affine{1, 0, 0, 1, 100, 0})
}

func TestGroupPaintClip(t *testing.T) {
	g := NewGroup("g")
	g.SetClip(20, 20)
	g.Add(NewRect("r", 10, 10, ColorWhite))
	s := newRecordSurface()
	g.Paint(s)
	if len(s.ops) != 3 || s.ops[0].kind != "clip" || s.ops[2].kind != "unclip" {
		t.Errorf("ops = %+v", s.ops)
	}
	if s.clips != 0 {
		t.Errorf("unbalanced clips: %d", s.clips)
	}
}

func TestAsGroup(t *testing.T) {
	g := NewGroup("g")
	r := NewRect("r", 1, 1, ColorWhite)
	g.Add(r)
	if got, ok := g.AsNode().AsGroup(); !ok || got != g {
		t.Error("AsGroup on group")
	}
	if _, ok := g.ChildAt(0).AsGroup(); ok {
		t.Error("AsGroup on rect should fail")
	}
}

func BenchmarkAddAppend(b *testing.B) {
	for i := 0; i < b.N; i++ {
		g := NewGroup("g")
		for j := 0; j < 1000; j++ {
			n := NewGroup("n")
			n.SetDepth(float64(j))
			g.Add(n)
		}
	}
}
