package arbor

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNodeDefaults(t *testing.T) {
	n := NewRect("r", 4, 5, ColorWhite)
	if !n.Visible() {
		t.Error("Visible should default to true")
	}
	if n.Interactive() {
		t.Error("Interactive should default to false")
	}
	if n.Alpha() != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha())
	}
	if n.ScaleX() != 1 || n.ScaleY() != 1 {
		t.Error("scale should default to 1")
	}
	if n.Width() != 4 || n.Height() != 5 {
		t.Errorf("size = %vx%v", n.Width(), n.Height())
	}
	if n.Parent() != nil || n.Scene() != nil {
		t.Error("new node should be detached")
	}
	if !strings.HasPrefix(n.String(), "r#") {
		t.Errorf("String = %q", n.String())
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		StateRemoved:  "removed",
		StateAdded:    "added",
		StateDisposed: "disposed",
		State(9):      "State(9)",
	} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestOnStateChangeSequence(t *testing.T) {
	s := NewScene()
	n := NewRect("n", 1, 1, ColorWhite)
	var got []State
	n.OnStateChange(func(_ *Node, st State) { got = append(got, st) })

	s.Root().Add(n)
	s.Root().Remove(n)
	s.Root().Add(n)
	n.Close()

	want := []State{StateAdded, StateRemoved, StateAdded, StateRemoved, StateDisposed}
	if len(got) != len(want) {
		t.Fatalf("states = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("state %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOnStateChangeUnrootedAddIsSilent(t *testing.T) {
	g := NewGroup("g")
	n := NewGroup("n")
	fired := false
	n.OnStateChange(func(*Node, State) { fired = true })
	g.Add(n)
	if fired || n.State() != StateRemoved {
		t.Error("adding to an unrooted group should not change state")
	}
}

func TestLifecyclePanicIsolated(t *testing.T) {
	s := NewScene()
	var errs []error
	s.OnError(func(err error) { errs = append(errs, err) })

	n := NewRect("n", 1, 1, ColorWhite)
	var first, second bool
	n.OnStateChange(func(*Node, State) {
		first = true
		panic("boom")
	})
	n.OnStateChange(func(*Node, State) { second = true })

	s.Root().Add(n)

	if !first || !second {
		t.Errorf("both listeners should run: first=%v second=%v", first, second)
	}
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "boom") {
		t.Errorf("errs = %v", errs)
	}
	if n.Parent() != s.Root() || n.State() != StateAdded {
		t.Error("the add itself should complete")
	}
}

func TestLifecyclePanicLoggedWithoutErrorHandler(t *testing.T) {
	var buf bytes.Buffer
	s := NewScene()
	s.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	n := NewGroup("noisy")
	n.OnStateChange(func(*Node, State) { panic("oops") })
	s.Root().Add(n)

	if !strings.Contains(buf.String(), "oops") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestConnectionClose(t *testing.T) {
	n := NewGroup("n")
	calls := 0
	c := n.OnStateChange(func(*Node, State) { calls++ })
	c.Close()
	c.Close()
	NewScene().Root().Add(n)
	if calls != 0 {
		t.Errorf("closed listener called %d times", calls)
	}

	var zero Connection
	zero.Close()
}

func TestEventConnectionClose(t *testing.T) {
	n := NewGroup("n")
	calls := 0
	c := n.OnEvent(func(any) { calls++ })
	if !n.hasEventListeners() {
		t.Fatal("expected listener")
	}
	n.emit(1)
	c.Close()
	n.emit(2)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if n.hasEventListeners() {
		t.Error("listener should be gone")
	}
}

func TestDisconnectDuringEmit(t *testing.T) {
	n := NewGroup("n")
	var order []string
	var second Connection
	n.OnEvent(func(any) {
		order = append(order, "first")
		second.Close()
	})
	second = n.OnEvent(func(any) { order = append(order, "second") })

	n.emit(nil)
	n.emit(nil)
	// The first emit keeps its snapshot.
	if strings.Join(order, ",") != "first,second,first" {
		t.Errorf("order = %v", order)
	}
}

func TestHasEventListenersDoesNotAllocate(t *testing.T) {
	n := NewGroup("n")
	if n.hasEventListeners() {
		t.Fatal("no listeners expected")
	}
	if n.events != nil {
		t.Error("query should not allocate the registry")
	}
}

func TestCloseIdempotent(t *testing.T) {
	b := &countBatch{}
	n := NewRect("n", 1, 1, ColorWhite)
	n.SetBatch(b)
	g := NewGroup("g")
	g.Add(n)

	n.Close()
	n.Close()

	if !n.IsDisposed() {
		t.Error("expected disposed")
	}
	if n.Parent() != nil || g.NumChildren() != 0 {
		t.Error("Close should detach")
	}
	if b.released != 1 {
		t.Errorf("batch released %d times, want 1", b.released)
	}
	if n.Batch() != nil {
		t.Error("batch should be dropped")
	}
}

// --- Painting ---

func TestPaintInvisibleSkipped(t *testing.T) {
	n := NewRect("n", 1, 1, ColorWhite)
	n.SetVisible(false)
	s := newRecordSurface()
	n.Paint(s)
	if len(s.ops) != 0 {
		t.Errorf("invisible node painted %d ops", len(s.ops))
	}
}

func TestPaintTintAndAlpha(t *testing.T) {
	g := NewGroup("g")
	g.SetTint(Color{0.5, 1, 1, 1})
	n := NewRect("n", 1, 1, Color{1, 0.5, 1, 1})
	n.SetAlpha(0.5)
	g.Add(n)

	s := newRecordSurface()
	g.Paint(s)
	ops := s.fills()
	if len(ops) != 1 {
		t.Fatalf("ops = %d", len(ops))
	}
	want := Color{0.5, 0.5, 1, 0.5}
	if ops[0].tint != want {
		t.Errorf("tint = %+v, want %+v", ops[0].tint, want)
	}
	if s.Tint() != ColorWhite {
		t.Errorf("tint not restored: %+v", s.Tint())
	}
}

func TestPaintOriginAndTransform(t *testing.T) {
	n := NewRect("n", 10, 20, ColorWhite)
	n.SetOrigin(OriginCenter)
	n.SetTranslation(100, 50)
	s := newRecordSurface()
	n.Paint(s)
	op := s.fills()[0]
	got := op.tx.Apply(Vec2{5, 10})
	assertVec(t, "origin on screen", got, Vec2{100, 50})
}

func TestPaintBatchPushPop(t *testing.T) {
	g := NewGroup("g")
	b := &countBatch{}
	g.SetBatch(b)
	inner := NewRect("inner", 1, 1, ColorWhite)
	g.Add(inner)
	outer := NewRect("outer", 1, 1, ColorWhite)
	root := NewGroup("root")
	root.Add(g)
	root.Add(outer)

	s := newRecordSurface()
	root.Paint(s)
	ops := s.fills()
	if len(ops) != 2 {
		t.Fatalf("ops = %d", len(ops))
	}
	if ops[0].batch != b {
		t.Error("inner should paint with the group's batch")
	}
	if ops[1].batch != nil {
		t.Error("outer should paint with the default batch")
	}
	if s.batch != nil {
		t.Error("batch not restored")
	}
}

func TestPaintRestoresOnPanic(t *testing.T) {
	b := &countBatch{}
	n := NewCustomNode("bad", 1, 1, func(Surface) { panic("paint failed") })
	n.SetBatch(b)
	n.SetTint(Color{0, 0, 0, 1})

	s := newRecordSurface()
	func() {
		defer func() { recover() }()
		n.Paint(s)
	}()
	if s.batch != nil {
		t.Error("batch should be popped after panic")
	}
	if s.Tint() != ColorWhite {
		t.Error("tint should be restored after panic")
	}
	assertMatrix(t, "transform after panic", s.Transform(), Identity)
}

func TestGroupPaintRestoresTransformOnPanic(t *testing.T) {
	g := NewGroup("g")
	g.SetTranslation(10, 20)
	bad := NewCustomNode("bad", 1, 1, func(Surface) { panic("paint failed") })
	bad.SetTranslation(5, 5)
	g.Add(bad)

	s := newRecordSurface()
	func() {
		defer func() { recover() }()
		g.Paint(s)
	}()
	assertMatrix(t, "transform after panic", s.Transform(), Identity)
}

func TestScenePaintRestoresTransformOnPanic(t *testing.T) {
	scene := NewScene()
	scene.Root().SetTranslation(3, 4)
	scene.Root().Add(NewCustomNode("bad", 1, 1, func(Surface) { panic("paint failed") }))

	s := newRecordSurface()
	func() {
		defer func() { recover() }()
		scene.Paint(s)
	}()
	assertMatrix(t, "transform after panic", s.Transform(), Identity)
}

func TestImageNodePaint(t *testing.T) {
	img := testImage{32, 16}
	n := NewImageNode("img", img)
	if n.Width() != 32 || n.Height() != 16 {
		t.Errorf("size = %vx%v", n.Width(), n.Height())
	}
	n.SetSize(64, 0)
	s := newRecordSurface()
	n.Paint(s)
	op := s.fills()[0]
	if op.kind != "image" || op.img != img || op.rect != (Rect{0, 0, 64, 16}) {
		t.Errorf("op = %+v", op)
	}
	n.Close()
	if n.Image() != nil {
		t.Error("Close should drop the image")
	}
}

func TestReportErrorWithoutScene(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(prev)

	n := NewGroup("loose")
	n.reportError(errors.New("detached failure"))
	if !strings.Contains(buf.String(), "detached failure") {
		t.Errorf("log = %q", buf.String())
	}
}
