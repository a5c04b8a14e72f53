package arbor

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Affine) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > 1e-6 || math.Abs(got.Y-want.Y) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// assertSorted checks that g's children are in non-decreasing depth order.
func assertSorted(t *testing.T, g *Group) {
	t.Helper()
	for i := 1; i < len(g.children); i++ {
		if g.children[i-1].depth > g.children[i].depth {
			t.Fatalf("children out of order at %d: %v > %v", i, g.children[i-1].depth, g.children[i].depth)
		}
	}
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

// recordSurface is a Surface that records what was painted, in order.
type recordSurface struct {
	tx    Affine
	tint  Color
	batch Batch
	clips int

	ops []paintOp
}

type paintOp struct {
	kind  string // "image", "fill", "clip", "unclip"
	tx    Affine
	tint  Color
	rect  Rect
	img   Image
	batch Batch
}

func newRecordSurface() *recordSurface {
	return &recordSurface{tx: Identity, tint: ColorWhite}
}

func (s *recordSurface) Transform() Affine     { return s.tx }
func (s *recordSurface) SetTransform(m Affine) { s.tx = m }
func (s *recordSurface) Concatenate(m Affine, ox, oy float64) {
	s.tx = s.tx.Multiply(m).Translate(-ox, -oy)
}
func (s *recordSurface) Tint() Color     { return s.tint }
func (s *recordSurface) SetTint(c Color) { s.tint = c }

func (s *recordSurface) PushBatch(b Batch) Batch {
	if b == nil {
		return nil
	}
	prev := s.batch
	s.batch = b
	if prev == nil {
		prev = defaultBatch{}
	}
	return prev
}

func (s *recordSurface) PopBatch(prev Batch) {
	if prev == nil {
		return
	}
	if _, ok := prev.(defaultBatch); ok {
		prev = nil
	}
	s.batch = prev
}

func (s *recordSurface) StartClipped(x, y, w, h float64) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	s.clips++
	s.record("clip", Rect{x, y, w, h}, nil)
	return true
}

func (s *recordSurface) EndClipped() {
	s.clips--
	s.record("unclip", Rect{}, nil)
}

func (s *recordSurface) DrawImage(img Image, x, y, w, h float64) {
	s.record("image", Rect{x, y, w, h}, img)
}

func (s *recordSurface) FillRect(x, y, w, h float64) {
	s.record("fill", Rect{x, y, w, h}, nil)
}

func (s *recordSurface) record(kind string, r Rect, img Image) {
	s.ops = append(s.ops, paintOp{kind: kind, tx: s.tx, tint: s.tint, rect: r, img: img, batch: s.batch})
}

func (s *recordSurface) fills() []paintOp {
	var out []paintOp
	for _, op := range s.ops {
		if op.kind == "fill" || op.kind == "image" {
			out = append(out, op)
		}
	}
	return out
}

// defaultBatch stands in for the backend's default batch so PushBatch never
// returns nil for a real swap.
type defaultBatch struct{}

func (defaultBatch) Release() {}

type countBatch struct{ released int }

func (b *countBatch) Release() { b.released++ }

type testImage struct{ w, h float64 }

func (i testImage) Width() float64  { return i.w }
func (i testImage) Height() float64 { return i.h }
