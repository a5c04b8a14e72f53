package arbor

// HitTester replaces a node's default hit test. p is in the node's local
// space, unadjusted.
type HitTester interface {
	HitTest(n *Node, p Vec2) *Node
}

// HitTesterFunc adapts a function to the HitTester interface.
type HitTesterFunc func(n *Node, p Vec2) *Node

// HitTest calls f(n, p).
func (f HitTesterFunc) HitTest(n *Node, p Vec2) *Node {
	return f(n, p)
}

// HitShape is a hit region in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitTestShape returns a HitTester that reports the node itself whenever p
// falls inside shape.
func HitTestShape(shape HitShape) HitTester {
	return HitTesterFunc(func(n *Node, p Vec2) *Node {
		if shape.Contains(p.X, p.Y) {
			return n
		}
		return nil
	})
}

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// Hit resolves the node under screen point p, starting at root. root's own
// transform is honored. Returns nil when nothing is hit or root is hidden.
func Hit(root Element, p Vec2) *Node {
	n := root.AsNode()
	if !n.visible {
		return nil
	}
	lp, ok := ParentToLayer(n, p)
	if !ok {
		return nil
	}
	return n.HitTest(lp)
}
