package arbor

// Affine is a 2D affine matrix laid out as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// Identity is the identity affine matrix.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Multiply returns m * o, i.e. o applied first, then m.
func (m Affine) Multiply(o Affine) Affine {
	return Affine{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Translate returns m * T(x, y).
func (m Affine) Translate(x, y float64) Affine {
	m[4] += m[0]*x + m[2]*y
	m[5] += m[1]*x + m[3]*y
	return m
}

// Invert computes the inverse of m. ok is false when m is singular
// (determinant within 1e-12 of zero), in which case the identity is returned.
func (m Affine) Invert() (inv Affine, ok bool) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity, false
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// Apply transforms p by m.
func (m Affine) Apply(p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// --- Coordinate conversion ---

// LayerToParent converts p from n's local space into its parent's space.
// The origin offset is removed before n's transform is applied, mirroring
// how Paint concatenates the transform.
func LayerToParent(n *Node, p Vec2) Vec2 {
	p.X -= n.OriginX()
	p.Y -= n.OriginY()
	return n.Transform().Apply(p)
}

// ParentToLayer converts p from n's parent space into n's local space.
// ok is false when n's transform is not invertible.
func ParentToLayer(n *Node, p Vec2) (Vec2, bool) {
	inv, ok := n.Transform().Invert()
	if !ok {
		return p, false
	}
	q := inv.Apply(p)
	q.X += n.OriginX()
	q.Y += n.OriginY()
	return q, true
}

// LayerToScreen converts p from n's local space to screen space by walking
// up through every ancestor.
func LayerToScreen(n *Node, p Vec2) Vec2 {
	for c := n; c != nil; c = c.parentNode() {
		p = LayerToParent(c, p)
	}
	return p
}

// ScreenToLayer converts a screen-space point into n's local space. ok is
// false when any transform on the path from the root to n is not invertible.
func ScreenToLayer(n *Node, p Vec2) (Vec2, bool) {
	if parent := n.parentNode(); parent != nil {
		var ok bool
		if p, ok = ScreenToLayer(parent, p); !ok {
			return p, false
		}
	}
	return ParentToLayer(n, p)
}

// LayerToLayer converts p from the local space of from into the local space
// of to, going through screen space.
func LayerToLayer(from, to *Node, p Vec2) (Vec2, bool) {
	return ScreenToLayer(to, LayerToScreen(from, p))
}

// ScreenBounds returns the screen-space axis-aligned box around n's
// [0, width] x [0, height] rectangle. Sizeless nodes yield an empty rect at
// their screen position.
func ScreenBounds(n *Node) Rect {
	w, h := n.impl.size()
	corners := [4]Vec2{
		LayerToScreen(n, Vec2{0, 0}),
		LayerToScreen(n, Vec2{w, 0}),
		LayerToScreen(n, Vec2{w, h}),
		LayerToScreen(n, Vec2{0, h}),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
		maxX = max(maxX, c.X)
		maxY = max(maxY, c.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
