package arbor

// CustomNode paints through a callback, in its own local space.
type CustomNode struct {
	Node
	width, height float64
	paint         func(s Surface)
}

// NewCustomNode creates a node of the given size painted by fn. A zero size
// keeps the node out of the default hit test.
func NewCustomNode(name string, w, h float64, fn func(s Surface)) *CustomNode {
	n := &CustomNode{width: w, height: h, paint: fn}
	n.Node.init(n, name)
	return n
}

// NewRect creates a custom node that fills a w x h rectangle with its tint.
func NewRect(name string, w, h float64, c Color) *CustomNode {
	n := NewCustomNode(name, w, h, nil)
	n.paint = func(s Surface) { s.FillRect(0, 0, n.width, n.height) }
	n.SetTint(c)
	return n
}

// SetSize changes the declared size.
func (n *CustomNode) SetSize(w, h float64) {
	n.width = w
	n.height = h
	n.invalidateOrigin()
}

// SetPaint replaces the paint callback.
func (n *CustomNode) SetPaint(fn func(s Surface)) {
	n.paint = fn
}

func (n *CustomNode) size() (float64, float64) {
	return n.width, n.height
}

func (n *CustomNode) paintImpl(s Surface) {
	if n.paint != nil {
		n.paint(s)
	}
}

func (n *CustomNode) closeImpl() {
	n.paint = nil
}
