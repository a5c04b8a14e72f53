package arbor

// ImageNode draws an Image, optionally stretched to a forced size.
type ImageNode struct {
	Node
	image          Image
	forceW, forceH float64
}

// NewImageNode creates a node that draws img at its natural size.
func NewImageNode(name string, img Image) *ImageNode {
	n := &ImageNode{image: img}
	n.Node.init(n, name)
	return n
}

// Image returns the drawn image, or nil.
func (n *ImageNode) Image() Image {
	return n.image
}

// SetImage replaces the drawn image.
func (n *ImageNode) SetImage(img Image) {
	n.image = img
	n.invalidateOrigin()
}

// SetSize forces the drawn size. A zero dimension falls back to the image's.
func (n *ImageNode) SetSize(w, h float64) {
	n.forceW = w
	n.forceH = h
	n.invalidateOrigin()
}

func (n *ImageNode) size() (float64, float64) {
	w, h := n.forceW, n.forceH
	if n.image != nil {
		if w <= 0 {
			w = n.image.Width()
		}
		if h <= 0 {
			h = n.image.Height()
		}
	}
	return w, h
}

func (n *ImageNode) paintImpl(s Surface) {
	if n.image == nil {
		return
	}
	w, h := n.size()
	s.DrawImage(n.image, 0, 0, w, h)
}

func (n *ImageNode) closeImpl() {
	n.image = nil
}
