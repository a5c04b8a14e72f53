package arbor

import (
	"fmt"
	"math"
)

// State is a node's lifecycle state.
type State uint8

const (
	StateRemoved  State = iota // not attached to a rooted tree
	StateAdded                 // reachable from a scene root
	StateDisposed              // closed; must never be reused
)

func (s State) String() string {
	switch s {
	case StateRemoved:
		return "removed"
	case StateAdded:
		return "added"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Origin selects where a node's origin sits. OriginFixed uses explicit
// coordinates; the others are derived from the node's size once it is known.
type Origin uint8

const (
	OriginFixed        Origin = iota // explicit coordinates (SetOriginXY)
	OriginCenter                     // center of the node
	OriginTopLeft                    // upper left corner
	OriginTopCenter                  // center of the top edge
	OriginTopRight                   // upper right corner
	OriginCenterLeft                 // center of the left edge
	OriginCenterRight                // center of the right edge
	OriginBottomLeft                 // lower left corner
	OriginBottomCenter               // center of the bottom edge
	OriginBottomRight                // lower right corner
)

// compute returns the origin for a node of size (w, h).
func (o Origin) compute(w, h float64) (float64, float64) {
	switch o {
	case OriginCenter:
		return w / 2, h / 2
	case OriginTopCenter:
		return w / 2, 0
	case OriginTopRight:
		return w, 0
	case OriginCenterLeft:
		return 0, h / 2
	case OriginCenterRight:
		return w, h / 2
	case OriginBottomLeft:
		return 0, h
	case OriginBottomCenter:
		return w / 2, h
	case OriginBottomRight:
		return w, h
	default:
		return 0, 0
	}
}

// Element is implemented by every node kind (*Node, *Group, *ImageNode,
// *CustomNode) through the embedded Node.
type Element interface {
	AsNode() *Node
}

// nodeImpl is the per-kind behavior behind a Node. The base Node provides
// defaults; kinds override what they need.
type nodeImpl interface {
	size() (w, h float64)
	paintImpl(s Surface)
	hitTestDefault(p Vec2) *Node
	onAdd(scene *Scene)
	onRemove()
	closeImpl()
}

// nodeIDCounter is a plain counter (no atomic; arbor is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the base scene element. It is never used on its own: every kind
// embeds it and installs itself as the node's implementation.
type Node struct {
	// Identity
	ID       uint32
	Name     string
	EntityID uint32 // forwarded to the EventSink; zero means "not an entity"
	UserData any

	// Hierarchy
	parent *Group
	impl   nodeImpl
	scene  *Scene

	// Transform. Translation lives directly in tx[4], tx[5].
	tx             Affine
	scaleX, scaleY float64
	rotation       float64
	transformDirty bool

	depth float64

	origin           Origin
	originX, originY float64
	originDirty      bool

	tint  Color
	alpha float64

	visible     bool
	interactive bool
	state       State

	hitTester HitTester
	batch     Batch

	// Allocated on first connect.
	events         *registry[any]
	stateListeners *registry[stateChange]
}

func (n *Node) init(impl nodeImpl, name string) {
	n.ID = nextNodeID()
	n.Name = name
	n.impl = impl
	n.tx = Identity
	n.scaleX = 1
	n.scaleY = 1
	n.tint = ColorWhite
	n.alpha = 1
	n.visible = true
}

// AsNode returns n. It lets every node kind be passed where an Element is
// expected.
func (n *Node) AsNode() *Node {
	return n
}

// AsGroup returns the Group behind n, if n is one.
func (n *Node) AsGroup() (*Group, bool) {
	g, ok := n.impl.(*Group)
	return g, ok
}

func (n *Node) String() string {
	return fmt.Sprintf("%s#%d", n.Name, n.ID)
}

// Parent returns the group that owns n, or nil.
func (n *Node) Parent() *Group {
	return n.parent
}

func (n *Node) parentNode() *Node {
	if n.parent == nil {
		return nil
	}
	return &n.parent.Node
}

// Scene returns the scene n was last rooted in, or nil.
func (n *Node) Scene() *Scene {
	return n.scene
}

// State returns n's lifecycle state.
func (n *Node) State() State {
	return n.state
}

// IsDisposed returns true if n has been closed.
func (n *Node) IsDisposed() bool {
	return n.state == StateDisposed
}

// --- Transform ---

// SetScale sets the per-axis scale and marks the transform dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.scaleX = sx
	n.scaleY = sy
	n.transformDirty = true
}

// SetRotation sets the rotation (in radians) and marks the transform dirty.
func (n *Node) SetRotation(r float64) {
	n.rotation = r
	n.transformDirty = true
}

// SetTranslation sets the translation and marks the transform dirty.
func (n *Node) SetTranslation(x, y float64) {
	n.tx[4] = x
	n.tx[5] = y
	n.transformDirty = true
}

func (n *Node) ScaleX() float64   { return n.scaleX }
func (n *Node) ScaleY() float64   { return n.scaleY }
func (n *Node) Rotation() float64 { return n.rotation }
func (n *Node) TX() float64       { return n.tx[4] }
func (n *Node) TY() float64       { return n.tx[5] }

// Transform returns n's composed local transform, recomputing it first if a
// setter dirtied it. The matrix may be edited in place. Edits to the
// translation survive recomputation; edits to the other components are
// overwritten by the next scale or rotation change.
func (n *Node) Transform() *Affine {
	if n.transformDirty {
		sin, cos := math.Sincos(n.rotation)
		n.tx[0] = cos * n.scaleX
		n.tx[1] = sin * n.scaleX
		n.tx[2] = -sin * n.scaleY
		n.tx[3] = cos * n.scaleY
		n.transformDirty = false
	}
	return &n.tx
}

// --- Depth ---

// Depth returns n's sibling ordering key.
func (n *Node) Depth() float64 {
	return n.depth
}

// SetDepth changes n's depth and repositions it among its siblings.
// Returns n's index in its parent, or -1 if it has none.
// Panics if d is NaN.
func (n *Node) SetDepth(d float64) int {
	if math.IsNaN(d) {
		panic(fmt.Sprintf("arbor: NaN depth for %s", n))
	}
	old := n.depth
	if d == old {
		if n.parent == nil {
			return -1
		}
		return n.parent.findChild(n, d)
	}
	n.depth = d
	if n.parent == nil {
		return -1
	}
	return n.parent.depthChanged(n, old)
}

// --- Origin ---

// SetOrigin selects a logical origin. It is resolved lazily once n knows a
// non-zero size. OriginFixed keeps the current coordinates.
func (n *Node) SetOrigin(o Origin) {
	n.origin = o
	n.originDirty = o != OriginFixed
}

// SetOriginXY sets a fixed origin.
func (n *Node) SetOriginXY(x, y float64) {
	n.origin = OriginFixed
	n.originX = x
	n.originY = y
	n.originDirty = false
}

// OriginX returns the x coordinate of n's origin in its local space.
func (n *Node) OriginX() float64 {
	n.checkOrigin()
	return n.originX
}

// OriginY returns the y coordinate of n's origin in its local space.
func (n *Node) OriginY() float64 {
	n.checkOrigin()
	return n.originY
}

func (n *Node) checkOrigin() {
	if !n.originDirty {
		return
	}
	w, h := n.impl.size()
	if w > 0 && h > 0 {
		n.originX, n.originY = n.origin.compute(w, h)
		n.originDirty = false
	}
}

// invalidateOrigin is called by kinds whose size changed.
func (n *Node) invalidateOrigin() {
	if n.origin != OriginFixed {
		n.originDirty = true
	}
}

// --- Size ---

// Width returns n's width, or 0 for kinds that do not know their size.
func (n *Node) Width() float64 {
	w, _ := n.impl.size()
	return w
}

// Height returns n's height, or 0 for kinds that do not know their size.
func (n *Node) Height() float64 {
	_, h := n.impl.size()
	return h
}

// --- Appearance ---

// Tint returns n's tint color.
func (n *Node) Tint() Color { return n.tint }

// SetTint sets the color multiplied into everything n paints.
func (n *Node) SetTint(c Color) { n.tint = c }

// Alpha returns n's alpha.
func (n *Node) Alpha() float64 { return n.alpha }

// SetAlpha sets n's alpha. It multiplies into the tint's alpha when painting.
func (n *Node) SetAlpha(a float64) { n.alpha = a }

// Visible reports whether n is painted and hit-tested.
func (n *Node) Visible() bool { return n.visible }

// SetVisible shows or hides n and its subtree.
func (n *Node) SetVisible(v bool) { n.visible = v }

// Batch returns n's custom render batch, or nil.
func (n *Node) Batch() Batch { return n.batch }

// SetBatch installs a custom render batch used while painting n and its
// subtree. n owns the batch and releases it when closed.
func (n *Node) SetBatch(b Batch) { n.batch = b }

// --- Interactivity ---

// Interactive reports whether n takes part in hit testing.
func (n *Node) Interactive() bool {
	return n.interactive
}

// SetInteractive marks n interactive. Turning it on also marks every
// ancestor interactive; turning it off affects only n.
func (n *Node) SetInteractive(on bool) {
	if !on {
		n.interactive = false
		return
	}
	for c := n; c != nil; c = c.parentNode() {
		c.interactive = true
	}
}

// HitTester returns n's custom hit-test strategy, or nil.
func (n *Node) HitTester() HitTester {
	return n.hitTester
}

// SetHitTester installs a custom hit-test strategy that replaces the
// default test. Pass nil to restore the default.
func (n *Node) SetHitTester(h HitTester) {
	n.hitTester = h
}

// HitTest returns the node hit at p, given in n's local space, or nil.
func (n *Node) HitTest(p Vec2) *Node {
	if n.hitTester != nil {
		return n.hitTester.HitTest(n, p)
	}
	return n.impl.hitTestDefault(p)
}

// hitTestDefault matches p against [0, width) x [0, height).
func (n *Node) hitTestDefault(p Vec2) *Node {
	w, h := n.impl.size()
	if p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h {
		return n
	}
	return nil
}

// --- Painting ---

// Paint renders n into s. Invisible nodes are skipped. The transform, batch
// and tint are restored even if the kind's painter panics.
func (n *Node) Paint(s Surface) {
	if !n.visible {
		return
	}
	otx := s.Transform()
	otint := s.Tint()
	t := n.tint
	t.A *= n.alpha
	s.SetTint(otint.Mul(t))
	obatch := s.PushBatch(n.batch)
	defer func() {
		s.PopBatch(obatch)
		s.SetTint(otint)
		s.SetTransform(otx)
	}()
	s.Concatenate(*n.Transform(), n.OriginX(), n.OriginY())
	n.impl.paintImpl(s)
}

// --- Lifecycle ---

// OnStateChange connects a lifecycle listener. Panics raised by fn are
// recovered and reported to the scene's error channel.
func (n *Node) OnStateChange(fn func(n *Node, s State)) Connection {
	if n.stateListeners == nil {
		n.stateListeners = &registry[stateChange]{}
	}
	id := n.stateListeners.add(func(c stateChange) { fn(c.node, c.state) })
	return Connection{id: id, node: n, lifecycle: true}
}

func (n *Node) setState(s State) {
	if n.state == s {
		return
	}
	n.state = s
	if n.stateListeners.len() == 0 {
		return
	}
	c := stateChange{node: n, state: s}
	for _, sl := range n.stateListeners.slots {
		n.notifyState(sl.fn, c)
	}
}

func (n *Node) notifyState(fn func(stateChange), c stateChange) {
	defer func() {
		if r := recover(); r != nil {
			n.reportError(fmt.Errorf("arbor: %s listener on %s panicked: %v", c.state, n, r))
		}
	}()
	fn(c)
}

func (n *Node) reportError(err error) {
	if n.scene != nil {
		n.scene.reportError(err)
		return
	}
	Logger().Error("arbor: listener failed", "node", n.Name, "err", err)
}

// Close detaches n from its parent, disposes it and releases its batch.
// Closing a group closes its whole subtree. Closing twice is a no-op.
func (n *Node) Close() {
	if n.state == StateDisposed {
		return
	}
	if n.parent != nil {
		if err := n.parent.Remove(n); err != nil {
			panic("arbor: close: " + err.Error())
		}
	}
	n.impl.closeImpl()
	n.setState(StateDisposed)
	if n.batch != nil {
		n.batch.Release()
		n.batch = nil
	}
	n.hitTester = nil
	n.events = nil
	n.stateListeners = nil
}

func (n *Node) onAdd(scene *Scene) {
	n.scene = scene
	n.setState(StateAdded)
}

func (n *Node) onRemove() {
	n.setState(StateRemoved)
}

// Defaults for kinds that do not override them.
func (n *Node) size() (float64, float64) { return 0, 0 }
func (n *Node) paintImpl(Surface)        {}
func (n *Node) closeImpl()               {}

// --- Event listeners ---

// OnEvent connects a raw listener that receives every interaction
// dispatched to n (e.g. *MouseInteraction, *PointerInteraction). Connecting
// makes n and its ancestors interactive.
func (n *Node) OnEvent(fn func(ev any)) Connection {
	if n.events == nil {
		n.events = &registry[any]{}
	}
	id := n.events.add(fn)
	n.SetInteractive(true)
	return Connection{id: id, node: n}
}

// hasEventListeners reports whether anything listens on n without
// allocating the registry.
func (n *Node) hasEventListeners() bool {
	return n.events.len() > 0
}

func (n *Node) emit(ev any) {
	if n.events == nil {
		return
	}
	for _, sl := range n.events.slots {
		sl.fn(ev)
	}
}
