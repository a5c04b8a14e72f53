package arbor

import "fmt"

// CaptureMode selects which nodes keep receiving an interaction after one of
// them captures it.
type CaptureMode uint8

const (
	CaptureOnly  CaptureMode = iota // only the capturing node
	CaptureAbove                    // the capturing node and its ancestors
	CaptureBelow                    // the capturing node and the nodes between it and the hit node
)

func (m CaptureMode) String() string {
	switch m {
	case CaptureOnly:
		return "only"
	case CaptureAbove:
		return "above"
	case CaptureBelow:
		return "below"
	default:
		return "unknown"
	}
}

// depthClass places a node on the bubbling path relative to the capturing
// node.
type depthClass uint8

const (
	depthBelow depthClass = iota // between the hit node and the capturing node
	depthAt                      // the capturing node
	depthAbove                   // past the capturing node
)

func (m CaptureMode) allows(d depthClass) bool {
	switch m {
	case CaptureOnly:
		return d == depthAt
	case CaptureAbove:
		return d != depthBelow
	case CaptureBelow:
		return d != depthAbove
	default:
		return true
	}
}

// Interaction carries one continuous gesture from its hit node, optionally
// bubbling through the hit node's ancestors. Every listener touched by the
// gesture sees the same Interaction and may capture or cancel it.
//
// The ancestor chain is read once at the start of each dispatch. Tree
// changes made by listeners take effect on the next dispatch; nodes disposed
// during a dispatch are skipped for the rest of it.
type Interaction[E InputEvent] struct {
	hit    *Node
	bubble bool
	local  Vec2
	event  E

	capturing *Node
	mode      CaptureMode
	canceled  bool
	canceling bool

	// target is the node whose listeners are running, nil between
	// dispatches.
	target *Node

	newCancel func(src E) E
}

func newInteraction[E InputEvent](hit *Node, bubble bool, newCancel func(E) E) *Interaction[E] {
	return &Interaction[E]{hit: hit, bubble: bubble, newCancel: newCancel}
}

// Hit returns the node the gesture started on. It never changes.
func (it *Interaction[E]) Hit() *Node { return it.hit }

// Bubble reports whether events travel up from the hit node.
func (it *Interaction[E]) Bubble() bool { return it.bubble }

// Local returns the latest event position in the hit node's local space.
func (it *Interaction[E]) Local() Vec2 { return it.local }

// Event returns the event being dispatched, or the last one dispatched.
func (it *Interaction[E]) Event() E { return it.event }

// Target returns the node currently receiving the event, or nil outside a
// dispatch.
func (it *Interaction[E]) Target() *Node { return it.target }

// Captured reports whether a node captured the interaction.
func (it *Interaction[E]) Captured() bool { return it.capturing != nil }

// CapturingNode returns the node that captured the interaction, or nil.
func (it *Interaction[E]) CapturingNode() *Node { return it.capturing }

// Mode returns the capture mode. Meaningless unless Captured.
func (it *Interaction[E]) Mode() CaptureMode { return it.mode }

// Canceled reports whether the interaction was canceled.
func (it *Interaction[E]) Canceled() bool { return it.canceled }

// Capture captures the interaction for the node currently receiving it, in
// CaptureOnly mode.
func (it *Interaction[E]) Capture() {
	it.CaptureWith(CaptureOnly)
}

// CaptureWith captures the interaction for the node currently receiving it.
// Every node the new mode excludes receives one cancel event right away and
// nothing afterwards.
// Panics when called outside a dispatch, on a canceled interaction, or when
// another node already captured it.
func (it *Interaction[E]) CaptureWith(mode CaptureMode) {
	if it.target == nil {
		panic("arbor: capture called outside of dispatch")
	}
	if it.canceled || it.canceling {
		panic("arbor: cannot capture canceled interaction")
	}
	if it.capturing != nil && it.capturing != it.target {
		panic(fmt.Sprintf("arbor: interaction already captured by %s", it.capturing))
	}
	oldCapturing, oldMode := it.capturing, it.mode
	it.capturing = it.target
	it.mode = mode
	it.notifyCancel(func(chain []*Node, i int) bool {
		if chain[i] == it.capturing {
			return false
		}
		if oldCapturing != nil && !oldMode.allows(classOf(chain, i, oldCapturing)) {
			return false
		}
		return !mode.allows(classOf(chain, i, it.capturing))
	})
}

// Cancel sends a cancel event to every node still eligible for the
// interaction and turns later dispatches into no-ops. Canceling twice is a
// no-op.
func (it *Interaction[E]) Cancel() {
	if it.canceled || it.canceling {
		return
	}
	it.canceling = true
	it.notifyCancel(it.permits)
	it.canceling = false
	it.canceled = true
}

// dispatch delivers ev along the interaction's path.
func (it *Interaction[E]) dispatch(ev E) {
	if it.canceled {
		return
	}
	if local, ok := ScreenToLayer(it.hit, ev.Position()); ok {
		it.local = local
	}
	it.event = ev
	it.walk(it.permits)
}

// notifyCancel delivers a cancel event derived from the current one to the
// nodes selected by pred, then restores the dispatch state.
func (it *Interaction[E]) notifyCancel(pred func(chain []*Node, i int) bool) {
	prevEvent, prevTarget := it.event, it.target
	it.event = it.newCancel(prevEvent)
	defer func() {
		it.event = prevEvent
		it.target = prevTarget
	}()
	it.walk(pred)
}

// permits reports whether the current capture state lets chain[i] receive
// events.
func (it *Interaction[E]) permits(chain []*Node, i int) bool {
	return it.capturing == nil || it.mode.allows(classOf(chain, i, it.capturing))
}

func (it *Interaction[E]) walk(pred func(chain []*Node, i int) bool) {
	chain := it.chain()
	for i, n := range chain {
		if it.canceled {
			return
		}
		if n.state == StateDisposed || !n.hasEventListeners() {
			continue
		}
		if !pred(chain, i) {
			continue
		}
		it.notify(n)
	}
}

func (it *Interaction[E]) notify(n *Node) {
	prev := it.target
	it.target = n
	defer func() { it.target = prev }()
	n.emit(it)
}

// chain returns the delivery path, hit node first.
func (it *Interaction[E]) chain() []*Node {
	if !it.bubble {
		return []*Node{it.hit}
	}
	chain := make([]*Node, 0, 8)
	for n := it.hit; n != nil; n = n.parentNode() {
		chain = append(chain, n)
	}
	return chain
}

// classOf classifies chain[i] relative to capturing. A capturing node that
// is no longer on the path leaves every node below it.
func classOf(chain []*Node, i int, capturing *Node) depthClass {
	for j, n := range chain {
		if n != capturing {
			continue
		}
		switch {
		case i < j:
			return depthBelow
		case i == j:
			return depthAt
		default:
			return depthAbove
		}
	}
	return depthBelow
}
