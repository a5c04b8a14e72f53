package arbor

// PointerInteraction is an interaction driven by a single pointer.
type PointerInteraction = Interaction[PointerEvent]

// PointerListener receives pointer interactions. Nil callbacks are skipped.
// OnCancel receives both input-level cancels and the cancels synthesized by
// Capture and Cancel.
type PointerListener struct {
	OnStart  func(ev PointerEvent, it *PointerInteraction)
	OnDrag   func(ev PointerEvent, it *PointerInteraction)
	OnEnd    func(ev PointerEvent, it *PointerInteraction)
	OnCancel func(ev PointerEvent, it *PointerInteraction)
}

func (l *PointerListener) emit(it *PointerInteraction) {
	ev := it.Event()
	var fn func(PointerEvent, *PointerInteraction)
	switch ev.Kind {
	case PointerStart:
		fn = l.OnStart
	case PointerDrag:
		fn = l.OnDrag
	case PointerEnd:
		fn = l.OnEnd
	case PointerCancel:
		fn = l.OnCancel
	}
	if fn != nil {
		fn(ev, it)
	}
}

// OnPointer connects a pointer listener to n and makes n interactive.
func (n *Node) OnPointer(l PointerListener) Connection {
	return n.OnEvent(func(ev any) {
		if it, ok := ev.(*PointerInteraction); ok {
			l.emit(it)
		}
	})
}

// PointerDispatcher tracks a single pointer gesture at a time.
type PointerDispatcher struct {
	root   *Group
	bubble bool
	sink   EventSink

	active *PointerInteraction
}

// NewPointerDispatcher creates a dispatcher hit-testing against root.
func NewPointerDispatcher(root *Group, bubble bool) *PointerDispatcher {
	return &PointerDispatcher{root: root, bubble: bubble}
}

// SetBubble selects whether new interactions bubble to ancestors.
func (d *PointerDispatcher) SetBubble(bubble bool) { d.bubble = bubble }

// SetEventSink forwards dispatched events to sink. Pass nil to disable.
func (d *PointerDispatcher) SetEventSink(sink EventSink) { d.sink = sink }

// Active returns the gesture in progress, or nil.
func (d *PointerDispatcher) Active() *PointerInteraction { return d.active }

// Dispatch routes one pointer event. A start hit-tests the tree and opens a
// new interaction; drag, end and cancel go to the open one and are dropped
// when there is none. End and cancel close the interaction.
// A start that arrives while a gesture is still open cancels the stale one.
func (d *PointerDispatcher) Dispatch(ev PointerEvent) {
	switch ev.Kind {
	case PointerStart:
		if d.active != nil {
			stale := d.active
			d.active = nil
			stale.Cancel()
		}
		hit := Hit(d.root, ev.Position())
		if hit == nil {
			return
		}
		d.active = newInteraction(hit, d.bubble, pointerCancel)
		d.deliver(d.active, ev)
	case PointerDrag:
		if d.active != nil {
			d.deliver(d.active, ev)
		}
	case PointerEnd, PointerCancel:
		it := d.active
		if it == nil {
			return
		}
		d.deliver(it, ev)
		if d.active == it {
			d.active = nil
		}
	}
}

func (d *PointerDispatcher) deliver(it *PointerInteraction, ev PointerEvent) {
	it.dispatch(ev)
	if d.sink == nil {
		return
	}
	publish(d.sink, it.hit, InteractionEvent{
		Type:      EventPointerStart + EventType(ev.Kind),
		GlobalX:   ev.X,
		GlobalY:   ev.Y,
		LocalX:    it.local.X,
		LocalY:    it.local.Y,
		Modifiers: ev.Modifiers,
	})
}
