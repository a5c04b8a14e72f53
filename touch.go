package arbor

// TouchInteraction is an interaction driven by one touch point.
type TouchInteraction = Interaction[TouchEvent]

// TouchListener receives touch interactions. Nil callbacks are skipped.
type TouchListener struct {
	OnStart  func(ev TouchEvent, it *TouchInteraction)
	OnMove   func(ev TouchEvent, it *TouchInteraction)
	OnEnd    func(ev TouchEvent, it *TouchInteraction)
	OnCancel func(ev TouchEvent, it *TouchInteraction)
}

func (l *TouchListener) emit(it *TouchInteraction) {
	ev := it.Event()
	var fn func(TouchEvent, *TouchInteraction)
	switch ev.Kind {
	case TouchStart:
		fn = l.OnStart
	case TouchMove:
		fn = l.OnMove
	case TouchEnd:
		fn = l.OnEnd
	case TouchCancel:
		fn = l.OnCancel
	}
	if fn != nil {
		fn(ev, it)
	}
}

// OnTouch connects a touch listener to n and makes n interactive.
func (n *Node) OnTouch(l TouchListener) Connection {
	return n.OnEvent(func(ev any) {
		if it, ok := ev.(*TouchInteraction); ok {
			l.emit(it)
		}
	})
}

// TouchDispatcher runs one pointer-style gesture per touch id.
type TouchDispatcher struct {
	root   *Group
	bubble bool
	sink   EventSink

	active map[int]*TouchInteraction
}

// NewTouchDispatcher creates a dispatcher hit-testing against root.
func NewTouchDispatcher(root *Group, bubble bool) *TouchDispatcher {
	return &TouchDispatcher{root: root, bubble: bubble, active: make(map[int]*TouchInteraction)}
}

// SetBubble selects whether new interactions bubble to ancestors.
func (d *TouchDispatcher) SetBubble(bubble bool) { d.bubble = bubble }

// SetEventSink forwards dispatched events to sink. Pass nil to disable.
func (d *TouchDispatcher) SetEventSink(sink EventSink) { d.sink = sink }

// Active returns the interaction for touch id, or nil.
func (d *TouchDispatcher) Active(id int) *TouchInteraction { return d.active[id] }

// NumActive returns the number of touches with an open interaction.
func (d *TouchDispatcher) NumActive() int { return len(d.active) }

// Dispatch routes one touch event to the interaction for its id.
func (d *TouchDispatcher) Dispatch(ev TouchEvent) {
	switch ev.Kind {
	case TouchStart:
		if stale := d.active[ev.ID]; stale != nil {
			delete(d.active, ev.ID)
			stale.Cancel()
		}
		hit := Hit(d.root, ev.Position())
		if hit == nil {
			return
		}
		it := newInteraction(hit, d.bubble, touchCancel)
		d.active[ev.ID] = it
		d.deliver(it, ev)
	case TouchMove:
		if it := d.active[ev.ID]; it != nil {
			d.deliver(it, ev)
		}
	case TouchEnd, TouchCancel:
		it := d.active[ev.ID]
		if it == nil {
			return
		}
		d.deliver(it, ev)
		if d.active[ev.ID] == it {
			delete(d.active, ev.ID)
		}
	}
}

func (d *TouchDispatcher) deliver(it *TouchInteraction, ev TouchEvent) {
	it.dispatch(ev)
	if d.sink == nil {
		return
	}
	publish(d.sink, it.hit, InteractionEvent{
		Type:      EventTouchStart + EventType(ev.Kind),
		GlobalX:   ev.X,
		GlobalY:   ev.Y,
		LocalX:    it.local.X,
		LocalY:    it.local.Y,
		Modifiers: ev.Modifiers,
		TouchID:   ev.ID,
	})
}
