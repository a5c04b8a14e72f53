package arbor

// MouseInteraction is an interaction driven by the mouse.
type MouseInteraction = Interaction[MouseEvent]

// MouseListener receives mouse interactions. Nil callbacks are skipped.
type MouseListener struct {
	OnButton func(ev MouseEvent, it *MouseInteraction)
	OnMotion func(ev MouseEvent, it *MouseInteraction)
	OnDrag   func(ev MouseEvent, it *MouseInteraction)
	OnHover  func(ev MouseEvent, it *MouseInteraction)
	OnWheel  func(ev MouseEvent, it *MouseInteraction)
	OnCancel func(ev MouseEvent, it *MouseInteraction)
}

func (l *MouseListener) emit(it *MouseInteraction) {
	ev := it.Event()
	var fn func(MouseEvent, *MouseInteraction)
	switch ev.Kind {
	case MouseKindButton:
		fn = l.OnButton
	case MouseKindMotion:
		fn = l.OnMotion
	case MouseKindDrag:
		fn = l.OnDrag
	case MouseKindHover:
		fn = l.OnHover
	case MouseKindWheel:
		fn = l.OnWheel
	case MouseKindCancel:
		fn = l.OnCancel
	}
	if fn != nil {
		fn(ev, it)
	}
}

// OnMouse connects a mouse listener to n and makes n interactive.
func (n *Node) OnMouse(l MouseListener) Connection {
	return n.OnEvent(func(ev any) {
		if it, ok := ev.(*MouseInteraction); ok {
			l.emit(it)
		}
	})
}

// MouseDispatcher turns raw mouse input into interactions on a tree.
//
// A button press on a node starts an interaction that lives until every
// pressed button is released. Motion during an interaction is delivered to
// it as MouseKindDrag; otherwise it goes one-shot to the node under the
// cursor as MouseKindMotion. Hover tracking runs independently and sends
// MouseKindHover enter/exit events to the nodes whose hover state changed.
type MouseDispatcher struct {
	root   *Group
	bubble bool
	sink   EventSink

	active  *MouseInteraction
	buttons uint8
	hover   *Node
}

// NewMouseDispatcher creates a dispatcher hit-testing against root.
func NewMouseDispatcher(root *Group, bubble bool) *MouseDispatcher {
	return &MouseDispatcher{root: root, bubble: bubble}
}

// SetBubble selects whether new interactions bubble to ancestors.
func (d *MouseDispatcher) SetBubble(bubble bool) { d.bubble = bubble }

// SetEventSink forwards dispatched events to sink. Pass nil to disable.
func (d *MouseDispatcher) SetEventSink(sink EventSink) { d.sink = sink }

// Active returns the interaction in progress, or nil.
func (d *MouseDispatcher) Active() *MouseInteraction { return d.active }

// Buttons returns the pressed-button bitmask of the active interaction.
func (d *MouseDispatcher) Buttons() uint8 { return d.buttons }

// Hovered returns the node under the cursor as of the last motion event.
func (d *MouseDispatcher) Hovered() *Node { return d.hover }

// Dispatch routes a button, motion or wheel event. Other kinds are ignored.
func (d *MouseDispatcher) Dispatch(ev MouseEvent) {
	switch ev.Kind {
	case MouseKindButton:
		d.button(ev)
	case MouseKindMotion:
		d.motion(ev)
	case MouseKindWheel:
		d.wheel(ev)
	}
}

func (d *MouseDispatcher) button(ev MouseEvent) {
	if ev.Down {
		if d.active == nil {
			hit := Hit(d.root, ev.Position())
			if hit == nil {
				return
			}
			d.active = newInteraction(hit, d.bubble, mouseCancel)
			d.buttons = 0
		}
		d.buttons |= ev.Button.mask()
		ev.Buttons = d.buttons
		d.deliver(d.active, ev)
		return
	}

	if d.active == nil {
		// The press happened before the tree changed under it, or off any
		// node. Deliver one-shot if something is there now.
		hit := Hit(d.root, ev.Position())
		if hit == nil {
			return
		}
		ev.Buttons = 0
		d.oneShot(hit, ev, d.bubble)
		return
	}
	d.buttons &^= ev.Button.mask()
	ev.Buttons = d.buttons
	it := d.active
	d.deliver(it, ev)
	if d.buttons == 0 && d.active == it {
		d.active = nil
	}
}

func (d *MouseDispatcher) motion(ev MouseEvent) {
	hit := Hit(d.root, ev.Position())
	if hit != d.hover {
		old := d.hover
		d.hover = hit
		hover := MouseEvent{Event: ev.Event, Kind: MouseKindHover, Buttons: d.buttons}
		if old != nil {
			hover.Inside = false
			d.oneShot(old, hover, false)
		}
		if hit != nil {
			hover.Inside = true
			d.oneShot(hit, hover, false)
		}
	}

	ev.Buttons = d.buttons
	if d.active != nil {
		ev.Kind = MouseKindDrag
		d.deliver(d.active, ev)
		return
	}
	if hit != nil {
		ev.Kind = MouseKindMotion
		d.oneShot(hit, ev, d.bubble)
	}
}

func (d *MouseDispatcher) wheel(ev MouseEvent) {
	ev.Buttons = d.buttons
	if d.active != nil {
		d.deliver(d.active, ev)
		return
	}
	hit := Hit(d.root, ev.Position())
	if hit == nil {
		return
	}
	d.oneShot(hit, ev, d.bubble)
}

// oneShot dispatches ev through a throwaway interaction.
func (d *MouseDispatcher) oneShot(hit *Node, ev MouseEvent, bubble bool) {
	d.deliver(newInteraction(hit, bubble, mouseCancel), ev)
}

func (d *MouseDispatcher) deliver(it *MouseInteraction, ev MouseEvent) {
	it.dispatch(ev)
	if d.sink == nil {
		return
	}
	publish(d.sink, it.hit, InteractionEvent{
		Type:      mouseEventType(ev),
		GlobalX:   ev.X,
		GlobalY:   ev.Y,
		LocalX:    it.local.X,
		LocalY:    it.local.Y,
		Button:    ev.Button,
		Modifiers: ev.Modifiers,
		DeltaX:    ev.DX,
		DeltaY:    ev.DY,
		Wheel:     ev.Velocity,
	})
}

func mouseEventType(ev MouseEvent) EventType {
	switch ev.Kind {
	case MouseKindButton:
		if ev.Down {
			return EventMouseDown
		}
		return EventMouseUp
	case MouseKindDrag:
		return EventMouseDrag
	case MouseKindHover:
		if ev.Inside {
			return EventMouseEnter
		}
		return EventMouseLeave
	case MouseKindWheel:
		return EventMouseWheel
	default:
		return EventMouseMotion
	}
}
