package arbor

// inputSource selects the dispatcher a synthetic event is fed to.
type inputSource uint8

const (
	sourceMouse inputSource = iota
	sourcePointer
	sourceTouch
)

type injectAction uint8

const (
	injectPress injectAction = iota
	injectMove
	injectRelease
	injectWheel
)

// syntheticEvent is a single injected input event in root-group coordinates.
type syntheticEvent struct {
	source inputSource
	action injectAction
	x, y   float64
	button MouseButton
	id     int
	delta  float64
}

// InjectPress queues a left-button press at (x, y). Queued events are
// consumed one per Scene.Update call.
func (s *Scene) InjectPress(x, y float64) {
	s.inject(syntheticEvent{source: sourceMouse, action: injectPress, x: x, y: y, button: MouseButtonLeft})
}

// InjectMove queues a cursor move to (x, y). Between InjectPress and
// InjectRelease it is delivered as a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.inject(syntheticEvent{source: sourceMouse, action: injectMove, x: x, y: y})
}

// InjectRelease queues a left-button release at (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.inject(syntheticEvent{source: sourceMouse, action: injectRelease, x: x, y: y, button: MouseButtonLeft})
}

// InjectWheel queues a wheel event with the given velocity at (x, y).
func (s *Scene) InjectWheel(x, y, delta float64) {
	s.inject(syntheticEvent{source: sourceMouse, action: injectWheel, x: x, y: y, delta: delta})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	s.injectDrag(sourceMouse, MouseButtonLeft, 0, fromX, fromY, toX, toY, frames)
}

func (s *Scene) injectDrag(src inputSource, b MouseButton, id int, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.inject(syntheticEvent{source: src, action: injectPress, x: fromX, y: fromY, button: b, id: id})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.inject(syntheticEvent{
			source: src, action: injectMove, id: id,
			x: fromX + (toX-fromX)*t,
			y: fromY + (toY-fromY)*t,
		})
	}
	s.inject(syntheticEvent{source: src, action: injectRelease, x: toX, y: toY, button: b, id: id})
}

func (s *Scene) inject(ev syntheticEvent) {
	s.injectQueue = append(s.injectQueue, ev)
}

// processInjectedInput pops one event from the inject queue and feeds it to
// the dispatcher for its source. Returns true if an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	base := Event{Time: float64(s.frame), X: evt.x, Y: evt.y}
	switch evt.source {
	case sourceMouse:
		ev := MouseEvent{Event: base, Button: evt.button}
		switch evt.action {
		case injectPress, injectRelease:
			ev.Kind = MouseKindButton
			ev.Down = evt.action == injectPress
		case injectMove:
			ev.Kind = MouseKindMotion
			ev.DX = evt.x - s.injectLast.X
			ev.DY = evt.y - s.injectLast.Y
		case injectWheel:
			ev.Kind = MouseKindWheel
			ev.Velocity = evt.delta
		}
		s.Mouse.Dispatch(ev)
	case sourcePointer:
		kind := PointerDrag
		switch evt.action {
		case injectPress:
			kind = PointerStart
		case injectRelease:
			kind = PointerEnd
		}
		s.Pointer.Dispatch(PointerEvent{Event: base, Kind: kind})
	case sourceTouch:
		kind := TouchMove
		switch evt.action {
		case injectPress:
			kind = TouchStart
		case injectRelease:
			kind = TouchEnd
		}
		s.Touch.Dispatch(TouchEvent{Event: base, Kind: kind, ID: evt.id, Pressure: 1})
	}
	s.injectLast = Vec2{X: evt.x, Y: evt.y}
	return true
}
