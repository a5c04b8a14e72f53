package arbor

// InputEvent is implemented by every event an Interaction can carry.
type InputEvent interface {
	Position() Vec2
}

// Event holds the fields shared by every input event.
type Event struct {
	Time      float64 // seconds, source defined
	X, Y      float64 // screen coordinates
	Modifiers KeyModifiers
}

// Position returns the screen position of the event.
func (e Event) Position() Vec2 {
	return Vec2{e.X, e.Y}
}

// --- Mouse ---

// MouseKind distinguishes mouse event payloads.
type MouseKind uint8

const (
	MouseKindButton MouseKind = iota // button pressed or released
	MouseKindMotion                  // cursor moved with no interaction active
	MouseKindDrag                    // cursor moved during a button interaction
	MouseKindHover                   // cursor entered or left a node
	MouseKindWheel                   // wheel scrolled
	MouseKindCancel                  // interaction canceled or captured away
)

var mouseKindNames = [...]string{"button", "motion", "drag", "hover", "wheel", "cancel"}

func (k MouseKind) String() string {
	if int(k) < len(mouseKindNames) {
		return mouseKindNames[k]
	}
	return "unknown"
}

// MouseEvent is a mouse input event.
type MouseEvent struct {
	Event
	Kind     MouseKind
	Button   MouseButton // MouseKindButton
	Down     bool        // MouseKindButton
	DX, DY   float64     // MouseKindMotion, MouseKindDrag
	Velocity float64     // MouseKindWheel; positive scrolls down
	Inside   bool        // MouseKindHover; true on enter
	Buttons  uint8       // pressed-button bitmask after this event
}

// Pressed reports whether b is held according to ev.Buttons.
func (ev MouseEvent) Pressed(b MouseButton) bool {
	return ev.Buttons&b.mask() != 0
}

func mouseCancel(src MouseEvent) MouseEvent {
	return MouseEvent{Event: src.Event, Kind: MouseKindCancel, Button: src.Button, Buttons: src.Buttons}
}

// --- Pointer ---

// PointerKind is the phase of a pointer gesture.
type PointerKind uint8

const (
	PointerStart PointerKind = iota
	PointerDrag
	PointerEnd
	PointerCancel
)

var pointerKindNames = [...]string{"start", "drag", "end", "cancel"}

func (k PointerKind) String() string {
	if int(k) < len(pointerKindNames) {
		return pointerKindNames[k]
	}
	return "unknown"
}

// PointerEvent is a single-pointer gesture event, produced from either the
// mouse or a touch.
type PointerEvent struct {
	Event
	Kind    PointerKind
	IsTouch bool
}

func pointerCancel(src PointerEvent) PointerEvent {
	return PointerEvent{Event: src.Event, Kind: PointerCancel, IsTouch: src.IsTouch}
}

// --- Touch ---

// TouchKind is the phase of one touch.
type TouchKind uint8

const (
	TouchStart TouchKind = iota
	TouchMove
	TouchEnd
	TouchCancel
)

var touchKindNames = [...]string{"start", "move", "end", "cancel"}

func (k TouchKind) String() string {
	if int(k) < len(touchKindNames) {
		return touchKindNames[k]
	}
	return "unknown"
}

// TouchEvent is an event for one touch point.
type TouchEvent struct {
	Event
	Kind     TouchKind
	ID       int
	Pressure float64
	Size     float64
}

func touchCancel(src TouchEvent) TouchEvent {
	return TouchEvent{Event: src.Event, Kind: TouchCancel, ID: src.ID}
}
