package arbor

import "log/slog"

// EventType identifies the kind of an InteractionEvent.
type EventType uint8

const (
	EventMouseDown   EventType = iota // a mouse button was pressed
	EventMouseUp                      // a mouse button was released
	EventMouseMotion                  // the cursor moved with no interaction active
	EventMouseDrag                    // the cursor moved during a button interaction
	EventMouseEnter                   // the cursor entered a node
	EventMouseLeave                   // the cursor left a node
	EventMouseWheel                   // the wheel scrolled

	// Pointer and touch values follow the order of PointerKind and TouchKind.
	EventPointerStart
	EventPointerDrag
	EventPointerEnd
	EventPointerCancel
	EventTouchStart
	EventTouchMove
	EventTouchEnd
	EventTouchCancel
)

// EventSink is the interface for optional ECS integration. When set on a
// Scene, every event dispatched to an interaction whose hit node has a
// non-zero EntityID is forwarded to it.
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the EventSink.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
	DeltaX    float64 // mouse motion and drag
	DeltaY    float64
	Wheel     float64 // mouse wheel velocity
	TouchID   int
}

func publish(sink EventSink, hit *Node, ev InteractionEvent) {
	if hit == nil || hit.EntityID == 0 {
		return
	}
	ev.EntityID = hit.EntityID
	sink.EmitEvent(ev)
}

// Scene ties a root group to one dispatcher per input modality, an error
// channel and a logger. It is the context object hosts pass around in place
// of globals.
type Scene struct {
	root *Group

	Mouse   *MouseDispatcher
	Pointer *PointerDispatcher
	Touch   *TouchDispatcher

	sink    EventSink
	logger  *slog.Logger
	onError func(error)
	debug   bool

	script      *InputScript
	injectQueue []syntheticEvent
	injectLast  Vec2
	frame       int
}

// NewScene creates a scene with a rooted, empty root group. Dispatchers
// bubble by default.
func NewScene() *Scene {
	s := &Scene{}
	s.root = NewGroup("root")
	s.Mouse = NewMouseDispatcher(s.root, true)
	s.Pointer = NewPointerDispatcher(s.root, true)
	s.Touch = NewTouchDispatcher(s.root, true)
	s.root.onAdd(s)
	return s
}

// Root returns the scene's root group.
func (s *Scene) Root() *Group {
	return s.root
}

// Frame returns the number of Update calls so far.
func (s *Scene) Frame() int {
	return s.frame
}

// Update advances per-frame state: it runs the next scripted input step, if
// a script is attached, then feeds at most one queued injected event to the
// dispatchers.
func (s *Scene) Update() {
	s.frame++
	if s.script != nil && !s.script.done {
		s.script.step(s)
	}
	s.processInjectedInput()
}

// Paint renders the tree into surf, leaving surf's transform as it found it
// even if a painter panics.
func (s *Scene) Paint(surf Surface) {
	defer surf.SetTransform(surf.Transform())
	s.root.Paint(surf)
}

// SetBubble selects whether new interactions bubble, for every modality.
func (s *Scene) SetBubble(bubble bool) {
	s.Mouse.SetBubble(bubble)
	s.Pointer.SetBubble(bubble)
	s.Touch.SetBubble(bubble)
}

// SetEventSink sets the optional ECS bridge.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
	s.Mouse.SetEventSink(sink)
	s.Pointer.SetEventSink(sink)
	s.Touch.SetEventSink(sink)
}

// SetLogger sets the logger used for nodes rooted in this scene. nil falls
// back to the package logger.
func (s *Scene) SetLogger(l *slog.Logger) {
	s.logger = l
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return Logger()
}

// OnError sets the error channel that receives panics recovered from
// lifecycle listeners. Without one they are logged at error level.
func (s *Scene) OnError(fn func(error)) {
	s.onError = fn
}

func (s *Scene) reportError(err error) {
	if s.onError != nil {
		s.onError(err)
		return
	}
	s.Logger().Error("arbor: listener failed", "err", err)
}

// SetDebugMode enables or disables debug mode. When enabled, adding to a
// disposed group panics with a descriptive message and tree depth and child
// count warnings are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which may lack a Scene) can check it cheaply.
var globalDebug bool
