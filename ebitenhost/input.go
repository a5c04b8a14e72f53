package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/arbor"
)

var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	b  arbor.MouseButton
}{
	{ebiten.MouseButtonLeft, arbor.MouseButtonLeft},
	{ebiten.MouseButtonRight, arbor.MouseButtonRight},
	{ebiten.MouseButtonMiddle, arbor.MouseButtonMiddle},
	{ebiten.MouseButton3, arbor.MouseButtonBack},
	{ebiten.MouseButton4, arbor.MouseButtonForward},
}

// Input polls ebiten once per tick and feeds the scene's dispatchers.
//
// The mouse drives the mouse dispatcher directly. The pointer dispatcher
// follows the left mouse button, or the first touch when no mouse gesture
// is in progress. Every touch id drives the touch dispatcher.
type Input struct {
	lastX, lastY int
	seenCursor   bool

	mousePointer bool
	touchPointer bool
	pointerTouch ebiten.TouchID

	touchIDs []ebiten.TouchID
}

// NewInput creates an input poller.
func NewInput() *Input {
	return &Input{}
}

// Poll reads this tick's input and dispatches it to scene.
func (in *Input) Poll(scene *arbor.Scene) {
	base := arbor.Event{
		Time:      float64(ebiten.Tick()) / float64(ebiten.TPS()),
		Modifiers: readModifiers(),
	}
	in.pollMouse(scene, base)
	in.pollTouches(scene, base)
}

func (in *Input) pollMouse(scene *arbor.Scene, base arbor.Event) {
	x, y := ebiten.CursorPosition()
	base.X, base.Y = float64(x), float64(y)

	if !in.seenCursor || x != in.lastX || y != in.lastY {
		dx, dy := float64(x-in.lastX), float64(y-in.lastY)
		if !in.seenCursor {
			dx, dy = 0, 0
		}
		in.seenCursor = true
		in.lastX, in.lastY = x, y
		scene.Mouse.Dispatch(arbor.MouseEvent{Event: base, Kind: arbor.MouseKindMotion, DX: dx, DY: dy})
		if in.mousePointer {
			scene.Pointer.Dispatch(arbor.PointerEvent{Event: base, Kind: arbor.PointerDrag})
		}
	}

	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.eb) {
			scene.Mouse.Dispatch(arbor.MouseEvent{Event: base, Kind: arbor.MouseKindButton, Button: mb.b, Down: true})
		}
		if inpututil.IsMouseButtonJustReleased(mb.eb) {
			scene.Mouse.Dispatch(arbor.MouseEvent{Event: base, Kind: arbor.MouseKindButton, Button: mb.b})
		}
	}

	if !in.touchPointer && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.mousePointer = true
		scene.Pointer.Dispatch(arbor.PointerEvent{Event: base, Kind: arbor.PointerStart})
	}
	if in.mousePointer && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		in.mousePointer = false
		scene.Pointer.Dispatch(arbor.PointerEvent{Event: base, Kind: arbor.PointerEnd})
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		scene.Mouse.Dispatch(arbor.MouseEvent{Event: base, Kind: arbor.MouseKindWheel, Velocity: -wy})
	}
}

func (in *Input) pollTouches(scene *arbor.Scene, base arbor.Event) {
	in.touchIDs = inpututil.AppendJustReleasedTouchIDs(in.touchIDs[:0])
	for _, id := range in.touchIDs {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		ev := base
		ev.X, ev.Y = float64(x), float64(y)
		scene.Touch.Dispatch(arbor.TouchEvent{Event: ev, Kind: arbor.TouchEnd, ID: int(id), Pressure: 1})
		if in.touchPointer && in.pointerTouch == id {
			in.touchPointer = false
			scene.Pointer.Dispatch(arbor.PointerEvent{Event: ev, Kind: arbor.PointerEnd, IsTouch: true})
		}
	}

	in.touchIDs = inpututil.AppendJustPressedTouchIDs(in.touchIDs[:0])
	for _, id := range in.touchIDs {
		x, y := ebiten.TouchPosition(id)
		ev := base
		ev.X, ev.Y = float64(x), float64(y)
		scene.Touch.Dispatch(arbor.TouchEvent{Event: ev, Kind: arbor.TouchStart, ID: int(id), Pressure: 1})
		if !in.touchPointer && !in.mousePointer {
			in.touchPointer = true
			in.pointerTouch = id
			scene.Pointer.Dispatch(arbor.PointerEvent{Event: ev, Kind: arbor.PointerStart, IsTouch: true})
		}
	}

	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	for _, id := range in.touchIDs {
		if inpututil.IsTouchJustReleased(id) || inpututil.TouchPressDuration(id) <= 1 {
			continue
		}
		x, y := ebiten.TouchPosition(id)
		px, py := inpututil.TouchPositionInPreviousTick(id)
		if x == px && y == py {
			continue
		}
		ev := base
		ev.X, ev.Y = float64(x), float64(y)
		scene.Touch.Dispatch(arbor.TouchEvent{Event: ev, Kind: arbor.TouchMove, ID: int(id), Pressure: 1})
		if in.touchPointer && in.pointerTouch == id {
			scene.Pointer.Dispatch(arbor.PointerEvent{Event: ev, Kind: arbor.PointerDrag, IsTouch: true})
		}
	}
}

// readModifiers returns the currently held modifier keys as a bitmask.
func readModifiers() arbor.KeyModifiers {
	var mods arbor.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= arbor.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= arbor.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= arbor.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= arbor.ModMeta
	}
	return mods
}
