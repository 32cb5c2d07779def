// Package router decides whether touch and key input belongs to the on-screen
// control overlay or to the emulated touchscreen.
package router

import (
	"image"
	"sync"

	"github.com/user-none/ndsui/display"
)

// TouchAction is the phase of a touch event.
type TouchAction int

const (
	TouchDown TouchAction = iota
	TouchMove
	TouchUp
)

// TouchEvent is a pointer event in output surface coordinates.
type TouchEvent struct {
	Action    TouchAction
	Point     image.Point
	PointerID int
}

// TargetKind identifies where a touch event went.
type TargetKind int

const (
	TargetIgnored TargetKind = iota
	TargetOverlay
	TargetTouchscreen
)

func (k TargetKind) String() string {
	switch k {
	case TargetOverlay:
		return "overlay"
	case TargetTouchscreen:
		return "touchscreen"
	default:
		return "ignored"
	}
}

// Target is the result of routing a touch event. X and Y are panel-local
// touchscreen coordinates and are only set for TargetTouchscreen.
type Target struct {
	Kind    TargetKind
	X, Y    int
	Pressed bool // Pen down; false on release
}

// Overlay is the on-screen control layer. HitTest is offered every touch
// first; returning true claims the event. KeyBinding maps a key code to a
// button ID.
type Overlay interface {
	HitTest(ev TouchEvent) bool
	KeyBinding(key int) (int, bool)
}

// Buttons receives button presses resolved from key events.
type Buttons interface {
	Press(id int, down bool)
}

// KeyEvent is a key press or release.
type KeyEvent struct {
	Code int
	Down bool
}

// KeyResult reports whether a key was handled.
type KeyResult int

const (
	KeyUnconsumed KeyResult = iota
	KeyConsumed
)

// Router routes input against the layout published in a display.State.
type Router struct {
	state   *display.State
	overlay Overlay
	buttons Buttons

	mu       sync.Mutex
	owner    int
	hasOwner bool
}

// New creates a router. overlay and buttons may be nil.
func New(state *display.State, overlay Overlay, buttons Buttons) *Router {
	return &Router{state: state, overlay: overlay, buttons: buttons}
}

// RouteTouch routes one touch event.
//
// The overlay sees the event first. Unclaimed events go to the touchscreen
// when force-touch is on or the point lies in the touch region; the point is
// mapped into panel coordinates and clamped. A pointer that pressed the
// touchscreen owns it until released, so dragging off the panel still
// produces a pen-up. While one pointer owns the touchscreen other pointers
// do not reach it. Before the first layout, and after teardown, every event
// is ignored.
func (r *Router) RouteTouch(ev TouchEvent) Target {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := r.state.Current()
	if l == nil || !l.Ready() {
		r.hasOwner = false
		return Target{}
	}

	owned := r.hasOwner && r.owner == ev.PointerID
	if !owned && r.overlay != nil && r.overlay.HitTest(ev) {
		return Target{Kind: TargetOverlay}
	}

	if !owned {
		if r.hasOwner {
			return Target{}
		}
		if !l.ForceTouch && !ev.Point.In(l.TouchRegion) {
			return Target{}
		}
	}

	p := l.ToTouchPanel(ev.Point)
	t := Target{Kind: TargetTouchscreen, X: p.X, Y: p.Y}
	if ev.Action == TouchUp {
		r.hasOwner = false
	} else {
		t.Pressed = true
		r.owner = ev.PointerID
		r.hasOwner = true
	}
	return t
}

// RouteKey looks the key up in the overlay's binding table. Bound keys press
// or release their button and are consumed. No geometry is involved, so keys
// route the same with or without a layout.
func (r *Router) RouteKey(ev KeyEvent) KeyResult {
	if r.overlay == nil {
		return KeyUnconsumed
	}
	id, ok := r.overlay.KeyBinding(ev.Code)
	if !ok {
		return KeyUnconsumed
	}
	if r.buttons != nil {
		r.buttons.Press(id, ev.Down)
	}
	return KeyConsumed
}

// Release drops touchscreen ownership. It reports whether a pointer was
// holding the touchscreen, in which case the caller should send a pen-up.
func (r *Router) Release() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	held := r.hasOwner
	r.hasOwner = false
	return held
}
