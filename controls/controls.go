// Package controls implements the on-screen virtual button overlay: layout
// for the current output, hit testing of touches, and the keyboard binding
// table. It claims touches that land on its buttons and leaves everything
// else to the router.
package controls

import (
	"image"
	"sync"

	emucore "github.com/user-none/ndsui/api"
	"github.com/user-none/ndsui/router"
)

// ButtonRect is one laid out button.
type ButtonRect struct {
	ID      int
	Name    string
	Rect    image.Rectangle
	Round   bool
	Pressed bool
}

// Controls is the virtual control overlay. It implements router.Overlay
// and router.Buttons.
type Controls struct {
	mu sync.Mutex

	buttons []ButtonRect
	visible bool
	keys    map[int]int // key code -> button ID

	held    map[int]uint32 // pointer ID -> buttons under it
	keyMask uint32

	onPress func(id int)
}

// New creates an empty, invisible overlay.
func New() *Controls {
	return &Controls{
		keys: make(map[int]int),
		held: make(map[int]uint32),
	}
}

// SetKeyMap replaces the key binding table.
func (c *Controls) SetKeyMap(keys map[int]int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = make(map[int]int, len(keys))
	for k, id := range keys {
		c.keys[k] = id
	}
	c.keyMask = 0
}

// SetOnPress registers a callback run when a button goes down from a touch.
// It is used for haptic feedback.
func (c *Controls) SetOnPress(fn func(id int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onPress = fn
}

// SetVisible shows or hides the overlay. Hidden overlays claim nothing and
// release any touch-held buttons.
func (c *Controls) SetVisible(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = v
	if !v {
		clear(c.held)
	}
}

// Visible reports whether the overlay is shown.
func (c *Controls) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Load lays the buttons out for a width x height output. All sizes derive
// from the shorter side so the overlay keeps its proportions when rotated.
// Pointers already held on the overlay stay claimed until they lift, with
// nothing pressed until they move onto a button of the new layout.
func (c *Controls) Load(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id := range c.held {
		c.held[id] = 0
	}
	c.buttons = c.buttons[:0]
	if width <= 0 || height <= 0 {
		return
	}

	u := min(width, height) / 10
	m := u / 2

	// D-pad, bottom left
	cx, cy := m+u+u/2, height-m-u-u/2
	c.addCross(cx, cy, u, false,
		emucore.ButtonUp, emucore.ButtonDown, emucore.ButtonLeft, emucore.ButtonRight)

	// Face buttons, bottom right
	cx = width - m - u - u/2
	c.addCross(cx, cy, u, true,
		emucore.ButtonX, emucore.ButtonB, emucore.ButtonY, emucore.ButtonA)

	// Shoulders
	c.add(emucore.ButtonL, image.Rect(m, m, m+2*u, m+u), false)
	c.add(emucore.ButtonR, image.Rect(width-m-2*u, m, width-m, m+u), false)

	// Select and Start, bottom center
	gap := m / 4
	top, bottom := height-m-u/2, height-m
	c.add(emucore.ButtonSelect, image.Rect(width/2-gap-u, top, width/2-gap, bottom), false)
	c.add(emucore.ButtonStart, image.Rect(width/2+gap, top, width/2+gap+u, bottom), false)
}

// addCross places four u x u buttons around (cx, cy).
func (c *Controls) addCross(cx, cy, u int, round bool, up, down, left, right int) {
	h := u / 2
	c.add(up, image.Rect(cx-h, cy-h-u, cx-h+u, cy-h), round)
	c.add(down, image.Rect(cx-h, cy-h+u, cx-h+u, cy-h+2*u), round)
	c.add(left, image.Rect(cx-h-u, cy-h, cx-h, cy-h+u), round)
	c.add(right, image.Rect(cx-h+u, cy-h, cx-h+2*u, cy-h+u), round)
}

func (c *Controls) add(id int, r image.Rectangle, round bool) {
	c.buttons = append(c.buttons, ButtonRect{ID: id, Name: buttonName(id), Rect: r, Round: round})
}

func buttonName(id int) string {
	for _, b := range emucore.DefaultButtons {
		if b.ID == id {
			return b.Name
		}
	}
	return ""
}

// HitTest implements router.Overlay. A touch that goes down on a button is
// claimed, and so is every later event from that pointer until it lifts.
// Sliding between buttons moves the press.
func (c *Controls) HitTest(ev router.TouchEvent) bool {
	c.mu.Lock()
	if !c.visible {
		c.mu.Unlock()
		return false
	}

	prev, tracked := c.held[ev.PointerID]
	claimed := false
	var mask uint32

	switch ev.Action {
	case router.TouchDown:
		mask = c.maskAt(ev.Point)
		if mask != 0 {
			c.held[ev.PointerID] = mask
			claimed = true
		}
	case router.TouchMove:
		if tracked {
			mask = c.maskAt(ev.Point)
			c.held[ev.PointerID] = mask
			claimed = true
		}
	case router.TouchUp:
		if tracked {
			delete(c.held, ev.PointerID)
			claimed = true
		}
	}

	newly := mask &^ prev
	onPress := c.onPress
	c.mu.Unlock()

	if onPress != nil && newly != 0 {
		for id := 0; id < 32; id++ {
			if newly&(1<<uint(id)) != 0 {
				onPress(id)
			}
		}
	}
	return claimed
}

func (c *Controls) maskAt(p image.Point) uint32 {
	var mask uint32
	for _, b := range c.buttons {
		if p.In(b.Rect) {
			mask |= 1 << uint(b.ID)
		}
	}
	return mask
}

// KeyBinding implements router.Overlay.
func (c *Controls) KeyBinding(key int) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.keys[key]
	return id, ok
}

// Press implements router.Buttons for key driven presses.
func (c *Controls) Press(id int, down bool) {
	if id < 0 || id > 31 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if down {
		c.keyMask |= 1 << uint(id)
	} else {
		c.keyMask &^= 1 << uint(id)
	}
}

// Pressed returns the button bitmask from touches and keys combined.
func (c *Controls) Pressed() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pressedLocked()
}

func (c *Controls) pressedLocked() uint32 {
	mask := c.keyMask
	for _, m := range c.held {
		mask |= m
	}
	return mask
}

// Buttons returns a copy of the laid out buttons with their pressed state.
func (c *Controls) Buttons() []ButtonRect {
	c.mu.Lock()
	defer c.mu.Unlock()

	mask := c.pressedLocked()
	out := make([]ButtonRect, len(c.buttons))
	copy(out, c.buttons)
	for i := range out {
		out[i].Pressed = mask&(1<<uint(out[i].ID)) != 0
	}
	return out
}

// Reset releases every touch and key press.
func (c *Controls) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.held)
	c.keyMask = 0
}
