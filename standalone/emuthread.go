//go:build !libretro

package standalone

import (
	"sync"

	emucore "github.com/user-none/ndsui/api"
	"github.com/user-none/ndsui/display"
	"github.com/user-none/ndsui/router"
)

// maxPendingTouches bounds the touch queue. Moves are coalesced, so this
// only fills when the emulation goroutine stalls.
const maxPendingTouches = 16

// TouchState is one pen state to hand to the core.
type TouchState struct {
	X, Y    int
	Pressed bool
}

// SharedInput holds pad and touchscreen state written by the Ebiten thread
// and read by the emulation goroutine.
type SharedInput struct {
	mu      sync.Mutex
	buttons uint32
	touches []TouchState
}

// SetButtons replaces the pad bitmask.
func (si *SharedInput) SetButtons(buttons uint32) {
	si.mu.Lock()
	si.buttons = buttons
	si.mu.Unlock()
}

// Buttons returns the current pad bitmask.
func (si *SharedInput) Buttons() uint32 {
	si.mu.Lock()
	defer si.mu.Unlock()
	return si.buttons
}

// PushTouch queues a routed touchscreen target. Consecutive pressed states
// collapse into the latest one; releases are always kept so a tap shorter
// than a frame still reaches the core as a press followed by a release.
func (si *SharedInput) PushTouch(t router.Target) {
	if t.Kind != router.TargetTouchscreen {
		return
	}
	ts := TouchState{X: t.X, Y: t.Y, Pressed: t.Pressed}

	si.mu.Lock()
	defer si.mu.Unlock()

	if n := len(si.touches); n > 0 && si.touches[n-1].Pressed && ts.Pressed {
		si.touches[n-1] = ts
		return
	}
	if len(si.touches) >= maxPendingTouches {
		// Keep the newest states
		copy(si.touches, si.touches[1:])
		si.touches = si.touches[:len(si.touches)-1]
	}
	si.touches = append(si.touches, ts)
}

// TakeTouch pops the oldest queued touch. One state is applied per frame.
func (si *SharedInput) TakeTouch() (TouchState, bool) {
	si.mu.Lock()
	defer si.mu.Unlock()

	if len(si.touches) == 0 {
		return TouchState{}, false
	}
	ts := si.touches[0]
	copy(si.touches, si.touches[1:])
	si.touches = si.touches[:len(si.touches)-1]
	return ts, true
}

// Reset clears buttons and pending touches.
func (si *SharedInput) Reset() {
	si.mu.Lock()
	si.buttons = 0
	si.touches = si.touches[:0]
	si.mu.Unlock()
}

// SharedFramebuffer holds pixel data written by the emulation goroutine
// and read by Ebiten's Draw() method. Separate write and read buffers let
// the emu goroutine write a new frame while Draw uses the read copy.
type SharedFramebuffer struct {
	mu          sync.Mutex
	writePixels []byte
	readPixels  []byte
	width       int
	height      int
	seq         uint64
	status      emucore.StatusWord
}

// NewSharedFramebuffer creates a framebuffer pre-allocated for width x
// height RGBA pixels. It grows if the core later reports larger frames.
func NewSharedFramebuffer(width, height int) *SharedFramebuffer {
	size := width * height * 4
	return &SharedFramebuffer{
		writePixels: make([]byte, size),
		readPixels:  make([]byte, size),
	}
}

// Update copies a complete frame in from the emulation goroutine.
func (sf *SharedFramebuffer) Update(pixels []byte, width, height int, status emucore.StatusWord) {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	n := width * height * 4
	if cap(sf.writePixels) < n {
		sf.writePixels = make([]byte, n)
	}
	sf.writePixels = sf.writePixels[:n]
	copy(sf.writePixels, pixels)
	sf.width = width
	sf.height = height
	sf.status = status
	sf.seq++
}

// Read returns a snapshot of the latest frame. The pixels are copied under
// the lock into the read buffer, which stays valid until the next Read.
func (sf *SharedFramebuffer) Read() (display.Framebuffer, emucore.StatusWord) {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	n := sf.width * sf.height * 4
	if n > len(sf.writePixels) {
		n = len(sf.writePixels)
	}
	if cap(sf.readPixels) < n {
		sf.readPixels = make([]byte, n)
	}
	sf.readPixels = sf.readPixels[:n]
	copy(sf.readPixels, sf.writePixels[:n])

	return display.Framebuffer{
		Pix:    sf.readPixels,
		Stride: sf.width * 4,
		Width:  sf.width,
		Height: sf.height,
		Seq:    sf.seq,
	}, sf.status
}

// Seq returns the sequence number of the latest committed frame.
func (sf *SharedFramebuffer) Seq() uint64 {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return sf.seq
}

// EmuControl manages pause/resume/stop coordination between the Ebiten
// thread and the emulation goroutine.
type EmuControl struct {
	mu       sync.Mutex
	cond     *sync.Cond
	pauseReq bool
	paused   bool
	stopped  bool
}

// NewEmuControl creates a new emulation control.
func NewEmuControl() *EmuControl {
	ec := &EmuControl{}
	ec.cond = sync.NewCond(&ec.mu)
	return ec
}

// RequestPause asks the emulation goroutine to pause and blocks until it
// acknowledges, or until the goroutine is stopped.
func (ec *EmuControl) RequestPause() {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	ec.pauseReq = true
	for !ec.paused && !ec.stopped {
		ec.cond.Wait()
	}
}

// RequestResume tells the emulation goroutine to resume.
func (ec *EmuControl) RequestResume() {
	ec.mu.Lock()
	ec.pauseReq = false
	ec.cond.Broadcast()
	ec.mu.Unlock()
}

// CheckPause is called by the emulation goroutine between frames. If a
// pause has been requested it acknowledges and waits until resumed or
// stopped. Returns false if the goroutine should exit.
func (ec *EmuControl) CheckPause() bool {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	if ec.pauseReq && !ec.stopped {
		ec.paused = true
		ec.cond.Broadcast()
		for ec.pauseReq && !ec.stopped {
			ec.cond.Wait()
		}
		ec.paused = false
	}
	return !ec.stopped
}

// Stop signals the emulation goroutine to exit and releases any waiter.
func (ec *EmuControl) Stop() {
	ec.mu.Lock()
	ec.stopped = true
	ec.pauseReq = false
	ec.cond.Broadcast()
	ec.mu.Unlock()
}

// ShouldRun returns true if the goroutine should continue running.
func (ec *EmuControl) ShouldRun() bool {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return !ec.stopped
}

// IsPaused returns true if the emulation goroutine is currently paused.
func (ec *EmuControl) IsPaused() bool {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.paused
}

// WithPaused runs fn while the emulation goroutine is parked, resuming
// afterwards unless it was already paused.
func (ec *EmuControl) WithPaused(fn func()) {
	ec.mu.Lock()
	wasPaused := ec.pauseReq
	ec.mu.Unlock()

	ec.RequestPause()
	fn()
	if !wasPaused {
		ec.RequestResume()
	}
}
