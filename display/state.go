package display

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrNotReady is returned by operations that need a drawable layout.
var ErrNotReady = errors.New("display layout not ready")

// State is the single shared layout. Writers hold mu while they update the
// parameters, recompute and publish; readers load the published pointer
// without locking and always see one complete Layout.
//
// A State starts Uninitialized. The first SetSurface publishes a layout;
// Teardown returns it to Uninitialized until the next SetSurface.
type State struct {
	mu         sync.Mutex
	params     Params
	hasSurface bool

	current atomic.Pointer[Layout]
}

// NewState creates an uninitialized state with the given preferences.
// Surface dimensions in p are ignored until SetSurface is called.
func NewState(p Params) *State {
	p.OutputWidth = 0
	p.OutputHeight = 0
	return &State{params: p}
}

// Current returns the published layout, or nil when uninitialized.
// The returned Layout must not be modified.
func (s *State) Current() *Layout {
	return s.current.Load()
}

// Ready reports whether a drawable layout is published.
func (s *State) Ready() bool {
	l := s.current.Load()
	return l != nil && l.Ready()
}

// Params returns a copy of the current parameters.
func (s *State) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Update applies fn to the parameters and republishes the layout if a
// surface is present. It returns the layout now in effect (nil while
// uninitialized).
func (s *State) Update(fn func(p *Params)) *Layout {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.params)
	if !s.hasSurface {
		return nil
	}
	return s.publishLocked()
}

// SetSurface records new output geometry and publishes a layout. This is
// the surface-geometry-changed event.
func (s *State) SetSurface(width, height int, format PixelFormat) *Layout {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params.OutputWidth = width
	s.params.OutputHeight = height
	s.params.PixelFormat = format
	s.hasSurface = true
	return s.publishLocked()
}

// SetSource records the framebuffer dimensions reported by the core.
func (s *State) SetSource(width, height int) *Layout {
	return s.Update(func(p *Params) {
		p.SourceWidth = width
		p.SourceHeight = height
	})
}

// SetAspect changes the aspect policy.
func (s *State) SetAspect(a AspectPolicy) *Layout {
	return s.Update(func(p *Params) { p.Aspect = a })
}

// SetFilter records whether a screen filter is active.
func (s *State) SetFilter(active bool) *Layout {
	return s.Update(func(p *Params) { p.FilterActive = active })
}

// SetLCDSwap swaps which region shows which panel.
func (s *State) SetLCDSwap(swap bool) *Layout {
	return s.Update(func(p *Params) { p.LCDSwap = swap })
}

// SetScreenMode changes which panels are drawn.
func (s *State) SetScreenMode(m ScreenMode) *Layout {
	return s.Update(func(p *Params) { p.ScreenMode = m })
}

// SetForceTouch changes the force-touch override.
func (s *State) SetForceTouch(force bool) *Layout {
	return s.Update(func(p *Params) { p.ForceTouch = force })
}

// Teardown discards the layout. This is the surface-destroyed event;
// compositing and routing become no-ops until the next SetSurface.
func (s *State) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hasSurface = false
	s.params.OutputWidth = 0
	s.params.OutputHeight = 0
	s.current.Store(nil)
}

func (s *State) publishLocked() *Layout {
	l := Recompute(s.params)
	s.current.Store(&l)
	return &l
}
