package display

import (
	"image"
)

// Framebuffer is one frame from the core: both panels stacked, RGBA.
type Framebuffer struct {
	Pix    []byte
	Stride int // Bytes per row
	Width  int
	Height int
	Seq    uint64 // Incremented per new frame; surfaces may cache uploads by it
}

// Valid reports whether the pixel slice covers the stated dimensions.
func (fb Framebuffer) Valid() bool {
	return fb.Width > 0 && fb.Height > 0 && fb.Stride >= fb.Width*4 && len(fb.Pix) >= fb.Stride*fb.Height
}

// Image wraps the pixel data as an *image.RGBA without copying.
func (fb Framebuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    fb.Pix[:fb.Stride*fb.Height],
		Stride: fb.Stride,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}

// Surface is a drawing target for panels.
type Surface interface {
	// DrawPanel draws the src sub-image of fb scaled into dst.
	DrawPanel(fb Framebuffer, src, dst image.Rectangle)
}

// LayoutSurface is a Surface that configures itself from the layout a
// frame is drawn with. Prepare is called once per frame, before any panel,
// with the same layout the panels are placed by.
type LayoutSurface interface {
	Surface
	Prepare(l *Layout)
}

// Composite draws the main panel into l.MainRegion and the touch panel into
// l.TouchRegion, skipping the touch panel when its region is empty. It does
// nothing and returns false when l is nil or not ready, or when the frame
// does not match the layout's source dimensions.
func Composite(fb Framebuffer, l *Layout, dst Surface) bool {
	if l == nil || !l.Ready() {
		return false
	}
	if !fb.Valid() || fb.Width != l.SourceWidth || fb.Height != l.SourceHeight {
		// Geometry change in flight; the next recompute will catch up
		return false
	}

	if ls, ok := dst.(LayoutSurface); ok {
		ls.Prepare(l)
	}
	dst.DrawPanel(fb, l.SourceMain, l.MainRegion)
	if !l.TouchRegion.Empty() {
		dst.DrawPanel(fb, l.SourceTouch, l.TouchRegion)
	}
	return true
}

// Compositor draws frames using the layout published in a State.
type Compositor struct {
	state *State
}

// NewCompositor creates a compositor reading layouts from state.
func NewCompositor(state *State) *Compositor {
	return &Compositor{state: state}
}

// Composite draws fb onto dst using the current layout.
// A frame that arrives before the first layout is a no-op.
func (c *Compositor) Composite(fb Framebuffer, dst Surface) bool {
	return Composite(fb, c.state.Current(), dst)
}
