//go:build !libretro

package standalone

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/ndsui/display"
	"github.com/user-none/ndsui/standalone/style"
)

// FramebufferRenderer owns the ebiten image the core's frames are uploaded
// to and draws panels from it onto the screen. It implements
// display.Surface for one Draw call at a time.
type FramebufferRenderer struct {
	compositor *display.Compositor

	offscreen *ebiten.Image
	seq       uint64
	lowColor  bool
	scratch   []byte // Quantized copy for low color output

	screen   *ebiten.Image
	filter   ebiten.Filter
	drawOpts ebiten.DrawImageOptions
}

// NewFramebufferRenderer creates a renderer drawing with the layouts
// published in state.
func NewFramebufferRenderer(state *display.State) *FramebufferRenderer {
	return &FramebufferRenderer{compositor: display.NewCompositor(state)}
}

// Draw fills the letterbox and composites fb onto screen. It returns false
// if nothing was drawn, before the first layout or while a geometry change
// is in flight.
func (r *FramebufferRenderer) Draw(screen *ebiten.Image, fb display.Framebuffer) bool {
	screen.Fill(style.Letterbox)

	r.screen = screen
	drawn := r.compositor.Composite(fb, r)
	r.screen = nil
	return drawn
}

// Prepare implements display.LayoutSurface. Filter and color depth come
// from the layout the panels are placed by.
func (r *FramebufferRenderer) Prepare(l *display.Layout) {
	r.filter = ebiten.FilterNearest
	if l.FilterActive {
		r.filter = ebiten.FilterLinear
	}
	if l.LowColor != r.lowColor {
		r.lowColor = l.LowColor
		r.seq = 0
	}
}

// DrawPanel implements display.Surface.
func (r *FramebufferRenderer) DrawPanel(fb display.Framebuffer, src, dst image.Rectangle) {
	img := r.upload(fb)
	if img == nil || src.Empty() || dst.Empty() {
		return
	}

	r.drawOpts = ebiten.DrawImageOptions{}
	r.drawOpts.GeoM.Scale(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	r.drawOpts.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	r.drawOpts.Filter = r.filter
	r.screen.DrawImage(img.SubImage(src).(*ebiten.Image), &r.drawOpts)
}

// upload writes fb into the offscreen image once per frame sequence. Both
// panels share one upload.
func (r *FramebufferRenderer) upload(fb display.Framebuffer) *ebiten.Image {
	if !fb.Valid() {
		return nil
	}
	if r.offscreen == nil || r.offscreen.Bounds().Dx() != fb.Width || r.offscreen.Bounds().Dy() != fb.Height {
		if r.offscreen != nil {
			r.offscreen.Deallocate()
		}
		r.offscreen = ebiten.NewImage(fb.Width, fb.Height)
		r.seq = 0
	}
	if fb.Seq != 0 && fb.Seq == r.seq {
		return r.offscreen
	}

	pix := fb.Pix[:fb.Stride*fb.Height]
	if fb.Stride != fb.Width*4 || r.lowColor {
		pix = r.packed(fb)
	}
	r.offscreen.WritePixels(pix)
	r.seq = fb.Seq
	return r.offscreen
}

// packed copies fb into scratch with no row padding, quantizing for low
// color output.
func (r *FramebufferRenderer) packed(fb display.Framebuffer) []byte {
	row := fb.Width * 4
	n := row * fb.Height
	if cap(r.scratch) < n {
		r.scratch = make([]byte, n)
	}
	r.scratch = r.scratch[:n]
	for y := 0; y < fb.Height; y++ {
		copy(r.scratch[y*row:(y+1)*row], fb.Pix[y*fb.Stride:])
	}
	if r.lowColor {
		display.Quantize565(r.scratch)
	}
	return r.scratch
}

// Close releases the offscreen image.
func (r *FramebufferRenderer) Close() {
	if r.offscreen != nil {
		r.offscreen.Deallocate()
		r.offscreen = nil
	}
}
