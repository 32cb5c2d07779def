// Package display maps the core's stacked dual-panel framebuffer onto the
// output surface. It computes where each panel is drawn for a given surface
// geometry and user preferences, publishes that Layout to the draw and input
// paths, and blits frames according to it.
package display

import (
	"image"
)

// PixelFormat is the pixel format of the output surface.
type PixelFormat int

const (
	PixelFormatRGBA8888 PixelFormat = iota
	PixelFormatRGB565               // Reduced color output
)

// String returns the config name of the pixel format.
func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB565:
		return "rgb565"
	default:
		return "rgba8888"
	}
}

// ParsePixelFormat converts a config name into a PixelFormat.
// Unknown names fall back to RGBA8888.
func ParsePixelFormat(name string) PixelFormat {
	if name == "rgb565" {
		return PixelFormatRGB565
	}
	return PixelFormatRGBA8888
}

// AspectPolicy controls how panels are scaled into the output.
type AspectPolicy int

const (
	AspectStretch  AspectPolicy = iota // Fill each half of the output exactly
	AspectMaintain                     // Preserve the panel aspect ratio, letterboxed
)

// String returns the display name of the policy.
func (a AspectPolicy) String() string {
	if a == AspectMaintain {
		return "Maintain Aspect"
	}
	return "Stretch"
}

// ScreenMode selects which panels are drawn.
type ScreenMode int

const (
	ScreenModeDual     ScreenMode = iota // Main and touch panel side by side or stacked
	ScreenModeMainOnly                   // Main panel only; touch panel hidden
)

// String returns the display name of the mode.
func (m ScreenMode) String() string {
	if m == ScreenModeMainOnly {
		return "Main Screen Only"
	}
	return "Dual Screen"
}

// Params holds every input that affects the layout.
type Params struct {
	OutputWidth  int
	OutputHeight int
	PixelFormat  PixelFormat
	SourceWidth  int // Framebuffer width
	SourceHeight int // Framebuffer height, both panels
	Aspect       AspectPolicy
	FilterActive bool
	LCDSwap      bool
	ScreenMode   ScreenMode
	ForceTouch   bool
}

// Layout is the computed mapping from framebuffer to output surface.
// Layouts are immutable once published; a new one replaces the old on
// every geometry or setting change.
type Layout struct {
	Params

	Landscape bool
	LowColor  bool // Reduced color output with no screen filter

	MainRegion  image.Rectangle // Where the main panel is drawn
	TouchRegion image.Rectangle // Where the touch panel is drawn; empty when hidden
	SourceMain  image.Rectangle // Top half of the framebuffer
	SourceTouch image.Rectangle // Bottom half of the framebuffer
}

// Ready reports whether the layout describes something drawable.
func (l *Layout) Ready() bool {
	return l.OutputWidth > 0 && l.OutputHeight > 0 && !l.MainRegion.Empty() && !l.SourceMain.Empty()
}

// Output returns the output surface bounds.
func (l *Layout) Output() image.Rectangle {
	return image.Rect(0, 0, l.OutputWidth, l.OutputHeight)
}

// Recompute derives a Layout from p. It has no side effects and returns
// identical results for identical inputs. Zero or negative dimensions
// produce a Layout with both regions empty.
func Recompute(p Params) Layout {
	l := Layout{Params: p}
	l.Landscape = p.OutputWidth > p.OutputHeight
	l.LowColor = p.PixelFormat == PixelFormatRGB565 && !p.FilterActive

	if p.OutputWidth <= 0 || p.OutputHeight <= 0 || p.SourceWidth <= 0 || p.SourceHeight < 2 {
		return l
	}

	half := p.SourceHeight / 2
	l.SourceMain = image.Rect(0, 0, p.SourceWidth, half)
	l.SourceTouch = image.Rect(0, half, p.SourceWidth, 2*half)

	area := image.Rect(0, 0, p.OutputWidth, p.OutputHeight)

	if p.ScreenMode == ScreenModeMainOnly {
		if p.Aspect == AspectMaintain {
			area = fitCentered(p.OutputWidth, p.OutputHeight, p.SourceWidth, half)
		}
		l.MainRegion = area
		return l
	}

	// Aspect of the two-panel arrangement in the stacking direction
	arrW, arrH := p.SourceWidth, 2*half
	if l.Landscape {
		arrW, arrH = 2*p.SourceWidth, half
	}
	if p.Aspect == AspectMaintain {
		area = fitCentered(p.OutputWidth, p.OutputHeight, arrW, arrH)
	}

	l.MainRegion, l.TouchRegion = splitHalves(area, l.Landscape)
	if p.LCDSwap {
		l.MainRegion, l.TouchRegion = l.TouchRegion, l.MainRegion
	}
	return l
}

// ToTouchPanel maps an output point into panel-local touch coordinates by
// inverting the TouchRegion -> SourceTouch scale. The result is clamped to
// the panel. With an empty touch region the whole output stands in for the
// panel.
func (l *Layout) ToTouchPanel(p image.Point) image.Point {
	region := l.TouchRegion
	if region.Empty() {
		region = l.Output()
	}
	sw, sh := l.SourceTouch.Dx(), l.SourceTouch.Dy()
	if region.Empty() || sw <= 0 || sh <= 0 {
		return image.Point{}
	}

	x := (p.X - region.Min.X) * sw / region.Dx()
	y := (p.Y - region.Min.Y) * sh / region.Dy()
	return image.Pt(clamp(x, 0, sw-1), clamp(y, 0, sh-1))
}

// fitCentered returns the largest rectangle with aspect aw:ah that fits in
// w x h, centered. The bands left over on either side are the letterbox.
func fitCentered(w, h, aw, ah int) image.Rectangle {
	if aw*h > w*ah {
		// Arrangement is wider than the output: fit width, bands top and bottom
		fh := w * ah / aw
		y := (h - fh) / 2
		return image.Rect(0, y, w, y+fh)
	}
	fw := h * aw / ah
	x := (w - fw) / 2
	return image.Rect(x, 0, x+fw, h)
}

// splitHalves cuts r into two adjacent halves: left/right when landscape,
// top/bottom otherwise.
func splitHalves(r image.Rectangle, landscape bool) (first, second image.Rectangle) {
	if landscape {
		mid := r.Min.X + r.Dx()/2
		return image.Rect(r.Min.X, r.Min.Y, mid, r.Max.Y), image.Rect(mid, r.Min.Y, r.Max.X, r.Max.Y)
	}
	mid := r.Min.Y + r.Dy()/2
	return image.Rect(r.Min.X, r.Min.Y, r.Max.X, mid), image.Rect(r.Min.X, mid, r.Max.X, r.Max.Y)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
