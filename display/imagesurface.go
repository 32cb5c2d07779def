package display

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ImageSurface draws panels into an in-memory image. It backs screenshots
// and headless rendering.
type ImageSurface struct {
	dst    xdraw.Image
	scaler xdraw.Scaler
}

// NewImageSurface creates a surface drawing into dst. Smooth selects
// bilinear scaling; otherwise nearest-neighbour keeps pixels sharp.
func NewImageSurface(dst xdraw.Image, smooth bool) *ImageSurface {
	var scaler xdraw.Scaler = xdraw.NearestNeighbor
	if smooth {
		scaler = xdraw.ApproxBiLinear
	}
	return &ImageSurface{dst: dst, scaler: scaler}
}

// Image returns the destination image.
func (s *ImageSurface) Image() xdraw.Image {
	return s.dst
}

// DrawPanel implements Surface.
func (s *ImageSurface) DrawPanel(fb Framebuffer, src, dst image.Rectangle) {
	s.scaler.Scale(s.dst, dst, fb.Image(), src, xdraw.Src, nil)
}
