package display

import (
	"image"
	"image/color"
	"image/draw"
)

// Render composites fb into a new image the size of the layout's output,
// letterbox bands filled with background. Low color layouts are quantized
// the same way the live surface is. Returns ErrNotReady when there is no
// drawable layout or the frame does not match it.
func Render(fb Framebuffer, l *Layout, smooth bool, background color.Color) (*image.RGBA, error) {
	if l == nil || !l.Ready() {
		return nil, ErrNotReady
	}
	img := image.NewRGBA(l.Output())
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	if !Composite(fb, l, NewImageSurface(img, smooth && l.FilterActive)) {
		return nil, ErrNotReady
	}
	if l.LowColor {
		Quantize565(img.Pix)
	}
	return img, nil
}

// Quantize565 reduces RGBA pixels in place to the colors representable in
// RGB565, replicating the high bits into the dropped low bits so full white
// stays full white. Alpha is untouched.
func Quantize565(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		r := pix[i] >> 3
		g := pix[i+1] >> 2
		b := pix[i+2] >> 3
		pix[i] = r<<3 | r>>2
		pix[i+1] = g<<2 | g>>4
		pix[i+2] = b<<3 | b>>2
	}
}
