//go:build !libretro

package standalone

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	emucore "github.com/user-none/ndsui/api"
	"github.com/user-none/ndsui/standalone/style"
)

// hudBaseSize is the HUD text size on a 384 pixel output.
const hudBaseSize = 15

// HUD draws the core's frame rate and CPU load line.
type HUD struct {
	face     *text.GoTextFace
	faceSize float64
	opts     text.DrawOptions
}

// NewHUD creates a HUD.
func NewHUD() *HUD {
	return &HUD{}
}

// hudTextSize scales the text with the larger output dimension.
func hudTextSize(width, height int) float64 {
	return float64(max(width, height)) / float64(emucore.NativeHeight) * hudBaseSize
}

// Draw renders status in the top-left corner.
func (h *HUD) Draw(screen *ebiten.Image, status emucore.StatusWord) {
	b := screen.Bounds()
	size := hudTextSize(b.Dx(), b.Dy())
	if size <= 0 {
		return
	}
	if h.face == nil || h.faceSize != size {
		h.face = style.SizedFontFace(size)
		h.faceSize = size
	}

	h.opts = text.DrawOptions{}
	h.opts.GeoM.Translate(size/2, size/2)
	h.opts.ColorScale.ScaleWithColor(style.HUDText)
	text.Draw(screen, status.String(), h.face, &h.opts)
}
