//go:build !libretro

package standalone

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	emucore "github.com/user-none/ndsui/api"
	"github.com/user-none/ndsui/controls"
	"github.com/user-none/ndsui/standalone/style"
)

// dpadLabels replaces d-pad names with arrows.
var dpadLabels = map[int]string{
	emucore.ButtonUp:    "↑",
	emucore.ButtonDown:  "↓",
	emucore.ButtonLeft:  "←",
	emucore.ButtonRight: "→",
}

// ControlsOverlay draws the on-screen buttons.
type ControlsOverlay struct {
	controls *controls.Controls

	face     *text.GoTextFace
	faceSize float64
}

// NewControlsOverlay creates an overlay drawing c.
func NewControlsOverlay(c *controls.Controls) *ControlsOverlay {
	return &ControlsOverlay{controls: c}
}

// Draw renders the visible buttons with the given body alpha.
func (o *ControlsOverlay) Draw(screen *ebiten.Image, alpha uint8) {
	if !o.controls.Visible() {
		return
	}
	buttons := o.controls.Buttons()
	if len(buttons) == 0 {
		return
	}

	size := float64(min(buttons[0].Rect.Dx(), buttons[0].Rect.Dy())) / 2.5
	if o.face == nil || o.faceSize != size {
		o.face = style.SizedFontFace(size)
		o.faceSize = size
	}

	for _, b := range buttons {
		fill := style.ControlFill
		if b.Pressed {
			fill = style.ControlPressed
		}
		fill.A = alpha
		border := style.ControlText
		border.A = alpha

		x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
		w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
		if b.Round {
			r := min(w, h) / 2
			vector.DrawFilledCircle(screen, x+w/2, y+h/2, r, fill, true)
			vector.StrokeCircle(screen, x+w/2, y+h/2, r, 1, border, true)
		} else {
			vector.DrawFilledRect(screen, x, y, w, h, fill, false)
			vector.StrokeRect(screen, x, y, w, h, 1, border, false)
		}

		label, ok := dpadLabels[b.ID]
		if !ok {
			label = b.Name
		}
		o.drawLabel(screen, label, x+w/2, y+h/2, alpha)
	}
}

func (o *ControlsOverlay) drawLabel(screen *ebiten.Image, label string, cx, cy float32, alpha uint8) {
	tw, th := text.Measure(label, o.face, 0)
	opts := &text.DrawOptions{}
	opts.GeoM.Translate(float64(cx)-tw/2, float64(cy)-th/2)
	c := style.ControlText
	// Labels stay readable on a faint body
	c.A = max(alpha, 0xC0)
	opts.ColorScale.ScaleWithColor(c)
	text.Draw(screen, label, o.face, opts)
}
