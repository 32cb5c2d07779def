//go:build !libretro

package standalone

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Overlay press feedback. Short and light so rapid d-pad taps stay
// distinguishable.
const (
	hapticDuration  = 20 * time.Millisecond
	hapticMagnitude = 0.5
	// hapticMinGap merges presses that land within one pulse.
	hapticMinGap = hapticDuration
)

// Haptics vibrates the device, and any connected gamepads, when an
// on-screen button is pressed.
type Haptics struct {
	enabled bool
	last    time.Time
	now     func() time.Time
	vibrate func(d time.Duration, magnitude float64)
}

// NewHaptics creates haptic feedback driven through ebiten.
func NewHaptics(enabled bool) *Haptics {
	return &Haptics{
		enabled: enabled,
		now:     time.Now,
		vibrate: vibrateAll,
	}
}

// SetEnabled turns feedback on or off.
func (h *Haptics) SetEnabled(enabled bool) {
	h.enabled = enabled
}

// OnPress is the controls press callback. It reports whether a pulse was
// fired.
func (h *Haptics) OnPress(id int) bool {
	if !h.enabled {
		return false
	}
	now := h.now()
	if !h.last.IsZero() && now.Sub(h.last) < hapticMinGap {
		return false
	}
	h.last = now
	h.vibrate(hapticDuration, hapticMagnitude)
	return true
}

// vibrateAll pulses the device motor (mobile) and every gamepad.
func vibrateAll(d time.Duration, magnitude float64) {
	ebiten.Vibrate(&ebiten.VibrateOptions{
		Duration:  d,
		Magnitude: magnitude,
	})
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		ebiten.VibrateGamepad(id, &ebiten.VibrateGamepadOptions{
			Duration:        d,
			StrongMagnitude: 0,
			WeakMagnitude:   magnitude,
		})
	}
}
