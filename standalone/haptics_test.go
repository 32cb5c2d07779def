//go:build !libretro

package standalone

import (
	"testing"
	"time"
)

func newTestHaptics(enabled bool) (*Haptics, *time.Time, *int) {
	h := NewHaptics(enabled)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pulses := 0
	h.now = func() time.Time { return now }
	h.vibrate = func(d time.Duration, magnitude float64) {
		if d <= 0 || magnitude <= 0 || magnitude > 1 {
			panic("bad vibration")
		}
		pulses++
	}
	return h, &now, &pulses
}

func TestHapticsDisabled(t *testing.T) {
	h, _, pulses := newTestHaptics(false)
	if h.OnPress(4) {
		t.Error("disabled haptics fired")
	}
	if *pulses != 0 {
		t.Errorf("pulses = %d", *pulses)
	}
}

func TestHapticsMergesRapidPresses(t *testing.T) {
	h, now, pulses := newTestHaptics(true)

	if !h.OnPress(4) {
		t.Fatal("first press should pulse")
	}
	*now = now.Add(hapticMinGap / 2)
	if h.OnPress(5) {
		t.Error("press within one pulse should merge")
	}
	*now = now.Add(hapticMinGap)
	if !h.OnPress(6) {
		t.Error("press after the gap should pulse")
	}
	if *pulses != 2 {
		t.Errorf("pulses = %d, want 2", *pulses)
	}
}

func TestHapticsToggle(t *testing.T) {
	h, _, pulses := newTestHaptics(true)
	h.SetEnabled(false)
	h.OnPress(0)
	h.SetEnabled(true)
	h.OnPress(0)
	if *pulses != 1 {
		t.Errorf("pulses = %d, want 1", *pulses)
	}
}
