//go:build !libretro

package standalone

import (
	"testing"
	"time"

	"github.com/user-none/ndsui/standalone/style"
	"github.com/user-none/ndsui/standalone/types"
)

func TestDesiredDirection(t *testing.T) {
	tests := []struct {
		name                  string
		up, down, left, right bool
		want                  int
	}{
		{"none", false, false, false, false, types.DirNone},
		{"up", true, false, false, false, types.DirUp},
		{"vertical wins", false, true, true, false, types.DirDown},
		{"up beats down", true, true, false, false, types.DirUp},
		{"right", false, false, false, true, types.DirRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := desiredDirection(tt.up, tt.down, tt.left, tt.right); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNavRepeat(t *testing.T) {
	r := navRepeat{interval: style.NavStartInterval}
	start := time.Unix(1000, 0)

	if got := r.step(types.DirDown, start); got != types.DirDown {
		t.Fatalf("first press = %d, want immediate move", got)
	}
	if got := r.step(types.DirDown, start.Add(style.NavInitialDelay/2)); got != types.DirNone {
		t.Errorf("held before initial delay = %d, want no move", got)
	}

	at := start.Add(style.NavInitialDelay)
	if got := r.step(types.DirDown, at); got != types.DirDown {
		t.Errorf("held past initial delay = %d, want repeat", got)
	}
	if r.interval != style.NavStartInterval-style.NavAcceleration {
		t.Errorf("interval = %v, want it to shrink by NavAcceleration", r.interval)
	}
	if got := r.step(types.DirDown, at.Add(time.Millisecond)); got != types.DirNone {
		t.Errorf("repeat inside interval = %d, want no move", got)
	}

	if got := r.step(types.DirLeft, at.Add(2*time.Millisecond)); got != types.DirLeft {
		t.Errorf("direction change = %d, want immediate move", got)
	}
	if got := r.step(types.DirNone, at.Add(3*time.Millisecond)); got != types.DirNone || r.interval != style.NavStartInterval {
		t.Errorf("release should reset the repeat interval, got %v", r.interval)
	}
}

func TestNavRepeatIntervalFloor(t *testing.T) {
	r := navRepeat{interval: style.NavStartInterval}
	now := time.Unix(0, 0)
	r.step(types.DirUp, now)
	now = now.Add(style.NavInitialDelay)
	for range 50 {
		r.step(types.DirUp, now)
		now = now.Add(style.NavStartInterval)
	}
	if r.interval != style.NavMinInterval {
		t.Errorf("interval = %v, want floor %v", r.interval, style.NavMinInterval)
	}
}
