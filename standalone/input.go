//go:build !libretro

package standalone

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/user-none/ndsui/standalone/style"
	"github.com/user-none/ndsui/standalone/types"
)

// UINavigation is one frame of menu input on the settings and error
// screens.
type UINavigation struct {
	Direction int  // types.Dir*
	Activate  bool // Pad A just pressed; Enter and Space go through ebitenui
	Back      bool // Escape or pad B just pressed
}

// navRepeat turns a held direction into moves: one immediately, then
// repeats after NavInitialDelay that speed up to NavMinInterval.
type navRepeat struct {
	direction int
	startTime time.Time
	lastMove  time.Time
	interval  time.Duration
}

// step returns the direction to move this frame, or DirNone.
func (r *navRepeat) step(desired int, now time.Time) int {
	switch {
	case desired == types.DirNone:
		r.direction = types.DirNone
		r.interval = style.NavStartInterval
		return types.DirNone
	case desired != r.direction:
		r.direction = desired
		r.startTime = now
		r.lastMove = now
		r.interval = style.NavStartInterval
		return desired
	case now.Sub(r.startTime) >= style.NavInitialDelay && now.Sub(r.lastMove) >= r.interval:
		r.lastMove = now
		r.interval = max(r.interval-style.NavAcceleration, style.NavMinInterval)
		return desired
	}
	return types.DirNone
}

// InputManager polls keyboard and the first gamepad for UI navigation.
type InputManager struct {
	repeat navRepeat
	now    func() time.Time
}

// NewInputManager creates a new input manager
func NewInputManager() *InputManager {
	return &InputManager{
		repeat: navRepeat{interval: style.NavStartInterval},
		now:    time.Now,
	}
}

// Update reports global keys that work on every screen: F11 toggles
// fullscreen.
func (im *InputManager) Update() (fullscreenToggle bool) {
	return inpututil.IsKeyJustPressed(ebiten.KeyF11)
}

// GetUINavigation returns this frame's navigation. Vertical directions win
// over horizontal ones when both are held.
func (im *InputManager) GetUINavigation() UINavigation {
	up := ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	left := ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyArrowRight)

	var result UINavigation
	result.Back = inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		id := ids[0]
		up = up || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop)
		down = down || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom)
		left = left || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		right = right || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)

		// 0.5 threshold so a resting stick never navigates
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		up = up || y < -0.5
		down = down || y > 0.5
		left = left || x < -0.5
		right = right || x > 0.5

		result.Activate = inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		result.Back = result.Back || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
	}

	result.Direction = im.repeat.step(desiredDirection(up, down, left, right), im.now())
	return result
}

func desiredDirection(up, down, left, right bool) int {
	switch {
	case up:
		return types.DirUp
	case down:
		return types.DirDown
	case left:
		return types.DirLeft
	case right:
		return types.DirRight
	}
	return types.DirNone
}
