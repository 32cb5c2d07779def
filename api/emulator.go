package emucore

import "time"

// Core is the bridge to the native DS emulation core. The core owns CPU,
// graphics and audio emulation; the frontend only feeds it input and pulls
// frames, samples and telemetry out of it.
//
// Calls are made from the emulation goroutine, or from another goroutine
// while the emulation goroutine is parked.
type Core interface {
	// SystemInfo returns metadata for UI configuration.
	SystemInfo() SystemInfo

	// PanelWidth returns the width of the framebuffer the core renders,
	// after any screen filter has been applied.
	PanelWidth() int

	// PanelHeight returns the height of the framebuffer. It covers both
	// stacked panels: the main panel on top and the touch panel below.
	PanelHeight() int

	// RenderFrame copies the most recent frame into buf as RGBA pixels
	// (PanelWidth*PanelHeight*4 bytes) and returns the packed telemetry.
	RenderFrame(buf []byte) StatusWord

	// ScreenFilter returns the index of the active screen filter (0 = none).
	ScreenFilter() int

	// SetScreenFilter changes the screen filter. Panel dimensions may change.
	SetScreenFilter(index int)

	// SetWorkingDir tells the core where to keep states, battery saves,
	// cheats and temporary files.
	SetWorkingDir(dir, tempDir string)

	// LoadROM loads a ROM image. name is the basename used for per-game files.
	LoadROM(rom []byte, name string) error

	// CloseROM unloads the current ROM.
	CloseROM()

	// RunFrame executes one frame of emulation.
	RunFrame()

	// SetButtons sets the pad state as a button bitmask (see Button* bits).
	SetButtons(buttons uint32)

	// TouchScreenTouch presses the touch panel at panel-local coordinates.
	TouchScreenTouch(x, y int)

	// TouchScreenRelease lifts the pen from the touch panel.
	TouchScreenRelease()

	// AudioSamples returns stereo 16-bit PCM samples produced since the
	// last call.
	AudioSamples() []int16

	// SaveState writes the current state into slot. The core persists it.
	SaveState(slot int) error

	// RestoreState restores the state stored in slot.
	RestoreState(slot int) error

	// SlotInfo returns the modification time of the state stored in slot.
	// The bool is false when the slot is empty.
	SlotInfo(slot int) (time.Time, bool)

	// Close releases any resources held by the core.
	Close()
}
