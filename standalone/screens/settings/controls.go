//go:build !libretro

package settings

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/user-none/ndsui/standalone/storage"
	"github.com/user-none/ndsui/standalone/types"
)

const opacityStep = 5

// ControlsSection manages the on-screen button overlay
type ControlsSection struct {
	callback types.ScreenCallback
	config   *storage.Config
	zones    []string
}

// NewControlsSection creates a new controls section
func NewControlsSection(callback types.ScreenCallback, config *storage.Config) *ControlsSection {
	return &ControlsSection{callback: callback, config: config}
}

func (c *ControlsSection) Title() string { return "Controls" }

// SetConfig updates the config reference
func (c *ControlsSection) SetConfig(config *storage.Config) {
	c.config = config
}

func (c *ControlsSection) Zones() []string { return c.zones }

// Build creates the controls section UI
func (c *ControlsSection) Build(focus types.FocusManager) *widget.Container {
	section := sectionColumn()
	ctl := &c.config.Controls

	section.AddChild(toggleRow(focus, c.callback, "controls-landscape", "Show Buttons in Landscape", ctl.LandscapeDraw, func() {
		ctl.LandscapeDraw = !ctl.LandscapeDraw
	}))
	section.AddChild(toggleRow(focus, c.callback, "controls-portrait", "Show Buttons in Portrait", ctl.PortraitDraw, func() {
		ctl.PortraitDraw = !ctl.PortraitDraw
	}))
	section.AddChild(toggleRow(focus, c.callback, "controls-touch", "Touch Screen from Anywhere", ctl.AlwaysTouch, func() {
		ctl.AlwaysTouch = !ctl.AlwaysTouch
	}))

	opacity := stepper{
		key:   "controls-opacity",
		label: "Button Opacity",
		value: func() string { return fmt.Sprintf("%d%%", ctl.ButtonTransparency) },
		dec: func() bool {
			if ctl.ButtonTransparency <= 0 {
				return false
			}
			ctl.ButtonTransparency = max(ctl.ButtonTransparency-opacityStep, 0)
			return true
		},
		inc: func() bool {
			if ctl.ButtonTransparency >= 100 {
				return false
			}
			ctl.ButtonTransparency = min(ctl.ButtonTransparency+opacityStep, 100)
			return true
		},
	}
	section.AddChild(stepperRow(focus, c.callback, opacity))

	section.AddChild(toggleRow(focus, c.callback, "controls-haptic", "Vibrate on Press", ctl.Haptic, func() {
		ctl.Haptic = !ctl.Haptic
	}))

	c.zones = chainRows(focus, "controls", [][]string{
		{"controls-landscape"},
		{"controls-portrait"},
		{"controls-touch"},
		{opacity.decKey(), opacity.incKey()},
		{"controls-haptic"},
	})
	return section
}
