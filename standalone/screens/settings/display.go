//go:build !libretro

package settings

import (
	"github.com/ebitenui/ebitenui/widget"
	emucore "github.com/user-none/ndsui/api"
	"github.com/user-none/ndsui/standalone/storage"
	"github.com/user-none/ndsui/standalone/types"
)

// DisplaySection manages how the two panels are laid out and filtered
type DisplaySection struct {
	callback   types.ScreenCallback
	config     *storage.Config
	systemInfo emucore.SystemInfo
	zones      []string
}

// NewDisplaySection creates a new display section
func NewDisplaySection(callback types.ScreenCallback, config *storage.Config, systemInfo emucore.SystemInfo) *DisplaySection {
	return &DisplaySection{
		callback:   callback,
		config:     config,
		systemInfo: systemInfo,
	}
}

func (d *DisplaySection) Title() string { return "Display" }

// SetConfig updates the config reference
func (d *DisplaySection) SetConfig(config *storage.Config) {
	d.config = config
}

func (d *DisplaySection) Zones() []string { return d.zones }

// Build creates the display section UI
func (d *DisplaySection) Build(focus types.FocusManager) *widget.Container {
	section := sectionColumn()
	disp := &d.config.Display

	section.AddChild(toggleRow(focus, d.callback, "display-aspect", "Maintain Aspect Ratio", disp.MaintainAspect, func() {
		disp.MaintainAspect = !disp.MaintainAspect
	}))
	section.AddChild(toggleRow(focus, d.callback, "display-swap", "Swap Screens", disp.LCDSwap, func() {
		disp.LCDSwap = !disp.LCDSwap
	}))
	section.AddChild(choiceRow(focus, d.callback, "display-mode", "Screen Layout", screenModeLabel(disp.ScreenMode), func() {
		disp.ScreenMode = nextScreenMode(disp.ScreenMode)
	}))

	rows := [][]string{{"display-aspect"}, {"display-swap"}, {"display-mode"}}
	if len(d.systemInfo.ScreenFilters) > 1 {
		section.AddChild(choiceRow(focus, d.callback, "display-filter", "Screen Filter", d.systemInfo.FilterName(disp.ScreenFilter), func() {
			disp.ScreenFilter = d.systemInfo.NextFilter(disp.ScreenFilter)
		}))
		rows = append(rows, []string{"display-filter"})
	}

	section.AddChild(choiceRow(focus, d.callback, "display-depth", "Color Depth", pixelFormatLabel(disp.PixelFormat), func() {
		if disp.PixelFormat == storage.PixelFormatRGB565 {
			disp.PixelFormat = storage.PixelFormatRGBA8888
		} else {
			disp.PixelFormat = storage.PixelFormatRGB565
		}
	}))
	section.AddChild(toggleRow(focus, d.callback, "display-fps", "Show FPS", disp.ShowFPS, func() {
		disp.ShowFPS = !disp.ShowFPS
	}))
	rows = append(rows, []string{"display-depth"}, []string{"display-fps"})

	d.zones = chainRows(focus, "display", rows)
	return section
}

func screenModeLabel(mode string) string {
	if mode == storage.ScreenModeMainOnly {
		return "Main Only"
	}
	return "Dual"
}

func nextScreenMode(mode string) string {
	if mode == storage.ScreenModeMainOnly {
		return storage.ScreenModeDual
	}
	return storage.ScreenModeMainOnly
}

func pixelFormatLabel(format string) string {
	if format == storage.PixelFormatRGB565 {
		return "16-bit"
	}
	return "32-bit"
}
