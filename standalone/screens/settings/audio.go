//go:build !libretro

package settings

import (
	"math"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/user-none/ndsui/standalone/storage"
	"github.com/user-none/ndsui/standalone/style"
	"github.com/user-none/ndsui/standalone/types"
)

const (
	volumeMin  = 0.0
	volumeMax  = 2.0
	volumeStep = 0.1
)

// AudioSection manages audio settings
type AudioSection struct {
	callback types.ScreenCallback
	config   *storage.Config
	zones    []string
}

// NewAudioSection creates a new audio section
func NewAudioSection(callback types.ScreenCallback, config *storage.Config) *AudioSection {
	return &AudioSection{
		callback: callback,
		config:   config,
	}
}

func (a *AudioSection) Title() string { return "Audio" }

// SetConfig updates the config reference
func (a *AudioSection) SetConfig(config *storage.Config) {
	a.config = config
}

func (a *AudioSection) Zones() []string { return a.zones }

// Build creates the audio section UI
func (a *AudioSection) Build(focus types.FocusManager) *widget.Container {
	section := sectionColumn()

	section.AddChild(toggleRow(focus, a.callback, "audio-mute", "Mute Game Audio", a.config.Audio.Muted, func() {
		a.config.Audio.Muted = !a.config.Audio.Muted
	}))

	volume := stepper{
		key:   "audio-vol",
		label: "Volume",
		value: func() string { return style.FormatPercent(a.config.Audio.Volume) },
		dec:   func() bool { return a.stepVolume(-volumeStep) },
		inc:   func() bool { return a.stepVolume(volumeStep) },
	}
	section.AddChild(stepperRow(focus, a.callback, volume))

	a.zones = chainRows(focus, "audio", [][]string{
		{"audio-mute"},
		{volume.decKey(), volume.incKey()},
	})
	return section
}

// stepVolume moves the volume by delta in tenths, clamped to range.
func (a *AudioSection) stepVolume(delta float64) bool {
	v := math.Round((a.config.Audio.Volume+delta)*10) / 10
	v = min(max(v, volumeMin), volumeMax)
	if v == a.config.Audio.Volume {
		return false
	}
	a.config.Audio.Volume = v
	return true
}
