package storage

// Config represents the application configuration stored in config.json
type Config struct {
	Version  int            `json:"version"`
	Theme    string         `json:"theme"`    // Theme name: "Default", "Dark", "Light", "Retro"
	FontSize int            `json:"fontSize"` // 10-32, default 14
	Display  DisplayConfig  `json:"display"`
	Controls ControlsConfig `json:"controls"`
	Audio    AudioConfig    `json:"audio"`
	Window   WindowConfig   `json:"window"`
	Input    InputConfig    `json:"input"`
	Paths    PathsConfig    `json:"paths"`
}

// Screen modes stored in DisplayConfig.ScreenMode.
const (
	ScreenModeDual     = "dual"
	ScreenModeMainOnly = "main"
)

// Pixel formats stored in DisplayConfig.PixelFormat.
const (
	PixelFormatRGBA8888 = "rgba8888"
	PixelFormatRGB565   = "rgb565"
)

// DisplayConfig contains the panel layout preferences
type DisplayConfig struct {
	MaintainAspect bool   `json:"maintainAspect"` // Letterbox instead of stretching each half
	LCDSwap        bool   `json:"lcdSwap"`        // Draw the touch panel where the main panel goes
	ScreenMode     string `json:"screenMode"`     // "dual" or "main"
	ScreenFilter   int    `json:"screenFilter"`   // Core filter index, 0 = none
	ShowFPS        bool   `json:"showFPS"`
	PixelFormat    string `json:"pixelFormat"` // "rgba8888" or "rgb565"
}

// ControlsConfig contains the on-screen control preferences. Each
// orientation remembers whether the overlay is drawn; when it is not, all
// touches go to the touchscreen.
type ControlsConfig struct {
	LandscapeDraw      bool `json:"landscapeDraw"`
	PortraitDraw       bool `json:"portraitDraw"`
	AlwaysTouch        bool `json:"alwaysTouch"`        // Touch the panel from anywhere even with the overlay shown
	ButtonTransparency int  `json:"buttonTransparency"` // Overlay opacity percent, 0-100, default 78
	Haptic             bool `json:"haptic"`             // Vibrate on overlay button press
}

// Draw reports whether the overlay is drawn in the given orientation.
func (c ControlsConfig) Draw(landscape bool) bool {
	if landscape {
		return c.LandscapeDraw
	}
	return c.PortraitDraw
}

// SetDraw changes the overlay preference for one orientation.
func (c *ControlsConfig) SetDraw(landscape, draw bool) {
	if landscape {
		c.LandscapeDraw = draw
	} else {
		c.PortraitDraw = draw
	}
}

// ForceTouch reports whether every touch should reach the touchscreen in
// the given orientation.
func (c ControlsConfig) ForceTouch(landscape bool) bool {
	return c.AlwaysTouch || !c.Draw(landscape)
}

// ButtonAlpha converts ButtonTransparency into an 8-bit alpha.
func (c ControlsConfig) ButtonAlpha() uint8 {
	p := min(max(c.ButtonTransparency, 0), 100)
	return uint8(p * 255 / 100)
}

// InputConfig contains input binding overrides for keyboard and controller.
// Empty/nil maps mean "use core defaults." Only user overrides are stored.
type InputConfig struct {
	Keyboard   map[string]string `json:"keyboard,omitempty"`   // button name -> key name override
	Controller map[string]string `json:"controller,omitempty"` // button name -> pad button name override

	DisableAnalogStick bool `json:"disableAnalogStick"` // Ignore the left stick as a D-pad
}

// AudioConfig contains audio-related settings
type AudioConfig struct {
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
}

// WindowConfig contains window position and size
type WindowConfig struct {
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	X          *int `json:"x,omitempty"` // nil = OS decides position
	Y          *int `json:"y,omitempty"`
	Fullscreen bool `json:"fullscreen"`
}

// PathsConfig contains directory preferences
type PathsConfig struct {
	WorkingDir string `json:"workingDir,omitempty"` // Holds States, Battery, Cheats and Temp; "" = data dir
	LastROMDir string `json:"lastROMDir,omitempty"` // Where the ROM picker opens
}

// FontSizePresets lists the available font size options
var FontSizePresets = []int{10, 12, 14, 16, 18, 20, 24, 28, 32}

// ValidFontSize returns the nearest valid preset font size.
func ValidFontSize(size int) int {
	best := FontSizePresets[0]
	for _, p := range FontSizePresets {
		if abs(p-size) < abs(best-size) {
			best = p
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Theme:    "Default",
		FontSize: 14,
		Display: DisplayConfig{
			ScreenMode:  ScreenModeDual,
			PixelFormat: PixelFormatRGBA8888,
		},
		Controls: ControlsConfig{
			ButtonTransparency: 78,
		},
		Audio: AudioConfig{
			Volume: 1.0,
		},
		Window: WindowConfig{
			Width:  512,
			Height: 768,
		},
	}
}
