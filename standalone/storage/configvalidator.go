package storage

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// defaultedKeys are the dotted config paths whose zero value differs from
// the default. Only these need key-presence detection.
var defaultedKeys = []string{
	"version",
	"theme",
	"fontSize",
	"display.screenMode",
	"display.pixelFormat",
	"controls.buttonTransparency",
	"audio.volume",
	"window.width",
	"window.height",
}

// detectPresentKeys reports which of defaultedKeys appear in the JSON,
// as a set of dotted paths such as "audio.volume".
func detectPresentKeys(jsonBytes []byte) map[string]bool {
	present := make(map[string]bool)

	var root map[string]json.RawMessage
	if err := json.Unmarshal(jsonBytes, &root); err != nil {
		return present
	}

	for _, key := range defaultedKeys {
		section, field, nested := strings.Cut(key, ".")
		if !nested {
			if _, ok := root[key]; ok {
				present[key] = true
			}
			continue
		}

		raw, ok := root[section]
		if !ok {
			continue
		}
		var fields map[string]json.RawMessage
		if json.Unmarshal(raw, &fields) != nil {
			continue
		}
		if _, ok := fields[field]; ok {
			present[key] = true
		}
	}
	return present
}

// ApplyMissingDefaults sets defaults for fields absent from the file while
// keeping intentional zero values such as volume=0.
func ApplyMissingDefaults(config *Config, presentKeys map[string]bool) {
	d := DefaultConfig()

	if !presentKeys["version"] {
		config.Version = d.Version
	}
	if !presentKeys["theme"] {
		config.Theme = d.Theme
	}
	if !presentKeys["fontSize"] {
		config.FontSize = d.FontSize
	}
	if !presentKeys["display.screenMode"] {
		config.Display.ScreenMode = d.Display.ScreenMode
	}
	if !presentKeys["display.pixelFormat"] {
		config.Display.PixelFormat = d.Display.PixelFormat
	}
	if !presentKeys["controls.buttonTransparency"] {
		config.Controls.ButtonTransparency = d.Controls.ButtonTransparency
	}
	if !presentKeys["audio.volume"] {
		config.Audio.Volume = d.Audio.Volume
	}
	if !presentKeys["window.width"] {
		config.Window.Width = d.Window.Width
	}
	if !presentKeys["window.height"] {
		config.Window.Height = d.Window.Height
	}
}

// configRule checks one field. check returns a description of the problem,
// or "" when the field is valid; reset restores the default.
type configRule struct {
	check func(c *Config, themes []string) string
	reset func(c, d *Config)
}

var configRules = []configRule{
	{
		check: func(c *Config, _ []string) string {
			if c.Version != 1 {
				return fmt.Sprintf("version: %d (valid: 1)", c.Version)
			}
			return ""
		},
		reset: func(c, d *Config) { c.Version = d.Version },
	},
	{
		check: func(c *Config, themes []string) string {
			if !slices.Contains(themes, c.Theme) {
				return fmt.Sprintf("theme: %q (valid: %v)", c.Theme, themes)
			}
			return ""
		},
		reset: func(c, d *Config) { c.Theme = d.Theme },
	},
	{
		check: func(c *Config, _ []string) string {
			if !slices.Contains(FontSizePresets, c.FontSize) {
				return fmt.Sprintf("fontSize: %d (valid: %v)", c.FontSize, FontSizePresets)
			}
			return ""
		},
		reset: func(c, d *Config) { c.FontSize = d.FontSize },
	},
	{
		check: func(c *Config, _ []string) string {
			if c.Display.ScreenMode != ScreenModeDual && c.Display.ScreenMode != ScreenModeMainOnly {
				return fmt.Sprintf("display.screenMode: %q (valid: %q, %q)", c.Display.ScreenMode, ScreenModeDual, ScreenModeMainOnly)
			}
			return ""
		},
		reset: func(c, d *Config) { c.Display.ScreenMode = d.Display.ScreenMode },
	},
	{
		check: func(c *Config, _ []string) string {
			if c.Display.PixelFormat != PixelFormatRGBA8888 && c.Display.PixelFormat != PixelFormatRGB565 {
				return fmt.Sprintf("display.pixelFormat: %q (valid: %q, %q)", c.Display.PixelFormat, PixelFormatRGBA8888, PixelFormatRGB565)
			}
			return ""
		},
		reset: func(c, d *Config) { c.Display.PixelFormat = d.Display.PixelFormat },
	},
	{
		check: func(c *Config, _ []string) string {
			if c.Display.ScreenFilter < 0 {
				return fmt.Sprintf("display.screenFilter: %d (valid: >= 0)", c.Display.ScreenFilter)
			}
			return ""
		},
		reset: func(c, d *Config) { c.Display.ScreenFilter = d.Display.ScreenFilter },
	},
	{
		check: func(c *Config, _ []string) string {
			if c.Controls.ButtonTransparency < 0 || c.Controls.ButtonTransparency > 100 {
				return fmt.Sprintf("controls.buttonTransparency: %d (valid: 0-100)", c.Controls.ButtonTransparency)
			}
			return ""
		},
		reset: func(c, d *Config) { c.Controls.ButtonTransparency = d.Controls.ButtonTransparency },
	},
	{
		check: func(c *Config, _ []string) string {
			if c.Audio.Volume < 0 || c.Audio.Volume > 2.0 {
				return fmt.Sprintf("audio.volume: %.2f (valid: 0.0-2.0)", c.Audio.Volume)
			}
			return ""
		},
		reset: func(c, d *Config) { c.Audio.Volume = d.Audio.Volume },
	},
	{
		check: func(c *Config, _ []string) string {
			if c.Window.Width < 256 {
				return fmt.Sprintf("window.width: %d (valid: >= 256)", c.Window.Width)
			}
			return ""
		},
		reset: func(c, d *Config) { c.Window.Width = d.Window.Width },
	},
	{
		check: func(c *Config, _ []string) string {
			if c.Window.Height < 192 {
				return fmt.Sprintf("window.height: %d (valid: >= 192)", c.Window.Height)
			}
			return ""
		},
		reset: func(c, d *Config) { c.Window.Height = d.Window.Height },
	},
}

// ValidateConfig checks all config fields against valid ranges and returns
// human-readable error descriptions. An empty slice means the config is valid.
// validThemes should be the list of known theme names.
func ValidateConfig(config *Config, validThemes []string) []string {
	var errs []string
	for _, r := range configRules {
		if msg := r.check(config, validThemes); msg != "" {
			errs = append(errs, msg)
		}
	}
	return errs
}

// CorrectConfig resets any invalid fields to their defaults and keeps the
// valid ones.
func CorrectConfig(config *Config, validThemes []string) *Config {
	d := DefaultConfig()
	for _, r := range configRules {
		if r.check(config, validThemes) != "" {
			r.reset(config, d)
		}
	}
	return config
}

// ValidateInputConfig reports binding overrides whose key or pad button
// name is not recognised.
func ValidateInputConfig(config *Config, validKey, validPad func(string) bool) []string {
	var errs []string
	for _, button := range sortedKeys(config.Input.Keyboard) {
		if name := config.Input.Keyboard[button]; !validKey(name) {
			errs = append(errs, fmt.Sprintf("input.keyboard.%s: %q is not a known key", button, name))
		}
	}
	for _, button := range sortedKeys(config.Input.Controller) {
		if name := config.Input.Controller[button]; !validPad(name) {
			errs = append(errs, fmt.Sprintf("input.controller.%s: %q is not a known pad button", button, name))
		}
	}
	return errs
}

// CorrectInputConfig drops unrecognised binding overrides so the core
// defaults apply to those buttons.
func CorrectInputConfig(config *Config, validKey, validPad func(string) bool) {
	for button, name := range config.Input.Keyboard {
		if !validKey(name) {
			delete(config.Input.Keyboard, button)
		}
	}
	for button, name := range config.Input.Controller {
		if !validPad(name) {
			delete(config.Input.Controller, button)
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
