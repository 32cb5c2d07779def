//go:build !libretro

package style

import (
	"bytes"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Theme colors (package-level variables updated by ApplyTheme)
var (
	Background        = color.NRGBA{0x1a, 0x1a, 0x2e, 0xff}
	Surface           = color.NRGBA{0x25, 0x25, 0x3a, 0xff}
	Primary           = color.NRGBA{0x4a, 0x4a, 0x8a, 0xff}
	PrimaryHover      = color.NRGBA{0x5a, 0x5a, 0x9a, 0xff}
	Text              = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	TextSecondary     = color.NRGBA{0xaa, 0xaa, 0xaa, 0xff}
	Accent            = color.NRGBA{0xff, 0xd7, 0x00, 0xff}
	Border            = color.NRGBA{0x3a, 0x3a, 0x5a, 0xff}
	DimOverlay        = color.NRGBA{0x00, 0x00, 0x00, 0xff} // Alpha applied per use
	OverlayBackground = color.NRGBA{0x1a, 0x1a, 0x2e, 0xff} // Alpha applied per use
	Letterbox         = color.NRGBA{0x00, 0x00, 0x00, 0xff} // Bands around the panels
	ControlFill       = color.NRGBA{0x40, 0x40, 0x40, 0xff} // On-screen button body
	ControlPressed    = color.NRGBA{0x80, 0x80, 0x80, 0xff}
	ControlText       = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	HUDText           = color.NRGBA{0x00, 0xff, 0x00, 0xff}
)

// Theme holds all color values for a UI theme
type Theme struct {
	Name              string
	Background        color.NRGBA
	Surface           color.NRGBA
	Primary           color.NRGBA
	PrimaryHover      color.NRGBA
	Text              color.NRGBA
	TextSecondary     color.NRGBA
	Accent            color.NRGBA
	Border            color.NRGBA
	DimOverlay        color.NRGBA
	OverlayBackground color.NRGBA
	Letterbox         color.NRGBA
	ControlFill       color.NRGBA
	ControlPressed    color.NRGBA
	ControlText       color.NRGBA
	HUDText           color.NRGBA
}

// Predefined themes
var (
	ThemeDefault = Theme{
		Name:              "Default",
		Background:        color.NRGBA{0x1a, 0x1a, 0x2e, 0xff}, // Dark blue-gray
		Surface:           color.NRGBA{0x25, 0x25, 0x3a, 0xff},
		Primary:           color.NRGBA{0x4a, 0x4a, 0x8a, 0xff}, // Muted purple
		PrimaryHover:      color.NRGBA{0x5a, 0x5a, 0x9a, 0xff},
		Text:              color.NRGBA{0xff, 0xff, 0xff, 0xff},
		TextSecondary:     color.NRGBA{0xaa, 0xaa, 0xaa, 0xff},
		Accent:            color.NRGBA{0xff, 0xd7, 0x00, 0xff}, // Gold
		Border:            color.NRGBA{0x3a, 0x3a, 0x5a, 0xff},
		DimOverlay:        color.NRGBA{0x00, 0x00, 0x00, 0xff},
		OverlayBackground: color.NRGBA{0x1a, 0x1a, 0x2e, 0xff},
		Letterbox:         color.NRGBA{0x00, 0x00, 0x00, 0xff},
		ControlFill:       color.NRGBA{0x40, 0x40, 0x40, 0xff},
		ControlPressed:    color.NRGBA{0x80, 0x80, 0x80, 0xff},
		ControlText:       color.NRGBA{0xff, 0xff, 0xff, 0xff},
		HUDText:           color.NRGBA{0x00, 0xff, 0x00, 0xff},
	}

	ThemeDark = Theme{
		Name:              "Dark",
		Background:        color.NRGBA{0x0a, 0x0a, 0x0a, 0xff}, // Pure black
		Surface:           color.NRGBA{0x1a, 0x1a, 0x1a, 0xff},
		Primary:           color.NRGBA{0x1e, 0x40, 0x7a, 0xff}, // Blue
		PrimaryHover:      color.NRGBA{0x2a, 0x50, 0x8a, 0xff},
		Text:              color.NRGBA{0xff, 0xff, 0xff, 0xff},
		TextSecondary:     color.NRGBA{0x88, 0x88, 0x88, 0xff},
		Accent:            color.NRGBA{0x00, 0xc8, 0x53, 0xff}, // Green
		Border:            color.NRGBA{0x2a, 0x2a, 0x2a, 0xff},
		DimOverlay:        color.NRGBA{0x00, 0x00, 0x00, 0xff},
		OverlayBackground: color.NRGBA{0x0a, 0x0a, 0x0a, 0xff},
		Letterbox:         color.NRGBA{0x00, 0x00, 0x00, 0xff},
		ControlFill:       color.NRGBA{0x22, 0x22, 0x22, 0xff},
		ControlPressed:    color.NRGBA{0x1e, 0x40, 0x7a, 0xff},
		ControlText:       color.NRGBA{0xdd, 0xdd, 0xdd, 0xff},
		HUDText:           color.NRGBA{0x00, 0xc8, 0x53, 0xff},
	}

	ThemeLight = Theme{
		Name:              "Light",
		Background:        color.NRGBA{0xe8, 0xe8, 0xe8, 0xff}, // Light gray
		Surface:           color.NRGBA{0xf5, 0xf5, 0xf5, 0xff},
		Primary:           color.NRGBA{0x1a, 0x56, 0xdb, 0xff}, // Blue
		PrimaryHover:      color.NRGBA{0x2a, 0x66, 0xeb, 0xff},
		Text:              color.NRGBA{0x1a, 0x1a, 0x1a, 0xff}, // Dark text
		TextSecondary:     color.NRGBA{0x66, 0x66, 0x66, 0xff},
		Accent:            color.NRGBA{0xe6, 0x5c, 0x00, 0xff}, // Orange
		Border:            color.NRGBA{0xcc, 0xcc, 0xcc, 0xff},
		DimOverlay:        color.NRGBA{0x00, 0x00, 0x00, 0xff},
		OverlayBackground: color.NRGBA{0xe8, 0xe8, 0xe8, 0xff},
		Letterbox:         color.NRGBA{0xd0, 0xd0, 0xd0, 0xff},
		ControlFill:       color.NRGBA{0xf5, 0xf5, 0xf5, 0xff},
		ControlPressed:    color.NRGBA{0x1a, 0x56, 0xdb, 0xff},
		ControlText:       color.NRGBA{0x1a, 0x1a, 0x1a, 0xff},
		HUDText:           color.NRGBA{0x00, 0x80, 0x00, 0xff},
	}

	ThemeRetro = Theme{
		Name:              "Retro",
		Background:        color.NRGBA{0x1c, 0x1c, 0x1c, 0xff}, // Charcoal
		Surface:           color.NRGBA{0x28, 0x28, 0x28, 0xff},
		Primary:           color.NRGBA{0x8b, 0x00, 0x00, 0xff}, // Dark red
		PrimaryHover:      color.NRGBA{0xab, 0x20, 0x20, 0xff},
		Text:              color.NRGBA{0xd0, 0xd0, 0xd0, 0xff},
		TextSecondary:     color.NRGBA{0x80, 0x80, 0x80, 0xff},
		Accent:            color.NRGBA{0x00, 0xaa, 0x00, 0xff}, // Green
		Border:            color.NRGBA{0x3c, 0x3c, 0x3c, 0xff},
		DimOverlay:        color.NRGBA{0x00, 0x00, 0x00, 0xff},
		OverlayBackground: color.NRGBA{0x1c, 0x1c, 0x1c, 0xff},
		Letterbox:         color.NRGBA{0x10, 0x10, 0x10, 0xff},
		ControlFill:       color.NRGBA{0x3c, 0x3c, 0x3c, 0xff},
		ControlPressed:    color.NRGBA{0x8b, 0x00, 0x00, 0xff},
		ControlText:       color.NRGBA{0xd0, 0xd0, 0xd0, 0xff},
		HUDText:           color.NRGBA{0x00, 0xaa, 0x00, 0xff},
	}

	ThemeHighContrast = Theme{
		Name:              "High Contrast",
		Background:        color.NRGBA{0x00, 0x00, 0x00, 0xff},
		Surface:           color.NRGBA{0x40, 0x40, 0x40, 0xff},
		Primary:           color.NRGBA{0x00, 0x80, 0xff, 0xff}, // Bright blue
		PrimaryHover:      color.NRGBA{0x40, 0xa0, 0xff, 0xff},
		Text:              color.NRGBA{0xff, 0xff, 0xff, 0xff},
		TextSecondary:     color.NRGBA{0xcc, 0xcc, 0xcc, 0xff},
		Accent:            color.NRGBA{0xff, 0xff, 0x00, 0xff}, // Yellow
		Border:            color.NRGBA{0x66, 0x66, 0x66, 0xff},
		DimOverlay:        color.NRGBA{0x00, 0x00, 0x00, 0xff},
		OverlayBackground: color.NRGBA{0x00, 0x00, 0x00, 0xff},
		Letterbox:         color.NRGBA{0x00, 0x00, 0x00, 0xff},
		ControlFill:       color.NRGBA{0x00, 0x00, 0x00, 0xff},
		ControlPressed:    color.NRGBA{0xff, 0xff, 0x00, 0xff},
		ControlText:       color.NRGBA{0xff, 0xff, 0xff, 0xff},
		HUDText:           color.NRGBA{0xff, 0xff, 0x00, 0xff},
	}

	// AvailableThemes lists all themes for UI selection
	AvailableThemes = []Theme{ThemeDefault, ThemeDark, ThemeLight, ThemeRetro, ThemeHighContrast}

	// CurrentThemeName tracks the active theme name
	CurrentThemeName = "Default"
)

// ThemeNames returns the list of valid theme name strings.
func ThemeNames() []string {
	names := make([]string, len(AvailableThemes))
	for i, t := range AvailableThemes {
		names[i] = t.Name
	}
	return names
}

// GetThemeByName returns theme by name, or ThemeDefault if not found
func GetThemeByName(name string) Theme {
	for _, t := range AvailableThemes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

// IsValidThemeName returns true if the name matches a known theme
func IsValidThemeName(name string) bool {
	for _, t := range AvailableThemes {
		if t.Name == name {
			return true
		}
	}
	return false
}

// NextThemeName returns the theme after name in AvailableThemes, wrapping.
func NextThemeName(name string) string {
	for i, t := range AvailableThemes {
		if t.Name == name {
			return AvailableThemes[(i+1)%len(AvailableThemes)].Name
		}
	}
	return ThemeDefault.Name
}

// ApplyTheme updates package-level color variables from a theme
func ApplyTheme(theme Theme) {
	Background = theme.Background
	Surface = theme.Surface
	Primary = theme.Primary
	PrimaryHover = theme.PrimaryHover
	Text = theme.Text
	TextSecondary = theme.TextSecondary
	Accent = theme.Accent
	Border = theme.Border
	DimOverlay = theme.DimOverlay
	OverlayBackground = theme.OverlayBackground
	Letterbox = theme.Letterbox
	ControlFill = theme.ControlFill
	ControlPressed = theme.ControlPressed
	ControlText = theme.ControlText
	HUDText = theme.HUDText
	CurrentThemeName = theme.Name
}

// ApplyThemeByName applies theme by name with fallback to Default
func ApplyThemeByName(name string) {
	ApplyTheme(GetThemeByName(name))
}

// currentFontSize is the current font size in points (default 14)
var currentFontSize float64 = 14

// dpiScale is the device pixel ratio (1.0 on non-retina, 2.0 on retina)
var dpiScale float64 = 1.0

// DPIScale returns the current device scale factor.
func DPIScale() float64 {
	return dpiScale
}

// Px converts a logical pixel value to physical pixels using the current DPI scale.
func Px(logical int) int {
	return int(float64(logical) * dpiScale)
}

// PxFont converts a logical pixel value to physical pixels scaled by both DPI and font size.
func PxFont(logical int) int {
	return int(float64(logical) * FontScale() * dpiScale)
}

// SetDPIScale sets the DPI scale factor and recalculates all spatial vars.
func SetDPIScale(scale float64) {
	if scale < 1.0 {
		scale = 1.0
	}
	dpiScale = scale

	DefaultPadding = Px(baseDefaultPadding)
	DefaultSpacing = Px(baseDefaultSpacing)
	SmallSpacing = Px(baseSmallSpacing)
	TinySpacing = Px(baseTinySpacing)
	LargeSpacing = Px(baseLargeSpacing)
	ScrollbarWidth = Px(baseScrollbarWidth)
	ButtonPaddingSmall = Px(baseButtonPaddingSmall)
	ButtonPaddingMedium = Px(baseButtonPaddingMedium)
	SettingsSidebarMinWidth = Px(baseSidebarMinWidth)
	ValueMinWidth = Px(baseValueMinWidth)
	PathInputMinWidth = Px(basePathInputMinWidth)
	OverlayPadding = Px(baseOverlayPadding)
	OverlayMargin = Px(baseOverlayMargin)
	MenuMinWidth = Px(baseMenuMinWidth)
	MenuMaxWidth = Px(baseMenuMaxWidth)
	MenuMinBtnHeight = Px(baseMenuMinBtnH)
	MenuMaxBtnHeight = Px(baseMenuMaxBtnH)

	// Font-dependent vars also incorporate the DPI scale
	ApplyFontSize(int(currentFontSize))
}

// sharedFontSource is the cached TrueType font source shared by all font faces
var sharedFontSource *text.GoTextFaceSource

// fontFace is the cached font face
var fontFace text.Face

// largeFontFace is the cached large font face for the game menu title
var largeFontFace *text.GoTextFace

// loadFontSource loads the shared GoTextFaceSource from goregular.TTF (once)
func loadFontSource() *text.GoTextFaceSource {
	if sharedFontSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("Failed to load font source: %v", err)
			return nil
		}
		sharedFontSource = source
	}
	return sharedFontSource
}

// FontFace returns the font face to use for UI text
func FontFace() *text.Face {
	if fontFace == nil {
		source := loadFontSource()
		if source == nil {
			return &fontFace
		}
		fontFace = &text.GoTextFace{
			Source: source,
			Size:   currentFontSize,
		}
	}
	return &fontFace
}

// LargeFontFace returns a larger font face for titles
func LargeFontFace() *text.GoTextFace {
	if largeFontFace == nil {
		source := loadFontSource()
		if source == nil {
			return nil
		}
		largeFontFace = &text.GoTextFace{
			Source: source,
			Size:   min(currentFontSize*2, baseMaxLargeFontSize),
		}
	}
	return largeFontFace
}

// SizedFontFace returns a face of the shared font at an explicit pixel size.
// The HUD uses it since its text scales with the output, not the UI font.
func SizedFontFace(size float64) *text.GoTextFace {
	source := loadFontSource()
	if source == nil {
		return nil
	}
	return &text.GoTextFace{Source: source, Size: size}
}

// FontScale returns the current font scale factor relative to the base size (14pt).
func FontScale() float64 {
	return currentFontSize / 14.0
}

// ApplyFontSize sets the font size and recalculates all font-dependent layout values.
func ApplyFontSize(size int) {
	s := float64(size)
	currentFontSize = s

	// Replace faces in place: live widgets hold &fontFace and must never
	// observe a nil face before the rebuild completes.
	source := loadFontSource()
	if source != nil {
		fontFace = &text.GoTextFace{
			Source: source,
			Size:   s * dpiScale,
		}
		largeFontFace = &text.GoTextFace{
			Source: source,
			Size:   min(s*2, baseMaxLargeFontSize) * dpiScale,
		}
	}

	scale := s / 14.0
	d := dpiScale
	SettingsRowHeight = int(baseSettingsRowHeight * scale * d)
	SlotRowHeight = int(baseSlotRowHeight * scale * d)
}

// ButtonImage creates a standard button image set
func ButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(Surface),
		Hover:    image.NewNineSliceColor(PrimaryHover),
		Pressed:  image.NewNineSliceColor(Primary),
		Disabled: image.NewNineSliceColor(Border),
	}
}

// PrimaryButtonImage creates a prominent button image set
func PrimaryButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(Primary),
		Hover:    image.NewNineSliceColor(PrimaryHover),
		Pressed:  image.NewNineSliceColor(Surface),
		Disabled: image.NewNineSliceColor(Border),
	}
}

// DisabledButtonImage is used for steppers at the end of their range
func DisabledButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(Border),
		Hover:    image.NewNineSliceColor(Border),
		Pressed:  image.NewNineSliceColor(Border),
		Disabled: image.NewNineSliceColor(Border),
	}
}

// ActiveButtonImage returns a button image based on active state.
// Used for toggle buttons and sidebar items.
func ActiveButtonImage(active bool) *widget.ButtonImage {
	if active {
		return PrimaryButtonImage()
	}
	return ButtonImage()
}

// SliderButtonImage creates a slider handle button image
func SliderButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(Primary),
		Hover:    image.NewNineSliceColor(PrimaryHover),
		Pressed:  image.NewNineSliceColor(Primary),
		Disabled: image.NewNineSliceColor(Border),
	}
}

// ButtonTextColor returns the standard button text colors
func ButtonTextColor() *widget.ButtonTextColor {
	return &widget.ButtonTextColor{
		Idle:     Text,
		Disabled: TextSecondary,
	}
}
