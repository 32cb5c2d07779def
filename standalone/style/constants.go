//go:build !libretro

package style

import "time"

// Base constants (unexported) are the logical-pixel reference values.
// The corresponding exported vars are recalculated by SetDPIScale.
const (
	baseDefaultPadding      = 16
	baseDefaultSpacing      = 16
	baseSmallSpacing        = 8
	baseTinySpacing         = 4
	baseLargeSpacing        = 24
	baseScrollbarWidth      = 20
	baseButtonPaddingSmall  = 8
	baseButtonPaddingMedium = 12
	baseSidebarMinWidth     = 180
	baseValueMinWidth       = 50
	basePathInputMinWidth   = 240

	// Overlay (notification/HUD shared)
	baseOverlayPadding = 12
	baseOverlayMargin  = 8

	// Game menu
	baseMenuMinWidth = 150
	baseMenuMaxWidth = 350
	baseMenuMinBtnH  = 40
	baseMenuMaxBtnH  = 60

	// Font-dependent base values (at 14pt, scale = 1.0)
	baseSettingsRowHeight = 38
	baseSlotRowHeight     = 44
	baseMaxLargeFontSize  = 48
)

// Layout vars used across screens, DPI-scaled at runtime via SetDPIScale.
var (
	DefaultPadding = baseDefaultPadding
	DefaultSpacing = baseDefaultSpacing
	SmallSpacing   = baseSmallSpacing
	TinySpacing    = baseTinySpacing
	LargeSpacing   = baseLargeSpacing

	ScrollbarWidth = baseScrollbarWidth

	ButtonPaddingSmall  = baseButtonPaddingSmall
	ButtonPaddingMedium = baseButtonPaddingMedium
)

// Settings screen vars
var (
	SettingsSidebarMinWidth = baseSidebarMinWidth
	ValueMinWidth           = baseValueMinWidth
	PathInputMinWidth       = basePathInputMinWidth
)

// Font-dependent layout values (updated by ApplyFontSize)
var (
	SettingsRowHeight = baseSettingsRowHeight
	SlotRowHeight     = baseSlotRowHeight
)

// Gamepad navigation timing constants
const (
	NavInitialDelay  = 400 * time.Millisecond // Delay before repeat starts
	NavStartInterval = 200 * time.Millisecond // Initial repeat interval
	NavMinInterval   = 25 * time.Millisecond  // Fastest repeat (cap)
	NavAcceleration  = 20 * time.Millisecond  // Speed increase per repeat
)

// Mouse wheel scroll sensitivity
const ScrollWheelSensitivity = 0.05

// Overlay vars (shared by notification/HUD)
var (
	OverlayPadding = baseOverlayPadding
	OverlayMargin  = baseOverlayMargin
)

// Game menu vars
var (
	MenuMinWidth     = baseMenuMinWidth
	MenuMaxWidth     = baseMenuMaxWidth
	MenuMinBtnHeight = baseMenuMinBtnH
	MenuMaxBtnHeight = baseMenuMaxBtnH
)
