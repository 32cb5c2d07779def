//go:build !libretro

package standalone

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	emucore "github.com/user-none/ndsui/api"
	"github.com/user-none/ndsui/router"
)

// analogDeadzone is how far the left stick must travel before it acts as
// the d-pad.
const analogDeadzone = 0.25

// InputMapping maps button bit IDs to ebiten inputs.
type InputMapping struct {
	Keys    map[int]ebiten.Key                   // bit ID -> keyboard key
	Gamepad map[int]ebiten.StandardGamepadButton // bit ID -> gamepad button
}

// keyNameMap maps short key name strings to ebiten.Key values.
var keyNameMap = map[string]ebiten.Key{
	"A":          ebiten.KeyA,
	"B":          ebiten.KeyB,
	"C":          ebiten.KeyC,
	"D":          ebiten.KeyD,
	"E":          ebiten.KeyE,
	"F":          ebiten.KeyF,
	"G":          ebiten.KeyG,
	"H":          ebiten.KeyH,
	"I":          ebiten.KeyI,
	"J":          ebiten.KeyJ,
	"K":          ebiten.KeyK,
	"L":          ebiten.KeyL,
	"M":          ebiten.KeyM,
	"N":          ebiten.KeyN,
	"O":          ebiten.KeyO,
	"P":          ebiten.KeyP,
	"Q":          ebiten.KeyQ,
	"R":          ebiten.KeyR,
	"S":          ebiten.KeyS,
	"T":          ebiten.KeyT,
	"U":          ebiten.KeyU,
	"V":          ebiten.KeyV,
	"W":          ebiten.KeyW,
	"X":          ebiten.KeyX,
	"Y":          ebiten.KeyY,
	"Z":          ebiten.KeyZ,
	"0":          ebiten.Key0,
	"1":          ebiten.Key1,
	"2":          ebiten.Key2,
	"3":          ebiten.Key3,
	"4":          ebiten.Key4,
	"5":          ebiten.Key5,
	"6":          ebiten.Key6,
	"7":          ebiten.Key7,
	"8":          ebiten.Key8,
	"9":          ebiten.Key9,
	"Enter":      ebiten.KeyEnter,
	"Backspace":  ebiten.KeyBackspace,
	"Space":      ebiten.KeySpace,
	"Semicolon":  ebiten.KeySemicolon,
	"Comma":      ebiten.KeyComma,
	"Period":     ebiten.KeyPeriod,
	"Slash":      ebiten.KeySlash,
	"Tab":        ebiten.KeyTab,
	"Escape":     ebiten.KeyEscape,
	"Shift":      ebiten.KeyShift,
	"ArrowUp":    ebiten.KeyArrowUp,
	"ArrowDown":  ebiten.KeyArrowDown,
	"ArrowLeft":  ebiten.KeyArrowLeft,
	"ArrowRight": ebiten.KeyArrowRight,
	"[":          ebiten.KeyLeftBracket,
	"]":          ebiten.KeyRightBracket,
	"-":          ebiten.KeyMinus,
	"=":          ebiten.KeyEqual,
	"'":          ebiten.KeyApostrophe,
	"F1":         ebiten.KeyF1,
	"F2":         ebiten.KeyF2,
	"F3":         ebiten.KeyF3,
	"F4":         ebiten.KeyF4,
	"F5":         ebiten.KeyF5,
	"F6":         ebiten.KeyF6,
	"F7":         ebiten.KeyF7,
	"F8":         ebiten.KeyF8,
	"F9":         ebiten.KeyF9,
	"F10":        ebiten.KeyF10,
	"F11":        ebiten.KeyF11,
	"F12":        ebiten.KeyF12,
}

// padNameMap maps gamepad button name strings to ebiten StandardGamepadButton values.
var padNameMap = map[string]ebiten.StandardGamepadButton{
	"A":         ebiten.StandardGamepadButtonRightBottom,
	"B":         ebiten.StandardGamepadButtonRightRight,
	"X":         ebiten.StandardGamepadButtonRightLeft,
	"Y":         ebiten.StandardGamepadButtonRightTop,
	"L1":        ebiten.StandardGamepadButtonFrontTopLeft,
	"R1":        ebiten.StandardGamepadButtonFrontTopRight,
	"L2":        ebiten.StandardGamepadButtonFrontBottomLeft,
	"R2":        ebiten.StandardGamepadButtonFrontBottomRight,
	"Start":     ebiten.StandardGamepadButtonCenterRight,
	"Select":    ebiten.StandardGamepadButtonCenterLeft,
	"DpadUp":    ebiten.StandardGamepadButtonLeftTop,
	"DpadDown":  ebiten.StandardGamepadButtonLeftBottom,
	"DpadLeft":  ebiten.StandardGamepadButtonLeftLeft,
	"DpadRight": ebiten.StandardGamepadButtonLeftRight,
}

// reservedKeys drive frontend functions and cannot be bound to buttons.
var reservedKeys = map[ebiten.Key]bool{
	ebiten.KeyEscape:  true, // Game menu
	ebiten.KeyF1:      true, // Save state
	ebiten.KeyF2:      true, // Cycle slot
	ebiten.KeyF3:      true, // Load state
	ebiten.KeyF4:      true, // Swap screens
	ebiten.KeyF5:      true, // Screen filter
	ebiten.KeyF6:      true, // Screen mode
	ebiten.KeyF7:      true, // Toggle controls
	ebiten.KeyF8:      true, // Toggle FPS
	ebiten.KeyF11:     true, // Fullscreen
	ebiten.KeyF12:     true, // Screenshot
	ebiten.KeyShift:   true, // Modifier (Shift+F2)
	ebiten.KeyControl: true,
	ebiten.KeyAlt:     true,
	ebiten.KeyMeta:    true,
}

// Reverse lookups for the binding capture UI. Names are unique per key.
var (
	keyToName = reverseMap(keyNameMap)
	padToName = reverseMap(padNameMap)
)

func reverseMap[K comparable](m map[string]K) map[K]string {
	out := make(map[K]string, len(m))
	for name, v := range m {
		out[v] = name
	}
	return out
}

// KeyToName returns the config name of k.
func KeyToName(k ebiten.Key) (string, bool) {
	name, ok := keyToName[k]
	return name, ok
}

// PadToName returns the config name of b.
func PadToName(b ebiten.StandardGamepadButton) (string, bool) {
	name, ok := padToName[b]
	return name, ok
}

// IsReservedKey returns true if the key is reserved for UI functions.
func IsReservedKey(k ebiten.Key) bool {
	return reservedKeys[k]
}

// ParseKey converts a key name string to an ebiten.Key.
func ParseKey(name string) (ebiten.Key, bool) {
	k, ok := keyNameMap[name]
	return k, ok
}

// ParsePad converts a gamepad button name string to an
// ebiten.StandardGamepadButton.
func ParsePad(name string) (ebiten.StandardGamepadButton, bool) {
	b, ok := padNameMap[name]
	return b, ok
}

// ValidKeyName reports whether name is a known key that may be bound.
func ValidKeyName(name string) bool {
	k, ok := ParseKey(name)
	return ok && !reservedKeys[k]
}

// ValidPadName reports whether name is a known gamepad button.
func ValidPadName(name string) bool {
	_, ok := ParsePad(name)
	return ok
}

// KeyNames returns every bindable key name, sorted.
func KeyNames() []string {
	names := make([]string, 0, len(keyNameMap))
	for name, k := range keyNameMap {
		if !reservedKeys[k] {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// PadNames returns every gamepad button name, sorted.
func PadNames() []string {
	names := make([]string, 0, len(padNameMap))
	for name := range padNameMap {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// BuildMappingFromConfig creates an InputMapping from the button defaults
// with config overrides applied by button name. An invalid or reserved
// override leaves the button unbound on that device rather than silently
// restoring the default.
func BuildMappingFromConfig(buttons []emucore.Button, kbOverrides, padOverrides map[string]string) InputMapping {
	m := InputMapping{
		Keys:    make(map[int]ebiten.Key),
		Gamepad: make(map[int]ebiten.StandardGamepadButton),
	}

	for _, btn := range buttons {
		keyName, ok := kbOverrides[btn.Name]
		if !ok {
			keyName = btn.DefaultKey
		}
		if k, ok := ParseKey(keyName); ok && !reservedKeys[k] {
			m.Keys[btn.ID] = k
		}

		padName, ok := padOverrides[btn.Name]
		if !ok {
			padName = btn.DefaultPad
		}
		if b, ok := ParsePad(padName); ok {
			m.Gamepad[btn.ID] = b
		}
	}

	return m
}

// KeyMap returns the keyboard bindings as key code -> button ID, the form
// the on-screen controls route keys with.
func (m InputMapping) KeyMap() map[int]int {
	out := make(map[int]int, len(m.Keys))
	for id, k := range m.Keys {
		out[int(k)] = id
	}
	return out
}

// ResolveBinding returns the name shown for a button's binding, checking
// overrides first then falling back to the default.
func ResolveBinding(buttonName, defaultName string, overrides map[string]string) string {
	if override, ok := overrides[buttonName]; ok {
		return override
	}
	return defaultName
}

// KeyEvents returns press and release events for bound keys that changed
// state this tick, for routing through the router.
func KeyEvents(mapping InputMapping) []router.KeyEvent {
	var events []router.KeyEvent
	for _, k := range mapping.Keys {
		if inpututil.IsKeyJustPressed(k) {
			events = append(events, router.KeyEvent{Code: int(k), Down: true})
		} else if inpututil.IsKeyJustReleased(k) {
			events = append(events, router.KeyEvent{Code: int(k), Down: false})
		}
	}
	return events
}

// PollGamepadButtons reads the pad buttons and left stick. When
// disableAnalog is true, the analog stick is not polled.
func PollGamepadButtons(mapping InputMapping, gamepadID ebiten.GamepadID, disableAnalog bool) uint32 {
	var buttons uint32

	for bitID, padBtn := range mapping.Gamepad {
		if ebiten.IsStandardGamepadButtonPressed(gamepadID, padBtn) {
			buttons |= 1 << uint(bitID)
		}
	}

	if !disableAnalog {
		x := ebiten.StandardGamepadAxisValue(gamepadID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(gamepadID, ebiten.StandardGamepadAxisLeftStickVertical)
		buttons |= analogButtons(mapping, x, y)
	}

	return buttons
}

// analogButtons returns the bits of whichever buttons the d-pad directions
// are bound to, so the stick follows any d-pad remapping.
func analogButtons(mapping InputMapping, x, y float64) uint32 {
	var buttons uint32
	for bitID, padBtn := range mapping.Gamepad {
		var on bool
		switch padBtn {
		case ebiten.StandardGamepadButtonLeftLeft:
			on = x < -analogDeadzone
		case ebiten.StandardGamepadButtonLeftRight:
			on = x > analogDeadzone
		case ebiten.StandardGamepadButtonLeftTop:
			on = y < -analogDeadzone
		case ebiten.StandardGamepadButtonLeftBottom:
			on = y > analogDeadzone
		}
		if on {
			buttons |= 1 << uint(bitID)
		}
	}
	return buttons
}
