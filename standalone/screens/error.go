//go:build !libretro

package screens

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/user-none/ndsui/standalone/style"
	"github.com/user-none/ndsui/standalone/types"
)

// ErrorMode selects what the error screen reports and offers.
type ErrorMode int

const (
	// ErrorModeCorrupted: config.json could not be parsed
	ErrorModeCorrupted ErrorMode = iota
	// ErrorModeInvalid: config.json parsed but holds invalid values
	ErrorModeInvalid
	// ErrorModeROM: no ROM is running, either because none was picked or
	// because loading failed
	ErrorModeROM
)

// maxErrorDetails caps the listed validation errors so the buttons stay
// on screen.
const maxErrorDetails = 5

// ErrorScreen reports startup and ROM loading problems.
type ErrorScreen struct {
	BaseScreen

	callback   ScreenCallback
	mode       ErrorMode
	path       string
	message    string
	details    []string
	onContinue func()
}

// NewErrorScreen creates an error screen in ROM mode with no message.
func NewErrorScreen(callback ScreenCallback) *ErrorScreen {
	s := &ErrorScreen{callback: callback, mode: ErrorModeROM}
	s.InitBase()
	return s
}

// Mode returns the current mode.
func (s *ErrorScreen) Mode() ErrorMode {
	return s.mode
}

// SetConfigCorrupted reports an unreadable config file. onDelete replaces
// it with defaults.
func (s *ErrorScreen) SetConfigCorrupted(path string, onDelete func()) {
	s.mode = ErrorModeCorrupted
	s.path = path
	s.details = nil
	s.onContinue = onDelete
}

// SetConfigInvalid reports out-of-range config values. onReset corrects
// them.
func (s *ErrorScreen) SetConfigInvalid(path string, details []string, onReset func()) {
	s.mode = ErrorModeInvalid
	s.path = path
	s.details = details
	s.onContinue = onReset
}

// SetROMError reports a ROM that failed to load. An empty message means no
// ROM has been picked yet.
func (s *ErrorScreen) SetROMError(message string) {
	s.mode = ErrorModeROM
	s.message = message
	s.details = nil
	s.onContinue = nil
}

// Build creates the error screen UI
func (s *ErrorScreen) Build() *widget.Container {
	s.ClearFocusButtons()

	root := style.ScreenContainer()
	content := style.CenteredContainer(style.DefaultSpacing)

	var title, help, action string
	switch s.mode {
	case ErrorModeCorrupted:
		title = "Configuration Error"
		help = "You can delete the file and start fresh, or exit to fix it by hand."
		action = "Delete and Continue"
		content.AddChild(centeredText(title, style.Text))
		content.AddChild(centeredText(fmt.Sprintf("The file %q is invalid or corrupted.", s.path), style.Text))
	case ErrorModeInvalid:
		title = "Invalid Settings"
		help = "You can reset invalid settings to defaults, or exit to fix the file by hand."
		action = "Reset and Continue"
		content.AddChild(centeredText(title, style.Text))
		content.AddChild(centeredText(fmt.Sprintf("The file %q contains invalid settings:", s.path), style.Text))
		for i, detail := range s.details {
			if i == maxErrorDetails {
				content.AddChild(centeredText(fmt.Sprintf("+%d more", len(s.details)-maxErrorDetails), style.TextSecondary))
				break
			}
			content.AddChild(centeredText(detail, style.TextSecondary))
		}
	default:
		if s.message == "" {
			content.AddChild(centeredText("No ROM Loaded", style.Text))
			help = "Open a Nintendo DS ROM (.nds, .zip, .7z, .rar or .gz) to start playing."
		} else {
			content.AddChild(centeredText("Could Not Load ROM", style.Text))
			content.AddChild(centeredText(s.message, style.TextSecondary))
			help = "Pick another file, or quit."
		}
	}
	content.AddChild(centeredText(help, style.TextSecondary))
	content.AddChild(s.buildButtons(action))

	root.AddChild(content)
	return root
}

func (s *ErrorScreen) buildButtons(action string) *widget.Container {
	row := style.ButtonRow()
	var keys []string
	add := func(key, label string, fn func()) {
		btn := style.TextButton(label, style.ButtonPaddingMedium, func(args *widget.ButtonClickedEventArgs) {
			fn()
		})
		s.RegisterFocusButton(key, btn)
		row.AddChild(btn)
		keys = append(keys, key)
	}

	if s.mode == ErrorModeROM {
		add("error-open", "Open ROM", s.callback.OpenROM)
		add("error-settings", "Settings", s.callback.SwitchToSettings)
		add("error-quit", "Quit", s.callback.Exit)
	} else {
		add("error-continue", action, func() {
			if s.onContinue != nil {
				s.onContinue()
			}
		})
		add("error-quit", "Exit", s.callback.Exit)
	}

	s.RegisterNavZone("error-buttons", types.NavZoneHorizontal, keys, 0)
	return row
}

func centeredText(label string, c color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, style.FontFace(), c),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
	)
}

// OnEnter focuses the first button.
func (s *ErrorScreen) OnEnter() {
	if s.mode == ErrorModeROM {
		s.SetDefaultFocus("error-open")
	} else {
		s.SetDefaultFocus("error-continue")
	}
}
