//go:build !libretro

package settings

import (
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	emucore "github.com/user-none/ndsui/api"
	"github.com/user-none/ndsui/standalone/storage"
	"github.com/user-none/ndsui/standalone/style"
	"github.com/user-none/ndsui/standalone/types"
)

// Name lookups live in the standalone package, which imports this one.
// They are injected at init.
var (
	KeyToNameFunc  func(ebiten.Key) (string, bool)
	PadToNameFunc  func(ebiten.StandardGamepadButton) (string, bool)
	IsReservedFunc func(ebiten.Key) bool
	ResolveFunc    func(buttonName, defaultName string, overrides map[string]string) string
)

const (
	captureKeyboard   = "keyboard"
	captureController = "controller"
)

// InputSection manages keyboard and controller bindings
type InputSection struct {
	callback types.ScreenCallback
	config   *storage.Config
	buttons  []emucore.Button
	focus    types.FocusManager

	capturing   bool
	captureType string
	captureBtn  string
}

// NewInputSection creates a new input section
func NewInputSection(callback types.ScreenCallback, config *storage.Config, buttons []emucore.Button) *InputSection {
	return &InputSection{
		callback: callback,
		config:   config,
		buttons:  buttons,
	}
}

func (s *InputSection) Title() string { return "Input" }

// SetConfig updates the config reference
func (s *InputSection) SetConfig(config *storage.Config) {
	s.config = config
}

func (s *InputSection) Zones() []string {
	return []string{"input-analog-stick", "input-bindings", "input-reset"}
}

// IsCapturing returns true when the section is waiting for a key/button press
func (s *InputSection) IsCapturing() bool {
	return s.capturing
}

// Update polls for the key or pad button being captured. Escape cancels.
func (s *InputSection) Update() {
	if !s.capturing {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.finishCapture()
		return
	}

	switch s.captureType {
	case captureKeyboard:
		for _, k := range inpututil.AppendJustPressedKeys(nil) {
			if IsReservedFunc != nil && IsReservedFunc(k) {
				continue
			}
			if name, ok := KeyToNameFunc(k); ok {
				s.config.Input.Keyboard = s.bind(s.config.Input.Keyboard, name, s.defaultKey)
				s.finishCapture()
				return
			}
		}
	case captureController:
		ids := ebiten.AppendGamepadIDs(nil)
		if len(ids) == 0 {
			return
		}
		for btn := ebiten.StandardGamepadButton(0); btn <= ebiten.StandardGamepadButtonMax; btn++ {
			if !inpututil.IsStandardGamepadButtonJustPressed(ids[0], btn) {
				continue
			}
			if name, ok := PadToNameFunc(btn); ok {
				s.config.Input.Controller = s.bind(s.config.Input.Controller, name, s.defaultPad)
				s.finishCapture()
				return
			}
		}
	}
}

// bind stores name for the captured button. Binding a button back to its
// default removes the override.
func (s *InputSection) bind(overrides map[string]string, name string, def func(string) string) map[string]string {
	if name == def(s.captureBtn) {
		delete(overrides, s.captureBtn)
		if len(overrides) == 0 {
			return nil
		}
		return overrides
	}
	if overrides == nil {
		overrides = make(map[string]string)
	}
	overrides[s.captureBtn] = name
	return overrides
}

func (s *InputSection) finishCapture() {
	s.capturing = false
	s.callback.ConfigChanged()
	s.focus.SetPendingFocus(s.focusKey(s.captureType, s.captureBtn))
	s.callback.RequestRebuild()
}

func (s *InputSection) focusKey(captureType, button string) string {
	if captureType == captureController {
		return "input-pad-" + button
	}
	return "input-kb-" + button
}

func (s *InputSection) defaultKey(button string) string {
	for _, b := range s.buttons {
		if b.Name == button {
			return b.DefaultKey
		}
	}
	return ""
}

func (s *InputSection) defaultPad(button string) string {
	for _, b := range s.buttons {
		if b.Name == button {
			return b.DefaultPad
		}
	}
	return ""
}

// Build creates the input section UI
func (s *InputSection) Build(focus types.FocusManager) *widget.Container {
	s.focus = focus

	outer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			widget.GridLayoutOpts.Stretch([]bool{true}, []bool{true}),
		)),
	)

	section := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(style.SmallSpacing),
		)),
	)

	section.AddChild(toggleRow(focus, s.callback, "input-analog-stick", "Disable Analog Stick", s.config.Input.DisableAnalogStick, func() {
		s.config.Input.DisableAnalogStick = !s.config.Input.DisableAnalogStick
	}))
	section.AddChild(widget.NewText(
		widget.TextOpts.Text("Button Bindings", style.FontFace(), style.Accent),
	))
	section.AddChild(s.buildHeaderRow())

	bindingKeys := make([]string, 0, len(s.buttons)*2)
	for _, btn := range s.buttons {
		section.AddChild(s.buildBindingRow(focus, btn))
		bindingKeys = append(bindingKeys, s.focusKey(captureKeyboard, btn.Name), s.focusKey(captureController, btn.Name))
	}
	section.AddChild(s.buildResetRow(focus))

	focus.RegisterNavZone("input-analog-stick", types.NavZoneHorizontal, []string{"input-analog-stick"}, 0)
	focus.RegisterNavZone("input-bindings", types.NavZoneGrid, bindingKeys, 2)
	focus.RegisterNavZone("input-reset", types.NavZoneHorizontal, []string{"input-reset-kb", "input-reset-pad"}, 0)
	focus.SetNavTransition("input-analog-stick", types.DirDown, "input-bindings", types.NavIndexFirst)
	focus.SetNavTransition("input-bindings", types.DirUp, "input-analog-stick", types.NavIndexFirst)
	focus.SetNavTransition("input-bindings", types.DirDown, "input-reset", types.NavIndexFirst)
	focus.SetNavTransition("input-reset", types.DirUp, "input-bindings", types.NavIndexLast)

	scrollContainer, vSlider, scrollWrapper := style.ScrollableContainer(style.ScrollableOpts{
		Content:     section,
		BgColor:     style.Background,
		BorderColor: style.Border,
		Padding:     style.SmallSpacing,
	})
	focus.SetScrollWidgets(scrollContainer, vSlider)
	focus.RestoreScrollPosition()
	outer.AddChild(scrollWrapper)
	return outer
}

func bindingGrid(opts ...widget.ContainerOpt) *widget.Container {
	return widget.NewContainer(append(opts,
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		),
	)...)
}

func (s *InputSection) buildHeaderRow() *widget.Container {
	row := bindingGrid(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(3),
			widget.GridLayoutOpts.Stretch([]bool{true, false, false}, []bool{true}),
			widget.GridLayoutOpts.Spacing(style.DefaultSpacing, 0),
			widget.GridLayoutOpts.Padding(&widget.Insets{Left: style.SmallSpacing, Right: style.SmallSpacing}),
		)),
	)
	row.AddChild(widget.NewText(widget.TextOpts.Text("Button", style.FontFace(), style.TextSecondary)))
	for _, label := range []string{"Keyboard", "Controller"} {
		row.AddChild(widget.NewText(
			widget.TextOpts.Text(label, style.FontFace(), style.TextSecondary),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.MinSize(style.Px(90), 0)),
		))
	}
	return row
}

func (s *InputSection) buildBindingRow(focus types.FocusManager, btn emucore.Button) *widget.Container {
	row := bindingGrid(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(style.Surface)),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(3),
			widget.GridLayoutOpts.Stretch([]bool{true, false, false}, []bool{true}),
			widget.GridLayoutOpts.Spacing(style.DefaultSpacing, 0),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(style.SmallSpacing)),
		)),
	)
	row.AddChild(widget.NewText(
		widget.TextOpts.Text(btn.Name, style.FontFace(), style.Text),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.GridLayoutData{VerticalPosition: widget.GridLayoutPositionCenter}),
		),
	))
	row.AddChild(s.bindingButton(focus, btn.Name, captureKeyboard, btn.DefaultKey, s.config.Input.Keyboard, "Press a key..."))
	row.AddChild(s.bindingButton(focus, btn.Name, captureController, btn.DefaultPad, s.config.Input.Controller, "Press a button..."))
	return row
}

// bindingButton shows the effective binding and starts a capture on click.
// Overridden bindings are highlighted.
func (s *InputSection) bindingButton(focus types.FocusManager, name, captureType, def string, overrides map[string]string, prompt string) *widget.Button {
	label := def
	if ResolveFunc != nil {
		label = ResolveFunc(name, def, overrides)
	}
	if s.capturing && s.captureType == captureType && s.captureBtn == name {
		label = prompt
	}
	override, overridden := overrides[name]
	key := s.focusKey(captureType, name)

	b := widget.NewButton(
		widget.ButtonOpts.Image(style.ActiveButtonImage(overridden && override != def)),
		widget.ButtonOpts.Text(label, style.FontFace(), style.ButtonTextColor()),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(style.ButtonPaddingSmall)),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.GridLayoutData{VerticalPosition: widget.GridLayoutPositionCenter}),
			widget.WidgetOpts.MinSize(style.Px(90), 0),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			s.capturing = true
			s.captureType = captureType
			s.captureBtn = name
			focus.SetPendingFocus(key)
			s.callback.RequestRebuild()
		}),
	)
	focus.RegisterFocusButton(key, b)
	return b
}

func (s *InputSection) buildResetRow(focus types.FocusManager) *widget.Container {
	row := bindingGrid(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(3),
			widget.GridLayoutOpts.Stretch([]bool{true, false, false}, []bool{true}),
			widget.GridLayoutOpts.Spacing(style.DefaultSpacing, 0),
		)),
	)
	row.AddChild(widget.NewContainer())

	reset := func(key, label string, clear func()) {
		b := style.TextButton(label, style.ButtonPaddingSmall, func(args *widget.ButtonClickedEventArgs) {
			clear()
			s.callback.ConfigChanged()
			focus.SetPendingFocus(key)
			s.callback.RequestRebuild()
		})
		focus.RegisterFocusButton(key, b)
		row.AddChild(b)
	}
	reset("input-reset-kb", "Reset Keyboard", func() { s.config.Input.Keyboard = nil })
	reset("input-reset-pad", "Reset Controller", func() { s.config.Input.Controller = nil })
	return row
}
