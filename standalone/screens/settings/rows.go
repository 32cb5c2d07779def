//go:build !libretro

package settings

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/user-none/ndsui/standalone/storage"
	"github.com/user-none/ndsui/standalone/style"
	"github.com/user-none/ndsui/standalone/types"
)

// Section is one page of the settings screen.
type Section interface {
	Title() string
	Build(focus types.FocusManager) *widget.Container
	SetConfig(config *storage.Config)
	// Zones lists the nav zones registered by the last Build, top first.
	Zones() []string
}

// Updater is implemented by sections with per-frame work.
type Updater interface {
	Update()
}

func boolToOnOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

func sectionColumn() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(style.DefaultSpacing),
		)),
	)
}

// toggleRow is an On/Off row. flip changes the config; the screen is
// rebuilt with focus kept on the toggle.
func toggleRow(focus types.FocusManager, callback types.ScreenCallback, key, label string, on bool, flip func()) *widget.Container {
	btn := style.ToggleButton(boolToOnOff(on), on, func(args *widget.ButtonClickedEventArgs) {
		flip()
		callback.ConfigChanged()
		focus.SetPendingFocus(key)
		callback.RequestRebuild()
	})
	focus.RegisterFocusButton(key, btn)
	return style.SettingsRow(label, btn)
}

// choiceRow shows the current value on a button that advances it.
func choiceRow(focus types.FocusManager, callback types.ScreenCallback, key, label, value string, next func()) *widget.Container {
	btn := style.TextButton(value, style.ButtonPaddingSmall, func(args *widget.ButtonClickedEventArgs) {
		next()
		callback.ConfigChanged()
		focus.SetPendingFocus(key)
		callback.RequestRebuild()
	})
	btn.GetWidget().MinWidth = style.Px(120)
	focus.RegisterFocusButton(key, btn)
	return style.SettingsRow(label, btn)
}

// stepper describes a [-] value [+] control. dec and inc report whether
// the value moved.
type stepper struct {
	key   string
	label string
	value func() string
	dec   func() bool
	inc   func() bool
}

// decKey and incKey name the focus keys of the two buttons.
func (st stepper) decKey() string { return st.key + "-dec" }
func (st stepper) incKey() string { return st.key + "-inc" }

// stepperRow updates its value label in place so focus survives a press.
func stepperRow(focus types.FocusManager, callback types.ScreenCallback, st stepper) *widget.Container {
	controls := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(style.SmallSpacing),
		)),
	)

	valueText := widget.NewText(
		widget.TextOpts.Text(st.value(), style.FontFace(), style.Text),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
			widget.WidgetOpts.MinSize(style.ValueMinWidth, 0),
		),
	)

	step := func(move func() bool) func(*widget.ButtonClickedEventArgs) {
		return func(args *widget.ButtonClickedEventArgs) {
			if move() {
				callback.ConfigChanged()
				valueText.Label = st.value()
			}
		}
	}

	dec := style.TextButton("-", style.ButtonPaddingSmall, step(st.dec))
	focus.RegisterFocusButton(st.decKey(), dec)
	inc := style.TextButton("+", style.ButtonPaddingSmall, step(st.inc))
	focus.RegisterFocusButton(st.incKey(), inc)

	controls.AddChild(dec)
	controls.AddChild(valueText)
	controls.AddChild(inc)
	return style.SettingsRow(st.label, controls)
}

// chainRows registers one horizontal zone per row and links them top to
// bottom. It returns the zone names.
func chainRows(focus types.FocusManager, prefix string, rows [][]string) []string {
	zones := make([]string, 0, len(rows))
	for i, keys := range rows {
		name := fmt.Sprintf("%s-%d", prefix, i)
		focus.RegisterNavZone(name, types.NavZoneHorizontal, keys, 0)
		if i > 0 {
			prev := zones[i-1]
			focus.SetNavTransition(prev, types.DirDown, name, types.NavIndexFirst)
			focus.SetNavTransition(name, types.DirUp, prev, types.NavIndexFirst)
		}
		zones = append(zones, name)
	}
	return zones
}
