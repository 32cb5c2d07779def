//go:build !libretro

package settings

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/user-none/ndsui/standalone/storage"
	"github.com/user-none/ndsui/standalone/style"
	"github.com/user-none/ndsui/standalone/types"
)

// AppearanceSection manages theme and font settings
type AppearanceSection struct {
	callback types.ScreenCallback
	config   *storage.Config
}

// NewAppearanceSection creates a new appearance section
func NewAppearanceSection(callback types.ScreenCallback, config *storage.Config) *AppearanceSection {
	return &AppearanceSection{
		callback: callback,
		config:   config,
	}
}

func (a *AppearanceSection) Title() string { return "Appearance" }

// SetConfig updates the config reference
func (a *AppearanceSection) SetConfig(config *storage.Config) {
	a.config = config
}

func (a *AppearanceSection) Zones() []string { return []string{"font-size", "theme-list"} }

// Build creates the appearance section UI
func (a *AppearanceSection) Build(focus types.FocusManager) *widget.Container {
	section := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			// font row, theme label, theme list (stretches)
			widget.GridLayoutOpts.Stretch([]bool{true}, []bool{false, false, true}),
			widget.GridLayoutOpts.Spacing(0, style.DefaultSpacing),
		)),
	)

	section.AddChild(a.buildFontSizeRow(focus))
	section.AddChild(widget.NewText(
		widget.TextOpts.Text("Theme", style.FontFace(), style.Accent),
	))

	list := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(style.DefaultSpacing),
		)),
	)
	themeKeys := make([]string, len(style.AvailableThemes))
	for i, theme := range style.AvailableThemes {
		themeKeys[i] = "theme-" + theme.Name
		list.AddChild(a.buildThemeCard(theme, themeKeys[i], focus))
	}

	scrollContainer, vSlider, scrollWrapper := style.ScrollableContainer(style.ScrollableOpts{
		Content:     list,
		BgColor:     style.Background,
		BorderColor: style.Border,
		Padding:     style.SmallSpacing,
	})
	focus.SetScrollWidgets(scrollContainer, vSlider)
	focus.RestoreScrollPosition()
	section.AddChild(scrollWrapper)

	focus.RegisterNavZone("font-size", types.NavZoneHorizontal, []string{"font-dec", "font-inc"}, 0)
	focus.RegisterNavZone("theme-list", types.NavZoneVertical, themeKeys, 0)
	focus.SetNavTransition("font-size", types.DirDown, "theme-list", types.NavIndexFirst)
	focus.SetNavTransition("theme-list", types.DirUp, "font-size", types.NavIndexFirst)

	return section
}

// buildFontSizeRow steps through the font presets. A change rebuilds the
// whole UI since every widget is measured with the font.
func (a *AppearanceSection) buildFontSizeRow(focus types.FocusManager) *widget.Container {
	presets := storage.FontSizePresets
	current := storage.ValidFontSize(a.config.FontSize)
	idx := slices.Index(presets, current)

	controls := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(style.SmallSpacing),
		)),
	)

	stepButton := func(key, label string, target int) *widget.Button {
		img := style.ButtonImage()
		if target < 0 || target >= len(presets) {
			img = style.DisabledButtonImage()
		}
		btn := widget.NewButton(
			widget.ButtonOpts.Image(img),
			widget.ButtonOpts.Text(label, style.FontFace(), style.ButtonTextColor()),
			widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(style.ButtonPaddingSmall)),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if target < 0 || target >= len(presets) {
					return
				}
				a.config.FontSize = presets[target]
				style.ApplyFontSize(a.config.FontSize)
				a.callback.ConfigChanged()
				focus.SetPendingFocus(key)
				a.callback.RequestRebuild()
			}),
		)
		focus.RegisterFocusButton(key, btn)
		return btn
	}

	controls.AddChild(stepButton("font-dec", "-", idx-1))
	controls.AddChild(widget.NewText(
		widget.TextOpts.Text(fmt.Sprintf("%dpt", current), style.FontFace(), style.Text),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
			widget.WidgetOpts.MinSize(style.ValueMinWidth, 0),
		),
	))
	controls.AddChild(stepButton("font-inc", "+", idx+1))

	return style.SettingsRow("Font Size", controls)
}

// buildThemeCard pairs a theme button with a small preview
func (a *AppearanceSection) buildThemeCard(theme style.Theme, key string, focus types.FocusManager) *widget.Container {
	card := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Stretch([]bool{false, true}, []bool{true}),
			widget.GridLayoutOpts.Spacing(style.DefaultSpacing, 0),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		),
	)

	name := theme.Name
	btn := widget.NewButton(
		widget.ButtonOpts.Image(style.ActiveButtonImage(a.config.Theme == name)),
		widget.ButtonOpts.Text(name, style.FontFace(), style.ButtonTextColor()),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(style.ButtonPaddingMedium)),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(style.Px(120), 0),
			widget.WidgetOpts.LayoutData(widget.GridLayoutData{
				VerticalPosition: widget.GridLayoutPositionCenter,
			}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			a.config.Theme = name
			style.ApplyThemeByName(name)
			a.callback.ConfigChanged()
			focus.SetPendingFocus(key)
			a.callback.RequestRebuild()
		}),
	)
	focus.RegisterFocusButton(key, btn)
	card.AddChild(btn)
	card.AddChild(themePreview(theme))
	return card
}

// themePreview draws two stacked panels beside a settings row mock-up.
func themePreview(theme style.Theme) *widget.Container {
	preview := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(theme.Background)),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Stretch([]bool{false, true}, []bool{true}),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(style.Px(6))),
			widget.GridLayoutOpts.Spacing(style.Px(6), 0),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(0, style.Px(90)),
		),
	)

	panels := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(theme.Letterbox)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(style.Px(2))),
			widget.RowLayoutOpts.Spacing(style.Px(2)),
		)),
	)
	for _, c := range []color.NRGBA{theme.Surface, theme.ControlFill} {
		panels.AddChild(widget.NewContainer(
			widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(c)),
			widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(style.Px(48), style.Px(36))),
		))
	}
	preview.AddChild(panels)

	content := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(theme.Surface)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(style.Px(6))),
			widget.RowLayoutOpts.Spacing(style.Px(6)),
		)),
	)
	content.AddChild(widget.NewText(widget.TextOpts.Text("Swap Screens", style.FontFace(), theme.Text)))
	content.AddChild(widget.NewText(widget.TextOpts.Text("Slot 1  Empty", style.FontFace(), theme.TextSecondary)))

	toggle := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(theme.Primary)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(widget.NewInsetsSimple(style.Px(4))),
		)),
	)
	toggle.AddChild(widget.NewText(
		widget.TextOpts.Text("On", style.FontFace(), theme.Text),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	))
	content.AddChild(toggle)
	preview.AddChild(content)
	return preview
}
