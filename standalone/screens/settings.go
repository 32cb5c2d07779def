//go:build !libretro

package screens

import (
	"strconv"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	emucore "github.com/user-none/ndsui/api"
	"github.com/user-none/ndsui/standalone/screens/settings"
	"github.com/user-none/ndsui/standalone/storage"
	"github.com/user-none/ndsui/standalone/style"
	"github.com/user-none/ndsui/standalone/types"
)

// SettingsScreen displays application settings
type SettingsScreen struct {
	BaseScreen

	callback        ScreenCallback
	selectedSection int
	sections        []settings.Section
	input           *settings.InputSection
}

// NewSettingsScreen creates a new settings screen.
func NewSettingsScreen(callback ScreenCallback, config *storage.Config, systemInfo emucore.SystemInfo) *SettingsScreen {
	input := settings.NewInputSection(callback, config, systemInfo.Buttons)
	s := &SettingsScreen{
		callback: callback,
		input:    input,
		sections: []settings.Section{
			settings.NewDisplaySection(callback, config, systemInfo),
			settings.NewControlsSection(callback, config),
			settings.NewAudioSection(callback, config),
			input,
			settings.NewPathsSection(callback, config),
			settings.NewAppearanceSection(callback, config),
		},
	}
	s.InitBase()
	return s
}

// SetConfig updates the config reference in all sections
func (s *SettingsScreen) SetConfig(config *storage.Config) {
	for _, sec := range s.sections {
		sec.SetConfig(config)
	}
}

func sectionKey(i int) string {
	return "section-" + strconv.Itoa(i)
}

// Build creates the settings screen UI
func (s *SettingsScreen) Build() *widget.Container {
	s.ClearFocusButtons()

	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(style.Background)),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			// header fixed, content stretches
			widget.GridLayoutOpts.Stretch([]bool{true}, []bool{false, true}),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(style.DefaultPadding)),
			widget.GridLayoutOpts.Spacing(style.DefaultSpacing, style.DefaultSpacing),
		)),
	)
	root.AddChild(s.buildHeader())

	main := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Stretch([]bool{false, true}, []bool{true}),
			widget.GridLayoutOpts.Spacing(style.DefaultSpacing, 0),
		)),
	)
	main.AddChild(s.buildSidebar())

	content := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			widget.GridLayoutOpts.Stretch([]bool{true}, []bool{true}),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(style.DefaultPadding)),
		)),
	)
	section := s.sections[s.selectedSection]
	content.AddChild(section.Build(s))
	main.AddChild(content)
	root.AddChild(main)

	s.setupNavigation(section)
	return root
}

func (s *SettingsScreen) buildHeader() *widget.Container {
	header := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(style.DefaultSpacing),
		)),
	)

	back := style.TextButton("Back", style.ButtonPaddingSmall, func(args *widget.ButtonClickedEventArgs) {
		s.callback.SwitchToGame()
	})
	s.RegisterFocusButton("settings-back", back)
	header.AddChild(back)

	open := style.PrimaryTextButton("Open ROM", style.ButtonPaddingSmall, func(args *widget.ButtonClickedEventArgs) {
		s.callback.OpenROM()
	})
	s.RegisterFocusButton("settings-open", open)
	header.AddChild(open)

	return header
}

func (s *SettingsScreen) buildSidebar() *widget.Container {
	sidebar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(style.Surface)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(style.SmallSpacing)),
			widget.RowLayoutOpts.Spacing(style.TinySpacing),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(style.SettingsSidebarMinWidth, 0),
		),
	)

	for i, sec := range s.sections {
		key := sectionKey(i)
		btn := widget.NewButton(
			widget.ButtonOpts.Image(style.ActiveButtonImage(s.selectedSection == i)),
			widget.ButtonOpts.Text(sec.Title(), style.FontFace(), style.ButtonTextColor()),
			widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(style.ButtonPaddingSmall)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				s.selectSection(i)
			}),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
			),
		)
		s.RegisterFocusButton(key, btn)
		sidebar.AddChild(btn)
	}
	return sidebar
}

// selectSection switches pages, keeping focus on the sidebar.
func (s *SettingsScreen) selectSection(i int) {
	if i == s.selectedSection {
		return
	}
	s.selectedSection = i
	s.SetScrollWidgets(nil, nil)
	s.scrollTop = 0
	s.SetPendingFocus(sectionKey(i))
	s.callback.RequestRebuild()
}

// setupNavigation links the header, the sidebar and the open section.
func (s *SettingsScreen) setupNavigation(section settings.Section) {
	s.RegisterNavZone("header", types.NavZoneHorizontal, []string{"settings-back", "settings-open"}, 0)

	keys := make([]string, len(s.sections))
	for i := range s.sections {
		keys[i] = sectionKey(i)
	}
	s.RegisterNavZone("sidebar", types.NavZoneVertical, keys, 0)
	s.SetNavTransition("header", types.DirDown, "sidebar", s.selectedSection)
	s.SetNavTransition("sidebar", types.DirUp, "header", types.NavIndexFirst)

	zones := section.Zones()
	if len(zones) == 0 {
		return
	}
	s.SetNavTransition("sidebar", types.DirRight, zones[0], types.NavIndexFirst)
	s.SetNavTransition(zones[0], types.DirUp, "header", types.NavIndexLast)
	for _, z := range zones {
		s.SetNavTransition(z, types.DirLeft, "sidebar", s.selectedSection)
	}
}

// OnEnter focuses the open section's sidebar entry.
func (s *SettingsScreen) OnEnter() {
	s.SetPendingFocus(sectionKey(s.selectedSection))
}

// EnsureFocusedVisible scrolls the open section to keep focus in view
func (s *SettingsScreen) EnsureFocusedVisible(focused widget.Focuser) {
	s.BaseScreen.EnsureFocusedVisible(focused)
}

// Update runs per-frame section work. A folder picked on the Paths page
// lands even after the user moves to another page.
func (s *SettingsScreen) Update() {
	for _, sec := range s.sections {
		if u, ok := sec.(settings.Updater); ok {
			u.Update()
		}
	}
}

// IsInputCaptureActive returns true when the input section is waiting for a key/button press
func (s *SettingsScreen) IsInputCaptureActive() bool {
	return s.input.IsCapturing()
}
