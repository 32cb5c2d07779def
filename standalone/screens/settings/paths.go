//go:build !libretro

package settings

import (
	"sync"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/sqweek/dialog"
	"github.com/user-none/ndsui/standalone/storage"
	"github.com/user-none/ndsui/standalone/style"
	"github.com/user-none/ndsui/standalone/types"
)

// PathsSection manages the working directory that holds save states,
// battery saves, cheats and extracted ROMs.
type PathsSection struct {
	callback types.ScreenCallback
	config   *storage.Config
	zones    []string

	// The folder dialog runs off the Ebiten thread.
	mu      sync.Mutex
	picked  string
	pending bool
}

// NewPathsSection creates a new paths section
func NewPathsSection(callback types.ScreenCallback, config *storage.Config) *PathsSection {
	return &PathsSection{callback: callback, config: config}
}

func (p *PathsSection) Title() string { return "Paths" }

// SetConfig updates the config reference
func (p *PathsSection) SetConfig(config *storage.Config) {
	p.config = config
}

func (p *PathsSection) Zones() []string { return p.zones }

// Update applies a folder picked by the dialog.
func (p *PathsSection) Update() {
	p.mu.Lock()
	picked, pending := p.picked, p.pending
	p.pending = false
	p.mu.Unlock()
	if !pending {
		return
	}
	p.config.Paths.WorkingDir = picked
	p.callback.ConfigChanged()
	p.callback.RequestRebuild()
}

// Build creates the paths section UI
func (p *PathsSection) Build(focus types.FocusManager) *widget.Container {
	section := sectionColumn()

	workDir := p.config.Paths.WorkingDir
	if workDir == "" {
		workDir = "Default"
	}
	section.AddChild(style.SectionLabel("Working Directory"))
	section.AddChild(p.pathRow(focus, workDir, []pathAction{
		{"paths-browse", "Browse", p.browse},
		{"paths-default", "Default", func() {
			p.config.Paths.WorkingDir = ""
			p.callback.ConfigChanged()
			p.callback.RequestRebuild()
		}},
	}))

	romDir := p.config.Paths.LastROMDir
	if romDir == "" {
		romDir = "None"
	}
	section.AddChild(style.SectionLabel("Last ROM Folder"))
	section.AddChild(p.pathRow(focus, romDir, []pathAction{
		{"paths-clear-rom", "Clear", func() {
			p.config.Paths.LastROMDir = ""
			p.callback.ConfigChanged()
			p.callback.RequestRebuild()
		}},
	}))

	p.zones = chainRows(focus, "paths", [][]string{
		{"paths-browse", "paths-default"},
		{"paths-clear-rom"},
	})
	return section
}

type pathAction struct {
	key   string
	label string
	run   func()
}

// pathRow shows a path, truncated from the start, followed by buttons.
func (p *PathsSection) pathRow(focus types.FocusManager, path string, actions []pathAction) *widget.Container {
	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(style.SmallSpacing),
		)),
	)
	for _, a := range actions {
		run := a.run
		btn := style.TextButton(a.label, style.ButtonPaddingSmall, func(args *widget.ButtonClickedEventArgs) {
			run()
		})
		focus.RegisterFocusButton(a.key, btn)
		buttons.AddChild(btn)
	}

	shown, _ := style.TruncateStart(path, 48)
	return style.SettingsRow(shown, buttons)
}

func (p *PathsSection) browse() {
	start := p.config.Paths.WorkingDir
	go func() {
		b := dialog.Directory().Title("Select Working Directory")
		if start != "" {
			b = b.SetStartDir(start)
		}
		path, err := b.Browse()
		if err != nil {
			return
		}
		p.mu.Lock()
		p.picked = path
		p.pending = true
		p.mu.Unlock()
	}()
}
