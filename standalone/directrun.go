//go:build !libretro

package standalone

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	emucore "github.com/user-none/ndsui/api"
	"github.com/user-none/ndsui/display"
	"github.com/user-none/ndsui/romloader"
	"github.com/user-none/ndsui/standalone/storage"
)

// directRunner implements ebiten.Game for running one ROM without the
// settings screen, the ROM picker or any saved preferences. The game menu
// still works; quitting from it ends the run.
type directRunner struct {
	gameplay     *GameplayManager
	notification *Notification
	width        int
	height       int
	quit         bool
}

// RunDirect loads romPath and runs it with the default configuration.
// Nothing is written to config.json; the working directory is still used
// for states and battery saves.
func RunDirect(core emucore.Core, romPath string) error {
	info := core.SystemInfo()
	storage.Init(info.DataDirName)

	rom, err := romloader.Load(romPath)
	if err != nil {
		return fmt.Errorf("failed to load ROM: %w", err)
	}

	config := storage.DefaultConfig()
	dirs, err := storage.ResolveDirs("")
	if err != nil {
		return err
	}
	if err := dirs.Ensure(); err != nil {
		return err
	}

	dr := &directRunner{notification: NewNotification()}
	state := display.NewState(display.Params{
		SourceWidth:  emucore.NativeWidth,
		SourceHeight: emucore.NativeHeight,
	})
	dr.gameplay = NewGameplayManager(
		core,
		state,
		NewSaveStateManager(dr.notification),
		NewScreenshotManager(dirs.Screenshots),
		dr.notification,
		config,
		dirs,
		GameplayCallbacks{
			OnSettings: func() {
				dr.notification.ShowShort("Settings are unavailable in direct mode")
				dr.gameplay.Resume()
			},
			OnOpenROM: func() {
				dr.notification.ShowShort("Opening ROMs is unavailable in direct mode")
				dr.gameplay.Resume()
			},
			OnQuit: func() { dr.quit = true },
		},
	)
	dr.gameplay.ApplyConfig()

	if err := dr.gameplay.Launch(rom); err != nil {
		dr.gameplay.Close()
		return err
	}
	log.Printf("Running %s", rom.Name)

	ebiten.SetWindowTitle(info.CoreName + " - " + rom.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(config.Window.Width, config.Window.Height)
	ebiten.SetWindowSizeLimits(minWindowWidth, minWindowHeight, -1, -1)

	err = ebiten.RunGame(dr)
	dr.gameplay.Close()
	core.Close()
	return err
}

// Update implements ebiten.Game.
func (dr *directRunner) Update() error {
	if dr.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	return dr.gameplay.Update()
}

// Draw implements ebiten.Game.
func (dr *directRunner) Draw(screen *ebiten.Image) {
	dr.gameplay.Draw(screen)
	dr.notification.Draw(screen)
}

// Layout implements ebiten.Game.
func (dr *directRunner) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := 1.0
	if m := ebiten.Monitor(); m != nil {
		s = m.DeviceScaleFactor()
	}
	w, h := int(float64(outsideWidth)*s), int(float64(outsideHeight)*s)
	if w != dr.width || h != dr.height {
		dr.width, dr.height = w, h
		dr.gameplay.SetSurface(w, h)
	}
	return w, h
}
