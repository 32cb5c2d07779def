//go:build !libretro

package standalone

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	emucore "github.com/user-none/ndsui/api"
	"github.com/user-none/ndsui/controls"
	"github.com/user-none/ndsui/display"
	"github.com/user-none/ndsui/romloader"
	"github.com/user-none/ndsui/router"
	"github.com/user-none/ndsui/standalone/storage"
	"github.com/user-none/ndsui/standalone/style"
)

// ADT (audio-driven timing) buffer thresholds in bytes.
// At 48kHz stereo 16-bit: 3200 bytes/frame at 60fps.
const (
	adtMinBuffer = 9600  // ~3 frames, speed up below this
	adtMaxBuffer = 19200 // ~6 frames, slow down above this
)

// dsFrameRate is the DS LCD refresh rate.
const dsFrameRate = 59.8261

// GameplayManager runs one ROM: the emulation goroutine, input routing,
// drawing, the game menu and the gameplay hotkeys.
//
// The core runs on a dedicated goroutine with audio-driven timing (ADT).
// The Ebiten thread polls input, routes it through the shared layout, and
// draws the latest frame from the shared framebuffer.
type GameplayManager struct {
	core         emucore.Core
	systemInfo   emucore.SystemInfo
	inputMapping InputMapping

	// Layout shared by drawing and input routing
	display  *display.State
	router   *router.Router
	controls *controls.Controls
	pointers *PointerTracker

	renderer *FramebufferRenderer
	overlay  *ControlsOverlay
	hud      *HUD
	haptics  *Haptics

	rom         *romloader.ROM
	audioPlayer *AudioPlayer

	// ADT goroutine control
	emuControl        *EmuControl
	sharedInput       *SharedInput
	sharedFramebuffer *SharedFramebuffer
	emuDone           chan struct{}
	frameBuf          []byte // Owned by the emulation goroutine

	gameMenu    *GameMenu
	focusPaused bool
	padIDs      []ebiten.GamepadID

	// External dependencies (not owned by GameplayManager)
	saveStateManager  *SaveStateManager
	screenshotManager *ScreenshotManager
	notification      *Notification
	config            *storage.Config
	dirs              storage.Dirs

	// Callbacks to App
	onSettings     func()
	onOpenROM      func()
	onQuit         func()
	onConfigChange func()
}

// GameplayCallbacks connect game menu actions to the app.
type GameplayCallbacks struct {
	OnSettings     func()
	OnOpenROM      func()
	OnQuit         func()
	OnConfigChange func() // A hotkey changed config; save it
}

// NewGameplayManager creates a new gameplay manager
func NewGameplayManager(
	core emucore.Core,
	state *display.State,
	saveStateManager *SaveStateManager,
	screenshotManager *ScreenshotManager,
	notification *Notification,
	config *storage.Config,
	dirs storage.Dirs,
	cb GameplayCallbacks,
) *GameplayManager {
	info := core.SystemInfo()
	if len(info.Buttons) == 0 {
		info.Buttons = emucore.DefaultButtons
	}

	gm := &GameplayManager{
		core:              core,
		systemInfo:        info,
		display:           state,
		controls:          controls.New(),
		pointers:          NewPointerTracker(),
		renderer:          NewFramebufferRenderer(state),
		hud:               NewHUD(),
		haptics:           NewHaptics(config.Controls.Haptic),
		saveStateManager:  saveStateManager,
		screenshotManager: screenshotManager,
		notification:      notification,
		config:            config,
		dirs:              dirs,
		onSettings:        cb.OnSettings,
		onOpenROM:         cb.OnOpenROM,
		onQuit:            cb.OnQuit,
		onConfigChange:    cb.OnConfigChange,
	}
	gm.router = router.New(state, gm.controls, gm.controls)
	gm.overlay = NewControlsOverlay(gm.controls)
	gm.controls.SetOnPress(func(id int) { gm.haptics.OnPress(id) })
	gm.RebuildInputMapping()

	gm.gameMenu = NewGameMenu(GameMenuCallbacks{
		OnResume: gm.Resume,
		OnSave: func(slot int) {
			gm.saveSlot(slot)
			gm.Resume()
		},
		OnLoad: func(slot int) {
			gm.loadSlot(slot)
			gm.Resume()
		},
		OnSettings: gm.onSettings,
		OnOpenROM:  gm.onOpenROM,
		OnQuit:     gm.onQuit,
		Slots: func() []SaveSlot {
			var slots []SaveSlot
			gm.withCore(func() { slots = gm.saveStateManager.Slots(gm.core) })
			return slots
		},
	})

	return gm
}

// SetConfig updates the config reference and applies it
func (gm *GameplayManager) SetConfig(config *storage.Config) {
	gm.config = config
	gm.ApplyConfig()
}

// RebuildInputMapping rebuilds the bindings from the config overrides.
func (gm *GameplayManager) RebuildInputMapping() {
	gm.inputMapping = BuildMappingFromConfig(gm.systemInfo.Buttons, gm.config.Input.Keyboard, gm.config.Input.Controller)
	gm.controls.SetKeyMap(gm.inputMapping.KeyMap())
}

// SetDirs changes the working directory used by the next Launch.
func (gm *GameplayManager) SetDirs(dirs storage.Dirs) {
	gm.dirs = dirs
}

// IsPlaying returns true if a ROM is loaded
func (gm *GameplayManager) IsPlaying() bool {
	return gm.rom != nil
}

// ROM returns the loaded ROM, or nil.
func (gm *GameplayManager) ROM() *romloader.ROM {
	return gm.rom
}

// Launch loads rom into the core and starts the emulation goroutine. Any
// running ROM is closed first.
func (gm *GameplayManager) Launch(rom *romloader.ROM) error {
	gm.Exit()

	if path, err := rom.WriteTemp(gm.dirs.Temp); err != nil {
		log.Printf("Failed to keep extracted ROM: %v", err)
	} else if path != rom.Path {
		log.Printf("Extracted %s to %s", rom.Name, path)
	}

	gm.core.SetWorkingDir(gm.dirs.Root, gm.dirs.Temp)
	if err := gm.core.LoadROM(rom.Data, rom.Name); err != nil {
		return fmt.Errorf("failed to load %s: %w", rom.Name, err)
	}
	gm.rom = rom

	gm.core.SetScreenFilter(gm.config.Display.ScreenFilter)
	gm.syncSource()

	gm.sharedInput = &SharedInput{}
	gm.sharedFramebuffer = NewSharedFramebuffer(gm.core.PanelWidth(), gm.core.PanelHeight())
	gm.emuControl = NewEmuControl()
	gm.emuDone = make(chan struct{})

	// Always create the audio player, it drives timing. Muting sets the
	// volume to 0 so the buffer still drains.
	player, err := NewAudioPlayer(gm.systemInfo.SampleRate, gm.config.Audio.Volume, gm.config.Audio.Muted)
	if err != nil {
		log.Printf("Failed to init audio: %v", err)
	} else {
		gm.audioPlayer = player
	}

	gm.controls.Reset()
	gm.pointers.Reset()
	gm.gameMenu.Hide()
	gm.focusPaused = false

	go gm.emulationLoop(gm.emuControl, gm.sharedInput, gm.sharedFramebuffer, gm.audioPlayer, gm.emuDone)
	return nil
}

// syncSource publishes the core's framebuffer geometry and filter state.
// The emulation goroutine must not be running a frame.
func (gm *GameplayManager) syncSource() {
	gm.display.SetSource(gm.core.PanelWidth(), gm.core.PanelHeight())
	gm.display.SetFilter(gm.core.ScreenFilter() != 0)
}

// emulationLoop runs on a dedicated goroutine. It applies input, runs core
// frames, queues audio, publishes frames, and paces itself using
// audio-driven timing (ADT). Its shared state is passed in so a relaunch
// cannot swap it underneath.
func (gm *GameplayManager) emulationLoop(ec *EmuControl, input *SharedInput, fb *SharedFramebuffer, audio *AudioPlayer, done chan struct{}) {
	defer close(done)

	frameRate := float64(dsFrameRate)
	frameTime := time.Duration(float64(time.Second) / frameRate)
	lastFrameTime := time.Now()
	penDown := false

	for {
		if !ec.CheckPause() {
			return
		}

		gm.core.SetButtons(input.Buttons())
		if ts, ok := input.TakeTouch(); ok {
			if ts.Pressed {
				gm.core.TouchScreenTouch(ts.X, ts.Y)
			} else if penDown {
				gm.core.TouchScreenRelease()
			}
			penDown = ts.Pressed
		}

		gm.core.RunFrame()

		if audio != nil {
			audio.QueueSamples(gm.core.AudioSamples())
		}

		w, h := gm.core.PanelWidth(), gm.core.PanelHeight()
		if n := w * h * 4; cap(gm.frameBuf) < n {
			gm.frameBuf = make([]byte, n)
		}
		gm.frameBuf = gm.frameBuf[:w*h*4]
		status := gm.core.RenderFrame(gm.frameBuf)
		fb.Update(gm.frameBuf, w, h, status)

		// ADT sleep: wall-clock baseline ± adjustment from audio buffer level
		elapsed := time.Since(lastFrameTime)
		sleepTime := frameTime - elapsed

		if audio != nil {
			bufferLevel := audio.GetBufferLevel()
			if bufferLevel < adtMinBuffer {
				sleepTime = time.Duration(float64(sleepTime) * 0.9)
			} else if bufferLevel > adtMaxBuffer {
				sleepTime = time.Duration(float64(sleepTime) * 1.1)
			}
		}

		if sleepTime > time.Millisecond {
			time.Sleep(sleepTime)
		}

		lastFrameTime = time.Now()
	}
}

// withCore runs fn with the emulation goroutine parked. With no ROM
// running fn runs directly.
func (gm *GameplayManager) withCore(fn func()) {
	if gm.emuControl == nil {
		fn()
		return
	}
	gm.emuControl.WithPaused(fn)
}

// SetSurface publishes new output geometry and lays out the overlay.
func (gm *GameplayManager) SetSurface(width, height int) {
	l := gm.display.SetSurface(width, height, display.ParsePixelFormat(gm.config.Display.PixelFormat))
	gm.controls.Load(width, height)
	gm.applyOrientation(l.Landscape)
}

// applyOrientation applies the per-orientation overlay preferences.
func (gm *GameplayManager) applyOrientation(landscape bool) {
	gm.controls.SetVisible(gm.config.Controls.Draw(landscape))
	gm.display.SetForceTouch(gm.config.Controls.ForceTouch(landscape))
}

// ApplyConfig pushes every display, control and audio preference out to
// the layout, overlay, core and audio player.
func (gm *GameplayManager) ApplyConfig() {
	d := gm.config.Display
	gm.display.Update(func(p *display.Params) {
		p.Aspect = display.AspectStretch
		if d.MaintainAspect {
			p.Aspect = display.AspectMaintain
		}
		p.LCDSwap = d.LCDSwap
		p.ScreenMode = display.ScreenModeDual
		if d.ScreenMode == storage.ScreenModeMainOnly {
			p.ScreenMode = display.ScreenModeMainOnly
		}
		p.PixelFormat = display.ParsePixelFormat(d.PixelFormat)
	})
	if l := gm.display.Current(); l != nil {
		gm.applyOrientation(l.Landscape)
	}

	if gm.IsPlaying() {
		gm.withCore(func() {
			if gm.core.ScreenFilter() != d.ScreenFilter {
				gm.core.SetScreenFilter(d.ScreenFilter)
				gm.syncSource()
			}
		})
	}

	gm.haptics.SetEnabled(gm.config.Controls.Haptic)
	if gm.audioPlayer != nil {
		gm.audioPlayer.SetVolume(gm.config.Audio.Volume)
		gm.audioPlayer.SetMuted(gm.config.Audio.Muted)
	}
}

// Update handles the gameplay update loop on the Ebiten thread.
func (gm *GameplayManager) Update() error {
	if !gm.IsPlaying() {
		return nil
	}

	if gm.gameMenu.IsVisible() {
		gm.gameMenu.Update()
		return nil
	}

	// Losing focus pauses like the menu does, without showing it
	if !ebiten.IsFocused() {
		if !gm.focusPaused {
			gm.focusPaused = true
			gm.pause()
		}
		return nil
	}
	if gm.focusPaused {
		gm.focusPaused = false
		gm.Resume()
	}

	if gm.menuRequested() {
		gm.pause()
		gm.gameMenu.Show()
		return nil
	}

	gm.pollInputToShared()
	gm.handleHotkeys()
	return nil
}

// menuRequested checks Escape and the gamepad home button. Select is a DS
// button so it cannot open the menu.
func (gm *GameplayManager) menuRequested() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return true
	}
	gm.padIDs = ebiten.AppendGamepadIDs(gm.padIDs[:0])
	for _, id := range gm.padIDs {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterCenter) {
			return true
		}
	}
	return false
}

// pause parks the emulation goroutine and lifts every held input so
// nothing stays pressed across the pause.
func (gm *GameplayManager) pause() {
	gm.emuControl.RequestPause()
	gm.controls.Reset()
	gm.pointers.Reset()
	gm.sharedInput.Reset()
	gm.core.SetButtons(0)
	if gm.router.Release() {
		gm.core.TouchScreenRelease()
	}
}

// Resume hides the menu and restarts emulation
func (gm *GameplayManager) Resume() {
	gm.gameMenu.Hide()
	if gm.emuControl != nil {
		gm.emuControl.RequestResume()
	}
}

// OpenMenu pauses and shows the game menu.
func (gm *GameplayManager) OpenMenu() {
	if !gm.IsPlaying() || gm.gameMenu.IsVisible() {
		return
	}
	gm.pause()
	gm.gameMenu.Show()
}

// IsPaused returns whether the game menu is visible
func (gm *GameplayManager) IsPaused() bool {
	return gm.gameMenu.IsVisible()
}

// pollInputToShared routes keys and pointers and publishes the combined
// button state for the emulation goroutine.
func (gm *GameplayManager) pollInputToShared() {
	for _, ev := range KeyEvents(gm.inputMapping) {
		gm.router.RouteKey(ev)
	}
	for _, ev := range gm.pointers.Poll() {
		gm.sharedInput.PushTouch(gm.router.RouteTouch(ev))
	}

	buttons := gm.controls.Pressed()
	gm.padIDs = ebiten.AppendGamepadIDs(gm.padIDs[:0])
	if len(gm.padIDs) > 0 {
		buttons |= PollGamepadButtons(gm.inputMapping, gm.padIDs[0], gm.config.Input.DisableAnalogStick)
	}
	gm.sharedInput.SetButtons(buttons)
}

// handleHotkeys handles the function key shortcuts.
func (gm *GameplayManager) handleHotkeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		gm.withCore(func() {
			if err := gm.saveStateManager.SaveCurrent(gm.core); err != nil {
				log.Printf("Save state failed: %v", err)
			}
		})
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			gm.saveStateManager.PreviousSlot()
		} else {
			gm.saveStateManager.NextSlot()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		gm.loadSlot(gm.saveStateManager.GetCurrentSlot())
	case inpututil.IsKeyJustPressed(ebiten.KeyF4):
		gm.config.Display.LCDSwap = !gm.config.Display.LCDSwap
		gm.configChanged()
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		gm.config.Display.ScreenFilter = gm.systemInfo.NextFilter(gm.config.Display.ScreenFilter)
		gm.notification.ShowShort("Filter: " + gm.systemInfo.FilterName(gm.config.Display.ScreenFilter))
		gm.configChanged()
	case inpututil.IsKeyJustPressed(ebiten.KeyF6):
		if gm.config.Display.ScreenMode == storage.ScreenModeMainOnly {
			gm.config.Display.ScreenMode = storage.ScreenModeDual
		} else {
			gm.config.Display.ScreenMode = storage.ScreenModeMainOnly
		}
		gm.configChanged()
	case inpututil.IsKeyJustPressed(ebiten.KeyF7):
		if l := gm.display.Current(); l != nil {
			gm.config.Controls.SetDraw(l.Landscape, !gm.config.Controls.Draw(l.Landscape))
			gm.configChanged()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF8):
		gm.config.Display.ShowFPS = !gm.config.Display.ShowFPS
		gm.configChanged()
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		gm.TakeScreenshot()
	}
}

func (gm *GameplayManager) configChanged() {
	gm.ApplyConfig()
	if gm.onConfigChange != nil {
		gm.onConfigChange()
	}
}

// loadSlot restores slot and drops audio from the old timeline.
func (gm *GameplayManager) saveSlot(slot int) {
	gm.withCore(func() {
		if err := gm.saveStateManager.Save(gm.core, slot); err != nil {
			log.Printf("Save state failed: %v", err)
		}
	})
}

func (gm *GameplayManager) loadSlot(slot int) {
	gm.withCore(func() {
		if err := gm.saveStateManager.Load(gm.core, slot); err != nil {
			log.Printf("Load state failed: %v", err)
			return
		}
		if gm.audioPlayer != nil {
			gm.audioPlayer.ClearQueue()
		}
	})
}

// TakeScreenshot saves the current output as a PNG and copies it to the
// clipboard.
func (gm *GameplayManager) TakeScreenshot() {
	if gm.sharedFramebuffer == nil || gm.rom == nil {
		return
	}
	fb, _ := gm.sharedFramebuffer.Read()
	path, err := gm.screenshotManager.TakeScreenshot(fb, gm.display.Current(), gm.rom.Title())
	if err != nil {
		log.Printf("Screenshot failed: %v", err)
		gm.notification.ShowShort("Screenshot failed")
		return
	}
	log.Printf("Screenshot saved to %s", path)
	gm.notification.ShowShort("Screenshot saved")
}

// Draw renders the latest frame, the overlay, the HUD and the menu.
func (gm *GameplayManager) Draw(screen *ebiten.Image) {
	if gm.sharedFramebuffer == nil {
		screen.Fill(style.Letterbox)
		return
	}

	fb, status := gm.sharedFramebuffer.Read()
	gm.renderer.Draw(screen, fb)
	gm.overlay.Draw(screen, gm.config.Controls.ButtonAlpha())
	if gm.config.Display.ShowFPS {
		gm.hud.Draw(screen, status)
	}
	gm.gameMenu.Draw(screen)
}

// Exit stops emulation and unloads the ROM.
func (gm *GameplayManager) Exit() {
	if !gm.IsPlaying() {
		return
	}

	gm.emuControl.Stop()
	<-gm.emuDone

	if gm.router.Release() {
		gm.core.TouchScreenRelease()
	}
	gm.core.CloseROM()

	if gm.audioPlayer != nil {
		gm.audioPlayer.Close()
		gm.audioPlayer = nil
	}

	gm.sharedInput = nil
	gm.sharedFramebuffer = nil
	gm.emuControl = nil
	gm.emuDone = nil
	gm.frameBuf = nil
	gm.rom = nil
	gm.gameMenu.Hide()
	gm.controls.Reset()
}

// Close exits, returns the shared layout to uninitialized and releases
// GPU resources. It handles the surface going away.
func (gm *GameplayManager) Close() {
	gm.Exit()
	gm.display.Teardown()
	gm.renderer.Close()
}
