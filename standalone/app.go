//go:build !libretro

package standalone

import (
	"fmt"
	"log"
	"os"

	"github.com/ebitenui/ebitenui"
	ebitenuiInput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sqweek/dialog"
	emucore "github.com/user-none/ndsui/api"
	"github.com/user-none/ndsui/display"
	"github.com/user-none/ndsui/romloader"
	"github.com/user-none/ndsui/standalone/screens"
	"github.com/user-none/ndsui/standalone/storage"
	"github.com/user-none/ndsui/standalone/style"
	"github.com/user-none/ndsui/standalone/types"
)

// Smallest window that still fits both panels at native size.
const (
	minWindowWidth  = 256
	minWindowHeight = 384
)

// App is the main application struct that implements ebiten.Game
type App struct {
	ui *ebitenui.UI

	core       emucore.Core
	systemInfo emucore.SystemInfo

	state AppState

	config *storage.Config
	dirs   storage.Dirs

	// Layout shared by the renderer, the input router and the core thread
	display *display.State

	settingsScreen *screens.SettingsScreen
	errorScreen    *screens.ErrorScreen

	gameplay *GameplayManager

	notification      *Notification
	saveStateManager  *SaveStateManager
	screenshotManager *ScreenshotManager
	inputManager      *InputManager
	picker            *ROMPicker

	configLoadFailed bool // config.json failed to load or validate; don't overwrite it on exit

	// Window tracking for persistence and responsive layouts
	windowX, windowY   int
	windowWidth        int
	windowHeight       int
	lastWindowedWidth  int // Last non-fullscreen width (physical pixels)
	lastWindowedHeight int
	lastBuildWidth     int

	// Set from goroutines, processed on the main thread
	rebuildPending bool

	// Suppresses UI input until the activation input that left gameplay is
	// released, so the held Enter/Space/click is not seen as a new press.
	gameplayTransitionGuard bool

	currentDPIScale float64

	// macOS leaves native fullscreen before the exit handler runs
	lastFullscreenState bool
}

// Run is the public entry point for the standalone UI. It initializes
// storage, configures the window, creates the app and starts the Ebiten
// game loop. romPath, when set, is loaded at startup instead of showing the
// ROM picker.
func Run(core emucore.Core, romPath string) error {
	info := core.SystemInfo()
	if len(info.Buttons) == 0 {
		info.Buttons = emucore.DefaultButtons
	}

	storage.Init(info.DataDirName)

	ebiten.SetWindowTitle(info.CoreName)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowWidth, minWindowHeight, -1, -1)

	app, err := newApp(core, info)
	if err != nil {
		// No window exists yet to show the error in
		dialog.Message("%v", err).Title(info.CoreName).Error()
		return err
	}

	width, height, x, y, fullscreen := app.GetWindowConfig()
	ebiten.SetWindowSize(max(width, minWindowWidth), max(height, minWindowHeight))
	if x != nil && y != nil {
		ebiten.SetWindowPosition(*x, *y)
	}
	if fullscreen {
		ebiten.SetFullscreen(true)
	}

	app.start(romPath)

	if err := ebiten.RunGame(app); err != nil {
		return err
	}

	app.SaveAndClose()
	return nil
}

// newApp loads and validates the config and creates every manager. Config
// problems leave the app on the error screen.
func newApp(core emucore.Core, info emucore.SystemInfo) (*App, error) {
	app := &App{
		state:      StateError,
		core:       core,
		systemInfo: info,
		display: display.NewState(display.Params{
			SourceWidth:  emucore.NativeWidth,
			SourceHeight: emucore.NativeHeight,
		}),
	}

	if err := storage.CreateConfigIfMissing(); err != nil {
		log.Printf("Warning: failed to create config: %v", err)
	}

	app.notification = NewNotification()
	app.saveStateManager = NewSaveStateManager(app.notification)
	app.inputManager = NewInputManager()
	app.picker = NewROMPicker()
	app.errorScreen = screens.NewErrorScreen(app)

	config, err := storage.LoadConfig()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		configPath, _ := storage.GetConfigPath()
		app.configLoadFailed = true
		app.config = storage.DefaultConfig()
		if err := app.initRuntime(); err != nil {
			return nil, err
		}
		app.errorScreen.SetConfigCorrupted(configPath, app.handleDeleteAndContinue)
		app.errorScreen.OnEnter()
		app.rebuildCurrentScreen()
		return app, nil
	}
	app.config = config

	validationErrors := storage.ValidateConfig(app.config, style.ThemeNames())
	validationErrors = append(validationErrors, storage.ValidateInputConfig(app.config, ValidKeyName, ValidPadName)...)
	if len(validationErrors) > 0 {
		configPath, _ := storage.GetConfigPath()
		app.configLoadFailed = true
		if err := app.initRuntime(); err != nil {
			return nil, err
		}
		app.errorScreen.SetConfigInvalid(configPath, validationErrors, app.handleResetAndContinue)
		app.errorScreen.OnEnter()
		app.rebuildCurrentScreen()
		return app, nil
	}

	style.ApplyThemeByName(app.config.Theme)
	style.ApplyFontSize(storage.ValidFontSize(app.config.FontSize))

	if err := app.initRuntime(); err != nil {
		return nil, err
	}
	app.errorScreen.OnEnter()
	app.rebuildCurrentScreen()
	return app, nil
}

// initRuntime lays out the working directory and creates the pieces that
// depend on it and on the config.
func (a *App) initRuntime() error {
	dirs, err := storage.ResolveDirs(a.config.Paths.WorkingDir)
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}
	if err := dirs.Ensure(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	a.dirs = dirs

	if n, err := romloader.CleanTemp(dirs.Temp); err != nil {
		log.Printf("Failed to clean %s: %v", dirs.Temp, err)
	} else if n > 0 {
		log.Printf("Removed %d stale ROM(s) from %s", n, dirs.Temp)
	}

	a.screenshotManager = NewScreenshotManager(dirs.Screenshots)
	if a.gameplay != nil {
		a.gameplay.Close()
	}
	a.gameplay = NewGameplayManager(
		a.core,
		a.display,
		a.saveStateManager,
		a.screenshotManager,
		a.notification,
		a.config,
		a.dirs,
		GameplayCallbacks{
			OnSettings:     a.SwitchToSettings,
			OnOpenROM:      a.OpenROM,
			OnQuit:         a.Exit,
			OnConfigChange: a.saveConfig,
		},
	)
	a.gameplay.ApplyConfig()
	a.settingsScreen = screens.NewSettingsScreen(a, a.config, a.systemInfo)
	return nil
}

// start loads romPath, or opens the picker when there is none. Config
// errors take priority and leave the error screen up.
func (a *App) start(romPath string) {
	if a.configLoadFailed {
		return
	}
	if romPath == "" {
		a.OpenROM()
		return
	}
	rom, err := romloader.Load(romPath)
	if err != nil {
		a.showROMError(err)
		return
	}
	a.launch(rom)
}

// GetWindowConfig returns the saved window dimensions, position, and fullscreen state from config.
// This should be called before RunGame to set the initial window size.
func (a *App) GetWindowConfig() (width, height int, x, y *int, fullscreen bool) {
	return a.config.Window.Width, a.config.Window.Height, a.config.Window.X, a.config.Window.Y, a.config.Window.Fullscreen
}

// saveWindowState saves current window position and size to config
func (a *App) saveWindowState() {
	if a.configLoadFailed {
		return
	}
	// Never got windowed dimensions: the app was fullscreen throughout
	if a.lastWindowedWidth == 0 || a.lastWindowedHeight == 0 {
		return
	}

	s := style.DPIScale()
	a.config.Window.Width = int(float64(a.lastWindowedWidth) / s)
	a.config.Window.Height = int(float64(a.lastWindowedHeight) / s)
	a.config.Window.X = &a.windowX
	a.config.Window.Y = &a.windowY
	a.config.Window.Fullscreen = a.lastFullscreenState
	a.saveConfig()
}

// saveConfig writes config.json unless it failed to load.
func (a *App) saveConfig() {
	if a.configLoadFailed {
		return
	}
	if err := storage.SaveConfig(a.config); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
}

// toggleFullscreen toggles between fullscreen and windowed mode
func (a *App) toggleFullscreen() {
	ebiten.SetFullscreen(!ebiten.IsFullscreen())
	a.lastFullscreenState = ebiten.IsFullscreen()
	a.config.Window.Fullscreen = a.lastFullscreenState
	a.saveConfig()
}

// rebuildCurrentScreen rebuilds the UI for the current state
func (a *App) rebuildCurrentScreen() {
	var container *widget.Container

	switch a.state {
	case StateSettings:
		a.settingsScreen.SaveScrollPosition()
		if a.ui != nil {
			a.settingsScreen.SaveFocusState(a.ui.GetFocusedWidget())
		}
		container = a.settingsScreen.Build()
	case StateError:
		container = a.errorScreen.Build()
	default:
		// Gameplay draws itself
		return
	}

	a.ui = &ebitenui.UI{Container: container}
	a.lastBuildWidth = a.windowWidth
}

// Update implements ebiten.Game
func (a *App) Update() error {
	a.windowX, a.windowY = ebiten.WindowPosition()
	a.lastFullscreenState = ebiten.IsFullscreen()

	if a.rebuildPending {
		a.rebuildPending = false
		a.rebuildCurrentScreen()
	}

	if a.inputManager.Update() {
		a.toggleFullscreen()
	}

	a.pollPicker()

	if a.state != StatePlaying && a.windowWidth > 0 && a.windowWidth != a.lastBuildWidth {
		a.rebuildCurrentScreen()
	}

	switch a.state {
	case StatePlaying:
		// Keep ebitenui's global input handler in sync during gameplay so the
		// first UI frame afterwards sees no stale mouse press.
		ebitenuiInput.Update()
		ebitenuiInput.AfterUpdate()
		return a.gameplay.Update()
	case StateSettings:
		if a.guardTransition() {
			return nil
		}
		var nav UINavigation
		if !a.settingsScreen.IsInputCaptureActive() {
			nav = a.processUIInput()
		}
		a.settingsScreen.Update()
		a.ui.Update()
		if a.state != StateSettings {
			return nil
		}
		if !a.rebuildPending {
			a.restorePendingFocus(a.settingsScreen)
		}
		if nav.Direction != types.DirNone {
			a.ensureFocusedVisible()
		}
	default:
		if a.guardTransition() {
			return nil
		}
		nav := a.processUIInput()
		a.ui.Update()
		if a.state != StateError {
			return nil
		}
		if !a.rebuildPending {
			a.restorePendingFocus(a.errorScreen)
		}
		if nav.Direction != types.DirNone {
			a.ensureFocusedVisible()
		}
	}
	return nil
}

// guardTransition holds off UI input after leaving gameplay until every
// activation input has been released.
func (a *App) guardTransition() bool {
	if !a.gameplayTransitionGuard {
		return false
	}
	ebitenuiInput.Update()
	ebitenuiInput.AfterUpdate()
	if !ebiten.IsKeyPressed(ebiten.KeyEnter) &&
		!ebiten.IsKeyPressed(ebiten.KeySpace) &&
		!ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		a.gameplayTransitionGuard = false
	}
	return true
}

// pollPicker collects the ROM picker's result once the dialog closes.
func (a *App) pollPicker() {
	res, ok := a.picker.Poll()
	if !ok {
		return
	}
	if res.Cancelled || res.Err != nil {
		if res.Err != nil {
			log.Printf("Failed to open ROM: %v", res.Err)
			a.showROMError(res.Err)
		}
		// Opened from the game menu: the game was left paused
		if a.state == StatePlaying {
			a.gameplay.Resume()
		}
		return
	}
	a.config.Paths.LastROMDir = romDir(res.Path)
	a.saveConfig()
	a.launch(res.ROM)
}

// launch starts rom and switches to gameplay. A core failure leaves the
// error screen up.
func (a *App) launch(rom *romloader.ROM) {
	a.notification.Clear()
	if err := a.gameplay.Launch(rom); err != nil {
		log.Printf("Launch failed: %v", err)
		a.showROMError(err)
		return
	}
	log.Printf("Loaded %s", rom.Name)
	a.state = StatePlaying
	a.ui = nil
}

// showROMError shows err on the error screen and as a notification.
func (a *App) showROMError(err error) {
	a.notification.ShowError("Failed to open ROM")
	a.errorScreen.SetROMError(err.Error())
	// A running game stays running; the error only replaces the idle screen
	if a.gameplay.IsPlaying() {
		return
	}
	a.state = StateError
	a.errorScreen.OnEnter()
	a.rebuildCurrentScreen()
}

// restorePendingFocus restores focus to a pending button if one exists
func (a *App) restorePendingFocus(screen screens.FocusRestorer) {
	btn := screen.GetPendingFocusButton()
	if btn != nil {
		btn.Focus(true)
		screen.ClearPendingFocus()
	}
}

// processUIInput polls keyboard and gamepad navigation and applies it.
func (a *App) processUIInput() UINavigation {
	if a.ui == nil {
		return UINavigation{}
	}

	nav := a.inputManager.GetUINavigation()
	if nav.Direction != types.DirNone {
		a.applySpatialNavigation(nav.Direction)
	}

	if nav.Activate {
		if focused := a.ui.GetFocusedWidget(); focused != nil {
			if btn, ok := focused.(*widget.Button); ok {
				btn.Click()
			}
		}
	}

	if nav.Back && a.state == StateSettings {
		a.SwitchToGame()
	}
	return nav
}

// applySpatialNavigation moves focus along the screen's nav zones, falling
// back to linear focus order.
func (a *App) applySpatialNavigation(direction int) {
	focused := a.ui.GetFocusedWidget()

	var nextBtn *widget.Button
	switch a.state {
	case StateSettings:
		nextBtn = a.settingsScreen.FindFocusInDirection(focused, direction)
	case StateError:
		nextBtn = a.errorScreen.FindFocusInDirection(focused, direction)
	}

	if nextBtn != nil {
		if focused != nil {
			focused.Focus(false)
		}
		nextBtn.Focus(true)
		return
	}
	if direction == types.DirUp || direction == types.DirLeft {
		a.ui.ChangeFocus(widget.FOCUS_PREVIOUS)
	} else {
		a.ui.ChangeFocus(widget.FOCUS_NEXT)
	}
}

// ensureFocusedVisible scrolls the current screen to keep the focused widget visible
func (a *App) ensureFocusedVisible() {
	focused := a.ui.GetFocusedWidget()
	if focused == nil {
		return
	}
	if a.state == StateSettings {
		a.settingsScreen.EnsureFocusedVisible(focused)
	}
}

// Draw implements ebiten.Game
func (a *App) Draw(screen *ebiten.Image) {
	switch a.state {
	case StatePlaying:
		a.gameplay.Draw(screen)
	default:
		a.ui.Draw(screen)
	}
	a.notification.Draw(screen)
}

// Layout implements ebiten.Game. It is the surface geometry event: the
// physical size is published to the shared layout every time it changes.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := 1.0
	if m := ebiten.Monitor(); m != nil {
		s = m.DeviceScaleFactor()
	}
	if s != a.currentDPIScale {
		a.currentDPIScale = s
		style.SetDPIScale(s)
		a.rebuildPending = true
	}

	w := int(float64(outsideWidth) * s)
	h := int(float64(outsideHeight) * s)
	if w != a.windowWidth || h != a.windowHeight {
		a.gameplay.SetSurface(w, h)
	}
	a.windowWidth = w
	a.windowHeight = h
	// Fullscreen must not overwrite the size restored on the next start
	if !ebiten.IsFullscreen() {
		a.lastWindowedWidth = w
		a.lastWindowedHeight = h
	}
	return w, h
}

// ScreenCallback implementations

// SwitchToGame leaves the current screen. With a ROM running the game
// resumes; otherwise the idle screen is shown.
func (a *App) SwitchToGame() {
	a.notification.Clear()
	if a.gameplay.IsPlaying() {
		a.state = StatePlaying
		a.ui = nil
		a.gameplay.Resume()
		return
	}
	if a.state == StateError {
		return
	}
	a.state = StateError
	a.errorScreen.OnEnter()
	a.rebuildCurrentScreen()
}

// SwitchToSettings opens the settings screen. A running game stays paused
// until the screen is left.
func (a *App) SwitchToSettings() {
	a.notification.Clear()
	if a.state == StatePlaying {
		a.gameplayTransitionGuard = true
	}
	a.state = StateSettings
	a.settingsScreen.SetConfig(a.config)
	a.settingsScreen.OnEnter()
	a.rebuildCurrentScreen()
}

// OpenROM shows the native file picker. The result is collected in Update.
func (a *App) OpenROM() {
	a.picker.Open(a.config.Paths.LastROMDir)
}

// Exit closes the application
func (a *App) Exit() {
	a.saveWindowState()
	a.gameplay.Close()
	a.core.Close()
	// os.Exit avoids log.Fatal's stack trace
	os.Exit(0)
}

// GetWindowWidth returns the current window width for responsive layouts
func (a *App) GetWindowWidth() int {
	return a.windowWidth
}

// RequestRebuild triggers a UI rebuild for the current screen.
// Safe to call from goroutines; the rebuild happens on the main thread.
func (a *App) RequestRebuild() {
	a.rebuildPending = true
}

// ConfigChanged saves the config and pushes it to the running game. A new
// working directory takes effect for the next ROM.
func (a *App) ConfigChanged() {
	a.saveConfig()
	style.ApplyThemeByName(a.config.Theme)

	if dirs, err := storage.ResolveDirs(a.config.Paths.WorkingDir); err != nil {
		log.Printf("Failed to resolve working directory: %v", err)
	} else if dirs != a.dirs {
		if err := dirs.Ensure(); err != nil {
			log.Printf("Failed to create working directory: %v", err)
			a.notification.ShowError("Working directory unavailable")
		} else {
			a.dirs = dirs
			a.gameplay.SetDirs(dirs)
			a.screenshotManager.SetDir(dirs.Screenshots)
		}
	}

	a.gameplay.ApplyConfig()
	a.gameplay.RebuildInputMapping()
}

// handleDeleteAndContinue replaces an unreadable config with the defaults.
func (a *App) handleDeleteAndContinue() {
	configPath, err := storage.GetConfigPath()
	if err == nil {
		if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to delete config: %v", err)
		}
	}
	a.config = storage.DefaultConfig()
	a.continueWithConfig()
}

// handleResetAndContinue corrects invalid config values and continues.
func (a *App) handleResetAndContinue() {
	storage.CorrectConfig(a.config, style.ThemeNames())
	storage.CorrectInputConfig(a.config, ValidKeyName, ValidPadName)
	a.continueWithConfig()
}

// continueWithConfig saves the recovered config, rebuilds everything that
// holds a reference to it and opens the ROM picker.
func (a *App) continueWithConfig() {
	a.configLoadFailed = false
	a.saveConfig()

	style.ApplyThemeByName(a.config.Theme)
	style.ApplyFontSize(storage.ValidFontSize(a.config.FontSize))

	if err := a.initRuntime(); err != nil {
		log.Printf("Failed to start: %v", err)
		a.notification.ShowError("Failed to create data directories")
	}
	if a.windowWidth > 0 && a.windowHeight > 0 {
		a.gameplay.SetSurface(a.windowWidth, a.windowHeight)
	}

	a.errorScreen.SetROMError("")
	a.errorScreen.OnEnter()
	a.rebuildCurrentScreen()
	a.OpenROM()
}

// SaveAndClose saves window state and stops emulation after the game loop
// exits.
func (a *App) SaveAndClose() {
	a.saveWindowState()
	a.gameplay.Close()
	a.core.Close()
}
