//go:build !libretro

package standalone

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/user-none/ndsui/standalone/style"
)

// MenuPage identifies which list the game menu shows.
type MenuPage int

const (
	MenuPageMain MenuPage = iota
	MenuPageSave
	MenuPageLoad
)

// GameMenuCallbacks are run for menu selections. Any may be nil.
type GameMenuCallbacks struct {
	OnResume   func()
	OnSave     func(slot int)
	OnLoad     func(slot int)
	OnSettings func()
	OnOpenROM  func()
	OnQuit     func()
	// Slots lists the menu save slots for the save and load pages.
	Slots func() []SaveSlot
}

type menuItem struct {
	label  string
	action func()
}

// GameMenu is the in-game menu. Emulation is paused while it is visible.
type GameMenu struct {
	visible       bool
	page          MenuPage
	selectedIndex int
	items         []menuItem
	cb            GameMenuCallbacks
	now           func() time.Time

	// Cached layout info for pointer hit testing
	buttonRects []image.Rectangle

	cache struct {
		screenW, screenH int
		themeName        string
		dimOverlay       *ebiten.Image
	}

	textOpts text.DrawOptions
	touchIDs []ebiten.TouchID
	padIDs   []ebiten.GamepadID
}

// NewGameMenu creates a hidden game menu.
func NewGameMenu(cb GameMenuCallbacks) *GameMenu {
	return &GameMenu{cb: cb, now: time.Now}
}

// Show opens the menu on the main page.
func (m *GameMenu) Show() {
	m.visible = true
	m.setPage(MenuPageMain)
}

// Hide hides the menu without running any callback.
func (m *GameMenu) Hide() {
	m.visible = false
}

// IsVisible returns whether the menu is visible
func (m *GameMenu) IsVisible() bool {
	return m.visible
}

// Page returns the page being shown.
func (m *GameMenu) Page() MenuPage {
	return m.page
}

// Back leaves a slot page, or resumes from the main page.
func (m *GameMenu) Back() {
	if m.page != MenuPageMain {
		m.setPage(MenuPageMain)
		return
	}
	m.resume()
}

func (m *GameMenu) setPage(p MenuPage) {
	m.page = p
	m.selectedIndex = 0
	m.items = m.buildItems()
	m.buttonRects = make([]image.Rectangle, len(m.items))
}

func (m *GameMenu) buildItems() []menuItem {
	switch m.page {
	case MenuPageSave, MenuPageLoad:
		return m.slotItems()
	}
	return []menuItem{
		{"Resume", m.resume},
		{"Save State", func() { m.setPage(MenuPageSave) }},
		{"Load State", func() { m.setPage(MenuPageLoad) }},
		{"Settings", m.close(m.cb.OnSettings)},
		{"Open ROM", m.close(m.cb.OnOpenROM)},
		{"Quit", m.close(m.cb.OnQuit)},
	}
}

func (m *GameMenu) slotItems() []menuItem {
	var slots []SaveSlot
	if m.cb.Slots != nil {
		slots = m.cb.Slots()
	}
	now := m.now()
	items := make([]menuItem, 0, len(slots)+1)
	for _, s := range slots {
		slot := s.Slot
		label := fmt.Sprintf("Slot %d  %s", slot, style.FormatSlotTime(s.LastModified, now))
		fn := m.cb.OnLoad
		if m.page == MenuPageSave {
			fn = m.cb.OnSave
		}
		items = append(items, menuItem{label, func() {
			m.Hide()
			if fn != nil {
				fn(slot)
			}
		}})
	}
	return append(items, menuItem{"Back", func() { m.setPage(MenuPageMain) }})
}

func (m *GameMenu) resume() {
	m.close(m.cb.OnResume)()
}

// close wraps fn so the menu hides before it runs.
func (m *GameMenu) close(fn func()) func() {
	return func() {
		m.Hide()
		if fn != nil {
			fn()
		}
	}
}

func (m *GameMenu) moveSelection(delta int) {
	n := len(m.items)
	if n == 0 {
		return
	}
	m.selectedIndex = (m.selectedIndex + delta + n) % n
}

// handleSelect runs the selected item.
func (m *GameMenu) handleSelect() {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.items) {
		return
	}
	m.items[m.selectedIndex].action()
}

// Update handles input for the game menu
func (m *GameMenu) Update() {
	if !m.visible {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		m.Back()
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		m.moveSelection(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		m.moveSelection(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		m.handleSelect()
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if m.selectAt(image.Pt(ebiten.CursorPosition())) {
			return
		}
	}
	m.touchIDs = inpututil.AppendJustPressedTouchIDs(m.touchIDs[:0])
	for _, id := range m.touchIDs {
		if m.selectAt(image.Pt(ebiten.TouchPosition(id))) {
			return
		}
	}

	// Hover highlight
	m.hoverAt(image.Pt(ebiten.CursorPosition()))

	m.padIDs = ebiten.AppendGamepadIDs(m.padIDs[:0])
	for _, id := range m.padIDs {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftTop) {
			m.moveSelection(-1)
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftBottom) {
			m.moveSelection(1)
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			m.handleSelect()
			return
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight) ||
			inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			m.Back()
			return
		}
	}
}

// selectAt runs the item under p, if any.
func (m *GameMenu) selectAt(p image.Point) bool {
	for i, rect := range m.buttonRects {
		if p.In(rect) {
			m.selectedIndex = i
			m.handleSelect()
			return true
		}
	}
	return false
}

func (m *GameMenu) hoverAt(p image.Point) {
	for i, rect := range m.buttonRects {
		if p.In(rect) {
			m.selectedIndex = i
			return
		}
	}
}

// menuGeometry sizes the panel for n items on a screenW x screenH screen.
// Buttons shrink below the minimum height when the list would not fit.
func menuGeometry(screenW, screenH, n int) (panelW, buttonW, buttonH int) {
	panelW = min(max(screenW*40/100, style.MenuMinWidth), style.MenuMaxWidth, screenW)
	buttonW = panelW * 80 / 100
	buttonH = min(max(screenH*8/100, style.MenuMinBtnHeight), style.MenuMaxBtnHeight)
	if n > 0 {
		// padding*2 + n*h + (n-1)*h/4 with padding = h/2
		fit := screenH * 4 / (5*n + 3)
		buttonH = max(min(buttonH, fit), 1)
	}
	return panelW, buttonW, buttonH
}

func (m *GameMenu) rebuildCache(screenW, screenH int) {
	if m.cache.dimOverlay != nil {
		m.cache.dimOverlay.Deallocate()
	}
	m.cache.screenW = screenW
	m.cache.screenH = screenH
	m.cache.themeName = style.CurrentThemeName

	m.cache.dimOverlay = ebiten.NewImage(screenW, screenH)
	dimColor := style.DimOverlay
	dimColor.A = 128
	m.cache.dimOverlay.Fill(dimColor)
}

// Draw renders the game menu
func (m *GameMenu) Draw(screen *ebiten.Image) {
	if !m.visible {
		return
	}

	bounds := screen.Bounds()
	screenW, screenH := bounds.Dx(), bounds.Dy()
	if screenW <= 0 || screenH <= 0 {
		return
	}
	if m.cache.screenW != screenW || m.cache.screenH != screenH || m.cache.themeName != style.CurrentThemeName {
		m.rebuildCache(screenW, screenH)
	}
	screen.DrawImage(m.cache.dimOverlay, nil)

	n := len(m.items)
	panelW, buttonW, buttonH := menuGeometry(screenW, screenH, n)
	spacing := buttonH / 4
	padding := buttonH / 2
	panelH := padding*2 + n*buttonH + max(n-1, 0)*spacing

	panelX := (screenW - panelW) / 2
	panelY := (screenH - panelH) / 2
	vector.DrawFilledRect(screen, float32(panelX), float32(panelY), float32(panelW), float32(panelH), style.Surface, false)
	vector.StrokeRect(screen, float32(panelX), float32(panelY), float32(panelW), float32(panelH), 1, style.Border, false)

	face := *style.FontFace()
	for i, item := range m.items {
		x := panelX + (panelW-buttonW)/2
		y := panelY + padding + i*(buttonH+spacing)
		m.buttonRects[i] = image.Rect(x, y, x+buttonW, y+buttonH)

		if i == m.selectedIndex {
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(buttonW), float32(buttonH), style.Primary, false)
		} else {
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(buttonW), float32(buttonH), style.Surface, false)
			vector.StrokeRect(screen, float32(x), float32(y), float32(buttonW), float32(buttonH), 1, style.Border, false)
		}

		label, _ := style.TruncateToWidth(item.label, face, float64(buttonW-style.ButtonPaddingSmall*2))
		m.textOpts = text.DrawOptions{}
		m.textOpts.GeoM.Translate(float64(x+buttonW/2), float64(y+buttonH/2))
		m.textOpts.PrimaryAlign = text.AlignCenter
		m.textOpts.SecondaryAlign = text.AlignCenter
		m.textOpts.ColorScale.ScaleWithColor(style.Text)
		text.Draw(screen, label, face, &m.textOpts)
	}
}
