//go:build !libretro

package screens

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/user-none/ndsui/standalone/types"
)

// NavZone is an ordered group of focusable buttons.
type NavZone struct {
	Type    string   // types.NavZoneHorizontal, types.NavZoneVertical or types.NavZoneGrid
	Keys    []string // Row-major button keys
	Columns int      // Grid zones only
}

// columns returns the row width of the zone.
func (z *NavZone) columns() int {
	switch z.Type {
	case types.NavZoneHorizontal:
		return max(len(z.Keys), 1)
	case types.NavZoneGrid:
		return max(z.Columns, 1)
	}
	return 1
}

// step moves index one cell in direction. It returns false when the move
// leaves the zone.
func (z *NavZone) step(index, direction int) (int, bool) {
	cols := z.columns()
	n := len(z.Keys)
	col := index % cols

	switch direction {
	case types.DirLeft:
		if col > 0 {
			return index - 1, true
		}
	case types.DirRight:
		if col < cols-1 && index+1 < n {
			return index + 1, true
		}
	case types.DirUp:
		if index-cols >= 0 {
			return index - cols, true
		}
	case types.DirDown:
		if index+cols < n {
			return index + cols, true
		}
	}
	return -1, false
}

// NavTransition says where focus goes when it leaves a zone.
type NavTransition struct {
	ToZone  string
	ToIndex int // types.NavIndexFirst, types.NavIndexLast or an index
}

// BaseScreen provides scroll preservation, focus restoration and zone
// navigation for screens that are rebuilt on every change.
type BaseScreen struct {
	scrollContainer *widget.ScrollContainer
	vSlider         *widget.Slider
	scrollTop       float64

	focusButtons map[string]*widget.Button
	pendingFocus string

	navZones       map[string]*NavZone
	navTransitions map[string]map[int]NavTransition
	buttonToZone   map[string]string
}

// InitBase initializes the base screen state.
// Call this in the screen's constructor.
func (b *BaseScreen) InitBase() {
	b.ClearFocusButtons()
}

// SetScrollWidgets stores the scroll widgets of the current build.
func (b *BaseScreen) SetScrollWidgets(scrollContainer *widget.ScrollContainer, vSlider *widget.Slider) {
	b.scrollContainer = scrollContainer
	b.vSlider = vSlider
}

// SaveScrollPosition remembers the scroll offset before a rebuild.
func (b *BaseScreen) SaveScrollPosition() {
	if b.scrollContainer != nil {
		b.scrollTop = b.scrollContainer.ScrollTop
	}
}

// RestoreScrollPosition reapplies the saved offset to a rebuilt container.
func (b *BaseScreen) RestoreScrollPosition() {
	if b.scrollContainer != nil && b.scrollTop > 0 {
		b.setScrollTop(b.scrollTop)
	}
}

func (b *BaseScreen) setScrollTop(top float64) {
	b.scrollContainer.ScrollTop = top
	if b.vSlider != nil {
		b.vSlider.Current = int(top * 1000)
	}
}

// RegisterFocusButton registers a button for focus restoration.
func (b *BaseScreen) RegisterFocusButton(key string, btn *widget.Button) {
	b.focusButtons[key] = btn
}

// SaveFocusState records the focused button as pending focus so a rebuild
// lands on it again. An already pending focus wins.
func (b *BaseScreen) SaveFocusState(focused widget.Focuser) {
	if b.pendingFocus != "" || focused == nil {
		return
	}
	if key := b.keyOf(focused); key != "" {
		b.pendingFocus = key
	}
}

func (b *BaseScreen) keyOf(focused widget.Focuser) string {
	w := focused.GetWidget()
	if w == nil {
		return ""
	}
	for key, btn := range b.focusButtons {
		if btn.GetWidget() == w {
			return key
		}
	}
	return ""
}

// ClearFocusButtons drops every registered button and zone. Call it at the
// start of Build().
func (b *BaseScreen) ClearFocusButtons() {
	b.focusButtons = make(map[string]*widget.Button)
	b.navZones = make(map[string]*NavZone)
	b.navTransitions = make(map[string]map[int]NavTransition)
	b.buttonToZone = make(map[string]string)
}

// SetPendingFocus sets the key of the button to focus after rebuild.
func (b *BaseScreen) SetPendingFocus(key string) {
	b.pendingFocus = key
}

// SetDefaultFocus sets the pending focus unless one is already set.
func (b *BaseScreen) SetDefaultFocus(key string) {
	if b.pendingFocus == "" {
		b.pendingFocus = key
	}
}

// GetPendingFocusButton returns the button to focus after rebuild, or nil.
func (b *BaseScreen) GetPendingFocusButton() *widget.Button {
	if b.pendingFocus == "" {
		return nil
	}
	return b.focusButtons[b.pendingFocus]
}

// ClearPendingFocus clears the pending focus state.
func (b *BaseScreen) ClearPendingFocus() {
	b.pendingFocus = ""
}

// RegisterNavZone registers a zone. columns is used by grid zones only.
func (b *BaseScreen) RegisterNavZone(name string, zoneType string, keys []string, columns int) {
	b.navZones[name] = &NavZone{Type: zoneType, Keys: keys, Columns: columns}
	for _, key := range keys {
		b.buttonToZone[key] = name
	}
}

// SetNavTransition defines where focus goes when it leaves fromZone in
// direction.
func (b *BaseScreen) SetNavTransition(fromZone string, direction int, toZone string, toIndex int) {
	if b.navTransitions[fromZone] == nil {
		b.navTransitions[fromZone] = make(map[int]NavTransition)
	}
	b.navTransitions[fromZone][direction] = NavTransition{ToZone: toZone, ToIndex: toIndex}
}

// EnsureFocusedVisible scrolls the registered scroll container just enough
// to show the focused button.
func (b *BaseScreen) EnsureFocusedVisible(focused widget.Focuser) {
	if focused == nil || b.scrollContainer == nil {
		return
	}
	if _, ok := focused.(*widget.Button); !ok {
		return
	}
	w := focused.GetWidget()
	if w == nil {
		return
	}

	view := b.scrollContainer.ViewRect()
	content := b.scrollContainer.ContentRect()
	maxScroll := content.Dy() - view.Dy()
	if maxScroll <= 0 {
		return
	}
	offset := int(b.scrollContainer.ScrollTop * float64(maxScroll))

	top := w.Rect.Min.Y - view.Min.Y
	bottom := w.Rect.Max.Y - view.Min.Y
	switch {
	case top < 0:
		offset = max(offset+top, 0)
	case bottom > view.Dy():
		offset = min(offset+bottom-view.Dy(), maxScroll)
	default:
		return
	}
	b.setScrollTop(float64(offset) / float64(maxScroll))
}

// FindFocusInDirection returns the button reached by moving from current
// in direction, following zone transitions. It returns nil when current is
// not in a zone or nothing lies that way.
func (b *BaseScreen) FindFocusInDirection(current widget.Focuser, direction int) *widget.Button {
	if current == nil || len(b.focusButtons) == 0 {
		return nil
	}
	key := b.keyOf(current)
	zoneName, ok := b.buttonToZone[key]
	if !ok {
		return nil
	}
	zone := b.navZones[zoneName]
	index := indexOf(zone.Keys, key)
	if index < 0 {
		return nil
	}

	if next, ok := zone.step(index, direction); ok {
		return b.focusButtons[zone.Keys[next]]
	}
	return b.transition(zoneName, direction)
}

// transition follows the zone exit registered for direction.
func (b *BaseScreen) transition(fromZone string, direction int) *widget.Button {
	tr, ok := b.navTransitions[fromZone][direction]
	if !ok {
		return nil
	}
	to := b.navZones[tr.ToZone]
	if to == nil || len(to.Keys) == 0 {
		return nil
	}

	index := 0
	switch {
	case tr.ToIndex == types.NavIndexLast:
		index = len(to.Keys) - 1
	case tr.ToIndex >= 0 && tr.ToIndex < len(to.Keys):
		index = tr.ToIndex
	}
	return b.focusButtons[to.Keys[index]]
}

func indexOf(keys []string, key string) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}
