//go:build !libretro

package standalone

import (
	"errors"
	"fmt"
	"time"
)

const (
	// QuickSlot backs the quick save and quick load hotkeys.
	QuickSlot = 0
	// MaxSlot is the highest numbered slot offered in the game menu.
	MaxSlot = 9
)

// ErrEmptySlot is returned when loading a slot with no saved state.
var ErrEmptySlot = errors.New("save slot is empty")

// ErrInvalidSlot is returned for slot numbers outside 0-MaxSlot.
var ErrInvalidSlot = errors.New("invalid save slot")

// StateStore is the part of the core that persists save states. The core
// owns the files; the frontend only picks slots.
type StateStore interface {
	SaveState(slot int) error
	RestoreState(slot int) error
	SlotInfo(slot int) (time.Time, bool)
}

// SaveSlot describes one numbered slot. LastModified is nil when the slot
// is empty.
type SaveSlot struct {
	Slot         int
	LastModified *time.Time
}

// Empty reports whether nothing is saved in the slot.
func (s SaveSlot) Empty() bool {
	return s.LastModified == nil
}

// SaveStateManager dispatches save and load requests to numbered slots.
// Calls must run while the emulation goroutine is paused.
type SaveStateManager struct {
	currentSlot  int
	notification *Notification
}

// NewSaveStateManager creates a new save state manager
func NewSaveStateManager(notification *Notification) *SaveStateManager {
	return &SaveStateManager{
		currentSlot:  QuickSlot,
		notification: notification,
	}
}

// GetCurrentSlot returns the slot used by the save/load hotkeys
func (m *SaveStateManager) GetCurrentSlot() int {
	return m.currentSlot
}

// NextSlot cycles to the next save slot
func (m *SaveStateManager) NextSlot() {
	m.currentSlot = (m.currentSlot + 1) % (MaxSlot + 1)
	m.notify(fmt.Sprintf("Slot %d", m.currentSlot))
}

// PreviousSlot cycles to the previous save slot
func (m *SaveStateManager) PreviousSlot() {
	m.currentSlot--
	if m.currentSlot < 0 {
		m.currentSlot = MaxSlot
	}
	m.notify(fmt.Sprintf("Slot %d", m.currentSlot))
}

// Slot returns the record for one slot.
func (m *SaveStateManager) Slot(store StateStore, slot int) SaveSlot {
	s := SaveSlot{Slot: slot}
	if t, ok := store.SlotInfo(slot); ok {
		s.LastModified = &t
	}
	return s
}

// Slots returns records for the menu slots 1 through MaxSlot.
func (m *SaveStateManager) Slots(store StateStore) []SaveSlot {
	slots := make([]SaveSlot, 0, MaxSlot)
	for i := 1; i <= MaxSlot; i++ {
		slots = append(slots, m.Slot(store, i))
	}
	return slots
}

// Save writes the current state to slot.
func (m *SaveStateManager) Save(store StateStore, slot int) error {
	if !validSlot(slot) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if err := store.SaveState(slot); err != nil {
		m.notify("Save failed")
		return fmt.Errorf("failed to save slot %d: %w", slot, err)
	}
	m.notify(fmt.Sprintf("State saved to slot %d", slot))
	return nil
}

// Load restores the state in slot. An empty slot is reported to the user
// and returns ErrEmptySlot.
func (m *SaveStateManager) Load(store StateStore, slot int) error {
	if !validSlot(slot) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if _, ok := store.SlotInfo(slot); !ok {
		m.notify(fmt.Sprintf("No save in slot %d", slot))
		return fmt.Errorf("%w: %d", ErrEmptySlot, slot)
	}
	if err := store.RestoreState(slot); err != nil {
		m.notify("Load failed")
		return fmt.Errorf("failed to restore slot %d: %w", slot, err)
	}
	m.notify("State loaded")
	return nil
}

// SaveCurrent saves to the hotkey slot.
func (m *SaveStateManager) SaveCurrent(store StateStore) error {
	return m.Save(store, m.currentSlot)
}

// LoadCurrent loads from the hotkey slot.
func (m *SaveStateManager) LoadCurrent(store StateStore) error {
	return m.Load(store, m.currentSlot)
}

func (m *SaveStateManager) notify(msg string) {
	if m.notification != nil {
		m.notification.ShowShort(msg)
	}
}

func validSlot(slot int) bool {
	return slot >= 0 && slot <= MaxSlot
}
