//go:build !libretro

package standalone

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	emucore "github.com/user-none/ndsui/api"
)

// fakeStateStore records save and restore calls.
type fakeStateStore struct {
	saved    map[int]time.Time
	restored []int
	saveErr  error
	clock    time.Time
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{
		saved: make(map[int]time.Time),
		clock: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStateStore) SaveState(slot int) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.clock = f.clock.Add(time.Minute)
	f.saved[slot] = f.clock
	return nil
}

func (f *fakeStateStore) RestoreState(slot int) error {
	f.restored = append(f.restored, slot)
	return nil
}

func (f *fakeStateStore) SlotInfo(slot int) (time.Time, bool) {
	t, ok := f.saved[slot]
	return t, ok
}

func TestNewSaveStateManager(t *testing.T) {
	m := NewSaveStateManager(nil)
	if m.GetCurrentSlot() != QuickSlot {
		t.Errorf("initial slot should be %d, got %d", QuickSlot, m.GetCurrentSlot())
	}
}

func TestNextSlot(t *testing.T) {
	m := NewSaveStateManager(nil)

	for i := 1; i <= 10; i++ {
		m.NextSlot()
		expected := i % 10
		if m.GetCurrentSlot() != expected {
			t.Errorf("after %d NextSlot calls, expected slot %d, got %d", i, expected, m.GetCurrentSlot())
		}
	}
}

func TestPreviousSlot(t *testing.T) {
	m := NewSaveStateManager(nil)

	m.PreviousSlot()
	if m.GetCurrentSlot() != MaxSlot {
		t.Errorf("expected slot %d, got %d", MaxSlot, m.GetCurrentSlot())
	}

	expected := []int{8, 7, 6, 5, 4, 3, 2, 1, 0}
	for i, exp := range expected {
		m.PreviousSlot()
		if m.GetCurrentSlot() != exp {
			t.Errorf("step %d: expected slot %d, got %d", i, exp, m.GetCurrentSlot())
		}
	}
}

func TestSlotsListsMenuSlots(t *testing.T) {
	store := newFakeStateStore()
	m := NewSaveStateManager(nil)

	if err := m.Save(store, 3); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := m.Save(store, QuickSlot); err != nil {
		t.Fatalf("Save quick: %v", err)
	}

	slots := m.Slots(store)
	if len(slots) != MaxSlot {
		t.Fatalf("got %d slots, want %d", len(slots), MaxSlot)
	}
	for i, s := range slots {
		if s.Slot != i+1 {
			t.Errorf("slots[%d].Slot = %d", i, s.Slot)
		}
		wantEmpty := s.Slot != 3
		if s.Empty() != wantEmpty {
			t.Errorf("slot %d empty = %v", s.Slot, s.Empty())
		}
	}
	if got := *slots[2].LastModified; !got.Equal(store.saved[3]) {
		t.Errorf("slot 3 time = %v, want %v", got, store.saved[3])
	}
}

func TestLoadEmptySlot(t *testing.T) {
	store := newFakeStateStore()
	m := NewSaveStateManager(NewNotification())

	err := m.Load(store, 4)
	if !errors.Is(err, ErrEmptySlot) {
		t.Fatalf("Load empty = %v, want ErrEmptySlot", err)
	}
	if len(store.restored) != 0 {
		t.Error("core restore called for empty slot")
	}
	if msg := m.notification.Message(); msg != "No save in slot 4" {
		t.Errorf("notification = %q", msg)
	}
}

func TestSaveThenLoad(t *testing.T) {
	store := newFakeStateStore()
	n := NewNotification()
	m := NewSaveStateManager(n)

	if err := m.SaveCurrent(store); err != nil {
		t.Fatalf("SaveCurrent: %v", err)
	}
	if msg := n.Message(); msg != "State saved to slot 0" {
		t.Errorf("notification = %q", msg)
	}
	if err := m.LoadCurrent(store); err != nil {
		t.Fatalf("LoadCurrent: %v", err)
	}
	if len(store.restored) != 1 || store.restored[0] != QuickSlot {
		t.Errorf("restored = %v", store.restored)
	}
}

func TestSaveErrors(t *testing.T) {
	store := newFakeStateStore()
	m := NewSaveStateManager(nil)

	for _, slot := range []int{-1, MaxSlot + 1} {
		if err := m.Save(store, slot); !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("Save(%d) = %v, want ErrInvalidSlot", slot, err)
		}
		if err := m.Load(store, slot); !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("Load(%d) = %v, want ErrInvalidSlot", slot, err)
		}
	}

	coreErr := errors.New("disk full")
	store.saveErr = coreErr
	if err := m.Save(store, 1); !errors.Is(err, coreErr) {
		t.Errorf("Save = %v, want wrapped core error", err)
	}
}

// slotCore is an emucore.Core whose save slots are backed by a
// fakeStateStore. Other Core methods are not used by the slot paths.
type slotCore struct {
	emucore.Core
	store *fakeStateStore
}

func (c *slotCore) SaveState(slot int) error { return c.store.SaveState(slot) }
func (c *slotCore) RestoreState(slot int) error { return c.store.RestoreState(slot) }
func (c *slotCore) SlotInfo(slot int) (time.Time, bool) { return c.store.SlotInfo(slot) }

func TestGameplaySaveSlotLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	store := newFakeStateStore()
	gm := &GameplayManager{
		core:             &slotCore{store: store},
		saveStateManager: NewSaveStateManager(nil),
	}

	gm.saveSlot(3)
	if _, ok := store.saved[3]; !ok {
		t.Fatal("slot 3 not saved")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %q", buf.String())
	}

	store.saveErr = errors.New("disk full")
	gm.saveSlot(4)
	if !strings.Contains(buf.String(), "Save state failed") || !strings.Contains(buf.String(), "disk full") {
		t.Errorf("log = %q, want save failure", buf.String())
	}
}
