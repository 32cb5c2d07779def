//go:build !libretro

package standalone

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/sqweek/dialog"
	"github.com/user-none/ndsui/romloader"
)

// PickResult is the outcome of one ROM picker run.
type PickResult struct {
	ROM       *romloader.ROM
	Path      string
	Err       error
	Cancelled bool
}

// ROMPicker runs the native open dialog and the ROM read off the Ebiten
// thread. The app collects the result with Poll.
type ROMPicker struct {
	mu      sync.Mutex
	running bool
	result  *PickResult

	// Swappable in tests
	choose func(startDir string) (string, error)
	load   func(path string) (*romloader.ROM, error)
}

// NewROMPicker creates a picker using the system file dialog.
func NewROMPicker() *ROMPicker {
	return &ROMPicker{
		choose: chooseROMFile,
		load:   romloader.Load,
	}
}

func chooseROMFile(startDir string) (string, error) {
	b := dialog.File().
		Title("Open ROM").
		Filter("Nintendo DS ROMs", romloader.PickerFilter...)
	if startDir != "" {
		b = b.SetStartDir(startDir)
	}
	return b.Load()
}

// Open starts the dialog. It does nothing while a dialog is already up.
func (p *ROMPicker) Open(startDir string) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	go func() {
		res := p.run(startDir)
		p.mu.Lock()
		p.running = false
		p.result = &res
		p.mu.Unlock()
	}()
}

func (p *ROMPicker) run(startDir string) PickResult {
	path, err := p.choose(startDir)
	if errors.Is(err, dialog.ErrCancelled) {
		return PickResult{Cancelled: true}
	}
	if err != nil {
		return PickResult{Err: err}
	}
	rom, err := p.load(path)
	return PickResult{ROM: rom, Path: path, Err: err}
}

// IsOpen reports whether a dialog or ROM read is in flight.
func (p *ROMPicker) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Poll returns a finished result once.
func (p *ROMPicker) Poll() (PickResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result == nil {
		return PickResult{}, false
	}
	res := *p.result
	p.result = nil
	return res, true
}

// romDir is the folder to remember for the next picker run.
func romDir(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Dir(path)
}
