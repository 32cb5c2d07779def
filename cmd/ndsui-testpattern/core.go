package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	emucore "github.com/user-none/ndsui/api"
)

const (
	sampleRate = 48000
	frameRate  = 60
	toneHz     = 440
)

// Header field holding the game title in a DS cartridge image.
const (
	titleOffset = 0x00
	titleLen    = 12
)

var errNoROM = errors.New("no ROM loaded")

// patternCore is an emucore.Core that draws color bars on the main panel
// and a grid with the pen position on the touch panel. Pressed buttons
// light up a strip along the bottom of the main panel and A plays a tone.
// Filter 1 doubles the framebuffer size so filter-driven geometry changes
// can be seen.
type patternCore struct {
	mu sync.Mutex

	loaded  bool
	name    string
	title   string
	dir     string
	frame   uint64
	buttons uint32
	penX    int
	penY    int
	penDown bool
	filter  int
	phase   float64

	fps       int
	fpsFrames int
	fpsStart  time.Time
	now       func() time.Time
}

func newPatternCore() *patternCore {
	return &patternCore{now: time.Now}
}

func (c *patternCore) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		Name:          "nds",
		ConsoleName:   "Nintendo DS",
		Extensions:    []string{".nds"},
		SampleRate:    sampleRate,
		Buttons:       emucore.DefaultButtons,
		ScreenFilters: []string{"None", "Double"},
		DataDirName:   "ndsui-testpattern",
		CoreName:      "ndsui test pattern",
		CoreVersion:   "1.0",
	}
}

func (c *patternCore) scale() int {
	if c.filter == 1 {
		return 2
	}
	return 1
}

func (c *patternCore) PanelWidth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return emucore.NativeWidth * c.scale()
}

func (c *patternCore) PanelHeight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return emucore.NativeHeight * c.scale()
}

func (c *patternCore) ScreenFilter() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *patternCore) SetScreenFilter(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index > 1 {
		index = 0
	}
	c.filter = index
}

func (c *patternCore) SetWorkingDir(dir, tempDir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dir = dir
}

// LoadROM accepts any image. The title comes from the cartridge header
// when there is one.
func (c *patternCore) LoadROM(rom []byte, name string) error {
	if len(rom) == 0 {
		return fmt.Errorf("%s is empty", name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = true
	c.name = strings.TrimSuffix(name, filepath.Ext(name))
	c.title = headerTitle(rom)
	if c.title == "" {
		c.title = c.name
	}
	c.frame = 0
	c.fpsStart = c.now()
	c.fpsFrames = 0
	return nil
}

// headerTitle returns the printable title from a DS header, or "".
func headerTitle(rom []byte) string {
	if len(rom) < titleOffset+titleLen {
		return ""
	}
	raw := rom[titleOffset : titleOffset+titleLen]
	var b strings.Builder
	for _, ch := range raw {
		if ch == 0 {
			break
		}
		if ch < 0x20 || ch > 0x7E {
			return ""
		}
		b.WriteByte(ch)
	}
	return strings.TrimSpace(b.String())
}

func (c *patternCore) CloseROM() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.penDown = false
	c.buttons = 0
}

func (c *patternCore) RunFrame() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return
	}
	c.frame++
	c.fpsFrames++
	if now := c.now(); now.Sub(c.fpsStart) >= time.Second {
		c.fps = c.fpsFrames
		c.fpsFrames = 0
		c.fpsStart = now
	}
}

func (c *patternCore) SetButtons(buttons uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buttons = buttons
}

func (c *patternCore) TouchScreenTouch(x, y int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.penX, c.penY, c.penDown = x, y, true
}

func (c *patternCore) TouchScreenRelease() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.penDown = false
}

// AudioSamples returns one frame of stereo PCM: a tone while A is held,
// silence otherwise.
func (c *patternCore) AudioSamples() []int16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := sampleRate / frameRate
	out := make([]int16, n*2)
	if !c.loaded || c.buttons&(1<<emucore.ButtonA) == 0 {
		return out
	}
	step := 2 * math.Pi * toneHz / sampleRate
	for i := range n {
		v := int16(math.Sin(c.phase) * 4000)
		out[i*2] = v
		out[i*2+1] = v
		c.phase += step
	}
	c.phase = math.Mod(c.phase, 2*math.Pi)
	return out
}

// RenderFrame draws the pattern for the current frame into buf.
func (c *patternCore) RenderFrame(buf []byte) emucore.StatusWord {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.scale()
	w, h := emucore.NativeWidth*s, emucore.NativeHeight*s
	if len(buf) < w*h*4 {
		return 0
	}
	panelH := h / 2
	for y := range h {
		for x := range w {
			var r, g, b byte
			if y < panelH {
				r, g, b = c.mainPixel(x/s, y/s)
			} else {
				r, g, b = c.touchPixel(x/s, (y-panelH)/s)
			}
			i := (y*w + x) * 4
			buf[i], buf[i+1], buf[i+2], buf[i+3] = r, g, b, 0xFF
		}
	}

	load := int(c.frame % 100)
	return emucore.PackStatus(c.fps, c.fps, load, 100-load)
}

var barColors = [8][3]byte{
	{0xFF, 0xFF, 0xFF}, {0xFF, 0xFF, 0x00}, {0x00, 0xFF, 0xFF}, {0x00, 0xFF, 0x00},
	{0xFF, 0x00, 0xFF}, {0xFF, 0x00, 0x00}, {0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00},
}

// mainPixel returns scrolling color bars with a button strip along the
// bottom. x and y are in native panel coordinates.
func (c *patternCore) mainPixel(x, y int) (byte, byte, byte) {
	const stripH = 12
	if y >= emucore.NativePanelHeight-stripH {
		slot := x * 12 / emucore.NativePanelWidth
		if c.buttons&(1<<slot) != 0 {
			return 0x40, 0xE0, 0x40
		}
		return 0x30, 0x30, 0x30
	}
	if !c.loaded {
		return 0x20, 0x20, 0x20
	}
	bar := ((x + int(c.frame)) % emucore.NativePanelWidth) * len(barColors) / emucore.NativePanelWidth
	col := barColors[bar]
	return col[0], col[1], col[2]
}

// touchPixel returns a 16 pixel grid with a cross at the pen.
func (c *patternCore) touchPixel(x, y int) (byte, byte, byte) {
	if c.penDown && (abs(x-c.penX) <= 1 || abs(y-c.penY) <= 1) {
		return 0xFF, 0x40, 0x40
	}
	if x%16 == 0 || y%16 == 0 {
		return 0x60, 0x60, 0x80
	}
	return 0x10, 0x10, 0x20
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// statePath returns <dir>/States/<name>.ss<slot>.
func (c *patternCore) statePath(slot int) string {
	return filepath.Join(c.dir, "States", fmt.Sprintf("%s.ss%d", c.name, slot))
}

// SaveState stores the frame counter, which is all the pattern depends on.
func (c *patternCore) SaveState(slot int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return errNoROM
	}
	data := binary.LittleEndian.AppendUint64(nil, c.frame)
	if err := os.WriteFile(c.statePath(slot), data, 0644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

func (c *patternCore) RestoreState(slot int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return errNoROM
	}
	data, err := os.ReadFile(c.statePath(slot))
	if err != nil {
		return fmt.Errorf("failed to read state: %w", err)
	}
	if len(data) != 8 {
		return fmt.Errorf("state for slot %d is corrupt", slot)
	}
	c.frame = binary.LittleEndian.Uint64(data)
	return nil
}

func (c *patternCore) SlotInfo(slot int) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return time.Time{}, false
	}
	fi, err := os.Stat(c.statePath(slot))
	if err != nil {
		return time.Time{}, false
	}
	return fi.ModTime(), true
}

func (c *patternCore) Close() {
	c.CloseROM()
}
