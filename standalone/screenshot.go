//go:build !libretro

package standalone

import (
	"bytes"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/user-none/ndsui/display"
	"github.com/user-none/ndsui/standalone/style"
	"golang.design/x/clipboard"
)

// ScreenshotManager saves the composed output as a PNG and copies it to
// the system clipboard.
type ScreenshotManager struct {
	dir string
	now func() time.Time

	copyToClipboard bool
	clipboardOnce   sync.Once
	clipboardOK     bool
}

// NewScreenshotManager creates a screenshot manager writing into dir.
func NewScreenshotManager(dir string) *ScreenshotManager {
	return &ScreenshotManager{
		dir:             dir,
		now:             time.Now,
		copyToClipboard: true,
	}
}

// SetDir changes the directory new screenshots are written to.
func (m *ScreenshotManager) SetDir(dir string) {
	m.dir = dir
}

// TakeScreenshot renders fb through l exactly as it is drawn on screen and
// writes it to <dir>/<title>-<unix time>.png. It returns the file path.
func (m *ScreenshotManager) TakeScreenshot(fb display.Framebuffer, l *display.Layout, title string) (string, error) {
	img, err := display.Render(fb, l, true, style.Letterbox)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode screenshot: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	path := filepath.Join(m.dir, screenshotName(title, m.now()))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}

	m.copy(buf.Bytes())
	return path, nil
}

// copy places the PNG on the clipboard. Failure is logged only; the file
// has already been written.
func (m *ScreenshotManager) copy(pngData []byte) {
	if !m.copyToClipboard {
		return
	}
	m.clipboardOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			log.Printf("Clipboard unavailable: %v", err)
			return
		}
		m.clipboardOK = true
	})
	if m.clipboardOK {
		clipboard.Write(clipboard.FmtImage, pngData)
	}
}

// screenshotName builds a file name safe on every platform.
func screenshotName(title string, t time.Time) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, strings.TrimSpace(title))
	if clean == "" {
		clean = "screenshot"
	}
	return fmt.Sprintf("%s-%d.png", clean, t.Unix())
}
