//go:build !libretro

package standalone

import (
	"image"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/user-none/ndsui/standalone/style"
)

// NotificationType determines the visual style of the notification
type NotificationType int

const (
	NotificationTypeDefault NotificationType = iota // Small, bottom-right
	NotificationTypeError                           // Top-center with an accent border
)

const errorNotifyBorder = 2

// Notification displays temporary messages on screen
type Notification struct {
	mu         sync.Mutex
	message    string
	startTime  time.Time
	duration   time.Duration
	notifyType NotificationType

	// Reused between frames
	defaultBg *ebiten.Image
}

// NewNotification creates a new notification system
func NewNotification() *Notification {
	return &Notification{}
}

// Show displays a notification message
func (n *Notification) Show(message string, duration time.Duration) {
	n.show(message, duration, NotificationTypeDefault)
}

// ShowDefault displays a notification with default 3 second duration
func (n *Notification) ShowDefault(message string) {
	n.Show(message, 3*time.Second)
}

// ShowShort displays a notification with 1 second duration (for gameplay)
func (n *Notification) ShowShort(message string) {
	n.Show(message, 1*time.Second)
}

// ShowError displays a failure prominently for 5 seconds.
func (n *Notification) ShowError(message string) {
	n.show(message, 5*time.Second, NotificationTypeError)
}

func (n *Notification) show(message string, duration time.Duration, t NotificationType) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = message
	n.startTime = time.Now()
	n.duration = duration
	n.notifyType = t
}

// Message returns the current message, or "" once it has expired.
func (n *Notification) Message() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.message == "" || time.Since(n.startTime) >= n.duration {
		return ""
	}
	return n.message
}

// IsVisible returns whether the notification is currently visible
func (n *Notification) IsVisible() bool {
	return n.Message() != ""
}

// Clear removes the current notification
func (n *Notification) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = ""
}

// Draw renders the notification
func (n *Notification) Draw(screen *ebiten.Image) {
	n.mu.Lock()
	if n.message == "" || time.Since(n.startTime) >= n.duration {
		n.mu.Unlock()
		return
	}
	message := n.message
	notifyType := n.notifyType
	n.mu.Unlock()

	if notifyType == NotificationTypeError {
		n.drawError(screen, message)
	} else {
		n.drawDefault(screen, message)
	}
}

// drawDefault renders a small notification in the bottom-right corner
func (n *Notification) drawDefault(screen *ebiten.Image, message string) {
	bounds := screen.Bounds()
	face := *style.FontFace()

	textWidth, textHeight := text.Measure(message, face, 0)

	padding := style.OverlayPadding
	bgWidth := int(textWidth) + padding*2
	bgHeight := int(textHeight) + padding*2

	margin := style.OverlayMargin
	bgX := bounds.Dx() - bgWidth - margin
	bgY := bounds.Dy() - bgHeight - margin

	if n.defaultBg == nil || n.defaultBg.Bounds().Dx() < bgWidth || n.defaultBg.Bounds().Dy() < bgHeight {
		n.defaultBg = ebiten.NewImage(bgWidth, bgHeight)
	}
	n.defaultBg.Clear()
	overlayBg := style.OverlayBackground
	overlayBg.A = 153 // 60% opacity
	n.defaultBg.Fill(overlayBg)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(bgX), float64(bgY))
	screen.DrawImage(n.defaultBg.SubImage(image.Rect(0, 0, bgWidth, bgHeight)).(*ebiten.Image), opts)

	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(float64(bgX+padding), float64(bgY+padding))
	textOpts.ColorScale.ScaleWithColor(style.Text)
	text.Draw(screen, message, face, textOpts)
}

// drawError renders a wider top-center box that stays readable over the
// game image.
func (n *Notification) drawError(screen *ebiten.Image, message string) {
	bounds := screen.Bounds()
	face := *style.FontFace()

	padding := style.OverlayPadding * 2
	margin := style.OverlayMargin
	maxTextWidth := float64(bounds.Dx() - margin*2 - padding*2)
	if maxTextWidth <= 0 {
		return
	}

	textWidth, textHeight := text.Measure(message, face, 0)
	if textWidth > maxTextWidth {
		message, _ = style.TruncateToWidth(message, face, maxTextWidth)
		textWidth, textHeight = text.Measure(message, face, 0)
	}

	bgWidth := float32(textWidth) + float32(padding*2)
	bgHeight := float32(textHeight) + float32(padding*2)
	bgX := (float32(bounds.Dx()) - bgWidth) / 2
	bgY := float32(margin)

	bg := style.OverlayBackground
	bg.A = 240
	vector.DrawFilledRect(screen, bgX, bgY, bgWidth, bgHeight, bg, false)
	vector.StrokeRect(screen, bgX, bgY, bgWidth, bgHeight, errorNotifyBorder, style.Accent, false)

	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(float64(bgX)+float64(padding), float64(bgY)+float64(padding))
	textOpts.ColorScale.ScaleWithColor(style.Text)
	text.Draw(screen, message, face, textOpts)
}
