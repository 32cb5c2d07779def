//go:build !libretro

package style

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TruncateStart truncates a string from the start, keeping the end portion.
// Returns the truncated string and whether truncation occurred.
// Useful for file paths where the end (filename) is most relevant.
func TruncateStart(s string, maxLen int) (string, bool) {
	if len(s) <= maxLen {
		return s, false
	}
	if maxLen <= 3 {
		return s[len(s)-maxLen:], true
	}
	return "..." + s[len(s)-maxLen+3:], true
}

// TruncateToWidth truncates a string to fit within a given pixel width using actual font measurement.
// Returns the truncated string (with "..." suffix if truncated) and whether truncation occurred.
// Binary searches rune boundaries since the font is proportional.
func TruncateToWidth(s string, face text.Face, maxWidth float64) (string, bool) {
	if s == "" {
		return s, false
	}
	w, _ := text.Measure(s, face, 0)
	if w <= maxWidth {
		return s, false
	}

	ellipsis := "..."
	ellipsisW, _ := text.Measure(ellipsis, face, 0)
	if ellipsisW > maxWidth {
		return ellipsis, true
	}

	lo, hi := 0, utf8.RuneCountInString(s)
	best := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		cw, _ := text.Measure(truncateRunes(s, mid)+ellipsis, face, 0)
		if cw <= maxWidth {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	if best == 0 {
		return ellipsis, true
	}
	return truncateRunes(s, best) + ellipsis, true
}

// truncateRunes returns the first n runes of s as a string.
func truncateRunes(s string, n int) string {
	i := 0
	for j := 0; j < n; j++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 {
			break
		}
		i += size
	}
	return s[:i]
}

// FormatSlotTime formats a save slot's modification time relative to now.
// Returns "Empty" for nil, "Today 15:04" / "Yesterday 15:04" for recent
// saves, "Jan 2 15:04" for this year, or "Jan 2, 2006" for earlier years.
func FormatSlotTime(t *time.Time, now time.Time) string {
	if t == nil {
		return "Empty"
	}
	local := t.In(now.Location())

	if local.Year() == now.Year() && local.YearDay() == now.YearDay() {
		return "Today " + local.Format("15:04")
	}

	yesterday := now.AddDate(0, 0, -1)
	if local.Year() == yesterday.Year() && local.YearDay() == yesterday.YearDay() {
		return "Yesterday " + local.Format("15:04")
	}

	if local.Year() == now.Year() {
		return local.Format("Jan 2 15:04")
	}
	return local.Format("Jan 2, 2006")
}

// FormatPercent formats a 0.0-2.0 gain as a whole percentage.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(v*100)))
}
