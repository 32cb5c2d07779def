//go:build !libretro

package style

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func TestTruncateStart(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		maxLen      int
		expected    string
		shouldTrunc bool
	}{
		{"shorter than max", "hello", 10, "hello", false},
		{"exact length", "hello", 5, "hello", false},
		{"truncated with ellipsis", "/home/user/roms/very/long/path/game.nds", 20, "...ong/path/game.nds", true},
		{"maxLen 3", "abcdef", 3, "def", true},
		{"maxLen 1", "abcdef", 1, "f", true},
		{"empty string", "", 5, "", false},
		{"truncate to 4", "abcdef", 4, "...f", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, truncated := TruncateStart(tc.input, tc.maxLen)
			if got != tc.expected {
				t.Errorf("TruncateStart(%q, %d) = %q, want %q", tc.input, tc.maxLen, got, tc.expected)
			}
			if truncated != tc.shouldTrunc {
				t.Errorf("TruncateStart(%q, %d) truncated = %v, want %v", tc.input, tc.maxLen, truncated, tc.shouldTrunc)
			}
		})
	}
}

func TestFormatSlotTime(t *testing.T) {
	now := time.Date(2026, 6, 15, 18, 30, 0, 0, time.UTC)
	at := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name string
		in   *time.Time
		want string
	}{
		{"empty slot", nil, "Empty"},
		{"today", at(time.Date(2026, 6, 15, 9, 5, 0, 0, time.UTC)), "Today 09:05"},
		{"yesterday", at(time.Date(2026, 6, 14, 23, 59, 0, 0, time.UTC)), "Yesterday 23:59"},
		{"this year", at(time.Date(2026, 1, 2, 7, 0, 0, 0, time.UTC)), "Jan 2 07:00"},
		{"earlier year", at(time.Date(2024, 3, 9, 7, 0, 0, 0, time.UTC)), "Mar 9, 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSlotTime(tt.in, now); got != tt.want {
				t.Errorf("FormatSlotTime = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0%"},
		{1.0, "100%"},
		{0.7, "70%"},
		{2.0, "200%"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.in); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyFontSize(t *testing.T) {
	origDPI := dpiScale
	dpiScale = 1.0
	defer func() {
		dpiScale = origDPI
		ApplyFontSize(14)
	}()

	ApplyFontSize(14)
	if SettingsRowHeight != 38 {
		t.Errorf("at 14pt, SettingsRowHeight = %d, want 38", SettingsRowHeight)
	}
	if SlotRowHeight != 44 {
		t.Errorf("at 14pt, SlotRowHeight = %d, want 44", SlotRowHeight)
	}

	ApplyFontSize(28)
	if SettingsRowHeight != 76 {
		t.Errorf("at 28pt, SettingsRowHeight = %d, want 76", SettingsRowHeight)
	}
	if SlotRowHeight != 88 {
		t.Errorf("at 28pt, SlotRowHeight = %d, want 88", SlotRowHeight)
	}

	// 38 * 10 / 14 = 27.14 truncates to 27
	ApplyFontSize(10)
	if SettingsRowHeight != 27 {
		t.Errorf("at 10pt, SettingsRowHeight = %d, want 27", SettingsRowHeight)
	}
}

func TestLargeFontFaceCapped(t *testing.T) {
	origDPI := dpiScale
	dpiScale = 1.0
	defer func() {
		dpiScale = origDPI
		ApplyFontSize(14)
	}()

	ApplyFontSize(32)
	face := LargeFontFace()
	if face == nil {
		t.Fatal("LargeFontFace() returned nil")
	}
	if face.Size != 48 {
		t.Errorf("large face size at 32pt = %f, want 48", face.Size)
	}
}

func TestFontScale(t *testing.T) {
	defer ApplyFontSize(14)

	ApplyFontSize(14)
	if FontScale() != 1.0 {
		t.Errorf("at 14pt, FontScale() = %f, want 1.0", FontScale())
	}

	ApplyFontSize(28)
	if FontScale() != 2.0 {
		t.Errorf("at 28pt, FontScale() = %f, want 2.0", FontScale())
	}
}

func TestSizedFontFace(t *testing.T) {
	face := SizedFontFace(15)
	if face == nil {
		t.Fatal("SizedFontFace returned nil")
	}
	if face.Size != 15 {
		t.Errorf("Size = %f, want 15", face.Size)
	}
}

func TestTruncateToWidth(t *testing.T) {
	face := FontFace()
	if face == nil || *face == nil {
		t.Fatal("FontFace() returned nil")
	}

	t.Run("string that fits returns unchanged", func(t *testing.T) {
		got, truncated := TruncateToWidth("Hi", *face, 500)
		if truncated || got != "Hi" {
			t.Errorf("got %q truncated=%v", got, truncated)
		}
	})

	t.Run("long string is truncated with ellipsis", func(t *testing.T) {
		long := "A Very Long Dual Screen Game Title (USA, Europe) (En,Fr,De,Es,It)"
		got, truncated := TruncateToWidth(long, *face, 200)
		if !truncated {
			t.Error("expected truncation for long string")
		}
		if len(got) < 4 || got[len(got)-3:] != "..." {
			t.Errorf("expected ellipsis suffix, got %q", got)
		}
		w, _ := text.Measure(got, *face, 0)
		if w > 200 {
			t.Errorf("truncated string width %.1f exceeds max 200", w)
		}
	})

	t.Run("empty string returns empty", func(t *testing.T) {
		got, truncated := TruncateToWidth("", *face, 100)
		if truncated || got != "" {
			t.Errorf("got %q truncated=%v", got, truncated)
		}
	})

	t.Run("very narrow width returns ellipsis", func(t *testing.T) {
		got, truncated := TruncateToWidth("Hello World", *face, 5)
		if !truncated || got != "..." {
			t.Errorf("got %q truncated=%v", got, truncated)
		}
	})
}

func TestPx(t *testing.T) {
	origDPI := dpiScale
	defer func() { dpiScale = origDPI }()

	tests := []struct {
		scale float64
		want  int
	}{
		{1.0, 10},
		{2.0, 20},
		{1.5, 15},
	}
	for _, tt := range tests {
		dpiScale = tt.scale
		if got := Px(10); got != tt.want {
			t.Errorf("Px(10) at scale %.1f = %d, want %d", tt.scale, got, tt.want)
		}
	}
}

func TestSetDPIScale(t *testing.T) {
	origDPI := dpiScale
	defer func() {
		dpiScale = origDPI
		SetDPIScale(1.0)
	}()

	SetDPIScale(2.0)

	if DPIScale() != 2.0 {
		t.Errorf("DPIScale() = %f, want 2.0", DPIScale())
	}
	checks := []struct {
		name      string
		got, want int
	}{
		{"DefaultPadding", DefaultPadding, 32},
		{"SmallSpacing", SmallSpacing, 16},
		{"ScrollbarWidth", ScrollbarWidth, 40},
		{"OverlayPadding", OverlayPadding, 24},
		{"OverlayMargin", OverlayMargin, 16},
		{"MenuMinWidth", MenuMinWidth, 300},
		{"MenuMaxWidth", MenuMaxWidth, 700},
		{"MenuMinBtnHeight", MenuMinBtnHeight, 80},
		{"MenuMaxBtnHeight", MenuMaxBtnHeight, 120},
		{"ValueMinWidth", ValueMinWidth, 100},
		{"SettingsRowHeight", SettingsRowHeight, 76},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s at 2x = %d, want %d", c.name, c.got, c.want)
		}
	}

	face := FontFace()
	if face != nil && *face != nil {
		if goFace, ok := (*face).(*text.GoTextFace); ok && goFace.Size != 28.0 {
			t.Errorf("FontFace size at 14pt/2x = %f, want 28.0", goFace.Size)
		}
	}

	SetDPIScale(1.0)
	if DefaultPadding != 16 || SettingsRowHeight != 38 {
		t.Errorf("after restore DefaultPadding = %d, SettingsRowHeight = %d", DefaultPadding, SettingsRowHeight)
	}
}

func TestPxFont(t *testing.T) {
	origDPI := dpiScale
	defer func() {
		dpiScale = origDPI
		ApplyFontSize(14)
	}()

	tests := []struct {
		dpi  float64
		size int
		want int
	}{
		{1.0, 14, 80},
		{1.0, 28, 160},
		{2.0, 14, 160},
		{2.0, 28, 320},
	}
	for _, tt := range tests {
		dpiScale = tt.dpi
		ApplyFontSize(tt.size)
		if got := PxFont(80); got != tt.want {
			t.Errorf("PxFont(80) at %dpt/%.0fx = %d, want %d", tt.size, tt.dpi, got, tt.want)
		}
	}
}

func TestSetDPIScaleClampsBelowOne(t *testing.T) {
	origDPI := dpiScale
	defer func() {
		dpiScale = origDPI
		ApplyFontSize(14)
	}()

	SetDPIScale(0.5)
	if DPIScale() != 1.0 {
		t.Errorf("DPIScale() after setting 0.5 = %f, want 1.0", DPIScale())
	}
}
