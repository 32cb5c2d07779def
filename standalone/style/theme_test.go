//go:build !libretro

package style

import (
	"testing"
)

func TestGetThemeByName(t *testing.T) {
	for _, name := range []string{"Default", "Dark", "Light", "Retro", "High Contrast"} {
		t.Run(name, func(t *testing.T) {
			if got := GetThemeByName(name).Name; got != name {
				t.Errorf("GetThemeByName(%q).Name = %q", name, got)
			}
		})
	}

	t.Run("unknown returns Default", func(t *testing.T) {
		if got := GetThemeByName("Nonexistent").Name; got != "Default" {
			t.Errorf("GetThemeByName(\"Nonexistent\").Name = %q, want \"Default\"", got)
		}
	})

	t.Run("empty returns Default", func(t *testing.T) {
		if got := GetThemeByName("").Name; got != "Default" {
			t.Errorf("GetThemeByName(\"\").Name = %q, want \"Default\"", got)
		}
	})
}

func TestIsValidThemeName(t *testing.T) {
	for _, name := range ThemeNames() {
		if !IsValidThemeName(name) {
			t.Errorf("IsValidThemeName(%q) = false, want true", name)
		}
	}

	for _, name := range []string{"", "Nonexistent", "default", "DARK", "Pink"} {
		if IsValidThemeName(name) {
			t.Errorf("IsValidThemeName(%q) = true, want false", name)
		}
	}
}

func TestNextThemeName(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{"Default", "Dark"},
		{"Retro", "High Contrast"},
		{"High Contrast", "Default"},
		{"Unknown", "Default"},
	}
	for _, tt := range tests {
		if got := NextThemeName(tt.current); got != tt.want {
			t.Errorf("NextThemeName(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestApplyTheme(t *testing.T) {
	orig := GetThemeByName(CurrentThemeName)
	defer ApplyTheme(orig)

	ApplyTheme(ThemeDark)

	checks := []struct {
		name      string
		got, want any
	}{
		{"Background", Background, ThemeDark.Background},
		{"Surface", Surface, ThemeDark.Surface},
		{"Primary", Primary, ThemeDark.Primary},
		{"Text", Text, ThemeDark.Text},
		{"Letterbox", Letterbox, ThemeDark.Letterbox},
		{"ControlFill", ControlFill, ThemeDark.ControlFill},
		{"ControlPressed", ControlPressed, ThemeDark.ControlPressed},
		{"ControlText", ControlText, ThemeDark.ControlText},
		{"HUDText", HUDText, ThemeDark.HUDText},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s not updated after ApplyTheme", c.name)
		}
	}
	if CurrentThemeName != "Dark" {
		t.Errorf("CurrentThemeName = %q, want \"Dark\"", CurrentThemeName)
	}
}

func TestApplyThemeByName(t *testing.T) {
	origName := CurrentThemeName
	defer ApplyThemeByName(origName)

	ApplyThemeByName("Light")
	if CurrentThemeName != "Light" {
		t.Errorf("CurrentThemeName = %q, want \"Light\"", CurrentThemeName)
	}
	if Background != ThemeLight.Background {
		t.Errorf("Background not updated for Light theme")
	}

	ApplyThemeByName("DoesNotExist")
	if CurrentThemeName != "Default" {
		t.Errorf("CurrentThemeName = %q, want \"Default\" for unknown theme", CurrentThemeName)
	}
}

func TestAvailableThemesNoDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for _, theme := range AvailableThemes {
		if seen[theme.Name] {
			t.Errorf("duplicate theme name in AvailableThemes: %q", theme.Name)
		}
		seen[theme.Name] = true
	}
}

func TestThemeColorsOpaque(t *testing.T) {
	for _, theme := range AvailableThemes {
		t.Run(theme.Name, func(t *testing.T) {
			colors := map[string]uint8{
				"Background":        theme.Background.A,
				"Surface":           theme.Surface.A,
				"Primary":           theme.Primary.A,
				"PrimaryHover":      theme.PrimaryHover.A,
				"Text":              theme.Text.A,
				"TextSecondary":     theme.TextSecondary.A,
				"Accent":            theme.Accent.A,
				"Border":            theme.Border.A,
				"DimOverlay":        theme.DimOverlay.A,
				"OverlayBackground": theme.OverlayBackground.A,
				"Letterbox":         theme.Letterbox.A,
				"ControlFill":       theme.ControlFill.A,
				"ControlPressed":    theme.ControlPressed.A,
				"ControlText":       theme.ControlText.A,
				"HUDText":           theme.HUDText.A,
			}
			for name, alpha := range colors {
				if alpha != 0xff {
					t.Errorf("%s.%s alpha = 0x%02x, want 0xff", theme.Name, name, alpha)
				}
			}
		})
	}
}

// Button transparency is applied at draw time, so the pressed color must
// stay distinguishable from the idle fill.
func TestControlColorsDistinct(t *testing.T) {
	for _, theme := range AvailableThemes {
		if theme.ControlFill == theme.ControlPressed {
			t.Errorf("%s: ControlPressed equals ControlFill", theme.Name)
		}
	}
}
