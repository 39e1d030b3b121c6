package prefs

import (
	"context"

	"tastebook/internal/storage"
)

// Theme flag values held in the independent theme slot.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// LoadTheme reads the theme flag, read once at startup. Missing or unknown
// values fall back to light.
func LoadTheme(ctx context.Context, slots *storage.Slots) string {
	data, ok, err := slots.Read(ctx, storage.SlotTheme)
	if err != nil || !ok {
		return ThemeLight
	}
	if string(data) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// SaveTheme writes the theme flag on toggle.
func SaveTheme(ctx context.Context, slots *storage.Slots, theme string) error {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	return slots.Write(ctx, storage.SlotTheme, []byte(theme))
}
