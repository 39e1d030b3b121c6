package server

import (
	"tastebook/internal/models"
	"tastebook/internal/prefs"

	"github.com/gofiber/fiber/v2"
)

// UpdatePreferences handles PUT /api/preferences. The body is a partial
// mapping; keys it omits keep their current values.
func (s *Server) UpdatePreferences(c *fiber.Ctx) error {
	var partial map[string]any
	if err := c.BodyParser(&partial); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if len(partial) == 0 {
		return respondError(c, models.NewValidationError("No preferences given"))
	}

	if err := s.prefs.SetPartial(c.Context(), partial); err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	return c.JSON(s.prefs.Values())
}

// ToggleTheme handles POST /api/theme/toggle: flips the theme flag, persists
// it, and repaints.
func (s *Server) ToggleTheme(c *fiber.Ctx) error {
	theme := prefs.ThemeLight
	if s.screen.Theme() == prefs.ThemeLight {
		theme = prefs.ThemeDark
	}

	if err := prefs.SaveTheme(c.Context(), s.slots, theme); err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	s.screen.SetTheme(theme)
	return c.JSON(fiber.Map{"theme": theme})
}

// ResetStore handles POST /api/reset: empties the record collection. The
// current session survives, so the page repaints over an empty collection.
func (s *Server) ResetStore(c *fiber.Ctx) error {
	if err := s.records.ResetAll(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"records": 0})
}
