package server

import (
	"tastebook/internal/models"
	"tastebook/internal/session"

	"github.com/gofiber/fiber/v2"
)

// Navigate handles POST /api/nav/:page: moves the session to the named page
// and repaints.
func (s *Server) Navigate(c *fiber.Ctx) error {
	page := session.Page(c.Params("page"))
	if !page.Valid() {
		return respondError(c, models.NewValidationError("Unknown page"))
	}
	if err := s.session.Navigate(page); err != nil {
		return respondError(c, models.NewValidationError(err.Error()))
	}
	s.screen.Refresh()
	return c.JSON(fiber.Map{"page": string(page)})
}

// Search handles GET /api/search?q=. The query is screen state, not store
// state, so the repaint is driven from here.
func (s *Server) Search(c *fiber.Ctx) error {
	query := c.Query("q")

	if s.session.Snapshot().Page != session.PageSearch {
		if err := s.session.Navigate(session.PageSearch); err != nil {
			return respondError(c, models.NewValidationError(err.Error()))
		}
	}
	s.screen.SetQuery(query)

	snapshot := s.records.Snapshot()
	return c.JSON(fiber.Map{
		"users":   len(models.SearchUsers(snapshot, query)),
		"recipes": len(models.SearchRecipes(snapshot, query)),
	})
}
