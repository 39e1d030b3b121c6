package server

import (
	"tastebook/internal/models"
	"tastebook/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateRecipe handles POST /api/recipes/. The form may carry an image,
// which is resized and embedded before the record is created; a processing
// failure aborts the whole submission.
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	image, err := s.processUpload(c, "image")
	if err != nil {
		return respondError(c, err)
	}

	recipe, err := s.recipeService.CreateRecipe(c.Context(), service.CreateRecipeInput{
		AuthorID:    currentUserID(c),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Ingredients: c.FormValue("ingredients"),
		Steps:       c.FormValue("steps"),
		Image:       image,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// DeleteRecipe handles DELETE /api/recipes/:id. Author-only.
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	err := s.recipeService.DeleteRecipe(c.Context(), service.DeleteRecipeInput{
		UserID:   currentUserID(c),
		RecipeID: c.Params("id"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// ToggleLike handles POST /api/recipes/:id/like.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	recipe, err := s.recipeService.ToggleLike(c.Context(), c.Params("id"), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"likes": recipe.Likes(),
		"liked": recipe.LikedByUser(currentUserID(c)),
	})
}

// AddComment handles POST /api/recipes/:id/comments.
func (s *Server) AddComment(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.AddComment(c.Context(), service.AddCommentInput{
		RecipeID: c.Params("id"),
		AuthorID: currentUserID(c),
		Text:     req.Text,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"comments": len(recipe.Comments),
	})
}
