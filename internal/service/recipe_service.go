package service

import (
	"context"
	"strings"
	"time"

	"tastebook/internal/models"

	"github.com/google/uuid"
)

// RecipeService handles posting, deleting, liking, and commenting on recipes.
type RecipeService struct {
	store Store
}

// NewRecipeService creates a RecipeService over the given store.
func NewRecipeService(store Store) *RecipeService {
	return &RecipeService{store: store}
}

// CreateRecipeInput is the payload for posting a recipe. Image, when present,
// is an already-processed data URL.
type CreateRecipeInput struct {
	AuthorID    string
	Title       string
	Description string
	Ingredients string
	Steps       string
	Image       string
}

// DeleteRecipeInput identifies a recipe deletion request.
type DeleteRecipeInput struct {
	UserID   string
	RecipeID string
}

// AddCommentInput is the payload for commenting on a recipe.
type AddCommentInput struct {
	RecipeID string
	AuthorID string
	Text     string
}

const (
	maxTitleLen       = 120
	maxDescriptionLen = 2000
	maxCommentLen     = 500
)

// CreateRecipe posts a new recipe authored by the given user.
func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 120 characters)")
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 2000 characters)")
	}
	if strings.TrimSpace(in.Ingredients) == "" {
		return nil, models.NewValidationError("Ingredients are required")
	}
	if strings.TrimSpace(in.Steps) == "" {
		return nil, models.NewValidationError("Steps are required")
	}

	author := models.UserByID(s.store.Snapshot(), in.AuthorID)
	if author == nil {
		return nil, models.NewNotFoundError("user", in.AuthorID)
	}

	recipe := &models.Recipe{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Ingredients: strings.TrimSpace(in.Ingredients),
		Steps:       strings.TrimSpace(in.Steps),
		Image:       in.Image,
		AuthorID:    author.ID,
		AuthorName:  author.DisplayName(),
		LikedBy:     models.NewIDSet(),
		CreatedAt:   time.Now(),
	}
	if _, err := s.store.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// DeleteRecipe removes a recipe. Only the author may delete it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, in DeleteRecipeInput) error {
	recipe := models.RecipeByID(s.store.Snapshot(), in.RecipeID)
	if recipe == nil {
		return models.NewNotFoundError("recipe", in.RecipeID)
	}
	if recipe.AuthorID != in.UserID {
		return models.NewForbiddenError("Only the author can delete a recipe")
	}
	_, err := s.store.Delete(ctx, in.RecipeID)
	return err
}

// ToggleLike adds or removes the user from the recipe's liker set. Toggling
// twice restores the original state.
func (s *RecipeService) ToggleLike(ctx context.Context, recipeID, userID string) (*models.Recipe, error) {
	recipe := models.RecipeByID(s.store.Snapshot(), recipeID)
	if recipe == nil {
		return nil, models.NewNotFoundError("recipe", recipeID)
	}

	updated := recipe.Clone().(*models.Recipe)
	updated.ToggleLike(userID)

	if err := s.store.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// AddComment appends a comment to the recipe. Comments are never edited or
// removed afterwards.
func (s *RecipeService) AddComment(ctx context.Context, in AddCommentInput) (*models.Recipe, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 500 characters)")
	}

	snapshot := s.store.Snapshot()
	recipe := models.RecipeByID(snapshot, in.RecipeID)
	if recipe == nil {
		return nil, models.NewNotFoundError("recipe", in.RecipeID)
	}
	author := models.UserByID(snapshot, in.AuthorID)
	if author == nil {
		return nil, models.NewNotFoundError("user", in.AuthorID)
	}

	updated := recipe.Clone().(*models.Recipe)
	updated.Comments = append(updated.Comments, models.Comment{
		AuthorID:   author.ID,
		AuthorName: author.DisplayName(),
		Text:       text,
		CreatedAt:  time.Now(),
	})

	if err := s.store.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
