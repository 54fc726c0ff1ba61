// Package cookbook implements CRUD over user-authored recipes.
package cookbook

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recipewhirl/backend/internal/domain/cookbook"
	"github.com/recipewhirl/backend/internal/ports/outbound"
	"github.com/recipewhirl/backend/pkg/errors"
)

// Service manages a user's personal cookbook
type Service struct {
	recipes outbound.CookbookRepository
	logger  *zap.Logger
}

// NewService creates a cookbook service
func NewService(recipes outbound.CookbookRepository, logger *zap.Logger) *Service {
	return &Service{recipes: recipes, logger: logger.Named("cookbook-service")}
}

// CreateInput carries the fields for a new recipe
type CreateInput struct {
	Title        string
	Description  string
	Ingredients  []string
	Instructions []string
	DietaryTags  []string
	CuisineType  string
	Difficulty   string
	PrepTime     int
	CookTime     int
	Servings     int
	ImageURL     string
}

// Create validates and stores a new user recipe
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*cookbook.Recipe, error) {
	recipe, err := cookbook.NewRecipe(userID, in.Title, in.Ingredients, in.Instructions)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	recipe.Description = in.Description
	recipe.DietaryTags = in.DietaryTags
	recipe.CuisineType = in.CuisineType
	recipe.Difficulty = in.Difficulty
	recipe.PrepTime = in.PrepTime
	recipe.CookTime = in.CookTime
	recipe.Servings = in.Servings
	recipe.ImageURL = in.ImageURL

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	s.logger.Info("Cookbook recipe created",
		zap.String("recipe_id", recipe.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return recipe, nil
}

// Get returns one recipe. Any signed-in user can read any cookbook recipe;
// only the author can delete it.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*cookbook.Recipe, error) {
	recipe, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if recipe == nil {
		return nil, errors.NewNotFoundError("recipe", id.String())
	}
	return recipe, nil
}

// List returns the user's recipes
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*cookbook.Recipe, error) {
	recipes, err := s.recipes.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}
	return recipes, nil
}

// Delete removes a recipe owned by the caller
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	recipe, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return errors.NewDatabaseError("find recipe", err)
	}
	if recipe == nil {
		return errors.NewNotFoundError("recipe", id.String())
	}
	if recipe.UserID != userID {
		// Hide the existence of other users' recipes from the delete path.
		return errors.NewNotFoundError("recipe", id.String())
	}

	if err := s.recipes.Delete(ctx, id); err != nil {
		return errors.NewDatabaseError("delete recipe", err)
	}
	return nil
}
