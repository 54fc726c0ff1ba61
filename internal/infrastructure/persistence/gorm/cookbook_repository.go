package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipewhirl/backend/internal/domain/cookbook"
	"github.com/recipewhirl/backend/internal/ports/outbound"
)

// CookbookRepository implements outbound.CookbookRepository on GORM
type CookbookRepository struct {
	db *gorm.DB
}

var _ outbound.CookbookRepository = (*CookbookRepository)(nil)

// NewCookbookRepository creates a cookbook repository
func NewCookbookRepository(db *gorm.DB) *CookbookRepository {
	return &CookbookRepository{db: db}
}

// Create persists a new user recipe
func (r *CookbookRepository) Create(ctx context.Context, recipe *cookbook.Recipe) error {
	model := recipeToModel(recipe)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID returns a recipe by ID, or nil
func (r *CookbookRepository) FindByID(ctx context.Context, id uuid.UUID) (*cookbook.Recipe, error) {
	var model UserRecipeModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return modelToRecipe(&model), nil
}

// ListByUser returns the user's recipes, newest first
func (r *CookbookRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*cookbook.Recipe, error) {
	var models []UserRecipeModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]*cookbook.Recipe, len(models))
	for i := range models {
		out[i] = modelToRecipe(&models[i])
	}
	return out, nil
}

// Delete removes a recipe
func (r *CookbookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserRecipeModel{}).Error
}

func recipeToModel(r *cookbook.Recipe) UserRecipeModel {
	return UserRecipeModel{
		ID:           r.ID,
		UserID:       r.UserID,
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		DietaryTags:  r.DietaryTags,
		CuisineType:  r.CuisineType,
		Difficulty:   r.Difficulty,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		ImageURL:     r.ImageURL,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func modelToRecipe(m *UserRecipeModel) *cookbook.Recipe {
	return &cookbook.Recipe{
		ID:           m.ID,
		UserID:       m.UserID,
		Title:        m.Title,
		Description:  m.Description,
		Ingredients:  m.Ingredients,
		Instructions: m.Instructions,
		DietaryTags:  m.DietaryTags,
		CuisineType:  m.CuisineType,
		Difficulty:   m.Difficulty,
		PrepTime:     m.PrepTime,
		CookTime:     m.CookTime,
		Servings:     m.Servings,
		ImageURL:     m.ImageURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
