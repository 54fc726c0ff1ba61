package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/recipewhirl/backend/internal/domain/relation"
	"github.com/recipewhirl/backend/internal/ports/outbound"
)

// RatingRepository implements outbound.RatingRepository on GORM
type RatingRepository struct {
	db *gorm.DB
}

var _ outbound.RatingRepository = (*RatingRepository)(nil)

// NewRatingRepository creates a rating repository
func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert writes the rating, replacing any existing row for the same
// (user, recipe). This is what makes like and dislike mutually exclusive.
func (r *RatingRepository) Upsert(ctx context.Context, rating relation.Rating) error {
	model := RatingModel{
		ID:        uuid.New(),
		UserID:    rating.UserID,
		RecipeID:  rating.RecipeID,
		Rating:    rating.Value,
		UpdatedAt: rating.UpdatedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).
		Create(&model).Error
}

// Delete removes the rating row; removing an absent row is a no-op
func (r *RatingRepository) Delete(ctx context.Context, userID uuid.UUID, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&RatingModel{}).Error
}

// Find returns the user's rating for a recipe, or nil
func (r *RatingRepository) Find(ctx context.Context, userID uuid.UUID, recipeID string) (*relation.Rating, error) {
	var model RatingModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &relation.Rating{
		UserID:    model.UserID,
		RecipeID:  model.RecipeID,
		Value:     model.Rating,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

// ListLikedIDs returns the recipe IDs the user rated positively
func (r *RatingRepository) ListLikedIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&RatingModel{}).
		Where("user_id = ? AND rating > 0", userID).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
