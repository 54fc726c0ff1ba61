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

// FavoriteRepository implements outbound.FavoriteRepository on GORM
type FavoriteRepository struct {
	db *gorm.DB
}

var _ outbound.FavoriteRepository = (*FavoriteRepository)(nil)

// NewFavoriteRepository creates a favorite repository
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Insert adds a favorite edge. Inserting an existing edge is a no-op so a
// retried toggle cannot fail on the uniqueness constraint.
func (r *FavoriteRepository) Insert(ctx context.Context, fav relation.Favorite) error {
	model := FavoriteModel{
		ID:        uuid.New(),
		UserID:    fav.UserID,
		RecipeID:  fav.RecipeID,
		Title:     fav.Title,
		Thumbnail: fav.Thumbnail,
		CreatedAt: fav.CreatedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoNothing: true,
		}).
		Create(&model).Error
}

// Delete removes a favorite edge; removing an absent edge is a no-op
func (r *FavoriteRepository) Delete(ctx context.Context, userID uuid.UUID, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&FavoriteModel{}).Error
}

// ListByUser returns the user's favorites, newest first
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]relation.Favorite, error) {
	var models []FavoriteModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]relation.Favorite, len(models))
	for i, m := range models {
		out[i] = relation.Favorite{
			UserID:    m.UserID,
			RecipeID:  m.RecipeID,
			Title:     m.Title,
			Thumbnail: m.Thumbnail,
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}

// Exists reports whether the favorite edge is present
func (r *FavoriteRepository) Exists(ctx context.Context, userID uuid.UUID, recipeID string) (bool, error) {
	var model FavoriteModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
