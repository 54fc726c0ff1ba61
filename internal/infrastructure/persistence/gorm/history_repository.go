package gorm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipewhirl/backend/internal/domain/relation"
	"github.com/recipewhirl/backend/internal/ports/outbound"
)

// SearchHistoryRepository implements outbound.SearchHistoryRepository on GORM
type SearchHistoryRepository struct {
	db *gorm.DB
}

var _ outbound.SearchHistoryRepository = (*SearchHistoryRepository)(nil)

// NewSearchHistoryRepository creates a search history repository
func NewSearchHistoryRepository(db *gorm.DB) *SearchHistoryRepository {
	return &SearchHistoryRepository{db: db}
}

// Append records one submitted query
func (r *SearchHistoryRepository) Append(ctx context.Context, userID uuid.UUID, term string) error {
	model := SearchHistoryModel{
		ID:        uuid.New(),
		UserID:    userID,
		Term:      term,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// ListByUser returns the user's most recent queries, newest first
func (r *SearchHistoryRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]relation.SearchEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	var models []SearchHistoryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]relation.SearchEntry, len(models))
	for i, m := range models {
		out[i] = relation.SearchEntry{
			UserID:    m.UserID,
			Term:      m.Term,
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}
