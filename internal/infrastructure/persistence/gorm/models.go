// Package gorm contains the relational persistence models and repositories.
package gorm

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteModel is the favorites table: presence-only edges with display
// fields denormalized so the favorites page renders without catalog calls.
type FavoriteModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_recipe"`
	RecipeID  string    `gorm:"size:64;not null;uniqueIndex:idx_favorites_user_recipe"`
	Title     string    `gorm:"size:255;not null"`
	Thumbnail string    `gorm:"size:512"`
	CreatedAt time.Time
}

// TableName returns the table name for FavoriteModel
func (FavoriteModel) TableName() string {
	return "favorites"
}

// RatingModel is the recipe_ratings table. The unique index carries the
// upsert semantics: at most one rating per (user, recipe), values +1 or -1.
type RatingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_recipe"`
	RecipeID  string    `gorm:"size:64;not null;uniqueIndex:idx_ratings_user_recipe"`
	Rating    int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for RatingModel
func (RatingModel) TableName() string {
	return "recipe_ratings"
}

// SearchHistoryModel is the search_history table, append-only
type SearchHistoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Term      string    `gorm:"size:255;not null"`
	CreatedAt time.Time
}

// TableName returns the table name for SearchHistoryModel
func (SearchHistoryModel) TableName() string {
	return "search_history"
}

// UserModel is the users table plus the profile fields
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	Name         string    `gorm:"size:255;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Bio          string    `gorm:"type:text"`
	AvatarURL    string    `gorm:"size:512"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// UserRecipeModel is the recipes table for user-authored cookbook entries
type UserRecipeModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Title        string    `gorm:"size:255;not null"`
	Description  string    `gorm:"type:text"`
	Ingredients  []string  `gorm:"serializer:json;type:text"`
	Instructions []string  `gorm:"serializer:json;type:text"`
	DietaryTags  []string  `gorm:"serializer:json;type:text"`
	CuisineType  string    `gorm:"size:100"`
	Difficulty   string    `gorm:"size:50"`
	PrepTime     int
	CookTime     int
	Servings     int
	ImageURL     string `gorm:"size:512"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for UserRecipeModel
func (UserRecipeModel) TableName() string {
	return "recipes"
}
