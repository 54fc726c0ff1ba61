// Package cookbook contains the domain model for user-authored recipes.
// These live in the relational store and are separate from the external
// catalog: the search pipeline never mixes the two sources.
package cookbook

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired  = errors.New("title is required")
	ErrNoIngredients  = errors.New("at least one ingredient is required")
	ErrNoInstructions = errors.New("at least one instruction is required")
)

// Recipe is a recipe written by a user
type Recipe struct {
	ID           uuid.UUID
	UserID       uuid.UUID
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
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewRecipe creates a user recipe after validating the required fields
func NewRecipe(userID uuid.UUID, title string, ingredients, instructions []string) (*Recipe, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(compact(ingredients)) == 0 {
		return nil, ErrNoIngredients
	}
	if len(compact(instructions)) == 0 {
		return nil, ErrNoInstructions
	}

	now := time.Now()
	return &Recipe{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        title,
		Ingredients:  compact(ingredients),
		Instructions: compact(instructions),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// compact drops empty entries, preserving order
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
