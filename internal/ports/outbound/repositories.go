// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/recipewhirl/backend/internal/domain/account"
	"github.com/recipewhirl/backend/internal/domain/catalog"
	"github.com/recipewhirl/backend/internal/domain/cookbook"
	"github.com/recipewhirl/backend/internal/domain/relation"
)

// RecipeSource reads from the external recipe catalog. Every operation fails
// closed: transport and parse errors are logged by the implementation and
// folded into empty results, so callers cannot distinguish "no results" from
// "catalog down". That asymmetry with the write-side repositories below is
// deliberate and encoded in the signatures.
type RecipeSource interface {
	// SearchByIngredient returns recipes whose ingredients match the term
	SearchByIngredient(ctx context.Context, term string) []catalog.Recipe

	// SearchByName returns recipes whose name matches the term
	SearchByName(ctx context.Context, term string) []catalog.Recipe

	// ListByCategory returns recipes in an exact category
	ListByCategory(ctx context.Context, category string) []catalog.Recipe

	// GetByID returns a single recipe, or nil when absent or unreachable
	GetByID(ctx context.Context, id string) *catalog.Recipe

	// GetRandom issues n independent single-record fetches concurrently.
	// A failed or empty fetch contributes nothing; result order is the
	// arrival order of the fetches, not the request order.
	GetRandom(ctx context.Context, n int) []catalog.Recipe
}

// FavoriteRepository persists presence-only favorite edges.
// Writes surface their failures so optimistic local state can be rolled back.
type FavoriteRepository interface {
	Insert(ctx context.Context, fav relation.Favorite) error
	Delete(ctx context.Context, userID uuid.UUID, recipeID string) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]relation.Favorite, error)
	Exists(ctx context.Context, userID uuid.UUID, recipeID string) (bool, error)
}

// RatingRepository persists rating edges with upsert semantics: at most one
// row per (user, recipe), relying on the store's uniqueness constraint.
type RatingRepository interface {
	Upsert(ctx context.Context, rating relation.Rating) error
	Delete(ctx context.Context, userID uuid.UUID, recipeID string) error
	Find(ctx context.Context, userID uuid.UUID, recipeID string) (*relation.Rating, error)
	ListLikedIDs(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// SearchHistoryRepository appends submitted queries, best effort
type SearchHistoryRepository interface {
	Append(ctx context.Context, userID uuid.UUID, term string) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]relation.SearchEntry, error)
}

// UserRepository persists accounts and profile rows
type UserRepository interface {
	Create(ctx context.Context, user *account.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*account.User, error)
	FindByEmail(ctx context.Context, email string) (*account.User, error)
	Update(ctx context.Context, user *account.User) error
}

// CookbookRepository persists user-authored recipes
type CookbookRepository interface {
	Create(ctx context.Context, recipe *cookbook.Recipe) error
	FindByID(ctx context.Context, id uuid.UUID) (*cookbook.Recipe, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*cookbook.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CacheRepository is a byte-oriented lookaside cache
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// AssistantService answers free-text cooking questions. Fail-closed like the
// catalog: any failure yields a static fallback message, never an error.
type AssistantService interface {
	Respond(ctx context.Context, prompt string) string
}
