// Package relation contains the domain model for user/recipe relationship
// edges: favorites and ratings. The remote relational store is authoritative;
// session-local sets are projections of these rows.
package relation

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies the relationship kind for a (user, recipe) pair
type Kind string

const (
	KindFavorite Kind = "favorite"
	KindRating   Kind = "rating"
)

// Rating values. At most one rating row exists per (user, recipe); a new
// rating replaces the prior one.
const (
	RatingLike    = 1
	RatingDislike = -1
)

// Favorite is a presence-only edge: the row existing means the recipe is
// favorited. Title and Thumbnail are denormalized so the favorites list
// renders without a catalog round trip.
type Favorite struct {
	UserID    uuid.UUID
	RecipeID  string
	Title     string
	Thumbnail string
	CreatedAt time.Time
}

// Rating is a valued edge, +1 for like and -1 for dislike
type Rating struct {
	UserID    uuid.UUID
	RecipeID  string
	Value     int
	UpdatedAt time.Time
}

// SearchEntry is an append-only record of a submitted query
type SearchEntry struct {
	UserID    uuid.UUID
	Term      string
	CreatedAt time.Time
}

// Key identifies the serialization unit for toggles: operations on the same
// key are ordered, operations on different keys are independent.
type Key struct {
	UserID   uuid.UUID
	RecipeID string
	Kind     Kind
}
