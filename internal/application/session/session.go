// Package session holds the per-user discovery state: the local relationship
// sets, the current result list and the query generation. The remote store is
// authoritative; everything here is a projection rebuilt at sign-in and
// mutated optimistically by the interaction layer.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/recipewhirl/backend/internal/domain/catalog"
	"github.com/recipewhirl/backend/internal/domain/relation"
)

// Session is the state owned by one signed-in user for its lifetime.
// It is created at sign-in and torn down at sign-out; an anonymous caller
// has no session at all.
type Session struct {
	UserID uuid.UUID
	Email  string
	Name   string

	mu        sync.Mutex
	favorites map[string]struct{}
	likes     map[string]struct{}

	results    []catalog.Recipe
	resultGen  uint64
	query      string
	filters    catalog.Filters
}

// New builds a session from the authoritative relationship rows
func New(userID uuid.UUID, email, name string, favorites []relation.Favorite, likedIDs []string) *Session {
	s := &Session{
		UserID:    userID,
		Email:     email,
		Name:      name,
		favorites: make(map[string]struct{}, len(favorites)),
		likes:     make(map[string]struct{}, len(likedIDs)),
	}
	for _, f := range favorites {
		s.favorites[f.RecipeID] = struct{}{}
	}
	for _, id := range likedIDs {
		s.likes[id] = struct{}{}
	}
	return s
}

// HasFavorite reports whether the recipe is in the local favorite set
func (s *Session) HasFavorite(recipeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.favorites[recipeID]
	return ok
}

// HasLike reports whether the recipe is in the local like set
func (s *Session) HasLike(recipeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.likes[recipeID]
	return ok
}

// SetFavorite flips local favorite membership. Used for both the optimistic
// apply and its exact inverse on rollback.
func (s *Session) SetFavorite(recipeID string, member bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if member {
		s.favorites[recipeID] = struct{}{}
	} else {
		delete(s.favorites, recipeID)
	}
}

// SetLike flips local like membership
func (s *Session) SetLike(recipeID string, member bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if member {
		s.likes[recipeID] = struct{}{}
	} else {
		delete(s.likes, recipeID)
	}
}

// ApplyResults installs a result set produced by pipeline generation gen.
// A result older than the last applied one is discarded, so an invocation
// that started earlier but settled later never overwrites newer output.
// Returns whether the set was accepted.
func (s *Session) ApplyResults(gen uint64, query string, recipes []catalog.Recipe) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.resultGen {
		return false
	}
	s.resultGen = gen
	s.query = query
	s.results = recipes
	return true
}

// Results returns a copy of the current result list
func (s *Session) Results() []catalog.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Recipe, len(s.results))
	copy(out, s.results)
	return out
}

// Query returns the query whose results are currently displayed
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// RemoveResult drops a recipe from the current result list by identity.
// This is a view-level removal: the recipe can reappear in a later search.
func (s *Session) RemoveResult(recipeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.results[:0]
	for _, r := range s.results {
		if r.ID != recipeID {
			kept = append(kept, r)
		}
	}
	s.results = kept
}

// Filters returns the active client-side filters
func (s *Session) Filters() catalog.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetFilters installs new filters and applies them to the current result
// list destructively, matching the search surface: narrowing is immediate,
// widening requires a fresh search.
func (s *Session) SetFilters(f catalog.Filters) []catalog.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.results = f.Apply(s.results)
	out := make([]catalog.Recipe, len(s.results))
	copy(out, s.results)
	return out
}
