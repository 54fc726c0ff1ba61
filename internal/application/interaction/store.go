// Package interaction keeps the session's relationship sets consistent with
// the remote store under rapid, possibly overlapping user actions. Toggles
// are optimistic: the local set flips first, the remote write follows, and a
// failure applies the exact inverse of the speculative flip. Toggles on the
// same (user, recipe, kind) key are serialized by a generation counter; a
// settling call whose generation is no longer the latest for its key is
// discarded as superseded.
package interaction

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/recipewhirl/backend/internal/application/session"
	"github.com/recipewhirl/backend/internal/domain/catalog"
	"github.com/recipewhirl/backend/internal/domain/relation"
	"github.com/recipewhirl/backend/internal/infrastructure/monitoring"
	"github.com/recipewhirl/backend/internal/ports/outbound"
	"github.com/recipewhirl/backend/pkg/errors"
)

// Store performs relationship mutations against the remote store
type Store struct {
	favorites outbound.FavoriteRepository
	ratings   outbound.RatingRepository
	metrics   *monitoring.Metrics
	logger    *zap.Logger

	mu       sync.Mutex
	inflight map[relation.Key]uint64
}

// NewStore creates a relationship store
func NewStore(
	favorites outbound.FavoriteRepository,
	ratings outbound.RatingRepository,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *Store {
	return &Store{
		favorites: favorites,
		ratings:   ratings,
		metrics:   metrics,
		logger:    logger.Named("relationship-store"),
		inflight:  make(map[relation.Key]uint64),
	}
}

// toggleCommand is the reversible transaction produced by a flip: the
// speculative local state it applied, the remote write to make it real, and
// the exact inverse of the speculative flip for rollback. Keeping apply and
// revert paired keeps rollback correct if the local projection grows more
// structure later.
type toggleCommand struct {
	newState bool
	commit   func(ctx context.Context) error
	revert   func()
}

// run executes one toggle under the per-key generation discipline. The flip
// closure reads the current local state, applies the speculative change and
// returns the command; it runs under the store lock so back-to-back toggles
// on the same key observe each other's speculative state in order.
func (s *Store) run(ctx context.Context, key relation.Key, flip func() toggleCommand) (bool, error) {
	s.mu.Lock()
	s.inflight[key]++
	gen := s.inflight[key]
	cmd := flip()
	s.mu.Unlock()

	err := cmd.commit(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.inflight[key] {
		// A newer toggle for this key was issued while this one was in
		// flight; the newer one owns the local state now, so this result is
		// discarded whether it succeeded or not.
		s.logger.Debug("Discarding superseded toggle result",
			zap.String("recipe_id", key.RecipeID),
			zap.String("kind", string(key.Kind)),
			zap.Uint64("generation", gen),
			zap.Error(err),
		)
		return cmd.newState, nil
	}

	if err != nil {
		cmd.revert()
		s.metrics.ToggleRollback(string(key.Kind))
		return !cmd.newState, err
	}

	return cmd.newState, nil
}

// ToggleFavorite flips favorite membership for the session's user. Returns
// the new state. Display fields from the recipe are denormalized onto the
// favorite row so the favorites list renders without a catalog join.
func (s *Store) ToggleFavorite(ctx context.Context, sess *session.Session, recipe *catalog.Recipe) (bool, error) {
	if sess == nil {
		return false, errors.NewAuthRequiredError("favorite recipes")
	}

	key := relation.Key{UserID: sess.UserID, RecipeID: recipe.ID, Kind: relation.KindFavorite}

	newState, err := s.run(ctx, key, func() toggleCommand {
		target := !sess.HasFavorite(recipe.ID)
		sess.SetFavorite(recipe.ID, target)

		cmd := toggleCommand{
			newState: target,
			revert:   func() { sess.SetFavorite(recipe.ID, !target) },
		}
		if target {
			fav := relation.Favorite{
				UserID:    sess.UserID,
				RecipeID:  recipe.ID,
				Title:     recipe.Name,
				Thumbnail: recipe.ThumbnailURL,
				CreatedAt: time.Now(),
			}
			cmd.commit = func(ctx context.Context) error {
				return s.favorites.Insert(ctx, fav)
			}
		} else {
			cmd.commit = func(ctx context.Context) error {
				return s.favorites.Delete(ctx, sess.UserID, recipe.ID)
			}
		}
		return cmd
	})

	if err != nil {
		s.logger.Error("Favorite toggle failed",
			zap.String("user_id", sess.UserID.String()),
			zap.String("recipe_id", recipe.ID),
			zap.Error(err),
		)
		return newState, errors.NewDatabaseError("toggle favorite", err)
	}
	return newState, nil
}

// ToggleLike flips like membership. Setting upserts a +1 rating row;
// unsetting deletes the row. Like and dislike share the same row slot, so a
// like replaces a prior dislike rather than adding a second row.
func (s *Store) ToggleLike(ctx context.Context, sess *session.Session, recipeID string) (bool, error) {
	if sess == nil {
		return false, errors.NewAuthRequiredError("like recipes")
	}

	key := relation.Key{UserID: sess.UserID, RecipeID: recipeID, Kind: relation.KindRating}

	newState, err := s.run(ctx, key, func() toggleCommand {
		target := !sess.HasLike(recipeID)
		sess.SetLike(recipeID, target)

		cmd := toggleCommand{
			newState: target,
			revert:   func() { sess.SetLike(recipeID, !target) },
		}
		if target {
			rating := relation.Rating{
				UserID:    sess.UserID,
				RecipeID:  recipeID,
				Value:     relation.RatingLike,
				UpdatedAt: time.Now(),
			}
			cmd.commit = func(ctx context.Context) error {
				return s.ratings.Upsert(ctx, rating)
			}
		} else {
			cmd.commit = func(ctx context.Context) error {
				return s.ratings.Delete(ctx, sess.UserID, recipeID)
			}
		}
		return cmd
	})

	if err != nil {
		s.logger.Error("Like toggle failed",
			zap.String("user_id", sess.UserID.String()),
			zap.String("recipe_id", recipeID),
			zap.Error(err),
		)
		return newState, errors.NewDatabaseError("toggle like", err)
	}
	return newState, nil
}

// Dislike upserts a -1 rating unconditionally. It reads no prior state, is
// not reversible through this interface, and its outcome is independent of
// the favorite and like paths. Fire and forget: failures are logged, not
// surfaced, and the local like set is left untouched.
func (s *Store) Dislike(ctx context.Context, sess *session.Session, recipeID string) error {
	if sess == nil {
		return errors.NewAuthRequiredError("rate recipes")
	}

	// The rating row is shared with likes, so the upsert replaces any
	// existing like; the local like set follows.
	sess.SetLike(recipeID, false)

	rating := relation.Rating{
		UserID:    sess.UserID,
		RecipeID:  recipeID,
		Value:     relation.RatingDislike,
		UpdatedAt: time.Now(),
	}

	if err := s.ratings.Upsert(ctx, rating); err != nil {
		s.logger.Warn("Dislike write failed",
			zap.String("user_id", sess.UserID.String()),
			zap.String("recipe_id", recipeID),
			zap.Error(err),
		)
	}
	return nil
}
