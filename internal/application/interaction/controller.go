package interaction

import (
	"context"

	"go.uber.org/zap"

	"github.com/recipewhirl/backend/internal/application/session"
	"github.com/recipewhirl/backend/internal/domain/catalog"
	"github.com/recipewhirl/backend/internal/ports/outbound"
	"github.com/recipewhirl/backend/pkg/errors"
)

// Controller binds user gestures on recipes to relationship mutations.
// Every gesture is auth-gated before any remote call is made: an anonymous
// session produces an auth-required error with zero side effects.
type Controller struct {
	store  *Store
	source outbound.RecipeSource
	logger *zap.Logger
}

// NewController creates an interaction controller
func NewController(store *Store, source outbound.RecipeSource, logger *zap.Logger) *Controller {
	return &Controller{
		store:  store,
		source: source,
		logger: logger.Named("interaction-controller"),
	}
}

// ToggleFavorite flips the favorite state of a recipe by ID. The recipe is
// resolved from the catalog so its display fields can travel with the
// favorite row; an unresolvable ID is reported as not found rather than
// writing a blank favorite.
func (c *Controller) ToggleFavorite(ctx context.Context, sess *session.Session, recipeID string) (bool, error) {
	if sess == nil {
		return false, errors.NewAuthRequiredError("favorite recipes")
	}

	recipe := c.resolve(ctx, sess, recipeID)
	if recipe == nil {
		return sess.HasFavorite(recipeID), errors.NewNotFoundError("recipe", recipeID)
	}

	return c.store.ToggleFavorite(ctx, sess, recipe)
}

// ToggleLike flips the like state of a recipe by ID
func (c *Controller) ToggleLike(ctx context.Context, sess *session.Session, recipeID string) (bool, error) {
	if sess == nil {
		return false, errors.NewAuthRequiredError("like recipes")
	}
	return c.store.ToggleLike(ctx, sess, recipeID)
}

// Dislike records a negative rating and removes the recipe from the current
// result view. The removal is local and immediate; the rating write settles
// in the background of the gesture and never blocks or reverts the removal.
func (c *Controller) Dislike(ctx context.Context, sess *session.Session, recipeID string) error {
	if sess == nil {
		return errors.NewAuthRequiredError("rate recipes")
	}

	if err := c.store.Dislike(ctx, sess, recipeID); err != nil {
		return err
	}
	sess.RemoveResult(recipeID)
	return nil
}

// resolve finds the recipe for a gesture, preferring the session's current
// result view over a catalog round trip.
func (c *Controller) resolve(ctx context.Context, sess *session.Session, recipeID string) *catalog.Recipe {
	for _, r := range sess.Results() {
		if r.ID == recipeID {
			return &r
		}
	}
	return c.source.GetByID(ctx, recipeID)
}
