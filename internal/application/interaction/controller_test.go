package interaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/recipewhirl/backend/internal/domain/catalog"
	apperrors "github.com/recipewhirl/backend/pkg/errors"
)

type fakeSource struct {
	recipes map[string]*catalog.Recipe
	lookups int
}

func (f *fakeSource) SearchByIngredient(context.Context, string) []catalog.Recipe { return nil }
func (f *fakeSource) SearchByName(context.Context, string) []catalog.Recipe       { return nil }
func (f *fakeSource) ListByCategory(context.Context, string) []catalog.Recipe     { return nil }
func (f *fakeSource) GetRandom(context.Context, int) []catalog.Recipe             { return nil }

func (f *fakeSource) GetByID(_ context.Context, id string) *catalog.Recipe {
	f.lookups++
	return f.recipes[id]
}

func newTestController(fav *fakeFavorites, rat *fakeRatings, src *fakeSource) *Controller {
	return NewController(newTestStore(fav, rat), src, zap.NewNop())
}

func TestControllerFavoriteResolvesFromCatalog(t *testing.T) {
	fav := newFakeFavorites()
	src := &fakeSource{recipes: map[string]*catalog.Recipe{
		"52771": testRecipe("52771"),
	}}
	ctrl := newTestController(fav, newFakeRatings(), src)
	sess := newTestSession()

	on, err := ctrl.ToggleFavorite(context.Background(), sess, "52771")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, 1, src.lookups)
	assert.Equal(t, "Recipe 52771", fav.rows["52771"].Title)
}

func TestControllerFavoritePrefersSessionResults(t *testing.T) {
	fav := newFakeFavorites()
	src := &fakeSource{recipes: map[string]*catalog.Recipe{}}
	ctrl := newTestController(fav, newFakeRatings(), src)
	sess := newTestSession()
	require.True(t, sess.ApplyResults(1, "chicken", []catalog.Recipe{*testRecipe("52771")}))

	on, err := ctrl.ToggleFavorite(context.Background(), sess, "52771")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Zero(t, src.lookups, "recipe already in the result view")
}

func TestControllerFavoriteUnknownRecipe(t *testing.T) {
	fav := newFakeFavorites()
	src := &fakeSource{recipes: map[string]*catalog.Recipe{}}
	ctrl := newTestController(fav, newFakeRatings(), src)
	sess := newTestSession()

	_, err := ctrl.ToggleFavorite(context.Background(), sess, "99999")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetCode(err))
	assert.Zero(t, fav.inserts)
}

func TestControllerGesturesRequireSession(t *testing.T) {
	fav := newFakeFavorites()
	rat := newFakeRatings()
	src := &fakeSource{recipes: map[string]*catalog.Recipe{}}
	ctrl := newTestController(fav, rat, src)

	_, err := ctrl.ToggleFavorite(context.Background(), nil, "52771")
	assert.Equal(t, apperrors.CodeAuthRequired, apperrors.GetCode(err))

	_, err = ctrl.ToggleLike(context.Background(), nil, "52771")
	assert.Equal(t, apperrors.CodeAuthRequired, apperrors.GetCode(err))

	err = ctrl.Dislike(context.Background(), nil, "52771")
	assert.Equal(t, apperrors.CodeAuthRequired, apperrors.GetCode(err))

	assert.Zero(t, src.lookups)
	assert.Zero(t, fav.inserts)
	assert.Zero(t, rat.upserts)
}

func TestControllerDislikeRemovesFromResultView(t *testing.T) {
	rat := newFakeRatings()
	src := &fakeSource{recipes: map[string]*catalog.Recipe{}}
	ctrl := newTestController(newFakeFavorites(), rat, src)
	sess := newTestSession()
	require.True(t, sess.ApplyResults(1, "chicken", []catalog.Recipe{
		*testRecipe("52771"),
		*testRecipe("52772"),
	}))

	require.NoError(t, ctrl.Dislike(context.Background(), sess, "52771"))

	results := sess.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "52772", results[0].ID)
	v, ok := rat.value("52771")
	require.True(t, ok)
	assert.Equal(t, -1, v)
}
