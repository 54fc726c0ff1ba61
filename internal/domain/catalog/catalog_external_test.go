package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recipewhirl/backend/internal/domain/catalog"
	"github.com/recipewhirl/backend/test/testutils"
)

func TestIngredientListOnGeneratedRecipes(t *testing.T) {
	for i := 0; i < 50; i++ {
		r := testutils.CatalogRecipe()
		list := r.IngredientList()
		assert.Len(t, list, 4, "five populated slots minus the gap")
		for _, entry := range list {
			assert.NotEmpty(t, entry)
		}
	}
}

func TestClassifierIsStableOnGeneratedRecipes(t *testing.T) {
	for i := 0; i < 50; i++ {
		r := testutils.CatalogRecipe()
		first := catalog.IsVegetarian(&r)
		for j := 0; j < 3; j++ {
			assert.Equal(t, first, catalog.IsVegetarian(&r))
		}
	}
}

func TestFiltersOnGeneratedRecipes(t *testing.T) {
	recipes := make([]catalog.Recipe, 0, 30)
	for i := 0; i < 30; i++ {
		recipes = append(recipes, testutils.CatalogRecipe())
	}

	veg := catalog.Filters{Vegetarian: true}.Apply(recipes)
	nonVeg := catalog.Filters{NonVegetarian: true}.Apply(recipes)
	assert.Len(t, append(veg, nonVeg...), len(recipes), "the diet filter partitions the list")
}
