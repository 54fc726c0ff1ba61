// Package testutils provides randomized fixtures for tests.
package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/recipewhirl/backend/internal/domain/account"
	"github.com/recipewhirl/backend/internal/domain/catalog"
	"github.com/recipewhirl/backend/internal/domain/relation"
)

// CatalogRecipe builds a plausible catalog record with a handful of
// populated ingredient slots, including one deliberate gap.
func CatalogRecipe() catalog.Recipe {
	r := catalog.Recipe{
		ID:           fmt.Sprintf("%d", gofakeit.Number(52700, 53100)),
		Name:         gofakeit.Dinner(),
		Category:     gofakeit.RandomString([]string{"Beef", "Chicken", "Dessert", "Pasta", "Seafood", "Vegetarian"}),
		Area:         gofakeit.Country(),
		Instructions: gofakeit.Paragraph(3, 2, 8, "\r\n"),
		ThumbnailURL: gofakeit.URL(),
	}
	for i := 0; i < 5; i++ {
		r.Ingredients[i] = gofakeit.Vegetable()
		r.Measures[i] = fmt.Sprintf("%d cup", gofakeit.Number(1, 4))
	}
	r.Ingredients[2] = ""
	r.Measures[2] = ""
	return r
}

// User builds a registered user with a fixed dummy password hash
func User() *account.User {
	u, _ := account.NewUser(gofakeit.Email(), gofakeit.Name())
	u.PasswordHash = "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtest"
	return u
}

// Favorite builds a favorite edge for the given user
func Favorite(userID uuid.UUID) relation.Favorite {
	r := CatalogRecipe()
	return relation.Favorite{
		UserID:    userID,
		RecipeID:  r.ID,
		Title:     r.Name,
		Thumbnail: r.ThumbnailURL,
	}
}
