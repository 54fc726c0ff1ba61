package apiserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appcookbook "github.com/recipewhirl/backend/internal/application/cookbook"
	"github.com/recipewhirl/backend/internal/domain/cookbook"
	"github.com/recipewhirl/backend/pkg/errors"
)

type createRecipeRequest struct {
	Title        string   `json:"title" validate:"required,max=255"`
	Description  string   `json:"description" validate:"max=5000"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1,dive,max=500"`
	Instructions []string `json:"instructions" validate:"required,min=1,dive,max=2000"`
	DietaryTags  []string `json:"dietary_tags" validate:"dive,max=50"`
	CuisineType  string   `json:"cuisine_type" validate:"max=100"`
	Difficulty   string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	PrepTime     int      `json:"prep_time" validate:"min=0"`
	CookTime     int      `json:"cook_time" validate:"min=0"`
	Servings     int      `json:"servings" validate:"min=0"`
	ImageURL     string   `json:"image_url" validate:"omitempty,url"`
}

func (s *Server) handleCreateCookbookRecipe(w http.ResponseWriter, r *http.Request) {
	var req createRecipeRequest
	if !s.decode(w, r, &req) {
		return
	}

	sess := sessionFrom(r)
	recipe, err := s.cookbook.Create(r.Context(), sess.UserID, appcookbook.CreateInput{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		DietaryTags:  req.DietaryTags,
		CuisineType:  req.CuisineType,
		Difficulty:   req.Difficulty,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCookbookResponse(recipe))
}

func (s *Server) handleListCookbook(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	recipes, err := s.cookbook.List(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]map[string]interface{}, len(recipes))
	for i, recipe := range recipes {
		out[i] = toCookbookResponse(recipe)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"recipes": out})
}

func (s *Server) handleGetCookbookRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, errors.NewValidationError("invalid recipe id"))
		return
	}

	recipe, err := s.cookbook.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCookbookResponse(recipe))
}

func (s *Server) handleDeleteCookbookRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, errors.NewValidationError("invalid recipe id"))
		return
	}

	sess := sessionFrom(r)
	if err := s.cookbook.Delete(r.Context(), sess.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toCookbookResponse(r *cookbook.Recipe) map[string]interface{} {
	return map[string]interface{}{
		"id":           r.ID,
		"user_id":      r.UserID,
		"title":        r.Title,
		"description":  r.Description,
		"ingredients":  r.Ingredients,
		"instructions": r.Instructions,
		"dietary_tags": r.DietaryTags,
		"cuisine_type": r.CuisineType,
		"difficulty":   r.Difficulty,
		"prep_time":    r.PrepTime,
		"cook_time":    r.CookTime,
		"servings":     r.Servings,
		"image_url":    r.ImageURL,
		"created_at":   r.CreatedAt,
	}
}
