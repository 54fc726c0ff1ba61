package apiserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/recipewhirl/backend/pkg/errors"
)

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	recipeID := chi.URLParam(r, "id")

	favorited, err := s.interactions.ToggleFavorite(r.Context(), sess, recipeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recipe_id": recipeID,
		"favorited": favorited,
	})
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	recipeID := chi.URLParam(r, "id")

	liked, err := s.interactions.ToggleLike(r.Context(), sess, recipeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recipe_id": recipeID,
		"liked":     liked,
	})
}

func (s *Server) handleDislike(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	recipeID := chi.URLParam(r, "id")

	if err := s.interactions.Dislike(r.Context(), sess, recipeID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recipe_id": recipeID,
		"disliked":  true,
	})
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	favorites, err := s.favorites.ListByUser(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, errors.NewDatabaseError("list favorites", err))
		return
	}

	type favoritePayload struct {
		RecipeID  string `json:"recipe_id"`
		Title     string `json:"title"`
		Thumbnail string `json:"thumbnail,omitempty"`
	}
	out := make([]favoritePayload, len(favorites))
	for i, f := range favorites {
		out[i] = favoritePayload{
			RecipeID:  f.RecipeID,
			Title:     f.Title,
			Thumbnail: f.Thumbnail,
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"favorites": out})
}
