package apiserver

import (
	"encoding/json"
	"net/http"

	"github.com/recipewhirl/backend/internal/domain/catalog"
	"github.com/recipewhirl/backend/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	appErr := errors.Wrap(err, "request failed")
	writeJSON(w, appErr.StatusCode(), map[string]interface{}{
		"error": appErr,
	})
}

// recipeResponse is the wire shape for catalog recipes. The positional slot
// arrays stay internal; clients get the assembled display strings.
type recipeResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category,omitempty"`
	Area         string   `json:"area,omitempty"`
	Thumbnail    string   `json:"thumbnail,omitempty"`
	Tags         string   `json:"tags,omitempty"`
	SourceURL    string   `json:"source_url,omitempty"`
	VideoURL     string   `json:"video_url,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	Vegetarian   bool     `json:"vegetarian"`
}

func toRecipeResponse(r *catalog.Recipe) recipeResponse {
	return recipeResponse{
		ID:           r.ID,
		Name:         r.Name,
		Category:     r.Category,
		Area:         r.Area,
		Thumbnail:    r.ThumbnailURL,
		Tags:         r.Tags,
		SourceURL:    r.SourceURL,
		VideoURL:     r.VideoURL,
		Ingredients:  r.IngredientList(),
		Instructions: r.InstructionSteps(),
		Vegetarian:   catalog.IsVegetarian(r),
	}
}

func toRecipeResponses(recipes []catalog.Recipe) []recipeResponse {
	out := make([]recipeResponse, len(recipes))
	for i := range recipes {
		out[i] = toRecipeResponse(&recipes[i])
	}
	return out
}
