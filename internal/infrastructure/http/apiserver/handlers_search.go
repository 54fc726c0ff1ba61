package apiserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/recipewhirl/backend/internal/domain/catalog"
	"github.com/recipewhirl/backend/pkg/errors"
)

// handleSearch runs a synchronous search. Anonymous callers get a stateless
// pipeline run; signed-in callers go through their submitter so the results
// land on the session and the generation check applies.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	filters := filtersFromQuery(r)

	sess := sessionFrom(r)
	if sess == nil {
		results, _ := s.pipeline.Search(r.Context(), nil, query, filters)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"query":   query,
			"recipes": toRecipeResponses(results),
		})
		return
	}

	sess.SetFilters(filters)
	results := s.submitterFor(sess).SubmitNow(r.Context(), query)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"recipes": toRecipeResponses(results),
	})
}

type searchInputRequest struct {
	Query string `json:"query" validate:"max=255"`
}

// handleSearchInput feeds one keystroke-level query into the session's
// debouncer. The response is immediate; results arrive on the session after
// the quiet window and are read from /search/results.
func (s *Server) handleSearchInput(w http.ResponseWriter, r *http.Request) {
	var req searchInputRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.submitterFor(sessionFrom(r)).SubmitInput(req.Query)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleSearchResults(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   sess.Query(),
		"recipes": toRecipeResponses(sess.Results()),
	})
}

type setFiltersRequest struct {
	Vegetarian    bool   `json:"vegetarian"`
	NonVegetarian bool   `json:"non_vegetarian"`
	Category      string `json:"category" validate:"max=100"`
}

// handleSetFilters installs new filters and narrows the current result list
// in place. Widening a filter needs a fresh search; that asymmetry is the
// point, not an accident.
func (s *Server) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	var req setFiltersRequest
	if !s.decode(w, r, &req) {
		return
	}

	narrowed := sessionFrom(r).SetFilters(catalog.Filters{
		Vegetarian:    req.Vegetarian,
		NonVegetarian: req.NonVegetarian,
		Category:      req.Category,
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recipes": toRecipeResponses(narrowed),
	})
}

func (s *Server) handleSearchHistory(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	entries, err := s.history.ListByUser(r.Context(), sess.UserID, 20)
	if err != nil {
		writeError(w, errors.NewDatabaseError("list search history", err))
		return
	}

	terms := make([]string, len(entries))
	for i, e := range entries {
		terms[i] = e.Term
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"terms": terms})
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	recipe := s.source.GetByID(r.Context(), id)
	if recipe == nil {
		writeError(w, errors.NewNotFoundError("recipe", id))
		return
	}
	writeJSON(w, http.StatusOK, toRecipeResponse(recipe))
}

func (s *Server) handleListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	results := s.source.ListByCategory(r.Context(), category)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"recipes":  toRecipeResponses(results),
	})
}

func filtersFromQuery(r *http.Request) catalog.Filters {
	q := r.URL.Query()
	return catalog.Filters{
		Vegetarian:    q.Get("vegetarian") == "true",
		NonVegetarian: q.Get("non_vegetarian") == "true",
		Category:      q.Get("category"),
	}
}
