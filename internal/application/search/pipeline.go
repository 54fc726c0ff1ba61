// Package search implements the recipe discovery pipeline: debounced input,
// two-stage remote search with name-search fallback, client-side filtering
// and monotonic generations so stale results are discarded, never displayed.
package search

import (
	"context"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/recipewhirl/backend/internal/application/session"
	"github.com/recipewhirl/backend/internal/domain/catalog"
	"github.com/recipewhirl/backend/internal/infrastructure/monitoring"
	"github.com/recipewhirl/backend/internal/ports/outbound"
)

// Pipeline turns a free-text query into a filtered recipe list
type Pipeline struct {
	source      outbound.RecipeSource
	history     outbound.SearchHistoryRepository
	metrics     *monitoring.Metrics
	logger      *zap.Logger
	randomCount int

	gen atomic.Uint64
}

// NewPipeline creates a search pipeline. randomCount is the batch size used
// when an empty query short-circuits to random mode.
func NewPipeline(
	source outbound.RecipeSource,
	history outbound.SearchHistoryRepository,
	metrics *monitoring.Metrics,
	randomCount int,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		source:      source,
		history:     history,
		metrics:     metrics,
		logger:      logger.Named("search-pipeline"),
		randomCount: randomCount,
	}
}

// Search runs one pipeline invocation and returns the filtered results with
// the invocation's generation. Callers hand both to Session.ApplyResults so
// an older call that settles late cannot overwrite newer output. In-flight
// remote calls are never cancelled; staleness is handled at application time.
//
// An empty (post-trim) query switches to random mode. Otherwise ingredient
// search runs first and name search only as a sequential fallback when the
// ingredient interpretation found nothing.
func (p *Pipeline) Search(ctx context.Context, sess *session.Session, query string, filters catalog.Filters) ([]catalog.Recipe, uint64) {
	gen := p.gen.Add(1)
	trimmed := strings.TrimSpace(query)

	var results []catalog.Recipe
	if trimmed == "" {
		p.metrics.SearchStarted("random")
		results = p.source.GetRandom(ctx, p.randomCount)
	} else {
		p.metrics.SearchStarted("query")
		results = p.source.SearchByIngredient(ctx, trimmed)
		if len(results) == 0 {
			results = p.source.SearchByName(ctx, trimmed)
		}
		p.recordHistory(ctx, sess, trimmed)
	}

	results = filters.Apply(results)

	p.logger.Debug("Search completed",
		zap.Uint64("generation", gen),
		zap.String("query", trimmed),
		zap.Int("results", len(results)),
	)

	return results, gen
}

// recordHistory appends the query for signed-in sessions. Best effort: a
// history failure must never fail the search.
func (p *Pipeline) recordHistory(ctx context.Context, sess *session.Session, term string) {
	if sess == nil {
		return
	}
	if err := p.history.Append(ctx, sess.UserID, term); err != nil {
		p.logger.Warn("Failed to record search history",
			zap.String("user_id", sess.UserID.String()),
			zap.Error(err),
		)
	}
}
