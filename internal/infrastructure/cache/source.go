package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/recipewhirl/backend/internal/domain/catalog"
	"github.com/recipewhirl/backend/internal/ports/outbound"
)

// CachedSource decorates a RecipeSource with a lookaside cache on single
// recipe lookups. Search traffic passes through uncached: the catalog's
// filter endpoints are cheap and their result sets churn, while lookups by
// ID are hot (every favorite toggle resolves one) and immutable in practice.
// Cache failures degrade to a direct fetch, never to a miss of the recipe.
type CachedSource struct {
	outbound.RecipeSource

	cache  outbound.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

var _ outbound.RecipeSource = (*CachedSource)(nil)

// NewCachedSource wraps a source with recipe lookup caching
func NewCachedSource(source outbound.RecipeSource, cache outbound.CacheRepository, ttl time.Duration, logger *zap.Logger) *CachedSource {
	return &CachedSource{
		RecipeSource: source,
		cache:        cache,
		ttl:          ttl,
		logger:       logger.Named("catalog-cache"),
	}
}

// GetByID serves the recipe from cache when present. Absent recipes are not
// negatively cached: a nil result may mean "catalog down" and must not stick.
func (s *CachedSource) GetByID(ctx context.Context, id string) *catalog.Recipe {
	key := "recipe:" + id

	if data, err := s.cache.Get(ctx, key); err == nil {
		var r catalog.Recipe
		if err := json.Unmarshal(data, &r); err == nil {
			return &r
		}
		s.logger.Warn("Dropping undecodable cache entry", zap.String("key", key))
		_ = s.cache.Delete(ctx, key)
	} else if err != ErrCacheMiss {
		s.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	r := s.RecipeSource.GetByID(ctx, id)
	if r == nil {
		return nil
	}

	if data, err := json.Marshal(r); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return r
}
