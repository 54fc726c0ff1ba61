// Package mealdb is the TheMealDB adapter behind the RecipeSource port.
// Reads fail closed: every transport, status and decode failure is logged,
// counted and folded into an empty result, so the discovery surface renders
// an empty state instead of an error page when the catalog is down.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/recipewhirl/backend/internal/domain/catalog"
	"github.com/recipewhirl/backend/internal/infrastructure/monitoring"
	"github.com/recipewhirl/backend/internal/ports/outbound"
)

// Client talks to a TheMealDB-compatible API
type Client struct {
	baseURL string
	http    *http.Client
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

var _ outbound.RecipeSource = (*Client)(nil)

// NewClient creates a catalog client. baseURL includes the API key path
// segment, e.g. https://www.themealdb.com/api/json/v1/1
func NewClient(baseURL string, httpClient *http.Client, metrics *monitoring.Metrics, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		metrics: metrics,
		logger:  logger.Named("mealdb"),
	}
}

// mealEnvelope is the wire shape shared by every endpoint. The API signals
// "no results" as a JSON null, so the field must stay a pointer-friendly
// slice rather than erroring on null.
type mealEnvelope struct {
	Meals []map[string]*string `json:"meals"`
}

// SearchByIngredient lists recipes containing the ingredient. The filter
// endpoint returns skeleton records (id, name, thumbnail only).
func (c *Client) SearchByIngredient(ctx context.Context, term string) []catalog.Recipe {
	return c.list(ctx, "filter_ingredient", "/filter.php?i="+url.QueryEscape(term))
}

// SearchByName searches recipe names and returns full records
func (c *Client) SearchByName(ctx context.Context, term string) []catalog.Recipe {
	return c.list(ctx, "search_name", "/search.php?s="+url.QueryEscape(term))
}

// ListByCategory lists skeleton records in an exact category
func (c *Client) ListByCategory(ctx context.Context, category string) []catalog.Recipe {
	return c.list(ctx, "filter_category", "/filter.php?c="+url.QueryEscape(category))
}

// GetByID fetches one full record, or nil
func (c *Client) GetByID(ctx context.Context, id string) *catalog.Recipe {
	meals := c.fetch(ctx, "lookup", "/lookup.php?i="+url.QueryEscape(id))
	if len(meals) == 0 {
		return nil
	}
	r := decodeMeal(meals[0])
	return &r
}

// GetRandom issues n independent random fetches concurrently and returns
// whatever arrived, in arrival order. Duplicates are possible; the endpoint
// has no batch form.
func (c *Client) GetRandom(ctx context.Context, n int) []catalog.Recipe {
	var (
		mu  sync.Mutex
		out []catalog.Recipe
	)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			meals := c.fetch(ctx, "random", "/random.php")
			if len(meals) == 0 {
				return nil
			}
			r := decodeMeal(meals[0])
			mu.Lock()
			out = append(out, r)
			mu.Unlock()
			return nil
		})
	}
	// fetch never returns an error, so Wait cannot either
	_ = g.Wait()
	return out
}

func (c *Client) list(ctx context.Context, operation, path string) []catalog.Recipe {
	meals := c.fetch(ctx, operation, path)
	out := make([]catalog.Recipe, 0, len(meals))
	for _, m := range meals {
		out = append(out, decodeMeal(m))
	}
	return out
}

// fetch performs one GET and absorbs every failure mode into a nil slice
func (c *Client) fetch(ctx context.Context, operation, path string) []map[string]*string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		c.fail(operation, "build request", err)
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.fail(operation, "request", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.fail(operation, "status", fmt.Errorf("unexpected status %d", resp.StatusCode))
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	var envelope mealEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.fail(operation, "decode", err)
		return nil
	}
	return envelope.Meals
}

func (c *Client) fail(operation, stage string, err error) {
	c.metrics.CatalogFailure(operation)
	c.logger.Warn("Catalog request failed",
		zap.String("operation", operation),
		zap.String("stage", stage),
		zap.Error(err),
	)
}

// decodeMeal maps the flat strIngredientN/strMeasureN record onto the
// positional slot arrays, preserving slot positions and gaps exactly.
func decodeMeal(m map[string]*string) catalog.Recipe {
	r := catalog.Recipe{
		ID:           str(m, "idMeal"),
		Name:         str(m, "strMeal"),
		Category:     str(m, "strCategory"),
		Area:         str(m, "strArea"),
		Instructions: str(m, "strInstructions"),
		ThumbnailURL: str(m, "strMealThumb"),
		SourceURL:    str(m, "strSource"),
		VideoURL:     str(m, "strYoutube"),
		Tags:         str(m, "strTags"),
	}
	for i := 0; i < catalog.MaxIngredientSlots; i++ {
		r.Ingredients[i] = str(m, fmt.Sprintf("strIngredient%d", i+1))
		r.Measures[i] = str(m, fmt.Sprintf("strMeasure%d", i+1))
	}
	return r
}

func str(m map[string]*string, key string) string {
	if v := m[key]; v != nil {
		return *v
	}
	return ""
}
