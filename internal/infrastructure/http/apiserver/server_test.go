package apiserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	accountsvc "github.com/recipewhirl/backend/internal/application/account"
	cookbooksvc "github.com/recipewhirl/backend/internal/application/cookbook"
	"github.com/recipewhirl/backend/internal/application/interaction"
	"github.com/recipewhirl/backend/internal/application/search"
	"github.com/recipewhirl/backend/internal/application/session"
	"github.com/recipewhirl/backend/internal/domain/account"
	"github.com/recipewhirl/backend/internal/domain/catalog"
	"github.com/recipewhirl/backend/internal/domain/cookbook"
	"github.com/recipewhirl/backend/internal/domain/relation"
	"github.com/recipewhirl/backend/internal/infrastructure/config"
	"github.com/recipewhirl/backend/internal/infrastructure/monitoring"
)

// ---- in-memory port implementations ----

type memSource struct {
	mu      sync.Mutex
	byIng   map[string][]catalog.Recipe
	byID    map[string]*catalog.Recipe
	random  []catalog.Recipe
}

func (s *memSource) SearchByIngredient(_ context.Context, term string) []catalog.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byIng[term]
}
func (s *memSource) SearchByName(context.Context, string) []catalog.Recipe { return nil }
func (s *memSource) ListByCategory(_ context.Context, c string) []catalog.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []catalog.Recipe
	for _, r := range s.byID {
		if r.Category == c {
			out = append(out, *r)
		}
	}
	return out
}
func (s *memSource) GetByID(_ context.Context, id string) *catalog.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byID[id]
}
func (s *memSource) GetRandom(context.Context, int) []catalog.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.random
}

type memFavorites struct {
	mu   sync.Mutex
	rows map[uuid.UUID]map[string]relation.Favorite
}

func newMemFavorites() *memFavorites {
	return &memFavorites{rows: make(map[uuid.UUID]map[string]relation.Favorite)}
}

func (f *memFavorites) Insert(_ context.Context, fav relation.Favorite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rows[fav.UserID] == nil {
		f.rows[fav.UserID] = make(map[string]relation.Favorite)
	}
	f.rows[fav.UserID][fav.RecipeID] = fav
	return nil
}
func (f *memFavorites) Delete(_ context.Context, userID uuid.UUID, recipeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows[userID], recipeID)
	return nil
}
func (f *memFavorites) ListByUser(_ context.Context, userID uuid.UUID) ([]relation.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []relation.Favorite
	for _, fav := range f.rows[userID] {
		out = append(out, fav)
	}
	return out, nil
}
func (f *memFavorites) Exists(_ context.Context, userID uuid.UUID, recipeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[userID][recipeID]
	return ok, nil
}

type memRatings struct {
	mu   sync.Mutex
	rows map[uuid.UUID]map[string]relation.Rating
}

func newMemRatings() *memRatings {
	return &memRatings{rows: make(map[uuid.UUID]map[string]relation.Rating)}
}

func (m *memRatings) Upsert(_ context.Context, r relation.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rows[r.UserID] == nil {
		m.rows[r.UserID] = make(map[string]relation.Rating)
	}
	m.rows[r.UserID][r.RecipeID] = r
	return nil
}
func (m *memRatings) Delete(_ context.Context, userID uuid.UUID, recipeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows[userID], recipeID)
	return nil
}
func (m *memRatings) Find(_ context.Context, userID uuid.UUID, recipeID string) (*relation.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rows[userID][recipeID]; ok {
		return &r, nil
	}
	return nil, nil
}
func (m *memRatings) ListLikedIDs(_ context.Context, userID uuid.UUID) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id, r := range m.rows[userID] {
		if r.Value == relation.RatingLike {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type memHistory struct {
	mu      sync.Mutex
	entries []relation.SearchEntry
}

func (h *memHistory) Append(_ context.Context, userID uuid.UUID, term string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, relation.SearchEntry{UserID: userID, Term: term, CreatedAt: time.Now()})
	return nil
}
func (h *memHistory) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]relation.SearchEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []relation.SearchEntry
	for i := len(h.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if h.entries[i].UserID == userID {
			out = append(out, h.entries[i])
		}
	}
	return out, nil
}

type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*account.User
}

func newMemUsers() *memUsers { return &memUsers{users: make(map[uuid.UUID]*account.User)} }

func (m *memUsers) Create(_ context.Context, u *account.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}
func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*account.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}
func (m *memUsers) FindByEmail(_ context.Context, email string) (*account.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
func (m *memUsers) Update(_ context.Context, u *account.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

type memCookbook struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*cookbook.Recipe
}

func newMemCookbook() *memCookbook { return &memCookbook{rows: make(map[uuid.UUID]*cookbook.Recipe)} }

func (m *memCookbook) Create(_ context.Context, r *cookbook.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}
func (m *memCookbook) FindByID(_ context.Context, id uuid.UUID) (*cookbook.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rows[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}
func (m *memCookbook) ListByUser(_ context.Context, userID uuid.UUID) ([]*cookbook.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*cookbook.Recipe
	for _, r := range m.rows {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (m *memCookbook) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

type staticAssistant struct{ reply string }

func (a staticAssistant) Respond(context.Context, string) string { return a.reply }

// ---- harness ----

type harness struct {
	srv    *httptest.Server
	source *memSource
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Version = "test"
	cfg.Search.DebounceWindow = 10 * time.Millisecond
	cfg.Catalog.RandomCount = 3

	logger := zap.NewNop()
	metrics := monitoring.NewMetrics()

	src := &memSource{
		byIng: map[string][]catalog.Recipe{
			"chicken": {
				{ID: "52771", Name: "Chicken Handi", Category: "Chicken", ThumbnailURL: "https://img.test/1.jpg"},
				{ID: "52772", Name: "Chicken Congee", Category: "Chicken"},
			},
		},
		byID: map[string]*catalog.Recipe{
			"52771": {ID: "52771", Name: "Chicken Handi", Category: "Chicken", ThumbnailURL: "https://img.test/1.jpg"},
		},
		random: []catalog.Recipe{{ID: "1", Name: "Surprise"}},
	}

	favorites := newMemFavorites()
	ratings := newMemRatings()
	history := &memHistory{}
	users := newMemUsers()

	sessions := session.NewManager(favorites, ratings, logger)
	accounts := accountsvc.NewService(users, sessions, "test-secret", time.Hour, logger)
	store := interaction.NewStore(favorites, ratings, metrics, logger)
	interactions := interaction.NewController(store, src, logger)
	pipeline := search.NewPipeline(src, history, metrics, cfg.Catalog.RandomCount, logger)
	cookbookService := cookbooksvc.NewService(newMemCookbook(), logger)

	server := NewServer(cfg, logger, metrics, accounts, interactions, pipeline,
		cookbookService, src, favorites, history, staticAssistant{reply: "Try basil."})

	srv := httptest.NewServer(server.routes())
	t.Cleanup(srv.Close)
	t.Cleanup(func() { server.Shutdown(context.Background()) })
	return &harness{srv: srv, source: src}
}

func (h *harness) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, h.srv.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (h *harness) registerUser(t *testing.T) string {
	t.Helper()
	resp := h.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "cook@example.com",
		"name":     "Cook",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody(t, resp)["token"].(string)
}

// ---- tests ----

func TestHealthEndpoint(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeBody(t, resp)["status"])
}

func TestAnonymousSearch(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/v1/search?q=chicken", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Len(t, body["recipes"], 2)

	resp = h.do(t, http.MethodGet, "/api/v1/search?q=", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody(t, resp)["recipes"], 1, "empty query falls back to random picks")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newHarness(t)

	for _, path := range []string{
		"/api/v1/favorites",
		"/api/v1/search/history",
		"/api/v1/cookbook",
	} {
		resp := h.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}

	resp := h.do(t, http.MethodPost, "/api/v1/recipes/52771/favorite", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestFavoriteFlowOverHTTP(t *testing.T) {
	h := newHarness(t)
	token := h.registerUser(t)

	resp := h.do(t, http.MethodPost, "/api/v1/recipes/52771/favorite", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["favorited"])

	resp = h.do(t, http.MethodGet, "/api/v1/favorites", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	favorites := decodeBody(t, resp)["favorites"].([]interface{})
	require.Len(t, favorites, 1)
	fav := favorites[0].(map[string]interface{})
	assert.Equal(t, "Chicken Handi", fav["title"], "display fields travel with the favorite")

	resp = h.do(t, http.MethodPost, "/api/v1/recipes/52771/favorite", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decodeBody(t, resp)["favorited"])

	resp = h.do(t, http.MethodPost, "/api/v1/recipes/99999/favorite", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "unknown recipes cannot be favorited")
	resp.Body.Close()
}

func TestDislikeRemovesFromSessionResults(t *testing.T) {
	h := newHarness(t)
	token := h.registerUser(t)

	resp := h.do(t, http.MethodGet, "/api/v1/search?q=chicken", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decodeBody(t, resp)["recipes"], 2)

	resp = h.do(t, http.MethodPost, "/api/v1/recipes/52771/dislike", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(t, http.MethodGet, "/api/v1/search/results", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	recipes := decodeBody(t, resp)["recipes"].([]interface{})
	require.Len(t, recipes, 1)
	assert.Equal(t, "52772", recipes[0].(map[string]interface{})["id"])
}

func TestDebouncedSearchInput(t *testing.T) {
	h := newHarness(t)
	token := h.registerUser(t)

	for _, q := range []string{"c", "chi", "chicken"} {
		resp := h.do(t, http.MethodPost, "/api/v1/search/input", token, map[string]string{"query": q})
		require.Equal(t, http.StatusAccepted, resp.StatusCode)
		resp.Body.Close()
	}

	require.Eventually(t, func() bool {
		resp := h.do(t, http.MethodGet, "/api/v1/search/results", token, nil)
		defer resp.Body.Close()
		var body map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return false
		}
		recipes, _ := body["recipes"].([]interface{})
		return body["query"] == "chicken" && len(recipes) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestSearchHistoryOverHTTP(t *testing.T) {
	h := newHarness(t)
	token := h.registerUser(t)

	resp := h.do(t, http.MethodGet, "/api/v1/search?q=chicken", token, nil)
	resp.Body.Close()

	resp = h.do(t, http.MethodGet, "/api/v1/search/history", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []interface{}{"chicken"}, decodeBody(t, resp)["terms"])
}

func TestGetRecipeByID(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/v1/recipes/52771", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Chicken Handi", body["name"])
	assert.Equal(t, false, body["vegetarian"])

	resp = h.do(t, http.MethodGet, "/api/v1/recipes/99999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAssistantChat(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodPost, "/api/v1/assistant/chat", "", map[string]string{
		"message": "What goes with pasta?",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Try basil.", decodeBody(t, resp)["reply"])

	resp = h.do(t, http.MethodPost, "/api/v1/assistant/chat", "", map[string]string{"message": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCookbookCRUDOverHTTP(t *testing.T) {
	h := newHarness(t)
	token := h.registerUser(t)

	resp := h.do(t, http.MethodPost, "/api/v1/cookbook", token, map[string]interface{}{
		"title":        "Lentil Soup",
		"ingredients":  []string{"1 cup lentils"},
		"instructions": []string{"Simmer."},
		"servings":     4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	id := created["id"].(string)

	resp = h.do(t, http.MethodGet, "/api/v1/cookbook/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Lentil Soup", decodeBody(t, resp)["title"])

	resp = h.do(t, http.MethodGet, "/api/v1/cookbook", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody(t, resp)["recipes"], 1)

	resp = h.do(t, http.MethodDelete, "/api/v1/cookbook/"+id, token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(t, http.MethodGet, "/api/v1/cookbook/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginAndLogout(t *testing.T) {
	h := newHarness(t)
	h.registerUser(t)

	resp := h.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "cook@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decodeBody(t, resp)["token"].(string)

	resp = h.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "cook@example.com",
		"password": "wrong horse",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
