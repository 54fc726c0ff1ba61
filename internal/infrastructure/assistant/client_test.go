package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/recipewhirl/backend/internal/infrastructure/config"
	"github.com/recipewhirl/backend/internal/infrastructure/monitoring"
)

func testConfig(baseURL string) *config.AssistantConfig {
	return &config.AssistantConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Model:          "gemini-1.5-flash",
		Timeout:        5 * time.Second,
		MaxTokens:      256,
		Temperature:    0.7,
		RequestsPerMin: 600,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(testConfig(srv.URL), monitoring.NewMetrics(), zap.NewNop())
}

func completion(text string) string {
	return `{"candidates":[{"content":{"role":"model","parts":[{"text":` +
		string(mustJSON(text)) + `}]}}]}`
}

func mustJSON(s string) []byte {
	b, _ := json.Marshal(s)
	return b
}

func TestRespondReturnsCompletion(t *testing.T) {
	var gotPath string
	var gotBody generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(completion("Use basil instead of oregano.")))
	})

	answer := c.Respond(context.Background(), "What can replace oregano?")
	assert.Equal(t, "Use basil instead of oregano.", answer)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)

	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "What can replace oregano?", gotBody.Contents[0].Parts[0].Text)
	require.NotNil(t, gotBody.SystemInstruction, "the cooking persona rides on every request")
}

func TestRespondFallsBackOnUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	assert.Equal(t, FallbackMessage, c.Respond(context.Background(), "hi"))
}

func TestRespondFallsBackOnEmptyCompletion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})
	assert.Equal(t, FallbackMessage, c.Respond(context.Background(), "hi"))
}

func TestRespondFallsBackWithoutAPIKey(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.APIKey = ""
	c := NewClient(cfg, monitoring.NewMetrics(), zap.NewNop())
	assert.Equal(t, FallbackMessage, c.Respond(context.Background(), "hi"))
}

func TestRespondFallsBackWhenRateLimited(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(completion("ok")))
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	cfg.RequestsPerMin = 6 // refills far slower than the test runs
	c := NewClient(cfg, monitoring.NewMetrics(), zap.NewNop())
	c.limiter.SetBurst(1)

	assert.Equal(t, "ok", c.Respond(context.Background(), "first"))
	assert.Equal(t, FallbackMessage, c.Respond(context.Background(), "second"))
	assert.Equal(t, 1, calls, "the limited request never reaches upstream")
}
