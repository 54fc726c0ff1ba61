// Package assistant is the conversational cooking helper adapter. Like the
// catalog it fails closed: any failure (rate limit, transport, upstream
// error, empty completion) yields a fixed fallback message so the chat
// surface always has something to say.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/recipewhirl/backend/internal/infrastructure/config"
	"github.com/recipewhirl/backend/internal/infrastructure/monitoring"
	"github.com/recipewhirl/backend/internal/ports/outbound"
)

// FallbackMessage is returned whenever a live completion cannot be produced
const FallbackMessage = "I'm having trouble connecting right now. " +
	"Try searching for recipes by ingredient, like \"chicken\" or \"pasta\", " +
	"and I'll be back to help with cooking questions soon!"

const systemPreamble = "You are a helpful cooking assistant for a recipe discovery app. " +
	"Answer questions about recipes, ingredients, substitutions and cooking techniques. " +
	"Keep answers short and practical."

// Client calls a Gemini-style generateContent endpoint
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64

	http    *http.Client
	limiter *rate.Limiter
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

var _ outbound.AssistantService = (*Client)(nil)

// NewClient creates an assistant client from configuration
func NewClient(cfg *config.AssistantConfig, metrics *monitoring.Metrics, logger *zap.Logger) *Client {
	perMin := cfg.RequestsPerMin
	if perMin <= 0 {
		perMin = 60
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		http:        &http.Client{Timeout: cfg.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(float64(perMin)/60.0), perMin),
		metrics:     metrics,
		logger:      logger.Named("assistant"),
	}
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Respond answers a free-text prompt, or returns the fallback message
func (c *Client) Respond(ctx context.Context, prompt string) string {
	if !c.limiter.Allow() {
		c.fallback("rate_limited", nil)
		return FallbackMessage
	}
	if c.apiKey == "" {
		c.fallback("not_configured", nil)
		return FallbackMessage
	}

	answer, err := c.generate(ctx, prompt)
	if err != nil {
		c.fallback("upstream", err)
		return FallbackMessage
	}
	return answer
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemPreamble}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			MaxOutputTokens: c.maxTokens,
			Temperature:     c.temperature,
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty completion")
	}
	answer := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if answer == "" {
		return "", fmt.Errorf("empty completion")
	}
	return answer, nil
}

func (c *Client) fallback(reason string, err error) {
	c.metrics.AssistantFallback()
	c.logger.Warn("Assistant fallback",
		zap.String("reason", reason),
		zap.Error(err),
	)
}
