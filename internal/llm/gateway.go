package llm

import (
	"context"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"leadscout/internal/config"
	"leadscout/internal/logging"
	"leadscout/internal/metrics"
)

// Request is one text-completion call.
type Request struct {
	Prompt    string
	System    string
	MaxTokens int
}

// Gateway is the uniform text-in/text-out contract every scoring and
// generation step depends on. Implementations fail soft: any transport or
// provider error yields an empty string, so every caller needs a fallback
// path. No retries happen here.
type Gateway interface {
	Complete(ctx context.Context, req Request) string
}

// Client normalizes the configured provider into the Gateway contract.
// The provider is selected once at construction.
type Client struct {
	provider  string
	model     string
	apiKey    string
	baseURL   string
	maxTokens int
	limiter   *rate.Limiter
}

// New builds a Client from config. Unknown providers behave like "none".
func New(cfg config.LLMConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}
	return &Client{
		provider:  strings.ToLower(cfg.Provider),
		model:     cfg.Model,
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		maxTokens: maxTokens,
		limiter:   rate.NewLimiter(rate.Limit(rps), 4),
	}
}

// Complete runs one completion. Returns "" on any failure.
func (c *Client) Complete(ctx context.Context, req Request) string {
	if c.provider == "" || c.provider == "none" {
		return ""
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = c.maxTokens
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return ""
	}
	metrics.LLMCalls.WithLabelValues(c.provider).Inc()
	start := time.Now()
	var text string
	var err error
	switch c.provider {
	case "openai", "ollama":
		text, err = c.completeOpenAI(ctx, req)
	case "gemini":
		text, err = c.completeGemini(ctx, req)
	case "anthropic":
		text, err = c.completeAnthropic(ctx, req)
	default:
		return ""
	}
	if err != nil {
		metrics.LLMErrors.WithLabelValues(c.provider).Inc()
		logging.Warn("llm_call_failed", map[string]any{
			"provider": c.provider,
			"error":    err.Error(),
			"elapsed":  time.Since(start).String(),
		})
		return ""
	}
	return strings.TrimSpace(text)
}
