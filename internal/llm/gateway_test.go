package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"leadscout/internal/config"
)

func withFakeDo(t *testing.T, do func(req *http.Request) (*http.Response, error)) {
	t.Helper()
	prev := httpDo
	httpDo = do
	t.Cleanup(func() { httpDo = prev })
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestCompleteOpenAI(t *testing.T) {
	var gotAuth string
	withFakeDo(t, func(req *http.Request) (*http.Response, error) {
		gotAuth = req.Header.Get("Authorization")
		return jsonResponse(200, `{"choices":[{"message":{"content":"hello there"}}]}`), nil
	})
	c := New(config.LLMConfig{Provider: "openai", APIKey: "sk-test", Model: "gpt-4o-mini"})
	out := c.Complete(context.Background(), Request{Prompt: "hi"})
	if out != "hello there" {
		t.Fatalf("got %q", out)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("auth header %q", gotAuth)
	}
}

func TestCompleteFailsSoftOnTransportError(t *testing.T) {
	withFakeDo(t, func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})
	c := New(config.LLMConfig{Provider: "openai", APIKey: "sk-test"})
	if out := c.Complete(context.Background(), Request{Prompt: "hi"}); out != "" {
		t.Fatalf("want empty on transport error, got %q", out)
	}
}

func TestCompleteFailsSoftOnHTTPError(t *testing.T) {
	withFakeDo(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(429, `{"error":"rate limited"}`), nil
	})
	c := New(config.LLMConfig{Provider: "openai", APIKey: "sk-test"})
	if out := c.Complete(context.Background(), Request{Prompt: "hi"}); out != "" {
		t.Fatalf("want empty on 429, got %q", out)
	}
}

func TestCompleteNoneProvider(t *testing.T) {
	withFakeDo(t, func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected for provider none")
		return nil, nil
	})
	c := New(config.LLMConfig{Provider: "none"})
	if out := c.Complete(context.Background(), Request{Prompt: "hi"}); out != "" {
		t.Fatalf("got %q", out)
	}
}

func TestCompleteAnthropicHeaders(t *testing.T) {
	var gotKey, gotVersion string
	withFakeDo(t, func(req *http.Request) (*http.Response, error) {
		gotKey = req.Header.Get("x-api-key")
		gotVersion = req.Header.Get("anthropic-version")
		return jsonResponse(200, `{"content":[{"type":"text","text":"ok then"}]}`), nil
	})
	c := New(config.LLMConfig{Provider: "anthropic", APIKey: "ak-test"})
	out := c.Complete(context.Background(), Request{Prompt: "hi", System: "sys"})
	if out != "ok then" {
		t.Fatalf("got %q", out)
	}
	if gotKey != "ak-test" || gotVersion == "" {
		t.Fatalf("headers key=%q version=%q", gotKey, gotVersion)
	}
}

func TestOllamaRequiresBaseURL(t *testing.T) {
	withFakeDo(t, func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected without base url")
		return nil, nil
	})
	c := New(config.LLMConfig{Provider: "ollama"})
	if out := c.Complete(context.Background(), Request{Prompt: "hi"}); out != "" {
		t.Fatalf("got %q", out)
	}
}
