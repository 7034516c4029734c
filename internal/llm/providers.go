package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// --- light http hooks (decoupled for testability) ---

var httpNewRequest = defaultNewRequest
var httpDo = defaultDo

func defaultNewRequest(ctx context.Context, method, u string, body []byte) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, method, u, bytes.NewReader(body))
}

func defaultDo(req *http.Request) (*http.Response, error) {
	client := &http.Client{}
	return client.Do(req)
}

// completeOpenAI talks to the OpenAI chat completions API, or any
// OpenAI-compatible server (ollama) when a base URL is configured.
func (c *Client) completeOpenAI(ctx context.Context, req Request) (string, error) {
	base := c.baseURL
	key := c.apiKey
	if c.provider == "openai" {
		if base == "" {
			base = "https://api.openai.com/v1"
		}
		if key == "" {
			return "", errors.New("missing api key")
		}
	} else if base == "" {
		return "", errors.New("missing ollama base url")
	}
	if key == "" {
		key = "ollama" // ollama ignores the key but requires a value
	}
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	var msgs []message
	if req.System != "" {
		msgs = append(msgs, message{Role: "system", Content: req.System})
	}
	msgs = append(msgs, message{Role: "user", Content: req.Prompt})
	payload, err := json.Marshal(map[string]any{
		"model":       c.model,
		"messages":    msgs,
		"max_tokens":  req.MaxTokens,
		"temperature": 0.7,
	})
	if err != nil {
		return "", err
	}
	hreq, err := httpNewRequest(ctx, http.MethodPost, base+"/chat/completions", payload)
	if err != nil {
		return "", err
	}
	hreq.Header.Set("Authorization", "Bearer "+key)
	hreq.Header.Set("Content-Type", "application/json")
	resp, err := httpDo(hreq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("openai status %d", resp.StatusCode)
	}
	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Choices) == 0 {
		return "", errors.New("empty choices")
	}
	return raw.Choices[0].Message.Content, nil
}

// completeGemini talks to the Gemini generateContent API. Gemini has no
// separate system slot, so the system prompt is prepended.
func (c *Client) completeGemini(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("missing api key")
	}
	model := c.model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	full := req.Prompt
	if req.System != "" {
		full = req.System + "\n\n" + req.Prompt
	}
	payload, err := json.Marshal(map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": full}}},
		},
	})
	if err != nil {
		return "", err
	}
	u := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		url.PathEscape(model), url.QueryEscape(c.apiKey))
	hreq, err := httpNewRequest(ctx, http.MethodPost, u, payload)
	if err != nil {
		return "", err
	}
	hreq.Header.Set("Content-Type", "application/json")
	resp, err := httpDo(hreq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("gemini status %d", resp.StatusCode)
	}
	var raw struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Candidates) == 0 || len(raw.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty candidates")
	}
	return raw.Candidates[0].Content.Parts[0].Text, nil
}

// completeAnthropic talks to the Anthropic messages API.
func (c *Client) completeAnthropic(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("missing api key")
	}
	model := c.model
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}
	body := map[string]any{
		"model":      model,
		"max_tokens": req.MaxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
	}
	if req.System != "" {
		body["system"] = req.System
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	hreq, err := httpNewRequest(ctx, http.MethodPost, "https://api.anthropic.com/v1/messages", payload)
	if err != nil {
		return "", err
	}
	hreq.Header.Set("x-api-key", c.apiKey)
	hreq.Header.Set("anthropic-version", "2023-06-01")
	hreq.Header.Set("Content-Type", "application/json")
	resp, err := httpDo(hreq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("anthropic status %d", resp.StatusCode)
	}
	var raw struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Content) == 0 {
		return "", errors.New("empty content")
	}
	return raw.Content[0].Text, nil
}
