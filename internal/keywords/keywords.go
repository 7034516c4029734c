package keywords

import (
	"context"
	"regexp"
	"strings"

	"leadscout/internal/llm"
)

// stopWords are filler tokens dropped by the fallback extractor.
var stopWords = map[string]bool{
	"product": true, "description": true, "suitable": true, "can": true,
	"able": true, "has": true, "provide": true, "include": true, "contain": true,
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"for": true, "with": true, "from": true, "this": true, "that": true,
	"these": true, "those": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "being": true, "have": true,
	"had": true, "having": true,
}

var wordRe = regexp.MustCompile(`\w+`)

// Generate derives search keywords from a product description. The LLM path
// is preferred; anything unusable falls back to Extract.
func Generate(ctx context.Context, gw llm.Gateway, productDescription string) string {
	prompt := "Generate 3-5 short search keywords for finding social media posts " +
		"where people might want this product. Respond with only the keywords " +
		"separated by spaces, no explanation.\n\nProduct: " + productDescription
	out := gw.Complete(ctx, llm.Request{
		Prompt:    prompt,
		System:    "You generate concise search keywords. Respond with keywords only.",
		MaxTokens: 60,
	})
	out = Clean(out)
	if out == "" {
		return Extract(productDescription, 2)
	}
	return out
}

// Clean normalizes raw keyword text: strips wrapping quotes, turns commas
// into spaces, collapses runs of whitespace.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	if len(text) >= 2 {
		if (text[0] == '"' && text[len(text)-1] == '"') || (text[0] == '\'' && text[len(text)-1] == '\'') {
			text = text[1 : len(text)-1]
		}
	}
	text = strings.ReplaceAll(text, ",", " ")
	text = strings.ReplaceAll(text, "，", " ")
	return strings.Join(strings.Fields(text), " ")
}

// Extract is the deterministic fallback: the first five non-stop-word tokens
// of at least minLength characters. A short text prefix is the last resort so
// the result is never empty for non-empty input.
func Extract(text string, minLength int) string {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	var keywords []string
	for _, w := range words {
		if stopWords[w] || len(w) < minLength {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) == 5 {
			break
		}
	}
	if len(keywords) > 0 {
		return strings.Join(keywords, " ")
	}
	if len(text) > 20 {
		text = text[:20]
	}
	return strings.TrimSpace(text)
}
