package intent

import (
	"context"
	"strings"

	"leadscout/internal/llm"
	"leadscout/internal/util"
)

// intentPhrases are spotted by the heuristic path. Each hit adds 15 points.
var intentPhrases = []string{
	"recommend", "recommendation", "need", "want", "looking for", "best",
	"which", "where to buy", "help me find", "seeking", "searching for",
}

// Scorer assigns a 0-100 purchase-intent score to a piece of text relative to
// a product description.
type Scorer struct {
	gw llm.Gateway
}

func New(gw llm.Gateway) *Scorer {
	return &Scorer{gw: gw}
}

// Score asks the LLM for a numeric score and clamps it to [0,100]. When no
// parseable number comes back it falls through to HeuristicScore, which
// bottoms out at 20 rather than 0: absent keywords do not prove absent
// intent, so the degraded path carries a confidence discount, not a zero.
func (s *Scorer) Score(ctx context.Context, text, productDescription string) int {
	sample := util.TruncateRunes(text, 500)
	prompt := "Analyze the following text and determine the purchase intent score (0-100) for this product:\n\n" +
		"Product: " + productDescription + "\n\n" +
		"Text to analyze: " + sample + "\n\n" +
		"Respond with ONLY a number between 0 and 100 representing the intent score. " +
		"Higher scores indicate stronger purchase intent."
	out := s.gw.Complete(ctx, llm.Request{
		Prompt:    prompt,
		System:    "You are an expert at analyzing purchase intent. Respond with only a number.",
		MaxTokens: 10,
	})
	if n, ok := util.FirstInt(out); ok {
		return util.ClampInt(n, 0, 100)
	}
	return HeuristicScore(text)
}

// HeuristicScore is the deterministic fallback: +15 per spotted intent
// phrase, +10 for a question mark, clamped to [20,100].
func HeuristicScore(text string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, kw := range intentPhrases {
		if strings.Contains(lower, kw) {
			score += 15
		}
	}
	if strings.Contains(text, "?") {
		score += 10
	}
	return util.ClampInt(score, 20, 100)
}
