package match

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"leadscout/internal/keywords"
	"leadscout/internal/llm"
	"leadscout/internal/model"
	"leadscout/internal/util"
)

// needPhrases signal that the commenter is asking for something.
var needPhrases = []string{
	"need", "want", "looking for", "where can i buy", "where to buy",
	"any recommendation", "recommend", "suggest", "help me find", "searching for",
}

// exclusionPhrases override every other signal and force the score to zero.
var exclusionPhrases = []string{
	"already have", "already bought", "already own", "not interested",
	"no need", "don't need", "not looking",
}

// needsProductThreshold is the score at which a comment is judged to want
// the product.
const needsProductThreshold = 40

// Analyzer judges reply eligibility of a comment against a product. It is a
// different scoring function from the intent scorer: its output is a binary
// gate plus an audit reason, not a ranking signal.
type Analyzer struct {
	gw llm.Gateway
}

func New(gw llm.Gateway) *Analyzer {
	return &Analyzer{gw: gw}
}

var braceBlock = regexp.MustCompile(`(?s)\{.*?\}`)

// Match scores a comment against the product. The LLM path asks for a JSON
// object and scans the response for the first brace-delimited block; anything
// unparseable falls through to HeuristicMatch.
func (a *Analyzer) Match(ctx context.Context, commentText, productDescription string) model.MatchResult {
	prompt := "Product: " + productDescription + "\n" +
		"Comment: " + commentText + "\n\n" +
		"Judge whether the commenter might want this product. Respond with a JSON object:\n" +
		`{"match_score": <0-100>, "needs_product": <true|false>, "reason": "<one sentence>"}`
	out := a.gw.Complete(ctx, llm.Request{
		Prompt:    prompt,
		System:    "You analyze whether a comment expresses a need matching a product. Respond with JSON only.",
		MaxTokens: 150,
	})
	if block := braceBlock.FindString(out); block != "" {
		var raw struct {
			MatchScore   float64 `json:"match_score"`
			NeedsProduct bool    `json:"needs_product"`
			Reason       string  `json:"reason"`
		}
		if err := json.Unmarshal([]byte(block), &raw); err == nil {
			return model.MatchResult{
				Score:        util.ClampFloat(raw.MatchScore, 0, 100),
				NeedsProduct: raw.NeedsProduct,
				Reason:       raw.Reason,
			}
		}
	}
	return HeuristicMatch(commentText, productDescription)
}

// HeuristicMatch is the deterministic fallback. It is a pure function of its
// inputs: +30 for a need phrase, +20 per matched product keyword, +10 when the
// comment length sits in [10,200] characters; any exclusion phrase forces the
// score to exactly 0 regardless of other signals.
func HeuristicMatch(commentText, productDescription string) model.MatchResult {
	lower := strings.ToLower(commentText)
	if util.ContainsAnyFold(commentText, exclusionPhrases) {
		return model.MatchResult{
			Score:        0,
			NeedsProduct: false,
			Reason:       "exclusion phrase present",
		}
	}
	score := 0.0
	var reasons []string
	if util.ContainsAnyFold(commentText, needPhrases) {
		score += 30
		reasons = append(reasons, "need expression")
	}
	var matched []string
	for _, kw := range strings.Fields(keywords.Extract(productDescription, 2)) {
		if strings.Contains(lower, kw) {
			score += 20
			matched = append(matched, kw)
		}
	}
	if len(matched) > 0 {
		reasons = append(reasons, "product keywords: "+strings.Join(matched, " "))
	}
	if n := len(commentText); n >= 10 && n <= 200 {
		score += 10
		reasons = append(reasons, "conversational length")
	}
	score = util.ClampFloat(score, 0, 100)
	reason := strings.Join(reasons, "; ")
	if reason == "" {
		reason = "no matching signals"
	}
	return model.MatchResult{
		Score:           score,
		NeedsProduct:    score >= needsProductThreshold,
		Reason:          reason,
		MatchedKeywords: matched,
	}
}
