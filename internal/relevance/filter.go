package relevance

import (
	"context"
	"strings"

	"leadscout/internal/llm"
	"leadscout/internal/util"
)

// Filter pre-screens candidate posts before deeper analysis. It is biased
// toward keeping posts: dropping a real lead costs more than analyzing one
// extra irrelevant post, so every failure mode answers "relevant".
type Filter struct {
	gw llm.Gateway
}

func New(gw llm.Gateway) *Filter {
	return &Filter{gw: gw}
}

var affirmative = []string{"yes", "relevant", "true"}

// IsRelevant judges whether a post title is on-topic for the product.
// An empty product description disables the filter entirely.
func (f *Filter) IsRelevant(ctx context.Context, postTitle, productDescription string) bool {
	if strings.TrimSpace(productDescription) == "" {
		return true
	}
	prompt := "Post title: " + postTitle + "\n" +
		"Product: " + productDescription + "\n\n" +
		"Is this post relevant? Answer YES only if all three hold:\n" +
		"1. The post topic relates to the product's area.\n" +
		"2. The post is not promoting a competing product.\n" +
		"3. Someone in this post could plausibly be asking about or wanting such a product.\n" +
		"Answer with YES or NO."
	out := f.gw.Complete(ctx, llm.Request{
		Prompt:    prompt,
		System:    "You judge post relevance. Answer with YES or NO only.",
		MaxTokens: 10,
	})
	out = strings.TrimSpace(strings.ToLower(out))
	if out == "" {
		return true // unreachable LLM is not a reason to drop a lead
	}
	if strings.HasPrefix(out, "no") {
		return false
	}
	for _, tok := range affirmative {
		if strings.HasPrefix(out, tok) {
			return true
		}
	}
	if util.ContainsAnyFold(out, affirmative) {
		return true
	}
	return true // unparseable answers default to relevant
}
