package reply

import (
	"context"
	"math/rand"

	"leadscout/internal/llm"
	"leadscout/internal/util"
)

// maxReplyRunes caps generated replies; anything longer is truncated with an
// ellipsis.
const maxReplyRunes = 100

// Generator produces short, natural-sounding replies to matched comments.
type Generator struct {
	gw  llm.Gateway
	rng *rand.Rand
}

// New builds a Generator. rng drives fallback template selection; pass a
// seeded source in tests to make selection exact.
func New(gw llm.Gateway, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Generator{gw: gw, rng: rng}
}

// Generate drafts a reply to commentText conditioned on the product. The LLM
// draft is post-processed (quotes stripped, truncated, too-short drafts
// rejected); any rejection falls through to a template.
func (g *Generator) Generate(ctx context.Context, commentText, productDescription, username string) string {
	salutation := ""
	if username != "" {
		salutation = "You may address the commenter as " + username + ". "
	}
	prompt := "Comment: " + commentText + "\n" +
		"Product context: " + productDescription + "\n\n" +
		"Write a short reply to this comment. Requirements:\n" +
		"- Natural, friendly, conversational tone, like a regular community member.\n" +
		"- Do NOT sound promotional. Never use words like discount, promotion, or limited-time.\n" +
		"- Gently hint they can message you privately for details.\n" +
		"- Under 100 characters. " + salutation + "\n" +
		"Respond with the reply text only."
	out := g.gw.Complete(ctx, llm.Request{
		Prompt:    prompt,
		System:    "You write brief, helpful social media replies. Output the reply text only.",
		MaxTokens: 80,
	})
	out = util.StripWrappingQuotes(out)
	out = util.NormalizeWhitespace(out)
	if len([]rune(out)) < 5 {
		return g.template(commentText, productDescription, username)
	}
	return util.TruncateRunes(out, maxReplyRunes)
}

func (g *Generator) template(commentText, productDescription, username string) string {
	excerpt := util.TruncateRunes(productDescription, 30)
	var pool []string
	if username != "" {
		pool = []string{
			"Hey " + username + ", I had the same question about " + excerpt + ", DM me, happy to share",
			username + " I found something for " + excerpt + " that worked for me, message me if curious",
			"Hi " + username + "! Been through this too, feel free to DM me about " + excerpt,
		}
	} else {
		pool = []string{
			"I had the same question about " + excerpt + ", DM me, happy to share what I found",
			"Found something for " + excerpt + " that worked for me, message me if you're curious",
			"Been through this too, feel free to DM me about " + excerpt,
		}
	}
	return util.TruncateRunes(pool[g.rng.Intn(len(pool))], maxReplyRunes)
}
