package commentgen

import (
	"math/rand"
	"strings"
)

// CommentType selects which template pool a comment is drawn from.
type CommentType string

const (
	TypeLeadGen      CommentType = "lead_gen"
	TypeLike         CommentType = "like"
	TypeConsult      CommentType = "consult"
	TypeProfessional CommentType = "professional"
)

// DefaultDomain is used when no domain keyword matches the post text.
const DefaultDomain = "lifestyle"

// domainKeywords maps a content domain to the substrings that identify it.
// The first matching domain in iteration order wins, so the table is kept as
// an ordered slice.
var domainKeywords = []struct {
	domain   string
	keywords []string
}{
	{"beauty", []string{"makeup", "cosmetics", "skincare", "beauty", "lipstick", "foundation", "moisturizer"}},
	{"fashion", []string{"fashion", "outfit", "style", "clothing", "wardrobe", "trend"}},
	{"food", []string{"food", "recipe", "restaurant", "cooking", "baking", "cuisine"}},
	{"travel", []string{"travel", "trip", "destination", "vacation", "hotel", "guide"}},
	{"parenting", []string{"baby", "parenting", "children", "toddler", "toys"}},
	{"tech", []string{"tech", "phone", "computer", "camera", "smart", "device"}},
	{"home", []string{"home", "decor", "furniture", "interior", "design"}},
	{"fitness", []string{"fitness", "workout", "exercise", "training", "gym"}},
}

// domainTerms adds a jargon clause to professional comments half the time.
var domainTerms = map[string][]string{
	"beauty":    {"finish", "texture", "pigmentation", "longevity", "application"},
	"fashion":   {"fit", "cut", "silhouette", "layering", "color palette"},
	"food":      {"flavor", "texture", "technique", "temperature", "seasoning"},
	"travel":    {"itinerary", "guide", "experience", "local culture", "hidden spots"},
	"parenting": {"early education", "development", "nutrition", "interaction"},
	"tech":      {"performance", "experience", "specs", "compatibility", "efficiency"},
	"home":      {"space planning", "lighting", "color scheme", "functional areas"},
	"fitness":   {"training plan", "sets", "intensity", "recovery", "metabolism"},
}

var ctaEndings = []string{
	"Feel free to DM me if you have more questions~",
	"Check out my profile if you're interested",
	"DM me if you want to know more",
	"Follow me for more related content",
	"DM me for surprises~",
}

// DetectDomain picks the content domain for a post by scanning title and body
// for domain keywords, case-insensitive. Falls back to DefaultDomain.
func DetectDomain(title, content string) string {
	text := strings.ToLower(title + " " + content)
	for _, d := range domainKeywords {
		for _, kw := range d.keywords {
			if strings.Contains(text, kw) {
				return d.domain
			}
		}
	}
	return DefaultDomain
}

// Engine renders promotional comments from fixed template pools. It never
// calls an LLM; selection is uniform random over the pool for the requested
// type.
type Engine struct {
	rng *rand.Rand
}

// New builds an Engine. Pass a seeded rng in tests to pin template selection.
func New(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Engine{rng: rng}
}

// Render produces a comment of the requested type for the given domain.
// Unknown types silently fall back to lead_gen.
func (e *Engine) Render(commentType CommentType, domain, author, title string) string {
	pool := e.templates(commentType, domain, author, title)
	if pool == nil {
		commentType = TypeLeadGen
		pool = e.templates(commentType, domain, author, title)
	}
	out := pool[e.rng.Intn(len(pool))]

	if commentType == TypeProfessional {
		if terms, ok := domainTerms[domain]; ok && e.rng.Float64() > 0.5 {
			out += ", especially insights on " + terms[e.rng.Intn(len(terms))] + " are unique"
		}
	}
	if commentType == TypeLeadGen || (commentType == TypeConsult && e.rng.Float64() > 0.7) {
		out += " " + ctaEndings[e.rng.Intn(len(ctaEndings))]
	}
	return out
}

func (e *Engine) templates(commentType CommentType, domain, author, title string) []string {
	switch commentType {
	case TypeLeadGen:
		second := "Thanks for sharing! I've also compiled some related materials, interested to chat?"
		if author != "" {
			second = "Thanks for sharing, " + author + "'s insights are unique! I've also compiled some related materials, interested to chat?"
		}
		return []string{
			"This " + domain + " share is great! I'm also researching related content, feel free to DM me~",
			second,
			"Your share is very insightful! I've written similar content, feel free to reach out",
			"Really like your sharing style! I also do " + domain + " related content, we can follow each other",
			"Totally relate! I've encountered similar situations, DM me if you want to know more",
			"This post has so much info! Saved it, we can discuss if you have questions~",
		}
	case TypeLike:
		first := "Awesome! This is so practical"
		second := "I learn something new every time, keep it up!"
		if author != "" {
			first = "Awesome! " + author + "'s shares are always so practical"
			second = "Every time I see " + author + "'s shares I learn something, keep it up!"
		}
		return []string{
			first,
			second,
			"This content is super detailed, learned a lot, thanks for sharing!",
			"Love this in-depth share, much more meaningful than typical " + domain + " posts",
			"Saved and upvoted, very valuable reference",
			"This kind of high-quality content is rare, thanks for sharing",
		}
	case TypeConsult:
		fourth := "Very inspiring! How did you reach such a professional level?"
		if author != "" {
			fourth = "Very inspiring, would like to ask " + author + ", how did you reach such a professional level?"
		}
		return []string{
			"Hey OP, any beginner tips for " + domain + "?",
			"This " + domain + " technique looks practical, is it suitable for beginners?",
			"OP's shared experience is so valuable, can you elaborate on how you got started?",
			fourth,
			"Very interested in this field, any recommended learning resources to share?",
			"OP's insights are unique, could you share your learning path?",
		}
	case TypeProfessional:
		topic := "this"
		if title != "" {
			topic = title
			if r := []rune(topic); len(r) > 10 {
				topic = string(r[:10])
			}
		}
		return []string{
			"As a " + domain + " practitioner, I agree with OP's points, especially about " + topic,
			"From a professional perspective, this share covers key points, I'd like to add...",
			"This analysis is spot on, I've found similar patterns in practice, totally agree",
			"Very professional share! I've been in related work for years, these methods really work",
			"The depth of this content is impressive, shows OP's professional expertise",
			"From a technical perspective, the methods OP shared are very feasible, worth trying",
		}
	}
	return nil
}
