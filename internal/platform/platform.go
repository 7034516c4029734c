package platform

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"leadscout/internal/model"
)

// Platform is the capability a forum site exposes to the pipeline. The
// orchestrator depends on nothing below this: search, content, comments, and
// the two outbound actions.
type Platform interface {
	Name() string
	BaseURL() string
	// Login drives the interactive login flow and returns a user-facing
	// status message.
	Login(ctx context.Context) (string, error)
	// LoggedIn is the best-effort authentication check used as the promote
	// flow precondition.
	LoggedIn(ctx context.Context) bool
	SearchPosts(ctx context.Context, keywords string, limit int) ([]model.CandidatePost, error)
	GetPostContent(ctx context.Context, url string) (model.PostContent, error)
	GetPostComments(ctx context.Context, url string) ([]model.Comment, error)
	// PostComment posts a top-level comment and returns an outcome message.
	PostComment(ctx context.Context, url, text string) (string, error)
	// ReplyToComment locates the comment whose content matches by substring
	// containment (either direction, case-folded) and replies to it.
	ReplyToComment(ctx context.Context, url, commentContent, replyText string) (string, error)
}

// Registry maps platform names to implementations. It is built explicitly by
// the caller; there is no hidden registration.
type Registry struct {
	platforms map[string]Platform
}

func NewRegistry(platforms ...Platform) *Registry {
	m := make(map[string]Platform, len(platforms))
	for _, p := range platforms {
		m[strings.ToLower(p.Name())] = p
	}
	return &Registry{platforms: m}
}

// Get returns the named platform or an error listing what is available.
func (r *Registry) Get(name string) (Platform, error) {
	p, ok := r.platforms[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("platform %q is not supported; available: %s", name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Names returns the registered platform names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.platforms))
	for n := range r.platforms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MatchesComment reports whether an on-page comment text addresses the target
// content. Comments have no stable IDs, so identity is substring containment
// in either direction, case-folded. Overlapping comments are ambiguous under
// this scheme; the first match wins.
func MatchesComment(pageText, target string) bool {
	a := strings.ToLower(strings.TrimSpace(pageText))
	b := strings.ToLower(strings.TrimSpace(target))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
