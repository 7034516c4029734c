package platform

import (
	"strings"
	"testing"
)

func TestMatchesCommentEitherDirection(t *testing.T) {
	full := "I really need a good face cream, any tips appreciated"
	if !MatchesComment(full, "need a good face cream") {
		t.Fatal("target inside page text should match")
	}
	if !MatchesComment("need a good face cream", full) {
		t.Fatal("page text inside target should match")
	}
	if MatchesComment(full, "completely different") {
		t.Fatal("unrelated text should not match")
	}
}

func TestMatchesCommentCaseFolds(t *testing.T) {
	if !MatchesComment("NEED A GOOD Face Cream today", "need a good face cream") {
		t.Fatal("matching should be case-insensitive")
	}
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry(NewReddit(nil))
	p, err := r.Get("reddit")
	if err != nil || p.Name() != "reddit" {
		t.Fatalf("Get(reddit) = %v, %v", p, err)
	}
	if _, err := r.Get("myspace"); err == nil {
		t.Fatal("unknown platform should error")
	} else if !strings.Contains(err.Error(), "reddit") {
		t.Fatalf("error should list available platforms: %v", err)
	}
}
