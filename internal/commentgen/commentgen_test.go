package commentgen

import (
	"math/rand"
	"strings"
	"testing"
)

func TestDetectDomain(t *testing.T) {
	cases := []struct {
		title, content, want string
	}{
		{"My skincare routine", "", "beauty"},
		{"Weekend trip report", "the hotel was great", "travel"},
		{"New phone thoughts", "", "tech"},
		{"A local guide to the old town", "", "travel"},
		{"Minimalist design ideas", "", "home"},
		{"Random musings", "nothing in particular", DefaultDomain},
		{"", "", DefaultDomain},
	}
	for _, c := range cases {
		if got := DetectDomain(c.title, c.content); got != c.want {
			t.Fatalf("DetectDomain(%q, %q) = %q, want %q", c.title, c.content, got, c.want)
		}
	}
}

func TestRenderNeverEmpty(t *testing.T) {
	e := New(rand.New(rand.NewSource(1)))
	for _, typ := range []CommentType{TypeLeadGen, TypeLike, TypeConsult, TypeProfessional} {
		for i := 0; i < 10; i++ {
			if out := e.Render(typ, "beauty", "alice", "My skincare routine"); out == "" {
				t.Fatalf("empty comment for type %s", typ)
			}
		}
	}
}

func TestRenderUnknownTypeFallsBack(t *testing.T) {
	e := New(rand.New(rand.NewSource(2)))
	out := e.Render(CommentType("bogus"), "tech", "", "New phone thoughts")
	if out == "" {
		t.Fatal("unknown type should render from the default pool")
	}
}

func TestRenderLeadGenAlwaysHasCTA(t *testing.T) {
	e := New(rand.New(rand.NewSource(3)))
	for i := 0; i < 20; i++ {
		out := e.Render(TypeLeadGen, "food", "bob", "Best pasta recipe")
		hasCTA := false
		for _, cta := range ctaEndings {
			if strings.Contains(out, cta) {
				hasCTA = true
				break
			}
		}
		if !hasCTA {
			t.Fatalf("lead_gen comment missing CTA: %q", out)
		}
	}
}

func TestRenderSelectionIsSeeded(t *testing.T) {
	a := New(rand.New(rand.NewSource(9))).Render(TypeConsult, "fitness", "", "Gym advice")
	b := New(rand.New(rand.NewSource(9))).Render(TypeConsult, "fitness", "", "Gym advice")
	if a != b {
		t.Fatalf("same seed gave different comments: %q vs %q", a, b)
	}
}
