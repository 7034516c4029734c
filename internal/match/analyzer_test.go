package match

import (
	"context"
	"reflect"
	"testing"

	"leadscout/internal/llm"
)

type fakeGW struct{ out string }

func (f fakeGW) Complete(ctx context.Context, req llm.Request) string { return f.out }

func TestMatchParsesModelJSON(t *testing.T) {
	a := New(fakeGW{out: `Here you go: {"match_score": 72, "needs_product": true, "reason": "wants one"}`})
	res := a.Match(context.Background(), "any comment", "face cream")
	if res.Score != 72 || !res.NeedsProduct || res.Reason != "wants one" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestMatchClampsModelScore(t *testing.T) {
	a := New(fakeGW{out: `{"match_score": 250, "needs_product": true, "reason": "x"}`})
	if res := a.Match(context.Background(), "c", "p"); res.Score != 100 {
		t.Fatalf("score = %v, want 100", res.Score)
	}
}

func TestMatchFallsBackOnGarbage(t *testing.T) {
	a := New(fakeGW{out: "I cannot answer that"})
	res := a.Match(context.Background(), "I'm looking for a good face cream", "organic face cream for sensitive skin")
	want := HeuristicMatch("I'm looking for a good face cream", "organic face cream for sensitive skin")
	if !reflect.DeepEqual(res, want) {
		t.Fatalf("fallback mismatch: got %+v want %+v", res, want)
	}
}

func TestHeuristicMatchExclusionWins(t *testing.T) {
	// Mixed signals: a need phrase, product keywords, a question mark.
	// The exclusion phrase still forces exactly zero.
	res := HeuristicMatch("I already have this and love it, where can I buy more?", "face cream")
	if res.Score != 0 {
		t.Fatalf("score = %v, want 0", res.Score)
	}
	if res.NeedsProduct {
		t.Fatal("needs_product should be false under exclusion")
	}
}

func TestHeuristicMatchAccumulates(t *testing.T) {
	res := HeuristicMatch("I'm looking for a good face cream", "organic face cream for sensitive skin")
	// need phrase 30, keywords face+cream 40, length 10.
	if res.Score != 80 {
		t.Fatalf("score = %v, want 80", res.Score)
	}
	if !res.NeedsProduct {
		t.Fatal("needs_product should be true at 80")
	}
	if len(res.MatchedKeywords) != 2 {
		t.Fatalf("matched keywords = %v", res.MatchedKeywords)
	}
}

func TestHeuristicMatchIsPure(t *testing.T) {
	a := HeuristicMatch("need a new laptop", "gaming laptop")
	b := HeuristicMatch("need a new laptop", "gaming laptop")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated calls differ: %+v vs %+v", a, b)
	}
}

func TestHeuristicMatchNoSignals(t *testing.T) {
	res := HeuristicMatch("ok", "telescope kit")
	if res.Score != 0 || res.NeedsProduct {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Reason != "no matching signals" {
		t.Fatalf("reason = %q", res.Reason)
	}
}
