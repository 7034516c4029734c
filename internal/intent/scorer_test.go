package intent

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"leadscout/internal/llm"
)

type fakeGW struct{ out string }

func (f fakeGW) Complete(ctx context.Context, req llm.Request) string { return f.out }

type captureGW struct{ prompt *string }

func (c captureGW) Complete(ctx context.Context, req llm.Request) string {
	*c.prompt = req.Prompt
	return "50"
}

func TestScoreUsesModelNumber(t *testing.T) {
	s := New(fakeGW{out: "85"})
	if got := s.Score(context.Background(), "any text", "a product"); got != 85 {
		t.Fatalf("score = %d, want 85", got)
	}
}

func TestScoreParsesNumberOutOfProse(t *testing.T) {
	s := New(fakeGW{out: "The intent score is 42."})
	if got := s.Score(context.Background(), "any text", "a product"); got != 42 {
		t.Fatalf("score = %d, want 42", got)
	}
}

func TestScoreClampsModelOutput(t *testing.T) {
	s := New(fakeGW{out: "150"})
	if got := s.Score(context.Background(), "any text", "a product"); got != 100 {
		t.Fatalf("score = %d, want 100", got)
	}
}

func TestScoreFallsBackWhenModelSilent(t *testing.T) {
	s := New(fakeGW{out: ""})
	got := s.Score(context.Background(), "nothing interesting here", "a product")
	if got != 20 {
		t.Fatalf("score = %d, want heuristic floor 20", got)
	}
}

func TestScoreSampleKeepsRunesWhole(t *testing.T) {
	var prompt string
	s := New(captureGW{prompt: &prompt})
	text := strings.Repeat("世", 600)
	s.Score(context.Background(), text, "a product")
	if !utf8.ValidString(prompt) {
		t.Fatal("prompt contains a split rune")
	}
	if n := strings.Count(prompt, "世"); n != 497 {
		t.Fatalf("sample carries %d runes, want 497", n)
	}
}

func TestHeuristicScoreBounds(t *testing.T) {
	if got := HeuristicScore(""); got != 20 {
		t.Fatalf("empty text = %d, want 20", got)
	}
	loaded := "recommend recommendation need want looking for best which where to buy help me find seeking?"
	if got := HeuristicScore(loaded); got != 100 {
		t.Fatalf("loaded text = %d, want 100", got)
	}
}

func TestHeuristicScoreAccumulates(t *testing.T) {
	// "looking for" and the question mark: 15 + 10.
	if got := HeuristicScore("looking for a new phone?"); got != 25 {
		t.Fatalf("score = %d, want 25", got)
	}
}
