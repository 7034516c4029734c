package util

import (
	"reflect"
	"testing"
)

func TestNormalizeWhitespace(t *testing.T) {
	if got := NormalizeWhitespace("  a\t b\n\nc  "); got != "a b c" {
		t.Fatalf("got %q", got)
	}
}

func TestContainsAnyFold(t *testing.T) {
	if !ContainsAnyFold("I ALREADY HAVE one", []string{"already have"}) {
		t.Fatal("case-folded hit missed")
	}
	if ContainsAnyFold("nothing here", []string{"already have"}) {
		t.Fatal("false positive")
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Hello, world! (really)")
	if !reflect.DeepEqual(got, []string{"hello", "world", "really"}) {
		t.Fatalf("got %v", got)
	}
}

func TestFirstInt(t *testing.T) {
	if n, ok := FirstInt("score: 85 out of 100"); !ok || n != 85 {
		t.Fatalf("got %d %v", n, ok)
	}
	if _, ok := FirstInt("no digits"); ok {
		t.Fatal("expected no match")
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	got := TruncateRunes("abcdefghij", 8)
	if got != "abcde..." || len([]rune(got)) != 8 {
		t.Fatalf("got %q", got)
	}
	// multibyte runes count as one
	if got := TruncateRunes("ééééé", 5); got != "ééééé" {
		t.Fatalf("got %q", got)
	}
}

func TestStripWrappingQuotes(t *testing.T) {
	if got := StripWrappingQuotes(`  "hello"  `); got != "hello" {
		t.Fatalf("got %q", got)
	}
	if got := StripWrappingQuotes(`'hi'`); got != "hi" {
		t.Fatalf("got %q", got)
	}
	if got := StripWrappingQuotes(`"unbalanced'`); got != `"unbalanced'` {
		t.Fatalf("got %q", got)
	}
}

func TestClamp(t *testing.T) {
	if ClampInt(150, 0, 100) != 100 || ClampInt(-5, 0, 100) != 0 || ClampInt(50, 0, 100) != 50 {
		t.Fatal("ClampInt wrong")
	}
	if ClampFloat(1.5, 0, 1) != 1 || ClampFloat(-0.1, 0, 1) != 0 {
		t.Fatal("ClampFloat wrong")
	}
}
