package relevance

import (
	"context"
	"testing"

	"leadscout/internal/llm"
)

type fakeGW struct{ out string }

func (f fakeGW) Complete(ctx context.Context, req llm.Request) string { return f.out }

func TestIsRelevantNo(t *testing.T) {
	f := New(fakeGW{out: "NO"})
	if f.IsRelevant(context.Background(), "cat pictures", "gaming laptop") {
		t.Fatal("NO answer should drop the post")
	}
}

func TestIsRelevantYes(t *testing.T) {
	f := New(fakeGW{out: "Yes, definitely relevant."})
	if !f.IsRelevant(context.Background(), "laptop advice", "gaming laptop") {
		t.Fatal("YES answer should keep the post")
	}
}

func TestIsRelevantKeepsOnSilence(t *testing.T) {
	f := New(fakeGW{out: ""})
	if !f.IsRelevant(context.Background(), "laptop advice", "gaming laptop") {
		t.Fatal("unreachable model should keep the post")
	}
}

func TestIsRelevantKeepsOnGarbage(t *testing.T) {
	f := New(fakeGW{out: "as an assistant I think maybe"})
	if !f.IsRelevant(context.Background(), "laptop advice", "gaming laptop") {
		t.Fatal("unparseable answer should keep the post")
	}
}

func TestIsRelevantEmptyProductDisablesFilter(t *testing.T) {
	f := New(fakeGW{out: "NO"})
	if !f.IsRelevant(context.Background(), "anything", "   ") {
		t.Fatal("empty product description should disable the filter")
	}
}
