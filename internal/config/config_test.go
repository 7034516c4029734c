package config

import (
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Platform.Name != "reddit" {
		t.Fatalf("platform = %q", cfg.Platform.Name)
	}
	if cfg.Analysis.MaxPosts != 5 || cfg.Analysis.CommentsPerPost != 10 || cfg.Analysis.MinCommentScore != 40 {
		t.Fatalf("analysis defaults: %+v", cfg.Analysis)
	}
	if cfg.Promotion.MinMatchScore != 40 {
		t.Fatalf("promotion defaults: %+v", cfg.Promotion)
	}
	if cfg.Browser.Headless {
		t.Fatal("browser should default to headful for manual login")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "leadscout.yaml")
	want := Default()
	want.LLM.Provider = "openai"
	want.LLM.Model = "gpt-4o-mini"
	want.Promotion.MaxRepliesPerHour = 7
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.LLM.Provider != "openai" || got.LLM.Model != "gpt-4o-mini" {
		t.Fatalf("llm config lost: %+v", got.LLM)
	}
	if got.Promotion.MaxRepliesPerHour != 7 {
		t.Fatalf("promotion config lost: %+v", got.Promotion)
	}
}

func TestResolveEnvAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	cfg := Config{LLM: LLMConfig{Provider: "openai"}}
	cfg.ResolveEnv()
	if cfg.LLM.APIKey != "sk-env" {
		t.Fatalf("api key = %q", cfg.LLM.APIKey)
	}
}

func TestResolveEnvKeepsExplicitKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	cfg := Config{LLM: LLMConfig{Provider: "openai", APIKey: "sk-file"}}
	cfg.ResolveEnv()
	if cfg.LLM.APIKey != "sk-file" {
		t.Fatalf("api key = %q", cfg.LLM.APIKey)
	}
}
