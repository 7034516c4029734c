package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application's configuration model.
// It captures the target platform, LLM provider, and pipeline strategy.
type Config struct {
	Platform  PlatformConfig  `yaml:"platform"`
	LLM       LLMConfig       `yaml:"llm"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Promotion PromotionConfig `yaml:"promotion"`
	Browser   BrowserConfig   `yaml:"browser"`
	Storage   StorageConfig   `yaml:"storage"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type PlatformConfig struct {
	// Platform to operate on. Only "reddit" has a full implementation.
	Name string `yaml:"name"`
}

type LLMConfig struct {
	// Provider: "openai", "gemini", "anthropic", "ollama" or "none"
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	// If empty, read from env per provider (OPENAI_API_KEY etc.)
	APIKey string `yaml:"apiKey"`
	// Base URL for OpenAI-compatible servers (ollama). Needs the /v1 path.
	BaseURL   string `yaml:"baseURL"`
	MaxTokens int    `yaml:"maxTokens"`
	// Outbound request pacing
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
}

type AnalysisConfig struct {
	// Max posts taken from a search in the analyze flow
	MaxPosts int `yaml:"maxPosts"`
	// Comments scored per post
	CommentsPerPost int `yaml:"commentsPerPost"`
	// Minimum intent score for a comment to become a lead
	MinCommentScore int `yaml:"minCommentScore"`
}

type PromotionConfig struct {
	MaxPosts      int     `yaml:"maxPosts"`
	MinMatchScore float64 `yaml:"minMatchScore"`
	// Minimum seconds between reply dispatches and between posts.
	// Rate-limiting policy, not correctness; tune per platform tolerance.
	ReplyDelaySeconds int `yaml:"replyDelaySeconds"`
	PostDelaySeconds  int `yaml:"postDelaySeconds"`
	// Outbound reply budgets enforced against the action ledger
	MaxRepliesPerHour int `yaml:"maxRepliesPerHour"`
	MaxRepliesPerDay  int `yaml:"maxRepliesPerDay"`
}

type BrowserConfig struct {
	// Profile directory holding cookies/session; treated as opaque
	UserDataDir string `yaml:"userDataDir"`
	// Non-headless by default so the user can log in by hand
	Headless       bool `yaml:"headless"`
	TimeoutSeconds int  `yaml:"timeoutSeconds"`
}

type StorageConfig struct {
	DBPath string `yaml:"dbPath"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Platform: PlatformConfig{Name: "reddit"},
		LLM: LLMConfig{
			Provider:          "ollama",
			Model:             "",
			BaseURL:           "http://localhost:11434/v1",
			MaxTokens:         500,
			RequestsPerSecond: 2,
		},
		Analysis: AnalysisConfig{MaxPosts: 5, CommentsPerPost: 10, MinCommentScore: 40},
		Promotion: PromotionConfig{
			MaxPosts:          5,
			MinMatchScore:     40,
			ReplyDelaySeconds: 30,
			PostDelaySeconds:  60,
			MaxRepliesPerHour: 10,
			MaxRepliesPerDay:  50,
		},
		Browser: BrowserConfig{UserDataDir: "./browser_data", Headless: false, TimeoutSeconds: 60},
		Storage: StorageConfig{DBPath: "./leadscout.db"},
		Metrics: MetricsConfig{Addr: ""},
	}
}

// ResolveEnv fills in config fields from environment variables if not set.
func (c *Config) ResolveEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" && c.LLM.Provider == "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" && c.LLM.Model == "" {
		c.LLM.Model = v
	}
	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case "openai":
			c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "gemini":
			c.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		case "anthropic":
			c.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if c.LLM.BaseURL == "" && c.LLM.Provider == "ollama" {
		if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
			c.LLM.BaseURL = v
		}
	}
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
