package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration for the tutor backend.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single tutor call, retries
	// included. Default: 60s, since a five-question quiz is a long answer.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-001"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// envOverrides maps LEARNBUDDY_* variables onto Config fields.
var envOverrides = []struct {
	name  string
	apply func(*Config, string)
}{
	{"LEARNBUDDY_LLM_PROVIDER", func(c *Config, v string) { c.Provider = v }},
	{"LEARNBUDDY_ANTHROPIC_API_KEY", func(c *Config, v string) { c.Anthropic.APIKey = v }},
	{"LEARNBUDDY_ANTHROPIC_MODEL", func(c *Config, v string) { c.Anthropic.Model = v }},
	{"LEARNBUDDY_OPENAI_API_KEY", func(c *Config, v string) { c.OpenAI.APIKey = v }},
	{"LEARNBUDDY_OPENAI_MODEL", func(c *Config, v string) { c.OpenAI.Model = v }},
	{"LEARNBUDDY_OPENAI_BASE_URL", func(c *Config, v string) { c.OpenAI.BaseURL = v }},
	{"LEARNBUDDY_GEMINI_API_KEY", func(c *Config, v string) { c.Gemini.APIKey = v }},
	{"LEARNBUDDY_GEMINI_MODEL", func(c *Config, v string) { c.Gemini.Model = v }},
	{"LEARNBUDDY_OPENROUTER_API_KEY", func(c *Config, v string) { c.OpenRouter.APIKey = v }},
	{"LEARNBUDDY_OPENROUTER_MODEL", func(c *Config, v string) { c.OpenRouter.Model = v }},
	{"LEARNBUDDY_OPENROUTER_BASE_URL", func(c *Config, v string) { c.OpenRouter.BaseURL = v }},
}

// ConfigFromEnv builds a Config from LEARNBUDDY_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for _, o := range envOverrides {
		if v := os.Getenv(o.name); v != "" {
			o.apply(&cfg, v)
		}
	}
	if v := os.Getenv("LEARNBUDDY_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

// HasExplicitProvider reports whether LEARNBUDDY_LLM_PROVIDER is set.
func HasExplicitProvider() bool {
	return os.Getenv("LEARNBUDDY_LLM_PROVIDER") != ""
}

// DiscoverConfig checks the vendors' standard API key variables in
// priority order (Gemini, OpenAI, Anthropic, OpenRouter) and returns a
// Config for the first provider whose key is found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// ResolveConfig prefers explicit LEARNBUDDY_* configuration and falls
// back to key discovery.
func ResolveConfig() (Config, error) {
	if HasExplicitProvider() {
		cfg := ConfigFromEnv()
		return cfg, cfg.Validate()
	}
	if cfg, ok := DiscoverConfig(); ok {
		return cfg, nil
	}
	return Config{}, ErrNoProvider
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var missing string
	switch c.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			missing = "LEARNBUDDY_ANTHROPIC_API_KEY"
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			missing = "LEARNBUDDY_OPENAI_API_KEY"
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			missing = "LEARNBUDDY_GEMINI_API_KEY"
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			missing = "LEARNBUDDY_OPENROUTER_API_KEY"
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if missing != "" {
		return fmt.Errorf("%s is required for the %s provider", missing, c.Provider)
	}
	return nil
}
