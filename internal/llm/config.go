package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gateway", "openai", "openrouter", "gemini", "anthropic", "mock"
	Provider string

	Gateway    GatewayConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single outbound request.
	// Default: 60s.
	Timeout time.Duration
}

// GatewayConfig holds configuration for the OpenAI-compatible AI gateway.
type GatewayConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://ai.gateway.lovable.dev/v1"
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

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gateway",
		Gateway: GatewayConfig{
			Model:   "google/gemini-2.5-flash",
			BaseURL: defaultGatewayBaseURL,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("QUIZSMITH_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("QUIZSMITH_GATEWAY_API_KEY"); k != "" {
		cfg.Gateway.APIKey = k
	} else if k := os.Getenv("LOVABLE_API_KEY"); k != "" {
		cfg.Gateway.APIKey = k
	}
	if m := os.Getenv("QUIZSMITH_GATEWAY_MODEL"); m != "" {
		cfg.Gateway.Model = m
	}
	if u := os.Getenv("QUIZSMITH_GATEWAY_BASE_URL"); u != "" {
		cfg.Gateway.BaseURL = u
	}

	if k := os.Getenv("QUIZSMITH_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("QUIZSMITH_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("QUIZSMITH_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("QUIZSMITH_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("QUIZSMITH_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := os.Getenv("QUIZSMITH_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("QUIZSMITH_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("QUIZSMITH_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("QUIZSMITH_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	if n, err := strconv.Atoi(os.Getenv("QUIZSMITH_LLM_MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	if d, err := time.ParseDuration(os.Getenv("QUIZSMITH_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}

	return cfg
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gateway":
		if c.Gateway.APIKey == "" {
			return &ErrNotConfigured{Err: fmt.Errorf("QUIZSMITH_GATEWAY_API_KEY (or LOVABLE_API_KEY) is not configured")}
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return &ErrNotConfigured{Err: fmt.Errorf("QUIZSMITH_OPENAI_API_KEY is not configured")}
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return &ErrNotConfigured{Err: fmt.Errorf("QUIZSMITH_GEMINI_API_KEY is not configured")}
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return &ErrNotConfigured{Err: fmt.Errorf("QUIZSMITH_ANTHROPIC_API_KEY is not configured")}
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return &ErrNotConfigured{Err: fmt.Errorf("QUIZSMITH_OPENROUTER_API_KEY is not configured")}
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
