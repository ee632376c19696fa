package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/quizsmith/quizsmith/internal/logger"
	"github.com/quizsmith/quizsmith/internal/store"
)

// mockReply is what the "mock" provider answers with: an empty question set
// that every completion task can parse.
const mockReply = "```json\n{\"questions\": [], \"weaknesses\": [], \"problems\": []}\n```"

// NewProvider creates a Provider from configuration.
// A missing credential is not an error here: the returned provider fails
// each call with ErrNotConfigured so the server can still start.
// When repo is non-nil every call is recorded as an event.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		var nc *ErrNotConfigured
		if errors.As(err, &nc) {
			return Unconfigured(cfg.Provider, nc), nil
		}
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "gateway":
		base, err = NewGatewayProvider(cfg.Gateway, cfg.Timeout)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic, cfg.Timeout)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI, cfg.Timeout)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter, cfg.Timeout)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini, cfg.Timeout)
	case "mock":
		base = &EchoProvider{Reply: mockReply}
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → recording → base
	p := base
	if repo != nil {
		p = WithRecording(p, cfg.Provider, repo, log)
	}
	if cfg.Retry.MaxAttempts > 1 {
		p = WithRetry(p, cfg.Retry)
	}

	return p, nil
}
