package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockProvider_ReturnsCanedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: `{"a":1}`, Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: `{"b":2}`},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Text)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Text)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: `{}`},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "multiple-choice")
	if p := PurposeFrom(ctx); p != "multiple-choice" {
		t.Fatalf("expected 'multiple-choice', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name             string
		cfg              Config
		wantErr          bool
		wantUnconfigured bool
	}{
		{
			name:             "gateway without key",
			cfg:              Config{Provider: "gateway"},
			wantErr:          true,
			wantUnconfigured: true,
		},
		{
			name: "gateway with key",
			cfg:  Config{Provider: "gateway", Gateway: GatewayConfig{APIKey: "k"}},
		},
		{
			name:             "anthropic without key",
			cfg:              Config{Provider: "anthropic"},
			wantErr:          true,
			wantUnconfigured: true,
		},
		{
			name: "openai with key",
			cfg:  Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
		},
		{
			name: "mock needs no key",
			cfg:  Config{Provider: "mock"},
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			var nc *ErrNotConfigured
			if errors.As(err, &nc) != tt.wantUnconfigured {
				t.Fatalf("Validate() error = %v, want unconfigured %v", err, tt.wantUnconfigured)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("QUIZSMITH_GATEWAY_API_KEY", "")
	t.Setenv("LOVABLE_API_KEY", "legacy-key")
	t.Setenv("QUIZSMITH_LLM_TIMEOUT", "5s")
	t.Setenv("QUIZSMITH_LLM_MAX_ATTEMPTS", "3")

	cfg := ConfigFromEnv()
	if cfg.Provider != "gateway" {
		t.Errorf("provider = %q, want gateway", cfg.Provider)
	}
	if cfg.Gateway.APIKey != "legacy-key" {
		t.Errorf("gateway key = %q, want legacy-key", cfg.Gateway.APIKey)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %s, want 5s", cfg.Timeout)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("max attempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
}

func TestNewProvider_MissingKeyIsUnconfigured(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "gateway"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = p.Generate(context.Background(), Request{})
	var nc *ErrNotConfigured
	if !errors.As(err, &nc) {
		t.Fatalf("expected ErrNotConfigured, got: %T (%v)", err, err)
	}
}

func TestNewProvider_UnknownProvider(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "nope"}, nil, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text == "" {
		t.Fatal("expected a canned reply")
	}
}

func TestLookupCost(t *testing.T) {
	if LookupCost("google/gemini-2.5-flash") == nil {
		t.Fatal("expected pricing for a gateway-style model ID")
	}
	if LookupCost("nobody/unknown-model") != nil {
		t.Fatal("expected nil for an unknown model")
	}
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 2}
	if got := c.Cost(1_000_000, 500_000); got != 2 {
		t.Fatalf("cost = %v, want 2", got)
	}
}
