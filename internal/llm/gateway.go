package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultGatewayBaseURL = "https://ai.gateway.lovable.dev/v1"

// GatewayProvider talks to an OpenAI-compatible chat completions gateway
// over plain HTTP, so the wire body is exactly
// {model, temperature, messages} with temperature always present.
type GatewayProvider struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewGatewayProvider creates a gateway provider. A zero timeout leaves the
// request bound only by its context.
func NewGatewayProvider(cfg GatewayConfig, timeout time.Duration) (*GatewayProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gateway API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGatewayBaseURL
	}
	return &GatewayProvider{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

type gatewayMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type gatewayRequest struct {
	Model       string           `json:"model"`
	Temperature float64          `json:"temperature"`
	Messages    []gatewayMessage `json:"messages"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
}

type gatewayResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (p *GatewayProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	payload, err := json.Marshal(gatewayRequest{
		Model:       p.model,
		Temperature: req.Temperature,
		Messages:    buildGatewayMessages(req),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal gateway request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create gateway request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("read gateway response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, mapGatewayStatus(resp, body)
	}

	var out gatewayResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &ErrInvalidResponse{Body: string(body), Err: fmt.Errorf("decode envelope: %w", err)}
	}
	if len(out.Choices) == 0 {
		return nil, &ErrInvalidResponse{Body: string(body), Err: fmt.Errorf("no choices in gateway response")}
	}

	model := out.Model
	if model == "" {
		model = p.model
	}
	return &Response{
		Text: out.Choices[0].Message.Content,
		Usage: Usage{
			InputTokens:  out.Usage.PromptTokens,
			OutputTokens: out.Usage.CompletionTokens,
			TotalTokens:  out.Usage.TotalTokens,
		},
		Model:      model,
		StopReason: mapFinishReason(out.Choices[0].FinishReason),
	}, nil
}

func (p *GatewayProvider) ModelID() string {
	return p.model
}

func buildGatewayMessages(req Request) []gatewayMessage {
	messages := make([]gatewayMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, gatewayMessage{Role: string(RoleSystem), Content: req.System})
	}
	for _, m := range req.Messages {
		role := RoleUser
		if m.Role == RoleAssistant {
			role = RoleAssistant
		}
		messages = append(messages, gatewayMessage{Role: string(role), Content: m.Content})
	}
	return messages
}

func mapGatewayStatus(resp *http.Response, body []byte) error {
	cause := fmt.Errorf("status %d", resp.StatusCode)
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")), Err: cause}
	case http.StatusPaymentRequired:
		return &ErrQuotaExceeded{Err: cause}
	default:
		return &ErrUpstream{StatusCode: resp.StatusCode, Body: string(body)}
	}
}

func parseRetryAfter(v string) time.Duration {
	if secs, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func mapFinishReason(reason string) string {
	if reason == "length" {
		return "max_tokens"
	}
	return "end"
}
