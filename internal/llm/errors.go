package llm

import (
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrQuotaExceeded indicates the account ran out of credits (402).
type ErrQuotaExceeded struct {
	Err error
}

func (e *ErrQuotaExceeded) Error() string {
	return fmt.Sprintf("quota exceeded: %v", e.Err)
}

func (e *ErrQuotaExceeded) Unwrap() error { return e.Err }

// ErrUpstream indicates any other non-success status. Body carries the raw
// response body for logging; it is never shown to callers.
type ErrUpstream struct {
	StatusCode int
	Body       string
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// ErrInvalidResponse indicates a success status whose envelope carried no
// usable completion.
type ErrInvalidResponse struct {
	Body string
	Err  error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrNotConfigured is returned by providers that lack a credential.
type ErrNotConfigured struct {
	Err error
}

func (e *ErrNotConfigured) Error() string {
	return fmt.Sprintf("LLM provider not configured: %v", e.Err)
}

func (e *ErrNotConfigured) Unwrap() error { return e.Err }

// classifyStatus maps an upstream HTTP status to the error taxonomy above.
// err is the SDK error that carried the status.
func classifyStatus(status int, body string, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status == http.StatusPaymentRequired:
		return &ErrQuotaExceeded{Err: err}
	case status >= 400:
		if body == "" && err != nil {
			body = err.Error()
		}
		return &ErrUpstream{StatusCode: status, Body: body}
	}
	return &ErrProviderUnavailable{Err: err}
}
