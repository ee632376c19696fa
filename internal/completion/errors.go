package completion

import (
	"context"
	"errors"
	"fmt"

	"github.com/quizsmith/quizsmith/internal/llm"
)

// ValidationError reports a request the caller got wrong.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigurationError reports a deployment fault, such as a missing API key.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// PublicMessage maps an error from Run to the message shown to callers.
// Upstream bodies and internal details never reach the caller.
func PublicMessage(err error) string {
	var (
		ve *ValidationError
		ce *ConfigurationError
		rl *llm.ErrRateLimit
		qe *llm.ErrQuotaExceeded
		up *llm.ErrUpstream
		pu *llm.ErrProviderUnavailable
		ir *llm.ErrInvalidResponse
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &ce):
		return ce.Err.Error()
	case errors.As(err, &rl):
		return "Too many requests. Please try again in a moment."
	case errors.As(err, &qe):
		return "AI credits are exhausted. Add credits to your AI gateway workspace."
	case errors.Is(err, context.DeadlineExceeded):
		return "The AI request timed out"
	case errors.As(err, &up), errors.As(err, &pu), errors.As(err, &ir):
		return "An error occurred while processing the AI request"
	default:
		return "An unknown error occurred"
	}
}
