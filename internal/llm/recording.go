package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/quizsmith/quizsmith/internal/logger"
	"github.com/quizsmith/quizsmith/internal/store"
)

// RecordingProvider is a decorator that records every LLM request as an event.
type RecordingProvider struct {
	inner    Provider
	provider string
	repo     store.EventRepo
	log      *logger.Logger
}

// WithRecording wraps a Provider with event recording. Recording failures
// are logged and never fail the request.
func WithRecording(p Provider, providerName string, repo store.EventRepo, log *logger.Logger) Provider {
	return &RecordingProvider{inner: p, provider: providerName, repo: repo, log: log}
}

func (r *RecordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := r.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    r.provider,
		Model:       r.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = resp.Text
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// The request context may already be cancelled; the event is still kept.
	if recErr := r.repo.AppendLLMRequest(context.WithoutCancel(ctx), data); recErr != nil && r.log != nil {
		r.log.Warn("failed to record LLM request event", "error", recErr)
	}

	return resp, err
}

func (r *RecordingProvider) ModelID() string {
	return r.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	return b.String()
}
