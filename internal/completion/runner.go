package completion

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quizsmith/quizsmith/internal/jsonrepair"
	"github.com/quizsmith/quizsmith/internal/llm"
	"github.com/quizsmith/quizsmith/internal/logger"
)

var tracer = otel.Tracer("github.com/quizsmith/quizsmith/internal/completion")

// Runner executes completion tasks against a provider. It holds no
// per-request state and is safe for concurrent use.
type Runner struct {
	provider llm.Provider
	log      *logger.Logger
}

// NewRunner creates a Runner. A nil logger discards output.
func NewRunner(provider llm.Provider, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{provider: provider, log: log}
}

// Run validates body, asks the provider for one completion, and recovers a
// JSON value from the reply. When recovery fails the task's fallback
// decides the outcome.
func (r *Runner) Run(ctx context.Context, task *Task, body []byte) (any, error) {
	ctx, span := tracer.Start(ctx, "completion."+task.Name)
	defer span.End()

	result, err := r.run(ctx, span, task, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, PublicMessage(err))
	}
	return result, err
}

func (r *Runner) run(ctx context.Context, span trace.Span, task *Task, body []byte) (any, error) {
	log := r.log.With("task", task.Name)

	if err := validateRequest(task.RequestSchema, body); err != nil {
		return nil, err
	}
	prepare := task.Prepare
	if prepare == nil {
		prepare = decodeInput
	}
	in, err := prepare(body)
	if err != nil {
		return nil, err
	}

	req := llm.Request{
		System: task.System(in),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: task.User(in)},
		},
		MaxTokens:   task.MaxTokens,
		Temperature: 0,
	}

	resp, err := r.provider.Generate(llm.WithPurpose(ctx, task.Purpose), req)
	if err != nil {
		return nil, r.classify(log, task, err)
	}
	span.SetAttributes(
		attribute.String("llm.model", resp.Model),
		attribute.Int("llm.input_tokens", resp.Usage.InputTokens),
		attribute.Int("llm.output_tokens", resp.Usage.OutputTokens),
	)

	result, err := jsonrepair.Recover(resp.Text)
	if err != nil {
		log.Warn("completion is not recoverable JSON, using fallback", "error", err, "content", resp.Text)
		span.SetAttributes(attribute.Bool("completion.fallback", true))
		return task.Fallback(in, resp.Text, err)
	}

	if task.ResultSchema != nil {
		if verr := task.ResultSchema.Validate(result); verr != nil {
			log.Warn("completion does not match the expected shape", "error", verr)
		}
	}
	return result, nil
}

// classify logs an outbound failure and wraps it for the caller.
func (r *Runner) classify(log *logger.Logger, task *Task, err error) error {
	var (
		nc *llm.ErrNotConfigured
		up *llm.ErrUpstream
	)
	switch {
	case errors.As(err, &nc):
		log.Error("LLM provider is not configured", "error", nc)
		return &ConfigurationError{Err: nc.Err}
	case errors.As(err, &up):
		log.Error("AI gateway error", "status", up.StatusCode, "body", up.Body)
	default:
		log.Error("completion request failed", "error", err)
	}
	return fmt.Errorf("%s: %w", task.Name, err)
}
