package completion

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizsmith/quizsmith/internal/llm"
)

const mcqReply = "```json\n{\"questions\":[{\"question\":\"What is $1+1$?\",\"options\":[\"1\",\"2\",\"3\",\"4\"],\"correctAnswer\":1,\"explanation\":\"$1+1=2$\"}]}\n```"

func TestRun_MultipleChoiceSuccess(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: mcqReply})
	r := NewRunner(mock, nil)

	result, err := r.Run(context.Background(), MultipleChoice, []byte(`{"text":"Addition facts"}`))
	require.NoError(t, err)

	var typed MultipleChoiceResult
	require.NoError(t, Decode(result, &typed))
	require.Len(t, typed.Questions, 1)
	assert.Equal(t, 1, typed.Questions[0].CorrectAnswer)
	assert.Equal(t, "What is $1+1$?", typed.Questions[0].Question)

	req, ok := mock.LastCall()
	require.True(t, ok)
	assert.Equal(t, 0.0, req.Temperature)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
	assert.True(t, strings.HasSuffix(req.Messages[0].Content, "\n\nAddition facts"))
	assert.Contains(t, req.System, "Produce 5 multiple-choice questions")
	assert.Contains(t, req.System, "LaTeX")
}

func TestRun_QuestionCountInPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: mcqReply})
	r := NewRunner(mock, nil)

	_, err := r.Run(context.Background(), MultipleChoice, []byte(`{"text":"x","questionCount":15}`))
	require.NoError(t, err)

	req, _ := mock.LastCall()
	assert.Contains(t, req.System, "Produce 15 multiple-choice questions")
}

func TestRun_ValidationHappensBeforeAnyCall(t *testing.T) {
	tests := []struct {
		name string
		task *Task
		body string
	}{
		{"question count not allowed", MultipleChoice, `{"text":"x","questionCount":7}`},
		{"question count wrong type", MultipleChoice, `{"text":"x","questionCount":"5"}`},
		{"missing text", ShortAnswer, `{}`},
		{"blank text", Solution, `{"text":"   "}`},
		{"text not a string", Solution, `{"text":42}`},
		{"malformed json", MultipleChoice, `{"text":`},
		{"wrong answers not an array", WeaknessAnalysis, `{"wrongAnswers":"nope"}`},
		{"wrong answer without question", WeaknessAnalysis, `{"wrongAnswers":[{"question_type":"mcq"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Text: "{}"})
			r := NewRunner(mock, nil)

			_, err := r.Run(context.Background(), tt.task, []byte(tt.body))
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %T (%v)", err, err)
			assert.Equal(t, 0, mock.CallCount())
			assert.NotEmpty(t, PublicMessage(err))
		})
	}
}

func TestRun_MissingCredential(t *testing.T) {
	p, err := llm.NewProvider(context.Background(), llm.Config{Provider: "gateway"}, nil, nil)
	require.NoError(t, err)
	r := NewRunner(p, nil)

	_, err = r.Run(context.Background(), Solution, []byte(`{"text":"2+2"}`))
	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce), "expected ConfigurationError, got %T", err)
	assert.Contains(t, PublicMessage(err), "QUIZSMITH_GATEWAY_API_KEY")
}

func TestRun_UpstreamStatusMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"rate limit", &llm.ErrRateLimit{Err: errors.New("status 429")}, "Too many requests"},
		{"quota", &llm.ErrQuotaExceeded{Err: errors.New("status 402")}, "credits"},
		{"upstream", &llm.ErrUpstream{StatusCode: 500, Body: "secret upstream detail"}, "error occurred while processing"},
		{"unavailable", &llm.ErrProviderUnavailable{Err: errors.New("dial tcp")}, "error occurred while processing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Err: tt.err})
			r := NewRunner(mock, nil)

			_, err := r.Run(context.Background(), ShortAnswer, []byte(`{"text":"x"}`))
			require.Error(t, err)
			msg := PublicMessage(err)
			assert.Contains(t, msg, tt.want)
			assert.NotContains(t, msg, "secret")
			assert.Equal(t, 1, mock.CallCount())
		})
	}
}

func TestRun_QuestionTasksFallBackToEmptyList(t *testing.T) {
	for _, task := range []*Task{MultipleChoice, ShortAnswer} {
		t.Run(task.Name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Text: "I cannot do that."})
			r := NewRunner(mock, nil)

			result, err := r.Run(context.Background(), task, []byte(`{"text":"x"}`))
			require.NoError(t, err)

			b, err := json.Marshal(result)
			require.NoError(t, err)
			assert.JSONEq(t, `{"questions":[]}`, string(b))
		})
	}
}

func TestRun_WeaknessFallback(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Weak at fractions."})
	r := NewRunner(mock, nil)

	body := `{"wrongAnswers":[
		{"question":"1/2+1/3","question_type":"short"},
		{"question":"2/4 simplified","question_type":"mcq"},
		{"question":"3/4 of 8","question_type":"mcq"},
		{"question":"0.5 as a fraction","question_type":"mcq"}
	]}`
	result, err := r.Run(context.Background(), WeaknessAnalysis, []byte(body))
	require.NoError(t, err)

	var typed WeaknessResult
	require.NoError(t, Decode(result, &typed))
	require.Len(t, typed.Weaknesses, 1)
	w := typed.Weaknesses[0]
	assert.Equal(t, "General", w.Category)
	assert.Equal(t, 4, w.ErrorCount)
	assert.Equal(t, 100.0, w.ErrorRate)
	assert.Equal(t, []string{"1/2+1/3", "2/4 simplified", "3/4 of 8"}, w.Examples)

	req, _ := mock.LastCall()
	assert.Contains(t, req.Messages[0].Content, "Question 1: 1/2+1/3 (type: short)\nQuestion 2: 2/4 simplified (type: mcq)")
}

func TestRun_WeaknessEmptyList(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "nothing"})
	r := NewRunner(mock, nil)

	result, err := r.Run(context.Background(), WeaknessAnalysis, []byte(`{"wrongAnswers":[]}`))
	require.NoError(t, err)

	var typed WeaknessResult
	require.NoError(t, Decode(result, &typed))
	assert.Equal(t, 0, typed.Weaknesses[0].ErrorCount)
	assert.Empty(t, typed.Weaknesses[0].Examples)
}

func TestRun_SolutionFallback(t *testing.T) {
	raw := "Step 1: add. Step 2: $x = 4$."
	mock := llm.NewMockProvider(llm.MockResponse{Text: raw})
	r := NewRunner(mock, nil)

	result, err := r.Run(context.Background(), Solution, []byte(`{"text":"2+2"}`))
	require.NoError(t, err)

	var typed SolutionResult
	require.NoError(t, Decode(result, &typed))
	require.Len(t, typed.Problems, 1)
	assert.Equal(t, Problem{
		Problem:   "Analyzed content",
		Solution:  raw,
		KeyPoints: "See the solution above for details.",
	}, typed.Problems[0])
}

func TestRun_RepairsLatexEscapes(t *testing.T) {
	reply := "```json\n{\"problems\":[{\"problem\":\"Solve $\\sqrt{x} = 3$\",\"solution\":\"$x = 9$\",\"keyPoints\":\"multiply\"}]}\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Text: reply})
	r := NewRunner(mock, nil)

	result, err := r.Run(context.Background(), Solution, []byte(`{"text":"sqrt(x)=3"}`))
	require.NoError(t, err)

	var typed SolutionResult
	require.NoError(t, Decode(result, &typed))
	require.Len(t, typed.Problems, 1)
	assert.Equal(t, `Solve $\sqrt{x} = 3$`, typed.Problems[0].Problem)
}

func TestRun_ShapeMismatchStillReturned(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"unexpected": true}`})
	r := NewRunner(mock, nil)

	result, err := r.Run(context.Background(), ShortAnswer, []byte(`{"text":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"unexpected": true}, result)
}

func TestLookup(t *testing.T) {
	task, ok := Lookup("generate-multiple-choice")
	require.True(t, ok)
	assert.Same(t, MultipleChoice, task)

	task, ok = Lookup("Solution")
	require.True(t, ok)
	assert.Same(t, Solution, task)

	_, ok = Lookup("translate")
	assert.False(t, ok)
	assert.Len(t, Tasks(), 4)
}
