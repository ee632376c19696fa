package completion

import (
	"fmt"
	"strings"
)

// maxFallbackExamples bounds the examples in the weakness fallback.
const maxFallbackExamples = 3

// WeaknessAnalysis groups a learner's wrong answers into weak areas.
var WeaknessAnalysis = &Task{
	Name:          "analyze-weaknesses",
	Purpose:       "weakness-analysis",
	RequestSchema: weaknessRequestSchema,
	ResultSchema:  weaknessResultSchema,
	System: func(Input) string {
		return `You are an AI analyst of learning data.
Analyze the questions a student answered incorrectly and identify their weak areas.

Response format (JSON):
{
  "weaknesses": [
    {
      "category": "weak area name (for example arithmetic, grammar, reading comprehension)",
      "errorCount": number of wrong answers in this category,
      "errorRate": error rate as a percentage,
      "examples": ["wrong answer example 1", "wrong answer example 2"]
    }
  ]
}

Analysis rules:
1. Classify categories automatically from the question type and content.
2. Sort categories by the number of wrong answers, most first.
3. Include 2-3 representative wrong-answer examples per category.
4. Compute the error rate as the category's share of all questions.`
	},
	User: func(in Input) string {
		return "Analyze the following wrong answers and identify the weak areas:\n\n" + formatWrongAnswers(in.WrongAnswers)
	},
	Fallback: func(in Input, _ string, _ error) (any, error) {
		examples := make([]string, 0, maxFallbackExamples)
		for _, wa := range in.WrongAnswers {
			if len(examples) == maxFallbackExamples {
				break
			}
			examples = append(examples, wa.Question)
		}
		return WeaknessResult{Weaknesses: []Weakness{{
			Category:   "General",
			ErrorCount: len(in.WrongAnswers),
			ErrorRate:  100,
			Examples:   examples,
		}}}, nil
	},
}

func formatWrongAnswers(items []WrongAnswer) string {
	lines := make([]string, len(items))
	for i, wa := range items {
		lines[i] = fmt.Sprintf("Question %d: %s (type: %s)", i+1, wa.Question, wa.QuestionType)
	}
	return strings.Join(lines, "\n")
}
