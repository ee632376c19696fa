package completion

import "fmt"

// DefaultQuestionCount is used when a multiple-choice request omits
// questionCount.
const DefaultQuestionCount = 5

// MultipleChoice generates multiple-choice questions from study text.
var MultipleChoice = &Task{
	Name:          "generate-multiple-choice",
	Purpose:       "multiple-choice",
	RequestSchema: multipleChoiceRequestSchema,
	ResultSchema:  multipleChoiceResultSchema,
	Prepare: func(body []byte) (Input, error) {
		in, err := decodeInput(body)
		if err != nil {
			return in, err
		}
		if in.QuestionCount == 0 {
			in.QuestionCount = DefaultQuestionCount
		}
		return in, nil
	},
	System: func(in Input) string {
		return fmt.Sprintf(`You are an education expert. Analyze the given text and write multiple-choice questions about it.

Produce %d multiple-choice questions in this JSON format:
{
  "questions": [
    {
      "question": "question text",
      "options": ["option 1", "option 2", "option 3", "option 4"],
      "correctAnswer": 0,
      "explanation": "why the answer is correct"
    }
  ]
}

Rules:
1. Every question must be clear and specific.
2. Provide 4 options with exactly one correct answer.
3. correctAnswer is the index (0-3) of the correct option.
4. Distractors should be plausible but clearly distinguishable.
5. The explanation must explain the correct answer in detail.
6. %s
7. Return valid JSON only.`, in.QuestionCount, latexRule)
	},
	User: func(in Input) string {
		return "Create multiple-choice questions based on the following text:\n\n" + in.Text
	},
	Fallback: func(Input, string, error) (any, error) {
		return MultipleChoiceResult{Questions: []MultipleChoiceQuestion{}}, nil
	},
}
