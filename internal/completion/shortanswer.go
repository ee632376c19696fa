package completion

// ShortAnswer generates open-ended questions with model answers.
var ShortAnswer = &Task{
	Name:          "generate-short-answer",
	Purpose:       "short-answer",
	RequestSchema: shortAnswerRequestSchema,
	ResultSchema:  shortAnswerResultSchema,
	System: func(Input) string {
		return `You are an education expert. Analyze the given text and write short-answer questions about it.

Produce 5 short-answer questions in this JSON format:
{
  "questions": [
    {
      "question": "question text",
      "answer": "model answer",
      "keywords": ["key", "concept", "list"],
      "explanation": "answer explanation"
    }
  ]
}

Rules:
1. Every question should require real understanding.
2. The model answer is 2-3 concrete sentences.
3. keywords lists the 3-5 core concepts an answer must mention.
4. The explanation says why this matters and in what context to understand it.
5. ` + latexRule + `
6. Return valid JSON only.`
	},
	User: func(in Input) string {
		return "Create short-answer questions based on the following text:\n\n" + in.Text
	},
	Fallback: func(Input, string, error) (any, error) {
		return ShortAnswerResult{Questions: []ShortAnswerQuestion{}}, nil
	},
}
