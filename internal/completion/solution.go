package completion

// Solution finds problems in the text and explains how to solve them.
var Solution = &Task{
	Name:          "solve-problems",
	Purpose:       "solution",
	RequestSchema: solutionRequestSchema,
	ResultSchema:  solutionResultSchema,
	System: func(Input) string {
		return `You are an AI tutor that solves study problems.
Find the problems in the provided text and give a detailed answer and worked solution for each.

Response format:
{
  "problems": [
    {
      "problem": "the recognized problem",
      "solution": "detailed answer and solution steps",
      "keyPoints": "key points or extra explanation"
    }
  ]
}

- If no problem is clearly stated, turn the core concepts of the text into problems and solve them.
- Explain every problem step by step.
- For math problems, show the calculation clearly.
- For theory problems, answer together with an explanation of the concept.
- ` + latexRule
	},
	User: func(in Input) string {
		return "Find the problems in the following text and solve them:\n\n" + in.Text
	},
	Fallback: func(_ Input, raw string, _ error) (any, error) {
		return SolutionResult{Problems: []Problem{{
			Problem:   "Analyzed content",
			Solution:  raw,
			KeyPoints: "See the solution above for details.",
		}}}, nil
	},
}
