package completion

import "encoding/json"

// Input is the decoded request of any task. Each task reads the fields it
// needs.
type Input struct {
	Text          string        `json:"text"`
	QuestionCount int           `json:"questionCount"`
	WrongAnswers  []WrongAnswer `json:"wrongAnswers"`
}

// WrongAnswer is a question the learner got wrong.
type WrongAnswer struct {
	Question     string `json:"question"`
	QuestionType string `json:"question_type"`
}

type MultipleChoiceQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type MultipleChoiceResult struct {
	Questions []MultipleChoiceQuestion `json:"questions"`
}

type ShortAnswerQuestion struct {
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	Keywords    []string `json:"keywords"`
	Explanation string   `json:"explanation"`
}

type ShortAnswerResult struct {
	Questions []ShortAnswerQuestion `json:"questions"`
}

type Weakness struct {
	Category   string   `json:"category"`
	ErrorCount int      `json:"errorCount"`
	ErrorRate  float64  `json:"errorRate"`
	Examples   []string `json:"examples"`
}

type WeaknessResult struct {
	Weaknesses []Weakness `json:"weaknesses"`
}

type Problem struct {
	Problem   string `json:"problem"`
	Solution  string `json:"solution"`
	KeyPoints string `json:"keyPoints"`
}

type SolutionResult struct {
	Problems []Problem `json:"problems"`
}

// Decode converts a result returned by Run into one of the typed views.
// Fields the model left out stay at their zero values.
func Decode(result any, dst any) error {
	b, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
