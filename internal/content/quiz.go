package content

import (
	"errors"
	"fmt"
)

// Number of answer choices every question must carry.
const choicesPerQuestion = 4

// ErrLengthMismatch is returned by Score when more answers are supplied
// than there are questions.
var ErrLengthMismatch = errors.New("answer count exceeds question count")

// Quiz is an ordered list of multiple-choice questions.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Question is a single multiple-choice question with exactly four choices.
type Question struct {
	Text         string   `json:"text"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// Score holds the result of grading a set of answers.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Score grades answers positionally against the questions. Missing trailing
// answers count as incorrect. Supplying more answers than questions is
// ambiguous and rejected with ErrLengthMismatch rather than truncated.
func (q *Quiz) Score(answers []int) (Score, error) {
	if len(answers) > len(q.Questions) {
		return Score{}, fmt.Errorf("%w: %d answers for %d questions", ErrLengthMismatch, len(answers), len(q.Questions))
	}

	s := Score{Total: len(q.Questions)}
	for i, a := range answers {
		if a == q.Questions[i].CorrectIndex {
			s.Correct++
		}
	}
	return s, nil
}

// validate checks the quiz invariants in field declaration order and
// reports the first violation found.
func (q *Quiz) validate() error {
	if len(q.Questions) == 0 {
		return schemaViolation("questions", "expected at least 1 entry")
	}
	for _, question := range q.Questions {
		if len(question.Choices) != choicesPerQuestion {
			return schemaViolation("choices", fmt.Sprintf("expected %d entries, got %d", choicesPerQuestion, len(question.Choices)))
		}
		if question.CorrectIndex < 0 || question.CorrectIndex >= choicesPerQuestion {
			return schemaViolation("correct_index", fmt.Sprintf("must be in [0,%d], got %d", choicesPerQuestion-1, question.CorrectIndex))
		}
	}
	return nil
}
