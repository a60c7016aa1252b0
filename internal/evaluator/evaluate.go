// Package evaluator turns a graded answer into the uniform outcome the
// navigator records and the screens display.
package evaluator

import "github.com/abhisek/cyberlab/internal/question"

// Verdict summarizes an outcome for display and history.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictPartial   Verdict = "partial"
	VerdictIncorrect Verdict = "incorrect"
)

// Outcome is the result of evaluating one answer.
type Outcome struct {
	QuestionID  string
	Correct     bool
	Score       float64
	MaxScore    float64
	Feedback    string
	ModelAnswer string
	Verdict     Verdict

	// Missing lists required free-text keywords absent from the answer.
	Missing []string
}

// Percent returns the score as a percentage of the maximum, 0-100.
func (o Outcome) Percent() float64 {
	if o.MaxScore <= 0 {
		return 0
	}
	return o.Score / o.MaxScore * 100
}

// Evaluate grades answer against q. It has no side effects.
func Evaluate(q *question.Question, answer question.Answer) Outcome {
	res := question.Grade(q, answer)

	out := Outcome{
		Correct:  res.Correct,
		Score:    res.Score,
		Feedback: res.Feedback,
		Missing:  res.Missing,
		Verdict:  verdictFor(res),
	}
	if q != nil {
		out.QuestionID = q.ID
		out.MaxScore = float64(q.Points)
		out.ModelAnswer = q.ModelAnswer
	}
	return out
}

func verdictFor(res question.Result) Verdict {
	switch {
	case res.Correct:
		return VerdictCorrect
	case res.Score > 0:
		return VerdictPartial
	default:
		return VerdictIncorrect
	}
}
