package question

// Kind selects one of the grading variants.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindRanking        Kind = "ranking"
	KindFreeText       Kind = "free_text"
	KindChecklist      Kind = "checklist"
)

// AllKinds returns every question kind in display order.
func AllKinds() []Kind {
	return []Kind{KindMultipleChoice, KindRanking, KindFreeText, KindChecklist}
}

// DisplayName returns a human-readable label for a kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindMultipleChoice:
		return "Multiple Choice"
	case KindRanking:
		return "Ranking"
	case KindFreeText:
		return "Free Text"
	case KindChecklist:
		return "Checklist"
	default:
		return string(k)
	}
}

// Feedback holds the per-outcome feedback strings authored with a question.
// Empty strings fall back to generic messages.
type Feedback struct {
	Correct   string
	Partial   string
	Incorrect string
}

// Option is a keyed choice for multiple-choice and checklist questions.
type Option struct {
	Key  string
	Text string
}

// Question is a single gradable prompt.
type Question struct {
	// ID is unique within the owning scenario.
	ID string

	// Prompt is the question text shown to the learner.
	Prompt string

	// Hint is optional guidance shown before answering (free text only in
	// the built-in content, but any kind may carry one).
	Hint string

	// ModelAnswer is shown after grading.
	ModelAnswer string

	// Points is the maximum score. Always positive for valid content.
	Points int

	Feedback Feedback

	// Body carries the variant-specific fields and grading rule.
	Body Body
}

// Kind returns the question's kind tag, or "" when it has no body.
func (q *Question) Kind() Kind {
	if q == nil || q.Body == nil {
		return ""
	}
	return q.Body.Kind()
}

// Body is the closed set of question variants. Only the four types in this
// package implement it.
type Body interface {
	Kind() Kind
	grade(points float64, answer Answer) verdict
	validate() []string
}

// MultipleChoice accepts a single option key.
type MultipleChoice struct {
	Options []Option
	Correct string
}

// Ranking asks the learner to order items. CorrectOrder lists 1-based item
// numbers; it may be shorter than Items for "pick the top N" questions.
type Ranking struct {
	Items        []string
	CorrectOrder []int
}

// FreeText grades a typed response by keyword coverage.
type FreeText struct {
	Required    []string
	Bonus       []string
	MinKeywords int
}

// Checklist accepts a set of option keys.
type Checklist struct {
	Options []Option
	Correct []string
}

func (*MultipleChoice) Kind() Kind { return KindMultipleChoice }
func (*Ranking) Kind() Kind        { return KindRanking }
func (*FreeText) Kind() Kind       { return KindFreeText }
func (*Checklist) Kind() Kind      { return KindChecklist }

// Answer is the closed set of learner answer shapes.
type Answer interface {
	answerKind() Kind
}

// ChoiceAnswer is the selected option key of a multiple-choice question.
type ChoiceAnswer string

// RankingAnswer is an ordered list of 1-based item numbers.
type RankingAnswer []int

// TextAnswer is a free-form response.
type TextAnswer string

// SelectionAnswer is the set of selected checklist keys.
type SelectionAnswer []string

func (ChoiceAnswer) answerKind() Kind    { return KindMultipleChoice }
func (RankingAnswer) answerKind() Kind   { return KindRanking }
func (TextAnswer) answerKind() Kind      { return KindFreeText }
func (SelectionAnswer) answerKind() Kind { return KindChecklist }

// Result is the outcome of grading one answer.
type Result struct {
	Correct  bool
	Score    float64
	Feedback string

	// Found and Missing list matched and unmatched required keywords for
	// free-text questions. Bonus lists matched bonus keywords.
	Found   []string
	Missing []string
	Bonus   []string
}
