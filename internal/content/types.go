// Package content defines the training catalog: exercises made of
// scenarios made of questions.
package content

import "github.com/abhisek/cyberlab/internal/question"

// Exercise is a top-level unit of training content.
type Exercise struct {
	ID            string
	Number        int
	Title         string
	Description   string
	EstimatedTime string
	Objectives    []string
	Scenarios     []*Scenario
}

// Scenario is a themed, ordered group of questions.
type Scenario struct {
	ID          string
	Title       string
	Description string
	Questions   []*question.Question
}

// TotalPoints sums question points across the scenario.
func (s *Scenario) TotalPoints() int {
	total := 0
	for _, q := range s.Questions {
		total += q.Points
	}
	return total
}

// TotalPoints sums question points across every scenario.
func (e *Exercise) TotalPoints() int {
	total := 0
	for _, s := range e.Scenarios {
		total += s.TotalPoints()
	}
	return total
}

// QuestionCount counts questions across every scenario.
func (e *Exercise) QuestionCount() int {
	n := 0
	for _, s := range e.Scenarios {
		n += len(s.Questions)
	}
	return n
}

// Scenario returns the scenario with the given id.
func (e *Exercise) Scenario(id string) (*Scenario, bool) {
	for _, s := range e.Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}
