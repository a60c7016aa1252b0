// Package progress tracks a learner's session across exercises, scenarios
// and questions, and persists it as a single JSON document.
package progress

import (
	"encoding/json"
)

// Session is the root of the progress tree. A Tracker owns at most one.
type Session struct {
	SessionID   string                       `json:"session_id"`
	Created     Timestamp                    `json:"created"`
	LastUpdated Timestamp                    `json:"last_updated"`
	Exercises   map[string]*ExerciseProgress `json:"exercises"`
}

// ExerciseProgress records progress through one exercise.
type ExerciseProgress struct {
	ExerciseID string                       `json:"exercise_id"`
	Started    bool                         `json:"started"`
	Completed  bool                         `json:"completed"`
	Scenarios  map[string]*ScenarioProgress `json:"scenarios"`
}

// ScenarioProgress records progress through one scenario.
type ScenarioProgress struct {
	ScenarioID string                       `json:"scenario_id"`
	Started    bool                         `json:"started"`
	Completed  bool                         `json:"completed"`
	Questions  map[string]*QuestionProgress `json:"questions"`
}

// QuestionProgress records the most recent grading of one question.
type QuestionProgress struct {
	QuestionID string          `json:"question_id"`
	Answered   bool            `json:"answered"`
	Correct    bool            `json:"correct"`
	Score      float64         `json:"score"`
	Attempts   int             `json:"attempts"`
	UserAnswer json.RawMessage `json:"user_answer"`
	Timestamp  Timestamp       `json:"timestamp"`
}

// Score sums the latest scores of every recorded question.
func (s *ScenarioProgress) Score() float64 {
	var total float64
	for _, q := range s.Questions {
		total += q.Score
	}
	return total
}

// Answered counts recorded questions that have been answered.
func (s *ScenarioProgress) Answered() int {
	n := 0
	for _, q := range s.Questions {
		if q.Answered {
			n++
		}
	}
	return n
}

// CompletionPct is answered ÷ recorded questions, 0-100.
func (s *ScenarioProgress) CompletionPct() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(s.Answered()) / float64(len(s.Questions)) * 100
}

// Score sums scenario scores.
func (e *ExerciseProgress) Score() float64 {
	var total float64
	for _, s := range e.Scenarios {
		total += s.Score()
	}
	return total
}

// CompletionPct is answered ÷ recorded questions across all scenarios, 0-100.
func (e *ExerciseProgress) CompletionPct() float64 {
	answered, total := e.counts()
	if total == 0 {
		return 0
	}
	return float64(answered) / float64(total) * 100
}

func (e *ExerciseProgress) counts() (answered, total int) {
	for _, s := range e.Scenarios {
		answered += s.Answered()
		total += len(s.Questions)
	}
	return answered, total
}

// allScenariosComplete reports whether the exercise has at least one
// scenario and every one of them is complete.
func (e *ExerciseProgress) allScenariosComplete() bool {
	if len(e.Scenarios) == 0 {
		return false
	}
	for _, s := range e.Scenarios {
		if !s.Completed {
			return false
		}
	}
	return true
}

// TotalScore sums exercise scores.
func (s *Session) TotalScore() float64 {
	var total float64
	for _, e := range s.Exercises {
		total += e.Score()
	}
	return total
}

// CompletionPct is answered ÷ recorded questions across the session, 0-100.
func (s *Session) CompletionPct() float64 {
	var answered, total int
	for _, e := range s.Exercises {
		a, t := e.counts()
		answered += a
		total += t
	}
	if total == 0 {
		return 0
	}
	return float64(answered) / float64(total) * 100
}
