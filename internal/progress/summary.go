package progress

import "time"

// Status is the coarse state of an exercise.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Summary is a read-only projection of the session for display.
type Summary struct {
	HasProgress   bool
	SessionID     string
	Created       time.Time
	LastUpdated   time.Time
	TotalScore    float64
	CompletionPct float64
	Exercises     map[string]ExerciseSummary
}

// ExerciseSummary is the per-exercise part of a Summary.
type ExerciseSummary struct {
	Started       bool
	Completed     bool
	Score         float64
	CompletionPct float64
	Status        Status
}

// Summary projects the current session. HasProgress is false without one.
func (t *Tracker) Summary() Summary {
	s := t.session
	if s == nil {
		return Summary{}
	}

	out := Summary{
		HasProgress:   true,
		SessionID:     s.SessionID,
		Created:       s.Created.Time,
		LastUpdated:   s.LastUpdated.Time,
		TotalScore:    s.TotalScore(),
		CompletionPct: s.CompletionPct(),
		Exercises:     make(map[string]ExerciseSummary, len(s.Exercises)),
	}
	for id, ex := range s.Exercises {
		out.Exercises[id] = ExerciseSummary{
			Started:       ex.Started,
			Completed:     ex.Completed,
			Score:         ex.Score(),
			CompletionPct: ex.CompletionPct(),
			Status:        statusOf(ex),
		}
	}
	return out
}

func statusOf(ex *ExerciseProgress) Status {
	switch {
	case ex.Completed:
		return StatusCompleted
	case ex.Started:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}
