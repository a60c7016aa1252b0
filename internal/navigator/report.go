package navigator

import (
	"time"

	"github.com/abhisek/cyberlab/internal/content"
	"github.com/abhisek/cyberlab/internal/progress"
)

// Report is the progress view: the session summary joined with catalog
// titles, ordering and point totals.
type Report struct {
	HasProgress   bool
	SessionID     string
	Created       time.Time
	LastUpdated   time.Time
	TotalScore    float64
	TotalPoints   int
	CompletionPct float64
	Exercises     []ExerciseReport
}

// ExerciseReport is one exercise line of a Report.
type ExerciseReport struct {
	ID            string
	Number        int
	Title         string
	Status        progress.Status
	Score         float64
	TotalPoints   int
	CompletionPct float64
}

// Report builds the progress view. Every catalog exercise is listed in
// sequence order, untouched ones as not started.
func (e *Engine) Report() Report {
	return BuildReport(e.catalog.Exercises(), e.tracker.Summary())
}

// BuildReport joins a session summary with the given exercises.
func BuildReport(exercises []*content.Exercise, sum progress.Summary) Report {
	r := Report{
		HasProgress:   sum.HasProgress,
		SessionID:     sum.SessionID,
		Created:       sum.Created,
		LastUpdated:   sum.LastUpdated,
		TotalScore:    sum.TotalScore,
		CompletionPct: sum.CompletionPct,
		Exercises:     make([]ExerciseReport, 0, len(exercises)),
	}
	for _, ex := range exercises {
		er := ExerciseReport{
			ID:          ex.ID,
			Number:      ex.Number,
			Title:       ex.Title,
			Status:      progress.StatusNotStarted,
			TotalPoints: ex.TotalPoints(),
		}
		if es, ok := sum.Exercises[ex.ID]; ok {
			er.Status = es.Status
			er.Score = es.Score
			er.CompletionPct = es.CompletionPct
		}
		r.TotalPoints += er.TotalPoints
		r.Exercises = append(r.Exercises, er)
	}
	return r
}
