package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures attempt queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	SessionID string    // only this session ("" = all)
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
}

// Attempt is one graded answer.
type Attempt struct {
	ID         int64
	SessionID  string
	ExerciseID string
	ScenarioID string
	QuestionID string
	Kind       string
	Verdict    string
	Score      float64
	MaxScore   float64
	Answer     json.RawMessage
	Timestamp  time.Time
}

// AttemptStats aggregates attempts by verdict.
type AttemptStats struct {
	Total     int
	Correct   int
	Partial   int
	Incorrect int
	Score     float64
	MaxScore  float64
}

// AttemptRepo records and queries graded attempts.
type AttemptRepo interface {
	// Append records a graded attempt.
	Append(ctx context.Context, a *Attempt) error

	// Recent returns attempts newest first.
	Recent(ctx context.Context, opts QueryOpts) ([]Attempt, error)

	// Stats aggregates attempts for a session, or all sessions when
	// sessionID is empty.
	Stats(ctx context.Context, sessionID string) (AttemptStats, error)
}
