package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Tracker owns the current session and persists it through a Backend.
// Every mutation saves the whole document immediately.
type Tracker struct {
	backend Backend
	log     logrus.FieldLogger
	now     func() time.Time
	newID   func() string
	session *Session
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for load warnings and save failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(t *Tracker) { t.log = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(gen func() string) Option {
	return func(t *Tracker) { t.newID = gen }
}

// NewTracker returns a Tracker with no session installed.
func NewTracker(backend Backend, opts ...Option) *Tracker {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	t := &Tracker{
		backend: backend,
		log:     discard,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Session returns the current session, or nil.
func (t *Tracker) Session() *Session {
	return t.session
}

// HasSession reports whether a session is installed.
func (t *Tracker) HasSession() bool {
	return t.session != nil
}

// NewSession installs a fresh, empty session, replacing any current one.
// It is not saved until the first mutation.
func (t *Tracker) NewSession() *Session {
	now := At(t.now())
	t.session = &Session{
		SessionID:   t.newID(),
		Created:     now,
		LastUpdated: now,
		Exercises:   make(map[string]*ExerciseProgress),
	}
	return t.session
}

// Load installs the persisted session. It reports false, with no session
// installed, when the document is absent or unusable; the latter is logged.
func (t *Tracker) Load() bool {
	t.session = nil

	data, err := t.backend.Read()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			t.log.WithError(&LoadError{Stage: "read", Err: err}).Warn("could not load progress, starting fresh")
		}
		return false
	}

	s, err := decodeDocument(data)
	if err != nil {
		t.log.WithError(err).Warn("could not load progress, starting fresh")
		return false
	}

	t.session = s
	t.log.WithFields(logrus.Fields{
		"session_id": s.SessionID,
		"exercises":  len(s.Exercises),
	}).Debug("progress loaded")
	return true
}

// Save writes the whole session, refreshing LastUpdated. It is a no-op
// without a session. Failures are returned as *SaveError.
func (t *Tracker) Save() error {
	if t.session == nil {
		return nil
	}
	t.session.LastUpdated = At(t.now())

	data, err := encodeDocument(t.session)
	if err != nil {
		return &SaveError{Err: err}
	}
	if err := t.backend.Write(data); err != nil {
		t.log.WithError(err).Error("could not save progress")
		return &SaveError{Err: err}
	}
	return nil
}

// ResetAll deletes the persisted document and drops the session.
func (t *Tracker) ResetAll() error {
	t.session = nil
	if err := t.backend.Remove(); err != nil {
		return fmt.Errorf("remove progress: %w", err)
	}
	return nil
}

// ExerciseProgress returns the progress node for exerciseID, creating it
// (and a session, if none exists) on first use.
func (t *Tracker) ExerciseProgress(exerciseID string) *ExerciseProgress {
	if t.session == nil {
		t.NewSession()
	}
	ex, ok := t.session.Exercises[exerciseID]
	if !ok {
		ex = &ExerciseProgress{
			ExerciseID: exerciseID,
			Scenarios:  make(map[string]*ScenarioProgress),
		}
		t.session.Exercises[exerciseID] = ex
	}
	return ex
}

// ScenarioProgress returns the progress node for a scenario, creating it on
// first use.
func (t *Tracker) ScenarioProgress(exerciseID, scenarioID string) *ScenarioProgress {
	ex := t.ExerciseProgress(exerciseID)
	sc, ok := ex.Scenarios[scenarioID]
	if !ok {
		sc = &ScenarioProgress{
			ScenarioID: scenarioID,
			Questions:  make(map[string]*QuestionProgress),
		}
		ex.Scenarios[scenarioID] = sc
	}
	return sc
}

// RecordAnswer stores the latest grading of a question, marks its scenario
// and exercise started, and saves.
func (t *Tracker) RecordAnswer(exerciseID, scenarioID, questionID string, answer any, correct bool, score float64) error {
	sc := t.ScenarioProgress(exerciseID, scenarioID)
	t.session.Exercises[exerciseID].Started = true
	sc.Started = true

	q, ok := sc.Questions[questionID]
	if !ok {
		q = &QuestionProgress{QuestionID: questionID}
		sc.Questions[questionID] = q
	}
	q.Answered = true
	q.Correct = correct
	q.Score = score
	q.Attempts++
	q.UserAnswer = encodeAnswer(answer, t.log)
	q.Timestamp = At(t.now())

	return t.Save()
}

// MarkScenarioComplete marks a scenario complete, marks its exercise
// complete when every registered scenario is, and saves.
func (t *Tracker) MarkScenarioComplete(exerciseID, scenarioID string) error {
	sc := t.ScenarioProgress(exerciseID, scenarioID)
	sc.Completed = true

	ex := t.ExerciseProgress(exerciseID)
	if ex.allScenariosComplete() {
		ex.Completed = true
	}
	return t.Save()
}

// MarkExerciseComplete marks an exercise complete and saves.
func (t *Tracker) MarkExerciseComplete(exerciseID string) error {
	t.ExerciseProgress(exerciseID).Completed = true
	return t.Save()
}

func encodeAnswer(answer any, log logrus.FieldLogger) json.RawMessage {
	if answer == nil {
		return nil
	}
	raw, err := json.Marshal(answer)
	if err != nil {
		log.WithError(err).Warn("answer is not serializable, storing null")
		return nil
	}
	return raw
}
