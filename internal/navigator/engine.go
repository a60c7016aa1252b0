// Package navigator sequences exercise, scenario and question traversal and
// drives progress bookkeeping. The Engine is a synchronous state machine:
// every call runs to completion, and the caller supplies each user action.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/cyberlab/internal/content"
	"github.com/abhisek/cyberlab/internal/evaluator"
	"github.com/abhisek/cyberlab/internal/progress"
	"github.com/abhisek/cyberlab/internal/question"
	"github.com/abhisek/cyberlab/internal/store"
)

var (
	// ErrInvalidTransition is returned when an operation is not allowed in
	// the current state.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrNoSuchExercise is returned when an exercise id is not in the catalog.
	ErrNoSuchExercise = errors.New("no such exercise")
)

// AttemptLog receives every graded attempt. store.AttemptRepo satisfies it.
type AttemptLog interface {
	Append(ctx context.Context, a *store.Attempt) error
}

// Engine drives navigation over a content catalog.
type Engine struct {
	catalog *content.Catalog
	tracker *progress.Tracker
	history AttemptLog
	log     logrus.FieldLogger

	state       State
	started     bool
	progressRet State // state to return to from the progress view

	exercise    *content.Exercise
	scenarioIdx int
	questionIdx int
	lastOutcome *evaluator.Outcome
	completion  *Completion
}

// Option configures an Engine.
type Option func(*Engine)

// WithHistory records every graded attempt to log.
func WithHistory(log AttemptLog) Option {
	return func(e *Engine) { e.history = log }
}

// WithLogger sets the engine logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// New returns an Engine over catalog and tracker. Call Start before any
// other operation.
func New(catalog *content.Catalog, tracker *progress.Tracker, opts ...Option) *Engine {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	e := &Engine{
		catalog: catalog,
		tracker: tracker,
		log:     discard,
		state:   StateMainMenu,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Tracker returns the progress tracker the engine records to.
func (e *Engine) Tracker() *progress.Tracker {
	return e.tracker
}

// Catalog returns the content catalog.
func (e *Engine) Catalog() *content.Catalog {
	return e.catalog
}

func (e *Engine) invalid(op string) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, op, e.state)
}

// Start loads the persisted session and enters the main menu. It reports
// whether a prior session was found; an unusable document counts as none.
func (e *Engine) Start() (bool, error) {
	if e.started {
		return false, e.invalid("start")
	}
	e.started = true
	e.state = StateMainMenu
	return e.tracker.Load(), nil
}

// MainMenuOptions lists the main-menu choices. Without a session only
// starting a new one and exiting are offered.
func (e *Engine) MainMenuOptions() []MenuOption {
	if !e.tracker.HasSession() {
		return []MenuOption{OptionNewSession, OptionExit}
	}
	return []MenuOption{OptionContinue, OptionNewSession, OptionViewProgress, OptionExit}
}

// SelectMainMenu applies a main-menu choice. Starting a new session when
// one exists moves to the confirmation step instead.
func (e *Engine) SelectMainMenu(opt MenuOption) error {
	if e.state != StateMainMenu {
		return e.invalid("select main menu")
	}
	if !offered(e.MainMenuOptions(), opt) {
		return fmt.Errorf("%w: option %s not offered", ErrInvalidTransition, opt)
	}

	switch opt {
	case OptionContinue:
		e.state = StateExerciseMenu
	case OptionNewSession:
		if e.tracker.HasSession() {
			e.state = StateConfirmNewSession
			return nil
		}
		e.tracker.NewSession()
		e.state = StateExerciseMenu
		return e.tracker.Save()
	case OptionViewProgress:
		e.progressRet = StateMainMenu
		e.state = StateProgressView
	case OptionExit:
		e.state = StateExit
	}
	return nil
}

func offered(opts []MenuOption, opt MenuOption) bool {
	for _, o := range opts {
		if o == opt {
			return true
		}
	}
	return false
}

// ConfirmNewSession resolves the confirmation step. Confirming deletes the
// persisted document and starts a fresh session; declining returns to the
// main menu unchanged.
func (e *Engine) ConfirmNewSession(yes bool) error {
	if e.state != StateConfirmNewSession {
		return e.invalid("confirm new session")
	}
	if !yes {
		e.state = StateMainMenu
		return nil
	}

	if err := e.tracker.ResetAll(); err != nil {
		e.log.WithError(err).Error("could not delete previous progress")
		return err
	}
	e.tracker.NewSession()
	e.state = StateExerciseMenu
	e.log.WithField("session_id", e.tracker.Session().SessionID).Info("new session started")
	return e.tracker.Save()
}

// ViewProgress opens the progress view from the main or exercise menu.
func (e *Engine) ViewProgress() error {
	switch e.state {
	case StateMainMenu, StateExerciseMenu:
	default:
		return e.invalid("view progress")
	}
	e.progressRet = e.state
	e.state = StateProgressView
	return nil
}

// CloseProgress returns from the progress view to where it was opened.
func (e *Engine) CloseProgress() error {
	if e.state != StateProgressView {
		return e.invalid("close progress")
	}
	e.state = e.progressRet
	return nil
}

// Back leaves the exercise menu, progress view or confirmation step.
func (e *Engine) Back() error {
	switch e.state {
	case StateExerciseMenu:
		e.state = StateMainMenu
		return nil
	case StateProgressView:
		return e.CloseProgress()
	case StateConfirmNewSession:
		return e.ConfirmNewSession(false)
	default:
		return e.invalid("back")
	}
}

// ExerciseRow is one line of the exercise menu.
type ExerciseRow struct {
	ID            string
	Number        int
	Title         string
	EstimatedTime string
	Status        progress.Status
	CompletionPct float64
}

// Exercises lists the catalog ordered by sequence number with each
// exercise's status. It does not create progress nodes.
func (e *Engine) Exercises() []ExerciseRow {
	var nodes map[string]*progress.ExerciseProgress
	if s := e.tracker.Session(); s != nil {
		nodes = s.Exercises
	}

	exs := e.catalog.Exercises()
	rows := make([]ExerciseRow, 0, len(exs))
	for _, ex := range exs {
		row := ExerciseRow{
			ID:            ex.ID,
			Number:        ex.Number,
			Title:         ex.Title,
			EstimatedTime: ex.EstimatedTime,
			Status:        progress.StatusNotStarted,
		}
		if p := nodes[ex.ID]; p != nil {
			switch {
			case p.Completed:
				row.Status = progress.StatusCompleted
			case p.Started:
				row.Status = progress.StatusInProgress
			}
			row.CompletionPct = p.CompletionPct()
		}
		rows = append(rows, row)
	}
	return rows
}

// SelectExercise opens an exercise's intro. Every scenario of the exercise
// is registered in the progress tree so exercise completion accounts for
// all of them.
func (e *Engine) SelectExercise(id string) error {
	if e.state != StateExerciseMenu {
		return e.invalid("select exercise")
	}
	ex, ok := e.catalog.Exercise(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoSuchExercise, id)
	}

	for _, sc := range ex.Scenarios {
		e.tracker.ScenarioProgress(ex.ID, sc.ID)
	}

	e.exercise = ex
	e.scenarioIdx = 0
	e.questionIdx = 0
	e.lastOutcome = nil
	e.completion = nil
	e.state = StateRunningExercise
	e.log.WithField("exercise_id", ex.ID).Debug("exercise selected")
	return nil
}

// CurrentExercise returns the exercise being run, or nil.
func (e *Engine) CurrentExercise() *content.Exercise {
	return e.exercise
}

// CurrentScenario returns the scenario being run, or nil.
func (e *Engine) CurrentScenario() *content.Scenario {
	if e.exercise == nil || e.scenarioIdx >= len(e.exercise.Scenarios) {
		return nil
	}
	return e.exercise.Scenarios[e.scenarioIdx]
}

// ScenarioPosition returns the 1-based index of the current scenario and
// the scenario count.
func (e *Engine) ScenarioPosition() (int, int) {
	if e.exercise == nil {
		return 0, 0
	}
	return e.scenarioIdx + 1, len(e.exercise.Scenarios)
}

// BeginExercise leaves the intro for the first scenario.
func (e *Engine) BeginExercise() error {
	if e.state != StateRunningExercise {
		return e.invalid("begin exercise")
	}
	return e.enterScenario(0)
}

// enterScenario moves to scenario idx, or finishes the exercise past the
// last one. A completed scenario goes to the replay prompt first.
func (e *Engine) enterScenario(idx int) error {
	e.scenarioIdx = idx
	e.questionIdx = 0
	e.lastOutcome = nil

	if idx >= len(e.exercise.Scenarios) {
		return e.finishExercise()
	}

	sc := e.exercise.Scenarios[idx]
	if e.tracker.ScenarioProgress(e.exercise.ID, sc.ID).Completed {
		e.state = StateScenarioReplay
	} else {
		e.state = StateRunningScenario
	}
	return nil
}

// ResolveReplay answers the prompt for a completed scenario.
func (e *Engine) ResolveReplay(choice ReplayChoice) error {
	if e.state != StateScenarioReplay {
		return e.invalid("resolve replay")
	}
	switch choice {
	case ReplayRedo:
		e.state = StateRunningScenario
		return nil
	case ReplaySkip:
		return e.enterScenario(e.scenarioIdx + 1)
	case ReplayBack:
		e.leaveExercise()
		return nil
	default:
		return fmt.Errorf("%w: unknown replay choice %d", ErrInvalidTransition, choice)
	}
}

// StartScenario leaves the scenario intro for its first question.
func (e *Engine) StartScenario() error {
	if e.state != StateRunningScenario {
		return e.invalid("start scenario")
	}
	sc := e.CurrentScenario()
	if len(sc.Questions) == 0 {
		return e.completeScenario()
	}
	e.questionIdx = 0
	e.state = StateRunningQuestion
	return nil
}

// QuestionView is the question awaiting an answer and its position.
type QuestionView struct {
	Exercise *content.Exercise
	Scenario *content.Scenario
	Question *question.Question
	Number   int // 1-based within the scenario
	Total    int
}

// CurrentQuestion returns the question being asked or just graded.
func (e *Engine) CurrentQuestion() (QuestionView, bool) {
	if e.state != StateRunningQuestion && e.state != StateFeedback {
		return QuestionView{}, false
	}
	sc := e.CurrentScenario()
	return QuestionView{
		Exercise: e.exercise,
		Scenario: sc,
		Question: sc.Questions[e.questionIdx],
		Number:   e.questionIdx + 1,
		Total:    len(sc.Questions),
	}, true
}

// SubmitAnswer grades answer, records it and moves to feedback. A save
// failure is returned alongside the outcome; the state still advances.
func (e *Engine) SubmitAnswer(ctx context.Context, answer question.Answer) (evaluator.Outcome, error) {
	if e.state != StateRunningQuestion {
		return evaluator.Outcome{}, e.invalid("submit answer")
	}
	view, _ := e.CurrentQuestion()
	q := view.Question

	out := evaluator.Evaluate(q, answer)
	e.lastOutcome = &out
	e.state = StateFeedback

	err := e.tracker.RecordAnswer(e.exercise.ID, view.Scenario.ID, q.ID, answer, out.Correct, out.Score)
	e.appendHistory(ctx, view, answer, out)

	e.log.WithFields(logrus.Fields{
		"exercise_id": e.exercise.ID,
		"scenario_id": view.Scenario.ID,
		"question_id": q.ID,
		"verdict":     out.Verdict,
		"score":       out.Score,
	}).Debug("answer recorded")
	return out, err
}

func (e *Engine) appendHistory(ctx context.Context, view QuestionView, answer question.Answer, out evaluator.Outcome) {
	if e.history == nil {
		return
	}
	a := &store.Attempt{
		ExerciseID: e.exercise.ID,
		ScenarioID: view.Scenario.ID,
		QuestionID: view.Question.ID,
		Kind:       string(view.Question.Kind()),
		Verdict:    string(out.Verdict),
		Score:      out.Score,
		MaxScore:   out.MaxScore,
	}
	if s := e.tracker.Session(); s != nil {
		a.SessionID = s.SessionID
	}
	if qp := e.tracker.ScenarioProgress(e.exercise.ID, view.Scenario.ID).Questions[view.Question.ID]; qp != nil {
		a.Answer = qp.UserAnswer
		a.Timestamp = qp.Timestamp.Time
	}
	if err := e.history.Append(ctx, a); err != nil {
		e.log.WithError(err).Warn("could not record attempt history")
	}
}

// LastOutcome returns the outcome shown in the feedback state.
func (e *Engine) LastOutcome() (evaluator.Outcome, bool) {
	if e.lastOutcome == nil {
		return evaluator.Outcome{}, false
	}
	return *e.lastOutcome, true
}

// Next leaves feedback for the next question. After the last question the
// scenario is marked complete and the next scenario is entered.
func (e *Engine) Next() error {
	if e.state != StateFeedback {
		return e.invalid("next")
	}
	e.lastOutcome = nil
	if e.questionIdx+1 < len(e.CurrentScenario().Questions) {
		e.questionIdx++
		e.state = StateRunningQuestion
		return nil
	}
	return e.completeScenario()
}

func (e *Engine) completeScenario() error {
	sc := e.CurrentScenario()
	saveErr := e.tracker.MarkScenarioComplete(e.exercise.ID, sc.ID)
	e.log.WithFields(logrus.Fields{
		"exercise_id": e.exercise.ID,
		"scenario_id": sc.ID,
	}).Debug("scenario complete")

	if err := e.enterScenario(e.scenarioIdx + 1); err != nil {
		return err
	}
	return saveErr
}

// finishExercise runs once every scenario has been passed. When all of the
// exercise's scenarios are complete it is marked complete and summarized;
// otherwise the learner returns to the exercise menu.
func (e *Engine) finishExercise() error {
	ex := e.exercise
	for _, sc := range ex.Scenarios {
		if !e.tracker.ScenarioProgress(ex.ID, sc.ID).Completed {
			e.leaveExercise()
			return nil
		}
	}

	err := e.tracker.MarkExerciseComplete(ex.ID)
	c := newCompletion(ex, e.tracker.ExerciseProgress(ex.ID))
	e.completion = &c
	e.state = StateExerciseComplete
	e.log.WithFields(logrus.Fields{
		"exercise_id": ex.ID,
		"score":       c.Score,
		"total":       c.Total,
	}).Info("exercise complete")
	return err
}

// Completion summarizes a finished exercise.
type Completion struct {
	ExerciseID string
	Number     int
	Title      string
	Score      float64
	Total      int
}

// Percent returns Score ÷ Total as 0-100.
func (c Completion) Percent() float64 {
	if c.Total == 0 {
		return 0
	}
	return c.Score / float64(c.Total) * 100
}

func newCompletion(ex *content.Exercise, p *progress.ExerciseProgress) Completion {
	return Completion{
		ExerciseID: ex.ID,
		Number:     ex.Number,
		Title:      ex.Title,
		Score:      p.Score(),
		Total:      ex.TotalPoints(),
	}
}

// Completion returns the summary of the exercise just finished.
func (e *Engine) Completion() (Completion, bool) {
	if e.state != StateExerciseComplete || e.completion == nil {
		return Completion{}, false
	}
	return *e.completion, true
}

// AcknowledgeCompletion returns from the summary to the exercise menu.
func (e *Engine) AcknowledgeCompletion() error {
	if e.state != StateExerciseComplete {
		return e.invalid("acknowledge completion")
	}
	e.leaveExercise()
	return nil
}

// AbortExercise leaves a running exercise for the exercise menu. Answers
// already recorded are kept; the current scenario is not marked complete.
func (e *Engine) AbortExercise() error {
	if !e.state.inExercise() {
		return e.invalid("abort exercise")
	}
	e.leaveExercise()
	return nil
}

func (e *Engine) leaveExercise() {
	e.exercise = nil
	e.scenarioIdx = 0
	e.questionIdx = 0
	e.lastOutcome = nil
	e.completion = nil
	e.state = StateExerciseMenu
}

// Quit ends navigation from any state. Every recorded answer has already
// been saved, so nothing is flushed here.
func (e *Engine) Quit() {
	if e.state == StateExit {
		return
	}
	e.log.WithField("state", e.state.String()).Debug("quit")
	e.exercise = nil
	e.lastOutcome = nil
	e.completion = nil
	e.state = StateExit
}
