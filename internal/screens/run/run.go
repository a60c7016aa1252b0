package run

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberlab/internal/navigator"
	"github.com/abhisek/cyberlab/internal/screen"
	"github.com/abhisek/cyberlab/internal/ui/layout"
)

// RunScreen runs one exercise: intro, replay prompts, scenario intros,
// questions, feedback and the completion summary.
type RunScreen struct {
	engine   *navigator.Engine
	input    *answerInput // non-nil while a question awaits an answer
	showHint bool
	errMsg   string
}

var _ screen.Screen = (*RunScreen)(nil)
var _ screen.KeyHintProvider = (*RunScreen)(nil)

// New creates the exercise runner for the engine's current exercise.
func New(engine *navigator.Engine) *RunScreen {
	return &RunScreen{engine: engine}
}

func (s *RunScreen) Init() tea.Cmd {
	return s.sync()
}

func (s *RunScreen) Title() string {
	if ex := s.engine.CurrentExercise(); ex != nil {
		return fmt.Sprintf("Exercise %d", ex.Number)
	}
	return "Exercise"
}

func (s *RunScreen) KeyHints() []layout.KeyHint {
	switch s.engine.State() {
	case navigator.StateRunningExercise, navigator.StateRunningScenario:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Begin"},
			{Key: "Esc", Description: "Exercise menu"},
		}
	case navigator.StateScenarioReplay:
		return []layout.KeyHint{
			{Key: "R", Description: "Redo"},
			{Key: "S", Description: "Skip"},
			{Key: "B", Description: "Back"},
		}
	case navigator.StateRunningQuestion:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Tab", Description: "Hint"},
			{Key: "Esc", Description: "Exercise menu"},
		}
	case navigator.StateFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	case navigator.StateExerciseComplete:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Exercise menu"},
		}
	}
	return nil
}

func (s *RunScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		if s.input != nil {
			_, cmd := s.input.update(msg)
			return s, cmd
		}
		return s, nil
	}

	key := kmsg.String()
	var cmd tea.Cmd

	switch s.engine.State() {
	case navigator.StateRunningExercise:
		switch key {
		case "enter", "space", " ":
			s.apply(s.engine.BeginExercise())
		case "esc", "b", "B":
			s.apply(s.engine.AbortExercise())
		}

	case navigator.StateScenarioReplay:
		switch key {
		case "r", "R":
			s.apply(s.engine.ResolveReplay(navigator.ReplayRedo))
		case "s", "S":
			s.apply(s.engine.ResolveReplay(navigator.ReplaySkip))
		case "b", "B", "esc":
			s.apply(s.engine.ResolveReplay(navigator.ReplayBack))
		}

	case navigator.StateRunningScenario:
		switch key {
		case "enter", "space", " ":
			s.apply(s.engine.StartScenario())
		case "esc":
			s.apply(s.engine.AbortExercise())
		}

	case navigator.StateRunningQuestion:
		cmd = s.handleQuestionKey(kmsg)

	case navigator.StateFeedback:
		s.apply(s.engine.Next())

	case navigator.StateExerciseComplete:
		switch key {
		case "enter", "esc", "space", " ":
			s.apply(s.engine.AcknowledgeCompletion())
		}
	}

	return s, tea.Batch(cmd, s.sync())
}

func (s *RunScreen) handleQuestionKey(kmsg tea.KeyMsg) tea.Cmd {
	switch kmsg.String() {
	case "esc":
		s.apply(s.engine.AbortExercise())
		return nil
	case "tab":
		s.showHint = !s.showHint
		return nil
	}
	if s.input == nil {
		return nil
	}

	answer, cmd := s.input.update(kmsg)
	if answer == nil {
		return cmd
	}

	_, err := s.engine.SubmitAnswer(context.Background(), answer)
	s.errMsg = ""
	if err != nil {
		s.errMsg = "progress not saved: " + err.Error()
	}
	return cmd
}

// apply records the error of a navigation step, if any. A successful step
// clears the previous one.
func (s *RunScreen) apply(err error) {
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
}

// sync rebuilds per-state widgets after the engine moves.
func (s *RunScreen) sync() tea.Cmd {
	if s.engine.State() != navigator.StateRunningQuestion {
		s.input = nil
		return nil
	}
	if s.input != nil {
		return nil
	}
	view, ok := s.engine.CurrentQuestion()
	if !ok {
		return nil
	}
	s.input = newAnswerInput(view.Question)
	s.showHint = false
	return s.input.init()
}
