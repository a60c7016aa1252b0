package run

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberlab/internal/content"
	"github.com/abhisek/cyberlab/internal/navigator"
	"github.com/abhisek/cyberlab/internal/progress"
	"github.com/abhisek/cyberlab/internal/question"
	"github.com/abhisek/cyberlab/internal/screen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testEngine(t *testing.T) *navigator.Engine {
	t.Helper()
	opts := []question.Option{{Key: "A", Text: "Firewall"}, {Key: "B", Text: "Policy"}, {Key: "C", Text: "Encryption"}}
	cat := content.NewCatalog(&content.Exercise{
		ID: "ex1", Number: 1, Title: "Controls", Description: "Pick the right controls.",
		Scenarios: []*content.Scenario{{
			ID: "s1", Title: "Network",
			Questions: []*question.Question{
				{ID: "mc", Prompt: "Which encrypts?", Hint: "Think ciphers.", Points: 1, Body: &question.MultipleChoice{Options: opts, Correct: "C"}},
				{ID: "rank", Prompt: "Order them.", Points: 2, Body: &question.Ranking{Items: []string{"x", "y"}, CorrectOrder: []int{2, 1}}},
				{ID: "ft", Prompt: "Explain.", Points: 2, ModelAnswer: "Assess the risk.", Body: &question.FreeText{Required: []string{"risk"}}},
				{ID: "cl", Prompt: "Select technical.", Points: 2, Body: &question.Checklist{Options: opts, Correct: []string{"A", "C"}}},
			},
		}},
	})

	e := navigator.New(cat, progress.NewTracker(&progress.MemoryBackend{}))
	if _, err := e.Start(); err != nil {
		t.Fatal(err)
	}
	steps := []func() error{
		func() error { return e.SelectMainMenu(navigator.OptionNewSession) },
		func() error { return e.SelectExercise("ex1") },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			t.Fatal(err)
		}
	}
	return e
}

func send(s screen.Screen, msgs ...tea.Msg) screen.Screen {
	for _, msg := range msgs {
		s, _ = s.Update(msg)
	}
	return s
}

func TestRunScreen_Title(t *testing.T) {
	s := New(testEngine(t))
	if s.Title() != "Exercise 1" {
		t.Errorf("Title = %q, want %q", s.Title(), "Exercise 1")
	}
}

func TestRunScreen_IntroToQuestion(t *testing.T) {
	e := testEngine(t)
	s := New(e)
	s.Init()

	if !strings.Contains(s.View(100, 30), "Pick the right controls.") {
		t.Error("expected exercise description in intro view")
	}

	send(s, specialKey(tea.KeyEnter))
	if e.State() != navigator.StateRunningScenario {
		t.Fatalf("state = %s, want running_scenario", e.State())
	}
	send(s, specialKey(tea.KeyEnter))
	if e.State() != navigator.StateRunningQuestion {
		t.Fatalf("state = %s, want running_question", e.State())
	}
	if s.input == nil {
		t.Fatal("expected an answer input for the question")
	}
	if !strings.Contains(s.View(100, 30), "Which encrypts?") {
		t.Error("expected question prompt in view")
	}
}

func startQuestions(t *testing.T) (*navigator.Engine, *RunScreen) {
	t.Helper()
	e := testEngine(t)
	s := New(e)
	s.Init()
	send(s, specialKey(tea.KeyEnter), specialKey(tea.KeyEnter))
	return e, s
}

func TestRunScreen_HintToggle(t *testing.T) {
	_, s := startQuestions(t)

	send(s, specialKey(tea.KeyTab))
	if !strings.Contains(s.View(100, 30), "Think ciphers.") {
		t.Error("expected hint after Tab")
	}
	send(s, specialKey(tea.KeyTab))
	if strings.Contains(s.View(100, 30), "Think ciphers.") {
		t.Error("expected hint hidden after second Tab")
	}
}

func TestRunScreen_AllKinds(t *testing.T) {
	e, s := startQuestions(t)

	// Multiple choice: an option key submits.
	send(s, keyPress('c'))
	if e.State() != navigator.StateFeedback {
		t.Fatalf("state = %s, want feedback", e.State())
	}
	if !strings.Contains(s.View(100, 30), "Correct!") {
		t.Error("expected correct verdict")
	}
	send(s, keyPress(' '))

	// Ranking: invalid input is rejected inline.
	s.input.text.Model.SetValue("3")
	send(s, specialKey(tea.KeyEnter))
	if e.State() != navigator.StateRunningQuestion {
		t.Fatalf("state = %s, want running_question after invalid ranking", e.State())
	}
	if s.input.text.Err() == "" {
		t.Error("expected validation message for out-of-range item")
	}
	s.input.text.Model.SetValue("2, 1")
	send(s, specialKey(tea.KeyEnter))
	if out, _ := e.LastOutcome(); !out.Correct {
		t.Errorf("expected correct ranking, got %+v", out)
	}
	send(s, keyPress('x'))

	// Free text: empty answers are rejected.
	send(s, specialKey(tea.KeyEnter))
	if e.State() != navigator.StateRunningQuestion || s.input.text.Err() == "" {
		t.Fatal("expected empty free text to be rejected")
	}
	s.input.text.Model.SetValue("nothing relevant")
	send(s, specialKey(tea.KeyEnter))
	view := s.View(100, 30)
	if !strings.Contains(view, "Not quite") || !strings.Contains(view, "Assess the risk.") {
		t.Errorf("expected incorrect verdict with model answer, got:\n%s", view)
	}
	send(s, keyPress('x'))

	// Checklist: nothing selected does not submit.
	send(s, specialKey(tea.KeyEnter))
	if e.State() != navigator.StateRunningQuestion {
		t.Fatal("expected empty checklist not to submit")
	}
	send(s, keyPress('a'), keyPress('c'), specialKey(tea.KeyEnter))
	if out, _ := e.LastOutcome(); !out.Correct {
		t.Errorf("expected correct checklist, got %+v", out)
	}

	send(s, keyPress('x'))
	if e.State() != navigator.StateExerciseComplete {
		t.Fatalf("state = %s, want exercise_complete", e.State())
	}
	if !strings.Contains(s.View(100, 30), "Score: 5.0 / 7") {
		t.Errorf("expected completion score, got:\n%s", s.View(100, 30))
	}

	send(s, specialKey(tea.KeyEnter))
	if e.State() != navigator.StateExerciseMenu {
		t.Errorf("state = %s, want exercise_menu", e.State())
	}
}

func TestRunScreen_ReplayPrompt(t *testing.T) {
	e, s := startQuestions(t)
	send(s, keyPress('c'), keyPress(' '))
	s.input.text.Model.SetValue("2,1")
	send(s, specialKey(tea.KeyEnter), keyPress(' '))
	s.input.text.Model.SetValue("risk")
	send(s, specialKey(tea.KeyEnter), keyPress(' '))
	send(s, keyPress('a'), specialKey(tea.KeyEnter), keyPress(' '))
	send(s, specialKey(tea.KeyEnter))

	if err := e.SelectExercise("ex1"); err != nil {
		t.Fatal(err)
	}
	s = New(e)
	send(s, specialKey(tea.KeyEnter))
	if e.State() != navigator.StateScenarioReplay {
		t.Fatalf("state = %s, want scenario_replay", e.State())
	}
	if !strings.Contains(s.View(100, 30), "already completed") {
		t.Error("expected replay prompt")
	}

	send(s, keyPress('b'))
	if e.State() != navigator.StateExerciseMenu {
		t.Errorf("state = %s, want exercise_menu after back", e.State())
	}
}

func TestRunScreen_EscAborts(t *testing.T) {
	e, s := startQuestions(t)
	send(s, specialKey(tea.KeyEscape))
	if e.State() != navigator.StateExerciseMenu {
		t.Errorf("state = %s, want exercise_menu", e.State())
	}
	if s.input != nil {
		t.Error("expected input dropped after abort")
	}
}

func TestRunScreen_KeyHints(t *testing.T) {
	_, s := startQuestions(t)
	hints := s.KeyHints()
	if len(hints) == 0 || hints[0].Key != "Enter" {
		t.Errorf("unexpected question hints: %+v", hints)
	}
}
