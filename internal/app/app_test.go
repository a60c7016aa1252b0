package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberlab/internal/content"
	"github.com/abhisek/cyberlab/internal/navigator"
	"github.com/abhisek/cyberlab/internal/progress"
	"github.com/abhisek/cyberlab/internal/screens/confirm"
	"github.com/abhisek/cyberlab/internal/screens/exercises"
	"github.com/abhisek/cyberlab/internal/screens/home"
	"github.com/abhisek/cyberlab/internal/screens/progressview"
	"github.com/abhisek/cyberlab/internal/screens/run"
)

func testModel(t *testing.T, b progress.Backend) AppModel {
	t.Helper()
	e := navigator.New(content.Default(), progress.NewTracker(b))
	if _, err := e.Start(); err != nil {
		t.Fatal(err)
	}
	return newAppModel(Options{Engine: e})
}

func press(m AppModel, msgs ...tea.Msg) (AppModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(AppModel)
	}
	return m, cmd
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }
func down() tea.KeyPressMsg  { return tea.KeyPressMsg{Code: tea.KeyDown} }
func esc() tea.KeyPressMsg   { return tea.KeyPressMsg{Code: tea.KeyEscape} }
func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestApp_StartsOnHome(t *testing.T) {
	m := testModel(t, &progress.MemoryBackend{})
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatalf("active screen = %T, want *home.HomeScreen", m.router.Active())
	}
}

func TestApp_NewSessionOpensExerciseMenu(t *testing.T) {
	b := &progress.MemoryBackend{}
	m := testModel(t, b)

	m, _ = press(m, enter())
	if _, ok := m.router.Active().(*exercises.ExercisesScreen); !ok {
		t.Fatalf("active screen = %T, want *exercises.ExercisesScreen", m.router.Active())
	}
	if b.Writes != 1 {
		t.Errorf("writes = %d, want 1", b.Writes)
	}

	m, _ = press(m, key('1'))
	if _, ok := m.router.Active().(*run.RunScreen); !ok {
		t.Fatalf("active screen = %T, want *run.RunScreen", m.router.Active())
	}

	// Moving through the exercise keeps the same runner screen.
	runner := m.router.Active()
	m, _ = press(m, enter())
	if m.router.Active() != runner {
		t.Error("expected runner screen to persist across exercise states")
	}

	m, _ = press(m, esc())
	if _, ok := m.router.Active().(*exercises.ExercisesScreen); !ok {
		t.Fatalf("active screen = %T after abort, want *exercises.ExercisesScreen", m.router.Active())
	}

	m, _ = press(m, key('p'))
	if _, ok := m.router.Active().(*progressview.ProgressScreen); !ok {
		t.Fatalf("active screen = %T, want *progressview.ProgressScreen", m.router.Active())
	}
	m, _ = press(m, esc())
	if _, ok := m.router.Active().(*exercises.ExercisesScreen); !ok {
		t.Fatalf("active screen = %T after closing progress, want exercise menu", m.router.Active())
	}
}

func TestApp_ExistingSessionConfirm(t *testing.T) {
	b := &progress.MemoryBackend{}
	first := testModel(t, b)
	press(first, enter())

	m := testModel(t, b)
	// Continue, Start New Session, View Progress, Exit
	m, _ = press(m, down(), enter())
	if _, ok := m.router.Active().(*confirm.ConfirmScreen); !ok {
		t.Fatalf("active screen = %T, want *confirm.ConfirmScreen", m.router.Active())
	}

	m, _ = press(m, key('n'))
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatalf("active screen = %T after declining, want home", m.router.Active())
	}
	if !m.engine.Tracker().HasSession() {
		t.Error("declining must keep the session")
	}
}

func TestApp_ExitQuits(t *testing.T) {
	m := testModel(t, &progress.MemoryBackend{})

	m, cmd := press(m, down(), enter())
	if m.engine.State() != navigator.StateExit {
		t.Fatalf("state = %s, want exit", m.engine.State())
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestApp_CtrlCQuitsEngine(t *testing.T) {
	m := testModel(t, &progress.MemoryBackend{})
	m, cmd := press(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.engine.State() != navigator.StateExit {
		t.Errorf("state = %s, want exit", m.engine.State())
	}
}

func TestApp_ViewRendersHeader(t *testing.T) {
	m := testModel(t, &progress.MemoryBackend{})
	m, _ = press(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	v := m.View()
	if !v.AltScreen {
		t.Error("expected alt screen view")
	}
	if got := m.router.Active().Title(); got != "Main Menu" {
		t.Errorf("title = %q, want Main Menu", got)
	}
}
