package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberlab/internal/navigator"
	"github.com/abhisek/cyberlab/internal/router"
	"github.com/abhisek/cyberlab/internal/screen"
	"github.com/abhisek/cyberlab/internal/screens/confirm"
	"github.com/abhisek/cyberlab/internal/screens/exercises"
	"github.com/abhisek/cyberlab/internal/screens/history"
	"github.com/abhisek/cyberlab/internal/screens/home"
	"github.com/abhisek/cyberlab/internal/screens/progressview"
	"github.com/abhisek/cyberlab/internal/screens/run"
	"github.com/abhisek/cyberlab/internal/store"
	"github.com/abhisek/cyberlab/internal/ui/layout"
)

// Options holds dependencies for the TUI.
type Options struct {
	Engine  *navigator.Engine
	History store.AttemptRepo // nil hides the history screen
}

// view identifies which screen renders a navigator state. Every state of
// a running exercise shares the runner screen.
type view int

const (
	viewHome view = iota
	viewConfirm
	viewExercises
	viewProgress
	viewRun
	viewExit
)

func viewFor(s navigator.State) view {
	switch s {
	case navigator.StateMainMenu:
		return viewHome
	case navigator.StateConfirmNewSession:
		return viewConfirm
	case navigator.StateExerciseMenu:
		return viewExercises
	case navigator.StateProgressView:
		return viewProgress
	case navigator.StateExit:
		return viewExit
	default:
		return viewRun
	}
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	engine  *navigator.Engine
	history store.AttemptRepo
	router  *router.Router
	current view
	width   int
	height  int
}

// newAppModel creates an AppModel showing the screen for the engine's
// current state.
func newAppModel(opts Options) AppModel {
	m := AppModel{
		engine:  opts.Engine,
		history: opts.History,
		current: viewFor(opts.Engine.State()),
	}
	m.router = router.New(m.screenFor(m.current))
	return m
}

func (m AppModel) screenFor(v view) screen.Screen {
	switch v {
	case viewConfirm:
		return confirm.New(m.engine)
	case viewExercises:
		return exercises.New(m.engine)
	case viewProgress:
		return progressview.New(m.engine)
	case viewRun:
		return run.New(m.engine)
	default:
		var hist func() screen.Screen
		if m.history != nil {
			hist = func() screen.Screen {
				sessionID := ""
				if sess := m.engine.Tracker().Session(); sess != nil {
					sessionID = sess.SessionID
				}
				return history.New(m.history, sessionID)
			}
		}
		return home.New(m.engine, hist)
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.engine.Quit()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	followCmd := m.follow()
	return m, tea.Batch(cmd, followCmd)
}

// follow swaps the screen when the engine has moved to a state another
// screen renders.
func (m *AppModel) follow() tea.Cmd {
	next := viewFor(m.engine.State())
	if next == m.current {
		return nil
	}
	m.current = next
	if next == viewExit {
		return tea.Quit
	}
	return m.router.Reset(m.screenFor(next))
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	completion := -1.0
	if sum := m.engine.Tracker().Summary(); sum.HasProgress {
		completion = sum.CompletionPct
	}
	header := layout.RenderHeader(title, completion, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	if m.router.Depth() > 1 && footerHints == nil {
		footerHints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until the learner quits.
func Run(opts Options) error {
	if opts.Engine == nil {
		return fmt.Errorf("app: engine is required")
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
