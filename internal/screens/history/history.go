package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberlab/internal/router"
	"github.com/abhisek/cyberlab/internal/screen"
	"github.com/abhisek/cyberlab/internal/store"
	"github.com/abhisek/cyberlab/internal/ui/layout"
	"github.com/abhisek/cyberlab/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Attempts []store.Attempt
	Stats    store.AttemptStats
	Err      error
}

// HistoryScreen lists recent graded attempts.
type HistoryScreen struct {
	repo      store.AttemptRepo
	sessionID string
	attempts  []store.Attempt
	stats     store.AttemptStats
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen for sessionID, or for every session when
// sessionID is empty.
func New(repo store.AttemptRepo, sessionID string) *HistoryScreen {
	return &HistoryScreen{
		repo:      repo,
		sessionID: sessionID,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		attempts, err := s.repo.Recent(ctx, store.QueryOpts{Limit: pageSize, SessionID: s.sessionID})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := s.repo.Stats(ctx, s.sessionID)
		if err != nil {
			return historyLoadedMsg{Attempts: attempts}
		}
		return historyLoadedMsg{Attempts: attempts, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "Attempt History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "b", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Answer a question!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf(
			"%d attempts  ·  %d correct  ·  %d partial  ·  %d incorrect  ·  %.1f / %.0f points",
			s.stats.Total, s.stats.Correct, s.stats.Partial, s.stats.Incorrect, s.stats.Score, s.stats.MaxScore))))
	b.WriteString("\n\n")

	// Keep the selected row on screen.
	visible := height - 6
	if visible < 1 {
		visible = 1
	}
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}

	for i := start; i < len(s.attempts) && i < start+visible; i++ {
		a := s.attempts[i]

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-14s  %-10s  %4.1f/%-3.0f",
			prefix, a.Timestamp.Local().Format("Jan 02 15:04"), a.QuestionID, a.Verdict, a.Score, a.MaxScore)

		style := lipgloss.NewStyle().Foreground(verdictColor(a.Verdict))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %s / %s  ·  %s  ·  answer %s", a.ExerciseID, a.ScenarioID, a.Kind, string(a.Answer))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func verdictColor(v string) color.Color {
	switch v {
	case "correct":
		return theme.Success
	case "partial":
		return theme.Warning
	case "incorrect":
		return theme.Error
	default:
		return theme.Text
	}
}
