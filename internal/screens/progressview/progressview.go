package progressview

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberlab/internal/navigator"
	"github.com/abhisek/cyberlab/internal/progress"
	"github.com/abhisek/cyberlab/internal/screen"
	"github.com/abhisek/cyberlab/internal/ui/components"
	"github.com/abhisek/cyberlab/internal/ui/layout"
	"github.com/abhisek/cyberlab/internal/ui/theme"
)

// ProgressScreen shows the session report.
type ProgressScreen struct {
	engine *navigator.Engine
	report navigator.Report
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates the progress view from the engine's current report.
func New(engine *navigator.Engine) *ProgressScreen {
	return &ProgressScreen{engine: engine, report: engine.Report()}
}

func (s *ProgressScreen) Init() tea.Cmd {
	return nil
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter/Esc", Description: "Back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "b", "B", "q":
			_ = s.engine.CloseProgress()
		}
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	r := s.report
	if !r.HasProgress {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No progress yet. Start a session!")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(Render(r, cw))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}

// Render draws a report at content width cw.
func Render(r navigator.Report, cw int) string {
	var b strings.Builder

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	b.WriteString(dim.Render(fmt.Sprintf("Session %s", r.SessionID)) + "\n")
	b.WriteString(dim.Render(fmt.Sprintf("Started %s  ·  Updated %s",
		r.Created.Local().Format("Jan 02, 2006 15:04"),
		r.LastUpdated.Local().Format("Jan 02, 2006 15:04"))) + "\n\n")

	b.WriteString(components.NewProgressBar("Overall", r.CompletionPct, true, cw).View() + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("Score %.1f / %d", r.TotalScore, r.TotalPoints)) + "\n\n")

	for _, ex := range r.Exercises {
		b.WriteString(theme.Body.Bold(true).Render(fmt.Sprintf("%d. %s", ex.Number, ex.Title)))
		b.WriteString("  " + statusBadge(ex.Status) + "\n")
		if ex.Status != progress.StatusNotStarted {
			b.WriteString(components.NewProgressBar("   ", ex.CompletionPct, true, cw).View() + "\n")
		}
		b.WriteString(dim.Render(fmt.Sprintf("   %.1f / %d points", ex.Score, ex.TotalPoints)) + "\n\n")
	}
	return b.String()
}

func statusBadge(st progress.Status) string {
	switch st {
	case progress.StatusCompleted:
		return theme.Correct.Render("✓ completed")
	case progress.StatusInProgress:
		return theme.Partial.Render("… in progress")
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("· not started")
	}
}
