package exercises

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

// ExercisesScreen lists the catalog with per-exercise status.
type ExercisesScreen struct {
	engine   *navigator.Engine
	rows     []navigator.ExerciseRow
	selected int
	errMsg   string
}

var _ screen.Screen = (*ExercisesScreen)(nil)
var _ screen.KeyHintProvider = (*ExercisesScreen)(nil)

// New creates the exercise menu.
func New(engine *navigator.Engine) *ExercisesScreen {
	return &ExercisesScreen{engine: engine, rows: engine.Exercises()}
}

func (s *ExercisesScreen) Init() tea.Cmd {
	return nil
}

func (s *ExercisesScreen) Title() string {
	return "Exercises"
}

func (s *ExercisesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter/1-9", Description: "Start"},
		{Key: "P", Description: "Progress"},
		{Key: "B", Description: "Back"},
	}
}

func (s *ExercisesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
		return s, nil
	case "down", "j":
		if s.selected < len(s.rows)-1 {
			s.selected++
		}
		return s, nil
	case "enter":
		s.open(s.selected)
		return s, nil
	case "p", "P":
		s.report(s.engine.ViewProgress())
		return s, nil
	case "b", "B", "esc":
		s.report(s.engine.Back())
		return s, nil
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		n := int(key[0] - '0')
		for i, row := range s.rows {
			if row.Number == n {
				s.open(i)
				break
			}
		}
	}
	return s, nil
}

func (s *ExercisesScreen) open(i int) {
	if i < 0 || i >= len(s.rows) {
		return
	}
	s.selected = i
	s.report(s.engine.SelectExercise(s.rows[i].ID))
}

func (s *ExercisesScreen) report(err error) {
	if err != nil {
		s.errMsg = err.Error()
	}
}

var statusLabel = map[progress.Status]string{
	progress.StatusNotStarted: "not started",
	progress.StatusInProgress: "in progress",
	progress.StatusCompleted:  "completed",
}

func statusStyle(st progress.Status) lipgloss.Style {
	switch st {
	case progress.StatusCompleted:
		return lipgloss.NewStyle().Foreground(theme.Success)
	case progress.StatusInProgress:
		return lipgloss.NewStyle().Foreground(theme.Accent)
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim)
	}
}

func (s *ExercisesScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No exercises available.")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")
	for i, row := range s.rows {
		prefix := "  "
		titleStyle := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			titleStyle = theme.Selected
		}

		title := titleStyle.Render(fmt.Sprintf("%s%d. %s", prefix, row.Number, row.Title))
		status := statusStyle(row.Status).Render(fmt.Sprintf("[%s]", statusLabel[row.Status]))
		gap := cw - lipgloss.Width(title) - lipgloss.Width(status)
		if gap < 1 {
			gap = 1
		}
		b.WriteString(title + strings.Repeat(" ", gap) + status + "\n")

		var meta []string
		if row.EstimatedTime != "" {
			meta = append(meta, row.EstimatedTime)
		}
		if row.Status != progress.StatusNotStarted {
			meta = append(meta, fmt.Sprintf("%.0f%% answered", row.CompletionPct))
		}
		if len(meta) > 0 {
			b.WriteString(theme.Hint.Render("     "+strings.Join(meta, "  ·  ")) + "\n")
		}
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}
