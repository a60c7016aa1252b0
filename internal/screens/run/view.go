package run

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberlab/internal/evaluator"
	"github.com/abhisek/cyberlab/internal/navigator"
	"github.com/abhisek/cyberlab/internal/question"
	"github.com/abhisek/cyberlab/internal/ui/components"
	"github.com/abhisek/cyberlab/internal/ui/theme"
)

func (s *RunScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.engine.State() {
	case navigator.StateRunningExercise:
		body = s.renderExerciseIntro(cw)
	case navigator.StateScenarioReplay:
		body = s.renderReplay(cw)
	case navigator.StateRunningScenario:
		body = s.renderScenarioIntro(cw)
	case navigator.StateRunningQuestion:
		body = s.renderQuestion(cw)
	case navigator.StateFeedback:
		body = s.renderFeedback(cw)
	case navigator.StateExerciseComplete:
		body = s.renderCompletion(cw)
	}

	if s.errMsg != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render("\n"+body))
}

func (s *RunScreen) breadcrumb(cw int) string {
	ex := s.engine.CurrentExercise()
	if ex == nil {
		return ""
	}
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("%d. %s", ex.Number, ex.Title))

	right := ""
	if n, total := s.engine.ScenarioPosition(); n > 0 && n <= total {
		right = fmt.Sprintf("Scenario %d/%d", n, total)
		if view, ok := s.engine.CurrentQuestion(); ok {
			right += fmt.Sprintf("  ·  Question %d/%d", view.Number, view.Total)
		}
	}
	right = lipgloss.NewStyle().Foreground(theme.TextDim).Render(right)

	line := left
	if pad := cw - lipgloss.Width(left) - lipgloss.Width(right); pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
	return line + "\n" + rule + "\n\n"
}

func (s *RunScreen) renderExerciseIntro(cw int) string {
	ex := s.engine.CurrentExercise()
	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(fmt.Sprintf("Exercise %d: %s", ex.Number, ex.Title)))
	b.WriteString("\n\n")
	if ex.Description != "" {
		b.WriteString(theme.Body.Width(cw).Render(ex.Description) + "\n\n")
	}
	if len(ex.Objectives) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Objectives") + "\n")
		for _, o := range ex.Objectives {
			b.WriteString(theme.Body.Render("  • "+o) + "\n")
		}
		b.WriteString("\n")
	}
	meta := fmt.Sprintf("%d scenarios  ·  %d questions  ·  %d points",
		len(ex.Scenarios), ex.QuestionCount(), ex.TotalPoints())
	if ex.EstimatedTime != "" {
		meta += "  ·  " + ex.EstimatedTime
	}
	b.WriteString(theme.Hint.Render(meta) + "\n\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Press Enter to begin"))
	return b.String()
}

func (s *RunScreen) renderReplay(cw int) string {
	sc := s.engine.CurrentScenario()
	var b strings.Builder
	b.WriteString(s.breadcrumb(cw))
	b.WriteString(theme.Body.Bold(true).Render(sc.Title) + "\n\n")
	b.WriteString(theme.Correct.Render("✓ You have already completed this scenario.") + "\n\n")
	b.WriteString(theme.Body.Render("[R] Redo it  (answers are re-graded and overwritten)") + "\n")
	b.WriteString(theme.Body.Render("[S] Skip to the next scenario") + "\n")
	b.WriteString(theme.Body.Render("[B] Back to the exercise menu") + "\n")
	return b.String()
}

func (s *RunScreen) renderScenarioIntro(cw int) string {
	sc := s.engine.CurrentScenario()
	var b strings.Builder
	b.WriteString(s.breadcrumb(cw))
	b.WriteString(theme.Title.Width(cw).Render(sc.Title) + "\n\n")
	if sc.Description != "" {
		b.WriteString(components.Card(theme.Body.Render(sc.Description), cw) + "\n\n")
	}
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d questions  ·  %d points", len(sc.Questions), sc.TotalPoints())) + "\n\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Press Enter to start"))
	return b.String()
}

func (s *RunScreen) renderQuestion(cw int) string {
	view, ok := s.engine.CurrentQuestion()
	if !ok {
		return ""
	}
	q := view.Question

	var b strings.Builder
	b.WriteString(s.breadcrumb(cw))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s  ·  %d points", q.Kind().DisplayName(), q.Points)) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")

	if r, ok := q.Body.(*question.Ranking); ok {
		for i, item := range r.Items {
			b.WriteString(theme.Body.Render(fmt.Sprintf("  %d. %s", i+1, item)) + "\n")
		}
		b.WriteString("\n")
	}

	if s.input != nil {
		b.WriteString(s.input.view() + "\n\n")
		b.WriteString(theme.Hint.Render(s.input.instructions()))
	}

	if s.showHint {
		hint := q.Hint
		if hint == "" {
			hint = "No hint for this question."
		}
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render("Hint: "+hint))
	}
	return b.String()
}

func verdictLine(out evaluator.Outcome) string {
	switch out.Verdict {
	case evaluator.VerdictCorrect:
		return theme.Correct.Render("✓ Correct!")
	case evaluator.VerdictPartial:
		return theme.Partial.Render("◐ Partially correct")
	default:
		return theme.Incorrect.Render("✗ Not quite")
	}
}

func (s *RunScreen) renderFeedback(cw int) string {
	out, ok := s.engine.LastOutcome()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.breadcrumb(cw))
	b.WriteString(verdictLine(out) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).
		Render(fmt.Sprintf("Score: %.1f / %.0f", out.Score, out.MaxScore)) + "\n\n")
	if out.Feedback != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(out.Feedback) + "\n\n")
	}
	if out.ModelAnswer != "" && out.Verdict != evaluator.VerdictCorrect {
		b.WriteString(components.Card(
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Model answer")+"\n"+
				theme.Body.Render(out.ModelAnswer), cw) + "\n\n")
	}
	b.WriteString(theme.Hint.Render("press any key to continue"))
	return b.String()
}

func (s *RunScreen) renderCompletion(cw int) string {
	c, ok := s.engine.Completion()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(fmt.Sprintf("Exercise %d complete!", c.Number)))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(cw).Render(c.Title) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("Score: %.1f / %d  (%.0f%%)", c.Score, c.Total, c.Percent())) + "\n\n")
	b.WriteString(components.NewProgressBar("", c.Percent(), false, cw).View() + "\n\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Press Enter to return to the exercise menu"))
	return b.String()
}
