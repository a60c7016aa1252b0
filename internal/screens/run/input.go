package run

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberlab/internal/question"
	"github.com/abhisek/cyberlab/internal/ui/components"
)

// answerInput collects one answer for a question of a given kind.
type answerInput struct {
	q      *question.Question
	choice components.ChoiceList
	check  components.Checklist
	text   components.TextInput
}

func newAnswerInput(q *question.Question) *answerInput {
	in := &answerInput{q: q}
	switch body := q.Body.(type) {
	case *question.MultipleChoice:
		in.choice = components.NewChoiceList(body.Options)
	case *question.Checklist:
		in.check = components.NewChecklist(body.Options)
	case *question.Ranking:
		in.text = components.NewTextInput("e.g. 3, 1, 4, 2", 64, 40)
	default:
		in.text = components.NewTextInput("Type your answer...", 2000, 60)
	}
	return in
}

func (in *answerInput) usesText() bool {
	switch in.q.Body.(type) {
	case *question.MultipleChoice, *question.Checklist:
		return false
	}
	return true
}

func (in *answerInput) init() tea.Cmd {
	if in.usesText() {
		return in.text.Init()
	}
	return nil
}

// update feeds msg to the widget. It returns a complete answer once the
// learner submits a valid one.
func (in *answerInput) update(msg tea.Msg) (question.Answer, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)

	switch body := in.q.Body.(type) {
	case *question.MultipleChoice:
		in.choice, _ = in.choice.Update(msg)
		if in.choice.Submitted {
			return question.ChoiceAnswer(in.choice.Chosen()), nil
		}
		return nil, nil

	case *question.Checklist:
		in.check, _ = in.check.Update(msg)
		if !in.check.Submitted {
			return nil, nil
		}
		sel := in.check.Selection()
		if len(sel) == 0 {
			in.check.Submitted = false
			return nil, nil
		}
		return sel, nil

	case *question.Ranking:
		if isKey && kmsg.String() == "enter" {
			ans, err := question.ParseRanking(in.text.Value(), len(body.Items))
			if err != nil {
				in.text.SetError(err.Error())
				return nil, nil
			}
			return ans, nil
		}

	default:
		if isKey && kmsg.String() == "enter" {
			v := strings.TrimSpace(in.text.Value())
			if v == "" {
				in.text.SetError("enter an answer")
				return nil, nil
			}
			return question.TextAnswer(v), nil
		}
	}

	var cmd tea.Cmd
	in.text, cmd = in.text.Update(msg)
	return nil, cmd
}

func (in *answerInput) view() string {
	switch in.q.Body.(type) {
	case *question.MultipleChoice:
		return in.choice.View()
	case *question.Checklist:
		return in.check.View()
	}
	return "Answer: " + in.text.View()
}

func (in *answerInput) instructions() string {
	switch in.q.Body.(type) {
	case *question.MultipleChoice:
		return "Press an option letter, or use arrows + Enter"
	case *question.Checklist:
		return "Space or a letter toggles an option, Enter submits (at least one)"
	case *question.Ranking:
		return "Enter item numbers in order, separated by commas"
	}
	return "Type your answer and press Enter"
}
