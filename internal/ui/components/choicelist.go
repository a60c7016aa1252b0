package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberlab/internal/question"
	"github.com/abhisek/cyberlab/internal/ui/theme"
)

// ChoiceList is a single-choice selector over keyed options. Arrow keys
// move the cursor; pressing an option key chooses it directly.
type ChoiceList struct {
	Options   []question.Option
	Selected  int
	Submitted bool
}

// NewChoiceList creates a choice list with the cursor on the first option.
func NewChoiceList(options []question.Option) ChoiceList {
	return ChoiceList{Options: options}
}

// Update handles navigation. Enter or an option key submits.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.Submitted {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
		return c, nil
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
		return c, nil
	case "enter":
		if len(c.Options) > 0 {
			c.Submitted = true
		}
		return c, nil
	}

	for i, opt := range c.Options {
		if strings.EqualFold(opt.Key, key) {
			c.Selected = i
			c.Submitted = true
			break
		}
	}
	return c, nil
}

// Chosen returns the key of the option under the cursor.
func (c ChoiceList) Chosen() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected].Key
}

// View renders the options.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, opt.Key, opt.Text)
		if i == c.Selected {
			b.WriteString(theme.Selected.Render(line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
