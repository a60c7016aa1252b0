package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberlab/internal/question"
	"github.com/abhisek/cyberlab/internal/ui/theme"
)

// Checklist is a multi-select over keyed options. Space or an option key
// toggles; enter submits.
type Checklist struct {
	Options   []question.Option
	Cursor    int
	Checked   map[int]bool
	Submitted bool
}

// NewChecklist creates an empty checklist.
func NewChecklist(options []question.Option) Checklist {
	return Checklist{Options: options, Checked: make(map[int]bool)}
}

// Update handles navigation and toggling.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
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
		if c.Cursor > 0 {
			c.Cursor--
		}
		return c, nil
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
		return c, nil
	case "space", " ":
		c.toggle(c.Cursor)
		return c, nil
	case "enter":
		c.Submitted = true
		return c, nil
	}

	for i, opt := range c.Options {
		if strings.EqualFold(opt.Key, key) {
			c.Cursor = i
			c.toggle(i)
			break
		}
	}
	return c, nil
}

func (c *Checklist) toggle(i int) {
	if i < 0 || i >= len(c.Options) {
		return
	}
	if c.Checked == nil {
		c.Checked = make(map[int]bool)
	}
	c.Checked[i] = !c.Checked[i]
}

// Selection returns the checked keys in option order.
func (c Checklist) Selection() question.SelectionAnswer {
	out := question.SelectionAnswer{}
	for i, opt := range c.Options {
		if c.Checked[i] {
			out = append(out, opt.Key)
		}
	}
	return out
}

// View renders the options with their check state.
func (c Checklist) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		box := "[ ]"
		if c.Checked[i] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, box, opt.Key, opt.Text)
		switch {
		case i == c.Cursor:
			b.WriteString(theme.Selected.Render(line))
		case c.Checked[i]:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(line))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
