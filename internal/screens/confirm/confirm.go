package confirm

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberlab/internal/navigator"
	"github.com/abhisek/cyberlab/internal/screen"
	"github.com/abhisek/cyberlab/internal/ui/components"
	"github.com/abhisek/cyberlab/internal/ui/layout"
	"github.com/abhisek/cyberlab/internal/ui/theme"
)

// ConfirmScreen asks before deleting the saved session.
type ConfirmScreen struct {
	engine *navigator.Engine
	yes    bool // cursor on "Yes"
	errMsg string
}

var _ screen.Screen = (*ConfirmScreen)(nil)
var _ screen.KeyHintProvider = (*ConfirmScreen)(nil)

// New creates the confirmation screen. The cursor starts on "No".
func New(engine *navigator.Engine) *ConfirmScreen {
	return &ConfirmScreen{engine: engine}
}

func (c *ConfirmScreen) Init() tea.Cmd {
	return nil
}

func (c *ConfirmScreen) Title() string {
	return "Start New Session"
}

func (c *ConfirmScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Y", Description: "Delete and start over"},
		{Key: "N", Description: "Keep progress"},
		{Key: "←→", Description: "Choose"},
	}
}

func (c *ConfirmScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "y", "Y":
		c.resolve(true)
	case "n", "N", "esc":
		c.resolve(false)
	case "left", "right", "h", "l", "tab":
		c.yes = !c.yes
	case "enter":
		c.resolve(c.yes)
	}
	return c, nil
}

func (c *ConfirmScreen) resolve(yes bool) {
	if err := c.engine.ConfirmNewSession(yes); err != nil {
		c.errMsg = err.Error()
	}
}

func (c *ConfirmScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	warning := lipgloss.NewStyle().
		Foreground(theme.Warning).
		Bold(true).
		Render("This will delete all saved progress.")
	question := theme.Body.Render("Start a new session anyway?")
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		components.NewButton("Yes", c.yes).View(),
		"   ",
		components.NewButton("No", !c.yes).View(),
	)

	parts := []string{warning, question, buttons}
	if c.errMsg != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Error).Render(c.errMsg))
	}

	card := components.Card(lipgloss.NewStyle().Width(cw-6).Align(lipgloss.Center).Render(strings.Join(parts, "\n\n")), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
