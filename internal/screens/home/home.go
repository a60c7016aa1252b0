package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberlab/internal/navigator"
	"github.com/abhisek/cyberlab/internal/router"
	"github.com/abhisek/cyberlab/internal/screen"
	"github.com/abhisek/cyberlab/internal/ui/components"
	"github.com/abhisek/cyberlab/internal/ui/layout"
	"github.com/abhisek/cyberlab/internal/ui/theme"
)

var optionLabels = map[navigator.MenuOption]string{
	navigator.OptionContinue:     "Continue",
	navigator.OptionNewSession:   "Start New Session",
	navigator.OptionViewProgress: "View Progress",
	navigator.OptionExit:         "Exit",
}

// HomeScreen is the main menu.
type HomeScreen struct {
	engine *navigator.Engine
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the main menu for engine. When history is non-nil an extra
// entry opens the screen it builds.
func New(engine *navigator.Engine, history func() screen.Screen) *HomeScreen {
	h := &HomeScreen{engine: engine}

	var items []components.MenuItem
	for _, opt := range engine.MainMenuOptions() {
		if opt == navigator.OptionExit && history != nil {
			items = append(items, components.MenuItem{Label: "Attempt History", Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: history()} }
			}})
		}
		items = append(items, components.MenuItem{Label: optionLabels[opt], Action: h.choose(opt)})
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) choose(opt navigator.MenuOption) func() tea.Cmd {
	return func() tea.Cmd {
		if err := h.engine.SelectMainMenu(opt); err != nil {
			h.errMsg = err.Error()
		}
		return nil
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Main Menu"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderBanner(cw))
	sections = append(sections, theme.Subtitle.Width(cw).Render("Hands-on cybersecurity scenarios"))
	sections = append(sections, h.renderStatus(cw))
	sections = append(sections, lipgloss.NewStyle().Width(cw).Render(h.menu.View()))
	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(h.errMsg))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) renderStatus(cw int) string {
	sum := h.engine.Tracker().Summary()
	var text string
	if !sum.HasProgress {
		text = "No saved session"
	} else {
		text = fmt.Sprintf("Session %s  ·  %.0f%% complete  ·  %.1f points",
			shortID(sum.SessionID), sum.CompletionPct, sum.TotalScore)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(text)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
