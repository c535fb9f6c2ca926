package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neonflip/internal/core"
)

// MenuChoice is an entry of the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceLeaderboard
	ChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

var menuItems = []MenuItem{
	{ChoicePlay, "Play"},
	{ChoiceLeaderboard, "Leaderboard"},
	{ChoiceQuit, "Quit"},
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201"))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	highScore int
	keys      MenuKeyMap
	help      help.Model
	selected  MenuChoice
}

// NewMenuModel creates a new menu model.
func NewMenuModel(rt core.RuntimeConfig, highScore int) MenuModel {
	hp := help.New()
	hp.Width = rt.ScreenW
	return MenuModel{
		width:     rt.ScreenW,
		height:    rt.ScreenH,
		highScore: highScore,
		keys:      DefaultMenuKeyMap(),
		help:      hp,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.selected = ChoiceQuit
		return m, tea.Quit

	case core.ActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, len(menuItems)-1)

	case core.ActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, len(menuItems)-1)

	case core.ActionConfirm:
		m.selected = menuItems[m.cursor].Choice
		if m.selected == ChoiceQuit {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("N E O N   F L I P"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Best: %d", m.highScore), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := "  " + item.Title
		if i == m.cursor {
			line = cursorStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, or ChoiceNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
