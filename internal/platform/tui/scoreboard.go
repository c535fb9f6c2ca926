package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neonflip/internal/scores"
	"github.com/vovakirdan/neonflip/internal/storage"
)

// Scoreboard layout constants
const (
	maxScores     = 100 // Max scores to load
	fetchTimeout  = 5 * time.Second
	anonymousName = "-"
)

// LeaderboardFetcher loads the global leaderboard. *scores.Client implements it.
type LeaderboardFetcher interface {
	Leaderboard(ctx context.Context) ([]scores.LeaderboardEntry, error)
}

// ScoreboardSource selects which leaderboard is shown.
type ScoreboardSource int

const (
	SourceLocal ScoreboardSource = iota
	SourceGlobal
)

func (s ScoreboardSource) String() string {
	if s == SourceGlobal {
		return "Global"
	}
	return "Local"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Switch  key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Refresh, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch, k.Refresh},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right"),
			key.WithHelp("tab", "local/global"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// globalScoresMsg carries the result of a leaderboard fetch.
type globalScoresMsg struct {
	entries []scores.LeaderboardEntry
	err     error
}

// ScoreboardModel is the Bubble Tea model for the leaderboard screen.
type ScoreboardModel struct {
	store     *storage.Store
	remote    LeaderboardFetcher
	source    ScoreboardSource
	rows      []table.Row
	loading   bool
	err       error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model. Either store or remote
// may be nil.
func NewScoreboardModel(store *storage.Store, remote LeaderboardFetcher, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		store:  store,
		remote: remote,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	if store == nil && remote != nil {
		m.source = SourceGlobal
		m.loading = true
	}

	m.table = m.createTable()
	if m.source == SourceLocal {
		m.loadLocal()
	}
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 16},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 14},
	}

	// Give extra width to the player column
	if extra := m.width - 4 - 6 - 16 - 8 - 14 - 8; extra > 0 {
		columns[1].Width += min(extra, 16)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadLocal loads the local top scores.
func (m *ScoreboardModel) loadLocal() {
	m.err = nil
	if m.store == nil {
		m.setRows(nil)
		return
	}

	entries, err := m.store.TopScores(maxScores)
	if err != nil {
		m.err = err
		m.setRows(nil)
		return
	}
	m.setRows(LocalRows(entries))
}

// fetchGlobal returns a command that loads the global leaderboard.
func (m *ScoreboardModel) fetchGlobal() tea.Cmd {
	if m.remote == nil {
		m.err = fmt.Errorf("global leaderboard not configured")
		m.setRows(nil)
		return nil
	}

	m.loading = true
	m.err = nil
	remote := m.remote
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		entries, err := remote.Leaderboard(ctx)
		return globalScoresMsg{entries: entries, err: err}
	}
}

func (m *ScoreboardModel) setRows(rows []table.Row) {
	m.rows = rows
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// LocalRows formats stored games as table rows.
func LocalRows(entries []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		name := e.Username
		if name == "" {
			name = anonymousName
		}
		date := ""
		if !e.CreatedAt.IsZero() {
			date = e.CreatedAt.Format("Jan 02 15:04")
		}
		rows[i] = table.Row{fmt.Sprintf("#%d", i+1), name, fmt.Sprintf("%d", e.Score), date}
	}
	return rows
}

// GlobalRows formats leaderboard entries as table rows.
func GlobalRows(entries []scores.LeaderboardEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{fmt.Sprintf("#%d", e.Rank), e.Username, fmt.Sprintf("%d", e.HighScore), ""}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	if m.source == SourceGlobal {
		return m.fetchGlobal()
	}
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Switch):
			if m.source == SourceLocal {
				m.source = SourceGlobal
				return m, m.fetchGlobal()
			}
			m.source = SourceLocal
			m.loading = false
			m.loadLocal()
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			if m.source == SourceGlobal {
				return m, m.fetchGlobal()
			}
			m.loadLocal()
			return m, nil
		}

	case globalScoresMsg:
		if m.source != SourceGlobal {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.setRows(GlobalRows(msg.entries))
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	heading := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(heading.Render(centerText(fmt.Sprintf("HIGH SCORES - %s", m.source), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or a placeholder message.
func (m ScoreboardModel) renderTableContent() string {
	placeholder := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loading:
		return placeholder.Render("Loading...")
	case m.err != nil:
		return errorStyle.Padding(2, 4).Render("Could not load scores:\n" + m.err.Error())
	case len(m.rows) == 0:
		return placeholder.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// Source returns the leaderboard being shown.
func (m ScoreboardModel) Source() ScoreboardSource {
	return m.source
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
