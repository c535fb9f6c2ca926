package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neonflip/internal/config"
	"github.com/vovakirdan/neonflip/internal/core"
	"github.com/vovakirdan/neonflip/internal/games/neonflip"
	"github.com/vovakirdan/neonflip/internal/session"
)

var (
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// GameModel is the Bubble Tea model for a Neon Flip game screen.
// Ticks and key presses both arrive on the Bubble Tea loop, so input is
// always applied between ticks.
type GameModel struct {
	ctrl       *session.Controller
	cfg        config.NeonFlipConfig
	screen     *core.Screen
	keys       GameKeyMap
	help       help.Model
	tickRate   int
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game screen driving ctrl on a terminal of the given size.
func NewGameModel(ctrl *session.Controller, cfg config.NeonFlipConfig, rt core.RuntimeConfig) GameModel {
	w, h := PlayfieldSize(rt.ScreenW, rt.ScreenH)
	tickRate := rt.TickRate
	if tickRate <= 0 {
		tickRate = cfg.Timing.TickRate
	}

	hp := help.New()
	hp.Width = rt.ScreenW

	return GameModel{
		ctrl:     ctrl,
		cfg:      cfg,
		screen:   core.NewScreen(w, h),
		keys:     DefaultGameKeyMap(),
		help:     hp,
		tickRate: tickRate,
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if m.ctrl.IsPlaying() {
			m.ctrl.Step()
		}
		return m, tickCmd(m.tickRate)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.ctrl.State()

	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionFlip:
		if state == neonflip.StateMenu {
			m.ctrl.Start()
		} else {
			m.ctrl.Flip()
		}

	case core.ActionPause:
		m.ctrl.TogglePause()

	case core.ActionRestart:
		if state == neonflip.StateMenu || state == neonflip.StateGameOver {
			m.ctrl.Start()
		}

	case core.ActionBack:
		m.ctrl.Pause()
		m.backToMenu = true
	}

	return m, nil
}

// handleResize resizes the screen. The world follows on the next start so
// a running game keeps its geometry.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	w, h := PlayfieldSize(msg.Width, msg.Height)
	m.screen.Resize(w, h)
	m.help.Width = msg.Width

	//nolint:errcheck // WorldSize never returns a world below the minimum
	m.ctrl.Resize(WorldSize(m.cfg, w, h))
	return m, nil
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	worldW, worldH := m.ctrl.World()
	neonflip.Render(m.screen, m.ctrl.Snapshot(), worldW, worldH)
	return RenderScreen(m.screen) + "\n" + m.statusLine()
}

// statusLine shows the submission outcome after a game, help otherwise.
func (m GameModel) statusLine() string {
	if m.ctrl.IsGameOver() {
		if sub, ok := m.ctrl.LastSubmission(); ok && sub.Score == m.ctrl.Score() {
			switch {
			case sub.Err != nil:
				return errorStyle.Render("score not saved: " + sub.Err.Error())
			case sub.Result.NewHighScore:
				return noticeStyle.Render("New high score!")
			}
		}
	}
	return helpStyle.Render(m.help.View(m.keys))
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
