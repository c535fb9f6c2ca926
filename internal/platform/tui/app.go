package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/neonflip/internal/config"
	"github.com/vovakirdan/neonflip/internal/core"
	"github.com/vovakirdan/neonflip/internal/games/neonflip"
	"github.com/vovakirdan/neonflip/internal/scores"
	"github.com/vovakirdan/neonflip/internal/session"
	"github.com/vovakirdan/neonflip/internal/storage"
)

// Deps are the shared services a player session uses.
type Deps struct {
	Config        config.NeonFlipConfig
	Runtime       core.RuntimeConfig
	Store         *storage.Store // Optional local score storage
	Remote        *scores.Client // Optional score API
	Username      string
	SubmitTimeout time.Duration
	Logger        *log.Logger
}

// NewController builds an engine sized for the terminal and a session
// controller that submits final scores to every configured destination.
func NewController(deps Deps) (*session.Controller, error) {
	rt := deps.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.TickRate <= 0 {
		rt.TickRate = deps.Config.Timing.TickRate
	}

	cols, rows := PlayfieldSize(rt.ScreenW, rt.ScreenH)
	worldW, worldH := WorldSize(deps.Config, cols, rows)
	engine, err := neonflip.NewEngine(deps.Config, worldW, worldH, rt.Seed)
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}

	id := uuid.NewString()
	var subs []scores.Submitter
	if deps.Store != nil {
		if high, err := deps.Store.HighScore(); err == nil {
			engine.SetHighScore(high)
		} else {
			logger.Warn("could not load high score", "error", err)
		}
		subs = append(subs, deps.Store.Recorder(id, deps.Username))
	}
	if deps.Remote != nil && deps.Remote.CanSubmit() {
		subs = append(subs, deps.Remote)
	}

	opts := session.Options{
		ID:            id,
		SubmitTimeout: deps.SubmitTimeout,
		TickRate:      rt.TickRate,
		Logger:        logger.With("user", deps.Username),
	}
	if len(subs) > 0 {
		opts.Submitter = scores.Tee(subs...)
	}
	return session.New(engine, opts), nil
}

type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenScores
)

// AppModel manages the full flow: menu -> game or leaderboard -> menu.
// It is the top-level model for both local and SSH sessions.
type AppModel struct {
	deps     Deps
	rt       core.RuntimeConfig
	ctrl     *session.Controller
	screen   appScreen
	menu     MenuModel
	game     GameModel
	board    ScoreboardModel
	ticking  bool
	quitting bool
}

// NewAppModel creates the app model and its session controller.
// Callers must Close it when the program ends.
func NewAppModel(deps Deps) (AppModel, error) {
	ctrl, err := NewController(deps)
	if err != nil {
		return AppModel{}, err
	}

	return AppModel{
		deps: deps,
		rt:   deps.Runtime,
		ctrl: ctrl,
		menu: NewMenuModel(deps.Runtime, ctrl.HighScore()),
	}, nil
}

// Controller returns the session controller.
func (m AppModel) Controller() *session.Controller {
	return m.ctrl
}

// Close waits for pending score submissions.
func (m AppModel) Close() error {
	return m.ctrl.Close()
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.rt.ScreenW = msg.Width
		m.rt.ScreenH = msg.Height
		cols, rows := PlayfieldSize(msg.Width, msg.Height)
		//nolint:errcheck // WorldSize never returns a world below the minimum
		m.ctrl.Resize(WorldSize(m.deps.Config, cols, rows))

	case TickMsg:
		if m.screen != screenGame {
			m.ticking = false
			return m, nil
		}
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch m.menu.Selected() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		m.game = NewGameModel(m.ctrl, m.deps.Config, m.rt)
		m.screen = screenGame
		if m.ticking {
			return m, nil
		}
		m.ticking = true
		return m, m.game.Init()

	case ChoiceLeaderboard:
		var remote LeaderboardFetcher
		if m.deps.Remote != nil {
			remote = m.deps.Remote
		}
		m.board = NewScoreboardModel(m.deps.Store, remote, m.rt.ScreenW, m.rt.ScreenH)
		m.screen = screenScores
		return m, m.board.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.game = game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.toMenu()
		return m, nil
	}

	return m, cmd
}

// updateScores handles updates on the leaderboard.
func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		m.board = board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		m.toMenu()
		return m, nil
	}

	return m, cmd
}

func (m *AppModel) toMenu() {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.rt, m.ctrl.HighScore())
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.board.View()
	default:
		return m.menu.View()
	}
}

// Run starts a local Bubble Tea program and blocks until the player quits.
func Run(deps Deps) error {
	app, err := NewAppModel(deps)
	if err != nil {
		return err
	}
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
