package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultTickRate = 60

// TickMsg asks the game screen to advance the simulation by one step.
// The game screen keeps the chain alive while it is shown; paused or
// finished games receive ticks but do not step.
type TickMsg time.Time

// tickInterval is the delay between ticks at tickRate Hz.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
