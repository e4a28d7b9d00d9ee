// Package tui provides the Bubble Tea front end for ChromoEcho: the game
// loop, key bindings, level picker, runs board and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one simulation tick.
type TickMsg time.Time

// tickCmd schedules the next tick. Every TickMsg steps the game exactly once,
// so the game's fixed tick and the TUI's refresh share one rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
