// Package tui provides the Bubble Tea front end for tween scenes.
// It drives the animation scheduler from the frame loop, maps keys to
// playback actions and serves the same models over SSH.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// playerSeq hands out player IDs so each frame loop only sees its own ticks.
var playerSeq atomic.Uint64

// TickMsg is sent once per frame to the player that scheduled it.
type TickMsg struct {
	Player uint64
	Time   time.Time
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, player uint64) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Player: player, Time: t}
	})
}
