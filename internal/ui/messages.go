// Package ui implements the flowstate terminal interface on the Bubble Tea
// event loop. This file defines the internal message types; the store itself
// is synchronous, so the only asynchronous traffic is the two tick streams.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clockTickMsg fires once per second regardless of timer state. It drives
// status-message expiry and keeps the title-bar clock fresh.
type clockTickMsg time.Time

// clockTickCmd schedules the next clock tick.
func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// timerTickMsg advances the pomodoro countdown. The sequence number ties the
// message to the tick stream that scheduled it: stale streams left over from
// an earlier start are dropped, so at most one stream ever drives the
// countdown.
type timerTickMsg struct {
	seq uint64
}

// timerTickCmd schedules a countdown tick for the given stream.
func timerTickCmd(seq uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{seq: seq}
	})
}
