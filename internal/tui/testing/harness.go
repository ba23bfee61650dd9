// Package testing drives Bubble Tea models in tests without a terminal.
package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// TestHarness feeds messages to a Bubble Tea model
type TestHarness struct {
	model tea.Model
}

// NewTestHarness creates a new test harness wrapping a Bubble Tea model
func NewTestHarness(model tea.Model) *TestHarness {
	return &TestHarness{model: model}
}

// Model returns the current model state
func (h *TestHarness) Model() tea.Model {
	return h.model
}

// SendKey sends a single key message and returns the resulting command
func (h *TestHarness) SendKey(key string) tea.Cmd {
	return h.SendMsg(KeyMsg(key))
}

// SendMsg sends any tea.Msg to the model
func (h *TestHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	return cmd
}

// SendMsgs sends messages in order and returns the last command
func (h *TestHarness) SendMsgs(msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		cmd = h.SendMsg(msg)
	}
	return cmd
}

// SendWindowSize sends a window size message
func (h *TestHarness) SendWindowSize(width, height int) tea.Cmd {
	return h.SendMsg(tea.WindowSizeMsg{Width: width, Height: height})
}

// View returns the current view of the model
func (h *TestHarness) View() string {
	return h.model.View()
}

// IsQuit reports whether cmd produces tea.Quit
func IsQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// KeyMsg converts a key string to a tea.KeyMsg. Named keys "esc", "enter"
// and "ctrl+c" are supported; anything else is sent as runes.
func KeyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
