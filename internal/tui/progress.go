// Package tui shows live progress of a batch conversion in the terminal.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"stylemig/internal/batch"
	"stylemig/internal/tui/components"
	"stylemig/internal/tui/styles"
)

// EventMsg carries a batch progress event into the model
type EventMsg batch.Event

// DoneMsg tells the model the batch has finished
type DoneMsg struct{}

// maxRecent is the number of finished styles kept on screen
const maxRecent = 8

// Model is the batch progress screen
type Model struct {
	title   string
	activity components.Activity
	counter  components.Counter
	recent  []batch.Result
	failed  int
	width   int

	cancel   func()
	quitting bool
	done     bool
}

// NewModel creates a progress model for total inputs. cancel is called
// when the user quits before the batch is done.
func NewModel(title string, total int, cancel func()) *Model {
	if cancel == nil {
		cancel = func() {}
	}
	return &Model{
		title:   title,
		activity: components.NewActivity("waiting for workers"),
		counter:  components.NewCounter(total),
		cancel:   cancel,
		width:    80,
	}
}

// Init starts the activity animation
func (m *Model) Init() tea.Cmd {
	return m.activity.Tick()
}

// Update handles events
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if !m.done {
				m.quitting = true
				m.cancel()
			}
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.counter.SetWidth(msg.Width - 20)
		return m, nil

	case EventMsg:
		m.apply(batch.Event(msg))
		return m, nil

	case DoneMsg:
		m.done = true
		return m, tea.Quit
	}

	cmd := m.activity.Update(msg)
	return m, cmd
}

func (m *Model) apply(e batch.Event) {
	switch e.Kind {
	case batch.Started:
		m.activity.Start(displayName(e.Input))
	case batch.Finished:
		m.activity.Stop(displayName(e.Input))
		m.counter.Done = e.Done
		if e.Result == nil {
			return
		}
		if e.Result.Err != nil {
			m.failed++
		}
		m.recent = append(m.recent, *e.Result)
		if len(m.recent) > maxRecent {
			m.recent = m.recent[len(m.recent)-maxRecent:]
		}
	}
}

// Done reports whether the batch finished
func (m *Model) Done() bool {
	return m.done
}

// Canceled reports whether the user quit before the batch finished
func (m *Model) Canceled() bool {
	return m.quitting
}

// View renders the screen
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("stylemig"))
	b.WriteString("  ")
	b.WriteString(styles.Subtitle.Render(m.title))
	b.WriteString("\n\n")

	for _, r := range m.recent {
		b.WriteString(resultLine(r))
		b.WriteString("\n")
	}
	if len(m.recent) > 0 {
		b.WriteString("\n")
	}

	if !m.done {
		b.WriteString(m.activity.View())
		b.WriteString("\n")
	}

	b.WriteString(m.counter.View())
	if m.failed > 0 {
		b.WriteString("  ")
		b.WriteString(styles.ErrorMsg.Render(fmt.Sprintf("%d failed", m.failed)))
	}
	b.WriteString("\n")

	switch {
	case m.quitting:
		b.WriteString(styles.WarningMsg.Render("Canceling..."))
		b.WriteString("\n")
	case !m.done:
		b.WriteString(styles.FormatHelp("q", "cancel"))
		b.WriteString("\n")
	}

	return b.String()
}

func resultLine(r batch.Result) string {
	if r.Err != nil {
		return styles.StatusFailed.String() + " " + displayName(r.Input) + "  " + styles.ErrorMsg.Render(r.Err.Error())
	}
	rep := r.Report
	return fmt.Sprintf("%s %s  %s  %s",
		styles.StatusOK.String(),
		rep.Name,
		styles.Tier(rep.Tier).Render(rep.Tier),
		styles.Muted.Render(fmt.Sprintf("%d sections", len(rep.Spliced))))
}

func displayName(input string) string {
	input = strings.TrimRight(input, "/\\")
	if i := strings.LastIndexAny(input, "/\\"); i >= 0 {
		return input[i+1:]
	}
	return input
}
