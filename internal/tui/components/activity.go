package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"stylemig/internal/tui/styles"
)

// maxShown is the number of in-flight names listed before "+N more"
const maxShown = 4

// Activity animates while work is in flight and names what is running
type Activity struct {
	spinner spinner.Model
	running map[string]bool
	idle    string
}

// NewActivity creates an activity line. idle is shown while nothing runs.
func NewActivity(idle string) Activity {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle
	return Activity{
		spinner: s,
		running: make(map[string]bool),
		idle:    idle,
	}
}

// Start marks name as running
func (a *Activity) Start(name string) {
	a.running[name] = true
}

// Stop marks name as finished
func (a *Activity) Stop(name string) {
	delete(a.running, name)
}

// Len returns the number of running names
func (a Activity) Len() int {
	return len(a.running)
}

// Update advances the animation
func (a *Activity) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.spinner, cmd = a.spinner.Update(msg)
	return cmd
}

// Tick starts the animation
func (a Activity) Tick() tea.Cmd {
	return a.spinner.Tick
}

// View renders the running names sorted, or the idle marker
func (a Activity) View() string {
	if len(a.running) == 0 {
		if a.idle == "" {
			return ""
		}
		return styles.StatusPending.String() + " " + styles.Muted.Render(a.idle)
	}

	names := make([]string, 0, len(a.running))
	for name := range a.running {
		names = append(names, name)
	}
	sort.Strings(names)

	line := strings.Join(names, ", ")
	if len(names) > maxShown {
		line = strings.Join(names[:maxShown], ", ") +
			styles.Muted.Render(fmt.Sprintf(" +%d more", len(names)-maxShown))
	}
	return a.spinner.View() + " " + line
}
