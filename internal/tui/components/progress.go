package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"

	"stylemig/internal/tui/styles"
)

// Counter is a progress bar with a done/total label
type Counter struct {
	bar   progress.Model
	Done  int
	Total int
}

// NewCounter creates a counter for total items
func NewCounter(total int) Counter {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage())
	bar.EmptyColor = string(styles.Subtle)
	return Counter{bar: bar, Total: total}
}

// SetWidth resizes the bar
func (c *Counter) SetWidth(width int) {
	if width < 10 {
		width = 10
	}
	c.bar.Width = width
}

// Percent returns the completed fraction
func (c Counter) Percent() float64 {
	if c.Total == 0 {
		return 1
	}
	return float64(c.Done) / float64(c.Total)
}

// View renders the bar and label
func (c Counter) View() string {
	return c.bar.ViewAs(c.Percent()) + " " + styles.Muted.Render(fmt.Sprintf("%d/%d", c.Done, c.Total))
}
