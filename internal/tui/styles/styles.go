package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary    = lipgloss.Color("#7C3AED") // Purple
	Secondary  = lipgloss.Color("#10B981") // Green
	Accent     = lipgloss.Color("#F59E0B") // Amber
	Danger     = lipgloss.Color("#EF4444") // Red
	MutedColor = lipgloss.Color("#6B7280") // Gray
	Subtle     = lipgloss.Color("#374151") // Dark gray

	Muted = lipgloss.NewStyle().
		Foreground(MutedColor)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(MutedColor).
		MarginTop(1)

	// Tier badges
	TierSimple = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	TierModerate = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	TierComplex = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			SetString("●")

	StatusFailed = lipgloss.NewStyle().
			Foreground(Danger).
			SetString("✗")

	StatusPending = lipgloss.NewStyle().
			Foreground(MutedColor).
			SetString("○")

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	// Messages
	ErrorMsg = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	SuccessMsg = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	WarningMsg = lipgloss.NewStyle().
			Foreground(Accent)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Primary)
)

// Tier returns the badge style for a tier name
func Tier(name string) lipgloss.Style {
	switch name {
	case "complex":
		return TierComplex
	case "moderate":
		return TierModerate
	default:
		return TierSimple
	}
}

// FormatHelp formats help text with highlighted keys
func FormatHelp(pairs ...string) string {
	var result string
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			result += "  "
		}
		result += HelpKey.Render(pairs[i]) + " " + pairs[i+1]
	}
	return HelpBar.Render(result)
}
