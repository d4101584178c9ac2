package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors defines the color palette for terminal output.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow
}

// Styles contains the lipgloss styles used by the build report.
type Styles struct {
	Header   lipgloss.Style
	TaskID   lipgloss.Style
	TaskName lipgloss.Style
	DocID    lipgloss.Style
	Command  lipgloss.Style
	Custom   lipgloss.Style
	Root     lipgloss.Style
	After    lipgloss.Style
	Warning  lipgloss.Style
	Summary  lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),
		TaskID: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Width(5),
		TaskName: lipgloss.NewStyle().
			Bold(true),
		DocID: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		Command: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		Custom: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Italic(true),
		Root: lipgloss.NewStyle().
			Foreground(Colors.Success),
		After: lipgloss.NewStyle().
			Foreground(Colors.Warning),
		Warning: lipgloss.NewStyle().
			Foreground(Colors.Warning),
		Summary: lipgloss.NewStyle().
			Foreground(Colors.Success),
	}
}
