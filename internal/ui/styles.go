package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/service"
)

var (
	// Base colors
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	successColor = lipgloss.Color("42")
	warningColor = lipgloss.Color("214")
	errorColor   = lipgloss.Color("196")

	// Chrome
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	helpStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle = lipgloss.NewStyle().Foreground(errorColor)
	busyStyle  = lipgloss.NewStyle().Foreground(warningColor)

	// Auth form
	authCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	authLabelStyle = lipgloss.NewStyle().Bold(true)

	// Board columns
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedColumnStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().Bold(true)
	cardDescStyle  = lipgloss.NewStyle().Foreground(mutedColor)

	selectedCardStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255"))

	// Status column headers
	statusColors = map[string]lipgloss.Color{
		service.StatusNotStarted: mutedColor,
		service.StatusPending:    warningColor,
		service.StatusCompleted:  successColor,
	}
)

// statusHeaderStyle returns the header style for a status column.
func statusHeaderStyle(status string) lipgloss.Style {
	color, ok := statusColors[status]
	if !ok {
		color = lipgloss.Color("255")
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}
