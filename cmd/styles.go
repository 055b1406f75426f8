package cmd

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

func statusStyle(s string) lipgloss.Style {
	switch s {
	case "extracted", "loaded", "validated", "completed", "done":
		return okStyle
	case "failed", "cancelled", "validate-failed", "blocked", "critical":
		return failStyle
	case "skipped", "partial", "high", "warning":
		return warnStyle
	}
	return dimStyle
}
