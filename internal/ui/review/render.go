package review

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"veriq/internal/filter"
	"veriq/internal/result"
)

// renderHeader renders the count line with the active filter.
func renderHeader(visible []result.VerificationResult, outcome filter.Outcome, noColor bool) string {
	line := strconv.Itoa(len(visible)) + " results"
	if outcome != filter.OutcomeAny {
		line += " | filter: " + string(outcome)
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderFooter renders the key help line.
func renderFooter(noColor bool) string {
	return stylize("p passed | f failed | n not applicable | a all | q quit", noColor, lipgloss.Color("242"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
