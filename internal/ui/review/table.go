package review

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const questionTextWidth = 40

// tableStyles returns table styles for the browser.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	return styles
}

// defaultColumns returns the column layout before the first resize.
func defaultColumns() []table.Column {
	return columnsForWidth(120)
}

// columnsForWidth sizes columns for the terminal width, giving spare space
// to the question text.
func columnsForWidth(width int) []table.Column {
	fixed := 6 + 14 + 12 + 16 + 20 + 14
	question := max(width-fixed-8, 20)
	return []table.Column{
		{Title: "#", Width: 6},
		{Title: "Question ID", Width: 14},
		{Title: "Question", Width: question},
		{Title: "Job", Width: 12},
		{Title: "Model", Width: 16},
		{Title: "Timestamp", Width: 20},
		{Title: "Outcome", Width: 14},
	}
}
