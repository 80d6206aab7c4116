package review

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"veriq/internal/filter"
	"veriq/internal/result"
)

// Model renders an interactive result browser using Bubble Tea.
type Model struct {
	results []result.VerificationResult
	outcome filter.Outcome
	table   table.Model
	noColor bool
}

// Options configures the review model.
type Options struct {
	NoColor bool
}

// NewModel constructs a review model over a fixed result set.
func NewModel(results []result.VerificationResult, opts Options) Model {
	t := table.New(
		table.WithColumns(defaultColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	m := Model{
		results: results,
		outcome: filter.OutcomeAny,
		table:   t,
		noColor: opts.NoColor,
	}
	m.table.SetRows(rowsFor(visibleResults(m.results, m.outcome)))
	return m
}

// Init performs no IO: the result set is loaded before the UI starts.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update consumes key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-4, 1))
		m.table.SetColumns(columnsForWidth(typed.Width))
		return m, nil
	case tea.KeyMsg:
		switch typed.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "p":
			return m.withOutcome(filter.OutcomePassed), nil
		case "f":
			return m.withOutcome(filter.OutcomeFailed), nil
		case "n":
			return m.withOutcome(filter.OutcomeNotApplicable), nil
		case "a":
			return m.withOutcome(filter.OutcomeAny), nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m Model) View() string {
	header := renderHeader(visibleResults(m.results, m.outcome), m.outcome, m.noColor)
	footer := renderFooter(m.noColor)
	return lipgloss.JoinVertical(lipgloss.Left, header, m.table.View(), footer)
}

// withOutcome switches the outcome filter, toggling back to all when the
// same filter is pressed twice.
func (m Model) withOutcome(outcome filter.Outcome) Model {
	if m.outcome == outcome {
		outcome = filter.OutcomeAny
	}
	m.outcome = outcome
	m.table.SetRows(rowsFor(visibleResults(m.results, m.outcome)))
	m.table.GotoTop()
	return m
}
