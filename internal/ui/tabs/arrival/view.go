package arrival

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/d-olmeda/dockside-tui/internal/ui/styles"
)

// View renders the arrival tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	var sections []string

	sections = append(sections, m.renderTitle())

	if m.editing {
		sections = append(sections, m.renderTimeForm())
	} else {
		sections = append(sections, m.renderTable())
	}

	sections = append(sections, m.renderFooter())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

// renderLoading renders the loading state.
func (m *Model) renderLoading() string {
	return styles.CenterBoth(m.spinner.ViewWithLabel(), m.width, m.height)
}

// renderTitle renders the arrival tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Arrival Registration")

	view := m.state.GetDayView()
	subtitle := styles.HelpStyle.Render(fmt.Sprintf(
		"%s · %d pending · %d arrived · %d completed",
		view.Date.Format("Mon 02 Jan"),
		len(view.Pending), len(view.Arrived), len(view.Completed),
	))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderTable renders the pending reservations table.
func (m *Model) renderTable() string {
	if len(m.state.GetDayView().Pending) == 0 {
		return m.renderEmptyState()
	}

	m.updateTableData()

	cardWidth := m.width - 6
	if cardWidth < 60 {
		cardWidth = 60
	}

	return styles.CardStyle.Width(cardWidth).Render(m.table.View())
}

// renderEmptyState renders the empty state when nothing is pending.
func (m *Model) renderEmptyState() string {
	cardWidth := m.width - 6
	if cardWidth < 40 {
		cardWidth = 40
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		styles.SubTitleStyle.Render("No Pending Deliveries"),
		"",
		styles.HelpStyle.Render("Every booked order for today has already arrived."),
		"",
	)

	return styles.CardStyle.Width(cardWidth).Render(content)
}

// renderTimeForm renders the arrival time form.
func (m *Model) renderTimeForm() string {
	cardWidth := m.width - 10
	if cardWidth < 40 {
		cardWidth = 40
	}
	if cardWidth > 60 {
		cardWidth = 60
	}

	var rows []string

	rows = append(rows, styles.CardTitleStyle.Render(fmt.Sprintf("Register Arrival · %s", m.orderID)))
	rows = append(rows, "")

	rows = append(rows, styles.FocusedStyle.Render("> Arrival time:"))
	rows = append(rows, styles.FocusedBorderStyle.Width(16).Render(m.timeInput.View()))
	rows = append(rows, "")

	if m.errText != "" {
		rows = append(rows, styles.ErrorTextStyle.Render(m.errText))
		rows = append(rows, "")
	}

	rows = append(rows, styles.HelpStyle.Render("Enter: confirm | Esc: cancel"))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	return styles.ModalContentStyle.Width(cardWidth).Render(content)
}

// renderFooter renders the footer with keyboard shortcuts.
func (m *Model) renderFooter() string {
	var shortcuts []string

	if m.editing {
		shortcuts = []string{
			styles.HelpKeyStyle.Render("Enter") + " confirm",
			styles.HelpKeyStyle.Render("Esc") + " cancel",
		}
	} else {
		shortcuts = []string{
			styles.HelpKeyStyle.Render("Enter") + " register",
			styles.HelpKeyStyle.Render("n") + " arrive now",
			styles.HelpKeyStyle.Render("r") + " refresh",
		}
	}

	footer := ""
	for i, s := range shortcuts {
		if i > 0 {
			footer += styles.HelpSeparatorStyle.Render(" | ")
		}
		footer += s
	}

	return lipgloss.NewStyle().
		MarginTop(1).
		Foreground(styles.TextMuted).
		Render(footer)
}
