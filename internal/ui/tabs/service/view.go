package service

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/d-olmeda/dockside-tui/internal/ui/styles"
)

// View renders the service tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	var sections []string

	sections = append(sections, m.renderTitle())

	if m.editing {
		sections = append(sections, m.renderServiceForm())
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

// renderTitle renders the service tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Service Windows")

	view := m.state.GetDayView()
	subtitle := styles.HelpStyle.Render(fmt.Sprintf(
		"%s · %d awaiting service · %d completed",
		view.Date.Format("Mon 02 Jan"),
		len(view.Arrived), len(view.Completed),
	))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderTable renders the arrived-but-unserviced table.
func (m *Model) renderTable() string {
	if len(m.state.GetDayView().Arrived) == 0 {
		return m.renderEmptyState()
	}

	m.updateTableData()

	cardWidth := m.width - 6
	if cardWidth < 60 {
		cardWidth = 60
	}

	return styles.CardStyle.Width(cardWidth).Render(m.table.View())
}

// renderEmptyState renders the empty state when no arrivals await service.
func (m *Model) renderEmptyState() string {
	cardWidth := m.width - 6
	if cardWidth < 40 {
		cardWidth = 40
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		styles.SubTitleStyle.Render("No Arrivals Awaiting Service"),
		"",
		styles.HelpStyle.Render("Register arrivals first, then record their service windows here."),
		"",
	)

	return styles.CardStyle.Width(cardWidth).Render(content)
}

// renderServiceForm renders the start/end form.
func (m *Model) renderServiceForm() string {
	cardWidth := m.width - 10
	if cardWidth < 44 {
		cardWidth = 44
	}
	if cardWidth > 64 {
		cardWidth = 64
	}

	var rows []string

	rows = append(rows, styles.CardTitleStyle.Render(fmt.Sprintf("Register Service · %s", m.orderID)))
	rows = append(rows, "")

	startLabel := styles.BlurredStyle.Render("  Start:")
	if m.focusedField == fieldStart {
		startLabel = styles.FocusedStyle.Render("> Start:")
	}
	rows = append(rows, startLabel)

	startInputStyle := styles.BlurredBorderStyle
	if m.focusedField == fieldStart {
		startInputStyle = styles.FocusedBorderStyle
	}
	rows = append(rows, startInputStyle.Width(16).Render(m.startInput.View()))
	rows = append(rows, "")

	endLabel := styles.BlurredStyle.Render("  End:")
	if m.focusedField == fieldEnd {
		endLabel = styles.FocusedStyle.Render("> End:")
	}
	rows = append(rows, endLabel)

	endInputStyle := styles.BlurredBorderStyle
	if m.focusedField == fieldEnd {
		endInputStyle = styles.FocusedBorderStyle
	}
	rows = append(rows, endInputStyle.Width(16).Render(m.endInput.View()))
	rows = append(rows, "")

	submitStyle := styles.ButtonInactiveStyle
	cancelStyle := styles.ButtonInactiveStyle
	if m.focusedField == fieldSubmit {
		submitStyle = styles.ButtonActiveStyle
	}
	if m.focusedField == fieldCancel {
		cancelStyle = styles.ButtonActiveStyle
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		submitStyle.Render(" Register "),
		"  ",
		cancelStyle.Render(" Cancel "),
	)
	rows = append(rows, buttons)
	rows = append(rows, "")

	if m.errText != "" {
		rows = append(rows, styles.ErrorTextStyle.Render(m.errText))
		rows = append(rows, "")
	}

	rows = append(rows, styles.HelpStyle.Render("Tab: next field | Enter: submit | Esc: cancel"))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	return styles.ModalContentStyle.Width(cardWidth).Render(content)
}

// renderFooter renders the footer with keyboard shortcuts.
func (m *Model) renderFooter() string {
	var shortcuts []string

	if m.editing {
		shortcuts = []string{
			styles.HelpKeyStyle.Render("Tab") + " next",
			styles.HelpKeyStyle.Render("Enter") + " submit",
			styles.HelpKeyStyle.Render("Esc") + " cancel",
		}
	} else {
		shortcuts = []string{
			styles.HelpKeyStyle.Render("Enter") + " register",
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
