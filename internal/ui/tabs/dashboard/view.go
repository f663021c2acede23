package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/d-olmeda/dockside-tui/internal/ui/components"
	"github.com/d-olmeda/dockside-tui/internal/ui/styles"
)

// View renders the dashboard component.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderSummaryCards())
	sections = append(sections, m.renderWeeklyChart())
	sections = append(sections, m.renderHourlyChart())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderLoading renders the loading state.
func (m *Model) renderLoading() string {
	return styles.CenterBoth(m.spinner.ViewWithLabel(), m.width, m.height)
}

// renderTitle renders the dashboard title with the active filters.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Delivery Timing Dashboard")

	data := m.state.GetDashboard()
	provider := data.Provider
	if provider == "" {
		provider = "all providers"
	}
	subtitle := styles.HelpStyle.Render(fmt.Sprintf(
		"%s · last %d completed weeks", provider, data.WeeksBack,
	))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderSummaryCards renders the header stat cards.
func (m *Model) renderSummaryCards() string {
	summary := m.state.GetDashboard().Summary

	cards := []components.StatCard{
		{Title: "Records", Value: strconv.Itoa(summary.Records)},
		{Title: "Mean Wait", Value: formatMinutes(summary.MeanWait)},
		{Title: "Mean Service", Value: formatMinutes(summary.MeanService)},
		{Title: "Mean Total", Value: formatMinutes(summary.MeanTotal)},
		{Title: "Mean Delay", Value: formatMinutes(summary.MeanDelay)},
	}

	return components.RenderStatRow(cards, m.width-4)
}

// renderWeeklyChart renders the per-week timing line chart.
func (m *Model) renderWeeklyChart() string {
	weekly := m.state.GetDashboard().Weekly

	cardWidth := max(m.width-6, 50)

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Weekly Means"))
	rows = append(rows, "")

	if len(weekly) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No completed records in the selected window."))
		return styles.CardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	wait := make([]float64, 0, len(weekly))
	service := make([]float64, 0, len(weekly))
	total := make([]float64, 0, len(weekly))
	delay := make([]float64, 0, len(weekly))
	weeks := make([]string, 0, len(weekly))
	for _, w := range weekly {
		wait = append(wait, w.MeanWait)
		service = append(service, w.MeanService)
		total = append(total, w.MeanTotal)
		delay = append(delay, w.MeanDelay)
		weeks = append(weeks, fmt.Sprintf("W%02d", w.Week))
	}

	chart := components.RenderTimingChart(wait, service, total, cardWidth-10, 10, "minutes")
	rows = append(rows, chart)
	rows = append(rows, "")
	rows = append(rows, components.RenderLegend([]components.LegendItem{
		{Label: "wait", Color: styles.Warning},
		{Label: "service", Color: styles.Primary},
		{Label: "total", Color: styles.Success},
	}))
	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("weeks: "+strings.Join(weeks, " ")))
	rows = append(rows, "")
	rows = append(rows, styles.SubTitleStyle.Render("Mean Delay"))
	rows = append(rows, components.RenderLineChart(delay, cardWidth-10, 6, "delay minutes"))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderHourlyChart renders mean total minutes per reservation hour.
func (m *Model) renderHourlyChart() string {
	hourly := m.state.GetDashboard().Hourly

	cardWidth := max(m.width-6, 50)

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("By Reservation Hour"))
	rows = append(rows, "")

	if len(hourly) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No completed records in the selected window."))
		return styles.CardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	totals := make([]float64, 0, len(hourly))
	delays := make([]float64, 0, len(hourly))
	labels := make([]string, 0, len(hourly))
	for _, h := range hourly {
		totals = append(totals, h.MeanTotal)
		delays = append(delays, h.MeanDelay)
		labels = append(labels, fmt.Sprintf("%02d:00", h.Hour))
	}

	rows = append(rows, styles.SubTitleStyle.Render("Mean Total"))
	rows = append(rows, components.RenderBarChart(totals, labels, cardWidth-8))
	rows = append(rows, "")
	rows = append(rows, styles.SubTitleStyle.Render("Mean Delay"))
	rows = append(rows, components.RenderBarChart(delays, labels, cardWidth-8))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func formatMinutes(v float64) string {
	return fmt.Sprintf("%.1fm", v)
}
