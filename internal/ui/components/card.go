package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/d-olmeda/dockside-tui/internal/ui/styles"
)

// StatCard is a small bordered card with a title and a single value.
type StatCard struct {
	Title string
	Value string
}

// RenderStatCard renders one card at the given width.
func RenderStatCard(card StatCard, width int) string {
	title := styles.CardTitleStyle.Render(card.Title)
	value := lipgloss.NewStyle().Foreground(styles.TextPrimary).Bold(true).Render(card.Value)

	content := lipgloss.JoinVertical(lipgloss.Left, title, value)
	return styles.CardStyle.Width(width).Render(content)
}

// RenderStatRow lays out several cards side by side, splitting the available
// width evenly.
func RenderStatRow(cards []StatCard, totalWidth int) string {
	if len(cards) == 0 {
		return ""
	}

	cardWidth := totalWidth/len(cards) - 4
	if cardWidth < 12 {
		cardWidth = 12
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		rendered[i] = RenderStatCard(card, cardWidth)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
