package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/goalplan/internal/tui/tuistyles"
)

// MetricCard displays a single plan figure with a label and optional note
type MetricCard struct {
	Label string
	Value string
	Note  string
	Tone  tuistyles.Tone
	Width int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// WithNote adds a line under the value
func (m *MetricCard) WithNote(note string) *MetricCard {
	m.Note = note
	return m
}

// WithTone colors the value and border
func (m *MetricCard) WithTone(t tuistyles.Tone) *MetricCard {
	m.Tone = t
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.ToneStyle(m.Tone).Bold(true).Render(m.Value)
	if m.Note != "" {
		content += "\n" + tuistyles.MetricLabelStyle.Render(m.Note)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ToneColor(m.Tone)).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns "Label: Value" without a border
func (m *MetricCard) RenderCompact() string {
	return tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.ToneStyle(m.Tone).Render(m.Value)
}

// MetricGrid lays cards out in rows of the given width
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
