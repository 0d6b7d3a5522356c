// Package tuistyles holds the colors and lipgloss styles shared by the TUI
// scenes and components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/goalplan/internal/money"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#43BF6D")
	ColorAccent    = lipgloss.Color("#F25D94")
	ColorSuccess   = lipgloss.Color("#04B575")
	ColorWarning   = lipgloss.Color("#E8A317")
	ColorDanger    = lipgloss.Color("#FF4672")
	ColorInfo      = lipgloss.Color("#3C9DD0")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#888888")
	ColorBorder     = lipgloss.Color("#444444")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Width(26)

	FocusedFieldLabelStyle = FieldLabelStyle.
				Foreground(ColorPrimary).
				Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)
)

// Tone is how a metric should read at a glance
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGood
	ToneWarn
	ToneBad
)

// ToneColor maps a tone to its accent color
func ToneColor(t Tone) lipgloss.Color {
	switch t {
	case ToneGood:
		return ColorSuccess
	case ToneWarn:
		return ColorWarning
	case ToneBad:
		return ColorDanger
	default:
		return ColorBorder
	}
}

// ToneStyle colors text by tone
func ToneStyle(t Tone) lipgloss.Style {
	if t == ToneNeutral {
		return lipgloss.NewStyle().Foreground(ColorForeground)
	}
	return lipgloss.NewStyle().Foreground(ToneColor(t))
}

// FormatCurrency formats an amount for display
func FormatCurrency(amount decimal.Decimal) string {
	return money.Format(amount)
}
