package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/goalplan/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// AchievabilityBar shows how much of the goal the current path covers.
// Ratios above 100% fill the bar and are printed as is.
type AchievabilityBar struct {
	RatioPct    decimal.Decimal
	NearMissPct decimal.Decimal
	Width       int
	Label       string
}

// NewAchievabilityBar creates a bar for a ratio in whole percent
func NewAchievabilityBar(ratioPct decimal.Decimal) *AchievabilityBar {
	return &AchievabilityBar{
		RatioPct:    ratioPct,
		NearMissPct: decimal.NewFromInt(80),
		Width:       40,
	}
}

// WithLabel sets the bar label
func (b *AchievabilityBar) WithLabel(label string) *AchievabilityBar {
	b.Label = label
	return b
}

// WithWidth sets the bar width
func (b *AchievabilityBar) WithWidth(width int) *AchievabilityBar {
	b.Width = width
	return b
}

// WithNearMiss sets the ratio from which the plan counts as close
func (b *AchievabilityBar) WithNearMiss(pct decimal.Decimal) *AchievabilityBar {
	if pct.IsPositive() {
		b.NearMissPct = pct
	}
	return b
}

// Tone classifies the ratio
func (b *AchievabilityBar) Tone() tuistyles.Tone {
	switch {
	case b.RatioPct.GreaterThanOrEqual(decimal.NewFromInt(100)):
		return tuistyles.ToneGood
	case b.RatioPct.GreaterThanOrEqual(b.NearMissPct):
		return tuistyles.ToneWarn
	default:
		return tuistyles.ToneBad
	}
}

// Filled returns the number of filled cells
func (b *AchievabilityBar) Filled() int {
	if !b.RatioPct.IsPositive() || b.Width <= 0 {
		return 0
	}
	filled := int(b.RatioPct.Mul(decimal.NewFromInt(int64(b.Width))).Div(decimal.NewFromInt(100)).IntPart())
	if filled > b.Width {
		filled = b.Width
	}
	return filled
}

// Render returns the styled bar
func (b *AchievabilityBar) Render() string {
	var sb strings.Builder
	if b.Label != "" {
		sb.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Bold(true).Render(b.Label))
		sb.WriteString("\n")
	}

	filled := b.Filled()
	fill := lipgloss.NewStyle().Foreground(tuistyles.ToneColor(b.Tone()))
	empty := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	sb.WriteString("[")
	sb.WriteString(fill.Render(strings.Repeat("█", filled)))
	sb.WriteString(empty.Render(strings.Repeat("░", b.Width-filled)))
	sb.WriteString("] ")
	sb.WriteString(tuistyles.ToneStyle(b.Tone()).Bold(true).Render(fmt.Sprintf("%s%%", b.RatioPct.StringFixed(1))))
	return sb.String()
}
