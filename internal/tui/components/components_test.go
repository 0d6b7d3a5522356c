package components

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/rgehrsitz/goalplan/internal/tui/tuistyles"
)

func TestAchievabilityBar_Tone(t *testing.T) {
	tests := []struct {
		ratio string
		want  tuistyles.Tone
	}{
		{"120", tuistyles.ToneGood},
		{"100", tuistyles.ToneGood},
		{"85", tuistyles.ToneWarn},
		{"80", tuistyles.ToneWarn},
		{"40", tuistyles.ToneBad},
		{"0", tuistyles.ToneBad},
	}
	for _, tt := range tests {
		t.Run(tt.ratio, func(t *testing.T) {
			bar := NewAchievabilityBar(decimal.RequireFromString(tt.ratio))
			assert.Equal(t, tt.want, bar.Tone())
		})
	}
}

func TestAchievabilityBar_Filled(t *testing.T) {
	bar := NewAchievabilityBar(decimal.NewFromInt(50)).WithWidth(20)
	assert.Equal(t, 10, bar.Filled())

	bar = NewAchievabilityBar(decimal.NewFromInt(250)).WithWidth(20)
	assert.Equal(t, 20, bar.Filled())

	bar = NewAchievabilityBar(decimal.NewFromInt(-5))
	assert.Equal(t, 0, bar.Filled())
}

func TestAchievabilityBar_NearMissOverride(t *testing.T) {
	bar := NewAchievabilityBar(decimal.NewFromInt(85)).WithNearMiss(decimal.NewFromInt(90))
	assert.Equal(t, tuistyles.ToneBad, bar.Tone())

	// Non-positive thresholds keep the default.
	bar = NewAchievabilityBar(decimal.NewFromInt(85)).WithNearMiss(decimal.Zero)
	assert.Equal(t, tuistyles.ToneWarn, bar.Tone())
}

func TestAchievabilityBar_Render(t *testing.T) {
	out := NewAchievabilityBar(decimal.RequireFromString("87.5")).WithLabel("Achievability").Render()
	assert.Contains(t, out, "Achievability")
	assert.Contains(t, out, "87.5%")
}

func TestMetricCard(t *testing.T) {
	card := NewMetricCard("Monthly SIP", "₹12,345").WithNote("for 10 years")
	out := card.Render()
	assert.Contains(t, out, "Monthly SIP")
	assert.Contains(t, out, "₹12,345")
	assert.Contains(t, out, "for 10 years")
	assert.Contains(t, card.RenderCompact(), "Monthly SIP: ₹12,345")
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 3))

	cards := []*MetricCard{
		NewMetricCard("A", "1"),
		NewMetricCard("B", "2"),
		NewMetricCard("C", "3"),
	}
	out := MetricGrid(cards, 2)
	for _, s := range []string{"A", "B", "C"} {
		assert.Contains(t, out, s)
	}
}

func TestGoalCard(t *testing.T) {
	p := profile.Default().MustGet(domain.GoalChildEducation)
	card := NewGoalCard(p)
	assert.Contains(t, card.Highlights, "planned from the child's age")

	assert.NotContains(t, card.Render(), "▶")
	assert.Contains(t, card.SetSelected(true).Render(), "▶ "+p.Title)
}
