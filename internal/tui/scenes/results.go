package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/money"
	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/rgehrsitz/goalplan/internal/tui/components"
	"github.com/rgehrsitz/goalplan/internal/tui/tuimsg"
	"github.com/rgehrsitz/goalplan/internal/tui/tuistyles"
)

// NewGoalMsg asks the root model to return to the goal chooser
type NewGoalMsg struct{}

// ResultsModel represents the results display scene
type ResultsModel struct {
	input   domain.GoalPlanInput
	result  *domain.CalculationResult
	profile profile.GoalProfile
	width   int
	height  int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetResult updates the plan to display
func (m *ResultsModel) SetResult(in domain.GoalPlanInput, res *domain.CalculationResult, p profile.GoalProfile) {
	m.input = in
	m.result = res
	m.profile = p
}

// Result returns the plan on display
func (m *ResultsModel) Result() *domain.CalculationResult {
	return m.result
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("esc"))):
		return m, func() tea.Msg { return tuimsg.BackMsg{} }
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("n"))):
		return m, func() tea.Msg { return NewGoalMsg{} }
	}
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.result == nil {
		return "No results to display.\n\nFill in a goal and press enter to calculate.\n\nPress ESC to go back."
	}

	subtitle := fmt.Sprintf("%s • %d years to goal", m.profile.Title, m.result.YearsToGoal)
	if n := m.attentionCount(); n > 0 {
		subtitle += fmt.Sprintf(" • %d to review", n)
	}
	header := lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Plan for "+m.input.DisplayName()),
		tuistyles.SubtitleStyle.Render(subtitle),
	)

	columns := 3
	if m.width > 0 && m.width < 90 {
		columns = 2
	}

	bar := components.NewAchievabilityBar(m.result.AchievabilityRatio).
		WithNearMiss(m.profile.Thresholds.NearMissPct).
		WithLabel("Achievability")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		components.MetricGrid(m.metricCards(), columns),
		"",
		bar.Render(),
		"",
		m.renderRecommendations(),
		"",
		renderResultsHelp(),
	)
}

// attentionCount is the number of warnings and errors in the plan
func (m *ResultsModel) attentionCount() int {
	return len(m.result.RecommendationsOfKind(domain.KindWarning)) +
		len(m.result.RecommendationsOfKind(domain.KindError))
}

func (m *ResultsModel) metricCards() []*components.MetricCard {
	r := m.result
	cards := []*components.MetricCard{
		components.NewMetricCard("Total Goal Cost", money.Format(r.TotalGoalCost)).
			WithNote("today " + money.Format(m.input.BaseCost)),
		components.NewMetricCard("Required At Goal", money.Format(r.TotalRequiredAtGoal)),
		components.NewMetricCard("Monthly SIP", money.Format(r.SIPRequired)).
			WithTone(tuistyles.ToneNeutral),
	}
	if r.LoanAmount.IsPositive() {
		cards = append(cards, components.NewMetricCard("EMI", money.Format(r.EMIAmount)).
			WithNote(fmt.Sprintf("loan %s", money.Format(r.LoanAmount))))
	}

	projected := components.NewMetricCard("Projected Value", money.Format(r.FutureValue))
	shortfall := components.NewMetricCard("Shortfall", money.Format(r.Shortfall))
	if r.IsAchievable() {
		projected.WithTone(tuistyles.ToneGood)
		shortfall.WithTone(tuistyles.ToneGood)
	} else {
		shortfall.WithTone(tuistyles.ToneBad)
	}
	return append(cards, projected, shortfall)
}

func (m *ResultsModel) renderRecommendations() string {
	if len(m.result.Recommendations) == 0 {
		return ""
	}
	lines := []string{tuistyles.SubtitleStyle.Bold(true).Render("Recommendations")}
	for _, rec := range m.result.Recommendations {
		tone, icon := recommendationTone(rec.Kind)
		lines = append(lines, tuistyles.ToneStyle(tone).Render(icon)+" "+rec.Text)
	}
	return strings.Join(lines, "\n")
}

func recommendationTone(kind domain.RecommendationKind) (tuistyles.Tone, string) {
	switch kind {
	case domain.KindSuccess:
		return tuistyles.ToneGood, "✓"
	case domain.KindWarning:
		return tuistyles.ToneWarn, "!"
	case domain.KindError:
		return tuistyles.ToneBad, "✗"
	default:
		return tuistyles.ToneNeutral, "•"
	}
}

func renderResultsHelp() string {
	return strings.Join([]string{
		tuistyles.HelpKeyStyle.Render("esc") + " " + tuistyles.HelpDescStyle.Render("edit inputs"),
		tuistyles.HelpKeyStyle.Render("n") + " " + tuistyles.HelpDescStyle.Render("new goal"),
		tuistyles.HelpKeyStyle.Render("q") + " " + tuistyles.HelpDescStyle.Render("quit"),
	}, "  ")
}
