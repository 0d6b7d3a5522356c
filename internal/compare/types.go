package compare

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/money"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single what-if with its calculated metrics
type ComparisonResult struct {
	ScenarioName string               `json:"scenarioName"`
	Description  string               `json:"description"`
	Input        domain.GoalPlanInput `json:"input"`

	// Key Metrics
	YearsToGoal         int             `json:"yearsToGoal"`
	TotalGoalCost       decimal.Decimal `json:"totalGoalCost"`
	TotalRequiredAtGoal decimal.Decimal `json:"totalRequiredAtGoal"`
	EMIAmount           decimal.Decimal `json:"emiAmount"`
	SIPRequired         decimal.Decimal `json:"sipRequired"`
	FutureValue         decimal.Decimal `json:"futureValue"`
	Shortfall           decimal.Decimal `json:"shortfall"`
	AchievabilityRatio  decimal.Decimal `json:"achievabilityRatio"`

	// Comparison to Base (alternative minus base)
	YearsDiffFromBase     int             `json:"yearsDiffFromBase"`
	CostDiffFromBase      decimal.Decimal `json:"costDiffFromBase"`
	SIPDiffFromBase       decimal.Decimal `json:"sipDiffFromBase"`
	SIPPctFromBase        decimal.Decimal `json:"sipPctFromBase"`
	ShortfallDiffFromBase decimal.Decimal `json:"shortfallDiffFromBase"`
	RatioDiffFromBase     decimal.Decimal `json:"ratioDiffFromBase"`

	// Error is set when the what-if produced an invalid plan
	Error string `json:"error,omitempty"`
}

// Failed reports whether the what-if could not be calculated
func (r ComparisonResult) Failed() bool {
	return r.Error != ""
}

// ComparisonSet represents a base plan compared with its what-ifs
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	GoalType           domain.GoalType    `json:"goalType"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// MetricsCalculator extracts key metrics from calculation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one plan
func (mc *MetricsCalculator) CalculateMetrics(name string, in domain.GoalPlanInput, res *domain.CalculationResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName:        name,
		Input:               in,
		YearsToGoal:         res.YearsToGoal,
		TotalGoalCost:       res.TotalGoalCost,
		TotalRequiredAtGoal: res.TotalRequiredAtGoal,
		EMIAmount:           res.EMIAmount,
		SIPRequired:         res.SIPRequired,
		FutureValue:         res.FutureValue,
		Shortfall:           res.Shortfall,
		AchievabilityRatio:  res.AchievabilityRatio,
	}
}

// CalculateComparison computes the deltas between an alternative and the base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.YearsDiffFromBase = alt.YearsToGoal - base.YearsToGoal
	alt.CostDiffFromBase = alt.TotalGoalCost.Sub(base.TotalGoalCost)
	alt.SIPDiffFromBase = alt.SIPRequired.Sub(base.SIPRequired)
	if !base.SIPRequired.IsZero() {
		alt.SIPPctFromBase = alt.SIPDiffFromBase.
			Div(base.SIPRequired).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	alt.ShortfallDiffFromBase = alt.Shortfall.Sub(base.Shortfall)
	alt.RatioDiffFromBase = alt.AchievabilityRatio.Sub(base.AchievabilityRatio)
	return alt
}

// GenerateRecommendations picks out the what-ifs that beat the base plan
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Lowest monthly SIP
	var cheapest *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Failed() {
			continue
		}
		if alt.SIPRequired.LessThan(base.SIPRequired) && (cheapest == nil || alt.SIPRequired.LessThan(cheapest.SIPRequired)) {
			cheapest = alt
		}
	}
	if cheapest != nil {
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest SIP: %s needs %s a month, %s less than the base plan",
			cheapest.ScenarioName, money.Format(cheapest.SIPRequired), money.Format(base.SIPRequired.Sub(cheapest.SIPRequired))))
	}

	// Smallest goal cost
	var leanest *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Failed() {
			continue
		}
		if alt.TotalGoalCost.LessThan(base.TotalGoalCost) && (leanest == nil || alt.TotalGoalCost.LessThan(leanest.TotalGoalCost)) {
			leanest = alt
		}
	}
	if leanest != nil {
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest Cost: %s brings the goal cost down by %s",
			leanest.ScenarioName, money.Format(base.TotalGoalCost.Sub(leanest.TotalGoalCost))))
	}

	// Closing a gap
	if base.Shortfall.IsPositive() {
		var best *ComparisonResult
		for i := range compSet.AlternativeResults {
			alt := &compSet.AlternativeResults[i]
			if alt.Failed() {
				continue
			}
			if alt.AchievabilityRatio.GreaterThan(base.AchievabilityRatio) && (best == nil || alt.AchievabilityRatio.GreaterThan(best.AchievabilityRatio)) {
				best = alt
			}
		}
		if best != nil {
			recommendations = append(recommendations, fmt.Sprintf(
				"Best Achievability: %s reaches %s of the target, up from %s",
				best.ScenarioName, money.Percent(best.AchievabilityRatio), money.Percent(base.AchievabilityRatio)))
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.Failed() {
			recommendations = append(recommendations, fmt.Sprintf("Skipped: %s (%s)", alt.ScenarioName, alt.Error))
		}
	}
	return recommendations
}
