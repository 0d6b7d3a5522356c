package domain

import (
	"github.com/shopspring/decimal"
)

// RecommendationKind categorizes an advisory message
type RecommendationKind string

const (
	KindSuccess RecommendationKind = "success"
	KindWarning RecommendationKind = "warning"
	KindError   RecommendationKind = "error"
	KindInfo    RecommendationKind = "info"
)

// Recommendation is a single advisory message shown with a plan result
type Recommendation struct {
	Kind RecommendationKind `json:"kind" yaml:"kind"`
	Text string             `json:"text" yaml:"text"`
}

// CategoryAmount is one line of the inflated cost breakdown
type CategoryAmount struct {
	Name    string          `json:"name" yaml:"name"`
	Percent decimal.Decimal `json:"percent" yaml:"percent"`
	Amount  decimal.Decimal `json:"amount" yaml:"amount"`
}

// CalculationResult is the complete output of planning one goal
type CalculationResult struct {
	GoalType    GoalType `json:"goalType" yaml:"goal_type"`
	YearsToGoal int      `json:"yearsToGoal" yaml:"years_to_goal"`

	// Cost projection
	FutureBaseCost decimal.Decimal  `json:"futureBaseCost" yaml:"future_base_cost"`
	Categories     []CategoryAmount `json:"categories" yaml:"categories"`
	TotalGoalCost  decimal.Decimal  `json:"totalGoalCost" yaml:"total_goal_cost"`

	// Loan
	LoanAmount          decimal.Decimal `json:"loanAmount" yaml:"loan_amount"`
	TotalRequiredAtGoal decimal.Decimal `json:"totalRequiredAtGoal" yaml:"total_required_at_goal"`
	EMIAmount           decimal.Decimal `json:"emiAmount" yaml:"emi_amount"`
	TotalLoanRepayment  decimal.Decimal `json:"totalLoanRepayment" yaml:"total_loan_repayment"`
	TotalLoanInterest   decimal.Decimal `json:"totalLoanInterest" yaml:"total_loan_interest"`

	// Investment
	SIPRequired         decimal.Decimal `json:"sipRequired" yaml:"sip_required"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution" yaml:"monthly_contribution"`
	TotalInvestment     decimal.Decimal `json:"totalInvestment" yaml:"total_investment"`
	FutureSavingsValue  decimal.Decimal `json:"futureSavingsValue" yaml:"future_savings_value"`
	FutureValue         decimal.Decimal `json:"futureValue" yaml:"future_value"`
	NetGains            decimal.Decimal `json:"netGains" yaml:"net_gains"`

	// Achievability
	Shortfall          decimal.Decimal `json:"shortfall" yaml:"shortfall"`
	AchievabilityRatio decimal.Decimal `json:"achievabilityRatio" yaml:"achievability_ratio"`

	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`
}

// IsAchievable reports whether the projected corpus covers the requirement
func (r *CalculationResult) IsAchievable() bool {
	return r.AchievabilityRatio.GreaterThanOrEqual(decimal.NewFromInt(100))
}

// CategoryAmount returns the projected amount for a named category
func (r *CalculationResult) CategoryAmount(name string) (decimal.Decimal, bool) {
	for _, c := range r.Categories {
		if c.Name == name {
			return c.Amount, true
		}
	}
	return decimal.Zero, false
}

// RecommendationsOfKind filters recommendations by kind, preserving order
func (r *CalculationResult) RecommendationsOfKind(kind RecommendationKind) []Recommendation {
	var out []Recommendation
	for _, rec := range r.Recommendations {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out
}
