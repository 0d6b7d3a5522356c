package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// GoalType identifies which financial goal a plan is for
type GoalType string

const (
	GoalRetirement     GoalType = "retirement"
	GoalChildEducation GoalType = "child_education"
	GoalChildWedding   GoalType = "child_wedding"
	GoalSelfEducation  GoalType = "self_education"
	GoalVacation       GoalType = "vacation"
	GoalGirlChild      GoalType = "girl_child"
)

// AllGoalTypes returns every supported goal type in display order
func AllGoalTypes() []GoalType {
	return []GoalType{
		GoalRetirement,
		GoalChildEducation,
		GoalChildWedding,
		GoalSelfEducation,
		GoalVacation,
		GoalGirlChild,
	}
}

// ParseGoalType converts user input (e.g. "child-education", "Vacation") to a GoalType
func ParseGoalType(s string) (GoalType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	for _, gt := range AllGoalTypes() {
		if string(gt) == normalized {
			return gt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGoalType, s)
}

func (g GoalType) String() string {
	return string(g)
}

// GoalPlanInput holds everything the planner needs to evaluate one goal.
// Percentages are whole-percent values: 8.2 means 8.2%.
type GoalPlanInput struct {
	Name     string   `yaml:"name,omitempty" json:"name,omitempty"`
	GoalType GoalType `yaml:"goal_type" json:"goalType"`

	// Ages in whole years. Child-relative goals measure the horizon from
	// ChildCurrentAge, all others from CurrentAge.
	CurrentAge      int `yaml:"current_age" json:"currentAge"`
	ChildCurrentAge int `yaml:"child_current_age,omitempty" json:"childCurrentAge,omitempty"`
	TargetAge       int `yaml:"target_age" json:"targetAge"`
	LifeExpectancy  int `yaml:"life_expectancy,omitempty" json:"lifeExpectancy,omitempty"`

	// BaseCost is the present-day cost. For retirement it is the desired monthly income.
	BaseCost decimal.Decimal `yaml:"base_cost" json:"baseCost"`

	// CostBreakdown overrides the goal's default category percentages when set.
	CostBreakdown map[string]decimal.Decimal `yaml:"cost_breakdown,omitempty" json:"costBreakdown,omitempty"`

	CurrentSavings decimal.Decimal `yaml:"current_savings" json:"currentSavings"`
	MonthlyIncome  decimal.Decimal `yaml:"monthly_income" json:"monthlyIncome"`

	// MonthlyInvestment is what the user actually plans to invest each month.
	// Zero means "invest exactly the SIP the goal requires".
	MonthlyInvestment decimal.Decimal `yaml:"monthly_investment,omitempty" json:"monthlyInvestment,omitempty"`

	WantLoan            bool            `yaml:"want_loan" json:"wantLoan"`
	LoanTenureYears     int             `yaml:"loan_tenure_years,omitempty" json:"loanTenureYears,omitempty"`
	LoanInterestRatePct decimal.Decimal `yaml:"loan_interest_rate_pct,omitempty" json:"loanInterestRatePct,omitempty"`

	InflationRatePct      decimal.Decimal `yaml:"inflation_rate_pct" json:"inflationRatePct"`
	ExpectedReturnRatePct decimal.Decimal `yaml:"expected_return_rate_pct" json:"expectedReturnRatePct"`

	// PlanYear is the calendar year the plan starts in; zero means the current year.
	PlanYear int `yaml:"plan_year,omitempty" json:"planYear,omitempty"`
}

// DisplayName returns the plan's name, falling back to its goal type
func (in GoalPlanInput) DisplayName() string {
	if in.Name != "" {
		return in.Name
	}
	return string(in.GoalType)
}

// Clone returns a copy that shares no mutable state with the receiver
func (in GoalPlanInput) Clone() GoalPlanInput {
	out := in
	if in.CostBreakdown != nil {
		out.CostBreakdown = make(map[string]decimal.Decimal, len(in.CostBreakdown))
		for k, v := range in.CostBreakdown {
			out.CostBreakdown[k] = v
		}
	}
	return out
}

// StartAge returns the age the goal horizon is measured from
func (in GoalPlanInput) StartAge(childRelative bool) int {
	if childRelative {
		return in.ChildCurrentAge
	}
	return in.CurrentAge
}
