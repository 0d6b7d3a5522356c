package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavedPlan is a persisted GoalPlanInput owned by an opaque user id
type SavedPlan struct {
	ID        uuid.UUID     `json:"id"`
	UserID    string        `json:"userId"`
	GoalType  GoalType      `json:"goalType"`
	Input     GoalPlanInput `json:"input"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// PlanFile is the on-disk layout read by the CLI: shared assumptions plus goals
type PlanFile struct {
	Assumptions Assumptions     `yaml:"assumptions" json:"assumptions"`
	Goals       []GoalPlanInput `yaml:"goals" json:"goals"`
}

// Assumptions are defaults applied to goals that leave the field unset
type Assumptions struct {
	InflationRatePct      *decimal.Decimal `yaml:"inflation_rate_pct,omitempty" json:"inflationRatePct,omitempty"`
	ExpectedReturnRatePct *decimal.Decimal `yaml:"expected_return_rate_pct,omitempty" json:"expectedReturnRatePct,omitempty"`
	LoanInterestRatePct   *decimal.Decimal `yaml:"loan_interest_rate_pct,omitempty" json:"loanInterestRatePct,omitempty"`
	LoanTenureYears       *int             `yaml:"loan_tenure_years,omitempty" json:"loanTenureYears,omitempty"`
	LifeExpectancy        *int             `yaml:"life_expectancy,omitempty" json:"lifeExpectancy,omitempty"`
	PlanYear              *int             `yaml:"plan_year,omitempty" json:"planYear,omitempty"`
}
