package recommend

import (
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/rgehrsitz/goalplan/internal/ssy"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Facts is everything a rule may look at. It is built once per calculation
// and never modified by rules.
type Facts struct {
	Input   domain.GoalPlanInput
	Result  *domain.CalculationResult
	Profile profile.GoalProfile

	YearsToGoal int
	PlanYear    int

	// Ratios are whole percents of monthly income; HasIncome is false when
	// no income was given and the ratios are meaningless.
	HasIncome    bool
	EMIIncomePct decimal.Decimal
	SIPIncomePct decimal.Decimal

	// TopUpSIP is the extra monthly contribution that would close the shortfall.
	TopUpSIP decimal.Decimal

	// SchemeRatePct is the girl-child savings scheme rate for PlanYear.
	SchemeRatePct decimal.Decimal
}

// NewFacts derives the income ratios from the input and result
func NewFacts(in domain.GoalPlanInput, res *domain.CalculationResult, p profile.GoalProfile, planYear int) Facts {
	f := Facts{
		Input:         in,
		Result:        res,
		Profile:       p,
		YearsToGoal:   res.YearsToGoal,
		PlanYear:      planYear,
		HasIncome:     in.MonthlyIncome.IsPositive(),
		SchemeRatePct: ssy.ResolveRate(planYear),
	}
	if f.HasIncome {
		f.EMIIncomePct = res.EMIAmount.Div(in.MonthlyIncome).Mul(hundred)
		f.SIPIncomePct = res.MonthlyContribution.Div(in.MonthlyIncome).Mul(hundred)
	}
	return f
}

// WithTopUp sets the monthly top-up used by the near-miss advice
func (f Facts) WithTopUp(topUp decimal.Decimal) Facts {
	f.TopUpSIP = topUp
	return f
}

func (f Facts) hasLoan() bool {
	return f.Input.WantLoan && f.Result.LoanAmount.IsPositive()
}
