package transform

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Loan terms used when a loan is switched on for a plan that has none
var (
	DefaultLoanTenureYears = 10
	DefaultLoanRatePct     = decimal.NewFromInt(10)
)

// SetLoan switches borrowing on or off. When switching on, zero tenure or
// rate fall back to the plan's existing terms and then to the defaults.
type SetLoan struct {
	Want        bool
	TenureYears int
	RatePct     decimal.Decimal
}

func (sl *SetLoan) Name() string {
	return "set_loan"
}

func (sl *SetLoan) Description() string {
	if !sl.Want {
		return "Fund the goal without a loan"
	}
	if sl.TenureYears > 0 && sl.RatePct.IsPositive() {
		return fmt.Sprintf("Borrow part of the goal over %d years at %s%%", sl.TenureYears, sl.RatePct.StringFixed(1))
	}
	return "Borrow part of the goal"
}

func (sl *SetLoan) Validate(base domain.GoalPlanInput) error {
	if sl.TenureYears < 0 {
		return NewTransformError(sl.Name(), "validate", fmt.Sprintf("tenure must be non-negative, got %d", sl.TenureYears), nil)
	}
	if sl.RatePct.IsNegative() {
		return NewTransformError(sl.Name(), "validate", fmt.Sprintf("rate must be non-negative, got %s", sl.RatePct), nil)
	}
	return nil
}

func (sl *SetLoan) Apply(base domain.GoalPlanInput) (domain.GoalPlanInput, error) {
	base.WantLoan = sl.Want
	if !sl.Want {
		return base, nil
	}
	switch {
	case sl.TenureYears > 0:
		base.LoanTenureYears = sl.TenureYears
	case base.LoanTenureYears == 0:
		base.LoanTenureYears = DefaultLoanTenureYears
	}
	switch {
	case sl.RatePct.IsPositive():
		base.LoanInterestRatePct = sl.RatePct
	case base.LoanInterestRatePct.IsZero():
		base.LoanInterestRatePct = DefaultLoanRatePct
	}
	return base, nil
}

// SetLoanTenure changes how long an existing loan is repaid over
type SetLoanTenure struct {
	Years int
}

func (st *SetLoanTenure) Name() string {
	return "set_loan_tenure"
}

func (st *SetLoanTenure) Description() string {
	return fmt.Sprintf("Repay the loan over %d years", st.Years)
}

func (st *SetLoanTenure) Validate(base domain.GoalPlanInput) error {
	if st.Years <= 0 {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("years must be positive, got %d", st.Years), nil)
	}
	if !base.WantLoan {
		return NewTransformError(st.Name(), "validate", "plan has no loan", nil)
	}
	return nil
}

func (st *SetLoanTenure) Apply(base domain.GoalPlanInput) (domain.GoalPlanInput, error) {
	base.LoanTenureYears = st.Years
	return base, nil
}

// AddSavings adds a lump sum to the savings already set aside
type AddSavings struct {
	Amount decimal.Decimal
}

func (as *AddSavings) Name() string {
	return "add_savings"
}

func (as *AddSavings) Description() string {
	return fmt.Sprintf("Add %s to current savings", as.Amount.StringFixed(0))
}

func (as *AddSavings) Validate(base domain.GoalPlanInput) error {
	if !as.Amount.IsPositive() {
		return NewTransformError(as.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", as.Amount), nil)
	}
	return nil
}

func (as *AddSavings) Apply(base domain.GoalPlanInput) (domain.GoalPlanInput, error) {
	base.CurrentSavings = base.CurrentSavings.Add(as.Amount)
	return base, nil
}

// ScaleSavings multiplies current savings by Factor
type ScaleSavings struct {
	Factor decimal.Decimal
}

func (ss *ScaleSavings) Name() string {
	return "scale_savings"
}

func (ss *ScaleSavings) Description() string {
	return fmt.Sprintf("Multiply current savings by %s", ss.Factor)
}

func (ss *ScaleSavings) Validate(base domain.GoalPlanInput) error {
	if ss.Factor.IsNegative() {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", ss.Factor), nil)
	}
	return nil
}

func (ss *ScaleSavings) Apply(base domain.GoalPlanInput) (domain.GoalPlanInput, error) {
	base.CurrentSavings = base.CurrentSavings.Mul(ss.Factor)
	return base, nil
}

// SetMonthlyInvestment fixes the amount invested each month. Zero restores
// investing exactly the required SIP.
type SetMonthlyInvestment struct {
	Amount decimal.Decimal
}

func (sm *SetMonthlyInvestment) Name() string {
	return "set_monthly_investment"
}

func (sm *SetMonthlyInvestment) Description() string {
	if sm.Amount.IsZero() {
		return "Invest exactly the required SIP"
	}
	return fmt.Sprintf("Invest %s every month", sm.Amount.StringFixed(0))
}

func (sm *SetMonthlyInvestment) Validate(base domain.GoalPlanInput) error {
	if sm.Amount.IsNegative() {
		return NewTransformError(sm.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", sm.Amount), nil)
	}
	return nil
}

func (sm *SetMonthlyInvestment) Apply(base domain.GoalPlanInput) (domain.GoalPlanInput, error) {
	base.MonthlyInvestment = sm.Amount
	return base, nil
}
