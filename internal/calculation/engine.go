package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/rgehrsitz/goalplan/internal/recommend"
	"github.com/shopspring/decimal"
)

// CalculationEngine plans any goal type by reading goal-specific behaviour
// from a profile. It holds no state between calls and is safe for concurrent use
// as long as its fields are not changed.
type CalculationEngine struct {
	Profiles *profile.Registry
	Advisor  *recommend.Engine
	Logger   Logger
	// Now supplies the plan year when the input leaves it unset.
	Now func() time.Time
}

// NewCalculationEngine creates an engine with the built-in goal profiles and rules
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Profiles: profile.Default(),
		Advisor:  recommend.DefaultEngine(),
		Logger:   NopLogger{},
		Now:      time.Now,
	}
}

// SetLogger sets the logger; nil disables logging
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// PlanYear returns the calendar year a plan starts in
func (ce *CalculationEngine) PlanYear(in domain.GoalPlanInput) int {
	if in.PlanYear != 0 {
		return in.PlanYear
	}
	if ce.Now == nil {
		return time.Now().Year()
	}
	return ce.Now().Year()
}

// Validate resolves the goal profile and checks the input against it
func (ce *CalculationEngine) Validate(in domain.GoalPlanInput) (profile.GoalProfile, error) {
	p, err := ce.Profiles.Lookup(in.GoalType)
	if err != nil {
		return profile.GoalProfile{}, err
	}
	if err := ValidateInput(in, p); err != nil {
		return profile.GoalProfile{}, err
	}
	return p, nil
}

// Calculate runs the cost, loan, SIP, future value and achievability steps
// for one goal and attaches recommendations. Invalid input is rejected before
// any computation.
func (ce *CalculationEngine) Calculate(ctx context.Context, in domain.GoalPlanInput) (*domain.CalculationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := ce.Validate(in)
	if err != nil {
		ce.Logger.Debugf("rejected %s input: %v", in.GoalType, err)
		return nil, err
	}

	years := p.YearsToGoal(in)
	cost := ProjectCost(p.EffectiveBaseCost(in), in.InflationRatePct, years, p.CategoriesFor(in))

	loan := NoLoan(cost.TotalGoalCost)
	if in.WantLoan {
		loan = AmortizeLoan(cost.TotalGoalCost, p.LoanCoverageRatio, in.LoanTenureYears, in.LoanInterestRatePct)
	}

	sip := SolveSIP(loan.TotalRequiredAtGoal, in.CurrentSavings, in.ExpectedReturnRatePct, years)
	contribution := sip.SIPRequired
	if in.MonthlyInvestment.IsPositive() {
		contribution = in.MonthlyInvestment
	}
	fv := ProjectFutureValue(in.CurrentSavings, sip.FutureSavingsValue, contribution, sip.MonthlyReturn, sip.TotalMonths)
	ach := EvaluateAchievability(loan.TotalRequiredAtGoal, fv.FutureValue)

	ce.Logger.Debugf("%s: %d years, goal cost %s, required %s, SIP %s, projected %s (%s%%)",
		p.Type, years, cost.TotalGoalCost.StringFixed(2), loan.TotalRequiredAtGoal.StringFixed(2),
		sip.SIPRequired.StringFixed(2), fv.FutureValue.StringFixed(2), ach.Ratio.StringFixed(2))

	res := &domain.CalculationResult{
		GoalType:            p.Type,
		YearsToGoal:         years,
		FutureBaseCost:      roundMoney(cost.FutureBaseCost),
		Categories:          roundCategories(cost.Categories),
		TotalGoalCost:       roundMoney(cost.TotalGoalCost),
		LoanAmount:          roundMoney(loan.LoanAmount),
		TotalRequiredAtGoal: roundMoney(loan.TotalRequiredAtGoal),
		EMIAmount:           roundMoney(loan.EMI),
		TotalLoanRepayment:  roundMoney(loan.TotalRepayment),
		TotalLoanInterest:   roundMoney(loan.TotalInterest),
		SIPRequired:         roundMoney(sip.SIPRequired),
		MonthlyContribution: roundMoney(contribution),
		TotalInvestment:     roundMoney(fv.TotalInvestment),
		FutureSavingsValue:  roundMoney(sip.FutureSavingsValue),
		FutureValue:         roundMoney(fv.FutureValue),
		NetGains:            roundMoney(fv.NetGains),
		Shortfall:           roundMoney(ach.Shortfall),
		AchievabilityRatio:  ach.Ratio.Round(4),
	}

	if ce.Advisor != nil {
		facts := recommend.NewFacts(in, res, p, ce.PlanYear(in)).
			WithTopUp(roundMoney(TopUpSIP(ach.Shortfall, in.ExpectedReturnRatePct, years)))
		res.Recommendations = ce.Advisor.Evaluate(facts)
	}
	return res, nil
}

// CalculateAll plans several goals, stopping at the first failure
func (ce *CalculationEngine) CalculateAll(ctx context.Context, inputs []domain.GoalPlanInput) ([]*domain.CalculationResult, error) {
	results := make([]*domain.CalculationResult, 0, len(inputs))
	for i, in := range inputs {
		res, err := ce.Calculate(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("goal %d (%s): %w", i, in.DisplayName(), err)
		}
		results = append(results, res)
	}
	ce.Logger.Infof("calculated %d goals", len(results))
	return results, nil
}

// LoanSchedule returns the amortization schedule for an input that takes a loan
func (ce *CalculationEngine) LoanSchedule(in domain.GoalPlanInput) (LoanSchedule, error) {
	p, err := ce.Validate(in)
	if err != nil {
		return LoanSchedule{}, err
	}
	cost := ProjectCost(p.EffectiveBaseCost(in), in.InflationRatePct, p.YearsToGoal(in), p.CategoriesFor(in))
	if !in.WantLoan {
		return NoLoan(cost.TotalGoalCost), nil
	}
	return AmortizeLoan(cost.TotalGoalCost, p.LoanCoverageRatio, in.LoanTenureYears, in.LoanInterestRatePct), nil
}

// roundMoney rounds a currency amount for presentation
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func roundCategories(in []domain.CategoryAmount) []domain.CategoryAmount {
	out := make([]domain.CategoryAmount, len(in))
	for i, c := range in {
		c.Amount = roundMoney(c.Amount)
		out[i] = c
	}
	return out
}
