// Package breakeven solves for the plan parameter that brings a goal's
// required monthly SIP within a budget.
package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/money"
	"github.com/rgehrsitz/goalplan/internal/transform"
	"github.com/shopspring/decimal"
)

// ErrBudgetUnreachable is the cause when no value in the search window fits the budget
var ErrBudgetUnreachable = errors.New("budget cannot be met")

var two = decimal.NewFromInt(2)

// Solver provides break-even optimization over a single plan parameter
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize finds the value of req.Target at which the required SIP first
// fits req.Budget.
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.Budget.IsNegative() {
		return nil, &BreakEvenError{Operation: "optimize", Message: "budget must not be negative"}
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		if req.Target == OptimizeSavings {
			req.Tolerance = s.Options.SavingsTolerance
		} else {
			req.Tolerance = s.Options.RateTolerance
		}
	}

	base, err := s.CalcEngine.Calculate(ctx, req.Base)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "failed to calculate base plan", Cause: err}
	}

	switch req.Target {
	case OptimizeTargetAge:
		return s.optimizeTargetAge(ctx, req, base)
	case OptimizeReturnRate:
		return s.optimizeReturnRate(ctx, req, base)
	case OptimizeSavings:
		return s.optimizeSavings(ctx, req, base)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// optimizeTargetAge scans target ages upward and stops at the first that fits
func (s *Solver) optimizeTargetAge(ctx context.Context, req OptimizationRequest, base *domain.CalculationResult) (*OptimizationResult, error) {
	minAge, maxAge, err := s.targetAgeWindow(req)
	if err != nil {
		return nil, err
	}

	iterations := 0
	for age := minAge; age <= maxAge && iterations < req.MaxIterations; age++ {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		in, err := transform.ApplyTransforms(req.Base, []transform.PlanTransform{&transform.SetTargetAge{Age: age}})
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_target_age", Message: "failed to apply age transform", Cause: err}
		}

		res, err := s.CalcEngine.Calculate(ctx, in)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				continue // Skip ages the goal does not allow
			}
			return nil, &BreakEvenError{Operation: "optimize_target_age", Message: "failed to calculate plan", Cause: err}
		}

		if fits(res, req.Budget) {
			result := s.evaluateResult(req, base, in, res, iterations)
			optimal := age
			result.OptimalTargetAge = &optimal
			result.Success = true
			result.ConvergenceInfo = fmt.Sprintf("Evaluated %d target ages", iterations)
			return result, nil
		}
	}

	return nil, &BreakEvenError{
		Operation: "optimize_target_age",
		Message:   fmt.Sprintf("no target age between %d and %d keeps the SIP within %s", minAge, maxAge, money.Format(req.Budget)),
		Cause:     ErrBudgetUnreachable,
	}
}

// targetAgeWindow bounds the age scan by the constraints, the goal's
// maximum age and the life expectancy for annualized goals.
func (s *Solver) targetAgeWindow(req OptimizationRequest) (int, int, error) {
	p, err := s.CalcEngine.Validate(req.Base)
	if err != nil {
		return 0, 0, &BreakEvenError{Operation: "optimize_target_age", Message: "invalid base plan", Cause: err}
	}
	start := req.Base.StartAge(p.ChildRelative)

	minAge := start + 1
	if req.Constraints.MinTargetAge != nil && *req.Constraints.MinTargetAge > minAge {
		minAge = *req.Constraints.MinTargetAge
	}

	maxAge := start + s.Options.MaxHorizonYears
	if p.MaxTargetAge > 0 && p.MaxTargetAge < maxAge {
		maxAge = p.MaxTargetAge
	}
	if p.AnnualizeBase {
		if last := p.LifeExpectancy(req.Base) - 1; last < maxAge {
			maxAge = last
		}
	}
	if maxAge > calculation.MaxAge {
		maxAge = calculation.MaxAge
	}
	if req.Constraints.MaxTargetAge != nil && *req.Constraints.MaxTargetAge < maxAge {
		maxAge = *req.Constraints.MaxTargetAge
	}

	if minAge > maxAge {
		return 0, 0, &BreakEvenError{
			Operation: "optimize_target_age",
			Message:   fmt.Sprintf("empty target age window %d to %d", minAge, maxAge),
		}
	}
	return minAge, maxAge, nil
}

// optimizeReturnRate binary searches for the lowest expected return that fits.
// The required SIP falls as the return rises.
func (s *Solver) optimizeReturnRate(ctx context.Context, req OptimizationRequest, base *domain.CalculationResult) (*OptimizationResult, error) {
	lo := decimal.Zero
	hi := calculation.MaxReturnRatePct
	if req.Constraints.MinReturnPct != nil {
		lo = *req.Constraints.MinReturnPct
	}
	if req.Constraints.MaxReturnPct != nil {
		hi = *req.Constraints.MaxReturnPct
	}

	iterations := 0
	at := func(rate decimal.Decimal) (domain.GoalPlanInput, *domain.CalculationResult, error) {
		iterations++
		select {
		case <-ctx.Done():
			return domain.GoalPlanInput{}, nil, ctx.Err()
		default:
		}
		in, err := transform.ApplyTransforms(req.Base, []transform.PlanTransform{&transform.SetReturn{RatePct: rate}})
		if err != nil {
			return domain.GoalPlanInput{}, nil, &BreakEvenError{Operation: "optimize_return_rate", Message: "failed to apply rate transform", Cause: err}
		}
		res, err := s.CalcEngine.Calculate(ctx, in)
		if err != nil {
			return domain.GoalPlanInput{}, nil, &BreakEvenError{Operation: "optimize_return_rate", Message: "failed to calculate plan", Cause: err}
		}
		return in, res, nil
	}

	in, res, err := at(hi)
	if err != nil {
		return nil, err
	}
	if !fits(res, req.Budget) {
		return nil, &BreakEvenError{
			Operation: "optimize_return_rate",
			Message:   fmt.Sprintf("even a %s%% return needs %s a month", hi.StringFixed(1), money.Format(res.SIPRequired)),
			Cause:     ErrBudgetUnreachable,
		}
	}

	loIn, loRes, err := at(lo)
	if err != nil {
		return nil, err
	}
	if fits(loRes, req.Budget) {
		return s.rateResult(req, base, loIn, loRes, lo, iterations, "Budget met at the lowest return"), nil
	}

	for hi.Sub(lo).GreaterThan(req.Tolerance) && iterations < req.MaxIterations {
		mid := lo.Add(hi).Div(two)
		midIn, midRes, err := at(mid)
		if err != nil {
			return nil, err
		}
		if fits(midRes, req.Budget) {
			hi, in, res = mid, midIn, midRes
		} else {
			lo = mid
		}
	}

	info := "Binary search converged"
	if hi.Sub(lo).GreaterThan(req.Tolerance) {
		info = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}

	// Report a rate a user can quote; rounding up keeps it inside the budget.
	rounded := hi.RoundCeil(2)
	if !rounded.Equal(hi) {
		if rIn, rRes, err := at(rounded); err == nil && fits(rRes, req.Budget) {
			hi, in, res = rounded, rIn, rRes
		}
	}
	return s.rateResult(req, base, in, res, hi, iterations, info), nil
}

func (s *Solver) rateResult(req OptimizationRequest, base *domain.CalculationResult, in domain.GoalPlanInput, res *domain.CalculationResult, rate decimal.Decimal, iterations int, info string) *OptimizationResult {
	result := s.evaluateResult(req, base, in, res, iterations)
	result.OptimalReturnRatePct = &rate
	result.Success = true
	result.ConvergenceInfo = info
	return result
}

// optimizeSavings binary searches for the smallest lump sum held today that
// fits the budget.
func (s *Solver) optimizeSavings(ctx context.Context, req OptimizationRequest, base *domain.CalculationResult) (*OptimizationResult, error) {
	current := req.Base.CurrentSavings
	if fits(base, req.Budget) {
		result := s.evaluateResult(req, base, req.Base, base, 0)
		result.OptimalSavings = &current
		result.Success = true
		result.ConvergenceInfo = "Current savings already meet the budget"
		return result, nil
	}

	// Savings never lose value, so holding the full requirement today always suffices.
	hi := current.Add(base.TotalRequiredAtGoal)
	if req.Constraints.MaxSavings != nil {
		hi = *req.Constraints.MaxSavings
	}
	lo := current

	iterations := 0
	at := func(total decimal.Decimal) (domain.GoalPlanInput, *domain.CalculationResult, error) {
		iterations++
		select {
		case <-ctx.Done():
			return domain.GoalPlanInput{}, nil, ctx.Err()
		default:
		}
		in, err := transform.ApplyTransforms(req.Base, []transform.PlanTransform{&transform.AddSavings{Amount: total.Sub(current)}})
		if err != nil {
			return domain.GoalPlanInput{}, nil, &BreakEvenError{Operation: "optimize_savings", Message: "failed to apply savings transform", Cause: err}
		}
		res, err := s.CalcEngine.Calculate(ctx, in)
		if err != nil {
			return domain.GoalPlanInput{}, nil, &BreakEvenError{Operation: "optimize_savings", Message: "failed to calculate plan", Cause: err}
		}
		return in, res, nil
	}

	if !hi.GreaterThan(lo) {
		return nil, &BreakEvenError{
			Operation: "optimize_savings",
			Message:   fmt.Sprintf("max savings %s is not above current savings %s", money.Format(hi), money.Format(lo)),
		}
	}
	in, res, err := at(hi)
	if err != nil {
		return nil, err
	}
	if !fits(res, req.Budget) {
		return nil, &BreakEvenError{
			Operation: "optimize_savings",
			Message:   fmt.Sprintf("savings of %s still need %s a month", money.Format(hi), money.Format(res.SIPRequired)),
			Cause:     ErrBudgetUnreachable,
		}
	}

	for hi.Sub(lo).GreaterThan(req.Tolerance) && iterations < req.MaxIterations {
		mid := lo.Add(hi).Div(two)
		midIn, midRes, err := at(mid)
		if err != nil {
			return nil, err
		}
		if fits(midRes, req.Budget) {
			hi, in, res = mid, midIn, midRes
		} else {
			lo = mid
		}
	}

	info := "Binary search converged"
	if hi.Sub(lo).GreaterThan(req.Tolerance) {
		info = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}

	rounded := hi.RoundCeil(0)
	if !rounded.Equal(hi) {
		if rIn, rRes, err := at(rounded); err == nil && fits(rRes, req.Budget) {
			hi, in, res = rounded, rIn, rRes
		}
	}

	result := s.evaluateResult(req, base, in, res, iterations)
	result.OptimalSavings = &hi
	result.AdditionalSavings = hi.Sub(current)
	result.Success = true
	result.ConvergenceInfo = info
	return result, nil
}

// evaluateResult creates an optimization result for the plan at the optimum
func (s *Solver) evaluateResult(
	req OptimizationRequest,
	base *domain.CalculationResult,
	in domain.GoalPlanInput,
	res *domain.CalculationResult,
	iterations int,
) *OptimizationResult {
	return &OptimizationResult{
		Target:          req.Target,
		Budget:          req.Budget,
		Iterations:      iterations,
		Input:           in,
		Plan:            res,
		BaseInput:       req.Base,
		BaseSIP:         base.SIPRequired,
		SIPDiffFromBase: res.SIPRequired.Sub(base.SIPRequired),
	}
}

func fits(res *domain.CalculationResult, budget decimal.Decimal) bool {
	return res.SIPRequired.LessThanOrEqual(budget)
}
