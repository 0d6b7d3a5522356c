package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/money"
	"github.com/shopspring/decimal"
)

// OptimizeMultiDimensional solves every target against the same budget and
// collects the ones that succeed. A target that cannot meet the budget is
// recorded under Failures; other errors abort the run.
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	base domain.GoalPlanInput,
	budget decimal.Decimal,
	constraints Constraints,
) (*MultiDimensionalResult, error) {

	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	md := &MultiDimensionalResult{Budget: budget}

	for _, target := range AllTargets() {
		req := OptimizationRequest{
			Base:        base,
			Budget:      budget,
			Target:      target,
			Constraints: constraints,
		}

		result, err := s.Optimize(ctx, req)
		if err != nil {
			var beErr *BreakEvenError
			if errors.As(err, &beErr) && (errors.Is(err, ErrBudgetUnreachable) || beErr.Cause == nil) {
				if md.Failures == nil {
					md.Failures = map[string]string{}
				}
				md.Failures[string(target)] = err.Error()
				continue
			}
			return nil, err
		}

		md.BaseSIP = result.BaseSIP
		md.Results = append(md.Results, *result)
	}

	if len(md.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   fmt.Sprintf("no target keeps the SIP within %s", money.Format(budget)),
			Cause:     ErrBudgetUnreachable,
		}
	}

	md.Recommendations = s.generateMultiDimensionalRecommendations(md)
	return md, nil
}

// generateMultiDimensionalRecommendations turns each solved target into advice
func (s *Solver) generateMultiDimensionalRecommendations(md *MultiDimensionalResult) []string {
	var recommendations []string

	if md.BaseSIP.LessThanOrEqual(md.Budget) {
		recommendations = append(recommendations, fmt.Sprintf(
			"The plan already fits: it needs %s a month against a budget of %s",
			money.Format(md.BaseSIP), money.Format(md.Budget)))
		return recommendations
	}

	for _, r := range md.Results {
		switch {
		case r.OptimalTargetAge != nil:
			recommendations = append(recommendations, fmt.Sprintf(
				"Move the goal to age %d (from %d): the SIP becomes %s",
				*r.OptimalTargetAge, r.BaseInput.TargetAge, money.Format(r.Plan.SIPRequired)))
		case r.OptimalReturnRatePct != nil:
			recommendations = append(recommendations, fmt.Sprintf(
				"Earn at least %s%% a year (from %s%%): the SIP becomes %s",
				r.OptimalReturnRatePct.StringFixed(2), r.BaseInput.ExpectedReturnRatePct.StringFixed(2), money.Format(r.Plan.SIPRequired)))
		case r.OptimalSavings != nil:
			recommendations = append(recommendations, fmt.Sprintf(
				"Invest %s more today: the SIP becomes %s",
				money.Format(r.AdditionalSavings), money.Format(r.Plan.SIPRequired)))
		}
	}
	return recommendations
}

// OptimizeTarget is a convenience method for a single target, dispatching
// OptimizeAll to the multi-dimensional run.
func (s *Solver) OptimizeTarget(
	ctx context.Context,
	base domain.GoalPlanInput,
	budget decimal.Decimal,
	target OptimizationTarget,
	constraints Constraints,
) (*MultiDimensionalResult, error) {
	if target == OptimizeAll {
		return s.OptimizeMultiDimensional(ctx, base, budget, constraints)
	}
	result, err := s.Optimize(ctx, OptimizationRequest{Base: base, Budget: budget, Target: target, Constraints: constraints})
	if err != nil {
		return nil, err
	}
	md := &MultiDimensionalResult{Budget: budget, BaseSIP: result.BaseSIP, Results: []OptimizationResult{*result}}
	md.Recommendations = s.generateMultiDimensionalRecommendations(md)
	return md, nil
}
