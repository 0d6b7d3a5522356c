package transform

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustInflation shifts the inflation assumption by DeltaPct percentage
// points. The result is floored at zero.
type AdjustInflation struct {
	DeltaPct decimal.Decimal
}

func (ai *AdjustInflation) Name() string {
	return "adjust_inflation"
}

func (ai *AdjustInflation) Description() string {
	return fmt.Sprintf("Change inflation by %s percentage points", signed(ai.DeltaPct))
}

func (ai *AdjustInflation) Validate(base domain.GoalPlanInput) error {
	if ai.DeltaPct.IsZero() {
		return NewTransformError(ai.Name(), "validate", "delta must not be zero", nil)
	}
	return nil
}

func (ai *AdjustInflation) Apply(base domain.GoalPlanInput) (domain.GoalPlanInput, error) {
	base.InflationRatePct = floorZero(base.InflationRatePct.Add(ai.DeltaPct))
	return base, nil
}

// AdjustReturn shifts the expected return by DeltaPct percentage points.
// The result is floored at zero.
type AdjustReturn struct {
	DeltaPct decimal.Decimal
}

func (ar *AdjustReturn) Name() string {
	return "adjust_return"
}

func (ar *AdjustReturn) Description() string {
	return fmt.Sprintf("Change expected return by %s percentage points", signed(ar.DeltaPct))
}

func (ar *AdjustReturn) Validate(base domain.GoalPlanInput) error {
	if ar.DeltaPct.IsZero() {
		return NewTransformError(ar.Name(), "validate", "delta must not be zero", nil)
	}
	return nil
}

func (ar *AdjustReturn) Apply(base domain.GoalPlanInput) (domain.GoalPlanInput, error) {
	base.ExpectedReturnRatePct = floorZero(base.ExpectedReturnRatePct.Add(ar.DeltaPct))
	return base, nil
}

// SetReturn replaces the expected return outright
type SetReturn struct {
	RatePct decimal.Decimal
}

func (sr *SetReturn) Name() string {
	return "set_return"
}

func (sr *SetReturn) Description() string {
	return fmt.Sprintf("Set expected return to %s%%", sr.RatePct.StringFixed(1))
}

func (sr *SetReturn) Validate(base domain.GoalPlanInput) error {
	if sr.RatePct.IsNegative() {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("rate must be non-negative, got %s", sr.RatePct), nil)
	}
	return nil
}

func (sr *SetReturn) Apply(base domain.GoalPlanInput) (domain.GoalPlanInput, error) {
	base.ExpectedReturnRatePct = sr.RatePct
	return base, nil
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.String()
	}
	return d.String()
}
