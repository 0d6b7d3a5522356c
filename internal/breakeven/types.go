package breakeven

import (
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to solve for
type OptimizationTarget string

const (
	OptimizeTargetAge  OptimizationTarget = "target_age"
	OptimizeReturnRate OptimizationTarget = "return_rate"
	OptimizeSavings    OptimizationTarget = "savings"
	OptimizeAll        OptimizationTarget = "all"
)

// AllTargets lists the single-parameter targets in search order
func AllTargets() []OptimizationTarget {
	return []OptimizationTarget{OptimizeTargetAge, OptimizeReturnRate, OptimizeSavings}
}

// ParseTarget resolves a target name
func ParseTarget(s string) (OptimizationTarget, error) {
	switch t := OptimizationTarget(s); t {
	case OptimizeTargetAge, OptimizeReturnRate, OptimizeSavings, OptimizeAll:
		return t, nil
	}
	return "", &BreakEvenError{Operation: "parse_target", Message: "unknown target " + s}
}

// Constraints bound the search for each target. Nil fields use the
// solver's defaults.
type Constraints struct {
	// Target age search window
	MinTargetAge *int `json:"min_target_age,omitempty"`
	MaxTargetAge *int `json:"max_target_age,omitempty"`

	// Expected return window, whole percent
	MinReturnPct *decimal.Decimal `json:"min_return_pct,omitempty"`
	MaxReturnPct *decimal.Decimal `json:"max_return_pct,omitempty"`

	// Largest lump sum the savings search will consider
	MaxSavings *decimal.Decimal `json:"max_savings,omitempty"`
}

// OptimizationRequest asks the solver to fit a plan into a monthly budget
type OptimizationRequest struct {
	Base          domain.GoalPlanInput
	Budget        decimal.Decimal // monthly SIP the user can afford
	Target        OptimizationTarget
	Constraints   Constraints
	MaxIterations int
	Tolerance     decimal.Decimal // convergence width for binary searches
}

// OptimizationResult is the outcome of one solve
type OptimizationResult struct {
	Target          OptimizationTarget `json:"target"`
	Budget          decimal.Decimal    `json:"budget"`
	Success         bool               `json:"success"`
	Iterations      int                `json:"iterations"`
	ConvergenceInfo string             `json:"convergence_info"`

	// Exactly one of these is set, matching Target
	OptimalTargetAge     *int             `json:"optimal_target_age,omitempty"`
	OptimalReturnRatePct *decimal.Decimal `json:"optimal_return_rate_pct,omitempty"`
	OptimalSavings       *decimal.Decimal `json:"optimal_savings,omitempty"`

	// AdditionalSavings is OptimalSavings less the base plan's savings
	AdditionalSavings decimal.Decimal `json:"additional_savings"`

	// Plan at the optimal parameter
	Input domain.GoalPlanInput      `json:"input"`
	Plan  *domain.CalculationResult `json:"plan,omitempty"`

	// Comparison to the unmodified plan
	BaseInput       domain.GoalPlanInput `json:"base_input"`
	BaseSIP         decimal.Decimal      `json:"base_sip"`
	SIPDiffFromBase decimal.Decimal      `json:"sip_diff_from_base"`
}

// WithinBudget reports whether the base plan already fits the budget
func (r *OptimizationResult) WithinBudget() bool {
	return r.BaseSIP.LessThanOrEqual(r.Budget)
}

// MultiDimensionalResult collects one result per target
type MultiDimensionalResult struct {
	Budget          decimal.Decimal      `json:"budget"`
	BaseSIP         decimal.Decimal      `json:"base_sip"`
	Results         []OptimizationResult `json:"results"`
	Failures        map[string]string    `json:"failures,omitempty"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	// RateTolerance is the binary search width for return rates, in percent
	RateTolerance decimal.Decimal
	// SavingsTolerance is the binary search width for lump sums
	SavingsTolerance decimal.Decimal
	MaxIterations    int
	// MaxHorizonYears caps the target age search when the goal has no maximum
	MaxHorizonYears int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		RateTolerance:    decimal.RequireFromString("0.01"),
		SavingsTolerance: decimal.NewFromInt(100),
		MaxIterations:    60,
		MaxHorizonYears:  40,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinTargetAge != nil && *c.MinTargetAge < 0 {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_target_age must not be negative"}
	}
	if c.MinTargetAge != nil && c.MaxTargetAge != nil && *c.MinTargetAge > *c.MaxTargetAge {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_target_age cannot be greater than max_target_age"}
	}

	if c.MinReturnPct != nil && c.MinReturnPct.IsNegative() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_return_pct must not be negative"}
	}
	if c.MinReturnPct != nil && c.MaxReturnPct != nil && c.MinReturnPct.GreaterThan(*c.MaxReturnPct) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_return_pct cannot be greater than max_return_pct"}
	}

	if c.MaxSavings != nil && !c.MaxSavings.IsPositive() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "max_savings must be positive"}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
