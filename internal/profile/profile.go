// Package profile describes each goal type as data: its cost categories,
// loan terms and recommendation thresholds. The planner is goal-agnostic and
// reads everything goal-specific from a GoalProfile.
package profile

import (
	"sort"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Category is a named share of the inflated base cost
type Category struct {
	Name    string          `json:"name" yaml:"name"`
	Percent decimal.Decimal `json:"percent" yaml:"percent"`
}

// HorizonBand is an allocation suggestion for horizons of at least MinYears
type HorizonBand struct {
	MinYears  int    `json:"minYears" yaml:"min_years"`
	Label     string `json:"label" yaml:"label"`
	EquityPct int    `json:"equityPct" yaml:"equity_pct"`
	DebtPct   int    `json:"debtPct" yaml:"debt_pct"`
}

// Thresholds drive the recommendation rules for a goal
type Thresholds struct {
	// HorizonBands are ordered from the longest horizon to the shortest.
	// The last band should have MinYears 0.
	HorizonBands []HorizonBand `json:"horizonBands" yaml:"horizon_bands"`

	NearMissPct        decimal.Decimal `json:"nearMissPct" yaml:"near_miss_pct"`
	EMIIncomeWarnPct   decimal.Decimal `json:"emiIncomeWarnPct" yaml:"emi_income_warn_pct"`
	SIPIncomeWarnPct   decimal.Decimal `json:"sipIncomeWarnPct" yaml:"sip_income_warn_pct"`
	EarlyStartChildAge int             `json:"earlyStartChildAge,omitempty" yaml:"early_start_child_age,omitempty"`
}

// GoalProfile is the data record that specializes the planner for one goal type
type GoalProfile struct {
	Type        domain.GoalType `json:"type" yaml:"type"`
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description" yaml:"description"`

	// ChildRelative goals measure the horizon from the child's age.
	ChildRelative bool `json:"childRelative" yaml:"child_relative"`

	// AnnualizeBase treats BaseCost as a monthly amount needed for every
	// year between the target age and life expectancy.
	AnnualizeBase         bool `json:"annualizeBase" yaml:"annualize_base"`
	DefaultLifeExpectancy int  `json:"defaultLifeExpectancy,omitempty" yaml:"default_life_expectancy,omitempty"`

	Categories []Category `json:"categories" yaml:"categories"`

	LoanAllowed       bool            `json:"loanAllowed" yaml:"loan_allowed"`
	LoanCoverageRatio decimal.Decimal `json:"loanCoverageRatio" yaml:"loan_coverage_ratio"`

	// MaxTargetAge bounds TargetAge during validation.
	MaxTargetAge int `json:"maxTargetAge" yaml:"max_target_age"`

	Thresholds Thresholds `json:"thresholds" yaml:"thresholds"`
}

// YearsToGoal returns the horizon for an input. Negative horizons are
// rejected by validation, so the result is only clamped defensively at zero.
func (p GoalProfile) YearsToGoal(in domain.GoalPlanInput) int {
	years := in.TargetAge - in.StartAge(p.ChildRelative)
	if years < 0 {
		return 0
	}
	return years
}

// LifeExpectancy returns the input's life expectancy or the profile default
func (p GoalProfile) LifeExpectancy(in domain.GoalPlanInput) int {
	if in.LifeExpectancy > 0 {
		return in.LifeExpectancy
	}
	return p.DefaultLifeExpectancy
}

// EffectiveBaseCost returns the present-day cost the projector inflates
func (p GoalProfile) EffectiveBaseCost(in domain.GoalPlanInput) decimal.Decimal {
	if !p.AnnualizeBase {
		return in.BaseCost
	}
	years := p.LifeExpectancy(in) - in.TargetAge
	if years < 0 {
		years = 0
	}
	return in.BaseCost.Mul(decimal.NewFromInt(int64(12 * years)))
}

// CategoriesFor returns the cost categories for an input. A CostBreakdown on
// the input replaces the defaults; its categories are ordered by name.
func (p GoalProfile) CategoriesFor(in domain.GoalPlanInput) []Category {
	if len(in.CostBreakdown) == 0 {
		out := make([]Category, len(p.Categories))
		copy(out, p.Categories)
		return out
	}
	names := make([]string, 0, len(in.CostBreakdown))
	for name := range in.CostBreakdown {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Category, 0, len(names))
	for _, name := range names {
		out = append(out, Category{Name: name, Percent: in.CostBreakdown[name]})
	}
	return out
}

// HorizonBand returns the allocation band for a horizon
func (t Thresholds) HorizonBand(years int) (HorizonBand, bool) {
	for _, band := range t.HorizonBands {
		if years >= band.MinYears {
			return band, true
		}
	}
	return HorizonBand{}, false
}
