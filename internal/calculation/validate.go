package calculation

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/rgehrsitz/goalplan/internal/ssy"
	"github.com/shopspring/decimal"
)

// Input limits
const (
	MaxAge             = 100
	MaxChildAge        = 30
	MaxLoanTenureYears = 30
)

var (
	MaxInflationRatePct = decimal.NewFromInt(30)
	MaxReturnRatePct    = decimal.NewFromInt(50)
	MaxLoanRatePct      = decimal.NewFromInt(50)
)

func checkPercent(errs *domain.ValidationErrors, field string, v, max decimal.Decimal) {
	if v.IsNegative() || v.GreaterThan(max) {
		errs.Add(field, fmt.Sprintf("must be between 0 and %s", max))
	}
}

func checkNonNegative(errs *domain.ValidationErrors, field string, v decimal.Decimal) {
	if v.IsNegative() {
		errs.Add(field, "must not be negative")
	}
}

// ValidateInput reports every problem with an input before any computation.
// Nothing is silently corrected.
func ValidateInput(in domain.GoalPlanInput, p profile.GoalProfile) error {
	var errs domain.ValidationErrors

	if p.ChildRelative {
		if in.ChildCurrentAge < 0 || in.ChildCurrentAge > MaxChildAge {
			errs.Add("childCurrentAge", fmt.Sprintf("must be between 0 and %d", MaxChildAge))
		}
	} else if in.CurrentAge < 0 || in.CurrentAge > MaxAge {
		errs.Add("currentAge", fmt.Sprintf("must be between 0 and %d", MaxAge))
	}

	start := in.StartAge(p.ChildRelative)
	switch {
	case in.TargetAge < start:
		if p.ChildRelative {
			errs.Add("targetAge", fmt.Sprintf("must not be before the child's current age (%d)", start))
		} else {
			errs.Add("targetAge", fmt.Sprintf("must not be before the current age (%d)", start))
		}
	case p.MaxTargetAge > 0 && in.TargetAge > p.MaxTargetAge:
		errs.Add("targetAge", fmt.Sprintf("must be at most %d for %s", p.MaxTargetAge, p.Title))
	}

	if p.AnnualizeBase && p.LifeExpectancy(in) <= in.TargetAge {
		errs.Add("lifeExpectancy", "must be greater than the target age")
	}

	if !in.BaseCost.IsPositive() {
		errs.Add("baseCost", "must be greater than 0")
	}
	checkNonNegative(&errs, "currentSavings", in.CurrentSavings)
	checkNonNegative(&errs, "monthlyIncome", in.MonthlyIncome)
	checkNonNegative(&errs, "monthlyInvestment", in.MonthlyInvestment)
	if len(in.CostBreakdown) > 0 {
		for _, c := range p.CategoriesFor(in) {
			if c.Percent.IsNegative() {
				errs.Add("costBreakdown."+c.Name, "must not be negative")
			}
		}
	}

	checkPercent(&errs, "inflationRatePct", in.InflationRatePct, MaxInflationRatePct)
	checkPercent(&errs, "expectedReturnRatePct", in.ExpectedReturnRatePct, MaxReturnRatePct)

	if in.WantLoan {
		if !p.LoanAllowed {
			errs.Add("wantLoan", fmt.Sprintf("loans are not available for %s", p.Title))
		} else {
			if in.LoanTenureYears < 1 || in.LoanTenureYears > MaxLoanTenureYears {
				errs.Add("loanTenureYears", fmt.Sprintf("must be between 1 and %d", MaxLoanTenureYears))
			}
			checkPercent(&errs, "loanInterestRatePct", in.LoanInterestRatePct, MaxLoanRatePct)
		}
	}

	if in.PlanYear != 0 {
		if err := ssy.ValidateYear(in.PlanYear, ssy.DefaultMinYear, ssy.DefaultMaxYear); err != nil {
			errs.Add("planYear", fmt.Sprintf("must be between %d and %d", ssy.DefaultMinYear, ssy.DefaultMaxYear))
		}
	}

	return errs.Err()
}
