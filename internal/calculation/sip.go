package calculation

import (
	"github.com/shopspring/decimal"
)

// SIPSolution is the monthly contribution needed to reach a target
type SIPSolution struct {
	FutureSavingsValue decimal.Decimal
	AdditionalNeeded   decimal.Decimal
	MonthlyReturn      decimal.Decimal
	TotalMonths        int
	SIPRequired        decimal.Decimal
}

// SolveSIP grows existing savings with annual compounding, then solves the
// monthly-compounded annuity that closes the remaining gap. Savings and SIP
// deliberately compound at different frequencies.
func SolveSIP(required, savings, annualReturnPct decimal.Decimal, years int) SIPSolution {
	annual := PercentToRate(annualReturnPct)
	sol := SIPSolution{
		FutureSavingsValue: savings.Mul(GrowthFactor(annual, years)),
		MonthlyReturn:      annual.Div(twelve),
		TotalMonths:        years * 12,
	}
	sol.AdditionalNeeded = maxZero(required.Sub(sol.FutureSavingsValue))
	sol.SIPRequired = annuityPayment(sol.AdditionalNeeded, sol.MonthlyReturn, sol.TotalMonths)
	return sol
}

// annuityPayment is the level monthly payment whose future value after
// months periods equals target.
func annuityPayment(target, monthlyReturn decimal.Decimal, months int) decimal.Decimal {
	switch {
	case months <= 0 || !target.IsPositive():
		return decimal.Zero
	case monthlyReturn.IsPositive():
		factor := GrowthFactor(monthlyReturn, months)
		return target.Mul(monthlyReturn).Div(factor.Sub(one))
	default:
		return target.Div(decimal.NewFromInt(int64(months)))
	}
}

// annuityFutureValue is the future value of a level monthly payment
func annuityFutureValue(payment, monthlyReturn decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	if !monthlyReturn.IsPositive() {
		return payment.Mul(decimal.NewFromInt(int64(months)))
	}
	factor := GrowthFactor(monthlyReturn, months)
	return payment.Mul(factor.Sub(one)).Div(monthlyReturn)
}

// TopUpSIP returns the extra monthly contribution that would cover shortfall
// over the given horizon, assuming the same monthly return.
func TopUpSIP(shortfall, annualReturnPct decimal.Decimal, years int) decimal.Decimal {
	return annuityPayment(shortfall, MonthlyRate(annualReturnPct), years*12)
}
