package output

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/money"
)

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs
var DefaultAssumptions = []string{
	"Costs grow at the stated inflation rate, compounded annually",
	"Current savings compound annually at the expected return",
	"Monthly investments compound monthly at one twelfth of the expected return",
	"Loan EMIs are equated monthly installments over the full tenure",
	"No taxes, fees or market volatility are modeled",
}

// EntryAssumptions returns the rates an entry was planned with
func EntryAssumptions(e Entry) []string {
	out := []string{
		fmt.Sprintf("Inflation: %s a year", money.Percent(e.Input.InflationRatePct)),
		fmt.Sprintf("Expected return: %s a year", money.Percent(e.Input.ExpectedReturnRatePct)),
	}
	if e.Input.WantLoan {
		out = append(out, fmt.Sprintf("Loan: %s over %d years", money.Percent(e.Input.LoanInterestRatePct), e.Input.LoanTenureYears))
	}
	if e.Input.LifeExpectancy > 0 {
		out = append(out, fmt.Sprintf("Life expectancy: %d", e.Input.LifeExpectancy))
	}
	return out
}
