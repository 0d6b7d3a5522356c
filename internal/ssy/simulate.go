package ssy

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Scheme rules
const (
	DefaultMaturityAge        = 21
	DefaultDepositPeriodYears = 15
	DepositAgeLimit           = 18
	MaxOpeningAge             = 10
)

// Deposit limits per financial year
var (
	MinAnnualDeposit = decimal.NewFromInt(250)
	MaxAnnualDeposit = decimal.NewFromInt(150000)
)

var hundred = decimal.NewFromInt(100)

// SimulationLimits bounds the calendar years a simulation may start in
type SimulationLimits struct {
	MinYear int
	MaxYear int
}

// DefaultLimits uses the plausible year range for the rate table
func DefaultLimits() SimulationLimits {
	return SimulationLimits{MinYear: DefaultMinYear, MaxYear: DefaultMaxYear}
}

// withDefaults fills in the scheme's maturity age and deposit period
func withDefaults(in domain.SsyInput) domain.SsyInput {
	if in.MaturityAge == 0 {
		in.MaturityAge = DefaultMaturityAge
	}
	if in.DepositPeriodYears == 0 {
		in.DepositPeriodYears = DefaultDepositPeriodYears
	}
	return in
}

// ValidateInput reports every problem with a simulation request
func ValidateInput(in domain.SsyInput, limits SimulationLimits) error {
	in = withDefaults(in)
	var errs domain.ValidationErrors
	if in.GirlAge < 0 || in.GirlAge > MaxOpeningAge {
		errs.Add("girlAge", fmt.Sprintf("must be between 0 and %d", MaxOpeningAge))
	}
	if in.AnnualDeposit.LessThan(MinAnnualDeposit) || in.AnnualDeposit.GreaterThan(MaxAnnualDeposit) {
		errs.Add("annualDeposit", fmt.Sprintf("must be between %s and %s", MinAnnualDeposit, MaxAnnualDeposit))
	}
	if in.StartYear < limits.MinYear || in.StartYear > limits.MaxYear {
		errs.Add("startYear", fmt.Sprintf("must be between %d and %d", limits.MinYear, limits.MaxYear))
	}
	if in.MaturityAge <= in.GirlAge {
		errs.Add("maturityAge", "must be greater than the girl's age")
	}
	if in.DepositPeriodYears < 0 {
		errs.Add("depositPeriodYears", "must not be negative")
	}
	return errs.Err()
}

// Simulate runs the account with the published schedule and default limits
func Simulate(in domain.SsyInput) (*domain.SsyResult, error) {
	return defaultSchedule.Simulate(in, DefaultLimits())
}

// Simulate compounds the account year by year until the maturity age.
// Deposits are made only within the deposit period and while the girl is
// under DepositAgeLimit; each deposit earns a full year of interest.
func (s *Schedule) Simulate(in domain.SsyInput, limits SimulationLimits) (*domain.SsyResult, error) {
	if err := ValidateInput(in, limits); err != nil {
		return nil, err
	}
	in = withDefaults(in)

	years := in.MaturityAge - in.GirlAge
	res := &domain.SsyResult{
		Input:           in,
		YearlyBreakdown: make([]domain.SsyYear, 0, years),
		MaturityYear:    in.StartYear + years,
	}

	balance := decimal.Zero
	for y := 1; y <= years; y++ {
		age := in.GirlAge + y - 1
		calendarYear := in.StartYear + y - 1

		deposit := decimal.Zero
		if y <= in.DepositPeriodYears && age < DepositAgeLimit {
			deposit = in.AnnualDeposit
		}

		ratePct := s.ResolveRate(calendarYear)
		interest := balance.Add(deposit).Mul(ratePct).Div(hundred)
		balance = balance.Add(deposit).Add(interest)

		res.TotalInvestment = res.TotalInvestment.Add(deposit)
		res.TotalInterest = res.TotalInterest.Add(interest)
		res.YearlyBreakdown = append(res.YearlyBreakdown, domain.SsyYear{
			Year:         y,
			CalendarYear: calendarYear,
			Age:          age,
			Deposit:      deposit,
			RatePct:      ratePct,
			Interest:     interest,
			Balance:      balance,
		})
	}

	res.MaturityAmount = balance
	return res, nil
}
