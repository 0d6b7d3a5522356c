package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SsyRatePeriod is one row of the girl-child savings scheme rate history
type SsyRatePeriod struct {
	StartDate   time.Time       `json:"startDate" yaml:"start_date"`
	EndDate     time.Time       `json:"endDate" yaml:"end_date"`
	RatePct     decimal.Decimal `json:"ratePct" yaml:"rate_pct"`
	PeriodLabel string          `json:"periodLabel" yaml:"period_label"`
}

// ContainsYear reports whether the calendar year falls within the period's years
func (p SsyRatePeriod) ContainsYear(year int) bool {
	return year >= p.StartDate.Year() && year <= p.EndDate.Year()
}

// SsyInput describes a girl-child savings account to simulate
type SsyInput struct {
	GirlAge            int             `json:"girlAge" yaml:"girl_age"`
	AnnualDeposit      decimal.Decimal `json:"annualDeposit" yaml:"annual_deposit"`
	StartYear          int             `json:"startYear" yaml:"start_year"`
	MaturityAge        int             `json:"maturityAge,omitempty" yaml:"maturity_age,omitempty"`
	DepositPeriodYears int             `json:"depositPeriodYears,omitempty" yaml:"deposit_period_years,omitempty"`
}

// SsyYear is one simulated account year
type SsyYear struct {
	Year         int             `json:"year"`
	CalendarYear int             `json:"calendarYear"`
	Age          int             `json:"age"`
	Deposit      decimal.Decimal `json:"deposit"`
	RatePct      decimal.Decimal `json:"ratePct"`
	Interest     decimal.Decimal `json:"interest"`
	Balance      decimal.Decimal `json:"balance"`
}

// SsyResult is the outcome of a full simulation to maturity
type SsyResult struct {
	Input           SsyInput        `json:"input"`
	YearlyBreakdown []SsyYear       `json:"yearlyBreakdown"`
	MaturityAmount  decimal.Decimal `json:"maturityAmount"`
	TotalInvestment decimal.Decimal `json:"totalInvestment"`
	TotalInterest   decimal.Decimal `json:"totalInterest"`
	MaturityYear    int             `json:"maturityYear"`
}
