// Package ssy models the girl-child savings scheme: a published interest
// rate history with fallbacks, and a year-by-year account simulation.
package ssy

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Plausible calendar years accepted for rate lookups and simulations
const (
	DefaultMinYear = 2000
	DefaultMaxYear = 2050
)

// Schedule is an ordered, year-disjoint rate table plus fallback rates.
// A Schedule is immutable once built and safe for concurrent use.
type Schedule struct {
	periods       []domain.SsyRatePeriod
	preTableRate  decimal.Decimal
	projectedRate decimal.Decimal
	lastYear      int
}

// NewSchedule validates the table and builds a Schedule. Periods must be in
// chronological order and no calendar year may belong to two periods.
func NewSchedule(periods []domain.SsyRatePeriod, preTableRate, projectedRate decimal.Decimal) (*Schedule, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("rate schedule needs at least one period")
	}
	for i, p := range periods {
		if p.EndDate.Before(p.StartDate) {
			return nil, fmt.Errorf("period %d (%s) ends before it starts", i, p.PeriodLabel)
		}
		if p.RatePct.IsNegative() {
			return nil, fmt.Errorf("period %d (%s) has a negative rate", i, p.PeriodLabel)
		}
		if i > 0 && p.StartDate.Year() <= periods[i-1].EndDate.Year() {
			return nil, fmt.Errorf("period %d (%s) overlaps year %d of the previous period",
				i, p.PeriodLabel, periods[i-1].EndDate.Year())
		}
	}
	cp := make([]domain.SsyRatePeriod, len(periods))
	copy(cp, periods)
	return &Schedule{
		periods:       cp,
		preTableRate:  preTableRate,
		projectedRate: projectedRate,
		lastYear:      cp[len(cp)-1].EndDate.Year(),
	}, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func period(start, end time.Time, rate, label string) domain.SsyRatePeriod {
	return domain.SsyRatePeriod{
		StartDate:   start,
		EndDate:     end,
		RatePct:     decimal.RequireFromString(rate),
		PeriodLabel: label,
	}
}

// PublishedPeriods is the scheme's rate history, one entry per block of
// calendar years sharing a rate.
func PublishedPeriods() []domain.SsyRatePeriod {
	return []domain.SsyRatePeriod{
		period(date(2014, time.December, 2), date(2015, time.December, 31), "9.1", "Dec 2014 - Dec 2015"),
		period(date(2016, time.January, 1), date(2016, time.December, 31), "8.6", "2016"),
		period(date(2017, time.January, 1), date(2017, time.December, 31), "8.4", "2017"),
		period(date(2018, time.January, 1), date(2018, time.December, 31), "8.1", "2018"),
		period(date(2019, time.January, 1), date(2019, time.December, 31), "8.4", "2019"),
		period(date(2020, time.April, 1), date(2023, time.March, 31), "7.6", "Apr 2020 - Mar 2023"),
		period(date(2024, time.January, 1), date(2025, time.December, 31), "8.2", "2024 - 2025"),
	}
}

// Fallback rates for years outside the published table
var (
	PreTableRatePct  = decimal.RequireFromString("9.1")
	ProjectedRatePct = decimal.RequireFromString("8.2")
)

var defaultSchedule = mustSchedule(PublishedPeriods(), PreTableRatePct, ProjectedRatePct)

func mustSchedule(periods []domain.SsyRatePeriod, pre, projected decimal.Decimal) *Schedule {
	s, err := NewSchedule(periods, pre, projected)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultSchedule returns the published rate schedule
func DefaultSchedule() *Schedule {
	return defaultSchedule
}

// Periods returns a copy of the table
func (s *Schedule) Periods() []domain.SsyRatePeriod {
	out := make([]domain.SsyRatePeriod, len(s.periods))
	copy(out, s.periods)
	return out
}

// LastTableYear is the final calendar year covered by the table
func (s *Schedule) LastTableYear() int {
	return s.lastYear
}

// ResolveRate returns the annual rate (whole percent) for a calendar year.
// Years after the table use the projected rate; earlier or uncovered years
// use the pre-table rate. Every integer year resolves to exactly one rate.
func (s *Schedule) ResolveRate(year int) decimal.Decimal {
	rate, _ := s.Resolve(year)
	return rate
}

// Resolve is ResolveRate that also reports the matching period, if any
func (s *Schedule) Resolve(year int) (decimal.Decimal, *domain.SsyRatePeriod) {
	if year > s.lastYear {
		return s.projectedRate, nil
	}
	for i := range s.periods {
		if s.periods[i].ContainsYear(year) {
			p := s.periods[i]
			return p.RatePct, &p
		}
	}
	return s.preTableRate, nil
}

// ResolveRate looks a year up in the published schedule
func ResolveRate(year int) decimal.Decimal {
	return defaultSchedule.ResolveRate(year)
}

// ValidateYear rejects years outside [minYear, maxYear]
func ValidateYear(year, minYear, maxYear int) error {
	if year < minYear || year > maxYear {
		var errs domain.ValidationErrors
		errs.Add("year", fmt.Sprintf("must be between %d and %d, got %d", minYear, maxYear, year))
		return errs
	}
	return nil
}
