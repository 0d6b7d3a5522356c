package profile

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Registry holds goal profiles keyed by goal type
type Registry struct {
	profiles map[domain.GoalType]GoalProfile
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[domain.GoalType]GoalProfile)}
}

// Register adds or replaces a profile
func (r *Registry) Register(p GoalProfile) {
	r.profiles[p.Type] = p
}

// Get looks up a profile by goal type
func (r *Registry) Get(gt domain.GoalType) (GoalProfile, bool) {
	p, ok := r.profiles[gt]
	return p, ok
}

// Lookup is Get with an error for unknown goal types
func (r *Registry) Lookup(gt domain.GoalType) (GoalProfile, error) {
	p, ok := r.profiles[gt]
	if !ok {
		return GoalProfile{}, fmt.Errorf("%w: %q", domain.ErrUnknownGoalType, gt)
	}
	return p, nil
}

// MustGet is Lookup for built-in goal types; it panics on unknown types
func (r *Registry) MustGet(gt domain.GoalType) GoalProfile {
	p, err := r.Lookup(gt)
	if err != nil {
		panic(err)
	}
	return p
}

// List returns registered profiles in the canonical goal order, followed by
// any custom goal types sorted by name.
func (r *Registry) List() []GoalProfile {
	out := make([]GoalProfile, 0, len(r.profiles))
	seen := make(map[domain.GoalType]bool, len(r.profiles))
	for _, gt := range domain.AllGoalTypes() {
		if p, ok := r.profiles[gt]; ok {
			out = append(out, p)
			seen[gt] = true
		}
	}
	var extra []GoalProfile
	for gt, p := range r.profiles {
		if !seen[gt] {
			extra = append(extra, p)
		}
	}
	sortProfiles(extra)
	return append(out, extra...)
}

func sortProfiles(ps []GoalProfile) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Type < ps[j].Type })
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry of built-in goal profiles.
// Callers must treat it as read-only.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = BuiltIn()
	})
	return defaultRegistry
}

func pct(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// standardBands suit goals funded over a decade or more
func standardBands() []HorizonBand {
	return []HorizonBand{
		{MinYears: 10, Label: "long", EquityPct: 70, DebtPct: 30},
		{MinYears: 5, Label: "medium", EquityPct: 50, DebtPct: 50},
		{MinYears: 2, Label: "short", EquityPct: 20, DebtPct: 80},
		{MinYears: 0, Label: "very short", EquityPct: 0, DebtPct: 100},
	}
}

// BuiltIn creates a fresh registry with the six supported goal profiles
func BuiltIn() *Registry {
	r := NewRegistry()

	r.Register(GoalProfile{
		Type:                  domain.GoalRetirement,
		Title:                 "Retirement",
		Description:           "Build a corpus that pays a monthly income from retirement to life expectancy",
		AnnualizeBase:         true,
		DefaultLifeExpectancy: 85,
		Categories: []Category{
			{Name: "Healthcare", Percent: pct(15)},
			{Name: "Emergency Reserve", Percent: pct(10)},
		},
		MaxTargetAge: 80,
		Thresholds: Thresholds{
			HorizonBands: []HorizonBand{
				{MinYears: 15, Label: "long", EquityPct: 75, DebtPct: 25},
				{MinYears: 10, Label: "medium", EquityPct: 60, DebtPct: 40},
				{MinYears: 5, Label: "short", EquityPct: 40, DebtPct: 60},
				{MinYears: 0, Label: "very short", EquityPct: 20, DebtPct: 80},
			},
			NearMissPct:      pct(80),
			SIPIncomeWarnPct: pct(30),
		},
	})

	r.Register(GoalProfile{
		Type:          domain.GoalChildEducation,
		Title:         "Child's Education",
		Description:   "Fund a child's higher education",
		ChildRelative: true,
		Categories: []Category{
			{Name: "Accommodation", Percent: pct(15)},
			{Name: "Books & Supplies", Percent: pct(5)},
			{Name: "Travel", Percent: pct(5)},
			{Name: "Miscellaneous", Percent: pct(5)},
		},
		LoanAllowed:       true,
		LoanCoverageRatio: pct(0.8),
		MaxTargetAge:      35,
		Thresholds: Thresholds{
			HorizonBands:       standardBands(),
			NearMissPct:        pct(80),
			EMIIncomeWarnPct:   pct(40),
			SIPIncomeWarnPct:   pct(30),
			EarlyStartChildAge: 5,
		},
	})

	r.Register(GoalProfile{
		Type:          domain.GoalChildWedding,
		Title:         "Child's Wedding",
		Description:   "Save for a child's wedding",
		ChildRelative: true,
		Categories: []Category{
			{Name: "Jewellery", Percent: pct(20)},
			{Name: "Clothing", Percent: pct(10)},
			{Name: "Gifts", Percent: pct(5)},
			{Name: "Miscellaneous", Percent: pct(5)},
		},
		LoanAllowed:       true,
		LoanCoverageRatio: pct(0.5),
		MaxTargetAge:      45,
		Thresholds: Thresholds{
			HorizonBands:       standardBands(),
			NearMissPct:        pct(80),
			EMIIncomeWarnPct:   pct(35),
			SIPIncomeWarnPct:   pct(30),
			EarlyStartChildAge: 5,
		},
	})

	r.Register(GoalProfile{
		Type:        domain.GoalSelfEducation,
		Title:       "Self Education",
		Description: "Pay for your own degree, certification or course",
		Categories: []Category{
			{Name: "Accommodation", Percent: pct(10)},
			{Name: "Study Material", Percent: pct(5)},
			{Name: "Travel", Percent: pct(5)},
			{Name: "Miscellaneous", Percent: pct(5)},
		},
		LoanAllowed:       true,
		LoanCoverageRatio: pct(0.9),
		MaxTargetAge:      70,
		Thresholds: Thresholds{
			HorizonBands: []HorizonBand{
				{MinYears: 5, Label: "long", EquityPct: 60, DebtPct: 40},
				{MinYears: 3, Label: "medium", EquityPct: 40, DebtPct: 60},
				{MinYears: 1, Label: "short", EquityPct: 15, DebtPct: 85},
				{MinYears: 0, Label: "very short", EquityPct: 0, DebtPct: 100},
			},
			NearMissPct:      pct(80),
			EMIIncomeWarnPct: pct(40),
			SIPIncomeWarnPct: pct(30),
		},
	})

	r.Register(GoalProfile{
		Type:        domain.GoalVacation,
		Title:       "Vacation",
		Description: "Plan a holiday without touching other savings",
		Categories: []Category{
			{Name: "Shopping", Percent: pct(10)},
			{Name: "Local Transport", Percent: pct(5)},
			{Name: "Travel Insurance", Percent: pct(2)},
			{Name: "Miscellaneous", Percent: pct(5)},
		},
		LoanAllowed:       true,
		LoanCoverageRatio: pct(0.7),
		MaxTargetAge:      100,
		Thresholds: Thresholds{
			HorizonBands: []HorizonBand{
				{MinYears: 5, Label: "long", EquityPct: 50, DebtPct: 50},
				{MinYears: 3, Label: "medium", EquityPct: 30, DebtPct: 70},
				{MinYears: 1, Label: "short", EquityPct: 10, DebtPct: 90},
				{MinYears: 0, Label: "very short", EquityPct: 0, DebtPct: 100},
			},
			NearMissPct:      pct(80),
			EMIIncomeWarnPct: pct(20),
			SIPIncomeWarnPct: pct(20),
		},
	})

	r.Register(GoalProfile{
		Type:          domain.GoalGirlChild,
		Title:         "Girl Child Future",
		Description:   "Build a corpus for a daughter's education and marriage",
		ChildRelative: true,
		Categories: []Category{
			{Name: "Contingency", Percent: pct(5)},
		},
		MaxTargetAge: 30,
		Thresholds: Thresholds{
			HorizonBands: []HorizonBand{
				{MinYears: 15, Label: "long", EquityPct: 70, DebtPct: 30},
				{MinYears: 8, Label: "medium", EquityPct: 50, DebtPct: 50},
				{MinYears: 3, Label: "short", EquityPct: 25, DebtPct: 75},
				{MinYears: 0, Label: "very short", EquityPct: 0, DebtPct: 100},
			},
			NearMissPct:        pct(80),
			SIPIncomeWarnPct:   pct(25),
			EarlyStartChildAge: 5,
		},
	})

	return r
}
