package recommend

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func factsFor(t *testing.T, in domain.GoalPlanInput, res *domain.CalculationResult) Facts {
	t.Helper()
	p, err := profile.Default().Lookup(in.GoalType)
	require.NoError(t, err)
	res.GoalType = in.GoalType
	return NewFacts(in, res, p, 2024)
}

func onTrack(years int) *domain.CalculationResult {
	return &domain.CalculationResult{
		YearsToGoal:         years,
		TotalRequiredAtGoal: d(1000000),
		FutureValue:         d(1000000),
		AchievabilityRatio:  d(100),
		SIPRequired:         d(5000),
		MonthlyContribution: d(5000),
	}
}

func educationInput() domain.GoalPlanInput {
	return domain.GoalPlanInput{
		GoalType:         domain.GoalChildEducation,
		ChildCurrentAge:  8,
		TargetAge:        18,
		BaseCost:         d(1000000),
		MonthlyIncome:    d(100000),
		InflationRatePct: d(6),
	}
}

func TestNewFacts_Ratios(t *testing.T) {
	in := educationInput()
	res := onTrack(10)
	res.EMIAmount = d(40000)
	f := factsFor(t, in, res)

	assert.True(t, f.HasIncome)
	assert.True(t, f.EMIIncomePct.Equal(d(40)))
	assert.True(t, f.SIPIncomePct.Equal(d(5)))
	assert.True(t, f.SchemeRatePct.Equal(decimal.RequireFromString("8.2")))
}

func TestNewFacts_NoIncome(t *testing.T) {
	in := educationInput()
	in.MonthlyIncome = decimal.Zero
	f := factsFor(t, in, onTrack(10))

	assert.False(t, f.HasIncome)
	assert.True(t, f.SIPIncomePct.IsZero())
}

func TestAchievabilityTiers(t *testing.T) {
	tests := []struct {
		name  string
		ratio int64
		want  string
		kind  domain.RecommendationKind
	}{
		{"exactly funded", 100, "achievable", domain.KindSuccess},
		{"over funded", 140, "achievable", domain.KindSuccess},
		{"near miss", 85, "near_miss", domain.KindWarning},
		{"near miss boundary", 80, "near_miss", domain.KindWarning},
		{"off track", 79, "off_track", domain.KindError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := onTrack(10)
			res.AchievabilityRatio = d(tt.ratio)
			f := factsFor(t, educationInput(), res)

			ids := DefaultEngine().Matches(f)
			require.NotEmpty(t, ids)
			assert.Equal(t, tt.want, ids[0])

			recs := DefaultEngine().Evaluate(f)
			assert.Equal(t, tt.kind, recs[0].Kind)
		})
	}
}

func TestNearMissQuotesTopUp(t *testing.T) {
	res := onTrack(10)
	res.AchievabilityRatio = d(90)
	res.Shortfall = d(100000)
	f := factsFor(t, educationInput(), res).WithTopUp(d(1234))

	recs := DefaultEngine().Evaluate(f)
	assert.Contains(t, recs[0].Text, "₹1,234")
	assert.Contains(t, recs[0].Text, "₹100,000")
}

func TestHorizonBands(t *testing.T) {
	tests := []struct {
		years int
		want  string
	}{
		{13, "horizon_growth"},
		{10, "horizon_growth"},
		{7, "horizon_balanced"},
		{3, "horizon_balanced"},
		{1, "horizon_preserve"},
		{0, "horizon_preserve"},
	}
	for _, tt := range tests {
		f := factsFor(t, educationInput(), onTrack(tt.years))
		ids := DefaultEngine().Matches(f)
		require.GreaterOrEqual(t, len(ids), 2)
		assert.Equal(t, tt.want, ids[1], "years %d", tt.years)
	}
}

func TestHorizonText_IncludesMix(t *testing.T) {
	f := factsFor(t, educationInput(), onTrack(12))
	recs := DefaultEngine().Evaluate(f)
	assert.Contains(t, recs[1].Text, "70% equity")
	assert.Contains(t, recs[1].Text, "30% debt")
}

func TestLoanRules_OnlyWhenWanted(t *testing.T) {
	res := onTrack(10)
	res.LoanAmount = d(800000)
	res.EMIAmount = d(20000)

	in := educationInput()
	ids := DefaultEngine().Matches(factsFor(t, in, res))
	assert.NotContains(t, ids, "loan_interest")
	assert.NotContains(t, ids, "emi_manageable")

	in.WantLoan = true
	in.LoanTenureYears = 5
	ids = DefaultEngine().Matches(factsFor(t, in, res))
	assert.Contains(t, ids, "loan_interest")
	assert.Contains(t, ids, "emi_manageable")
}

func TestEMIAffordability(t *testing.T) {
	in := educationInput()
	in.WantLoan = true
	in.LoanTenureYears = 5

	res := onTrack(10)
	res.LoanAmount = d(800000)
	res.EMIAmount = d(45000)
	ids := DefaultEngine().Matches(factsFor(t, in, res))
	assert.Contains(t, ids, "emi_high")
	assert.NotContains(t, ids, "emi_manageable")

	in.MonthlyIncome = decimal.Zero
	ids = DefaultEngine().Matches(factsFor(t, in, res))
	assert.Contains(t, ids, "emi_unknown_income")
}

func TestSIPAffordability(t *testing.T) {
	in := educationInput()

	res := onTrack(10)
	res.MonthlyContribution = d(35000)
	assert.Contains(t, DefaultEngine().Matches(factsFor(t, in, res)), "sip_high")

	res.MonthlyContribution = d(10000)
	assert.Contains(t, DefaultEngine().Matches(factsFor(t, in, res)), "sip_affordable")

	res.MonthlyContribution = decimal.Zero
	ids := DefaultEngine().Matches(factsFor(t, in, res))
	assert.NotContains(t, ids, "sip_affordable")
	assert.NotContains(t, ids, "sip_high")
}

func TestContext_EarlyStart(t *testing.T) {
	in := educationInput()
	in.ChildCurrentAge = 3
	assert.Contains(t, DefaultEngine().Matches(factsFor(t, in, onTrack(15))), "early_start")

	in.ChildCurrentAge = 8
	assert.NotContains(t, DefaultEngine().Matches(factsFor(t, in, onTrack(10))), "early_start")
}

func TestContext_Vacation(t *testing.T) {
	in := domain.GoalPlanInput{GoalType: domain.GoalVacation, CurrentAge: 30, TargetAge: 32, BaseCost: d(200000)}

	ids := DefaultEngine().Matches(factsFor(t, in, onTrack(2)))
	assert.Contains(t, ids, "vacation_no_loan")
	assert.Contains(t, ids, "vacation_book_early")

	in.WantLoan = true
	recs := DefaultEngine().Evaluate(factsFor(t, in, onTrack(2)))
	var caution *domain.Recommendation
	for i := range recs {
		if strings.HasPrefix(recs[i].Text, "Avoid borrowing") {
			caution = &recs[i]
		}
	}
	require.NotNil(t, caution)
	assert.Equal(t, domain.KindWarning, caution.Kind)
}

func TestContext_GirlChildQuotesSchemeRate(t *testing.T) {
	in := domain.GoalPlanInput{GoalType: domain.GoalGirlChild, ChildCurrentAge: 4, TargetAge: 21, BaseCost: d(500000)}
	p, err := profile.Default().Lookup(domain.GoalGirlChild)
	require.NoError(t, err)

	f := NewFacts(in, onTrack(17), p, 2021)
	recs := DefaultEngine().Evaluate(f)

	found := false
	for _, r := range recs {
		if strings.Contains(r.Text, "7.6%") && strings.Contains(r.Text, "2021") {
			found = true
		}
	}
	assert.True(t, found, "scheme note should quote the 2021 rate")

	in.ChildCurrentAge = 12
	ids := DefaultEngine().Matches(NewFacts(in, onTrack(9), p, 2021))
	assert.Contains(t, ids, "girl_child_scheme_closed")
}

func TestContext_ImmediateNeed(t *testing.T) {
	res := onTrack(0)
	res.AchievabilityRatio = d(40)
	res.Shortfall = d(600000)
	ids := DefaultEngine().Matches(factsFor(t, educationInput(), res))
	assert.Contains(t, ids, "immediate_need")
	assert.Equal(t, "off_track", ids[0])
}

func TestEngine_CustomGroups(t *testing.T) {
	always := func(Facts) bool { return true }
	render := func(s string) func(Facts) string { return func(Facts) string { return s } }

	e := NewEngine(
		Group{Name: "first", Exclusive: true, Rules: []Rule{
			{ID: "a", Kind: domain.KindInfo, When: always, Render: render("a")},
			{ID: "b", Kind: domain.KindInfo, When: always, Render: render("b")},
		}},
		Group{Name: "skipped", Applies: func(Facts) bool { return false }, Rules: []Rule{
			{ID: "c", Kind: domain.KindInfo, Render: render("c")},
		}},
		Group{Name: "all", Rules: []Rule{
			{ID: "d", Kind: domain.KindWarning, Render: render("d")},
			{ID: "e", Kind: domain.KindError, When: always, Render: render("e")},
		}},
	)

	f := factsFor(t, educationInput(), onTrack(5))
	assert.Equal(t, []string{"a", "d", "e"}, e.Matches(f))

	recs := e.Evaluate(f)
	require.Len(t, recs, 3)
	assert.Equal(t, domain.Recommendation{Kind: domain.KindError, Text: "e"}, recs[2])
}

func TestEvaluate_Deterministic(t *testing.T) {
	f := factsFor(t, educationInput(), onTrack(10))
	assert.Equal(t, DefaultEngine().Evaluate(f), DefaultEngine().Evaluate(f))
}
