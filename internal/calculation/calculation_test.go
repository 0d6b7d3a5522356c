package calculation

import (
	"testing"

	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimalNear(t *testing.T, want string, got decimal.Decimal, delta float64) {
	t.Helper()
	w, _ := dec(want).Float64()
	g, _ := got.Float64()
	assert.InDelta(t, w, g, delta, "want ~%s, got %s", want, got)
}

func TestGrowthFactor(t *testing.T) {
	assert.True(t, GrowthFactor(dec("0.08"), 0).Equal(decimal.NewFromInt(1)))
	assert.True(t, GrowthFactor(dec("0.08"), -3).Equal(decimal.NewFromInt(1)))
	assert.True(t, GrowthFactor(dec("0.1"), 2).Equal(dec("1.21")))
	assertDecimalNear(t, "2.719623726", GrowthFactor(dec("0.08"), 13), 1e-9)
	assertDecimalNear(t, "4.722090543", GrowthFactor(dec("0.01"), 156), 1e-9)
}

func TestMonthlyRate(t *testing.T) {
	assert.True(t, MonthlyRate(dec("12")).Equal(dec("0.01")))
	assert.True(t, PercentToRate(dec("8.2")).Equal(dec("0.082")))
}

func TestProjectCost_ZeroYearsIsExact(t *testing.T) {
	base := dec("123456.78")
	got := ProjectCost(base, dec("7.5"), 0, nil)
	assert.True(t, got.FutureBaseCost.Equal(base), "got %s", got.FutureBaseCost)
	assert.True(t, got.TotalGoalCost.Equal(base))
}

func TestProjectCost_Example(t *testing.T) {
	got := ProjectCost(dec("2000000"), dec("8"), 13, nil)
	assertDecimalNear(t, "5439247.45", got.FutureBaseCost, 0.01)
	assert.Empty(t, got.Categories)
}

func TestProjectCost_Categories(t *testing.T) {
	cats := []profile.Category{
		{Name: "Accommodation", Percent: dec("10")},
		{Name: "Miscellaneous", Percent: dec("5")},
	}
	got := ProjectCost(dec("100000"), dec("10"), 1, cats)

	assert.True(t, got.FutureBaseCost.Equal(dec("110000")))
	require.Len(t, got.Categories, 2)
	assert.Equal(t, "Accommodation", got.Categories[0].Name)
	assert.True(t, got.Categories[0].Amount.Equal(dec("11000")))
	assert.True(t, got.Categories[1].Amount.Equal(dec("5500")))
	assert.True(t, got.TotalGoalCost.Equal(dec("126500")))
}

func TestAmortizeLoan_StandardEMI(t *testing.T) {
	s := AmortizeLoan(dec("1000000"), dec("1"), 10, dec("10"))
	assert.Equal(t, 120, s.Months)
	assertDecimalNear(t, "13215.07", s.EMI, 0.01)
	assert.True(t, s.TotalRequiredAtGoal.IsZero())
	assert.True(t, s.TotalRepayment.GreaterThanOrEqual(s.LoanAmount))
	assert.True(t, s.TotalInterest.Equal(s.TotalRepayment.Sub(s.LoanAmount)))
}

func TestAmortizeLoan_CoverageSplit(t *testing.T) {
	s := AmortizeLoan(dec("500000"), dec("0.8"), 5, dec("9"))
	assert.True(t, s.LoanAmount.Equal(dec("400000")))
	assert.True(t, s.TotalRequiredAtGoal.Equal(dec("100000")))
}

func TestAmortizeLoan_ZeroRate(t *testing.T) {
	s := AmortizeLoan(dec("120000"), dec("1"), 1, decimal.Zero)
	assert.True(t, s.EMI.Equal(dec("10000")))
	assert.True(t, s.TotalRepayment.Equal(dec("120000")))
	assert.True(t, s.TotalInterest.IsZero())
}

func TestAmortizeLoan_RepaymentNeverBelowPrincipal(t *testing.T) {
	for _, rate := range []string{"0.001", "0.5", "4", "12", "24", "50"} {
		for _, years := range []int{1, 5, 20, 30} {
			s := AmortizeLoan(dec("750000"), dec("0.7"), years, dec(rate))
			assert.True(t, s.TotalRepayment.GreaterThanOrEqual(s.LoanAmount), "rate %s years %d", rate, years)
		}
	}
}

func TestAmortizeLoan_ConvergesAsRateVanishes(t *testing.T) {
	loan := dec("1000000")
	prev := AmortizeLoan(loan, dec("1"), 10, dec("1")).TotalRepayment
	for _, rate := range []string{"0.1", "0.01", "0.0001"} {
		s := AmortizeLoan(loan, dec("1"), 10, dec(rate))
		assert.True(t, s.TotalRepayment.LessThan(prev), "rate %s", rate)
		prev = s.TotalRepayment
	}
	assertDecimalNear(t, "1000000", prev, 10)
}

func TestLoanSchedule_RowsCloseAtZero(t *testing.T) {
	s := AmortizeLoan(dec("250000"), dec("1"), 3, dec("11.5"))
	rows := s.Rows()
	require.Len(t, rows, 36)

	principal := decimal.Zero
	for i, r := range rows {
		assert.Equal(t, i+1, r.Month)
		assert.True(t, r.Closing.Equal(r.Opening.Sub(r.Principal)))
		principal = principal.Add(r.Principal)
	}
	assert.True(t, rows[len(rows)-1].Closing.IsZero())
	assert.True(t, principal.Equal(s.LoanAmount))
}

func TestNoLoan(t *testing.T) {
	s := NoLoan(dec("900000"))
	assert.True(t, s.LoanAmount.IsZero())
	assert.True(t, s.EMI.IsZero())
	assert.True(t, s.TotalRepayment.IsZero())
	assert.True(t, s.TotalRequiredAtGoal.Equal(dec("900000")))
	assert.Nil(t, s.Rows())
}

func TestSolveSIP_Example(t *testing.T) {
	target := ProjectCost(dec("2000000"), dec("8"), 13, nil).TotalGoalCost
	sol := SolveSIP(target, decimal.Zero, dec("12"), 13)

	assert.Equal(t, 156, sol.TotalMonths)
	assert.True(t, sol.MonthlyReturn.Equal(dec("0.01")))
	assertDecimalNear(t, "14613.42", sol.SIPRequired, 0.01)
}

func TestSolveSIP_ZeroReturn(t *testing.T) {
	sol := SolveSIP(dec("120000"), decimal.Zero, decimal.Zero, 10)
	assert.True(t, sol.SIPRequired.Equal(dec("1000")))
}

func TestSolveSIP_SavingsCoverTarget(t *testing.T) {
	sol := SolveSIP(dec("100000"), dec("80000"), dec("10"), 3)
	assert.True(t, sol.FutureSavingsValue.Equal(dec("106480")))
	assert.True(t, sol.AdditionalNeeded.IsZero())
	assert.True(t, sol.SIPRequired.IsZero())
}

func TestSolveSIP_ZeroYears(t *testing.T) {
	sol := SolveSIP(dec("100000"), dec("40000"), dec("10"), 0)
	assert.True(t, sol.FutureSavingsValue.Equal(dec("40000")))
	assert.True(t, sol.SIPRequired.IsZero())
}

func TestProjectFutureValue_ReachesTarget(t *testing.T) {
	sol := SolveSIP(dec("3000000"), dec("250000"), dec("11"), 12)
	fv := ProjectFutureValue(dec("250000"), sol.FutureSavingsValue, sol.SIPRequired, sol.MonthlyReturn, sol.TotalMonths)

	assertDecimalNear(t, "3000000", fv.FutureValue, 0.001)
	assert.True(t, fv.TotalInvestment.Equal(dec("250000").Add(sol.SIPRequired.Mul(decimal.NewFromInt(144)))))
	assert.True(t, fv.NetGains.Equal(fv.FutureValue.Sub(fv.TotalInvestment)))
}

func TestProjectFutureValue_ZeroReturn(t *testing.T) {
	fv := ProjectFutureValue(dec("1000"), dec("1000"), dec("500"), decimal.Zero, 12)
	assert.True(t, fv.FutureValue.Equal(dec("7000")))
	assert.True(t, fv.NetGains.IsZero())
}

func TestEvaluateAchievability(t *testing.T) {
	a := EvaluateAchievability(decimal.Zero, dec("12345"))
	assert.True(t, a.Ratio.Equal(dec("100")))
	assert.True(t, a.Shortfall.IsZero())

	a = EvaluateAchievability(decimal.Zero, decimal.Zero)
	assert.True(t, a.Ratio.Equal(dec("100")))

	a = EvaluateAchievability(dec("200000"), dec("150000"))
	assert.True(t, a.Ratio.Equal(dec("75")))
	assert.True(t, a.Shortfall.Equal(dec("50000")))

	a = EvaluateAchievability(dec("100000"), dec("130000"))
	assert.True(t, a.Ratio.Equal(dec("130")))
	assert.True(t, a.Shortfall.IsZero())

	a = EvaluateAchievability(dec("100000"), decimal.Zero)
	assert.True(t, a.Ratio.IsZero())
}

func TestTopUpSIP(t *testing.T) {
	assert.True(t, TopUpSIP(decimal.Zero, dec("12"), 10).IsZero())
	assert.True(t, TopUpSIP(dec("12000"), decimal.Zero, 1).Equal(dec("1000")))
	assert.True(t, TopUpSIP(dec("50000"), dec("10"), 0).IsZero())
}
