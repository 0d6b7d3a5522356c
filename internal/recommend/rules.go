package recommend

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/money"
	"github.com/rgehrsitz/goalplan/internal/ssy"
)

// DefaultGroups is the built-in rule table in display order
func DefaultGroups() []Group {
	return []Group{
		achievabilityGroup(),
		horizonGroup(),
		loanCostGroup(),
		emiGroup(),
		sipGroup(),
		contextGroup(),
	}
}

func yearsText(n int) string {
	if n == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", n)
}

func achievabilityGroup() Group {
	return Group{
		Name:      "achievability",
		Exclusive: true,
		Rules: []Rule{
			{
				ID:   "achievable",
				Kind: domain.KindSuccess,
				When: func(f Facts) bool { return f.Result.IsAchievable() },
				Render: func(f Facts) string {
					return fmt.Sprintf("Your plan is on track: the projected %s covers the %s needed at the goal.",
						money.Format(f.Result.FutureValue), money.Format(f.Result.TotalRequiredAtGoal))
				},
			},
			{
				ID:   "near_miss",
				Kind: domain.KindWarning,
				When: func(f Facts) bool {
					return f.Result.AchievabilityRatio.GreaterThanOrEqual(f.Profile.Thresholds.NearMissPct)
				},
				Render: func(f Facts) string {
					text := fmt.Sprintf("You are close: the plan reaches %s of the target, %s short.",
						money.Percent(f.Result.AchievabilityRatio), money.Format(f.Result.Shortfall))
					if f.TopUpSIP.IsPositive() {
						text += fmt.Sprintf(" Investing about %s more each month closes the gap.", money.Format(f.TopUpSIP))
					}
					return text
				},
			},
			{
				ID:   "off_track",
				Kind: domain.KindError,
				Render: func(f Facts) string {
					text := fmt.Sprintf("The plan reaches only %s of the target, leaving a gap of %s.",
						money.Percent(f.Result.AchievabilityRatio), money.Format(f.Result.Shortfall))
					if f.TopUpSIP.IsPositive() {
						text += fmt.Sprintf(" You would need about %s more each month, a later target or a smaller budget.",
							money.Format(f.TopUpSIP))
					}
					return text
				},
			},
		},
	}
}

func horizonGroup() Group {
	return Group{
		Name:      "horizon",
		Exclusive: true,
		Rules: []Rule{
			{
				ID:   "horizon_growth",
				Kind: domain.KindInfo,
				When: func(f Facts) bool {
					band, ok := f.Profile.Thresholds.HorizonBand(f.YearsToGoal)
					return ok && band.EquityPct > band.DebtPct
				},
				Render: func(f Facts) string {
					band, _ := f.Profile.Thresholds.HorizonBand(f.YearsToGoal)
					return fmt.Sprintf("With %s to go (a %s horizon), you can ride out market swings: consider about %d%% equity and %d%% debt.",
						yearsText(f.YearsToGoal), band.Label, band.EquityPct, band.DebtPct)
				},
			},
			{
				ID:   "horizon_balanced",
				Kind: domain.KindInfo,
				When: func(f Facts) bool {
					band, ok := f.Profile.Thresholds.HorizonBand(f.YearsToGoal)
					return ok && band.EquityPct > 0
				},
				Render: func(f Facts) string {
					band, _ := f.Profile.Thresholds.HorizonBand(f.YearsToGoal)
					return fmt.Sprintf("With %s to go (a %s horizon), start shifting toward safety: about %d%% equity and %d%% debt.",
						yearsText(f.YearsToGoal), band.Label, band.EquityPct, band.DebtPct)
				},
			},
			{
				ID:   "horizon_preserve",
				Kind: domain.KindWarning,
				When: func(f Facts) bool {
					_, ok := f.Profile.Thresholds.HorizonBand(f.YearsToGoal)
					return ok
				},
				Render: func(f Facts) string {
					return fmt.Sprintf("With only %s left, keep the money in capital-safe options such as fixed deposits or liquid funds.",
						yearsText(f.YearsToGoal))
				},
			},
		},
	}
}

func loanCostGroup() Group {
	return Group{
		Name:    "loan",
		Applies: Facts.hasLoan,
		Rules: []Rule{
			{
				ID:   "loan_interest",
				Kind: domain.KindInfo,
				Render: func(f Facts) string {
					return fmt.Sprintf("The %s loan costs %s in interest; you repay %s in total over %s.",
						money.Format(f.Result.LoanAmount), money.Format(f.Result.TotalLoanInterest),
						money.Format(f.Result.TotalLoanRepayment), yearsText(f.Input.LoanTenureYears))
				},
			},
		},
	}
}

func emiGroup() Group {
	return Group{
		Name:      "emi_affordability",
		Exclusive: true,
		Applies:   Facts.hasLoan,
		Rules: []Rule{
			{
				ID:   "emi_unknown_income",
				Kind: domain.KindInfo,
				When: func(f Facts) bool { return !f.HasIncome },
				Render: func(f Facts) string {
					return fmt.Sprintf("Add your monthly income to check whether the %s EMI is affordable.",
						money.Format(f.Result.EMIAmount))
				},
			},
			{
				ID:   "emi_high",
				Kind: domain.KindWarning,
				When: func(f Facts) bool {
					return f.EMIIncomePct.GreaterThan(f.Profile.Thresholds.EMIIncomeWarnPct)
				},
				Render: func(f Facts) string {
					return fmt.Sprintf("The %s EMI takes %s of your monthly income, above the %s comfort limit. Consider a longer tenure or a smaller loan.",
						money.Format(f.Result.EMIAmount), money.Percent(f.EMIIncomePct),
						money.Percent(f.Profile.Thresholds.EMIIncomeWarnPct))
				},
			},
			{
				ID:   "emi_manageable",
				Kind: domain.KindInfo,
				Render: func(f Facts) string {
					return fmt.Sprintf("The %s EMI is %s of your monthly income, which is manageable.",
						money.Format(f.Result.EMIAmount), money.Percent(f.EMIIncomePct))
				},
			},
		},
	}
}

func sipGroup() Group {
	return Group{
		Name:      "sip_affordability",
		Exclusive: true,
		Applies:   func(f Facts) bool { return f.Result.MonthlyContribution.IsPositive() },
		Rules: []Rule{
			{
				ID:   "sip_unknown_income",
				Kind: domain.KindInfo,
				When: func(f Facts) bool { return !f.HasIncome },
				Render: func(f Facts) string {
					return fmt.Sprintf("Add your monthly income to check whether a %s monthly SIP is affordable.",
						money.Format(f.Result.MonthlyContribution))
				},
			},
			{
				ID:   "sip_high",
				Kind: domain.KindWarning,
				When: func(f Facts) bool {
					return f.SIPIncomePct.GreaterThan(f.Profile.Thresholds.SIPIncomeWarnPct)
				},
				Render: func(f Facts) string {
					return fmt.Sprintf("A %s monthly SIP is %s of your income, above the %s comfort limit. A later target date or a smaller budget would ease it.",
						money.Format(f.Result.MonthlyContribution), money.Percent(f.SIPIncomePct),
						money.Percent(f.Profile.Thresholds.SIPIncomeWarnPct))
				},
			},
			{
				ID:   "sip_affordable",
				Kind: domain.KindSuccess,
				Render: func(f Facts) string {
					return fmt.Sprintf("A %s monthly SIP is %s of your income and fits your budget.",
						money.Format(f.Result.MonthlyContribution), money.Percent(f.SIPIncomePct))
				},
			},
		},
	}
}

func isGoal(gt domain.GoalType) func(Facts) bool {
	return func(f Facts) bool { return f.Profile.Type == gt }
}

func contextGroup() Group {
	return Group{
		Name: "context",
		Rules: []Rule{
			{
				ID:   "immediate_need",
				Kind: domain.KindError,
				When: func(f Facts) bool {
					return f.YearsToGoal == 0 && f.Result.Shortfall.IsPositive()
				},
				Render: func(f Facts) string {
					return fmt.Sprintf("The goal is due this year, so there is no time left to invest. The %s gap must come from existing funds or a smaller budget.",
						money.Format(f.Result.Shortfall))
				},
			},
			{
				ID:   "savings_cover_goal",
				Kind: domain.KindSuccess,
				When: func(f Facts) bool {
					r := f.Result
					return r.TotalRequiredAtGoal.IsPositive() && f.YearsToGoal > 0 &&
						r.FutureSavingsValue.GreaterThanOrEqual(r.TotalRequiredAtGoal)
				},
				Render: func(f Facts) string {
					return fmt.Sprintf("Your current savings alone should grow to %s, enough for this goal without a monthly SIP.",
						money.Format(f.Result.FutureSavingsValue))
				},
			},
			{
				ID:   "inflation_impact",
				Kind: domain.KindInfo,
				When: func(f Facts) bool {
					return f.YearsToGoal > 0 && f.Input.InflationRatePct.IsPositive()
				},
				Render: func(f Facts) string {
					return fmt.Sprintf("At %s inflation, a cost of %s today becomes %s in %s.",
						money.Percent(f.Input.InflationRatePct), money.Format(f.Profile.EffectiveBaseCost(f.Input)),
						money.Format(f.Result.FutureBaseCost), yearsText(f.YearsToGoal))
				},
			},
			{
				ID:   "early_start",
				Kind: domain.KindSuccess,
				When: func(f Facts) bool {
					limit := f.Profile.Thresholds.EarlyStartChildAge
					return f.Profile.ChildRelative && limit > 0 && f.YearsToGoal > 0 &&
						f.Input.ChildCurrentAge <= limit
				},
				Render: func(f Facts) string {
					return fmt.Sprintf("Starting while your child is %s gives compounding %s to work.",
						ageText(f.Input.ChildCurrentAge), yearsText(f.YearsToGoal))
				},
			},
			{
				ID:   "vacation_loan_caution",
				Kind: domain.KindWarning,
				When: func(f Facts) bool { return isGoal(domain.GoalVacation)(f) && f.Input.WantLoan },
				Render: func(f Facts) string {
					return fmt.Sprintf("Avoid borrowing for a vacation: the loan adds %s of interest to the trip. Saving for it keeps the holiday debt-free.",
						money.Format(f.Result.TotalLoanInterest))
				},
			},
			{
				ID:   "vacation_no_loan",
				Kind: domain.KindInfo,
				When: func(f Facts) bool { return isGoal(domain.GoalVacation)(f) && !f.Input.WantLoan },
				Render: func(Facts) string {
					return "Good call funding the trip from savings. Never take a loan for a vacation."
				},
			},
			{
				ID:   "vacation_book_early",
				Kind: domain.KindInfo,
				When: isGoal(domain.GoalVacation),
				Render: func(Facts) string {
					return "Pro tip: book flights and hotels a few months ahead, when fares are usually lower."
				},
			},
			{
				ID:   "retirement_healthcare",
				Kind: domain.KindInfo,
				When: func(f Facts) bool {
					_, ok := f.Result.CategoryAmount("Healthcare")
					return isGoal(domain.GoalRetirement)(f) && ok
				},
				Render: func(f Facts) string {
					amount, _ := f.Result.CategoryAmount("Healthcare")
					return fmt.Sprintf("The plan sets aside %s for healthcare. Medical costs tend to rise faster than general inflation, so keep health cover in place.",
						money.Format(amount))
				},
			},
			{
				ID:   "girl_child_scheme",
				Kind: domain.KindInfo,
				When: func(f Facts) bool {
					return isGoal(domain.GoalGirlChild)(f) && f.Input.ChildCurrentAge <= ssy.MaxOpeningAge
				},
				Render: func(f Facts) string {
					return fmt.Sprintf("The girl-child savings scheme pays %s for %d and is tax-free. Deposits of up to %s a year can complement this plan.",
						money.Percent(f.SchemeRatePct), f.PlanYear, money.Format(ssy.MaxAnnualDeposit))
				},
			},
			{
				ID:   "girl_child_scheme_closed",
				Kind: domain.KindInfo,
				When: func(f Facts) bool {
					return isGoal(domain.GoalGirlChild)(f) && f.Input.ChildCurrentAge > ssy.MaxOpeningAge
				},
				Render: func(Facts) string {
					return fmt.Sprintf("The girl-child savings scheme only accepts accounts opened before age %d, so this plan relies on market investments.",
						ssy.MaxOpeningAge+1)
				},
			},
			{
				ID:   "self_education_sponsor",
				Kind: domain.KindInfo,
				When: isGoal(domain.GoalSelfEducation),
				Render: func(Facts) string {
					return "Check whether your employer sponsors courses or reimburses fees before funding this yourself."
				},
			},
			{
				ID:   "wedding_jewellery",
				Kind: domain.KindInfo,
				When: func(f Facts) bool {
					_, ok := f.Result.CategoryAmount("Jewellery")
					return isGoal(domain.GoalChildWedding)(f) && ok
				},
				Render: func(f Facts) string {
					amount, _ := f.Result.CategoryAmount("Jewellery")
					return fmt.Sprintf("Jewellery accounts for %s. Buying gold in small amounts over the years averages out price swings.",
						money.Format(amount))
				},
			},
		},
	}
}

func ageText(age int) string {
	if age == 0 {
		return "under a year old"
	}
	return yearsText(age) + " old"
}
