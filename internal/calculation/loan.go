package calculation

import (
	"github.com/shopspring/decimal"
)

// LoanSchedule describes an equated monthly installment loan
type LoanSchedule struct {
	LoanAmount          decimal.Decimal
	TotalRequiredAtGoal decimal.Decimal
	MonthlyRate         decimal.Decimal
	Months              int
	EMI                 decimal.Decimal
	TotalRepayment      decimal.Decimal
	TotalInterest       decimal.Decimal
}

// AmortizationRow is one month of a loan's repayment
type AmortizationRow struct {
	Month     int             `json:"month"`
	Opening   decimal.Decimal `json:"opening"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Closing   decimal.Decimal `json:"closing"`
}

// NoLoan is the schedule used when the goal is funded without borrowing
func NoLoan(totalGoalCost decimal.Decimal) LoanSchedule {
	return LoanSchedule{TotalRequiredAtGoal: totalGoalCost}
}

// AmortizeLoan borrows coverageRatio of the goal cost over tenureYears at
// annualRatePct and computes the EMI. A zero rate splits the principal evenly.
func AmortizeLoan(totalGoalCost, coverageRatio decimal.Decimal, tenureYears int, annualRatePct decimal.Decimal) LoanSchedule {
	loan := totalGoalCost.Mul(coverageRatio)
	s := LoanSchedule{
		LoanAmount:          loan,
		TotalRequiredAtGoal: totalGoalCost.Sub(loan),
		MonthlyRate:         MonthlyRate(annualRatePct),
		Months:              tenureYears * 12,
	}

	switch {
	case s.Months <= 0:
		// Unreachable after validation; repay at once.
		s.EMI = loan
	case s.MonthlyRate.IsPositive():
		factor := GrowthFactor(s.MonthlyRate, s.Months)
		s.EMI = loan.Mul(s.MonthlyRate).Mul(factor).Div(factor.Sub(one))
	default:
		s.EMI = loan.Div(decimal.NewFromInt(int64(s.Months)))
	}

	payments := s.Months
	if payments <= 0 {
		payments = 1
	}
	s.TotalRepayment = s.EMI.Mul(decimal.NewFromInt(int64(payments)))
	if s.TotalRepayment.LessThan(loan) {
		s.TotalRepayment = loan
	}
	s.TotalInterest = s.TotalRepayment.Sub(loan)
	return s
}

// Rows expands the schedule month by month. The final payment absorbs
// rounding so the loan always closes at zero.
func (s LoanSchedule) Rows() []AmortizationRow {
	if s.LoanAmount.IsZero() || s.Months <= 0 {
		return nil
	}
	rows := make([]AmortizationRow, 0, s.Months)
	balance := s.LoanAmount
	for m := 1; m <= s.Months; m++ {
		interest := balance.Mul(s.MonthlyRate).Round(2)
		principal := s.EMI.Sub(interest).Round(2)
		if m == s.Months || principal.GreaterThan(balance) {
			principal = balance
		}
		closing := balance.Sub(principal)
		rows = append(rows, AmortizationRow{
			Month:     m,
			Opening:   balance,
			Interest:  interest,
			Principal: principal,
			Closing:   closing,
		})
		balance = closing
		if balance.IsZero() {
			break
		}
	}
	return rows
}
