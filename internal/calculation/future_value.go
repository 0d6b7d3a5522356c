package calculation

import (
	"github.com/shopspring/decimal"
)

// FutureValueProjection is what savings plus contributions grow into
type FutureValueProjection struct {
	TotalInvestment decimal.Decimal
	FutureValue     decimal.Decimal
	NetGains        decimal.Decimal
}

// ProjectFutureValue combines already-grown savings with the future value of
// a monthly contribution stream.
func ProjectFutureValue(savings, futureSavings, monthlySIP, monthlyReturn decimal.Decimal, months int) FutureValueProjection {
	if months < 0 {
		months = 0
	}
	invested := savings.Add(monthlySIP.Mul(decimal.NewFromInt(int64(months))))
	fv := futureSavings.Add(annuityFutureValue(monthlySIP, monthlyReturn, months))
	return FutureValueProjection{
		TotalInvestment: invested,
		FutureValue:     fv,
		NetGains:        fv.Sub(invested),
	}
}

// Achievability compares the projected corpus with the requirement
type Achievability struct {
	Shortfall decimal.Decimal
	Ratio     decimal.Decimal
}

// EvaluateAchievability returns the shortfall and the projected/required
// percentage. A zero requirement is always fully achievable.
func EvaluateAchievability(required, futureValue decimal.Decimal) Achievability {
	if required.IsZero() {
		return Achievability{Shortfall: decimal.Zero, Ratio: hundred}
	}
	a := Achievability{Shortfall: maxZero(required.Sub(futureValue))}
	if futureValue.IsPositive() {
		a.Ratio = futureValue.Div(required).Mul(hundred)
	} else {
		a.Ratio = decimal.Zero
	}
	return a
}
