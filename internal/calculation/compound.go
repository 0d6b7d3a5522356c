package calculation

import "github.com/shopspring/decimal"

// growthPrecision bounds the digits kept while compounding so long horizons
// at monthly rates stay cheap to compute.
const growthPrecision = 20

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// GrowthFactor returns (1+rate)^periods. Zero or negative periods yield exactly 1.
func GrowthFactor(rate decimal.Decimal, periods int) decimal.Decimal {
	result := one
	if periods <= 0 {
		return result
	}
	base := one.Add(rate)
	for n := periods; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Mul(base).Round(growthPrecision)
		}
		if n > 1 {
			base = base.Mul(base).Round(growthPrecision)
		}
	}
	return result
}

// PercentToRate converts a whole-percent value (8.2) to a fraction (0.082)
func PercentToRate(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// MonthlyRate converts an annual whole-percent rate to a monthly fraction
func MonthlyRate(annualPct decimal.Decimal) decimal.Decimal {
	return PercentToRate(annualPct).Div(twelve)
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
