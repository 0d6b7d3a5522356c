package calculation

import (
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/shopspring/decimal"
)

// CostProjection is the inflated goal cost and its category split
type CostProjection struct {
	BaseCost       decimal.Decimal
	FutureBaseCost decimal.Decimal
	Categories     []domain.CategoryAmount
	TotalGoalCost  decimal.Decimal
}

// ProjectCost inflates baseCost for the given number of years and adds each
// category as a percentage of the inflated base. With years == 0 the base
// cost is returned unchanged.
func ProjectCost(baseCost, inflationPct decimal.Decimal, years int, categories []profile.Category) CostProjection {
	futureBase := baseCost.Mul(GrowthFactor(PercentToRate(inflationPct), years))

	total := futureBase
	amounts := make([]domain.CategoryAmount, 0, len(categories))
	for _, c := range categories {
		amount := futureBase.Mul(c.Percent).Div(hundred)
		amounts = append(amounts, domain.CategoryAmount{
			Name:    c.Name,
			Percent: c.Percent,
			Amount:  amount,
		})
		total = total.Add(amount)
	}

	return CostProjection{
		BaseCost:       baseCost,
		FutureBaseCost: futureBase,
		Categories:     amounts,
		TotalGoalCost:  total,
	}
}
