package combos

import (
	"github.com/shopspring/decimal"
)

// profitableThreshold is the margin at which a combo at least doubles its
// cost, the bar the sales team uses for "profitable".
var profitableThreshold = decimal.NewFromInt(100)

// Summary aggregates the ranked (already capped) result set. Means and
// extremes intentionally describe what the caller sees, not the full
// Cartesian space.
type Summary struct {
	Count           int             `json:"count"`
	MinMargin       decimal.Decimal `json:"minMarginPercent"`
	MaxMargin       decimal.Decimal `json:"maxMarginPercent"`
	MeanMargin      decimal.Decimal `json:"meanMarginPercent"`
	MeanProfit      decimal.Decimal `json:"meanProfit"`
	MeanCost        decimal.Decimal `json:"meanCostTotal"`
	CountProfitable int             `json:"countProfitable"`
	Generated       int64           `json:"generated"`
	Truncated       bool            `json:"truncated"`
}

// Summarize reduces a ranked result set to its headline statistics. An empty
// set yields the zero Summary.
func Summarize(ranked []Scored) Summary {
	if len(ranked) == 0 {
		return Summary{}
	}

	summary := Summary{
		Count:     len(ranked),
		MinMargin: ranked[0].Result.MarginPercent,
		MaxMargin: ranked[0].Result.MarginPercent,
	}

	var marginSum, profitSum, costSum decimal.Decimal
	for _, s := range ranked {
		margin := s.Result.MarginPercent
		if margin.LessThan(summary.MinMargin) {
			summary.MinMargin = margin
		}
		if margin.GreaterThan(summary.MaxMargin) {
			summary.MaxMargin = margin
		}
		if margin.GreaterThanOrEqual(profitableThreshold) {
			summary.CountProfitable++
		}
		marginSum = marginSum.Add(margin)
		profitSum = profitSum.Add(s.Result.Profit)
		costSum = costSum.Add(s.Result.CostTotal)
	}

	n := decimal.NewFromInt(int64(len(ranked)))
	summary.MeanMargin = marginSum.Div(n)
	summary.MeanProfit = profitSum.Div(n)
	summary.MeanCost = costSum.Div(n)
	return summary
}
