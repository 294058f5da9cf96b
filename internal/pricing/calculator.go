package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/davidreyero/comboforge-backend/pkg/enums"
	pkgerrors "github.com/davidreyero/comboforge-backend/pkg/errors"
	"github.com/davidreyero/comboforge-backend/pkg/types"
)

var hundred = decimal.NewFromInt(100)

// Quote prices one combination under the channel picked in params and returns
// the full financial result. It never emits NaN or infinity: the zero-divisor
// cases surface as typed failures instead.
func Quote(combo types.Combination, model CostModel, params Params) (*types.ChannelCostResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(combo) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "combination has no items")
	}

	breakdown, err := model.ComputeCost(combo, params)
	if err != nil {
		return nil, err
	}
	costTotal := CostTotal(breakdown)

	effectiveSale := params.SalePrice
	if model.Channel() == enums.SalesChannelCatering {
		rate := VolumeDiscountRate(params.GuestCount)
		effectiveSale = params.SalePrice.Mul(decimal.NewFromInt(1).Sub(rate))
	}

	priceSum := combo.RetailSum(model.Channel())
	profit := effectiveSale.Sub(costTotal)

	if costTotal.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeUndefinedMargin, "cost total is zero").
			WithDetails(map[string]any{"sale_price": params.SalePrice.String()})
	}
	margin := profit.Div(costTotal).Mul(hundred)

	if priceSum.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeUndefinedDiscount, "individual price sum is zero").
			WithDetails(map[string]any{"channel": model.Channel().String()})
	}
	discountAmount := priceSum.Sub(params.SalePrice)
	discountPercent := discountAmount.Div(priceSum).Mul(hundred)

	return &types.ChannelCostResult{
		CostTotal:          costTotal,
		IndividualPriceSum: priceSum,
		SalePrice:          params.SalePrice,
		EffectiveSalePrice: effectiveSale,
		Profit:             profit,
		MarginPercent:      margin,
		DiscountAmount:     discountAmount,
		DiscountPercent:    discountPercent,
		BundleAdvantageous: params.SalePrice.LessThan(priceSum),
		Breakdown:          breakdown,
	}, nil
}

// QuoteChannel is the common path: pick the model from the channel in params.
func QuoteChannel(combo types.Combination, params Params) (*types.ChannelCostResult, error) {
	return Quote(combo, ModelFor(params.Channel), params)
}
