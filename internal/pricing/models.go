package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/davidreyero/comboforge-backend/pkg/enums"
	"github.com/davidreyero/comboforge-backend/pkg/types"
)

// CostModel computes the channel-specific cost of one combination. Models are
// pure functions of their inputs and safe for concurrent use.
type CostModel interface {
	Channel() enums.SalesChannel
	ComputeCost(combo types.Combination, params Params) (types.CostBreakdown, error)
}

// ModelFor returns the cost model for a sales channel.
func ModelFor(channel enums.SalesChannel) CostModel {
	switch channel {
	case enums.SalesChannelOnline:
		return onlineModel{}
	case enums.SalesChannelCatering:
		return cateringModel{}
	default:
		return offlineModel{}
	}
}

// FixedComboModel prices an authored bundle. Non-online combos are priced at
// raw cost; online combos delegate to the online model so platform fees stay in.
func FixedComboModel(channel enums.SalesChannel) CostModel {
	if channel == enums.SalesChannelOnline {
		return onlineModel{}
	}
	return fixedComboModel{channel: channel}
}

type offlineModel struct{}

func (offlineModel) Channel() enums.SalesChannel { return enums.SalesChannelOffline }

func (offlineModel) ComputeCost(combo types.Combination, _ Params) (types.CostBreakdown, error) {
	return types.CostBreakdown{BaseCost: combo.CostSum()}, nil
}

type onlineModel struct{}

func (onlineModel) Channel() enums.SalesChannel { return enums.SalesChannelOnline }

func (onlineModel) ComputeCost(combo types.Combination, params Params) (types.CostBreakdown, error) {
	return types.CostBreakdown{
		BaseCost:      combo.CostSum(),
		PackagingFee:  params.Tariffs.PackagingFee,
		CommissionFee: params.Tariffs.CommissionRate.Mul(params.SalePrice),
	}, nil
}

type cateringModel struct{}

func (cateringModel) Channel() enums.SalesChannel { return enums.SalesChannelCatering }

func (cateringModel) ComputeCost(combo types.Combination, params Params) (types.CostBreakdown, error) {
	guests := params.GuestCount
	staff := StaffCost(guests, params.Tariffs)
	equipment := params.Tariffs.EquipmentPerGuest.Mul(decimal.NewFromInt(int64(guests)))
	transport := params.Tariffs.TransportFee

	// event overhead is spread over the guest count to price a single menu
	perGuest := transport.Add(staff).Add(equipment).Div(decimal.NewFromInt(int64(guests)))

	return types.CostBreakdown{
		BaseCost:      combo.CostSum(),
		StaffCost:     staff,
		EquipmentCost: equipment,
		TransportFee:  transport,
		PerGuestShare: perGuest,
	}, nil
}

type fixedComboModel struct {
	channel enums.SalesChannel
}

func (m fixedComboModel) Channel() enums.SalesChannel { return m.channel }

func (fixedComboModel) ComputeCost(combo types.Combination, _ Params) (types.CostBreakdown, error) {
	return types.CostBreakdown{BaseCost: combo.CostSum()}, nil
}

// CostTotal collapses a breakdown into the figure margins are computed from.
func CostTotal(b types.CostBreakdown) decimal.Decimal {
	return b.BaseCost.
		Add(b.PackagingFee).
		Add(b.CommissionFee).
		Add(b.PerGuestShare)
}

// StaffCost is the catering staffing cost: one block fee per started block of
// guests (a 26th guest starts a second block).
func StaffCost(guests int, tariffs Tariffs) decimal.Decimal {
	if guests <= 0 {
		return decimal.Zero
	}
	blockSize := tariffs.StaffBlockSize
	if blockSize <= 0 {
		blockSize = DefaultTariffs().StaffBlockSize
	}
	blocks := (guests + blockSize - 1) / blockSize
	return tariffs.StaffBlockCost.Mul(decimal.NewFromInt(int64(blocks)))
}

// VolumeDiscountRate returns the tiered catering discount for a guest count.
func VolumeDiscountRate(guests int) decimal.Decimal {
	switch {
	case guests >= 200:
		return decimal.New(15, -2)
	case guests >= 100:
		return decimal.New(10, -2)
	case guests >= 50:
		return decimal.New(5, -2)
	default:
		return decimal.Zero
	}
}
