package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CostBreakdown itemizes how a channel cost model arrived at its total.
// Fields that do not apply to a channel stay zero.
type CostBreakdown struct {
	BaseCost      decimal.Decimal `json:"base_cost"`
	PackagingFee  decimal.Decimal `json:"packaging_fee"`
	CommissionFee decimal.Decimal `json:"commission_fee"`
	StaffCost     decimal.Decimal `json:"staff_cost"`
	EquipmentCost decimal.Decimal `json:"equipment_cost"`
	TransportFee  decimal.Decimal `json:"transport_fee"`
	PerGuestShare decimal.Decimal `json:"per_guest_share"`
}

// ChannelCostResult is the full financial outcome for one combination priced
// on one channel. Pure derived value: no independent lifecycle.
type ChannelCostResult struct {
	CostTotal          decimal.Decimal `json:"cost_total"`
	IndividualPriceSum decimal.Decimal `json:"individual_price_sum"`
	SalePrice          decimal.Decimal `json:"sale_price"`
	EffectiveSalePrice decimal.Decimal `json:"effective_sale_price"`
	Profit             decimal.Decimal `json:"profit"`
	MarginPercent      decimal.Decimal `json:"margin_percent"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	DiscountPercent    decimal.Decimal `json:"discount_percent"`
	BundleAdvantageous bool            `json:"bundle_advantageous"`
	Breakdown          CostBreakdown   `json:"breakdown"`
}

// Value serializes the result to JSON for JSONB storage.
func (r ChannelCostResult) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan decodes a JSON object into the result struct.
func (r *ChannelCostResult) Scan(value interface{}) error {
	if value == nil {
		*r = ChannelCostResult{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, r)
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
