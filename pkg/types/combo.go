package types

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/davidreyero/comboforge-backend/pkg/enums"
)

// Product is the immutable catalog snapshot of one sellable item. All three
// price fields share one currency unit; CostPrice is never negative.
type Product struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	QuantityLabel string             `json:"quantity_label,omitempty"`
	CostPrice     decimal.Decimal    `json:"cost_price"`
	OfflinePrice  decimal.Decimal    `json:"offline_price"`
	OnlinePrice   decimal.Decimal    `json:"online_price"`
	Category      enums.MenuCategory `json:"category"`
	Active        bool               `json:"active"`
}

// RetailPrice picks the list price that applies on the given channel.
func (p Product) RetailPrice(channel enums.SalesChannel) decimal.Decimal {
	if channel == enums.SalesChannelOnline {
		return p.OnlinePrice
	}
	return p.OfflinePrice
}

// ComboItem pins one product into one category slot of a combination.
type ComboItem struct {
	Category enums.MenuCategory `json:"category"`
	Product  Product            `json:"product"`
}

// Combination is one candidate bundle: exactly one product per slot, in slot
// order. Generated combinations always have length >= 2.
type Combination []ComboItem

// CostSum adds up the raw cost prices of every item.
func (c Combination) CostSum() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c {
		sum = sum.Add(item.Product.CostPrice)
	}
	return sum
}

// RetailSum adds up the channel-appropriate list prices of every item.
func (c Combination) RetailSum(channel enums.SalesChannel) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c {
		sum = sum.Add(item.Product.RetailPrice(channel))
	}
	return sum
}

// Categories returns the slot categories in order.
func (c Combination) Categories() []string {
	out := make([]string, 0, len(c))
	for _, item := range c {
		out = append(out, item.Category.String())
	}
	return out
}

// Value serializes the combination to JSON for JSONB storage.
func (c Combination) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

// Scan decodes JSONB into the combination.
func (c *Combination) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded Combination
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*c = decoded
	return nil
}
