package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/davidreyero/comboforge-backend/pkg/config"
	"github.com/davidreyero/comboforge-backend/pkg/enums"
	pkgerrors "github.com/davidreyero/comboforge-backend/pkg/errors"
)

// Tariffs are the channel cost constants. They come from deploy configuration;
// DefaultTariffs mirrors the shipped defaults for library callers and tests.
type Tariffs struct {
	PackagingFee      decimal.Decimal
	CommissionRate    decimal.Decimal
	TransportFee      decimal.Decimal
	StaffBlockSize    int
	StaffBlockCost    decimal.Decimal
	EquipmentPerGuest decimal.Decimal
}

// DefaultTariffs returns the stock tariff set: 3.00 packaging, 36.3%
// commission, 200 flat transport, 150 per 25-guest staff block, 5 equipment
// per guest.
func DefaultTariffs() Tariffs {
	return Tariffs{
		PackagingFee:      decimal.New(3, 0),
		CommissionRate:    decimal.New(363, -3),
		TransportFee:      decimal.New(200, 0),
		StaffBlockSize:    25,
		StaffBlockCost:    decimal.New(150, 0),
		EquipmentPerGuest: decimal.New(5, 0),
	}
}

// TariffsFromConfig builds the tariff set from deploy configuration.
func TariffsFromConfig(cfg config.PricingConfig) Tariffs {
	tariffs := Tariffs{
		PackagingFee:      cfg.PackagingFee,
		CommissionRate:    cfg.CommissionRate,
		TransportFee:      cfg.TransportFee,
		StaffBlockSize:    cfg.StaffBlockSize,
		StaffBlockCost:    cfg.StaffBlockCost,
		EquipmentPerGuest: cfg.EquipmentPerGuest,
	}
	if tariffs.StaffBlockSize <= 0 {
		tariffs.StaffBlockSize = DefaultTariffs().StaffBlockSize
	}
	return tariffs
}

// Params are the caller-supplied pricing inputs for one quote.
type Params struct {
	Channel    enums.SalesChannel
	SalePrice  decimal.Decimal
	GuestCount int
	Tariffs    Tariffs
}

// Validate enforces the boundary contract before any arithmetic runs.
func (p Params) Validate() error {
	if !p.Channel.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown sales channel").
			WithDetails(map[string]any{"channel": string(p.Channel)})
	}
	if p.SalePrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "sale price must not be negative").
			WithDetails(map[string]any{"sale_price": p.SalePrice.String()})
	}
	if p.Channel == enums.SalesChannelCatering && p.GuestCount < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "catering requires at least one guest").
			WithDetails(map[string]any{"guest_count": p.GuestCount})
	}
	return nil
}
