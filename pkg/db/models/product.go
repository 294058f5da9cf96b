package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/davidreyero/comboforge-backend/pkg/enums"
	"github.com/davidreyero/comboforge-backend/pkg/types"
)

// Product is the persisted catalog item. The pricing core only ever sees the
// snapshot form (types.Product); this row is owned by catalog administration.
type Product struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Name          string             `gorm:"column:name;not null"`
	QuantityLabel *string            `gorm:"column:quantity_label"`
	CostPrice     decimal.Decimal    `gorm:"column:cost_price;type:numeric(12,2);not null"`
	OfflinePrice  decimal.Decimal    `gorm:"column:offline_price;type:numeric(12,2);not null"`
	OnlinePrice   decimal.Decimal    `gorm:"column:online_price;type:numeric(12,2);not null"`
	Category      enums.MenuCategory `gorm:"column:category;not null;index"`
	IsActive      bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// Snapshot converts the row into the immutable value the pricing core consumes.
func (p Product) Snapshot() types.Product {
	label := ""
	if p.QuantityLabel != nil {
		label = *p.QuantityLabel
	}
	return types.Product{
		ID:            p.ID,
		Name:          p.Name,
		QuantityLabel: label,
		CostPrice:     p.CostPrice,
		OfflinePrice:  p.OfflinePrice,
		OnlinePrice:   p.OnlinePrice,
		Category:      p.Category,
		Active:        p.IsActive,
	}
}
