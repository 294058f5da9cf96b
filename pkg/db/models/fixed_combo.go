package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/davidreyero/comboforge-backend/pkg/enums"
	"github.com/davidreyero/comboforge-backend/pkg/types"
)

// FixedCombo is a curated, named bundle saved from the authoring flow. The
// combination and its cost result are stored as JSON snapshots so a reload
// reproduces the exact numbers quoted at save time.
type FixedCombo struct {
	ID         uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	Name       string                  `gorm:"column:name;not null"`
	Channel    enums.SalesChannel      `gorm:"column:channel;not null"`
	SalePrice  decimal.Decimal         `gorm:"column:sale_price;type:numeric(12,2);not null"`
	GuestCount int                     `gorm:"column:guest_count;not null;default:0"`
	Categories pq.StringArray          `gorm:"column:categories;type:text[]"`
	Items      types.Combination       `gorm:"column:items;type:jsonb;not null"`
	CostResult types.ChannelCostResult `gorm:"column:cost_result;type:jsonb;not null"`
	CreatedAt  time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
