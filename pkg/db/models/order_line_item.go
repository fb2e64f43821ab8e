package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adorzia/adorzia-backend/pkg/types"
)

// OrderLineItem snapshots one cart line at materialization time, including
// the commission split computed then and never recomputed.
type OrderLineItem struct {
	ID                      uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID                 uuid.UUID     `gorm:"column:order_id;type:uuid;not null"`
	ProductID               *uuid.UUID    `gorm:"column:product_id;type:uuid"`
	DesignerID              *uuid.UUID    `gorm:"column:designer_id;type:uuid"`
	Title                   string        `gorm:"column:title;not null"`
	Variant                 types.Variant `gorm:"column:variant;type:jsonb"`
	Quantity                int           `gorm:"column:quantity;not null"`
	UnitPriceCents          int           `gorm:"column:unit_price_cents;not null"`
	TotalCents              int           `gorm:"column:total_cents;not null"`
	ProductionCostCents     int           `gorm:"column:production_cost_cents;not null"`
	DesignerCommissionCents int           `gorm:"column:designer_commission_cents;not null"`
	PlatformFeeCents        int           `gorm:"column:platform_fee_cents;not null"`
	CreatedAt               time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
