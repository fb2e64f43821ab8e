package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adorzia/adorzia-backend/pkg/enums"
)

// Product represents a canonical designer listing.
type Product struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DesignerID     uuid.UUID           `gorm:"column:designer_id;type:uuid;not null"`
	Title          string              `gorm:"column:title;not null"`
	Description    *string             `gorm:"column:description"`
	PriceCents     int                 `gorm:"column:price_cents;not null"`
	ImageURL       *string             `gorm:"column:image_url"`
	Status         enums.ProductStatus `gorm:"column:status;type:text;not null;default:'draft'"`
	InventoryCount int                 `gorm:"column:inventory_count;not null;default:0"`
	SoldCount      int                 `gorm:"column:sold_count;not null;default:0"`
	Designer       *Designer           `gorm:"foreignKey:DesignerID"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
