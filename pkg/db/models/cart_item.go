package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adorzia/adorzia-backend/pkg/types"
)

// CartItem is one line in a cart: a product/variant pair with a price and
// display snapshot taken when the line was added. VariantKey is the canonical
// form of Variant and backs the one-line-per-(product,variant) uniqueness.
type CartItem struct {
	ID             uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID         uuid.UUID     `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:idx_cart_items_identity,priority:1"`
	ProductID      uuid.UUID     `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_items_identity,priority:2"`
	Variant        types.Variant `gorm:"column:variant;type:jsonb"`
	VariantKey     string        `gorm:"column:variant_key;not null;default:'';uniqueIndex:idx_cart_items_identity,priority:3"`
	Quantity       int           `gorm:"column:quantity;not null"`
	UnitPriceCents int           `gorm:"column:unit_price_cents;not null"`
	Title          string        `gorm:"column:title;not null"`
	ImageURL       *string       `gorm:"column:image_url"`
	CreatedAt      time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
