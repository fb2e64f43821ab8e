package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adorzia/adorzia-backend/pkg/enums"
	"github.com/adorzia/adorzia-backend/pkg/types"
)

// Order is the durable record of a completed, paid transaction. Immutable
// once created. PaymentReference is unique and is the idempotency guard for
// checkout confirmation: a session verified twice resolves to the same row.
type Order struct {
	ID               uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber      string               `gorm:"column:order_number;not null;uniqueIndex:idx_orders_order_number"`
	PaymentReference string               `gorm:"column:payment_reference;not null;uniqueIndex:idx_orders_payment_reference"`
	CustomerID       *uuid.UUID           `gorm:"column:customer_id;type:uuid"`
	SessionID        *string              `gorm:"column:session_id"`
	Email            *string              `gorm:"column:email"`
	SubtotalCents    int                  `gorm:"column:subtotal_cents;not null"`
	ShippingCents    int                  `gorm:"column:shipping_cents;not null;default:0"`
	DiscountCents    int                  `gorm:"column:discount_cents;not null;default:0"`
	TotalCents       int                  `gorm:"column:total_cents;not null"`
	ShippingAddress  *types.Address       `gorm:"column:shipping_address;type:jsonb"`
	BillingAddress   *types.Address       `gorm:"column:billing_address;type:jsonb"`
	ShippingMethod   enums.ShippingMethod `gorm:"column:shipping_method;type:text;not null;default:'standard'"`
	Status           enums.OrderStatus    `gorm:"column:status;type:text;not null;default:'paid'"`
	Items            []OrderLineItem      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
