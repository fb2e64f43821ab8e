package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the per-shopper mutable collection of intended purchases. Exactly
// one of CustomerID and SessionID is set (enforced by a CHECK constraint);
// anonymous shoppers are keyed by the opaque session id their client holds.
type Cart struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID    *uuid.UUID `gorm:"column:customer_id;type:uuid"`
	SessionID     *string    `gorm:"column:session_id"`
	SubtotalCents int        `gorm:"column:subtotal_cents;not null;default:0"`
	DiscountCents int        `gorm:"column:discount_cents;not null;default:0"`
	Items         []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
