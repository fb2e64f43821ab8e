package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/adorzia/adorzia-backend/pkg/db/models"
	"github.com/adorzia/adorzia-backend/pkg/types"
)

// VerifyResultDTO is the checkout verification response.
type VerifyResultDTO struct {
	Success bool      `json:"success"`
	Order   *OrderDTO `json:"order,omitempty"`
}

// OrderDTO is the shopper-facing order shape. Commission internals stay off
// the wire.
type OrderDTO struct {
	ID              uuid.UUID      `json:"id"`
	OrderNumber     string         `json:"order_number"`
	Status          string         `json:"status"`
	Email           *string        `json:"email,omitempty"`
	SubtotalCents   int            `json:"subtotal_cents"`
	ShippingCents   int            `json:"shipping_cents"`
	DiscountCents   int            `json:"discount_cents"`
	TotalCents      int            `json:"total_cents"`
	ShippingMethod  string         `json:"shipping_method"`
	ShippingAddress *types.Address `json:"shipping_address,omitempty"`
	Items           []OrderLineDTO `json:"items"`
	CreatedAt       time.Time      `json:"created_at"`
}

// OrderLineDTO is one purchased line.
type OrderLineDTO struct {
	ProductID      *uuid.UUID    `json:"product_id,omitempty"`
	Title          string        `json:"title"`
	Variant        types.Variant `json:"variant,omitempty"`
	Quantity       int           `json:"quantity"`
	UnitPriceCents int           `json:"unit_price_cents"`
	TotalCents     int           `json:"total_cents"`
}

func toOrderDTO(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Status:          order.Status.String(),
		Email:           order.Email,
		SubtotalCents:   order.SubtotalCents,
		ShippingCents:   order.ShippingCents,
		DiscountCents:   order.DiscountCents,
		TotalCents:      order.TotalCents,
		ShippingMethod:  order.ShippingMethod.String(),
		ShippingAddress: order.ShippingAddress,
		Items:           make([]OrderLineDTO, 0, len(order.Items)),
		CreatedAt:       order.CreatedAt,
	}
	for _, item := range order.Items {
		dto.Items = append(dto.Items, OrderLineDTO{
			ProductID:      item.ProductID,
			Title:          item.Title,
			Variant:        item.Variant,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			TotalCents:     item.TotalCents,
		})
	}
	return dto
}
