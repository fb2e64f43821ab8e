package cart

import (
	"github.com/google/uuid"

	"github.com/adorzia/adorzia-backend/pkg/db/models"
	"github.com/adorzia/adorzia-backend/pkg/enums"
	"github.com/adorzia/adorzia-backend/pkg/types"
)

// CartDTO is the API-facing cart shape.
type CartDTO struct {
	ID            uuid.UUID     `json:"id"`
	Items         []CartItemDTO `json:"items"`
	SubtotalCents int           `json:"subtotal_cents"`
	DiscountCents int           `json:"discount_cents"`
	TotalItems    int           `json:"total_items"`
}

// CartItemDTO is one cart line enriched with live product data for display.
type CartItemDTO struct {
	ProductID         uuid.UUID     `json:"product_id"`
	Title             string        `json:"title"`
	ImageURL          *string       `json:"image_url,omitempty"`
	Variant           types.Variant `json:"variant,omitempty"`
	Quantity          int           `json:"quantity"`
	UnitPriceCents    int           `json:"unit_price_cents"`
	LineTotalCents    int           `json:"line_total_cents"`
	CurrentPriceCents *int          `json:"current_price_cents,omitempty"`
	ProductStatus     *string       `json:"product_status,omitempty"`
	Available         bool          `json:"available"`
}

// AddItemInput captures a cart add request.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Variant   types.Variant
}

// UpdateItemInput captures a quantity replacement for an existing line.
type UpdateItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Variant   types.Variant
}

// RemoveItemInput identifies the line to drop.
type RemoveItemInput struct {
	ProductID uuid.UUID
	Variant   types.Variant
}

func emptyCartDTO() *CartDTO {
	return &CartDTO{Items: []CartItemDTO{}}
}

func toCartDTO(cart *models.Cart, live map[uuid.UUID]*models.Product) *CartDTO {
	if cart == nil {
		return emptyCartDTO()
	}
	dto := &CartDTO{
		ID:            cart.ID,
		Items:         make([]CartItemDTO, 0, len(cart.Items)),
		SubtotalCents: cart.SubtotalCents,
		DiscountCents: cart.DiscountCents,
	}
	for _, item := range cart.Items {
		line := CartItemDTO{
			ProductID:      item.ProductID,
			Title:          item.Title,
			ImageURL:       item.ImageURL,
			Variant:        item.Variant,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: item.Quantity * item.UnitPriceCents,
		}
		if product, ok := live[item.ProductID]; ok && product != nil {
			price := product.PriceCents
			status := product.Status.String()
			line.Title = product.Title
			line.ImageURL = product.ImageURL
			line.CurrentPriceCents = &price
			line.ProductStatus = &status
			line.Available = product.Status == enums.ProductStatusActive
		}
		dto.TotalItems += item.Quantity
		dto.Items = append(dto.Items, line)
	}
	return dto
}
