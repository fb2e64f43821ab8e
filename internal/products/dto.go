package product

import (
	"context"

	"github.com/google/uuid"

	"github.com/adorzia/adorzia-backend/pkg/db/models"
)

// Lister is the storefront read surface.
type Lister interface {
	ListActive(ctx context.Context, limit int) ([]models.Product, error)
}

// ListingDTO is the public catalog shape. Inventory internals and designer
// payout data stay off the wire.
type ListingDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	PriceCents  int       `json:"price_cents"`
	ImageURL    *string   `json:"image_url,omitempty"`
	InStock     bool      `json:"in_stock"`
}

// ToListingDTOs maps catalog rows to their public shape.
func ToListingDTOs(items []models.Product) []ListingDTO {
	out := make([]ListingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, ListingDTO{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			PriceCents:  item.PriceCents,
			ImageURL:    item.ImageURL,
			InStock:     item.InventoryCount > 0,
		})
	}
	return out
}
