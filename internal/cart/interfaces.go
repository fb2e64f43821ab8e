package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adorzia/adorzia-backend/pkg/db/models"
	"github.com/adorzia/adorzia-backend/pkg/types"
)

// CartRepository defines the persistence surface required by the cart service.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	FindByShopper(ctx context.Context, shopper types.Shopper) (*models.Cart, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	ReplaceItems(ctx context.Context, cartID uuid.UUID, items []models.CartItem, subtotalCents, discountCents int) error
	Clear(ctx context.Context, cartID uuid.UUID) error
}
