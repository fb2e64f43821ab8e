package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/adorzia/adorzia-backend/pkg/db/models"
)

// Repository defines the order persistence surface.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByPaymentReference(ctx context.Context, ref string) (*models.Order, error)
	FindByOrderNumber(ctx context.Context, number string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]models.Order, error)
}
