package product

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adorzia/adorzia-backend/pkg/db/models"
	"github.com/adorzia/adorzia-backend/pkg/enums"
	pkgerrors "github.com/adorzia/adorzia-backend/pkg/errors"
)

// Loader is the read surface other services consume.
type Loader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindAvailable(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Store adds the write surface used during order materialization.
type Store interface {
	Loader
	WithTx(tx *gorm.DB) Store
	DecrementInventory(ctx context.Context, id uuid.UUID, qty int) error
}

// Repository wires together product persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) Store {
	return &Repository{db: tx}
}

// FindByID loads the product with its designer association.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Designer").
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return &product, nil
}

// FindAvailable loads the product and rejects listings that cannot be sold.
func (r *Repository) FindAvailable(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.Status != enums.ProductStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeProductUnavailable, "product is not available for purchase")
	}
	return product, nil
}

// ListActive returns purchasable listings, newest first.
func (r *Repository) ListActive(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var out []models.Product
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.ProductStatusActive).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return out, nil
}

// DecrementInventory reduces stock by qty, flooring at zero, and bumps the
// sold counter by the full quantity. Oversell is tolerated: a paid order is
// never rejected for stock that drifted between checkout and confirmation.
func (r *Repository) DecrementInventory(ctx context.Context, id uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"inventory_count": gorm.Expr("CASE WHEN inventory_count > ? THEN inventory_count - ? ELSE 0 END", qty, qty),
			"sold_count":      gorm.Expr("sold_count + ?", qty),
		})
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, "decrementing inventory")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
