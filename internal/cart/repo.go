package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adorzia/adorzia-backend/pkg/db/models"
	pkgerrors "github.com/adorzia/adorzia-backend/pkg/errors"
	"github.com/adorzia/adorzia-backend/pkg/types"
)

// Repository persists carts and their line items.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	return &Repository{db: tx}
}

// FindByShopper loads the shopper's cart with its items, ordered by
// insertion time. Returns nil (no error) when the shopper has no cart yet.
func (r *Repository) FindByShopper(ctx context.Context, shopper types.Shopper) (*models.Cart, error) {
	if !shopper.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shopper identity is required")
	}
	query := r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.created_at ASC")
	})
	if shopper.CustomerID != nil && *shopper.CustomerID != uuid.Nil {
		query = query.Where("customer_id = ?", *shopper.CustomerID)
	} else {
		query = query.Where("session_id = ?", *shopper.SessionID)
	}

	var cart models.Cart
	if err := query.First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	return &cart, nil
}

// FindByID loads a cart by primary key with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.created_at ASC")
	}).First(&cart, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeCartMissing, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	return &cart, nil
}

// Create persists a new cart and its items.
func (r *Repository) Create(ctx context.Context, cart *models.Cart) error {
	if cart.ID == uuid.Nil {
		cart.ID = uuid.New()
	}
	for i := range cart.Items {
		if cart.Items[i].ID == uuid.Nil {
			cart.Items[i].ID = uuid.New()
		}
		cart.Items[i].CartID = cart.ID
	}
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart")
	}
	return nil
}

// ReplaceItems swaps the cart's line items for the provided set and stores
// the recomputed totals on the cart row.
func (r *Repository) ReplaceItems(ctx context.Context, cartID uuid.UUID, items []models.CartItem, subtotalCents, discountCents int) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart items")
	}
	if len(items) > 0 {
		for i := range items {
			if items[i].ID == uuid.Nil {
				items[i].ID = uuid.New()
			}
			items[i].CartID = cartID
		}
		if err := tx.Create(&items).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing cart items")
		}
	}
	err := tx.Model(&models.Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]any{
			"subtotal_cents": subtotalCents,
			"discount_cents": discountCents,
		}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart totals")
	}
	return nil
}

// Clear removes all items and zeroes the totals, keeping the cart row.
func (r *Repository) Clear(ctx context.Context, cartID uuid.UUID) error {
	return r.ReplaceItems(ctx, cartID, nil, 0, 0)
}
