package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adorzia/adorzia-backend/pkg/db/models"
	pkgerrors "github.com/adorzia/adorzia-backend/pkg/errors"
	"github.com/adorzia/adorzia-backend/pkg/types"
)

const maxLineQuantity = 99

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindAvailable(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes shopper cart operations.
type Service interface {
	Get(ctx context.Context, shopper types.Shopper) (*CartDTO, error)
	Add(ctx context.Context, shopper types.Shopper, input AddItemInput) (*CartDTO, error)
	Update(ctx context.Context, shopper types.Shopper, input UpdateItemInput) (*CartDTO, error)
	Remove(ctx context.Context, shopper types.Shopper, input RemoveItemInput) (*CartDTO, error)
	Clear(ctx context.Context, shopper types.Shopper) (*CartDTO, error)
}

type service struct {
	repo     CartRepository
	tx       txRunner
	products productLoader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, tx: tx, products: products}, nil
}

// Get returns the shopper's cart, enriched with live product data. A shopper
// without a persisted cart gets an empty cart, never a not-found.
func (s *service) Get(ctx context.Context, shopper types.Shopper) (*CartDTO, error) {
	if !shopper.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shopper identity is required")
	}
	cart, err := s.repo.FindByShopper(ctx, shopper)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return emptyCartDTO(), nil
	}
	return toCartDTO(cart, s.loadLiveProducts(ctx, cart)), nil
}

// Add merges the product/variant pair into the cart, incrementing quantity
// when the line already exists. The cart row is created lazily here on the
// first mutation.
func (s *service) Add(ctx context.Context, shopper types.Shopper, input AddItemInput) (*CartDTO, error) {
	if !shopper.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shopper identity is required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	qty := input.Quantity
	if qty <= 0 {
		qty = 1
	}
	if qty > maxLineQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity cannot exceed %d", maxLineQuantity))
	}

	product, err := s.products.FindAvailable(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	cart, err := s.repo.FindByShopper(ctx, shopper)
	if err != nil {
		return nil, err
	}

	variantKey := input.Variant.Canonical()
	if cart == nil {
		cart = &models.Cart{
			CustomerID: shopper.CustomerID,
			SessionID:  shopper.SessionID,
			Items: []models.CartItem{{
				ProductID:      product.ID,
				Variant:        input.Variant,
				VariantKey:     variantKey,
				Quantity:       qty,
				UnitPriceCents: product.PriceCents,
				Title:          product.Title,
				ImageURL:       product.ImageURL,
			}},
		}
		cart.SubtotalCents = subtotal(cart.Items)
		if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			return s.repo.WithTx(tx).Create(ctx, cart)
		}); err != nil {
			return nil, err
		}
		return s.reload(ctx, cart.ID)
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == product.ID && cart.Items[i].VariantKey == variantKey {
			cart.Items[i].Quantity += qty
			if cart.Items[i].Quantity > maxLineQuantity {
				cart.Items[i].Quantity = maxLineQuantity
			}
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID:      product.ID,
			Variant:        input.Variant,
			VariantKey:     variantKey,
			Quantity:       qty,
			UnitPriceCents: product.PriceCents,
			Title:          product.Title,
			ImageURL:       product.ImageURL,
		})
	}
	return s.persist(ctx, cart)
}

// Update replaces the quantity of an existing line. Zero or negative
// quantity removes the line.
func (s *service) Update(ctx context.Context, shopper types.Shopper, input UpdateItemInput) (*CartDTO, error) {
	if !shopper.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shopper identity is required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Quantity > maxLineQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity cannot exceed %d", maxLineQuantity))
	}

	cart, err := s.repo.FindByShopper(ctx, shopper)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	variantKey := input.Variant.Canonical()
	idx := findLine(cart.Items, input.ProductID, variantKey)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	if input.Quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = input.Quantity
	}
	return s.persist(ctx, cart)
}

// Remove drops the line if present; removing an absent line is a no-op.
func (s *service) Remove(ctx context.Context, shopper types.Shopper, input RemoveItemInput) (*CartDTO, error) {
	if !shopper.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shopper identity is required")
	}
	cart, err := s.repo.FindByShopper(ctx, shopper)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return emptyCartDTO(), nil
	}
	idx := findLine(cart.Items, input.ProductID, input.Variant.Canonical())
	if idx < 0 {
		return toCartDTO(cart, s.loadLiveProducts(ctx, cart)), nil
	}
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	return s.persist(ctx, cart)
}

// Clear empties the cart and zeroes its totals.
func (s *service) Clear(ctx context.Context, shopper types.Shopper) (*CartDTO, error) {
	if !shopper.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shopper identity is required")
	}
	cart, err := s.repo.FindByShopper(ctx, shopper)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return emptyCartDTO(), nil
	}
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Clear(ctx, cart.ID)
	}); err != nil {
		return nil, err
	}
	return s.reload(ctx, cart.ID)
}

func (s *service) persist(ctx context.Context, cart *models.Cart) (*CartDTO, error) {
	sub := subtotal(cart.Items)
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).ReplaceItems(ctx, cart.ID, cart.Items, sub, cart.DiscountCents)
	}); err != nil {
		return nil, err
	}
	return s.reload(ctx, cart.ID)
}

func (s *service) reload(ctx context.Context, cartID uuid.UUID) (*CartDTO, error) {
	cart, err := s.repo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return toCartDTO(cart, s.loadLiveProducts(ctx, cart)), nil
}

// loadLiveProducts fetches current product rows for display enrichment.
// Lookup failures leave the snapshot data in place rather than failing the
// read.
func (s *service) loadLiveProducts(ctx context.Context, cart *models.Cart) map[uuid.UUID]*models.Product {
	live := make(map[uuid.UUID]*models.Product, len(cart.Items))
	for _, item := range cart.Items {
		if _, seen := live[item.ProductID]; seen {
			continue
		}
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			continue
		}
		live[item.ProductID] = product
	}
	return live
}

func subtotal(items []models.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity * item.UnitPriceCents
	}
	return total
}

func findLine(items []models.CartItem, productID uuid.UUID, variantKey string) int {
	for i := range items {
		if items[i].ProductID == productID && items[i].VariantKey == variantKey {
			return i
		}
	}
	return -1
}
