package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/adorzia/adorzia-backend/internal/cart"
	"github.com/adorzia/adorzia-backend/pkg/config"
	"github.com/adorzia/adorzia-backend/pkg/db/models"
	"github.com/adorzia/adorzia-backend/pkg/enums"
	pkgerrors "github.com/adorzia/adorzia-backend/pkg/errors"
	"github.com/adorzia/adorzia-backend/pkg/types"
)

func testCommerceConfig() config.CommerceConfig {
	return config.CommerceConfig{
		MarkupMultiplier:           2.3,
		CommissionRate:             0.10,
		FreeShippingThresholdCents: 20000,
		StandardShippingCents:      1000,
		ExpressShippingCents:       2500,
		OrderNumberPrefix:          "ADZ",
	}
}

type stubCartRepo struct {
	carts map[uuid.UUID]*models.Cart
}

func (r *stubCartRepo) WithTx(tx *gorm.DB) cart.CartRepository { return r }

func (r *stubCartRepo) FindByShopper(ctx context.Context, shopper types.Shopper) (*models.Cart, error) {
	return nil, nil
}

func (r *stubCartRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	record, ok := r.carts[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeCartMissing, "cart not found")
	}
	return record, nil
}

func (r *stubCartRepo) Create(ctx context.Context, record *models.Cart) error { return nil }

func (r *stubCartRepo) ReplaceItems(ctx context.Context, cartID uuid.UUID, items []models.CartItem, subtotalCents, discountCents int) error {
	return nil
}

func (r *stubCartRepo) Clear(ctx context.Context, cartID uuid.UUID) error { return nil }

type stubProducts struct {
	products map[uuid.UUID]*models.Product
}

func (l *stubProducts) FindAvailable(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := l.products[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if product.Status != enums.ProductStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeProductUnavailable, "product is not available for purchase")
	}
	return product, nil
}

type stubSessions struct {
	lastParams *stripe.CheckoutSessionParams
	err        error
}

func (s *stubSessions) CreateSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastParams = params
	return &stripe.CheckoutSession{
		ID:  "cs_test_123",
		URL: "https://checkout.stripe.com/pay/cs_test_123",
	}, nil
}

func (s *stubSessions) GetSession(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
	return nil, fmt.Errorf("not implemented")
}

type stubNumbers struct {
	next int
}

func (n *stubNumbers) Next(ctx context.Context) (string, error) {
	n.next++
	return fmt.Sprintf("ADZ-%d", n.next), nil
}

func validAddress() types.Address {
	return types.Address{
		Name:       "Ada Shopper",
		Line1:      "10 Rue Cambon",
		City:       "Paris",
		State:      "IDF",
		PostalCode: "75001",
		Country:    "FR",
	}
}

type checkoutFixture struct {
	svc      Service
	carts    *stubCartRepo
	products *stubProducts
	sessions *stubSessions
	shopper  types.Shopper
	cartID   uuid.UUID
	product  *models.Product
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	product := &models.Product{
		ID:         uuid.New(),
		DesignerID: uuid.New(),
		Title:      "Pleated Midi Skirt",
		PriceCents: 7500,
		Status:     enums.ProductStatusActive,
	}
	sessionID := "sess-1"
	cartID := uuid.New()
	record := &models.Cart{
		ID:        cartID,
		SessionID: &sessionID,
		Items: []models.CartItem{{
			ID:             uuid.New(),
			CartID:         cartID,
			ProductID:      product.ID,
			Variant:        types.Variant{"size": "s"},
			VariantKey:     types.Variant{"size": "s"}.Canonical(),
			Quantity:       2,
			UnitPriceCents: 7500,
			Title:          product.Title,
		}},
		SubtotalCents: 15000,
	}

	carts := &stubCartRepo{carts: map[uuid.UUID]*models.Cart{cartID: record}}
	products := &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}}
	sessions := &stubSessions{}
	svc, err := NewService(carts, products, sessions, &stubNumbers{}, testCommerceConfig(), nil)
	require.NoError(t, err)

	return &checkoutFixture{
		svc:      svc,
		carts:    carts,
		products: products,
		sessions: sessions,
		shopper:  types.SessionShopper(sessionID),
		cartID:   cartID,
		product:  product,
	}
}

func validInput(cartID uuid.UUID) CreateSessionInput {
	return CreateSessionInput{
		CartID:          cartID,
		ShippingAddress: validAddress(),
		ShippingMethod:  "standard",
		SuccessURL:      "https://adorzia.com/checkout/success",
		CancelURL:       "https://adorzia.com/checkout/cancel",
	}
}

func TestShippingCostTiers(t *testing.T) {
	cfg := testCommerceConfig()

	assert.Equal(t, 1000, ShippingCost(cfg, 19999, "standard"))
	assert.Equal(t, 0, ShippingCost(cfg, 20000, "standard"))
	assert.Equal(t, 0, ShippingCost(cfg, 25000, "express"))
	assert.Equal(t, 2500, ShippingCost(cfg, 5000, "express"))
	assert.Equal(t, 0, ShippingCost(cfg, 5000, "carrier-pigeon"))
	assert.Equal(t, 0, ShippingCost(cfg, 5000, ""))
}

func TestCreateSessionHappyPath(t *testing.T) {
	f := newCheckoutFixture(t)

	dto, err := f.svc.CreateSession(context.Background(), f.shopper, validInput(f.cartID))
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", dto.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", dto.URL)
	assert.Equal(t, "ADZ-1", dto.OrderNumber)

	params := f.sessions.lastParams
	require.NotNil(t, params)
	// one product line plus the shipping line (15000 < 20000 threshold)
	require.Len(t, params.LineItems, 2)
	assert.Equal(t, int64(2), *params.LineItems[0].Quantity)
	assert.Equal(t, int64(7500), *params.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "Shipping", *params.LineItems[1].PriceData.ProductData.Name)
	assert.Equal(t, int64(1000), *params.LineItems[1].PriceData.UnitAmount)

	assert.Equal(t, "ADZ-1", params.Metadata[MetadataOrderNumber])
	assert.Equal(t, f.cartID.String(), params.Metadata[MetadataCartID])
	assert.Equal(t, "sess-1", params.Metadata[MetadataSessionID])
	assert.Equal(t, "1000", params.Metadata[MetadataShippingCents])
	assert.Contains(t, params.Metadata[MetadataShippingAddress], "75001")
}

func TestCreateSessionFreeShippingOmitsLine(t *testing.T) {
	f := newCheckoutFixture(t)
	f.carts.carts[f.cartID].Items[0].Quantity = 3 // 22500 over the threshold

	_, err := f.svc.CreateSession(context.Background(), f.shopper, validInput(f.cartID))
	require.NoError(t, err)
	require.Len(t, f.sessions.lastParams.LineItems, 1)
	assert.Equal(t, "0", f.sessions.lastParams.Metadata[MetadataShippingCents])
}

func TestCreateSessionPricesFromLiveProduct(t *testing.T) {
	f := newCheckoutFixture(t)
	f.product.PriceCents = 9900 // changed since the cart snapshot

	_, err := f.svc.CreateSession(context.Background(), f.shopper, validInput(f.cartID))
	require.NoError(t, err)
	assert.Equal(t, int64(9900), *f.sessions.lastParams.LineItems[0].PriceData.UnitAmount)
}

func TestCreateSessionEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.carts.carts[f.cartID].Items = nil

	_, err := f.svc.CreateSession(context.Background(), f.shopper, validInput(f.cartID))
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeEmptyCart, coded.Code())
}

func TestCreateSessionGoneProduct(t *testing.T) {
	f := newCheckoutFixture(t)
	delete(f.products.products, f.product.ID)

	_, err := f.svc.CreateSession(context.Background(), f.shopper, validInput(f.cartID))
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeProductUnavailable, coded.Code())
}

func TestCreateSessionInactiveProduct(t *testing.T) {
	f := newCheckoutFixture(t)
	f.product.Status = enums.ProductStatusDraft

	_, err := f.svc.CreateSession(context.Background(), f.shopper, validInput(f.cartID))
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeProductUnavailable, coded.Code())
}

func TestCreateSessionForeignCart(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.CreateSession(context.Background(), types.SessionShopper("someone-else"), validInput(f.cartID))
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestCreateSessionValidation(t *testing.T) {
	f := newCheckoutFixture(t)

	input := validInput(f.cartID)
	input.CartID = uuid.Nil
	_, err := f.svc.CreateSession(context.Background(), f.shopper, input)
	require.Error(t, err)

	input = validInput(f.cartID)
	input.SuccessURL = ""
	_, err = f.svc.CreateSession(context.Background(), f.shopper, input)
	require.Error(t, err)

	input = validInput(f.cartID)
	input.ShippingAddress = types.Address{}
	_, err = f.svc.CreateSession(context.Background(), f.shopper, input)
	require.Error(t, err)
}

func TestCreateSessionProviderFailure(t *testing.T) {
	f := newCheckoutFixture(t)
	f.sessions.err = fmt.Errorf("stripe is down")

	_, err := f.svc.CreateSession(context.Background(), f.shopper, validInput(f.cartID))
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeDependency, coded.Code())
}
