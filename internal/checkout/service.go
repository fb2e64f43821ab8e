package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"

	"github.com/adorzia/adorzia-backend/internal/cart"
	"github.com/adorzia/adorzia-backend/pkg/config"
	"github.com/adorzia/adorzia-backend/pkg/db/models"
	"github.com/adorzia/adorzia-backend/pkg/enums"
	pkgerrors "github.com/adorzia/adorzia-backend/pkg/errors"
	"github.com/adorzia/adorzia-backend/pkg/metrics"
	"github.com/adorzia/adorzia-backend/pkg/types"
)

// Metadata keys embedded in the Stripe session and read back during
// order materialization.
const (
	MetadataOrderNumber     = "order_number"
	MetadataCartID          = "cart_id"
	MetadataCustomerID      = "customer_id"
	MetadataSessionID       = "session_id"
	MetadataShippingMethod  = "shipping_method"
	MetadataShippingCents   = "shipping_cents"
	MetadataShippingAddress = "shipping_address"
	MetadataBillingAddress  = "billing_address"
)

type productLoader interface {
	FindAvailable(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// CreateSessionInput captures the checkout handoff request.
type CreateSessionInput struct {
	CartID          uuid.UUID
	ShippingAddress types.Address
	BillingAddress  *types.Address
	ShippingMethod  string
	SuccessURL      string
	CancelURL       string
}

// SessionDTO is returned to the client for the provider redirect.
type SessionDTO struct {
	SessionID   string `json:"session_id"`
	URL         string `json:"url"`
	OrderNumber string `json:"order_number"`
}

// Service creates payment-provider checkout sessions from carts.
type Service interface {
	CreateSession(ctx context.Context, shopper types.Shopper, input CreateSessionInput) (*SessionDTO, error)
}

type service struct {
	carts    cart.CartRepository
	products productLoader
	sessions StripeSessionClient
	numbers  NumberReserver
	commerce config.CommerceConfig
	funnel   *metrics.CommerceMetrics
}

// NewService builds the checkout service. The funnel metrics are optional.
func NewService(
	carts cart.CartRepository,
	products productLoader,
	sessions StripeSessionClient,
	numbers NumberReserver,
	commerce config.CommerceConfig,
	funnel *metrics.CommerceMetrics,
) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("stripe session client required")
	}
	if numbers == nil {
		return nil, fmt.Errorf("order number reserver required")
	}
	return &service{
		carts:    carts,
		products: products,
		sessions: sessions,
		numbers:  numbers,
		commerce: commerce,
		funnel:   funnel,
	}, nil
}

// ShippingCost applies the tiered shipping rules. Unknown methods ship free
// rather than failing a paying customer.
func ShippingCost(cfg config.CommerceConfig, subtotalCents int, method string) int {
	if subtotalCents >= cfg.FreeShippingThresholdCents {
		return 0
	}
	switch method {
	case enums.ShippingMethodStandard.String():
		return cfg.StandardShippingCents
	case enums.ShippingMethodExpress.String():
		return cfg.ExpressShippingCents
	default:
		return 0
	}
}

func (s *service) CreateSession(ctx context.Context, shopper types.Shopper, input CreateSessionInput) (*SessionDTO, error) {
	if !shopper.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shopper identity is required")
	}
	if input.CartID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	if input.SuccessURL == "" || input.CancelURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "success and cancel urls are required")
	}
	if !input.ShippingAddress.Validate() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is incomplete")
	}

	record, err := s.carts.FindByID(ctx, input.CartID)
	if err != nil {
		return nil, err
	}
	if !ownedBy(record, shopper) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}
	if len(record.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart contains no items")
	}

	// Re-validate every line against the live catalog and price from it,
	// not from the cart snapshot.
	subtotal := 0
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(record.Items))
	for _, item := range record.Items {
		product, err := s.products.FindAvailable(ctx, item.ProductID)
		if err != nil {
			coded := pkgerrors.As(err)
			if coded != nil && coded.Code() == pkgerrors.CodeNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeProductUnavailable, "a cart item is no longer available")
			}
			return nil, err
		}
		name := product.Title
		if label := item.Variant.Label(); label != "" {
			name = fmt.Sprintf("%s (%s)", name, label)
		}
		subtotal += product.PriceCents * item.Quantity
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(int64(product.PriceCents)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(name),
				},
			},
		})
	}

	shippingCents := ShippingCost(s.commerce, subtotal, input.ShippingMethod)
	if shippingCents > 0 {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(int64(shippingCents)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Shipping"),
				},
			},
		})
	}

	orderNumber, err := s.numbers.Next(ctx)
	if err != nil {
		return nil, err
	}

	metadata, err := s.buildMetadata(record, shopper, input, orderNumber, shippingCents)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(input.SuccessURL),
		CancelURL:  stripe.String(input.CancelURL),
		Metadata:   metadata,
	}
	session, err := s.sessions.CreateSession(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating checkout session")
	}

	s.funnel.IncSessionCreated()
	return &SessionDTO{
		SessionID:   session.ID,
		URL:         session.URL,
		OrderNumber: orderNumber,
	}, nil
}

func (s *service) buildMetadata(record *models.Cart, shopper types.Shopper, input CreateSessionInput, orderNumber string, shippingCents int) (map[string]string, error) {
	metadata := map[string]string{
		MetadataOrderNumber:    orderNumber,
		MetadataCartID:         record.ID.String(),
		MetadataShippingMethod: input.ShippingMethod,
		MetadataShippingCents:  strconv.Itoa(shippingCents),
	}
	if shopper.CustomerID != nil && *shopper.CustomerID != uuid.Nil {
		metadata[MetadataCustomerID] = shopper.CustomerID.String()
	}
	if shopper.SessionID != nil && *shopper.SessionID != "" {
		metadata[MetadataSessionID] = *shopper.SessionID
	}

	shipping, err := json.Marshal(input.ShippingAddress)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding shipping address")
	}
	metadata[MetadataShippingAddress] = string(shipping)

	if input.BillingAddress != nil {
		billing, err := json.Marshal(input.BillingAddress)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding billing address")
		}
		metadata[MetadataBillingAddress] = string(billing)
	}
	return metadata, nil
}

func ownedBy(record *models.Cart, shopper types.Shopper) bool {
	if record == nil {
		return false
	}
	if shopper.CustomerID != nil && record.CustomerID != nil && *record.CustomerID == *shopper.CustomerID {
		return true
	}
	if shopper.SessionID != nil && record.SessionID != nil && *record.SessionID == *shopper.SessionID {
		return true
	}
	return false
}
