package orders

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/adorzia/adorzia-backend/internal/cart"
	"github.com/adorzia/adorzia-backend/internal/checkout"
	product "github.com/adorzia/adorzia-backend/internal/products"
	"github.com/adorzia/adorzia-backend/pkg/config"
	"github.com/adorzia/adorzia-backend/pkg/db"
	"github.com/adorzia/adorzia-backend/pkg/db/models"
	"github.com/adorzia/adorzia-backend/pkg/enums"
	pkgerrors "github.com/adorzia/adorzia-backend/pkg/errors"
	"github.com/adorzia/adorzia-backend/pkg/logger"
	"github.com/adorzia/adorzia-backend/pkg/metrics"
	"github.com/adorzia/adorzia-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type sessionVerifier interface {
	GetSession(ctx context.Context, id string) (*stripe.CheckoutSession, error)
}

type orderNotifier interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
}

// Service materializes paid checkout sessions into durable orders.
type Service interface {
	VerifySession(ctx context.Context, sessionID string) (*VerifyResultDTO, error)
	GetByNumber(ctx context.Context, shopper types.Shopper, number string) (*OrderDTO, error)
	ListForCustomer(ctx context.Context, shopper types.Shopper, limit int) ([]OrderDTO, error)
}

type service struct {
	tx       txRunner
	repo     Repository
	carts    cart.CartRepository
	products product.Store
	sessions sessionVerifier
	notifier orderNotifier
	commerce config.CommerceConfig
	funnel   *metrics.CommerceMetrics
	logg     *logger.Logger
}

// NewService builds the order materializer. Notifier and funnel metrics are
// optional.
func NewService(
	tx txRunner,
	repo Repository,
	carts cart.CartRepository,
	products product.Store,
	sessions sessionVerifier,
	notifier orderNotifier,
	commerce config.CommerceConfig,
	funnel *metrics.CommerceMetrics,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product store required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session verifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:       tx,
		repo:     repo,
		carts:    carts,
		products: products,
		sessions: sessions,
		notifier: notifier,
		commerce: commerce,
		funnel:   funnel,
		logg:     logg,
	}, nil
}

// VerifySession confirms the provider reports the session paid, then
// materializes the order exactly once. The unique payment_reference index is
// the idempotency guard: verifying the same session twice resolves to the
// same order.
func (s *service) VerifySession(ctx context.Context, sessionID string) (*VerifyResultDTO, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "retrieving checkout session")
	}
	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return nil, pkgerrors.New(pkgerrors.CodePaymentIncomplete, "payment has not completed")
	}

	paymentRef := session.ID
	if session.PaymentIntent != nil && session.PaymentIntent.ID != "" {
		paymentRef = session.PaymentIntent.ID
	}

	existing, err := s.repo.FindByPaymentReference(ctx, paymentRef)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &VerifyResultDTO{Success: true, Order: toOrderDTO(existing)}, nil
	}

	order, err := s.materialize(ctx, session, paymentRef)
	if err != nil {
		return nil, err
	}

	s.funnel.IncOrderPlaced(int64(order.TotalCents))
	if s.notifier != nil {
		// Best effort: a failed receipt never fails a paid order.
		if sendErr := s.notifier.SendOrderConfirmation(ctx, order); sendErr != nil {
			s.logg.Warn(ctx, "order confirmation email failed: "+sendErr.Error())
		}
	}
	return &VerifyResultDTO{Success: true, Order: toOrderDTO(order)}, nil
}

// GetByNumber loads a single order for display. Order numbers are sequential
// and guessable, so the caller's identity must match the order's; a foreign
// order reads as absent rather than forbidden.
func (s *service) GetByNumber(ctx context.Context, shopper types.Shopper, number string) (*OrderDTO, error) {
	if !shopper.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "a bearer token or session id is required")
	}
	order, err := s.repo.FindByOrderNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if !ownedByShopper(order, shopper) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return toOrderDTO(order), nil
}

// ListForCustomer returns the shopper's most recent orders. Anonymous
// sessions have no durable order history to page through.
func (s *service) ListForCustomer(ctx context.Context, shopper types.Shopper, limit int) ([]OrderDTO, error) {
	if shopper.CustomerID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "a customer account is required to list orders")
	}
	records, err := s.repo.ListByCustomer(ctx, shopper.CustomerID.String(), limit)
	if err != nil {
		return nil, err
	}
	out := make([]OrderDTO, 0, len(records))
	for i := range records {
		out = append(out, *toOrderDTO(&records[i]))
	}
	return out, nil
}

func ownedByShopper(order *models.Order, shopper types.Shopper) bool {
	if order == nil {
		return false
	}
	if shopper.CustomerID != nil && order.CustomerID != nil && *order.CustomerID == *shopper.CustomerID {
		return true
	}
	if shopper.SessionID != nil && order.SessionID != nil && *order.SessionID == *shopper.SessionID {
		return true
	}
	return false
}

func (s *service) materialize(ctx context.Context, session *stripe.CheckoutSession, paymentRef string) (*models.Order, error) {
	meta := session.Metadata
	orderNumber := meta[checkout.MetadataOrderNumber]
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session metadata is missing the order number")
	}
	cartID, err := uuid.Parse(meta[checkout.MetadataCartID])
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeCartMissing, "session metadata is missing the cart")
	}

	record, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(record.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeCartMissing, "cart has already been consumed")
	}

	order := s.buildOrder(session, record, paymentRef, orderNumber)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		carts := s.carts.WithTx(tx)
		products := s.products.WithTx(tx)

		// tie each line to its designer for payout reporting; a product
		// deleted since purchase leaves the snapshot line designer-less
		for i, item := range record.Items {
			liveProduct, lookupErr := products.FindByID(ctx, item.ProductID)
			if lookupErr != nil {
				continue
			}
			designerID := liveProduct.DesignerID
			order.Items[i].DesignerID = &designerID
		}
		if err := repo.Create(ctx, order); err != nil {
			return err
		}
		for _, item := range record.Items {
			if err := products.DecrementInventory(ctx, item.ProductID, item.Quantity); err != nil {
				coded := pkgerrors.As(err)
				if coded != nil && coded.Code() == pkgerrors.CodeNotFound {
					continue
				}
				return err
			}
		}
		return carts.Clear(ctx, record.ID)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_orders_payment_reference") {
			// lost a concurrent race; the winner's order is the order
			existing, findErr := s.repo.FindByPaymentReference(ctx, paymentRef)
			if findErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}
	return order, nil
}

func (s *service) buildOrder(session *stripe.CheckoutSession, record *models.Cart, paymentRef, orderNumber string) *models.Order {
	meta := session.Metadata

	order := &models.Order{
		OrderNumber:      orderNumber,
		PaymentReference: paymentRef,
		Status:           enums.OrderStatusPaid,
		DiscountCents:    record.DiscountCents,
	}

	if raw := meta[checkout.MetadataCustomerID]; raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			order.CustomerID = &id
		}
	}
	if raw := meta[checkout.MetadataSessionID]; raw != "" {
		sessionCopy := raw
		order.SessionID = &sessionCopy
	}
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		emailCopy := session.CustomerDetails.Email
		order.Email = &emailCopy
	}
	if raw := meta[checkout.MetadataShippingCents]; raw != "" {
		if cents, err := strconv.Atoi(raw); err == nil && cents >= 0 {
			order.ShippingCents = cents
		}
	}
	if method, err := enums.ParseShippingMethod(meta[checkout.MetadataShippingMethod]); err == nil {
		order.ShippingMethod = method
	} else {
		order.ShippingMethod = enums.ShippingMethodStandard
	}
	order.ShippingAddress = decodeAddress(meta[checkout.MetadataShippingAddress])
	order.BillingAddress = decodeAddress(meta[checkout.MetadataBillingAddress])

	subtotal := 0
	order.Items = make([]models.OrderLineItem, 0, len(record.Items))
	for _, item := range record.Items {
		lineTotal := item.Quantity * item.UnitPriceCents
		split := SplitLineTotal(s.commerce, lineTotal)
		productID := item.ProductID
		subtotal += lineTotal
		order.Items = append(order.Items, models.OrderLineItem{
			ProductID:               &productID,
			Title:                   item.Title,
			Variant:                 item.Variant,
			Quantity:                item.Quantity,
			UnitPriceCents:          item.UnitPriceCents,
			TotalCents:              lineTotal,
			ProductionCostCents:     split.ProductionCostCents,
			DesignerCommissionCents: split.DesignerCommissionCents,
			PlatformFeeCents:        split.PlatformFeeCents,
		})
	}
	order.SubtotalCents = subtotal
	total := subtotal + order.ShippingCents - order.DiscountCents
	if total < 0 {
		total = 0
	}
	order.TotalCents = total
	return order
}

func decodeAddress(raw string) *types.Address {
	if raw == "" {
		return nil
	}
	var addr types.Address
	if err := addr.Scan(raw); err != nil {
		return nil
	}
	return &addr
}
