package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/adorzia/adorzia-backend/api/responses"
	"github.com/adorzia/adorzia-backend/api/validators"
	checkoutsvc "github.com/adorzia/adorzia-backend/internal/checkout"
	ordersvc "github.com/adorzia/adorzia-backend/internal/orders"
	"github.com/adorzia/adorzia-backend/pkg/logger"
	"github.com/adorzia/adorzia-backend/pkg/types"
)

type createSessionRequest struct {
	CartID          uuid.UUID      `json:"cart_id" validate:"required"`
	ShippingAddress types.Address  `json:"shipping_address" validate:"required"`
	BillingAddress  *types.Address `json:"billing_address,omitempty"`
	ShippingMethod  string         `json:"shipping_method" validate:"required"`
	SuccessURL      string         `json:"success_url" validate:"required,url"`
	CancelURL       string         `json:"cancel_url" validate:"required,url"`
}

// CheckoutSession reserves an order number and opens a payment-provider
// session for the shopper's cart.
func CheckoutSession(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopper, ok := requireShopper(w, r, logg)
		if !ok {
			return
		}

		var payload createSessionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.CreateSession(r.Context(), shopper, checkoutsvc.CreateSessionInput{
			CartID:          payload.CartID,
			ShippingAddress: payload.ShippingAddress,
			BillingAddress:  payload.BillingAddress,
			ShippingMethod:  payload.ShippingMethod,
			SuccessURL:      payload.SuccessURL,
			CancelURL:       payload.CancelURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

type verifySessionRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// CheckoutVerify confirms payment with the provider and materializes the
// order. Safe to call repeatedly for the same session.
func CheckoutVerify(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload verifySessionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.VerifySession(r.Context(), payload.SessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
