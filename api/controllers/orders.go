package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adorzia/adorzia-backend/api/responses"
	"github.com/adorzia/adorzia-backend/api/validators"
	ordersvc "github.com/adorzia/adorzia-backend/internal/orders"
	pkgerrors "github.com/adorzia/adorzia-backend/pkg/errors"
	"github.com/adorzia/adorzia-backend/pkg/logger"
)

const (
	maxOrderNumberLength = 32
	defaultOrderListSize = 20
	maxOrderListSize     = 100
)

// OrderDetail looks an order up by its public order number, scoped to the
// requesting shopper.
func OrderDetail(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopper, ok := requireShopper(w, r, logg)
		if !ok {
			return
		}

		number := validators.SanitizeString(chi.URLParam(r, "orderNumber"), maxOrderNumberLength)
		if number == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order number is required"))
			return
		}

		order, err := svc.GetByNumber(r.Context(), shopper, number)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// OrderList returns the signed-in customer's recent orders, newest first.
func OrderList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopper, ok := requireShopper(w, r, logg)
		if !ok {
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultOrderListSize, 1, maxOrderListSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.ListForCustomer(r.Context(), shopper, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"orders": listed})
	}
}
