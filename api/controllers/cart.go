package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/adorzia/adorzia-backend/api/middleware"
	"github.com/adorzia/adorzia-backend/api/responses"
	"github.com/adorzia/adorzia-backend/api/validators"
	cartsvc "github.com/adorzia/adorzia-backend/internal/cart"
	pkgerrors "github.com/adorzia/adorzia-backend/pkg/errors"
	"github.com/adorzia/adorzia-backend/pkg/logger"
	"github.com/adorzia/adorzia-backend/pkg/types"
)

// CartFetch returns the shopper's cart, or an empty cart when none exists.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopper, ok := requireShopper(w, r, logg)
		if !ok {
			return
		}

		record, err := svc.Get(r.Context(), shopper)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

type addCartItemRequest struct {
	ProductID uuid.UUID     `json:"product_id" validate:"required"`
	Quantity  int           `json:"quantity" validate:"max=99"`
	Variant   types.Variant `json:"variant,omitempty"`
}

// CartAddItem adds a product line to the cart, merging equal variants. A
// missing or non-positive quantity defaults to one.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopper, ok := requireShopper(w, r, logg)
		if !ok {
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Add(r.Context(), shopper, cartsvc.AddItemInput{
			ProductID: payload.ProductID,
			Quantity:  payload.Quantity,
			Variant:   payload.Variant,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

type updateCartItemRequest struct {
	ProductID uuid.UUID     `json:"product_id" validate:"required"`
	Quantity  int           `json:"quantity" validate:"max=99"`
	Variant   types.Variant `json:"variant,omitempty"`
}

// CartUpdateItem replaces the quantity on an existing line. A quantity of
// zero or below removes the line.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopper, ok := requireShopper(w, r, logg)
		if !ok {
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Update(r.Context(), shopper, cartsvc.UpdateItemInput{
			ProductID: payload.ProductID,
			Quantity:  payload.Quantity,
			Variant:   payload.Variant,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

type removeCartItemRequest struct {
	ProductID uuid.UUID     `json:"product_id" validate:"required"`
	Variant   types.Variant `json:"variant,omitempty"`
}

// CartRemoveItem drops a line from the cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopper, ok := requireShopper(w, r, logg)
		if !ok {
			return
		}

		var payload removeCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Remove(r.Context(), shopper, cartsvc.RemoveItemInput{
			ProductID: payload.ProductID,
			Variant:   payload.Variant,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// CartClear empties the shopper's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopper, ok := requireShopper(w, r, logg)
		if !ok {
			return
		}

		record, err := svc.Clear(r.Context(), shopper)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

func requireShopper(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (types.Shopper, bool) {
	shopper := middleware.ShopperFromContext(r.Context())
	if !shopper.Valid() {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "a bearer token or session id is required"))
		return types.Shopper{}, false
	}
	return shopper, true
}
