package controllers

import (
	"net/http"

	"github.com/adorzia/adorzia-backend/api/responses"
	"github.com/adorzia/adorzia-backend/api/validators"
	product "github.com/adorzia/adorzia-backend/internal/products"
	"github.com/adorzia/adorzia-backend/pkg/logger"
)

const (
	defaultCatalogSize = 50
	maxCatalogSize     = 100
)

// ProductList serves the public catalog of purchasable listings.
func ProductList(catalog product.Lister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", defaultCatalogSize, 1, maxCatalogSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := catalog.ListActive(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"products": product.ToListingDTOs(listed)})
	}
}
