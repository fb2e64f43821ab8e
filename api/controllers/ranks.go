package controllers

import (
	"net/http"
	"strings"

	"github.com/adorzia/adorzia-backend/api/responses"
	"github.com/adorzia/adorzia-backend/internal/ranks"
	"github.com/adorzia/adorzia-backend/pkg/enums"
	pkgerrors "github.com/adorzia/adorzia-backend/pkg/errors"
	"github.com/adorzia/adorzia-backend/pkg/logger"
)

// RevenueShare returns the revenue-share schedule. When both the standard
// and foundation query parameters are present it resolves the single row for
// that rank combination; otherwise it returns the full table.
func RevenueShare(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standardRaw := strings.TrimSpace(r.URL.Query().Get("standard"))
		foundationRaw := strings.TrimSpace(r.URL.Query().Get("foundation"))

		if standardRaw == "" && foundationRaw == "" {
			responses.WriteSuccess(w, map[string]any{"table": ranks.Table()})
			return
		}

		if standardRaw == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "standard rank is required"))
			return
		}

		standard, err := enums.ParseStandardRank(standardRaw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid standard rank"))
			return
		}

		foundation := enums.FoundationRankNone
		if foundationRaw != "" {
			foundation, err = enums.ParseFoundationRank(foundationRaw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid foundation rank"))
				return
			}
		}

		share, err := ranks.EffectiveShare(standard, foundation)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ranks.ShareRow{
			StandardRank:    standard.String(),
			FoundationRank:  foundation.String(),
			BaseShare:       ranks.BaseShare(standard),
			FoundationBonus: ranks.FoundationBonus(foundation),
			EffectiveShare:  share,
		})
	}
}
