package middleware

import (
	"context"

	"github.com/adorzia/adorzia-backend/pkg/types"
)

type contextKey string

const ctxShopper contextKey = "shopper"

// ShopperFromContext returns the shopper identity seeded by ShopperContext.
// The zero Shopper is returned when no identity was presented.
func ShopperFromContext(ctx context.Context) types.Shopper {
	if ctx == nil {
		return types.Shopper{}
	}
	if v, ok := ctx.Value(ctxShopper).(types.Shopper); ok {
		return v
	}
	return types.Shopper{}
}

// WithShopper injects the shopper identity into the context.
func WithShopper(ctx context.Context, shopper types.Shopper) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxShopper, shopper)
}
