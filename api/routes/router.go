package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adorzia/adorzia-backend/api/controllers"
	"github.com/adorzia/adorzia-backend/api/middleware"
	cartsvc "github.com/adorzia/adorzia-backend/internal/cart"
	checkoutsvc "github.com/adorzia/adorzia-backend/internal/checkout"
	ordersvc "github.com/adorzia/adorzia-backend/internal/orders"
	product "github.com/adorzia/adorzia-backend/internal/products"
	"github.com/adorzia/adorzia-backend/pkg/config"
	"github.com/adorzia/adorzia-backend/pkg/db"
	"github.com/adorzia/adorzia-backend/pkg/logger"
	"github.com/adorzia/adorzia-backend/pkg/metrics"
	pkgredis "github.com/adorzia/adorzia-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	httpMetrics *metrics.HTTPMetrics,
	catalog product.Lister,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	ordersService ordersvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	// A nil *Client must stay a nil Pinger interface, otherwise the
	// readiness handler would ping a dead dependency.
	var redisP pkgredis.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Get("/products", controllers.ProductList(catalog, logg))
	})

	checkoutPolicy := middleware.NewRateLimitPolicy(
		"checkout",
		cfg.RateLimit.CheckoutWindow,
		cfg.RateLimit.CheckoutIPLimit,
		cfg.RateLimit.CheckoutShopperLimit,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ShopperContext(cfg.JWT, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RequireShopper(logg))
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Route("/items", func(r chi.Router) {
				r.Post("/", controllers.CartAddItem(cartService, logg))
				r.Patch("/", controllers.CartUpdateItem(cartService, logg))
				r.Delete("/", controllers.CartRemoveItem(cartService, logg))
			})
		})

		r.Route("/checkout", func(r chi.Router) {
			if redisClient != nil {
				r.Use(middleware.RateLimit(checkoutPolicy, redisClient, logg))
				r.Use(middleware.Idempotency(redisClient, logg))
			}
			r.With(middleware.RequireShopper(logg)).Post("/session", controllers.CheckoutSession(checkoutService, logg))
			r.Post("/verify", controllers.CheckoutVerify(ordersService, logg))
		})

		// Order numbers are sequential; lookups are scoped to the
		// requesting shopper.
		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequireShopper(logg))
			r.Get("/", controllers.OrderList(ordersService, logg))
			r.Get("/{orderNumber}", controllers.OrderDetail(ordersService, logg))
		})

		r.Get("/ranks/revenue-share", controllers.RevenueShare(logg))
	})

	return r
}
