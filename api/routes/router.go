package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/simplyaboveaverage/multicart-backend/api/controllers"
	"github.com/simplyaboveaverage/multicart-backend/api/middleware"
	"github.com/simplyaboveaverage/multicart-backend/internal/cart"
	"github.com/simplyaboveaverage/multicart-backend/internal/carturl"
	"github.com/simplyaboveaverage/multicart-backend/internal/catalog"
	"github.com/simplyaboveaverage/multicart-backend/internal/checkouturl"
	"github.com/simplyaboveaverage/multicart-backend/internal/settings"
	"github.com/simplyaboveaverage/multicart-backend/internal/vendorformats"
	"github.com/simplyaboveaverage/multicart-backend/internal/wishlist"
	"github.com/simplyaboveaverage/multicart-backend/pkg/config"
	"github.com/simplyaboveaverage/multicart-backend/pkg/logger"
	"github.com/simplyaboveaverage/multicart-backend/pkg/metrics"
)

// Deps carries everything the router hands to its handlers.
type Deps struct {
	Cfg             *config.Config
	Logg            *logger.Logger
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsHandler  http.Handler
	ReadinessChecks controllers.ReadinessChecks
	Catalog         catalog.Service
	Cart            *cart.Store
	Wishlist        *wishlist.Store
	WishlistConfirm *wishlist.Confirmer
	VendorFormats   *vendorformats.Store
	Settings        *settings.Store
	CartLinks       *carturl.Generator
	CheckoutLinks   *checkouturl.Generator
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logg),
		middleware.RequestID(deps.Logg),
		middleware.Logging(deps.Logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Cfg))
		r.Get("/ready", controllers.HealthReady(deps.Cfg, deps.Logg, deps.ReadinessChecks))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Cfg.JWT, deps.Logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(deps.Catalog, deps.Logg))
			r.Get("/vendors", controllers.ProductsVendors(deps.Catalog, deps.Logg))
			r.Get("/{id}", controllers.ProductsGet(deps.Catalog, deps.Logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Cart, deps.Logg))
			r.Delete("/", controllers.CartClear(deps.Cart, deps.Logg))
			r.Get("/summary", controllers.CartSummary(deps.Cart, deps.Logg))
			r.Post("/items", controllers.CartAddItem(deps.Cart, deps.Logg))
			r.Patch("/items/{productId}", controllers.CartUpdateQuantity(deps.Cart, deps.Logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, deps.Logg))
			r.Get("/links", controllers.CartLinks(deps.Cart, deps.CartLinks, deps.Logg))
			r.Get("/links/{vendor}/formats", controllers.CartLinkFormats(deps.Cart, deps.CartLinks, deps.Logg))
			r.Post("/checkout-links", controllers.CheckoutLink(deps.Cart, deps.CheckoutLinks, deps.Logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistGet(deps.Wishlist, deps.Logg))
			r.Post("/items", controllers.WishlistAddItem(deps.Wishlist, deps.Logg))
			r.Delete("/items/{productId}", controllers.WishlistRemoveItem(deps.Wishlist, deps.Logg))
			r.Post("/clear", controllers.WishlistClearRequest(deps.WishlistConfirm, deps.Logg))
			r.Post("/clear/confirm", controllers.WishlistClearConfirm(deps.WishlistConfirm, deps.Logg))
		})

		r.Route("/vendor-formats", func(r chi.Router) {
			r.Get("/", controllers.VendorFormatsList(deps.VendorFormats, deps.Logg))
			r.Put("/{vendor}", controllers.VendorFormatsSave(deps.VendorFormats, deps.Logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.SettingsGet(deps.Settings, deps.Logg))
			r.Put("/", controllers.SettingsUpdate(deps.Settings, deps.Logg))
		})
	})

	return r
}
