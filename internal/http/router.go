package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/storefront"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RequestTimeout:     30 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1MB
	}
}

// NewRouter exposes the storefront operations as JSON endpoints
func NewRouter(app *storefront.App, cfg RouterConfig, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRouterConfig().RequestTimeout
	}
	if cfg.MaxRequestBodySize <= 0 {
		cfg.MaxRequestBodySize = DefaultRouterConfig().MaxRequestBodySize
	}

	products := NewProductHandler(app.Catalog, log)
	carts := NewCartHandler(app.Cart, app.Catalog, cfg.RequestTimeout, log)
	checkouts := NewCheckoutHandler(app.Checkout, app.Quotes, cfg.RequestTimeout, log)
	reviewsHandler := NewReviewHandler(app.Reviews, log)
	prefs := NewPreferencesHandler(app.Theme, log)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestIDHeader)
	r.Use(RequestLogger(log.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestSize(cfg.MaxRequestBodySize))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		products.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Get("/{id}", products.Get)
			r.Get("/{id}/price", products.Price)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.GetCart)
			r.Delete("/", carts.ClearCart)
			r.Post("/items", carts.AddItem)
			r.Put("/items/{key}", carts.UpdateQuantity)
			r.Delete("/items/{key}", carts.RemoveItem)
		})
		r.Post("/checkout", checkouts.Submit)
		r.Get("/checkout/status", checkouts.Status)
		r.Post("/delivery/quote", checkouts.Quote)
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", reviewsHandler.List)
			r.Post("/", reviewsHandler.Submit)
		})
		r.Route("/preferences/theme", func(r chi.Router) {
			r.Get("/", prefs.GetTheme)
			r.Post("/toggle", prefs.ToggleTheme)
		})
	})

	return r
}
