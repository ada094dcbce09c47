package router

import (
	"net/http"
	"strings"

	"jaggery-store/internal/handler"
	"jaggery-store/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	catalogHandler *handler.CatalogHandler,
	checkoutHandler *handler.CheckoutHandler,
	healthHandler *handler.HealthHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		healthHandler.Root(w, r)
	})

	mux.HandleFunc("/test", healthHandler.Test)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/products", catalogHandler.List)
	mux.HandleFunc("/seed", catalogHandler.Seed)
	mux.HandleFunc("/checkout", checkoutHandler.Checkout)

	// Order lookup only; orders are created exclusively through checkout.
	mux.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimPrefix(r.URL.Path, "/orders/") == "" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		checkoutHandler.GetOrder(w, r)
	})

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
