package httpapi

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.ListCatalog)
		r.Get("/catalog/{itemId}", h.GetCatalogItem)

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Post("/catalog", h.PublishItem)
			r.Post("/catalog/{itemId}/availability", h.ToggleAvailability)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Post("/items", h.AddCartItem)
			r.Delete("/items/{index}", h.RemoveCartItem)
			r.Put("/items/{index}/quantity", h.SetCartQuantity)
		})

		r.Post("/discount/roll", h.RollDiscount)

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", h.BeginCheckout)
			r.Post("/cancel", h.CancelCheckout)
			r.Post("/commit", h.CommitCheckout)
		})

		r.Get("/lens/scan", h.LensScan)
		r.Post("/assistant/chat", h.AssistantChat)
	})

	return r
}

// requireAdmin gates the admin routes behind the shared key in X-Admin-Key.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(h.adminKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
