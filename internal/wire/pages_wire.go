package wire

import (
	"net/http"

	"shop-mkononi/internal/data/repository"
	"shop-mkononi/pkg/middleware"
	"shop-mkononi/pkg/token"
	"shop-mkononi/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wirePages mounts the navigable page routes behind the access gate. The
// pages themselves are rendered by the web client; these endpoints exist so
// the gate's redirect decisions run server-side on every navigation.
func wirePages(
	r chi.Router,
	repo *repository.Repository,
	tokens *token.Manager,
	log *zap.Logger,
) {
	gate := middleware.NewAccessGate(tokens, repo.Shop, log)

	r.Group(func(r chi.Router) {
		r.Use(gate.Handler)

		r.Get("/", pageOK)
		r.Get("/auth/signin", pageOK)
		r.Get("/auth/signup", pageOK)
		r.Get("/auth/verify", pageOK)
		r.Get("/auth/verify-phone", pageOK)
		r.Get("/shops/{slug}/view", pageOK)
		r.Get("/cart", pageOK)
		r.Get("/checkout", pageOK)
		r.Get("/seller/dashboard", pageOK)
		r.Get("/seller/products", pageOK)
		r.Get("/admin/dashboard", pageOK)
		r.Get("/admin/verifications", pageOK)
	})
}

func pageOK(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "ok", nil)
}
