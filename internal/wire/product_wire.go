package wire

import (
	"shop-mkononi/internal/adaptor"
	"shop-mkononi/pkg/middleware"
	"shop-mkononi/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProduct(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	tokens *token.Manager,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/products", productHandler.ListProducts)
	r.Get("/api/products/{id}", productHandler.GetProduct)

	// ==================== BUYER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))

		r.Post("/api/products/{id}/reviews", productHandler.AddReview)
	})

	// ==================== SELLER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireSeller(log))

		r.Post("/api/seller/products", productHandler.CreateProduct)
		r.Patch("/api/seller/products/{id}", productHandler.UpdateProduct)
		r.Delete("/api/seller/products/{id}", productHandler.DeleteProduct)
	})
}
