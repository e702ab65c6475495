package wire

import (
	"shop-mkononi/internal/adaptor"
	"shop-mkononi/pkg/middleware"
	"shop-mkononi/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireShop(
	r chi.Router,
	shopHandler *adaptor.ShopHandler,
	tokens *token.Manager,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/shops", shopHandler.ListShops)
	r.Get("/api/shops/{slug}", shopHandler.GetShopBySlug)
	r.Get("/api/categories", shopHandler.ListCategories)

	// ==================== SELLER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireSeller(log))

		r.Get("/api/seller/shop", shopHandler.GetMyShop)
		r.Post("/api/seller/shops", shopHandler.CreateShop)
		r.Patch("/api/seller/shops/{id}", shopHandler.UpdateShop)
		r.Delete("/api/seller/shops/{id}", shopHandler.DeleteShop)
	})
}
