package wire

import (
	"shop-mkononi/internal/adaptor"
	"shop-mkononi/pkg/middleware"
	"shop-mkononi/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	tokens *token.Manager,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireAdmin(log))

		r.Get("/api/admin/seller-applications", adminHandler.ListSellerApplications)
		r.Post("/api/admin/seller-applications/{id}/approve", adminHandler.ApproveSeller)
		r.Post("/api/admin/seller-applications/{id}/reject", adminHandler.RejectSeller)

		r.Get("/api/admin/verifications", adminHandler.ListVerificationQueue)
		r.Patch("/api/admin/verifications/{id}", adminHandler.UpdateVerification)
	})
}
