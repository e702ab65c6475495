package wire

import (
	"shop-mkononi/internal/adaptor"
	"shop-mkononi/pkg/middleware"
	"shop-mkononi/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	tokens *token.Manager,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/signup", authHandler.Signup)
	r.Post("/api/auth/signin", authHandler.Signin)
	r.Post("/api/auth/provider", authHandler.ProviderSignIn)
	r.Post("/api/auth/signout", authHandler.Signout)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))

		r.Get("/api/profile", authHandler.GetProfile)
		r.Patch("/api/profile", authHandler.UpdateProfile)
	})
}
