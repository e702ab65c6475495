package wire

import (
	"shop-mkononi/internal/adaptor"
	"shop-mkononi/pkg/middleware"
	"shop-mkononi/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVerification(
	r chi.Router,
	verificationHandler *adaptor.VerificationHandler,
	tokens *token.Manager,
	log *zap.Logger,
) {
	// All verification flows require a session
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))

		r.Post("/api/verification", verificationHandler.SubmitDocuments)
		r.Post("/api/seller/apply", verificationHandler.ApplyAsSeller)
		r.Post("/api/verification/phone/send", verificationHandler.SendPhoneCode)
		r.Post("/api/verification/phone/verify", verificationHandler.VerifyPhoneCode)
	})
}
