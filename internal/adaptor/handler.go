package adaptor

import (
	"net/http"
	"strings"

	"shop-mkononi/internal/data/entity"
	"shop-mkononi/internal/usecase"
	"shop-mkononi/pkg/token"
	"shop-mkononi/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Verification *VerificationHandler
	Admin        *AdminHandler
	Shop         *ShopHandler
	Product      *ProductHandler
}

func NewHandler(service *usecase.Service, tokens *token.Manager, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, tokens, log),
		Verification: NewVerificationHandler(service.Verification, log),
		Admin:        NewAdminHandler(service.Admin, log),
		Shop:         NewShopHandler(service.Shop, log),
		Product:      NewProductHandler(service.Product, log),
	}
}

// requestActor builds the caller identity from the session claims
func requestActor(r *http.Request) (usecase.Actor, bool) {
	claims, ok := token.ClaimsFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return usecase.Actor{}, false
	}

	return usecase.Actor{ID: id, Role: entity.UserRole(claims.Role)}, true
}

// handleServiceError maps service error messages onto HTTP status codes
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "validation failed"):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid credentials"),
		strings.Contains(errMsg, "incorrect"):
		log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "not authorized"):
		log.Warn(operation+" failed - forbidden",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "not found"),
		strings.Contains(errMsg, "no pending"):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already"):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "expired"),
		strings.Contains(errMsg, "too many"),
		strings.Contains(errMsg, "no verification code"):
		log.Warn(operation+" failed - bad request",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
