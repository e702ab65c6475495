package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"shop-mkononi/internal/dto/request"
	"shop-mkononi/internal/dto/response"
	"shop-mkononi/internal/usecase"
	"shop-mkononi/pkg/token"
	"shop-mkononi/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	tokens  *token.Manager
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, tokens *token.Manager, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		tokens:  tokens,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "signup")
		return
	}

	utils.ResponseCreated(w, "Account created successfully", user)
}

// Signin handles POST /api/auth/signin
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req request.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	auth, err := h.service.Signin(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "signin")
		return
	}

	h.setSessionCookie(w, auth)
	utils.ResponseSuccess(w, "Signed in successfully", auth)
}

// ProviderSignIn handles POST /api/auth/provider. The callback secret guards
// this endpoint; it is not a public sign-in surface.
func (h *AuthHandler) ProviderSignIn(w http.ResponseWriter, r *http.Request) {
	var req request.ProviderSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	auth, err := h.service.ProviderSignIn(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "provider sign-in")
		return
	}

	h.setSessionCookie(w, auth)
	utils.ResponseSuccess(w, "Signed in successfully", auth)
}

// Signout handles POST /api/auth/signout
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.tokens.CookieName(),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.ResponseSuccess(w, "Signed out successfully", nil)
}

// GetProfile handles GET /api/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := token.UserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", user)
}

// UpdateProfile handles PATCH /api/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := token.UserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	auth, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update profile")
		return
	}

	h.setSessionCookie(w, auth)
	utils.ResponseSuccess(w, "Profile updated successfully", auth)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, auth *response.AuthResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.tokens.CookieName(),
		Value:    auth.Token,
		Path:     "/",
		Expires:  auth.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
