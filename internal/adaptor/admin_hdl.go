package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"shop-mkononi/internal/dto/request"
	"shop-mkononi/internal/usecase"
	"shop-mkononi/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// ListSellerApplications handles GET /api/admin/seller-applications
func (h *AdminHandler) ListSellerApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := h.service.ListSellerApplications(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list seller applications")
		return
	}

	utils.ResponseSuccess(w, "Seller applications retrieved successfully", applications)
}

// ApproveSeller handles POST /api/admin/seller-applications/{id}/approve
func (h *AdminHandler) ApproveSeller(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeDecision(w, r)
	if !ok {
		return
	}

	result, err := h.service.ApproveSeller(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "approve seller")
		return
	}

	utils.ResponseSuccess(w, "Seller application approved", result)
}

// RejectSeller handles POST /api/admin/seller-applications/{id}/reject
func (h *AdminHandler) RejectSeller(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeDecision(w, r)
	if !ok {
		return
	}

	result, err := h.service.RejectSeller(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "reject seller")
		return
	}

	utils.ResponseSuccess(w, "Seller application rejected", result)
}

// ListVerificationQueue handles GET /api/admin/verifications
func (h *AdminHandler) ListVerificationQueue(w http.ResponseWriter, r *http.Request) {
	queue, err := h.service.ListVerificationQueue(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list verification queue")
		return
	}

	utils.ResponseSuccess(w, "Verification queue retrieved successfully", queue)
}

// UpdateVerification handles PATCH /api/admin/verifications/{id}
func (h *AdminHandler) UpdateVerification(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	var req request.VerificationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.UpdateVerification(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update verification")
		return
	}

	utils.ResponseSuccess(w, "Verification updated successfully", result)
}

func (h *AdminHandler) pathUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return uuid.Nil, false
	}

	return userID, true
}

// decodeDecision tolerates an empty body; notes are optional
func (h *AdminHandler) decodeDecision(w http.ResponseWriter, r *http.Request) (*request.DecisionRequest, bool) {
	var req request.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return nil, false
	}

	return &req, true
}
