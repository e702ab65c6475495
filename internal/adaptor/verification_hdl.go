package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"shop-mkononi/internal/dto/request"
	"shop-mkononi/internal/usecase"
	"shop-mkononi/pkg/token"
	"shop-mkononi/pkg/utils"

	"go.uber.org/zap"
)

const maxUploadSize = 32 << 20

type VerificationHandler struct {
	service usecase.VerificationService
	log     *zap.Logger
}

func NewVerificationHandler(service usecase.VerificationService, log *zap.Logger) *VerificationHandler {
	return &VerificationHandler{
		service: service,
		log:     log.With(zap.String("handler", "verification")),
	}
}

// SubmitDocuments handles POST /api/verification (multipart form)
func (h *VerificationHandler) SubmitDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := token.UserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	submission, cleanup, err := h.parseSubmission(r)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}
	defer cleanup()

	if err := h.service.SubmitDocuments(r.Context(), userID, submission); err != nil {
		handleServiceError(w, h.log, err, "submit verification")
		return
	}

	utils.ResponseCreated(w, "Verification submitted successfully", nil)
}

// ApplyAsSeller handles POST /api/seller/apply (multipart form)
func (h *VerificationHandler) ApplyAsSeller(w http.ResponseWriter, r *http.Request) {
	userID, ok := token.UserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	submission, cleanup, err := h.parseSubmission(r)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}
	defer cleanup()

	application := &request.SellerApplication{
		VerificationSubmission: *submission,
		Phone:                  r.FormValue("phone"),
	}

	if err := h.service.ApplyAsSeller(r.Context(), userID, application); err != nil {
		handleServiceError(w, h.log, err, "seller application")
		return
	}

	utils.ResponseCreated(w, "Seller application submitted successfully", nil)
}

// SendPhoneCode handles POST /api/verification/phone/send
func (h *VerificationHandler) SendPhoneCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := token.UserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SendVerificationCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SendPhoneCode(r.Context(), userID, &req); err != nil {
		handleServiceError(w, h.log, err, "send phone code")
		return
	}

	utils.ResponseSuccess(w, "Verification code sent", nil)
}

// VerifyPhoneCode handles POST /api/verification/phone/verify
func (h *VerificationHandler) VerifyPhoneCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := token.UserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.VerifyPhoneCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.VerifyPhoneCode(r.Context(), userID, &req); err != nil {
		handleServiceError(w, h.log, err, "verify phone code")
		return
	}

	utils.ResponseSuccess(w, "Phone verified successfully", nil)
}

// parseSubmission reads the identity documents out of the multipart form.
// The returned cleanup closes every opened file.
func (h *VerificationHandler) parseSubmission(r *http.Request) (*request.VerificationSubmission, func(), error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, nil, errors.New("Invalid multipart form")
	}

	submission := &request.VerificationSubmission{
		IDNumber: r.FormValue("idNumber"),
	}

	var closers []interface{ Close() error }
	cleanup := func() {
		for _, c := range closers {
			c.Close()
		}
	}

	if file, _, err := r.FormFile("idFrontImage"); err == nil {
		submission.IDFrontImage = file
		closers = append(closers, file)
	}
	if file, _, err := r.FormFile("idBackImage"); err == nil {
		submission.IDBackImage = file
		closers = append(closers, file)
	}
	if file, _, err := r.FormFile("selfieImage"); err == nil {
		submission.SelfieImage = file
		closers = append(closers, file)
	}

	return submission, cleanup, nil
}
