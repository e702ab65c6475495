package adaptor

import (
	"encoding/json"
	"net/http"
	"net/url"

	"shop-mkononi/internal/data/repository"
	"shop-mkononi/internal/dto/request"
	"shop-mkononi/internal/usecase"
	"shop-mkononi/pkg/token"
	"shop-mkononi/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShopHandler struct {
	service usecase.ShopService
	log     *zap.Logger
}

func NewShopHandler(service usecase.ShopService, log *zap.Logger) *ShopHandler {
	return &ShopHandler{
		service: service,
		log:     log.With(zap.String("handler", "shop")),
	}
}

// ListShops handles GET /api/shops
func (h *ShopHandler) ListShops(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.ShopFilter{
		Search:   optionalString(query, "search"),
		Location: optionalString(query, "location"),
		MinPrice: utils.ParseFloat(query.Get("minPrice")),
		MaxPrice: utils.ParseFloat(query.Get("maxPrice")),
	}

	if raw := query.Get("category"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.CategoryID = &id
		} else {
			h.log.Warn("Invalid category filter", zap.String("category", raw))
		}
	}

	page := request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPageSize),
	}

	shops, err := h.service.ListShops(r.Context(), filter, page)
	if err != nil {
		handleServiceError(w, h.log, err, "list shops")
		return
	}

	utils.ResponseSuccess(w, "Shops retrieved successfully", shops)
}

// GetShopBySlug handles GET /api/shops/{slug}
func (h *ShopHandler) GetShopBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		utils.ResponseBadRequest(w, "Shop slug is required", nil)
		return
	}

	shop, err := h.service.GetShopBySlug(r.Context(), slug)
	if err != nil {
		handleServiceError(w, h.log, err, "get shop")
		return
	}

	utils.ResponseSuccess(w, "Shop retrieved successfully", shop)
}

// GetMyShop handles GET /api/seller/shop
func (h *ShopHandler) GetMyShop(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := token.UserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	shop, err := h.service.GetMyShop(r.Context(), sellerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get my shop")
		return
	}

	utils.ResponseSuccess(w, "Shop retrieved successfully", shop)
}

// CreateShop handles POST /api/seller/shops
func (h *ShopHandler) CreateShop(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := token.UserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ShopCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	shop, err := h.service.CreateShop(r.Context(), sellerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create shop")
		return
	}

	utils.ResponseCreated(w, "Shop created successfully", shop)
}

// UpdateShop handles PATCH /api/seller/shops/{id}
func (h *ShopHandler) UpdateShop(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	shopID, ok := h.pathShopID(w, r)
	if !ok {
		return
	}

	var req request.ShopUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	shop, err := h.service.UpdateShop(r.Context(), actor, shopID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update shop")
		return
	}

	utils.ResponseSuccess(w, "Shop updated successfully", shop)
}

// DeleteShop handles DELETE /api/seller/shops/{id}
func (h *ShopHandler) DeleteShop(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	shopID, ok := h.pathShopID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteShop(r.Context(), actor, shopID); err != nil {
		handleServiceError(w, h.log, err, "delete shop")
		return
	}

	utils.ResponseSuccess(w, "Shop deleted successfully", nil)
}

// ListCategories handles GET /api/categories
func (h *ShopHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list categories")
		return
	}

	utils.ResponseSuccess(w, "Categories retrieved successfully", categories)
}

func (h *ShopHandler) pathShopID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		utils.ResponseBadRequest(w, "Shop ID is required", nil)
		return uuid.Nil, false
	}

	shopID, err := uuid.Parse(raw)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid shop ID", nil)
		return uuid.Nil, false
	}

	return shopID, true
}

func optionalString(query url.Values, key string) *string {
	if value := query.Get(key); value != "" {
		return &value
	}
	return nil
}
