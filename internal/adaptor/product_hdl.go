package adaptor

import (
	"encoding/json"
	"net/http"

	"shop-mkononi/internal/data/repository"
	"shop-mkononi/internal/dto/request"
	"shop-mkononi/internal/usecase"
	"shop-mkononi/pkg/token"
	"shop-mkononi/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service usecase.ProductService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.With(zap.String("handler", "product")),
	}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.ProductFilter{
		Search:   optionalString(query, "search"),
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
	if raw := query.Get("shop"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.ShopID = &id
		} else {
			h.log.Warn("Invalid shop filter", zap.String("shop", raw))
		}
	}

	page := request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPageSize),
	}

	products, err := h.service.ListProducts(r.Context(), filter, page)
	if err != nil {
		handleServiceError(w, h.log, err, "list products")
		return
	}

	utils.ResponseSuccess(w, "Products retrieved successfully", products)
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.pathProductID(w, r)
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		handleServiceError(w, h.log, err, "get product")
		return
	}

	utils.ResponseSuccess(w, "Product retrieved successfully", product)
}

// CreateProduct handles POST /api/seller/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ProductCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create product")
		return
	}

	utils.ResponseCreated(w, "Product created successfully", product)
}

// UpdateProduct handles PATCH /api/seller/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	productID, ok := h.pathProductID(w, r)
	if !ok {
		return
	}

	var req request.ProductUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), actor, productID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update product")
		return
	}

	utils.ResponseSuccess(w, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /api/seller/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	productID, ok := h.pathProductID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), actor, productID); err != nil {
		handleServiceError(w, h.log, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, "Product deleted successfully", nil)
}

// AddReview handles POST /api/products/{id}/reviews
func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := token.UserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	productID, ok := h.pathProductID(w, r)
	if !ok {
		return
	}

	var req request.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.AddReview(r.Context(), userID, productID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add review")
		return
	}

	utils.ResponseCreated(w, "Review added successfully", review)
}

func (h *ProductHandler) pathProductID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		utils.ResponseBadRequest(w, "Product ID is required", nil)
		return uuid.Nil, false
	}

	productID, err := uuid.Parse(raw)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return uuid.Nil, false
	}

	return productID, true
}
