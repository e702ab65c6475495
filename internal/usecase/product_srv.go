package usecase

import (
	"context"
	"fmt"
	"time"

	"shop-mkononi/internal/data/entity"
	"shop-mkononi/internal/data/repository"
	"shop-mkononi/internal/dto/request"
	"shop-mkononi/internal/dto/response"
	"shop-mkononi/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter, page request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error)
	GetProduct(ctx context.Context, id uuid.UUID) (*response.ProductDetailResponse, error)
	CreateProduct(ctx context.Context, actor Actor, req *request.ProductCreateRequest) (*response.ProductResponse, error)
	UpdateProduct(ctx context.Context, actor Actor, productID uuid.UUID, req *request.ProductUpdateRequest) (*response.ProductResponse, error)
	DeleteProduct(ctx context.Context, actor Actor, productID uuid.UUID) error
	AddReview(ctx context.Context, userID, productID uuid.UUID, req *request.ReviewRequest) (*response.ReviewResponse, error)
}

type productService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProductService(repo *repository.Repository, log *zap.Logger) ProductService {
	return &productService{
		repo: repo,
		log:  log.With(zap.String("service", "product")),
	}
}

func (s *productService) ListProducts(ctx context.Context, filter repository.ProductFilter, page request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	products, err := s.repo.Product.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list products", zap.Error(err))
		return nil, fmt.Errorf("failed to list products")
	}

	total, err := s.repo.Product.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count products", zap.Error(err))
		return nil, fmt.Errorf("failed to list products")
	}

	results := make([]response.ProductResponse, 0, len(products))
	for _, product := range products {
		resp, err := assembleProduct(ctx, s.repo, product)
		if err != nil {
			s.log.Error("Failed to assemble product",
				zap.Error(err), zap.String("product_id", product.ID.String()))
			return nil, fmt.Errorf("failed to list products")
		}
		results = append(results, resp)
	}

	pageNum := page.Page
	if pageNum < 1 {
		pageNum = 1
	}

	return response.NewPaginatedResponse(results, pageNum, page.Limit(), total), nil
}

// GetProduct returns the product page view with shop context and reviews.
// Inactive products read as not found.
func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*response.ProductDetailResponse, error) {
	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find product", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("failed to find product")
	}
	if product == nil || !product.IsActive {
		return nil, fmt.Errorf("product not found")
	}

	base, err := assembleProduct(ctx, s.repo, product)
	if err != nil {
		s.log.Error("Failed to assemble product", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("failed to find product")
	}

	detail := &response.ProductDetailResponse{ProductResponse: base}

	shop, err := s.repo.Shop.FindByID(ctx, product.ShopID)
	if err != nil {
		s.log.Error("Failed to find shop", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("failed to find product")
	}
	if shop != nil {
		resp := response.ShopToResponse(shop, nil, nil)
		detail.Shop = &resp
	}

	reviews, err := s.repo.Review.FindByProductID(ctx, id)
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("failed to find product")
	}
	for _, review := range reviews {
		detail.Reviews = append(detail.Reviews, response.ReviewToResponse(review))
	}

	return detail, nil
}

func (s *productService) CreateProduct(ctx context.Context, actor Actor, req *request.ProductCreateRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, fmt.Errorf("validation failed: shopId: Invalid shop id")
	}

	shop, err := s.managedShop(ctx, actor, shopID)
	if err != nil {
		return nil, err
	}

	var categoryID *uuid.UUID
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("validation failed: categoryId: Invalid category id")
		}
		categoryID = &id
	}

	now := time.Now()
	product := &entity.Product{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ShopID:          shop.ID,
		CategoryID:      categoryID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Stock:           req.Stock,
		Condition:       entity.ProductCondition(req.Condition),
		DeliveryMethods: req.DeliveryMethods,
		IsActive:        true,
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.log.Error("Failed to create product", zap.Error(err), zap.String("shop_id", shop.ID.String()))
		return nil, fmt.Errorf("failed to create product")
	}

	if len(req.Images) > 0 {
		images := make([]*entity.ProductImage, 0, len(req.Images))
		for _, url := range req.Images {
			images = append(images, &entity.ProductImage{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				ProductID: product.ID,
				URL:       url,
			})
		}

		if err := s.repo.ProductImage.CreateBatch(ctx, images); err != nil {
			s.log.Error("Failed to save product images",
				zap.Error(err), zap.String("product_id", product.ID.String()))
			return nil, fmt.Errorf("failed to save product images")
		}
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("shop_id", shop.ID.String()))

	resp, err := assembleProduct(ctx, s.repo, product)
	if err != nil {
		s.log.Error("Failed to assemble product", zap.Error(err), zap.String("product_id", product.ID.String()))
		return nil, fmt.Errorf("failed to create product")
	}

	return &resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, actor Actor, productID uuid.UUID, req *request.ProductUpdateRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	product, err := s.managedProduct(ctx, actor, productID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("validation failed: categoryId: Invalid category id")
		}
		product.CategoryID = &id
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Condition != nil {
		product.Condition = entity.ProductCondition(*req.Condition)
	}
	if req.DeliveryMethods != nil {
		product.DeliveryMethods = req.DeliveryMethods
	}

	product.UpdatedAt = time.Now()
	if err := s.repo.Product.Update(ctx, product); err != nil {
		s.log.Error("Failed to update product", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to update product")
	}

	s.log.Info("Product updated", zap.String("product_id", productID.String()))

	resp, err := assembleProduct(ctx, s.repo, product)
	if err != nil {
		s.log.Error("Failed to assemble product", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to update product")
	}

	return &resp, nil
}

// DeleteProduct deactivates rather than removes, keeping reviews intact
func (s *productService) DeleteProduct(ctx context.Context, actor Actor, productID uuid.UUID) error {
	if _, err := s.managedProduct(ctx, actor, productID); err != nil {
		return err
	}

	if err := s.repo.Product.Deactivate(ctx, productID); err != nil {
		s.log.Error("Failed to deactivate product", zap.Error(err), zap.String("product_id", productID.String()))
		return fmt.Errorf("failed to delete product")
	}

	s.log.Info("Product deactivated", zap.String("product_id", productID.String()))
	return nil
}

func (s *productService) AddReview(ctx context.Context, userID, productID uuid.UUID, req *request.ReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to find product", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to find product")
	}
	if product == nil || !product.IsActive {
		return nil, fmt.Errorf("product not found")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to create review")
	}

	s.log.Info("Review created",
		zap.String("product_id", productID.String()),
		zap.String("user_id", userID.String()))

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *productService) managedShop(ctx context.Context, actor Actor, shopID uuid.UUID) (*entity.Shop, error) {
	shop, err := s.repo.Shop.FindByID(ctx, shopID)
	if err != nil {
		s.log.Error("Failed to find shop", zap.Error(err), zap.String("shop_id", shopID.String()))
		return nil, fmt.Errorf("failed to find shop")
	}
	if shop == nil {
		return nil, fmt.Errorf("shop not found")
	}
	if shop.SellerID != actor.ID && !actor.IsAdmin() {
		return nil, fmt.Errorf("not authorized to manage this shop")
	}

	return shop, nil
}

func (s *productService) managedProduct(ctx context.Context, actor Actor, productID uuid.UUID) (*entity.Product, error) {
	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to find product", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to find product")
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}

	if _, err := s.managedShop(ctx, actor, product.ShopID); err != nil {
		return nil, err
	}

	return product, nil
}
