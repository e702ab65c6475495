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

type ShopService interface {
	ListShops(ctx context.Context, filter repository.ShopFilter, page request.PaginatedRequest) (*response.PaginatedResponse[response.ShopResponse], error)
	GetShopBySlug(ctx context.Context, slug string) (*response.ShopDetailResponse, error)
	GetMyShop(ctx context.Context, sellerID uuid.UUID) (*response.ShopDetailResponse, error)
	CreateShop(ctx context.Context, sellerID uuid.UUID, req *request.ShopCreateRequest) (*response.ShopResponse, error)
	UpdateShop(ctx context.Context, actor Actor, shopID uuid.UUID, req *request.ShopUpdateRequest) (*response.ShopResponse, error)
	DeleteShop(ctx context.Context, actor Actor, shopID uuid.UUID) error
	ListCategories(ctx context.Context) ([]response.CategoryResponse, error)
}

type shopService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShopService(repo *repository.Repository, log *zap.Logger) ShopService {
	return &shopService{
		repo: repo,
		log:  log.With(zap.String("service", "shop")),
	}
}

func (s *shopService) ListShops(ctx context.Context, filter repository.ShopFilter, page request.PaginatedRequest) (*response.PaginatedResponse[response.ShopResponse], error) {
	shops, err := s.repo.Shop.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list shops", zap.Error(err))
		return nil, fmt.Errorf("failed to list shops")
	}

	total, err := s.repo.Shop.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count shops", zap.Error(err))
		return nil, fmt.Errorf("failed to list shops")
	}

	results := make([]response.ShopResponse, 0, len(shops))
	for _, shop := range shops {
		results = append(results, response.ShopToResponse(shop, s.categoryOf(ctx, shop.CategoryID), nil))
	}

	pageNum := page.Page
	if pageNum < 1 {
		pageNum = 1
	}

	return response.NewPaginatedResponse(results, pageNum, page.Limit(), total), nil
}

// GetShopBySlug returns the public storefront view. Inactive shops read as
// not found.
func (s *shopService) GetShopBySlug(ctx context.Context, slug string) (*response.ShopDetailResponse, error) {
	shop, err := s.repo.Shop.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to find shop", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to find shop")
	}
	if shop == nil || !shop.IsActive {
		return nil, fmt.Errorf("shop not found")
	}

	return s.shopDetail(ctx, shop)
}

func (s *shopService) GetMyShop(ctx context.Context, sellerID uuid.UUID) (*response.ShopDetailResponse, error) {
	shop, err := s.repo.Shop.FindBySellerID(ctx, sellerID)
	if err != nil {
		s.log.Error("Failed to find shop", zap.Error(err), zap.String("seller_id", sellerID.String()))
		return nil, fmt.Errorf("failed to find shop")
	}
	if shop == nil {
		return nil, fmt.Errorf("shop not found")
	}

	return s.shopDetail(ctx, shop)
}

// CreateShop covers the approved seller who lost their starter shop or was
// migrated without one. One shop per seller.
func (s *shopService) CreateShop(ctx context.Context, sellerID uuid.UUID, req *request.ShopCreateRequest) (*response.ShopResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Shop.FindBySellerID(ctx, sellerID)
	if err != nil {
		s.log.Error("Failed to check existing shop", zap.Error(err), zap.String("seller_id", sellerID.String()))
		return nil, fmt.Errorf("failed to check existing shop")
	}
	if existing != nil {
		return nil, fmt.Errorf("shop already exists")
	}

	slug := utils.Slugify(req.Name)
	if slug == "" {
		return nil, fmt.Errorf("validation failed: name: Name must contain letters or digits")
	}

	taken, err := s.repo.Shop.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to check shop slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to check shop slug")
	}
	if taken != nil {
		return nil, fmt.Errorf("shop name already in use")
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	shop := &entity.Shop{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Slug:              slug,
		Name:              req.Name,
		Description:       req.Description,
		CategoryID:        categoryID,
		Location:          req.Location,
		SellerID:          sellerID,
		BuyerVerification: entity.BuyerVerificationNone,
		IsActive:          true,
	}

	if err := s.repo.Shop.Create(ctx, shop); err != nil {
		s.log.Error("Failed to create shop", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to create shop")
	}

	s.log.Info("Shop created",
		zap.String("shop_id", shop.ID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.String("slug", slug))

	resp := response.ShopToResponse(shop, s.categoryOf(ctx, shop.CategoryID), nil)
	return &resp, nil
}

func (s *shopService) UpdateShop(ctx context.Context, actor Actor, shopID uuid.UUID, req *request.ShopUpdateRequest) (*response.ShopResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	shop, err := s.managedShop(ctx, actor, shopID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Description != nil {
		shop.Description = req.Description
	}
	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		shop.CategoryID = categoryID
	}
	if req.Location != nil {
		shop.Location = req.Location
	}
	if req.LogoURL != nil {
		shop.LogoURL = req.LogoURL
	}
	if req.BannerURL != nil {
		shop.BannerURL = req.BannerURL
	}
	if req.PrimaryColor != nil {
		shop.PrimaryColor = req.PrimaryColor
	}
	if req.Theme != nil {
		shop.Theme = req.Theme
	}
	if req.BuyerVerification != nil {
		if !entity.ValidBuyerVerification(*req.BuyerVerification) {
			return nil, fmt.Errorf("validation failed: buyerVerification: Invalid buyer verification mode")
		}
		shop.BuyerVerification = entity.BuyerVerification(*req.BuyerVerification)
	}

	shop.UpdatedAt = time.Now()
	if err := s.repo.Shop.Update(ctx, shop); err != nil {
		s.log.Error("Failed to update shop", zap.Error(err), zap.String("shop_id", shopID.String()))
		return nil, fmt.Errorf("failed to update shop")
	}

	s.log.Info("Shop updated", zap.String("shop_id", shopID.String()))

	resp := response.ShopToResponse(shop, s.categoryOf(ctx, shop.CategoryID), nil)
	return &resp, nil
}

// DeleteShop deactivates rather than removes, so product history survives
func (s *shopService) DeleteShop(ctx context.Context, actor Actor, shopID uuid.UUID) error {
	if _, err := s.managedShop(ctx, actor, shopID); err != nil {
		return err
	}

	if err := s.repo.Shop.Deactivate(ctx, shopID); err != nil {
		s.log.Error("Failed to deactivate shop", zap.Error(err), zap.String("shop_id", shopID.String()))
		return fmt.Errorf("failed to delete shop")
	}

	s.log.Info("Shop deactivated", zap.String("shop_id", shopID.String()))
	return nil
}

func (s *shopService) ListCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("failed to list categories")
	}

	results := make([]response.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		results = append(results, response.CategoryToResponse(category))
	}

	return results, nil
}

// ==================== HELPER METHODS ====================

func (s *shopService) managedShop(ctx context.Context, actor Actor, shopID uuid.UUID) (*entity.Shop, error) {
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

func (s *shopService) shopDetail(ctx context.Context, shop *entity.Shop) (*response.ShopDetailResponse, error) {
	seller, err := s.repo.User.FindByID(ctx, shop.SellerID)
	if err != nil {
		s.log.Error("Failed to find seller", zap.Error(err), zap.String("shop_id", shop.ID.String()))
		return nil, fmt.Errorf("failed to find shop")
	}

	products, err := s.repo.Product.FindByShopID(ctx, shop.ID)
	if err != nil {
		s.log.Error("Failed to list shop products", zap.Error(err), zap.String("shop_id", shop.ID.String()))
		return nil, fmt.Errorf("failed to find shop")
	}

	detail := &response.ShopDetailResponse{
		ShopResponse: response.ShopToResponse(shop, s.categoryOf(ctx, shop.CategoryID), seller),
		Products:     make([]response.ProductResponse, 0, len(products)),
	}

	for _, product := range products {
		resp, err := assembleProduct(ctx, s.repo, product)
		if err != nil {
			s.log.Error("Failed to assemble product",
				zap.Error(err), zap.String("product_id", product.ID.String()))
			return nil, fmt.Errorf("failed to find shop")
		}
		detail.Products = append(detail.Products, resp)
	}

	return detail, nil
}

func (s *shopService) categoryOf(ctx context.Context, categoryID *uuid.UUID) *entity.Category {
	if categoryID == nil {
		return nil
	}

	category, err := s.repo.Category.FindByID(ctx, *categoryID)
	if err != nil {
		s.log.Warn("Failed to load category", zap.Error(err), zap.String("category_id", categoryID.String()))
		return nil
	}

	return category
}

func (s *shopService) resolveCategory(ctx context.Context, rawID *string) (*uuid.UUID, error) {
	if rawID == nil {
		return nil, nil
	}

	id, err := uuid.Parse(*rawID)
	if err != nil {
		return nil, fmt.Errorf("validation failed: categoryId: Invalid category id")
	}

	category, err := s.repo.Category.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find category", zap.Error(err), zap.String("category_id", id.String()))
		return nil, fmt.Errorf("failed to find category")
	}
	if category == nil {
		return nil, fmt.Errorf("category not found")
	}

	return &id, nil
}

// assembleProduct joins a product with its images, category and review stats
func assembleProduct(ctx context.Context, repo *repository.Repository, product *entity.Product) (response.ProductResponse, error) {
	images, err := repo.ProductImage.FindByProductID(ctx, product.ID)
	if err != nil {
		return response.ProductResponse{}, err
	}

	var category *entity.Category
	if product.CategoryID != nil {
		category, err = repo.Category.FindByID(ctx, *product.CategoryID)
		if err != nil {
			return response.ProductResponse{}, err
		}
	}

	avgRating, reviewCount, err := repo.Review.GetProductReviewStats(ctx, product.ID)
	if err != nil {
		return response.ProductResponse{}, err
	}

	return response.ProductToResponse(product, images, category, avgRating, reviewCount), nil
}
