package usecase

import (
	"context"
	"testing"
	"time"

	"shop-mkononi/internal/data/entity"
	"shop-mkononi/internal/data/repository"
	"shop-mkononi/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(t *testing.T) (ProductService, *repository.Repository, *fakeUserRepo, *fakeShopRepo) {
	t.Helper()
	repo, users, shops, _ := newTestRepository()
	return NewProductService(repo, testLogger()), repo, users, shops
}

func seedProduct(repo *repository.Repository, shopID uuid.UUID, name string) *entity.Product {
	now := time.Now()
	product := &entity.Product{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		ShopID:       shopID,
		Name:         name,
		Price:        49.99,
		Stock:        10,
		Condition:    entity.ConditionNew,
		IsActive:     true,
	}
	_ = repo.Product.Create(context.Background(), product)
	return product
}

func TestCreateProduct_Success(t *testing.T) {
	service, repo, users, shops := newProductService(t)
	seller := seedUser(users, "alice@example.com", "password123", "+254712345678")
	shop := seedShop(shops, seller.ID, "alice")

	resp, err := service.CreateProduct(context.Background(), sellerActor(seller), &request.ProductCreateRequest{
		ShopID:    shop.ID.String(),
		Name:      "Refurbished Laptop",
		Price:     299.99,
		Stock:     2,
		Condition: "REFURBISHED",
		Images:    []string{"https://cdn.example.com/laptop.png"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Refurbished Laptop", resp.Name)
	assert.Equal(t, entity.ConditionRefurbished, resp.Condition)
	require.Len(t, resp.Images, 1)

	id, _ := uuid.Parse(resp.ID)
	stored, _ := repo.Product.FindByID(context.Background(), id)
	require.NotNil(t, stored)
	assert.True(t, stored.IsActive)
}

func TestCreateProduct_ForeignShopRejected(t *testing.T) {
	service, _, users, shops := newProductService(t)
	owner := seedUser(users, "alice@example.com", "password123", "+254712345678")
	intruder := seedUser(users, "mallory@example.com", "password123", "+254700000000")
	shop := seedShop(shops, owner.ID, "alice")

	_, err := service.CreateProduct(context.Background(), sellerActor(intruder), &request.ProductCreateRequest{
		ShopID:    shop.ID.String(),
		Name:      "Planted Item",
		Price:     1,
		Condition: "NEW",
	})

	assert.EqualError(t, err, "not authorized to manage this shop")
}

func TestCreateProduct_InvalidCondition(t *testing.T) {
	service, _, users, shops := newProductService(t)
	seller := seedUser(users, "alice@example.com", "password123", "+254712345678")
	shop := seedShop(shops, seller.ID, "alice")

	_, err := service.CreateProduct(context.Background(), sellerActor(seller), &request.ProductCreateRequest{
		ShopID:    shop.ID.String(),
		Name:      "Mystery Box",
		Price:     10,
		Condition: "VINTAGE",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestUpdateProduct_OwnershipEnforced(t *testing.T) {
	service, repo, users, shops := newProductService(t)
	owner := seedUser(users, "alice@example.com", "password123", "+254712345678")
	intruder := seedUser(users, "mallory@example.com", "password123", "+254700000000")
	shop := seedShop(shops, owner.ID, "alice")
	product := seedProduct(repo, shop.ID, "Phone")

	price := 0.01
	_, err := service.UpdateProduct(context.Background(), sellerActor(intruder), product.ID, &request.ProductUpdateRequest{
		Price: &price,
	})

	assert.EqualError(t, err, "not authorized to manage this shop")
}

func TestDeleteProduct_AdminMayRemoveAnyListing(t *testing.T) {
	service, repo, users, shops := newProductService(t)
	owner := seedUser(users, "alice@example.com", "password123", "+254712345678")
	admin := seedUser(users, "admin@example.com", "password123", "+254700000000")
	admin.Role = entity.RoleAdmin
	shop := seedShop(shops, owner.ID, "alice")
	product := seedProduct(repo, shop.ID, "Counterfeit Phone")

	err := service.DeleteProduct(context.Background(), Actor{ID: admin.ID, Role: entity.RoleAdmin}, product.ID)

	require.NoError(t, err)
	stored, _ := repo.Product.FindByID(context.Background(), product.ID)
	assert.False(t, stored.IsActive)
}

func TestDeleteProduct_SoftDeletesAndHidesFromListings(t *testing.T) {
	service, repo, users, shops := newProductService(t)
	seller := seedUser(users, "alice@example.com", "password123", "+254712345678")
	shop := seedShop(shops, seller.ID, "alice")
	product := seedProduct(repo, shop.ID, "Phone")

	require.NoError(t, service.DeleteProduct(context.Background(), sellerActor(seller), product.ID))

	stored, _ := repo.Product.FindByID(context.Background(), product.ID)
	require.NotNil(t, stored)
	assert.False(t, stored.IsActive)

	listed, err := service.ListProducts(context.Background(), repository.ProductFilter{},
		request.PaginatedRequest{Page: 1, PerPage: 12})
	require.NoError(t, err)
	assert.Empty(t, listed.Data)

	_, err = service.GetProduct(context.Background(), product.ID)
	assert.EqualError(t, err, "product not found")
}

func TestAddReview_Success(t *testing.T) {
	service, repo, users, shops := newProductService(t)
	seller := seedUser(users, "alice@example.com", "password123", "+254712345678")
	buyer := seedUser(users, "bob@example.com", "password123", "+254700000000")
	shop := seedShop(shops, seller.ID, "alice")
	product := seedProduct(repo, shop.ID, "Phone")

	comment := "Arrived in two days"
	resp, err := service.AddReview(context.Background(), buyer.ID, product.ID, &request.ReviewRequest{
		Rating:  5,
		Comment: &comment,
	})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.Rating)

	avg, count, _ := repo.Review.GetProductReviewStats(context.Background(), product.ID)
	assert.Equal(t, float64(5), avg)
	assert.Equal(t, int64(1), count)
}

func TestAddReview_InactiveProductRejected(t *testing.T) {
	service, repo, users, shops := newProductService(t)
	seller := seedUser(users, "alice@example.com", "password123", "+254712345678")
	buyer := seedUser(users, "bob@example.com", "password123", "+254700000000")
	shop := seedShop(shops, seller.ID, "alice")
	product := seedProduct(repo, shop.ID, "Phone")
	require.NoError(t, repo.Product.Deactivate(context.Background(), product.ID))

	_, err := service.AddReview(context.Background(), buyer.ID, product.ID, &request.ReviewRequest{
		Rating: 4,
	})

	assert.EqualError(t, err, "product not found")
}

func TestAddReview_RatingOutOfRange(t *testing.T) {
	service, repo, users, shops := newProductService(t)
	seller := seedUser(users, "alice@example.com", "password123", "+254712345678")
	buyer := seedUser(users, "bob@example.com", "password123", "+254700000000")
	shop := seedShop(shops, seller.ID, "alice")
	product := seedProduct(repo, shop.ID, "Phone")

	_, err := service.AddReview(context.Background(), buyer.ID, product.ID, &request.ReviewRequest{
		Rating: 6,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestGetProduct_IncludesShopAndReviews(t *testing.T) {
	service, repo, users, shops := newProductService(t)
	seller := seedUser(users, "alice@example.com", "password123", "+254712345678")
	buyer := seedUser(users, "bob@example.com", "password123", "+254700000000")
	shop := seedShop(shops, seller.ID, "alice")
	product := seedProduct(repo, shop.ID, "Phone")

	_, err := service.AddReview(context.Background(), buyer.ID, product.ID, &request.ReviewRequest{Rating: 4})
	require.NoError(t, err)

	detail, err := service.GetProduct(context.Background(), product.ID)

	require.NoError(t, err)
	require.NotNil(t, detail.Shop)
	assert.Equal(t, "alice", detail.Shop.Slug)
	require.Len(t, detail.Reviews, 1)
	assert.InDelta(t, 4.0, detail.AvgRating, 0.001)
	assert.Equal(t, int64(1), detail.ReviewCount)
}
