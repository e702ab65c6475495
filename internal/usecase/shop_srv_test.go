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

func newShopService(t *testing.T) (ShopService, *fakeUserRepo, *fakeShopRepo) {
	t.Helper()
	repo, users, shops, _ := newTestRepository()
	return NewShopService(repo, testLogger()), users, shops
}

func sellerActor(user *entity.User) Actor {
	return Actor{ID: user.ID, Role: entity.RoleSeller}
}

func seedShop(shops *fakeShopRepo, sellerID uuid.UUID, slug string) *entity.Shop {
	now := time.Now()
	shop := &entity.Shop{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Slug:              slug,
		Name:              slug + "'s Shop",
		SellerID:          sellerID,
		BuyerVerification: entity.BuyerVerificationNone,
		IsActive:          true,
	}
	shops.shops[shop.ID] = shop
	return shop
}

func TestCreateShop_Success(t *testing.T) {
	service, users, shops := newShopService(t)
	seller := seedUser(users, "alice@example.com", "password123", "+254712345678")

	resp, err := service.CreateShop(context.Background(), seller.ID, &request.ShopCreateRequest{
		Name: "Alice Electronics",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice-electronics", resp.Slug)
	assert.Equal(t, entity.BuyerVerificationNone, resp.BuyerVerification)

	stored, _ := shops.FindBySellerID(context.Background(), seller.ID)
	require.NotNil(t, stored)
	assert.True(t, stored.IsActive)
}

func TestCreateShop_OnePerSeller(t *testing.T) {
	service, users, shops := newShopService(t)
	seller := seedUser(users, "alice@example.com", "password123", "+254712345678")
	seedShop(shops, seller.ID, "alice")

	_, err := service.CreateShop(context.Background(), seller.ID, &request.ShopCreateRequest{
		Name: "Second Shop",
	})

	assert.EqualError(t, err, "shop already exists")
}

func TestCreateShop_SlugCollision(t *testing.T) {
	service, users, shops := newShopService(t)
	other := seedUser(users, "bob@example.com", "password123", "+254700000000")
	seedShop(shops, other.ID, "alice-electronics")
	seller := seedUser(users, "alice@example.com", "password123", "+254712345678")

	_, err := service.CreateShop(context.Background(), seller.ID, &request.ShopCreateRequest{
		Name: "Alice Electronics",
	})

	assert.EqualError(t, err, "shop name already in use")
}

func TestUpdateShop_OwnershipEnforced(t *testing.T) {
	service, users, shops := newShopService(t)
	owner := seedUser(users, "alice@example.com", "password123", "+254712345678")
	intruder := seedUser(users, "mallory@example.com", "password123", "+254700000000")
	shop := seedShop(shops, owner.ID, "alice")

	name := "Hijacked"
	_, err := service.UpdateShop(context.Background(), sellerActor(intruder), shop.ID, &request.ShopUpdateRequest{
		Name: &name,
	})

	assert.EqualError(t, err, "not authorized to manage this shop")
}

func TestUpdateShop_AdminMayManageAnyShop(t *testing.T) {
	service, users, shops := newShopService(t)
	owner := seedUser(users, "alice@example.com", "password123", "+254712345678")
	admin := seedUser(users, "admin@example.com", "password123", "+254700000000")
	admin.Role = entity.RoleAdmin
	shop := seedShop(shops, owner.ID, "alice")

	name := "Moderated Name"
	resp, err := service.UpdateShop(context.Background(), Actor{ID: admin.ID, Role: entity.RoleAdmin}, shop.ID, &request.ShopUpdateRequest{
		Name: &name,
	})

	require.NoError(t, err)
	assert.Equal(t, "Moderated Name", resp.Name)
}

func TestUpdateShop_BuyerVerificationPolicy(t *testing.T) {
	service, users, shops := newShopService(t)
	owner := seedUser(users, "alice@example.com", "password123", "+254712345678")
	shop := seedShop(shops, owner.ID, "alice")

	policy := "ID"
	_, err := service.UpdateShop(context.Background(), sellerActor(owner), shop.ID, &request.ShopUpdateRequest{
		BuyerVerification: &policy,
	})

	require.NoError(t, err)
	stored, _ := shops.FindByID(context.Background(), shop.ID)
	assert.Equal(t, entity.BuyerVerificationID, stored.BuyerVerification)
}

func TestDeleteShop_SoftDeletes(t *testing.T) {
	service, users, shops := newShopService(t)
	owner := seedUser(users, "alice@example.com", "password123", "+254712345678")
	shop := seedShop(shops, owner.ID, "alice")

	err := service.DeleteShop(context.Background(), sellerActor(owner), shop.ID)

	require.NoError(t, err)
	assert.False(t, shops.shops[shop.ID].IsActive)
}

func TestGetShopBySlug_InactiveReadsAsNotFound(t *testing.T) {
	service, users, shops := newShopService(t)
	owner := seedUser(users, "alice@example.com", "password123", "+254712345678")
	shop := seedShop(shops, owner.ID, "alice")
	shop.IsActive = false

	_, err := service.GetShopBySlug(context.Background(), "alice")

	assert.EqualError(t, err, "shop not found")
}

func TestGetShopBySlug_ReturnsSellerAndProducts(t *testing.T) {
	repo, users, shops, _ := newTestRepository()
	service := NewShopService(repo, testLogger())

	owner := seedUser(users, "alice@example.com", "password123", "+254712345678")
	shop := seedShop(shops, owner.ID, "alice")

	now := time.Now()
	product := &entity.Product{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		ShopID:       shop.ID,
		Name:         "Phone",
		Price:        199.99,
		Stock:        3,
		Condition:    entity.ConditionNew,
		IsActive:     true,
	}
	require.NoError(t, repo.Product.Create(context.Background(), product))

	detail, err := service.GetShopBySlug(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, "alice", detail.Slug)
	require.NotNil(t, detail.Seller)
	require.Len(t, detail.Products, 1)
	assert.Equal(t, "Phone", detail.Products[0].Name)
}

func TestListShops_Paginated(t *testing.T) {
	service, users, shops := newShopService(t)
	owner := seedUser(users, "alice@example.com", "password123", "+254712345678")
	seedShop(shops, owner.ID, "alice")

	page := request.PaginatedRequest{Page: 1, PerPage: 12}
	resp, err := service.ListShops(context.Background(), repository.ShopFilter{}, page)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Pagination.Total)
	assert.Equal(t, 12, resp.Pagination.PerPage)
	assert.Len(t, resp.Data, 1)
}
