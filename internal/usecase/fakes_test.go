package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"shop-mkononi/internal/data/entity"
	"shop-mkononi/internal/data/repository"
	"shop-mkononi/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes. Each fake keeps entities in maps so tests can
// assert on the stored state directly.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
	shops *fakeShopRepo
	err   error
}

func newFakeUserRepo(shops *fakeShopRepo) *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User), shops: shops}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.err != nil {
		return f.err
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) PhoneTakenByOther(ctx context.Context, phone string, selfID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, user := range f.users {
		if user.ID != selfID && user.Phone != nil && *user.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) FindSellerApplications(ctx context.Context) ([]*entity.User, error) {
	var result []*entity.User
	for _, user := range f.users {
		if user.HasPendingSellerApplication() {
			clone := *user
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) FindVerificationQueue(ctx context.Context) ([]*entity.User, error) {
	var result []*entity.User
	for _, user := range f.users {
		clone := *user
		result = append(result, &clone)
	}
	return result, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[user.ID]; !ok {
		return fmt.Errorf("user %s not found", user.ID.String())
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) ApproveSellerApplication(ctx context.Context, user *entity.User, shop *entity.Shop) error {
	if f.err != nil {
		return f.err
	}
	if err := f.Update(ctx, user); err != nil {
		return err
	}
	if shop != nil {
		return f.shops.Create(ctx, shop)
	}
	return nil
}

type fakeShopRepo struct {
	shops map[uuid.UUID]*entity.Shop
	err   error
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{shops: make(map[uuid.UUID]*entity.Shop)}
}

func (f *fakeShopRepo) Create(ctx context.Context, shop *entity.Shop) error {
	if f.err != nil {
		return f.err
	}
	clone := *shop
	f.shops[shop.ID] = &clone
	return nil
}

func (f *fakeShopRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	shop, ok := f.shops[id]
	if !ok {
		return nil, nil
	}
	clone := *shop
	return &clone, nil
}

func (f *fakeShopRepo) FindBySlug(ctx context.Context, slug string) (*entity.Shop, error) {
	for _, shop := range f.shops {
		if shop.Slug == slug {
			clone := *shop
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeShopRepo) FindBySellerID(ctx context.Context, sellerID uuid.UUID) (*entity.Shop, error) {
	for _, shop := range f.shops {
		if shop.SellerID == sellerID {
			clone := *shop
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeShopRepo) FindAll(ctx context.Context, filter repository.ShopFilter, limit, offset int) ([]*entity.Shop, error) {
	var result []*entity.Shop
	for _, shop := range f.shops {
		if shop.IsActive {
			clone := *shop
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakeShopRepo) CountAll(ctx context.Context, filter repository.ShopFilter) (int64, error) {
	var count int64
	for _, shop := range f.shops {
		if shop.IsActive {
			count++
		}
	}
	return count, nil
}

func (f *fakeShopRepo) Update(ctx context.Context, shop *entity.Shop) error {
	if _, ok := f.shops[shop.ID]; !ok {
		return fmt.Errorf("shop %s not found", shop.ID.String())
	}
	clone := *shop
	f.shops[shop.ID] = &clone
	return nil
}

func (f *fakeShopRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	shop, ok := f.shops[id]
	if !ok {
		return fmt.Errorf("shop %s not found", id.String())
	}
	shop.IsActive = false
	return nil
}

type fakeCodeRepo struct {
	codes map[uuid.UUID]*entity.VerificationCode
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{codes: make(map[uuid.UUID]*entity.VerificationCode)}
}

func (f *fakeCodeRepo) Upsert(ctx context.Context, code *entity.VerificationCode) error {
	clone := *code
	clone.Attempts = 0
	f.codes[code.UserID] = &clone
	return nil
}

func (f *fakeCodeRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.VerificationCode, error) {
	code, ok := f.codes[userID]
	if !ok {
		return nil, nil
	}
	clone := *code
	return &clone, nil
}

func (f *fakeCodeRepo) IncrementAttempts(ctx context.Context, userID uuid.UUID) (int, error) {
	code, ok := f.codes[userID]
	if !ok {
		return 0, fmt.Errorf("verification code for %s not found", userID.String())
	}
	code.Attempts++
	return code.Attempts, nil
}

func (f *fakeCodeRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	delete(f.codes, userID)
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	clone := *product
	f.products[product.ID] = &clone
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	clone := *product
	return &clone, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	var result []*entity.Product
	for _, product := range f.products {
		if product.IsActive {
			clone := *product
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) CountAll(ctx context.Context, filter repository.ProductFilter) (int64, error) {
	var count int64
	for _, product := range f.products {
		if product.IsActive {
			count++
		}
	}
	return count, nil
}

func (f *fakeProductRepo) FindByShopID(ctx context.Context, shopID uuid.UUID) ([]*entity.Product, error) {
	var result []*entity.Product
	for _, product := range f.products {
		if product.ShopID == shopID && product.IsActive {
			clone := *product
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return fmt.Errorf("product %s not found", product.ID.String())
	}
	clone := *product
	f.products[product.ID] = &clone
	return nil
}

func (f *fakeProductRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	product, ok := f.products[id]
	if !ok {
		return fmt.Errorf("product %s not found", id.String())
	}
	product.IsActive = false
	return nil
}

type fakeProductImageRepo struct {
	images map[uuid.UUID][]*entity.ProductImage
}

func newFakeProductImageRepo() *fakeProductImageRepo {
	return &fakeProductImageRepo{images: make(map[uuid.UUID][]*entity.ProductImage)}
}

func (f *fakeProductImageRepo) CreateBatch(ctx context.Context, images []*entity.ProductImage) error {
	for _, image := range images {
		clone := *image
		f.images[image.ProductID] = append(f.images[image.ProductID], &clone)
	}
	return nil
}

func (f *fakeProductImageRepo) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.ProductImage, error) {
	return f.images[productID], nil
}

func (f *fakeProductImageRepo) DeleteByProductID(ctx context.Context, productID uuid.UUID) error {
	delete(f.images, productID)
	return nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (f *fakeCategoryRepo) FindAll(ctx context.Context) ([]*entity.Category, error) {
	var result []*entity.Category
	for _, category := range f.categories {
		clone := *category
		result = append(result, &clone)
	}
	return result, nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	clone := *category
	return &clone, nil
}

type fakeReviewRepo struct {
	reviews map[uuid.UUID][]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID][]*entity.Review)}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	clone := *review
	f.reviews[review.ProductID] = append(f.reviews[review.ProductID], &clone)
	return nil
}

func (f *fakeReviewRepo) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	return f.reviews[productID], nil
}

func (f *fakeReviewRepo) GetProductReviewStats(ctx context.Context, productID uuid.UUID) (float64, int64, error) {
	reviews := f.reviews[productID]
	if len(reviews) == 0 {
		return 0, 0, nil
	}
	var sum int
	for _, review := range reviews {
		sum += review.Rating
	}
	return float64(sum) / float64(len(reviews)), int64(len(reviews)), nil
}

// fakeUploader records uploads and hands back deterministic URLs
type fakeUploader struct {
	uploads []string
	err     error
}

func (f *fakeUploader) UploadImage(ctx context.Context, file io.Reader, folder string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, folder)
	return "https://cdn.example.com/" + folder + "/image.png", nil
}

// fakeSender records dispatched messages
type fakeSender struct {
	messages []string
	to       []string
	err      error
}

func (f *fakeSender) Send(to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.messages = append(f.messages, body)
	return nil
}

var errFakeRepo = errors.New("storage unavailable")

func newTestRepository() (*repository.Repository, *fakeUserRepo, *fakeShopRepo, *fakeCodeRepo) {
	shops := newFakeShopRepo()
	users := newFakeUserRepo(shops)
	codes := newFakeCodeRepo()

	repo := &repository.Repository{
		User:             users,
		VerificationCode: codes,
		Shop:             shops,
		Product:          newFakeProductRepo(),
		ProductImage:     newFakeProductImageRepo(),
		Category:         newFakeCategoryRepo(),
		Review:           newFakeReviewRepo(),
	}

	return repo, users, shops, codes
}

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{
			Secret:     "test-secret",
			ExpiryDays: 30,
			CookieName: "session_token",
		},
		Google: utils.GoogleConfig{
			CallbackSecret: "callback-secret",
		},
		Verification: utils.VerificationConfig{
			CodeExpiryMinutes: 15,
			CodeLength:        6,
			MaxAttempts:       5,
		},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
