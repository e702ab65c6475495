package repository

import (
	"shop-mkononi/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User             UserRepository
	VerificationCode VerificationCodeRepository
	Shop             ShopRepository
	Product          ProductRepository
	ProductImage     ProductImageRepository
	Category         CategoryRepository
	Review           ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:             NewUserRepository(db, log),
		VerificationCode: NewVerificationCodeRepository(db, log),
		Shop:             NewShopRepository(db, log),
		Product:          NewProductRepository(db, log),
		ProductImage:     NewProductImageRepository(db, log),
		Category:         NewCategoryRepository(db, log),
		Review:           NewReviewRepository(db, log),
	}
}
