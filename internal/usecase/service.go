package usecase

import (
	"shop-mkononi/internal/data/entity"
	"shop-mkononi/internal/data/repository"
	"shop-mkononi/pkg/media"
	"shop-mkononi/pkg/sms"
	"shop-mkononi/pkg/token"
	"shop-mkononi/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor identifies the caller for ownership checks. Administrators may manage
// any shop or product; sellers only their own.
type Actor struct {
	ID   uuid.UUID
	Role entity.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

type Service struct {
	Auth         AuthService
	Verification VerificationService
	Admin        AdminService
	Shop         ShopService
	Product      ProductService
}

func NewService(
	repo *repository.Repository,
	tokens *token.Manager,
	uploader media.Uploader,
	sender sms.Sender,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(repo, tokens, config, log),
		Verification: NewVerificationService(repo, uploader, sender, config, log),
		Admin:        NewAdminService(repo, log),
		Shop:         NewShopService(repo, log),
		Product:      NewProductService(repo, log),
	}
}
