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

type AdminService interface {
	ListSellerApplications(ctx context.Context) ([]response.VerificationReviewResponse, error)
	ApproveSeller(ctx context.Context, userID uuid.UUID, req *request.DecisionRequest) (*response.VerificationReviewResponse, error)
	RejectSeller(ctx context.Context, userID uuid.UUID, req *request.DecisionRequest) (*response.VerificationReviewResponse, error)
	ListVerificationQueue(ctx context.Context) ([]response.VerificationReviewResponse, error)
	UpdateVerification(ctx context.Context, userID uuid.UUID, req *request.VerificationUpdateRequest) (*response.VerificationReviewResponse, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) ListSellerApplications(ctx context.Context) ([]response.VerificationReviewResponse, error) {
	users, err := s.repo.User.FindSellerApplications(ctx)
	if err != nil {
		s.log.Error("Failed to list seller applications", zap.Error(err))
		return nil, fmt.Errorf("failed to list applications")
	}

	applications := make([]response.VerificationReviewResponse, 0, len(users))
	for _, user := range users {
		applications = append(applications, response.VerificationToReviewResponse(user))
	}

	return applications, nil
}

// ApproveSeller grants the seller role and provisions the shop in one
// transaction. Only a user with a pending seller application qualifies.
func (s *adminService) ApproveSeller(ctx context.Context, userID uuid.UUID, req *request.DecisionRequest) (*response.VerificationReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}
	if !user.HasPendingSellerApplication() {
		return nil, fmt.Errorf("user has no pending seller application")
	}

	notes := "Application approved"
	if req.Notes != nil {
		notes = *req.Notes
	}

	now := time.Now()
	user.Role = entity.RoleSeller
	user.RequestedRole = nil
	user.VerificationStatus = entity.VerificationVerified
	user.VerificationNotes = &notes
	user.IsVerified = true
	user.VerifiedAt = &now
	user.UpdatedAt = now

	shop, err := s.provisionShop(ctx, user, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.User.ApproveSellerApplication(ctx, user, shop); err != nil {
		s.log.Error("Failed to approve seller",
			zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to approve application")
	}

	s.log.Info("Seller application approved",
		zap.String("user_id", userID.String()),
		zap.Bool("shop_provisioned", shop != nil))

	resp := response.VerificationToReviewResponse(user)
	return &resp, nil
}

// RejectSeller records the decision without touching the role. The request is
// cleared; a fresh application may be submitted later.
func (s *adminService) RejectSeller(ctx context.Context, userID uuid.UUID, req *request.DecisionRequest) (*response.VerificationReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}
	if !user.HasPendingSellerApplication() {
		return nil, fmt.Errorf("user has no pending seller application")
	}

	notes := "Application rejected"
	if req.Notes != nil {
		notes = *req.Notes
	}

	user.RequestedRole = nil
	user.VerificationStatus = entity.VerificationRejected
	user.VerificationNotes = &notes
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to reject seller",
			zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to reject application")
	}

	s.log.Info("Seller application rejected", zap.String("user_id", userID.String()))

	resp := response.VerificationToReviewResponse(user)
	return &resp, nil
}

func (s *adminService) ListVerificationQueue(ctx context.Context) ([]response.VerificationReviewResponse, error) {
	users, err := s.repo.User.FindVerificationQueue(ctx)
	if err != nil {
		s.log.Error("Failed to list verification queue", zap.Error(err))
		return nil, fmt.Errorf("failed to list verifications")
	}

	queue := make([]response.VerificationReviewResponse, 0, len(users))
	for _, user := range users {
		queue = append(queue, response.VerificationToReviewResponse(user))
	}

	return queue, nil
}

// UpdateVerification decides a pending identity verification. Verifying a
// seller applicant promotes them and provisions a shop, same as ApproveSeller.
func (s *adminService) UpdateVerification(ctx context.Context, userID uuid.UUID, req *request.VerificationUpdateRequest) (*response.VerificationReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if !entity.ValidVerificationStatus(req.Status) {
		return nil, fmt.Errorf("validation failed: status: Invalid verification status")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	now := time.Now()
	status := entity.VerificationStatus(req.Status)

	notes := "Application approved"
	if status == entity.VerificationRejected {
		notes = "Application rejected"
	}
	if req.Notes != nil {
		notes = *req.Notes
	}

	user.VerificationStatus = status
	user.VerificationNotes = &notes
	user.UpdatedAt = now

	var shop *entity.Shop

	if status == entity.VerificationRejected {
		user.RequestedRole = nil
	}

	if status == entity.VerificationVerified {
		user.IsVerified = true
		user.VerifiedAt = &now

		if user.RequestedRole != nil && *user.RequestedRole == entity.RoleSeller {
			user.Role = entity.RoleSeller
			user.RequestedRole = nil

			shop, err = s.provisionShop(ctx, user, now)
			if err != nil {
				return nil, err
			}
		}
	}

	if err := s.repo.User.ApproveSellerApplication(ctx, user, shop); err != nil {
		s.log.Error("Failed to update verification",
			zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to update verification")
	}

	s.log.Info("Verification updated",
		zap.String("user_id", userID.String()),
		zap.String("status", req.Status))

	resp := response.VerificationToReviewResponse(user)
	return &resp, nil
}

// provisionShop builds the starter shop for a newly approved seller. Returns
// nil when the seller already has one, so re-approval never duplicates it.
func (s *adminService) provisionShop(ctx context.Context, user *entity.User, now time.Time) (*entity.Shop, error) {
	existing, err := s.repo.Shop.FindBySellerID(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to check existing shop",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to check existing shop")
	}
	if existing != nil {
		return nil, nil
	}

	slug := utils.SlugFromEmail(user.Email)

	// Slug collisions get a short suffix from the seller id
	taken, err := s.repo.Shop.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to check shop slug",
			zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to check shop slug")
	}
	if taken != nil {
		slug = fmt.Sprintf("%s-%s", slug, user.ID.String()[:8])
	}

	return &entity.Shop{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Slug:              slug,
		Name:              fmt.Sprintf("%s's Shop", slug),
		SellerID:          user.ID,
		BuyerVerification: entity.BuyerVerificationNone,
		IsActive:          true,
	}, nil
}
