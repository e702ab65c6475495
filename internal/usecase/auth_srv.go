package usecase

import (
	"context"
	"fmt"
	"time"

	"shop-mkononi/internal/data/entity"
	"shop-mkononi/internal/data/repository"
	"shop-mkononi/internal/dto/request"
	"shop-mkononi/internal/dto/response"
	"shop-mkononi/pkg/token"
	"shop-mkononi/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.UserResponse, error)
	Signin(ctx context.Context, req *request.SigninRequest) (*response.AuthResponse, error)
	ProviderSignIn(ctx context.Context, req *request.ProviderSignInRequest) (*response.AuthResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.AuthResponse, error)
}

type authService struct {
	repo   *repository.Repository
	tokens *token.Manager
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens *token.Manager,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !utils.IsValidPhone(req.Phone) {
		return nil, fmt.Errorf("validation failed: phone: Invalid phone number format")
	}

	// Duplicate email check
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existingUser != nil {
		return nil, fmt.Errorf("email already registered")
	}

	// Duplicate phone check
	taken, err := s.repo.User.PhoneTakenByOther(ctx, req.Phone, uuid.Nil)
	if err != nil {
		s.log.Error("Failed to check phone", zap.Error(err), zap.String("phone", req.Phone))
		return nil, fmt.Errorf("failed to check phone")
	}
	if taken {
		return nil, fmt.Errorf("phone already in use")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	// Every account starts as a BUYER; seller role only arrives through an
	// approved verification.
	now := time.Now()
	phone := req.Phone
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:              req.Email,
		PasswordHash:       hashedPassword,
		Name:               req.Name,
		Phone:              &phone,
		Role:               entity.RoleBuyer,
		VerificationStatus: entity.VerificationPending,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create account")
	}

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Signin(ctx context.Context, req *request.SigninRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signin validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user")
	}

	if user == nil {
		s.log.Warn("User not found for signin", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid credentials")
	}

	// Provider-authenticated accounts have no password to check
	if user.PasswordHash == "" || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("invalid credentials")
	}

	resp, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User signed in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return resp, nil
}

// ProviderSignIn normalizes an externally-authenticated identity into a local
// account. First sign-in creates a BUYER with no password hash.
func (s *authService) ProviderSignIn(ctx context.Context, req *request.ProviderSignInRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Provider sign-in validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.CallbackSecret != s.config.Google.CallbackSecret {
		s.log.Warn("Provider sign-in with bad callback secret", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid credentials")
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user")
	}

	if user == nil {
		now := time.Now()
		user = &entity.User{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Email:              req.Email,
			Name:               req.Name,
			Image:              req.Image,
			Role:               entity.RoleBuyer,
			VerificationStatus: entity.VerificationPending,
		}

		if err := s.repo.User.Create(ctx, user); err != nil {
			s.log.Error("Failed to create provider user", zap.Error(err), zap.String("email", req.Email))
			return nil, fmt.Errorf("failed to create account")
		}

		s.log.Info("Provider user created",
			zap.String("user_id", user.ID.String()),
			zap.String("email", user.Email))
	}

	return s.issueSession(user)
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get profile")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateProfile mutates role request, phone and password. Returns a fresh
// session so the token claims keep up with the record.
func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update profile validation failed", zap.Any("errors", errs))
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

	if req.Phone != nil {
		if !utils.IsValidPhone(*req.Phone) {
			return nil, fmt.Errorf("validation failed: phone: Invalid phone number format")
		}

		// Uniqueness check excludes the caller's own record, so re-saving an
		// unchanged number is not a conflict.
		taken, err := s.repo.User.PhoneTakenByOther(ctx, *req.Phone, user.ID)
		if err != nil {
			s.log.Error("Failed to check phone", zap.Error(err), zap.String("user_id", userID.String()))
			return nil, fmt.Errorf("failed to check phone")
		}
		if taken {
			return nil, fmt.Errorf("phone already in use")
		}

		if user.Phone == nil || *user.Phone != *req.Phone {
			user.Phone = req.Phone
			user.PhoneVerified = false
		}
	}

	// Role changes here only downgrade or re-request; elevation to SELLER
	// happens exclusively through admin approval.
	if req.Role != nil && entity.UserRole(*req.Role) == entity.RoleBuyer {
		user.Role = entity.RoleBuyer
	}

	if req.RequestedRole != nil {
		requested := entity.UserRole(*req.RequestedRole)
		user.RequestedRole = &requested
	}

	if req.NewPassword != nil {
		if req.CurrentPassword == nil || !utils.CheckPasswordHash(*req.CurrentPassword, user.PasswordHash) {
			return nil, fmt.Errorf("current password is incorrect")
		}

		hashed, err := utils.HashPassword(*req.NewPassword)
		if err != nil {
			s.log.Error("Failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("failed to process password")
		}
		user.PasswordHash = hashed
	}

	user.UpdatedAt = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to update profile")
	}

	s.log.Info("Profile updated", zap.String("user_id", user.ID.String()))

	return s.issueSession(user)
}

// ==================== HELPER METHODS ====================

func (s *authService) issueSession(user *entity.User) (*response.AuthResponse, error) {
	claims := SessionClaimsFor(user)

	signed, expiresAt, err := s.tokens.Generate(claims)
	if err != nil {
		s.log.Error("Failed to issue session token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	return &response.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      response.UserToResponse(user),
	}, nil
}

// SessionClaimsFor caches the role and verification state of a user into
// session claims so the access gate can decide without a database hit.
func SessionClaimsFor(user *entity.User) *token.SessionClaims {
	claims := &token.SessionClaims{
		UserID:             user.ID.String(),
		Email:              user.Email,
		Role:               string(user.Role),
		Phone:              user.Phone,
		IsVerified:         user.IsVerified,
		VerificationStatus: string(user.VerificationStatus),
	}

	if user.RequestedRole != nil {
		requested := string(*user.RequestedRole)
		claims.RequestedRole = &requested
	}

	return claims
}
