package usecase

import (
	"context"
	"fmt"
	"time"

	"shop-mkononi/internal/data/entity"
	"shop-mkononi/internal/data/repository"
	"shop-mkononi/internal/dto/request"
	"shop-mkononi/pkg/media"
	"shop-mkononi/pkg/sms"
	"shop-mkononi/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const awaitingReviewNote = "Awaiting admin review"

type VerificationService interface {
	SubmitDocuments(ctx context.Context, userID uuid.UUID, submission *request.VerificationSubmission) error
	ApplyAsSeller(ctx context.Context, userID uuid.UUID, application *request.SellerApplication) error
	SendPhoneCode(ctx context.Context, userID uuid.UUID, req *request.SendVerificationCodeRequest) error
	VerifyPhoneCode(ctx context.Context, userID uuid.UUID, req *request.VerifyPhoneCodeRequest) error
}

type verificationService struct {
	repo     *repository.Repository
	uploader media.Uploader
	sender   sms.Sender
	config   *utils.Config
	log      *zap.Logger
}

func NewVerificationService(
	repo *repository.Repository,
	uploader media.Uploader,
	sender sms.Sender,
	config *utils.Config,
	log *zap.Logger,
) VerificationService {
	return &verificationService{
		repo:     repo,
		uploader: uploader,
		sender:   sender,
		config:   config,
		log:      log.With(zap.String("service", "verification")),
	}
}

// SubmitDocuments uploads the identity documents and moves the user to
// PENDING. A REJECTED user may resubmit and return to PENDING.
func (s *verificationService) SubmitDocuments(ctx context.Context, userID uuid.UUID, submission *request.VerificationSubmission) error {
	if !submission.Complete() {
		return fmt.Errorf("validation failed: all four verification fields are required")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to find user")
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	if err := s.uploadDocuments(ctx, user, submission); err != nil {
		return err
	}

	note := awaitingReviewNote
	user.VerificationStatus = entity.VerificationPending
	user.VerificationNotes = &note
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to save verification submission",
			zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to save verification")
	}

	s.log.Info("Verification documents submitted", zap.String("user_id", userID.String()))
	return nil
}

// ApplyAsSeller is a document submission plus the seller role request and
// contact phone update.
func (s *verificationService) ApplyAsSeller(ctx context.Context, userID uuid.UUID, application *request.SellerApplication) error {
	if !application.Complete() || application.Phone == "" {
		return fmt.Errorf("validation failed: all application fields are required")
	}

	if !utils.IsValidPhone(application.Phone) {
		return fmt.Errorf("validation failed: phone: Invalid phone number format")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to find user")
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	taken, err := s.repo.User.PhoneTakenByOther(ctx, application.Phone, user.ID)
	if err != nil {
		s.log.Error("Failed to check phone", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to check phone")
	}
	if taken {
		return fmt.Errorf("phone already in use")
	}

	if err := s.uploadDocuments(ctx, user, &application.VerificationSubmission); err != nil {
		return err
	}

	note := awaitingReviewNote
	requested := entity.RoleSeller
	phone := application.Phone

	user.RequestedRole = &requested
	user.Phone = &phone
	user.VerificationStatus = entity.VerificationPending
	user.VerificationNotes = &note
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to save seller application",
			zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to save application")
	}

	s.log.Info("Seller application submitted", zap.String("user_id", userID.String()))
	return nil
}

func (s *verificationService) uploadDocuments(ctx context.Context, user *entity.User, submission *request.VerificationSubmission) error {
	frontURL, err := s.uploader.UploadImage(ctx, submission.IDFrontImage, "ids/front")
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	backURL, err := s.uploader.UploadImage(ctx, submission.IDBackImage, "ids/back")
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	selfieURL, err := s.uploader.UploadImage(ctx, submission.SelfieImage, "selfies")
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	idNumber := submission.IDNumber
	user.IDNumber = &idNumber
	user.IDFrontImage = &frontURL
	user.IDBackImage = &backURL
	user.SelfieImage = &selfieURL

	return nil
}

// SendPhoneCode issues a fresh one-time code, replacing any previous one and
// resetting the attempt counter.
func (s *verificationService) SendPhoneCode(ctx context.Context, userID uuid.UUID, req *request.SendVerificationCodeRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !utils.IsValidPhone(req.Phone) {
		return fmt.Errorf("validation failed: phone: Invalid phone number format")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to find user")
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	codeValue := utils.GenerateVerificationCode(s.config.Verification.CodeLength)
	expiresAt := time.Now().Add(time.Duration(s.config.Verification.CodeExpiryMinutes) * time.Minute)

	code := &entity.VerificationCode{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		Code:      codeValue,
		ExpiresAt: expiresAt,
	}

	if err := s.repo.VerificationCode.Upsert(ctx, code); err != nil {
		s.log.Error("Failed to store verification code",
			zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to generate verification code")
	}

	// Keep the phone on file in sync with the number the code went to
	if user.Phone == nil || *user.Phone != req.Phone {
		phone := req.Phone
		user.Phone = &phone
		user.PhoneVerified = false
		user.UpdatedAt = time.Now()

		if err := s.repo.User.Update(ctx, user); err != nil {
			s.log.Error("Failed to update phone",
				zap.Error(err), zap.String("user_id", userID.String()))
			return fmt.Errorf("failed to update phone")
		}
	}

	body := fmt.Sprintf("Your Shop Mkononi verification code is: %s. It expires in %d minutes.",
		codeValue, s.config.Verification.CodeExpiryMinutes)

	if err := s.sender.Send(req.Phone, body); err != nil {
		// SMS delivery failure is surfaced; the log-only sender never fails
		return fmt.Errorf("failed to send verification code")
	}

	s.log.Info("Verification code sent",
		zap.String("user_id", userID.String()),
		zap.Time("expires_at", expiresAt))

	return nil
}

// VerifyPhoneCode checks the submitted code against the stored one. The
// attempt counter is incremented atomically before the compare, so a 6th
// attempt fails even with the correct code.
func (s *verificationService) VerifyPhoneCode(ctx context.Context, userID uuid.UUID, req *request.VerifyPhoneCodeRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	code, err := s.repo.VerificationCode.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find verification code",
			zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to verify code")
	}
	if code == nil {
		return fmt.Errorf("no verification code found")
	}

	if code.Expired(time.Now()) {
		return fmt.Errorf("verification code has expired")
	}

	if code.Attempts >= s.config.Verification.MaxAttempts {
		return fmt.Errorf("too many failed attempts")
	}

	if _, err := s.repo.VerificationCode.IncrementAttempts(ctx, userID); err != nil {
		s.log.Error("Failed to increment attempts",
			zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to verify code")
	}

	if code.Code != req.Code {
		return fmt.Errorf("invalid verification code")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil || user == nil {
		s.log.Error("User not found for phone verification",
			zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("user not found")
	}

	user.PhoneVerified = true
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to mark phone verified",
			zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to verify phone")
	}

	// Consumed codes are deleted, not reusable
	if err := s.repo.VerificationCode.Delete(ctx, userID); err != nil {
		s.log.Warn("Failed to delete consumed verification code",
			zap.Error(err), zap.String("user_id", userID.String()))
	}

	s.log.Info("Phone verified", zap.String("user_id", userID.String()))
	return nil
}
