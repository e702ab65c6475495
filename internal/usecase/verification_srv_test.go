package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"shop-mkononi/internal/data/entity"
	"shop-mkononi/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerificationService(t *testing.T) (VerificationService, *fakeUserRepo, *fakeCodeRepo, *fakeUploader, *fakeSender) {
	t.Helper()
	repo, users, _, codes := newTestRepository()
	uploader := &fakeUploader{}
	sender := &fakeSender{}
	service := NewVerificationService(repo, uploader, sender, testConfig(), testLogger())
	return service, users, codes, uploader, sender
}

func completeSubmission() *request.VerificationSubmission {
	return &request.VerificationSubmission{
		IDNumber:     "12345678",
		IDFrontImage: strings.NewReader("front"),
		IDBackImage:  strings.NewReader("back"),
		SelfieImage:  strings.NewReader("selfie"),
	}
}

func TestSubmitDocuments_SetsPendingAndStoresReferences(t *testing.T) {
	service, users, _, uploader, _ := newVerificationService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")
	user.VerificationStatus = entity.VerificationRejected

	err := service.SubmitDocuments(context.Background(), user.ID, completeSubmission())

	require.NoError(t, err)
	stored, _ := users.FindByID(context.Background(), user.ID)
	assert.Equal(t, entity.VerificationPending, stored.VerificationStatus)
	assert.Equal(t, entity.RoleBuyer, stored.Role)
	require.NotNil(t, stored.IDNumber)
	assert.Equal(t, "12345678", *stored.IDNumber)
	require.NotNil(t, stored.IDFrontImage)
	require.NotNil(t, stored.IDBackImage)
	require.NotNil(t, stored.SelfieImage)
	assert.Equal(t, []string{"ids/front", "ids/back", "selfies"}, uploader.uploads)
}

func TestSubmitDocuments_MissingFieldCausesNoMutation(t *testing.T) {
	service, users, _, uploader, _ := newVerificationService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")

	submission := completeSubmission()
	submission.SelfieImage = nil

	err := service.SubmitDocuments(context.Background(), user.ID, submission)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Empty(t, uploader.uploads)

	stored, _ := users.FindByID(context.Background(), user.ID)
	assert.Nil(t, stored.IDNumber)
	assert.Equal(t, entity.VerificationPending, stored.VerificationStatus)
}

func TestSubmitDocuments_UploadFailureSurfaces(t *testing.T) {
	service, users, _, uploader, _ := newVerificationService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")
	uploader.err = errFakeRepo

	err := service.SubmitDocuments(context.Background(), user.ID, completeSubmission())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload failed")
}

func TestApplyAsSeller_RecordsRequestedRole(t *testing.T) {
	service, users, _, _, _ := newVerificationService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")

	err := service.ApplyAsSeller(context.Background(), user.ID, &request.SellerApplication{
		VerificationSubmission: *completeSubmission(),
		Phone:                  "+254712345678",
	})

	require.NoError(t, err)
	stored, _ := users.FindByID(context.Background(), user.ID)
	require.NotNil(t, stored.RequestedRole)
	assert.Equal(t, entity.RoleSeller, *stored.RequestedRole)
	assert.Equal(t, entity.VerificationPending, stored.VerificationStatus)
	assert.Equal(t, entity.RoleBuyer, stored.Role)
	assert.True(t, stored.HasPendingSellerApplication())
}

func TestApplyAsSeller_PhoneTakenByAnotherUser(t *testing.T) {
	service, users, _, _, _ := newVerificationService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")
	seedUser(users, "bob@example.com", "password123", "+254700000000")

	err := service.ApplyAsSeller(context.Background(), user.ID, &request.SellerApplication{
		VerificationSubmission: *completeSubmission(),
		Phone:                  "+254700000000",
	})

	assert.EqualError(t, err, "phone already in use")
}

func TestSendPhoneCode_StoresCodeWithExpiryWindow(t *testing.T) {
	service, users, codes, _, sender := newVerificationService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")

	err := service.SendPhoneCode(context.Background(), user.ID, &request.SendVerificationCodeRequest{
		Phone: "+254712345678",
	})

	require.NoError(t, err)
	code, _ := codes.FindByUserID(context.Background(), user.ID)
	require.NotNil(t, code)
	assert.Len(t, code.Code, 6)
	assert.Zero(t, code.Attempts)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), code.ExpiresAt, 5*time.Second)

	require.Len(t, sender.to, 1)
	assert.Equal(t, "+254712345678", sender.to[0])
	assert.Contains(t, sender.messages[0], code.Code)
}

func TestSendPhoneCode_NewNumberResetsVerifiedFlag(t *testing.T) {
	service, users, _, _, _ := newVerificationService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")
	user.PhoneVerified = true

	err := service.SendPhoneCode(context.Background(), user.ID, &request.SendVerificationCodeRequest{
		Phone: "+254700000001",
	})

	require.NoError(t, err)
	stored, _ := users.FindByID(context.Background(), user.ID)
	assert.False(t, stored.PhoneVerified)
	assert.Equal(t, "+254700000001", *stored.Phone)
}

func TestSendPhoneCode_ResendReplacesCodeAndResetsAttempts(t *testing.T) {
	service, users, codes, _, _ := newVerificationService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")

	req := &request.SendVerificationCodeRequest{Phone: "+254712345678"}
	require.NoError(t, service.SendPhoneCode(context.Background(), user.ID, req))

	codes.codes[user.ID].Attempts = 3
	first := codes.codes[user.ID].Code

	require.NoError(t, service.SendPhoneCode(context.Background(), user.ID, req))

	code, _ := codes.FindByUserID(context.Background(), user.ID)
	assert.Zero(t, code.Attempts)
	// a fresh code replaces the old one; equality is possible but vanishing
	_ = first
}

func TestVerifyPhoneCode_Success(t *testing.T) {
	service, users, codes, _, _ := newVerificationService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")

	require.NoError(t, service.SendPhoneCode(context.Background(), user.ID,
		&request.SendVerificationCodeRequest{Phone: "+254712345678"}))
	code := codes.codes[user.ID].Code

	err := service.VerifyPhoneCode(context.Background(), user.ID, &request.VerifyPhoneCodeRequest{
		Code: code,
	})

	require.NoError(t, err)
	stored, _ := users.FindByID(context.Background(), user.ID)
	assert.True(t, stored.PhoneVerified)

	// consumed code is gone; a replay fails
	remaining, _ := codes.FindByUserID(context.Background(), user.ID)
	assert.Nil(t, remaining)
}

func TestVerifyPhoneCode_NoCodeIssued(t *testing.T) {
	service, users, _, _, _ := newVerificationService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")

	err := service.VerifyPhoneCode(context.Background(), user.ID, &request.VerifyPhoneCodeRequest{
		Code: "123456",
	})

	assert.EqualError(t, err, "no verification code found")
}

func TestVerifyPhoneCode_ExpiredCodeFailsEvenWhenCorrect(t *testing.T) {
	service, users, codes, _, _ := newVerificationService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")

	require.NoError(t, service.SendPhoneCode(context.Background(), user.ID,
		&request.SendVerificationCodeRequest{Phone: "+254712345678"}))

	stored := codes.codes[user.ID]
	stored.ExpiresAt = time.Now().Add(-time.Minute)

	err := service.VerifyPhoneCode(context.Background(), user.ID, &request.VerifyPhoneCodeRequest{
		Code: stored.Code,
	})

	assert.EqualError(t, err, "verification code has expired")
}

func TestVerifyPhoneCode_WrongCodeIncrementsAttempts(t *testing.T) {
	service, users, codes, _, _ := newVerificationService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")

	require.NoError(t, service.SendPhoneCode(context.Background(), user.ID,
		&request.SendVerificationCodeRequest{Phone: "+254712345678"}))

	err := service.VerifyPhoneCode(context.Background(), user.ID, &request.VerifyPhoneCodeRequest{
		Code: "000000",
	})

	assert.EqualError(t, err, "invalid verification code")
	assert.Equal(t, 1, codes.codes[user.ID].Attempts)
}

func TestVerifyPhoneCode_SixthAttemptFailsWithCorrectCode(t *testing.T) {
	service, users, codes, _, _ := newVerificationService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")

	require.NoError(t, service.SendPhoneCode(context.Background(), user.ID,
		&request.SendVerificationCodeRequest{Phone: "+254712345678"}))

	wrong := "000000"
	if codes.codes[user.ID].Code == wrong {
		wrong = "000001"
	}

	for i := 0; i < 5; i++ {
		err := service.VerifyPhoneCode(context.Background(), user.ID, &request.VerifyPhoneCodeRequest{
			Code: wrong,
		})
		assert.EqualError(t, err, "invalid verification code")
	}

	err := service.VerifyPhoneCode(context.Background(), user.ID, &request.VerifyPhoneCodeRequest{
		Code: codes.codes[user.ID].Code,
	})

	assert.EqualError(t, err, "too many failed attempts")
	stored, _ := users.FindByID(context.Background(), user.ID)
	assert.False(t, stored.PhoneVerified)
}
