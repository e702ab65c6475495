package usecase

import (
	"context"
	"testing"
	"time"

	"shop-mkononi/internal/data/entity"
	"shop-mkononi/internal/dto/request"
	"shop-mkononi/pkg/token"
	"shop-mkononi/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (AuthService, *fakeUserRepo) {
	t.Helper()
	repo, users, _, _ := newTestRepository()
	config := testConfig()
	tokens := token.NewManager(config.Session.Secret, config.Session.ExpiryDays, config.Session.CookieName)
	return NewAuthService(repo, tokens, config, testLogger()), users
}

func seedUser(users *fakeUserRepo, email, password, phone string) *entity.User {
	hashed, _ := utils.HashPassword(password)
	now := time.Now()
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:              email,
		PasswordHash:       hashed,
		Phone:              &phone,
		Role:               entity.RoleBuyer,
		VerificationStatus: entity.VerificationPending,
	}
	users.users[user.ID] = user
	return user
}

func TestSignup_CreatesBuyerWithPendingStatus(t *testing.T) {
	service, users := newAuthService(t)

	resp, err := service.Signup(context.Background(), &request.SignupRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Phone:    "+254712345678",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleBuyer, resp.Role)
	assert.Equal(t, entity.VerificationPending, resp.VerificationStatus)
	assert.False(t, resp.IsVerified)

	stored, err := users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleBuyer, stored.Role)
	assert.NotEqual(t, "password123", stored.PasswordHash)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	service, users := newAuthService(t)
	seedUser(users, "alice@example.com", "password123", "+254712345678")

	_, err := service.Signup(context.Background(), &request.SignupRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Phone:    "+254700000000",
	})

	assert.EqualError(t, err, "email already registered")
}

func TestSignup_DuplicatePhone(t *testing.T) {
	service, users := newAuthService(t)
	seedUser(users, "alice@example.com", "password123", "+254712345678")

	_, err := service.Signup(context.Background(), &request.SignupRequest{
		Email:    "bob@example.com",
		Password: "password123",
		Phone:    "+254712345678",
	})

	assert.EqualError(t, err, "phone already in use")
}

func TestSignup_InvalidPhone(t *testing.T) {
	service, _ := newAuthService(t)

	_, err := service.Signup(context.Background(), &request.SignupRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Phone:    "not-a-phone-no",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestSignin_Success(t *testing.T) {
	service, users := newAuthService(t)
	seedUser(users, "alice@example.com", "password123", "+254712345678")

	auth, err := service.Signin(context.Background(), &request.SigninRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, "alice@example.com", auth.User.Email)
}

func TestSignin_WrongPassword(t *testing.T) {
	service, users := newAuthService(t)
	seedUser(users, "alice@example.com", "password123", "+254712345678")

	_, err := service.Signin(context.Background(), &request.SigninRequest{
		Email:    "alice@example.com",
		Password: "wrongpassword",
	})

	assert.EqualError(t, err, "invalid credentials")
}

func TestSignin_UnknownEmail(t *testing.T) {
	service, _ := newAuthService(t)

	_, err := service.Signin(context.Background(), &request.SigninRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})

	assert.EqualError(t, err, "invalid credentials")
}

func TestSignin_ProviderAccountHasNoPassword(t *testing.T) {
	service, users := newAuthService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")
	user.PasswordHash = ""

	_, err := service.Signin(context.Background(), &request.SigninRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})

	assert.EqualError(t, err, "invalid credentials")
}

func TestSignin_RepositoryFailure(t *testing.T) {
	service, users := newAuthService(t)
	users.err = errFakeRepo

	_, err := service.Signin(context.Background(), &request.SigninRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})

	assert.EqualError(t, err, "failed to find user")
}

func TestProviderSignIn_CreatesAccountOnFirstSignIn(t *testing.T) {
	service, users := newAuthService(t)

	auth, err := service.ProviderSignIn(context.Background(), &request.ProviderSignInRequest{
		CallbackSecret: "callback-secret",
		Email:          "alice@example.com",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)

	stored, err := users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleBuyer, stored.Role)
	assert.Empty(t, stored.PasswordHash)
}

func TestProviderSignIn_BadCallbackSecret(t *testing.T) {
	service, _ := newAuthService(t)

	_, err := service.ProviderSignIn(context.Background(), &request.ProviderSignInRequest{
		CallbackSecret: "wrong",
		Email:          "alice@example.com",
	})

	assert.EqualError(t, err, "invalid credentials")
}

func TestUpdateProfile_SamePhoneTwiceIsNotAConflict(t *testing.T) {
	service, users := newAuthService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")

	phone := "+254712345678"
	for i := 0; i < 2; i++ {
		_, err := service.UpdateProfile(context.Background(), user.ID, &request.UpdateProfileRequest{
			Phone: &phone,
		})
		require.NoError(t, err)
	}
}

func TestUpdateProfile_PhoneTakenByAnotherUser(t *testing.T) {
	service, users := newAuthService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")
	seedUser(users, "bob@example.com", "password123", "+254700000000")

	phone := "+254700000000"
	_, err := service.UpdateProfile(context.Background(), user.ID, &request.UpdateProfileRequest{
		Phone: &phone,
	})

	assert.EqualError(t, err, "phone already in use")
}

func TestUpdateProfile_PhoneChangeResetsVerifiedFlag(t *testing.T) {
	service, users := newAuthService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")
	user.PhoneVerified = true

	phone := "+254700000001"
	_, err := service.UpdateProfile(context.Background(), user.ID, &request.UpdateProfileRequest{
		Phone: &phone,
	})

	require.NoError(t, err)
	stored, _ := users.FindByID(context.Background(), user.ID)
	assert.False(t, stored.PhoneVerified)
	assert.Equal(t, phone, *stored.Phone)
}

func TestUpdateProfile_PasswordChangeRequiresCurrentPassword(t *testing.T) {
	service, users := newAuthService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")

	wrong := "wrongpassword"
	newPassword := "newpassword1"
	_, err := service.UpdateProfile(context.Background(), user.ID, &request.UpdateProfileRequest{
		CurrentPassword: &wrong,
		NewPassword:     &newPassword,
	})

	assert.EqualError(t, err, "current password is incorrect")
}

func TestUpdateProfile_RequestedRoleIsRecorded(t *testing.T) {
	service, users := newAuthService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")

	requested := "SELLER"
	auth, err := service.UpdateProfile(context.Background(), user.ID, &request.UpdateProfileRequest{
		RequestedRole: &requested,
	})

	require.NoError(t, err)
	stored, _ := users.FindByID(context.Background(), user.ID)
	require.NotNil(t, stored.RequestedRole)
	assert.Equal(t, entity.RoleSeller, *stored.RequestedRole)
	// role itself does not change until an admin approves
	assert.Equal(t, entity.RoleBuyer, stored.Role)
	require.NotNil(t, auth.User.RequestedRole)
}

func TestUpdateProfile_CannotSelfPromoteToSeller(t *testing.T) {
	service, users := newAuthService(t)
	user := seedUser(users, "alice@example.com", "password123", "+254712345678")

	role := "SELLER"
	_, err := service.UpdateProfile(context.Background(), user.ID, &request.UpdateProfileRequest{
		Role: &role,
	})

	require.NoError(t, err)
	stored, _ := users.FindByID(context.Background(), user.ID)
	assert.Equal(t, entity.RoleBuyer, stored.Role)
}
