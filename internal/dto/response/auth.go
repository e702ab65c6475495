package response

import (
	"time"

	"shop-mkononi/internal/data/entity"
)

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse is the sanitized user record. Password hash and identity
// document references never leave through this type.
type UserResponse struct {
	ID                 string                    `json:"id"`
	Email              string                    `json:"email"`
	Name               *string                   `json:"name,omitempty"`
	Phone              *string                   `json:"phone,omitempty"`
	Image              *string                   `json:"image,omitempty"`
	Role               entity.UserRole           `json:"role"`
	RequestedRole      *entity.UserRole          `json:"requested_role,omitempty"`
	VerificationStatus entity.VerificationStatus `json:"verification_status"`
	PhoneVerified      bool                      `json:"phone_verified"`
	IsVerified         bool                      `json:"is_verified"`
	CreatedAt          time.Time                 `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                 user.ID.String(),
		Email:              user.Email,
		Name:               user.Name,
		Phone:              user.Phone,
		Image:              user.Image,
		Role:               user.Role,
		RequestedRole:      user.RequestedRole,
		VerificationStatus: user.VerificationStatus,
		PhoneVerified:      user.PhoneVerified,
		IsVerified:         user.IsVerified,
		CreatedAt:          user.CreatedAt,
	}
}
