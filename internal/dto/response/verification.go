package response

import (
	"time"

	"shop-mkononi/internal/data/entity"
)

// VerificationReviewResponse exposes the identity documents to admins only.
// It is never returned on non-admin surfaces.
type VerificationReviewResponse struct {
	ID                 string                    `json:"id"`
	Email              string                    `json:"email"`
	Name               *string                   `json:"name,omitempty"`
	Phone              *string                   `json:"phone,omitempty"`
	Image              *string                   `json:"image,omitempty"`
	Role               entity.UserRole           `json:"role"`
	IDNumber           *string                   `json:"id_number,omitempty"`
	IDFrontImage       *string                   `json:"id_front_image,omitempty"`
	IDBackImage        *string                   `json:"id_back_image,omitempty"`
	SelfieImage        *string                   `json:"selfie_image,omitempty"`
	VerificationStatus entity.VerificationStatus `json:"verification_status"`
	VerificationNotes  *string                   `json:"verification_notes,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
}

func VerificationToReviewResponse(user *entity.User) VerificationReviewResponse {
	return VerificationReviewResponse{
		ID:                 user.ID.String(),
		Email:              user.Email,
		Name:               user.Name,
		Phone:              user.Phone,
		Image:              user.Image,
		Role:               user.Role,
		IDNumber:           user.IDNumber,
		IDFrontImage:       user.IDFrontImage,
		IDBackImage:        user.IDBackImage,
		SelfieImage:        user.SelfieImage,
		VerificationStatus: user.VerificationStatus,
		VerificationNotes:  user.VerificationNotes,
		CreatedAt:          user.CreatedAt,
	}
}
