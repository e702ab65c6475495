package entity

import "time"

type UserRole string

const (
	RoleBuyer  UserRole = "BUYER"
	RoleSeller UserRole = "SELLER"
	RoleAdmin  UserRole = "ADMIN"
)

// ValidUserRole guards against loosely-typed role strings reaching the store
func ValidUserRole(role string) bool {
	switch UserRole(role) {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

func ValidVerificationStatus(status string) bool {
	switch VerificationStatus(status) {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

type User struct {
	BaseNoDelete
	Email              string             `db:"email"`
	PasswordHash       string             `db:"password"` // empty for provider-authenticated accounts
	Name               *string            `db:"name"`
	Phone              *string            `db:"phone"`
	Image              *string            `db:"image"`
	Role               UserRole           `db:"role"`
	RequestedRole      *UserRole          `db:"requested_role"`
	VerificationStatus VerificationStatus `db:"verification_status"`
	VerificationNotes  *string            `db:"verification_notes"`
	IDNumber           *string            `db:"id_number"`
	IDFrontImage       *string            `db:"id_front_image"`
	IDBackImage        *string            `db:"id_back_image"`
	SelfieImage        *string            `db:"selfie_image"`
	PhoneVerified      bool               `db:"phone_verified"`
	IsVerified         bool               `db:"is_verified"`
	VerifiedAt         *time.Time         `db:"verified_at"`
}

// HasPendingSellerApplication reports whether the user is waiting on a
// seller-role decision.
func (u *User) HasPendingSellerApplication() bool {
	return u.RequestedRole != nil &&
		*u.RequestedRole == RoleSeller &&
		u.VerificationStatus == VerificationPending
}
