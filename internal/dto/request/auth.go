package request

type SignupRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Phone    string  `json:"phone" validate:"required,min=10,max=16"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProviderSignInRequest is the normalized identity handed over by the OAuth
// callback. The callback secret guards the endpoint, not the end user.
type ProviderSignInRequest struct {
	CallbackSecret string  `json:"callback_secret" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Name           *string `json:"name,omitempty"`
	Image          *string `json:"image,omitempty"`
}

type UpdateProfileRequest struct {
	Role            *string `json:"role,omitempty" validate:"omitempty,oneof=BUYER SELLER"`
	RequestedRole   *string `json:"requestedRole,omitempty" validate:"omitempty,oneof=SELLER"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,min=10,max=16"`
	CurrentPassword *string `json:"currentPassword,omitempty"`
	NewPassword     *string `json:"newPassword,omitempty" validate:"omitempty,min=8"`
}

type SendVerificationCodeRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type VerifyPhoneCodeRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}
