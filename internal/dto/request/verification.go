package request

import "io"

// VerificationSubmission carries the identity documents parsed from the
// multipart form. All four fields are mandatory; the handler rejects the
// request before upload when any is missing.
type VerificationSubmission struct {
	IDNumber     string
	IDFrontImage io.Reader
	IDBackImage  io.Reader
	SelfieImage  io.Reader
}

func (s *VerificationSubmission) Complete() bool {
	return s.IDNumber != "" &&
		s.IDFrontImage != nil &&
		s.IDBackImage != nil &&
		s.SelfieImage != nil
}

// SellerApplication is a verification submission plus the contact phone the
// applicant wants on file.
type SellerApplication struct {
	VerificationSubmission
	Phone string
}

type DecisionRequest struct {
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type VerificationUpdateRequest struct {
	Status string  `json:"status" validate:"required,oneof=VERIFIED REJECTED"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}
