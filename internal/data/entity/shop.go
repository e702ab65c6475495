package entity

import "github.com/google/uuid"

type BuyerVerification string

const (
	BuyerVerificationNone  BuyerVerification = "NONE"
	BuyerVerificationID    BuyerVerification = "ID"
	BuyerVerificationPhone BuyerVerification = "PHONE"
)

func ValidBuyerVerification(v string) bool {
	switch BuyerVerification(v) {
	case BuyerVerificationNone, BuyerVerificationID, BuyerVerificationPhone:
		return true
	}
	return false
}

type Shop struct {
	BaseNoDelete
	Slug              string            `db:"slug"`
	Name              string            `db:"name"`
	Description       *string           `db:"description"`
	CategoryID        *uuid.UUID        `db:"category_id"`
	Location          *string           `db:"location"`
	SellerID          uuid.UUID         `db:"seller_id"`
	LogoURL           *string           `db:"logo_url"`
	BannerURL         *string           `db:"banner_url"`
	PrimaryColor      *string           `db:"primary_color"`
	Theme             *string           `db:"theme"`
	BuyerVerification BuyerVerification `db:"buyer_verification"`
	IsActive          bool              `db:"is_active"`
}
