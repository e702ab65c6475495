package request

type ShopCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	CategoryID  *string `json:"categoryId,omitempty" validate:"omitempty,uuid"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=200"`
}

type ShopUpdateRequest struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description       *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	CategoryID        *string `json:"categoryId,omitempty" validate:"omitempty,uuid"`
	Location          *string `json:"location,omitempty" validate:"omitempty,max=200"`
	LogoURL           *string `json:"logoUrl,omitempty" validate:"omitempty,url"`
	BannerURL         *string `json:"bannerUrl,omitempty" validate:"omitempty,url"`
	PrimaryColor      *string `json:"primaryColor,omitempty" validate:"omitempty,max=20"`
	Theme             *string `json:"theme,omitempty" validate:"omitempty,max=50"`
	BuyerVerification *string `json:"buyerVerification,omitempty" validate:"omitempty,oneof=NONE ID PHONE"`
}
