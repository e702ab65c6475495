package response

import (
	"time"

	"shop-mkononi/internal/data/entity"
)

type SellerSummary struct {
	ID         string  `json:"id"`
	Name       *string `json:"name,omitempty"`
	IsVerified bool    `json:"is_verified"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func CategoryToResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:   category.ID.String(),
		Name: category.Name,
		Slug: category.Slug,
	}
}

type ShopResponse struct {
	ID                string                   `json:"id"`
	Slug              string                   `json:"slug"`
	Name              string                   `json:"name"`
	Description       *string                  `json:"description,omitempty"`
	Location          *string                  `json:"location,omitempty"`
	LogoURL           *string                  `json:"logo_url,omitempty"`
	BannerURL         *string                  `json:"banner_url,omitempty"`
	PrimaryColor      *string                  `json:"primary_color,omitempty"`
	Theme             *string                  `json:"theme,omitempty"`
	BuyerVerification entity.BuyerVerification `json:"buyer_verification"`
	Category          *CategoryResponse        `json:"category,omitempty"`
	Seller            *SellerSummary           `json:"seller,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
}

type ShopDetailResponse struct {
	ShopResponse
	Products []ProductResponse `json:"products"`
}

func ShopToResponse(shop *entity.Shop, category *entity.Category, seller *entity.User) ShopResponse {
	resp := ShopResponse{
		ID:                shop.ID.String(),
		Slug:              shop.Slug,
		Name:              shop.Name,
		Description:       shop.Description,
		Location:          shop.Location,
		LogoURL:           shop.LogoURL,
		BannerURL:         shop.BannerURL,
		PrimaryColor:      shop.PrimaryColor,
		Theme:             shop.Theme,
		BuyerVerification: shop.BuyerVerification,
		CreatedAt:         shop.CreatedAt,
	}

	if category != nil {
		c := CategoryToResponse(category)
		resp.Category = &c
	}

	if seller != nil {
		resp.Seller = &SellerSummary{
			ID:         seller.ID.String(),
			Name:       seller.Name,
			IsVerified: seller.IsVerified,
		}
	}

	return resp
}
