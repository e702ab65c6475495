package response

import (
	"time"

	"shop-mkononi/internal/data/entity"
)

type ProductResponse struct {
	ID              string                  `json:"id"`
	ShopID          string                  `json:"shop_id"`
	Name            string                  `json:"name"`
	Description     *string                 `json:"description,omitempty"`
	Price           float64                 `json:"price"`
	Stock           int                     `json:"stock"`
	Condition       entity.ProductCondition `json:"condition"`
	DeliveryMethods []string                `json:"delivery_methods,omitempty"`
	Images          []string                `json:"images,omitempty"`
	Category        *CategoryResponse       `json:"category,omitempty"`
	AvgRating       float64                 `json:"avg_rating"`
	ReviewCount     int64                   `json:"review_count"`
	CreatedAt       time.Time               `json:"created_at"`
}

type ProductDetailResponse struct {
	ProductResponse
	Shop    *ShopResponse    `json:"shop,omitempty"`
	Reviews []ReviewResponse `json:"reviews,omitempty"`
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ProductToResponse(product *entity.Product, images []*entity.ProductImage, category *entity.Category, avgRating float64, reviewCount int64) ProductResponse {
	resp := ProductResponse{
		ID:              product.ID.String(),
		ShopID:          product.ShopID.String(),
		Name:            product.Name,
		Description:     product.Description,
		Price:           product.Price,
		Stock:           product.Stock,
		Condition:       product.Condition,
		DeliveryMethods: product.DeliveryMethods,
		AvgRating:       avgRating,
		ReviewCount:     reviewCount,
		CreatedAt:       product.CreatedAt,
	}

	for _, image := range images {
		resp.Images = append(resp.Images, image.URL)
	}

	if category != nil {
		c := CategoryToResponse(category)
		resp.Category = &c
	}

	return resp
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		UserID:    review.UserID.String(),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
