package request

type ProductCreateRequest struct {
	ShopID          string   `json:"shopId" validate:"required,uuid"`
	CategoryID      *string  `json:"categoryId,omitempty" validate:"omitempty,uuid"`
	Name            string   `json:"name" validate:"required,min=2,max=200"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price           float64  `json:"price" validate:"required,gt=0"`
	Stock           int      `json:"stock" validate:"gte=0"`
	Condition       string   `json:"condition" validate:"required,oneof=NEW USED REFURBISHED"`
	DeliveryMethods []string `json:"deliveryMethods" validate:"omitempty,dive,max=50"`
	Images          []string `json:"images" validate:"omitempty,dive,url"`
}

type ProductUpdateRequest struct {
	CategoryID      *string  `json:"categoryId,omitempty" validate:"omitempty,uuid"`
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock           *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Condition       *string  `json:"condition,omitempty" validate:"omitempty,oneof=NEW USED REFURBISHED"`
	DeliveryMethods []string `json:"deliveryMethods,omitempty" validate:"omitempty,dive,max=50"`
}

type ReviewRequest struct {
	Rating  int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}
