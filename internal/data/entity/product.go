package entity

import "github.com/google/uuid"

type ProductCondition string

const (
	ConditionNew         ProductCondition = "NEW"
	ConditionUsed        ProductCondition = "USED"
	ConditionRefurbished ProductCondition = "REFURBISHED"
)

type Product struct {
	BaseNoDelete
	ShopID          uuid.UUID        `db:"shop_id"`
	CategoryID      *uuid.UUID       `db:"category_id"`
	Name            string           `db:"name"`
	Description     *string          `db:"description"`
	Price           float64          `db:"price"`
	Stock           int              `db:"stock"`
	Condition       ProductCondition `db:"condition"`
	DeliveryMethods []string         `db:"delivery_methods"`
	IsActive        bool             `db:"is_active"`
}

type ProductImage struct {
	BaseSimple
	ProductID uuid.UUID `db:"product_id"`
	URL       string    `db:"url"`
}
