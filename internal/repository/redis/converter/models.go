package converter

import "time"

type ProductRedisModel struct {
	ID             int64                 `json:"id"`
	Name           string                `json:"name"`
	Description    *string               `json:"description"`
	Brand          *string               `json:"brand"`
	CategoryID     *int64                `json:"category_id"`
	PriceCents     int64                 `json:"price_cents"`
	SalePriceCents *int64                `json:"sale_price_cents"`
	IsActive       bool                  `json:"is_active"`
	CreatedAt      time.Time             `json:"created_at"`
	Variations     []VariationRedisModel `json:"variations"`
	Images         []ImageRedisModel     `json:"images"`
}

type VariationRedisModel struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type ImageRedisModel struct {
	ID           int64   `json:"id"`
	ProductID    int64   `json:"product_id"`
	ImageURL     string  `json:"image_url"`
	StorageKey   *string `json:"storage_key"`
	IsMain       bool    `json:"is_main"`
	DisplayOrder int32   `json:"display_order"`
}
