package domain

import "time"

// Product описывает товар каталога вместе с его вариациями и изображениями.
type Product struct {
	ID             int64
	Name           string
	Description    *string
	Brand          *string
	CategoryID     *int64
	PriceCents     int64 // Цена хранится в копейках
	SalePriceCents *int64
	IsActive       bool
	CreatedAt      time.Time

	Variations []Variation
	Images     []Image
}

func NewProduct(name string, description, brand *string, categoryID *int64, priceCents int64, salePriceCents *int64) *Product {
	return &Product{
		Name:           name,
		Description:    description,
		Brand:          brand,
		CategoryID:     categoryID,
		PriceCents:     priceCents,
		SalePriceCents: salePriceCents,
		IsActive:       true,
	}
}
