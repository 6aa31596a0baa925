package http

import (
	"time"

	"github.com/barberia-real/catalog-backend/internal/domain"
)

// ProductResponse — представление товара в ответах API.
// Цены отдаются десятичными строками с двумя знаками.
type ProductResponse struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	Brand       *string             `json:"brand"`
	CategoryID  *int64              `json:"category_id"`
	Price       string              `json:"price"`
	SalePrice   *string             `json:"sale_price"`
	IsActive    bool                `json:"is_active"`
	CreatedAt   time.Time           `json:"created_at"`
	Variations  []VariationResponse `json:"variations"`
	Images      []ImageResponse     `json:"images"`
}

type VariationResponse struct {
	ID    int64  `json:"id"`
	Size  string `json:"size"`
	Color string `json:"color"`
}

type ImageResponse struct {
	ID           int64  `json:"id"`
	ImageURL     string `json:"image_url"`
	IsMain       bool   `json:"is_main"`
	DisplayOrder int32  `json:"display_order"`
}

type CategoryResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	ParentID     *int64    `json:"parent_id"`
	ImageURL     *string   `json:"image_url"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int32     `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

func toProductResponse(product *domain.Product) *ProductResponse {
	variations := make([]VariationResponse, 0, len(product.Variations))
	for _, v := range product.Variations {
		variations = append(variations, VariationResponse{
			ID:    v.ID,
			Size:  v.Size,
			Color: v.Color,
		})
	}

	images := make([]ImageResponse, 0, len(product.Images))
	for _, img := range product.Images {
		images = append(images, ImageResponse{
			ID:           img.ID,
			ImageURL:     img.ImageURL,
			IsMain:       img.IsMain,
			DisplayOrder: img.DisplayOrder,
		})
	}

	return &ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Brand:       product.Brand,
		CategoryID:  product.CategoryID,
		Price:       renderPriceCents(product.PriceCents),
		SalePrice:   renderPriceCentsPtr(product.SalePriceCents),
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
		Variations:  variations,
		Images:      images,
	}
}

func toArrProductResponse(products []domain.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, *toProductResponse(&products[i]))
	}

	return result
}

func toCategoryResponse(category *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:           category.ID,
		Name:         category.Name,
		Description:  category.Description,
		ParentID:     category.ParentID,
		ImageURL:     category.ImageURL,
		IsActive:     category.IsActive,
		DisplayOrder: category.DisplayOrder,
		CreatedAt:    category.CreatedAt,
	}
}

func toArrCategoryResponse(categories []domain.Category) []CategoryResponse {
	result := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, *toCategoryResponse(&categories[i]))
	}

	return result
}
