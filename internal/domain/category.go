package domain

import "time"

// Category описывает категорию товара.
// Категории образуют дерево: при удалении родителя ссылки детей обнуляются.
type Category struct {
	ID           int64
	Name         string
	Description  *string
	ParentID     *int64
	ImageURL     *string
	IsActive     bool
	DisplayOrder int32
	CreatedAt    time.Time
}

func NewCategory(name string, description *string, parentID *int64, imageURL *string, displayOrder int32) *Category {
	return &Category{
		Name:         name,
		Description:  description,
		ParentID:     parentID,
		ImageURL:     imageURL,
		IsActive:     true,
		DisplayOrder: displayOrder,
	}
}
