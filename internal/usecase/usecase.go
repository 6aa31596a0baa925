package usecase

import (
	"context"

	"github.com/barberia-real/catalog-backend/internal/domain"
)

type ProductUC interface {
	Create(ctx context.Context, req *CreateProductReq) (*domain.Product, error)
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, id int64, req *UpdateProductReq) (*domain.Product, error)
	Remove(ctx context.Context, id int64) error
}

type CategoryUC interface {
	Create(ctx context.Context, req *CreateCategoryReq) (*domain.Category, error)
	GetAll(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Update(ctx context.Context, id int64, req *UpdateCategoryReq) (*domain.Category, error)
	Remove(ctx context.Context, id int64) error
}
