package usecase

import (
	"context"

	"github.com/barberia-real/catalog-backend/internal/domain"
)

// ProductRepository — хранилище товаров.
// Методы Create, GetByID, GetByName, UpdateFields и Archive работают внутри
// транзакции из контекста; выборки агрегатов идут напрямую через пул.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	UpdateFields(ctx context.Context, id int64, fields *ProductFields) error
	Archive(ctx context.Context, id int64) error

	GetAggregate(ctx context.Context, id int64) (*domain.Product, error)
	GetActiveAggregates(ctx context.Context) ([]domain.Product, error)
}

// VariationRepository — хранилище вариаций, все методы транзакционные.
type VariationRepository interface {
	Create(ctx context.Context, variation *domain.Variation) error
	GetFirstByProductID(ctx context.Context, productID int64) (*domain.Variation, error)
	Update(ctx context.Context, variation *domain.Variation) error
	DeleteByProductID(ctx context.Context, productID int64) (int64, error)
}

// ImageRepository — хранилище записей об изображениях, все методы транзакционные.
type ImageRepository interface {
	Create(ctx context.Context, image *domain.Image) error
	ListByProductID(ctx context.Context, productID int64) ([]domain.Image, error)
	DeleteByProductID(ctx context.Context, productID int64) (int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetAll(ctx context.Context) ([]domain.Category, error)
	UpdateFields(ctx context.Context, id int64, fields *CategoryFields) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	DeleteProducts(ctx context.Context, ids []int64) error
}
