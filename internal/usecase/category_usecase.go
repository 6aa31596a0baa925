package usecase

import (
	"context"
	"strings"

	"github.com/barberia-real/catalog-backend/internal/domain"
	"github.com/barberia-real/catalog-backend/pkg/e"
	"github.com/barberia-real/catalog-backend/pkg/logger"
)

// CategoryUseCase реализует управление категориями.
// Все операции — одиночные запросы; ссылочную целостность (обнуление ссылок
// детей и товаров при удалении) обеспечивают FK-ограничения базы.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	logger       logger.Logger
}

func NewCategoryUC(categoryRepo CategoryRepository, logger logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create создаёт категорию. Уникальность имени гарантирует индекс,
// существование родителя — FK-ограничение.
func (c *CategoryUseCase) Create(ctx context.Context, req *CreateCategoryReq) (*domain.Category, error) {
	const op = "CategoryUseCase.Create"

	if strings.TrimSpace(req.Name) == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	displayOrder := int32(0)
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	}

	category, err := c.categoryRepo.Create(ctx, domain.NewCategory(
		req.Name, req.Description, req.ParentID, req.ImageURL, displayOrder,
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return category, nil
}

func (c *CategoryUseCase) GetAll(ctx context.Context) ([]domain.Category, error) {
	const op = "CategoryUseCase.GetAll"

	categories, err := c.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

func (c *CategoryUseCase) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	const op = "CategoryUseCase.GetByID"

	category, err := c.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if category == nil {
		return nil, e.Wrap(op, e.ErrCategoryNotFound)
	}

	return category, nil
}

// Update применяет частичное обновление категории.
func (c *CategoryUseCase) Update(ctx context.Context, id int64, req *UpdateCategoryReq) (*domain.Category, error) {
	const op = "CategoryUseCase.Update"

	fields := &CategoryFields{
		Name:         req.Name,
		Description:  req.Description,
		ParentID:     req.ParentID,
		ImageURL:     req.ImageURL,
		IsActive:     req.IsActive,
		DisplayOrder: req.DisplayOrder,
	}

	if !fields.Empty() {
		updated, err := c.categoryRepo.UpdateFields(ctx, id, fields)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		if !updated {
			return nil, e.Wrap(op, e.ErrCategoryNotFound)
		}
	}

	return c.GetByID(ctx, id)
}

// Remove жёстко удаляет категорию; ссылки детей и товаров обнуляются базой.
func (c *CategoryUseCase) Remove(ctx context.Context, id int64) error {
	const op = "CategoryUseCase.Remove"

	deleted, err := c.categoryRepo.Delete(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !deleted {
		return e.Wrap(op, e.ErrCategoryNotFound)
	}

	return nil
}
