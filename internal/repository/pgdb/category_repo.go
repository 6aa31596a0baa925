package pgdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/barberia-real/catalog-backend/internal/domain"
	"github.com/barberia-real/catalog-backend/internal/repository/pgdb/converter"
	"github.com/barberia-real/catalog-backend/internal/usecase"
	"github.com/barberia-real/catalog-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
// Операции с категориями одиночные, поэтому работают напрямую через пул.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

const categoryColumns = `id, name, description, parent_id, image_url, is_active, display_order, created_at`

// Create вставляет категорию. Дубликат имени транслируется в
// e.ErrCategoryNameTaken, несуществующий родитель — в e.ErrCategoryNotFound.
func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		INSERT INTO categories (name, description, parent_id, image_url, is_active, display_order)
		VALUES ($1, $2, $3, $4, TRUE, $5)
		RETURNING ` + categoryColumns + `;
	`

	model, err := scanCategory(c.pool.QueryRow(ctx, query,
		category.Name, category.Description, category.ParentID, category.ImageURL, category.DisplayOrder,
	))
	if err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: %w", whereami.WhereAmI(), e.ErrCategoryNameTaken)
		}
		if postgresFKViolation(err) {
			return nil, fmt.Errorf("%s: %w", whereami.WhereAmI(), e.ErrCategoryNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(model), nil
}

// GetByID возвращает категорию; nil без ошибки, если записи нет.
func (c *CategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1;`

	model, err := scanCategory(c.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(model), nil
}

// GetAll возвращает все категории, display_order по возрастанию, затем имя.
func (c *CategoryRepo) GetAll(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY display_order, name;`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		model, err := scanCategory(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		categories = append(categories, *c.conv.ToEntity(model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return categories, nil
}

// UpdateFields применяет частичное обновление; false — записи нет.
func (c *CategoryRepo) UpdateFields(ctx context.Context, id int64, fields *usecase.CategoryFields) (bool, error) {
	set := make([]string, 0, 6)
	args := make([]any, 0, 7)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if fields.Name != nil {
		add("name", *fields.Name)
	}
	if fields.Description != nil {
		add("description", *fields.Description)
	}
	if fields.ParentID != nil {
		add("parent_id", *fields.ParentID)
	}
	if fields.ImageURL != nil {
		add("image_url", *fields.ImageURL)
	}
	if fields.IsActive != nil {
		add("is_active", *fields.IsActive)
	}
	if fields.DisplayOrder != nil {
		add("display_order", *fields.DisplayOrder)
	}

	if len(set) == 0 {
		return true, nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE categories SET %s WHERE id = $%d;", strings.Join(set, ", "), len(args))

	result, err := c.pool.Exec(ctx, query, args...)
	if err != nil {
		if postgresDuplicate(err) {
			return false, fmt.Errorf("%s: %w", whereami.WhereAmI(), e.ErrCategoryNameTaken)
		}
		if postgresFKViolation(err) {
			return false, fmt.Errorf("%s: %w", whereami.WhereAmI(), e.ErrCategoryNotFound)
		}

		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete жёстко удаляет категорию; ссылки детей и товаров обнуляет база
// (ON DELETE SET NULL). Возвращает false, если записи нет.
func (c *CategoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := c.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1;`, id)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return result.RowsAffected() > 0, nil
}

// scanCategory считывает строку categories в модель.
func scanCategory(row pgx.Row) (*converter.CategoryModel, error) {
	var model converter.CategoryModel
	err := row.Scan(
		&model.ID, &model.Name, &model.Description, &model.ParentID,
		&model.ImageURL, &model.IsActive, &model.DisplayOrder, &model.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}
