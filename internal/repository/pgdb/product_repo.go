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
	"github.com/barberia-real/catalog-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
// Пишущие методы и точечные чтения работают в транзакции из контекста,
// выборки агрегатов — напрямую через пул.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

const productColumns = `id, name, description, brand, category_id, price_cents, sale_price_cents, is_active, created_at`

// Create вставляет товар. Нарушение уникальности имени транслируется в
// e.ErrProductNameTaken, нарушение FK категории — в e.ErrCategoryNotFound.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (name, description, brand, category_id, price_cents, sale_price_cents, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING ` + productColumns + `;
	`

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query,
		product.Name, product.Description, product.Brand,
		product.CategoryID, product.PriceCents, product.SalePriceCents,
	).Scan(
		&model.ID, &model.Name, &model.Description, &model.Brand, &model.CategoryID,
		&model.PriceCents, &model.SalePriceCents, &model.IsActive, &model.CreatedAt,
	)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: %w", whereami.WhereAmI(), e.ErrProductNameTaken)
		}
		if postgresFKViolation(err) {
			return nil, fmt.Errorf("%s: %w", whereami.WhereAmI(), e.ErrCategoryNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// GetByID возвращает товар без связей внутри текущей транзакции.
// Возвращает nil без ошибки, если записи нет.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1;`

	model, err := scanProduct(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// GetByName возвращает товар по точному совпадению имени (любой is_active).
// Возвращает nil без ошибки, если записи нет.
func (p *ProductRepo) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1;`

	model, err := scanProduct(tx.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// UpdateFields применяет частичное обновление скалярных полей товара.
func (p *ProductRepo) UpdateFields(ctx context.Context, id int64, fields *usecase.ProductFields) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

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
	if fields.Brand != nil {
		add("brand", *fields.Brand)
	}
	if fields.CategoryID != nil {
		add("category_id", *fields.CategoryID)
	}
	if fields.PriceCents != nil {
		add("price_cents", *fields.PriceCents)
	}
	if fields.SalePriceCents != nil {
		add("sale_price_cents", *fields.SalePriceCents)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d;", strings.Join(set, ", "), len(args))

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		if postgresDuplicate(err) {
			return fmt.Errorf("%s: %w", whereami.WhereAmI(), e.ErrProductNameTaken)
		}
		if postgresFKViolation(err) {
			return fmt.Errorf("%s: %w", whereami.WhereAmI(), e.ErrCategoryNotFound)
		}

		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Archive помечает товар неактивным (мягкое удаление).
func (p *ProductRepo) Archive(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, `UPDATE products SET is_active = FALSE WHERE id = $1;`, id); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetAggregate возвращает товар с вариациями и изображениями (независимо от
// is_active), изображения — по возрастанию display_order.
// Возвращает nil без ошибки, если записи нет.
func (p *ProductRepo) GetAggregate(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1;`

	model, err := scanProduct(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	product := p.conv.ToEntity(model)

	variations, err := p.loadVariations(ctx, []int64{id})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	product.Variations = variations[id]

	images, err := p.loadImages(ctx, []int64{id})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	product.Images = images[id]

	return product, nil
}

// GetActiveAggregates возвращает активные товары со связями,
// отсортированные по created_at по убыванию.
func (p *ProductRepo) GetActiveAggregates(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active = TRUE ORDER BY created_at DESC;`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		model, err := scanProduct(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		products = append(products, *p.conv.ToEntity(model))
		ids = append(ids, model.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if len(ids) == 0 {
		return products, nil
	}

	variations, err := p.loadVariations(ctx, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	images, err := p.loadImages(ctx, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	for i := range products {
		products[i].Variations = variations[products[i].ID]
		products[i].Images = images[products[i].ID]
	}

	return products, nil
}

// loadVariations загружает вариации для набора товаров одной выборкой.
func (p *ProductRepo) loadVariations(ctx context.Context, productIDs []int64) (map[int64][]domain.Variation, error) {
	query := `
		SELECT id, product_id, size, color
		FROM variations
		WHERE product_id = ANY($1)
		ORDER BY id;
	`

	rows, err := p.pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]domain.Variation, len(productIDs))
	for rows.Next() {
		var v domain.Variation
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Size, &v.Color); err != nil {
			return nil, err
		}

		result[v.ProductID] = append(result[v.ProductID], v)
	}

	return result, rows.Err()
}

// loadImages загружает изображения для набора товаров, display_order по возрастанию.
func (p *ProductRepo) loadImages(ctx context.Context, productIDs []int64) (map[int64][]domain.Image, error) {
	query := `
		SELECT id, product_id, image_url, storage_key, is_main, display_order
		FROM images
		WHERE product_id = ANY($1)
		ORDER BY display_order, id;
	`

	rows, err := p.pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]domain.Image, len(productIDs))
	for rows.Next() {
		var img domain.Image
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.StorageKey, &img.IsMain, &img.DisplayOrder); err != nil {
			return nil, err
		}

		result[img.ProductID] = append(result[img.ProductID], img)
	}

	return result, rows.Err()
}

// scanProduct считывает строку products в модель.
func scanProduct(row pgx.Row) (*converter.ProductModel, error) {
	var model converter.ProductModel
	err := row.Scan(
		&model.ID, &model.Name, &model.Description, &model.Brand, &model.CategoryID,
		&model.PriceCents, &model.SalePriceCents, &model.IsActive, &model.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}
