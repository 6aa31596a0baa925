package pgdb

import (
	"context"

	"github.com/barberia-real/catalog-backend/internal/domain"
	"github.com/barberia-real/catalog-backend/internal/repository/pgdb/converter"
	"github.com/barberia-real/catalog-backend/pkg/e"
	"github.com/barberia-real/catalog-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ImageRepo реализует репозиторий записей изображений поверх PostgreSQL.
// Все методы работают внутри транзакции из контекста.
type ImageRepo struct {
	pool *pgxpool.Pool
	conv converter.ImageConverter
}

func NewImageRepo(pool *pgxpool.Pool, conv converter.ImageConverter) *ImageRepo {
	return &ImageRepo{
		pool: pool,
		conv: conv,
	}
}

func (i *ImageRepo) Create(ctx context.Context, image *domain.Image) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO images (product_id, image_url, storage_key, is_main, display_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`

	if err := tx.QueryRow(ctx, query,
		image.ProductID, image.ImageURL, image.StorageKey, image.IsMain, image.DisplayOrder,
	).Scan(&image.ID); err != nil {
		if postgresFKViolation(err) {
			return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// ListByProductID возвращает все изображения товара, display_order по возрастанию.
func (i *ImageRepo) ListByProductID(ctx context.Context, productID int64) ([]domain.Image, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT id, product_id, image_url, storage_key, is_main, display_order
		FROM images
		WHERE product_id = $1
		ORDER BY display_order, id;
	`

	rows, err := tx.Query(ctx, query, productID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	images := make([]domain.Image, 0)
	for rows.Next() {
		var model converter.ImageModel
		if err := rows.Scan(
			&model.ID, &model.ProductID, &model.ImageURL,
			&model.StorageKey, &model.IsMain, &model.DisplayOrder,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		images = append(images, *i.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return images, nil
}

// DeleteByProductID удаляет все записи изображений товара, возвращает число строк.
func (i *ImageRepo) DeleteByProductID(ctx context.Context, productID int64) (int64, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM images WHERE product_id = $1;`, productID)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return result.RowsAffected(), nil
}
