package pgdb

import (
	"context"
	"errors"

	"github.com/barberia-real/catalog-backend/internal/domain"
	"github.com/barberia-real/catalog-backend/internal/repository/pgdb/converter"
	"github.com/barberia-real/catalog-backend/pkg/e"
	"github.com/barberia-real/catalog-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// VariationRepo реализует репозиторий вариаций поверх PostgreSQL.
// Все методы работают внутри транзакции из контекста.
type VariationRepo struct {
	pool *pgxpool.Pool
	conv converter.VariationConverter
}

func NewVariationRepo(pool *pgxpool.Pool, conv converter.VariationConverter) *VariationRepo {
	return &VariationRepo{
		pool: pool,
		conv: conv,
	}
}

func (v *VariationRepo) Create(ctx context.Context, variation *domain.Variation) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO variations (product_id, size, color)
		VALUES ($1, $2, $3)
		RETURNING id;
	`

	if err := tx.QueryRow(ctx, query, variation.ProductID, variation.Size, variation.Color).
		Scan(&variation.ID); err != nil {
		if postgresFKViolation(err) {
			return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetFirstByProductID возвращает первую по id вариацию товара.
// Возвращает nil без ошибки, если вариаций нет.
func (v *VariationRepo) GetFirstByProductID(ctx context.Context, productID int64) (*domain.Variation, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT id, product_id, size, color
		FROM variations
		WHERE product_id = $1
		ORDER BY id
		LIMIT 1;
	`

	var model converter.VariationModel
	err = tx.QueryRow(ctx, query, productID).
		Scan(&model.ID, &model.ProductID, &model.Size, &model.Color)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return v.conv.ToEntity(&model), nil
}

func (v *VariationRepo) Update(ctx context.Context, variation *domain.Variation) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `UPDATE variations SET size = $1, color = $2 WHERE id = $3;`

	if _, err := tx.Exec(ctx, query, variation.Size, variation.Color, variation.ID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteByProductID удаляет все вариации товара, возвращает число удалённых строк.
func (v *VariationRepo) DeleteByProductID(ctx context.Context, productID int64) (int64, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM variations WHERE product_id = $1;`, productID)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return result.RowsAffected(), nil
}
