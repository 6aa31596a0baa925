package converter

import (
	"time"

	"github.com/barberia-real/catalog-backend/internal/usecase"
)

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID             int64      `db:"id"`
	Name           string     `db:"name"`
	Description    *string    `db:"description"`
	Brand          *string    `db:"brand"`
	CategoryID     *int64     `db:"category_id"`
	PriceCents     int64      `db:"price_cents"`
	SalePriceCents *int64     `db:"sale_price_cents"`
	IsActive       bool       `db:"is_active"`
	CreatedAt      time.Time  `db:"created_at"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Description  *string   `db:"description"`
	ParentID     *int64    `db:"parent_id"`
	ImageURL     *string   `db:"image_url"`
	IsActive     bool      `db:"is_active"`
	DisplayOrder int32     `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
}

// VariationModel представляет запись таблицы variations в PostgreSQL.
type VariationModel struct {
	ID        int64  `db:"id"`
	ProductID int64  `db:"product_id"`
	Size      string `db:"size"`
	Color     string `db:"color"`
}

// ImageModel представляет запись таблицы images в PostgreSQL.
type ImageModel struct {
	ID           int64   `db:"id"`
	ProductID    int64   `db:"product_id"`
	ImageURL     string  `db:"image_url"`
	StorageKey   *string `db:"storage_key"`
	IsMain       bool    `db:"is_main"`
	DisplayOrder int32   `db:"display_order"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64                   `db:"id"`
	EventID     string                  `db:"event_id"`
	EventType   usecase.OutboxEventType `db:"event_type"`
	ProductID   int64                   `db:"product_id"`
	Payload     []byte                  `db:"payload"`
	Status      usecase.OutboxStatus    `db:"status"`
	CreatedAt   time.Time               `db:"created_at"`
	ProcessedAt *time.Time              `db:"processed_at"`
}
