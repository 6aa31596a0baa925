//go:generate goverter gen github.com/barberia-real/catalog-backend/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/barberia-real/catalog-backend/internal/domain"
	"github.com/barberia-real/catalog-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
// Связи (вариации, изображения) загружаются отдельными запросами и в модель не входят.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	// goverter:ignore Variations Images
	ToEntity(model *ProductModel) *domain.Product
}

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type CategoryConverter interface {
	ToModel(entity *domain.Category) *CategoryModel
	ToEntity(model *CategoryModel) *domain.Category
	ToArrEntity(models []*CategoryModel) []*domain.Category
}

// VariationConverter преобразует сущности Variation между domain и моделью PostgreSQL.
// goverter:converter
type VariationConverter interface {
	ToModel(entity *domain.Variation) *VariationModel
	ToEntity(model *VariationModel) *domain.Variation
}

// ImageConverter преобразует сущности Image между domain и моделью PostgreSQL.
// goverter:converter
type ImageConverter interface {
	ToModel(entity *domain.Image) *ImageModel
	ToEntity(model *ImageModel) *domain.Image
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOutBoxStatus
// goverter:extend ConvertOutboxEventType
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertOutBoxStatus(s usecase.OutboxStatus) usecase.OutboxStatus {
	return s
}

func ConvertOutboxEventType(t usecase.OutboxEventType) usecase.OutboxEventType {
	return t
}
