//go:generate goverter gen github.com/barberia-real/catalog-backend/internal/repository/redis/converter

package converter

import (
	"time"

	"github.com/barberia-real/catalog-backend/internal/domain"
)

// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type ProductConverter interface {
	ToRedisModel(entity *domain.Product) *ProductRedisModel
	ToEntity(model *ProductRedisModel) *domain.Product
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}
