package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/barberia-real/catalog-backend/internal/cfg"
	"github.com/barberia-real/catalog-backend/internal/domain"
	"github.com/barberia-real/catalog-backend/internal/repository/redis/converter"
	"github.com/barberia-real/catalog-backend/pkg/clients"
	"github.com/barberia-real/catalog-backend/pkg/e"
	"github.com/barberia-real/catalog-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"
)

type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProduct возвращает закэшированный агрегат товара; nil без ошибки при промахе.
func (r *CacheRepo) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	key := r.productKey(id)

	data, err := r.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if isCacheMiss(err) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := r.unmarshalProductFromCache(data)
	if err != nil {
		r.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, nil
	}

	if model.ID != id {
		r.logger.Warnf("Cache ID mismatch: key_id: %d, model_id: %d", id, model.ID)
		if err := r.client.Client.Del(context.Background(), key).Err(); err != nil {
			r.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil // cache miss
	}

	return r.conv.ToEntity(model), nil
}

// SetProduct кэширует агрегат товара с заданным TTL.
// Игнорирует ошибки сериализации/записи, логируя их.
func (r *CacheRepo) SetProduct(ctx context.Context, product *domain.Product) error {
	model := r.conv.ToRedisModel(product)

	data, err := r.marshalProductForCache(model)
	if err != nil {
		r.logger.Warnf("Failed to marshal product for caching (Product ID: %d): %v", model.ID, e.Wrap(whereami.WhereAmI(), err))
		return nil
	}

	if err := r.client.Client.Set(ctx, r.productKey(model.ID), data, r.cfg.ProductTTL).Err(); err != nil {
		r.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// DeleteProducts удаляет товары из кэша по ID.
func (r *CacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	keys := r.buildProductCacheKeys(ids)

	if err := r.client.Client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// marshalProductForCache сериализует товар в JSON для кэша.
func (r *CacheRepo) marshalProductForCache(model *converter.ProductRedisModel) ([]byte, error) {
	data, err := json.Marshal(model)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// unmarshalProductFromCache десериализует JSON из кэша в модель товара.
func (r *CacheRepo) unmarshalProductFromCache(data []byte) (*converter.ProductRedisModel, error) {
	var model converter.ProductRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	return &model, nil
}

// buildProductCacheKeys формирует Redis-ключи из ID товаров.
func (r *CacheRepo) buildProductCacheKeys(ids []int64) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.productKey(id)
	}

	return keys
}

// productKey возвращает Redis-ключ для одного товара.
func (r *CacheRepo) productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func isCacheMiss(err error) bool {
	return errors.Is(err, goredis.Nil)
}
