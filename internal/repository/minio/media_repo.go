package minio

import (
	"bytes"
	"context"

	"github.com/barberia-real/catalog-backend/internal/cfg"
	"github.com/barberia-real/catalog-backend/internal/domain"
	"github.com/barberia-real/catalog-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// MediaRepo реализует объектное хранилище медиа поверх MinIO.
type MediaRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewMediaRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *MediaRepo {
	return &MediaRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload загружает объект в MinIO и возвращает ключ.
func (m *MediaRepo) Upload(ctx context.Context, object *domain.MediaObject) (string, error) {
	reader := bytes.NewReader(object.Bytes)

	info, err := m.mc.PutObject(ctx, m.cfg.BucketName, object.ObjectKey, reader, *object.Size, minio.PutObjectOptions{
		ContentType: *object.MimeType,
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет объект из MinIO по указанному ключу.
func (m *MediaRepo) Delete(ctx context.Context, key string) error {
	if err := m.mc.RemoveObject(ctx, m.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
