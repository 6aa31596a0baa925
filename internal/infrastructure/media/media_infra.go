package media

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/barberia-real/catalog-backend/internal/cfg"
	"github.com/barberia-real/catalog-backend/internal/domain"
	"github.com/barberia-real/catalog-backend/internal/infrastructure"
	"github.com/barberia-real/catalog-backend/internal/usecase"
	"github.com/barberia-real/catalog-backend/pkg/e"
	"github.com/barberia-real/catalog-backend/pkg/jitter"
	"github.com/barberia-real/catalog-backend/pkg/logger"

	"github.com/google/uuid"
)

// ObjectStorage — объектное хранилище, в которое инфраструктура складывает медиа.
type ObjectStorage interface {
	Upload(ctx context.Context, object *domain.MediaObject) (string, error)
	Delete(ctx context.Context, key string) error
}

// MediaInfrastructure управляет загрузкой и компенсационной очисткой
// изображений в объектном хранилище.
type MediaInfrastructure struct {
	storage     ObjectStorage
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewMediaInfrastructure(storage ObjectStorage, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MediaInfrastructure {
	return &MediaInfrastructure{
		storage:     storage,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
		wg:          sync.WaitGroup{},
	}
}

// UploadImage загружает изображение товара и возвращает ключ объекта
// вместе с публичным URL. Ключ уникален за счёт UUID, поэтому повторная
// загрузка того же файла не перетирает предыдущий объект.
func (m *MediaInfrastructure) UploadImage(ctx context.Context, req *usecase.UploadImageReq) (*usecase.UploadImageRes, error) {
	const op = "MediaInfrastructure.UploadImage"

	imageID := uuid.NewString()
	ext, err := infrastructure.GetExtensionFromMIME(req.File.MimeType)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid mime type %s for %s: %w", op, req.File.MimeType, req.File.Name, err)
	}

	objKey := fmt.Sprintf("%s/%s-%s.%s", req.ProductName, req.File.Name, imageID, ext)
	object := domain.NewMediaObject(imageID, m.cfg.BucketName, objKey, req.File.Data, &req.File.Size, &req.File.MimeType)

	key, err := m.storage.Upload(ctx, object)
	if err != nil {
		return nil, fmt.Errorf("%s: upload %s failed: %v: %w", op, req.File.Name, err, e.ErrUploadFailed)
	}

	return usecase.NewUploadImageRes(key, m.cfg.PublicBaseURL+"/"+key), nil
}

// DeleteObject синхронно удаляет объект по ключу.
func (m *MediaInfrastructure) DeleteObject(ctx context.Context, key string) error {
	const op = "MediaInfrastructure.DeleteObject"

	if err := m.storage.Delete(ctx, key); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// CleanupObjects запускает фоновую очистку указанных ключей хранилища.
// Используется как компенсация после отката транзакции, оставившего
// загруженные объекты без строк в базе.
func (m *MediaInfrastructure) CleanupObjects(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys удаляет указанные объекты с экспоненциальной задержкой и jitter.
func (m *MediaInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done() // сигнализируем завершение компенсации
	const op = "MediaInfrastructure.cleanupUploadedKeys"
	m.logger.Infof("%s: Cleaning up uploaded keys", op)

	// Контекст с таймаутом на основе shutdownCtx
	ctx, cancel := context.WithTimeout(m.shutdownCtx, 30*time.Second)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < 3; attempt++ {
			if err := m.storage.Delete(ctx, key); err == nil {
				break // Успешно удалено
			}

			select {
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			default:
			}

			if attempt < 2 {
				sleepTime := jitter.ExponentialBackoff(time.Second, 10*time.Second, attempt, jitter.DefaultJitter)

				select {
				case <-time.After(sleepTime):
				case <-ctx.Done():
					m.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
					return
				}
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MediaInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("media cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
