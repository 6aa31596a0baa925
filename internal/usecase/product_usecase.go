package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/barberia-real/catalog-backend/internal/domain"
	"github.com/barberia-real/catalog-backend/pkg/e"
	"github.com/barberia-real/catalog-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductUseCase реализует бизнес-логику управления товарами каталога.
// Каждая пишущая операция — одна транзакция; загрузка изображения во внешнее
// хранилище выполняется внутри критической секции, а осиротевшие после отката
// объекты зачищаются фоновой компенсацией.
type ProductUseCase struct {
	productRepo   ProductRepository
	variationRepo VariationRepository
	imageRepo     ImageRepository
	outboxRepo    OutboxRepository
	dbPool        transaction.Transactional
	mediaInfra    MediaInfra
	cacheRepo     CacheRepository
	logger        logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	variationRepo VariationRepository,
	imageRepo ImageRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	mediaInfra MediaInfra,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:   productRepo,
		variationRepo: variationRepo,
		imageRepo:     imageRepo,
		outboxRepo:    outboxRepo,
		dbPool:        dbPool,
		mediaInfra:    mediaInfra,
		cacheRepo:     cacheRepo,
		logger:        logger,
	}
}

// Create создаёт товар вместе с вариацией и главным изображением в одной транзакции.
// Без файла товар создаётся с пустым списком изображений.
func (p *ProductUseCase) Create(ctx context.Context, req *CreateProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.Create"

	var err error
	if err = p.validateCreate(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	var uploaded *UploadImageRes

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции
	// и зачистка уже загруженного изображения
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			if uploaded != nil {
				p.logger.Warnf(
					"Cleaning up orphaned image after transaction failure. product_name: %s, error: %v",
					req.Name,
					e.Wrap(op, err),
				)

				p.mediaInfra.CleanupObjects([]string{uploaded.ObjectKey})
			}
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// Проверка имени — оптимизация; источником истины остаётся уникальный индекс,
	// гонку между проверкой и вставкой ловит маппинг 23505 в репозитории
	var existing *domain.Product
	existing, err = p.productRepo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if existing != nil {
		err = e.ErrProductNameTaken
		return nil, e.Wrap(op, err)
	}

	var product *domain.Product
	product, err = p.productRepo.Create(ctx, domain.NewProduct(
		req.Name, req.Description, req.Brand, req.CategoryID, req.PriceCents, req.SalePriceCents,
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if req.MainImage != nil {
		uploaded, err = p.mediaInfra.UploadImage(ctx, NewUploadImageReq(req.Name, *req.MainImage))
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		if err = p.imageRepo.Create(ctx, domain.NewMainImage(product.ID, uploaded.URL, uploaded.ObjectKey)); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	// Ровно одна вариация из пары размер/цвет
	if err = p.variationRepo.Create(ctx, domain.NewVariation(product.ID, req.Size, req.Color)); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = p.writeEvent(ctx, ProductCreated, product.ID, product.Name); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidateCache(ctx, product.ID)

	result, ferr := p.GetByID(ctx, product.ID)
	if ferr != nil {
		return nil, e.Wrap(op, ferr)
	}

	return result, nil
}

// GetAll возвращает все активные товары с вариациями и изображениями,
// отсортированные по дате создания по убыванию.
func (p *ProductUseCase) GetAll(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductUseCase.GetAll"

	products, err := p.productRepo.GetActiveAggregates(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// GetByID возвращает товар по идентификатору независимо от флага активности.
// Читает сквозь кэш; промах заполняется фоновой горутиной с таймаутом.
func (p *ProductUseCase) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "ProductUseCase.GetByID"

	cached, err := p.cacheRepo.GetProduct(ctx, id)
	if err != nil {
		p.logger.Warnf("Product cache read failed: %v", e.Wrap(op, err))
	}
	if cached != nil {
		return cached, nil
	}

	product, err := p.productRepo.GetAggregate(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if product == nil {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	// Фоновое добавление товара в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := p.cacheRepo.SetProduct(bgCtx, product); err != nil {
			p.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return product, nil
}

// Update атомарно применяет частичное обновление товара.
// Новый файл заменяет весь набор изображений: для каждой удаляемой записи с ключом
// выполняется best-effort удаление из медиа-хранилища, затем загружается и
// вставляется единственное новое главное изображение.
func (p *ProductUseCase) Update(ctx context.Context, id int64, req *UpdateProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.Update"

	var (
		err      error
		uploaded *UploadImageRes
	)

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			if uploaded != nil {
				p.logger.Warnf(
					"Cleaning up orphaned image after transaction failure. product_id: %d, error: %v",
					id,
					e.Wrap(op, err),
				)

				p.mediaInfra.CleanupObjects([]string{uploaded.ObjectKey})
			}
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	var current *domain.Product
	current, err = p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if current == nil {
		err = e.ErrProductNotFound
		return nil, e.Wrap(op, err)
	}

	if req.Name != nil && *req.Name != current.Name {
		var other *domain.Product
		other, err = p.productRepo.GetByName(ctx, *req.Name)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		if other != nil && other.ID != id {
			err = e.ErrProductNameTaken
			return nil, e.Wrap(op, err)
		}
	}

	if req.MainImage != nil {
		if uploaded, err = p.replaceImageSet(ctx, current, req.MainImage); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	fields := &ProductFields{
		Name:           req.Name,
		Description:    req.Description,
		Brand:          req.Brand,
		CategoryID:     req.CategoryID,
		PriceCents:     req.PriceCents,
		SalePriceCents: req.SalePriceCents,
	}
	if !fields.Empty() {
		if err = p.productRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	if req.Size != nil || req.Color != nil {
		if err = p.upsertVariation(ctx, id, req.Size, req.Color); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	if err = p.writeEvent(ctx, ProductUpdated, id, current.Name); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidateCache(ctx, id)

	result, ferr := p.GetByID(ctx, id)
	if ferr != nil {
		return nil, e.Wrap(op, ferr)
	}

	return result, nil
}

// Remove удаляет все изображения товара (записи и, по возможности, удалённые
// объекты) и все вариации, после чего помечает товар неактивным.
// Отказ медиа-хранилища по отдельному ключу не прерывает локальную зачистку.
func (p *ProductUseCase) Remove(ctx context.Context, id int64) error {
	const op = "ProductUseCase.Remove"

	var err error

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	var current *domain.Product
	current, err = p.productRepo.GetByID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}
	if current == nil {
		err = e.ErrProductNotFound
		return e.Wrap(op, err)
	}

	var images []domain.Image
	images, err = p.imageRepo.ListByProductID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	p.deleteRemoteObjects(ctx, images)

	if _, err = p.imageRepo.DeleteByProductID(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	if _, err = p.variationRepo.DeleteByProductID(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	if err = p.productRepo.Archive(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	if err = p.writeEvent(ctx, ProductArchived, id, current.Name); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	p.invalidateCache(ctx, id)

	return nil
}

// replaceImageSet единообразно заменяет набор изображений товара: best-effort
// удаление каждого объекта с ключом, удаление всех записей, загрузка и вставка
// нового главного изображения.
func (p *ProductUseCase) replaceImageSet(ctx context.Context, product *domain.Product, file *ProductFile) (*UploadImageRes, error) {
	images, err := p.imageRepo.ListByProductID(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	p.deleteRemoteObjects(ctx, images)

	if _, err := p.imageRepo.DeleteByProductID(ctx, product.ID); err != nil {
		return nil, err
	}

	uploaded, err := p.mediaInfra.UploadImage(ctx, NewUploadImageReq(product.Name, *file))
	if err != nil {
		return nil, err
	}

	if err := p.imageRepo.Create(ctx, domain.NewMainImage(product.ID, uploaded.URL, uploaded.ObjectKey)); err != nil {
		return uploaded, err
	}

	return uploaded, nil
}

// deleteRemoteObjects пытается удалить объекты изображений из медиа-хранилища.
// Каждая ошибка логируется и глотается: локальная зачистка каталога не должна
// блокироваться рассинхронизацией с внешним хранилищем.
func (p *ProductUseCase) deleteRemoteObjects(ctx context.Context, images []domain.Image) {
	for _, img := range images {
		if img.StorageKey == nil {
			continue
		}

		if err := p.mediaInfra.DeleteObject(ctx, *img.StorageKey); err != nil {
			p.logger.Warnf("Failed to delete image from media store. key: %s, error: %v", *img.StorageKey, err)
		}
	}
}

// upsertVariation перезаписывает переданные поля существующей вариации либо
// создаёт новую, когда вариации нет и хотя бы одно значение непустое.
func (p *ProductUseCase) upsertVariation(ctx context.Context, productID int64, size, color *string) error {
	variation, err := p.variationRepo.GetFirstByProductID(ctx, productID)
	if err != nil {
		return err
	}

	if variation != nil {
		if size != nil {
			variation.Size = *size
		}
		if color != nil {
			variation.Color = *color
		}

		return p.variationRepo.Update(ctx, variation)
	}

	newSize, newColor := "", ""
	if size != nil {
		newSize = *size
	}
	if color != nil {
		newColor = *color
	}
	if newSize == "" && newColor == "" {
		return nil
	}

	return p.variationRepo.Create(ctx, domain.NewVariation(productID, newSize, newColor))
}

// writeEvent кладёт событие каталога в outbox той же транзакцией.
func (p *ProductUseCase) writeEvent(ctx context.Context, eventType OutboxEventType, productID int64, name string) error {
	eventID := uuid.NewString()

	payload, err := json.Marshal(&ProductEventPayload{
		EventID:    eventID,
		EventType:  string(eventType),
		ProductID:  productID,
		Name:       name,
		OccurredAt: time.Now().UTC().UnixNano(),
	})
	if err != nil {
		return err
	}

	_, err = p.outboxRepo.Create(ctx, NewOutboxEvent(eventID, eventType, productID, payload))
	return err
}

// invalidateCache удаляет товар из кэша, логируя и глотая ошибку.
func (p *ProductUseCase) invalidateCache(ctx context.Context, id int64) {
	if err := p.cacheRepo.DeleteProducts(ctx, []int64{id}); err != nil {
		p.logger.Warnf("Failed to invalidate product cache. product_id: %d, error: %v", id, err)
	}
}

// validateCreate проверяет корректность входных данных запроса на создание товара.
func (p *ProductUseCase) validateCreate(req *CreateProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrMissingFields
	}

	if req.PriceCents <= 0 {
		return e.ErrInvalidPrice
	}

	if req.SalePriceCents != nil && *req.SalePriceCents <= 0 {
		return e.ErrInvalidPrice
	}

	return nil
}
