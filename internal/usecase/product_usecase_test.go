package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/jackc/pgx/v5"

	"github.com/barberia-real/catalog-backend/internal/domain"
	"github.com/barberia-real/catalog-backend/internal/usecase"
	"github.com/barberia-real/catalog-backend/pkg/e"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeTx struct {
	pgx.Tx
	commits   int
	rollbacks int
	commitErr error
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.commits++
	return t.commitErr
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rollbacks++
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (f *fakeDB) BeginTx(ctx context.Context, _ pgx.TxOptions) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

type fakeVariationRepo struct {
	variations []domain.Variation
	nextID     int64
	createErr  error
}

func (f *fakeVariationRepo) Create(ctx context.Context, variation *domain.Variation) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	v := *variation
	v.ID = f.nextID
	f.variations = append(f.variations, v)
	return nil
}

func (f *fakeVariationRepo) GetFirstByProductID(ctx context.Context, productID int64) (*domain.Variation, error) {
	for i := range f.variations {
		if f.variations[i].ProductID == productID {
			v := f.variations[i]
			return &v, nil
		}
	}
	return nil, nil
}

func (f *fakeVariationRepo) Update(ctx context.Context, variation *domain.Variation) error {
	for i := range f.variations {
		if f.variations[i].ID == variation.ID {
			f.variations[i] = *variation
			return nil
		}
	}
	return errors.New("variation not found")
}

func (f *fakeVariationRepo) DeleteByProductID(ctx context.Context, productID int64) (int64, error) {
	kept := f.variations[:0]
	var deleted int64
	for _, v := range f.variations {
		if v.ProductID == productID {
			deleted++
			continue
		}
		kept = append(kept, v)
	}
	f.variations = kept
	return deleted, nil
}

func (f *fakeVariationRepo) forProduct(productID int64) []domain.Variation {
	var result []domain.Variation
	for _, v := range f.variations {
		if v.ProductID == productID {
			result = append(result, v)
		}
	}
	return result
}

type fakeImageRepo struct {
	images    []domain.Image
	nextID    int64
	createErr error
}

func (f *fakeImageRepo) Create(ctx context.Context, image *domain.Image) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	img := *image
	img.ID = f.nextID
	f.images = append(f.images, img)
	return nil
}

func (f *fakeImageRepo) ListByProductID(ctx context.Context, productID int64) ([]domain.Image, error) {
	return f.forProduct(productID), nil
}

func (f *fakeImageRepo) DeleteByProductID(ctx context.Context, productID int64) (int64, error) {
	kept := f.images[:0]
	var deleted int64
	for _, img := range f.images {
		if img.ProductID == productID {
			deleted++
			continue
		}
		kept = append(kept, img)
	}
	f.images = kept
	return deleted, nil
}

func (f *fakeImageRepo) forProduct(productID int64) []domain.Image {
	var result []domain.Image
	for _, img := range f.images {
		if img.ProductID == productID {
			result = append(result, img)
		}
	}
	return result
}

type fakeProductRepo struct {
	products   map[int64]*domain.Product
	nextID     int64
	variations *fakeVariationRepo
	images     *fakeImageRepo

	aggregateCalls int
}

func newFakeProductRepo(variations *fakeVariationRepo, images *fakeImageRepo) *fakeProductRepo {
	return &fakeProductRepo{
		products:   make(map[int64]*domain.Product),
		variations: variations,
		images:     images,
	}
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	f.nextID++
	stored := *product
	stored.ID = f.nextID
	f.products[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	stored, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	result := *stored
	return &result, nil
}

func (f *fakeProductRepo) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	for _, stored := range f.products {
		if stored.Name == name {
			result := *stored
			return &result, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) UpdateFields(ctx context.Context, id int64, fields *usecase.ProductFields) error {
	stored, ok := f.products[id]
	if !ok {
		return errors.New("product not found")
	}
	if fields.Name != nil {
		stored.Name = *fields.Name
	}
	if fields.Description != nil {
		stored.Description = fields.Description
	}
	if fields.Brand != nil {
		stored.Brand = fields.Brand
	}
	if fields.CategoryID != nil {
		stored.CategoryID = fields.CategoryID
	}
	if fields.PriceCents != nil {
		stored.PriceCents = *fields.PriceCents
	}
	if fields.SalePriceCents != nil {
		stored.SalePriceCents = fields.SalePriceCents
	}
	return nil
}

func (f *fakeProductRepo) Archive(ctx context.Context, id int64) error {
	stored, ok := f.products[id]
	if !ok {
		return errors.New("product not found")
	}
	stored.IsActive = false
	return nil
}

func (f *fakeProductRepo) GetAggregate(ctx context.Context, id int64) (*domain.Product, error) {
	f.aggregateCalls++
	stored, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	result := *stored
	result.Variations = f.variations.forProduct(id)
	result.Images = f.images.forProduct(id)
	return &result, nil
}

func (f *fakeProductRepo) GetActiveAggregates(ctx context.Context) ([]domain.Product, error) {
	var result []domain.Product
	for id, stored := range f.products {
		if !stored.IsActive {
			continue
		}
		product := *stored
		product.Variations = f.variations.forProduct(id)
		product.Images = f.images.forProduct(id)
		result = append(result, product)
	}
	return result, nil
}

type fakeOutboxRepo struct {
	events []*usecase.OutboxEvent
}

func (f *fakeOutboxRepo) Create(ctx context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	stored := *event
	stored.ID = int64(len(f.events) + 1)
	f.events = append(f.events, &stored)
	return &stored, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return nil
}

type fakeCacheRepo struct {
	mu      sync.Mutex
	stored  map[int64]*domain.Product
	deleted []int64
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{stored: make(map[int64]*domain.Product)}
}

func (f *fakeCacheRepo) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.stored[id]
	if !ok {
		return nil, nil
	}
	result := *product
	return &result, nil
}

func (f *fakeCacheRepo) SetProduct(ctx context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *product
	f.stored[product.ID] = &stored
	return nil
}

func (f *fakeCacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ids...)
	for _, id := range ids {
		delete(f.stored, id)
	}
	return nil
}

type fakeMediaInfra struct {
	uploads   []string
	uploadErr error

	deleted   []string
	deleteErr error

	cleaned [][]string
}

func (f *fakeMediaInfra) UploadImage(ctx context.Context, req *usecase.UploadImageReq) (*usecase.UploadImageRes, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	key := fmt.Sprintf("%s/%s-%d.jpg", req.ProductName, req.File.Name, len(f.uploads)+1)
	f.uploads = append(f.uploads, key)
	return usecase.NewUploadImageRes(key, "http://media.local/catalog/"+key), nil
}

func (f *fakeMediaInfra) DeleteObject(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}

func (f *fakeMediaInfra) CleanupObjects(keys []string) {
	f.cleaned = append(f.cleaned, keys)
}

type fixture struct {
	tx         *fakeTx
	db         *fakeDB
	products   *fakeProductRepo
	variations *fakeVariationRepo
	images     *fakeImageRepo
	outbox     *fakeOutboxRepo
	cache      *fakeCacheRepo
	media      *fakeMediaInfra
	uc         *usecase.ProductUseCase
}

func newFixture() *fixture {
	tx := &fakeTx{}
	db := &fakeDB{tx: tx}
	variations := &fakeVariationRepo{}
	images := &fakeImageRepo{}
	products := newFakeProductRepo(variations, images)
	outbox := &fakeOutboxRepo{}
	cache := newFakeCacheRepo()
	media := &fakeMediaInfra{}

	uc := usecase.NewProductUC(products, variations, images, outbox, db, media, cache, nopLogger{})

	return &fixture{
		tx:         tx,
		db:         db,
		products:   products,
		variations: variations,
		images:     images,
		outbox:     outbox,
		cache:      cache,
		media:      media,
		uc:         uc,
	}
}

func createReq(name string) *usecase.CreateProductReq {
	return &usecase.CreateProductReq{
		Name:       name,
		PriceCents: 59900,
		Size:       "M",
		Color:      "black",
	}
}

func withFile(req *usecase.CreateProductReq) *usecase.CreateProductReq {
	req.MainImage = usecase.NewProductFile([]byte("jpegdata"), "image/jpeg", 8, "main")
	return req
}

func strPtr(s string) *string { return &s }

func TestProductCreateWithImage(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	product, err := f.uc.Create(context.Background(), withFile(createReq("fade brush")))
	c.Assert(err, qt.IsNil)

	c.Assert(product.Variations, qt.HasLen, 1)
	c.Assert(product.Variations[0].Size, qt.Equals, "M")
	c.Assert(product.Variations[0].Color, qt.Equals, "black")

	c.Assert(product.Images, qt.HasLen, 1)
	c.Assert(product.Images[0].IsMain, qt.Equals, true)
	c.Assert(product.Images[0].DisplayOrder, qt.Equals, int32(0))
	c.Assert(product.Images[0].ImageURL, qt.Contains, "http://media.local/")

	c.Assert(f.media.uploads, qt.HasLen, 1)
	c.Assert(f.tx.commits, qt.Equals, 1)
	c.Assert(f.tx.rollbacks, qt.Equals, 0)
	c.Assert(f.media.cleaned, qt.HasLen, 0)

	c.Assert(f.outbox.events, qt.HasLen, 1)
	c.Assert(f.outbox.events[0].EventType, qt.Equals, usecase.ProductCreated)
	c.Assert(f.outbox.events[0].ProductID, qt.Equals, product.ID)
}

func TestProductCreateWithoutImage(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	product, err := f.uc.Create(context.Background(), createReq("pomade"))
	c.Assert(err, qt.IsNil)

	c.Assert(product.Images, qt.HasLen, 0)
	c.Assert(product.Variations, qt.HasLen, 1)
	c.Assert(f.media.uploads, qt.HasLen, 0)
}

func TestProductCreateDuplicateName(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	_, err := f.uc.Create(context.Background(), createReq("clipper oil"))
	c.Assert(err, qt.IsNil)

	_, err = f.uc.Create(context.Background(), createReq("clipper oil"))
	c.Assert(err, qt.ErrorIs, e.ErrProductNameTaken)
	c.Assert(f.tx.rollbacks, qt.Equals, 1)
}

func TestProductCreateCleansUpUploadAfterFailure(t *testing.T) {
	c := qt.New(t)
	f := newFixture()
	f.variations.createErr = errors.New("insert failed")

	_, err := f.uc.Create(context.Background(), withFile(createReq("razor")))
	c.Assert(err, qt.IsNotNil)

	c.Assert(f.tx.rollbacks, qt.Equals, 1)
	c.Assert(f.tx.commits, qt.Equals, 0)

	// Загруженный объект осиротел и должен уйти в компенсацию
	c.Assert(f.media.uploads, qt.HasLen, 1)
	c.Assert(f.media.cleaned, qt.HasLen, 1)
	c.Assert(f.media.cleaned[0], qt.DeepEquals, []string{f.media.uploads[0]})
}

func TestProductCreateValidation(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	_, err := f.uc.Create(context.Background(), &usecase.CreateProductReq{Name: "  ", PriceCents: 100})
	c.Assert(err, qt.ErrorIs, e.ErrMissingFields)

	_, err = f.uc.Create(context.Background(), &usecase.CreateProductReq{Name: "comb", PriceCents: 0})
	c.Assert(err, qt.ErrorIs, e.ErrInvalidPrice)

	sale := int64(-100)
	_, err = f.uc.Create(context.Background(), &usecase.CreateProductReq{Name: "comb", PriceCents: 100, SalePriceCents: &sale})
	c.Assert(err, qt.ErrorIs, e.ErrInvalidPrice)
}

func TestProductGetByIDNotFound(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	_, err := f.uc.GetByID(context.Background(), 42)
	c.Assert(err, qt.ErrorIs, e.ErrProductNotFound)
}

func TestProductGetByIDCacheHit(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	cached := &domain.Product{ID: 7, Name: "cached", PriceCents: 100, IsActive: true}
	c.Assert(f.cache.SetProduct(context.Background(), cached), qt.IsNil)

	product, err := f.uc.GetByID(context.Background(), 7)
	c.Assert(err, qt.IsNil)
	c.Assert(product.Name, qt.Equals, "cached")
	c.Assert(f.products.aggregateCalls, qt.Equals, 0)
}

func TestProductGetAllExcludesArchived(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	first, err := f.uc.Create(context.Background(), createReq("first"))
	c.Assert(err, qt.IsNil)
	_, err = f.uc.Create(context.Background(), createReq("second"))
	c.Assert(err, qt.IsNil)

	c.Assert(f.uc.Remove(context.Background(), first.ID), qt.IsNil)

	products, err := f.uc.GetAll(context.Background())
	c.Assert(err, qt.IsNil)
	c.Assert(products, qt.HasLen, 1)
	c.Assert(products[0].Name, qt.Equals, "second")

	// Архивный товар остаётся доступным по ID
	archived, err := f.uc.GetByID(context.Background(), first.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(archived.IsActive, qt.Equals, false)
}

func TestProductUpdateScalarOnlyKeepsImagesAndVariations(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	created, err := f.uc.Create(context.Background(), withFile(createReq("scissors")))
	c.Assert(err, qt.IsNil)

	updated, err := f.uc.Update(context.Background(), created.ID, &usecase.UpdateProductReq{
		Description: strPtr("professional"),
	})
	c.Assert(err, qt.IsNil)

	c.Assert(*updated.Description, qt.Equals, "professional")
	c.Assert(updated.Images, qt.DeepEquals, created.Images)
	c.Assert(updated.Variations, qt.DeepEquals, created.Variations)
	c.Assert(f.media.uploads, qt.HasLen, 1)
	c.Assert(f.media.deleted, qt.HasLen, 0)
}

func TestProductUpdateNameConflict(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	first, err := f.uc.Create(context.Background(), createReq("shampoo"))
	c.Assert(err, qt.IsNil)
	_, err = f.uc.Create(context.Background(), createReq("conditioner"))
	c.Assert(err, qt.IsNil)

	_, err = f.uc.Update(context.Background(), first.ID, &usecase.UpdateProductReq{Name: strPtr("conditioner")})
	c.Assert(err, qt.ErrorIs, e.ErrProductNameTaken)

	// Переименование в собственное имя конфликтом не считается
	_, err = f.uc.Update(context.Background(), first.ID, &usecase.UpdateProductReq{Name: strPtr("shampoo")})
	c.Assert(err, qt.IsNil)
}

func TestProductUpdateReplacesImageSet(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	created, err := f.uc.Create(context.Background(), withFile(createReq("wax")))
	c.Assert(err, qt.IsNil)
	oldKey := f.media.uploads[0]

	// Запись без ключа хранилища: удалённый объект для неё не трогаем
	legacyURL := "http://legacy/wax.jpg"
	c.Assert(f.images.Create(context.Background(), &domain.Image{
		ProductID: created.ID,
		ImageURL:  legacyURL,
	}), qt.IsNil)

	updated, err := f.uc.Update(context.Background(), created.ID, &usecase.UpdateProductReq{
		MainImage: usecase.NewProductFile([]byte("newdata"), "image/png", 7, "fresh"),
	})
	c.Assert(err, qt.IsNil)

	// Весь набор заменён единственным новым главным изображением
	c.Assert(updated.Images, qt.HasLen, 1)
	c.Assert(updated.Images[0].IsMain, qt.Equals, true)
	c.Assert(updated.Images[0].ImageURL, qt.Not(qt.Equals), legacyURL)

	// Из хранилища удалялся только объект с известным ключом
	c.Assert(f.media.deleted, qt.DeepEquals, []string{oldKey})
	c.Assert(f.media.uploads, qt.HasLen, 2)
}

func TestProductUpdateUpsertVariation(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	created, err := f.uc.Create(context.Background(), createReq("gel"))
	c.Assert(err, qt.IsNil)

	// Перезаписывается только присланное поле
	updated, err := f.uc.Update(context.Background(), created.ID, &usecase.UpdateProductReq{Size: strPtr("L")})
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Variations, qt.HasLen, 1)
	c.Assert(updated.Variations[0].Size, qt.Equals, "L")
	c.Assert(updated.Variations[0].Color, qt.Equals, "black")
}

func TestProductUpdateNotFound(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	_, err := f.uc.Update(context.Background(), 99, &usecase.UpdateProductReq{Description: strPtr("x")})
	c.Assert(err, qt.ErrorIs, e.ErrProductNotFound)
	c.Assert(f.tx.rollbacks, qt.Equals, 1)
}

func TestProductRemove(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	created, err := f.uc.Create(context.Background(), withFile(createReq("towel")))
	c.Assert(err, qt.IsNil)
	key := f.media.uploads[0]

	c.Assert(f.uc.Remove(context.Background(), created.ID), qt.IsNil)

	c.Assert(f.media.deleted, qt.DeepEquals, []string{key})
	c.Assert(f.images.images, qt.HasLen, 0)
	c.Assert(f.variations.variations, qt.HasLen, 0)

	stored, err := f.products.GetByID(context.Background(), created.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(stored.IsActive, qt.Equals, false)

	c.Assert(f.outbox.events[len(f.outbox.events)-1].EventType, qt.Equals, usecase.ProductArchived)
}

func TestProductRemoveSurvivesMediaFailure(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	created, err := f.uc.Create(context.Background(), withFile(createReq("cape")))
	c.Assert(err, qt.IsNil)

	f.media.deleteErr = errors.New("storage unavailable")

	// Отказ медиа-хранилища не мешает локальной зачистке и архивации
	c.Assert(f.uc.Remove(context.Background(), created.ID), qt.IsNil)

	c.Assert(f.media.deleted, qt.HasLen, 1)
	c.Assert(f.images.images, qt.HasLen, 0)
	c.Assert(f.variations.variations, qt.HasLen, 0)

	stored, err := f.products.GetByID(context.Background(), created.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(stored.IsActive, qt.Equals, false)
}

func TestProductRemoveNotFound(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	err := f.uc.Remove(context.Background(), 404)
	c.Assert(err, qt.ErrorIs, e.ErrProductNotFound)
}
