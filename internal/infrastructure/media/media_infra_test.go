package media_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/barberia-real/catalog-backend/internal/cfg"
	"github.com/barberia-real/catalog-backend/internal/domain"
	"github.com/barberia-real/catalog-backend/internal/infrastructure/media"
	"github.com/barberia-real/catalog-backend/internal/usecase"
	"github.com/barberia-real/catalog-backend/pkg/e"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeStorage struct {
	mu sync.Mutex

	uploaded []domain.MediaObject
	deleted  []string

	uploadErr        error
	deleteFailsFirst int
}

func (f *fakeStorage) Upload(ctx context.Context, object *domain.MediaObject) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploaded = append(f.uploaded, *object)
	return object.ObjectKey, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteFailsFirst > 0 {
		f.deleteFailsFirst--
		return errors.New("storage unavailable")
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) deletedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func testCfg() *cfg.MinIOCfg {
	return &cfg.MinIOCfg{
		BucketName:    "catalog",
		PublicBaseURL: "http://media.local/catalog",
	}
}

func uploadReq(name string) *usecase.UploadImageReq {
	return usecase.NewUploadImageReq(name, *usecase.NewProductFile([]byte("data"), "image/jpeg", 4, "main"))
}

func TestUploadImage(t *testing.T) {
	c := qt.New(t)

	storage := &fakeStorage{}
	infra := media.NewMediaInfrastructure(storage, testCfg(), nopLogger{}, context.Background())

	res, err := infra.UploadImage(context.Background(), uploadReq("brush"))
	c.Assert(err, qt.IsNil)

	c.Assert(strings.HasPrefix(res.ObjectKey, "brush/main-"), qt.Equals, true)
	c.Assert(strings.HasSuffix(res.ObjectKey, ".jpg"), qt.Equals, true)
	c.Assert(res.URL, qt.Equals, "http://media.local/catalog/"+res.ObjectKey)

	c.Assert(storage.uploaded, qt.HasLen, 1)
	c.Assert(storage.uploaded[0].Bucket, qt.Equals, "catalog")
	c.Assert(*storage.uploaded[0].MimeType, qt.Equals, "image/jpeg")
}

func TestUploadImageUnsupportedMime(t *testing.T) {
	c := qt.New(t)

	storage := &fakeStorage{}
	infra := media.NewMediaInfrastructure(storage, testCfg(), nopLogger{}, context.Background())

	req := usecase.NewUploadImageReq("brush", *usecase.NewProductFile([]byte("gif"), "image/gif", 3, "anim"))
	_, err := infra.UploadImage(context.Background(), req)
	c.Assert(err, qt.ErrorIs, e.ErrUnsupportedMediaType)
	c.Assert(storage.uploaded, qt.HasLen, 0)
}

func TestUploadImageStorageFailure(t *testing.T) {
	c := qt.New(t)

	storage := &fakeStorage{uploadErr: errors.New("connection refused")}
	infra := media.NewMediaInfrastructure(storage, testCfg(), nopLogger{}, context.Background())

	_, err := infra.UploadImage(context.Background(), uploadReq("brush"))
	c.Assert(err, qt.ErrorIs, e.ErrUploadFailed)
}

func TestDeleteObject(t *testing.T) {
	c := qt.New(t)

	storage := &fakeStorage{}
	infra := media.NewMediaInfrastructure(storage, testCfg(), nopLogger{}, context.Background())

	c.Assert(infra.DeleteObject(context.Background(), "brush/main-1.jpg"), qt.IsNil)
	c.Assert(storage.deletedKeys(), qt.DeepEquals, []string{"brush/main-1.jpg"})
}

func TestCleanupObjectsRetries(t *testing.T) {
	c := qt.New(t)

	// Первая попытка падает, повтор добивает удаление
	storage := &fakeStorage{deleteFailsFirst: 1}
	infra := media.NewMediaInfrastructure(storage, testCfg(), nopLogger{}, context.Background())

	infra.CleanupObjects([]string{"brush/main-1.jpg"})

	waitCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c.Assert(infra.WaitForCleanup(waitCtx), qt.IsNil)

	c.Assert(storage.deletedKeys(), qt.DeepEquals, []string{"brush/main-1.jpg"})
}

func TestCleanupObjectsNoKeys(t *testing.T) {
	c := qt.New(t)

	storage := &fakeStorage{}
	infra := media.NewMediaInfrastructure(storage, testCfg(), nopLogger{}, context.Background())

	infra.CleanupObjects(nil)

	waitCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	c.Assert(infra.WaitForCleanup(waitCtx), qt.IsNil)
	c.Assert(storage.deletedKeys(), qt.HasLen, 0)
}
