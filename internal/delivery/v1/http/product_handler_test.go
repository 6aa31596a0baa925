package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/go-chi/chi/v5"

	"github.com/barberia-real/catalog-backend/internal/domain"
	"github.com/barberia-real/catalog-backend/internal/usecase"
	"github.com/barberia-real/catalog-backend/pkg/e"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeProductUC struct {
	created    *usecase.CreateProductReq
	updated    *usecase.UpdateProductReq
	updatedID  int64
	removedID  int64
	product    *domain.Product
	products   []domain.Product
	createErr  error
	getErr     error
	updateErr  error
	removeErr  error
}

func (f *fakeProductUC) Create(ctx context.Context, req *usecase.CreateProductReq) (*domain.Product, error) {
	f.created = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.product, nil
}

func (f *fakeProductUC) GetAll(ctx context.Context) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeProductUC) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.product, nil
}

func (f *fakeProductUC) Update(ctx context.Context, id int64, req *usecase.UpdateProductReq) (*domain.Product, error) {
	f.updatedID = id
	f.updated = req
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.product, nil
}

func (f *fakeProductUC) Remove(ctx context.Context, id int64) error {
	f.removedID = id
	return f.removeErr
}

type fakeCategoryUC struct {
	category  *domain.Category
	createErr error
}

func (f *fakeCategoryUC) Create(ctx context.Context, req *usecase.CreateCategoryReq) (*domain.Category, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.category, nil
}

func (f *fakeCategoryUC) GetAll(ctx context.Context) ([]domain.Category, error) {
	return []domain.Category{*f.category}, nil
}

func (f *fakeCategoryUC) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return f.category, nil
}

func (f *fakeCategoryUC) Update(ctx context.Context, id int64, req *usecase.UpdateCategoryReq) (*domain.Category, error) {
	return f.category, nil
}

func (f *fakeCategoryUC) Remove(ctx context.Context, id int64) error {
	return nil
}

func sampleProduct() *domain.Product {
	desc := "handmade"
	key := "brush/main-1.jpg"
	return &domain.Product{
		ID:          1,
		Name:        "brush",
		Description: &desc,
		PriceCents:  59999,
		IsActive:    true,
		CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Variations:  []domain.Variation{{ID: 1, ProductID: 1, Size: "M", Color: "black"}},
		Images: []domain.Image{{
			ID: 1, ProductID: 1, ImageURL: "http://media.local/catalog/brush/main-1.jpg",
			StorageKey: &key, IsMain: true,
		}},
	}
}

func newTestServer(prUC usecase.ProductUC, catUC usecase.CategoryUC) *httptest.Server {
	r := chi.NewRouter()
	router := NewRouter(r, nopLogger{})
	router.Init(prUC, catUC)
	return httptest.NewServer(r)
}

func multipartBody(c *qt.C, fields map[string]string, fileField, fileName string, fileData []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		c.Assert(w.WriteField(k, v), qt.IsNil)
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		c.Assert(err, qt.IsNil)
		_, err = fw.Write(fileData)
		c.Assert(err, qt.IsNil)
	}
	c.Assert(w.Close(), qt.IsNil)
	return body, w.FormDataContentType()
}

func TestCreateProductHandler(t *testing.T) {
	c := qt.New(t)

	prUC := &fakeProductUC{product: sampleProduct()}
	srv := newTestServer(prUC, &fakeCategoryUC{})
	defer srv.Close()

	body, contentType := multipartBody(c, map[string]string{
		"name":  "brush",
		"price": "599.99",
		"size":  "M",
		"color": "black",
	}, "image", "main.jpg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46})

	resp, err := http.Post(srv.URL+"/api/v1/products/", contentType, body)
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()

	c.Assert(resp.StatusCode, qt.Equals, http.StatusCreated)

	c.Assert(prUC.created, qt.IsNotNil)
	c.Assert(prUC.created.Name, qt.Equals, "brush")
	c.Assert(prUC.created.PriceCents, qt.Equals, int64(59999))
	c.Assert(prUC.created.Size, qt.Equals, "M")
	c.Assert(prUC.created.Color, qt.Equals, "black")
	c.Assert(prUC.created.MainImage, qt.IsNotNil)
	c.Assert(prUC.created.MainImage.Name, qt.Equals, "main.jpg")

	var got ProductResponse
	c.Assert(json.NewDecoder(resp.Body).Decode(&got), qt.IsNil)
	c.Assert(got.Price, qt.Equals, "599.99")
	c.Assert(got.Images, qt.HasLen, 1)
}

func TestCreateProductHandlerAcceptsLargeUpload(t *testing.T) {
	c := qt.New(t)

	prUC := &fakeProductUC{product: sampleProduct()}
	srv := newTestServer(prUC, &fakeCategoryUC{})
	defer srv.Close()

	// Суммарный размер тела ~24MiB при файле в пределах лимита на файл
	fileData := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x42}, 14<<20)...)
	body, contentType := multipartBody(c, map[string]string{
		"name":        "brush",
		"price":       "599.99",
		"size":        "M",
		"color":       "black",
		"description": strings.Repeat("x", 10<<20),
	}, "image", "main.jpg", fileData)

	resp, err := http.Post(srv.URL+"/api/v1/products/", contentType, body)
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()

	c.Assert(resp.StatusCode, qt.Equals, http.StatusCreated)
	c.Assert(prUC.created.MainImage, qt.IsNotNil)
	c.Assert(prUC.created.MainImage.Size, qt.Equals, int64(len(fileData)))
}

func TestCreateProductHandlerRejectsJSON(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(&fakeProductUC{}, &fakeCategoryUC{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/products/", "application/json", strings.NewReader(`{"name":"x"}`))
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()

	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)
}

func TestCreateProductHandlerMissingFields(t *testing.T) {
	srv := newTestServer(&fakeProductUC{}, &fakeCategoryUC{})
	defer srv.Close()

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{name: "no price", fields: map[string]string{"name": "brush", "size": "M", "color": "black"}},
		{name: "no size", fields: map[string]string{"name": "brush", "price": "10", "color": "black"}},
		{name: "no color", fields: map[string]string{"name": "brush", "price": "10", "size": "M"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			body, contentType := multipartBody(c, tt.fields, "", "", nil)

			resp, err := http.Post(srv.URL+"/api/v1/products/", contentType, body)
			c.Assert(err, qt.IsNil)
			defer resp.Body.Close()

			c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)

			var errResp ErrorResponse
			c.Assert(json.NewDecoder(resp.Body).Decode(&errResp), qt.IsNil)
			c.Assert(errResp.Code, qt.Equals, http.StatusBadRequest)
		})
	}
}

func TestCreateProductHandlerConflict(t *testing.T) {
	c := qt.New(t)

	prUC := &fakeProductUC{createErr: e.Wrap("op", e.ErrProductNameTaken)}
	srv := newTestServer(prUC, &fakeCategoryUC{})
	defer srv.Close()

	body, contentType := multipartBody(c, map[string]string{
		"name": "brush", "price": "10", "size": "M", "color": "black",
	}, "", "", nil)

	resp, err := http.Post(srv.URL+"/api/v1/products/", contentType, body)
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()

	c.Assert(resp.StatusCode, qt.Equals, http.StatusConflict)
}

func TestGetProductHandlerNotFound(t *testing.T) {
	c := qt.New(t)

	prUC := &fakeProductUC{getErr: e.Wrap("op", e.ErrProductNotFound)}
	srv := newTestServer(prUC, &fakeCategoryUC{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/products/42")
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()

	c.Assert(resp.StatusCode, qt.Equals, http.StatusNotFound)
}

func TestGetProductHandlerInvalidID(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(&fakeProductUC{}, &fakeCategoryUC{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/products/abc")
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()

	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)
}

func TestUpdateProductHandlerPartialFields(t *testing.T) {
	c := qt.New(t)

	prUC := &fakeProductUC{product: sampleProduct()}
	srv := newTestServer(prUC, &fakeCategoryUC{})
	defer srv.Close()

	body, contentType := multipartBody(c, map[string]string{"description": "fresh"}, "", "", nil)

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/v1/products/1", body)
	c.Assert(err, qt.IsNil)
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()

	c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Assert(prUC.updatedID, qt.Equals, int64(1))
	c.Assert(prUC.updated.Description, qt.IsNotNil)
	c.Assert(*prUC.updated.Description, qt.Equals, "fresh")

	// Не присланные поля остаются nil и не трогаются
	c.Assert(prUC.updated.Name, qt.IsNil)
	c.Assert(prUC.updated.PriceCents, qt.IsNil)
	c.Assert(prUC.updated.MainImage, qt.IsNil)
}

func TestDeleteProductHandler(t *testing.T) {
	c := qt.New(t)

	prUC := &fakeProductUC{product: sampleProduct()}
	srv := newTestServer(prUC, &fakeCategoryUC{})
	defer srv.Close()

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/products/1", nil)
	c.Assert(err, qt.IsNil)

	resp, err := http.DefaultClient.Do(req)
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()

	c.Assert(resp.StatusCode, qt.Equals, http.StatusNoContent)
	c.Assert(prUC.removedID, qt.Equals, int64(1))
}

func TestCategoryHandlers(t *testing.T) {
	c := qt.New(t)

	category := &domain.Category{ID: 3, Name: "Hair care", IsActive: true, CreatedAt: time.Now().UTC()}
	srv := newTestServer(&fakeProductUC{}, &fakeCategoryUC{category: category})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/categories/", "application/json", strings.NewReader(`{"name":"Hair care"}`))
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()
	c.Assert(resp.StatusCode, qt.Equals, http.StatusCreated)

	var got CategoryResponse
	c.Assert(json.NewDecoder(resp.Body).Decode(&got), qt.IsNil)
	c.Assert(got.Name, qt.Equals, "Hair care")

	listResp, err := http.Get(srv.URL + "/api/v1/categories/")
	c.Assert(err, qt.IsNil)
	defer listResp.Body.Close()
	c.Assert(listResp.StatusCode, qt.Equals, http.StatusOK)

	var categories []CategoryResponse
	c.Assert(json.NewDecoder(listResp.Body).Decode(&categories), qt.IsNil)
	c.Assert(categories, qt.HasLen, 1)
}
