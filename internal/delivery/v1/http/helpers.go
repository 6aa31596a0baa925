package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/barberia-real/catalog-backend/internal/usecase"
	"github.com/barberia-real/catalog-backend/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrCategoryNotFound):
		return http.StatusNotFound, e.ErrCategoryNotFound.Error()
	case errors.Is(err, e.ErrProductNameTaken):
		return http.StatusConflict, e.ErrProductNameTaken.Error()
	case errors.Is(err, e.ErrCategoryNameTaken):
		return http.StatusConflict, e.ErrCategoryNameTaken.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrInvalidID):
		return http.StatusBadRequest, e.ErrInvalidID.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusBadRequest, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusBadRequest, e.ErrUnsupportedMediaType.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseID извлекает числовой идентификатор из пути запроса.
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Wrap(whereami.WhereAmI(), e.ErrInvalidID)
	}

	return id, nil
}

// parsePriceToCents converts a string like "599.99" or "600" to int64 cents.
// Returns error if:
// - invalid format
// - more than 2 decimal places
// - negative value
// - exceeds reasonable limit (e.g. 10^9)
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	// Reject negative
	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	// Enforce max value (10^9 currency units)
	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	// Check decimal places
	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision // "price must have at most 2 decimal places"
	}

	// Convert to cents: multiply by 100 and round
	cents := d.Mul(decimal.NewFromInt(100)).Round(0)

	centsInt := cents.IntPart()
	if centsInt < 0 {
		return 0, e.ErrInvalidPrice
	}

	return centsInt, nil
}

// renderPriceCents форматирует цену из копеек обратно в десятичную строку.
func renderPriceCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

func renderPriceCentsPtr(cents *int64) *string {
	if cents == nil {
		return nil
	}
	s := renderPriceCents(*cents)
	return &s
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

// formValue возвращает значение поля формы и признак его присутствия.
// Присутствие отличает «поле не прислали» от «прислали пустым», что важно
// для частичного обновления.
func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}

	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}

	return values[0], true
}

// parseCreateProductForm собирает запрос на создание товара из multipart-формы.
func parseCreateProductForm(r *http.Request) (*usecase.CreateProductReq, error) {
	name := r.FormValue("name")
	priceStr := r.FormValue("price")
	size, sizeOk := formValue(r, "size")
	color, colorOk := formValue(r, "color")

	if name == "" || priceStr == "" || !sizeOk || !colorOk {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrMissingFields)
	}

	priceCents, err := parsePriceToCents(priceStr)
	if err != nil {
		return nil, err
	}

	req := &usecase.CreateProductReq{
		Name:       name,
		PriceCents: priceCents,
		Size:       size,
		Color:      color,
	}

	if v, ok := formValue(r, "description"); ok {
		req.Description = &v
	}
	if v, ok := formValue(r, "brand"); ok {
		req.Brand = &v
	}
	if v, ok := formValue(r, "category_id"); ok {
		categoryID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidID)
		}
		req.CategoryID = &categoryID
	}
	if v, ok := formValue(r, "sale_price"); ok {
		saleCents, err := parsePriceToCents(v)
		if err != nil {
			return nil, err
		}
		req.SalePriceCents = &saleCents
	}

	file, err := parseMainImage(r)
	if err != nil {
		return nil, err
	}
	req.MainImage = file

	return req, nil
}

// parseUpdateProductForm собирает частичное обновление: отсутствующее в форме
// поле остаётся nil и не трогается.
func parseUpdateProductForm(r *http.Request) (*usecase.UpdateProductReq, error) {
	req := &usecase.UpdateProductReq{}

	if v, ok := formValue(r, "name"); ok {
		req.Name = &v
	}
	if v, ok := formValue(r, "description"); ok {
		req.Description = &v
	}
	if v, ok := formValue(r, "brand"); ok {
		req.Brand = &v
	}
	if v, ok := formValue(r, "category_id"); ok {
		categoryID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidID)
		}
		req.CategoryID = &categoryID
	}
	if v, ok := formValue(r, "price"); ok {
		priceCents, err := parsePriceToCents(v)
		if err != nil {
			return nil, err
		}
		req.PriceCents = &priceCents
	}
	if v, ok := formValue(r, "sale_price"); ok {
		saleCents, err := parsePriceToCents(v)
		if err != nil {
			return nil, err
		}
		req.SalePriceCents = &saleCents
	}
	if v, ok := formValue(r, "size"); ok {
		req.Size = &v
	}
	if v, ok := formValue(r, "color"); ok {
		req.Color = &v
	}

	file, err := parseMainImage(r)
	if err != nil {
		return nil, err
	}
	req.MainImage = file

	return req, nil
}

// parseMainImage читает файл из поля image; nil без ошибки, если файла нет.
func parseMainImage(r *http.Request) (*usecase.ProductFile, error) {
	const maxFileSize = 15 << 20

	if r.MultipartForm == nil {
		return nil, nil
	}

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		return nil, nil
	}

	fh := files[0]
	data, mimeType, err := readFile(fh, maxFileSize)
	if err != nil {
		return nil, err
	}

	return usecase.NewProductFile(data, mimeType, int64(len(data)), fh.Filename), nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
