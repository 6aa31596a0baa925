package http

import (
	"net/http"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/barberia-real/catalog-backend/pkg/e"
)

func TestParsePriceToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr error
	}{
		{name: "integer", input: "600", want: 60000},
		{name: "two decimals", input: "599.99", want: 59999},
		{name: "one decimal", input: "12.5", want: 1250},
		{name: "zero", input: "0", want: 0},
		{name: "empty", input: "", wantErr: e.ErrInvalidPrice},
		{name: "garbage", input: "abc", wantErr: e.ErrInvalidPrice},
		{name: "negative", input: "-5", wantErr: e.ErrInvalidPrice},
		{name: "three decimals", input: "10.999", wantErr: e.ErrPricePrecision},
		{name: "at limit", input: "1000000000", want: 100_000_000_000},
		{name: "too large", input: "1000000001", wantErr: e.ErrInvalidPrice},
		{name: "just above limit", input: "1000000000.01", wantErr: e.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			got, err := parsePriceToCents(tt.input)
			if tt.wantErr != nil {
				c.Assert(err, qt.ErrorIs, tt.wantErr)
				return
			}
			c.Assert(err, qt.IsNil)
			c.Assert(got, qt.Equals, tt.want)
		})
	}
}

func TestRenderPriceCents(t *testing.T) {
	c := qt.New(t)

	c.Assert(renderPriceCents(59999), qt.Equals, "599.99")
	c.Assert(renderPriceCents(60000), qt.Equals, "600.00")
	c.Assert(renderPriceCents(5), qt.Equals, "0.05")

	c.Assert(renderPriceCentsPtr(nil), qt.IsNil)
	sale := int64(1250)
	c.Assert(*renderPriceCentsPtr(&sale), qt.Equals, "12.50")
}

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "product not found", err: e.Wrap("op", e.ErrProductNotFound), code: http.StatusNotFound},
		{name: "category not found", err: e.ErrCategoryNotFound, code: http.StatusNotFound},
		{name: "product name taken", err: e.Wrap("op", e.Wrap("repo", e.ErrProductNameTaken)), code: http.StatusConflict},
		{name: "category name taken", err: e.ErrCategoryNameTaken, code: http.StatusConflict},
		{name: "missing fields", err: e.ErrMissingFields, code: http.StatusBadRequest},
		{name: "invalid id", err: e.ErrInvalidID, code: http.StatusBadRequest},
		{name: "invalid price", err: e.ErrInvalidPrice, code: http.StatusBadRequest},
		{name: "price precision", err: e.ErrPricePrecision, code: http.StatusBadRequest},
		{name: "unsupported media type", err: e.ErrUnsupportedMediaType, code: http.StatusBadRequest},
		{name: "file too large", err: e.ErrFileTooLarge, code: http.StatusBadRequest},
		{name: "unknown", err: e.Wrap("op", e.ErrTransactionNotFound), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			code, msg := ToHTTPResponse(tt.err)
			c.Assert(code, qt.Equals, tt.code)
			c.Assert(msg, qt.Not(qt.Equals), "")
		})
	}
}
