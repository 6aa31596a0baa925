package http

import (
	"net/http"

	"github.com/barberia-real/catalog-backend/internal/usecase"
	"github.com/barberia-real/catalog-backend/pkg/e"
	"github.com/barberia-real/catalog-backend/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Создает товар с вариацией и опциональным главным изображением
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name		formData	string	true	"Название товара"
//	@Param			price		formData	number	true	"Цена"
//	@Param			description	formData	string	false	"Описание"
//	@Param			brand		formData	string	false	"Бренд"
//	@Param			category_id	formData	integer	false	"ID категории"
//	@Param			sale_price	formData	number	false	"Цена со скидкой"
//	@Param			size		formData	string	false	"Размер вариации"
//	@Param			color		formData	string	false	"Цвет вариации"
//	@Param			image		formData	file	false	"Главное изображение"
//	@Success		201			{object}	ProductResponse	"Созданный товар"
//	@Failure		400			{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		409			{object}	ErrorResponse	"Имя товара занято"
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	req, err := parseCreateProductForm(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.Create(r.Context(), req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// listProducts
//
//	@Summary	Список активных товаров
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}	ProductResponse
//	@Router		/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.GetAll(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrProductResponse(products))
}

// getProduct
//
//	@Summary	Товар по ID
//	@Tags		products
//	@Produce	json
//	@Param		id	path		integer	true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse	"Товар не найден"
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.GetByID(r.Context(), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// updateProduct
//
//	@Summary		Частичное обновление товара
//	@Description	Обновляет только присланные поля; файл image заменяет набор изображений
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		integer	true	"ID товара"
//	@Param			image	formData	file	false	"Новое главное изображение"
//	@Success		200		{object}	ProductResponse
//	@Failure		404		{object}	ErrorResponse	"Товар не найден"
//	@Failure		409		{object}	ErrorResponse	"Имя товара занято"
//	@Router			/products/{id} [patch]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	req, err := parseUpdateProductForm(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.Update(r.Context(), id, req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// deleteProduct
//
//	@Summary		Удаление товара
//	@Description	Удаляет изображения и вариации, сам товар архивируется
//	@Tags			products
//	@Param			id	path	integer	true	"ID товара"
//	@Success		204	"Товар удалён"
//	@Failure		404	{object}	ErrorResponse	"Товар не найден"
//	@Router			/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.productUsecase.Remove(r.Context(), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
