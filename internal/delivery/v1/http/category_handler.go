package http

import (
	"encoding/json"
	"net/http"

	"github.com/barberia-real/catalog-backend/internal/usecase"
	"github.com/barberia-real/catalog-backend/pkg/e"
	"github.com/barberia-real/catalog-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

type CategoryHandler struct {
	categoryUsecase usecase.CategoryUC
	logger          logger.Logger
}

func NewCategoryHandler(categoryUsecase usecase.CategoryUC, logger logger.Logger) *CategoryHandler {
	return &CategoryHandler{categoryUsecase: categoryUsecase, logger: logger}
}

type createCategoryRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	ParentID     *int64  `json:"parent_id"`
	ImageURL     *string `json:"image_url"`
	DisplayOrder *int32  `json:"display_order"`
}

type updateCategoryRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	ParentID     *int64  `json:"parent_id"`
	ImageURL     *string `json:"image_url"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int32  `json:"display_order"`
}

// createCategory
//
//	@Summary	Создание категории
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		category	body		createCategoryRequest	true	"Категория"
//	@Success	201			{object}	CategoryResponse
//	@Failure	400			{object}	ErrorResponse	"Ошибка валидации"
//	@Failure	409			{object}	ErrorResponse	"Имя категории занято"
//	@Router		/categories [post]
func (c *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var body createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest))
		return
	}

	category, err := c.categoryUsecase.Create(r.Context(), &usecase.CreateCategoryReq{
		Name:         body.Name,
		Description:  body.Description,
		ParentID:     body.ParentID,
		ImageURL:     body.ImageURL,
		DisplayOrder: body.DisplayOrder,
	})
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toCategoryResponse(category))
}

// listCategories
//
//	@Summary	Список категорий
//	@Tags		categories
//	@Produce	json
//	@Success	200	{array}	CategoryResponse
//	@Router		/categories [get]
func (c *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categoryUsecase.GetAll(r.Context())
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrCategoryResponse(categories))
}

// getCategory
//
//	@Summary	Категория по ID
//	@Tags		categories
//	@Produce	json
//	@Param		id	path		integer	true	"ID категории"
//	@Success	200	{object}	CategoryResponse
//	@Failure	404	{object}	ErrorResponse	"Категория не найдена"
//	@Router		/categories/{id} [get]
func (c *CategoryHandler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	category, err := c.categoryUsecase.GetByID(r.Context(), id)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryResponse(category))
}

// updateCategory
//
//	@Summary	Частичное обновление категории
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		id			path		integer					true	"ID категории"
//	@Param		category	body		updateCategoryRequest	true	"Изменяемые поля"
//	@Success	200			{object}	CategoryResponse
//	@Failure	404			{object}	ErrorResponse	"Категория не найдена"
//	@Router		/categories/{id} [patch]
func (c *CategoryHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var body updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest))
		return
	}

	category, err := c.categoryUsecase.Update(r.Context(), id, &usecase.UpdateCategoryReq{
		Name:         body.Name,
		Description:  body.Description,
		ParentID:     body.ParentID,
		ImageURL:     body.ImageURL,
		IsActive:     body.IsActive,
		DisplayOrder: body.DisplayOrder,
	})
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryResponse(category))
}

// deleteCategory
//
//	@Summary	Удаление категории
//	@Tags		categories
//	@Param		id	path	integer	true	"ID категории"
//	@Success	204	"Категория удалена"
//	@Failure	404	{object}	ErrorResponse	"Категория не найдена"
//	@Router		/categories/{id} [delete]
func (c *CategoryHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := c.categoryUsecase.Remove(r.Context(), id); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
