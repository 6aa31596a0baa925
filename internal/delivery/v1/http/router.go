package http

import (
	_ "github.com/barberia-real/catalog-backend/docs" // Импорт сгенерированных файлов
	"github.com/barberia-real/catalog-backend/internal/usecase"
	"github.com/barberia-real/catalog-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(prUC usecase.ProductUC, catUC usecase.CategoryUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		prHandler := NewProductHandler(prUC, r.logger)
		registerProductRoutes(v1, prHandler)

		catHandler := NewCategoryHandler(catUC, r.logger)
		registerCategoryRoutes(v1, catHandler)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", prHandler.createProduct)
		pr.Get("/", prHandler.listProducts)
		pr.Get("/{id}", prHandler.getProduct)
		pr.Patch("/{id}", prHandler.updateProduct)
		pr.Delete("/{id}", prHandler.deleteProduct)
	})
}

func registerCategoryRoutes(router chi.Router, catHandler *CategoryHandler) {
	router.Route("/categories", func(cat chi.Router) {
		cat.Post("/", catHandler.createCategory)
		cat.Get("/", catHandler.listCategories)
		cat.Get("/{id}", catHandler.getCategory)
		cat.Patch("/{id}", catHandler.updateCategory)
		cat.Delete("/{id}", catHandler.deleteCategory)
	})
}
