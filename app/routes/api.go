// Package routes wires the HTTP surface: webhook receiver, catalogue
// API, health and metrics.
package routes

import (
	"github.com/popays/backend/app/controllers"
	"github.com/popays/backend/config"
	"github.com/popays/backend/pkg/metrics"
	"github.com/popays/backend/pkg/middleware"
	"github.com/popays/backend/pkg/reqid"
	"github.com/popays/backend/pkg/router"
)

// Register mounts every route and the shared middleware stack.
func Register(
	r *router.Router,
	cfg *config.Config,
	webhook *controllers.WebhookController,
	cat *controllers.CatalogController,
) {
	r.Use(
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions(cfg.CORSOrigins)),
		metrics.Middleware(),
	)

	r.Post("/webhook", "webhook.receive", webhook.Receive)
	r.Get("/health", "health", webhook.Health)
	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")
	api.Get("/categories", "categories.list", cat.ListCategories)
	api.Post("/categories", "categories.create", cat.CreateCategory)
	api.Put("/categories/{id}", "categories.update", cat.UpdateCategory)
	api.Delete("/categories/{id}", "categories.delete", cat.DeleteCategory)

	api.Get("/products", "products.list", cat.ListProducts)
	api.Post("/products", "products.create", cat.CreateProduct)
	api.Put("/products/{id}", "products.update", cat.UpdateProduct)
	api.Delete("/products/{id}", "products.delete", cat.DeleteProduct)
	api.Put("/products/{id}/image", "products.image", cat.UpdateProductImage)
}
