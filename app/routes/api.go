// Package routes declares the HTTP surface of the dashboard API.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/merchdesk/app/controllers"
	"github.com/shashiranjanraj/merchdesk/app/services"
	"github.com/shashiranjanraj/merchdesk/pkg/cache"
	"github.com/shashiranjanraj/merchdesk/pkg/metrics"
	"github.com/shashiranjanraj/merchdesk/pkg/middleware"
	"github.com/shashiranjanraj/merchdesk/pkg/response"
	"github.com/shashiranjanraj/merchdesk/pkg/router"
	"gorm.io/gorm"
)

// RegisterAPI wires every endpoint. Only signin, health and metrics are
// reachable without a session; everything else sits behind the auth gate.
func RegisterAPI(r *router.Router, db *gorm.DB, c *cache.Cache) {
	authController := controllers.NewAuthController(services.NewAuthService(db))
	dashboardController := controllers.NewDashboardController(services.NewAnalyticsService(db, c))
	catalogController := controllers.NewCatalogController(services.NewCatalogService(db))
	tableController := controllers.NewTableController(services.NewTableService(db, c))

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.HandleFunc("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.Post("/auth/signin", "auth.signin", authController.SignIn)

	protected := api.Group("", middleware.Auth)

	protected.Post("/auth/signout", "auth.signout", authController.SignOut)
	protected.Get("/auth/me", "auth.me", authController.Me)

	protected.Get("/dashboard", "dashboard.stats", dashboardController.Stats)

	protected.Get("/analytics/graphs", "analytics.graphs", dashboardController.Graphs)
	protected.Get("/analytics/advanced", "analytics.advanced", dashboardController.Advanced)
	protected.Get("/analytics/related/{productID}", "analytics.related", dashboardController.Related)

	protected.Get("/products", "catalog.products", catalogController.Products)
	protected.Get("/products/categories", "catalog.categories", catalogController.Categories)
	protected.Get("/products/{productID}", "catalog.show", catalogController.Show)
	protected.Get("/products/{productID}/reviews", "catalog.reviews", catalogController.Reviews)

	protected.Get("/tables", "tables.index", tableController.Tables)
	protected.Get("/tables/{table}/schema", "tables.schema", tableController.Schema)
	protected.Get("/tables/{table}/rows", "tables.rows", tableController.List)
	protected.Get("/tables/{table}/rows/{id}", "tables.show", tableController.Show)
	protected.Post("/tables/{table}/rows", "tables.create", tableController.Create)
	protected.Put("/tables/{table}/rows/{id}", "tables.update", tableController.Update)
	protected.Delete("/tables/{table}/rows/{id}", "tables.delete", tableController.Delete)
}
