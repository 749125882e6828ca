package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/merchdesk/app/services"
	"github.com/shashiranjanraj/merchdesk/pkg/logger"
	"github.com/shashiranjanraj/merchdesk/pkg/response"
)

type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

// Products lists catalog entries with their sales and review rollups.
// Filters come from the query string: ?category=...&search=...
func (c *CatalogController) Products(w http.ResponseWriter, r *http.Request) {
	filter := services.CatalogFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	products, err := c.service.ListProducts(filter)
	if err != nil {
		logger.WithCtx(r.Context()).Error("product list failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Product query failed")
		return
	}
	response.Success(w, products)
}

// Categories lists the distinct categories for the filter dropdown.
func (c *CatalogController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.service.Categories()
	if err != nil {
		logger.WithCtx(r.Context()).Error("category list failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Category query failed")
		return
	}
	response.Success(w, categories)
}

// Show returns one product with its rollups.
func (c *CatalogController) Show(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	product, err := c.service.ProductByID(productID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("product lookup failed", "product_id", productID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Product query failed")
		return
	}
	if product == nil {
		response.NotFound(w)
		return
	}
	response.Success(w, product)
}

// Reviews lists a product's reviews. Sort comes from ?sort= (newest,
// oldest, rating_high, rating_low).
func (c *CatalogController) Reviews(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	sort := r.URL.Query().Get("sort")

	reviews, err := c.service.ProductReviews(productID, sort)
	if err != nil {
		logger.WithCtx(r.Context()).Error("review list failed", "product_id", productID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Review query failed")
		return
	}
	response.Success(w, reviews)
}
