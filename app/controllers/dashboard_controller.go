package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/merchdesk/app/services"
	"github.com/shashiranjanraj/merchdesk/pkg/logger"
	"github.com/shashiranjanraj/merchdesk/pkg/response"
)

type DashboardController struct {
	service *services.AnalyticsService
}

func NewDashboardController(service *services.AnalyticsService) *DashboardController {
	return &DashboardController{service: service}
}

// Stats serves the KPI cards: revenue, order and user counts, recent
// orders and the VIP list.
func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.DashboardStats()
	if err != nil {
		logger.WithCtx(r.Context()).Error("dashboard stats failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Stats query failed")
		return
	}
	response.Success(w, stats)
}

// Graphs serves the chart datasets for the analytics page.
func (c *DashboardController) Graphs(w http.ResponseWriter, r *http.Request) {
	data, err := c.service.GraphData()
	if err != nil {
		logger.WithCtx(r.Context()).Error("graph data failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Graph query failed")
		return
	}
	response.Success(w, data)
}

// Advanced serves the heavier aggregates: monthly revenue, customer
// tiers, per-category leaders and the funnel.
func (c *DashboardController) Advanced(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.AdvancedStats()
	if err != nil {
		logger.WithCtx(r.Context()).Error("advanced stats failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Analytics query failed")
		return
	}
	response.Success(w, stats)
}

// Related serves the bought-together list for one product.
func (c *DashboardController) Related(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	related, err := c.service.RelatedProducts(productID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("related products failed", "product_id", productID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Related query failed")
		return
	}
	response.Success(w, related)
}
