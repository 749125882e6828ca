package services

import (
	"time"

	"github.com/shashiranjanraj/merchdesk/app/models"
	"github.com/shashiranjanraj/merchdesk/pkg/metrics"
	"gorm.io/gorm"
)

// catalogPageSize caps the product browser page. The browser is a scrolled
// list, not a paginator, so the cap doubles as the page size.
const catalogPageSize = 50

// reviewSorts maps the public sort keys onto ORDER BY clauses. Anything
// not in the map falls back to newest-first.
var reviewSorts = map[string]string{
	"newest":      "review_date DESC",
	"oldest":      "review_date ASC",
	"rating_high": "rating DESC, review_date DESC",
	"rating_low":  "rating ASC, review_date DESC",
}

// CatalogService serves the product browser: filterable product listings
// with sales rollups, and per-product review threads.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type CatalogProduct struct {
	models.Product
	UnitsSold   int64   `json:"units_sold"`
	ReviewCount int64   `json:"review_count"`
	AvgReview   float64 `json:"avg_review"`
}

type CatalogFilter struct {
	Category string
	Search   string
}

// ListProducts returns up to catalogPageSize products matching the filter,
// each annotated with lifetime units sold and its review rollup. Search
// matches a product-name substring or an exact product id.
func (s *CatalogService) ListProducts(filter CatalogFilter) ([]CatalogProduct, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	query := `
		SELECT p.*,
		       COALESCE(s.units_sold, 0) AS units_sold,
		       COALESCE(r.review_count, 0) AS review_count,
		       COALESCE(r.avg_review, 0) AS avg_review
		FROM products p
		LEFT JOIN (
			SELECT product_id, SUM(quantity) AS units_sold
			FROM order_items
			GROUP BY product_id
		) s ON s.product_id = p.product_id
		LEFT JOIN (
			SELECT product_id, COUNT(*) AS review_count, AVG(rating) AS avg_review
			FROM reviews
			GROUP BY product_id
		) r ON r.product_id = p.product_id
		WHERE 1 = 1`

	args := make([]any, 0, 3)
	if filter.Category != "" {
		query += ` AND p.category = ?`
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		// Substring on the name, or an exact id paste from another screen.
		query += ` AND (p.product_name LIKE ? OR p.product_id = ?)`
		args = append(args, "%"+filter.Search+"%", filter.Search)
	}
	query += ` ORDER BY units_sold DESC, p.product_id ASC LIMIT ?`
	args = append(args, catalogPageSize)

	out := make([]CatalogProduct, 0, catalogPageSize)
	err := s.db.Raw(query, args...).Scan(&out).Error
	return out, err
}

// Categories returns the distinct product categories, alphabetically.
func (s *CatalogService) Categories() ([]string, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	categories := make([]string, 0)
	err := s.db.Raw(
		`SELECT DISTINCT category FROM products ORDER BY category ASC`,
	).Scan(&categories).Error
	return categories, err
}

// ProductByID returns one product with its rollups, or nil when the id is
// unknown.
func (s *CatalogService) ProductByID(productID string) (*CatalogProduct, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var product CatalogProduct
	res := s.db.Raw(`
		SELECT p.*,
		       COALESCE(SUM(oi.quantity), 0) AS units_sold,
		       (SELECT COUNT(*) FROM reviews WHERE product_id = p.product_id) AS review_count,
		       (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = p.product_id) AS avg_review
		FROM products p
		LEFT JOIN order_items oi ON oi.product_id = p.product_id
		WHERE p.product_id = ?
		GROUP BY p.product_id`, productID,
	).Scan(&product)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &product, nil
}

type ProductReview struct {
	models.Review
	ReviewerName string `json:"reviewer_name"`
}

// ProductReviews returns a product's reviews with the reviewer's name,
// ordered by the given sort key ("newest", "oldest", "rating_high",
// "rating_low"; anything else means newest).
func (s *CatalogService) ProductReviews(productID, sort string) ([]ProductReview, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	orderBy, ok := reviewSorts[sort]
	if !ok {
		orderBy = reviewSorts["newest"]
	}

	reviews := make([]ProductReview, 0)
	err := s.db.Raw(`
		SELECT r.*, u.name AS reviewer_name
		FROM reviews r
		JOIN users u ON u.user_id = r.user_id
		WHERE r.product_id = ?
		ORDER BY `+orderBy, productID,
	).Scan(&reviews).Error
	return reviews, err
}
