package services

import (
	"time"

	"github.com/shashiranjanraj/merchdesk/app/models"
	"github.com/shashiranjanraj/merchdesk/pkg/cache"
	"github.com/shashiranjanraj/merchdesk/pkg/metrics"
	"gorm.io/gorm"
)

// vipThreshold is the lifetime spend above which a customer counts as VIP.
const vipThreshold = 500.0

// Cache keys for the derived aggregates. Every CRUD mutation drops all of
// them, since any table change can move any of these numbers.
const (
	keyDashboardStats = "merchdesk:dashboard:stats"
	keyGraphData      = "merchdesk:analytics:graphs"
	keyAdvancedStats  = "merchdesk:analytics:advanced"

	aggregateTTL = time.Minute
)

// AnalyticsService computes the derived dashboard and analytics views.
// Every operation is a pure read of the store's current state.
type AnalyticsService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewAnalyticsService(db *gorm.DB, c *cache.Cache) *AnalyticsService {
	return &AnalyticsService{db: db, cache: c}
}

// ─── Dashboard ────────────────────────────────────────────────────────────────

type RecentOrder struct {
	OrderID     string    `json:"order_id"`
	Name        string    `json:"name"`
	TotalAmount float64   `json:"total_amount"`
	OrderStatus string    `json:"order_status"`
	OrderDate   time.Time `json:"order_date"`
}

type TopSpender struct {
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	OrderCount int     `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
}

type DashboardStats struct {
	Revenue      float64       `json:"revenue"`
	OrdersCount  int64         `json:"orders_count"`
	UsersCount   int64         `json:"users_count"`
	RecentOrders []RecentOrder `json:"recent_orders"`
	TopSpenders  []TopSpender  `json:"top_spenders"`
}

// DashboardStats returns the KPI card numbers, the five most recent orders
// and up to five VIP customers (lifetime spend above the fixed threshold).
func (s *AnalyticsService) DashboardStats() (*DashboardStats, error) {
	var out DashboardStats
	if s.cache.Get(keyDashboardStats, &out) {
		metrics.CacheHits.WithLabelValues("dashboard").Inc()
		return &out, nil
	}
	metrics.CacheMisses.WithLabelValues("dashboard").Inc()
	defer metrics.ObserveDBQuery("select", time.Now())

	var orderTotals struct {
		Count int64
		Total float64
	}
	if err := s.db.Raw(
		`SELECT COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total FROM orders`,
	).Scan(&orderTotals).Error; err != nil {
		return nil, err
	}

	var usersCount int64
	if err := s.db.Raw(`SELECT COUNT(*) FROM users`).Scan(&usersCount).Error; err != nil {
		return nil, err
	}

	recent := make([]RecentOrder, 0, 5)
	if err := s.db.Raw(`
		SELECT o.order_id, u.name, o.total_amount, o.order_status, o.order_date
		FROM orders o
		JOIN users u ON o.user_id = u.user_id
		ORDER BY o.order_date DESC
		LIMIT 5`,
	).Scan(&recent).Error; err != nil {
		return nil, err
	}

	spenders := make([]TopSpender, 0, 5)
	if err := s.db.Raw(`
		SELECT o.user_id, u.name, COUNT(o.order_id) AS order_count, SUM(o.total_amount) AS total_spent
		FROM orders o
		JOIN users u ON o.user_id = u.user_id
		GROUP BY o.user_id, u.name
		HAVING SUM(o.total_amount) > ?
		ORDER BY total_spent DESC
		LIMIT 5`, vipThreshold,
	).Scan(&spenders).Error; err != nil {
		return nil, err
	}

	out = DashboardStats{
		Revenue:      orderTotals.Total,
		OrdersCount:  orderTotals.Count,
		UsersCount:   usersCount,
		RecentOrders: recent,
		TopSpenders:  spenders,
	}

	_ = s.cache.Set(keyDashboardStats, out, aggregateTTL)
	return &out, nil
}

// ─── Graphs ───────────────────────────────────────────────────────────────────

type CategoryStat struct {
	Category  string  `json:"category"`
	Revenue   float64 `json:"revenue"`
	AvgRating float64 `json:"avg_rating"`
}

type CityStat struct {
	City  string `json:"city"`
	Users int64  `json:"users"`
}

type ProductSales struct {
	ProductName string `json:"product_name"`
	TotalSold   int64  `json:"total_sold"`
}

type RatingBucket struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

type GraphData struct {
	CategoryStats   []CategoryStat   `json:"category_stats"`
	DeadInventory   []models.Product `json:"dead_inventory"`
	TopCities       []CityStat       `json:"top_cities"`
	TopSelling      []ProductSales   `json:"top_selling"`
	RatingHistogram []RatingBucket   `json:"rating_histogram"`
}

// GraphData feeds the analytics charts: per-category revenue and rating,
// the dead-inventory report, the top-10 cities by user count, the top-10
// selling products, and the review rating histogram.
func (s *AnalyticsService) GraphData() (*GraphData, error) {
	var out GraphData
	if s.cache.Get(keyGraphData, &out) {
		metrics.CacheHits.WithLabelValues("graphs").Inc()
		return &out, nil
	}
	metrics.CacheMisses.WithLabelValues("graphs").Inc()
	defer metrics.ObserveDBQuery("select", time.Now())

	// Revenue is pre-aggregated per product so AVG(rating) stays a plain
	// per-product average instead of being weighted by line items.
	out.CategoryStats = make([]CategoryStat, 0)
	if err := s.db.Raw(`
		SELECT p.category, COALESCE(SUM(s.revenue), 0) AS revenue, AVG(p.rating) AS avg_rating
		FROM products p
		LEFT JOIN (
			SELECT product_id, SUM(item_total) AS revenue
			FROM order_items
			GROUP BY product_id
		) s ON s.product_id = p.product_id
		GROUP BY p.category
		ORDER BY revenue DESC`,
	).Scan(&out.CategoryStats).Error; err != nil {
		return nil, err
	}

	// Dead inventory: a product is dead when the left join finds no sale.
	out.DeadInventory = make([]models.Product, 0)
	if err := s.db.Raw(`
		SELECT p.*
		FROM products p
		LEFT JOIN order_items oi ON oi.product_id = p.product_id
		WHERE oi.order_item_id IS NULL
		ORDER BY p.product_id`,
	).Scan(&out.DeadInventory).Error; err != nil {
		return nil, err
	}

	out.TopCities = make([]CityStat, 0, 10)
	if err := s.db.Raw(`
		SELECT city, COUNT(*) AS users
		FROM users
		GROUP BY city
		ORDER BY users DESC
		LIMIT 10`,
	).Scan(&out.TopCities).Error; err != nil {
		return nil, err
	}

	out.TopSelling = make([]ProductSales, 0, 10)
	if err := s.db.Raw(`
		SELECT p.product_name, SUM(oi.quantity) AS total_sold
		FROM order_items oi
		JOIN products p ON oi.product_id = p.product_id
		GROUP BY p.product_name
		ORDER BY total_sold DESC
		LIMIT 10`,
	).Scan(&out.TopSelling).Error; err != nil {
		return nil, err
	}

	out.RatingHistogram = make([]RatingBucket, 0, 5)
	if err := s.db.Raw(`
		SELECT rating, COUNT(*) AS count FROM reviews GROUP BY rating ORDER BY rating`,
	).Scan(&out.RatingHistogram).Error; err != nil {
		return nil, err
	}

	_ = s.cache.Set(keyGraphData, out, aggregateTTL)
	return &out, nil
}

// ─── Advanced stats ───────────────────────────────────────────────────────────

type MonthlyRevenue struct {
	Month   string  `json:"month"` // calendar year-month, e.g. "2026-01"
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

type CustomerSegment struct {
	Tier      string  `json:"tier"` // Gold | Silver | Bronze
	Customers int64   `json:"customers"`
	AvgSpent  float64 `json:"avg_spent"`
}

type CategoryTopProduct struct {
	Category    string `json:"category"`
	ProductName string `json:"product_name"`
	UnitsSold   int64  `json:"units_sold"`
}

type Funnel struct {
	Viewed      int64 `json:"viewed"`
	AddedToCart int64 `json:"added_to_cart"`
	Purchased   int64 `json:"purchased"`
}

type AdvancedStats struct {
	MonthlyRevenue   []MonthlyRevenue     `json:"monthly_revenue"`
	CustomerSegments []CustomerSegment    `json:"customer_segments"`
	TopByCategory    []CategoryTopProduct `json:"top_by_category"`
	Funnel           Funnel               `json:"funnel"`
}

// AdvancedStats returns the heavier aggregates: the 12 most recent months
// of revenue (ascending), the Gold/Silver/Bronze customer tiers, the top-3
// products per category by units sold, and the behavioral funnel.
func (s *AnalyticsService) AdvancedStats() (*AdvancedStats, error) {
	var out AdvancedStats
	if s.cache.Get(keyAdvancedStats, &out) {
		metrics.CacheHits.WithLabelValues("advanced").Inc()
		return &out, nil
	}
	metrics.CacheMisses.WithLabelValues("advanced").Inc()
	defer metrics.ObserveDBQuery("select", time.Now())

	out.MonthlyRevenue = make([]MonthlyRevenue, 0, 12)
	if err := s.db.Raw(`
		SELECT month, revenue, orders FROM (
			SELECT strftime('%Y-%m', order_date) AS month,
			       SUM(total_amount) AS revenue,
			       COUNT(*) AS orders
			FROM orders
			GROUP BY month
			ORDER BY month DESC
			LIMIT 12
		)
		ORDER BY month ASC`,
	).Scan(&out.MonthlyRevenue).Error; err != nil {
		return nil, err
	}

	// Every user with at least one order lands in exactly one tier, so the
	// bucket counts sum to the number of distinct customers.
	out.CustomerSegments = make([]CustomerSegment, 0, 3)
	if err := s.db.Raw(`
		SELECT tier, COUNT(*) AS customers, AVG(spent) AS avg_spent FROM (
			SELECT o.user_id,
			       SUM(o.total_amount) AS spent,
			       CASE
			           WHEN SUM(o.total_amount) > 1000 THEN 'Gold'
			           WHEN SUM(o.total_amount) > 500 THEN 'Silver'
			           ELSE 'Bronze'
			       END AS tier
			FROM orders o
			GROUP BY o.user_id
		)
		GROUP BY tier
		ORDER BY CASE tier WHEN 'Gold' THEN 0 WHEN 'Silver' THEN 1 ELSE 2 END`,
	).Scan(&out.CustomerSegments).Error; err != nil {
		return nil, err
	}

	// ROW_NUMBER (not RANK) so ties resolve by the store's stable order and
	// each category yields at most three rows.
	out.TopByCategory = make([]CategoryTopProduct, 0)
	if err := s.db.Raw(`
		SELECT category, product_name, units_sold FROM (
			SELECT p.category AS category,
			       p.product_name AS product_name,
			       SUM(oi.quantity) AS units_sold,
			       ROW_NUMBER() OVER (
			           PARTITION BY p.category
			           ORDER BY SUM(oi.quantity) DESC
			       ) AS rn
			FROM order_items oi
			JOIN products p ON oi.product_id = p.product_id
			GROUP BY p.product_id
		)
		WHERE rn <= 3
		ORDER BY category ASC, rn ASC`,
	).Scan(&out.TopByCategory).Error; err != nil {
		return nil, err
	}

	var stages []struct {
		EventType string
		Users     int64
	}
	if err := s.db.Raw(`
		SELECT event_type, COUNT(DISTINCT user_id) AS users
		FROM events
		GROUP BY event_type`,
	).Scan(&stages).Error; err != nil {
		return nil, err
	}
	for _, stage := range stages {
		switch stage.EventType {
		case models.EventView:
			out.Funnel.Viewed = stage.Users
		case models.EventCart:
			out.Funnel.AddedToCart = stage.Users
		case models.EventPurchase:
			out.Funnel.Purchased = stage.Users
		}
	}

	_ = s.cache.Set(keyAdvancedStats, out, aggregateTTL)
	return &out, nil
}

// ─── Related products ─────────────────────────────────────────────────────────

type RelatedProduct struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Category     string  `json:"category"`
	Brand        string  `json:"brand"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	SharedOrders int64   `json:"shared_orders"`
}

// RelatedProducts returns the top-3 products most often bought in the same
// order as the given one. The product itself is excluded by the self-join
// condition; an unknown id simply yields an empty slice.
func (s *AnalyticsService) RelatedProducts(productID string) ([]RelatedProduct, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	related := make([]RelatedProduct, 0, 3)
	err := s.db.Raw(`
		SELECT p.product_id, p.product_name, p.category, p.brand, p.price, p.rating,
		       COUNT(DISTINCT a.order_id) AS shared_orders
		FROM order_items a
		JOIN order_items b ON b.order_id = a.order_id AND b.product_id <> a.product_id
		JOIN products p ON p.product_id = b.product_id
		WHERE a.product_id = ?
		GROUP BY p.product_id
		ORDER BY shared_orders DESC
		LIMIT 3`, productID,
	).Scan(&related).Error
	return related, err
}
