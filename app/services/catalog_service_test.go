package services_test

import (
	"testing"

	"github.com/shashiranjanraj/merchdesk/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProductsRollups(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCatalogService(db)

	seedUser(t, db, "U_1", "Asha", "Mumbai")
	seedProduct(t, db, "P_1", "Headphones", "Electronics", 100)
	seedProduct(t, db, "P_2", "Hoodie", "Clothing", 80)
	seedOrder(t, db, "O_1", "U_1", 300, "2026-01-01")
	seedItem(t, db, "OI_1", "O_1", "P_1", "U_1", 3, 100)
	exec(t, db, `INSERT INTO reviews (review_id, order_id, product_id, user_id, rating, review_text, review_date)
		VALUES ('R_1','O_1','P_1','U_1',5,'Great','2026-01-05'),
		       ('R_2','O_1','P_1','U_1',3,'OK','2026-01-06')`)

	products, err := svc.ListProducts(services.CatalogFilter{})
	require.NoError(t, err)
	require.Len(t, products, 2)

	// Best seller first.
	assert.Equal(t, "P_1", products[0].ProductID)
	assert.Equal(t, int64(3), products[0].UnitsSold)
	assert.Equal(t, int64(2), products[0].ReviewCount)
	assert.Equal(t, 4.0, products[0].AvgReview)

	// Never sold, never reviewed: zeros, not NULL scan failures.
	assert.Equal(t, "P_2", products[1].ProductID)
	assert.Equal(t, int64(0), products[1].UnitsSold)
	assert.Equal(t, int64(0), products[1].ReviewCount)
}

func TestListProductsFilters(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCatalogService(db)

	seedProduct(t, db, "P_1", "Noise-Cancelling Headphones", "Electronics", 250)
	seedProduct(t, db, "P_2", "Merino Hoodie", "Clothing", 90)
	seedProduct(t, db, "P_3", "Mechanical Keyboard", "Electronics", 120)

	byCategory, err := svc.ListProducts(services.CatalogFilter{Category: "Clothing"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "P_2", byCategory[0].ProductID)

	bySearch, err := svc.ListProducts(services.CatalogFilter{Search: "keyboard"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "P_3", bySearch[0].ProductID)

	byID, err := svc.ListProducts(services.CatalogFilter{Search: "P_2"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "P_2", byID[0].ProductID)

	both, err := svc.ListProducts(services.CatalogFilter{Category: "Electronics", Search: "hoodie"})
	require.NoError(t, err)
	assert.Empty(t, both)
}

func TestCategories(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCatalogService(db)

	seedProduct(t, db, "P_1", "Headphones", "Electronics", 100)
	seedProduct(t, db, "P_2", "Keyboard", "Electronics", 120)
	seedProduct(t, db, "P_3", "Hoodie", "Clothing", 90)

	categories, err := svc.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Clothing", "Electronics"}, categories)
}

func TestProductByIDUnknownIsNil(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCatalogService(db)

	product, err := svc.ProductByID("GHOST")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestProductReviewsSorting(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCatalogService(db)

	seedUser(t, db, "U_1", "Asha", "Mumbai")
	seedProduct(t, db, "P_1", "Headphones", "Electronics", 100)
	seedOrder(t, db, "O_1", "U_1", 100, "2026-01-01")
	exec(t, db, `INSERT INTO reviews (review_id, order_id, product_id, user_id, rating, review_text, review_date)
		VALUES ('R_OLD','O_1','P_1','U_1',5,'Early','2026-01-02'),
		       ('R_MID','O_1','P_1','U_1',1,'Middling','2026-01-10'),
		       ('R_NEW','O_1','P_1','U_1',3,'Late','2026-01-20')`)

	newest, err := svc.ProductReviews("P_1", "newest")
	require.NoError(t, err)
	require.Len(t, newest, 3)
	assert.Equal(t, "R_NEW", newest[0].ReviewID)
	assert.Equal(t, "Asha", newest[0].ReviewerName)

	oldest, err := svc.ProductReviews("P_1", "oldest")
	require.NoError(t, err)
	assert.Equal(t, "R_OLD", oldest[0].ReviewID)

	high, err := svc.ProductReviews("P_1", "rating_high")
	require.NoError(t, err)
	assert.Equal(t, "R_OLD", high[0].ReviewID) // rating 5

	low, err := svc.ProductReviews("P_1", "rating_low")
	require.NoError(t, err)
	assert.Equal(t, "R_MID", low[0].ReviewID) // rating 1

	// Unknown sort keys fall back to newest, not an error.
	fallback, err := svc.ProductReviews("P_1", "; DROP TABLE reviews")
	require.NoError(t, err)
	assert.Equal(t, "R_NEW", fallback[0].ReviewID)
}
