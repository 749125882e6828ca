package models

// Product is a catalogue entry. Price is non-negative; Rating is the
// seller-maintained 0–5 score (per-order review scores live in reviews).
type Product struct {
	ProductID   string  `gorm:"column:product_id;primaryKey" json:"product_id"`
	ProductName string  `gorm:"column:product_name"          json:"product_name"`
	Category    string  `gorm:"column:category"              json:"category"`
	Brand       string  `gorm:"column:brand"                 json:"brand"`
	Price       float64 `gorm:"column:price"                 json:"price"`
	Rating      float64 `gorm:"column:rating"                json:"rating"`
}

func (Product) TableName() string { return "products" }
