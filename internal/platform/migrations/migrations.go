package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the products and orders contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&orderRecord{},
	)
}

// Product schema mirrors the products Postgres adapter. Stock is never
// negative.
type productRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	Name      string          `gorm:"column:name;uniqueIndex"`
	Quantity  int64           `gorm:"column:quantity;not null;default:0;check:chk_products_quantity_non_negative,quantity >= 0"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type lineItemRecord struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID           int64            `gorm:"primaryKey;column:id"`
	Products     []lineItemRecord `gorm:"column:products;type:jsonb;serializer:json"`
	ProductNames pq.StringArray   `gorm:"column:product_names;type:text[];index:idx_orders_product_names,type:gin"`
	Total        decimal.Decimal  `gorm:"column:total;type:decimal(10,2);not null;index"`
	CreatedAt    time.Time        `gorm:"column:created_at;index"`
}

func (orderRecord) TableName() string { return "orders" }
