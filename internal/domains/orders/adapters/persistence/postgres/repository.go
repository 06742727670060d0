package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-service/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
// The schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type lineItemRecord struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// orderRecord keeps line items as JSON and denormalizes their names into a
// text[] column so the product filter can use an index.
type orderRecord struct {
	ID           int64            `gorm:"primaryKey;column:id"`
	Products     []lineItemRecord `gorm:"column:products;type:jsonb;serializer:json"`
	ProductNames pq.StringArray   `gorm:"column:product_names;type:text[]"`
	Total        decimal.Decimal  `gorm:"column:total;type:decimal(10,2);not null"`
	CreatedAt    time.Time        `gorm:"column:created_at"`
}

func (orderRecord) TableName() string { return "orders" }

func (r *Repository) FindOrder(ctx context.Context, filter domain.Filter) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{})
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Total != nil {
		query = query.Where("total = ?", filter.Total.Round(2))
	}
	if filter.ProductName != "" {
		query = query.Where("? = ANY(product_names)", filter.ProductName)
	}
	var records []orderRecord
	if err := query.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) CreateNewOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	lines := make([]lineItemRecord, 0, len(order.Products))
	for _, line := range order.Products {
		lines = append(lines, lineItemRecord{Name: line.Name, Quantity: line.Quantity, Price: line.Price})
	}
	return orderRecord{
		ID:           order.ID,
		Products:     lines,
		ProductNames: pq.StringArray(order.ProductNames()),
		Total:        order.Total.Round(2),
	}
}

func (r orderRecord) toDomain() *domain.Order {
	lines := make([]domain.LineItem, 0, len(r.Products))
	for _, line := range r.Products {
		lines = append(lines, domain.LineItem{Name: line.Name, Quantity: line.Quantity, Price: line.Price})
	}
	return &domain.Order{
		ID:       r.ID,
		Products: lines,
		Total:    r.Total,
	}
}
