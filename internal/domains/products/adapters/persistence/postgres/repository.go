package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
	"github.com/Apurer/go-gin-order-service/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the product catalog in PostgreSQL using GORM.
// The schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type productRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	Name      string          `gorm:"column:name;uniqueIndex"`
	Quantity  int64           `gorm:"column:quantity;not null;default:0"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

func (r *Repository) FindProduct(ctx context.Context, filter ports.Filter) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&productRecord{})
	if filter.ID != 0 {
		query = query.Where("id = ?", filter.ID)
	}
	if filter.Name != "" {
		query = query.Where("name = ?", filter.Name)
	}
	var record productRecord
	if err := query.Order("id").First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) CheckIsAvailableProduct(ctx context.Context, item domain.Item) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	err := r.db.WithContext(ctx).
		Where("name = ? AND quantity >= ?", item.Name, item.Quantity).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// UpdateProductInStock issues a single conditional UPDATE so concurrent
// decrements cannot oversell. A decrement the stock cannot cover updates no rows.
func (r *Repository) UpdateProductInStock(ctx context.Context, cmd domain.StockCommand) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if err := cmd.Validate(); err != nil {
		return err
	}
	amount := cmd.Amount()
	query := r.db.WithContext(ctx).Model(&productRecord{})
	switch cmd.Event {
	case domain.StockIncrement:
		query = query.Where("name = ?", cmd.Product.Name).
			Updates(map[string]any{"quantity": gorm.Expr("quantity + ?", amount), "updated_at": gorm.Expr("NOW()")})
	case domain.StockDecrement:
		query = query.Where("name = ? AND quantity >= ?", cmd.Product.Name, amount).
			Updates(map[string]any{"quantity": gorm.Expr("quantity - ?", amount), "updated_at": gorm.Expr("NOW()")})
	}
	return query.Error
}

// Save inserts a product or refreshes stock and price of an existing name.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   record.Quantity,
				"price":      record.Price,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.FindProduct(ctx, ports.Filter{Name: record.Name})
}

func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:       product.ID,
		Name:     product.Name,
		Quantity: product.Quantity,
		Price:    product.Price.Round(2),
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:       r.ID,
		Name:     r.Name,
		Quantity: r.Quantity,
		Price:    r.Price,
	}
}
