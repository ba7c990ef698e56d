// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/product"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger *logrus.Logger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("Running database auto-migrations")

	models := []interface{}{
		&product.Product{},
		&order.Order{},
		&order.OrderItem{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.Info("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_active ON products(is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_sku ON products(sku)",
		"CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug)",

		"CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE INDEX IF NOT EXISTS idx_orders_session_id ON orders(session_id)",
		"CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",
	}

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.logger.WithError(err).Warn("Failed to create index")
		}
	}

	return nil
}

// SeedInitialData inserts starter catalog rows when the table is empty
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	m.logger.Info("Seeding catalog products")

	products := []product.Product{
		{
			SKU:         "TSHIRT-001",
			Name:        "Classic T-Shirt",
			Slug:        "classic-t-shirt",
			Description: "Soft cotton crew-neck t-shirt",
			Price:       1999,
			IsActive:    true,
		},
		{
			SKU:         "MUG-001",
			Name:        "Ceramic Mug",
			Slug:        "ceramic-mug",
			Description: "350ml ceramic mug with matte finish",
			Price:       1250,
			IsActive:    true,
		},
		{
			SKU:         "HOODIE-001",
			Name:        "Zip Hoodie",
			Slug:        "zip-hoodie",
			Description: "Fleece-lined zip hoodie",
			Price:       4999,
			IsActive:    true,
		},
		{
			SKU:         "STICKER-001",
			Name:        "Sticker Pack",
			Slug:        "sticker-pack",
			Description: "Set of six vinyl stickers",
			Price:       599,
			IsActive:    true,
		},
	}

	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	return nil
}
