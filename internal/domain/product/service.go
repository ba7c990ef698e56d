// internal/domain/product/service.go
package product

import (
	"fmt"

	"github.com/your-org/storefront-api/internal/domain/cart"
	"gorm.io/gorm"
)

// Service handles catalog reads
type Service struct {
	db *gorm.DB
}

// NewService creates a new product service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get retrieves an active product by ID
func (s *Service) Get(id uint) (*Product, error) {
	var prod Product
	result := s.db.Where("id = ? AND is_active = ?", id, true).First(&prod)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product %d not found or inactive", id)
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &prod, nil
}

// List retrieves all active products in catalog order
func (s *Service) List() ([]Product, error) {
	var products []Product
	if err := s.db.Where("is_active = ?", true).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// CartRef converts a catalog product into the read-only reference the cart
// consumes, freezing the price at add time.
func (p *Product) CartRef() cart.Product {
	return cart.Product{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
	}
}
