// internal/domain/order/service.go
package order

import (
	"fmt"

	"github.com/your-org/storefront-api/internal/domain/cart"
	"gorm.io/gorm"
)

// Service handles order persistence
type Service struct {
	db *gorm.DB
}

// NewService creates a new order service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateFromCart drains a cart sequence into a new order inside one
// transaction. The cart itself is not touched here; clearing it is the
// caller's responsibility and happens only after this returns successfully.
func (s *Service) CreateFromCart(sessionID string, userID *uint, email string, lines []cart.Line, address Address) (*Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("cannot create order from empty cart")
	}

	items := make([]OrderItem, len(lines))
	var subtotal int64
	for i, line := range lines {
		lineTotal := line.UnitPrice * int64(line.Quantity)
		items[i] = OrderItem{
			ProductID:  line.ProductID,
			Name:       line.Name,
			Quantity:   line.Quantity,
			Price:      line.UnitPrice,
			TotalPrice: lineTotal,
		}
		subtotal += lineTotal
	}

	ord := &Order{
		SessionID:       sessionID,
		UserID:          userID,
		Email:           email,
		Status:          StatusPending,
		SubtotalAmount:  subtotal,
		TotalAmount:     subtotal,
		ShippingAddress: address,
		Items:           items,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ord).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// Order number derives from the generated ID
		ord.OrderNumber = ord.GenerateOrderNumber()
		if err := tx.Model(ord).Update("order_number", ord.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to set order number: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return ord, nil
}

// GetByNumber retrieves an order with its items by order number
func (s *Service) GetByNumber(orderNumber string) (*Order, error) {
	var ord Order
	result := s.db.Preload("Items").Where("order_number = ?", orderNumber).First(&ord)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order %s not found", orderNumber)
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &ord, nil
}

// ListBySession retrieves orders placed under a session, newest first
func (s *Service) ListBySession(sessionID string) ([]Order, error) {
	var orders []Order
	if err := s.db.Preload("Items").Where("session_id = ?", sessionID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
