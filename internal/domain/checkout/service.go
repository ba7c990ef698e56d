// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/view"
	"gorm.io/gorm"
)

// Service drains a cart into an order at checkout
type Service struct {
	orderService   *order.Service
	validate       *validator.Validate
	logger         *logrus.Logger
	currencySymbol string
}

// NewService creates a new checkout service
func NewService(db *gorm.DB, logger *logrus.Logger, currencySymbol string) *Service {
	return &Service{
		orderService:   order.NewService(db),
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		logger:         logger,
		currencySymbol: currencySymbol,
	}
}

// ShippingForm holds the externally collected shipping fields. Field-level
// rules mirror the storefront form validation.
type ShippingForm struct {
	Email        string `json:"email" validate:"required,email"`
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"required,max=100"`
	AddressLine1 string `json:"address_line1" validate:"required,max=255"`
	AddressLine2 string `json:"address_line2" validate:"max=255"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"max=100"`
	PostalCode   string `json:"postal_code" validate:"required,max=20"`
	Country      string `json:"country" validate:"required,len=2"`
	Phone        string `json:"phone" validate:"max=20"`
}

// Result is the checkout outcome handed back to the storefront.
type Result struct {
	OrderNumber string `json:"order_number"`
	Total       int64  `json:"total"`
}

// PlaceOrder validates the shipping form, hands the cart sequence and total
// to order creation, and clears the cart only after the order is confirmed.
// On any failure the cart is left unchanged and the failure is surfaced
// through the manager's notifier.
func (s *Service) PlaceOrder(ctx context.Context, mgr *cart.Manager, userID *uint, form *ShippingForm) (*Result, error) {
	snapshot := mgr.Snapshot()
	if snapshot.IsEmpty() {
		mgr.Notifier().Error("Your cart is empty")
		return nil, fmt.Errorf("cart is empty")
	}

	if err := s.validate.Struct(form); err != nil {
		mgr.Notifier().Error("Please check your shipping details")
		return nil, fmt.Errorf("invalid shipping details: %w", err)
	}

	address := order.Address{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		AddressLine1: form.AddressLine1,
		AddressLine2: form.AddressLine2,
		City:         form.City,
		State:        form.State,
		PostalCode:   form.PostalCode,
		Country:      form.Country,
		Phone:        form.Phone,
	}

	ord, err := s.orderService.CreateFromCart(mgr.SessionID(), userID, form.Email, snapshot.Lines, address)
	if err != nil {
		// Cart state stays intact on failure; clearing happens only after
		// confirmed success.
		mgr.Notifier().Error(err.Error())
		return nil, fmt.Errorf("place order: %w", err)
	}

	if err := mgr.Clear(ctx); err != nil {
		// The order exists; a failed clear must not fail the checkout.
		s.logger.WithError(err).WithFields(logrus.Fields{
			"session_id":   mgr.SessionID(),
			"order_number": ord.OrderNumber,
		}).Error("Failed to clear cart after checkout")
	}

	mgr.Notifier().Success(fmt.Sprintf("Order %s placed, total %s", ord.OrderNumber, view.FormatAmount(ord.TotalAmount, s.currencySymbol)))

	return &Result{
		OrderNumber: ord.OrderNumber,
		Total:       ord.TotalAmount,
	}, nil
}
