// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/pkg/notify"
)

// Action identifies a structured cart event from the storefront UI.
type Action string

const (
	ActionIncrement Action = "increment"
	ActionDecrement Action = "decrement"
	ActionSet       Action = "set"
	ActionRemove    Action = "remove"
)

// Event is a structured descriptor for a cart mutation: action plus product
// ID plus quantity, dispatched through a single handler instead of
// string-built callbacks.
type Event struct {
	Action    Action `json:"action" binding:"required"`
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// Manager owns the cart state for one session. It is constructed explicitly
// (no shared singleton), hydrates from the store at construction, and
// persists write-through on every mutation before returning. Not safe for
// concurrent use; callers serialize access per session.
type Manager struct {
	sessionID string
	cart      Cart
	store     Store
	notifier  notify.Notifier
	logger    *logrus.Logger
}

// NewManager creates a cart manager for the given session and hydrates it
// from the store. Missing or corrupt persisted data initializes an empty
// cart rather than failing; the corrupt case is logged.
func NewManager(ctx context.Context, store Store, notifier notify.Notifier, logger *logrus.Logger, sessionID string) (*Manager, error) {
	m := &Manager{
		sessionID: sessionID,
		store:     store,
		notifier:  notifier,
		logger:    logger,
	}

	lines, status, err := store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("hydrate cart: %w", err)
	}
	if status == LoadCorrupt {
		logger.WithField("session_id", sessionID).Warn("Discarding corrupt persisted cart")
	}
	m.cart = Cart{Lines: lines}

	return m, nil
}

// AddToCart merges the product into the cart (one call adds one unit),
// persists, and emits a success notification.
func (m *Manager) AddToCart(ctx context.Context, p Product) error {
	m.cart.Add(p)

	if err := m.persist(ctx); err != nil {
		return err
	}

	m.notifier.Success(fmt.Sprintf("%s added to cart", p.Name))
	return nil
}

// RemoveFromCart removes the line with the given product ID. An absent ID
// is a silent no-op: no persistence write, no notification.
func (m *Manager) RemoveFromCart(ctx context.Context, productID uint) error {
	if !m.cart.Remove(productID) {
		return nil
	}

	if err := m.persist(ctx); err != nil {
		return err
	}

	m.notifier.Success("Item removed from cart")
	return nil
}

// UpdateQuantity sets the quantity for the given product ID, clamping
// requests <= 0 to 1. An absent ID is a silent no-op. No notification is
// emitted on success, distinguishing quantity edits from add/remove.
func (m *Manager) UpdateQuantity(ctx context.Context, productID uint, quantity int) error {
	if !m.cart.SetQuantity(productID, quantity) {
		return nil
	}

	return m.persist(ctx)
}

// Clear empties the cart and persists the empty state. Used by the checkout
// success path.
func (m *Manager) Clear(ctx context.Context) error {
	m.cart = Cart{Lines: []Line{}}
	return m.persist(ctx)
}

// Dispatch applies a structured cart event. Increment and decrement step
// the current quantity by one; set applies the given quantity; remove
// deletes the line. Unknown actions are rejected.
func (m *Manager) Dispatch(ctx context.Context, ev Event) error {
	switch ev.Action {
	case ActionIncrement, ActionDecrement:
		i := m.cart.Find(ev.ProductID)
		if i < 0 {
			return nil
		}
		delta := 1
		if ev.Action == ActionDecrement {
			delta = -1
		}
		return m.UpdateQuantity(ctx, ev.ProductID, m.cart.Lines[i].Quantity+delta)
	case ActionSet:
		return m.UpdateQuantity(ctx, ev.ProductID, ev.Quantity)
	case ActionRemove:
		return m.RemoveFromCart(ctx, ev.ProductID)
	default:
		return fmt.Errorf("unknown cart action %q", ev.Action)
	}
}

// Snapshot returns a copy of the current cart state for projection.
func (m *Manager) Snapshot() Cart {
	lines := make([]Line, len(m.cart.Lines))
	copy(lines, m.cart.Lines)
	return Cart{Lines: lines}
}

// Subtotal returns the current cart total in minor currency units.
func (m *Manager) Subtotal() int64 {
	return m.cart.Subtotal()
}

// UnitCount returns the current badge count.
func (m *Manager) UnitCount() int {
	return m.cart.UnitCount()
}

// SessionID returns the session this manager owns the cart for.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// Notifier returns the feedback emitter this manager was constructed with,
// so collaborators acting on the same session share one message stream.
func (m *Manager) Notifier() notify.Notifier {
	return m.notifier
}

func (m *Manager) persist(ctx context.Context) error {
	if err := m.store.Save(ctx, m.sessionID, m.cart.Lines); err != nil {
		m.logger.WithError(err).WithField("session_id", m.sessionID).Error("Failed to persist cart")
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
