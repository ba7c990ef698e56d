// internal/view/view.go
package view

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-api/internal/domain/cart"
)

// Badge is the cart badge projection: total unit count, hidden at zero.
type Badge struct {
	Count   int  `json:"count"`
	Visible bool `json:"visible"`
}

// RowEvents carries the structured event descriptors wired to a row's
// quantity stepper, direct-entry field, and remove action. The set event's
// quantity is filled in by the UI from the entry field.
type RowEvents struct {
	Increment cart.Event `json:"increment"`
	Decrement cart.Event `json:"decrement"`
	Set       cart.Event `json:"set"`
	Remove    cart.Event `json:"remove"`
}

// Row is the rendered projection of one cart line.
type Row struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice string    `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	LineTotal string    `json:"line_total"`
	Events    RowEvents `json:"events"`
}

// CartView is the full cart projection: badge, rows in cart order, and the
// formatted total. Placeholder is set instead of rows when the cart is
// empty. Rebuilt in full on every read; carts are small.
type CartView struct {
	Badge       Badge  `json:"badge"`
	Rows        []Row  `json:"rows"`
	Placeholder string `json:"placeholder,omitempty"`
	Total       string `json:"total"`
}

const emptyCartPlaceholder = "Your cart is empty"

// Render projects a cart snapshot into its view model. Pure function of the
// cart contents and the currency symbol.
func Render(c cart.Cart, currencySymbol string) CartView {
	count := c.UnitCount()

	v := CartView{
		Badge: Badge{
			Count:   count,
			Visible: count > 0,
		},
		Total: FormatAmount(c.Subtotal(), currencySymbol),
	}

	if c.IsEmpty() {
		v.Placeholder = emptyCartPlaceholder
		return v
	}

	v.Rows = make([]Row, len(c.Lines))
	for i, line := range c.Lines {
		v.Rows[i] = Row{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: FormatAmount(line.UnitPrice, currencySymbol),
			Quantity:  line.Quantity,
			LineTotal: FormatAmount(line.UnitPrice*int64(line.Quantity), currencySymbol),
			Events: RowEvents{
				Increment: cart.Event{Action: cart.ActionIncrement, ProductID: line.ProductID},
				Decrement: cart.Event{Action: cart.ActionDecrement, ProductID: line.ProductID},
				Set:       cart.Event{Action: cart.ActionSet, ProductID: line.ProductID, Quantity: line.Quantity},
				Remove:    cart.Event{Action: cart.ActionRemove, ProductID: line.ProductID},
			},
		}
	}

	return v
}

// FormatAmount renders minor currency units as a currency-prefixed
// two-decimal string.
func FormatAmount(minorUnits int64, currencySymbol string) string {
	amount := decimal.NewFromInt(minorUnits).Div(decimal.NewFromInt(100))
	return currencySymbol + amount.StringFixed(2)
}
