// internal/domain/cart/entity.go
package cart

// Line represents one product line in the cart. Name and UnitPrice are
// captured when the product is first added and never re-fetched.
type Line struct {
	ProductID uint   `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"price"` // Minor currency units (cents)
	Quantity  int    `json:"quantity"`
}

// Product is the read-only catalog reference consumed by Add.
type Product struct {
	ID    uint
	Name  string
	Price int64
}

// Cart is an ordered sequence of lines, insertion order preserved.
// ProductID is unique across lines; Quantity is always >= 1.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Find returns the index of the line with the given product ID, or -1.
func (c *Cart) Find(productID uint) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add merges a product into the cart: an existing line has its quantity
// incremented by 1, otherwise a new line is appended with quantity 1.
// Deliberately not idempotent: one call adds one unit.
func (c *Cart) Add(p Product) {
	if i := c.Find(p.ID); i >= 0 {
		c.Lines[i].Quantity++
		return
	}
	c.Lines = append(c.Lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
	})
}

// Remove deletes the line with the given product ID and reports whether a
// line was removed. Removing an absent ID is a no-op, not an error.
func (c *Cart) Remove(productID uint) bool {
	i := c.Find(productID)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

// SetQuantity sets the quantity of the line with the given product ID and
// reports whether a line matched. Requested quantities <= 0 clamp to 1;
// setting 0 never removes the line.
func (c *Cart) SetQuantity(productID uint, quantity int) bool {
	i := c.Find(productID)
	if i < 0 {
		return false
	}
	if quantity < 1 {
		quantity = 1
	}
	c.Lines[i].Quantity = quantity
	return true
}

// Subtotal returns the sum of UnitPrice * Quantity over all lines.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}

// UnitCount returns the sum of all line quantities (the badge count).
func (c *Cart) UnitCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
