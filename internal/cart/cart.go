// Package cart aggregates configured products into ordered, priced lines.
package cart

import (
	"kiosk/internal/combo"
	"kiosk/internal/model"

	"github.com/shopspring/decimal"
)

// Cart is the ordered list of lines of one kiosk session. Insertion order is
// display order. It is not safe for concurrent use.
type Cart struct {
	items []model.CartItem
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem appends one unit of a product as a new line.
func (c *Cart) AddItem(product model.Product, selections model.ComboSelections) error {
	return c.AddItemQuantity(product, selections, 1)
}

// AddItemQuantity appends a product as a new line. Lines are never merged so
// two combos with different sub-selections stay distinguishable.
//
// Completeness of the selections is the caller's responsibility; only the
// structural rule (selections present iff the product is a combo) is checked.
func (c *Cart) AddItemQuantity(product model.Product, selections model.ComboSelections, quantity int) error {
	if quantity <= 0 {
		return model.ErrInvalidQuantity
	}
	if product.IsCombo != (selections != nil) {
		return model.ErrInvalidCartItem
	}

	c.items = append(c.items, model.CartItem{
		Product:         product,
		Quantity:        quantity,
		ComboSelections: selections.Clone(),
	})
	return nil
}

// UpdateQuantity changes the quantity of a line; 0 removes it.
func (c *Cart) UpdateQuantity(index, quantity int) error {
	if index < 0 || index >= len(c.items) {
		return model.ErrCartItemNotFound
	}
	if quantity < 0 {
		return model.ErrInvalidQuantity
	}
	if quantity == 0 {
		return c.Remove(index)
	}
	c.items[index].Quantity = quantity
	return nil
}

// Remove deletes a line.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.items) {
		return model.ErrCartItemNotFound
	}
	c.items = append(c.items[:index:index], c.items[index+1:]...)
	return nil
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []model.CartItem {
	out := make([]model.CartItem, len(c.items))
	for i, item := range c.items {
		item.ComboSelections = item.ComboSelections.Clone()
		out[i] = item
	}
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.items = nil
}

// Total recomputes the order total from the current lines.
func (c *Cart) Total() decimal.Decimal {
	return Total(c.items)
}

// Total sums LineTotal over the given lines.
func Total(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item))
	}
	return total
}

// UnitPrice is the product price plus the line's combo surcharge.
func UnitPrice(item model.CartItem) decimal.Decimal {
	return item.Product.Price.Add(combo.Extra(item.ComboSelections))
}

// LineTotal is (price + combo extra) x quantity.
func LineTotal(item model.CartItem) decimal.Decimal {
	return UnitPrice(item).Mul(decimal.NewFromInt(int64(item.Quantity)))
}
