package cart

import (
	"github.com/tfiz/storefront-go/internal/catalog"
)

// ItemSource resolves live catalog items. Lines hold id references only, so
// price and availability changes show up in the cart without re-adding.
type ItemSource interface {
	Get(id string) (catalog.Item, bool)
}

// Line is one cart entry. Quantity never drops below 1; removal is an
// explicit separate operation.
type Line struct {
	ItemID        string `json:"itemId"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
}

// Cart holds the visitor's selected lines in insertion order. It is owned by
// a single session; the session serializes access.
type Cart struct {
	source ItemSource
	lines  []Line
}

func New(source ItemSource) *Cart {
	return &Cart{source: source}
}

// Add puts one unit of the item in the cart. Unavailable items are a silent
// no-op. An existing line for the same id gets its quantity bumped and keeps
// its size/color selection; a new line defaults to the item's first declared
// option.
func (c *Cart) Add(item catalog.Item) {
	if !item.Availability {
		return
	}

	for i := range c.lines {
		if c.lines[i].ItemID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}

	line := Line{ItemID: item.ID, Quantity: 1}
	if len(item.Sizes) > 0 {
		line.SelectedSize = item.Sizes[0]
	}
	if len(item.Colors) > 0 {
		line.SelectedColor = item.Colors[0]
	}
	c.lines = append(c.lines, line)
}

// Remove deletes the line at index; later lines shift down. Out-of-range
// indexes are ignored.
func (c *Cart) Remove(index int) {
	if index < 0 || index >= len(c.lines) {
		return
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
}

// SetQuantity sets the line quantity, clamping to a minimum of 1. There is
// no upper bound.
func (c *Cart) SetQuantity(index, quantity int) {
	if index < 0 || index >= len(c.lines) {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	c.lines[index].Quantity = quantity
}

// Subtotal recomputes the live price sum on every call; nothing is cached.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, ln := range c.lines {
		item, ok := c.source.Get(ln.ItemID)
		if !ok {
			continue
		}
		total += item.Price * int64(ln.Quantity)
	}
	return total
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len reports the number of lines (not units).
func (c *Cart) Len() int {
	return len(c.lines)
}

// Clear empties the cart. Only a successful checkout commit calls this.
func (c *Cart) Clear() {
	c.lines = nil
}
