package entity

// LineItem is one product entry in the cart with an independent quantity.
// Price is a normalized integer in minor-unit-agnostic form; quantity is
// always >= 1 (absence is represented by removal, never by zero).
type LineItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image,omitempty"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size,omitempty"`
}

// QuantityChange is the direction of a single-step quantity adjustment.
type QuantityChange string

const (
	QuantityIncrease QuantityChange = "increase"
	QuantityDecrease QuantityChange = "decrease"
)

// Valid reports whether the change is one of the two known directions.
func (c QuantityChange) Valid() bool {
	return c == QuantityIncrease || c == QuantityDecrease
}

// Cart is an insertion-ordered quantity ledger keyed by product id.
// Items are unique by id; merging, removal and quantity stepping are pure
// functions of the current item list.
type Cart struct {
	Items []LineItem `json:"items"`
}

// Add merges the item into the cart. An existing line with the same id has
// its quantity incremented by the incoming quantity; otherwise the item is
// appended. A non-positive incoming quantity counts as 1.
func (c *Cart) Add(item LineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i].Quantity += item.Quantity

			return
		}
	}

	c.Items = append(c.Items, item)
}

// Remove deletes the line with the given id. Removing an absent id is a
// no-op, so removal is idempotent.
func (c *Cart) Remove(id string) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)

			return
		}
	}
}

// UpdateQuantity steps the quantity of the line with the given id by one.
// Decrease floors at 1 and never removes the line; removal is only explicit
// through Remove. Unknown ids and invalid directions are no-ops.
func (c *Cart) UpdateQuantity(id string, change QuantityChange) {
	for i := range c.Items {
		if c.Items[i].ID != id {
			continue
		}

		switch change {
		case QuantityIncrease:
			c.Items[i].Quantity++
		case QuantityDecrease:
			if c.Items[i].Quantity > 1 {
				c.Items[i].Quantity--
			}
		}

		return
	}
}

// Clear empties the ledger.
func (c *Cart) Clear() {
	c.Items = nil
}

// Count is the sum of quantities over all lines.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

// Total is the sum of price times quantity over all lines.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}

	return total
}

// Snapshot returns a copy of the item list safe to hand to callers.
func (c *Cart) Snapshot() []LineItem {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)

	return items
}
