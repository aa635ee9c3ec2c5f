package domain

import "github.com/shopspring/decimal"

// LineItem is one product entry in a cart. Quantity is always at least 1.
type LineItem struct {
	ProductID int64           `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Thumbnail string          `json:"thumbnail,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns Price × Quantity.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered list of line items, unique by ProductID.
type Cart []LineItem

// TotalPrice sums price × quantity over all lines.
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c {
		total = total.Add(line.Subtotal())
	}
	return total
}

// TotalItems sums the quantities of all lines.
func (c Cart) TotalItems() int {
	n := 0
	for _, line := range c {
		n += line.Quantity
	}
	return n
}

// Find returns the index of the line for productID, or -1.
func (c Cart) Find(productID int64) int {
	for i, line := range c {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no backing array with c.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}
