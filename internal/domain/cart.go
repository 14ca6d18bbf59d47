package domain

import (
	"fmt"
	"time"
)

// Cart holds at most one line item per product; adding an existing product
// merges quantities at the persistence layer.
type Cart struct {
	ID         int64
	CustomerID int64
	Items      []CartItem
}

// CartItem snapshots the unit price at add time; later catalog price changes
// do not affect existing lines.
type CartItem struct {
	ProductID   int64
	ProductName string
	Quantity    int32
	UnitPrice   Money

	CreatedAt time.Time
}

// LineTotal is always derived, never stored, so it cannot drift from
// quantity and unit price.
func (i CartItem) LineTotal() Money {
	return i.UnitPrice.MulInt(int64(i.Quantity))
}

// Total sums all line totals, rejecting mixed currencies the same way the
// checkout calculator does. An empty cart totals zero in the default
// currency.
func (c Cart) Total() (Money, error) {
	if len(c.Items) == 0 {
		return ZeroMoney(DefaultCurrency), nil
	}

	total := ZeroMoney(c.Items[0].UnitPrice.Currency)
	for _, item := range c.Items {
		sum, err := total.Add(item.LineTotal())
		if err != nil {
			return Money{}, fmt.Errorf("total.Add: %w", err)
		}
		total = sum
	}

	return total, nil
}
