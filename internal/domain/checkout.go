package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	taxRate      = decimal.New(8, -2)   // 8%
	flatShipping = decimal.New(999, -2) // 9.99, flat per order
)

// CheckoutSummary is the total breakdown of a cart about to become an order.
type CheckoutSummary struct {
	OrderNumber string
	Subtotal    Money
	Tax         Money
	Shipping    Money
	Total       Money
}

// ComputeCheckout turns cart line items into an order total breakdown and a
// date-stamped order number. It is pure: no clock, no store, no sequences of
// its own. Tax is rounded to 2 decimal places so amounts fit money columns.
func ComputeCheckout(items []CartItem, seq int64, now time.Time) (CheckoutSummary, error) {
	var s CheckoutSummary

	if len(items) == 0 {
		return s, ErrEmptyCart
	}

	subtotal := ZeroMoney(items[0].UnitPrice.Currency)
	for _, item := range items {
		var err error
		subtotal, err = subtotal.Add(item.LineTotal())
		if err != nil {
			return s, fmt.Errorf("subtotal.Add: %w", err)
		}
	}

	unit := subtotal.Currency
	tax := NewMoney(subtotal.Amount.Mul(taxRate).Round(2), unit)
	shipping := NewMoney(flatShipping, unit)
	total := NewMoney(subtotal.Amount.Add(tax.Amount).Add(shipping.Amount), unit)

	return CheckoutSummary{
		OrderNumber: OrderNumber(seq, now),
		Subtotal:    subtotal,
		Tax:         tax,
		Shipping:    shipping,
		Total:       total,
	}, nil
}

func OrderNumber(seq int64, now time.Time) string {
	return fmt.Sprintf("ORD-%s-%04d", now.Format("20060102"), seq)
}

func InvoiceNumber(seq int64, now time.Time) string {
	return fmt.Sprintf("INV-%s-%04d", now.Format("20060102"), seq)
}

// OrderItemsFromCart converts cart lines into order lines, carrying the
// snapshotted unit prices over unchanged.
func OrderItemsFromCart(items []CartItem) []OrderItem {
	result := make([]OrderItem, 0, len(items))
	for _, item := range items {
		result = append(result, OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return result
}
