package domain

import "time"

// Order is created exactly once per checkout and is immutable afterwards
// except for Status.
type Order struct {
	ID          int64
	CustomerID  int64
	CartID      int64
	OrderNumber string
	Items       []OrderItem
	Subtotal    Money
	Tax         Money
	Shipping    Money
	Total       Money
	Status      OrderStatus

	CreatedAt time.Time
}

type OrderItem struct {
	ProductID int64
	Quantity  int32
	UnitPrice Money
}

func (i OrderItem) LineTotal() Money {
	return i.UnitPrice.MulInt(int64(i.Quantity))
}

// Invoice is derived 1:1 from an Order; Amount, Tax and Total mirror the
// order's totals at creation time.
type Invoice struct {
	ID            int64
	OrderID       int64
	InvoiceNumber string
	Amount        Money
	Tax           Money
	Total         Money
	Status        InvoiceStatus
	DueDate       time.Time

	CreatedAt time.Time
}
