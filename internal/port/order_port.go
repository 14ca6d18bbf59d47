package port

import (
	"context"

	"github.com/bounteous/ecom/internal/domain"
)

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID int64) (domain.Order, error)

	InsertOrder(ctx context.Context, order domain.Order) (int64, error)

	UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error

	// NextOrderSeq draws the next value of the order number sequence.
	NextOrderSeq(ctx context.Context) (int64, error)

	SalesReport(ctx context.Context, filter domain.OrderFilter) (domain.SalesReport, error)
}

type InvoiceRepository interface {
	InsertInvoice(ctx context.Context, invoice domain.Invoice) (int64, error)

	GetInvoiceByOrder(ctx context.Context, orderID int64) (domain.Invoice, error)

	NextInvoiceSeq(ctx context.Context) (int64, error)
}
