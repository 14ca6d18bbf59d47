// Package notifier provides checkout confirmation collaborators. The log
// notifier stands in for real email and invoice rendering; the kafka
// notifier publishes confirmation events for downstream consumers.
package notifier

import (
	"context"

	"go.uber.org/zap"

	"github.com/bounteous/ecom/internal/domain"
	"github.com/bounteous/ecom/internal/port"
)

type logNotifier struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) port.Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &logNotifier{logger: logger}
}

func (n *logNotifier) OrderConfirmed(_ context.Context, customerEmail string, order domain.Order, invoice domain.Invoice) error {
	n.logger.Info("sending confirmation email",
		zap.String("to", customerEmail),
		zap.String("subject", "Order Confirmation - "+order.OrderNumber),
		zap.String("total", order.Total.String()))

	n.logger.Info("rendering invoice",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("amount", invoice.Amount.String()),
		zap.String("tax", invoice.Tax.String()),
		zap.String("total", invoice.Total.String()),
		zap.String("due_date", invoice.DueDate.Format("2006-01-02")))

	n.logger.Info("order confirmed",
		zap.String("order_number", order.OrderNumber),
		zap.Int64("customer_id", order.CustomerID),
		zap.String("total", order.Total.String()))

	return nil
}
