package port

import (
	"context"

	"github.com/bounteous/ecom/internal/domain"
)

// Notifier confirms a completed checkout to the customer. Implementations
// are fire-and-forget collaborators: a failure must never abort a checkout,
// callers only log it.
type Notifier interface {
	OrderConfirmed(ctx context.Context, customerEmail string, order domain.Order, invoice domain.Invoice) error
}
