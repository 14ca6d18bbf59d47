package port

import (
	"context"

	"github.com/bounteous/ecom/internal/domain"
)

type CartRepository interface {
	// EnsureCart returns the customer's cart id, creating the cart on first
	// use. A second call for the same customer returns the existing id.
	EnsureCart(ctx context.Context, customerID int64) (int64, error)

	GetCart(ctx context.Context, customerID int64) (domain.Cart, error)

	// UpsertItem appends a new line or merges quantities into an existing
	// line for the same product, keeping the original unit price snapshot.
	UpsertItem(ctx context.Context, cartID int64, item domain.CartItem) error

	DeleteItem(ctx context.Context, cartID int64, productID int64) (bool, error)
	ClearItems(ctx context.Context, cartID int64) error
}
