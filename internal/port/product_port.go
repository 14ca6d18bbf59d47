package port

import (
	"context"

	"github.com/bounteous/ecom/internal/domain"
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID int64) (domain.Product, error)
	UpdateStock(ctx context.Context, productID int64, stockQuantity int32) error
}
