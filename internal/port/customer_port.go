package port

import (
	"context"

	"github.com/bounteous/ecom/internal/domain"
)

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer domain.Customer) (int64, error)
	GetCustomer(ctx context.Context, customerID int64) (domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	DeleteCustomer(ctx context.Context, customerID int64) error
}
