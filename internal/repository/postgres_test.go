package repository_test

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/text/currency"

	"github.com/bounteous/ecom/internal/domain"
)

func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := postgres.Run(ctx, "postgres:17-alpine",
		postgres.WithInitScripts(filepath.Join("testdata", "init.sql")),
		postgres.WithDatabase("ecom_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	return container, connStr, nil
}

func fakeCustomer() domain.Customer {
	return domain.Customer{
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Phone:     lo.ToPtr(gofakeit.Phone()),
		Address:   lo.ToPtr(gofakeit.Street()),
	}
}

// insertProduct seeds the read-only catalog directly; the product port
// deliberately has no insert operation.
func insertProduct(ctx context.Context, pool *pgxpool.Pool, price string) (domain.Product, error) {
	product := domain.Product{
		Name:          gofakeit.ProductName(),
		Price:         domain.NewMoney(decimal.RequireFromString(price), currency.USD),
		SKU:           gofakeit.UUID(),
		StockQuantity: int32(gofakeit.Number(1, 100)),
	}

	err := pool.QueryRow(ctx, `
		INSERT INTO products (name, price_amount, price_currency, sku, stock_quantity)
		VALUES ($1, $2::numeric, $3, $4, $5)
		RETURNING id`,
		product.Name, product.Price.Amount.String(), product.Price.Currency.String(),
		product.SKU, product.StockQuantity,
	).Scan(&product.ID)
	if err != nil {
		return product, fmt.Errorf("insert product: %w", err)
	}

	return product, nil
}

// Custom comparers so go-cmp understands value types with unexported fields.
func moneyComparers() cmp.Options {
	return cmp.Options{
		cmp.Comparer(func(x, y currency.Unit) bool {
			return x.String() == y.String()
		}),
		cmp.Comparer(func(x, y decimal.Decimal) bool {
			return x.Equal(y)
		}),
	}
}
