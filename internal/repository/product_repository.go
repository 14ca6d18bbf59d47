package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bounteous/ecom/internal/domain"
	"github.com/bounteous/ecom/internal/port"
)

type productRepository struct {
	q querier
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{q: pool}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, price_amount::text, price_currency, sku, stock_quantity
		FROM products
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}
	defer rows.Close()

	var products []domain.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanProduct: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, name, price_amount::text, price_currency, sku, stock_quantity
		FROM products
		WHERE id = $1`, productID)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("product[%d]: %w", productID, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("scanProduct: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateStock(ctx context.Context, productID int64, stockQuantity int32) error {
	cmdTag, err := r.q.Exec(ctx,
		"UPDATE products SET stock_quantity = $1 WHERE id = $2",
		stockQuantity, productID)
	if err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product[%d]: %w", productID, domain.ErrNotFound)
	}

	return nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p             domain.Product
		priceAmount   string
		priceCurrency string
	)

	if err := row.Scan(&p.ID, &p.Name, &priceAmount, &priceCurrency, &p.SKU, &p.StockQuantity); err != nil {
		return p, err
	}

	price, err := mapMoney(priceAmount, priceCurrency)
	if err != nil {
		return p, fmt.Errorf("mapMoney: %w", err)
	}
	p.Price = price

	return p, nil
}
