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

type cartRepository struct {
	q querier
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{q: pool}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{q: tx}
}

func (r *cartRepository) EnsureCart(ctx context.Context, customerID int64) (int64, error) {
	var cartID int64

	// The no-op update makes the upsert return the existing id instead of
	// zero rows when the customer already has a cart.
	err := r.q.QueryRow(ctx, `
		INSERT INTO carts (customer_id)
		VALUES ($1)
		ON CONFLICT (customer_id) DO UPDATE SET customer_id = EXCLUDED.customer_id
		RETURNING id`, customerID,
	).Scan(&cartID)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return 0, fmt.Errorf("customer[%d]: %w", customerID, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("q.QueryRow: %w", err)
	}

	return cartID, nil
}

func (r *cartRepository) GetCart(ctx context.Context, customerID int64) (domain.Cart, error) {
	var c domain.Cart

	cart, err := withTx(ctx, r.q, func(q querier) (domain.Cart, error) {
		var cart domain.Cart

		err := q.QueryRow(ctx,
			"SELECT id, customer_id FROM carts WHERE customer_id = $1", customerID,
		).Scan(&cart.ID, &cart.CustomerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return cart, fmt.Errorf("cart of customer[%d]: %w", customerID, domain.ErrNotFound)
			}
			return cart, fmt.Errorf("q.QueryRow: %w", err)
		}

		items, err := getCartItems(ctx, q, cart.ID)
		if err != nil {
			return cart, fmt.Errorf("getCartItems: %w", err)
		}
		cart.Items = items

		return cart, nil
	})
	if err != nil {
		return c, fmt.Errorf("withTx: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) UpsertItem(ctx context.Context, cartID int64, item domain.CartItem) error {
	// Merging keeps the unit price snapshotted by the first add.
	_, err := r.q.Exec(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity, unit_price_amount, unit_price_currency)
		VALUES ($1, $2, $3, $4::numeric, $5)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		cartID, item.ProductID, item.Quantity, item.UnitPrice.Amount.String(), item.UnitPrice.Currency.String())
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return fmt.Errorf("cart[%d] or product[%d]: %w", cartID, item.ProductID, domain.ErrNotFound)
		}
		return fmt.Errorf("q.Exec: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID int64, productID int64) (bool, error) {
	cmdTag, err := r.q.Exec(ctx,
		"DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2",
		cartID, productID)
	if err != nil {
		return false, fmt.Errorf("q.Exec: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

func (r *cartRepository) ClearItems(ctx context.Context, cartID int64) error {
	if _, err := r.q.Exec(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID); err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}

	return nil
}

func getCartItems(ctx context.Context, q querier, cartID int64) ([]domain.CartItem, error) {
	rows, err := q.Query(ctx, `
		SELECT ci.product_id, p.name, ci.quantity,
		       ci.unit_price_amount::text, ci.unit_price_currency, ci.created_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at, ci.product_id`, cartID)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem

	for rows.Next() {
		var (
			item          domain.CartItem
			priceAmount   string
			priceCurrency string
		)

		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity,
			&priceAmount, &priceCurrency, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		price, err := mapMoney(priceAmount, priceCurrency)
		if err != nil {
			return nil, fmt.Errorf("mapMoney: %w", err)
		}
		item.UnitPrice = price

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return items, nil
}
