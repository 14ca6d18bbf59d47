package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/bounteous/ecom/internal/domain"
	"github.com/bounteous/ecom/internal/port"
)

type orderRepository struct {
	q querier
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{q: pool}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{q: tx}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	var o domain.Order

	order, err := withTx(ctx, r.q, func(q querier) (domain.Order, error) {
		order, err := getOrderRow(ctx, q, orderID)
		if err != nil {
			return order, fmt.Errorf("getOrderRow: %w", err)
		}

		items, err := getOrderItems(ctx, q, orderID)
		if err != nil {
			return order, fmt.Errorf("getOrderItems: %w", err)
		}
		order.Items = items

		return order, nil
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (int64, error) {
	if len(order.Items) == 0 {
		return 0, fmt.Errorf("order has no items: %w", domain.ErrEmptyCart)
	}

	orderID, err := withTx(ctx, r.q, func(q querier) (int64, error) {
		var orderID int64

		err := q.QueryRow(ctx, `
			INSERT INTO orders (customer_id, cart_id, order_number, status, subtotal,
			                    tax_amount, shipping_amount, total_amount, currency)
			VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7::numeric, $8::numeric, $9)
			RETURNING id`,
			order.CustomerID, order.CartID, order.OrderNumber, string(order.Status),
			order.Subtotal.Amount.String(), order.Tax.Amount.String(),
			order.Shipping.Amount.String(), order.Total.Amount.String(),
			order.Total.Currency.String(),
		).Scan(&orderID)
		if err != nil {
			if isPgError(err, pgUniqueViolation) {
				return 0, fmt.Errorf("order number[%s]: %w", order.OrderNumber, domain.ErrConflict)
			}
			return 0, fmt.Errorf("insert order: %w", err)
		}

		// TODO: batch once carts grow beyond a handful of lines
		for _, item := range order.Items {
			_, err := q.Exec(ctx, `
				INSERT INTO order_items (order_id, product_id, quantity, unit_price_amount, unit_price_currency)
				VALUES ($1, $2, $3, $4::numeric, $5)`,
				orderID, item.ProductID, item.Quantity,
				item.UnitPrice.Amount.String(), item.UnitPrice.Currency.String())
			if err != nil {
				return 0, fmt.Errorf("insert order item[%d]: %w", item.ProductID, err)
			}
		}

		return orderID, nil
	})
	if err != nil {
		return 0, fmt.Errorf("withTx: %w", err)
	}

	return orderID, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	if _, err := domain.ToOrderStatus(string(status)); err != nil {
		return fmt.Errorf("domain.ToOrderStatus[%s]: %w", status, err)
	}

	cmdTag, err := r.q.Exec(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2", string(status), orderID)
	if err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("order[%d]: %w", orderID, domain.ErrNotFound)
	}

	return nil
}

func (r *orderRepository) NextOrderSeq(ctx context.Context) (int64, error) {
	var seq int64

	if err := r.q.QueryRow(ctx, "SELECT nextval('order_number_seq')").Scan(&seq); err != nil {
		return 0, fmt.Errorf("q.QueryRow: %w", err)
	}

	return seq, nil
}

func (r *orderRepository) SalesReport(ctx context.Context, filter domain.OrderFilter) (domain.SalesReport, error) {
	var report domain.SalesReport

	if err := filter.Validate(); err != nil {
		return report, fmt.Errorf("filter.Validate: %w", err)
	}

	where, args := buildReportWhere(filter)

	var (
		totalOrders int64
		totalSales  string
		code        string
	)

	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)::text, COALESCE(MIN(currency), 'USD')
		FROM orders`+where, args...,
	).Scan(&totalOrders, &totalSales, &code)
	if err != nil {
		return report, fmt.Errorf("q.QueryRow: %w", err)
	}

	total, err := mapMoney(totalSales, code)
	if err != nil {
		return report, fmt.Errorf("mapMoney: %w", err)
	}

	return domain.NewSalesReport(totalOrders, total), nil
}

func buildReportWhere(filter domain.OrderFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.CustomerIDs) > 0 {
		clauses = append(clauses, "customer_id = ANY("+arg(filter.CustomerIDs)+")")
	}

	if len(filter.Statuses) > 0 {
		statuses := lo.Map(filter.Statuses, func(s domain.OrderStatus, _ int) string {
			return string(s)
		})
		clauses = append(clauses, "status = ANY("+arg(statuses)+")")
	}

	if filter.CreatedAt != nil {
		if filter.CreatedAt.After != nil {
			clauses = append(clauses, "created_at >= "+arg(*filter.CreatedAt.After))
		}
		if filter.CreatedAt.Before != nil {
			clauses = append(clauses, "created_at <= "+arg(*filter.CreatedAt.Before))
		}
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func getOrderRow(ctx context.Context, q querier, orderID int64) (domain.Order, error) {
	var (
		o        domain.Order
		status   string
		subtotal string
		tax      string
		shipping string
		total    string
		code     string
	)

	err := q.QueryRow(ctx, `
		SELECT id, customer_id, cart_id, order_number, status, subtotal::text,
		       tax_amount::text, shipping_amount::text, total_amount::text, currency, created_at
		FROM orders
		WHERE id = $1`, orderID,
	).Scan(&o.ID, &o.CustomerID, &o.CartID, &o.OrderNumber, &status,
		&subtotal, &tax, &shipping, &total, &code, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return o, fmt.Errorf("order[%d]: %w", orderID, domain.ErrNotFound)
		}
		return o, fmt.Errorf("q.QueryRow: %w", err)
	}

	orderStatus, err := domain.ToOrderStatus(status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", status, err)
	}
	o.Status = orderStatus

	for _, m := range []struct {
		dst    *domain.Money
		amount string
	}{
		{&o.Subtotal, subtotal},
		{&o.Tax, tax},
		{&o.Shipping, shipping},
		{&o.Total, total},
	} {
		money, err := mapMoney(m.amount, code)
		if err != nil {
			return o, fmt.Errorf("mapMoney: %w", err)
		}
		*m.dst = money
	}

	return o, nil
}

func getOrderItems(ctx context.Context, q querier, orderID int64) ([]domain.OrderItem, error) {
	rows, err := q.Query(ctx, `
		SELECT product_id, quantity, unit_price_amount::text, unit_price_currency
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem

	for rows.Next() {
		var (
			item          domain.OrderItem
			priceAmount   string
			priceCurrency string
		)

		if err := rows.Scan(&item.ProductID, &item.Quantity, &priceAmount, &priceCurrency); err != nil {
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
