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

type customerRepository struct {
	q querier
}

func NewCustomer(pool *pgxpool.Pool) port.CustomerRepository {
	return &customerRepository{q: pool}
}

func NewCustomerWithTx(tx pgx.Tx) port.CustomerRepository {
	return &customerRepository{q: tx}
}

func (r *customerRepository) CreateCustomer(ctx context.Context, customer domain.Customer) (int64, error) {
	var customerID int64

	err := r.q.QueryRow(ctx, `
		INSERT INTO customers (email, first_name, last_name, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		customer.Email, customer.FirstName, customer.LastName, customer.Phone, customer.Address,
	).Scan(&customerID)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return 0, fmt.Errorf("email[%s]: %w", customer.Email, domain.ErrConflict)
		}
		return 0, fmt.Errorf("q.QueryRow: %w", err)
	}

	return customerID, nil
}

func (r *customerRepository) GetCustomer(ctx context.Context, customerID int64) (domain.Customer, error) {
	var c domain.Customer

	err := r.q.QueryRow(ctx, `
		SELECT id, email, first_name, last_name, phone, address
		FROM customers
		WHERE id = $1`, customerID,
	).Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Phone, &c.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c, fmt.Errorf("customer[%d]: %w", customerID, domain.ErrNotFound)
		}
		return c, fmt.Errorf("q.QueryRow: %w", err)
	}

	return c, nil
}

func (r *customerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	cmdTag, err := r.q.Exec(ctx, `
		UPDATE customers
		SET email = $1, first_name = $2, last_name = $3, phone = $4, address = $5
		WHERE id = $6`,
		customer.Email, customer.FirstName, customer.LastName, customer.Phone, customer.Address, customer.ID)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return fmt.Errorf("email[%s]: %w", customer.Email, domain.ErrConflict)
		}
		return fmt.Errorf("q.Exec: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("customer[%d]: %w", customer.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *customerRepository) DeleteCustomer(ctx context.Context, customerID int64) error {
	cmdTag, err := r.q.Exec(ctx, "DELETE FROM customers WHERE id = $1", customerID)
	if err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("customer[%d]: %w", customerID, domain.ErrNotFound)
	}

	return nil
}
