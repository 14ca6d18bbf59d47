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

type invoiceRepository struct {
	q querier
}

func NewInvoice(pool *pgxpool.Pool) port.InvoiceRepository {
	return &invoiceRepository{q: pool}
}

func NewInvoiceWithTx(tx pgx.Tx) port.InvoiceRepository {
	return &invoiceRepository{q: tx}
}

func (r *invoiceRepository) InsertInvoice(ctx context.Context, invoice domain.Invoice) (int64, error) {
	var invoiceID int64

	err := r.q.QueryRow(ctx, `
		INSERT INTO invoices (order_id, invoice_number, status, amount, tax_amount,
		                      total_amount, currency, due_date)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6::numeric, $7, $8)
		RETURNING id`,
		invoice.OrderID, invoice.InvoiceNumber, string(invoice.Status),
		invoice.Amount.Amount.String(), invoice.Tax.Amount.String(),
		invoice.Total.Amount.String(), invoice.Total.Currency.String(),
		invoice.DueDate,
	).Scan(&invoiceID)
	if err != nil {
		// invoices.order_id is unique: one invoice per order
		if isPgError(err, pgUniqueViolation) {
			return 0, fmt.Errorf("invoice for order[%d]: %w", invoice.OrderID, domain.ErrConflict)
		}
		if isPgError(err, pgForeignKeyViolation) {
			return 0, fmt.Errorf("order[%d]: %w", invoice.OrderID, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("q.QueryRow: %w", err)
	}

	return invoiceID, nil
}

func (r *invoiceRepository) GetInvoiceByOrder(ctx context.Context, orderID int64) (domain.Invoice, error) {
	var (
		inv    domain.Invoice
		status string
		amount string
		tax    string
		total  string
		code   string
	)

	err := r.q.QueryRow(ctx, `
		SELECT id, order_id, invoice_number, status, amount::text, tax_amount::text,
		       total_amount::text, currency, due_date, created_at
		FROM invoices
		WHERE order_id = $1`, orderID,
	).Scan(&inv.ID, &inv.OrderID, &inv.InvoiceNumber, &status,
		&amount, &tax, &total, &code, &inv.DueDate, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return inv, fmt.Errorf("invoice for order[%d]: %w", orderID, domain.ErrNotFound)
		}
		return inv, fmt.Errorf("q.QueryRow: %w", err)
	}

	invoiceStatus, err := domain.ToInvoiceStatus(status)
	if err != nil {
		return inv, fmt.Errorf("domain.ToInvoiceStatus[%s]: %w", status, err)
	}
	inv.Status = invoiceStatus

	for _, m := range []struct {
		dst    *domain.Money
		amount string
	}{
		{&inv.Amount, amount},
		{&inv.Tax, tax},
		{&inv.Total, total},
	} {
		money, err := mapMoney(m.amount, code)
		if err != nil {
			return inv, fmt.Errorf("mapMoney: %w", err)
		}
		*m.dst = money
	}

	return inv, nil
}

func (r *invoiceRepository) NextInvoiceSeq(ctx context.Context) (int64, error) {
	var seq int64

	if err := r.q.QueryRow(ctx, "SELECT nextval('invoice_number_seq')").Scan(&seq); err != nil {
		return 0, fmt.Errorf("q.QueryRow: %w", err)
	}

	return seq, nil
}
