package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/bounteous/ecom/internal/domain"
	"github.com/bounteous/ecom/internal/port"
	"github.com/bounteous/ecom/internal/repository"
)

// Service orchestrates catalog, carts, checkout and reporting. Checkout runs
// order, invoice and cart-clear as a single transaction: either all of it
// commits or none of it does.
type Service struct {
	pool      *pgxpool.Pool
	products  port.ProductRepository
	customers port.CustomerRepository
	carts     port.CartRepository
	orders    port.OrderRepository
	invoices  port.InvoiceRepository
	notifier  port.Notifier
	logger    *zap.Logger
}

func New(pool *pgxpool.Pool, notifier port.Notifier, logger *zap.Logger) (*Service, error) {
	if pool == nil {
		return nil, errors.New("pool is nil")
	}
	if notifier == nil {
		return nil, errors.New("notifier is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		pool:      pool,
		products:  repository.NewProduct(pool),
		customers: repository.NewCustomer(pool),
		carts:     repository.NewCart(pool),
		orders:    repository.NewOrder(pool),
		invoices:  repository.NewInvoice(pool),
		notifier:  notifier,
		logger:    logger,
	}, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListProducts(ctx)
}

func (s *Service) CreateCustomer(ctx context.Context, customer domain.Customer) (int64, error) {
	customerID, err := s.customers.CreateCustomer(ctx, customer)
	if err != nil {
		return 0, fmt.Errorf("customers.CreateCustomer: %w", err)
	}

	s.logger.Info("customer created",
		zap.Int64("customer_id", customerID),
		zap.String("name", customer.FullName()))

	return customerID, nil
}

func (s *Service) GetCustomer(ctx context.Context, customerID int64) (domain.Customer, error) {
	return s.customers.GetCustomer(ctx, customerID)
}

func (s *Service) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	return s.customers.UpdateCustomer(ctx, customer)
}

func (s *Service) DeleteCustomer(ctx context.Context, customerID int64) error {
	return s.customers.DeleteCustomer(ctx, customerID)
}

// EnsureCart creates the customer's cart on first use; calling it again
// returns the existing cart id.
func (s *Service) EnsureCart(ctx context.Context, customerID int64) (int64, error) {
	return s.carts.EnsureCart(ctx, customerID)
}

func (s *Service) GetCart(ctx context.Context, customerID int64) (domain.Cart, error) {
	return s.carts.GetCart(ctx, customerID)
}

// AddItem puts quantity units of a product into the customer's cart,
// snapshotting the current catalog price. Adding a product already in the
// cart merges quantities; the original price snapshot stays. A non-positive
// quantity is a no-op, not an error.
func (s *Service) AddItem(ctx context.Context, customerID, productID int64, quantity int32) error {
	if quantity <= 0 {
		s.logger.Debug("ignoring add with non-positive quantity",
			zap.Int64("customer_id", customerID),
			zap.Int64("product_id", productID),
			zap.Int32("quantity", quantity))
		return nil
	}

	if _, err := s.customers.GetCustomer(ctx, customerID); err != nil {
		return fmt.Errorf("customers.GetCustomer: %w", err)
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("products.GetProduct: %w", err)
	}

	cartID, err := s.carts.EnsureCart(ctx, customerID)
	if err != nil {
		return fmt.Errorf("carts.EnsureCart: %w", err)
	}

	item := domain.CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   product.Price,
	}

	if err := s.carts.UpsertItem(ctx, cartID, item); err != nil {
		return fmt.Errorf("carts.UpsertItem: %w", err)
	}

	return nil
}

// RemoveItem deletes a line from the customer's cart. A missing cart or a
// product not in the cart is a no-op.
func (s *Service) RemoveItem(ctx context.Context, customerID, productID int64) error {
	cart, err := s.carts.GetCart(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug("remove from missing cart is a no-op",
				zap.Int64("customer_id", customerID))
			return nil
		}
		return fmt.Errorf("carts.GetCart: %w", err)
	}

	found, err := s.carts.DeleteItem(ctx, cart.ID, productID)
	if err != nil {
		return fmt.Errorf("carts.DeleteItem: %w", err)
	}

	if !found {
		s.logger.Debug("product was not in cart",
			zap.Int64("customer_id", customerID),
			zap.Int64("product_id", productID))
	}

	return nil
}

// CartTotal sums the cart's line totals. A missing or empty cart totals
// zero, never an error.
func (s *Service) CartTotal(ctx context.Context, customerID int64) (domain.Money, error) {
	cart, err := s.carts.GetCart(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ZeroMoney(domain.DefaultCurrency), nil
		}
		return domain.Money{}, fmt.Errorf("carts.GetCart: %w", err)
	}

	total, err := cart.Total()
	if err != nil {
		return domain.Money{}, fmt.Errorf("cart.Total: %w", err)
	}

	return total, nil
}

// Checkout turns the customer's cart into an order and its invoice, then
// clears the cart, all inside one transaction serialized per customer.
// An empty or missing cart aborts with ErrEmptyCart and no side effects.
// The confirmation is sent after commit; notifier failures never undo a
// recorded order.
func (s *Service) Checkout(ctx context.Context, customerID int64) (domain.Order, domain.Invoice, error) {
	var (
		order   domain.Order
		invoice domain.Invoice
	)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return order, invoice, fmt.Errorf("pool.Begin: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			s.logger.Warn("checkout rollback failed", zap.Error(rollbackErr))
		}
	}()

	if err := repository.LockCustomer(ctx, tx, customerID); err != nil {
		return order, invoice, fmt.Errorf("repository.LockCustomer: %w", err)
	}

	customers := repository.NewCustomerWithTx(tx)
	carts := repository.NewCartWithTx(tx)
	orders := repository.NewOrderWithTx(tx)
	invoices := repository.NewInvoiceWithTx(tx)

	// Resolve the customer inside the transaction so the confirmation goes
	// to the email the order was recorded against.
	customer, err := customers.GetCustomer(ctx, customerID)
	if err != nil {
		return order, invoice, fmt.Errorf("customers.GetCustomer: %w", err)
	}

	// Read the cart inside the transaction so the lines we record are the
	// lines we clear.
	cart, err := carts.GetCart(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return order, invoice, fmt.Errorf("customer[%d]: %w", customerID, domain.ErrEmptyCart)
		}
		return order, invoice, fmt.Errorf("carts.GetCart: %w", err)
	}

	// Check before drawing a sequence number so aborted checkouts do not
	// burn order numbers.
	if len(cart.Items) == 0 {
		return order, invoice, fmt.Errorf("customer[%d]: %w", customerID, domain.ErrEmptyCart)
	}

	orderSeq, err := orders.NextOrderSeq(ctx)
	if err != nil {
		return order, invoice, fmt.Errorf("orders.NextOrderSeq: %w", err)
	}

	now := time.Now()

	summary, err := domain.ComputeCheckout(cart.Items, orderSeq, now)
	if err != nil {
		return order, invoice, fmt.Errorf("domain.ComputeCheckout: %w", err)
	}

	order = domain.Order{
		CustomerID:  customerID,
		CartID:      cart.ID,
		OrderNumber: summary.OrderNumber,
		Items:       domain.OrderItemsFromCart(cart.Items),
		Subtotal:    summary.Subtotal,
		Tax:         summary.Tax,
		Shipping:    summary.Shipping,
		Total:       summary.Total,
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
	}

	orderID, err := orders.InsertOrder(ctx, order)
	if err != nil {
		return order, invoice, fmt.Errorf("orders.InsertOrder: %w", err)
	}
	order.ID = orderID

	invoiceSeq, err := invoices.NextInvoiceSeq(ctx)
	if err != nil {
		return order, invoice, fmt.Errorf("invoices.NextInvoiceSeq: %w", err)
	}

	invoice = domain.Invoice{
		OrderID:       orderID,
		InvoiceNumber: domain.InvoiceNumber(invoiceSeq, now),
		Amount:        summary.Total,
		Tax:           summary.Tax,
		Total:         summary.Total,
		Status:        domain.InvoiceStatusPending,
		DueDate:       now.AddDate(0, 0, 30),
		CreatedAt:     now,
	}

	invoiceID, err := invoices.InsertInvoice(ctx, invoice)
	if err != nil {
		return order, invoice, fmt.Errorf("invoices.InsertInvoice: %w", err)
	}
	invoice.ID = invoiceID

	if err := carts.ClearItems(ctx, cart.ID); err != nil {
		return order, invoice, fmt.Errorf("carts.ClearItems: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return order, invoice, fmt.Errorf("tx.Commit: %w", err)
	}
	committed = true

	if err := s.notifier.OrderConfirmed(ctx, customer.Email, order, invoice); err != nil {
		s.logger.Warn("order confirmation failed",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
	}

	s.logger.Info("order processed",
		zap.String("order_number", order.OrderNumber),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Int64("customer_id", customerID),
		zap.String("total", order.Total.String()))

	return order, invoice, nil
}

func (s *Service) SalesReport(ctx context.Context, filter domain.OrderFilter) (domain.SalesReport, error) {
	report, err := s.orders.SalesReport(ctx, filter)
	if err != nil {
		return report, fmt.Errorf("orders.SalesReport: %w", err)
	}

	return report, nil
}
