package repository_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"

	"github.com/bounteous/ecom/internal/domain"
	"github.com/bounteous/ecom/internal/port"
	"github.com/bounteous/ecom/internal/repository"
)

type orderRepositorySuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	repo      port.OrderRepository
	carts     port.CartRepository
	customers port.CustomerRepository
	container testcontainers.Container
}

// entry point to run the tests in the suite
func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(orderRepositorySuite))
}

func (suite *orderRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.repo = repository.NewOrder(suite.pool)
	suite.carts = repository.NewCart(suite.pool)
	suite.customers = repository.NewCustomer(suite.pool)
}

func (suite *orderRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

// buildOrder seeds the customer, cart and product an order depends on, then
// assembles an unsaved order over them.
func (suite *orderRepositorySuite) buildOrder(unitPrice string, quantity int32) domain.Order {
	t := suite.T()
	ctx := t.Context()

	customerID, err := suite.customers.CreateCustomer(ctx, fakeCustomer())
	require.NoError(t, err)

	cartID, err := suite.carts.EnsureCart(ctx, customerID)
	require.NoError(t, err)

	product, err := insertProduct(ctx, suite.pool, unitPrice)
	require.NoError(t, err)

	items := []domain.CartItem{
		{
			ProductID: product.ID,
			Quantity:  quantity,
			UnitPrice: product.Price,
		},
	}

	seq, err := suite.repo.NextOrderSeq(ctx)
	require.NoError(t, err)

	now := time.Now()

	summary, err := domain.ComputeCheckout(items, seq, now)
	require.NoError(t, err)

	return domain.Order{
		CustomerID:  customerID,
		CartID:      cartID,
		OrderNumber: summary.OrderNumber,
		Items:       domain.OrderItemsFromCart(items),
		Subtotal:    summary.Subtotal,
		Tax:         summary.Tax,
		Shipping:    summary.Shipping,
		Total:       summary.Total,
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
	}
}

func (suite *orderRepositorySuite) TestInsertOrder() {
	t := suite.T()
	ctx := t.Context()

	order := suite.buildOrder("10.00", 2)

	orderID, err := suite.repo.InsertOrder(ctx, order)
	require.NoError(t, err)

	actual, err := suite.repo.GetOrder(ctx, orderID)
	require.NoError(t, err)

	expected := order
	expected.ID = orderID

	assertOrder(t, expected, actual)
	assert.Equal(t, "31.59", actual.Total.Amount.StringFixed(2))
}

func (suite *orderRepositorySuite) TestInsertOrderNoItems() {
	t := suite.T()

	order := suite.buildOrder("10.00", 2)
	order.Items = nil

	_, err := suite.repo.InsertOrder(t.Context(), order)
	require.ErrorIs(t, err, domain.ErrEmptyCart)
}

func (suite *orderRepositorySuite) TestGetOrderNotFound() {
	t := suite.T()

	_, err := suite.repo.GetOrder(t.Context(), int64(999_999))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *orderRepositorySuite) TestUpdateOrderStatus() {
	t := suite.T()
	ctx := t.Context()

	orderID, err := suite.repo.InsertOrder(ctx, suite.buildOrder("5.00", 1))
	require.NoError(t, err)

	tests := []struct {
		name      string
		orderID   int64
		newStatus domain.OrderStatus
		wantError string
	}{
		{
			name:      "update status of existing order: ok",
			orderID:   orderID,
			newStatus: domain.OrderStatusShipped,
		},
		{
			name:      "update status of non-existing order: not found",
			orderID:   orderID + 1000,
			newStatus: domain.OrderStatusShipped,
			wantError: "not found",
		},
		{
			name:      "invalid status: fail",
			orderID:   orderID,
			newStatus: domain.OrderStatus("teleported"),
			wantError: "invalid order status",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			err := suite.repo.UpdateOrderStatus(ctx, tt.orderID, tt.newStatus)
			if tt.wantError != "" {
				require.ErrorContains(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			actual, err := suite.repo.GetOrder(ctx, tt.orderID)
			require.NoError(t, err)
			assert.Equal(t, tt.newStatus, actual.Status)
		})
	}
}

func (suite *orderRepositorySuite) TestNextOrderSeqIncreases() {
	t := suite.T()
	ctx := t.Context()

	first, err := suite.repo.NextOrderSeq(ctx)
	require.NoError(t, err)

	second, err := suite.repo.NextOrderSeq(ctx)
	require.NoError(t, err)

	assert.Greater(t, second, first)
}

func (suite *orderRepositorySuite) TestSalesReport() {
	t := suite.T()
	ctx := t.Context()

	order1 := suite.buildOrder("10.00", 2) // total 31.59
	order2 := suite.buildOrder("10.00", 1) // total 20.79

	_, err := suite.repo.InsertOrder(ctx, order1)
	require.NoError(t, err)
	_, err = suite.repo.InsertOrder(ctx, order2)
	require.NoError(t, err)

	// scope to just these two orders; the suite shares one database
	filter := domain.OrderFilter{
		CustomerIDs: []int64{order1.CustomerID, order2.CustomerID},
	}

	report, err := suite.repo.SalesReport(ctx, filter)
	require.NoError(t, err)

	assert.Equal(t, int64(2), report.TotalOrders)
	assert.Equal(t, "52.38", report.TotalSales.Amount.StringFixed(2))
	assert.Equal(t, "26.19", report.AverageOrder.Amount.StringFixed(2))
}

func (suite *orderRepositorySuite) TestSalesReportEmpty() {
	t := suite.T()

	filter := domain.OrderFilter{CustomerIDs: []int64{999_999}}

	report, err := suite.repo.SalesReport(t.Context(), filter)
	require.NoError(t, err)

	assert.Equal(t, int64(0), report.TotalOrders)
	assert.True(t, report.TotalSales.IsZero())
	assert.True(t, report.AverageOrder.IsZero())
}

func (suite *orderRepositorySuite) TestSalesReportTimeRange() {
	t := suite.T()
	ctx := t.Context()

	order := suite.buildOrder("10.00", 1)

	_, err := suite.repo.InsertOrder(ctx, order)
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	filter := domain.OrderFilter{
		CustomerIDs: []int64{order.CustomerID},
		CreatedAt:   &domain.TimeRange{After: &past, Before: &future},
	}

	report, err := suite.repo.SalesReport(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.TotalOrders)

	longAgo := time.Now().Add(-2 * time.Hour)
	filter.CreatedAt = &domain.TimeRange{After: &longAgo, Before: &past}

	report, err = suite.repo.SalesReport(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(0), report.TotalOrders)
}

func (suite *orderRepositorySuite) TestSalesReportInvalidFilter() {
	t := suite.T()

	filter := domain.OrderFilter{CreatedAt: &domain.TimeRange{}}

	_, err := suite.repo.SalesReport(t.Context(), filter)
	require.ErrorContains(t, err, "filter.Validate")
}

func assertOrder(t *testing.T, expected domain.Order, actual domain.Order) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Order{}, "CreatedAt"),
		cmpopts.EquateEmpty(),
	}

	diff := cmp.Diff(expected, actual, moneyComparers(), opts)
	assert.Empty(t, diff)

	assert.False(t, actual.CreatedAt.IsZero())
}
