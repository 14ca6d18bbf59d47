package domain

import "github.com/shopspring/decimal"

// SalesReport aggregates recorded orders: order count, gross sales and
// average order value.
type SalesReport struct {
	TotalOrders  int64
	TotalSales   Money
	AverageOrder Money
}

// NewSalesReport derives the average from count and total; an empty order
// set averages to zero rather than dividing by zero.
func NewSalesReport(totalOrders int64, totalSales Money) SalesReport {
	average := ZeroMoney(totalSales.Currency)
	if totalOrders > 0 {
		average.Amount = totalSales.Amount.Div(decimal.NewFromInt(totalOrders)).Round(2)
	}

	return SalesReport{
		TotalOrders:  totalOrders,
		TotalSales:   totalSales,
		AverageOrder: average,
	}
}
