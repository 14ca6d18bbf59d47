package domain

// Product is a catalog entry. Price is the list price; carts snapshot it
// per line item at add time.
type Product struct {
	ID            int64
	Name          string
	Price         Money
	SKU           string
	StockQuantity int32
}
