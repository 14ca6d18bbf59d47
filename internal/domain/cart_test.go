package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/bounteous/ecom/internal/domain"
)

func TestCartTotal(t *testing.T) {
	tests := []struct {
		name      string
		cart      func(t *testing.T) domain.Cart
		wantTotal string
		wantErr   error
	}{
		{
			name: "empty cart totals zero",
			cart: func(t *testing.T) domain.Cart {
				return domain.Cart{}
			},
			wantTotal: "0.00",
		},
		{
			name: "total equals sum of quantity times snapshotted price",
			cart: func(t *testing.T) domain.Cart {
				return domain.Cart{Items: []domain.CartItem{
					line(t, 1, 2, "10.00", currency.USD),
					line(t, 2, 3, "0.99", currency.USD),
				}}
			},
			wantTotal: "22.97",
		},
		{
			name: "mixed currencies are rejected",
			cart: func(t *testing.T) domain.Cart {
				return domain.Cart{Items: []domain.CartItem{
					line(t, 1, 1, "10.00", currency.USD),
					line(t, 2, 1, "10.00", currency.EUR),
				}}
			},
			wantErr: domain.ErrMixedCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := tt.cart(t).Total()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assertAmount(t, tt.wantTotal, total)
		})
	}
}

func TestCartItemLineTotal(t *testing.T) {
	item := line(t, 1, 4, "2.25", currency.USD)

	assertAmount(t, "9.00", item.LineTotal())
	assert.Equal(t, currency.USD, item.LineTotal().Currency)
}

func TestMoneyAddRejectsMixedCurrencies(t *testing.T) {
	usd := money(t, "1.00", currency.USD)
	eur := money(t, "1.00", currency.EUR)

	_, err := usd.Add(eur)
	assert.ErrorIs(t, err, domain.ErrMixedCurrency)

	sum, err := usd.Add(money(t, "2.50", currency.USD))
	assert.NoError(t, err)
	assertAmount(t, "3.50", sum)
}
