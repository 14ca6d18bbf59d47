package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrConflict      = errors.New("duplicate key")
	ErrMixedCurrency = errors.New("mixed currencies")
)
