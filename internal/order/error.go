package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrPriceMismatch   = errors.New("real price does not match totals")
)
