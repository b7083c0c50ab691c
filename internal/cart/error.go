package cart

import "errors"

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrUnauthenticated  = errors.New("unauthenticated")
)
