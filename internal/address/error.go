package address

import "errors"

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrUnauthenticated = errors.New("unauthenticated")
)
