package apperror

import "fmt"

// Code classifies a domain failure so the HTTP layer can map it to a status.
type Code string

const (
	CodeNotFound                     Code = "NOT_FOUND"
	CodeInvalidInput                 Code = "INVALID_INPUT"
	CodeShippingAddressNotRegistered Code = "SHIPPING_ADDRESS_NOT_REGISTERED"
	CodeInternal                     Code = "INTERNAL_ERROR"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func NotFound(entity string, id any) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", entity, id),
	}
}

func InvalidInput(message string) *Error {
	return &Error{Code: CodeInvalidInput, Message: message}
}
