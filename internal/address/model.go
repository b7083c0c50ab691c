package address

import (
	"fmt"

	"marketbridge/internal/audit"
)

type Address struct {
	ID       int64
	MemberID int64

	City    string
	Street  string
	Zipcode string
	Detail  string
	Alias   string

	IsDefault bool
	audit.Fields
}

// Value renders the single-line shipping address shown at checkout.
func (a *Address) Value() string {
	return fmt.Sprintf("%s %s %s (%s)", a.City, a.Street, a.Detail, a.Zipcode)
}

type CreateAddressInput struct {
	City         string
	Street       string
	Zipcode      string
	Detail       string
	Alias        string
	SetAsDefault bool
}
