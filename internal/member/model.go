package member

import (
	"marketbridge/internal/address"
	"marketbridge/internal/audit"
)

type Member struct {
	ID       int64
	Email    string
	Password string
	Name     string
	Phone    string
	audit.Fields

	Point     *Point
	Addresses []*address.Address
}

// Point is the member's reward-point balance.
type Point struct {
	ID       int64
	MemberID int64
	Balance  int64
	audit.Fields
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}
