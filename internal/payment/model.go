package payment

import (
	"time"

	"marketbridge/internal/audit"
)

// Payment is the record of one confirmed external payment. Each payment
// belongs to exactly one order, linked by order number.
type Payment struct {
	ID            int64
	OrderID       int64
	OrderNo       string
	PaymentMethod string
	TID           string
	CardInfo      CardInfo
	Amount        Amount
	ApprovedAt    time.Time
	audit.Fields
}

// CardInfo carries the card fields returned by the payment gateway.
// Empty for non-card methods.
type CardInfo struct {
	Issuer       string
	PurchaseCorp string
	CardNo       string
}

type Amount struct {
	Total    int64
	Discount int64
}

type CreatePaymentInput struct {
	OrderNo       string
	PaymentMethod string
	TID           string
	CardInfo      CardInfo
	Amount        Amount
	ApprovedAt    time.Time
}
