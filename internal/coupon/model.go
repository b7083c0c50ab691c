package coupon

import (
	"time"

	"marketbridge/internal/audit"
)

// Coupon is a discount instrument scoped to one product.
type Coupon struct {
	ID        int64
	ProductID int64
	Name      string

	// Price is the discount amount taken off when the coupon is applied.
	Price int64

	// Count is how many of this coupon remain issuable.
	Count int64

	// MinimumPrice is the minimum purchase required to use the coupon.
	MinimumPrice int64

	StartDate time.Time
	EndDate   time.Time
	audit.Fields
}

// Valid reports whether the coupon's validity window contains t and the
// purchase amount reaches the minimum. Order creation does not gate on this;
// it exists for display-side filtering.
func (c *Coupon) Valid(t time.Time, purchasePrice int64) bool {
	if t.Before(c.StartDate) || t.After(c.EndDate) {
		return false
	}
	return purchasePrice >= c.MinimumPrice
}
