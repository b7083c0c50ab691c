package product

import "marketbridge/internal/audit"

type Product struct {
	ID         int64
	CategoryID *int64
	ProductNo  string
	Name       string
	Price      int64
	Stock      int64

	// DiscountRate is the catalog display discount percentage.
	DiscountRate int64

	// IsOwn marks first-party inventory as opposed to marketplace listings.
	IsOwn  bool
	IsSubs bool

	ThumbImg string
	audit.Fields

	OptionNames []string
}

// Increase restocks the product, used when a cancelled or returned line is
// put back into inventory.
func (p *Product) Increase(quantity int64) {
	p.Stock += quantity
}
