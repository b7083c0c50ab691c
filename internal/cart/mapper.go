package cart

import (
	"marketbridge/internal/coupon"
	"marketbridge/internal/product"
)

const couponDateLayout = "2006-01-02 15:04:05"

// NewCartLineDto assembles the display projection for one cart line. Pure
// read-side transformation: nothing is mutated.
func NewCartLineDto(c *Cart, p *product.Product, coupons []*coupon.Coupon) CartLineDto {
	dto := CartLineDto{
		ProductID:     p.ID,
		ProductNo:     p.ProductNo,
		ProductName:   p.Name,
		ProductPrice:  p.Price,
		Quantity:      c.Quantity,
		DiscountRate:  p.DiscountRate,
		ThumbImageURL: p.ThumbImg,
		IsOwn:         p.IsOwn,
		IsSubs:        p.IsSubs,
		Stock:         p.Stock,
		DeliveryFee:   0,
		OptionNames:   p.OptionNames,
	}

	for _, cp := range coupons {
		dto.Coupons = append(dto.Coupons, CouponDto{
			CouponID:     cp.ID,
			Name:         cp.Name,
			Price:        cp.Price,
			EndDate:      cp.EndDate.Format(couponDateLayout),
			MinimumPrice: cp.MinimumPrice,
		})
	}

	return dto
}
