package cart

import (
	"marketbridge/internal/audit"
	"marketbridge/internal/product"
)

type Cart struct {
	ID        int64
	MemberID  int64
	ProductID int64
	Quantity  int64
	audit.Fields

	Product *product.Product
}

// CartLineDto is the display projection of one cart line.
type CartLineDto struct {
	ProductID     int64       `json:"productId"`
	ProductNo     string      `json:"productNo"`
	ProductName   string      `json:"productName"`
	ProductPrice  int64       `json:"productPrice"`
	Quantity      int64       `json:"quantity"`
	DiscountRate  int64       `json:"discountRate"`
	ThumbImageURL string      `json:"thumbImageUrl"`
	IsOwn         bool        `json:"isOwn"`
	IsSubs        bool        `json:"isSubs"`
	Stock         int64       `json:"stock"`
	DeliveryFee   int64       `json:"deliveryFee"`
	OptionNames   []string    `json:"optionNames"`
	Coupons       []CouponDto `json:"availableCoupons"`
}

// CouponDto is a coupon usable against the cart line's product.
type CouponDto struct {
	CouponID     int64  `json:"couponId"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	EndDate      string `json:"endDate"`
	MinimumPrice int64  `json:"minimumPrice"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartInput struct {
	ProductID int64
	Quantity  int64
}
