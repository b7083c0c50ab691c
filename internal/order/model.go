package order

import (
	"marketbridge/internal/audit"
	"marketbridge/internal/coupon"
	"marketbridge/internal/product"
)

// StatusCode marks an order or order line's lifecycle stage. Transitions are
// applied as supplied by the caller; there is no guard table.
type StatusCode string

const (
	StatusOrderInit         StatusCode = "ORDER_INIT"
	StatusPaymentCompleted  StatusCode = "PAYMENT_COMPLETED"
	StatusDeliveryIng       StatusCode = "DELIVERY_ING"
	StatusDeliveryCompleted StatusCode = "DELIVERY_COMPLETED"
	StatusOrderCancel       StatusCode = "ORDER_CANCEL"
	StatusReturnInit        StatusCode = "RETURN_INIT"
	StatusReturnCompleted   StatusCode = "RETURN_COMPLETED"
)

// Order is the aggregate root owning its detail lines.
type Order struct {
	ID        int64
	MemberID  int64
	AddressID int64

	OrderName string

	// OrderNo is the caller-supplied business key. Uniqueness is the
	// database constraint's job, not the workflow's.
	OrderNo string

	// TotalPrice is the pre-discount sum as supplied by the caller.
	TotalPrice int64

	// RealPrice is what was actually paid:
	// totalPrice - totalUsedCouponPrice - usedPoint.
	RealPrice int64

	TotalUsedCouponPrice int64
	UsedPoint            int64

	// TID is the payment gateway transaction id.
	TID string

	StatusCode StatusCode
	audit.Fields

	Details []*OrderDetail
}

// OrderDetail is one purchased line within an order.
type OrderDetail struct {
	ID        int64
	OrderID   int64
	OrderNo   string
	ProductID int64

	// CouponID is nil when no coupon was applied to this line.
	CouponID   *int64
	CouponUsed bool

	Quantity int64

	// Price is the product's unit price captured at order time.
	Price int64

	StatusCode StatusCode
	Reason     string
	audit.Fields

	Product *product.Product
	Coupon  *coupon.Coupon
}

// AddDetail appends the line and wires the owning side onto it.
func (o *Order) AddDetail(d *OrderDetail) {
	d.OrderID = o.ID
	d.OrderNo = o.OrderNo
	o.Details = append(o.Details, d)
}

// CancelReturn applies the given status and reason to every detail uniformly.
func (o *Order) CancelReturn(reason string, statusCode StatusCode) {
	for _, d := range o.Details {
		d.Cancel(reason, statusCode)
	}
}

// ReturnCoupon reverses coupon consumption across all details.
func (o *Order) ReturnCoupon() {
	for _, d := range o.Details {
		d.ReturnCoupon()
	}
}

func (o *Order) ChangeStatusCode(statusCode StatusCode) {
	o.StatusCode = statusCode
}

func (d *OrderDetail) Cancel(reason string, statusCode StatusCode) {
	d.StatusCode = statusCode
	d.Reason = reason
}

func (d *OrderDetail) ReturnCoupon() {
	d.CouponUsed = false
}

// ProductValue is one purchase entry in a create-order request.
type ProductValue struct {
	ProductID     int64
	SellerID      int64
	CouponID      *int64
	Quantity      int64
	DeliveredDate string
}

type CreateOrderInput struct {
	MemberID        int64
	AddressID       int64
	OrderName       string
	OrderNo         string
	TotalOrderPrice int64
	RealOrderPrice  int64
	UsedPoint       int64
	ProductValues   []ProductValue
}

// OrderTemp stages one checkout line before payment confirmation.
type OrderTemp struct {
	ID         int64
	OrderNo    string
	OrderName  string
	AddressID  int64
	Amount     int64
	RewardType string
	ProductValue
	audit.Fields
}

// CheckoutDto is what GET /orders/checkout returns: the default shipping
// address and the member's point balance.
type CheckoutDto struct {
	AddressValue string `json:"addressValue"`
	PointBalance int64  `json:"pointBalance"`
}

type CheckoutInput struct {
	OrderNo       string
	OrderName     string
	AddressID     int64
	Amount        int64
	RewardType    string
	ProductValues []ProductValue
}
