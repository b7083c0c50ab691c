package handler

import (
	"net/http"

	"marketbridge/internal/order"
	"marketbridge/internal/response"
	"marketbridge/internal/utils"
)

type productValueRequest struct {
	ProductID     int64  `json:"productId"`
	SellerID      int64  `json:"sellerId"`
	CouponID      *int64 `json:"couponId"`
	Quantity      int64  `json:"quantity"`
	DeliveredDate string `json:"deliveredDate"`
}

type createOrderRequest struct {
	OrderNo         string                `json:"orderNo"`
	OrderName       string                `json:"orderName"`
	AddressID       int64                 `json:"addressId"`
	TotalOrderPrice int64                 `json:"totalOrderPrice"`
	RealOrderPrice  int64                 `json:"realOrderPrice"`
	UsedPoint       int64                 `json:"usedPoint"`
	ProductValues   []productValueRequest `json:"productValues"`
}

type checkoutRequest struct {
	OrderNo       string                `json:"orderNo"`
	OrderName     string                `json:"orderName"`
	AddressID     int64                 `json:"addressId"`
	Amount        int64                 `json:"amount"`
	RewardType    string                `json:"rewardType"`
	ProductValues []productValueRequest `json:"productValues"`
}

type cancelReturnRequest struct {
	Reason     string `json:"reason"`
	StatusCode string `json:"statusCode"`
}

type orderDetailResponse struct {
	DetailID   int64  `json:"detailId"`
	ProductID  int64  `json:"productId"`
	CouponID   *int64 `json:"couponId"`
	CouponUsed bool   `json:"couponUsed"`
	Quantity   int64  `json:"quantity"`
	Price      int64  `json:"price"`
	StatusCode string `json:"statusCode"`
	Reason     string `json:"reason,omitempty"`
}

type orderResponse struct {
	OrderID              int64                 `json:"orderId"`
	OrderNo              string                `json:"orderNo"`
	OrderName            string                `json:"orderName"`
	TotalPrice           int64                 `json:"totalPrice"`
	RealPrice            int64                 `json:"realPrice"`
	TotalUsedCouponPrice int64                 `json:"totalUsedCouponPrice"`
	UsedPoint            int64                 `json:"usedPoint"`
	StatusCode           string                `json:"statusCode"`
	Details              []orderDetailResponse `json:"details"`
}

func toOrderResponse(o *order.Order) orderResponse {
	resp := orderResponse{
		OrderID:              o.ID,
		OrderNo:              o.OrderNo,
		OrderName:            o.OrderName,
		TotalPrice:           o.TotalPrice,
		RealPrice:            o.RealPrice,
		TotalUsedCouponPrice: o.TotalUsedCouponPrice,
		UsedPoint:            o.UsedPoint,
		StatusCode:           string(o.StatusCode),
		Details:              make([]orderDetailResponse, 0, len(o.Details)),
	}
	for _, d := range o.Details {
		resp.Details = append(resp.Details, orderDetailResponse{
			DetailID:   d.ID,
			ProductID:  d.ProductID,
			CouponID:   d.CouponID,
			CouponUsed: d.CouponUsed,
			Quantity:   d.Quantity,
			Price:      d.Price,
			StatusCode: string(d.StatusCode),
			Reason:     d.Reason,
		})
	}
	return resp
}

func toProductValues(reqs []productValueRequest) []order.ProductValue {
	values := make([]order.ProductValue, 0, len(reqs))
	for _, pv := range reqs {
		values = append(values, order.ProductValue{
			ProductID:     pv.ProductID,
			SellerID:      pv.SellerID,
			CouponID:      pv.CouponID,
			Quantity:      pv.Quantity,
			DeliveredDate: pv.DeliveredDate,
		})
	}
	return values
}

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	checkout, err := h.Order.GetCheckout(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, checkout)
}

func (h *Handler) StageCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.OrderNo == "" {
		badRequest(w, "orderNo is required")
		return
	}

	err := h.Order.StageCheckout(r.Context(), order.CheckoutInput{
		OrderNo:       req.OrderNo,
		OrderName:     req.OrderName,
		AddressID:     req.AddressID,
		Amount:        req.Amount,
		RewardType:    req.RewardType,
		ProductValues: toProductValues(req.ProductValues),
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Created(w, nil)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	memberID, _ := utils.GetMemberIDFromContext(r.Context())

	var req createOrderRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.OrderNo == "" {
		badRequest(w, "orderNo is required")
		return
	}
	if len(req.ProductValues) == 0 {
		badRequest(w, "productValues must not be empty")
		return
	}

	o, err := h.Order.Create(r.Context(), order.CreateOrderInput{
		MemberID:        memberID,
		AddressID:       req.AddressID,
		OrderName:       req.OrderName,
		OrderNo:         req.OrderNo,
		TotalOrderPrice: req.TotalOrderPrice,
		RealOrderPrice:  req.RealOrderPrice,
		UsedPoint:       req.UsedPoint,
		ProductValues:   toProductValues(req.ProductValues),
	})
	if err != nil {
		respondErr(w, err)
		return
	}

	response.Created(w, toOrderResponse(o))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.Order.GetDetail(r.Context(), r.PathValue("orderNo"))
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, toOrderResponse(o))
}

func (h *Handler) CancelReturnOrder(w http.ResponseWriter, r *http.Request) {
	var req cancelReturnRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.StatusCode == "" {
		badRequest(w, "statusCode is required")
		return
	}

	err := h.Order.CancelReturn(
		r.Context(),
		r.PathValue("orderNo"),
		req.Reason,
		order.StatusCode(req.StatusCode),
	)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, nil)
}
