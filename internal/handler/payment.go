package handler

import (
	"net/http"
	"time"

	"marketbridge/internal/order"
	"marketbridge/internal/payment"
	"marketbridge/internal/response"
)

type createPaymentRequest struct {
	OrderNo        string    `json:"orderNo"`
	PaymentMethod  string    `json:"paymentMethod"`
	TID            string    `json:"tid"`
	CardIssuer     string    `json:"cardIssuer"`
	PurchaseCorp   string    `json:"purchaseCorp"`
	CardNo         string    `json:"cardNo"`
	TotalAmount    int64     `json:"totalAmount"`
	DiscountAmount int64     `json:"discountAmount"`
	ApprovedAt     time.Time `json:"approvedAt"`
}

type changePaymentStatusRequest struct {
	OrderNo    string `json:"orderNo"`
	StatusCode string `json:"statusCode"`
}

type paymentResponse struct {
	PaymentID      int64     `json:"paymentId"`
	OrderNo        string    `json:"orderNo"`
	PaymentMethod  string    `json:"paymentMethod"`
	TID            string    `json:"tid"`
	TotalAmount    int64     `json:"totalAmount"`
	DiscountAmount int64     `json:"discountAmount"`
	ApprovedAt     time.Time `json:"approvedAt"`
}

func toPaymentResponse(p *payment.Payment) paymentResponse {
	return paymentResponse{
		PaymentID:      p.ID,
		OrderNo:        p.OrderNo,
		PaymentMethod:  p.PaymentMethod,
		TID:            p.TID,
		TotalAmount:    p.Amount.Total,
		DiscountAmount: p.Amount.Discount,
		ApprovedAt:     p.ApprovedAt,
	}
}

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.OrderNo == "" {
		badRequest(w, "orderNo is required")
		return
	}

	p, err := h.Payment.Create(r.Context(), payment.CreatePaymentInput{
		OrderNo:       req.OrderNo,
		PaymentMethod: req.PaymentMethod,
		TID:           req.TID,
		CardInfo: payment.CardInfo{
			Issuer:       req.CardIssuer,
			PurchaseCorp: req.PurchaseCorp,
			CardNo:       req.CardNo,
		},
		Amount: payment.Amount{
			Total:    req.TotalAmount,
			Discount: req.DiscountAmount,
		},
		ApprovedAt: req.ApprovedAt,
	})
	if err != nil {
		respondErr(w, err)
		return
	}

	response.Created(w, toPaymentResponse(p))
}

func (h *Handler) ChangePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req changePaymentStatusRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.OrderNo == "" || req.StatusCode == "" {
		badRequest(w, "orderNo and statusCode are required")
		return
	}

	err := h.Payment.ChangeStatusCode(r.Context(), req.OrderNo, order.StatusCode(req.StatusCode))
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, nil)
}

func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.Payment.GetByOrderNo(r.Context(), r.PathValue("orderNo"))
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, toPaymentResponse(p))
}
