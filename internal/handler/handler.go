// Package handler exposes the REST surface. Every endpoint wraps its payload
// in the uniform response envelope.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"marketbridge/internal/address"
	"marketbridge/internal/cart"
	"marketbridge/internal/category"
	"marketbridge/internal/member"
	"marketbridge/internal/middleware"
	"marketbridge/internal/order"
	"marketbridge/internal/payment"
	"marketbridge/internal/product"
	"marketbridge/internal/response"
	"marketbridge/internal/review"
)

type Handler struct {
	Member   member.Service
	Address  address.Service
	Category category.Service
	Product  product.Service
	Cart     cart.Service
	Order    order.Service
	Payment  payment.Service
	Review   review.Service
}

// NewRouter registers every route on a fresh mux. Member-scoped routes are
// wrapped with RequireAuth; identity resolution itself happens in the outer
// AuthMiddleware.
func NewRouter(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /members/signup", h.Signup)
	mux.HandleFunc("POST /members/signin", h.Signin)
	mux.Handle("GET /members/me", authed(h.Me))

	mux.Handle("GET /addresses", authed(h.ListAddresses))
	mux.Handle("POST /addresses", authed(h.CreateAddress))
	mux.Handle("DELETE /addresses/{id}", authed(h.DeleteAddress))
	mux.Handle("PATCH /addresses/{id}/default", authed(h.SetDefaultAddress))

	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("GET /categories/{id}/children", h.ListChildCategories)

	mux.HandleFunc("GET /products", h.ListProducts)
	mux.HandleFunc("GET /product/{id}", h.GetProduct)
	mux.HandleFunc("GET /product/{id}/review-surveys", h.GetReviewSurveys)
	mux.HandleFunc("GET /product/{id}/reviews", h.GetProductReviews)
	mux.HandleFunc("GET /product/{id}/reviews-count", h.GetProductReviewsCount)

	mux.Handle("GET /carts", authed(h.GetCart))
	mux.Handle("POST /carts", authed(h.AddToCart))
	mux.Handle("PATCH /carts", authed(h.UpdateCart))
	mux.Handle("DELETE /carts", authed(h.RemoveFromCart))

	mux.Handle("GET /orders/checkout", authed(h.GetCheckout))
	mux.Handle("POST /orders/checkout", authed(h.StageCheckout))
	mux.Handle("POST /orders", authed(h.CreateOrder))
	mux.Handle("GET /orders/{orderNo}", authed(h.GetOrder))
	mux.Handle("POST /orders/{orderNo}/cancel-return", authed(h.CancelReturnOrder))

	mux.Handle("POST /payments", authed(h.CreatePayment))
	mux.Handle("POST /payments/status", authed(h.ChangePaymentStatus))
	mux.Handle("GET /payments/{orderNo}", authed(h.GetPayment))

	mux.Handle("POST /review", authed(h.CreateReview))
	mux.HandleFunc("GET /review/{id}", h.GetReview)
	mux.Handle("PATCH /review/{id}", authed(h.UpdateReview))
	mux.Handle("DELETE /review/{id}", authed(h.DeleteReview))
	mux.Handle("POST /review/{id}/like", authed(h.ToggleReviewLike))

	mux.HandleFunc("GET /member/{id}/reviews", h.GetMemberReviews)
	mux.HandleFunc("GET /member/{id}/reviews-count", h.GetMemberReviewsCount)

	return mux
}

func authed(fn http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(fn)
}

func decode(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// respondErr translates service failures. Unauthenticated sentinels become
// 401; everything else goes through the envelope error mapping.
func respondErr(w http.ResponseWriter, err error) {
	if errors.Is(err, order.ErrUnauthenticated) ||
		errors.Is(err, cart.ErrUnauthenticated) ||
		errors.Is(err, address.ErrUnauthenticated) {
		response.Fail(w, http.StatusUnauthorized, "sign in required")
		return
	}
	response.Err(w, err)
}

func badRequest(w http.ResponseWriter, message string) {
	response.Fail(w, http.StatusBadRequest, message)
}
