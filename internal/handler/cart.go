package handler

import (
	"net/http"
	"strconv"

	"marketbridge/internal/cart"
	"marketbridge/internal/response"
)

type cartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	lines, err := h.Cart.GetCartLines(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, lines)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Quantity <= 0 {
		badRequest(w, "quantity must be positive")
		return
	}

	c, err := h.Cart.Add(r.Context(), cart.AddCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondErr(w, err)
		return
	}

	response.Created(w, map[string]any{
		"productId": c.ProductID,
		"quantity":  c.Quantity,
	})
}

func (h *Handler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Quantity <= 0 {
		badRequest(w, "quantity must be positive")
		return
	}

	err := h.Cart.UpdateQuantity(r.Context(), cart.UpdateCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, nil)
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.URL.Query().Get("productId"), 10, 64)
	if err != nil {
		badRequest(w, "productId is required")
		return
	}

	if err := h.Cart.Remove(r.Context(), productID); err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, nil)
}
