package handler

import (
	"net/http"
	"strconv"

	"marketbridge/internal/product"
	"marketbridge/internal/response"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Category.GetTotalCategories(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, categories)
}

func (h *Handler) ListChildCategories(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid category id")
		return
	}

	children, err := h.Category.GetChildCategories(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, children)
}

type productResponse struct {
	ProductID    int64    `json:"productId"`
	ProductNo    string   `json:"productNo"`
	Name         string   `json:"name"`
	Price        int64    `json:"price"`
	Stock        int64    `json:"stock"`
	DiscountRate int64    `json:"discountRate"`
	IsOwn        bool     `json:"isOwn"`
	IsSubs       bool     `json:"isSubs"`
	ThumbImg     string   `json:"thumbImg"`
	OptionNames  []string `json:"optionNames"`
}

func toProductResponse(p *product.Product) productResponse {
	return productResponse{
		ProductID:    p.ID,
		ProductNo:    p.ProductNo,
		Name:         p.Name,
		Price:        p.Price,
		Stock:        p.Stock,
		DiscountRate: p.DiscountRate,
		IsOwn:        p.IsOwn,
		IsSubs:       p.IsSubs,
		ThumbImg:     p.ThumbImg,
		OptionNames:  p.OptionNames,
	}
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid product id")
		return
	}

	p, err := h.Product.Get(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, toProductResponse(p))
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(r.URL.Query().Get("categoryId"), 10, 64)
	if err != nil {
		badRequest(w, "categoryId is required")
		return
	}

	products, err := h.Product.ListByCategory(r.Context(), categoryID)
	if err != nil {
		respondErr(w, err)
		return
	}

	items := make([]productResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	response.OK(w, items)
}
