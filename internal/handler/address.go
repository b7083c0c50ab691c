package handler

import (
	"net/http"

	"marketbridge/internal/address"
	"marketbridge/internal/response"
)

type createAddressRequest struct {
	City         string `json:"city"`
	Street       string `json:"street"`
	Zipcode      string `json:"zipcode"`
	Detail       string `json:"detail"`
	Alias        string `json:"alias"`
	SetAsDefault bool   `json:"setAsDefault"`
}

func (h *Handler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addrs, err := h.Address.List(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}

	items := make([]meAddress, 0, len(addrs))
	for _, a := range addrs {
		items = append(items, meAddress{
			ID:        a.ID,
			Alias:     a.Alias,
			Value:     a.Value(),
			IsDefault: a.IsDefault,
		})
	}

	response.OK(w, items)
}

func (h *Handler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var req createAddressRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	addr, err := h.Address.Create(r.Context(), address.CreateAddressInput{
		City:         req.City,
		Street:       req.Street,
		Zipcode:      req.Zipcode,
		Detail:       req.Detail,
		Alias:        req.Alias,
		SetAsDefault: req.SetAsDefault,
	})
	if err != nil {
		respondErr(w, err)
		return
	}

	response.Created(w, meAddress{
		ID:        addr.ID,
		Alias:     addr.Alias,
		Value:     addr.Value(),
		IsDefault: addr.IsDefault,
	})
}

func (h *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid address id")
		return
	}

	if err := h.Address.Delete(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}

	response.OK(w, nil)
}

func (h *Handler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid address id")
		return
	}

	if err := h.Address.SetDefaultAddress(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}

	response.OK(w, nil)
}
