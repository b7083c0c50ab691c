package handler

import (
	"errors"
	"net/http"
	"strconv"

	"marketbridge/internal/member"
	"marketbridge/internal/response"
	"marketbridge/internal/utils"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string `json:"token"`
	MemberID int64  `json:"memberId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		badRequest(w, "email and password are required")
		return
	}

	token, m, err := h.Member.Signup(r.Context(), member.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, member.ErrEmailExists) {
			badRequest(w, "email already registered")
			return
		}
		respondErr(w, err)
		return
	}

	setAccessToken(w, token)
	response.Created(w, authResponse{
		Token:    token,
		MemberID: m.ID,
		Email:    m.Email,
		Name:     m.Name,
	})
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	token, m, err := h.Member.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, member.ErrInvalidCredentials) {
			response.Fail(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondErr(w, err)
		return
	}

	setAccessToken(w, token)
	response.OK(w, authResponse{
		Token:    token,
		MemberID: m.ID,
		Email:    m.Email,
		Name:     m.Name,
	})
}

type meAddress struct {
	ID        int64  `json:"id"`
	Alias     string `json:"alias"`
	Value     string `json:"value"`
	IsDefault bool   `json:"isDefault"`
}

type meResponse struct {
	MemberID     int64       `json:"memberId"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Phone        string      `json:"phone"`
	PointBalance int64       `json:"pointBalance"`
	Addresses    []meAddress `json:"addresses"`
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	memberID, _ := utils.GetMemberIDFromContext(r.Context())

	m, err := h.Member.GetWithPointAndAddresses(r.Context(), memberID)
	if err != nil {
		respondErr(w, err)
		return
	}

	resp := meResponse{
		MemberID:  m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Phone:     m.Phone,
		Addresses: make([]meAddress, 0, len(m.Addresses)),
	}
	if m.Point != nil {
		resp.PointBalance = m.Point.Balance
	}
	for _, a := range m.Addresses {
		resp.Addresses = append(resp.Addresses, meAddress{
			ID:        a.ID,
			Alias:     a.Alias,
			Value:     a.Value(),
			IsDefault: a.IsDefault,
		})
	}

	response.OK(w, resp)
}

func setAccessToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// pathID parses the {id} segment as an int64.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
