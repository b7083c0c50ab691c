package handler

import (
	"net/http"
	"strconv"

	"marketbridge/internal/response"
	"marketbridge/internal/review"
)

type reviewResponse struct {
	ReviewID  int64    `json:"reviewId"`
	MemberID  int64    `json:"memberId"`
	ProductID int64    `json:"productId"`
	Rating    int      `json:"rating"`
	Content   string   `json:"content"`
	Summary   string   `json:"summary"`
	ImageURLs []string `json:"reviewImgUrls"`
}

func toReviewResponse(rv *review.Review) reviewResponse {
	resp := reviewResponse{
		ReviewID:  rv.ID,
		MemberID:  rv.MemberID,
		ProductID: rv.ProductID,
		Rating:    rv.Rating,
		Content:   rv.Content,
		Summary:   rv.Summary,
		ImageURLs: make([]string, 0, len(rv.Images)),
	}
	for _, img := range rv.Images {
		resp.ImageURLs = append(resp.ImageURLs, img.ImageURL)
	}
	return resp
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req review.CreateReviewInput
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ProductID == 0 {
		badRequest(w, "productId is required")
		return
	}

	rv, err := h.Review.Create(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Created(w, toReviewResponse(rv))
}

func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid review id")
		return
	}

	rv, err := h.Review.Get(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, toReviewResponse(rv))
}

func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid review id")
		return
	}

	var req review.UpdateReviewInput
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	req.ReviewID = id

	rv, err := h.Review.Update(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, toReviewResponse(rv))
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid review id")
		return
	}

	if err := h.Review.Delete(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, nil)
}

func (h *Handler) ToggleReviewLike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid review id")
		return
	}

	liked, err := h.Review.ToggleLike(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, map[string]any{"reviewId": id, "liked": liked})
}

func (h *Handler) GetReviewSurveys(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid product id")
		return
	}

	questions, err := h.Review.GetSurveyQuestions(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, questions)
}

// pageParams reads the page number and sort key of a review listing.
func pageParams(r *http.Request) (int64, string) {
	page, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if err != nil || page < 0 {
		page = 0
	}

	sortBy := r.URL.Query().Get("sortBy")
	if sortBy != "likes" {
		sortBy = "createdAt"
	}
	return page, sortBy
}

func (h *Handler) GetProductReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid product id")
		return
	}

	page, sortBy := pageParams(r)
	items, err := h.Review.GetProductReviews(r.Context(), id, page, sortBy)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, items)
}

func (h *Handler) GetMemberReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid member id")
		return
	}

	page, sortBy := pageParams(r)
	items, err := h.Review.GetMemberReviews(r.Context(), id, page, sortBy)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, items)
}

func (h *Handler) GetProductReviewsCount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid product id")
		return
	}

	count, err := h.Review.GetProductReviewsCount(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, map[string]int64{"count": count})
}

func (h *Handler) GetMemberReviewsCount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid member id")
		return
	}

	count, err := h.Review.GetMemberReviewsCount(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.OK(w, map[string]int64{"count": count})
}
