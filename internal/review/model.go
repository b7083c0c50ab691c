package review

import (
	"time"

	"marketbridge/internal/audit"
)

// Review is the aggregate root of the review subsystem. It owns its images
// and survey answers; deleting a review removes both.
type Review struct {
	ID        int64
	MemberID  int64
	ProductID int64
	Rating    int
	Content   string
	Summary   string
	Images    []*ReviewImage
	Surveys   []*ReviewSurvey
	audit.Fields
}

func (r *Review) Update(rating int, content, summary string) {
	r.Rating = rating
	r.Content = content
	r.Summary = summary
}

func (r *Review) AddImage(img *ReviewImage) {
	img.ReviewID = r.ID
	r.Images = append(r.Images, img)
}

func (r *Review) AddSurvey(s *ReviewSurvey) {
	s.ReviewID = r.ID
	r.Surveys = append(r.Surveys, s)
}

type ReviewImage struct {
	ID          int64
	ReviewID    int64
	SeqNo       int64
	ImageURL    string
	Description string
}

// ReviewSurvey is one answered survey question, tied to a survey category
// of the reviewed product.
type ReviewSurvey struct {
	ID               int64
	ReviewID         int64
	SurveyCategoryID int64
	SurveyCategory   string
	Content          string
}

type ReviewLike struct {
	ID       int64
	ReviewID int64
	MemberID int64
}

// SurveyQuestionDto is one survey prompt for the review form. A nil option
// list marks a free-text prompt.
type SurveyQuestionDto struct {
	Question string   `json:"reviewSurveyQuestion"`
	Options  []string `json:"reviewSurveyOptionList"`
}

// ReviewListItem is one row of a product or member review listing.
type ReviewListItem struct {
	ReviewID    int64     `json:"reviewId"`
	ProductName string    `json:"productName"`
	MemberName  string    `json:"memberName"`
	SellerName  string    `json:"sellerName"`
	Rating      int       `json:"rating"`
	Content     string    `json:"content"`
	Likes       int64     `json:"likes"`
	ImageURLs   []string  `json:"reviewImgUrls"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ReviewImageInput struct {
	SeqNo       int64  `json:"seqNo"`
	ImageURL    string `json:"imgUrl"`
	Description string `json:"description"`
}

type ReviewSurveyInput struct {
	SurveyCategoryID   int64  `json:"reviewSurveyCategoryId"`
	SurveyCategoryName string `json:"reviewSurveyCategoryName"`
	Content            string `json:"content"`
}

type CreateReviewInput struct {
	ProductID int64               `json:"productId"`
	Rating    int                 `json:"rating"`
	Content   string              `json:"content"`
	Summary   string              `json:"summary"`
	Images    []ReviewImageInput  `json:"reviewImages"`
	Surveys   []ReviewSurveyInput `json:"reviewSurveys"`
}

type UpdateSurveyInput struct {
	SurveyID int64  `json:"reviewSurveyId"`
	Content  string `json:"content"`
}

type UpdateReviewInput struct {
	ReviewID int64               `json:"reviewId"`
	Rating   int                 `json:"rating"`
	Content  string              `json:"content"`
	Summary  string              `json:"summary"`
	Images   []ReviewImageInput  `json:"reviewImages"`
	Surveys  []UpdateSurveyInput `json:"updateReviewSurveys"`
}
