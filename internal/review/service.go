package review

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"marketbridge/internal/apperror"
	"marketbridge/internal/logger"
	"marketbridge/internal/utils"
)

// PageSize is the fixed page length of review listings.
const PageSize = 5

type Service interface {
	Create(ctx context.Context, input CreateReviewInput) (*Review, error)
	Get(ctx context.Context, id int64) (*Review, error)
	Update(ctx context.Context, input UpdateReviewInput) (*Review, error)
	Delete(ctx context.Context, id int64) error

	// ToggleLike flips the like state for the signed-in member. Returns
	// the resulting state: true when the like now exists.
	ToggleLike(ctx context.Context, reviewID int64) (bool, error)

	GetSurveyQuestions(ctx context.Context, productID int64) ([]SurveyQuestionDto, error)

	GetProductReviews(ctx context.Context, productID, page int64, sortBy string) ([]*ReviewListItem, error)
	GetMemberReviews(ctx context.Context, memberID, page int64, sortBy string) ([]*ReviewListItem, error)
	GetProductReviewsCount(ctx context.Context, productID int64) (int64, error)
	GetMemberReviewsCount(ctx context.Context, memberID int64) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CreateReviewInput) (*Review, error) {
	memberID, ok := utils.GetMemberIDFromContext(ctx)
	if !ok {
		return nil, apperror.InvalidInput("sign in required")
	}

	rv := &Review{
		MemberID:  memberID,
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Content:   input.Content,
		Summary:   input.Summary,
	}

	for _, img := range input.Images {
		rv.AddImage(&ReviewImage{
			SeqNo:       img.SeqNo,
			ImageURL:    img.ImageURL,
			Description: img.Description,
		})
	}

	for _, sv := range input.Surveys {
		rv.AddSurvey(&ReviewSurvey{
			SurveyCategoryID: sv.SurveyCategoryID,
			SurveyCategory:   sv.SurveyCategoryName,
			Content:          sv.Content,
		})
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		logger.FromCtx(ctx).Error("failed to create review",
			zap.String("service", "Review"),
			zap.Int64("product_id", input.ProductID),
			zap.Error(err),
		)
		return nil, err
	}

	return rv, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Review, error) {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return nil, apperror.NotFound("review", id)
		}
		return nil, err
	}
	return rv, nil
}

func (s *service) Update(ctx context.Context, input UpdateReviewInput) (*Review, error) {
	rv, err := s.repo.GetByID(ctx, input.ReviewID)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return nil, apperror.NotFound("review", input.ReviewID)
		}
		return nil, err
	}

	rv.Update(input.Rating, input.Content, input.Summary)

	// Survey answers update by id match. An answer not named in the
	// request keeps its current content.
	for _, sv := range rv.Surveys {
		for _, in := range input.Surveys {
			if in.SurveyID == sv.ID {
				sv.Content = in.Content
				break
			}
		}
	}

	// Images are not patched, they are replaced with the request's set.
	rv.Images = rv.Images[:0]
	for _, img := range input.Images {
		rv.AddImage(&ReviewImage{
			SeqNo:       img.SeqNo,
			ImageURL:    img.ImageURL,
			Description: img.Description,
		})
	}

	if err := s.repo.Update(ctx, rv); err != nil {
		logger.FromCtx(ctx).Error("failed to update review",
			zap.String("service", "Review"),
			zap.Int64("review_id", input.ReviewID),
			zap.Error(err),
		)
		return nil, err
	}

	return rv, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrReviewNotFound) {
		return apperror.NotFound("review", id)
	}
	return err
}

func (s *service) ToggleLike(ctx context.Context, reviewID int64) (bool, error) {
	memberID, ok := utils.GetMemberIDFromContext(ctx)
	if !ok {
		return false, apperror.InvalidInput("sign in required")
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Review"),
		zap.String("method", "ToggleLike"),
		zap.Int64("review_id", reviewID),
	)

	exists, err := s.repo.LikeExists(ctx, reviewID, memberID)
	if err != nil {
		log.Error("failed to check like", zap.Error(err))
		return false, err
	}

	if exists {
		if err := s.repo.DeleteLike(ctx, reviewID, memberID); err != nil {
			log.Error("failed to delete like", zap.Error(err))
			return false, err
		}
		return false, nil
	}

	if err := s.repo.CreateLike(ctx, reviewID, memberID); err != nil {
		log.Error("failed to create like", zap.Error(err))
		return false, err
	}
	return true, nil
}

func (s *service) GetSurveyQuestions(ctx context.Context, productID int64) ([]SurveyQuestionDto, error) {
	return s.repo.FindSurveyQuestions(ctx, productID)
}

func (s *service) GetProductReviews(
	ctx context.Context,
	productID, page int64,
	sortBy string,
) ([]*ReviewListItem, error) {
	return s.repo.FindByProductID(ctx, productID, PageSize, page*PageSize, sortBy)
}

func (s *service) GetMemberReviews(
	ctx context.Context,
	memberID, page int64,
	sortBy string,
) ([]*ReviewListItem, error) {
	return s.repo.FindByMemberID(ctx, memberID, PageSize, page*PageSize, sortBy)
}

func (s *service) GetProductReviewsCount(ctx context.Context, productID int64) (int64, error) {
	return s.repo.CountByProductID(ctx, productID)
}

func (s *service) GetMemberReviewsCount(ctx context.Context, memberID int64) (int64, error) {
	return s.repo.CountByMemberID(ctx, memberID)
}
