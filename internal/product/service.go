package product

import (
	"context"

	"go.uber.org/zap"

	"marketbridge/internal/logger"
)

type Service interface {
	Get(ctx context.Context, productID int64) (*Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, productID int64) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Product"),
		zap.String("method", "Get"),
		zap.Int64("product_id", productID),
	)

	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		log.Error("product lookup failed", zap.Error(err))
		return nil, err
	}

	p.OptionNames, err = s.repo.GetOptionNames(ctx, productID)
	if err != nil {
		log.Error("option lookup failed", zap.Error(err))
		return nil, err
	}

	return p, nil
}

func (s *service) ListByCategory(ctx context.Context, categoryID int64) ([]*Product, error) {
	return s.repo.FindByCategoryID(ctx, categoryID)
}
