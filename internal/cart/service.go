package cart

import (
	"context"

	"go.uber.org/zap"

	"marketbridge/internal/coupon"
	"marketbridge/internal/logger"
	"marketbridge/internal/product"
	"marketbridge/internal/utils"
)

// Service defines the business logic for carts.
type Service interface {
	// GetCartLines projects the member's cart into display rows with
	// product fields, option names, and the coupons applicable per product.
	GetCartLines(ctx context.Context) ([]CartLineDto, error)

	Add(ctx context.Context, input AddCartInput) (*Cart, error)
	UpdateQuantity(ctx context.Context, input UpdateCartInput) error
	Remove(ctx context.Context, productID int64) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
	couponRepo  coupon.Repository
}

func NewService(repo Repository, productRepo product.Repository, couponRepo coupon.Repository) Service {
	return &service{
		repo:        repo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
	}
}

func (s *service) GetCartLines(ctx context.Context) ([]CartLineDto, error) {
	memberID, ok := utils.GetMemberIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Cart"),
		zap.String("method", "GetCartLines"),
	)

	carts, err := s.repo.GetByMemberID(ctx, memberID)
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		return nil, err
	}

	lines := make([]CartLineDto, 0, len(carts))

	for _, c := range carts {
		c.Product.OptionNames, err = s.productRepo.GetOptionNames(ctx, c.ProductID)
		if err != nil {
			log.Error("failed to load option names",
				zap.Int64("product_id", c.ProductID),
				zap.Error(err),
			)
			return nil, err
		}

		coupons, err := s.couponRepo.FindByProductID(ctx, c.ProductID)
		if err != nil {
			log.Error("failed to load coupons",
				zap.Int64("product_id", c.ProductID),
				zap.Error(err),
			)
			return nil, err
		}

		lines = append(lines, NewCartLineDto(c, c.Product, coupons))
	}

	log.Info("cart lines assembled", zap.Int("count", len(lines)))

	return lines, nil
}

func (s *service) Add(ctx context.Context, input AddCartInput) (*Cart, error) {
	memberID, ok := utils.GetMemberIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.productRepo.GetByID(ctx, input.ProductID); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, memberID, input)
}

func (s *service) UpdateQuantity(ctx context.Context, input UpdateCartInput) error {
	memberID, ok := utils.GetMemberIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	if input.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	return s.repo.UpdateQuantity(ctx, memberID, input.ProductID, input.Quantity)
}

func (s *service) Remove(ctx context.Context, productID int64) error {
	memberID, ok := utils.GetMemberIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	return s.repo.Remove(ctx, memberID, productID)
}
