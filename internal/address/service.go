package address

import (
	"context"

	"go.uber.org/zap"

	"marketbridge/internal/logger"
	"marketbridge/internal/utils"
)

// Service defines the business logic for shipping addresses.
type Service interface {
	List(ctx context.Context) ([]*Address, error)
	Create(ctx context.Context, input CreateAddressInput) (*Address, error)
	Delete(ctx context.Context, addressID int64) error

	SetDefaultAddress(ctx context.Context, addressID int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Address, error) {
	memberID, ok := utils.GetMemberIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "List"),
	)
	log.Info("listing addresses")

	return s.repo.GetByMemberID(ctx, memberID)
}

func (s *service) Create(
	ctx context.Context,
	input CreateAddressInput,
) (*Address, error) {

	memberID, ok := utils.GetMemberIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Create"),
	)

	addr := &Address{
		MemberID:  memberID,
		City:      input.City,
		Street:    input.Street,
		Zipcode:   input.Zipcode,
		Detail:    input.Detail,
		Alias:     input.Alias,
		IsDefault: input.SetAsDefault,
	}

	if input.SetAsDefault {
		_ = s.repo.ClearDefault(ctx, memberID)
	}

	if err := s.repo.Create(ctx, addr); err != nil {
		log.Error("failed to create address", zap.Error(err))
		return nil, err
	}

	log.Info("address created", zap.Int64("address_id", addr.ID))
	return addr, nil
}

func (s *service) Delete(ctx context.Context, addressID int64) error {
	memberID, ok := utils.GetMemberIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	addr, err := s.repo.GetByID(ctx, addressID)
	if err != nil || addr.MemberID != memberID {
		return ErrAddressNotFound
	}

	return s.repo.Delete(ctx, addressID)
}

func (s *service) SetDefaultAddress(ctx context.Context, addressID int64) error {
	memberID, ok := utils.GetMemberIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "SetDefaultAddress"),
		zap.Int64("address_id", addressID),
	)
	log.Info("setting default address")

	if err := s.repo.SetDefault(ctx, memberID, addressID); err != nil {
		log.Error("failed to set default address", zap.Error(err))
		return err
	}

	return nil
}
