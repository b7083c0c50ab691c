package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"marketbridge/internal/apperror"
	"marketbridge/internal/logger"
	"marketbridge/internal/order"
)

type Service interface {
	// Create links a confirmed payment to its order. A missing transaction
	// id is filled in with a generated one.
	Create(ctx context.Context, input CreatePaymentInput) (*Payment, error)

	GetByOrderNo(ctx context.Context, orderNo string) (*Payment, error)

	// ChangeStatusCode pushes a status-code change onto the linked order
	// and its details.
	ChangeStatusCode(ctx context.Context, orderNo string, statusCode order.StatusCode) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CreatePaymentInput) (*Payment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Payment"),
		zap.String("method", "Create"),
		zap.String("order_no", input.OrderNo),
	)

	p := &Payment{
		OrderNo:       input.OrderNo,
		PaymentMethod: input.PaymentMethod,
		TID:           input.TID,
		CardInfo:      input.CardInfo,
		Amount:        input.Amount,
		ApprovedAt:    input.ApprovedAt,
	}

	if p.TID == "" {
		p.TID = uuid.NewString()
	}
	if p.ApprovedAt.IsZero() {
		p.ApprovedAt = time.Now()
	}

	if err := s.repo.Save(ctx, p); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, apperror.NotFound("order", input.OrderNo)
		}
		log.Error("failed to save payment", zap.Error(err))
		return nil, err
	}

	log.Info("payment linked", zap.Int64("payment_id", p.ID), zap.String("tid", p.TID))
	return p, nil
}

func (s *service) GetByOrderNo(ctx context.Context, orderNo string) (*Payment, error) {
	p, err := s.repo.GetByOrderNo(ctx, orderNo)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			return nil, apperror.NotFound("payment", orderNo)
		}
		return nil, err
	}
	return p, nil
}

func (s *service) ChangeStatusCode(
	ctx context.Context,
	orderNo string,
	statusCode order.StatusCode,
) error {
	err := s.repo.ChangeStatusCode(ctx, orderNo, statusCode)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return apperror.NotFound("order", orderNo)
		}
		return err
	}

	logger.FromCtx(ctx).Info("status code propagated",
		zap.String("service", "Payment"),
		zap.String("order_no", orderNo),
		zap.String("status_code", string(statusCode)),
	)
	return nil
}
