package member

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"marketbridge/internal/logger"
)

type Service interface {
	Signup(ctx context.Context, input SignupInput) (string, *Member, error)
	Signin(ctx context.Context, email, password string) (string, *Member, error)
	GetWithPointAndAddresses(ctx context.Context, memberID int64) (*Member, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Signup(ctx context.Context, input SignupInput) (string, *Member, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Member"),
		zap.String("method", "Signup"),
		zap.String("email", input.Email),
	)

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	m, err := s.repo.Create(ctx, input, hashed)
	if err != nil {
		log.Error("failed to create member", zap.Error(err))
		if strings.Contains(err.Error(), "members_email_key") {
			return "", nil, ErrEmailExists
		}
		return "", nil, err
	}

	token, err := GenerateJWT(m.ID, m.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Int64("member_id", m.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("signup completed", zap.Int64("member_id", m.ID))

	return token, m, nil
}

func (s *service) Signin(ctx context.Context, email, password string) (string, *Member, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Member"),
		zap.String("method", "Signin"),
	)

	m, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("email not found")
		return "", nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, m.Password) {
		log.Warn("password mismatch")
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(m.ID, m.Email)
	return token, m, err
}

func (s *service) GetWithPointAndAddresses(ctx context.Context, memberID int64) (*Member, error) {
	return s.repo.GetWithPointAndAddresses(ctx, memberID)
}
