package member

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, input SignupInput, hashedPassword string) (*Member, error) {
	args := m.Called(ctx, input, hashedPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockRepository) GetWithPointAndAddresses(ctx context.Context, id int64) (*Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func TestService_Signup(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		input := SignupInput{Email: "new@example.com", Password: "secret123", Name: "Kim", Phone: "010-1234-5678"}
		repo.On("Create", mock.Anything, input, mock.Anything).
			Run(func(args mock.Arguments) {
				hashed := args.String(2)
				assert.NotEqual(t, input.Password, hashed)
				assert.True(t, CheckPasswordHash(input.Password, hashed))
			}).
			Return(&Member{ID: 1, Email: input.Email, Name: input.Name}, nil)

		token, m, err := svc.Signup(ctx, input)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(1), m.ID)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New(`pq: duplicate key value violates unique constraint "members_email_key"`))

		_, _, err := svc.Signup(ctx, SignupInput{Email: "dup@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Signin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	hashed, err := HashPassword("secret123")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", mock.Anything, "kim@example.com").
			Return(&Member{ID: 1, Email: "kim@example.com", Password: hashed}, nil)

		token, m, err := svc.Signin(ctx, "kim@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(1), m.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", mock.Anything, "kim@example.com").
			Return(&Member{ID: 1, Email: "kim@example.com", Password: hashed}, nil)

		_, _, err := svc.Signin(ctx, "kim@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", mock.Anything, "nobody@example.com").
			Return(nil, errors.New("sql: no rows in result set"))

		_, _, err := svc.Signin(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
