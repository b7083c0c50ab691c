package address

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketbridge/internal/utils"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByMemberID(ctx context.Context, memberID int64) ([]*Address, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Address), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Address), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, addr *Address) error {
	args := m.Called(ctx, addr)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ClearDefault(ctx context.Context, memberID int64) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

func (m *MockRepository) SetDefault(ctx context.Context, memberID, addressID int64) error {
	args := m.Called(ctx, memberID, addressID)
	return args.Error(0)
}

func memberCtx(memberID int64) context.Context {
	return utils.WithMemberID(context.Background(), memberID)
}

func TestService_Create(t *testing.T) {
	input := CreateAddressInput{
		City:    "Seoul",
		Street:  "Teheran-ro 2",
		Zipcode: "06101",
		Detail:  "202",
		Alias:   "home",
	}

	t.Run("AsDefaultClearsPrevious", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		in := input
		in.SetAsDefault = true

		repo.On("ClearDefault", mock.Anything, int64(1)).Return(nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		addr, err := svc.Create(memberCtx(1), in)
		require.NoError(t, err)
		assert.True(t, addr.IsDefault)
		assert.Equal(t, int64(1), addr.MemberID)
		repo.AssertExpectations(t)
	})

	t.Run("NonDefaultSkipsClear", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		addr, err := svc.Create(memberCtx(1), input)
		require.NoError(t, err)
		assert.False(t, addr.IsDefault)
		repo.AssertNotCalled(t, "ClearDefault", mock.Anything, mock.Anything)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(context.Background(), input)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, int64(20)).Return(&Address{ID: 20, MemberID: 1}, nil)
		repo.On("Delete", mock.Anything, int64(20)).Return(nil)

		err := svc.Delete(memberCtx(1), 20)
		assert.NoError(t, err)
	})

	t.Run("OtherMembersAddress", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, int64(20)).Return(&Address{ID: 20, MemberID: 2}, nil)

		err := svc.Delete(memberCtx(1), 20)
		assert.ErrorIs(t, err, ErrAddressNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestAddress_Value(t *testing.T) {
	a := &Address{City: "Seoul", Street: "Teheran-ro 2", Detail: "202", Zipcode: "06101"}
	assert.Equal(t, "Seoul Teheran-ro 2 202 (06101)", a.Value())
}
