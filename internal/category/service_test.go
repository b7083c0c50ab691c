package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockRepository) FindRoots(ctx context.Context) ([]*Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Category), args.Error(1)
}

func (m *MockRepository) FindByParentID(ctx context.Context, parentID int64) ([]*Category, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Category), args.Error(1)
}

func ptr(v int64) *int64 { return &v }

func TestService_GetTotalCategories(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("FindRoots", mock.Anything).Return([]*Category{
		{ID: 1, Level: 1, Name: "Fruit"},
	}, nil)
	repo.On("FindByParentID", mock.Anything, int64(1)).Return([]*Category{
		{ID: 10, ParentID: ptr(1), Level: 2, Name: "Apples"},
	}, nil)
	repo.On("FindByParentID", mock.Anything, int64(10)).Return([]*Category{
		{ID: 100, ParentID: ptr(10), Level: 3, Name: "Fuji"},
		{ID: 101, ParentID: ptr(10), Level: 3, Name: "Envy"},
	}, nil)

	tree, err := svc.GetTotalCategories(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)

	root := tree[0]
	assert.Equal(t, "Fruit", root.Name)
	// Roots have no parent row; the projection renders that as 0.
	assert.Zero(t, root.ParentID)

	require.Len(t, root.ChildCategories, 1)
	medium := root.ChildCategories[0]
	assert.Equal(t, int64(1), medium.ParentID)

	require.Len(t, medium.ChildCategories, 2)
	assert.Equal(t, "Fuji", medium.ChildCategories[0].Name)
	assert.Empty(t, medium.ChildCategories[0].ChildCategories)

	// Level 3 nodes never trigger another child lookup.
	repo.AssertNotCalled(t, "FindByParentID", mock.Anything, int64(100))
}

func TestService_GetChildCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("MediumReturnsSmalls", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, int64(10)).
			Return(&Category{ID: 10, ParentID: ptr(1), Level: 2, Name: "Apples"}, nil)
		repo.On("FindByParentID", mock.Anything, int64(10)).Return([]*Category{
			{ID: 100, ParentID: ptr(10), Level: 3, Name: "Fuji"},
		}, nil)

		children, err := svc.GetChildCategories(ctx, 10)
		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, int64(100), children[0].CategoryID)
	})

	t.Run("LeafReturnsItself", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, int64(100)).
			Return(&Category{ID: 100, ParentID: ptr(10), Level: 3, Name: "Fuji"}, nil)

		children, err := svc.GetChildCategories(ctx, 100)
		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, int64(100), children[0].CategoryID)
		repo.AssertNotCalled(t, "FindByParentID", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, int64(999)).Return(nil, ErrCategoryNotFound)

		_, err := svc.GetChildCategories(ctx, 999)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}
