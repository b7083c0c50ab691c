package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketbridge/internal/apperror"
	"marketbridge/internal/cart"
	"marketbridge/internal/product"
	"marketbridge/internal/response"
	"marketbridge/internal/utils"
)

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) Get(ctx context.Context, productID int64) (*product.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *mockProductService) ListByCategory(ctx context.Context, categoryID int64) ([]*product.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

type mockCartService struct {
	mock.Mock
}

func (m *mockCartService) GetCartLines(ctx context.Context) ([]cart.CartLineDto, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.CartLineDto), args.Error(1)
}

func (m *mockCartService) Add(ctx context.Context, input cart.AddCartInput) (*cart.Cart, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *mockCartService) UpdateQuantity(ctx context.Context, input cart.UpdateCartInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *mockCartService) Remove(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestRouter_Envelope(t *testing.T) {
	products := new(mockProductService)
	mux := NewRouter(&Handler{Product: products})

	t.Run("OK", func(t *testing.T) {
		products.On("Get", mock.Anything, int64(100)).
			Return(&product.Product{ID: 100, Name: "Fuji Apples 1kg", Price: 12000}, nil).Once()

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/product/100", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		env := decodeEnvelope(t, rec)
		assert.Equal(t, 200, env.Code)
		assert.Equal(t, "OK", env.Status)
		require.NotNil(t, env.Data)

		data := env.Data.(map[string]any)
		assert.Equal(t, "Fuji Apples 1kg", data["name"])
	})

	t.Run("NotFound", func(t *testing.T) {
		products.On("Get", mock.Anything, int64(999)).
			Return(nil, apperror.NotFound("product", int64(999))).Once()

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/product/999", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, 404, env.Code)
		assert.Nil(t, env.Data)
	})

	t.Run("BadPathValue", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/product/abc", nil))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "invalid product id", env.Message)
	})

	t.Run("UnknownServiceError", func(t *testing.T) {
		products.On("ListByCategory", mock.Anything, int64(5)).
			Return(nil, assert.AnError).Once()

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?categoryId=5", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "internal server error", env.Message)
	})
}

func TestRouter_Auth(t *testing.T) {
	carts := new(mockCartService)
	mux := NewRouter(&Handler{Cart: carts})

	t.Run("AnonymousGets401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/carts", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, 401, env.Code)
		assert.Equal(t, "sign in required", env.Message)
	})

	t.Run("SignedInPassesThrough", func(t *testing.T) {
		carts.On("GetCartLines", mock.Anything).Return([]cart.CartLineDto{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/carts", nil)
		req = req.WithContext(utils.WithMemberID(req.Context(), 1))

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "OK", env.Status)
	})
}
