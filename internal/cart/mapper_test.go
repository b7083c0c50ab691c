package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketbridge/internal/coupon"
	"marketbridge/internal/product"
)

func TestNewCartLineDto(t *testing.T) {
	p := &product.Product{
		ID:           100,
		ProductNo:    "P-100",
		Name:         "Fuji Apples 1kg",
		Price:        12000,
		Stock:        30,
		DiscountRate: 10,
		IsOwn:        true,
		ThumbImg:     "http://img/apples",
		OptionNames:  []string{"1kg", "2kg"},
	}
	c := &Cart{ID: 1, MemberID: 1, ProductID: 100, Quantity: 2}
	endDate := time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC)
	coupons := []*coupon.Coupon{
		{ID: 7, ProductID: 100, Name: "September apples", Price: 1000, MinimumPrice: 10000, EndDate: endDate},
	}

	dto := NewCartLineDto(c, p, coupons)

	assert.Equal(t, int64(100), dto.ProductID)
	assert.Equal(t, "Fuji Apples 1kg", dto.ProductName)
	assert.Equal(t, int64(12000), dto.ProductPrice)
	assert.Equal(t, int64(2), dto.Quantity)
	assert.Equal(t, int64(30), dto.Stock)
	assert.True(t, dto.IsOwn)
	assert.Equal(t, []string{"1kg", "2kg"}, dto.OptionNames)
	assert.Zero(t, dto.DeliveryFee)

	require.Len(t, dto.Coupons, 1)
	assert.Equal(t, int64(7), dto.Coupons[0].CouponID)
	assert.Equal(t, "2026-09-30 23:59:59", dto.Coupons[0].EndDate)
	assert.Equal(t, int64(10000), dto.Coupons[0].MinimumPrice)
}

func TestNewCartLineDto_NoCoupons(t *testing.T) {
	p := &product.Product{ID: 101, Name: "Milk 1L", Price: 3000}
	c := &Cart{ProductID: 101, Quantity: 1}

	dto := NewCartLineDto(c, p, nil)

	assert.Empty(t, dto.Coupons)
	assert.Equal(t, int64(1), dto.Quantity)
}
