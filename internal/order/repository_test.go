package order

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_CreateOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	couponID := int64(7)

	newOrder := func() *Order {
		o := &Order{
			MemberID:   1,
			AddressID:  20,
			OrderName:  "Apples and more",
			OrderNo:    "ORD-1",
			TotalPrice: 20000,
			RealPrice:  19000,
			StatusCode: StatusOrderInit,
		}
		o.AddDetail(&OrderDetail{ProductID: 100, CouponID: &couponID, CouponUsed: true, Quantity: 1, Price: 12000, StatusCode: StatusOrderInit})
		o.AddDetail(&OrderDetail{ProductID: 101, Quantity: 1, Price: 8000, StatusCode: StatusOrderInit})
		return o
	}

	t.Run("Success", func(t *testing.T) {
		o := newOrder()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs(
				o.MemberID, o.AddressID, o.OrderName, o.OrderNo,
				o.TotalPrice, o.RealPrice, o.TotalUsedCouponPrice, o.UsedPoint,
				o.TID, o.StatusCode,
			).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(50, now, now))

		mock.ExpectQuery(`INSERT INTO order_details`).
			WithArgs(int64(50), "ORD-1", int64(100), &couponID, true, int64(1), int64(12000), StatusOrderInit, "").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(60, now, now))

		mock.ExpectQuery(`INSERT INTO order_details`).
			WithArgs(int64(50), "ORD-1", int64(101), nil, false, int64(1), int64(8000), StatusOrderInit, "").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(61, now, now))

		mock.ExpectCommit()

		err := repo.CreateOrder(ctx, o)
		assert.NoError(t, err)
		assert.Equal(t, int64(50), o.ID)
		assert.Equal(t, int64(50), o.Details[0].OrderID)
		assert.Equal(t, int64(61), o.Details[1].ID)
	})

	t.Run("RollbackOnDetailError", func(t *testing.T) {
		o := newOrder()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(50, now, now))
		mock.ExpectQuery(`INSERT INTO order_details`).
			WillReturnError(errors.New("insert error"))
		mock.ExpectRollback()

		err := repo.CreateOrder(ctx, o)
		assert.Error(t, err)
	})

	t.Run("RollbackOnOrderError", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnError(errors.New("duplicate key value violates unique constraint \"orders_order_no_key\""))
		mock.ExpectRollback()

		err := repo.CreateOrder(ctx, newOrder())
		assert.Error(t, err)
	})
}

func TestRepository_GetByOrderNoWithDetails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()
	couponID := int64(7)

	t.Run("Success", func(t *testing.T) {
		orderRows := sqlmock.NewRows([]string{
			"id", "member_id", "address_id", "order_name", "order_no",
			"total_price", "real_price", "total_used_coupon_price", "used_point",
			"tid", "status_code", "created_at", "updated_at",
		}).AddRow(50, 1, 20, "Apples and more", "ORD-1", 20000, 19000, 1000, 0, "", "ORDER_INIT", now, now)

		detailRows := sqlmock.NewRows([]string{
			"id", "order_id", "order_no", "product_id", "coupon_id", "coupon_used",
			"quantity", "price", "status_code", "reason", "created_at", "updated_at",
		}).
			AddRow(60, 50, "ORD-1", 100, couponID, true, 1, 12000, "ORDER_INIT", "", now, now).
			AddRow(61, 50, "ORD-1", 101, nil, false, 1, 8000, "ORDER_INIT", "", now, now)

		mock.ExpectQuery(`SELECT .* FROM orders WHERE order_no = \$1`).
			WithArgs("ORD-1").
			WillReturnRows(orderRows)
		mock.ExpectQuery(`SELECT .* FROM order_details WHERE order_id = \$1`).
			WithArgs(int64(50)).
			WillReturnRows(detailRows)

		o, err := repo.GetByOrderNoWithDetails(ctx, "ORD-1")
		require.NoError(t, err)
		assert.Equal(t, int64(50), o.ID)
		require.Len(t, o.Details, 2)
		require.NotNil(t, o.Details[0].CouponID)
		assert.Equal(t, couponID, *o.Details[0].CouponID)
		assert.Nil(t, o.Details[1].CouponID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders WHERE order_no = \$1`).
			WithArgs("NOPE").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByOrderNoWithDetails(ctx, "NOPE")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_SaveOrderTemps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	temps := []*OrderTemp{
		{
			OrderNo:   "ORD-1",
			OrderName: "Apples",
			AddressID: 20,
			Amount:    15000,
			ProductValue: ProductValue{
				ProductID: 100,
				Quantity:  1,
			},
		},
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO order_temps`).
			WithArgs(
				"ORD-1", "Apples", int64(20), int64(15000), "",
				int64(100), int64(0), nil, int64(1), "",
			).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		err := repo.SaveOrderTemps(ctx, temps)
		assert.NoError(t, err)
	})

	t.Run("RollbackOnError", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO order_temps`).
			WillReturnError(errors.New("insert error"))
		mock.ExpectRollback()

		err := repo.SaveOrderTemps(ctx, temps)
		assert.Error(t, err)
	})
}
