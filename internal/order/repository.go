package order

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"marketbridge/internal/logger"
)

type Repository interface {
	// CreateOrder persists the order and its detail batch in one
	// transaction, wiring generated ids back onto the aggregate.
	CreateOrder(ctx context.Context, o *Order) error

	GetByOrderNo(ctx context.Context, orderNo string) (*Order, error)
	GetByOrderNoWithDetails(ctx context.Context, orderNo string) (*Order, error)

	SaveOrderTemps(ctx context.Context, temps []*OrderTemp) error

	// BeginTx opens the transaction a cross-repository workflow (cancel/
	// return) passes down the call chain.
	BeginTx(ctx context.Context) (*sql.Tx, error)

	GetByOrderNoWithDetailsTx(ctx context.Context, tx *sql.Tx, orderNo string) (*Order, error)
	UpdateDetailTx(ctx context.Context, tx *sql.Tx, d *OrderDetail) error
	UpdateStatusTx(ctx context.Context, tx *sql.Tx, orderID int64, statusCode StatusCode) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

func (r *repository) CreateOrder(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "CreateOrder"),
		zap.String("order_no", o.OrderNo),
		zap.Int("detail_count", len(o.Details)),
	)

	log.Debug("starting create order transaction")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			member_id, address_id, order_name, order_no,
			total_price, real_price, total_used_coupon_price, used_point,
			tid, status_code
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at
	`,
		o.MemberID,
		o.AddressID,
		o.OrderName,
		o.OrderNo,
		o.TotalPrice,
		o.RealPrice,
		o.TotalUsedCouponPrice,
		o.UsedPoint,
		o.TID,
		o.StatusCode,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i, d := range o.Details {
		d.OrderID = o.ID
		d.OrderNo = o.OrderNo

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_details (
				order_id, order_no, product_id, coupon_id, coupon_used,
				quantity, price, status_code, reason
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			RETURNING id, created_at, updated_at
		`,
			d.OrderID,
			d.OrderNo,
			d.ProductID,
			d.CouponID,
			d.CouponUsed,
			d.Quantity,
			d.Price,
			d.StatusCode,
			d.Reason,
		).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			log.Error("failed to insert order detail",
				zap.Int("detail_index", i),
				zap.Int64("product_id", d.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit create order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order persisted", zap.Int64("order_id", o.ID))

	return nil
}

const orderColumns = `
	id, member_id, address_id, order_name, order_no,
	total_price, real_price, total_used_coupon_price, used_point,
	tid, status_code, created_at, updated_at
`

func (r *repository) GetByOrderNo(ctx context.Context, orderNo string) (*Order, error) {
	q := `SELECT` + orderColumns + `FROM orders WHERE order_no = $1 LIMIT 1`

	var o Order
	err := r.db.QueryRowContext(ctx, q, orderNo).Scan(
		&o.ID, &o.MemberID, &o.AddressID, &o.OrderName, &o.OrderNo,
		&o.TotalPrice, &o.RealPrice, &o.TotalUsedCouponPrice, &o.UsedPoint,
		&o.TID, &o.StatusCode, &o.CreatedAt, &o.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) GetByOrderNoWithDetails(ctx context.Context, orderNo string) (*Order, error) {
	o, err := r.GetByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, order_id, order_no, product_id, coupon_id, coupon_used,
			quantity, price, status_code, reason, created_at, updated_at
		FROM order_details
		WHERE order_id = $1
		ORDER BY id
	`, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := scanDetails(rows, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) GetByOrderNoWithDetailsTx(
	ctx context.Context,
	tx *sql.Tx,
	orderNo string,
) (*Order, error) {

	q := `SELECT` + orderColumns + `FROM orders WHERE order_no = $1 FOR UPDATE`

	var o Order
	err := tx.QueryRowContext(ctx, q, orderNo).Scan(
		&o.ID, &o.MemberID, &o.AddressID, &o.OrderName, &o.OrderNo,
		&o.TotalPrice, &o.RealPrice, &o.TotalUsedCouponPrice, &o.UsedPoint,
		&o.TID, &o.StatusCode, &o.CreatedAt, &o.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT
			id, order_id, order_no, product_id, coupon_id, coupon_used,
			quantity, price, status_code, reason, created_at, updated_at
		FROM order_details
		WHERE order_id = $1
		ORDER BY id
		FOR UPDATE
	`, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := scanDetails(rows, &o); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) UpdateDetailTx(ctx context.Context, tx *sql.Tx, d *OrderDetail) error {
	const q = `
		UPDATE order_details
		SET status_code = $1,
		    reason = $2,
		    coupon_used = $3,
		    updated_at = NOW()
		WHERE id = $4
	`

	_, err := tx.ExecContext(ctx, q, d.StatusCode, d.Reason, d.CouponUsed, d.ID)
	return err
}

func (r *repository) UpdateStatusTx(
	ctx context.Context,
	tx *sql.Tx,
	orderID int64,
	statusCode StatusCode,
) error {

	const q = `
		UPDATE orders
		SET status_code = $1,
		    updated_at = NOW()
		WHERE id = $2
	`

	_, err := tx.ExecContext(ctx, q, statusCode, orderID)
	return err
}

func (r *repository) SaveOrderTemps(ctx context.Context, temps []*OrderTemp) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "SaveOrderTemps"),
		zap.Int("count", len(temps)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range temps {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO order_temps (
				order_no, order_name, address_id, amount, reward_type,
				product_id, seller_id, coupon_id, quantity, delivered_date
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			RETURNING id
		`,
			t.OrderNo, t.OrderName, t.AddressID, t.Amount, t.RewardType,
			t.ProductID, t.SellerID, t.CouponID, t.Quantity, t.DeliveredDate,
		).Scan(&t.ID)
		if err != nil {
			log.Error("failed to insert order temp", zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

func scanDetails(rows *sql.Rows, o *Order) error {
	for rows.Next() {
		var d OrderDetail
		if err := rows.Scan(
			&d.ID, &d.OrderID, &d.OrderNo, &d.ProductID, &d.CouponID, &d.CouponUsed,
			&d.Quantity, &d.Price, &d.StatusCode, &d.Reason, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return err
		}
		o.Details = append(o.Details, &d)
	}
	return rows.Err()
}
