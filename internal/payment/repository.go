package payment

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"marketbridge/internal/logger"
	"marketbridge/internal/order"
)

type Repository interface {
	// Save resolves the order by order number and inserts the payment row
	// linked to it.
	Save(ctx context.Context, p *Payment) error

	GetByOrderNo(ctx context.Context, orderNo string) (*Payment, error)

	// ChangeStatusCode rewrites the linked order's status code and every
	// detail's status code in one transaction.
	ChangeStatusCode(ctx context.Context, orderNo string, statusCode order.StatusCode) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const paymentColumns = `
	id, order_id, order_no, payment_method, tid,
	card_issuer, purchase_corp, card_no,
	amount_total, amount_discount, approved_at,
	created_at, updated_at
`

func (r *repository) Save(ctx context.Context, p *Payment) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Payment"),
		zap.String("method", "Save"),
		zap.String("order_no", p.OrderNo),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx,
		`SELECT id FROM orders WHERE order_no = $1`,
		p.OrderNo,
	).Scan(&p.OrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		log.Error("failed to resolve order", zap.Error(err))
		return err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO payments (
			order_id, order_no, payment_method, tid,
			card_issuer, purchase_corp, card_no,
			amount_total, amount_discount, approved_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		p.OrderID, p.OrderNo, p.PaymentMethod, p.TID,
		p.CardInfo.Issuer, p.CardInfo.PurchaseCorp, p.CardInfo.CardNo,
		p.Amount.Total, p.Amount.Discount, p.ApprovedAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("failed to insert payment", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return err
	}

	committed = true
	return nil
}

func (r *repository) GetByOrderNo(ctx context.Context, orderNo string) (*Payment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_no = $1`,
		orderNo,
	)

	var p Payment
	err := row.Scan(
		&p.ID, &p.OrderID, &p.OrderNo, &p.PaymentMethod, &p.TID,
		&p.CardInfo.Issuer, &p.CardInfo.PurchaseCorp, &p.CardInfo.CardNo,
		&p.Amount.Total, &p.Amount.Discount, &p.ApprovedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		logger.FromCtx(ctx).Error("failed to query payment",
			zap.String("repo", "Payment"),
			zap.String("method", "GetByOrderNo"),
			zap.String("order_no", orderNo),
			zap.Error(err),
		)
		return nil, err
	}

	return &p, nil
}

func (r *repository) ChangeStatusCode(
	ctx context.Context,
	orderNo string,
	statusCode order.StatusCode,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Payment"),
		zap.String("method", "ChangeStatusCode"),
		zap.String("order_no", orderNo),
		zap.String("status_code", string(statusCode)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE orders SET status_code = $1, updated_at = NOW() WHERE order_no = $2`,
		string(statusCode), orderNo,
	)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE order_details SET status_code = $1, updated_at = NOW() WHERE order_no = $2`,
		string(statusCode), orderNo,
	)
	if err != nil {
		log.Error("failed to update detail statuses", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return err
	}

	committed = true
	return nil
}
