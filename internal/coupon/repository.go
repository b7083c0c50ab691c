package coupon

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"marketbridge/internal/logger"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Coupon, error)

	// FindAllByIDs returns the coupons for the given ids. Repeated ids yield
	// repeated rows so a caller summing discounts counts each use.
	FindAllByIDs(ctx context.Context, ids []int64) ([]*Coupon, error)

	FindByProductID(ctx context.Context, productID int64) ([]*Coupon, error)

	// IncreaseCount puts n coupons back into circulation inside the
	// caller's transaction (cancel/return flow).
	IncreaseCount(ctx context.Context, tx *sql.Tx, couponID, n int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const couponColumns = `
	id, product_id, name, price, count, minimum_price,
	start_date, end_date, created_at, updated_at
`

func (r *repository) GetByID(ctx context.Context, id int64) (*Coupon, error) {
	q := `SELECT` + couponColumns + `FROM coupons WHERE id = $1 LIMIT 1`

	var c Coupon
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&c.ID, &c.ProductID, &c.Name, &c.Price, &c.Count, &c.MinimumPrice,
		&c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) FindAllByIDs(ctx context.Context, ids []int64) ([]*Coupon, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Coupon"),
		zap.String("method", "FindAllByIDs"),
		zap.Int("id_count", len(ids)),
	)

	// unnest preserves input multiplicity, unlike ANY.
	q := `
		SELECT` + couponColumns + `
		FROM unnest($1::bigint[]) AS req(id)
		JOIN coupons USING (id)
	`

	rows, err := r.db.QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanCoupons(rows)
}

func (r *repository) FindByProductID(ctx context.Context, productID int64) ([]*Coupon, error) {
	q := `SELECT` + couponColumns + `FROM coupons WHERE product_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCoupons(rows)
}

func (r *repository) IncreaseCount(ctx context.Context, tx *sql.Tx, couponID, n int64) error {
	const q = `
		UPDATE coupons
		SET count = count + $1,
		    updated_at = NOW()
		WHERE id = $2
	`

	_, err := tx.ExecContext(ctx, q, n, couponID)
	return err
}

func scanCoupons(rows *sql.Rows) ([]*Coupon, error) {
	var res []*Coupon

	for rows.Next() {
		var c Coupon
		if err := rows.Scan(
			&c.ID, &c.ProductID, &c.Name, &c.Price, &c.Count, &c.MinimumPrice,
			&c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, &c)
	}

	return res, rows.Err()
}
