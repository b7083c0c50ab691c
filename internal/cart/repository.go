package cart

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"marketbridge/internal/logger"
	"marketbridge/internal/product"
)

type Repository interface {
	// GetByMemberID loads the member's cart lines joined with their products.
	GetByMemberID(ctx context.Context, memberID int64) ([]*Cart, error)

	Create(ctx context.Context, memberID int64, input AddCartInput) (*Cart, error)
	UpdateQuantity(ctx context.Context, memberID, productID, quantity int64) error
	Remove(ctx context.Context, memberID, productID int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByMemberID(
	ctx context.Context,
	memberID int64,
) ([]*Cart, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Cart"),
		zap.String("method", "GetByMemberID"),
	)

	const q = `
		SELECT
			c.id, c.member_id, c.product_id, c.quantity,
			c.created_at, c.updated_at,

			p.id, p.category_id, p.product_no, p.name, p.price, p.stock,
			p.discount_rate, p.is_own, p.is_subs, p.thumb_img
		FROM carts c
		JOIN products p ON p.id = c.product_id
		WHERE c.member_id = $1
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q, memberID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Cart

	for rows.Next() {
		c := &Cart{Product: &product.Product{}}
		if err := rows.Scan(
			&c.ID, &c.MemberID, &c.ProductID, &c.Quantity,
			&c.CreatedAt, &c.UpdatedAt,

			&c.Product.ID, &c.Product.CategoryID, &c.Product.ProductNo,
			&c.Product.Name, &c.Product.Price, &c.Product.Stock,
			&c.Product.DiscountRate, &c.Product.IsOwn, &c.Product.IsSubs,
			&c.Product.ThumbImg,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, c)
	}

	return res, rows.Err()
}

func (r *repository) Create(
	ctx context.Context,
	memberID int64,
	input AddCartInput,
) (*Cart, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Cart"),
		zap.String("method", "Create"),
		zap.Int64("product_id", input.ProductID),
	)

	log.Debug("start create cart item")

	const q = `
		INSERT INTO carts (member_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (member_id, product_id)
		DO UPDATE SET quantity = carts.quantity + EXCLUDED.quantity,
		              updated_at = NOW()
		RETURNING id, member_id, product_id, quantity, created_at, updated_at
	`

	var c Cart
	err := r.db.QueryRowContext(ctx, q, memberID, input.ProductID, input.Quantity).Scan(
		&c.ID, &c.MemberID, &c.ProductID, &c.Quantity,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, err
	}

	log.Info("success create cart item", zap.Int64("cart_id", c.ID))

	return &c, nil
}

func (r *repository) UpdateQuantity(
	ctx context.Context,
	memberID, productID, quantity int64,
) error {

	const q = `
		UPDATE carts
		SET quantity = $1, updated_at = NOW()
		WHERE member_id = $2 AND product_id = $3
	`

	res, err := r.db.ExecContext(ctx, q, quantity, memberID, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) Remove(
	ctx context.Context,
	memberID, productID int64,
) error {

	const q = `
		DELETE FROM carts
		WHERE member_id = $1 AND product_id = $2
	`

	res, err := r.db.ExecContext(ctx, q, memberID, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}
