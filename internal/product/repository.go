package product

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"marketbridge/internal/logger"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	FindByCategoryID(ctx context.Context, categoryID int64) ([]*Product, error)

	// GetOptionNames returns the flattened option names attached to the
	// product, in option id order.
	GetOptionNames(ctx context.Context, productID int64) ([]string, error)

	// IncreaseStock restocks a product inside the caller's transaction.
	IncreaseStock(ctx context.Context, tx *sql.Tx, productID, quantity int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, category_id, product_no, name, price, stock,
	discount_rate, is_own, is_subs, thumb_img,
	created_at, updated_at
`

func scanProduct(row *sql.Row, p *Product) error {
	return row.Scan(
		&p.ID, &p.CategoryID, &p.ProductNo, &p.Name, &p.Price, &p.Stock,
		&p.DiscountRate, &p.IsOwn, &p.IsSubs, &p.ThumbImg,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "GetByID"),
		zap.Int64("product_id", id),
	)

	q := `SELECT` + productColumns + `FROM products WHERE id = $1 LIMIT 1`

	var p Product
	err := scanProduct(r.db.QueryRowContext(ctx, q, id), &p)

	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return &p, nil
}

func (r *repository) FindByCategoryID(ctx context.Context, categoryID int64) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "FindByCategoryID"),
		zap.Int64("category_id", categoryID),
	)

	q := `SELECT` + productColumns + `FROM products WHERE category_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, q, categoryID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Product

	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.CategoryID, &p.ProductNo, &p.Name, &p.Price, &p.Stock,
			&p.DiscountRate, &p.IsOwn, &p.IsSubs, &p.ThumbImg,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &p)
	}

	return res, rows.Err()
}

func (r *repository) GetOptionNames(ctx context.Context, productID int64) ([]string, error) {
	const q = `
		SELECT o.name
		FROM prod_options po
		JOIN options o ON o.id = po.option_id
		WHERE po.product_id = $1
		ORDER BY o.id
	`

	rows, err := r.db.QueryContext(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

func (r *repository) IncreaseStock(ctx context.Context, tx *sql.Tx, productID, quantity int64) error {
	const q = `
		UPDATE products
		SET stock = stock + $1,
		    updated_at = NOW()
		WHERE id = $2
	`

	res, err := tx.ExecContext(ctx, q, quantity, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}
