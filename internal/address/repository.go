package address

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"marketbridge/internal/logger"
)

type Repository interface {
	GetByMemberID(ctx context.Context, memberID int64) ([]*Address, error)
	GetByID(ctx context.Context, id int64) (*Address, error)

	Create(ctx context.Context, addr *Address) error
	Delete(ctx context.Context, id int64) error

	ClearDefault(ctx context.Context, memberID int64) error
	SetDefault(ctx context.Context, memberID, addressID int64) error
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
) ([]*Address, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "GetByMemberID"),
	)

	const q = `
		SELECT
			id, member_id,
			city, street, zipcode, detail, alias,
			is_default, created_at, updated_at
		FROM addresses
		WHERE member_id = $1
		ORDER BY is_default DESC, id
	`

	rows, err := r.db.QueryContext(ctx, q, memberID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Address

	for rows.Next() {
		var a Address
		if err := rows.Scan(
			&a.ID, &a.MemberID,
			&a.City, &a.Street, &a.Zipcode, &a.Detail, &a.Alias,
			&a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &a)
	}

	return res, rows.Err()
}

func (r *repository) GetByID(
	ctx context.Context,
	id int64,
) (*Address, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "GetByID"),
		zap.Int64("address_id", id),
	)

	const q = `
		SELECT
			id, member_id,
			city, street, zipcode, detail, alias,
			is_default, created_at, updated_at
		FROM addresses
		WHERE id = $1
		LIMIT 1
	`

	var a Address
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.MemberID,
		&a.City, &a.Street, &a.Zipcode, &a.Detail, &a.Alias,
		&a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return &a, nil
}

func (r *repository) Create(
	ctx context.Context,
	addr *Address,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Create"),
	)

	const q = `
		INSERT INTO addresses (
			member_id,
			city, street, zipcode, detail, alias,
			is_default
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx, q,
		addr.MemberID,
		addr.City, addr.Street, addr.Zipcode, addr.Detail, addr.Alias,
		addr.IsDefault,
	).Scan(&addr.ID, &addr.CreatedAt, &addr.UpdatedAt)

	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) Delete(
	ctx context.Context,
	id int64,
) error {

	const q = `DELETE FROM addresses WHERE id = $1`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAddressNotFound
	}

	return nil
}

func (r *repository) ClearDefault(
	ctx context.Context,
	memberID int64,
) error {

	const q = `
		UPDATE addresses
		SET is_default = false,
		    updated_at = NOW()
		WHERE member_id = $1
		  AND is_default = true
	`

	_, err := r.db.ExecContext(ctx, q, memberID)
	return err
}

func (r *repository) SetDefault(
	ctx context.Context,
	memberID, addressID int64,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "SetDefault"),
		zap.Int64("address_id", addressID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE addresses
		SET is_default = false, updated_at = NOW()
		WHERE member_id = $1 AND is_default = true
	`, memberID)
	if err != nil {
		log.Error("clear default failed", zap.Error(err))
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE addresses
		SET is_default = true, updated_at = NOW()
		WHERE id = $1 AND member_id = $2
	`, addressID, memberID)
	if err != nil {
		log.Error("set default failed", zap.Error(err))
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrAddressNotFound
	}

	return tx.Commit()
}
