package member

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"marketbridge/internal/address"
	"marketbridge/internal/logger"
)

type Repository interface {
	Create(ctx context.Context, input SignupInput, hashedPassword string) (*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	GetByID(ctx context.Context, id int64) (*Member, error)

	// GetWithPointAndAddresses loads the member together with the point
	// balance and every registered address, default address first.
	GetWithPointAndAddresses(ctx context.Context, id int64) (*Member, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	input SignupInput,
	hashedPassword string,
) (*Member, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Member"),
		zap.String("method", "Create"),
		zap.String("email", input.Email),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	m := &Member{
		Email: input.Email,
		Name:  input.Name,
		Phone: input.Phone,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO members (email, password, name, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, input.Email, hashedPassword, input.Name, input.Phone).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		log.Error("insert member failed", zap.Error(err))
		return nil, err
	}

	// Every member starts with a zero point balance.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO points (member_id, balance)
		VALUES ($1, 0)
	`, m.ID)
	if err != nil {
		log.Error("insert point failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return m, nil
}

func (r *repository) FindByEmail(
	ctx context.Context,
	email string,
) (*Member, error) {

	const q = `
		SELECT id, email, password, name, phone, created_at, updated_at
		FROM members
		WHERE email = $1
		LIMIT 1
	`

	var m Member
	err := r.db.QueryRowContext(ctx, q, email).Scan(
		&m.ID, &m.Email, &m.Password, &m.Name, &m.Phone,
		&m.CreatedAt, &m.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id int64,
) (*Member, error) {

	const q = `
		SELECT id, email, password, name, phone, created_at, updated_at
		FROM members
		WHERE id = $1
		LIMIT 1
	`

	var m Member
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Email, &m.Password, &m.Name, &m.Phone,
		&m.CreatedAt, &m.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetWithPointAndAddresses(
	ctx context.Context,
	id int64,
) (*Member, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Member"),
		zap.String("method", "GetWithPointAndAddresses"),
		zap.Int64("id", id),
	)

	m, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var p Point
	err = r.db.QueryRowContext(ctx, `
		SELECT id, member_id, balance, created_at, updated_at
		FROM points
		WHERE member_id = $1
	`, id).Scan(&p.ID, &p.MemberID, &p.Balance, &p.CreatedAt, &p.UpdatedAt)

	if err != nil && err != sql.ErrNoRows {
		log.Error("point query failed", zap.Error(err))
		return nil, err
	}
	if err == nil {
		m.Point = &p
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, member_id,
			city, street, zipcode, detail, alias,
			is_default, created_at, updated_at
		FROM addresses
		WHERE member_id = $1
		ORDER BY is_default DESC, id
	`, id)
	if err != nil {
		log.Error("address query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a address.Address
		if err := rows.Scan(
			&a.ID, &a.MemberID,
			&a.City, &a.Street, &a.Zipcode, &a.Detail, &a.Alias,
			&a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			log.Error("address scan failed", zap.Error(err))
			return nil, err
		}
		m.Addresses = append(m.Addresses, &a)
	}

	return m, rows.Err()
}
