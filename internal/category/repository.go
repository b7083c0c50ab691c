package category

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"marketbridge/internal/logger"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Category, error)
	FindRoots(ctx context.Context) ([]*Category, error)
	FindByParentID(ctx context.Context, parentID int64) ([]*Category, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Category, error) {
	const q = `
		SELECT id, parent_id, level, name, created_at, updated_at
		FROM categories
		WHERE id = $1
		LIMIT 1
	`

	var c Category
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&c.ID, &c.ParentID, &c.Level, &c.Name, &c.CreatedAt, &c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) FindRoots(ctx context.Context) ([]*Category, error) {
	const q = `
		SELECT id, parent_id, level, name, created_at, updated_at
		FROM categories
		WHERE level = 1 AND parent_id IS NULL
		ORDER BY id
	`

	return r.query(ctx, q)
}

func (r *repository) FindByParentID(ctx context.Context, parentID int64) ([]*Category, error) {
	const q = `
		SELECT id, parent_id, level, name, created_at, updated_at
		FROM categories
		WHERE parent_id = $1
		ORDER BY id
	`

	return r.query(ctx, q, parentID)
}

func (r *repository) query(ctx context.Context, q string, args ...any) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Category"),
	)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Category

	for rows.Next() {
		var c Category
		if err := rows.Scan(
			&c.ID, &c.ParentID, &c.Level, &c.Name, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &c)
	}

	return res, rows.Err()
}
