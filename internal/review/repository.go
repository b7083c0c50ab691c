package review

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"marketbridge/internal/logger"
)

type Repository interface {
	// Create inserts the review together with its images and survey
	// answers in one transaction.
	Create(ctx context.Context, rv *Review) error

	GetByID(ctx context.Context, id int64) (*Review, error)

	// Update rewrites the review row, replaces every image, and updates
	// survey answer contents by id, all in one transaction.
	Update(ctx context.Context, rv *Review) error

	// Delete removes the review and its owned rows.
	Delete(ctx context.Context, id int64) error

	LikeExists(ctx context.Context, reviewID, memberID int64) (bool, error)
	CreateLike(ctx context.Context, reviewID, memberID int64) error
	DeleteLike(ctx context.Context, reviewID, memberID int64) error

	// FindSurveyQuestions returns the product's survey prompts with their
	// choice options. Prompts without options come back with a nil list.
	FindSurveyQuestions(ctx context.Context, productID int64) ([]SurveyQuestionDto, error)

	FindByProductID(ctx context.Context, productID, limit, offset int64, sortBy string) ([]*ReviewListItem, error)
	FindByMemberID(ctx context.Context, memberID, limit, offset int64, sortBy string) ([]*ReviewListItem, error)
	CountByProductID(ctx context.Context, productID int64) (int64, error)
	CountByMemberID(ctx context.Context, memberID int64) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rv *Review) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Review"),
		zap.String("method", "Create"),
		zap.Int64("product_id", rv.ProductID),
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

	err = tx.QueryRowContext(ctx, `
		INSERT INTO reviews (member_id, product_id, rating, content, summary)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		rv.MemberID, rv.ProductID, rv.Rating, rv.Content, rv.Summary,
	).Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		log.Error("failed to insert review", zap.Error(err))
		return err
	}

	if err := insertImages(ctx, tx, rv); err != nil {
		log.Error("failed to insert review images", zap.Error(err))
		return err
	}

	for _, s := range rv.Surveys {
		s.ReviewID = rv.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO review_surveys (review_id, survey_category_id, survey_category, content)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			s.ReviewID, s.SurveyCategoryID, s.SurveyCategory, s.Content,
		).Scan(&s.ID)
		if err != nil {
			log.Error("failed to insert review survey", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return err
	}

	committed = true
	return nil
}

func insertImages(ctx context.Context, tx *sql.Tx, rv *Review) error {
	for _, img := range rv.Images {
		img.ReviewID = rv.ID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO review_images (review_id, seq_no, image_url, description)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			img.ReviewID, img.SeqNo, img.ImageURL, img.Description,
		).Scan(&img.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Review, error) {
	var rv Review
	err := r.db.QueryRowContext(ctx, `
		SELECT id, member_id, product_id, rating, content, summary, created_at, updated_at
		FROM reviews
		WHERE id = $1`,
		id,
	).Scan(
		&rv.ID, &rv.MemberID, &rv.ProductID, &rv.Rating,
		&rv.Content, &rv.Summary, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, review_id, seq_no, image_url, description
		FROM review_images
		WHERE review_id = $1
		ORDER BY seq_no`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var img ReviewImage
		if err := rows.Scan(&img.ID, &img.ReviewID, &img.SeqNo, &img.ImageURL, &img.Description); err != nil {
			return nil, err
		}
		rv.Images = append(rv.Images, &img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	srows, err := r.db.QueryContext(ctx, `
		SELECT id, review_id, survey_category_id, survey_category, content
		FROM review_surveys
		WHERE review_id = $1
		ORDER BY id`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer srows.Close()

	for srows.Next() {
		var s ReviewSurvey
		if err := srows.Scan(&s.ID, &s.ReviewID, &s.SurveyCategoryID, &s.SurveyCategory, &s.Content); err != nil {
			return nil, err
		}
		rv.Surveys = append(rv.Surveys, &s)
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}

	return &rv, nil
}

func (r *repository) Update(ctx context.Context, rv *Review) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Review"),
		zap.String("method", "Update"),
		zap.Int64("review_id", rv.ID),
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

	res, err := tx.ExecContext(ctx, `
		UPDATE reviews
		SET rating = $1, content = $2, summary = $3, updated_at = NOW()
		WHERE id = $4`,
		rv.Rating, rv.Content, rv.Summary, rv.ID,
	)
	if err != nil {
		log.Error("failed to update review", zap.Error(err))
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}

	// Images are replaced wholesale.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM review_images WHERE review_id = $1`, rv.ID,
	); err != nil {
		log.Error("failed to delete review images", zap.Error(err))
		return err
	}

	if err := insertImages(ctx, tx, rv); err != nil {
		log.Error("failed to insert review images", zap.Error(err))
		return err
	}

	for _, s := range rv.Surveys {
		if _, err := tx.ExecContext(ctx,
			`UPDATE review_surveys SET content = $1 WHERE id = $2`,
			s.Content, s.ID,
		); err != nil {
			log.Error("failed to update review survey", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return err
	}

	committed = true
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Review"),
		zap.String("method", "Delete"),
		zap.Int64("review_id", id),
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

	for _, stmt := range []string{
		`DELETE FROM review_likes WHERE review_id = $1`,
		`DELETE FROM review_surveys WHERE review_id = $1`,
		`DELETE FROM review_images WHERE review_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			log.Error("failed to delete review children", zap.Error(err))
			return err
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete review", zap.Error(err))
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return err
	}

	committed = true
	return nil
}

func (r *repository) LikeExists(ctx context.Context, reviewID, memberID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM review_likes WHERE review_id = $1 AND member_id = $2
		)`,
		reviewID, memberID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) CreateLike(ctx context.Context, reviewID, memberID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO review_likes (review_id, member_id) VALUES ($1, $2)`,
		reviewID, memberID,
	)
	return err
}

func (r *repository) DeleteLike(ctx context.Context, reviewID, memberID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM review_likes WHERE review_id = $1 AND member_id = $2`,
		reviewID, memberID,
	)
	return err
}

func (r *repository) FindSurveyQuestions(ctx context.Context, productID int64) ([]SurveyQuestionDto, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, s.content
		FROM review_survey_categories c
		LEFT JOIN survey_contents s ON s.survey_category_id = c.id
		WHERE c.product_id = $1
		ORDER BY c.id, s.id`,
		productID,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query survey questions",
			zap.String("repo", "Review"),
			zap.String("method", "FindSurveyQuestions"),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	var (
		questions []SurveyQuestionDto
		lastID    int64 = -1
	)
	for rows.Next() {
		var (
			categoryID int64
			name       string
			content    sql.NullString
		)
		if err := rows.Scan(&categoryID, &name, &content); err != nil {
			return nil, err
		}

		if categoryID != lastID {
			// Options stay nil for categories without choice rows; the
			// caller renders those as free-text prompts.
			questions = append(questions, SurveyQuestionDto{Question: name})
			lastID = categoryID
		}

		if content.Valid {
			q := &questions[len(questions)-1]
			q.Options = append(q.Options, content.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return questions, nil
}

const listColumns = `
	r.id, p.name, m.name, r.rating, r.content, r.created_at,
	(SELECT COUNT(*) FROM review_likes l WHERE l.review_id = r.id) AS likes
`

func (r *repository) FindByProductID(
	ctx context.Context,
	productID, limit, offset int64,
	sortBy string,
) ([]*ReviewListItem, error) {
	query := `
		SELECT ` + listColumns + `
		FROM reviews r
		JOIN products p ON p.id = r.product_id
		JOIN members m ON m.id = r.member_id
		WHERE r.product_id = $1
		ORDER BY ` + orderClause(sortBy) + `
		LIMIT $2 OFFSET $3`

	return r.list(ctx, query, productID, limit, offset)
}

func (r *repository) FindByMemberID(
	ctx context.Context,
	memberID, limit, offset int64,
	sortBy string,
) ([]*ReviewListItem, error) {
	query := `
		SELECT ` + listColumns + `
		FROM reviews r
		JOIN products p ON p.id = r.product_id
		JOIN members m ON m.id = r.member_id
		WHERE r.member_id = $1
		ORDER BY ` + orderClause(sortBy) + `
		LIMIT $2 OFFSET $3`

	return r.list(ctx, query, memberID, limit, offset)
}

// orderClause maps the caller's sort key onto a fixed clause. Only the two
// known keys exist, so no user input reaches the SQL text.
func orderClause(sortBy string) string {
	if sortBy == "likes" {
		return "likes DESC, r.id DESC"
	}
	return "r.created_at DESC, r.id DESC"
}

func (r *repository) list(ctx context.Context, query string, args ...any) ([]*ReviewListItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query reviews",
			zap.String("repo", "Review"),
			zap.String("method", "list"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	var items []*ReviewListItem
	for rows.Next() {
		item := &ReviewListItem{SellerName: "MarketBridge"}
		err := rows.Scan(
			&item.ReviewID, &item.ProductName, &item.MemberName,
			&item.Rating, &item.Content, &item.CreatedAt, &item.Likes,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, item := range items {
		item.ImageURLs, err = r.imageURLs(ctx, item.ReviewID)
		if err != nil {
			return nil, err
		}
	}

	return items, nil
}

func (r *repository) imageURLs(ctx context.Context, reviewID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT image_url FROM review_images WHERE review_id = $1 ORDER BY seq_no`,
		reviewID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

func (r *repository) CountByProductID(ctx context.Context, productID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE product_id = $1`,
		productID,
	).Scan(&count)
	return count, err
}

func (r *repository) CountByMemberID(ctx context.Context, memberID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE member_id = $1`,
		memberID,
	).Scan(&count)
	return count, err
}
