package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	newReview := func() *Review {
		rv := &Review{
			MemberID:  1,
			ProductID: 100,
			Rating:    5,
			Content:   "crunchy",
			Summary:   "good apples",
		}
		rv.AddImage(&ReviewImage{SeqNo: 1, ImageURL: "http://img/1"})
		rv.AddSurvey(&ReviewSurvey{SurveyCategoryID: 3, SurveyCategory: "sweetness", Content: "very sweet"})
		return rv
	}

	t.Run("Success", func(t *testing.T) {
		rv := newReview()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO reviews`).
			WithArgs(rv.MemberID, rv.ProductID, rv.Rating, rv.Content, rv.Summary).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(9), now, now))
		mock.ExpectQuery(`INSERT INTO review_images`).
			WithArgs(int64(9), int64(1), "http://img/1", "").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(41)))
		mock.ExpectQuery(`INSERT INTO review_surveys`).
			WithArgs(int64(9), int64(3), "sweetness", "very sweet").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(31)))
		mock.ExpectCommit()

		err := repo.Create(ctx, rv)
		assert.NoError(t, err)
		assert.Equal(t, int64(9), rv.ID)
		assert.Equal(t, int64(9), rv.Images[0].ReviewID)
		assert.Equal(t, int64(31), rv.Surveys[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollbackOnImageError", func(t *testing.T) {
		rv := newReview()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO reviews`).
			WithArgs(rv.MemberID, rv.ProductID, rv.Rating, rv.Content, rv.Summary).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(9), now, now))
		mock.ExpectQuery(`INSERT INTO review_images`).
			WillReturnError(errors.New("image_url too long"))
		mock.ExpectRollback()

		err := repo.Create(ctx, rv)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("RemovesOwnedRows", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM review_likes`).
			WithArgs(int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM review_surveys`).
			WithArgs(int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM review_images`).
			WithArgs(int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM reviews`).
			WithArgs(int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(ctx, 9)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM review_likes`).
			WithArgs(int64(999)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM review_surveys`).
			WithArgs(int64(999)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM review_images`).
			WithArgs(int64(999)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM reviews`).
			WithArgs(int64(999)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(ctx, 999)
		assert.ErrorIs(t, err, ErrReviewNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindSurveyQuestions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("GroupsOptionsByCategory", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "content"}).
			AddRow(int64(3), "How sweet was it?", "Very sweet").
			AddRow(int64(3), "How sweet was it?", "Mild").
			AddRow(int64(4), "Anything else?", nil).
			AddRow(int64(5), "How fresh was it?", "Fresh")
		mock.ExpectQuery(`FROM review_survey_categories`).
			WithArgs(int64(100)).
			WillReturnRows(rows)

		questions, err := repo.FindSurveyQuestions(ctx, 100)
		require.NoError(t, err)
		require.Len(t, questions, 3)

		assert.Equal(t, "How sweet was it?", questions[0].Question)
		assert.Equal(t, []string{"Very sweet", "Mild"}, questions[0].Options)

		// A category without choice rows is a free-text prompt.
		assert.Equal(t, "Anything else?", questions[1].Question)
		assert.Nil(t, questions[1].Options)

		assert.Equal(t, []string{"Fresh"}, questions[2].Options)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoCategories", func(t *testing.T) {
		mock.ExpectQuery(`FROM review_survey_categories`).
			WithArgs(int64(101)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "content"}))

		questions, err := repo.FindSurveyQuestions(ctx, 101)
		assert.NoError(t, err)
		assert.Empty(t, questions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_LikeExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Present", func(t *testing.T) {
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(int64(9), int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.LikeExists(ctx, 9, 1)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Absent", func(t *testing.T) {
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(int64(9), int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := repo.LikeExists(ctx, 9, 2)
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}
