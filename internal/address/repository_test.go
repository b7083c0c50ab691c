package address

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_SetDefault(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("ClearsPreviousDefaultFirst", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`SET is_default = false`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`SET is_default = true`).
			WithArgs(int64(20), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SetDefault(ctx, 1, 20)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`SET is_default = false`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`SET is_default = true`).
			WithArgs(int64(999), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SetDefault(ctx, 1, 999)
		assert.ErrorIs(t, err, ErrAddressNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollbackOnClearError", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`SET is_default = false`).
			WithArgs(int64(1)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.SetDefault(ctx, 1, 20)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
