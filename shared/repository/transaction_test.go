package repository_test

import (
	"context"
	"errors"
	"testing"

	"daybooker/infras/otel/mocks"
	"daybooker/infras/postgres"
	"daybooker/shared/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransactor(t *testing.T) (repository.Transactor, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return repository.NewTransactor(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel()), mock
}

func TestTransactor_WithinTransaction(t *testing.T) {
	t.Run("commits when fn succeeds", func(t *testing.T) {
		transactor, mock := newTransactor(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE availabilities`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := transactor.WithinTransaction(context.Background(), func(tx *sqlx.Tx) error {
			_, err := tx.Exec("UPDATE availabilities SET available_rooms = available_rooms - 1")

			return err
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and returns the fn error", func(t *testing.T) {
		transactor, mock := newTransactor(t)

		errSoldOut := errors.New("sold out")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := transactor.WithinTransaction(context.Background(), func(_ *sqlx.Tx) error {
			return errSoldOut
		})

		require.ErrorIs(t, err, errSoldOut)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		transactor, mock := newTransactor(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = transactor.WithinTransaction(context.Background(), func(_ *sqlx.Tx) error {
				panic("boom")
			})
		})

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		transactor, mock := newTransactor(t)

		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		err := transactor.WithinTransaction(context.Background(), func(_ *sqlx.Tx) error {
			t.Fatal("fn must not run")

			return nil
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to begin transaction")
	})
}
