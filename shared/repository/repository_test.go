package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"daybooker/infras/otel/mocks"
	"daybooker/infras/postgres"
	"daybooker/shared/dto"
	"daybooker/shared/model"
	"daybooker/shared/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}

const selectColumns = `widgets\.id, widgets\.name, widgets\.created_at, widgets\.modified_at, widgets\.created_by, widgets\.modified_by`

func newRepository(t *testing.T) (repository.Repository[widget], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.NewRepository[widget]("widget", "widgets", "id", conn, mocks.NewOtel()), mock
}

func byID(id string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{dto.Filter{Field: "id", Value: id, Operator: dto.FilterOperatorEq, Table: "widgets"}},
	}
}

func widgetRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "created_at", "modified_at", "created_by", "modified_by"})
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := newRepository(t)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO widgets \(id, name, created_at, modified_at, created_by, modified_by\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)`).
		WithArgs("w1", "Blue", now, now, "u1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), widget{ID: "w1", Name: "Blue", Metadata: model.NewMetadata("u1", now)})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get(t *testing.T) {
	t.Run("returns the row", func(t *testing.T) {
		repo, mock := newRepository(t)

		now := time.Now().UTC()

		mock.ExpectPrepare(`SELECT ` + selectColumns + ` FROM widgets\s+WHERE \(widgets\.id = \$1\)`).
			ExpectQuery().
			WithArgs("w1").
			WillReturnRows(widgetRows().AddRow("w1", "Blue", now, now, "u1", "u1"))

		got, err := repo.Get(context.Background(), byID("w1"))

		require.NoError(t, err)
		assert.Equal(t, "Blue", got.Name)
		assert.Equal(t, "u1", got.CreatedBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows yields the zero value", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectPrepare(`SELECT .* FROM widgets`).
			ExpectQuery().
			WithArgs("missing").
			WillReturnRows(widgetRows())

		got, err := repo.Get(context.Background(), byID("missing"))

		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("selects only the requested columns", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectPrepare(`SELECT widgets\.id FROM widgets\s+WHERE`).
			ExpectQuery().
			WithArgs("w1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("w1"))

		got, err := repo.Get(context.Background(), byID("w1"), "id")

		require.NoError(t, err)
		assert.Equal(t, "w1", got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetAll(t *testing.T) {
	repo, mock := newRepository(t)

	now := time.Now().UTC()

	mock.ExpectPrepare(`SELECT ` + selectColumns + ` FROM widgets\s+ORDER BY widgets\.name ASC LIMIT \$1 OFFSET \$2`).
		ExpectQuery().
		WithArgs(10, 10).
		WillReturnRows(widgetRows().
			AddRow("w1", "Blue", now, now, "u1", "u1").
			AddRow("w2", "Green", now, now, "u1", "u1"))

	got, err := repo.GetAll(context.Background(), dto.QueryParams{Page: 2, Limit: 10, SortBy: "widgets.name", SortDir: "ASC"}, dto.FilterGroup{})

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Count(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`SELECT COUNT\(widgets\.id\) FROM widgets\s+WHERE \(LOWER\(widgets\.name\) LIKE LOWER\(\$1\)\s*\)`).
		ExpectQuery().
		WithArgs("%blu%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	filter := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}
	filter.Add(dto.Filter{Field: "name", Value: "blu", Operator: dto.FilterOperatorLike, Table: "widgets"})

	count, err := repo.Count(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	t.Run("sets columns in a stable order", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectExec(`UPDATE widgets SET modified_by = \$1, name = \$2\s+WHERE \(widgets\.id = \$3\)`).
			WithArgs("u2", "Red", "w1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), map[string]any{"name": "Red", "modified_by": "u2"}, byID("w1"))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refuses to run without a filter", func(t *testing.T) {
		repo, mock := newRepository(t)

		err := repo.Update(context.Background(), map[string]any{"name": "Red"}, dto.FilterGroup{})

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Delete(t *testing.T) {
	t.Run("deletes the filtered rows", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectExec(`DELETE FROM widgets\s+WHERE \(widgets\.id = \$1\)`).
			WithArgs("w1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), byID("w1")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refuses to run without a filter", func(t *testing.T) {
		repo, _ := newRepository(t)

		assert.Error(t, repo.Delete(context.Background(), dto.FilterGroup{}))
	})

	t.Run("wraps driver errors", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectExec(`DELETE FROM widgets`).WillReturnError(errors.New("connection reset"))

		err := repo.Delete(context.Background(), byID("w1"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete data (widget)")
	})
}

func TestRepository_Exist(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`SELECT EXISTS\(SELECT 1 FROM widgets\s+WHERE \(widgets\.id = \$1\)\s*\)`).
		ExpectQuery().
		WithArgs("w1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exist, err := repo.Exist(context.Background(), byID("w1"))

	require.NoError(t, err)
	assert.True(t, exist)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, repository.IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, repository.IsUniqueViolation(errors.Join(errors.New("insert"), &pq.Error{Code: "23505"})))
	assert.False(t, repository.IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, repository.IsUniqueViolation(errors.New("boom")))
	assert.True(t, repository.IsForeignKeyViolation(&pq.Error{Code: "23503"}))
}
