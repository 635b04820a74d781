package category

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categoryColumns = []string{"id", "name", "description", "created_at", "updated_at"}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	params := CategoryParams{Name: "Books", Description: "Printed things"}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(categoryColumns).
			AddRow(1, "Books", "Printed things", time.Now(), time.Now())

		mock.ExpectQuery("INSERT INTO categories").
			WithArgs("Books", "Printed things").
			WillReturnRows(rows)

		c, err := repo.Create(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, int64(1), c.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UniqueViolation", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO categories").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "categories_name_key"})

		_, err := repo.Create(context.Background(), params)
		assert.ErrorIs(t, err, ErrNameTaken)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows(categoryColumns).
			AddRow(2, "Clothing", "Apparel", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM categories").
			WithArgs(int64(2)).
			WillReturnRows(rows)

		c, err := repo.GetByID(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, "Clothing", c.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM categories").
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows(categoryColumns))

		_, err := repo.GetByID(context.Background(), 404)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows(categoryColumns).
		AddRow(1, "Books", "Printed things", time.Now(), time.Now()).
		AddRow(2, "Clothing", "Apparel", time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM categories").WillReturnRows(rows)

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("DELETE FROM categories").
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(context.Background(), 1)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("HasProducts", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), 1)
		assert.ErrorIs(t, err, ErrHasProducts)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("DELETE FROM categories").
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), 404)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}
