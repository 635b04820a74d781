package product

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRows = []string{
	"id", "name", "description", "price", "stock_quantity",
	"image_url", "active", "category_id", "name", "created_at", "updated_at",
}

func sampleRow(id int64, name string, price string, stock int) *sqlmock.Rows {
	return sqlmock.NewRows(productRows).
		AddRow(id, name, "desc", price, stock, nil, true, 1, "Books", time.Now(), time.Now())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products p").
			WithArgs(int64(5)).
			WillReturnRows(sampleRow(5, "Widget", "9.99", 10))

		p, err := repo.GetByID(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, "Widget", p.Name)
		assert.True(t, p.Price.Equal(decimal.RequireFromString("9.99")))
		assert.Equal(t, "Books", p.CategoryName)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products p").
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows(productRows))

		_, err := repo.GetByID(context.Background(), 404)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("ActiveOnly", func(t *testing.T) {
		rows := sqlmock.NewRows(productRows).
			AddRow(1, "A", "desc", "1.00", 5, nil, true, 1, "Books", time.Now(), time.Now()).
			AddRow(2, "B", "desc", "2.00", 5, nil, true, 1, "Books", time.Now(), time.Now())

		mock.ExpectQuery(`SELECT (.+) FROM products p(.+)WHERE p.active = TRUE`).
			WillReturnRows(rows)

		products, err := repo.List(context.Background(), ListFilter{OnlyActive: true})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("Keyword", func(t *testing.T) {
		keyword := "mac"
		mock.ExpectQuery(`SELECT (.+) FROM products p(.+)ILIKE`).
			WithArgs("%mac%").
			WillReturnRows(sampleRow(1, "MacBook", "1999.99", 15))

		products, err := repo.List(context.Background(), ListFilter{OnlyActive: true, Keyword: &keyword})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "MacBook", products[0].Name)
	})

	t.Run("ByCategory", func(t *testing.T) {
		categoryID := int64(1)
		mock.ExpectQuery(`SELECT (.+) FROM products p(.+)category_id`).
			WithArgs(categoryID).
			WillReturnRows(sampleRow(1, "Widget", "9.99", 10))

		products, err := repo.List(context.Background(), ListFilter{OnlyActive: true, CategoryID: &categoryID})
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})
}

func TestRepository_AdjustStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE products").
			WithArgs(-3, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT (.+) FROM products p").
			WithArgs(int64(5)).
			WillReturnRows(sampleRow(5, "Widget", "9.99", 7))

		p, err := repo.AdjustStock(context.Background(), 5, -3)
		require.NoError(t, err)
		assert.Equal(t, 7, p.StockQuantity)
	})

	t.Run("GuardRejectsNegativeStock", func(t *testing.T) {
		mock.ExpectExec("UPDATE products").
			WithArgs(-100, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		// The follow-up read distinguishes missing product from a blocked delta.
		mock.ExpectQuery("SELECT (.+) FROM products p").
			WithArgs(int64(5)).
			WillReturnRows(sampleRow(5, "Widget", "9.99", 10))

		_, err := repo.AdjustStock(context.Background(), 5, -100)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE products").
			WithArgs(1, int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT (.+) FROM products p").
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows(productRows))

		_, err := repo.AdjustStock(context.Background(), 404, 1)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM products").
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), 5)
		require.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM products").
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 404)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}
