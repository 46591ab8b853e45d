package repository_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/mdsweden/storefront-backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecrementStock(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	ctx := t.Context()

	decrementSQL := regexp.QuoteMeta(`UPDATE products SET stock = stock - $2, updated_at = NOW()`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		id := uuid.New()

		mock.ExpectQuery(decrementSQL).
			WithArgs(id, 3).
			WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(7))

		// Act
		remaining, err := repo.DecrementStock(ctx, id, 3)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 7, remaining)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Enough Stock", func(t *testing.T) {
		// Arrange
		id := uuid.New()

		// The conditional update matches no row when stock < qty.
		mock.ExpectQuery(decrementSQL).
			WithArgs(id, 100).
			WillReturnRows(sqlmock.NewRows([]string{"stock"}))

		// Act
		remaining, err := repo.DecrementStock(ctx, id, 100)

		// Assert
		assert.Zero(t, remaining)
		assert.ErrorIs(t, err, repository.ErrInsufficientStock)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListLowStock(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	ctx := t.Context()

	lowStockSQL := regexp.QuoteMeta(`WHERE stock <= $1`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		now := time.Now()
		columns := []string{"id", "name", "description", "price", "discount_pct", "stock", "category_id", "subcategory_id", "image", "is_highlight", "created_at", "updated_at"}

		mock.ExpectQuery(lowStockSQL).
			WithArgs(4).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(uuid.New(), "Oat Milk", "1 liter", 24.50, 0.0, 0, uuid.New(), nil, "", false, now, now).
				AddRow(uuid.New(), "Rye Bread", "800 g", 32.00, 0.0, 3, uuid.New(), nil, "", false, now, now))

		// Act
		products, err := repo.ListLowStock(ctx, 4)

		// Assert
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, 0, products[0].Stock)
		assert.Equal(t, 3, products[1].Stock)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Nothing Below Threshold", func(t *testing.T) {
		// Arrange
		columns := []string{"id", "name", "description", "price", "discount_pct", "stock", "category_id", "subcategory_id", "image", "is_highlight", "created_at", "updated_at"}

		mock.ExpectQuery(lowStockSQL).
			WithArgs(4).
			WillReturnRows(sqlmock.NewRows(columns))

		// Act
		products, err := repo.ListLowStock(ctx, 4)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, products)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetProductByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	ctx := t.Context()

	selectSQL := regexp.QuoteMeta(`SELECT id, name, description, price, discount_pct, stock, category_id, subcategory_id, image, is_highlight, created_at, updated_at`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		id := uuid.New()
		categoryID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(selectSQL).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "discount_pct", "stock", "category_id", "subcategory_id", "image", "is_highlight", "created_at", "updated_at"}).
				AddRow(id, "Oat Milk", "1 liter", 24.50, 10.0, 42, categoryID, nil, "", false, now, now))

		// Act
		product, err := repo.GetProductByID(ctx, id)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Oat Milk", product.Name)
		assert.Equal(t, 42, product.Stock)
		assert.InDelta(t, 10.0, product.DiscountPct, 0.001)
		assert.Nil(t, product.SubcategoryID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
