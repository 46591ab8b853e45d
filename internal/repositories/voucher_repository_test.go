package repository_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/mdsweden/storefront-backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumeVoucher(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewVoucherRepo(db)
	ctx := t.Context()

	consumeSQL := regexp.QuoteMeta(`SET use_limit = use_limit - 1, is_active = (use_limit - 1 > 0), updated_at = NOW()`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		id := uuid.New()

		mock.ExpectExec(consumeSQL).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.Consume(ctx, id)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Last Use Already Taken", func(t *testing.T) {
		// Arrange
		id := uuid.New()

		mock.ExpectExec(consumeSQL).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.Consume(ctx, id)

		// Assert
		assert.ErrorIs(t, err, repository.ErrVoucherExhausted)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetActiveByCode(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewVoucherRepo(db)
	ctx := t.Context()

	selectSQL := regexp.QuoteMeta(`SELECT id, code, discount_value, expiry_date, use_limit, is_active, created_at, updated_at`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		id := uuid.New()
		now := time.Now()
		expiry := now.Add(24 * time.Hour)

		mock.ExpectQuery(selectSQL).
			WithArgs("SUMMER30").
			WillReturnRows(sqlmock.NewRows([]string{"id", "code", "discount_value", "expiry_date", "use_limit", "is_active", "created_at", "updated_at"}).
				AddRow(id, "SUMMER30", 30.0, expiry, 5, true, now, now))

		// Act
		voucher, err := repo.GetActiveByCode(ctx, "SUMMER30")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, id, voucher.ID)
		assert.Equal(t, 5, voucher.UseLimit)
		assert.True(t, voucher.IsActive)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Inactive Or Unknown Code", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(selectSQL).
			WithArgs("NOPE").
			WillReturnError(sql.ErrNoRows)

		// Act
		voucher, err := repo.GetActiveByCode(ctx, "NOPE")

		// Assert
		assert.Nil(t, voucher)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
