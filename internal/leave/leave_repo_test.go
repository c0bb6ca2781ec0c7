package leave_test

import (
	"context"
	"testing"
	"time"

	"go-leave/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestLeaveRepository_WithTx(t *testing.T) {
	t.Run("decision update rides the caller's transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
		assert.NoError(t, err)
		repo := leave.NewRepository(gormDB)

		mock.ExpectBegin()
		tx, err := db.Begin()
		assert.NoError(t, err)

		// ordered expectations allow exactly one statement between Begin and
		// Rollback: the update must run on the transaction, not on the pool
		// inside a second transaction of its own
		mock.ExpectExec(`UPDATE "leave_requests" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows, err := repo.WithTx(tx).UpdateDecisionIfPending(
			context.Background(),
			uuid.New().String(),
			leave.StatusApproved,
			"ok",
			uuid.New(),
			time.Now().UTC(),
		)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		mock.ExpectRollback()
		assert.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolled back delete leaves nothing behind", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
		assert.NoError(t, err)
		repo := leave.NewRepository(gormDB)

		mock.ExpectBegin()
		tx, err := db.Begin()
		assert.NoError(t, err)

		mock.ExpectExec(`UPDATE "leave_requests" SET "deleted_at"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows, err := repo.WithTx(tx).DeleteIfPending(context.Background(), uuid.New().String())
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		mock.ExpectRollback()
		assert.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
