package balance

import (
	"context"

	"gorm.io/gorm"
)

// LedgerRow projects the three counter columns off the users table.
type LedgerRow struct {
	LeaveAnnual   int
	LeaveSick     int
	LeavePersonal int
}

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	FindByEmployee(ctx context.Context, employeeID string) (*LedgerRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) (*LedgerRow, error) {
	var row LedgerRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("leave_annual", "leave_sick", "leave_personal").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
