package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the request store. It enforces no business rules: the
// conditional Decide/Delete operations gate on the PENDING pre-image so
// racing writers cannot both win, but transition legality and authorization
// live in the service.
//
//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)

	// UpdateDecisionIfPending persists a terminal status plus manager
	// fields and reports how many rows matched the PENDING pre-image.
	UpdateDecisionIfPending(ctx context.Context, id, status, comment string, managerID uuid.UUID, decidedAt time.Time) (int64, error)

	// DeleteIfPending removes the request in a single conditional
	// statement; zero rows means it was absent or no longer pending.
	DeleteIfPending(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds every statement of the returned repository to the caller's
// transaction, so domain rows and staged outbox events commit or roll back
// together.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Order("applied_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("applied_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) UpdateDecisionIfPending(ctx context.Context, id, status, comment string, managerID uuid.UUID, decidedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Updates(map[string]any{
			"status":          status,
			"manager_comment": comment,
			"manager_id":      managerID,
			"decided_at":      decidedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteIfPending(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Delete(&LeaveRequest{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
