package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveRequest carries the employee name and mail captured at submission
// time; they are never re-joined against the users table afterwards.
type LeaveRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee"`
	EmployeeName  string    `gorm:"type:varchar(120);not null"`
	EmployeeEmail string    `gorm:"type:varchar(255);not null"`

	LeaveType string    `gorm:"type:varchar(30);not null;default:'ANNUAL'"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text;not null"`

	Status      string    `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	AppliedDate time.Time `gorm:"type:date;not null"`

	ManagerID      *uuid.UUID `gorm:"type:uuid"`
	ManagerComment *string    `gorm:"type:text"`
	DecidedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_requests_deleted_at"`
}
