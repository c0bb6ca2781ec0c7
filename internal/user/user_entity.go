package user

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"type:varchar(120);not null"`
	Email    string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	Password string    `gorm:"type:varchar(100);not null"`

	Department string `gorm:"type:varchar(80)"`
	Role       string `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`

	LeaveAnnual   int `gorm:"type:int;not null;default:0"`
	LeaveSick     int `gorm:"type:int;not null;default:0"`
	LeavePersonal int `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_users_deleted_at"`
}

// VerifyCredential compares a plaintext secret against the stored bcrypt
// hash. Plaintext never leaves this method.
func (u *User) VerifyCredential(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(secret)) == nil
}
