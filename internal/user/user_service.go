package user

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"go-leave/internal/notifier"
	usererrors "go-leave/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (AuthResponse, error)
	GetMe(ctx context.Context, userID string) (UserResponse, error)

	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (UserResponse, error)
	GetEmployees(ctx context.Context) ([]UserResponse, error)
	GetEmployee(ctx context.Context, id string) (UserResponse, error)
	UpdateProfile(ctx context.Context, actorID, actorRole, id string, req UpdateProfileRequest) (UserResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	notifier notifier.Notifier
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, n notifier.Notifier, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, notifier: n, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// uniform error so the response does not reveal which part failed
		return AuthResponse{}, usererrors.ErrInvalidCredentials
	}

	if !u.VerifyCredential(password) {
		s.logger.Warn("login rejected", zap.String("email", email))
		return AuthResponse{}, usererrors.ErrInvalidCredentials
	}

	accessToken, err := generateToken(u, 12*time.Hour)
	if err != nil {
		s.logger.Error("login token generation failed", zap.Error(err))
		return AuthResponse{}, usererrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.String()))
	return AuthResponse{
		AccessToken: accessToken,
		User:        mapToResponse(*u),
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

// CreateEmployee provisions an account with a generated password. The role
// is always EMPLOYEE regardless of input, and the plaintext password exists
// only in the credentials mail. The account is committed before the mail is
// attempted, so a mail failure surfaces as NOTIFICATION_FAILED with the
// account already created.
func (s *service) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (UserResponse, error) {
	s.logger.Debug("create employee requested", zap.String("email", req.Email))

	if req.LeaveAnnual < 0 || req.LeaveSick < 0 || req.LeavePersonal < 0 {
		return UserResponse{}, usererrors.ErrNegativeBalance
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	taken, err := qtx.EmailExists(ctx, req.Email)
	if err != nil {
		return UserResponse{}, err
	}
	if taken {
		return UserResponse{}, usererrors.ErrEmailTaken
	}

	password, err := GeneratePassword()
	if err != nil {
		return UserResponse{}, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create employee hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:            uuid.New(),
		Name:          req.Name,
		Email:         req.Email,
		Password:      string(hashed),
		Department:    req.Department,
		Role:          RoleEmployee,
		LeaveAnnual:   req.LeaveAnnual,
		LeaveSick:     req.LeaveSick,
		LeavePersonal: req.LeavePersonal,
	}

	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return UserResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	if err := s.notifier.SendCredentials(ctx, notifier.CredentialsNotice{
		RecipientAddress: u.Email,
		EmployeeName:     u.Name,
		Password:         password,
	}); err != nil {
		s.logger.Error("create employee credentials mail failed",
			zap.String("user_id", u.ID.String()),
			zap.Error(err),
		)
		return mapToResponse(*u), usererrors.ErrCredentialsMailFailed
	}

	s.logger.Info("employee created", zap.String("user_id", u.ID.String()))
	return mapToResponse(*u), nil
}

func (s *service) GetEmployees(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAllByRole(ctx, RoleEmployee)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetEmployee(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) UpdateProfile(ctx context.Context, actorID, actorRole, id string, req UpdateProfileRequest) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	if actorID != id && actorRole != RoleManager {
		return UserResponse{}, usererrors.ErrForbidden
	}
	if req.LeaveAnnual < 0 || req.LeaveSick < 0 || req.LeavePersonal < 0 {
		return UserResponse{}, usererrors.ErrNegativeBalance
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update profile begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	if req.Email != u.Email {
		taken, err := qtx.EmailExists(ctx, req.Email)
		if err != nil {
			return UserResponse{}, err
		}
		if taken {
			return UserResponse{}, usererrors.ErrEmailTaken
		}
	}

	u.Name = req.Name
	u.Email = req.Email
	u.Department = req.Department
	u.LeaveAnnual = req.LeaveAnnual
	u.LeaveSick = req.LeaveSick
	u.LeavePersonal = req.LeavePersonal

	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("update profile hash password failed", zap.Error(err))
			return UserResponse{}, err
		}
		u.Password = string(hashed)
	}

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("update profile persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update profile commit failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("profile updated", zap.String("user_id", id))
	return mapToResponse(*u), nil
}

func generateToken(u *User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"role":    u.Role,
		"name":    u.Name,
		"email":   u.Email,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:            u.ID.String(),
		Name:          u.Name,
		Email:         u.Email,
		Department:    u.Department,
		Role:          u.Role,
		LeaveAnnual:   u.LeaveAnnual,
		LeaveSick:     u.LeaveSick,
		LeavePersonal: u.LeavePersonal,
		CreatedAt:     u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
