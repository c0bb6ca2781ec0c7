package balance

import (
	"context"
	"errors"
	"net/http"

	"go-leave/internal/shared/apperror"
	usererrors "go-leave/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	BalanceFor(ctx context.Context, employeeID string) (BalanceResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) BalanceFor(ctx context.Context, employeeID string) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, usererrors.ErrInvalidUserID
	}

	row, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, usererrors.ErrUserNotFound
		}
		s.logger.Error("balance lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return BalanceResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "could not load leave balance", http.StatusInternalServerError)
	}

	return BalanceResponse{
		EmployeeID: employeeID,
		Annual:     row.LeaveAnnual,
		Sick:       row.LeaveSick,
		Personal:   row.LeavePersonal,
	}, nil
}
