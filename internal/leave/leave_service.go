package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-leave/internal/events"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/notifier"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/user"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByEmployee(ctx context.Context, actorID, actorRole, employeeID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actorID, actorRole, id string) (LeaveResponse, error)
	Decide(ctx context.Context, actorID, actorRole, id string, req DecideLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, actorID, id string) error
	Certificate(ctx context.Context, actorID, actorRole, id string) ([]byte, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	notifier notifier.Notifier
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	n notifier.Notifier,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outboxRepo,
		notifier: n,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

// Submit persists a new request. Status is always PENDING and the applied
// date is always the server clock, whatever the caller sent; the day count
// is recomputed from the inclusive date span.
func (s *service) Submit(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeID, startDate, endDate, err := validateSubmit(actorID, req)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &LeaveRequest{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		EmployeeName:  req.EmployeeName,
		EmployeeEmail: req.EmployeeEmail,
		LeaveType:     req.LeaveType,
		StartDate:     startDate,
		EndDate:       endDate,
		TotalDays:     inclusiveDaySpan(startDate, endDate),
		Reason:        req.Reason,
		Status:        StatusPending,
		AppliedDate:   time.Now().UTC().Truncate(24 * time.Hour),
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.stageSubmittedEvent(ctx, tx, l); err != nil {
		s.logger.Error("submit leave stage event failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("request_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("total_days", l.TotalDays),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	requests, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByEmployee(ctx context.Context, actorID, actorRole, employeeID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	if actorID != employeeID && actorRole != user.RoleManager {
		return nil, leaveerrors.ErrNotRequestOwner
	}

	requests, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, actorID, actorRole, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrRequestNotFound
		}
		return LeaveResponse{}, err
	}
	if l.EmployeeID.String() != actorID && actorRole != user.RoleManager {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}
	return mapToResponse(*l), nil
}

// Decide moves a pending request to a terminal status. The update is gated
// on the PENDING pre-image, so of two racing decisions exactly one wins and
// the loser sees a conflict. The decision is committed before the approval
// mail is attempted: a mail failure surfaces as NOTIFICATION_FAILED but
// never rolls back the transition.
func (s *service) Decide(ctx context.Context, actorID, actorRole, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("decide leave requested",
		zap.String("request_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", req.Status),
	)

	if actorRole != user.RoleManager {
		return LeaveResponse{}, leaveerrors.ErrManagerRoleRequired
	}
	managerID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if req.Status != StatusApproved && req.Status != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecisionStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrRequestNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("decide leave on non-pending request",
			zap.String("request_id", id),
			zap.String("current_status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrRequestNotPending
	}

	decidedAt := time.Now().UTC()
	rows, err := qtx.UpdateDecisionIfPending(ctx, id, req.Status, req.ManagerComment, managerID, decidedAt)
	if err != nil {
		s.logger.Error("decide leave persist failed", zap.String("request_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if rows == 0 {
		// lost the race against a concurrent decision
		return LeaveResponse{}, leaveerrors.ErrRequestNotPending
	}

	l.Status = req.Status
	l.ManagerID = &managerID
	l.ManagerComment = &req.ManagerComment
	l.DecidedAt = &decidedAt

	if err := s.stageDecidedEvent(ctx, tx, l); err != nil {
		s.logger.Error("decide leave stage event failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("request_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.String("request_id", id),
		zap.String("status", req.Status),
		zap.String("manager_id", actorID),
	)

	// rejected requests get no mail, mirroring the product behavior
	if req.Status == StatusApproved {
		notice := notifier.ApprovalNotice{
			RecipientAddress: l.EmployeeEmail,
			EmployeeName:     l.EmployeeName,
			LeaveType:        l.LeaveType,
			StartDate:        l.StartDate.Format("2006-01-02"),
			EndDate:          l.EndDate.Format("2006-01-02"),
			TotalDays:        l.TotalDays,
			Reason:           l.Reason,
			ManagerComment:   req.ManagerComment,
		}
		if err := s.notifier.SendApproval(ctx, notice); err != nil {
			s.logger.Error("decide leave approval mail failed",
				zap.String("request_id", id),
				zap.Error(err),
			)
			return mapToResponse(*l), leaveerrors.ErrNotificationFailed
		}
	}

	return mapToResponse(*l), nil
}

// Cancel deletes a request, allowed only for its owner and only while it is
// still pending. The status precondition rides on the delete itself so a
// concurrent decision cannot slip between check and removal.
func (s *service) Cancel(ctx context.Context, actorID, id string) error {
	if _, err := uuid.Parse(actorID); err != nil {
		return leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrRequestNotFound
		}
		return err
	}
	if l.EmployeeID.String() != actorID {
		return leaveerrors.ErrNotRequestOwner
	}

	rows, err := qtx.DeleteIfPending(ctx, id)
	if err != nil {
		s.logger.Error("cancel leave delete failed", zap.String("request_id", id), zap.Error(err))
		return err
	}
	if rows == 0 {
		return leaveerrors.ErrRequestNotPending
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.String("request_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("cancel leave success", zap.String("request_id", id))
	return nil
}

func (s *service) stageSubmittedEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.LeaveSubmittedEvent{
		EventType:  "leave.submitted",
		RequestID:  l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		TotalDays:  l.TotalDays,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     "leave.submitted",
		Topic:         events.LeaveSubmittedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) stageDecidedEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest) error {
	if s.outbox == nil {
		return nil
	}

	managerID := ""
	if l.ManagerID != nil {
		managerID = l.ManagerID.String()
	}

	payload, err := json.Marshal(events.LeaveDecidedEvent{
		EventType:  "leave.decided",
		RequestID:  l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		Status:     l.Status,
		ManagerID:  managerID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     "leave.decided",
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

var leaveTypes = map[string]struct{}{
	"ANNUAL":    {},
	"SICK":      {},
	"PERSONAL":  {},
	"MATERNITY": {},
	"PATERNITY": {},
}

// validateSubmit repeats the binding-level checks so the store contract
// holds for callers that do not come through HTTP.
func validateSubmit(actorID string, req CreateLeaveRequest) (uuid.UUID, time.Time, time.Time, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidEmployeeID
	}
	if actorID != req.EmployeeID {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrNotRequestOwner
	}
	if _, ok := leaveTypes[req.LeaveType]; !ok {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveType
	}
	if strings.TrimSpace(req.Reason) == "" {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrReasonRequired
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, err
	}
	// An inverted range is rejected outright rather than silently counted
	// via its absolute difference.
	if startDate.After(endDate) {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return employeeID, startDate, endDate, nil
}

// inclusiveDaySpan counts calendar days with both endpoints included, so a
// same-day request is 1 day. Time of day never enters the computation.
func inclusiveDaySpan(startDate, endDate time.Time) int {
	return int(endDate.Sub(startDate).Hours()/24) + 1
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		EmployeeName:  l.EmployeeName,
		EmployeeEmail: l.EmployeeEmail,
		LeaveType:     l.LeaveType,
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		TotalDays:     l.TotalDays,
		Reason:        l.Reason,
		Status:        l.Status,
		AppliedDate:   l.AppliedDate.Format("2006-01-02"),
	}
	if l.ManagerID != nil {
		v := l.ManagerID.String()
		resp.ManagerID = &v
	}
	resp.ManagerComment = l.ManagerComment
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
