package leaveerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave type",
		http.StatusBadRequest,
	)
	ErrInvalidDecisionStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrManagerRoleRequired = apperror.New(
		apperror.CodeForbidden,
		"only managers can decide on leave requests",
		http.StatusForbidden,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"you can only act on your own leave requests",
		http.StatusForbidden,
	)
	ErrRequestNotPending = apperror.New(
		apperror.CodeConflict,
		"leave request is no longer pending",
		http.StatusConflict,
	)
	ErrNotificationFailed = apperror.New(
		apperror.CodeNotificationFailed,
		"request approved but the notification could not be sent",
		http.StatusBadGateway,
	)
	ErrCertificateNotAvailable = apperror.New(
		apperror.CodeInvalidState,
		"certificate is only available for approved requests",
		http.StatusConflict,
	)
)
