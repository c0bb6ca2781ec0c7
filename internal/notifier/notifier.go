package notifier

import "context"

// ApprovalNotice is the full request snapshot sent to the employee when a
// leave request is approved.
type ApprovalNotice struct {
	RecipientAddress string
	EmployeeName     string
	LeaveType        string
	StartDate        string
	EndDate          string
	TotalDays        int
	Reason           string
	ManagerComment   string
}

// CredentialsNotice carries the generated password issued to a newly
// created employee account. The plaintext exists only in this message.
type CredentialsNotice struct {
	RecipientAddress string
	EmployeeName     string
	Password         string
}

//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock
type Notifier interface {
	SendApproval(ctx context.Context, notice ApprovalNotice) error
	SendCredentials(ctx context.Context, notice CredentialsNotice) error
}

type noopNotifier struct{}

// NewNoop returns a notifier that drops every message. Used when SMTP is
// not configured (local development, tests).
func NewNoop() Notifier {
	return noopNotifier{}
}

func (noopNotifier) SendApproval(context.Context, ApprovalNotice) error {
	return nil
}

func (noopNotifier) SendCredentials(context.Context, CredentialsNotice) error {
	return nil
}
