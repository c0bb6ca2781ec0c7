package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpNotifier struct {
	cfg    SMTPConfig
	logger *zap.Logger
}

func NewSMTP(cfg SMTPConfig, logger ...*zap.Logger) Notifier {
	l := zap.L().Named("notifier.smtp")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notifier.smtp")
	}
	return &smtpNotifier{cfg: cfg, logger: l}
}

func (n *smtpNotifier) SendApproval(ctx context.Context, notice ApprovalNotice) error {
	subject := "Your leave request has been approved"
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your leave request has been approved.\n"+
			"Leave type: %s\n"+
			"From %s to %s (%d days)\n"+
			"Reason: %s\n"+
			"Manager comment: %s\n\n"+
			"Please make the necessary arrangements.\n\n"+
			"Best regards,\nThe HR team",
		notice.EmployeeName,
		notice.LeaveType,
		notice.StartDate,
		notice.EndDate,
		notice.TotalDays,
		notice.Reason,
		notice.ManagerComment,
	)

	if err := n.send(ctx, notice.RecipientAddress, subject, body); err != nil {
		n.logger.Error("send approval mail failed",
			zap.String("recipient", notice.RecipientAddress),
			zap.Error(err),
		)
		return err
	}

	n.logger.Info("approval mail sent", zap.String("recipient", notice.RecipientAddress))
	return nil
}

func (n *smtpNotifier) SendCredentials(ctx context.Context, notice CredentialsNotice) error {
	subject := "Your account has been created"
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your account has been created successfully.\n"+
			"Your password is: %s\n\n"+
			"Please change it after your first login.",
		notice.EmployeeName,
		notice.Password,
	)

	if err := n.send(ctx, notice.RecipientAddress, subject, body); err != nil {
		n.logger.Error("send credentials mail failed",
			zap.String("recipient", notice.RecipientAddress),
			zap.Error(err),
		)
		return err
	}

	n.logger.Info("credentials mail sent", zap.String("recipient", notice.RecipientAddress))
	return nil
}

func (n *smtpNotifier) send(ctx context.Context, to, subject, body string) error {
	message := buildMessage(n.cfg.From, to, subject, body)

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	fromAddr := parseAddress(n.cfg.From)
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)

	client, err := smtpClient(ctx, addr, n.cfg.Host, n.cfg.Port)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(fromAddr); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write([]byte(message)); err != nil {
		_ = writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func smtpClient(ctx context.Context, addr, host string, port int) (*smtp.Client, error) {
	dialer := &net.Dialer{}

	// port 465 is implicit TLS; anything else upgrades via STARTTLS when offered
	if port == 465 {
		conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: host})
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn, host)
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return nil, err
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			_ = client.Close()
			return nil, err
		}
	}
	return client, nil
}

func buildMessage(from, to, subject, body string) string {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}

// parseAddress strips an optional display name ("HR <hr@acme.io>" -> "hr@acme.io").
func parseAddress(from string) string {
	if start := strings.Index(from, "<"); start >= 0 {
		if end := strings.Index(from[start:], ">"); end > 0 {
			return from[start+1 : start+end]
		}
	}
	return from
}
