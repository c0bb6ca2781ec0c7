package leave

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const certificateCacheTTL = 24 * time.Hour

func certificateCacheKey(id string) string {
	return "leave:certificate:" + id
}

// Certificate renders an approved request as a downloadable PDF. The bytes
// are cached in redis and concurrent builds for the same request are
// collapsed through singleflight.
func (s *service) Certificate(ctx context.Context, actorID, actorRole, id string) ([]byte, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrRequestNotFound
		}
		return nil, err
	}

	if l.EmployeeID.String() != actorID && actorRole != user.RoleManager {
		return nil, leaveerrors.ErrNotRequestOwner
	}
	if l.Status != StatusApproved {
		return nil, leaveerrors.ErrCertificateNotAvailable
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, certificateCacheKey(id)).Bytes(); err == nil {
			return cached, nil
		}
	}

	out, err, _ := s.sf.Do(id, func() (any, error) {
		pdf, err := buildCertificatePDF(l)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if err := s.rdb.Set(ctx, certificateCacheKey(id), pdf, certificateCacheTTL).Err(); err != nil {
				s.logger.Warn("certificate cache write failed",
					zap.String("request_id", id),
					zap.Error(err),
				)
			}
		}
		return pdf, nil
	})
	if err != nil {
		s.logger.Error("certificate build failed", zap.String("request_id", id), zap.Error(err))
		return nil, err
	}

	return out.([]byte), nil
}

func buildCertificatePDF(l *LeaveRequest) ([]byte, error) {
	comment := ""
	if l.ManagerComment != nil {
		comment = *l.ManagerComment
	}
	approvedOn := ""
	if l.DecidedAt != nil {
		approvedOn = l.DecidedAt.Format("2006-01-02")
	}

	lines := []string{
		"LEAVE CERTIFICATE",
		"",
		fmt.Sprintf("Employee: %s", l.EmployeeName),
		fmt.Sprintf("Leave type: %s", l.LeaveType),
		fmt.Sprintf("Period: %s to %s (%d days)",
			l.StartDate.Format("2006-01-02"),
			l.EndDate.Format("2006-01-02"),
			l.TotalDays,
		),
		fmt.Sprintf("Reason: %s", l.Reason),
		fmt.Sprintf("Manager comment: %s", comment),
		fmt.Sprintf("Approved on: %s", approvedOn),
	}

	return renderSimplePDF(lines)
}

// renderSimplePDF emits a minimal single-page PDF with one Helvetica text
// block. Enough for a certificate; no external rendering dependency.
func renderSimplePDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Leave certificate"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}

	out.WriteString(fmt.Sprintf(
		"trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets), xrefStart,
	))

	return out.Bytes(), nil
}

func pdfEscape(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"(", "\\(",
		")", "\\)",
	)
	return replacer.Replace(s)
}
