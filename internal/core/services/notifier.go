package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/parish_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/parish_ledger_app/internal/middleware"
)

// logNotifier is the default Notifier. Actual delivery (email, chat) is an
// external collaborator; this implementation only records the event.
type logNotifier struct{}

// NewLogNotifier creates a Notifier that writes events to the request logger.
func NewLogNotifier() portssvc.Notifier {
	return &logNotifier{}
}

var _ portssvc.Notifier = (*logNotifier)(nil)

func (n *logNotifier) DayLocked(ctx context.Context, lock domain.DayLock) {
	middleware.GetLoggerFromCtx(ctx).Info("Day locked",
		slog.String("day", lock.Day.Format("2006-01-02")),
		slog.Any("locked_by", lock.LockedBy),
	)
}

func (n *logNotifier) DayUnlocked(ctx context.Context, lock domain.DayLock) {
	middleware.GetLoggerFromCtx(ctx).Info("Day unlocked",
		slog.String("day", lock.Day.Format("2006-01-02")),
		slog.String("reason", lock.UnlockReason),
	)
}

func (n *logNotifier) PaymentOverdue(ctx context.Context, entry domain.PaymentEntry) {
	logger := middleware.GetLoggerFromCtx(ctx)
	attrs := []any{slog.String("payment_id", entry.PaymentID)}
	if entry.MemberID != nil {
		attrs = append(attrs, slog.String("member_id", *entry.MemberID))
	}
	logger.Info("Payment overdue", attrs...)
}
