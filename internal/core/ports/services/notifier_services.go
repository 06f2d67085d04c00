package services

import (
	"context"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
)

// Notifier receives status-relevant ledger events. Delivery (email, chat) is
// an external collaborator; implementations must not fail the triggering
// operation.
type Notifier interface {
	DayLocked(ctx context.Context, lock domain.DayLock)
	DayUnlocked(ctx context.Context, lock domain.DayLock)
	PaymentOverdue(ctx context.Context, entry domain.PaymentEntry)
}
