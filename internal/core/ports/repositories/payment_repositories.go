package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
)

// PaymentFilter narrows read-side payment queries. All fields are optional.
type PaymentFilter struct {
	MemberID        *string
	ServiceTypeCode *string
	Status          *domain.PaymentStatus
	PostedFrom      *time.Time
	PostedTo        *time.Time
}

// PaymentReader defines read operations for payment entries
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment entry by its identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentEntry, error)

	// FindCorrectionByOriginalID retrieves the correction entry for an original,
	// or apperrors.ErrNotFound when none exists.
	FindCorrectionByOriginalID(ctx context.Context, originalID string) (*domain.PaymentEntry, error)

	// FindRecentPaymentsByMember retrieves the most recent entries for a member,
	// newest first, capped at limit.
	FindRecentPaymentsByMember(ctx context.Context, memberID string, limit int) ([]domain.PaymentEntry, error)

	// ListPayments retrieves a filtered, paginated list of payment entries using
	// token-based pagination. It returns the entries, a token for the next page,
	// and an error.
	ListPayments(ctx context.Context, filter PaymentFilter, limit int, nextToken *string) ([]domain.PaymentEntry, *string, error)
}

// PaymentWriter defines write operations for payment entries. Every write
// evaluates the day lock for the entry's posting day inside the same database
// transaction as the insert.
type PaymentWriter interface {
	// SavePayment persists a payment entry after re-checking the posting day's
	// lock in the insert transaction. Returns apperrors.ErrDayLocked when the
	// day is closed and apperrors.ErrAlreadyCorrected when a concurrent writer
	// already corrected the same original.
	SavePayment(ctx context.Context, entry domain.PaymentEntry) error

	// SaveContributionPayment persists a contribution entry and, in the same
	// transaction, locks the paying member's row, runs apply against it and
	// persists the resulting contribution state. The row lock serialises
	// concurrent payments for one member so the next-due anchor never loses an
	// update.
	SaveContributionPayment(ctx context.Context, entry domain.PaymentEntry, memberID string, apply func(*domain.Member) error) (*domain.Member, error)

	// UpdatePaymentStatus sets the lifecycle status of an entry.
	UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus, updatedBy string, updatedAt time.Time) error

	// MarkPaymentsOverdue promotes every PENDING entry with a due date before
	// today to OVERDUE and returns the promoted entries. Re-running after all
	// are promoted updates nothing.
	MarkPaymentsOverdue(ctx context.Context, today time.Time, updatedAt time.Time) ([]domain.PaymentEntry, error)
}

// PaymentRepositoryFacade combines all payment repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
