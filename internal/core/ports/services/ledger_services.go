package services

import (
	"context"
	"time"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	"github.com/SscSPs/parish_ledger_app/internal/dto"
)

// LedgerReaderSvc defines read operations for the payment ledger
type LedgerReaderSvc interface {
	// GetPaymentByID retrieves a specific payment entry.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentEntry, error)

	// ListPayments retrieves a filtered, paginated list of payment entries.
	ListPayments(ctx context.Context, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)
}

// LedgerWriterSvc defines write operations for the payment ledger
type LedgerWriterSvc interface {
	// RecordPayment validates and persists a new payment entry, applying the
	// contribution to the paying member when the entry is a contribution.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, actorID string) (*domain.PaymentEntry, error)

	// CorrectPayment posts the single allowed reversing entry for an original.
	CorrectPayment(ctx context.Context, originalID string, reason string, actorID string) (*domain.PaymentEntry, error)

	// SetPaymentStatus moves an entry along its forward-only lifecycle.
	SetPaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus, actorID string) (*domain.PaymentEntry, error)

	// SweepOverdue promotes stale pending entries to overdue and returns the
	// number promoted. Safe to re-run; meant for an external scheduler.
	SweepOverdue(ctx context.Context, today time.Time) (int, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
