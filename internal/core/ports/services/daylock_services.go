package services

import (
	"context"
	"time"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	"github.com/SscSPs/parish_ledger_app/internal/dto"
)

// DayLockSvcFacade governs whether ledger entries may be posted for a calendar day.
type DayLockSvcFacade interface {
	// IsLocked reports whether the day is currently closed for posting.
	IsLocked(ctx context.Context, day time.Time) (bool, error)

	// Lock closes a day. Idempotent: an already locked day is returned
	// unchanged; a previously unlocked day is re-locked with its unlock fields
	// cleared. Never fails on state.
	Lock(ctx context.Context, day time.Time, actorID *string) (*domain.DayLock, error)

	// Unlock reopens a locked day. Requires a non-empty reason and fails with
	// apperrors.ErrNotLocked when the day is not currently locked.
	Unlock(ctx context.Context, day time.Time, actorID string, reason string) (*domain.DayLock, error)

	// ClosePreviousDay locks yesterday on behalf of the system scheduler. Safe
	// to call any number of times per day.
	ClosePreviousDay(ctx context.Context) (*domain.DayLock, error)

	// GetDayLock retrieves the lock row for a day.
	GetDayLock(ctx context.Context, day time.Time) (*domain.DayLock, error)

	// ListDayLocks retrieves a paginated history of lock rows, newest first.
	ListDayLocks(ctx context.Context, params dto.ListDayLocksParams) (*dto.ListDayLocksResponse, error)
}
