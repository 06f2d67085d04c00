package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
)

// DayLockReader defines read operations for day lock rows
type DayLockReader interface {
	// FindDayLock retrieves the lock row for a day, or apperrors.ErrNotFound
	// when the day has never been locked.
	FindDayLock(ctx context.Context, day time.Time) (*domain.DayLock, error)

	// IsLocked reports whether the day currently has an active lock. A missing
	// row is implicitly unlocked.
	IsLocked(ctx context.Context, day time.Time) (bool, error)

	// IsLockedInTx is IsLocked evaluated inside an existing transaction, so a
	// lock cannot land between the check and a dependent insert.
	IsLockedInTx(ctx context.Context, tx pgx.Tx, day time.Time) (bool, error)

	// ListDayLocks retrieves lock rows newest day first. The token is the
	// YYYY-MM-DD day to continue strictly before; the returned token is nil
	// when no rows remain.
	ListDayLocks(ctx context.Context, limit int, nextToken *string) ([]domain.DayLock, *string, error)
}

// DayLockWriter defines write operations for day lock rows
type DayLockWriter interface {
	// UpsertDayLock creates or replaces the lock row for its day. Rows are
	// never deleted.
	UpsertDayLock(ctx context.Context, lock domain.DayLock) error
}

// DayLockRepositoryFacade combines all day lock repository interfaces
type DayLockRepositoryFacade interface {
	DayLockReader
	DayLockWriter
}
