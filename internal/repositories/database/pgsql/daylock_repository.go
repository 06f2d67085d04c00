package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/parish_ledger_app/internal/apperrors"
	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parish_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/parish_ledger_app/internal/models"
	"github.com/SscSPs/parish_ledger_app/internal/utils/contribution"
	"github.com/SscSPs/parish_ledger_app/internal/utils/mapping"
)

type PgxDayLockRepository struct {
	BaseRepository
}

// newPgxDayLockRepository creates a new repository for day lock data.
func newPgxDayLockRepository(pool *pgxpool.Pool) portsrepo.DayLockRepositoryFacade {
	return &PgxDayLockRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDayLockRepository implements portsrepo.DayLockRepositoryFacade
var _ portsrepo.DayLockRepositoryFacade = (*PgxDayLockRepository)(nil)

const dayLockSelectColumns = `day, locked, locked_at, locked_by, unlocked_at, unlocked_by, unlock_reason`

func scanDayLockRow(row pgx.Row) (models.DayLock, error) {
	var m models.DayLock
	err := row.Scan(
		&m.Day,
		&m.Locked,
		&m.LockedAt,
		&m.LockedBy,
		&m.UnlockedAt,
		&m.UnlockedBy,
		&m.UnlockReason,
	)
	return m, err
}

// FindDayLock retrieves the lock row for a day. A day that has never been
// locked has no row and maps to apperrors.ErrNotFound.
func (r *PgxDayLockRepository) FindDayLock(ctx context.Context, day time.Time) (*domain.DayLock, error) {
	query := `SELECT ` + dayLockSelectColumns + ` FROM day_locks WHERE day = $1;`
	m, err := scanDayLockRow(r.Pool.QueryRow(ctx, query, contribution.DayOf(day)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find day lock: %w", err)
	}
	dl := mapping.ToDomainDayLock(m)
	return &dl, nil
}

// IsLocked reports whether the day currently has an active lock.
func (r *PgxDayLockRepository) IsLocked(ctx context.Context, day time.Time) (bool, error) {
	var locked bool
	query := `SELECT locked AND unlocked_at IS NULL FROM day_locks WHERE day = $1;`
	err := r.Pool.QueryRow(ctx, query, contribution.DayOf(day)).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check day lock: %w", err)
	}
	return locked, nil
}

// IsLockedInTx evaluates the day lock inside an existing transaction so a
// concurrent lock cannot land between the check and a dependent insert.
func (r *PgxDayLockRepository) IsLockedInTx(ctx context.Context, tx pgx.Tx, day time.Time) (bool, error) {
	var locked bool
	query := `SELECT locked AND unlocked_at IS NULL FROM day_locks WHERE day = $1;`
	err := tx.QueryRow(ctx, query, contribution.DayOf(day)).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check day lock in tx: %w", err)
	}
	return locked, nil
}

// ListDayLocks retrieves lock rows newest day first. The cursor token is the
// YYYY-MM-DD day to continue strictly before.
func (r *PgxDayLockRepository) ListDayLocks(ctx context.Context, limit int, nextToken *string) ([]domain.DayLock, *string, error) {
	query := `SELECT ` + dayLockSelectColumns + ` FROM day_locks`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		before, err := time.ParseInLocation("2006-01-02", *nextToken, time.UTC)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, before)
		query += ` WHERE day < $1`
	}

	// Fetch one extra row to know whether another page exists.
	fetchLimit := limit + 1
	args = append(args, fetchLimit)
	query += fmt.Sprintf(` ORDER BY day DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query day locks: %w", err)
	}
	defer rows.Close()

	modelLocks := make([]models.DayLock, 0, fetchLimit)
	for rows.Next() {
		m, err := scanDayLockRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan day lock row: %w", err)
		}
		modelLocks = append(modelLocks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read day lock rows: %w", err)
	}

	var newNextToken *string
	if len(modelLocks) == fetchLimit {
		modelLocks = modelLocks[:limit]
		token := modelLocks[limit-1].Day.Format("2006-01-02")
		newNextToken = &token
	}

	locks := make([]domain.DayLock, len(modelLocks))
	for i := range modelLocks {
		locks[i] = mapping.ToDomainDayLock(modelLocks[i])
	}
	return locks, newNextToken, nil
}

// UpsertDayLock creates or replaces the lock row for its day.
func (r *PgxDayLockRepository) UpsertDayLock(ctx context.Context, lock domain.DayLock) error {
	m := mapping.ToModelDayLock(lock)
	query := `
		INSERT INTO day_locks (day, locked, locked_at, locked_by, unlocked_at, unlocked_by, unlock_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (day) DO UPDATE SET
			locked = EXCLUDED.locked,
			locked_at = EXCLUDED.locked_at,
			locked_by = EXCLUDED.locked_by,
			unlocked_at = EXCLUDED.unlocked_at,
			unlocked_by = EXCLUDED.unlocked_by,
			unlock_reason = EXCLUDED.unlock_reason;
	`
	_, err := r.Pool.Exec(ctx, query,
		contribution.DayOf(m.Day),
		m.Locked,
		m.LockedAt,
		m.LockedBy,
		m.UnlockedAt,
		m.UnlockedBy,
		m.UnlockReason,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert day lock: %w", err)
	}
	return nil
}
