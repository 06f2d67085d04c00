package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/parish_ledger_app/internal/apperrors"
	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parish_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/parish_ledger_app/internal/models"
	"github.com/SscSPs/parish_ledger_app/internal/utils/contribution"
	"github.com/SscSPs/parish_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/parish_ledger_app/internal/utils/pagination"
)

const pgUniqueViolationCode = "23505"

type PgxPaymentRepository struct {
	BaseRepository
	dayLockRepo portsrepo.DayLockRepositoryFacade
	memberRepo  portsrepo.MemberRepositoryFacade
}

// newPgxPaymentRepository creates a new repository for payment entry data. The
// day lock and member repositories are injected so payment writes can evaluate
// the posting day's lock and the paying member's row inside the same
// transaction as the insert.
func newPgxPaymentRepository(pool *pgxpool.Pool, dayLockRepo portsrepo.DayLockRepositoryFacade, memberRepo portsrepo.MemberRepositoryFacade) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		dayLockRepo:    dayLockRepo,
		memberRepo:     memberRepo,
	}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentSelectColumns = `
	payment_id, amount, currency_code, service_type_code, member_id,
	posted_at, due_date, status, correction_of_id, correction_reason, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPaymentRow(row pgx.Row) (models.PaymentEntry, error) {
	var m models.PaymentEntry
	err := row.Scan(
		&m.PaymentID,
		&m.Amount,
		&m.CurrencyCode,
		&m.ServiceTypeCode,
		&m.MemberID,
		&m.PostedAt,
		&m.DueDate,
		&m.Status,
		&m.CorrectionOfID,
		&m.CorrectionReason,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// insertPaymentInTx inserts one payment entry inside tx. A unique violation on
// the correction_of_id index means another writer already corrected the same
// original, which surfaces as apperrors.ErrAlreadyCorrected.
func (r *PgxPaymentRepository) insertPaymentInTx(ctx context.Context, tx pgx.Tx, entry domain.PaymentEntry) error {
	m := mapping.ToModelPaymentEntry(entry)
	query := `
		INSERT INTO payment_entries (
			payment_id, amount, currency_code, service_type_code, member_id,
			posted_at, due_date, status, correction_of_id, correction_reason, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.Amount,
		m.CurrencyCode,
		m.ServiceTypeCode,
		m.MemberID,
		m.PostedAt,
		m.DueDate,
		m.Status,
		m.CorrectionOfID,
		m.CorrectionReason,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode && entry.CorrectionOfID != nil {
			return apperrors.ErrAlreadyCorrected
		}
		return fmt.Errorf("failed to insert payment %s: %w", m.PaymentID, err)
	}
	return nil
}

// checkPostingDayInTx rejects the write when the entry's posting day holds an
// active lock. Running inside the insert transaction closes the gap between
// the lock check and the insert.
func (r *PgxPaymentRepository) checkPostingDayInTx(ctx context.Context, tx pgx.Tx, entry domain.PaymentEntry) error {
	locked, err := r.dayLockRepo.IsLockedInTx(ctx, tx, contribution.DayOf(entry.PostedAt))
	if err != nil {
		return err
	}
	if locked {
		return apperrors.ErrDayLocked
	}
	return nil
}

// SavePayment persists a payment entry after re-checking the posting day's
// lock in the insert transaction.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, entry domain.PaymentEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.checkPostingDayInTx(ctx, tx, entry); err != nil {
		return err
	}
	if err := r.insertPaymentInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveContributionPayment persists a contribution entry and, in the same
// transaction, locks the paying member's row, runs apply against it and
// persists the resulting contribution state.
func (r *PgxPaymentRepository) SaveContributionPayment(ctx context.Context, entry domain.PaymentEntry, memberID string, apply func(*domain.Member) error) (*domain.Member, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.checkPostingDayInTx(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := r.insertPaymentInTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	member, err := r.memberRepo.FindMemberByIDForUpdate(ctx, tx, memberID)
	if err != nil {
		return nil, err
	}
	if err := apply(member); err != nil {
		return nil, err
	}
	if err := r.memberRepo.UpdateContributionStateInTx(ctx, tx, *member); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return member, nil
}

// UpdatePaymentStatus sets the lifecycle status of an entry.
func (r *PgxPaymentRepository) UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE payment_entries
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE payment_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, paymentID, models.PaymentStatus(status), updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of payment %s: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkPaymentsOverdue promotes every PENDING entry with a due date before
// today to OVERDUE and returns the promoted entries. Already promoted entries
// do not match the predicate, so re-running is a no-op.
func (r *PgxPaymentRepository) MarkPaymentsOverdue(ctx context.Context, today time.Time, updatedAt time.Time) ([]domain.PaymentEntry, error) {
	query := `
		UPDATE payment_entries
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE status = $4 AND due_date IS NOT NULL AND due_date < $5
		RETURNING ` + paymentSelectColumns + `;
	`
	rows, err := r.Pool.Query(ctx, query,
		models.PaymentOverdue,
		updatedAt,
		"system",
		models.PaymentPending,
		contribution.DayOf(today),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark payments overdue: %w", err)
	}
	defer rows.Close()

	promoted := []models.PaymentEntry{}
	for rows.Next() {
		m, scanErr := scanPaymentRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan promoted payment row: %w", scanErr)
		}
		promoted = append(promoted, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating promoted payment rows: %w", err)
	}

	return mapping.ToDomainPaymentEntrySlice(promoted), nil
}

// FindPaymentByID retrieves a specific payment entry by its identifier.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentEntry, error) {
	query := `SELECT ` + paymentSelectColumns + ` FROM payment_entries WHERE payment_id = $1;`
	m, err := scanPaymentRow(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	entry := mapping.ToDomainPaymentEntry(m)
	return &entry, nil
}

// FindCorrectionByOriginalID retrieves the correction entry for an original.
// The nullable-unique index on correction_of_id guarantees at most one row.
func (r *PgxPaymentRepository) FindCorrectionByOriginalID(ctx context.Context, originalID string) (*domain.PaymentEntry, error) {
	query := `SELECT ` + paymentSelectColumns + ` FROM payment_entries WHERE correction_of_id = $1;`
	m, err := scanPaymentRow(r.Pool.QueryRow(ctx, query, originalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find correction of payment %s: %w", originalID, err)
	}
	entry := mapping.ToDomainPaymentEntry(m)
	return &entry, nil
}

// FindRecentPaymentsByMember retrieves the most recent entries for a member,
// newest first, capped at limit.
func (r *PgxPaymentRepository) FindRecentPaymentsByMember(ctx context.Context, memberID string, limit int) ([]domain.PaymentEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + paymentSelectColumns + `
		FROM payment_entries
		WHERE member_id = $1
		ORDER BY posted_at DESC, created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for member %s: %w", memberID, err)
	}
	defer rows.Close()

	entries := []models.PaymentEntry{}
	for rows.Next() {
		m, scanErr := scanPaymentRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan payment row for member %s: %w", memberID, scanErr)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows for member %s: %w", memberID, err)
	}

	return mapping.ToDomainPaymentEntrySlice(entries), nil
}

// ListPayments retrieves a filtered, paginated list of payment entries using
// token-based pagination. It returns the entries, a token for the next page
// (if any), and an error.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, filter portsrepo.PaymentFilter, limit int, nextToken *string) ([]domain.PaymentEntry, *string, error) {
	// Default limit handling
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + paymentSelectColumns + ` FROM payment_entries`

	// Build the filter clause from the optional criteria
	conditions := []string{}
	args := []interface{}{}
	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}
	if filter.MemberID != nil {
		addCondition("member_id = $%d", *filter.MemberID)
	}
	if filter.ServiceTypeCode != nil {
		addCondition("service_type_code = $%d", *filter.ServiceTypeCode)
	}
	if filter.Status != nil {
		addCondition("status = $%d", models.PaymentStatus(*filter.Status))
	}
	if filter.PostedFrom != nil {
		addCondition("posted_at >= $%d", *filter.PostedFrom)
	}
	if filter.PostedTo != nil {
		addCondition("posted_at <= $%d", *filter.PostedTo)
	}

	// Cursor condition from the pagination token. Tuple comparison keeps the
	// ordering stable across pages.
	if nextToken != nil && *nextToken != "" {
		lastPostedAt, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastPostedAt, lastCreatedAt)
		conditions = append(conditions, fmt.Sprintf("(posted_at, created_at) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := baseQuery
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	// Ordering must be stable for the cursor to hold
	query += " ORDER BY posted_at DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	modelEntries := make([]models.PaymentEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanPaymentRow(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan payment row: %w", scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating payment rows: %w", err)
	}

	// Determine the next token
	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		lastEntry := modelEntries[limit-1] // The actual last item of the current page
		newToken := pagination.EncodeToken(lastEntry.PostedAt, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	return mapping.ToDomainPaymentEntrySlice(results), nextTokenVal, nil
}
