package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/parish_ledger_app/internal/apperrors"
	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parish_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/parish_ledger_app/internal/models"
	"github.com/SscSPs/parish_ledger_app/internal/utils/mapping"
)

type PgxMemberRepository struct {
	BaseRepository
}

// newPgxMemberRepository creates a new repository for member contribution state.
func newPgxMemberRepository(pool *pgxpool.Pool) portsrepo.MemberRepositoryFacade {
	return &PgxMemberRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxMemberRepository implements portsrepo.MemberRepositoryFacade
var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

const memberSelectColumns = `
	member_id, name, currency_code, monthly_rate, joined_at,
	contribution_last_paid_at, contribution_next_due_at,
	status_auto, status_override_active, status_override_value, status_override_reason,
	created_at, created_by, last_updated_at, last_updated_by`

func scanMemberRow(row pgx.Row) (models.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.MemberID,
		&m.Name,
		&m.CurrencyCode,
		&m.MonthlyRate,
		&m.JoinedAt,
		&m.ContributionLastPaidAt,
		&m.ContributionNextDueAt,
		&m.StatusAuto,
		&m.StatusOverrideActive,
		&m.StatusOverrideValue,
		&m.StatusOverrideReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindMemberByID retrieves a member by its identifier.
func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `SELECT ` + memberSelectColumns + ` FROM members WHERE member_id = $1;`
	m, err := scanMemberRow(r.Pool.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member %s: %w", memberID, err)
	}
	member := mapping.ToDomainMember(m)
	return &member, nil
}

// FindMemberByIDForUpdate retrieves a member inside tx with a pessimistic row
// lock so concurrent contribution applications serialise on the member row.
func (r *PgxMemberRepository) FindMemberByIDForUpdate(ctx context.Context, tx pgx.Tx, memberID string) (*domain.Member, error) {
	query := `SELECT ` + memberSelectColumns + ` FROM members WHERE member_id = $1 FOR UPDATE;`
	m, err := scanMemberRow(tx.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock member %s for update: %w", memberID, err)
	}
	member := mapping.ToDomainMember(m)
	return &member, nil
}

// SaveMember persists a new member row.
func (r *PgxMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	m := mapping.ToModelMember(member)
	query := `
		INSERT INTO members (
			member_id, name, currency_code, monthly_rate, joined_at,
			contribution_last_paid_at, contribution_next_due_at,
			status_auto, status_override_active, status_override_value, status_override_reason,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MemberID,
		m.Name,
		m.CurrencyCode,
		m.MonthlyRate,
		m.JoinedAt,
		m.ContributionLastPaidAt,
		m.ContributionNextDueAt,
		m.StatusAuto,
		m.StatusOverrideActive,
		m.StatusOverrideValue,
		m.StatusOverrideReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member %s: %w", m.MemberID, err)
	}
	return nil
}

// UpdateContributionStateInTx writes the contribution/status fields owned by
// this core, inside an existing transaction.
func (r *PgxMemberRepository) UpdateContributionStateInTx(ctx context.Context, tx pgx.Tx, member domain.Member) error {
	m := mapping.ToModelMember(member)
	query := `
		UPDATE members SET
			contribution_last_paid_at = $2,
			contribution_next_due_at = $3,
			status_auto = $4,
			status_override_active = $5,
			status_override_value = $6,
			status_override_reason = $7,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE member_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.MemberID,
		m.ContributionLastPaidAt,
		m.ContributionNextDueAt,
		m.StatusAuto,
		m.StatusOverrideActive,
		m.StatusOverrideValue,
		m.StatusOverrideReason,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update contribution state for member %s: %w", m.MemberID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateContributionState locks the member row in a fresh transaction, runs
// apply against the loaded member, persists the result and returns it.
func (r *PgxMemberRepository) UpdateContributionState(ctx context.Context, memberID string, apply func(*domain.Member) error) (*domain.Member, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	member, err := r.FindMemberByIDForUpdate(ctx, tx, memberID)
	if err != nil {
		return nil, err
	}

	if err := apply(member); err != nil {
		return nil, err
	}

	if err := r.UpdateContributionStateInTx(ctx, tx, *member); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return member, nil
}
