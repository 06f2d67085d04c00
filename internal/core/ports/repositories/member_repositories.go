package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
)

// MemberReader defines read operations for member contribution state
type MemberReader interface {
	// FindMemberByID retrieves a member by its identifier.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// FindMemberByIDForUpdate retrieves a member inside tx with a pessimistic
	// row lock, serialising concurrent contribution applications.
	FindMemberByIDForUpdate(ctx context.Context, tx pgx.Tx, memberID string) (*domain.Member, error)
}

// MemberWriter defines write operations for member contribution state
type MemberWriter interface {
	// SaveMember persists a new member row.
	SaveMember(ctx context.Context, member domain.Member) error

	// UpdateContributionStateInTx writes the contribution/status fields this
	// core owns, inside an existing transaction.
	UpdateContributionStateInTx(ctx context.Context, tx pgx.Tx, member domain.Member) error

	// UpdateContributionState locks the member row in a fresh transaction, runs
	// apply against it, persists the result and returns the updated member.
	UpdateContributionState(ctx context.Context, memberID string, apply func(*domain.Member) error) (*domain.Member, error)
}

// MemberRepositoryFacade combines all member repository interfaces
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
}
