package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/parish_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider creates all pgsql repositories and wires their
// cross-repository dependencies. The payment repository receives the day lock
// and member repositories so its writes can evaluate both inside one
// transaction.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	dayLockRepo := newPgxDayLockRepository(pool)
	memberRepo := newPgxMemberRepository(pool)
	serviceTypeRepo := newPgxServiceTypeRepository(pool)
	paymentRepo := newPgxPaymentRepository(pool, dayLockRepo, memberRepo)

	return &portsrepo.RepositoryProvider{
		PaymentRepo:     paymentRepo,
		DayLockRepo:     dayLockRepo,
		MemberRepo:      memberRepo,
		ServiceTypeRepo: serviceTypeRepo,
	}
}
