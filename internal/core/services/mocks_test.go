package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parish_ledger_app/internal/core/ports/repositories"
)

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentEntry, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentEntry), args.Error(1)
}

func (m *MockPaymentRepository) FindCorrectionByOriginalID(ctx context.Context, originalID string) (*domain.PaymentEntry, error) {
	args := m.Called(ctx, originalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentEntry), args.Error(1)
}

func (m *MockPaymentRepository) FindRecentPaymentsByMember(ctx context.Context, memberID string, limit int) ([]domain.PaymentEntry, error) {
	args := m.Called(ctx, memberID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentEntry), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, filter portsrepo.PaymentFilter, limit int, nextToken *string) ([]domain.PaymentEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.PaymentEntry), returnedNextToken, args.Error(2)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, entry domain.PaymentEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPaymentRepository) SaveContributionPayment(ctx context.Context, entry domain.PaymentEntry, memberID string, apply func(*domain.Member) error) (*domain.Member, error) {
	args := m.Called(ctx, entry, memberID, apply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockPaymentRepository) UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, paymentID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockPaymentRepository) MarkPaymentsOverdue(ctx context.Context, today time.Time, updatedAt time.Time) ([]domain.PaymentEntry, error) {
	args := m.Called(ctx, today, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentEntry), args.Error(1)
}

// --- Mock DayLockRepository ---
type MockDayLockRepository struct {
	mock.Mock
}

var _ portsrepo.DayLockRepositoryFacade = (*MockDayLockRepository)(nil)

func (m *MockDayLockRepository) FindDayLock(ctx context.Context, day time.Time) (*domain.DayLock, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DayLock), args.Error(1)
}

func (m *MockDayLockRepository) IsLocked(ctx context.Context, day time.Time) (bool, error) {
	args := m.Called(ctx, day)
	return args.Bool(0), args.Error(1)
}

func (m *MockDayLockRepository) IsLockedInTx(ctx context.Context, tx pgx.Tx, day time.Time) (bool, error) {
	args := m.Called(ctx, tx, day)
	return args.Bool(0), args.Error(1)
}

func (m *MockDayLockRepository) ListDayLocks(ctx context.Context, limit int, nextToken *string) ([]domain.DayLock, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var locks []domain.DayLock
	if args.Get(0) != nil {
		locks = args.Get(0).([]domain.DayLock)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return locks, token, args.Error(2)
}

func (m *MockDayLockRepository) UpsertDayLock(ctx context.Context, lock domain.DayLock) error {
	args := m.Called(ctx, lock)
	return args.Error(0)
}

// --- Mock MemberRepository ---
type MockMemberRepository struct {
	mock.Mock
}

var _ portsrepo.MemberRepositoryFacade = (*MockMemberRepository)(nil)

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindMemberByIDForUpdate(ctx context.Context, tx pgx.Tx, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, tx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateContributionStateInTx(ctx context.Context, tx pgx.Tx, member domain.Member) error {
	args := m.Called(ctx, tx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateContributionState(ctx context.Context, memberID string, apply func(*domain.Member) error) (*domain.Member, error) {
	args := m.Called(ctx, memberID, apply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

// --- Mock ServiceTypeRepository ---
type MockServiceTypeRepository struct {
	mock.Mock
}

var _ portsrepo.ServiceTypeRepositoryFacade = (*MockServiceTypeRepository)(nil)

func (m *MockServiceTypeRepository) FindServiceTypeByCode(ctx context.Context, code string) (*domain.ServiceType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceType), args.Error(1)
}

func (m *MockServiceTypeRepository) ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceType), args.Error(1)
}

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) DayLocked(ctx context.Context, lock domain.DayLock) {
	m.Called(ctx, lock)
}

func (m *MockNotifier) DayUnlocked(ctx context.Context, lock domain.DayLock) {
	m.Called(ctx, lock)
}

func (m *MockNotifier) PaymentOverdue(ctx context.Context, entry domain.PaymentEntry) {
	m.Called(ctx, entry)
}
