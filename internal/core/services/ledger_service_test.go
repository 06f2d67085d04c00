package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/parish_ledger_app/internal/apperrors"
	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/parish_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/parish_ledger_app/internal/core/services"
	"github.com/SscSPs/parish_ledger_app/internal/dto"
)

const testContributionCode = "CONTRIBUTION"

type LedgerServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo     *MockPaymentRepository
	mockServiceTypeRepo *MockServiceTypeRepository
	mockMemberRepo      *MockMemberRepository
	mockNotifier        *MockNotifier
	service             portssvc.LedgerSvcFacade

	actorID          string
	contributionType *domain.ServiceType
	donationType     *domain.ServiceType
	member           *domain.Member
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockServiceTypeRepo = new(MockServiceTypeRepository)
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewLedgerService(
		suite.mockPaymentRepo,
		suite.mockServiceTypeRepo,
		suite.mockMemberRepo,
		suite.mockNotifier,
		testContributionCode,
		domain.StatusPolicy{GracePeriodDays: 5, FirstDueWindowDays: 30},
	)

	suite.actorID = uuid.NewString()
	suite.contributionType = &domain.ServiceType{Code: testContributionCode, Name: "Monthly contribution", IsActive: true}
	suite.donationType = &domain.ServiceType{Code: "DONATION", Name: "Free-will donation", IsActive: true}

	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.member = &domain.Member{
		MemberID:     uuid.NewString(),
		Name:         "Maria Fernandes",
		CurrencyCode: "EUR",
		MonthlyRate:  decimal.NewFromInt(75),
		JoinedAt:     &joined,
		StatusAuto:   domain.StatusPending,
	}
}

func (suite *LedgerServiceTestSuite) TestRecordPaymentRejectsNonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		Amount:          decimal.NewFromInt(-10),
		CurrencyCode:    "EUR",
		ServiceTypeCode: "DONATION",
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAmountNotPositive)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordPaymentRejectsUnknownServiceType() {
	ctx := context.Background()

	suite.mockServiceTypeRepo.On("FindServiceTypeByCode", ctx, "MYSTERY").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		Amount:          decimal.NewFromInt(20),
		CurrencyCode:    "EUR",
		ServiceTypeCode: "MYSTERY",
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidServiceType)
}

func (suite *LedgerServiceTestSuite) TestRecordPaymentRejectsInactiveServiceType() {
	ctx := context.Background()
	retired := &domain.ServiceType{Code: "CANDLES", Name: "Candles", IsActive: false}

	suite.mockServiceTypeRepo.On("FindServiceTypeByCode", ctx, "CANDLES").Return(retired, nil).Once()

	_, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		Amount:          decimal.NewFromInt(5),
		CurrencyCode:    "EUR",
		ServiceTypeCode: "CANDLES",
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidServiceType)
}

func (suite *LedgerServiceTestSuite) TestRecordPaymentRejectsUnknownMember() {
	ctx := context.Background()
	memberID := uuid.NewString()

	suite.mockServiceTypeRepo.On("FindServiceTypeByCode", ctx, "DONATION").Return(suite.donationType, nil).Once()
	suite.mockMemberRepo.On("FindMemberByID", ctx, memberID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		Amount:          decimal.NewFromInt(20),
		CurrencyCode:    "EUR",
		ServiceTypeCode: "DONATION",
		MemberID:        &memberID,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSubjectNotFound)
}

func (suite *LedgerServiceTestSuite) TestRecordPaymentWithoutDueDateCompletesImmediately() {
	ctx := context.Background()

	suite.mockServiceTypeRepo.On("FindServiceTypeByCode", ctx, "DONATION").Return(suite.donationType, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(e domain.PaymentEntry) bool {
		return e.Status == domain.PaymentCompleted && e.PaymentID != "" && e.CreatedBy == suite.actorID
	})).Return(nil).Once()

	entry, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		Amount:          decimal.NewFromInt(20),
		CurrencyCode:    "EUR",
		ServiceTypeCode: "DONATION",
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentCompleted, entry.Status)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordPaymentWithFutureDueDateStaysPending() {
	ctx := context.Background()
	dueDate := time.Now().UTC().AddDate(0, 1, 0)

	suite.mockServiceTypeRepo.On("FindServiceTypeByCode", ctx, "DONATION").Return(suite.donationType, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(e domain.PaymentEntry) bool {
		return e.Status == domain.PaymentPending
	})).Return(nil).Once()

	entry, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		Amount:          decimal.NewFromInt(50),
		CurrencyCode:    "EUR",
		ServiceTypeCode: "DONATION",
		DueDate:         &dueDate,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPending, entry.Status)
}

func (suite *LedgerServiceTestSuite) TestRecordPaymentPropagatesDayLock() {
	ctx := context.Background()

	suite.mockServiceTypeRepo.On("FindServiceTypeByCode", ctx, "DONATION").Return(suite.donationType, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.PaymentEntry")).Return(apperrors.ErrDayLocked).Once()

	_, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		Amount:          decimal.NewFromInt(20),
		CurrencyCode:    "EUR",
		ServiceTypeCode: "DONATION",
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDayLocked)
}

func (suite *LedgerServiceTestSuite) TestRecordContributionAdvancesMemberInSameTransaction() {
	ctx := context.Background()
	postedAt := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	suite.mockServiceTypeRepo.On("FindServiceTypeByCode", ctx, testContributionCode).Return(suite.contributionType, nil).Once()
	suite.mockMemberRepo.On("FindMemberByID", ctx, suite.member.MemberID).Return(suite.member, nil).Once()

	suite.mockPaymentRepo.On("SaveContributionPayment", ctx,
		mock.MatchedBy(func(e domain.PaymentEntry) bool {
			return e.ServiceTypeCode == testContributionCode && e.PostedAt.Equal(postedAt)
		}),
		suite.member.MemberID,
		mock.AnythingOfType("func(*domain.Member) error"),
	).Run(func(args mock.Arguments) {
		// The repository runs the callback against the locked member row
		apply := args.Get(3).(func(*domain.Member) error)
		suite.Require().NoError(apply(suite.member))
	}).Return(suite.member, nil).Once()

	entry, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		Amount:          decimal.NewFromInt(75),
		CurrencyCode:    "EUR",
		ServiceTypeCode: testContributionCode,
		MemberID:        &suite.member.MemberID,
		PostedAt:        &postedAt,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(testContributionCode, entry.ServiceTypeCode)
	suite.Require().NotNil(suite.member.ContributionNextDueAt)
	suite.True(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC).Equal(*suite.member.ContributionNextDueAt))
	suite.Equal(domain.StatusActive, suite.member.StatusAuto)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCorrectPaymentBuildsNegatedEntry() {
	ctx := context.Background()
	original := &domain.PaymentEntry{
		PaymentID:       uuid.NewString(),
		Amount:          decimal.NewFromInt(75),
		CurrencyCode:    "EUR",
		ServiceTypeCode: testContributionCode,
		PostedAt:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:          domain.PaymentCompleted,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, original.PaymentID).Return(original, nil).Once()
	suite.mockPaymentRepo.On("FindCorrectionByOriginalID", ctx, original.PaymentID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(e domain.PaymentEntry) bool {
		return e.IsCorrection() &&
			*e.CorrectionOfID == original.PaymentID &&
			e.Amount.Equal(original.Amount.Neg()) &&
			e.CorrectionReason == "posted twice"
	})).Return(nil).Once()

	correction, err := suite.service.CorrectPayment(ctx, original.PaymentID, "posted twice", suite.actorID)

	suite.Require().NoError(err)
	suite.True(correction.IsCorrection())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCorrectPaymentRejectsSecondCorrection() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.PaymentEntry{
		PaymentID:       originalID,
		Amount:          decimal.NewFromInt(75),
		CurrencyCode:    "EUR",
		ServiceTypeCode: testContributionCode,
		Status:          domain.PaymentCompleted,
	}
	existingCorrection := &domain.PaymentEntry{
		PaymentID:      uuid.NewString(),
		CorrectionOfID: &originalID,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, originalID).Return(original, nil).Once()
	suite.mockPaymentRepo.On("FindCorrectionByOriginalID", ctx, originalID).Return(existingCorrection, nil).Once()

	_, err := suite.service.CorrectPayment(ctx, originalID, "second thoughts", suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyCorrected)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCorrectPaymentRejectsCorrectionOfCorrection() {
	ctx := context.Background()
	originalID := uuid.NewString()
	correction := &domain.PaymentEntry{
		PaymentID:        uuid.NewString(),
		Amount:           decimal.NewFromInt(-75),
		CorrectionOfID:   &originalID,
		CorrectionReason: "posted twice",
		Status:           domain.PaymentCompleted,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, correction.PaymentID).Return(correction, nil).Once()

	_, err := suite.service.CorrectPayment(ctx, correction.PaymentID, "undo the undo", suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCannotCorrectCorrection)
}

func (suite *LedgerServiceTestSuite) TestSetPaymentStatusRejectsInvalidTransition() {
	ctx := context.Background()
	entry := &domain.PaymentEntry{
		PaymentID:       uuid.NewString(),
		Amount:          decimal.NewFromInt(20),
		CurrencyCode:    "EUR",
		ServiceTypeCode: "DONATION",
		Status:          domain.PaymentCompleted,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, entry.PaymentID).Return(entry, nil).Once()

	_, err := suite.service.SetPaymentStatus(ctx, entry.PaymentID, domain.PaymentPending, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidStatusTransition)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestSetPaymentStatusRejectsCorrections() {
	ctx := context.Background()
	originalID := uuid.NewString()
	correction := &domain.PaymentEntry{
		PaymentID:        uuid.NewString(),
		Amount:           decimal.NewFromInt(-20),
		CorrectionOfID:   &originalID,
		CorrectionReason: "wrong member",
		Status:           domain.PaymentCompleted,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, correction.PaymentID).Return(correction, nil).Once()

	_, err := suite.service.SetPaymentStatus(ctx, correction.PaymentID, domain.PaymentOverdue, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestSetPaymentStatusHappyPath() {
	ctx := context.Background()
	entry := &domain.PaymentEntry{
		PaymentID:       uuid.NewString(),
		Amount:          decimal.NewFromInt(20),
		CurrencyCode:    "EUR",
		ServiceTypeCode: "DONATION",
		Status:          domain.PaymentPending,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, entry.PaymentID).Return(entry, nil).Once()
	suite.mockPaymentRepo.On("UpdatePaymentStatus", ctx, entry.PaymentID, domain.PaymentCompleted, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.SetPaymentStatus(ctx, entry.PaymentID, domain.PaymentCompleted, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentCompleted, updated.Status)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSweepOverdueNotifiesPerEntry() {
	ctx := context.Background()
	today := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	promoted := []domain.PaymentEntry{
		{PaymentID: uuid.NewString(), Status: domain.PaymentOverdue},
		{PaymentID: uuid.NewString(), Status: domain.PaymentOverdue},
	}

	suite.mockPaymentRepo.On("MarkPaymentsOverdue", ctx, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), mock.AnythingOfType("time.Time")).Return(promoted, nil).Once()
	suite.mockNotifier.On("PaymentOverdue", ctx, mock.AnythingOfType("domain.PaymentEntry")).Twice()

	count, err := suite.service.SweepOverdue(ctx, today)

	suite.Require().NoError(err)
	suite.Equal(2, count)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSweepOverdueIsIdempotent() {
	ctx := context.Background()
	today := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	suite.mockPaymentRepo.On("MarkPaymentsOverdue", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return([]domain.PaymentEntry{}, nil).Once()

	count, err := suite.service.SweepOverdue(ctx, today)

	suite.Require().NoError(err)
	suite.Equal(0, count)
	suite.mockNotifier.AssertNotCalled(suite.T(), "PaymentOverdue", mock.Anything, mock.Anything)
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
