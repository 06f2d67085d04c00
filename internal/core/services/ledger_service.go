package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/parish_ledger_app/internal/apperrors"
	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parish_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/parish_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/parish_ledger_app/internal/dto"
	"github.com/SscSPs/parish_ledger_app/internal/middleware"
	"github.com/SscSPs/parish_ledger_app/internal/utils/contribution"
)

var (
	ErrAmountNotPositive       = errors.New("payment amount must be positive")
	ErrInvalidServiceType      = errors.New("service type does not exist or is inactive")
	ErrSubjectNotFound         = errors.New("paying member not found")
	ErrCannotCorrectCorrection = errors.New("cannot correct a correction entry")
	ErrInvalidStatusTransition = errors.New("invalid payment status transition")
)

// ledgerService provides the core payment ledger operations.
type ledgerService struct {
	paymentRepo     portsrepo.PaymentRepositoryFacade
	serviceTypeRepo portsrepo.ServiceTypeRepositoryFacade
	memberRepo      portsrepo.MemberReader
	notifier        portssvc.Notifier

	contributionCode string
	policy           domain.StatusPolicy
	now              func() time.Time
}

// NewLedgerService creates a new LedgerService. contributionCode names the
// service type whose payments feed the membership due-date anchor.
func NewLedgerService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	serviceTypeRepo portsrepo.ServiceTypeRepositoryFacade,
	memberRepo portsrepo.MemberReader,
	notifier portssvc.Notifier,
	contributionCode string,
	policy domain.StatusPolicy,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		paymentRepo:      paymentRepo,
		serviceTypeRepo:  serviceTypeRepo,
		memberRepo:       memberRepo,
		notifier:         notifier,
		contributionCode: contributionCode,
		policy:           policy,
		now:              time.Now,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// initialStatus computes the lifecycle status of a fresh entry: COMPLETED
// unless the due date lies in the future, in which case the entry waits as
// PENDING until paid or swept to OVERDUE.
func (s *ledgerService) initialStatus(dueDate *time.Time, now time.Time) domain.PaymentStatus {
	if dueDate == nil || !contribution.DayOf(*dueDate).After(contribution.DayOf(now)) {
		return domain.PaymentCompleted
	}
	return domain.PaymentPending
}

// RecordPayment validates and persists a new payment entry. When the entry is
// a contribution with a resolved member, the member's due anchor is advanced
// in the same database transaction as the insert. The repository re-checks
// the posting day's lock inside that transaction, so a lock applied mid-write
// cannot slip through.
func (s *ledgerService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, actorID string) (*domain.PaymentEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrAmountNotPositive, req.Amount.String())
	}

	serviceType, err := s.serviceTypeRepo.FindServiceTypeByCode(ctx, req.ServiceTypeCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidServiceType, req.ServiceTypeCode)
		}
		logger.Error("Failed to resolve service type", slog.String("code", req.ServiceTypeCode), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to resolve service type: %w", err)
	}
	if !serviceType.IsActive {
		return nil, fmt.Errorf("%w: %s is inactive", ErrInvalidServiceType, req.ServiceTypeCode)
	}

	var member *domain.Member
	if req.MemberID != nil {
		member, err = s.memberRepo.FindMemberByID(ctx, *req.MemberID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrSubjectNotFound, *req.MemberID)
			}
			logger.Error("Failed to resolve member", slog.String("member_id", *req.MemberID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to resolve member: %w", err)
		}
	}

	now := s.now().UTC()
	postedAt := now
	if req.PostedAt != nil {
		postedAt = req.PostedAt.UTC()
	}

	entry := domain.PaymentEntry{
		PaymentID:       uuid.NewString(),
		Amount:          contribution.RoundAmount(req.Amount),
		CurrencyCode:    req.CurrencyCode,
		ServiceTypeCode: serviceType.Code,
		MemberID:        req.MemberID,
		PostedAt:        postedAt,
		DueDate:         req.DueDate,
		Status:          s.initialStatus(req.DueDate, now),
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	isContribution := serviceType.Code == s.contributionCode && member != nil
	if isContribution {
		amount := entry.Amount
		updated, err := s.paymentRepo.SaveContributionPayment(ctx, entry, member.MemberID, func(m *domain.Member) error {
			result := m.ApplyContribution(amount, postedAt, s.policy)
			logger.Debug("Contribution applied",
				slog.String("member_id", m.MemberID),
				slog.String("auto_status", string(result.Auto)),
				slog.Time("next_due_at", result.NextDueAt),
			)
			return nil
		})
		if err != nil {
			logger.Error("Failed to save contribution payment", slog.String("error", err.Error()))
			return nil, err
		}
		logger.Info("Contribution payment recorded",
			slog.String("payment_id", entry.PaymentID),
			slog.String("member_id", updated.MemberID),
			slog.String("effective_status", string(updated.EffectiveStatus())),
		)
		return &entry, nil
	}

	if err := s.paymentRepo.SavePayment(ctx, entry); err != nil {
		logger.Error("Failed to save payment", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment recorded", slog.String("payment_id", entry.PaymentID), slog.String("service_type", entry.ServiceTypeCode))
	return &entry, nil
}

// CorrectPayment posts the single allowed reversing entry for an original.
// Corrections post at "now", so today's day lock is the one that applies, not
// the original posting day's. The at-most-one-correction invariant is checked
// here and re-enforced by the repository's unique constraint, so of two
// concurrent correction attempts exactly one succeeds.
func (s *ledgerService) CorrectPayment(ctx context.Context, originalID string, reason string, actorID string) (*domain.PaymentEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.paymentRepo.FindPaymentByID(ctx, originalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find payment for correction", slog.String("payment_id", originalID), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", originalID, err)
	}

	if original.IsCorrection() {
		return nil, fmt.Errorf("%w: %s", ErrCannotCorrectCorrection, originalID)
	}

	if _, err := s.paymentRepo.FindCorrectionByOriginalID(ctx, originalID); err == nil {
		return nil, fmt.Errorf("%w: payment %s", apperrors.ErrAlreadyCorrected, originalID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing correction: %w", err)
	}

	now := s.now().UTC()
	entry, err := domain.NewCorrectionEntry(*original, reason, actorID, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	entry.PaymentID = uuid.NewString()

	// Corrections never touch the member's due anchor.
	if err := s.paymentRepo.SavePayment(ctx, entry); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyCorrected) {
			// A concurrent correction won the race.
			logger.Warn("Concurrent correction already exists", slog.String("payment_id", originalID))
		} else {
			logger.Error("Failed to save correction", slog.String("payment_id", originalID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Payment corrected",
		slog.String("original_id", originalID),
		slog.String("correction_id", entry.PaymentID),
		slog.String("reason", reason),
	)
	return &entry, nil
}

// SetPaymentStatus moves an entry along its forward-only lifecycle. A
// correction entry's status is fixed at creation and cannot be changed.
func (s *ledgerService) SetPaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus, actorID string) (*domain.PaymentEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %s", apperrors.ErrValidation, status)
	}

	entry, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}

	if entry.IsCorrection() {
		return nil, fmt.Errorf("%w: cannot change status of a correction entry", apperrors.ErrConflict)
	}
	if !entry.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, entry.Status, status)
	}

	now := s.now().UTC()
	if err := s.paymentRepo.UpdatePaymentStatus(ctx, paymentID, status, actorID, now); err != nil {
		logger.Error("Failed to update payment status", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	entry.Status = status
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID
	logger.Info("Payment status updated", slog.String("payment_id", paymentID), slog.String("status", string(status)))
	return entry, nil
}

// GetPaymentByID retrieves a specific payment entry.
func (s *ledgerService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentEntry, error) {
	return s.paymentRepo.FindPaymentByID(ctx, paymentID)
}

// ListPayments retrieves a filtered, paginated list of payment entries.
func (s *ledgerService) ListPayments(ctx context.Context, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.PaymentFilter{
		MemberID:        params.MemberID,
		ServiceTypeCode: params.ServiceTypeCode,
		PostedFrom:      params.PostedFrom,
		PostedTo:        params.PostedTo,
	}
	if params.Status != nil {
		status := domain.PaymentStatus(*params.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %s", apperrors.ErrValidation, *params.Status)
		}
		filter.Status = &status
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	entries, nextToken, err := s.paymentRepo.ListPayments(ctx, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list payments from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve payments: %w", err)
	}

	logger.Debug("Payments listed", slog.Int("count", len(entries)))
	return &dto.ListPaymentsResponse{
		Payments:  dto.ToPaymentResponses(entries),
		NextToken: nextToken,
	}, nil
}

// SweepOverdue promotes every stale PENDING entry to OVERDUE and emits one
// notification per promoted entry. Idempotent: a second run right after
// promotes zero rows. Notification failures are log-only; an external caller
// decides whether to re-run the sweep.
func (s *ledgerService) SweepOverdue(ctx context.Context, today time.Time) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	promoted, err := s.paymentRepo.MarkPaymentsOverdue(ctx, contribution.DayOf(today), s.now().UTC())
	if err != nil {
		logger.Error("Overdue sweep failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to sweep overdue payments: %w", err)
	}

	for _, entry := range promoted {
		s.notifier.PaymentOverdue(ctx, entry)
	}

	logger.Info("Overdue sweep completed", slog.Int("promoted", len(promoted)))
	return len(promoted), nil
}
