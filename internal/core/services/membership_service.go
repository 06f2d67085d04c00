package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/parish_ledger_app/internal/apperrors"
	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parish_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/parish_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/parish_ledger_app/internal/dto"
	"github.com/SscSPs/parish_ledger_app/internal/middleware"
	"github.com/SscSPs/parish_ledger_app/internal/utils/contribution"
)

var (
	ErrInvalidOverrideValue   = errors.New("override value must be one of PENDING, ACTIVE, INACTIVE, ARCHIVED")
	ErrMonthlyRateNotPositive = errors.New("monthly rate must be positive")
)

// timelineFetchLimit bounds how many recent entries feed the timeline
// projection; the projection itself caps the event count.
const timelineFetchLimit = 50

// membershipService owns the contribution state and derived status of members.
type membershipService struct {
	memberRepo  portsrepo.MemberRepositoryFacade
	paymentRepo portsrepo.PaymentReader

	contributionCode string
	policy           domain.StatusPolicy
	now              func() time.Time
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(
	memberRepo portsrepo.MemberRepositoryFacade,
	paymentRepo portsrepo.PaymentReader,
	contributionCode string,
	policy domain.StatusPolicy,
) portssvc.MembershipSvcFacade {
	return &membershipService{
		memberRepo:       memberRepo,
		paymentRepo:      paymentRepo,
		contributionCode: contributionCode,
		policy:           policy,
		now:              time.Now,
	}
}

var _ portssvc.MembershipSvcFacade = (*membershipService)(nil)

// CreateMember persists a new member with the contribution fields this core
// owns. Members start as PENDING with no due date; the first status refresh
// derives the default anchor.
func (s *membershipService) CreateMember(ctx context.Context, req dto.CreateMemberRequest, actorID string) (*domain.Member, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.MonthlyRate.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrMonthlyRateNotPositive, req.MonthlyRate.String())
	}

	now := s.now().UTC()
	member := domain.Member{
		MemberID:     uuid.NewString(),
		Name:         req.Name,
		CurrencyCode: req.CurrencyCode,
		MonthlyRate:  contribution.RoundAmount(req.MonthlyRate),
		JoinedAt:     req.JoinedAt,
		StatusAuto:   domain.StatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := member.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.memberRepo.SaveMember(ctx, member); err != nil {
		logger.Error("Failed to save member", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save member: %w", err)
	}

	logger.Info("Member created", slog.String("member_id", member.MemberID))
	return &member, nil
}

// GetMemberByID retrieves a member.
func (s *membershipService) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	return s.memberRepo.FindMemberByID(ctx, memberID)
}

// ApplyContribution advances the member's due anchor for a contribution
// payment. The member row is locked for the duration of the update, so
// concurrent payments for the same member serialise and the next-due anchor
// never regresses. The ledger applies contributions inside its own insert
// transaction; this entry point serves direct callers.
func (s *membershipService) ApplyContribution(ctx context.Context, memberID string, amount decimal.Decimal, postedAt time.Time, actorID string) (*domain.Member, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrAmountNotPositive, amount.String())
	}
	amount = contribution.RoundAmount(amount)
	postedAt = postedAt.UTC()
	now := s.now().UTC()

	updated, err := s.memberRepo.UpdateContributionState(ctx, memberID, func(m *domain.Member) error {
		result := m.ApplyContribution(amount, postedAt, s.policy)
		m.LastUpdatedAt = now
		m.LastUpdatedBy = actorID
		logger.Debug("Contribution applied",
			slog.String("member_id", memberID),
			slog.String("auto_status", string(result.Auto)),
			slog.Time("next_due_at", result.NextDueAt),
		)
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to apply contribution", slog.String("member_id", memberID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Contribution applied to member",
		slog.String("member_id", memberID),
		slog.String("effective_status", string(updated.EffectiveStatus())),
	)
	return updated, nil
}

// RefreshStatus recomputes and persists the member's auto status against
// referenceTime (now when nil) and returns the full result. It never fails on
// member state, only on persistence.
func (s *membershipService) RefreshStatus(ctx context.Context, memberID string, referenceTime *time.Time) (*domain.StatusResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ref := s.now().UTC()
	if referenceTime != nil {
		ref = referenceTime.UTC()
	}

	var result domain.StatusResult
	_, err := s.memberRepo.UpdateContributionState(ctx, memberID, func(m *domain.Member) error {
		result = m.RefreshStatus(ref, s.policy)
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to refresh member status", slog.String("member_id", memberID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Debug("Member status refreshed",
		slog.String("member_id", memberID),
		slog.String("auto", string(result.Auto)),
		slog.String("effective", string(result.Effective)),
	)
	return &result, nil
}

// SetOverride enables or clears the manual status override. Overrides are
// sticky: payment activity never clears them, and ARCHIVED is reachable only
// through this operation.
func (s *membershipService) SetOverride(ctx context.Context, memberID string, enabled bool, value *domain.MembershipStatus, reason string, actorID string) (*domain.Member, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if enabled && (value == nil || !value.IsValid()) {
		return nil, ErrInvalidOverrideValue
	}

	now := s.now().UTC()
	updated, err := s.memberRepo.UpdateContributionState(ctx, memberID, func(m *domain.Member) error {
		if err := m.SetOverride(enabled, value, reason); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidOverrideValue, err.Error())
		}
		m.RefreshStatus(now, s.policy)
		m.LastUpdatedAt = now
		m.LastUpdatedBy = actorID
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, ErrInvalidOverrideValue) {
			logger.Error("Failed to set status override", slog.String("member_id", memberID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Status override updated",
		slog.String("member_id", memberID),
		slog.Bool("enabled", enabled),
		slog.String("effective_status", string(updated.EffectiveStatus())),
	)
	return updated, nil
}

// GetTimeline builds the read-side event timeline for a member: renewals from
// completed contribution payments, a synthetic overdue marker and the active
// override, newest first. Recomputed on every read.
func (s *membershipService) GetTimeline(ctx context.Context, memberID string) ([]domain.TimelineEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to find member %s: %w", memberID, err)
	}

	entries, err := s.paymentRepo.FindRecentPaymentsByMember(ctx, memberID, timelineFetchLimit)
	if err != nil {
		logger.Error("Failed to fetch payments for timeline", slog.String("member_id", memberID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve payments for timeline: %w", err)
	}

	// The status read is a projection; it does not persist the refresh.
	snapshot := *member
	result := snapshot.RefreshStatus(s.now().UTC(), s.policy)

	return domain.BuildTimeline(*member, entries, s.contributionCode, result), nil
}
