package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/parish_ledger_app/internal/apperrors"
	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parish_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/parish_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/parish_ledger_app/internal/dto"
	"github.com/SscSPs/parish_ledger_app/internal/middleware"
	"github.com/SscSPs/parish_ledger_app/internal/utils/contribution"
)

// dayLockService governs the per-day posting locks.
type dayLockService struct {
	dayLockRepo portsrepo.DayLockRepositoryFacade
	notifier    portssvc.Notifier
	now         func() time.Time
}

// NewDayLockService creates a new DayLockService.
func NewDayLockService(dayLockRepo portsrepo.DayLockRepositoryFacade, notifier portssvc.Notifier) portssvc.DayLockSvcFacade {
	return &dayLockService{
		dayLockRepo: dayLockRepo,
		notifier:    notifier,
		now:         time.Now,
	}
}

var _ portssvc.DayLockSvcFacade = (*dayLockService)(nil)

// IsLocked reports whether the day is currently closed for posting.
func (s *dayLockService) IsLocked(ctx context.Context, day time.Time) (bool, error) {
	return s.dayLockRepo.IsLocked(ctx, contribution.DayOf(day))
}

// Lock closes a day for posting. Idempotent: an active lock is returned
// unchanged; an unlocked row is re-locked with its unlock fields cleared.
func (s *dayLockService) Lock(ctx context.Context, day time.Time, actorID *string) (*domain.DayLock, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	day = contribution.DayOf(day)
	now := s.now().UTC()

	existing, err := s.dayLockRepo.FindDayLock(ctx, day)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load day lock: %w", err)
	}

	if existing != nil && existing.IsActive() {
		logger.Debug("Day already locked", slog.String("day", day.Format("2006-01-02")))
		return existing, nil
	}

	lock := domain.DayLock{
		Day:      day,
		Locked:   true,
		LockedAt: now,
		LockedBy: actorID,
		// Re-locking clears the unlock fields
		UnlockedAt:   nil,
		UnlockedBy:   nil,
		UnlockReason: "",
	}
	if err := s.dayLockRepo.UpsertDayLock(ctx, lock); err != nil {
		logger.Error("Failed to persist day lock", slog.String("day", day.Format("2006-01-02")), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to lock day: %w", err)
	}

	s.notifier.DayLocked(ctx, lock)
	logger.Info("Day locked for posting", slog.String("day", day.Format("2006-01-02")))
	return &lock, nil
}

// Unlock reopens a locked day. The day must currently be locked and the
// reason must not be empty.
func (s *dayLockService) Unlock(ctx context.Context, day time.Time, actorID string, reason string) (*domain.DayLock, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	day = contribution.DayOf(day)

	if reason == "" {
		return nil, fmt.Errorf("%w: unlock reason is required", apperrors.ErrValidation)
	}

	existing, err := s.dayLockRepo.FindDayLock(ctx, day)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: day %s", apperrors.ErrNotLocked, day.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to load day lock: %w", err)
	}
	if !existing.IsActive() {
		return nil, fmt.Errorf("%w: day %s", apperrors.ErrNotLocked, day.Format("2006-01-02"))
	}

	now := s.now().UTC()
	existing.Locked = false
	existing.UnlockedAt = &now
	existing.UnlockedBy = &actorID
	existing.UnlockReason = reason

	if err := s.dayLockRepo.UpsertDayLock(ctx, *existing); err != nil {
		logger.Error("Failed to persist day unlock", slog.String("day", day.Format("2006-01-02")), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to unlock day: %w", err)
	}

	s.notifier.DayUnlocked(ctx, *existing)
	logger.Info("Day unlocked", slog.String("day", day.Format("2006-01-02")), slog.String("reason", reason))
	return existing, nil
}

// ClosePreviousDay locks yesterday on behalf of the external scheduler.
// Idempotent; safe to invoke any number of times per day.
func (s *dayLockService) ClosePreviousDay(ctx context.Context) (*domain.DayLock, error) {
	yesterday := contribution.DayOf(s.now().UTC()).AddDate(0, 0, -1)
	return s.Lock(ctx, yesterday, nil)
}

// GetDayLock retrieves the lock row for a day.
func (s *dayLockService) GetDayLock(ctx context.Context, day time.Time) (*domain.DayLock, error) {
	return s.dayLockRepo.FindDayLock(ctx, contribution.DayOf(day))
}

// ListDayLocks retrieves a paginated lock history, newest day first.
func (s *dayLockService) ListDayLocks(ctx context.Context, params dto.ListDayLocksParams) (*dto.ListDayLocksResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	locks, nextToken, err := s.dayLockRepo.ListDayLocks(ctx, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list day locks from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve day locks: %w", err)
	}

	responses := make([]dto.DayLockResponse, len(locks))
	for i := range locks {
		responses[i] = dto.ToDayLockResponse(&locks[i])
	}
	return &dto.ListDayLocksResponse{
		DayLocks:  responses,
		NextToken: nextToken,
	}, nil
}
