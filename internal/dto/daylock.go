package dto

import (
	"time"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
)

// UnlockDayRequest carries the mandatory justification for reopening a day.
type UnlockDayRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListDayLocksParams holds the read-side filters for the lock history.
type ListDayLocksParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// DayLockResponse defines the data returned for a day lock row.
type DayLockResponse struct {
	Day          string     `json:"day"` // YYYY-MM-DD
	Locked       bool       `json:"locked"`
	LockedAt     time.Time  `json:"lockedAt"`
	LockedBy     *string    `json:"lockedBy,omitempty"`
	UnlockedAt   *time.Time `json:"unlockedAt,omitempty"`
	UnlockedBy   *string    `json:"unlockedBy,omitempty"`
	UnlockReason string     `json:"unlockReason,omitempty"`
}

// ListDayLocksResponse wraps a lock history page with its pagination token.
type ListDayLocksResponse struct {
	DayLocks  []DayLockResponse `json:"dayLocks"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToDayLockResponse converts a domain.DayLock to its response DTO.
func ToDayLockResponse(l *domain.DayLock) DayLockResponse {
	return DayLockResponse{
		Day:          l.Day.Format("2006-01-02"),
		Locked:       l.Locked,
		LockedAt:     l.LockedAt,
		LockedBy:     l.LockedBy,
		UnlockedAt:   l.UnlockedAt,
		UnlockedBy:   l.UnlockedBy,
		UnlockReason: l.UnlockReason,
	}
}
