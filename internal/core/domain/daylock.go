package domain

import "time"

// DayLock guards one calendar day against new ledger postings. A day with no
// row is implicitly unlocked; rows are never deleted, only re-locked/unlocked.
type DayLock struct {
	Day          time.Time  `json:"day"` // Primary Key, UTC midnight
	Locked       bool       `json:"locked"`
	LockedAt     time.Time  `json:"lockedAt"`
	LockedBy     *string    `json:"lockedBy,omitempty"` // nil for system-initiated locks
	UnlockedAt   *time.Time `json:"unlockedAt,omitempty"`
	UnlockedBy   *string    `json:"unlockedBy,omitempty"`
	UnlockReason string     `json:"unlockReason,omitempty"` // Required when unlocking
}

// IsActive reports whether the lock currently prevents postings for its day.
func (l *DayLock) IsActive() bool {
	return l.Locked && l.UnlockedAt == nil
}
