package models

import "time"

// DayLock mirrors one row of the day_locks table. The day is the primary key;
// rows are never deleted.
type DayLock struct {
	Day          time.Time  `json:"day"`
	Locked       bool       `json:"locked"`
	LockedAt     time.Time  `json:"lockedAt"`
	LockedBy     *string    `json:"lockedBy"`
	UnlockedAt   *time.Time `json:"unlockedAt"`
	UnlockedBy   *string    `json:"unlockedBy"`
	UnlockReason string     `json:"unlockReason"`
}
