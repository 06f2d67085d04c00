package mapping

import (
	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	"github.com/SscSPs/parish_ledger_app/internal/models"
)

// ToModelDayLock converts a domain DayLock to a model DayLock
func ToModelDayLock(d domain.DayLock) models.DayLock {
	return models.DayLock{
		Day:          d.Day,
		Locked:       d.Locked,
		LockedAt:     d.LockedAt,
		LockedBy:     d.LockedBy,
		UnlockedAt:   d.UnlockedAt,
		UnlockedBy:   d.UnlockedBy,
		UnlockReason: d.UnlockReason,
	}
}

// ToDomainDayLock converts a model DayLock to a domain DayLock
func ToDomainDayLock(m models.DayLock) domain.DayLock {
	return domain.DayLock{
		Day:          m.Day,
		Locked:       m.Locked,
		LockedAt:     m.LockedAt,
		LockedBy:     m.LockedBy,
		UnlockedAt:   m.UnlockedAt,
		UnlockedBy:   m.UnlockedBy,
		UnlockReason: m.UnlockReason,
	}
}
