package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/parish_ledger_app/internal/utils/contribution"
)

// MembershipStatus is the contribution-health state of a member.
type MembershipStatus string

const (
	StatusPending  MembershipStatus = "PENDING"
	StatusActive   MembershipStatus = "ACTIVE"
	StatusInactive MembershipStatus = "INACTIVE"
	StatusArchived MembershipStatus = "ARCHIVED" // Only reachable via manual override
)

// IsValid reports whether s is one of the four known membership statuses.
func (s MembershipStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusInactive, StatusArchived:
		return true
	}
	return false
}

// StatusPolicy holds the business constants the status calculator runs with.
// Both values are configuration, not derived invariants.
type StatusPolicy struct {
	GracePeriodDays    int // Days past due date during which the member stays ACTIVE
	FirstDueWindowDays int // First-grace window before any payment history exists
}

// StatusResult is the complete outcome of a status refresh.
type StatusResult struct {
	Auto         MembershipStatus `json:"auto"`
	Effective    MembershipStatus `json:"effective"`
	NextDueAt    time.Time        `json:"nextDueAt"`
	DaysUntilDue int              `json:"daysUntilDue"`
	OverdueDays  *int             `json:"overdueDays,omitempty"` // Days past the grace deadline, set only when overdue
}

// Member carries the contribution state owned by the member aggregate. Entity
// CRUD lives outside this core; only the fields below are read or written here.
type Member struct {
	MemberID     string          `json:"memberID"` // Primary Key (UUID)
	Name         string          `json:"name"`
	CurrencyCode string          `json:"currencyCode"`
	JoinedAt     *time.Time      `json:"joinedAt,omitempty"`
	MonthlyRate  decimal.Decimal `json:"monthlyRate"` // Must be > 0

	ContributionLastPaidAt *time.Time `json:"contributionLastPaidAt,omitempty"`
	ContributionNextDueAt  *time.Time `json:"contributionNextDueAt,omitempty"`

	StatusAuto           MembershipStatus  `json:"statusAuto"`
	StatusOverrideActive bool              `json:"statusOverrideActive"`
	StatusOverrideValue  *MembershipStatus `json:"statusOverrideValue,omitempty"`
	StatusOverrideReason string            `json:"statusOverrideReason,omitempty"`

	AuditFields
}

// EffectiveStatus applies the manual override on top of the auto status.
func (m *Member) EffectiveStatus() MembershipStatus {
	if m.StatusOverrideActive && m.StatusOverrideValue != nil {
		return *m.StatusOverrideValue
	}
	return m.StatusAuto
}

// dueAnchor picks the reference point for the first due date when none exists:
// last payment, then join date, then creation time.
func (m *Member) dueAnchor() time.Time {
	if m.ContributionLastPaidAt != nil {
		return *m.ContributionLastPaidAt
	}
	if m.JoinedAt != nil {
		return *m.JoinedAt
	}
	return m.CreatedAt
}

// RefreshStatus recomputes the auto status against referenceTime and returns
// the full result. It mutates the receiver (StatusAuto, and NextDueAt when the
// default anchor had to be derived) but never persists; the caller does that.
// It always succeeds, including on a member with no payment history.
func (m *Member) RefreshStatus(referenceTime time.Time, policy StatusPolicy) StatusResult {
	if m.ContributionNextDueAt == nil {
		next := m.dueAnchor().AddDate(0, 0, policy.FirstDueWindowDays)
		m.ContributionNextDueAt = &next
	}
	nextDue := *m.ContributionNextDueAt

	if m.ContributionLastPaidAt == nil {
		m.StatusAuto = StatusPending
	} else {
		graceDeadline := nextDue.AddDate(0, 0, policy.GracePeriodDays)
		if referenceTime.After(graceDeadline) {
			m.StatusAuto = StatusInactive
		} else {
			m.StatusAuto = StatusActive
		}
	}

	daysUntilDue := floorDays(nextDue.Sub(referenceTime))

	var overdueDays *int
	graceDeadline := nextDue.AddDate(0, 0, policy.GracePeriodDays)
	if referenceTime.After(graceDeadline) {
		past := floorDays(referenceTime.Sub(graceDeadline))
		if past < 1 {
			past = 1
		}
		overdueDays = &past
	}

	return StatusResult{
		Auto:         m.StatusAuto,
		Effective:    m.EffectiveStatus(),
		NextDueAt:    nextDue,
		DaysUntilDue: daysUntilDue,
		OverdueDays:  overdueDays,
	}
}

// floorDays converts a duration to whole days, rounding toward negative
// infinity so a partially elapsed day in the past still counts against the
// member.
func floorDays(d time.Duration) int {
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}

// ApplyContribution records a contribution payment against the member's due
// anchor. Coverage is floor(amount/rate) whole months, minimum one; the new
// due date anchors forward from whichever is later of the posting time and
// the current due date, so advance payments stack instead of resetting.
// The next due date never regresses. Each call represents a genuinely new
// payment; the caller must invoke it exactly once per recorded entry.
func (m *Member) ApplyContribution(amount decimal.Decimal, postedAt time.Time, policy StatusPolicy) StatusResult {
	m.ContributionLastPaidAt = &postedAt

	months := contribution.MonthsCovered(amount, m.MonthlyRate)

	base := postedAt
	if m.ContributionNextDueAt != nil && m.ContributionNextDueAt.After(base) {
		base = *m.ContributionNextDueAt
	}

	next := contribution.AddCalendarMonths(base, int(months))
	m.ContributionNextDueAt = &next

	return m.RefreshStatus(postedAt, policy)
}

// SetOverride enables or disables the manual status override. Overrides are
// sticky until explicitly cleared; payment activity never touches them.
func (m *Member) SetOverride(enabled bool, value *MembershipStatus, reason string) error {
	if !enabled {
		m.StatusOverrideActive = false
		m.StatusOverrideValue = nil
		m.StatusOverrideReason = ""
		return nil
	}
	if value == nil || !value.IsValid() {
		return errors.New("override value must be one of PENDING, ACTIVE, INACTIVE, ARCHIVED")
	}
	m.StatusOverrideActive = true
	m.StatusOverrideValue = value
	m.StatusOverrideReason = reason
	return nil
}

// Validate checks the member fields this core owns.
func (m *Member) Validate() error {
	if m.Name == "" {
		return errors.New("member name is required")
	}
	if m.CurrencyCode == "" {
		return errors.New("currency code is required")
	}
	if !m.MonthlyRate.IsPositive() {
		return errors.New("monthly rate must be positive")
	}
	return nil
}
