package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
)

var testPolicy = domain.StatusPolicy{
	GracePeriodDays:    5,
	FirstDueWindowDays: 30,
}

func newTestMember(joinedAt time.Time) domain.Member {
	return domain.Member{
		MemberID:     "member-1",
		Name:         "Maria Fernandes",
		CurrencyCode: "EUR",
		MonthlyRate:  decimal.NewFromInt(75),
		JoinedAt:     &joinedAt,
		StatusAuto:   domain.StatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt: joinedAt,
		},
	}
}

func TestRefreshStatusNewMemberIsPending(t *testing.T) {
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMember(joined)

	result := m.RefreshStatus(joined.AddDate(0, 0, 10), testPolicy)

	assert.Equal(t, domain.StatusPending, result.Auto)
	assert.Equal(t, domain.StatusPending, result.Effective)
	// First due date derives from the join date plus the first-due window
	assert.True(t, joined.AddDate(0, 0, 30).Equal(result.NextDueAt))
	assert.Equal(t, 20, result.DaysUntilDue)
	assert.Nil(t, result.OverdueDays)
}

func TestRefreshStatusFallsBackToCreationTime(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	m := domain.Member{
		MemberID:     "member-2",
		Name:         "Jose Pinto",
		CurrencyCode: "EUR",
		MonthlyRate:  decimal.NewFromInt(75),
		StatusAuto:   domain.StatusPending,
		AuditFields:  domain.AuditFields{CreatedAt: created},
	}

	result := m.RefreshStatus(created, testPolicy)
	assert.True(t, created.AddDate(0, 0, 30).Equal(result.NextDueAt))
}

func TestApplyContributionSingleMonth(t *testing.T) {
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMember(joined)
	postedAt := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	result := m.ApplyContribution(decimal.NewFromInt(75), postedAt, testPolicy)

	assert.Equal(t, domain.StatusActive, result.Auto)
	require.NotNil(t, m.ContributionLastPaidAt)
	assert.True(t, postedAt.Equal(*m.ContributionLastPaidAt))
	assert.True(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC).Equal(result.NextDueAt))
}

func TestApplyContributionMultiMonth(t *testing.T) {
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMember(joined)
	postedAt := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	result := m.ApplyContribution(decimal.NewFromInt(150), postedAt, testPolicy)

	assert.True(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC).Equal(result.NextDueAt))
}

func TestApplyContributionAnchorsOnFutureDueDate(t *testing.T) {
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMember(joined)

	// First payment sets the due date one month out
	m.ApplyContribution(decimal.NewFromInt(75), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), testPolicy)

	// Paying again before the due date stacks on the due date, not the
	// posting time, so the member never loses paid-for coverage.
	result := m.ApplyContribution(decimal.NewFromInt(75), time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), testPolicy)

	assert.True(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC).Equal(result.NextDueAt))
}

func TestApplyContributionLateAnchorsOnPostingTime(t *testing.T) {
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMember(joined)

	m.ApplyContribution(decimal.NewFromInt(75), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), testPolicy)

	// Paying well after the due date anchors forward from the posting time.
	latePosted := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	result := m.ApplyContribution(decimal.NewFromInt(75), latePosted, testPolicy)

	assert.True(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC).Equal(result.NextDueAt))
	assert.Equal(t, domain.StatusActive, result.Auto)
}

func TestRefreshStatusWithinGraceStaysActive(t *testing.T) {
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMember(joined)
	m.ApplyContribution(decimal.NewFromInt(75), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), testPolicy)

	// Due 2024-02-10, grace 5 days: the deadline itself is still in grace
	result := m.RefreshStatus(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), testPolicy)

	assert.Equal(t, domain.StatusActive, result.Auto)
	assert.Nil(t, result.OverdueDays)
}

func TestRefreshStatusPastGraceGoesInactive(t *testing.T) {
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMember(joined)
	m.ApplyContribution(decimal.NewFromInt(75), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), testPolicy)

	// Due 2024-02-10, grace deadline 2024-02-15: the 16th is one day past it
	result := m.RefreshStatus(time.Date(2024, 2, 16, 0, 0, 0, 0, time.UTC), testPolicy)

	assert.Equal(t, domain.StatusInactive, result.Auto)
	require.NotNil(t, result.OverdueDays)
	assert.Equal(t, 1, *result.OverdueDays)
	assert.Equal(t, -6, result.DaysUntilDue)
}

func TestRefreshStatusOverdueDaysClampToOne(t *testing.T) {
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMember(joined)
	m.ApplyContribution(decimal.NewFromInt(75), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), testPolicy)

	// One hour past the grace deadline still registers as a full day overdue
	result := m.RefreshStatus(time.Date(2024, 2, 15, 1, 0, 0, 0, time.UTC), testPolicy)

	assert.Equal(t, domain.StatusInactive, result.Auto)
	require.NotNil(t, result.OverdueDays)
	assert.Equal(t, 1, *result.OverdueDays)
}

func TestOverrideWinsOverAutoStatus(t *testing.T) {
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMember(joined)

	archived := domain.StatusArchived
	require.NoError(t, m.SetOverride(true, &archived, "moved away"))

	// Payment activity refreshes the auto status but never the override
	result := m.ApplyContribution(decimal.NewFromInt(75), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), testPolicy)

	assert.Equal(t, domain.StatusActive, result.Auto)
	assert.Equal(t, domain.StatusArchived, result.Effective)
	assert.True(t, m.StatusOverrideActive)
}

func TestClearingOverrideRestoresAutoStatus(t *testing.T) {
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMember(joined)

	inactive := domain.StatusInactive
	require.NoError(t, m.SetOverride(true, &inactive, "unpaid dispute"))
	require.NoError(t, m.SetOverride(false, nil, ""))

	assert.False(t, m.StatusOverrideActive)
	assert.Nil(t, m.StatusOverrideValue)
	assert.Empty(t, m.StatusOverrideReason)

	result := m.ApplyContribution(decimal.NewFromInt(75), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), testPolicy)
	assert.Equal(t, domain.StatusActive, result.Effective)
}

func TestSetOverrideRejectsInvalidValue(t *testing.T) {
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMember(joined)

	assert.Error(t, m.SetOverride(true, nil, "no value"))

	bogus := domain.MembershipStatus("FROZEN")
	assert.Error(t, m.SetOverride(true, &bogus, "bad value"))
}

func TestMemberValidate(t *testing.T) {
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	m := newTestMember(joined)
	assert.NoError(t, m.Validate())

	m = newTestMember(joined)
	m.Name = ""
	assert.Error(t, m.Validate())

	m = newTestMember(joined)
	m.MonthlyRate = decimal.Zero
	assert.Error(t, m.Validate())
}
