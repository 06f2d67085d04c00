package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
)

// CreateMemberRequest carries the contribution fields owned by this core.
type CreateMemberRequest struct {
	Name         string          `json:"name" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	MonthlyRate  decimal.Decimal `json:"monthlyRate" binding:"required,decimalgt0"`
	JoinedAt     *time.Time      `json:"joinedAt,omitempty"`
}

// ApplyContributionRequest records a contribution payment for a member.
type ApplyContributionRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
	PostedAt *time.Time      `json:"postedAt,omitempty"` // Defaults to now
}

// SetOverrideRequest enables or clears the manual status override.
type SetOverrideRequest struct {
	Enabled bool    `json:"enabled"`
	Value   *string `json:"value,omitempty" binding:"omitempty,oneof=PENDING ACTIVE INACTIVE ARCHIVED"`
	Reason  string  `json:"reason,omitempty"`
}

// RefreshStatusParams optionally pins the reference time of a status read.
type RefreshStatusParams struct {
	ReferenceTime *time.Time `form:"referenceTime" time_format:"2006-01-02T15:04:05Z07:00"`
}

// MemberResponse defines the contribution-state view of a member.
type MemberResponse struct {
	MemberID               string          `json:"memberID"`
	Name                   string          `json:"name"`
	CurrencyCode           string          `json:"currencyCode"`
	MonthlyRate            decimal.Decimal `json:"monthlyRate"`
	JoinedAt               *time.Time      `json:"joinedAt,omitempty"`
	ContributionLastPaidAt *time.Time      `json:"contributionLastPaidAt,omitempty"`
	ContributionNextDueAt  *time.Time      `json:"contributionNextDueAt,omitempty"`
	StatusAuto             string          `json:"statusAuto"`
	EffectiveStatus        string          `json:"effectiveStatus"`
	StatusOverrideActive   bool            `json:"statusOverrideActive"`
	StatusOverrideValue    *string         `json:"statusOverrideValue,omitempty"`
	StatusOverrideReason   string          `json:"statusOverrideReason,omitempty"`
}

// StatusResponse defines the result of a status refresh.
type StatusResponse struct {
	Auto         string    `json:"auto"`
	Effective    string    `json:"effective"`
	NextDueAt    time.Time `json:"nextDueAt"`
	DaysUntilDue int       `json:"daysUntilDue"`
	OverdueDays  *int      `json:"overdueDays,omitempty"`
}

// TimelineResponse wraps the member event timeline.
type TimelineResponse struct {
	Events []domain.TimelineEvent `json:"events"`
}

// ToMemberResponse converts a domain.Member to its response DTO.
func ToMemberResponse(m *domain.Member) MemberResponse {
	var overrideValue *string
	if m.StatusOverrideValue != nil {
		v := string(*m.StatusOverrideValue)
		overrideValue = &v
	}
	return MemberResponse{
		MemberID:               m.MemberID,
		Name:                   m.Name,
		CurrencyCode:           m.CurrencyCode,
		MonthlyRate:            m.MonthlyRate,
		JoinedAt:               m.JoinedAt,
		ContributionLastPaidAt: m.ContributionLastPaidAt,
		ContributionNextDueAt:  m.ContributionNextDueAt,
		StatusAuto:             string(m.StatusAuto),
		EffectiveStatus:        string(m.EffectiveStatus()),
		StatusOverrideActive:   m.StatusOverrideActive,
		StatusOverrideValue:    overrideValue,
		StatusOverrideReason:   m.StatusOverrideReason,
	}
}

// ToStatusResponse converts a domain.StatusResult to its response DTO.
func ToStatusResponse(r *domain.StatusResult) StatusResponse {
	return StatusResponse{
		Auto:         string(r.Auto),
		Effective:    string(r.Effective),
		NextDueAt:    r.NextDueAt,
		DaysUntilDue: r.DaysUntilDue,
		OverdueDays:  r.OverdueDays,
	}
}
