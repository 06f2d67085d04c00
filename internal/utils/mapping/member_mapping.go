package mapping

import (
	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	"github.com/SscSPs/parish_ledger_app/internal/models"
)

// ToModelMember converts a domain Member to a model Member
func ToModelMember(d domain.Member) models.Member {
	var overrideValue *string
	if d.StatusOverrideValue != nil {
		v := string(*d.StatusOverrideValue)
		overrideValue = &v
	}
	return models.Member{
		MemberID:               d.MemberID,
		Name:                   d.Name,
		CurrencyCode:           d.CurrencyCode,
		MonthlyRate:            d.MonthlyRate,
		JoinedAt:               d.JoinedAt,
		ContributionLastPaidAt: d.ContributionLastPaidAt,
		ContributionNextDueAt:  d.ContributionNextDueAt,
		StatusAuto:             models.MembershipStatus(d.StatusAuto),
		StatusOverrideActive:   d.StatusOverrideActive,
		StatusOverrideValue:    overrideValue,
		StatusOverrideReason:   d.StatusOverrideReason,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMember converts a model Member to a domain Member
func ToDomainMember(m models.Member) domain.Member {
	var overrideValue *domain.MembershipStatus
	if m.StatusOverrideValue != nil {
		v := domain.MembershipStatus(*m.StatusOverrideValue)
		overrideValue = &v
	}
	return domain.Member{
		MemberID:               m.MemberID,
		Name:                   m.Name,
		CurrencyCode:           m.CurrencyCode,
		MonthlyRate:            m.MonthlyRate,
		JoinedAt:               m.JoinedAt,
		ContributionLastPaidAt: m.ContributionLastPaidAt,
		ContributionNextDueAt:  m.ContributionNextDueAt,
		StatusAuto:             domain.MembershipStatus(m.StatusAuto),
		StatusOverrideActive:   m.StatusOverrideActive,
		StatusOverrideValue:    overrideValue,
		StatusOverrideReason:   m.StatusOverrideReason,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}
