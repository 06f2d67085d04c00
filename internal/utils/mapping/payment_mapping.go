package mapping

import (
	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	"github.com/SscSPs/parish_ledger_app/internal/models"
)

// ToModelPaymentEntry converts a domain PaymentEntry to a model PaymentEntry
func ToModelPaymentEntry(d domain.PaymentEntry) models.PaymentEntry {
	return models.PaymentEntry{
		PaymentID:        d.PaymentID,
		Amount:           d.Amount,
		CurrencyCode:     d.CurrencyCode,
		ServiceTypeCode:  d.ServiceTypeCode,
		MemberID:         d.MemberID,
		PostedAt:         d.PostedAt,
		DueDate:          d.DueDate,
		Status:           models.PaymentStatus(d.Status),
		CorrectionOfID:   d.CorrectionOfID,
		CorrectionReason: d.CorrectionReason,
		Notes:            d.Notes,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentEntry converts a model PaymentEntry to a domain PaymentEntry
func ToDomainPaymentEntry(m models.PaymentEntry) domain.PaymentEntry {
	return domain.PaymentEntry{
		PaymentID:        m.PaymentID,
		Amount:           m.Amount,
		CurrencyCode:     m.CurrencyCode,
		ServiceTypeCode:  m.ServiceTypeCode,
		MemberID:         m.MemberID,
		PostedAt:         m.PostedAt,
		DueDate:          m.DueDate,
		Status:           domain.PaymentStatus(m.Status),
		CorrectionOfID:   m.CorrectionOfID,
		CorrectionReason: m.CorrectionReason,
		Notes:            m.Notes,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentEntrySlice converts a slice of model PaymentEntry to domain
func ToDomainPaymentEntrySlice(ms []models.PaymentEntry) []domain.PaymentEntry {
	out := make([]domain.PaymentEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainPaymentEntry(m)
	}
	return out
}
