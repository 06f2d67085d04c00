package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus indicates the lifecycle state of a payment entry.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentOverdue   PaymentStatus = "OVERDUE"
)

// paymentStatusTransitions lists the allowed forward transitions.
// COMPLETED is terminal; an overdue entry completes when it is eventually paid.
var paymentStatusTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentCompleted, PaymentOverdue},
	PaymentOverdue: {PaymentCompleted},
}

// CanTransitionTo reports whether moving from s to next is a valid forward transition.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is one of the known payment statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentOverdue:
		return true
	}
	return false
}

// PaymentEntry represents one posted monetary transaction. An entry may be a
// signed correction of exactly one earlier entry; a correction can never be
// corrected again, so the correction chain has depth at most one.
type PaymentEntry struct {
	PaymentID        string          `json:"paymentID"` // Primary Key (UUID)
	Amount           decimal.Decimal `json:"amount"`    // Signed; negative only for corrections
	CurrencyCode     string          `json:"currencyCode"`
	ServiceTypeCode  string          `json:"serviceTypeCode"`
	MemberID         *string         `json:"memberID,omitempty"` // Paying member, optional
	PostedAt         time.Time       `json:"postedAt"`           // Authoritative for day-lock association
	DueDate          *time.Time      `json:"dueDate,omitempty"`
	Status           PaymentStatus   `json:"status"`
	CorrectionOfID   *string         `json:"correctionOfID,omitempty"`
	CorrectionReason string          `json:"correctionReason,omitempty"` // Required iff CorrectionOfID set
	Notes            string          `json:"notes,omitempty"`
	AuditFields
}

// IsCorrection reports whether the entry reverses an earlier entry.
func (p *PaymentEntry) IsCorrection() bool {
	return p.CorrectionOfID != nil
}

// Validate checks the entry's internal consistency.
func (p *PaymentEntry) Validate() error {
	if p.CurrencyCode == "" {
		return errors.New("currency code is required")
	}
	if p.ServiceTypeCode == "" {
		return errors.New("service type code is required")
	}
	if p.IsCorrection() {
		if p.CorrectionReason == "" {
			return errors.New("correction reason is required for correction entries")
		}
		if p.Amount.IsPositive() {
			return errors.New("correction amount must negate the original")
		}
		return nil
	}
	if !p.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	return nil
}

// NewCorrectionEntry builds the reversing entry for original. It is the only
// way to produce a correction, which keeps the chain depth at one: passing a
// correction as the original is rejected here.
func NewCorrectionEntry(original PaymentEntry, reason string, actorID string, now time.Time) (PaymentEntry, error) {
	if original.IsCorrection() {
		return PaymentEntry{}, errors.New("cannot correct a correction entry")
	}
	if reason == "" {
		return PaymentEntry{}, errors.New("correction reason is required")
	}
	return PaymentEntry{
		Amount:           original.Amount.Neg(),
		CurrencyCode:     original.CurrencyCode,
		ServiceTypeCode:  original.ServiceTypeCode,
		MemberID:         original.MemberID,
		PostedAt:         now,
		Status:           PaymentCompleted,
		CorrectionOfID:   &original.PaymentID,
		CorrectionReason: reason,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}, nil
}
