package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
)

// RecordPaymentRequest defines the data needed to post a new payment entry.
type RecordPaymentRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
	CurrencyCode    string          `json:"currencyCode" binding:"required,len=3"`
	ServiceTypeCode string          `json:"serviceTypeCode" binding:"required"`
	MemberID        *string         `json:"memberID,omitempty"`
	PostedAt        *time.Time      `json:"postedAt,omitempty"` // Defaults to now
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// CorrectPaymentRequest defines the data needed to post a correction.
type CorrectPaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// SetPaymentStatusRequest defines a lifecycle status change.
type SetPaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING COMPLETED OVERDUE"`
}

// SweepOverdueRequest optionally overrides the sweep's notion of today.
type SweepOverdueRequest struct {
	Today *time.Time `json:"today,omitempty"`
}

// ListPaymentsParams holds the read-side filters for listing payment entries.
type ListPaymentsParams struct {
	MemberID        *string    `form:"memberID"`
	ServiceTypeCode *string    `form:"serviceTypeCode"`
	Status          *string    `form:"status"`
	PostedFrom      *time.Time `form:"postedFrom" time_format:"2006-01-02"`
	PostedTo        *time.Time `form:"postedTo" time_format:"2006-01-02"`
	Limit           int        `form:"limit"`
	NextToken       *string    `form:"nextToken"`
}

// PaymentResponse defines the data returned for a payment entry.
type PaymentResponse struct {
	PaymentID        string          `json:"paymentID"`
	Amount           decimal.Decimal `json:"amount"`
	CurrencyCode     string          `json:"currencyCode"`
	ServiceTypeCode  string          `json:"serviceTypeCode"`
	MemberID         *string         `json:"memberID,omitempty"`
	PostedAt         time.Time       `json:"postedAt"`
	DueDate          *time.Time      `json:"dueDate,omitempty"`
	Status           string          `json:"status"`
	CorrectionOfID   *string         `json:"correctionOfID,omitempty"`
	CorrectionReason string          `json:"correctionReason,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ListPaymentsResponse wraps a payment page with its pagination token.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToPaymentResponse converts a domain.PaymentEntry to its response DTO.
func ToPaymentResponse(p *domain.PaymentEntry) PaymentResponse {
	return PaymentResponse{
		PaymentID:        p.PaymentID,
		Amount:           p.Amount,
		CurrencyCode:     p.CurrencyCode,
		ServiceTypeCode:  p.ServiceTypeCode,
		MemberID:         p.MemberID,
		PostedAt:         p.PostedAt,
		DueDate:          p.DueDate,
		Status:           string(p.Status),
		CorrectionOfID:   p.CorrectionOfID,
		CorrectionReason: p.CorrectionReason,
		Notes:            p.Notes,
		CreatedAt:        p.CreatedAt,
		CreatedBy:        p.CreatedBy,
	}
}

// ToPaymentResponses converts a slice of entries to response DTOs.
func ToPaymentResponses(entries []domain.PaymentEntry) []PaymentResponse {
	responses := make([]PaymentResponse, len(entries))
	for i := range entries {
		responses[i] = ToPaymentResponse(&entries[i])
	}
	return responses
}
