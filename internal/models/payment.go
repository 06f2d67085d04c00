package models

import (
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

// PaymentEntry mirrors one row of the payment_entries table.
type PaymentEntry struct {
	PaymentID        string          `json:"paymentID"` // Primary Key (UUID)
	Amount           decimal.Decimal `json:"amount"`    // Signed, 2dp; negative only for corrections
	CurrencyCode     string          `json:"currencyCode"`
	ServiceTypeCode  string          `json:"serviceTypeCode"` // FK -> service_types.code
	MemberID         *string         `json:"memberID"`        // FK -> members.member_id, nullable
	PostedAt         time.Time       `json:"postedAt"`
	DueDate          *time.Time      `json:"dueDate"`
	Status           PaymentStatus   `json:"status"`
	CorrectionOfID   *string         `json:"correctionOfID"` // Self-reference, nullable-unique
	CorrectionReason string          `json:"correctionReason"`
	Notes            string          `json:"notes"`
	AuditFields
}
