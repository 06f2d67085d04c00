package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MembershipStatus is the contribution-health state stored on a member row.
type MembershipStatus string

// Member mirrors the contribution-state columns of the members table; entity
// CRUD for the rest of the member aggregate lives outside this core.
type Member struct {
	MemberID               string           `json:"memberID"` // Primary Key (UUID)
	Name                   string           `json:"name"`
	CurrencyCode           string           `json:"currencyCode"`
	MonthlyRate            decimal.Decimal  `json:"monthlyRate"`
	JoinedAt               *time.Time       `json:"joinedAt"`
	ContributionLastPaidAt *time.Time       `json:"contributionLastPaidAt"`
	ContributionNextDueAt  *time.Time       `json:"contributionNextDueAt"`
	StatusAuto             MembershipStatus `json:"statusAuto"`
	StatusOverrideActive   bool             `json:"statusOverrideActive"`
	StatusOverrideValue    *string          `json:"statusOverrideValue"`
	StatusOverrideReason   string           `json:"statusOverrideReason"`
	AuditFields
}
