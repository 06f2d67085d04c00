package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	"github.com/SscSPs/parish_ledger_app/internal/dto"
)

// MembershipReaderSvc defines read operations on membership contribution state
type MembershipReaderSvc interface {
	// GetMemberByID retrieves a member.
	GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// RefreshStatus recomputes and persists the member's auto status against
	// referenceTime (now when nil) and returns the full result.
	RefreshStatus(ctx context.Context, memberID string, referenceTime *time.Time) (*domain.StatusResult, error)

	// GetTimeline builds the read-side event timeline for a member.
	GetTimeline(ctx context.Context, memberID string) ([]domain.TimelineEvent, error)
}

// MembershipWriterSvc defines write operations on membership contribution state
type MembershipWriterSvc interface {
	// CreateMember persists a new member with the contribution fields this core
	// owns; full member CRUD lives outside the core.
	CreateMember(ctx context.Context, req dto.CreateMemberRequest, actorID string) (*domain.Member, error)

	// ApplyContribution advances the member's due anchor for a contribution
	// payment and refreshes the derived status.
	ApplyContribution(ctx context.Context, memberID string, amount decimal.Decimal, postedAt time.Time, actorID string) (*domain.Member, error)

	// SetOverride enables or clears the manual status override.
	SetOverride(ctx context.Context, memberID string, enabled bool, value *domain.MembershipStatus, reason string, actorID string) (*domain.Member, error)
}

// MembershipSvcFacade combines all membership service interfaces
type MembershipSvcFacade interface {
	MembershipReaderSvc
	MembershipWriterSvc
}

// ServiceTypeSvcFacade exposes the payment category reference data.
type ServiceTypeSvcFacade interface {
	// ListServiceTypes retrieves all service types.
	ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error)
}
