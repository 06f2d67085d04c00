package services

import (
	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parish_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/parish_ledger_app/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies
type Container struct {
	DayLock     portssvc.DayLockSvcFacade
	Ledger      portssvc.LedgerSvcFacade
	Membership  portssvc.MembershipSvcFacade
	ServiceType portssvc.ServiceTypeSvcFacade
	Notifier    portssvc.Notifier
}

// ContainerConfig carries the business policy the services run with.
type ContainerConfig struct {
	ContributionServiceCode string
	Policy                  domain.StatusPolicy
}

// NewContainer creates a new service container with properly initialized dependencies
func NewContainer(repos *portsrepo.RepositoryProvider, cfg ContainerConfig) *Container {
	notifier := NewLogNotifier()

	return &Container{
		Notifier:    notifier,
		DayLock:     NewDayLockService(repos.DayLockRepo, notifier),
		Ledger:      NewLedgerService(repos.PaymentRepo, repos.ServiceTypeRepo, repos.MemberRepo, notifier, cfg.ContributionServiceCode, cfg.Policy),
		Membership:  NewMembershipService(repos.MemberRepo, repos.PaymentRepo, cfg.ContributionServiceCode, cfg.Policy),
		ServiceType: NewServiceTypeService(repos.ServiceTypeRepo),
	}
}
