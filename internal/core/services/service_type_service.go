package services

import (
	"context"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parish_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/parish_ledger_app/internal/core/ports/services"
)

// serviceTypeService exposes the payment category reference data.
type serviceTypeService struct {
	serviceTypeRepo portsrepo.ServiceTypeRepositoryFacade
}

// NewServiceTypeService creates a new ServiceTypeService.
func NewServiceTypeService(serviceTypeRepo portsrepo.ServiceTypeRepositoryFacade) portssvc.ServiceTypeSvcFacade {
	return &serviceTypeService{serviceTypeRepo: serviceTypeRepo}
}

var _ portssvc.ServiceTypeSvcFacade = (*serviceTypeService)(nil)

// ListServiceTypes retrieves all service types.
func (s *serviceTypeService) ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	return s.serviceTypeRepo.ListServiceTypes(ctx)
}
