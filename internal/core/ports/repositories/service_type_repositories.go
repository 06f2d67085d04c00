package repositories

import (
	"context"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
)

// ServiceTypeReader defines read operations for the payment category reference data
type ServiceTypeReader interface {
	// FindServiceTypeByCode retrieves a service type by its code.
	FindServiceTypeByCode(ctx context.Context, code string) (*domain.ServiceType, error)

	// ListServiceTypes retrieves all service types.
	ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error)
}

// ServiceTypeRepositoryFacade combines the service type repository interfaces
type ServiceTypeRepositoryFacade interface {
	ServiceTypeReader
}
