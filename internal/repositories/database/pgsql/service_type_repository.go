package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/parish_ledger_app/internal/apperrors"
	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parish_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/parish_ledger_app/internal/models"
	"github.com/SscSPs/parish_ledger_app/internal/utils/mapping"
)

type PgxServiceTypeRepository struct {
	BaseRepository
}

// newPgxServiceTypeRepository creates a new repository for payment category reference data.
func newPgxServiceTypeRepository(pool *pgxpool.Pool) portsrepo.ServiceTypeRepositoryFacade {
	return &PgxServiceTypeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxServiceTypeRepository implements portsrepo.ServiceTypeRepositoryFacade
var _ portsrepo.ServiceTypeRepositoryFacade = (*PgxServiceTypeRepository)(nil)

// FindServiceTypeByCode retrieves a service type by its code.
func (r *PgxServiceTypeRepository) FindServiceTypeByCode(ctx context.Context, code string) (*domain.ServiceType, error) {
	query := `
		SELECT code, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM service_types
		WHERE code = $1;
	`
	var m models.ServiceType
	err := r.Pool.QueryRow(ctx, query, code).Scan(
		&m.Code,
		&m.Name,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find service type %s: %w", code, err)
	}
	st := mapping.ToDomainServiceType(m)
	return &st, nil
}

// ListServiceTypes retrieves all service types ordered by code.
func (r *PgxServiceTypeRepository) ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	query := `
		SELECT code, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM service_types
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query service types: %w", err)
	}
	defer rows.Close()

	serviceTypes := []domain.ServiceType{}
	for rows.Next() {
		var m models.ServiceType
		err := rows.Scan(
			&m.Code,
			&m.Name,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service type row: %w", err)
		}
		serviceTypes = append(serviceTypes, mapping.ToDomainServiceType(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service type rows: %w", err)
	}

	return serviceTypes, nil
}
