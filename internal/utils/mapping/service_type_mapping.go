package mapping

import (
	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	"github.com/SscSPs/parish_ledger_app/internal/models"
)

// ToDomainServiceType converts a model ServiceType to a domain ServiceType
func ToDomainServiceType(m models.ServiceType) domain.ServiceType {
	return domain.ServiceType{
		Code:        m.Code,
		Name:        m.Name,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
