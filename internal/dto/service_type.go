package dto

import "github.com/SscSPs/parish_ledger_app/internal/core/domain"

// ServiceTypeResponse defines the data returned for a payment category.
type ServiceTypeResponse struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// ToServiceTypeResponses converts service types to response DTOs.
func ToServiceTypeResponses(types []domain.ServiceType) []ServiceTypeResponse {
	responses := make([]ServiceTypeResponse, len(types))
	for i, t := range types {
		responses[i] = ServiceTypeResponse{Code: t.Code, Name: t.Name, IsActive: t.IsActive}
	}
	return responses
}
