package models

// ServiceType mirrors one row of the service_types reference table.
type ServiceType struct {
	Code     string `json:"code"` // Primary Key
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
