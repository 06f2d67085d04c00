package domain

// ServiceType is a categorical tag for payment entries (e.g. contribution, tuition).
type ServiceType struct {
	Code     string `json:"code"` // Primary Key, e.g. "CONTRIBUTION"
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
