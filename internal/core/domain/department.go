package domain

// Department represents an organisational unit that cash requests are raised against.
type Department struct {
	DepartmentID string  `json:"departmentID"` // Primary Key (UUID)
	Name         string  `json:"name"`
	CostCenter   *string `json:"costCenter,omitempty"` // Optional accounting cost center code
	ManagerID    *string `json:"managerID,omitempty"`  // UserID of the department manager
	IsActive     bool    `json:"isActive"`
	Version      int64   `json:"version"` // Optimistic concurrency guard
	AuditFields
}
