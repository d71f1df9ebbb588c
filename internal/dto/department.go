package dto

import (
	"time"

	"github.com/markpedia/mpos_backend/internal/core/domain"
)

// CreateDepartmentRequest defines data for creating a new department.
type CreateDepartmentRequest struct {
	Name       string  `json:"name" binding:"required"`
	CostCenter *string `json:"costCenter"`
	ManagerID  *string `json:"managerID"`
}

// DepartmentResponse defines data returned for a department.
type DepartmentResponse struct {
	DepartmentID string    `json:"departmentID"`
	Name         string    `json:"name"`
	CostCenter   *string   `json:"costCenter,omitempty"`
	ManagerID    *string   `json:"managerID,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
}

// ToDepartmentResponse converts domain.Department to DTO.
func ToDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		DepartmentID: d.DepartmentID,
		Name:         d.Name,
		CostCenter:   d.CostCenter,
		ManagerID:    d.ManagerID,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		CreatedBy:    d.CreatedBy,
	}
}

// ListDepartmentsResponse wraps a list of departments.
type ListDepartmentsResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}

// ToListDepartmentsResponse converts a slice of domain.Department to DTO.
func ToListDepartmentsResponse(ds []domain.Department) ListDepartmentsResponse {
	list := make([]DepartmentResponse, len(ds))
	for i := range ds {
		list[i] = ToDepartmentResponse(&ds[i])
	}
	return ListDepartmentsResponse{Departments: list}
}
