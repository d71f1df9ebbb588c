package services

import (
	"context"

	"github.com/markpedia/mpos_backend/internal/core/domain"
	"github.com/markpedia/mpos_backend/internal/dto"
)

// DepartmentReaderSvc defines read operations for department data
type DepartmentReaderSvc interface {
	// GetDepartmentByID retrieves a department by ID.
	GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)

	// ListDepartments retrieves all departments, optionally including inactive ones.
	ListDepartments(ctx context.Context, includeInactive bool) ([]domain.Department, error)
}

// DepartmentWriterSvc defines write operations for department data
type DepartmentWriterSvc interface {
	// CreateDepartment persists a new department. Admin only.
	CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, creatorUserID string) (*domain.Department, error)

	// DeactivateDepartment marks a department inactive. Admin only.
	DeactivateDepartment(ctx context.Context, departmentID string, requestingUserID string) error
}

// DepartmentSvcFacade combines all department-related service interfaces
type DepartmentSvcFacade interface {
	DepartmentReaderSvc
	DepartmentWriterSvc
}
