package repositories

import (
	"context"

	"github.com/markpedia/mpos_backend/internal/core/domain"
)

// DepartmentReader defines read operations for department data
type DepartmentReader interface {
	FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)
	ListDepartments(ctx context.Context, includeInactive bool) ([]domain.Department, error)
}

// DepartmentWriter defines write operations for department data
type DepartmentWriter interface {
	SaveDepartment(ctx context.Context, department domain.Department) error
	// SetDepartmentActive toggles the active flag, guarded by the version column.
	SetDepartmentActive(ctx context.Context, department *domain.Department, isActive bool, updatedByUserID string) error
}

// DepartmentRepositoryFacade combines all department repository interfaces
type DepartmentRepositoryFacade interface {
	DepartmentReader
	DepartmentWriter
}
