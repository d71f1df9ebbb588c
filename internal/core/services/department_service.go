package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/markpedia/mpos_backend/internal/apperrors"
	"github.com/markpedia/mpos_backend/internal/core/domain"
	portsrepo "github.com/markpedia/mpos_backend/internal/core/ports/repositories"
	portssvc "github.com/markpedia/mpos_backend/internal/core/ports/services"
	"github.com/markpedia/mpos_backend/internal/dto"
)

// departmentService implements the DepartmentSvcFacade interface
type departmentService struct {
	BaseService
	departmentRepo portsrepo.DepartmentRepositoryFacade
	userRepo       portsrepo.UserReader
}

// NewDepartmentService creates a new department service with the provided dependencies
func NewDepartmentService(departmentRepo portsrepo.DepartmentRepositoryFacade, userRepo portsrepo.UserReader) portssvc.DepartmentSvcFacade {
	return &departmentService{
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
	}
}

// Ensure departmentService implements the DepartmentSvcFacade interface
var _ portssvc.DepartmentSvcFacade = (*departmentService)(nil)

func (s *departmentService) requireAdmin(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUnauthorized
		}
		return err
	}
	if user.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	return nil
}

// GetDepartmentByID retrieves a department by ID.
func (s *departmentService) GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	department, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find department", slog.String("department_id", departmentID))
		}
		return nil, err
	}
	return department, nil
}

// ListDepartments retrieves all departments.
func (s *departmentService) ListDepartments(ctx context.Context, includeInactive bool) ([]domain.Department, error) {
	departments, err := s.departmentRepo.ListDepartments(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list departments")
		return nil, err
	}
	if departments == nil {
		return []domain.Department{}, nil
	}
	return departments, nil
}

// CreateDepartment persists a new department. Admin only.
func (s *departmentService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, creatorUserID string) (*domain.Department, error) {
	if err := s.requireAdmin(ctx, creatorUserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	department := domain.Department{
		DepartmentID: uuid.NewString(),
		Name:         req.Name,
		CostCenter:   req.CostCenter,
		ManagerID:    req.ManagerID,
		IsActive:     true,
		Version:      1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.departmentRepo.SaveDepartment(ctx, department); err != nil {
		s.LogError(ctx, err, "Failed to save department", slog.String("name", req.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Department created", slog.String("department_id", department.DepartmentID))
	return &department, nil
}

// DeactivateDepartment marks a department inactive. Admin only.
func (s *departmentService) DeactivateDepartment(ctx context.Context, departmentID string, requestingUserID string) error {
	if err := s.requireAdmin(ctx, requestingUserID); err != nil {
		return err
	}
	department, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return err
	}
	if err := s.departmentRepo.SetDepartmentActive(ctx, department, false, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate department", slog.String("department_id", departmentID))
		return err
	}
	s.LogInfo(ctx, "Department deactivated", slog.String("department_id", departmentID))
	return nil
}
