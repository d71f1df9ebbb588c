package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/markpedia/mpos_backend/internal/apperrors"
	"github.com/markpedia/mpos_backend/internal/core/domain"
	portsrepo "github.com/markpedia/mpos_backend/internal/core/ports/repositories"
)

type PgxDepartmentRepository struct {
	BaseRepository
}

func newPgxDepartmentRepository(db *pgxpool.Pool) portsrepo.DepartmentRepositoryFacade {
	return &PgxDepartmentRepository{BaseRepository{Pool: db}}
}

// Ensure PgxDepartmentRepository implements portsrepo.DepartmentRepositoryFacade
var _ portsrepo.DepartmentRepositoryFacade = (*PgxDepartmentRepository)(nil)

const departmentColumns = `department_id, name, cost_center, manager_id, is_active, version,
	created_at, created_by, last_updated_at, last_updated_by`

func scanDepartment(row pgx.Row) (*domain.Department, error) {
	var d domain.Department
	err := row.Scan(
		&d.DepartmentID,
		&d.Name,
		&d.CostCenter,
		&d.ManagerID,
		&d.IsActive,
		&d.Version,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	query := fmt.Sprintf(`SELECT %s FROM departments WHERE department_id = $1;`, departmentColumns)
	department, err := scanDepartment(r.Pool.QueryRow(ctx, query, departmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find department %s: %w", departmentID, err)
	}
	return department, nil
}

func (r *PgxDepartmentRepository) ListDepartments(ctx context.Context, includeInactive bool) ([]domain.Department, error) {
	query := fmt.Sprintf(`SELECT %s FROM departments ORDER BY name ASC;`, departmentColumns)
	if !includeInactive {
		query = fmt.Sprintf(`SELECT %s FROM departments WHERE is_active ORDER BY name ASC;`, departmentColumns)
	}
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	departments := []domain.Department{}
	for rows.Next() {
		department, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department row: %w", err)
		}
		departments = append(departments, *department)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating department rows: %w", err)
	}
	return departments, nil
}

func (r *PgxDepartmentRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	query := `
        INSERT INTO departments (department_id, name, cost_center, manager_id, is_active, version,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.Pool.Exec(ctx, query,
		department.DepartmentID,
		department.Name,
		department.CostCenter,
		department.ManagerID,
		department.IsActive,
		department.Version,
		department.CreatedAt,
		department.CreatedBy,
		department.LastUpdatedAt,
		department.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: department name already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save department: %w", err)
	}
	return nil
}

func (r *PgxDepartmentRepository) SetDepartmentActive(ctx context.Context, department *domain.Department, isActive bool, updatedByUserID string) error {
	now := time.Now().UTC()
	query := `
        UPDATE departments SET
            is_active = $2,
            version = version + 1,
            last_updated_at = $3,
            last_updated_by = $4
        WHERE department_id = $1 AND version = $5;
    `
	tag, err := r.Pool.Exec(ctx, query,
		department.DepartmentID,
		isActive,
		now,
		updatedByUserID,
		department.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update department %s active flag: %w", department.DepartmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: department %s was modified concurrently", apperrors.ErrConcurrentModification, department.DepartmentID)
	}

	department.IsActive = isActive
	department.Version++
	department.LastUpdatedAt = now
	department.LastUpdatedBy = updatedByUserID
	return nil
}
