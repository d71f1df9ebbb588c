package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/markpedia/mpos_backend/internal/core/domain"
	portsrepo "github.com/markpedia/mpos_backend/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SummarizeCashRequests aggregates requests created in [from, to) into
// per-status, per-department buckets.
func (r *reportingRepository) SummarizeCashRequests(ctx context.Context, from, to time.Time, departmentID string) ([]domain.CashRequestSummaryRow, error) {
	query := `
		SELECT
			status,
			department_id,
			currency_code,
			COUNT(*) AS request_count,
			SUM(amount_requested) AS total_amount
		FROM cash_requests
		WHERE created_at >= $1
			AND created_at < $2
			AND ($3 = '' OR department_id = $3)
		GROUP BY status, department_id, currency_code
		ORDER BY status, department_id
	`

	rows, err := r.Pool.Query(ctx, query, from, to, departmentID)
	if err != nil {
		return nil, fmt.Errorf("error querying cash request summary: %w", err)
	}
	defer rows.Close()

	var result []domain.CashRequestSummaryRow
	for rows.Next() {
		var row domain.CashRequestSummaryRow
		if err := rows.Scan(
			&row.Status,
			&row.DepartmentID,
			&row.CurrencyCode,
			&row.Count,
			&row.TotalAmount,
		); err != nil {
			return nil, fmt.Errorf("error scanning cash request summary row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash request summary rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.CashRequestSummaryRow{}, nil
	}

	return result, nil
}
