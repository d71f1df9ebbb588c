package repositories

import (
	"context"
	"time"

	"github.com/markpedia/mpos_backend/internal/core/domain"
)

// ReportingRepository defines read-only aggregate queries over cash requests.
type ReportingRepository interface {
	// SummarizeCashRequests returns per-status counts and amount totals for
	// requests created in [from, to). departmentID narrows to one department
	// when non-empty.
	SummarizeCashRequests(ctx context.Context, from, to time.Time, departmentID string) ([]domain.CashRequestSummaryRow, error)
}
