package services

import (
	"context"

	"github.com/markpedia/mpos_backend/internal/dto"
)

// ReportingService defines aggregate reporting over cash requests.
type ReportingService interface {
	// GetCashRequestSummary returns per-status counts and amount totals over
	// a date range, optionally narrowed to one department. Privileged
	// viewers only.
	GetCashRequestSummary(ctx context.Context, req dto.CashRequestSummaryRequest, actorUserID string) (*dto.CashRequestSummaryResponse, error)
}
