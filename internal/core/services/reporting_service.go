package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/markpedia/mpos_backend/internal/apperrors"
	"github.com/markpedia/mpos_backend/internal/core/domain"
	portsrepo "github.com/markpedia/mpos_backend/internal/core/ports/repositories"
	portssvc "github.com/markpedia/mpos_backend/internal/core/ports/services"
	"github.com/markpedia/mpos_backend/internal/dto"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	userRepo      portsrepo.UserReader
}

// NewReportingService creates a new reporting service with the provided dependencies
func NewReportingService(reportingRepo portsrepo.ReportingRepository, userRepo portsrepo.UserReader) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		userRepo:      userRepo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// GetCashRequestSummary returns per-status counts and amount totals over a
// date range. The range upper bound is exclusive.
func (s *reportingService) GetCashRequestSummary(ctx context.Context, req dto.CashRequestSummaryRequest, actorUserID string) (*dto.CashRequestSummaryResponse, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !domain.IsPrivilegedViewer(actor.Role) {
		return nil, fmt.Errorf("%w: reporting requires a finance role", apperrors.ErrForbidden)
	}
	if !req.To.After(req.From) {
		return nil, fmt.Errorf("%w: 'to' must be after 'from'", apperrors.ErrValidation)
	}

	rows, err := s.reportingRepo.SummarizeCashRequests(ctx, req.From, req.To, req.DepartmentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize cash requests",
			slog.Time("from", req.From), slog.Time("to", req.To))
		return nil, err
	}
	return dto.ToCashRequestSummaryResponse(req.From, req.To, rows), nil
}
