package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markpedia/mpos_backend/internal/apperrors"
	"github.com/markpedia/mpos_backend/internal/core/domain"
	portsrepo "github.com/markpedia/mpos_backend/internal/core/ports/repositories"
	portssvc "github.com/markpedia/mpos_backend/internal/core/ports/services"
	"github.com/markpedia/mpos_backend/internal/dto"
	"github.com/markpedia/mpos_backend/internal/utils/pagination"
)

const defaultCurrencyCode = "XAF"

var (
	ErrAmountNotPositive  = fmt.Errorf("%w: amount requested must be positive", apperrors.ErrValidation)
	ErrDepartmentInactive = fmt.Errorf("%w: department is not active", apperrors.ErrValidation)
	ErrRequestFinalized   = fmt.Errorf("%w: request is in a terminal state", apperrors.ErrInvalidTransition)
)

// cashRequestService implements the CashRequestSvcFacade interface. It owns
// the approval workflow: the authorization guard runs first, the status state
// machine second, and the repository applies the status change and audit
// entry atomically.
type cashRequestService struct {
	BaseService
	requestRepo    portsrepo.CashRequestRepositoryFacade
	userRepo       portsrepo.UserReader
	departmentRepo portsrepo.DepartmentReader
}

// NewCashRequestService creates a new cash request service with the provided dependencies
func NewCashRequestService(
	requestRepo portsrepo.CashRequestRepositoryFacade,
	userRepo portsrepo.UserReader,
	departmentRepo portsrepo.DepartmentReader,
) portssvc.CashRequestSvcFacade {
	return &cashRequestService{
		requestRepo:    requestRepo,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
	}
}

// Ensure cashRequestService implements the CashRequestSvcFacade interface
var _ portssvc.CashRequestSvcFacade = (*cashRequestService)(nil)

// actor resolves the acting user. An unknown actor is an authentication
// problem, not a missing resource.
func (s *cashRequestService) actor(ctx context.Context, actorUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to resolve acting user: %w", err)
	}
	return user, nil
}

// CreateCashRequest validates and persists a new request. Requests always
// enter the workflow at Pending Accountant.
func (s *cashRequestService) CreateCashRequest(ctx context.Context, req dto.CreateCashRequestRequest, creatorUserID string) (*domain.CashRequest, error) {
	creator, err := s.actor(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}

	if req.AmountRequested.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrAmountNotPositive, req.AmountRequested.String())
	}

	department, err := s.departmentRepo.FindDepartmentByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: department %s", apperrors.ErrValidation, req.DepartmentID)
		}
		return nil, err
	}
	if !department.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrDepartmentInactive, department.Name)
	}

	now := time.Now().UTC()
	currency := req.CurrencyCode
	if currency == "" {
		currency = defaultCurrencyCode
	}

	seq, err := s.requestRepo.NextReferenceSeq(ctx, now.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to reserve request reference: %w", err)
	}

	request := domain.CashRequest{
		RequestID:           uuid.NewString(),
		Reference:           fmt.Sprintf("CR-%d-%06d", now.Year(), seq),
		AmountRequested:     req.AmountRequested,
		CurrencyCode:        currency,
		ExpenseCategory:     req.ExpenseCategory,
		BudgetLine:          req.BudgetLine,
		Purpose:             req.Purpose,
		NeededBy:            req.NeededBy,
		Status:              domain.StatusPendingAccountant,
		CEOApprovalRequired: req.CEOApprovalRequired,
		RequestedBy:         creator.UserID,
		RequestedByName:     creator.Name,
		Supervisor:          req.Supervisor,
		FinanceOfficer:      req.FinanceOfficer,
		DepartmentID:        department.DepartmentID,
		PaymentMethod:       req.PaymentMethod,
		Version:             1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creator.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creator.UserID,
		},
	}
	if req.BankDetails != nil {
		request.BankDetails = &domain.BankDetails{
			BankName:      req.BankDetails.BankName,
			AccountName:   req.BankDetails.AccountName,
			AccountNumber: req.BankDetails.AccountNumber,
		}
	}
	if req.MobileMoneyDetails != nil {
		request.MobileMoneyDetails = &domain.MobileMoneyDetails{
			Provider:    req.MobileMoneyDetails.Provider,
			PhoneNumber: req.MobileMoneyDetails.PhoneNumber,
		}
	}

	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.requestRepo.SaveCashRequest(ctx, request); err != nil {
		s.LogError(ctx, err, "Failed to save cash request",
			slog.String("reference", request.Reference))
		return nil, err
	}

	s.LogInfo(ctx, "Cash request created",
		slog.String("request_id", request.RequestID),
		slog.String("reference", request.Reference),
		slog.String("amount", request.AmountRequested.String()),
		slog.Bool("ceo_approval_required", request.CEOApprovalRequired))
	return &request, nil
}

// GetCashRequest retrieves a request after applying the view guard.
func (s *cashRequestService) GetCashRequest(ctx context.Context, requestID string, actorUserID string) (*domain.CashRequest, error) {
	request, err := s.requestRepo.FindCashRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	actor, err := s.actor(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	if !domain.CanView(request, actor) {
		// Fail without leaking request details.
		return nil, apperrors.ErrForbidden
	}
	return request, nil
}

// ListCashRequests lists requests visible to the actor, newest first.
func (s *cashRequestService) ListCashRequests(ctx context.Context, req dto.ListCashRequestsRequest, actorUserID string) ([]domain.CashRequest, error) {
	actor, err := s.actor(ctx, actorUserID)
	if err != nil {
		return nil, err
	}

	filter := portsrepo.CashRequestFilter{
		DepartmentID: req.DepartmentID,
		RequestedBy:  req.RequestedBy,
		Limit:        req.Limit,
	}
	if req.Status != "" {
		filter.Statuses = []domain.RequestStatus{domain.RequestStatus(req.Status)}
	}
	// Non-privileged actors only ever see their own requests.
	if !domain.IsPrivilegedViewer(actor.Role) {
		filter.RequestedBy = actor.UserID
	}
	if req.NextToken != "" {
		before, err := pagination.DecodeDateBasedToken(req.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.CreatedBefore = &before
	}

	requests, err := s.requestRepo.ListCashRequests(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash requests")
		return nil, err
	}
	return requests, nil
}

// ResolveApprovalChain returns the ordered approval steps for a request.
func (s *cashRequestService) ResolveApprovalChain(ctx context.Context, requestID string, actorUserID string) ([]domain.ApprovalStep, error) {
	request, err := s.GetCashRequest(ctx, requestID, actorUserID)
	if err != nil {
		return nil, err
	}
	return domain.ResolveChain(request), nil
}

// Transition performs approve/reject/disburse on a request. The guard runs
// before the state machine; no mutation is attempted on guard failure. The
// repository applies the status change and audit entry atomically, guarded
// by the request version; a concurrent writer surfaces as
// apperrors.ErrConcurrentModification with the stored request untouched.
func (s *cashRequestService) Transition(ctx context.Context, requestID string, action domain.WorkflowAction, actorUserID string, notes string) (*domain.CashRequest, error) {
	request, err := s.requestRepo.FindCashRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	actor, err := s.actor(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	if !domain.CanView(request, actor) {
		return nil, apperrors.ErrForbidden
	}

	requiredRole, ok := domain.RequiredRole(request)
	if !ok {
		return nil, fmt.Errorf("%w: request %s is %s", apperrors.ErrInvalidTransition, request.Reference, request.Status.Label())
	}
	// Check the action is legal from this status before checking the actor,
	// so a wrong actor on a wrong action reports the transition problem.
	newStatus, err := domain.NextStatus(request, action, requiredRole)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot %s a %s request", apperrors.ErrInvalidTransition, action, request.Status.Label())
	}
	if actor.Role != requiredRole {
		s.LogInfo(ctx, "Workflow action denied",
			slog.String("request_id", request.RequestID),
			slog.String("action", string(action)),
			slog.String("actor_role", string(actor.Role)),
			slog.String("required_role", string(requiredRole)))
		return nil, fmt.Errorf("%w: %s action requires role %s", apperrors.ErrForbidden, action, requiredRole)
	}

	entry := domain.AuditEntry{
		EntryID:     uuid.NewString(),
		RequestID:   request.RequestID,
		Action:      domain.AuditActionLabel(action, actor.Role),
		PerformedBy: actor.UserID,
		Notes:       notes,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.requestRepo.UpdateCashRequestStatus(ctx, request, newStatus, entry); err != nil {
		if errors.Is(err, apperrors.ErrConcurrentModification) {
			s.LogInfo(ctx, "Concurrent transition lost",
				slog.String("request_id", request.RequestID),
				slog.Int64("version", request.Version))
		} else {
			s.LogError(ctx, err, "Failed to apply transition",
				slog.String("request_id", request.RequestID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Cash request transitioned",
		slog.String("request_id", request.RequestID),
		slog.String("action", entry.Action),
		slog.String("new_status", string(newStatus)))
	return request, nil
}

// AttachDocument adds a supporting document reference to a live request.
func (s *cashRequestService) AttachDocument(ctx context.Context, requestID string, req dto.AttachDocumentRequest, actorUserID string) (*domain.DocumentRef, error) {
	request, err := s.GetCashRequest(ctx, requestID, actorUserID)
	if err != nil {
		return nil, err
	}
	if request.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", ErrRequestFinalized, request.Status.Label())
	}

	doc := domain.DocumentRef{
		DocumentID:  uuid.NewString(),
		RequestID:   request.RequestID,
		FileName:    req.FileName,
		StoragePath: req.StoragePath,
		UploadedBy:  actorUserID,
		UploadedAt:  time.Now().UTC(),
	}
	if err := s.requestRepo.AddDocument(ctx, doc); err != nil {
		s.LogError(ctx, err, "Failed to attach document",
			slog.String("request_id", request.RequestID))
		return nil, err
	}
	return &doc, nil
}
