package services

import (
	"context"

	"github.com/markpedia/mpos_backend/internal/core/domain"
	"github.com/markpedia/mpos_backend/internal/dto"
)

// CashRequestReaderSvc defines read operations for cash requests.
// Every operation takes the acting user's ID; the service resolves the
// actor's role and applies the view guard before returning data.
type CashRequestReaderSvc interface {
	// GetCashRequest retrieves a request with audit trail and documents.
	GetCashRequest(ctx context.Context, requestID string, actorUserID string) (*domain.CashRequest, error)

	// ListCashRequests retrieves requests visible to the actor: privileged
	// roles see everything matching the filter, other users only their own.
	ListCashRequests(ctx context.Context, req dto.ListCashRequestsRequest, actorUserID string) ([]domain.CashRequest, error)

	// ResolveApprovalChain returns the ordered approval steps for a request
	// with each step's progress state.
	ResolveApprovalChain(ctx context.Context, requestID string, actorUserID string) ([]domain.ApprovalStep, error)
}

// CashRequestWriterSvc defines write operations for cash requests.
type CashRequestWriterSvc interface {
	// CreateCashRequest validates and persists a new request. It always
	// enters the workflow at Pending Accountant.
	CreateCashRequest(ctx context.Context, req dto.CreateCashRequestRequest, creatorUserID string) (*domain.CashRequest, error)

	// AttachDocument adds a supporting document reference to a request the
	// actor owns or may act on.
	AttachDocument(ctx context.Context, requestID string, req dto.AttachDocumentRequest, actorUserID string) (*domain.DocumentRef, error)
}

// CashRequestWorkflowSvc drives requests through the approval chain.
type CashRequestWorkflowSvc interface {
	// Transition performs approve/reject/disburse on a request. The guard
	// runs before the state machine; on success the stored request carries
	// the new status and exactly one new audit entry, atomically.
	Transition(ctx context.Context, requestID string, action domain.WorkflowAction, actorUserID string, notes string) (*domain.CashRequest, error)
}

// CashRequestSvcFacade combines all cash-request service interfaces
// This is a facade for clients that need access to all operations
type CashRequestSvcFacade interface {
	CashRequestReaderSvc
	CashRequestWriterSvc
	CashRequestWorkflowSvc
}
