package repositories

import (
	"context"
	"time"

	"github.com/markpedia/mpos_backend/internal/core/domain"
)

// CashRequestFilter narrows a cash request listing. Zero values mean "no filter".
type CashRequestFilter struct {
	Statuses     []domain.RequestStatus
	DepartmentID string
	RequestedBy  string
	CreatedAfter *time.Time
	// Cursor pagination: list requests created strictly before this point,
	// newest first. Empty CreatedBefore means start from the newest.
	CreatedBefore *time.Time
	Limit         int
}

// CashRequestReader defines read operations for cash request data.
type CashRequestReader interface {
	// FindCashRequestByID retrieves a request with its audit trail and
	// supporting documents. Returns apperrors.ErrNotFound if unknown.
	FindCashRequestByID(ctx context.Context, requestID string) (*domain.CashRequest, error)

	// ListCashRequests retrieves requests matching the filter, newest first.
	// Audit trails and documents are not loaded for listings.
	ListCashRequests(ctx context.Context, filter CashRequestFilter) ([]domain.CashRequest, error)

	// NextReferenceSeq reserves the next value of the per-year reference sequence.
	NextReferenceSeq(ctx context.Context, year int) (int64, error)
}

// CashRequestWriter defines write operations for cash request data.
type CashRequestWriter interface {
	// SaveCashRequest persists a new request. The audit trail starts empty;
	// entries are appended only by status transitions.
	SaveCashRequest(ctx context.Context, req domain.CashRequest) error

	// UpdateCashRequestStatus atomically moves the request to newStatus and
	// appends the audit entry, guarded by the request's version. A stale
	// version fails with apperrors.ErrConcurrentModification and leaves the
	// stored request untouched.
	UpdateCashRequestStatus(ctx context.Context, req *domain.CashRequest, newStatus domain.RequestStatus, entry domain.AuditEntry) error

	// AddDocument attaches a supporting document reference to the request.
	AddDocument(ctx context.Context, doc domain.DocumentRef) error
}

// CashRequestRepositoryFacade combines all cash request repository interfaces
type CashRequestRepositoryFacade interface {
	CashRequestReader
	CashRequestWriter
}

// CashRequestRepositoryWithTx extends the facade with transaction capabilities
type CashRequestRepositoryWithTx interface {
	CashRequestRepositoryFacade
	TransactionManager
}
