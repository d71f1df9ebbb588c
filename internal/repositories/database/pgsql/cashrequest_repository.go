package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/markpedia/mpos_backend/internal/apperrors"
	"github.com/markpedia/mpos_backend/internal/core/domain"
	portsrepo "github.com/markpedia/mpos_backend/internal/core/ports/repositories"
)

type PgxCashRequestRepository struct {
	BaseRepository
}

func newPgxCashRequestRepository(db *pgxpool.Pool) portsrepo.CashRequestRepositoryWithTx {
	return &PgxCashRequestRepository{BaseRepository{Pool: db}}
}

// Ensure PgxCashRequestRepository implements the port including transactions
var _ portsrepo.CashRequestRepositoryWithTx = (*PgxCashRequestRepository)(nil)

const cashRequestColumns = `request_id, reference, amount_requested, currency_code, expense_category,
	budget_line, purpose, needed_by, status, ceo_approval_required,
	requested_by, requested_by_name, supervisor, finance_officer, department_id,
	payment_method, bank_name, bank_account_name, bank_account_number,
	momo_provider, momo_phone_number, version,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCashRequest(row pgx.Row) (*domain.CashRequest, error) {
	var req domain.CashRequest
	var bankName, bankAccountName, bankAccountNumber *string
	var momoProvider, momoPhoneNumber *string
	err := row.Scan(
		&req.RequestID,
		&req.Reference,
		&req.AmountRequested,
		&req.CurrencyCode,
		&req.ExpenseCategory,
		&req.BudgetLine,
		&req.Purpose,
		&req.NeededBy,
		&req.Status,
		&req.CEOApprovalRequired,
		&req.RequestedBy,
		&req.RequestedByName,
		&req.Supervisor,
		&req.FinanceOfficer,
		&req.DepartmentID,
		&req.PaymentMethod,
		&bankName,
		&bankAccountName,
		&bankAccountNumber,
		&momoProvider,
		&momoPhoneNumber,
		&req.Version,
		&req.CreatedAt,
		&req.CreatedBy,
		&req.LastUpdatedAt,
		&req.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if bankName != nil {
		req.BankDetails = &domain.BankDetails{
			BankName:      *bankName,
			AccountNumber: *bankAccountNumber,
		}
		if bankAccountName != nil {
			req.BankDetails.AccountName = *bankAccountName
		}
	}
	if momoProvider != nil {
		req.MobileMoneyDetails = &domain.MobileMoneyDetails{
			Provider:    *momoProvider,
			PhoneNumber: *momoPhoneNumber,
		}
	}
	return &req, nil
}

func (r *PgxCashRequestRepository) FindCashRequestByID(ctx context.Context, requestID string) (*domain.CashRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM cash_requests WHERE request_id = $1;`, cashRequestColumns)
	req, err := scanCashRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash request %s: %w", requestID, err)
	}

	auditTrail, err := r.loadAuditTrail(ctx, requestID)
	if err != nil {
		return nil, err
	}
	req.AuditTrail = auditTrail

	documents, err := r.loadDocuments(ctx, requestID)
	if err != nil {
		return nil, err
	}
	req.SupportingDocuments = documents

	return req, nil
}

func (r *PgxCashRequestRepository) loadAuditTrail(ctx context.Context, requestID string) ([]domain.AuditEntry, error) {
	query := `
        SELECT entry_id, request_id, action, performed_by, notes, created_at
        FROM cash_request_audit
        WHERE request_id = $1
        ORDER BY created_at ASC, entry_id ASC;
    `
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit trail for %s: %w", requestID, err)
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.EntryID, &e.RequestID, &e.Action, &e.PerformedBy, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit entries: %w", err)
	}
	return entries, nil
}

func (r *PgxCashRequestRepository) loadDocuments(ctx context.Context, requestID string) ([]domain.DocumentRef, error) {
	query := `
        SELECT document_id, request_id, file_name, storage_path, uploaded_by, uploaded_at
        FROM cash_request_documents
        WHERE request_id = $1
        ORDER BY uploaded_at ASC;
    `
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents for %s: %w", requestID, err)
	}
	defer rows.Close()

	docs := []domain.DocumentRef{}
	for rows.Next() {
		var d domain.DocumentRef
		if err := rows.Scan(&d.DocumentID, &d.RequestID, &d.FileName, &d.StoragePath, &d.UploadedBy, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document ref: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document refs: %w", err)
	}
	return docs, nil
}

func (r *PgxCashRequestRepository) ListCashRequests(ctx context.Context, filter portsrepo.CashRequestFilter) ([]domain.CashRequest, error) {
	conditions := []string{}
	args := []any{}
	argPos := 1

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", argPos))
		args = append(args, statuses)
		argPos++
	}
	if filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("department_id = $%d", argPos))
		args = append(args, filter.DepartmentID)
		argPos++
	}
	if filter.RequestedBy != "" {
		conditions = append(conditions, fmt.Sprintf("requested_by = $%d", argPos))
		args = append(args, filter.RequestedBy)
		argPos++
	}
	if filter.CreatedAfter != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argPos))
		args = append(args, *filter.CreatedAfter)
		argPos++
	}
	if filter.CreatedBefore != nil {
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", argPos))
		args = append(args, *filter.CreatedBefore)
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
        SELECT %s FROM cash_requests
        %s
        ORDER BY created_at DESC
        LIMIT $%d;
    `, cashRequestColumns, where, argPos)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.CashRequest{}
	for rows.Next() {
		req, err := scanCashRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash request row: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash request rows: %w", err)
	}
	return requests, nil
}

func (r *PgxCashRequestRepository) NextReferenceSeq(ctx context.Context, year int) (int64, error) {
	query := `
        INSERT INTO cash_request_reference_seq (year, seq)
        VALUES ($1, 1)
        ON CONFLICT (year) DO UPDATE SET seq = cash_request_reference_seq.seq + 1
        RETURNING seq;
    `
	var seq int64
	if err := r.Pool.QueryRow(ctx, query, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to reserve reference sequence for %d: %w", year, err)
	}
	return seq, nil
}

func (r *PgxCashRequestRepository) SaveCashRequest(ctx context.Context, req domain.CashRequest) error {
	var bankName, bankAccountName, bankAccountNumber *string
	if req.BankDetails != nil {
		bankName = &req.BankDetails.BankName
		bankAccountName = &req.BankDetails.AccountName
		bankAccountNumber = &req.BankDetails.AccountNumber
	}
	var momoProvider, momoPhoneNumber *string
	if req.MobileMoneyDetails != nil {
		momoProvider = &req.MobileMoneyDetails.Provider
		momoPhoneNumber = &req.MobileMoneyDetails.PhoneNumber
	}

	query := `
        INSERT INTO cash_requests (
            request_id, reference, amount_requested, currency_code, expense_category,
            budget_line, purpose, needed_by, status, ceo_approval_required,
            requested_by, requested_by_name, supervisor, finance_officer, department_id,
            payment_method, bank_name, bank_account_name, bank_account_number,
            momo_provider, momo_phone_number, version,
            created_at, created_by, last_updated_at, last_updated_by
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
            $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
            $21, $22, $23, $24, $25, $26
        );
    `
	_, err := r.Pool.Exec(ctx, query,
		req.RequestID, req.Reference, req.AmountRequested, req.CurrencyCode, req.ExpenseCategory,
		req.BudgetLine, req.Purpose, req.NeededBy, req.Status, req.CEOApprovalRequired,
		req.RequestedBy, req.RequestedByName, req.Supervisor, req.FinanceOfficer, req.DepartmentID,
		req.PaymentMethod, bankName, bankAccountName, bankAccountNumber,
		momoProvider, momoPhoneNumber, req.Version,
		req.CreatedAt, req.CreatedBy, req.LastUpdatedAt, req.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cash request reference already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save cash request: %w", err)
	}
	return nil
}

// UpdateCashRequestStatus applies the status change and appends the audit
// entry in one transaction. The UPDATE is guarded by the version column; a
// stale version touches zero rows and the transaction is abandoned.
func (r *PgxCashRequestRepository) UpdateCashRequestStatus(ctx context.Context, req *domain.CashRequest, newStatus domain.RequestStatus, entry domain.AuditEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	updateQuery := `
        UPDATE cash_requests SET
            status = $2,
            version = version + 1,
            last_updated_at = $3,
            last_updated_by = $4
        WHERE request_id = $1 AND version = $5;
    `
	tag, err := tx.Exec(ctx, updateQuery,
		req.RequestID,
		newStatus,
		entry.CreatedAt,
		entry.PerformedBy,
		req.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update cash request %s status: %w", req.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the request vanished or someone else advanced it first.
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cash_requests WHERE request_id = $1);`, req.RequestID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check cash request %s existence: %w", req.RequestID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: cash request %s was modified concurrently", apperrors.ErrConcurrentModification, req.RequestID)
	}

	auditQuery := `
        INSERT INTO cash_request_audit (entry_id, request_id, action, performed_by, notes, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	if _, err := tx.Exec(ctx, auditQuery,
		entry.EntryID, entry.RequestID, entry.Action, entry.PerformedBy, entry.Notes, entry.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to append audit entry for %s: %w", req.RequestID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	req.Status = newStatus
	req.Version++
	req.LastUpdatedAt = entry.CreatedAt
	req.LastUpdatedBy = entry.PerformedBy
	req.AuditTrail = append(req.AuditTrail, entry)
	return nil
}

func (r *PgxCashRequestRepository) AddDocument(ctx context.Context, doc domain.DocumentRef) error {
	query := `
        INSERT INTO cash_request_documents (document_id, request_id, file_name, storage_path, uploaded_by, uploaded_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.Pool.Exec(ctx, query,
		doc.DocumentID, doc.RequestID, doc.FileName, doc.StoragePath, doc.UploadedBy, doc.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add document to request %s: %w", doc.RequestID, err)
	}
	return nil
}
