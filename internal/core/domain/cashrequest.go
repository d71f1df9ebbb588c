package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus indicates where a cash request sits in its approval chain.
type RequestStatus string

const (
	StatusPendingAccountant RequestStatus = "PENDING_ACCOUNTANT"
	StatusPendingCFO        RequestStatus = "PENDING_CFO"
	StatusPendingCEO        RequestStatus = "PENDING_CEO"
	StatusApproved          RequestStatus = "APPROVED"
	StatusPaid              RequestStatus = "PAID"
	StatusDeclined          RequestStatus = "DECLINED"
)

// IsTerminal reports whether no further transition is permitted from this status.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusDeclined
}

// Label returns the human-readable form used in audit trail entries and UIs.
func (s RequestStatus) Label() string {
	switch s {
	case StatusPendingAccountant:
		return "Pending Accountant"
	case StatusPendingCFO:
		return "Pending CFO"
	case StatusPendingCEO:
		return "Pending CEO"
	case StatusApproved:
		return "Approved"
	case StatusPaid:
		return "Paid"
	case StatusDeclined:
		return "Declined"
	default:
		return string(s)
	}
}

// WorkflowAction is an operation an actor performs on a cash request.
type WorkflowAction string

const (
	ActionApprove  WorkflowAction = "approve"
	ActionReject   WorkflowAction = "reject"
	ActionDisburse WorkflowAction = "disburse"
)

// PaymentMethod is the staff member's preferred disbursement channel.
type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PaymentCash         PaymentMethod = "CASH"
)

// BankDetails holds the destination account for bank transfer disbursements.
type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
}

// MobileMoneyDetails holds the destination wallet for mobile money disbursements.
type MobileMoneyDetails struct {
	Provider    string `json:"provider"`
	PhoneNumber string `json:"phoneNumber"`
}

// AuditEntry is one immutable record in a cash request's audit trail.
type AuditEntry struct {
	EntryID     string    `json:"entryID"` // Primary Key (UUID)
	RequestID   string    `json:"requestID"`
	Action      string    `json:"action"` // e.g. "Approved by Accountant"
	PerformedBy string    `json:"performedBy"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DocumentRef is an opaque reference to a supporting document (invoice,
// quotation, receipt). The file itself lives in external storage.
type DocumentRef struct {
	DocumentID  string    `json:"documentID"` // Primary Key (UUID)
	RequestID   string    `json:"requestID"`
	FileName    string    `json:"fileName"`
	StoragePath string    `json:"storagePath"`
	UploadedBy  string    `json:"uploadedBy"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// CashRequest represents one internal disbursement request moving through
// the approval chain.
type CashRequest struct {
	RequestID string `json:"requestID"` // Primary Key (UUID)
	Reference string `json:"reference"` // Human-readable, e.g. CR-2025-000123

	AmountRequested decimal.Decimal `json:"amountRequested"`
	CurrencyCode    string          `json:"currencyCode"` // Default XAF
	ExpenseCategory string          `json:"expenseCategory"`
	BudgetLine      *string         `json:"budgetLine,omitempty"`
	Purpose         string          `json:"purpose"`
	NeededBy        *time.Time      `json:"neededBy,omitempty"`

	Status              RequestStatus `json:"status"`
	CEOApprovalRequired bool          `json:"ceoApprovalRequired"` // Fixed at creation

	RequestedBy     string  `json:"requestedBy"` // UserID of the owner
	RequestedByName string  `json:"requestedByName"`
	Supervisor      *string `json:"supervisor,omitempty"`
	FinanceOfficer  *string `json:"financeOfficer,omitempty"`
	DepartmentID    string  `json:"departmentID"`

	PaymentMethod      PaymentMethod       `json:"paymentMethodPreferred"`
	BankDetails        *BankDetails        `json:"bankDetails,omitempty"`
	MobileMoneyDetails *MobileMoneyDetails `json:"mobileMoneyDetails,omitempty"`

	AuditTrail          []AuditEntry  `json:"auditTrail,omitempty"`
	SupportingDocuments []DocumentRef `json:"supportingDocuments,omitempty"`

	Version int64 `json:"version"` // Optimistic concurrency guard
	AuditFields
}

// Validate checks the structural invariants of a cash request: a positive
// amount and exactly one payment detail group, matching the chosen method.
func (r *CashRequest) Validate() error {
	if r.AmountRequested.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount requested must be positive, got %s", r.AmountRequested.String())
	}
	if r.RequestedBy == "" {
		return fmt.Errorf("requestedBy is required")
	}
	switch r.PaymentMethod {
	case PaymentBankTransfer:
		if r.BankDetails == nil || r.MobileMoneyDetails != nil {
			return fmt.Errorf("bank transfer requests must carry bank details and nothing else")
		}
		if r.BankDetails.BankName == "" || r.BankDetails.AccountNumber == "" {
			return fmt.Errorf("bank name and account number are required for bank transfers")
		}
	case PaymentMobileMoney:
		if r.MobileMoneyDetails == nil || r.BankDetails != nil {
			return fmt.Errorf("mobile money requests must carry mobile money details and nothing else")
		}
		if r.MobileMoneyDetails.Provider == "" || r.MobileMoneyDetails.PhoneNumber == "" {
			return fmt.Errorf("provider and phone number are required for mobile money")
		}
	case PaymentCash:
		if r.BankDetails != nil || r.MobileMoneyDetails != nil {
			return fmt.Errorf("cash requests must not carry payment details")
		}
	default:
		return fmt.Errorf("unknown payment method %q", r.PaymentMethod)
	}
	return nil
}

// IsOwner reports whether the given user raised this request.
func (r *CashRequest) IsOwner(userID string) bool {
	return r.RequestedBy == userID
}
