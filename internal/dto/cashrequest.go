package dto

import (
	"time"

	"github.com/markpedia/mpos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Cash Request DTOs ---

// BankDetailsDTO carries destination account details for bank transfers.
type BankDetailsDTO struct {
	BankName      string `json:"bankName" binding:"required"`
	AccountName   string `json:"accountName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
}

// MobileMoneyDetailsDTO carries destination wallet details for mobile money.
type MobileMoneyDetailsDTO struct {
	Provider    string `json:"provider" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required,e164"`
}

// CreateCashRequestRequest defines the data for raising a new cash request.
type CreateCashRequestRequest struct {
	AmountRequested     decimal.Decimal        `json:"amountRequested" binding:"required"`
	CurrencyCode        string                 `json:"currencyCode" binding:"omitempty,iso4217"`
	ExpenseCategory     string                 `json:"expenseCategory" binding:"required"`
	BudgetLine          *string                `json:"budgetLine"`
	Purpose             string                 `json:"purpose" binding:"required"`
	NeededBy            *time.Time             `json:"neededBy"`
	DepartmentID        string                 `json:"departmentID" binding:"required"`
	Supervisor          *string                `json:"supervisor"`
	FinanceOfficer      *string                `json:"financeOfficer"`
	CEOApprovalRequired bool                   `json:"ceoApprovalRequired"`
	PaymentMethod       domain.PaymentMethod   `json:"paymentMethodPreferred" binding:"required,oneof=BANK_TRANSFER MOBILE_MONEY CASH"`
	BankDetails         *BankDetailsDTO        `json:"bankDetails"`
	MobileMoneyDetails  *MobileMoneyDetailsDTO `json:"mobileMoneyDetails"`
}

// TransitionRequest carries the optional notes accompanying an approve,
// reject or disburse action.
type TransitionRequest struct {
	Notes string `json:"notes"`
}

// AttachDocumentRequest references an already-uploaded supporting document.
type AttachDocumentRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	StoragePath string `json:"storagePath" binding:"required"`
}

// ListCashRequestsRequest defines query parameters for listing cash requests.
type ListCashRequestsRequest struct {
	Status       string `form:"status"`
	DepartmentID string `form:"departmentID"`
	RequestedBy  string `form:"requestedBy"`
	Limit        int    `form:"limit,default=20"`
	// NextToken is an opaque cursor from a previous listing response.
	NextToken string `form:"nextToken"`
}

// AuditEntryResponse is one audit trail line.
type AuditEntryResponse struct {
	Action      string    `json:"action"`
	PerformedBy string    `json:"performedBy"`
	Notes       string    `json:"notes,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// DocumentRefResponse is one supporting document reference.
type DocumentRefResponse struct {
	DocumentID string    `json:"documentID"`
	FileName   string    `json:"fileName"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// CashRequestResponse defines the data returned for a cash request.
type CashRequestResponse struct {
	RequestID           string                     `json:"requestID"`
	Reference           string                     `json:"reference"`
	AmountRequested     decimal.Decimal            `json:"amountRequested"`
	CurrencyCode        string                     `json:"currencyCode"`
	ExpenseCategory     string                     `json:"expenseCategory"`
	BudgetLine          *string                    `json:"budgetLine,omitempty"`
	Purpose             string                     `json:"purpose"`
	NeededBy            *time.Time                 `json:"neededBy,omitempty"`
	Status              domain.RequestStatus       `json:"status"`
	StatusLabel         string                     `json:"statusLabel"`
	CEOApprovalRequired bool                       `json:"ceoApprovalRequired"`
	RequestedBy         string                     `json:"requestedBy"`
	RequestedByName     string                     `json:"requestedByName"`
	Supervisor          *string                    `json:"supervisor,omitempty"`
	FinanceOfficer      *string                    `json:"financeOfficer,omitempty"`
	DepartmentID        string                     `json:"departmentID"`
	PaymentMethod       domain.PaymentMethod       `json:"paymentMethodPreferred"`
	BankDetails         *domain.BankDetails        `json:"bankDetails,omitempty"`
	MobileMoneyDetails  *domain.MobileMoneyDetails `json:"mobileMoneyDetails,omitempty"`
	AuditTrail          []AuditEntryResponse       `json:"auditTrail,omitempty"`
	SupportingDocuments []DocumentRefResponse      `json:"supportingDocuments,omitempty"`
	Version             int64                      `json:"version"`
	CreatedAt           time.Time                  `json:"createdAt"`
	LastUpdatedAt       time.Time                  `json:"lastUpdatedAt"`
}

// ToCashRequestResponse converts a domain.CashRequest to its response DTO.
func ToCashRequestResponse(r *domain.CashRequest) CashRequestResponse {
	resp := CashRequestResponse{
		RequestID:           r.RequestID,
		Reference:           r.Reference,
		AmountRequested:     r.AmountRequested,
		CurrencyCode:        r.CurrencyCode,
		ExpenseCategory:     r.ExpenseCategory,
		BudgetLine:          r.BudgetLine,
		Purpose:             r.Purpose,
		NeededBy:            r.NeededBy,
		Status:              r.Status,
		StatusLabel:         r.Status.Label(),
		CEOApprovalRequired: r.CEOApprovalRequired,
		RequestedBy:         r.RequestedBy,
		RequestedByName:     r.RequestedByName,
		Supervisor:          r.Supervisor,
		FinanceOfficer:      r.FinanceOfficer,
		DepartmentID:        r.DepartmentID,
		PaymentMethod:       r.PaymentMethod,
		BankDetails:         r.BankDetails,
		MobileMoneyDetails:  r.MobileMoneyDetails,
		Version:             r.Version,
		CreatedAt:           r.CreatedAt,
		LastUpdatedAt:       r.LastUpdatedAt,
	}
	for _, e := range r.AuditTrail {
		resp.AuditTrail = append(resp.AuditTrail, AuditEntryResponse{
			Action:      e.Action,
			PerformedBy: e.PerformedBy,
			Notes:       e.Notes,
			Timestamp:   e.CreatedAt,
		})
	}
	for _, d := range r.SupportingDocuments {
		resp.SupportingDocuments = append(resp.SupportingDocuments, DocumentRefResponse{
			DocumentID: d.DocumentID,
			FileName:   d.FileName,
			UploadedBy: d.UploadedBy,
			UploadedAt: d.UploadedAt,
		})
	}
	return resp
}

// ListCashRequestsResponse wraps a page of cash requests.
type ListCashRequestsResponse struct {
	CashRequests []CashRequestResponse `json:"cashRequests"`
	// NextToken is set when more results are available.
	NextToken string `json:"nextToken,omitempty"`
}

// ToListCashRequestsResponse converts a page of domain requests to the DTO.
func ToListCashRequestsResponse(requests []domain.CashRequest, nextToken string) ListCashRequestsResponse {
	list := make([]CashRequestResponse, len(requests))
	for i := range requests {
		list[i] = ToCashRequestResponse(&requests[i])
	}
	return ListCashRequestsResponse{CashRequests: list, NextToken: nextToken}
}

// ApprovalStepResponse is one step of the resolved approval chain.
type ApprovalStepResponse struct {
	Step  int              `json:"step"`
	Role  domain.UserRole  `json:"role"`
	Label string           `json:"label"`
	State domain.StepState `json:"state"`
}

// ApprovalChainResponse wraps the resolved approval chain of a request.
type ApprovalChainResponse struct {
	RequestID string                 `json:"requestID"`
	Steps     []ApprovalStepResponse `json:"steps"`
}

// ToApprovalChainResponse converts resolved approval steps to the DTO.
func ToApprovalChainResponse(requestID string, steps []domain.ApprovalStep) ApprovalChainResponse {
	out := make([]ApprovalStepResponse, len(steps))
	for i, s := range steps {
		out[i] = ApprovalStepResponse{Step: s.Step, Role: s.Role, Label: s.Label, State: s.State}
	}
	return ApprovalChainResponse{RequestID: requestID, Steps: out}
}

// ToDocumentRefResponse converts a domain.DocumentRef to its response DTO.
func ToDocumentRefResponse(d *domain.DocumentRef) DocumentRefResponse {
	return DocumentRefResponse{
		DocumentID: d.DocumentID,
		FileName:   d.FileName,
		UploadedBy: d.UploadedBy,
		UploadedAt: d.UploadedAt,
	}
}
