package dto

import (
	"time"

	"github.com/markpedia/mpos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashRequestSummaryRequest defines query parameters for the summary report.
type CashRequestSummaryRequest struct {
	From         time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To           time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	DepartmentID string    `form:"departmentID"`
}

// CashRequestSummaryBucket is one aggregate row of the summary report.
type CashRequestSummaryBucket struct {
	Status       domain.RequestStatus `json:"status"`
	StatusLabel  string               `json:"statusLabel"`
	DepartmentID string               `json:"departmentID,omitempty"`
	Count        int64                `json:"count"`
	TotalAmount  decimal.Decimal      `json:"totalAmount"`
	CurrencyCode string               `json:"currencyCode"`
}

// CashRequestSummaryResponse is the summary report over a date range.
type CashRequestSummaryResponse struct {
	From    time.Time                  `json:"from"`
	To      time.Time                  `json:"to"`
	Buckets []CashRequestSummaryBucket `json:"buckets"`
}

// ToCashRequestSummaryResponse converts aggregate rows to the report DTO.
func ToCashRequestSummaryResponse(from, to time.Time, rows []domain.CashRequestSummaryRow) *CashRequestSummaryResponse {
	buckets := make([]CashRequestSummaryBucket, len(rows))
	for i, r := range rows {
		buckets[i] = CashRequestSummaryBucket{
			Status:       r.Status,
			StatusLabel:  r.Status.Label(),
			DepartmentID: r.DepartmentID,
			Count:        r.Count,
			TotalAmount:  r.TotalAmount,
			CurrencyCode: r.CurrencyCode,
		}
	}
	return &CashRequestSummaryResponse{From: from, To: to, Buckets: buckets}
}
