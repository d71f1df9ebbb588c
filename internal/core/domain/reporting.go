package domain

import "github.com/shopspring/decimal"

// CashRequestSummaryRow is one aggregate bucket of the cash request summary
// report: all requests of one status within one department.
type CashRequestSummaryRow struct {
	Status       RequestStatus   `json:"status"`
	DepartmentID string          `json:"departmentID"`
	Count        int64           `json:"count"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	CurrencyCode string          `json:"currencyCode"`
}
