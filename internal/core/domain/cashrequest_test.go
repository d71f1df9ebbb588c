package domain_test

import (
	"testing"

	"github.com/markpedia/mpos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCashRequest_Validate(t *testing.T) {
	bank := &domain.BankDetails{BankName: "Afriland", AccountName: "J. Doe", AccountNumber: "0012345"}
	momo := &domain.MobileMoneyDetails{Provider: "MTN MoMo", PhoneNumber: "+237670000000"}

	tests := []struct {
		name    string
		req     domain.CashRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid bank transfer request",
			req: domain.CashRequest{
				RequestedBy:     "user_123",
				AmountRequested: decimal.NewFromInt(250000),
				PaymentMethod:   domain.PaymentBankTransfer,
				BankDetails:     bank,
			},
			wantErr: false,
		},
		{
			name: "valid mobile money request",
			req: domain.CashRequest{
				RequestedBy:        "user_123",
				AmountRequested:    decimal.NewFromInt(50000),
				PaymentMethod:      domain.PaymentMobileMoney,
				MobileMoneyDetails: momo,
			},
			wantErr: false,
		},
		{
			name: "valid cash request carries no details",
			req: domain.CashRequest{
				RequestedBy:     "user_123",
				AmountRequested: decimal.NewFromInt(10000),
				PaymentMethod:   domain.PaymentCash,
			},
			wantErr: false,
		},
		{
			name: "zero amount rejected",
			req: domain.CashRequest{
				RequestedBy:     "user_123",
				AmountRequested: decimal.Zero,
				PaymentMethod:   domain.PaymentCash,
			},
			wantErr: true,
			errMsg:  "must be positive",
		},
		{
			name: "bank transfer without bank details rejected",
			req: domain.CashRequest{
				RequestedBy:     "user_123",
				AmountRequested: decimal.NewFromInt(1000),
				PaymentMethod:   domain.PaymentBankTransfer,
			},
			wantErr: true,
			errMsg:  "bank details",
		},
		{
			name: "bank transfer with momo details rejected",
			req: domain.CashRequest{
				RequestedBy:        "user_123",
				AmountRequested:    decimal.NewFromInt(1000),
				PaymentMethod:      domain.PaymentBankTransfer,
				BankDetails:        bank,
				MobileMoneyDetails: momo,
			},
			wantErr: true,
			errMsg:  "nothing else",
		},
		{
			name: "cash with bank details rejected",
			req: domain.CashRequest{
				RequestedBy:     "user_123",
				AmountRequested: decimal.NewFromInt(1000),
				PaymentMethod:   domain.PaymentCash,
				BankDetails:     bank,
			},
			wantErr: true,
			errMsg:  "must not carry payment details",
		},
		{
			name: "unknown payment method rejected",
			req: domain.CashRequest{
				RequestedBy:     "user_123",
				AmountRequested: decimal.NewFromInt(1000),
				PaymentMethod:   domain.PaymentMethod("CHEQUE"),
			},
			wantErr: true,
			errMsg:  "unknown payment method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequestStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.StatusPendingAccountant.IsTerminal())
	assert.False(t, domain.StatusPendingCFO.IsTerminal())
	assert.False(t, domain.StatusPendingCEO.IsTerminal())
	assert.False(t, domain.StatusApproved.IsTerminal())
	assert.True(t, domain.StatusPaid.IsTerminal())
	assert.True(t, domain.StatusDeclined.IsTerminal())
}
