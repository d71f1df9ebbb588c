package domain_test

import (
	"testing"

	"github.com/markpedia/mpos_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(status domain.RequestStatus, ceoRequired bool) *domain.CashRequest {
	return &domain.CashRequest{
		RequestID:           "req_123",
		Status:              status,
		CEOApprovalRequired: ceoRequired,
		RequestedBy:         "user_owner",
	}
}

func TestNextStatus_TransitionTable(t *testing.T) {
	tests := []struct {
		name        string
		status      domain.RequestStatus
		ceoRequired bool
		action      domain.WorkflowAction
		role        domain.UserRole
		want        domain.RequestStatus
		wantErr     bool
	}{
		{
			name:   "accountant approves pending accountant",
			status: domain.StatusPendingAccountant,
			action: domain.ActionApprove,
			role:   domain.RoleAccountant,
			want:   domain.StatusPendingCFO,
		},
		{
			name:   "accountant rejects pending accountant",
			status: domain.StatusPendingAccountant,
			action: domain.ActionReject,
			role:   domain.RoleAccountant,
			want:   domain.StatusDeclined,
		},
		{
			name:   "cfo approves without ceo requirement",
			status: domain.StatusPendingCFO,
			action: domain.ActionApprove,
			role:   domain.RoleCFO,
			want:   domain.StatusApproved,
		},
		{
			name:        "cfo approves with ceo requirement",
			status:      domain.StatusPendingCFO,
			ceoRequired: true,
			action:      domain.ActionApprove,
			role:        domain.RoleCFO,
			want:        domain.StatusPendingCEO,
		},
		{
			name:        "ceo approves pending ceo",
			status:      domain.StatusPendingCEO,
			ceoRequired: true,
			action:      domain.ActionApprove,
			role:        domain.RoleCEO,
			want:        domain.StatusApproved,
		},
		{
			name:        "ceo rejects pending ceo",
			status:      domain.StatusPendingCEO,
			ceoRequired: true,
			action:      domain.ActionReject,
			role:        domain.RoleCEO,
			want:        domain.StatusDeclined,
		},
		{
			name:   "cashier disburses approved request",
			status: domain.StatusApproved,
			action: domain.ActionDisburse,
			role:   domain.RoleCashier,
			want:   domain.StatusPaid,
		},
		{
			name:   "cashier rejects approved request before disbursement",
			status: domain.StatusApproved,
			action: domain.ActionReject,
			role:   domain.RoleCashier,
			want:   domain.StatusDeclined,
		},
		{
			name:    "accountant cannot reject approved request",
			status:  domain.StatusApproved,
			action:  domain.ActionReject,
			role:    domain.RoleAccountant,
			wantErr: true,
		},
		{
			name:    "paid request rejects nothing",
			status:  domain.StatusPaid,
			action:  domain.ActionReject,
			role:    domain.RoleCashier,
			wantErr: true,
		},
		{
			name:    "manager cannot approve pending cfo",
			status:  domain.StatusPendingCFO,
			action:  domain.ActionApprove,
			role:    domain.RoleManager,
			wantErr: true,
		},
		{
			name:    "accountant cannot approve pending cfo",
			status:  domain.StatusPendingCFO,
			action:  domain.ActionApprove,
			role:    domain.RoleAccountant,
			wantErr: true,
		},
		{
			name:    "cashier cannot disburse pending request",
			status:  domain.StatusPendingAccountant,
			action:  domain.ActionDisburse,
			role:    domain.RoleCashier,
			wantErr: true,
		},
		{
			name:    "declined request accepts nothing",
			status:  domain.StatusDeclined,
			action:  domain.ActionApprove,
			role:    domain.RoleAccountant,
			wantErr: true,
		},
		{
			name:    "paid request accepts nothing",
			status:  domain.StatusPaid,
			action:  domain.ActionDisburse,
			role:    domain.RoleCashier,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(tt.status, tt.ceoRequired)
			got, err := domain.NextStatus(req, tt.action, tt.role)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrNoTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextStatus_NeverVisitsCEOWhenNotRequired(t *testing.T) {
	req := newRequest(domain.StatusPendingAccountant, false)

	next, err := domain.NextStatus(req, domain.ActionApprove, domain.RoleAccountant)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingCFO, next)
	req.Status = next

	next, err = domain.NextStatus(req, domain.ActionApprove, domain.RoleCFO)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, next)
}

func TestResolveChain(t *testing.T) {
	t.Run("without ceo step", func(t *testing.T) {
		chain := domain.ResolveChain(newRequest(domain.StatusPendingCFO, false))
		require.Len(t, chain, 3)
		assert.Equal(t, domain.RoleAccountant, chain[0].Role)
		assert.Equal(t, domain.StepCompleted, chain[0].State)
		assert.Equal(t, domain.RoleCFO, chain[1].Role)
		assert.Equal(t, domain.StepCurrent, chain[1].State)
		assert.Equal(t, domain.RoleCashier, chain[2].Role)
		assert.Equal(t, domain.StepUpcoming, chain[2].State)
	})

	t.Run("with ceo step", func(t *testing.T) {
		chain := domain.ResolveChain(newRequest(domain.StatusPendingAccountant, true))
		require.Len(t, chain, 4)
		assert.Equal(t, domain.RoleAccountant, chain[0].Role)
		assert.Equal(t, domain.StepCurrent, chain[0].State)
		assert.Equal(t, domain.RoleCEO, chain[2].Role)
		assert.Equal(t, domain.StepUpcoming, chain[2].State)
	})

	t.Run("decline at first stage skips every step", func(t *testing.T) {
		req := newRequest(domain.StatusDeclined, true)
		req.AuditTrail = []domain.AuditEntry{
			{Action: "Declined by Accountant"},
		}
		chain := domain.ResolveChain(req)
		require.Len(t, chain, 4)
		for _, step := range chain {
			assert.Equal(t, domain.StepSkipped, step.State)
		}
	})

	t.Run("decline keeps earlier approvals completed", func(t *testing.T) {
		req := newRequest(domain.StatusDeclined, true)
		req.AuditTrail = []domain.AuditEntry{
			{Action: "Approved by Accountant"},
			{Action: "Declined by CFO"},
		}
		chain := domain.ResolveChain(req)
		require.Len(t, chain, 4)
		assert.Equal(t, domain.StepCompleted, chain[0].State)
		assert.Equal(t, domain.StepSkipped, chain[1].State)
		assert.Equal(t, domain.StepSkipped, chain[2].State)
		assert.Equal(t, domain.StepSkipped, chain[3].State)
	})

	t.Run("decline after full approval skips only disbursement", func(t *testing.T) {
		req := newRequest(domain.StatusDeclined, false)
		req.AuditTrail = []domain.AuditEntry{
			{Action: "Approved by Accountant"},
			{Action: "Approved by CFO"},
			{Action: "Declined by Cashier"},
		}
		chain := domain.ResolveChain(req)
		require.Len(t, chain, 3)
		assert.Equal(t, domain.StepCompleted, chain[0].State)
		assert.Equal(t, domain.StepCompleted, chain[1].State)
		assert.Equal(t, domain.StepSkipped, chain[2].State)
	})

	t.Run("paid request marks every step completed", func(t *testing.T) {
		chain := domain.ResolveChain(newRequest(domain.StatusPaid, false))
		require.Len(t, chain, 3)
		for _, step := range chain {
			assert.Equal(t, domain.StepCompleted, step.State)
		}
	})
}

func TestCanView(t *testing.T) {
	req := newRequest(domain.StatusPendingAccountant, false)

	tests := []struct {
		name string
		user *domain.User
		want bool
	}{
		{"nil user denied", nil, false},
		{"owner allowed", &domain.User{UserID: "user_owner", Role: domain.RoleEmployee}, true},
		{"other employee denied", &domain.User{UserID: "user_other", Role: domain.RoleEmployee}, false},
		{"cfo allowed", &domain.User{UserID: "user_cfo", Role: domain.RoleCFO}, true},
		{"manager allowed", &domain.User{UserID: "user_mgr", Role: domain.RoleManager}, true},
		{"cashier allowed", &domain.User{UserID: "user_cash", Role: domain.RoleCashier}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanView(req, tt.user))
		})
	}
}

func TestCanAct(t *testing.T) {
	accountant := &domain.User{UserID: "u1", Role: domain.RoleAccountant}
	manager := &domain.User{UserID: "u2", Role: domain.RoleManager}
	cashier := &domain.User{UserID: "u3", Role: domain.RoleCashier}

	pending := newRequest(domain.StatusPendingAccountant, false)
	assert.True(t, domain.CanAct(pending, accountant, domain.ActionApprove))
	assert.True(t, domain.CanAct(pending, accountant, domain.ActionReject))
	assert.False(t, domain.CanAct(pending, manager, domain.ActionApprove))
	assert.False(t, domain.CanAct(pending, cashier, domain.ActionDisburse))

	approved := newRequest(domain.StatusApproved, false)
	assert.True(t, domain.CanAct(approved, cashier, domain.ActionDisburse))
	assert.True(t, domain.CanAct(approved, cashier, domain.ActionReject))
	assert.False(t, domain.CanAct(approved, accountant, domain.ActionApprove))
}

func TestAuditActionLabel(t *testing.T) {
	assert.Equal(t, "Approved by Accountant", domain.AuditActionLabel(domain.ActionApprove, domain.RoleAccountant))
	assert.Equal(t, "Declined by CFO", domain.AuditActionLabel(domain.ActionReject, domain.RoleCFO))
	assert.Equal(t, "Paid by Cashier", domain.AuditActionLabel(domain.ActionDisburse, domain.RoleCashier))
}
