package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTransition is returned by NextStatus when the requested action is not
// legal from the request's current status for the acting role. Callers map
// it to their own error taxonomy.
var ErrNoTransition = errors.New("no legal transition")

// StepState describes an approval step relative to the request's current status.
type StepState string

const (
	StepCompleted StepState = "COMPLETED"
	StepCurrent   StepState = "CURRENT"
	StepUpcoming  StepState = "UPCOMING"
	StepSkipped   StepState = "SKIPPED" // Remaining steps of a declined request
)

// ApprovalStep is one stage of a request's approval chain.
type ApprovalStep struct {
	Step  int       `json:"step"`
	Role  UserRole  `json:"role"`
	Label string    `json:"label"`
	State StepState `json:"state"`
}

// stageOrder is the fixed approval chain. The CEO stage participates only
// when the request's CEOApprovalRequired flag is set.
var stageOrder = []struct {
	status RequestStatus
	role   UserRole
	label  string
}{
	{StatusPendingAccountant, RoleAccountant, "Accountant Review"},
	{StatusPendingCFO, RoleCFO, "CFO Approval"},
	{StatusPendingCEO, RoleCEO, "CEO Approval"},
	{StatusApproved, RoleCashier, "Disbursement"},
}

// ResolveChain returns the ordered approval steps for a request, with each
// step's state derived from the request's current status. It is the source
// of truth the transition rules are derived from per request.
func ResolveChain(req *CashRequest) []ApprovalStep {
	steps := make([]ApprovalStep, 0, len(stageOrder))
	n := 1
	passed := true // until we hit the current stage
	for _, stage := range stageOrder {
		if stage.status == StatusPendingCEO && !req.CEOApprovalRequired {
			continue
		}
		step := ApprovalStep{Step: n, Role: stage.role, Label: stage.label}
		switch {
		case stage.status == req.Status:
			step.State = StepCurrent
			passed = false
		case passed:
			step.State = StepCompleted
		default:
			step.State = StepUpcoming
		}
		steps = append(steps, step)
		n++
	}
	switch req.Status {
	case StatusPaid:
		// A paid request has walked the whole chain.
		for i := range steps {
			steps[i].State = StepCompleted
		}
	case StatusDeclined:
		// Approvals granted before the decline stay completed; the stage
		// the decline happened at and everything after it is skipped.
		completed := countApprovals(req.AuditTrail)
		for i := range steps {
			if i < completed {
				steps[i].State = StepCompleted
			} else {
				steps[i].State = StepSkipped
			}
		}
	}
	return steps
}

// countApprovals counts the approval entries in an audit trail. Labels are
// produced by AuditActionLabel, so the "Approved" verb prefix is stable.
func countApprovals(trail []AuditEntry) int {
	n := 0
	for _, e := range trail {
		if strings.HasPrefix(e.Action, "Approved ") {
			n++
		}
	}
	return n
}

// RequiredRole returns the role that must act on the request in its current
// status. ok is false for terminal statuses, which accept no action.
func RequiredRole(req *CashRequest) (UserRole, bool) {
	for _, stage := range stageOrder {
		if stage.status == StatusPendingCEO && !req.CEOApprovalRequired {
			continue
		}
		if stage.status == req.Status {
			return stage.role, true
		}
	}
	return "", false
}

// NextStatus computes the status the request moves to when the given role
// performs the given action. It enforces the transition table:
//
//	Pending Accountant --approve (Accountant)--> Pending CFO
//	Pending CFO        --approve (CFO)-------->  Pending CEO | Approved
//	Pending CEO        --approve (CEO)-------->  Approved
//	any non-terminal   --reject (stage role)-->  Declined
//	Approved           --disburse (Cashier)--->  Paid
//
// It returns ErrNoTransition when the action is illegal from the current
// status or the role does not match the stage's required role.
func NextStatus(req *CashRequest, action WorkflowAction, role UserRole) (RequestStatus, error) {
	required, ok := RequiredRole(req)
	if !ok {
		return "", fmt.Errorf("%w: request is %s", ErrNoTransition, req.Status.Label())
	}
	if role != required {
		return "", fmt.Errorf("%w: %s must act on a %s request, not %s", ErrNoTransition, required, req.Status.Label(), role)
	}

	switch action {
	case ActionApprove:
		switch req.Status {
		case StatusPendingAccountant:
			return StatusPendingCFO, nil
		case StatusPendingCFO:
			if req.CEOApprovalRequired {
				return StatusPendingCEO, nil
			}
			return StatusApproved, nil
		case StatusPendingCEO:
			return StatusApproved, nil
		}
	case ActionReject:
		switch req.Status {
		case StatusPendingAccountant, StatusPendingCFO, StatusPendingCEO, StatusApproved:
			return StatusDeclined, nil
		}
	case ActionDisburse:
		if req.Status == StatusApproved {
			return StatusPaid, nil
		}
	}
	return "", fmt.Errorf("%w: cannot %s a %s request", ErrNoTransition, action, req.Status.Label())
}

// AuditActionLabel builds the audit trail action string for a transition,
// e.g. "Approved by Accountant", "Declined by CFO", "Paid by Cashier".
func AuditActionLabel(action WorkflowAction, role UserRole) string {
	var verb string
	switch action {
	case ActionApprove:
		verb = "Approved"
	case ActionReject:
		verb = "Declined"
	case ActionDisburse:
		verb = "Paid"
	default:
		verb = string(action)
	}
	return verb + " by " + roleLabel(role)
}

func roleLabel(role UserRole) string {
	switch role {
	case RoleAccountant:
		return "Accountant"
	case RoleCFO:
		return "CFO"
	case RoleCEO:
		return "CEO"
	case RoleCashier:
		return "Cashier"
	case RoleManager:
		return "Manager"
	case RoleFinance:
		return "Finance"
	case RoleAdmin:
		return "Admin"
	default:
		return string(role)
	}
}

// privilegedViewers may view any cash request regardless of ownership.
var privilegedViewers = map[UserRole]bool{
	RoleCEO:        true,
	RoleAdmin:      true,
	RoleFinance:    true,
	RoleAccountant: true,
	RoleCashier:    true,
	RoleCFO:        true,
	RoleManager:    true,
}

// IsPrivilegedViewer reports whether the role may view any cash request.
func IsPrivilegedViewer(role UserRole) bool {
	return privilegedViewers[role]
}

// CanView reports whether the user may see the request: privileged roles see
// everything, everyone else only their own requests. Fails closed.
func CanView(req *CashRequest, user *User) bool {
	if user == nil {
		return false
	}
	if privilegedViewers[user.Role] {
		return true
	}
	return req.IsOwner(user.UserID)
}

// CanAct reports whether the user's role is the one required to perform the
// given action on the request in its current status. Fails closed.
func CanAct(req *CashRequest, user *User, action WorkflowAction) bool {
	if user == nil {
		return false
	}
	_, err := NextStatus(req, action, user.Role)
	return err == nil
}
