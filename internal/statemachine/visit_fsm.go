package statemachine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/looplab/fsm"
	"github.com/senselive/vms-api/internal/models"
	"gorm.io/datatypes"
)

// Workflow guard errors. Handlers map these to 403 state-conflict responses.
var (
	// ErrSecurityAlreadyApproved blocks a manager approval landing after
	// security has already signed off.
	ErrSecurityAlreadyApproved = errors.New("cannot approve: security has already approved the visit")

	// ErrManagerNotApproved blocks a security approval before the manager
	// gate is granted.
	ErrManagerNotApproved = errors.New("cannot approve: manager has not approved the visit yet")

	// ErrExitAlreadyApproved blocks changing a granted exit approval.
	ErrExitAlreadyApproved = errors.New("exit approval has already been granted")
)

// Workflow states derived from the gates and timestamps.
const (
	StatePending          = "pending"
	StateManagerApproved  = "manager_approved"
	StateManagerRejected  = "manager_rejected"
	StateSecurityRejected = "security_rejected"
	StateCheckedIn        = "checked_in"
	StateCheckedOut       = "checked_out"
)

// WorkflowState computes the composite workflow state of a visit log. The
// gates are the source of truth; this is only a projection for the machine.
func WorkflowState(v *models.VisitLog) string {
	switch {
	case v.CheckOutTime != nil:
		return StateCheckedOut
	case v.SecurityApproval == models.ApprovalDenied:
		return StateSecurityRejected
	case v.CheckInTime != nil:
		return StateCheckedIn
	case v.ManagerApproval == models.ApprovalDenied:
		return StateManagerRejected
	case v.ManagerApproval == models.ApprovalGranted:
		return StateManagerApproved
	default:
		return StatePending
	}
}

// VisitFSM wraps a visit log with its approval state machine. A fresh
// machine is built per operation from the row's current gates, mirroring how
// each transition is a single guarded update.
type VisitFSM struct {
	log *models.VisitLog
	fsm *fsm.FSM

	// checkInOnReject preserves the legacy behavior of stamping
	// check_in_time even when security rejects the visit.
	checkInOnReject bool
}

// NewVisitFSM creates a state machine positioned at the visit's current
// workflow state.
func NewVisitFSM(log *models.VisitLog, checkInOnReject bool) *VisitFSM {
	v := &VisitFSM{
		log:             log,
		checkInOnReject: checkInOnReject,
	}

	// Exact gate semantics live in the models.MayX guards; the event table
	// describes which lifecycle moves exist and where they normally occur.
	v.fsm = fsm.NewFSM(
		WorkflowState(log),
		fsm.Events{
			// any state but an active security approval → manager_approved
			{Name: "manager_approve", Src: []string{StatePending, StateManagerApproved, StateManagerRejected, StateSecurityRejected, StateCheckedOut}, Dst: StateManagerApproved},

			// a manager rejection is never blocked
			{Name: "manager_reject", Src: []string{StatePending, StateManagerApproved, StateManagerRejected, StateSecurityRejected, StateCheckedIn, StateCheckedOut}, Dst: StateManagerRejected},

			// security clearance doubles as physical check-in
			{Name: "security_approve", Src: []string{StateManagerApproved, StateSecurityRejected, StateCheckedIn, StateCheckedOut}, Dst: StateCheckedIn},

			// a security rejection is never blocked
			{Name: "security_reject", Src: []string{StatePending, StateManagerApproved, StateManagerRejected, StateSecurityRejected, StateCheckedIn, StateCheckedOut}, Dst: StateSecurityRejected},

			// checkout is unconditional for an existing row, including
			// repeat checkouts and rows that never checked in
			{Name: "check_out", Src: []string{StatePending, StateManagerApproved, StateManagerRejected, StateSecurityRejected, StateCheckedIn, StateCheckedOut}, Dst: StateCheckedOut},
		},
		fsm.Callbacks{},
	)

	return v
}

// fireEvent dispatches an fsm event. Landing on the current state again is
// not a failure: repeat decisions overwrite the gate by design.
func (v *VisitFSM) fireEvent(ctx context.Context, event string) error {
	err := v.fsm.Event(ctx, event)
	if err == nil {
		return nil
	}
	var nt fsm.NoTransitionError
	if errors.As(err, &nt) {
		return nil
	}
	return err
}

// ManagerDecide sets the manager approval gate. Granting fails once security
// has already approved; rejection always goes through.
func (v *VisitFSM) ManagerDecide(ctx context.Context, decision models.Approval) error {
	if !v.log.MayManagerDecide(decision) {
		return ErrSecurityAlreadyApproved
	}

	event := "manager_reject"
	if decision == models.ApprovalGranted {
		event = "manager_approve"
	}
	if err := v.fireEvent(ctx, event); err != nil {
		return fmt.Errorf("manager decision not allowed in state %s: %w", v.fsm.Current(), err)
	}

	v.log.ManagerApproval = decision
	return nil
}

// SecurityDecide sets the security approval gate, attaches the security
// data blob and stamps the check-in time. Granting requires a prior manager
// approval. The check-in stamp on rejection is legacy behavior kept behind
// the configuration flag.
func (v *VisitFSM) SecurityDecide(ctx context.Context, decision models.Approval, data datatypes.JSON, now time.Time) error {
	if !v.log.MaySecurityDecide(decision) {
		return ErrManagerNotApproved
	}

	event := "security_reject"
	if decision == models.ApprovalGranted {
		event = "security_approve"
	}
	if err := v.fireEvent(ctx, event); err != nil {
		return fmt.Errorf("security decision not allowed in state %s: %w", v.fsm.Current(), err)
	}

	v.log.SecurityApproval = decision
	if data != nil {
		v.log.SecurityData = data
	}
	if decision == models.ApprovalGranted || v.checkInOnReject {
		t := now
		v.log.CheckInTime = &t
	}
	return nil
}

// CheckOut stamps the checkout time. There is no guard against missing
// check-in or double checkout; a repeat call overwrites the timestamp.
func (v *VisitFSM) CheckOut(ctx context.Context, now time.Time) error {
	if err := v.fireEvent(ctx, "check_out"); err != nil {
		return fmt.Errorf("checkout not allowed in state %s: %w", v.fsm.Current(), err)
	}

	t := now
	v.log.CheckOutTime = &t
	return nil
}

// ExitDecide sets the manager exit approval gate. The exit gate is
// independent of the entry lifecycle, so it does not move the machine; the
// only rule is that a granted exit approval is final.
func (v *VisitFSM) ExitDecide(decision models.Approval) error {
	if !v.log.MayExitDecide() {
		return ErrExitAlreadyApproved
	}

	v.log.ManagerExitApproval = decision
	return nil
}

// Current returns the machine's current workflow state.
func (v *VisitFSM) Current() string {
	return v.fsm.Current()
}

// Can reports whether the named event may fire from the current state.
func (v *VisitFSM) Can(event string) bool {
	return v.fsm.Can(event)
}

// IsConflict reports whether err is one of the workflow guard errors.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSecurityAlreadyApproved) ||
		errors.Is(err, ErrManagerNotApproved) ||
		errors.Is(err, ErrExitAlreadyApproved)
}
