package statemachine

import (
	"context"
	"testing"
	"time"

	"github.com/senselive/vms-api/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func newLog() *models.VisitLog {
	return &models.VisitLog{ID: "visit-1", VisitType: models.VisitTypeUnplanned}
}

func TestWorkflowStateProjection(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		log  *models.VisitLog
		want string
	}{
		{"fresh walk-in", newLog(), StatePending},
		{"manager approved", &models.VisitLog{ManagerApproval: models.ApprovalGranted}, StateManagerApproved},
		{"manager rejected", &models.VisitLog{ManagerApproval: models.ApprovalDenied}, StateManagerRejected},
		{"checked in", &models.VisitLog{ManagerApproval: models.ApprovalGranted, SecurityApproval: models.ApprovalGranted, CheckInTime: &now}, StateCheckedIn},
		{"security rejected with legacy check-in stamp", &models.VisitLog{ManagerApproval: models.ApprovalGranted, SecurityApproval: models.ApprovalDenied, CheckInTime: &now}, StateSecurityRejected},
		{"checked out", &models.VisitLog{ManagerApproval: models.ApprovalGranted, SecurityApproval: models.ApprovalGranted, CheckInTime: &now, CheckOutTime: &now}, StateCheckedOut},
		{"checked out without check-in", &models.VisitLog{CheckOutTime: &now}, StateCheckedOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorkflowState(tt.log))
		})
	}
}

func TestManagerApproveBlockedAfterSecurityApproval(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	log := newLog()
	log.ManagerApproval = models.ApprovalGranted
	log.SecurityApproval = models.ApprovalGranted
	log.CheckInTime = &now

	machine := NewVisitFSM(log, true)
	err := machine.ManagerDecide(ctx, models.ApprovalGranted)
	assert.ErrorIs(t, err, ErrSecurityAlreadyApproved)
	assert.True(t, IsConflict(err))
	assert.Equal(t, models.ApprovalGranted, log.ManagerApproval, "row left unchanged on conflict")
}

func TestManagerRejectAlwaysAllowed(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	log := newLog()
	log.ManagerApproval = models.ApprovalGranted
	log.SecurityApproval = models.ApprovalGranted
	log.CheckInTime = &now

	machine := NewVisitFSM(log, true)
	assert.NoError(t, machine.ManagerDecide(ctx, models.ApprovalDenied))
	assert.Equal(t, models.ApprovalDenied, log.ManagerApproval)
}

func TestRepeatManagerDecisionOverwrites(t *testing.T) {
	ctx := context.Background()
	log := newLog()

	machine := NewVisitFSM(log, true)
	assert.NoError(t, machine.ManagerDecide(ctx, models.ApprovalGranted))

	// Deciding again lands on the same state and must still succeed.
	machine = NewVisitFSM(log, true)
	assert.NoError(t, machine.ManagerDecide(ctx, models.ApprovalGranted))
	assert.Equal(t, models.ApprovalGranted, log.ManagerApproval)

	machine = NewVisitFSM(log, true)
	assert.NoError(t, machine.ManagerDecide(ctx, models.ApprovalDenied))
	assert.Equal(t, models.ApprovalDenied, log.ManagerApproval)
}

func TestSecurityApproveRequiresManagerApproval(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	for _, manager := range []models.Approval{models.ApprovalUnset, models.ApprovalDenied} {
		log := newLog()
		log.ManagerApproval = manager

		machine := NewVisitFSM(log, true)
		err := machine.SecurityDecide(ctx, models.ApprovalGranted, nil, now)
		assert.ErrorIs(t, err, ErrManagerNotApproved)
		assert.Equal(t, models.ApprovalUnset, log.SecurityApproval)
		assert.Nil(t, log.CheckInTime)
	}
}

func TestSecurityApproveStampsCheckIn(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	data := datatypes.JSON([]byte(`{"id_proof":"DL-1234"}`))

	log := newLog()
	log.ManagerApproval = models.ApprovalGranted

	machine := NewVisitFSM(log, true)
	assert.NoError(t, machine.SecurityDecide(ctx, models.ApprovalGranted, data, now))
	assert.Equal(t, models.ApprovalGranted, log.SecurityApproval)
	assert.Equal(t, data, log.SecurityData)
	if assert.NotNil(t, log.CheckInTime) {
		assert.Equal(t, now, *log.CheckInTime)
	}
}

func TestSecurityRejectCheckInStamp(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	// Legacy behavior: the rejection still stamps a check-in time.
	log := newLog()
	log.ManagerApproval = models.ApprovalGranted
	machine := NewVisitFSM(log, true)
	assert.NoError(t, machine.SecurityDecide(ctx, models.ApprovalDenied, nil, now))
	assert.Equal(t, models.ApprovalDenied, log.SecurityApproval)
	assert.NotNil(t, log.CheckInTime)

	// With the flag off, a rejection leaves the timestamp alone.
	log = newLog()
	log.ManagerApproval = models.ApprovalGranted
	machine = NewVisitFSM(log, false)
	assert.NoError(t, machine.SecurityDecide(ctx, models.ApprovalDenied, nil, now))
	assert.Equal(t, models.ApprovalDenied, log.SecurityApproval)
	assert.Nil(t, log.CheckInTime)
}

func TestSecurityRejectAllowedWithoutManagerApproval(t *testing.T) {
	ctx := context.Background()

	log := newLog()
	machine := NewVisitFSM(log, false)
	assert.NoError(t, machine.SecurityDecide(ctx, models.ApprovalDenied, nil, time.Now()))
	assert.Equal(t, models.ApprovalDenied, log.SecurityApproval)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	// Checkout is unconditional for an existing row; a never-checked-in
	// visit can still be closed out.
	log := newLog()
	machine := NewVisitFSM(log, true)
	assert.NoError(t, machine.CheckOut(ctx, now))
	if assert.NotNil(t, log.CheckOutTime) {
		assert.Equal(t, now, *log.CheckOutTime)
	}
}

func TestCheckOutRepeatOverwrites(t *testing.T) {
	ctx := context.Background()
	first := time.Now()
	second := first.Add(30 * time.Minute)

	log := newLog()
	log.ManagerApproval = models.ApprovalGranted
	log.SecurityApproval = models.ApprovalGranted
	log.CheckInTime = &first

	machine := NewVisitFSM(log, true)
	assert.NoError(t, machine.CheckOut(ctx, first))

	machine = NewVisitFSM(log, true)
	assert.NoError(t, machine.CheckOut(ctx, second))
	assert.Equal(t, second, *log.CheckOutTime)
}

func TestExitApprovalIsFinal(t *testing.T) {
	log := newLog()

	machine := NewVisitFSM(log, true)
	assert.NoError(t, machine.ExitDecide(models.ApprovalDenied))
	assert.Equal(t, models.ApprovalDenied, log.ManagerExitApproval)

	// A denied exit decision may be revisited.
	machine = NewVisitFSM(log, true)
	assert.NoError(t, machine.ExitDecide(models.ApprovalGranted))
	assert.Equal(t, models.ApprovalGranted, log.ManagerExitApproval)

	// A granted one may not.
	machine = NewVisitFSM(log, true)
	err := machine.ExitDecide(models.ApprovalDenied)
	assert.ErrorIs(t, err, ErrExitAlreadyApproved)
	assert.True(t, IsConflict(err))
	assert.Equal(t, models.ApprovalGranted, log.ManagerExitApproval)
}

func TestExitApprovalIndependentOfEntryLifecycle(t *testing.T) {
	// The exit gate can be granted even when the visit never checked in.
	log := newLog()
	log.ManagerApproval = models.ApprovalDenied

	machine := NewVisitFSM(log, true)
	assert.NoError(t, machine.ExitDecide(models.ApprovalGranted))
}
