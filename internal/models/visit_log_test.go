package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusDerivation(t *testing.T) {
	tests := []struct {
		name     string
		manager  Approval
		security Approval
		want     string
	}{
		{"both unset", ApprovalUnset, ApprovalUnset, StatusPending},
		{"manager approved only", ApprovalGranted, ApprovalUnset, StatusPending},
		{"both approved", ApprovalGranted, ApprovalGranted, StatusApproved},
		{"manager rejected", ApprovalDenied, ApprovalUnset, StatusRejected},
		{"security rejected", ApprovalGranted, ApprovalDenied, StatusRejected},
		{"security rejected without manager", ApprovalUnset, ApprovalDenied, StatusRejected},
		{"manager rejected after security approved", ApprovalDenied, ApprovalGranted, StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &VisitLog{ManagerApproval: tt.manager, SecurityApproval: tt.security}
			assert.Equal(t, tt.want, v.Status())
		})
	}
}

func TestVisitStatusLifecycle(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Hour)

	v := &VisitLog{ManagerApproval: ApprovalGranted}
	assert.Equal(t, VisitStatusNotVisited, v.VisitStatus())

	v.SecurityApproval = ApprovalGranted
	v.CheckInTime = &now
	assert.Equal(t, VisitStatusCheckedIn, v.VisitStatus())

	v.CheckOutTime = &later
	assert.Equal(t, VisitStatusCheckedOut, v.VisitStatus())
}

func TestVisitStatusRejectedOverridesTimestamps(t *testing.T) {
	now := time.Now()

	// A security rejection that still stamped a check-in time must not read
	// as checked in.
	v := &VisitLog{
		ManagerApproval:  ApprovalGranted,
		SecurityApproval: ApprovalDenied,
		CheckInTime:      &now,
	}
	assert.Equal(t, VisitStatusRejected, v.VisitStatus())

	v.CheckOutTime = &now
	assert.Equal(t, VisitStatusRejected, v.VisitStatus())
}

func TestGateGuards(t *testing.T) {
	v := &VisitLog{}
	assert.True(t, v.MayManagerDecide(ApprovalGranted))
	assert.True(t, v.MayManagerDecide(ApprovalDenied))
	assert.False(t, v.MaySecurityDecide(ApprovalGranted), "security cannot approve before the manager")
	assert.True(t, v.MaySecurityDecide(ApprovalDenied))

	v.ManagerApproval = ApprovalGranted
	assert.True(t, v.MaySecurityDecide(ApprovalGranted))

	v.SecurityApproval = ApprovalGranted
	assert.False(t, v.MayManagerDecide(ApprovalGranted), "manager cannot re-approve once security approved")
	assert.True(t, v.MayManagerDecide(ApprovalDenied))

	assert.True(t, v.MayExitDecide())
	v.ManagerExitApproval = ApprovalDenied
	assert.True(t, v.MayExitDecide())
	v.ManagerExitApproval = ApprovalGranted
	assert.False(t, v.MayExitDecide())
}

func TestToResponseFlattensAssociations(t *testing.T) {
	v := &VisitLog{
		ID:           "visit-1",
		DepartmentID: 3,
		VisitType:    VisitTypePlanned,
		Visitor: &Visitor{
			FirstName:     "Asha",
			LastName:      "Verma",
			Email:         "asha@example.com",
			ContactNumber: "9876543210",
			Company:       "Acme",
		},
		Department: &Department{ID: 3, Name: "Engineering"},
		Host:       &User{FirstName: "Ravi", LastName: "Kumar", Designation: "Plant Head"},
	}

	resp := v.ToResponse()
	assert.Equal(t, "visit-1", resp.VisitLogID)
	assert.Equal(t, "Asha", resp.FirstName)
	assert.Equal(t, "asha@example.com", resp.CompanyEmail)
	assert.Equal(t, "Engineering", resp.DepartmentName)
	assert.Equal(t, "Ravi Kumar (Plant Head)", resp.WhomToMeet)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, VisitStatusNotVisited, resp.VisitStatus)
}

func TestToResponseWithoutAssociations(t *testing.T) {
	v := &VisitLog{ID: "visit-2"}
	resp := v.ToResponse()
	assert.Empty(t, resp.FirstName)
	assert.Empty(t, resp.WhomToMeet)
	assert.Empty(t, resp.DepartmentName)
}

func TestVisitorMergeContact(t *testing.T) {
	v := &Visitor{FirstName: "Asha", Email: "asha@example.com"}

	changed := v.MergeContact("Ignored", "Verma", "other@example.com", "9876543210", "Acme")
	assert.True(t, changed)
	assert.Equal(t, "Asha", v.FirstName, "populated fields are never overwritten")
	assert.Equal(t, "asha@example.com", v.Email)
	assert.Equal(t, "Verma", v.LastName)
	assert.Equal(t, "9876543210", v.ContactNumber)
	assert.Equal(t, "Acme", v.Company)

	changed = v.MergeContact("X", "Y", "z@example.com", "000", "Globex")
	assert.False(t, changed, "a fully populated record is left alone")
}
