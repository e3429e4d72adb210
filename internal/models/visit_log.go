package models

import (
	"time"

	"gorm.io/datatypes"
)

// VisitLog is one record per physical visit attempt. It carries the three
// tri-state approval gates and the check-in/check-out timestamps; the overall
// status is derived from the gates on every read and never stored.
type VisitLog struct {
	ID                  string         `gorm:"primaryKey;type:uuid;column:visit_id" json:"visit_id"`
	VisitorID           string         `gorm:"type:uuid;not null;index" json:"visitor_id"`
	DepartmentID        uint           `gorm:"index" json:"department_id"`
	HostUserID          uint           `gorm:"column:visiting_user_id;index" json:"visiting_user_id"`
	VisitDate           time.Time      `gorm:"type:date;index" json:"visit_date"`
	Purpose             string         `json:"purpose"`
	VisitType           string         `gorm:"index" json:"visit_type"`
	VisitorType         string         `json:"visitor_type"`
	Location            string         `json:"location"`
	AccompanyingPersons datatypes.JSON `json:"accompanying_persons"`
	ManagerApproval     Approval       `gorm:"type:boolean" json:"manager_approval"`
	SecurityApproval    Approval       `gorm:"type:boolean" json:"security_approval"`
	ManagerExitApproval Approval       `gorm:"type:boolean" json:"manager_exit_approval"`
	SecurityData        datatypes.JSON `json:"security_data"`
	CheckInTime         *time.Time     `json:"check_in_time"`
	CheckOutTime        *time.Time     `json:"check_out_time"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`

	// Associations
	Visitor    *Visitor    `gorm:"foreignKey:VisitorID" json:"visitor,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Host       *User       `gorm:"foreignKey:HostUserID" json:"host,omitempty"`
}

// TableName specifies the table name for VisitLog
func (VisitLog) TableName() string {
	return "vms_visit_logs"
}

// Visit type constants
const (
	VisitTypePlanned   = "planned"
	VisitTypeUnplanned = "unplanned"
)

// ValidVisitType reports whether t is a known visit type.
func ValidVisitType(t string) bool {
	return t == VisitTypePlanned || t == VisitTypeUnplanned
}

// Derived approval status values
const (
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
	StatusPending  = "Pending"
)

// Derived entry lifecycle values
const (
	VisitStatusNotVisited = "Not Visited Yet"
	VisitStatusCheckedIn  = "Checked In Only"
	VisitStatusCheckedOut = "Checked Out"
	VisitStatusRejected   = "Rejected"
	VisitStatusUnknown    = "Unknown"
)

// Status derives the overall approval status from the two entry gates.
// It is a pure function of (manager_approval, security_approval).
func (v *VisitLog) Status() string {
	switch {
	case v.ManagerApproval == ApprovalGranted && v.SecurityApproval == ApprovalGranted:
		return StatusApproved
	case v.ManagerApproval == ApprovalDenied || v.SecurityApproval == ApprovalDenied:
		return StatusRejected
	default:
		return StatusPending
	}
}

// VisitStatus derives the entry lifecycle from the timestamps. Rejected
// visits report "Rejected" regardless of timestamps.
func (v *VisitLog) VisitStatus() string {
	if v.Status() == StatusRejected {
		return VisitStatusRejected
	}
	switch {
	case v.CheckInTime == nil && v.CheckOutTime == nil:
		return VisitStatusNotVisited
	case v.CheckInTime != nil && v.CheckOutTime == nil:
		return VisitStatusCheckedIn
	case v.CheckInTime != nil && v.CheckOutTime != nil:
		return VisitStatusCheckedOut
	default:
		return VisitStatusUnknown
	}
}

// MayManagerDecide reports whether the manager gate may be set to decision.
// Granting is blocked once security has already approved; a late manager
// sign-off must not land on top of a decision security relied on.
func (v *VisitLog) MayManagerDecide(decision Approval) bool {
	return !(decision == ApprovalGranted && v.SecurityApproval == ApprovalGranted)
}

// MaySecurityDecide reports whether the security gate may be set to decision.
// Granting requires a prior manager approval; rejection is always allowed.
func (v *VisitLog) MaySecurityDecide(decision Approval) bool {
	return !(decision == ApprovalGranted && v.ManagerApproval != ApprovalGranted)
}

// MayExitDecide reports whether the exit gate may be set. A granted exit
// approval is final.
func (v *VisitLog) MayExitDecide() bool {
	return v.ManagerExitApproval != ApprovalGranted
}

// VisitLogResponse flattens a visit log with its visitor and host for the
// dashboard views.
type VisitLogResponse struct {
	VisitLogID          string         `json:"visit_log_id"`
	FirstName           string         `json:"first_name"`
	LastName            string         `json:"last_name"`
	CompanyEmail        string         `json:"company_email"`
	Company             string         `json:"company"`
	Contact             string         `json:"contact"`
	DepartmentID        uint           `json:"department_id"`
	DepartmentName      string         `json:"department_name,omitempty"`
	VisitDate           time.Time      `json:"visit_date"`
	VisitType           string         `json:"visit_type"`
	VisitorType         string         `json:"visitor_type"`
	Purpose             string         `json:"purpose"`
	Location            string         `json:"location"`
	AccompanyingPersons datatypes.JSON `json:"accompanying_persons"`
	WhomToMeet          string         `json:"whom_to_meet"`
	ManagerApproval     Approval       `json:"manager_approval"`
	SecurityApproval    Approval       `json:"security_approval"`
	ManagerExitApproval Approval       `json:"manager_exit_approval"`
	SecurityData        datatypes.JSON `json:"security_data,omitempty"`
	CheckInTime         *time.Time     `json:"check_in_time"`
	CheckOutTime        *time.Time     `json:"check_out_time"`
	Status              string         `json:"status"`
	VisitStatus         string         `json:"visit_status"`
}

// ToResponse converts VisitLog to VisitLogResponse. Associations must be
// preloaded; missing ones simply leave their fields blank.
func (v *VisitLog) ToResponse() VisitLogResponse {
	resp := VisitLogResponse{
		VisitLogID:          v.ID,
		DepartmentID:        v.DepartmentID,
		VisitDate:           v.VisitDate,
		VisitType:           v.VisitType,
		VisitorType:         v.VisitorType,
		Purpose:             v.Purpose,
		Location:            v.Location,
		AccompanyingPersons: v.AccompanyingPersons,
		ManagerApproval:     v.ManagerApproval,
		SecurityApproval:    v.SecurityApproval,
		ManagerExitApproval: v.ManagerExitApproval,
		SecurityData:        v.SecurityData,
		CheckInTime:         v.CheckInTime,
		CheckOutTime:        v.CheckOutTime,
		Status:              v.Status(),
		VisitStatus:         v.VisitStatus(),
	}
	if v.Visitor != nil {
		resp.FirstName = v.Visitor.FirstName
		resp.LastName = v.Visitor.LastName
		resp.CompanyEmail = v.Visitor.Email
		resp.Company = v.Visitor.Company
		resp.Contact = v.Visitor.ContactNumber
	}
	if v.Department != nil {
		resp.DepartmentName = v.Department.Name
	}
	if v.Host != nil {
		resp.WhomToMeet = v.Host.FullName()
		if v.Host.Designation != "" {
			resp.WhomToMeet += " (" + v.Host.Designation + ")"
		}
	}
	return resp
}
