package models

import "time"

// VisitTypeCount is a per-visit-type rollup row.
type VisitTypeCount struct {
	VisitType string `json:"visit_type"`
	Count     int64  `json:"count"`
}

// DepartmentVisitCount is a per-department rollup row.
type DepartmentVisitCount struct {
	DepartmentName string `json:"department_name"`
	VisitCount     int64  `json:"visit_count"`
}

// ApprovalStatusCount is a rollup row of the derived approval status.
type ApprovalStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// VisitAnalytics bundles the org-wide dashboard rollups.
type VisitAnalytics struct {
	VisitTypeCounts      []VisitTypeCount       `json:"visitTypeCounts"`
	DepartmentCounts     []DepartmentVisitCount `json:"departmentCounts"`
	ApprovalStatusCounts []ApprovalStatusCount  `json:"approvalStatusCounts"`
}

// CheckedInVisitor is a dashboard row for a visitor currently in the plant.
type CheckedInVisitor struct {
	VisitID          string     `json:"visit_id"`
	VisitorFirstName string     `json:"visitor_first_name"`
	VisitorLastName  string     `json:"visitor_last_name"`
	VisitorContact   string     `json:"visitor_contact"`
	VisitorEmail     string     `json:"visitor_email"`
	HostFirstName    string     `json:"visiting_user_first_name"`
	HostLastName     string     `json:"visiting_user_last_name"`
	CheckInTime      *time.Time `json:"check_in_time"`
	Purpose          string     `json:"purpose"`
}

// SecurityAnalytics bundles the gate dashboard rollups.
type SecurityAnalytics struct {
	TodaysVisitors            int64              `json:"todaysVisitors"`
	PendingSecurityApprovals  int64              `json:"pendingSecurityApprovals"`
	ApprovedSecurityApprovals int64              `json:"approvedSecurityApprovals"`
	CurrentlyInPlant          int64              `json:"currentlyInPlant"`
	CheckedInVisitors         []CheckedInVisitor `json:"checkedInVisitorsList"`
}
