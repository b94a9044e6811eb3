package datamodel

import "time"

const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

const (
	LeaveTypeHalfDay  = "half_day"
	LeaveTypeSingle   = "single_day"
	LeaveTypeMultiDay = "multi_day"
)

// LeaveRequest is server-owned once submitted; the client only renders
// it and fires approve/reject actions.
type LeaveRequest struct {
	ID              int64      `json:"id"`
	EmployeeID      int64      `json:"employee_id"`
	EmployeeName    string     `json:"employee_name"`
	Category        string     `json:"category"`
	LeaveType       string     `json:"leave_type"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
}

// LeaveEmployee is a row in the approver's employee-leave listing.
type LeaveEmployee struct {
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	PendingCount int    `json:"pending_count"`
}
