package datamodel

import "time"

const (
	WorkStatusPending  = "pending"
	WorkStatusApproved = "approved"
	WorkStatusRejected = "rejected"
)

// EmployeeStatus is one day's attendance / work-status entry.
type EmployeeStatus struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	Date       time.Time `json:"date"`
	CheckIn    string    `json:"check_in,omitempty"`
	CheckOut   string    `json:"check_out,omitempty"`
	WorkedFrom string    `json:"worked_from,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	Status     string    `json:"status"`
}

// TeamMemberStatus is an approver's view of one report's submitted
// work status.
type TeamMemberStatus struct {
	EmployeeID   int64          `json:"employee_id"`
	EmployeeName string         `json:"employee_name"`
	Entry        EmployeeStatus `json:"entry"`
}

// HoursReport aggregates worked hours for a month.
type HoursReport struct {
	EmployeeID  int64   `json:"employee_id"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	TotalHours  float64 `json:"total_hours"`
	WorkingDays int     `json:"working_days"`
	Overtime    float64 `json:"overtime"`
}
