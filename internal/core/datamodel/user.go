package datamodel

import "time"

// User is the portal identity fetched after login. Role and contact
// attributes come from the user-details endpoint, not the login call.
type User struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	RoleID      int64      `json:"role_id"`
	RoleName    string     `json:"role_name"`
	JoiningDate *time.Time `json:"joining_date,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
}

// DashboardStats is the landing summary for the logged-in employee.
type DashboardStats struct {
	PresentDays     int     `json:"present_days"`
	AbsentDays      int     `json:"absent_days"`
	LeavesTaken     int     `json:"leaves_taken"`
	LeavesRemaining int     `json:"leaves_remaining"`
	HoursThisMonth  float64 `json:"hours_this_month"`
	PendingLeaves   int     `json:"pending_leaves"`
}
