package analytics

import (
	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
	"github.com/frahmantamala/employee-portal/internal/core/request"
)

// State is the employee-analytics slice: own status history, the
// approver's team view, the approve/reject action and the hours
// report.
type State struct {
	Status request.Request[[]datamodel.EmployeeStatus]   `json:"status"`
	Team   request.Request[[]datamodel.TeamMemberStatus] `json:"team"`
	Decide request.Request[datamodel.EmployeeStatus]     `json:"decide"`
	Hours  request.Request[datamodel.HoursReport]        `json:"hours"`
}

type Store interface {
	UpdateAnalytics(fn func(*State))
	AnalyticsState() State
}

type Sessions interface {
	EnsureSession() error
}
