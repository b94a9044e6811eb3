package leave

import (
	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
	"github.com/frahmantamala/employee-portal/internal/core/request"
)

// State is the leave slice. List, Add, Decide and Employees are fully
// independent operations; an add failure leaves the list untouched.
type State struct {
	List      request.Request[[]datamodel.LeaveRequest]  `json:"list"`
	Add       request.Request[datamodel.LeaveRequest]    `json:"add"`
	Decide    request.Request[datamodel.LeaveRequest]    `json:"decide"`
	Employees request.Request[[]datamodel.LeaveEmployee] `json:"employees"`
}

type Store interface {
	UpdateLeave(fn func(*State))
	LeaveState() State
}

// Sessions is the pre-flight session check, satisfied by the auth
// service.
type Sessions interface {
	EnsureSession() error
}
