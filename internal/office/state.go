package office

import (
	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
	"github.com/frahmantamala/employee-portal/internal/core/request"
)

// State is the office-directory slice.
type State struct {
	List request.Request[[]datamodel.Office] `json:"list"`
}

type Store interface {
	UpdateOffice(fn func(*State))
	OfficeState() State
}

type Sessions interface {
	EnsureSession() error
}
