package dinner

import (
	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
	"github.com/frahmantamala/employee-portal/internal/core/request"
)

// State is the dinner slice. Selection is mutated locally through
// toggle actions and only hits the network when stored; no history is
// kept.
type State struct {
	Menu      request.Request[datamodel.DinnerMenu] `json:"menu"`
	Save      request.Request[struct{}]             `json:"save"`
	Selection datamodel.DinnerSelection             `json:"selection"`
}

type Store interface {
	UpdateDinner(fn func(*State))
	DinnerState() State
}

type Sessions interface {
	EnsureSession() error
}
