package salary

import (
	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
	"github.com/frahmantamala/employee-portal/internal/core/request"
)

// State is the salary slice. SlipPath / PackagePath record where the
// last rendered document landed.
type State struct {
	Slip        request.Request[datamodel.SalarySlip]    `json:"slip"`
	Package     request.Request[datamodel.AnnualPackage] `json:"package"`
	SlipPath    string                                   `json:"slip_path,omitempty"`
	PackagePath string                                   `json:"package_path,omitempty"`
}

type Store interface {
	UpdateSalary(fn func(*State))
	SalaryState() State
}

type Sessions interface {
	EnsureSession() error
}

// DocumentWriter turns rendered HTML into a file artifact. The native
// PDF generator sits behind this boundary; the default implementation
// just writes the HTML to disk and reports the path.
type DocumentWriter interface {
	Write(name string, html []byte) (path string, err error)
}
